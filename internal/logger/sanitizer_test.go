package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizer_MaskValues(t *testing.T) {
	tests := []struct {
		name     string
		fields   []string
		names    []string
		values   []any
		expected []any
	}{
		{
			name:     "default set masks password",
			names:    []string{"name", "password"},
			values:   []any{"ada", "hunter2"},
			expected: []any{"ada", "***REDACTED***"},
		},
		{
			name:     "containment matches compound names",
			names:    []string{"user_api_key", "status"},
			values:   []any{"abc123", "active"},
			expected: []any{"***REDACTED***", "active"},
		},
		{
			name:     "matching is case insensitive",
			names:    []string{"Password"},
			values:   []any{"hunter2"},
			expected: []any{"***REDACTED***"},
		},
		{
			name:     "custom fields replace the default set",
			fields:   []string{"ssn"},
			names:    []string{"password", "ssn"},
			values:   []any{"hunter2", "123-45-6789"},
			expected: []any{"hunter2", "***REDACTED***"},
		},
		{
			name:     "nothing sensitive passes through",
			names:    []string{"name", "status"},
			values:   []any{"ada", "active"},
			expected: []any{"ada", "active"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSanitizer(tt.fields)
			assert.Equal(t, tt.expected, s.MaskValues(tt.names, tt.values))
		})
	}
}

func TestSanitizer_MaskValuesDoesNotMutateInput(t *testing.T) {
	s := NewSanitizer(nil)
	values := []any{"hunter2"}

	s.MaskValues([]string{"password"}, values)

	assert.Equal(t, "hunter2", values[0])
}

func TestSanitizer_FormatValues(t *testing.T) {
	s := NewSanitizer(nil)

	assert.Equal(t, "[]", s.FormatValues(nil))
	assert.Equal(t, "[ada, 7, true]", s.FormatValues([]any{"ada", 7, true}))
}
