package logger

import (
	"fmt"
	"strings"
)

// maskValue replaces sensitive parameter values in logs.
const maskValue = "***REDACTED***"

// Sanitizer masks sensitive bind values before they reach logs. Because
// every parameter in this builder carries a bind name derived from its
// column, detection works on the names directly instead of guessing from
// positions in the SQL text.
type Sanitizer struct {
	sensitiveFields []string
}

// NewSanitizer creates a sanitizer for the given sensitive field names.
// With no fields a default set of common secret-bearing column names is
// used.
func NewSanitizer(sensitiveFields []string) *Sanitizer {
	if len(sensitiveFields) == 0 {
		sensitiveFields = []string{
			"password", "passwd", "pwd",
			"token", "api_key", "apikey", "api_token",
			"secret", "auth", "authorization",
			"credit_card", "card_number", "cvv", "cvc",
			"ssn", "social_security",
			"private_key", "priv_key",
		}
	}
	return &Sanitizer{sensitiveFields: sensitiveFields}
}

// MaskValues returns a copy of values with every entry whose bind name
// contains a sensitive field replaced by the mask. Names and values are
// parallel slices in placeholder order; original slices are not modified.
func (s *Sanitizer) MaskValues(names []string, values []any) []any {
	masked := make([]any, len(values))
	copy(masked, values)
	for i, name := range names {
		if i >= len(masked) {
			break
		}
		if s.isSensitive(name) {
			masked[i] = maskValue
		}
	}
	return masked
}

func (s *Sanitizer) isSensitive(name string) bool {
	lower := strings.ToLower(name)
	for _, field := range s.sensitiveFields {
		if strings.Contains(lower, field) {
			return true
		}
	}
	return false
}

// FormatValues renders parameter values for log output.
func (s *Sanitizer) FormatValues(values []any) string {
	if len(values) == 0 {
		return "[]"
	}
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%v", v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
