package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestWhere_IsEmpty pins the structural emptiness check: the strict flag is
// part of it, so a container with nothing but Strict(false) called on it is
// NOT empty. This boundary is deliberate; "fixing" it changes import
// semantics.
func TestWhere_IsEmpty(t *testing.T) {
	tests := []struct {
		name  string
		build func(w *Where)
		empty bool
	}{
		{
			name:  "fresh container is empty",
			build: func(_ *Where) {},
			empty: true,
		},
		{
			name:  "strict false alone makes it non-empty",
			build: func(w *Where) { w.Strict(false) },
			empty: false,
		},
		{
			name:  "a filter makes it non-empty",
			build: func(w *Where) { w.Filter("a", 1) },
			empty: false,
		},
		{
			name:  "a raw fragment makes it non-empty",
			build: func(w *Where) { w.Raw("a = 1") },
			empty: false,
		},
		{
			name:  "strict back to true restores emptiness",
			build: func(w *Where) { w.Strict(false).Strict(true) },
			empty: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWhere("users")
			tt.build(w)
			assert.Equal(t, tt.empty, w.IsEmpty())
		})
	}
}

// TestWhere_ImportCopiesContent verifies WhereRef merges filters, raw
// fragments, groups, and binds, and overwrites the target's strict flag.
func TestWhere_ImportCopiesContent(t *testing.T) {
	w := NewWhere("users").
		Filter("status", "active").
		Raw("deleted_at IS NULL").
		Strict(false)
	w.Group(true, func(g *FilterGroup) { g.Filter("role", "admin") })

	sq := NewSelect("users", nil, nil).WhereRef(w)

	assert.Equal(t,
		"SELECT * FROM users WHERE ((users.role = :role)) AND ((users.status = :status)) OR deleted_at IS NULL",
		sq.Build(),
	)
}

// TestWhere_ImportEmptyIsNoop verifies merging a structurally empty
// container changes nothing, strict flag included.
func TestWhere_ImportEmptyIsNoop(t *testing.T) {
	sq := NewSelect("users", nil, nil).
		Filter("a", 1).
		WhereRef(NewWhere("users"))

	assert.Equal(t, "SELECT * FROM users WHERE ((users.a = :a))", sq.Build())
	assert.True(t, sq.strict)
}

// TestWhere_ImportDeepCopies verifies the builder owns independent Bind
// copies: mutating the source after import does not leak through.
func TestWhere_ImportDeepCopies(t *testing.T) {
	w := NewWhere("users").Filter("status", "active")

	sq := NewSelect("users", nil, nil).WhereRef(w)
	require.Len(t, sq.binds, 1)

	// Mutate the source bind after the import.
	w.binds[0].value = "changed"

	assert.Equal(t, "active", sq.binds[0].Value())
}

// TestWhere_ImportOverwritesStrict verifies the imported strict flag
// replaces the target's, even when the source carries only that flag.
func TestWhere_ImportOverwritesStrict(t *testing.T) {
	// Non-empty purely by the strict flag (see TestWhere_IsEmpty).
	w := NewWhere("users").Strict(false)

	sq := NewSelect("users", nil, nil).
		Raw("a = 1").
		Raw("b = 2").
		WhereRef(w)

	assert.Equal(t, "SELECT * FROM users WHERE a = 1 OR b = 2", sq.Build())
}
