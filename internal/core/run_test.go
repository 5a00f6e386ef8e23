package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestResolveBinds_OrderFollowsSQL verifies values come out in SQL
// appearance order, not registration order.
func TestResolveBinds_OrderFollowsSQL(t *testing.T) {
	binds := []*Bind{
		NewBind("b", 2),
		NewBind("a", 1),
	}

	resolved, names, values, err := resolveBinds("SELECT * FROM t WHERE a = :a AND b = :b", binds)

	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM t WHERE a = ? AND b = ?", resolved)
	assert.Equal(t, []string{"a", "b"}, names)
	assert.Equal(t, []any{1, 2}, values)
}

// TestResolveBinds_RepeatedPlaceholder verifies a placeholder used twice in
// the SQL resolves to two positional arguments.
func TestResolveBinds_RepeatedPlaceholder(t *testing.T) {
	binds := []*Bind{NewBind("v", 7)}

	resolved, _, values, err := resolveBinds("SELECT * FROM t WHERE a = :v OR b = :v", binds)

	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM t WHERE a = ? OR b = ?", resolved)
	assert.Equal(t, []any{7, 7}, values)
}

// TestResolveBinds_StaleBindsAreInert verifies binds no clause references
// are silently dropped; repeated-filter leftovers never reach the driver.
func TestResolveBinds_StaleBindsAreInert(t *testing.T) {
	binds := []*Bind{
		NewBind("status", "active"),
		NewBind("status_1", "banned"),
	}

	resolved, names, values, err := resolveBinds("SELECT * FROM t WHERE status = :status_1", binds)

	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM t WHERE status = ?", resolved)
	assert.Equal(t, []string{"status_1"}, names)
	assert.Equal(t, []any{"banned"}, values)
}

// TestResolveBinds_LastWriteWins verifies a later bind under the same
// placeholder shadows the earlier one.
func TestResolveBinds_LastWriteWins(t *testing.T) {
	binds := []*Bind{
		NewBind("status", "old"),
		NewBind("status", "new"),
	}

	_, _, values, err := resolveBinds("SELECT * FROM t WHERE status = :status", binds)

	require.NoError(t, err)
	assert.Equal(t, []any{"new"}, values)
}

// TestResolveBinds_MissingBind verifies an unresolvable placeholder fails
// with the sentinel error naming the placeholder.
func TestResolveBinds_MissingBind(t *testing.T) {
	_, _, _, err := resolveBinds("SELECT * FROM t WHERE a = :a", nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingBind)
	assert.Contains(t, err.Error(), ":a")
}

// TestResolveBinds_UnboundBindIgnored verifies a nameless bind never
// participates in resolution.
func TestResolveBinds_UnboundBindIgnored(t *testing.T) {
	binds := []*Bind{
		NewBind("", "ghost"),
		NewBind("a", 1),
	}

	_, names, _, err := resolveBinds("SELECT * FROM t WHERE a = :a", binds)

	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, names)
}

// TestResolveBinds_NoPlaceholders verifies placeholder-free SQL passes
// through untouched.
func TestResolveBinds_NoPlaceholders(t *testing.T) {
	resolved, names, values, err := resolveBinds("SELECT 1", nil)

	require.NoError(t, err)
	assert.Equal(t, "SELECT 1", resolved)
	assert.Empty(t, names)
	assert.Empty(t, values)
}
