package core

import (
	"context"
	"database/sql"
	"strings"
)

// UpdateQuery builds an UPDATE statement. SET assignments and WHERE filters
// share one bind list; the SET clause is derived from the binds that carry a
// column name, which only the ":bind_"-prefixed value binds do. WHERE binds
// keep the plain ":" prefix, so the two can never collide on placeholder.
type UpdateQuery struct {
	condition
	db *DB
	tx *sql.Tx
}

// NewUpdate creates an UPDATE builder for the table.
func NewUpdate(table string, db *DB) *UpdateQuery {
	return &UpdateQuery{condition: newCondition(table), db: db}
}

// Value registers one SET assignment.
func (uq *UpdateQuery) Value(column string, value any) *UpdateQuery {
	bind := NewBind(column, value).WithPrefix(":bind_").MarkAsColumn()
	uq.binds = append(uq.binds, bind)
	return uq
}

// Values registers every column of the map, keys sorted for deterministic
// SQL.
func (uq *UpdateQuery) Values(values map[string]any) *UpdateQuery {
	for _, col := range sortedKeys(values) {
		uq.Value(col, values[col])
	}
	return uq
}

// Filter adds an equality WHERE filter.
func (uq *UpdateQuery) Filter(field string, value any) *UpdateQuery {
	uq.addFilter(field, value, "=", "")
	return uq
}

// Compare adds a WHERE filter with an explicit comparison operator.
func (uq *UpdateQuery) Compare(field, operator string, value any) *UpdateQuery {
	uq.addFilter(field, value, operator, "")
	return uq
}

// Raw appends an opaque WHERE fragment.
func (uq *UpdateQuery) Raw(fragment string) *UpdateQuery {
	uq.addRaw(fragment)
	return uq
}

// Strict selects the WHERE connective: AND when true, OR when false.
func (uq *UpdateQuery) Strict(strict bool) *UpdateQuery {
	uq.setStrict(strict)
	return uq
}

// Group appends a WHERE filter group with its own connective.
func (uq *UpdateQuery) Group(strict bool, fn func(*FilterGroup)) *UpdateQuery {
	uq.group(strict, fn)
	return uq
}

// WhereRef merges a standalone Where container.
func (uq *UpdateQuery) WhereRef(w *Where) *UpdateQuery {
	uq.importWhere(w)
	return uq
}

// Build assembles the final UPDATE statement.
func (uq *UpdateQuery) Build() string {
	assignments := make([]string, 0, len(uq.binds))
	for _, b := range uq.binds {
		if b.ColumnName() == "" {
			continue
		}
		assignments = append(assignments, b.ColumnName()+" = "+b.Placeholder())
	}

	stmt := "UPDATE " + uq.table + " SET " + strings.Join(assignments, ", ")
	if where := uq.whereClause(); where != "" {
		stmt += " " + where
	}
	return stmt
}

// Execute runs the statement. True only when at least one row changed; an
// UPDATE that matched rows but wrote identical values reports false with a
// nil error.
func (uq *UpdateQuery) Execute(ctx context.Context) (bool, error) {
	result, err := uq.db.execute(ctx, uq.tx, uq.Build(), uq.binds)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// Reset restores all mutable builder state to defaults.
func (uq *UpdateQuery) Reset() *UpdateQuery {
	uq.condition.reset()
	return uq
}
