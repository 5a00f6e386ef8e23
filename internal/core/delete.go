package core

import (
	"context"
	"database/sql"
)

// DeleteQuery builds a DELETE statement. Setting an alias rewrites the
// statement shape from "DELETE FROM t" to "DELETE a FROM t AS a", and joins
// and filters then reference the alias.
type DeleteQuery struct {
	condition
	db            *DB
	tx            *sql.Tx
	originalTable string
	alias         string
	joins         []string
}

// NewDelete creates a DELETE builder for the table.
func NewDelete(table string, db *DB) *DeleteQuery {
	return &DeleteQuery{condition: newCondition(table), db: db, originalTable: table}
}

// Alias sets the table alias. Filters added after this call qualify with the
// alias instead of the table name.
func (dq *DeleteQuery) Alias(alias string) *DeleteQuery {
	dq.alias = alias
	dq.condition.table = alias
	return dq
}

// Filter adds an equality WHERE filter.
func (dq *DeleteQuery) Filter(field string, value any) *DeleteQuery {
	dq.addFilter(field, value, "=", "")
	return dq
}

// Compare adds a WHERE filter with an explicit comparison operator.
func (dq *DeleteQuery) Compare(field, operator string, value any) *DeleteQuery {
	dq.addFilter(field, value, operator, "")
	return dq
}

// Raw appends an opaque WHERE fragment.
func (dq *DeleteQuery) Raw(fragment string) *DeleteQuery {
	dq.addRaw(fragment)
	return dq
}

// Strict selects the WHERE connective: AND when true, OR when false.
func (dq *DeleteQuery) Strict(strict bool) *DeleteQuery {
	dq.setStrict(strict)
	return dq
}

// Group appends a WHERE filter group with its own connective.
func (dq *DeleteQuery) Group(strict bool, fn func(*FilterGroup)) *DeleteQuery {
	dq.group(strict, fn)
	return dq
}

// WhereRef merges a standalone Where container.
func (dq *DeleteQuery) WhereRef(w *Where) *DeleteQuery {
	dq.importWhere(w)
	return dq
}

// Join attaches a join clause. Joins require an alias to be useful in MySQL
// multi-table DELETE syntax; the join's main side qualifies with whatever
// the statement currently references.
func (dq *DeleteQuery) Join(j *Join) *DeleteQuery {
	j.setMainTable(dq.condition.table)
	dq.joins = append(dq.joins, j.build())
	dq.binds = append(dq.binds, j.binds()...)
	return dq
}

// Build assembles the final DELETE statement.
func (dq *DeleteQuery) Build() string {
	var stmt string
	if dq.alias != "" {
		stmt = "DELETE " + dq.alias + " FROM " + dq.originalTable + " AS " + dq.alias
	} else {
		stmt = "DELETE FROM " + dq.originalTable
	}
	for _, join := range dq.joins {
		stmt += " " + join
	}
	if where := dq.whereClause(); where != "" {
		stmt += " " + where
	}
	return stmt
}

// Execute runs the statement; true only when at least one row was deleted.
func (dq *DeleteQuery) Execute(ctx context.Context) (bool, error) {
	result, err := dq.db.execute(ctx, dq.tx, dq.Build(), dq.binds)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// Reset restores all mutable builder state to defaults, keeping the table
// but clearing the alias.
func (dq *DeleteQuery) Reset() *DeleteQuery {
	if dq.alias != "" {
		dq.condition.table = dq.originalTable
		dq.alias = ""
	}
	dq.condition.reset()
	dq.joins = nil
	return dq
}
