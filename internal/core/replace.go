package core

import (
	"context"
	"strings"
)

// ReplaceQuery reuses the INSERT bind registration (Value, Values, Rows) but
// emits a REPLACE INTO statement. ON DUPLICATE entries are ignored; REPLACE
// already deletes the conflicting row.
type ReplaceQuery struct {
	InsertQuery
}

// NewReplace creates a REPLACE builder for the table.
func NewReplace(table string, db *DB) *ReplaceQuery {
	return &ReplaceQuery{InsertQuery: InsertQuery{db: db, table: table}}
}

// Value registers one column value with the table-wide bind prefix.
func (rq *ReplaceQuery) Value(column string, value any) *ReplaceQuery {
	rq.InsertQuery.Value(column, value)
	return rq
}

// Values registers every column of the map in sorted key order.
func (rq *ReplaceQuery) Values(values map[string]any) *ReplaceQuery {
	rq.InsertQuery.Values(values)
	return rq
}

// Rows registers multiple rows with per-row bind prefixes.
func (rq *ReplaceQuery) Rows(rows []map[string]any) *ReplaceQuery {
	rq.InsertQuery.Rows(rows)
	return rq
}

// Reset restores all mutable builder state to defaults.
func (rq *ReplaceQuery) Reset() *ReplaceQuery {
	rq.InsertQuery.Reset()
	return rq
}

// Build assembles the final REPLACE statement.
func (rq *ReplaceQuery) Build() string {
	return "REPLACE INTO " + rq.table +
		" (" + strings.Join(rq.columnList(), ", ") + ")" +
		" VALUES " + strings.Join(rq.valueTuples(), ", ")
}

// Execute runs the statement; true only when at least one row was affected.
func (rq *ReplaceQuery) Execute(ctx context.Context) (bool, error) {
	result, err := rq.db.execute(ctx, rq.tx, rq.Build(), rq.binds)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
