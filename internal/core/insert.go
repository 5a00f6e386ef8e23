package core

import (
	"context"
	"database/sql"
	"sort"
	"strconv"
	"strings"
)

type duplicateEntry struct {
	column string
	expr   string
}

// InsertQuery builds an INSERT statement. Single-row values register binds
// under the table-wide ":bind_" prefix; Rows registers per-row
// ":bind_<row>_" prefixes, enabling true multi-row VALUES tuples. The
// column list and tuple chunking are both derived from the bind list.
type InsertQuery struct {
	db         *DB
	tx         *sql.Tx
	table      string
	binds      []*Bind
	duplicates []duplicateEntry
}

// NewInsert creates an INSERT builder for the table.
func NewInsert(table string, db *DB) *InsertQuery {
	return &InsertQuery{db: db, table: table}
}

// Value registers one column value with the table-wide bind prefix.
func (iq *InsertQuery) Value(column string, value any) *InsertQuery {
	bind := NewBind(column, value).WithPrefix(":bind_").MarkAsColumn()
	iq.binds = append(iq.binds, bind)
	return iq
}

// Values registers every column of the map. Keys are sorted so the generated
// SQL is deterministic.
func (iq *InsertQuery) Values(values map[string]any) *InsertQuery {
	for _, col := range sortedKeys(values) {
		iq.Value(col, values[col])
	}
	return iq
}

// Rows registers multiple rows for a multi-row INSERT. Each row's binds get
// a per-row prefix so tuple chunking can rebuild the
// "(v1, v2), (v3, v4)" syntax at build time. Rows are expected to share one
// column set; keys are sorted per row.
func (iq *InsertQuery) Rows(rows []map[string]any) *InsertQuery {
	offset := iq.rowCount()
	for i, row := range rows {
		prefix := ":bind_" + strconv.Itoa(offset+i) + "_"
		for _, col := range sortedKeys(row) {
			bind := NewBind(col, row[col]).WithPrefix(prefix).MarkAsColumn()
			iq.binds = append(iq.binds, bind)
		}
	}
	return iq
}

// rowCount derives how many rows are registered from the bind count and the
// distinct column count.
func (iq *InsertQuery) rowCount() int {
	columns := iq.columnList()
	if len(columns) == 0 {
		return 0
	}
	return len(iq.binds) / len(columns)
}

// OnDuplicate registers an ON DUPLICATE KEY UPDATE entry for the column.
// Without an explicit expression the assignment defaults to VALUES(column).
func (iq *InsertQuery) OnDuplicate(column string, expr ...string) *InsertQuery {
	assignment := "VALUES(" + column + ")"
	if len(expr) > 0 && expr[0] != "" {
		assignment = expr[0]
	}
	iq.duplicates = append(iq.duplicates, duplicateEntry{column: column, expr: assignment})
	return iq
}

func (iq *InsertQuery) columnList() []string {
	var columns []string
	for _, b := range iq.binds {
		if col := b.ColumnName(); col != "" && !containsString(columns, col) {
			columns = append(columns, col)
		}
	}
	return columns
}

// valueTuples chunks the flattened placeholder list into row-sized groups.
// Chunk size is the distinct column count, which rebuilds the per-row tuple
// boundaries regardless of how many rows were registered.
func (iq *InsertQuery) valueTuples() []string {
	columns := iq.columnList()
	if len(columns) == 0 {
		return nil
	}

	placeholders := make([]string, 0, len(iq.binds))
	for _, b := range iq.binds {
		if b.Bound() {
			placeholders = append(placeholders, b.Placeholder())
		}
	}

	tuples := make([]string, 0, len(placeholders)/len(columns)+1)
	for start := 0; start < len(placeholders); start += len(columns) {
		end := start + len(columns)
		if end > len(placeholders) {
			end = len(placeholders)
		}
		tuples = append(tuples, "("+strings.Join(placeholders[start:end], ", ")+")")
	}
	return tuples
}

// Build assembles the final INSERT statement.
func (iq *InsertQuery) Build() string {
	columns := iq.columnList()
	stmt := "INSERT INTO " + iq.table +
		" (" + strings.Join(columns, ", ") + ")" +
		" VALUES " + strings.Join(iq.valueTuples(), ", ")

	if len(iq.duplicates) > 0 {
		assignments := make([]string, len(iq.duplicates))
		for i, d := range iq.duplicates {
			assignments[i] = d.column + " = " + d.expr
		}
		stmt += " ON DUPLICATE KEY UPDATE " + strings.Join(assignments, ", ")
	}

	return stmt
}

// Execute runs the statement. It returns true only when at least one row was
// affected; a statement that succeeded but touched nothing reports false
// with a nil error.
func (iq *InsertQuery) Execute(ctx context.Context) (bool, error) {
	result, err := iq.db.execute(ctx, iq.tx, iq.Build(), iq.binds)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// ExecuteID runs the statement and returns the auto-increment ID the driver
// reports for the inserted row.
func (iq *InsertQuery) ExecuteID(ctx context.Context) (int64, error) {
	result, err := iq.db.execute(ctx, iq.tx, iq.Build(), iq.binds)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// Reset restores all mutable builder state to defaults.
func (iq *InsertQuery) Reset() *InsertQuery {
	iq.binds = nil
	iq.duplicates = nil
	return iq
}

// sortedKeys returns map keys in sorted order for deterministic SQL
// generation.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
