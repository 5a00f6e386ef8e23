package core

import (
	"context"
	"database/sql"
	"regexp"
	"time"

	"github.com/omegamvc/query/internal/tracer"
)

// Row is one fetched row keyed by column name. Byte-slice column values are
// converted to strings; everything else is passed through as the driver
// reports it.
type Row map[string]any

// placeholderRegex matches named placeholders like :status or :bind_0_name.
// Resolution walks the generated SQL, so binds that no clause references are
// simply never sent.
var placeholderRegex = regexp.MustCompile(`:[A-Za-z_][A-Za-z0-9_]*`)

// resolveBinds converts named placeholders to positional "?" markers in
// order of appearance and collects the matching values. A placeholder with
// no bound Bind is an error; a later bind under the same placeholder wins,
// matching last-write semantics of repeated filters.
func resolveBinds(sqlText string, binds []*Bind) (string, []string, []any, error) {
	byPlaceholder := make(map[string]*Bind, len(binds))
	for _, b := range binds {
		if b.Bound() {
			byPlaceholder[b.Placeholder()] = b
		}
	}

	var (
		names   []string
		values  []any
		missing string
	)
	resolved := placeholderRegex.ReplaceAllStringFunc(sqlText, func(match string) string {
		b, ok := byPlaceholder[match]
		if !ok {
			if missing == "" {
				missing = match
			}
			return match
		}
		names = append(names, b.Name())
		values = append(values, b.Value())
		return "?"
	})

	if missing != "" {
		return "", nil, nil, WrapError(ErrMissingBind, missing)
	}
	return resolved, names, values, nil
}

// execer is the common surface of *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (db *DB) conn(tx *sql.Tx) execer {
	if tx != nil {
		return tx
	}
	return db.sqlDB
}

// finish logs the outcome, annotates the span, and dispatches the hook.
// Every execution path funnels through here exactly once.
func (db *DB) finish(ctx context.Context, span tracer.Span, sqlText string, names []string, values []any, start time.Time, rows int64, err error) {
	elapsed := time.Since(start)
	masked := db.sanitizer.MaskValues(names, values)

	if err != nil {
		db.logger.Error("query failed",
			"sql", sqlText,
			"params", db.sanitizer.FormatValues(masked),
			"duration_ms", elapsed.Milliseconds(),
			"database", db.driverName,
			"error", err,
		)
	} else {
		db.logger.Info("query executed",
			"sql", sqlText,
			"params", db.sanitizer.FormatValues(masked),
			"duration_ms", elapsed.Milliseconds(),
			"rows", rows,
			"database", db.driverName,
		)
	}

	if span != nil {
		tracer.AddQueryAttributes(span, &tracer.QueryMetadata{
			SQL:          sqlText,
			Args:         masked,
			Duration:     elapsed,
			RowsAffected: rows,
			Error:        err,
			Database:     db.driverName,
			Operation:    tracer.DetectOperation(sqlText),
		})
		span.End()
	}

	if db.queryHook != nil {
		db.queryHook(ctx, QueryEvent{
			SQL:          sqlText,
			Args:         masked,
			Duration:     elapsed,
			RowsAffected: rows,
			Error:        err,
			Operation:    tracer.DetectOperation(sqlText),
		})
	}
}

// execute runs a mutating statement and returns the driver result. Driver
// errors propagate unmodified beyond the context message; the builder layer
// never validates SQL.
func (db *DB) execute(ctx context.Context, tx *sql.Tx, sqlText string, binds []*Bind) (sql.Result, error) {
	ctx, span := db.tracer.StartSpan(ctx, "query.execute")
	start := time.Now()

	resolved, names, values, err := resolveBinds(sqlText, binds)
	if err != nil {
		db.finish(ctx, span, sqlText, names, values, start, 0, err)
		return nil, err
	}

	result, err := db.conn(tx).ExecContext(ctx, resolved, values...)
	var rows int64
	if result != nil {
		rows, _ = result.RowsAffected()
	}
	db.finish(ctx, span, resolved, names, values, start, rows, err)
	return result, err
}

// fetchAll runs a read statement and scans every row into a Row map.
func (db *DB) fetchAll(ctx context.Context, tx *sql.Tx, sqlText string, binds []*Bind) ([]Row, error) {
	ctx, span := db.tracer.StartSpan(ctx, "query.fetch")
	start := time.Now()

	resolved, names, values, err := resolveBinds(sqlText, binds)
	if err != nil {
		db.finish(ctx, span, sqlText, names, values, start, 0, err)
		return nil, err
	}

	rows, err := db.conn(tx).QueryContext(ctx, resolved, values...)
	if err != nil {
		db.finish(ctx, span, resolved, names, values, start, 0, err)
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	result, err := scanRows(rows)
	db.finish(ctx, span, resolved, names, values, start, int64(len(result)), err)
	return result, err
}

// fetchOne runs a read statement and returns the first row, or ErrNoRows.
func (db *DB) fetchOne(ctx context.Context, tx *sql.Tx, sqlText string, binds []*Bind) (Row, error) {
	all, err := db.fetchAll(ctx, tx, sqlText, binds)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, ErrNoRows
	}
	return all[0], nil
}

// scanRows reads every row into a column-keyed map.
func scanRows(rows *sql.Rows) ([]Row, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var result []Row
	for rows.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, err
		}

		row := make(Row, len(columns))
		for i, col := range columns {
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
			} else {
				row[col] = values[i]
			}
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// RawQuery is the escape hatch for statements the builders do not cover.
// Placeholders use the same :name syntax and resolve against explicit binds.
type RawQuery struct {
	db    *DB
	tx    *sql.Tx
	sql   string
	binds []*Bind
}

// NewQuery starts a raw statement.
func (db *DB) NewQuery(sqlText string) *RawQuery {
	return &RawQuery{db: db, sql: sqlText}
}

// Bind attaches one named value.
func (q *RawQuery) Bind(name string, value any) *RawQuery {
	q.binds = append(q.binds, NewBind(name, value))
	return q
}

// Execute runs the statement and reports whether any row was affected.
func (q *RawQuery) Execute(ctx context.Context) (bool, error) {
	result, err := q.db.execute(ctx, q.tx, q.sql, q.binds)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// All runs the statement and returns every row.
func (q *RawQuery) All(ctx context.Context) ([]Row, error) {
	return q.db.fetchAll(ctx, q.tx, q.sql, q.binds)
}

// One runs the statement and returns the first row, or ErrNoRows.
func (q *RawQuery) One(ctx context.Context) (Row, error) {
	return q.db.fetchOne(ctx, q.tx, q.sql, q.binds)
}
