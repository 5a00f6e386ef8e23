// Package core implements the query builder: the condition-composition
// engine, the concrete SELECT/INSERT/UPDATE/DELETE/REPLACE builders, and the
// connection wrapper that resolves named binds and runs the statements.
package core

import (
	"context"
	"database/sql"

	"github.com/omegamvc/query/internal/logger"
	"github.com/omegamvc/query/internal/tracer"
)

// DB wraps a database/sql connection with named-bind resolution, logging,
// tracing, and hook dispatch. The generated SQL targets MySQL-style syntax.
type DB struct {
	sqlDB      *sql.DB
	driverName string
	logger     logger.Logger
	sanitizer  *logger.Sanitizer
	tracer     tracer.Tracer
	queryHook  QueryHook
}

// Option is a functional option for configuring DB.
type Option func(*DB)

// WithLogger sets the structured logger used for query execution logs.
func WithLogger(l logger.Logger) Option {
	return func(db *DB) {
		db.logger = l
	}
}

// WithTracer sets the tracer used to span query execution.
func WithTracer(t tracer.Tracer) Option {
	return func(db *DB) {
		db.tracer = t
	}
}

// WithQueryHook sets a callback invoked after every query execution.
func WithQueryHook(hook QueryHook) Option {
	return func(db *DB) {
		db.queryHook = hook
	}
}

// WithSensitiveFields overrides the bind names whose values are masked
// before logging.
func WithSensitiveFields(fields ...string) Option {
	return func(db *DB) {
		db.sanitizer = logger.NewSanitizer(fields)
	}
}

// WithMaxOpenConns sets the maximum number of open connections.
func WithMaxOpenConns(n int) Option {
	return func(db *DB) {
		db.sqlDB.SetMaxOpenConns(n)
	}
}

// WithMaxIdleConns sets the maximum number of idle connections.
func WithMaxIdleConns(n int) Option {
	return func(db *DB) {
		db.sqlDB.SetMaxIdleConns(n)
	}
}

// Open connects through the named database/sql driver. A bad DSN or failed
// driver initialization surfaces here, wrapped; it is fatal and not retried.
func Open(driverName, dsn string, opts ...Option) (*DB, error) {
	sqlDB, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, WrapError(err, "open connection")
	}
	return WrapDB(sqlDB, driverName, opts...), nil
}

// WrapDB adopts an existing database/sql handle. Used directly by tests and
// by callers that manage their own pool settings.
func WrapDB(sqlDB *sql.DB, driverName string, opts ...Option) *DB {
	db := &DB{
		sqlDB:      sqlDB,
		driverName: driverName,
		logger:     &logger.NoopLogger{},
		sanitizer:  logger.NewSanitizer(nil),
		tracer:     &tracer.NoopTracer{},
	}
	for _, opt := range opts {
		opt(db)
	}
	return db
}

// Ping verifies the connection.
func (db *DB) Ping(ctx context.Context) error {
	return db.sqlDB.PingContext(ctx)
}

// Close releases the underlying connection pool.
func (db *DB) Close() error {
	return db.sqlDB.Close()
}

// Tx is an open transaction. Builders obtained through it execute on the
// transaction connection.
type Tx struct {
	tx   *sql.Tx
	db   *DB
	done bool
}

// Begin starts a transaction.
func (db *DB) Begin(ctx context.Context) (*Tx, error) {
	tx, err := db.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return nil, WrapError(err, "begin transaction")
	}
	return &Tx{tx: tx, db: db}, nil
}

// Commit commits the transaction.
func (tx *Tx) Commit() error {
	if tx.done {
		return ErrTxDone
	}
	tx.done = true
	return tx.tx.Commit()
}

// Rollback rolls back the transaction.
func (tx *Tx) Rollback() error {
	if tx.done {
		return ErrTxDone
	}
	tx.done = true
	return tx.tx.Rollback()
}

// Table returns a builder factory bound to this transaction.
func (tx *Tx) Table(name string) *Table {
	return &Table{name: name, db: tx.db, tx: tx.tx}
}

// NewQuery starts a raw statement on this transaction.
func (tx *Tx) NewQuery(sqlText string) *RawQuery {
	return &RawQuery{db: tx.db, tx: tx.tx, sql: sqlText}
}

// Transaction runs fn inside a transaction: begin, invoke, commit on nil
// error, roll back otherwise (and on panic). No savepoints, no nesting.
func (db *DB) Transaction(ctx context.Context, fn func(tx *Tx) error) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return WrapError(err, "rollback failed: "+rbErr.Error())
		}
		return err
	}
	return tx.Commit()
}
