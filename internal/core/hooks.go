package core

import (
	"context"
	"time"
)

// QueryEvent contains information about an executed query. It is passed to
// QueryHook callbacks for logging, metrics, or tracing. Args hold the values
// after sensitive-field masking.
type QueryEvent struct {
	// SQL is the executed SQL with placeholders already positional
	SQL string
	// Args are the masked parameter values in placeholder order
	Args []any
	// Duration is how long the query took to execute
	Duration time.Duration
	// RowsAffected is the affected count for mutations, fetched count for reads
	RowsAffected int64
	// Error is any error that occurred during query execution (nil on success)
	Error error
	// Operation is the SQL operation type (SELECT, INSERT, UPDATE, DELETE, REPLACE, UNKNOWN)
	Operation string
}

// QueryHook is a callback function invoked after each query execution.
//
// Example:
//
//	db, _ := query.Open("mysql", dsn,
//	    query.WithQueryHook(func(ctx context.Context, e query.QueryEvent) {
//	        slog.Info("query", "sql", e.SQL, "duration", e.Duration, "err", e.Error)
//	    }))
type QueryHook func(ctx context.Context, event QueryEvent)
