// Package query provides a fluent MySQL-style SQL query builder with named
// parameter binds, grouped filter composition, and a lightweight database
// access layer: SELECT/INSERT/UPDATE/DELETE/REPLACE builders, a reusable
// Where condition container, derived-table sub-queries, transactions, and a
// cron-style task scheduler. Logging and OpenTelemetry tracing are available
// out of the box.
package query

import (
	// Default driver; the generated SQL targets MySQL-style syntax.
	_ "github.com/go-sql-driver/mysql"

	"github.com/omegamvc/query/internal/core"
	"github.com/omegamvc/query/internal/logger"
	"github.com/omegamvc/query/internal/schedule"
	"github.com/omegamvc/query/internal/tracer"
)

type (
	// DB represents the database connection with logging and tracing capabilities.
	DB = core.DB
	// Option is a functional option for configuring DB.
	Option = core.Option
	// Tx represents a database transaction.
	Tx = core.Tx
	// Table is the factory entry point constructing builders bound to a connection.
	Table = core.Table
	// Row is one fetched row keyed by column name.
	Row = core.Row

	// Bind is a single named parameter binding.
	Bind = core.Bind
	// Where is a standalone, reusable condition container.
	Where = core.Where
	// FilterGroup collects the filter entries of one parenthesized group.
	FilterGroup = core.FilterGroup
	// InnerQuery is a plain table reference or a nested SELECT used as a derived table.
	InnerQuery = core.InnerQuery
	// Join describes one JOIN clause.
	Join = core.Join
	// SortOrder is an ORDER BY direction.
	SortOrder = core.SortOrder

	// SelectQuery builds a SELECT statement.
	SelectQuery = core.SelectQuery
	// InsertQuery builds an INSERT statement.
	InsertQuery = core.InsertQuery
	// ReplaceQuery builds a REPLACE statement.
	ReplaceQuery = core.ReplaceQuery
	// UpdateQuery builds an UPDATE statement.
	UpdateQuery = core.UpdateQuery
	// DeleteQuery builds a DELETE statement.
	DeleteQuery = core.DeleteQuery
	// RawQuery is the escape hatch for statements the builders do not cover.
	RawQuery = core.RawQuery

	// QueryEvent contains information about an executed query.
	QueryEvent = core.QueryEvent
	// QueryHook is a callback invoked after each query execution.
	QueryHook = core.QueryHook

	// Logger is the structured logging interface query execution reports to.
	Logger = logger.Logger
	// Tracer is the tracing interface query execution spans through.
	Tracer = tracer.Tracer

	// Schedule is a cron-style pool of scheduled events.
	Schedule = schedule.Schedule
	// ScheduleEvent is one scheduled pool entry.
	ScheduleEvent = schedule.Event
	// ScheduleOption is a functional option for configuring a Schedule.
	ScheduleOption = schedule.Option
	// TimeSpec is one minute-resolution match-alternative of a scheduled event.
	TimeSpec = schedule.TimeSpec
)

// Sort directions.
const (
	OrderAsc  = core.OrderAsc
	OrderDesc = core.OrderDesc
)

// AnyTime is the wildcard value for a TimeSpec field.
const AnyTime = schedule.Any

// Re-export core functions.
var (
	Open   = core.Open
	WrapDB = core.WrapDB

	WithLogger          = core.WithLogger
	WithTracer          = core.WithTracer
	WithQueryHook       = core.WithQueryHook
	WithSensitiveFields = core.WithSensitiveFields
	WithMaxOpenConns    = core.WithMaxOpenConns
	WithMaxIdleConns    = core.WithMaxIdleConns

	// Builder constructors
	NewSelect     = core.NewSelect
	NewSelectFrom = core.NewSelectFrom
	NewInsert     = core.NewInsert
	NewReplace    = core.NewReplace
	NewUpdate     = core.NewUpdate
	NewDelete     = core.NewDelete
	NewWhere      = core.NewWhere
	NewBind       = core.NewBind
	NewInnerQuery = core.NewInnerQuery
	TableRef      = core.TableRef

	// Join constructors
	InnerJoin    = core.InnerJoin
	LeftJoin     = core.LeftJoin
	RightJoin    = core.RightJoin
	FullJoin     = core.FullJoin
	InnerJoinSub = core.InnerJoinSub
	LeftJoinSub  = core.LeftJoinSub

	// Sentinel errors
	ErrNoRows      = core.ErrNoRows
	ErrTxDone      = core.ErrTxDone
	ErrMissingBind = core.ErrMissingBind

	// Logging and tracing adapters
	NewSlogAdapter = logger.NewSlogAdapter
	NewOtelTracer  = tracer.NewOtelTracer

	// Scheduler
	NewSchedule       = schedule.New
	WithScheduleLog   = schedule.WithLogger
	WithScheduleClock = schedule.WithClock
)
