package core

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
)

// SortOrder is an ORDER BY direction.
type SortOrder string

// Sort directions.
const (
	OrderAsc  SortOrder = "ASC"
	OrderDesc SortOrder = "DESC"
)

type orderEntry struct {
	column    string
	direction SortOrder
}

// SelectQuery builds a SELECT statement: column list, FROM table or derived
// table, joins, the composed WHERE clause, GROUP BY, ORDER BY (insertion
// order), and the three LIMIT/OFFSET modes.
//
// A SelectQuery is built on one call stack, executed, and discarded; it is
// not safe for concurrent mutation.
type SelectQuery struct {
	condition
	db      *DB
	tx      *sql.Tx // nil outside transactions
	from    *InnerQuery
	columns []string
	joins   []string
	groupBy []string
	orders  []orderEntry

	limitStart  int
	limitEnd    int
	limitOffset int
}

// NewSelect creates a SELECT builder over a plain table.
func NewSelect(table string, columns []string, db *DB) *SelectQuery {
	return NewSelectFrom(TableRef(table), columns, db)
}

// NewSelectFrom creates a SELECT builder over a table reference. When the
// reference is a derived table, its binds are inherited immediately, before
// any filter call registers new ones.
func NewSelectFrom(from *InnerQuery, columns []string, db *DB) *SelectQuery {
	sq := &SelectQuery{
		condition: newCondition(from.Alias()),
		db:        db,
		from:      from,
		columns:   columns,
	}
	sq.binds = from.Binds()
	return sq
}

// Filter adds an equality filter to the current set. An empty-string value
// keeps the entry registered but excludes it from the generated WHERE (the
// optional-filter pattern).
func (sq *SelectQuery) Filter(field string, value any) *SelectQuery {
	sq.addFilter(field, value, "=", "")
	return sq
}

// Compare adds a filter with an explicit comparison operator. The operator
// is trusted as-is: =, !=, <, <=, >, >=, LIKE, REGEXP, ...
func (sq *SelectQuery) Compare(field, operator string, value any) *SelectQuery {
	sq.addFilter(field, value, operator, "")
	return sq
}

// Like adds a LIKE filter.
func (sq *SelectQuery) Like(field string, pattern any) *SelectQuery {
	return sq.Compare(field, "LIKE", pattern)
}

// In adds an IN filter over the given values. Each value gets its own
// numbered bind; an empty value list is a no-op.
func (sq *SelectQuery) In(field string, values ...any) *SelectQuery {
	if len(values) == 0 {
		return sq
	}
	placeholders := make([]string, len(values))
	base := strings.ReplaceAll(field, ".", "__")
	for i, v := range values {
		name := sq.uniqueBindName(base + "_" + strconv.Itoa(i))
		bind := NewBind(name, v)
		sq.binds = append(sq.binds, bind)
		placeholders[i] = bind.Placeholder()
	}
	sq.addRaw("(" + qualifyColumn(sq.table, field) + " IN (" + strings.Join(placeholders, ", ") + "))")
	return sq
}

// Between adds a BETWEEN filter with two numbered binds.
func (sq *SelectQuery) Between(field string, low, high any) *SelectQuery {
	base := strings.ReplaceAll(field, ".", "__")
	lowBind := NewBind(sq.uniqueBindName(base+"_start"), low)
	sq.binds = append(sq.binds, lowBind)
	highBind := NewBind(sq.uniqueBindName(base+"_end"), high)
	sq.binds = append(sq.binds, highBind)
	sq.addRaw("(" + qualifyColumn(sq.table, field) + " BETWEEN " + lowBind.Placeholder() + " AND " + highBind.Placeholder() + ")")
	return sq
}

// Raw appends an opaque SQL boolean expression to the WHERE composition.
func (sq *SelectQuery) Raw(fragment string) *SelectQuery {
	sq.addRaw(fragment)
	return sq
}

// Strict selects the connective for the current filter set, between raw
// fragments, and at the group/raw boundary: AND when true, OR when false.
func (sq *SelectQuery) Strict(strict bool) *SelectQuery {
	sq.setStrict(strict)
	return sq
}

// Group appends a filter group with its own connective.
func (sq *SelectQuery) Group(strict bool, fn func(*FilterGroup)) *SelectQuery {
	sq.group(strict, fn)
	return sq
}

// AndGroup appends a group whose entries join with AND.
func (sq *SelectQuery) AndGroup(fn func(*FilterGroup)) *SelectQuery {
	return sq.Group(true, fn)
}

// OrGroup appends a group whose entries join with OR.
func (sq *SelectQuery) OrGroup(fn func(*FilterGroup)) *SelectQuery {
	return sq.Group(false, fn)
}

// WhereRef merges a standalone Where container: deep copy of its binds, raw
// fragments, filters and groups, and an overwrite of the strict flag. A
// structurally empty container is a no-op.
func (sq *SelectQuery) WhereRef(w *Where) *SelectQuery {
	sq.importWhere(w)
	return sq
}

// Join attaches a join clause. The join's main side is qualified with this
// builder's table or alias; a derived-table join contributes its binds here.
func (sq *SelectQuery) Join(j *Join) *SelectQuery {
	j.setMainTable(sq.table)
	sq.joins = append(sq.joins, j.build())
	sq.binds = append(sq.binds, j.binds()...)
	return sq
}

// GroupBy appends GROUP BY columns, qualified unless already dotted.
func (sq *SelectQuery) GroupBy(columns ...string) *SelectQuery {
	for _, col := range columns {
		sq.groupBy = append(sq.groupBy, qualifyColumn(sq.table, col))
	}
	return sq
}

// Order appends an ORDER BY column; insertion order is SQL order. Ordering
// the same column twice keeps the first position with the new direction.
func (sq *SelectQuery) Order(column string, direction SortOrder) *SelectQuery {
	qualified := qualifyColumn(sq.table, column)
	for i := range sq.orders {
		if sq.orders[i].column == qualified {
			sq.orders[i].direction = direction
			return sq
		}
	}
	sq.orders = append(sq.orders, orderEntry{column: qualified, direction: direction})
	return sq
}

// Limit sets the two LIMIT bounds. With only end set the statement renders
// "LIMIT end"; with both set it renders the MySQL two-argument
// "LIMIT start, end" form, which is not the OFFSET semantic.
func (sq *SelectQuery) Limit(start, end int) *SelectQuery {
	sq.limitStart = start
	sq.limitEnd = end
	return sq
}

// LimitStart sets only the first LIMIT bound.
func (sq *SelectQuery) LimitStart(start int) *SelectQuery {
	sq.limitStart = start
	return sq
}

// LimitEnd sets only the second LIMIT bound.
func (sq *SelectQuery) LimitEnd(end int) *SelectQuery {
	sq.limitEnd = end
	return sq
}

// Offset sets the OFFSET used by the "LIMIT start OFFSET offset" mode,
// active when start is set and end is not.
func (sq *SelectQuery) Offset(offset int) *SelectQuery {
	sq.limitOffset = offset
	return sq
}

// limitClause renders the three LIMIT/OFFSET modes. Mixing modes silently
// produces the two-argument form; callers pick one mode.
func (sq *SelectQuery) limitClause() string {
	switch {
	case sq.limitStart > 0 && sq.limitEnd > 0:
		return "LIMIT " + strconv.Itoa(sq.limitStart) + ", " + strconv.Itoa(sq.limitEnd)
	case sq.limitEnd > 0:
		return "LIMIT " + strconv.Itoa(sq.limitEnd)
	case sq.limitStart > 0 && sq.limitOffset > 0:
		return "LIMIT " + strconv.Itoa(sq.limitStart) + " OFFSET " + strconv.Itoa(sq.limitOffset)
	default:
		return ""
	}
}

// Build assembles the final SQL string in fixed clause order.
func (sq *SelectQuery) Build() string {
	columns := "*"
	if len(sq.columns) > 0 {
		columns = strings.Join(sq.columns, ", ")
	}

	parts := []string{"SELECT " + columns + " FROM " + sq.from.String()}
	parts = append(parts, sq.joins...)
	if where := sq.whereClause(); where != "" {
		parts = append(parts, where)
	}
	if len(sq.groupBy) > 0 {
		parts = append(parts, "GROUP BY "+strings.Join(sq.groupBy, ", "))
	}
	if len(sq.orders) > 0 {
		orders := make([]string, len(sq.orders))
		for i, o := range sq.orders {
			orders[i] = o.column + " " + string(o.direction)
		}
		parts = append(parts, "ORDER BY "+strings.Join(orders, ", "))
	}
	if limit := sq.limitClause(); limit != "" {
		parts = append(parts, limit)
	}

	return strings.Join(parts, " ")
}

// All runs the query and returns every row.
func (sq *SelectQuery) All(ctx context.Context) ([]Row, error) {
	return sq.db.fetchAll(ctx, sq.tx, sq.Build(), sq.binds)
}

// One runs the query and returns the first row, or ErrNoRows.
func (sq *SelectQuery) One(ctx context.Context) (Row, error) {
	return sq.db.fetchOne(ctx, sq.tx, sq.Build(), sq.binds)
}

// Reset restores all mutable builder state to defaults, keeping the
// connection and table reference.
func (sq *SelectQuery) Reset() *SelectQuery {
	sq.condition.reset()
	sq.joins = nil
	sq.groupBy = nil
	sq.orders = nil
	sq.limitStart = 0
	sq.limitEnd = 0
	sq.limitOffset = 0
	return sq
}
