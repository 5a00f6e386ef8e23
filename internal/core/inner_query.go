package core

// InnerQuery is a table reference for the FROM clause and for joins: either
// a plain table name or a nested SELECT used as a derived table under an
// alias. Exactly one of the two holds.
type InnerQuery struct {
	query *SelectQuery
	table string
	alias string
}

// TableRef wraps a plain table name.
func TableRef(table string) *InnerQuery {
	return &InnerQuery{table: table}
}

// NewInnerQuery wraps a nested SELECT as a derived table with the given
// alias. The sub-query's binds are inherited by whichever builder adopts
// this reference.
func NewInnerQuery(sub *SelectQuery, alias string) *InnerQuery {
	return &InnerQuery{query: sub, alias: alias}
}

// IsSubQuery reports whether the reference wraps a nested SELECT.
func (iq *InnerQuery) IsSubQuery() bool { return iq.query != nil }

// Alias returns the name other clauses use to reference this table: the
// alias for a derived table, the table name otherwise.
func (iq *InnerQuery) Alias() string {
	if iq.IsSubQuery() {
		return iq.alias
	}
	return iq.table
}

// String renders the FROM-clause form of the reference.
func (iq *InnerQuery) String() string {
	if iq.IsSubQuery() {
		return "(" + iq.query.Build() + ") AS " + iq.alias
	}
	return iq.table
}

// Binds returns an independent copy of the nested SELECT's binds, or nil for
// a plain table reference. Adopting builders call this once at construction;
// the copies are theirs alone afterward.
func (iq *InnerQuery) Binds() []*Bind {
	if !iq.IsSubQuery() {
		return nil
	}
	return cloneBinds(iq.query.binds)
}
