package core

// Bind is a single named parameter binding: a bare name, the bound value,
// a placeholder prefix, and an optional owning column.
//
// The rendered placeholder is prefix+name, e.g. ":status" for WHERE filters
// or ":bind_status" for INSERT/UPDATE value assignments. The prefix split is
// what keeps SET-clause binds and WHERE-clause binds from colliding on the
// same column name.
type Bind struct {
	name       string
	value      any
	columnName string
	prefix     string
}

// NewBind creates a binding with the default ":" placeholder prefix.
func NewBind(name string, value any) *Bind {
	return &Bind{
		name:   name,
		value:  value,
		prefix: ":",
	}
}

// WithPrefix overrides the placeholder prefix (the prefix includes the
// leading colon, e.g. ":bind_" or ":bind_0_").
func (b *Bind) WithPrefix(prefix string) *Bind {
	b.prefix = prefix
	return b
}

// MarkAsColumn records that this bind represents an assignable column of the
// same name. UPDATE and INSERT derive their column lists from marked binds.
func (b *Bind) MarkAsColumn() *Bind {
	b.columnName = b.name
	return b
}

// Name returns the bare bind name without prefix.
func (b *Bind) Name() string { return b.name }

// Value returns the bound value.
func (b *Bind) Value() any { return b.value }

// ColumnName returns the owning column, or "" when the bind is a plain
// placeholder.
func (b *Bind) ColumnName() string { return b.columnName }

// Placeholder returns the prefixed placeholder as it appears in SQL.
func (b *Bind) Placeholder() string { return b.prefix + b.name }

// Bound reports whether the bind carries a name. Unnamed binds are never
// sent to the underlying statement.
func (b *Bind) Bound() bool { return b.name != "" }

// clone returns an independent copy. Used by WhereRef and sub-query bind
// inheritance so that no two builders alias the same Bind.
func (b *Bind) clone() *Bind {
	c := *b
	return &c
}

func cloneBinds(binds []*Bind) []*Bind {
	if len(binds) == 0 {
		return nil
	}
	out := make([]*Bind, len(binds))
	for i, b := range binds {
		out[i] = b.clone()
	}
	return out
}
