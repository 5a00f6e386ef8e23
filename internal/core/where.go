package core

// Where is a standalone, reusable condition container. It accumulates
// filters, raw fragments, and binds exactly like a builder does, and can be
// merged into any builder through WhereRef, which deep-copies its contents
// and overwrites the target's strict flag.
type Where struct {
	condition
}

// NewWhere creates an empty condition container. The table name is the
// qualification prefix applied to unqualified columns once the container is
// merged.
func NewWhere(table string) *Where {
	return &Where{condition: newCondition(table)}
}

// Filter adds an equality filter to the current set.
func (w *Where) Filter(field string, value any) *Where {
	w.addFilter(field, value, "=", "")
	return w
}

// Compare adds a filter with an explicit comparison operator.
func (w *Where) Compare(field, operator string, value any) *Where {
	w.addFilter(field, value, operator, "")
	return w
}

// Raw appends an opaque SQL boolean expression.
func (w *Where) Raw(fragment string) *Where {
	w.addRaw(fragment)
	return w
}

// Strict selects the connective used for the current filter set and raw
// fragments: AND when true, OR when false.
func (w *Where) Strict(strict bool) *Where {
	w.setStrict(strict)
	return w
}

// Group appends a filter group with its own connective.
func (w *Where) Group(strict bool, fn func(*FilterGroup)) *Where {
	w.group(strict, fn)
	return w
}

// IsEmpty reports whether the container is structurally at its defaults:
// no binds, no raw fragments, no filters, and strict still true.
//
// Note the strict flag is part of the check: a container that only had
// Strict(false) called on it is content-empty but NOT considered empty here,
// so merging it still overwrites the target's connective. Callers rely on
// this boundary.
func (w *Where) IsEmpty() bool {
	return len(w.binds) == 0 &&
		len(w.rawWhere) == 0 &&
		len(w.filters) == 0 &&
		w.strict
}
