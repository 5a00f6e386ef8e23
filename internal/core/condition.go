package core

import (
	"strconv"
	"strings"
)

// filterEntry is one field/operator/placeholder triple inside a filter set.
// An empty-string value is the "optional filter" sentinel: the entry stays
// registered but is dropped from the rendered clause.
type filterEntry struct {
	field    string
	value    any
	operator string
	bindName string // rendered placeholder, e.g. ":status"
}

// skipped reports whether the entry carries the empty-string sentinel.
func (f filterEntry) skipped() bool {
	s, ok := f.value.(string)
	return ok && s == ""
}

// filterGroup is an ordered set of filter entries joined by a single
// connective: AND when strict, OR otherwise.
type filterGroup struct {
	entries []filterEntry
	strict  bool
}

// render produces the group clause without its outer parentheses.
// Sentinel entries are dropped; surviving columns are qualified with the
// table or alias unless the field name already contains a dot.
func (g filterGroup) render(table string) string {
	parts := make([]string, 0, len(g.entries))
	for _, f := range g.entries {
		if f.skipped() {
			continue
		}
		parts = append(parts, "("+qualifyColumn(table, f.field)+" "+f.operator+" "+f.bindName+")")
	}
	return strings.Join(parts, connective(g.strict))
}

func qualifyColumn(table, field string) string {
	if table == "" || strings.Contains(field, ".") {
		return field
	}
	return table + "." + field
}

func connective(strict bool) string {
	if strict {
		return " AND "
	}
	return " OR "
}

// condition holds the shared WHERE-composition state embedded by every
// builder and by the standalone Where container: the current (ungrouped)
// filter set, the explicit filter groups, the raw WHERE fragments, the bind
// list, and the global strict flag.
//
// The table field is the qualification prefix for unqualified column names.
// A condition is single-use, mutated only by its owner on one call stack.
type condition struct {
	table    string
	binds    []*Bind
	filters  []filterEntry
	groups   []filterGroup
	rawWhere []string
	strict   bool
}

func newCondition(table string) condition {
	return condition{table: table, strict: true}
}

// addFilter registers a filter entry in the current set and a matching bind.
// A repeated field name overwrites the earlier entry in place (keeping its
// position) while the earlier bind stays in the bind list; stale binds are
// harmless because parameter resolution walks the generated SQL, not the
// bind list.
func (c *condition) addFilter(field string, value any, operator, bindName string) {
	if operator == "" {
		operator = "="
	}
	if bindName == "" {
		bindName = c.uniqueBindName(strings.ReplaceAll(field, ".", "__"))
	}

	bind := NewBind(bindName, value)
	c.binds = append(c.binds, bind)

	entry := filterEntry{
		field:    field,
		value:    value,
		operator: operator,
		bindName: bind.Placeholder(),
	}
	for i := range c.filters {
		if c.filters[i].field == field {
			c.filters[i] = entry
			return
		}
	}
	c.filters = append(c.filters, entry)
}

// uniqueBindName suffixes the candidate until no registered bind renders the
// same placeholder. Linear scan; filter counts are small.
func (c *condition) uniqueBindName(candidate string) string {
	name := candidate
	for i := 1; c.placeholderTaken(":" + name); i++ {
		name = candidate + "_" + strconv.Itoa(i)
	}
	return name
}

func (c *condition) placeholderTaken(placeholder string) bool {
	for _, b := range c.binds {
		if b.Placeholder() == placeholder {
			return true
		}
	}
	return false
}

// addRaw appends an opaque SQL boolean expression. The fragment is trusted
// as-is; malformed SQL fails at the database, not here.
func (c *condition) addRaw(fragment string) {
	c.rawWhere = append(c.rawWhere, fragment)
}

// setStrict selects AND (true) or OR (false) as the connective for the
// current ungrouped filter set, between raw fragments, and at the
// group/raw boundary.
func (c *condition) setStrict(strict bool) {
	c.strict = strict
}

// group opens a filter group with its own connective, independent of the
// builder's strict flag, and appends it on close. Group binds join the
// builder's bind list so placeholder uniqueness holds across the whole
// statement.
func (c *condition) group(strict bool, fn func(*FilterGroup)) {
	g := &FilterGroup{strict: strict, owner: c}
	fn(g)
	c.groups = append(c.groups, filterGroup{entries: g.entries, strict: strict})
}

// whereClause assembles the final WHERE clause, or "" when nothing was
// registered.
//
// Composition order is fixed: explicit groups first, then the current
// ungrouped set as an implicit trailing group using the strict flag at
// generation time. Groups always join each other with AND regardless of any
// group's own connective; raw fragments join each other and the grouped half
// using the global strict flag.
func (c *condition) whereClause() string {
	groups := c.groups
	if len(c.filters) > 0 {
		merged := make([]filterGroup, 0, len(c.groups)+1)
		merged = append(merged, c.groups...)
		merged = append(merged, filterGroup{entries: c.filters, strict: c.strict})
		groups = merged
	}

	clauses := make([]string, 0, len(groups))
	for _, g := range groups {
		if clause := g.render(c.table); clause != "" {
			clauses = append(clauses, "("+clause+")")
		}
	}
	grouped := strings.Join(clauses, " AND ")
	raw := strings.Join(c.rawWhere, connective(c.strict))

	switch {
	case grouped != "" && raw != "":
		return "WHERE " + grouped + connective(c.strict) + raw
	case raw != "":
		return "WHERE " + raw
	case grouped != "":
		return "WHERE " + grouped
	default:
		return ""
	}
}

// bindComponents decomposes the bind list into its three parallel outputs:
// placeholders in insertion order, values in insertion order, and the
// de-duplicated column list preserving first-seen order. Unnamed binds are
// excluded entirely.
func (c *condition) bindComponents() (names []string, values []any, columns []string) {
	for _, b := range c.binds {
		if !b.Bound() {
			continue
		}
		names = append(names, b.Placeholder())
		values = append(values, b.Value())
		if col := b.ColumnName(); col != "" && !containsString(columns, col) {
			columns = append(columns, col)
		}
	}
	return names, values, columns
}

// importWhere merges a standalone Where container into this condition:
// binds, raw fragments, filter entries, and groups are deep-copied, and the
// strict flag is overwritten with the imported one. A structurally empty
// source is a no-op.
func (c *condition) importWhere(w *Where) {
	if w == nil || w.IsEmpty() {
		return
	}
	c.binds = append(c.binds, cloneBinds(w.binds)...)
	c.rawWhere = append(c.rawWhere, w.rawWhere...)
	for _, entry := range w.filters {
		c.upsertFilter(entry)
	}
	for _, g := range w.groups {
		entries := make([]filterEntry, len(g.entries))
		copy(entries, g.entries)
		c.groups = append(c.groups, filterGroup{entries: entries, strict: g.strict})
	}
	c.strict = w.strict
}

func (c *condition) upsertFilter(entry filterEntry) {
	for i := range c.filters {
		if c.filters[i].field == entry.field {
			c.filters[i] = entry
			return
		}
	}
	c.filters = append(c.filters, entry)
}

// reset restores all mutable composition state to defaults. The table name
// is kept; it belongs to the builder, not to the accumulated conditions.
func (c *condition) reset() {
	c.binds = nil
	c.filters = nil
	c.groups = nil
	c.rawWhere = nil
	c.strict = true
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

// FilterGroup collects the entries of one parenthesized group. Binds created
// inside the group register with the owning builder immediately so that
// placeholder names stay unique across the statement.
type FilterGroup struct {
	strict  bool
	entries []filterEntry
	owner   *condition
}

// Filter adds an equality entry to the group.
func (g *FilterGroup) Filter(field string, value any) *FilterGroup {
	return g.Compare(field, "=", value)
}

// Compare adds an entry with an explicit comparison operator. The operator
// string is trusted as-is (LIKE, <>, REGEXP, ...).
func (g *FilterGroup) Compare(field, operator string, value any) *FilterGroup {
	bindName := g.owner.uniqueBindName(strings.ReplaceAll(field, ".", "__"))
	bind := NewBind(bindName, value)
	g.owner.binds = append(g.owner.binds, bind)

	entry := filterEntry{
		field:    field,
		value:    value,
		operator: operator,
		bindName: bind.Placeholder(),
	}
	for i := range g.entries {
		if g.entries[i].field == field {
			g.entries[i] = entry
			return g
		}
	}
	g.entries = append(g.entries, entry)
	return g
}
