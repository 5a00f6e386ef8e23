package core

import "strings"

// Join describes one JOIN clause: the join kind, the referenced table (or
// derived table), and the column comparisons forming the ON condition.
//
// The main-table side of each comparison is filled in by the builder that
// adopts the join, through the mainTable setter below. That explicit wiring
// replaces any need for a join to reach into another builder's internals.
type Join struct {
	kind      string
	ref       *InnerQuery
	mainTable string
	ons       []joinComparison
}

type joinComparison struct {
	mainColumn string
	refColumn  string
}

// InnerJoin starts an INNER JOIN against the named table.
func InnerJoin(table string) *Join { return newJoin("INNER JOIN", TableRef(table)) }

// LeftJoin starts a LEFT JOIN against the named table.
func LeftJoin(table string) *Join { return newJoin("LEFT JOIN", TableRef(table)) }

// RightJoin starts a RIGHT JOIN against the named table.
func RightJoin(table string) *Join { return newJoin("RIGHT JOIN", TableRef(table)) }

// FullJoin starts a FULL OUTER JOIN against the named table.
func FullJoin(table string) *Join { return newJoin("FULL OUTER JOIN", TableRef(table)) }

// InnerJoinSub starts an INNER JOIN against a derived table. The sub-query's
// binds flow into the adopting builder when the join is attached.
func InnerJoinSub(sub *InnerQuery) *Join { return newJoin("INNER JOIN", sub) }

// LeftJoinSub starts a LEFT JOIN against a derived table.
func LeftJoinSub(sub *InnerQuery) *Join { return newJoin("LEFT JOIN", sub) }

func newJoin(kind string, ref *InnerQuery) *Join {
	return &Join{kind: kind, ref: ref}
}

// On adds a column comparison to the ON condition: main.mainColumn =
// ref.refColumn. Multiple comparisons join with AND.
func (j *Join) On(mainColumn, refColumn string) *Join {
	j.ons = append(j.ons, joinComparison{mainColumn: mainColumn, refColumn: refColumn})
	return j
}

// setMainTable records the adopting builder's table or alias, used as the
// qualification prefix for the main side of each comparison.
func (j *Join) setMainTable(table string) {
	j.mainTable = table
}

// binds returns an independent copy of the derived table's binds, nil for a
// plain table join.
func (j *Join) binds() []*Bind {
	return j.ref.Binds()
}

// build renders the clause, e.g.
// "INNER JOIN orders ON users.id = orders.user_id".
func (j *Join) build() string {
	conditions := make([]string, 0, len(j.ons))
	for _, on := range j.ons {
		conditions = append(conditions,
			j.mainTable+"."+on.mainColumn+" = "+j.ref.Alias()+"."+on.refColumn)
	}
	return j.kind + " " + j.ref.String() + " ON " + strings.Join(conditions, " AND ")
}
