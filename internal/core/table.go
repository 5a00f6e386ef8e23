package core

import "database/sql"

// Table is the factory entry point: it constructs concrete builders bound
// to one table and one connection (or transaction). Builders never share
// mutable state; each call returns a fresh instance.
type Table struct {
	name string
	db   *DB
	tx   *sql.Tx
}

// Table returns a builder factory for the named table.
func (db *DB) Table(name string) *Table {
	return &Table{name: name, db: db}
}

// Select starts a SELECT over the table. No columns means "*".
func (t *Table) Select(columns ...string) *SelectQuery {
	sq := NewSelect(t.name, columns, t.db)
	sq.tx = t.tx
	return sq
}

// SelectFrom starts a SELECT over a derived table. The factory's own table
// name is unused here; the reference carries its alias.
func (t *Table) SelectFrom(from *InnerQuery, columns ...string) *SelectQuery {
	sq := NewSelectFrom(from, columns, t.db)
	sq.tx = t.tx
	return sq
}

// Insert starts an INSERT into the table.
func (t *Table) Insert() *InsertQuery {
	iq := NewInsert(t.name, t.db)
	iq.tx = t.tx
	return iq
}

// Replace starts a REPLACE into the table.
func (t *Table) Replace() *ReplaceQuery {
	rq := NewReplace(t.name, t.db)
	rq.tx = t.tx
	return rq
}

// Update starts an UPDATE of the table.
func (t *Table) Update() *UpdateQuery {
	uq := NewUpdate(t.name, t.db)
	uq.tx = t.tx
	return uq
}

// Delete starts a DELETE from the table.
func (t *Table) Delete() *DeleteQuery {
	dq := NewDelete(t.name, t.db)
	dq.tx = t.tx
	return dq
}
