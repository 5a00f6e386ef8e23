package core

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

// newTestDB wraps an in-memory SQLite handle. The pool is pinned to one
// connection because each :memory: connection is its own database.
func newTestDB(t *testing.T, opts ...Option) *DB {
	t.Helper()

	sqlDB, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	db := WrapDB(sqlDB, "sqlite", opts...)
	t.Cleanup(func() { _ = db.Close() })

	affected, err := db.NewQuery(
		"CREATE TABLE users (id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT, status TEXT)",
	).Execute(context.Background())
	require.NoError(t, err)
	// DDL affects no rows, so Execute reports false with a nil error.
	require.False(t, affected)

	return db
}

func seedUsers(t *testing.T, db *DB) {
	t.Helper()
	ok, err := db.Table("users").Insert().Rows([]map[string]any{
		{"name": "ada", "status": "active"},
		{"name": "grace", "status": "active"},
		{"name": "joan", "status": "banned"},
	}).Execute(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
}

func TestDB_InsertAndSelect(t *testing.T) {
	db := newTestDB(t)
	seedUsers(t, db)

	rows, err := db.Table("users").Select("name").
		Filter("status", "active").
		Order("name", OrderAsc).
		All(context.Background())

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "ada", rows[0]["name"])
	assert.Equal(t, "grace", rows[1]["name"])
}

func TestDB_InsertExecuteID(t *testing.T) {
	db := newTestDB(t)

	id, err := db.Table("users").Insert().
		Value("name", "ada").
		Value("status", "active").
		ExecuteID(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
}

func TestDB_OneReturnsErrNoRows(t *testing.T) {
	db := newTestDB(t)

	_, err := db.Table("users").Select().
		Filter("name", "nobody").
		One(context.Background())

	assert.ErrorIs(t, err, ErrNoRows)
}

func TestDB_UpdateReportsAffected(t *testing.T) {
	db := newTestDB(t)
	seedUsers(t, db)

	ok, err := db.Table("users").Update().
		Value("status", "archived").
		Filter("status", "active").
		Execute(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)

	// A statement that matches nothing succeeds but reports false.
	ok, err = db.Table("users").Update().
		Value("status", "archived").
		Filter("status", "missing").
		Execute(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDB_Delete(t *testing.T) {
	db := newTestDB(t)
	seedUsers(t, db)

	ok, err := db.Table("users").Delete().
		Filter("status", "banned").
		Execute(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)

	rows, err := db.Table("users").Select().All(context.Background())
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestDB_OptionalFilterMatchesEverything(t *testing.T) {
	db := newTestDB(t)
	seedUsers(t, db)

	// The empty-string value keeps the filter out of the statement, so the
	// query behaves as if it were never added.
	rows, err := db.Table("users").Select().
		Filter("status", "").
		All(context.Background())

	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestDB_RawQueryBinds(t *testing.T) {
	db := newTestDB(t)
	seedUsers(t, db)

	row, err := db.NewQuery("SELECT COUNT(*) AS n FROM users WHERE status = :status").
		Bind("status", "active").
		One(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(2), row["n"])
}

func TestDB_MissingBindFailsExecution(t *testing.T) {
	db := newTestDB(t)

	_, err := db.NewQuery("SELECT * FROM users WHERE status = :status").
		All(context.Background())

	assert.ErrorIs(t, err, ErrMissingBind)
}

func TestDB_TransactionCommit(t *testing.T) {
	db := newTestDB(t)

	err := db.Transaction(context.Background(), func(tx *Tx) error {
		ok, err := tx.Table("users").Insert().
			Value("name", "ada").
			Value("status", "active").
			Execute(context.Background())
		if err != nil {
			return err
		}
		require.True(t, ok)
		return nil
	})
	require.NoError(t, err)

	rows, err := db.Table("users").Select().All(context.Background())
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestDB_TransactionRollback(t *testing.T) {
	db := newTestDB(t)
	boom := errors.New("boom")

	err := db.Transaction(context.Background(), func(tx *Tx) error {
		_, err := tx.Table("users").Insert().
			Value("name", "ada").
			Value("status", "active").
			Execute(context.Background())
		require.NoError(t, err)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	rows, err := db.Table("users").Select().All(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestDB_TransactionDoubleFinish(t *testing.T) {
	db := newTestDB(t)

	tx, err := db.Begin(context.Background())
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	assert.ErrorIs(t, tx.Commit(), ErrTxDone)
	assert.ErrorIs(t, tx.Rollback(), ErrTxDone)
}

func TestDB_QueryHook(t *testing.T) {
	var events []QueryEvent
	db := newTestDB(t, WithQueryHook(func(_ context.Context, e QueryEvent) {
		events = append(events, e)
	}))

	_, err := db.Table("users").Insert().
		Value("name", "ada").
		Value("status", "active").
		Execute(context.Background())
	require.NoError(t, err)

	// The CREATE TABLE from setup fires the hook too; inspect the last event.
	require.NotEmpty(t, events)
	last := events[len(events)-1]
	assert.Equal(t, "INSERT", last.Operation)
	assert.Contains(t, last.SQL, "INSERT INTO users")
	assert.Equal(t, []any{"ada", "active"}, last.Args)
	assert.NoError(t, last.Error)
	assert.Equal(t, int64(1), last.RowsAffected)
}

func TestDB_SensitiveFieldsMaskedInHook(t *testing.T) {
	var events []QueryEvent
	db := newTestDB(t, WithQueryHook(func(_ context.Context, e QueryEvent) {
		events = append(events, e)
	}))

	_, err := db.NewQuery("SELECT :password AS p").
		Bind("password", "hunter2").
		One(context.Background())
	require.NoError(t, err)

	last := events[len(events)-1]
	assert.Equal(t, []any{"***REDACTED***"}, last.Args)
}

func TestDB_Ping(t *testing.T) {
	db := newTestDB(t)
	assert.NoError(t, db.Ping(context.Background()))
}
