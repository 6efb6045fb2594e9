package db_test

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/examplan/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUnitOfWork(t *testing.T) *db.SQLiteUnitOfWork {
	t.Helper()
	conn, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	// A scratch table keeps these tests independent of the planner schema.
	_, err = conn.Exec(`CREATE TABLE scratch (id TEXT PRIMARY KEY, note TEXT)`)
	require.NoError(t, err)

	return db.NewSQLiteUnitOfWork(conn)
}

func noteExists(t *testing.T, uow *db.SQLiteUnitOfWork, id string) bool {
	t.Helper()
	var exists bool
	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		row := tx.QueryRowContext(ctx, `SELECT COUNT(*) > 0 FROM scratch WHERE id = ?`, id)
		return row.Scan(&exists)
	})
	require.NoError(t, err)
	return exists
}

func TestWithinTx_CommitsOnSuccess(t *testing.T) {
	uow := newUnitOfWork(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO scratch (id, note) VALUES (?, ?)`, "a", "kept")
		return err
	})
	require.NoError(t, err)

	assert.True(t, noteExists(t, uow, "a"), "committed row must be visible afterwards")
}

func TestWithinTx_RollsBackOnError(t *testing.T) {
	uow := newUnitOfWork(t)
	boom := errors.New("write rejected")

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if _, err := tx.ExecContext(ctx, `INSERT INTO scratch (id, note) VALUES (?, ?)`, "b", "doomed"); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom, "the callback's error comes back unchanged")

	assert.False(t, noteExists(t, uow, "b"), "failed transaction leaves no rows behind")
}

func TestWithinTx_RollsBackOnPanic(t *testing.T) {
	uow := newUnitOfWork(t)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_, _ = tx.ExecContext(ctx, `INSERT INTO scratch (id, note) VALUES (?, ?)`, "c", "doomed")
			panic("mid-transaction panic")
		})
	})

	assert.False(t, noteExists(t, uow, "c"), "panic rolls the write back")
}
