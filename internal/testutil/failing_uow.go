package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"

	"github.com/alexanderramin/examplan/internal/db"
)

// FailOnNthExecUoW is a unit of work whose transaction fails the Nth write.
// Services that persist a plan plus its topics or a run plus its sessions use
// it to prove the whole batch rolls back when a later write breaks.
//
// Only ExecContext calls count, starting from 1. Reads pass through
// untouched.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int32
	Err    error
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	counted := &countingTx{DBTX: tx, failOn: u.FailOn, injected: u.Err}
	if fnErr := fn(ctx, counted); fnErr != nil {
		_ = tx.Rollback()
		return fnErr
	}
	return tx.Commit()
}

// countingTx tallies writes and substitutes the injected error when the
// configured call number comes up.
type countingTx struct {
	db.DBTX
	writes   atomic.Int32
	failOn   int32
	injected error
}

func (c *countingTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if c.writes.Add(1) == c.failOn {
		return nil, c.injected
	}
	return c.DBTX.ExecContext(ctx, query, args...)
}
