package testutil

import (
	"context"
	"database/sql"
	"sync/atomic"

	"github.com/alexanderramin/scoutline/internal/db"
)

// FailOnNthExec wraps a DBTX and injects Err on the Nth ExecContext call.
// Calls are counted starting at 1; reads pass through uncounted. This lets
// tests fail a single insert in the middle of a batch.
type FailOnNthExec struct {
	db.DBTX
	FailOn int32
	Err    error

	count atomic.Int32
}

func (f *FailOnNthExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	n := f.count.Add(1)
	if n == f.FailOn {
		return nil, f.Err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}

// FailingQueries wraps a DBTX so that every read fails: QueryContext returns
// Err and QueryRowContext yields a row whose Scan reports context.Canceled.
// Writes pass through.
type FailingQueries struct {
	db.DBTX
	Err error
}

func (f *FailingQueries) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return nil, f.Err
}

func (f *FailingQueries) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	return f.DBTX.QueryRowContext(cancelled, query, args...)
}

// FailingTxUoW wraps a UnitOfWork so the tx handed to fn fails its FailOn-th
// write with Err. The surrounding transaction rolls back as usual.
type FailingTxUoW struct {
	Inner  db.UnitOfWork
	FailOn int32
	Err    error
}

func (u *FailingTxUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	return u.Inner.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &FailOnNthExec{DBTX: tx, FailOn: u.FailOn, Err: u.Err})
	})
}
