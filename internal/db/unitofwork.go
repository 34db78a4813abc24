package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// UnitOfWork runs fn inside a transaction. The tx handed to fn is used to
// build tx-scoped repositories.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error
}

// SQLUnitOfWork implements UnitOfWork with database/sql transactions.
type SQLUnitOfWork struct {
	db   *sql.DB
	opts *sql.TxOptions
}

type UnitOfWorkOption func(*SQLUnitOfWork)

// WithIsolation sets the isolation level of every transaction. SQLite
// serializes writers on its single connection and should keep the default.
func WithIsolation(level sql.IsolationLevel) UnitOfWorkOption {
	return func(u *SQLUnitOfWork) {
		u.opts = &sql.TxOptions{Isolation: level}
	}
}

func NewSQLUnitOfWork(db *sql.DB, opts ...UnitOfWorkOption) *SQLUnitOfWork {
	u := &SQLUnitOfWork{db: db}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// NewUnitOfWorkForDriver picks the isolation level suited to driver.
// Postgres runs at repeatable read so a surfacing pass sees one snapshot of
// the pending rows it flips.
func NewUnitOfWorkForDriver(db *sql.DB, driver string) *SQLUnitOfWork {
	if driver == DriverPostgres {
		return NewSQLUnitOfWork(db, WithIsolation(sql.LevelRepeatableRead))
	}
	return NewSQLUnitOfWork(db)
}

func (u *SQLUnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error {
	tx, err := u.db.BeginTx(ctx, u.opts)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, fmt.Errorf("rolling back: %w", rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
