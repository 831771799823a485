package database

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

type txKey struct{}

type boundTx struct {
	tx    *gorm.DB
	depth int
}

func txFrom(ctx context.Context) (*gorm.DB, bool) {
	b, ok := ctx.Value(txKey{}).(boundTx)
	if !ok {
		return nil, false
	}
	return b.tx, true
}

// InTransaction reports whether ctx carries a bound transaction.
func InTransaction(ctx context.Context) bool {
	_, ok := txFrom(ctx)
	return ok
}

// Transaction wraps a GORM transaction with commit/rollback semantics.
type Transaction struct {
	tx       *gorm.DB
	finished bool
}

// NewTransaction starts a new database transaction on the pool, ignoring any
// transaction already bound to ctx.
func NewTransaction(ctx context.Context, db Database) (*Transaction, error) {
	tx := db.GORM().WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("begin transaction: %w", tx.Error)
	}
	return &Transaction{tx: tx}, nil
}

// Session returns the transaction session for executing queries.
func (t *Transaction) Session() *gorm.DB {
	return t.tx
}

// Bind returns a context whose Database.Session calls run inside this transaction.
func (t *Transaction) Bind(ctx context.Context) context.Context {
	return context.WithValue(ctx, txKey{}, boundTx{tx: t.tx})
}

// Finished reports whether the transaction was committed or rolled back.
func (t *Transaction) Finished() bool {
	return t.finished
}

// Commit commits the transaction.
func (t *Transaction) Commit() error {
	if t.finished {
		return nil
	}
	if err := t.tx.Commit().Error; err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	t.finished = true
	return nil
}

// Rollback rolls back the transaction if not already finished.
func (t *Transaction) Rollback() error {
	if t.finished {
		return nil
	}
	if err := t.tx.Rollback().Error; err != nil {
		return fmt.Errorf("rollback transaction: %w", err)
	}
	t.finished = true
	return nil
}

// WithTransaction executes fn atomically, committing on success or rolling
// back on error. The context passed to fn carries the transaction, so stores
// called from fn share it. When ctx is already inside a transaction, fn runs
// within a savepoint of that transaction instead.
func WithTransaction(ctx context.Context, db Database, fn func(ctx context.Context) error) error {
	_, err := WithTransactionResult(ctx, db, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}

// WithTransactionResult executes fn atomically, returning the result on success.
func WithTransactionResult[T any](ctx context.Context, db Database, fn func(ctx context.Context) (T, error)) (T, error) {
	if outer, ok := ctx.Value(txKey{}).(boundTx); ok {
		return withSavepoint(ctx, outer, fn)
	}

	var result T

	txn, err := NewTransaction(ctx, db)
	if err != nil {
		return result, err
	}

	defer func() {
		if !txn.finished {
			_ = txn.Rollback()
		}
	}()

	result, err = fn(txn.Bind(ctx))
	if err != nil {
		return result, err
	}

	if err := txn.Commit(); err != nil {
		return result, err
	}

	return result, nil
}

func withSavepoint[T any](ctx context.Context, outer boundTx, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	inner := boundTx{tx: outer.tx, depth: outer.depth + 1}
	name := fmt.Sprintf("sp_%d", inner.depth)

	if err := outer.tx.WithContext(ctx).SavePoint(name).Error; err != nil {
		return zero, fmt.Errorf("create savepoint: %w", err)
	}

	result, err := fn(context.WithValue(ctx, txKey{}, inner))
	if err != nil {
		if rbErr := outer.tx.WithContext(ctx).RollbackTo(name).Error; rbErr != nil {
			return zero, fmt.Errorf("rollback to savepoint: %w (after %w)", rbErr, err)
		}
		return zero, err
	}
	return result, nil
}
