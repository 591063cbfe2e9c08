package transaction

import (
	"context"

	"gorm.io/gorm"
)

type TransactionContextKey struct{}

func WithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, TransactionContextKey{}, tx)
}

type Database struct {
	db *gorm.DB
}

func (t *Database) GetTx(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(TransactionContextKey{}).(*gorm.DB); ok {
		return tx
	}
	return t.db
}

// RunInTransaction executes fn inside a database transaction carried on the
// context. Repositories resolve the transaction handle via GetTx, so all
// calls made within fn share one atomic unit. If the context already carries
// a transaction, fn joins it instead of opening a nested one.
func (t *Database) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(TransactionContextKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(WithTx(ctx, tx))
	})
}

func NewDatabase(db *gorm.DB) *Database {
	return &Database{db}
}
