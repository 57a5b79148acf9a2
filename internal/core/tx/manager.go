// Package tx is the transaction contract domain services depend on. The
// pgx implementation is postgres.TxManager.
package tx

import "context"

// Manager runs fn in a transaction: commit when fn returns nil, rollback
// otherwise. A call made inside another transaction joins it.
type Manager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ReadOnlyManager can also open READ ONLY transactions.
type ReadOnlyManager interface {
	Manager
	ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}
