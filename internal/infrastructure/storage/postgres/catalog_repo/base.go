// Package catalog_repo stores students, classes, subjects, sheets and the
// class-subject map.
package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"tutorcenter/internal/infrastructure/storage/postgres"
)

// BaseCatalogRepo is the table CRUD plus lookup by code.
type BaseCatalogRepo[T any] struct {
	*postgres.Rows[T]
}

// NewBaseCatalogRepo orders lists by name unless the table says otherwise.
func NewBaseCatalogRepo[T any](txm *postgres.TxManager, table postgres.Table, newRow func() T) *BaseCatalogRepo[T] {
	if table.DefaultOrder == "" {
		table.DefaultOrder = "name ASC"
	}
	return &BaseCatalogRepo[T]{Rows: postgres.NewRows(txm, table, newRow)}
}

// GetByCode matches inactive rows too.
func (r *BaseCatalogRepo[T]) GetByCode(ctx context.Context, code string) (T, error) {
	return r.Get(ctx, r.Select().Where(squirrel.Eq{"code": code}).Limit(1), code)
}
