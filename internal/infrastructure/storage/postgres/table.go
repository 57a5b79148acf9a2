package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"tutorcenter/internal/core/apperror"
	"tutorcenter/internal/core/id"
	"tutorcenter/internal/domain"
)

// Table describes an entity table for Rows.
type Table struct {
	Name   string
	Entity string // used in NOT_FOUND and conflict errors

	Columns    []string
	SearchCols []string
	// DefaultOrder applies when a list request has no orderBy.
	DefaultOrder string
	// Fixed columns are written on insert only.
	Fixed []string
}

// Rows is the CRUD shared by catalog and document repositories. T is a
// pointer to a struct with db tags; newRow allocates one to scan into.
type Rows[T any] struct {
	Table
	txm    *TxManager
	newRow func() T
}

func NewRows[T any](txm *TxManager, t Table, newRow func() T) *Rows[T] {
	return &Rows[T]{Table: t, txm: txm, newRow: newRow}
}

// Querier is the transaction in ctx, or the pool.
func (r *Rows[T]) Querier(ctx context.Context) Querier {
	return r.txm.GetQuerier(ctx)
}

// Select starts a query over the table's columns.
func (r *Rows[T]) Select() squirrel.SelectBuilder {
	return Psql.Select(r.Columns...).From(r.Name)
}

func (r *Rows[T]) Create(ctx context.Context, row T) error {
	data := StructToMap(row)
	set := make(map[string]any, len(r.Columns))
	for _, c := range r.Columns {
		if v, ok := data[c]; ok {
			set[c] = v
		}
	}
	if len(set) == 0 {
		return fmt.Errorf("%s: nothing to insert", r.Name)
	}

	sql, args, err := Psql.Insert(r.Name).SetMap(set).ToSql()
	if err != nil {
		return fmt.Errorf("build %s insert: %w", r.Name, err)
	}
	if _, err := r.Querier(ctx).Exec(ctx, sql, args...); err != nil {
		return MapError(err, r.Entity)
	}
	return nil
}

type versioned interface {
	SetVersion(v int)
}

// Update writes row if its version still matches, then advances the
// version on row. A mismatch is CONCURRENT_MODIFICATION.
func (r *Rows[T]) Update(ctx context.Context, row T) error {
	sql, args, version, err := UpdateSQL(r.Name, r.Columns, row, r.Fixed...)
	if err != nil {
		return err
	}
	tag, err := r.Querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return MapError(err, r.Entity)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewConcurrentModification(r.Entity, StructToMap(row)["id"])
	}
	if v, ok := any(row).(versioned); ok {
		v.SetVersion(version + 1)
	}
	return nil
}

func (r *Rows[T]) GetByID(ctx context.Context, key id.ID) (T, error) {
	return r.Get(ctx, r.Select().Where(squirrel.Eq{"id": key}), key.String())
}

// GetForUpdate locks the row until the surrounding transaction ends.
func (r *Rows[T]) GetForUpdate(ctx context.Context, key id.ID) (T, error) {
	return r.Get(ctx, r.Select().Where(squirrel.Eq{"id": key}).Suffix("FOR UPDATE"), key.String())
}

// Get scans the single row q returns. No row is NOT_FOUND reported
// under key.
func (r *Rows[T]) Get(ctx context.Context, q squirrel.SelectBuilder, key string) (T, error) {
	row := r.newRow()
	sql, args, err := q.ToSql()
	if err != nil {
		return row, fmt.Errorf("build %s query: %w", r.Name, err)
	}
	if err := pgxscan.Get(ctx, r.Querier(ctx), row, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return row, apperror.NewNotFound(r.Entity, key)
		}
		return row, fmt.Errorf("get %s: %w", r.Name, err)
	}
	return row, nil
}

// ListQuery applies the filter's conditions, leaving order and paging.
func (r *Rows[T]) ListQuery(f domain.ListFilter) (squirrel.SelectBuilder, error) {
	q := Search(r.Select(), r.SearchCols, f.Search)
	if f.IsActive != nil {
		q = q.Where(squirrel.Eq{"is_active": *f.IsActive})
	}
	if len(f.IDs) > 0 {
		q = q.Where(squirrel.Eq{"id": f.IDs})
	}
	return ApplyFilters(q, r.Columns, f.AdvancedFilters)
}

// List pages through the table. TotalCount ignores limit and offset; id
// breaks ties so pages are stable.
func (r *Rows[T]) List(ctx context.Context, f domain.ListFilter) (domain.ListResult[T], error) {
	out := domain.ListResult[T]{Limit: f.Limit, Offset: f.Offset}

	q, err := r.ListQuery(f)
	if err != nil {
		return out, err
	}
	order, err := OrderBy(f.OrderBy, r.Columns, r.DefaultOrder)
	if err != nil {
		return out, err
	}

	countSQL, countArgs, err := Psql.Select("COUNT(*)").FromSelect(q, "sub").ToSql()
	if err != nil {
		return out, fmt.Errorf("build %s count: %w", r.Name, err)
	}
	db := r.Querier(ctx)
	if err := db.QueryRow(ctx, countSQL, countArgs...).Scan(&out.TotalCount); err != nil {
		return out, fmt.Errorf("count %s: %w", r.Name, err)
	}

	q = q.OrderBy(order, "id")
	if f.Limit > 0 {
		q = q.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		q = q.Offset(uint64(f.Offset))
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return out, fmt.Errorf("build %s list: %w", r.Name, err)
	}
	if err := pgxscan.Select(ctx, db, &out.Items, sql, args...); err != nil {
		return out, fmt.Errorf("list %s: %w", r.Name, err)
	}
	return out, nil
}

func (r *Rows[T]) Exists(ctx context.Context, key id.ID) (bool, error) {
	sql, args, err := Psql.Select("1").From(r.Name).Where(squirrel.Eq{"id": key}).Limit(1).ToSql()
	if err != nil {
		return false, fmt.Errorf("build %s exists: %w", r.Name, err)
	}
	var one int
	err = r.Querier(ctx).QueryRow(ctx, sql, args...).Scan(&one)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("%s exists: %w", r.Name, err)
	}
	return true, nil
}

// Delete removes the row. Rows other tables still reference come back
// as CONFLICT through MapError.
func (r *Rows[T]) Delete(ctx context.Context, key id.ID) error {
	sql, args, err := Psql.Delete(r.Name).Where(squirrel.Eq{"id": key}).ToSql()
	if err != nil {
		return fmt.Errorf("build %s delete: %w", r.Name, err)
	}
	tag, err := r.Querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return MapError(err, r.Entity)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound(r.Entity, key.String())
	}
	return nil
}
