// Package register_repo provides PostgreSQL implementations for register repositories.
package register_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"tutorcenter/internal/core/apperror"
	"tutorcenter/internal/core/id"
	"tutorcenter/internal/domain/registers/sheetstock"
	"tutorcenter/internal/infrastructure/storage/postgres"
)

const sheetInventoryTable = "sheet_inventory"

var stockCols = postgres.ExtractDBColumns[sheetstock.Item]()

// SheetStockRepo implements sheetstock.Repository.
type SheetStockRepo struct {
	txManager *postgres.TxManager
	copier    *postgres.BatchInserter
	builder   squirrel.StatementBuilderType
}

var _ sheetstock.Repository = (*SheetStockRepo)(nil)

// NewSheetStockRepo creates a new sheet inventory repository.
func NewSheetStockRepo(txm *postgres.TxManager) *SheetStockRepo {
	return &SheetStockRepo{
		txManager: txm,
		copier:    postgres.NewBatchInserter(txm),
		builder:   postgres.Psql,
	}
}

func (r *SheetStockRepo) missingQuery() squirrel.SelectBuilder {
	return r.builder.
		Select("sh.id").
		From("sheets sh").
		LeftJoin(sheetInventoryTable + " si ON si.sheet_id = sh.id").
		Where("sh.is_active AND si.id IS NULL").
		OrderBy("sh.code")
}

// MissingSheetIDs lists active sheets without a stock row.
func (r *SheetStockRepo) MissingSheetIDs(ctx context.Context) ([]id.ID, error) {
	sql, args, err := r.missingQuery().ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var ids []id.ID
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &ids, sql, args...); err != nil {
		return nil, fmt.Errorf("missing sheet ids: %w", err)
	}
	return ids, nil
}

// CreateMany inserts new rows through COPY. It must run in a transaction.
func (r *SheetStockRepo) CreateMany(ctx context.Context, items []*sheetstock.Item) (int64, error) {
	rows := make([][]any, 0, len(items))
	for _, it := range items {
		data := postgres.StructToMap(it)
		row := make([]any, len(stockCols))
		for i, col := range stockCols {
			row[i] = data[col]
		}
		rows = append(rows, row)
	}
	return r.copier.CopyFromSlice(ctx, sheetInventoryTable, stockCols, rows)
}

// GetForUpdateBySheet locks the stock row of a sheet.
func (r *SheetStockRepo) GetForUpdateBySheet(ctx context.Context, sheetID id.ID) (*sheetstock.Item, error) {
	sql, args, err := r.builder.
		Select(stockCols...).
		From(sheetInventoryTable).
		Where(squirrel.Eq{"sheet_id": sheetID}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var it sheetstock.Item
	if err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), &it, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("sheet_inventory", sheetID.String())
		}
		return nil, fmt.Errorf("get sheet inventory: %w", err)
	}
	return &it, nil
}

// Update writes quantity and finish state with optimistic locking.
func (r *SheetStockRepo) Update(ctx context.Context, it *sheetstock.Item) error {
	sql, args, err := r.updateQuery(it).ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "sheet_inventory")
	}
	if result.RowsAffected() == 0 {
		return apperror.NewConcurrentModification("sheet_inventory", it.ID)
	}
	it.SetVersion(it.Version + 1)
	return nil
}

func (r *SheetStockRepo) updateQuery(it *sheetstock.Item) squirrel.UpdateBuilder {
	return r.builder.
		Update(sheetInventoryTable).
		Set("quantity", it.Quantity).
		Set("is_finished", it.IsFinished).
		Set("finished_at", it.FinishedAt).
		Set("updated_at", it.UpdatedAt).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": it.ID}).
		Where(squirrel.Eq{"version": it.Version})
}

func (r *SheetStockRepo) viewQuery(finished bool) squirrel.SelectBuilder {
	cols := append(postgres.Qualify("si", stockCols),
		"sh.code AS sheet_code",
		"sh.title AS sheet_title",
		"COALESCE(sub.name, '') AS subject_name",
	)
	q := r.builder.
		Select(cols...).
		From(sheetInventoryTable + " si").
		Join("sheets sh ON sh.id = si.sheet_id").
		LeftJoin("subjects sub ON sub.id = sh.subject_id").
		Where(squirrel.Eq{"si.is_finished": finished}).
		OrderBy("sh.code")
	if !finished {
		q = q.Where("sh.is_active")
	}
	return q
}

func (r *SheetStockRepo) list(ctx context.Context, finished bool) ([]*sheetstock.View, error) {
	sql, args, err := r.viewQuery(finished).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var views []*sheetstock.View
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &views, sql, args...); err != nil {
		return nil, fmt.Errorf("list sheet inventory: %w", err)
	}
	return views, nil
}

// ListActive returns unfinished rows of active sheets.
func (r *SheetStockRepo) ListActive(ctx context.Context) ([]*sheetstock.View, error) {
	return r.list(ctx, false)
}

// ListFinished returns finished rows.
func (r *SheetStockRepo) ListFinished(ctx context.Context) ([]*sheetstock.View, error) {
	return r.list(ctx, true)
}
