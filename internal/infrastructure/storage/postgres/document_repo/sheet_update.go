package document_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"tutorcenter/internal/domain/documents/sheetupdate"
	"tutorcenter/internal/infrastructure/storage/postgres"
)

const sheetUpdatesTable = "sheet_updates"

var sheetUpdateCols = postgres.ExtractDBColumns[sheetupdate.Entry]()

// SheetUpdateRepo implements sheetupdate.Repository.
type SheetUpdateRepo struct {
	txManager *postgres.TxManager
	batch     *postgres.BatchExecutor
}

var _ sheetupdate.Repository = (*SheetUpdateRepo)(nil)

// NewSheetUpdateRepo creates a new sheet update repository.
func NewSheetUpdateRepo(txm *postgres.TxManager) *SheetUpdateRepo {
	return &SheetUpdateRepo{txManager: txm, batch: postgres.NewBatchExecutor(txm)}
}

// LatestDate returns the most recent entry date.
func (r *SheetUpdateRepo) LatestDate(ctx context.Context) (*time.Time, error) {
	var latest *time.Time
	err := r.txManager.GetQuerier(ctx).
		QueryRow(ctx, "SELECT MAX(date) FROM "+sheetUpdatesTable).
		Scan(&latest)
	if err != nil {
		return nil, fmt.Errorf("latest sheet update date: %w", err)
	}
	return latest, nil
}

func (r *SheetUpdateRepo) forDateQuery(date time.Time) squirrel.SelectBuilder {
	cols := append(postgres.Qualify("su", sheetUpdateCols),
		"sh.code AS sheet_code",
		"sh.total_pages",
		"sh.total_questions",
	)
	return postgres.Psql.
		Select(cols...).
		From(sheetUpdatesTable + " su").
		LeftJoin("sheets sh ON sh.id = su.sheet_id").
		Where(squirrel.Eq{"su.date": date})
}

// ForDate returns the entries recorded on date.
func (r *SheetUpdateRepo) ForDate(ctx context.Context, date time.Time) ([]*sheetupdate.EntryView, error) {
	sql, args, err := r.forDateQuery(date).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var views []*sheetupdate.EntryView
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &views, sql, args...); err != nil {
		return nil, fmt.Errorf("sheet updates for date: %w", err)
	}
	return views, nil
}

func (r *SheetUpdateRepo) upsertQuery(e *sheetupdate.Entry) (string, []any, error) {
	data := postgres.StructToMap(e)
	values := make([]any, len(sheetUpdateCols))
	for i, col := range sheetUpdateCols {
		values[i] = data[col]
	}
	return postgres.Psql.
		Insert(sheetUpdatesTable).
		Columns(sheetUpdateCols...).
		Values(values...).
		Suffix(`ON CONFLICT (class_id, subject_id, date) DO UPDATE SET
			sheet_id = EXCLUDED.sheet_id,
			page_taught_to = EXCLUDED.page_taught_to,
			question_taught_to = EXCLUDED.question_taught_to,
			last_teacher = EXCLUDED.last_teacher,
			updated_at = EXCLUDED.updated_at,
			updated_by = EXCLUDED.updated_by,
			version = sheet_updates.version + 1`).
		ToSql()
}

// Upsert writes the entries in one batch round-trip.
func (r *SheetUpdateRepo) Upsert(ctx context.Context, entries []*sheetupdate.Entry) error {
	queries := make([]postgres.BatchQuery, 0, len(entries))
	for _, e := range entries {
		sql, args, err := r.upsertQuery(e)
		if err != nil {
			return fmt.Errorf("build upsert: %w", err)
		}
		queries = append(queries, postgres.BatchQuery{SQL: sql, Args: args})
	}

	if err := r.batch.ExecuteBatch(ctx, queries); err != nil {
		return postgres.MapError(err, "sheet_update")
	}
	return nil
}
