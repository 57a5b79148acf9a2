// Package document_repo stores enrollments with their installments,
// attendance and sheet updates.
package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"tutorcenter/internal/core/id"
	"tutorcenter/internal/domain/sessions"
	"tutorcenter/internal/infrastructure/storage/postgres"
)

// NewDocumentRows lists newest first and never rewrites created_at.
func NewDocumentRows[T any](txm *postgres.TxManager, table postgres.Table, newRow func() T) *postgres.Rows[T] {
	if table.DefaultOrder == "" {
		table.DefaultOrder = "created_at DESC"
	}
	table.Fixed = append(table.Fixed, "created_at")
	return postgres.NewRows(txm, table, newRow)
}

// usedSessionsQuery counts deducting attendance per enrollment.
func usedSessionsQuery(ids []id.ID) squirrel.SelectBuilder {
	return postgres.Psql.
		Select("enrollment_id", "COUNT(*) AS used").
		From("attendance").
		Where(squirrel.Eq{"enrollment_id": ids}).
		Where(squirrel.Eq{"status": sessions.DeductingStatuses()}).
		GroupBy("enrollment_id")
}

type usedRow struct {
	EnrollmentID id.ID `db:"enrollment_id"`
	Used         int   `db:"used"`
}

func usedSessions(ctx context.Context, q postgres.Querier, ids []id.ID) (map[id.ID]int, error) {
	out := make(map[id.ID]int, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	sql, args, err := usedSessionsQuery(ids).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build used sessions: %w", err)
	}
	var rows []usedRow
	if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("used sessions: %w", err)
	}
	for _, row := range rows {
		out[row.EnrollmentID] = row.Used
	}
	return out, nil
}
