package document_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"tutorcenter/internal/core/id"
	"tutorcenter/internal/domain/documents/attendance"
	"tutorcenter/internal/domain/sessions"
	"tutorcenter/internal/infrastructure/storage/postgres"
)

const attendanceTable = "attendance"

var attendanceCols = postgres.ExtractDBColumns[attendance.Record]()

// AttendanceRepo implements attendance.Repository.
type AttendanceRepo struct {
	txManager *postgres.TxManager
}

var _ attendance.Repository = (*AttendanceRepo)(nil)

// NewAttendanceRepo creates a new attendance repository.
func NewAttendanceRepo(txm *postgres.TxManager) *AttendanceRepo {
	return &AttendanceRepo{txManager: txm}
}

func (r *AttendanceRepo) rosterQuery(classID id.ID) squirrel.SelectBuilder {
	return postgres.Psql.
		Select("e.id AS enrollment_id", "e.student_id", "e.sessions_total").
		From("enrollments e").
		Join("students s ON s.id = e.student_id").
		Join("tutoring_classes c ON c.id = e.class_id").
		Where(squirrel.Eq{"e.class_id": classID}).
		Where("e.is_active AND s.is_active AND c.is_active").
		OrderBy("e.created_at", "e.id")
}

// ActiveRoster lists the class's active enrollments of active students.
func (r *AttendanceRepo) ActiveRoster(ctx context.Context, classID id.ID) ([]attendance.RosterEntry, error) {
	sql, args, err := r.rosterQuery(classID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var roster []attendance.RosterEntry
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &roster, sql, args...); err != nil {
		return nil, fmt.Errorf("active roster: %w", err)
	}
	return roster, nil
}

// upsertQuery inserts all records in one statement. A repeated submit for
// the same (student, enrollment, date) replaces status and checked_at and
// keeps the original row id.
func (r *AttendanceRepo) upsertQuery(records []*attendance.Record) squirrel.InsertBuilder {
	q := postgres.Psql.
		Insert(attendanceTable).
		Columns(attendanceCols...)
	for _, rec := range records {
		data := postgres.StructToMap(rec)
		values := make([]any, len(attendanceCols))
		for i, col := range attendanceCols {
			values[i] = data[col]
		}
		q = q.Values(values...)
	}
	return q.Suffix(`ON CONFLICT (student_id, enrollment_id, date) DO UPDATE SET
		status = EXCLUDED.status,
		checked_at = EXCLUDED.checked_at,
		updated_at = EXCLUDED.updated_at,
		updated_by = EXCLUDED.updated_by,
		version = attendance.version + 1`)
}

// Upsert writes the records keyed by (student, enrollment, date).
func (r *AttendanceRepo) Upsert(ctx context.Context, records []*attendance.Record) error {
	if len(records) == 0 {
		return nil
	}

	sql, args, err := r.upsertQuery(records).ToSql()
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "attendance")
	}
	return nil
}

func (r *AttendanceRepo) summaryQuery(date time.Time, classID *id.ID) squirrel.SelectBuilder {
	q := postgres.Psql.
		Select("a.status", "COUNT(*) AS n").
		From(attendanceTable + " a").
		Join("enrollments e ON e.id = a.enrollment_id").
		Join("students s ON s.id = a.student_id").
		Join("tutoring_classes c ON c.id = e.class_id").
		Where(squirrel.Eq{"a.date": date}).
		Where("s.is_active AND c.is_active").
		GroupBy("a.status")
	if classID != nil {
		q = q.Where(squirrel.Eq{"e.class_id": *classID})
	}
	return q
}

type statusCount struct {
	Status sessions.Status `db:"status"`
	N      int             `db:"n"`
}

// Summary counts statuses on date among active students.
func (r *AttendanceRepo) Summary(ctx context.Context, date time.Time, classID *id.ID) (sessions.Summary, error) {
	var summary sessions.Summary

	sql, args, err := r.summaryQuery(date, classID).ToSql()
	if err != nil {
		return summary, fmt.Errorf("build query: %w", err)
	}

	var counts []statusCount
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &counts, sql, args...); err != nil {
		return summary, fmt.Errorf("attendance summary: %w", err)
	}
	for _, c := range counts {
		summary.AddN(c.Status, c.N)
	}
	return summary, nil
}

// UsedSessions counts deducting records per enrollment.
func (r *AttendanceRepo) UsedSessions(ctx context.Context, ids []id.ID) (map[id.ID]int, error) {
	return usedSessions(ctx, r.txManager.GetQuerier(ctx), ids)
}

// History lists an enrollment's records by date then checked_at.
func (r *AttendanceRepo) History(ctx context.Context, enrollmentID id.ID) ([]*attendance.Record, error) {
	sql, args, err := postgres.Psql.
		Select(attendanceCols...).
		From(attendanceTable).
		Where(squirrel.Eq{"enrollment_id": enrollmentID}).
		OrderBy("date", "checked_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var records []*attendance.Record
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &records, sql, args...); err != nil {
		return nil, fmt.Errorf("attendance history: %w", err)
	}
	return records, nil
}
