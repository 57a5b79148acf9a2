// Package report_repo provides PostgreSQL implementations for the read-side
// repositories: dashboards, alert candidates and the parent portal.
package report_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"tutorcenter/internal/core/id"
	"tutorcenter/internal/domain/reports"
	"tutorcenter/internal/domain/sessions"
	"tutorcenter/internal/infrastructure/storage/postgres"
)

// usedCTE counts deducting attendance per enrollment. $1 is the list of
// deducting statuses.
const usedCTE = `used AS (
	SELECT enrollment_id, COUNT(*) AS used
	FROM attendance
	WHERE status = ANY($1)
	GROUP BY enrollment_id
)`

const rosterSelect = `
WITH seq AS (
	SELECT id,
		ROW_NUMBER() OVER (PARTITION BY student_id ORDER BY created_at, id) AS course_seq,
		COUNT(*) OVER (PARTITION BY student_id) AS course_total
	FROM enrollments
), ` + usedCTE + `
SELECT
	e.id AS enrollment_id,
	e.sale_run_no,
	s.id AS student_id,
	s.code AS student_code,
	s.nickname,
	s.full_name,
	s.grade_level,
	c.id AS class_id,
	c.name AS class_name,
	e.sessions_total,
	COALESCE(u.used, 0) AS used,
	seq.course_seq,
	seq.course_total,
	%s AS status,
	e.notified_near_complete,
	e.notified_method
FROM enrollments e
JOIN students s ON s.id = e.student_id
JOIN tutoring_classes c ON c.id = e.class_id
JOIN seq ON seq.id = e.id
LEFT JOIN used u ON u.enrollment_id = e.id
%s
WHERE e.is_active AND s.is_active AND c.is_active
ORDER BY c.name, s.nickname, s.full_name, s.grade_level, e.id`

// rosterSQL builds the roster query. With a zero date the status column is
// always NULL and only $1 is bound.
func rosterSQL(date time.Time) (string, []any) {
	deducting := sessions.DeductingStatuses()
	if date.IsZero() {
		return fmt.Sprintf(rosterSelect, "NULL::varchar", ""), []any{deducting}
	}
	join := "LEFT JOIN attendance a ON a.enrollment_id = e.id AND a.student_id = e.student_id AND a.date = $2"
	return fmt.Sprintf(rosterSelect, "a.status", join), []any{deducting, date}
}

const classSummariesSQL = `
SELECT e.class_id, a.status, COUNT(*) AS n
FROM attendance a
JOIN enrollments e ON e.id = a.enrollment_id
JOIN students s ON s.id = a.student_id
JOIN tutoring_classes c ON c.id = e.class_id
WHERE a.date = $1 AND s.is_active AND c.is_active
GROUP BY e.class_id, a.status`

const sheetProgressSQL = `
SELECT
	su.class_id,
	su.subject_id,
	sub.name AS subject_name,
	su.sheet_id,
	sh.code AS sheet_code,
	sh.title AS sheet_title,
	sh.total_pages,
	sh.total_questions,
	su.page_taught_to,
	su.question_taught_to,
	su.last_teacher
FROM sheet_updates su
JOIN tutoring_classes c ON c.id = su.class_id
JOIN subjects sub ON sub.id = su.subject_id
LEFT JOIN sheets sh ON sh.id = su.sheet_id
WHERE su.date = $1 AND c.is_active AND sub.is_active
ORDER BY c.name, sub.name`

const studentDaysSQL = `
SELECT DISTINCT a.student_id, a.date
FROM attendance a
JOIN students s ON s.id = a.student_id
WHERE a.date BETWEEN $1 AND $2 AND s.is_active`

// ReportRepo implements reports.Repository.
type ReportRepo struct {
	txManager *postgres.TxManager
	builder   squirrel.StatementBuilderType
}

var _ reports.Repository = (*ReportRepo)(nil)

// NewReportRepo creates a new report repository.
func NewReportRepo(txm *postgres.TxManager) *ReportRepo {
	return &ReportRepo{
		txManager: txm,
		builder:   postgres.Psql,
	}
}

// ActiveClasses returns active classes by name.
func (r *ReportRepo) ActiveClasses(ctx context.Context) ([]reports.ClassInfo, error) {
	var classes []reports.ClassInfo
	err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &classes,
		"SELECT id, name, total_seats FROM tutoring_classes WHERE is_active ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("active classes: %w", err)
	}
	return classes, nil
}

// Roster returns the active enrollments with their status on date.
func (r *ReportRepo) Roster(ctx context.Context, date time.Time) ([]reports.RosterRow, error) {
	sql, args := rosterSQL(date)

	var rows []reports.RosterRow
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("roster: %w", err)
	}
	return rows, nil
}

type classStatusCount struct {
	ClassID id.ID           `db:"class_id"`
	Status  sessions.Status `db:"status"`
	N       int             `db:"n"`
}

// ClassSummaries counts statuses on date per class.
func (r *ReportRepo) ClassSummaries(ctx context.Context, date time.Time) (map[id.ID]sessions.Summary, error) {
	var counts []classStatusCount
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &counts, classSummariesSQL, date); err != nil {
		return nil, fmt.Errorf("class summaries: %w", err)
	}

	out := make(map[id.ID]sessions.Summary)
	for _, c := range counts {
		s := out[c.ClassID]
		s.AddN(c.Status, c.N)
		out[c.ClassID] = s
	}
	return out, nil
}

// LatestSheetProgress returns the entries of the most recent update date.
func (r *ReportRepo) LatestSheetProgress(ctx context.Context) (*time.Time, []reports.SheetProgress, error) {
	querier := r.txManager.GetQuerier(ctx)

	var latest *time.Time
	if err := querier.QueryRow(ctx, "SELECT MAX(date) FROM sheet_updates").Scan(&latest); err != nil {
		return nil, nil, fmt.Errorf("latest sheet date: %w", err)
	}
	if latest == nil {
		return nil, nil, nil
	}

	var rows []reports.SheetProgress
	if err := pgxscan.Select(ctx, querier, &rows, sheetProgressSQL, *latest); err != nil {
		return nil, nil, fmt.Errorf("sheet progress: %w", err)
	}
	return latest, rows, nil
}

// StudentDays returns attendance days of active students in [from, to].
func (r *ReportRepo) StudentDays(ctx context.Context, from, to time.Time) ([]reports.StudentDay, error) {
	var days []reports.StudentDay
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &days, studentDaysSQL, from, to); err != nil {
		return nil, fmt.Errorf("student days: %w", err)
	}
	return days, nil
}

func (r *ReportRepo) cellsQuery(enrollmentIDs []id.ID) squirrel.SelectBuilder {
	return r.builder.
		Select("enrollment_id", "date", "status").
		From("attendance").
		Where(squirrel.Eq{"enrollment_id": enrollmentIDs}).
		OrderBy("date", "checked_at")
}

// AttendanceCells returns the records of the given enrollments.
func (r *ReportRepo) AttendanceCells(ctx context.Context, enrollmentIDs []id.ID) ([]reports.AttendanceCell, error) {
	if len(enrollmentIDs) == 0 {
		return nil, nil
	}

	sql, args, err := r.cellsQuery(enrollmentIDs).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var cells []reports.AttendanceCell
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &cells, sql, args...); err != nil {
		return nil, fmt.Errorf("attendance cells: %w", err)
	}
	return cells, nil
}
