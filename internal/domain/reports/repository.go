package reports

import (
	"context"
	"time"

	"tutorcenter/internal/core/id"
	"tutorcenter/internal/domain/sessions"
)

// Repository defines report data access.
type Repository interface {
	// ActiveClasses returns active classes by name.
	ActiveClasses(ctx context.Context) ([]ClassInfo, error)

	// Roster returns active enrollments of active students in active
	// classes, ordered by class name, nickname, full name and grade, with the
	// status recorded on date (nil when none). A zero date skips statuses.
	Roster(ctx context.Context, date time.Time) ([]RosterRow, error)

	// ClassSummaries counts statuses on date per class, among active students
	// in active classes.
	ClassSummaries(ctx context.Context, date time.Time) (map[id.ID]sessions.Summary, error)

	// LatestSheetProgress returns the entries of the most recent sheet update
	// date for active classes and subjects. date is nil when nothing was
	// recorded yet.
	LatestSheetProgress(ctx context.Context) (date *time.Time, rows []SheetProgress, err error)

	// StudentDays returns attendance of active students in [from, to].
	StudentDays(ctx context.Context, from, to time.Time) ([]StudentDay, error)

	// AttendanceCells returns records of the given enrollments by date then
	// checked_at.
	AttendanceCells(ctx context.Context, enrollmentIDs []id.ID) ([]AttendanceCell, error)
}
