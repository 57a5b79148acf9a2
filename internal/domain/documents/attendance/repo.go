package attendance

import (
	"context"
	"time"

	"tutorcenter/internal/core/id"
	"tutorcenter/internal/domain/sessions"
)

// Repository defines attendance persistence.
type Repository interface {
	// ActiveRoster lists enrollments of the class where the enrollment, the
	// student and the class are all active.
	ActiveRoster(ctx context.Context, classID id.ID) ([]RosterEntry, error)

	// Upsert writes records keyed by (student, enrollment, date), replacing
	// status and checked_at of existing rows.
	Upsert(ctx context.Context, records []*Record) error

	// Summary counts statuses on date among active students. A nil classID
	// counts every active class.
	Summary(ctx context.Context, date time.Time, classID *id.ID) (sessions.Summary, error)

	// UsedSessions counts deducting records per enrollment.
	UsedSessions(ctx context.Context, ids []id.ID) (map[id.ID]int, error)

	// History lists an enrollment's records by date then checked_at.
	History(ctx context.Context, enrollmentID id.ID) ([]*Record, error)
}
