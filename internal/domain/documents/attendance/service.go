package attendance

import (
	"context"
	"fmt"
	"sort"
	"time"

	"tutorcenter/internal/core/apperror"
	appctx "tutorcenter/internal/core/context"
	"tutorcenter/internal/core/entity"
	"tutorcenter/internal/core/id"
	"tutorcenter/internal/core/tx"
	"tutorcenter/internal/domain"
	"tutorcenter/internal/domain/audit"
	"tutorcenter/internal/domain/sessions"
	"tutorcenter/pkg/logger"
)

// Service records class attendance.
type Service struct {
	repo    Repository
	txm     tx.Manager
	auditor audit.Recorder
	clock   domain.Clock
}

// NewService creates a new attendance service.
func NewService(repo Repository, txm tx.Manager, auditor audit.Recorder, clock domain.Clock) *Service {
	if auditor == nil {
		auditor = audit.Nop{}
	}
	return &Service{repo: repo, txm: txm, auditor: auditor, clock: clock}
}

// SubmitClass saves the statuses of a whole class for date. Every active
// enrollment of the class must be present in items; ids outside the roster
// are ignored. When an id repeats, the last status wins.
func (s *Service) SubmitClass(ctx context.Context, classID id.ID, date time.Time, items []Item) (*SubmitResult, error) {
	if id.IsNil(classID) {
		return nil, apperror.NewValidation("class is required").WithDetail("field", "classId")
	}
	date = domain.DateOf(date)

	submitted := make(map[id.ID]sessions.Status, len(items))
	for _, it := range items {
		if !it.Status.Valid() {
			return nil, apperror.NewValidation("invalid status in items").
				WithDetail("enrollment_id", it.EnrollmentID).
				WithDetail("status", string(it.Status))
		}
		submitted[it.EnrollmentID] = it.Status
	}

	now := s.clock.Now().UTC()
	actor := appctx.GetActor(ctx)
	result := &SubmitResult{ClassID: classID, Date: date.Format(time.DateOnly)}

	// Roster read, completeness check and upsert share one transaction.
	var roster []RosterEntry
	var records []*Record
	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		if roster, err = s.repo.ActiveRoster(ctx, classID); err != nil {
			return err
		}

		var missing []id.ID
		for _, r := range roster {
			if _, ok := submitted[r.EnrollmentID]; !ok {
				missing = append(missing, r.EnrollmentID)
			}
		}
		if len(missing) > 0 {
			ids := id.Strings(missing)
			sort.Strings(ids)
			return apperror.NewIncompleteRoster(ids, len(submitted), len(roster))
		}

		records = make([]*Record, 0, len(roster))
		for _, r := range roster {
			rec := &Record{
				Record:       entity.NewRecord(),
				StudentID:    r.StudentID,
				EnrollmentID: r.EnrollmentID,
				Date:         date,
				Status:       submitted[r.EnrollmentID],
				CheckedAt:    now,
			}
			rec.CreatedAt = now
			rec.Stamp(now, actor)
			records = append(records, rec)
		}

		if err := s.repo.Upsert(ctx, records); err != nil {
			return fmt.Errorf("save attendance: %w", err)
		}
		return s.auditor.Record(ctx, "tutoring_class", classID, audit.ActionSubmit, map[string]any{
			"date":  result.Date,
			"items": statusChanges(records),
		})
	})
	if err != nil {
		return nil, err
	}

	if result.ClassSummary, err = s.repo.Summary(ctx, date, &classID); err != nil {
		return nil, err
	}
	if result.GlobalSummary, err = s.repo.Summary(ctx, date, nil); err != nil {
		return nil, err
	}

	ids := make([]id.ID, len(roster))
	for i, r := range roster {
		ids[i] = r.EnrollmentID
	}
	used, err := s.repo.UsedSessions(ctx, ids)
	if err != nil {
		return nil, err
	}
	result.RemainingMap = make(map[id.ID]int, len(roster))
	for _, r := range roster {
		result.RemainingMap[r.EnrollmentID] = sessions.Remaining(r.SessionsTotal, used[r.EnrollmentID])
	}

	logger.Info(ctx, "attendance submitted",
		"class_id", classID,
		"date", result.Date,
		"count", len(records),
	)
	return result, nil
}

// History lists an enrollment's attendance oldest first.
func (s *Service) History(ctx context.Context, enrollmentID id.ID) ([]*Record, error) {
	return s.repo.History(ctx, enrollmentID)
}

func statusChanges(records []*Record) map[string]string {
	out := make(map[string]string, len(records))
	for _, r := range records {
		out[r.EnrollmentID.String()] = string(r.Status)
	}
	return out
}
