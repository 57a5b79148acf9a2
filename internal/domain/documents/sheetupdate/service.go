package sheetupdate

import (
	"context"
	"fmt"
	"time"

	"tutorcenter/internal/core/entity"
	"tutorcenter/internal/core/id"
	"tutorcenter/internal/core/tx"
	"tutorcenter/internal/domain"
	"tutorcenter/internal/domain/audit"
	"tutorcenter/internal/domain/catalogs/classsubject"
	"tutorcenter/pkg/logger"
)

// Repository defines sheet update persistence.
type Repository interface {
	// LatestDate returns the most recent entry date, or nil without entries.
	LatestDate(ctx context.Context) (*time.Time, error)
	ForDate(ctx context.Context, date time.Time) ([]*EntryView, error)
	// Upsert writes entries keyed by (class, subject, date).
	Upsert(ctx context.Context, entries []*Entry) error
}

// ClassSubjects lists the active class/subject pairs.
type ClassSubjects interface {
	ListActive(ctx context.Context) ([]classsubject.Row, error)
}

// Row is one active class subject with the entry saved for the date.
type Row struct {
	ClassSubjectID id.ID      `json:"classSubjectId"`
	ClassID        id.ID      `json:"classId"`
	ClassName      string     `json:"className"`
	SubjectID      id.ID      `json:"subjectId"`
	SubjectName    string     `json:"subjectName"`
	Entry          *EntryView `json:"entry,omitempty"`
	Percent        int        `json:"percent"`
}

type pair struct{ class, subject id.ID }

// Service manages daily sheet updates.
type Service struct {
	repo  Repository
	pairs ClassSubjects
	txm   tx.Manager
	clock domain.Clock
}

// NewService creates a new sheet update service.
func NewService(repo Repository, pairs ClassSubjects, txm tx.Manager, clock domain.Clock) *Service {
	return &Service{repo: repo, pairs: pairs, txm: txm, clock: clock}
}

// DefaultDate is the latest date anything was recorded, or today.
func (s *Service) DefaultDate(ctx context.Context) (time.Time, error) {
	latest, err := s.repo.LatestDate(ctx)
	if err != nil {
		return time.Time{}, err
	}
	if latest != nil {
		return domain.DateOf(*latest), nil
	}
	return s.clock.Today(), nil
}

// Rows lists active class subjects ordered by class then subject name,
// prefilled with the entries saved for date.
func (s *Service) Rows(ctx context.Context, date time.Time) ([]Row, error) {
	date = domain.DateOf(date)

	pairs, err := s.pairs.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	entries, err := s.repo.ForDate(ctx, date)
	if err != nil {
		return nil, err
	}
	byPair := make(map[pair]*EntryView, len(entries))
	for _, e := range entries {
		byPair[pair{e.ClassID, e.SubjectID}] = e
	}

	rows := make([]Row, 0, len(pairs))
	for _, p := range pairs {
		row := Row{
			ClassSubjectID: p.ID,
			ClassID:        p.ClassID,
			ClassName:      p.ClassName,
			SubjectID:      p.SubjectID,
			SubjectName:    p.SubjectName,
		}
		if e, ok := byPair[pair{p.ClassID, p.SubjectID}]; ok {
			row.Entry = e
			row.Percent = e.Percent()
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Save upserts the submitted rows for date in one transaction. Items for
// pairs that are not active are ignored. Class subjects are not touched.
func (s *Service) Save(ctx context.Context, date time.Time, items []Item) (int, error) {
	date = domain.DateOf(date)
	for _, it := range items {
		if err := it.Validate(); err != nil {
			return 0, err
		}
	}

	active, err := s.pairs.ListActive(ctx)
	if err != nil {
		return 0, err
	}
	allowed := make(map[pair]bool, len(active))
	for _, p := range active {
		allowed[pair{p.ClassID, p.SubjectID}] = true
	}

	now := s.clock.Now().UTC()
	entries := make([]*Entry, 0, len(items))
	for _, it := range items {
		if !allowed[pair{it.ClassID, it.SubjectID}] {
			continue
		}
		e := &Entry{
			Record:    entity.NewRecord(),
			ClassID:   it.ClassID,
			SubjectID: it.SubjectID,
			Date:      date,
		}
		it.Apply(e)
		e.CreatedAt = now
		audit.Stamp(ctx, &e.Record, now)
		entries = append(entries, e)
	}
	if len(entries) == 0 {
		return 0, nil
	}

	err = s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Upsert(ctx, entries); err != nil {
			return fmt.Errorf("save sheet updates: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	logger.Info(ctx, "sheet updates saved", "date", date.Format(time.DateOnly), "count", len(entries))
	return len(entries), nil
}
