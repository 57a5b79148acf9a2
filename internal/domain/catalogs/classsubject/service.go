package classsubject

import (
	"context"

	appctx "tutorcenter/internal/core/context"
	"tutorcenter/internal/core/id"
	"tutorcenter/internal/core/tx"
	"tutorcenter/internal/domain"
	"tutorcenter/internal/domain/progress"
)

// Repository defines the interface for ClassSubject persistence.
type Repository interface {
	domain.CatalogRepository[*ClassSubject]

	// ListActive returns active mappings whose class and subject are active,
	// ordered by class name then subject name.
	ListActive(ctx context.Context) ([]Row, error)
}

// Row is an active mapping joined with its display names and current sheet.
type Row struct {
	ClassSubject

	ClassName      string  `db:"class_name" json:"className"`
	SubjectName    string  `db:"subject_name" json:"subjectName"`
	SheetCode      *string `db:"sheet_code" json:"sheetCode,omitempty"`
	SheetTitle     *string `db:"sheet_title" json:"sheetTitle,omitempty"`
	TotalPages     *int    `db:"total_pages" json:"-"`
	TotalQuestions *int    `db:"total_questions" json:"-"`
}

// Percent is the row's progress through its current sheet, 0 without one.
func (r Row) Percent() int {
	if r.CurrentSheetID == nil || r.TotalPages == nil || r.TotalQuestions == nil {
		return 0
	}
	return r.Progress(progress.Totals{Pages: *r.TotalPages, Questions: *r.TotalQuestions})
}

// Service provides business logic for ClassSubject catalog.
type Service struct {
	*domain.CatalogService[*ClassSubject]
	repo  Repository
	clock domain.Clock
}

// NewService creates a new ClassSubject service.
func NewService(repo Repository, txm tx.Manager, clock domain.Clock) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*ClassSubject]{
		Repo:       repo,
		TxManager:  txm,
		EntityName: "class_subject",
	})
	svc := &Service{CatalogService: base, repo: repo, clock: clock}

	stamp := func(ctx context.Context, c *ClassSubject) error {
		c.UpdatedAt = svc.clock.Now().UTC()
		if actor := appctx.GetActor(ctx); actor != "" {
			c.UpdatedBy = actor
		}
		return nil
	}
	base.Hooks().OnBeforeCreate(stamp)
	base.Hooks().OnBeforeUpdate(stamp)

	return svc
}

// ListActive returns the active mappings with names and sheet totals.
func (s *Service) ListActive(ctx context.Context) ([]Row, error) {
	return s.repo.ListActive(ctx)
}

// ByClass groups rows by class id, keeping the repository order.
func ByClass(rows []Row) (order []id.ID, groups map[id.ID][]Row) {
	groups = make(map[id.ID][]Row)
	for _, r := range rows {
		if _, ok := groups[r.ClassID]; !ok {
			order = append(order, r.ClassID)
		}
		groups[r.ClassID] = append(groups[r.ClassID], r)
	}
	return order, groups
}
