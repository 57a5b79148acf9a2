package student

import (
	"context"
	"fmt"

	"tutorcenter/internal/core/codealloc"
	"tutorcenter/internal/core/tx"
	"tutorcenter/internal/domain"
)

// Service provides business logic for Student catalog.
type Service struct {
	*domain.CatalogService[*Student]
	repo  Repository
	codes codealloc.Generator
	clock domain.Clock
}

// NewService creates a new Student service.
func NewService(repo Repository, txm tx.Manager, codes codealloc.Generator, clock domain.Clock) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Student]{
		Repo:       repo,
		TxManager:  txm,
		EntityName: "student",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		codes:          codes,
		clock:          clock,
	}

	base.Hooks().OnBeforeCreate(svc.prepareForCreate)
	base.Hooks().OnBeforeUpdate(svc.prepareForUpdate)

	return svc
}

// prepareForCreate runs inside the create transaction: the code lock is held
// until the student row commits. Any code already set on st is replaced.
func (s *Service) prepareForCreate(ctx context.Context, st *Student) error {
	if st.EnrollDate.IsZero() {
		st.EnrollDate = s.clock.Today()
	}

	code, err := s.codes.Allocate(ctx, codealloc.StudentCode, codealloc.YearPartition(s.clock.Local()))
	if err != nil {
		return fmt.Errorf("allocate student code: %w", err)
	}
	st.Code = code
	return nil
}

// prepareForUpdate keeps the issued code and creation time immutable.
func (s *Service) prepareForUpdate(ctx context.Context, st *Student) error {
	current, err := s.repo.GetForUpdate(ctx, st.ID)
	if err != nil {
		return s.NormalizeGetErr(err, st.ID.String())
	}
	st.Code = current.Code
	st.CreatedAt = current.CreatedAt
	if st.EnrollDate.IsZero() {
		st.EnrollDate = current.EnrollDate
	}
	return nil
}

// GetByCode retrieves a student by code.
func (s *Service) GetByCode(ctx context.Context, code string) (*Student, error) {
	st, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, s.NormalizeGetErr(err, code)
	}
	return st, nil
}
