package sheet

import (
	"context"

	"tutorcenter/internal/core/tx"
	"tutorcenter/internal/domain"
)

// Repository defines the interface for Sheet persistence.
type Repository interface {
	domain.CatalogRepository[*Sheet]

	// GetByCode retrieves a sheet by code.
	GetByCode(ctx context.Context, code string) (*Sheet, error)
}

// Service provides business logic for Sheet catalog.
type Service struct {
	*domain.CatalogService[*Sheet]
	repo Repository
}

// NewService creates a new Sheet service.
func NewService(repo Repository, txm tx.Manager) *Service {
	return &Service{
		CatalogService: domain.NewCatalogService(domain.CatalogServiceConfig[*Sheet]{
			Repo:       repo,
			TxManager:  txm,
			EntityName: "sheet",
		}),
		repo: repo,
	}
}

// GetByCode retrieves a sheet by code.
func (s *Service) GetByCode(ctx context.Context, code string) (*Sheet, error) {
	sh, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, s.NormalizeGetErr(err, code)
	}
	return sh, nil
}
