package tutoringclass

import (
	"context"

	"tutorcenter/internal/core/tx"
	"tutorcenter/internal/domain"
)

// Service provides business logic for TutoringClass catalog.
type Service struct {
	*domain.CatalogService[*TutoringClass]
}

// NewService creates a new TutoringClass service.
func NewService(repo Repository, txm tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*TutoringClass]{
		Repo:       repo,
		TxManager:  txm,
		EntityName: "tutoring_class",
	})

	base.Hooks().OnBeforeCreate(func(_ context.Context, c *TutoringClass) error {
		if c.HoursPerSession.IsZero() {
			c.HoursPerSession = DefaultHoursPerSession
		}
		return nil
	})

	return &Service{CatalogService: base}
}
