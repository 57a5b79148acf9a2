// Package subject provides the Subject catalog.
package subject

import (
	"context"

	"tutorcenter/internal/core/entity"
	"tutorcenter/internal/core/tx"
	"tutorcenter/internal/domain"
)

// Subject is a taught discipline (math, English, science).
type Subject struct {
	entity.Catalog

	Name string `db:"name" json:"name"`
}

// NewSubject creates an active subject.
func NewSubject(name string) *Subject {
	return &Subject{Catalog: entity.NewCatalog(), Name: name}
}

// Validate implements entity.Validatable interface.
func (s *Subject) Validate(ctx context.Context) error {
	return entity.RequireText("name", s.Name)
}

// Repository defines the interface for Subject persistence.
type Repository interface {
	domain.CatalogRepository[*Subject]
}

// Service provides business logic for Subject catalog.
type Service struct {
	*domain.CatalogService[*Subject]
}

// NewService creates a new Subject service.
func NewService(repo Repository, txm tx.Manager) *Service {
	return &Service{
		CatalogService: domain.NewCatalogService(domain.CatalogServiceConfig[*Subject]{
			Repo:       repo,
			TxManager:  txm,
			EntityName: "subject",
		}),
	}
}
