package student

import (
	"context"

	"tutorcenter/internal/domain"
)

// Repository defines the interface for Student persistence.
type Repository interface {
	domain.CatalogRepository[*Student]

	// GetByCode retrieves a student by code.
	GetByCode(ctx context.Context, code string) (*Student, error)
}
