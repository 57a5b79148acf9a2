package tutoringclass

import "tutorcenter/internal/domain"

// Repository defines the interface for TutoringClass persistence.
type Repository interface {
	domain.CatalogRepository[*TutoringClass]
}
