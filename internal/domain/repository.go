// Package domain holds the contracts shared by the tutoring domain packages:
// list filtering, the generic catalog repository and service, and the clock.
package domain

import (
	"context"

	"tutorcenter/internal/core/entity"
	"tutorcenter/internal/core/id"
	"tutorcenter/internal/domain/filter"
)

// DefaultListLimit applies when a list request gives no limit.
const DefaultListLimit = 50

// ListFilter narrows a list query.
type ListFilter struct {
	// Search is matched with ILIKE against the repository's text columns
	// (name, code, phone, ...).
	Search string

	IDs      []id.ID
	IsActive *bool

	// AdvancedFilters are column conditions decoded from the JSON filter
	// query parameter.
	AdvancedFilters []filter.Item

	// OrderBy is a column name, "-" prefixed for descending.
	OrderBy string

	Limit  int
	Offset int
}

// DefaultListFilter returns the first page.
func DefaultListFilter() ListFilter {
	return ListFilter{Limit: DefaultListLimit}
}

// ListResult is one page and the total row count of the filter.
type ListResult[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
}

// CatalogRepository stores one kind of reference data (students, classes,
// subjects, sheets, class subjects).
type CatalogRepository[T entity.Validatable] interface {
	Create(ctx context.Context, entity T) error
	GetByID(ctx context.Context, id id.ID) (T, error)
	// GetForUpdate locks the row until the transaction ends.
	GetForUpdate(ctx context.Context, id id.ID) (T, error)
	// Update fails with CONCURRENT_MODIFICATION when entity's version is stale.
	Update(ctx context.Context, entity T) error
	// Delete fails with CONFLICT while other rows reference the entity;
	// deactivate it instead.
	Delete(ctx context.Context, id id.ID) error
	List(ctx context.Context, filter ListFilter) (ListResult[T], error)
	Exists(ctx context.Context, id id.ID) (bool, error)
}
