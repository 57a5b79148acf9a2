package entity

import (
	"strings"

	"tutorcenter/internal/core/apperror"
)

// Catalog is the base type for reference data: students, classes, subjects,
// sheets. Rows are deactivated rather than deleted while history points at them.
type Catalog struct {
	BaseEntity

	// IsActive hides the row from rosters and pickers when false.
	IsActive bool `db:"is_active" json:"isActive"`
}

// NewCatalog creates a new active Catalog with generated ID.
func NewCatalog() Catalog {
	return Catalog{
		BaseEntity: NewBaseEntity(),
		IsActive:   true,
	}
}

// Deactivate clears the active flag.
func (c *Catalog) Deactivate() {
	c.IsActive = false
}

// RequireText returns a validation error when value is blank.
func RequireText(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return apperror.NewValidation(field+" is required").
			WithDetail("field", field)
	}
	return nil
}

// RequireNonNegative returns a validation error when value < 0.
func RequireNonNegative(field string, value int) error {
	if value < 0 {
		return apperror.NewValidation(field+" must not be negative").
			WithDetail("field", field).
			WithDetail("value", value)
	}
	return nil
}
