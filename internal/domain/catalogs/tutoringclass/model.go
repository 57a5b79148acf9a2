// Package tutoringclass provides the TutoringClass catalog.
package tutoringclass

import (
	"context"

	"tutorcenter/internal/core/apperror"
	"tutorcenter/internal/core/entity"
	"tutorcenter/internal/core/types"
)

// DefaultHoursPerSession applies when a class is created without a value.
var DefaultHoursPerSession = types.MustMoney("3.00")

// TutoringClass is a recurring group lesson students enroll into.
type TutoringClass struct {
	entity.Catalog

	Name            string      `db:"name" json:"name"`
	CoursePrice     types.Money `db:"course_price" json:"coursePrice"`
	TotalSeats      int         `db:"total_seats" json:"totalSeats"`
	HoursPerSession types.Hours `db:"hours_per_session" json:"hoursPerSession"`
}

// NewTutoringClass creates an active class with default hours per session.
func NewTutoringClass(name string, price types.Money, seats int) *TutoringClass {
	return &TutoringClass{
		Catalog:         entity.NewCatalog(),
		Name:            name,
		CoursePrice:     price,
		TotalSeats:      seats,
		HoursPerSession: DefaultHoursPerSession,
	}
}

// Validate implements entity.Validatable interface.
func (c *TutoringClass) Validate(ctx context.Context) error {
	if err := entity.RequireText("name", c.Name); err != nil {
		return err
	}
	if err := entity.RequireNonNegative("totalSeats", c.TotalSeats); err != nil {
		return err
	}
	if c.CoursePrice.IsNegative() {
		return apperror.NewValidation("course price must not be negative").
			WithDetail("field", "coursePrice")
	}
	if c.HoursPerSession.IsNegative() {
		return apperror.NewValidation("hours per session must not be negative").
			WithDetail("field", "hoursPerSession")
	}
	return nil
}

// FreeSeats is total minus occupied, never below zero.
func (c *TutoringClass) FreeSeats(occupied int) int {
	if free := c.TotalSeats - occupied; free > 0 {
		return free
	}
	return 0
}
