package dto

import (
	"strings"

	"tutorcenter/internal/core/types"
	"tutorcenter/internal/domain/catalogs/tutoringclass"
)

// CreateClassRequest is the request body for creating a class.
type CreateClassRequest struct {
	Name            string       `json:"name" binding:"required"`
	CoursePrice     types.Money  `json:"coursePrice"`
	TotalSeats      int          `json:"totalSeats"`
	HoursPerSession *types.Hours `json:"hoursPerSession"`
	IsActive        *bool        `json:"isActive"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateClassRequest) ToEntity() *tutoringclass.TutoringClass {
	c := tutoringclass.NewTutoringClass(strings.TrimSpace(r.Name), r.CoursePrice, r.TotalSeats)
	if r.HoursPerSession != nil {
		c.HoursPerSession = *r.HoursPerSession
	}
	if r.IsActive != nil {
		c.IsActive = *r.IsActive
	}
	return c
}

// UpdateClassRequest is the request body for updating a class.
type UpdateClassRequest struct {
	Name            string      `json:"name" binding:"required"`
	CoursePrice     types.Money `json:"coursePrice"`
	TotalSeats      int         `json:"totalSeats"`
	HoursPerSession types.Hours `json:"hoursPerSession"`
	IsActive        bool        `json:"isActive"`
	Version         int         `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateClassRequest) ApplyTo(c *tutoringclass.TutoringClass) {
	c.Name = strings.TrimSpace(r.Name)
	c.CoursePrice = r.CoursePrice
	c.TotalSeats = r.TotalSeats
	c.HoursPerSession = r.HoursPerSession
	c.IsActive = r.IsActive
	c.Version = r.Version
}

// ClassResponse is the response body for a class.
type ClassResponse struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	CoursePrice     types.Money `json:"coursePrice"`
	TotalSeats      int         `json:"totalSeats"`
	HoursPerSession types.Hours `json:"hoursPerSession"`
	IsActive        bool        `json:"isActive"`
	Version         int         `json:"version"`
}

// FromClass creates response DTO from domain entity.
func FromClass(c *tutoringclass.TutoringClass) *ClassResponse {
	return &ClassResponse{
		ID:              c.ID.String(),
		Name:            c.Name,
		CoursePrice:     c.CoursePrice,
		TotalSeats:      c.TotalSeats,
		HoursPerSession: c.HoursPerSession,
		IsActive:        c.IsActive,
		Version:         c.Version,
	}
}
