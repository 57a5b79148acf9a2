package dto

import (
	"strings"

	"tutorcenter/internal/domain/catalogs/subject"
)

// CreateSubjectRequest is the request body for creating a subject.
type CreateSubjectRequest struct {
	Name     string `json:"name" binding:"required"`
	IsActive *bool  `json:"isActive"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateSubjectRequest) ToEntity() *subject.Subject {
	s := subject.NewSubject(strings.TrimSpace(r.Name))
	if r.IsActive != nil {
		s.IsActive = *r.IsActive
	}
	return s
}

// UpdateSubjectRequest is the request body for updating a subject.
type UpdateSubjectRequest struct {
	Name     string `json:"name" binding:"required"`
	IsActive bool   `json:"isActive"`
	Version  int    `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateSubjectRequest) ApplyTo(s *subject.Subject) {
	s.Name = strings.TrimSpace(r.Name)
	s.IsActive = r.IsActive
	s.Version = r.Version
}

// SubjectResponse is the response body for a subject.
type SubjectResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`
	Version  int    `json:"version"`
}

// FromSubject creates response DTO from domain entity.
func FromSubject(s *subject.Subject) *SubjectResponse {
	return &SubjectResponse{ID: s.ID.String(), Name: s.Name, IsActive: s.IsActive, Version: s.Version}
}
