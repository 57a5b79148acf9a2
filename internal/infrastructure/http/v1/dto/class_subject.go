package dto

import (
	"time"

	"tutorcenter/internal/core/id"
	"tutorcenter/internal/domain/catalogs/classsubject"
)

// CreateClassSubjectRequest maps a subject onto a class.
type CreateClassSubjectRequest struct {
	ClassID         id.ID  `json:"classId" binding:"required"`
	SubjectID       id.ID  `json:"subjectId" binding:"required"`
	CurrentSheetID  *id.ID `json:"currentSheetId"`
	CurrentPage     int    `json:"currentPage"`
	CurrentQuestion int    `json:"currentQuestion"`
	LastTeacher     string `json:"lastTeacher"`
	IsActive        *bool  `json:"isActive"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateClassSubjectRequest) ToEntity() *classsubject.ClassSubject {
	cs := classsubject.NewClassSubject(r.ClassID, r.SubjectID)
	cs.CurrentSheetID = r.CurrentSheetID
	cs.CurrentPage = r.CurrentPage
	cs.CurrentQuestion = r.CurrentQuestion
	cs.LastTeacher = r.LastTeacher
	if r.IsActive != nil {
		cs.IsActive = *r.IsActive
	}
	return cs
}

// UpdateClassSubjectRequest moves a class subject to another sheet or
// position.
type UpdateClassSubjectRequest struct {
	CurrentSheetID  *id.ID `json:"currentSheetId"`
	CurrentPage     int    `json:"currentPage"`
	CurrentQuestion int    `json:"currentQuestion"`
	LastTeacher     string `json:"lastTeacher"`
	IsActive        bool   `json:"isActive"`
	Version         int    `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateClassSubjectRequest) ApplyTo(cs *classsubject.ClassSubject) {
	cs.CurrentSheetID = r.CurrentSheetID
	cs.CurrentPage = r.CurrentPage
	cs.CurrentQuestion = r.CurrentQuestion
	cs.LastTeacher = r.LastTeacher
	cs.IsActive = r.IsActive
	cs.Version = r.Version
}

// ClassSubjectResponse is the response body for a class subject.
type ClassSubjectResponse struct {
	ID              string    `json:"id"`
	ClassID         string    `json:"classId"`
	SubjectID       string    `json:"subjectId"`
	CurrentSheetID  *id.ID    `json:"currentSheetId,omitempty"`
	CurrentPage     int       `json:"currentPage"`
	CurrentQuestion int       `json:"currentQuestion"`
	LastTeacher     string    `json:"lastTeacher"`
	UpdatedBy       string    `json:"updatedBy,omitempty"`
	UpdatedAt       time.Time `json:"updatedAt"`
	IsActive        bool      `json:"isActive"`
	Version         int       `json:"version"`
}

// FromClassSubject creates response DTO from domain entity.
func FromClassSubject(cs *classsubject.ClassSubject) *ClassSubjectResponse {
	return &ClassSubjectResponse{
		ID:              cs.ID.String(),
		ClassID:         cs.ClassID.String(),
		SubjectID:       cs.SubjectID.String(),
		CurrentSheetID:  cs.CurrentSheetID,
		CurrentPage:     cs.CurrentPage,
		CurrentQuestion: cs.CurrentQuestion,
		LastTeacher:     cs.LastTeacher,
		UpdatedBy:       cs.UpdatedBy,
		UpdatedAt:       cs.UpdatedAt,
		IsActive:        cs.IsActive,
		Version:         cs.Version,
	}
}
