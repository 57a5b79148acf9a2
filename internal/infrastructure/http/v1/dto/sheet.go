package dto

import (
	"strings"

	"tutorcenter/internal/core/id"
	"tutorcenter/internal/domain/catalogs/sheet"
)

// CreateSheetRequest is the request body for creating a sheet.
type CreateSheetRequest struct {
	Code           string `json:"code" binding:"required"`
	Title          string `json:"title" binding:"required"`
	SubjectID      id.ID  `json:"subjectId" binding:"required"`
	TotalPages     int    `json:"totalPages"`
	TotalQuestions int    `json:"totalQuestions"`
	IsActive       *bool  `json:"isActive"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateSheetRequest) ToEntity() *sheet.Sheet {
	sh := sheet.NewSheet(strings.TrimSpace(r.Code), strings.TrimSpace(r.Title), r.SubjectID, r.TotalPages, r.TotalQuestions)
	if r.IsActive != nil {
		sh.IsActive = *r.IsActive
	}
	return sh
}

// UpdateSheetRequest is the request body for updating a sheet.
type UpdateSheetRequest struct {
	Code           string `json:"code" binding:"required"`
	Title          string `json:"title" binding:"required"`
	SubjectID      id.ID  `json:"subjectId" binding:"required"`
	TotalPages     int    `json:"totalPages"`
	TotalQuestions int    `json:"totalQuestions"`
	IsActive       bool   `json:"isActive"`
	Version        int    `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateSheetRequest) ApplyTo(sh *sheet.Sheet) {
	sh.Code = strings.TrimSpace(r.Code)
	sh.Title = strings.TrimSpace(r.Title)
	sh.SubjectID = r.SubjectID
	sh.TotalPages = r.TotalPages
	sh.TotalQuestions = r.TotalQuestions
	sh.IsActive = r.IsActive
	sh.Version = r.Version
}

// SheetResponse is the response body for a sheet.
type SheetResponse struct {
	ID             string `json:"id"`
	Code           string `json:"code"`
	Title          string `json:"title"`
	SubjectID      string `json:"subjectId"`
	TotalPages     int    `json:"totalPages"`
	TotalQuestions int    `json:"totalQuestions"`
	IsActive       bool   `json:"isActive"`
	Version        int    `json:"version"`
}

// FromSheet creates response DTO from domain entity.
func FromSheet(sh *sheet.Sheet) *SheetResponse {
	return &SheetResponse{
		ID:             sh.ID.String(),
		Code:           sh.Code,
		Title:          sh.Title,
		SubjectID:      sh.SubjectID.String(),
		TotalPages:     sh.TotalPages,
		TotalQuestions: sh.TotalQuestions,
		IsActive:       sh.IsActive,
		Version:        sh.Version,
	}
}
