package dto

import (
	"strings"
	"time"

	"tutorcenter/internal/domain/catalogs/student"
)

// --- Request DTOs ---

// CreateStudentRequest is the request body for creating a student.
// The code is always allocated as YY### by the server.
type CreateStudentRequest struct {
	FullName       string                 `json:"fullName" binding:"required"`
	Nickname       string                 `json:"nickname"`
	GradeLevel     string                 `json:"gradeLevel"`
	AcademicYear   string                 `json:"academicYear"`
	SchoolName     string                 `json:"schoolName"`
	ParentPhone    string                 `json:"parentPhone" binding:"required"`
	ContactChannel student.ContactChannel `json:"contactChannel"`
	EnrollDate     Date                   `json:"enrollDate"`
	ReferralSource student.ReferralSource `json:"referralSource"`
	Note           string                 `json:"note"`
	IsActive       *bool                  `json:"isActive"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateStudentRequest) ToEntity() *student.Student {
	st := student.NewStudent(strings.TrimSpace(r.FullName), strings.TrimSpace(r.ParentPhone))
	st.Nickname = strings.TrimSpace(r.Nickname)
	st.GradeLevel = r.GradeLevel
	st.AcademicYear = r.AcademicYear
	st.SchoolName = r.SchoolName
	if r.ContactChannel != "" {
		st.ContactChannel = r.ContactChannel
	}
	if r.ReferralSource != "" {
		st.ReferralSource = r.ReferralSource
	}
	st.EnrollDate = r.EnrollDate.Time
	st.Note = r.Note
	if r.IsActive != nil {
		st.IsActive = *r.IsActive
	}
	return st
}

// UpdateStudentRequest is the request body for updating a student.
// The code is never changed through it.
type UpdateStudentRequest struct {
	FullName       string                 `json:"fullName" binding:"required"`
	Nickname       string                 `json:"nickname"`
	GradeLevel     string                 `json:"gradeLevel"`
	AcademicYear   string                 `json:"academicYear"`
	SchoolName     string                 `json:"schoolName"`
	ParentPhone    string                 `json:"parentPhone" binding:"required"`
	ContactChannel student.ContactChannel `json:"contactChannel" binding:"required"`
	EnrollDate     Date                   `json:"enrollDate"`
	ReferralSource student.ReferralSource `json:"referralSource" binding:"required"`
	Note           string                 `json:"note"`
	IsActive       bool                   `json:"isActive"`
	Version        int                    `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateStudentRequest) ApplyTo(st *student.Student) {
	st.FullName = strings.TrimSpace(r.FullName)
	st.Nickname = strings.TrimSpace(r.Nickname)
	st.GradeLevel = r.GradeLevel
	st.AcademicYear = r.AcademicYear
	st.SchoolName = r.SchoolName
	st.ParentPhone = strings.TrimSpace(r.ParentPhone)
	st.ContactChannel = r.ContactChannel
	if !r.EnrollDate.IsZero() {
		st.EnrollDate = r.EnrollDate.Time
	}
	st.ReferralSource = r.ReferralSource
	st.Note = r.Note
	st.IsActive = r.IsActive
	st.Version = r.Version
}

// --- Response DTOs ---

// StudentResponse is the response body for a student.
type StudentResponse struct {
	ID             string                 `json:"id"`
	Code           string                 `json:"code"`
	DisplayName    string                 `json:"displayName"`
	FullName       string                 `json:"fullName"`
	Nickname       string                 `json:"nickname"`
	GradeLevel     string                 `json:"gradeLevel"`
	AcademicYear   string                 `json:"academicYear"`
	SchoolName     string                 `json:"schoolName"`
	ParentPhone    string                 `json:"parentPhone"`
	ContactChannel student.ContactChannel `json:"contactChannel"`
	EnrollDate     Date                   `json:"enrollDate"`
	ReferralSource student.ReferralSource `json:"referralSource"`
	Note           string                 `json:"note"`
	IsActive       bool                   `json:"isActive"`
	Version        int                    `json:"version"`
	CreatedAt      time.Time              `json:"createdAt"`
}

// FromStudent creates response DTO from domain entity.
func FromStudent(st *student.Student) *StudentResponse {
	return &StudentResponse{
		ID:             st.ID.String(),
		Code:           st.Code,
		DisplayName:    st.DisplayName(),
		FullName:       st.FullName,
		Nickname:       st.Nickname,
		GradeLevel:     st.GradeLevel,
		AcademicYear:   st.AcademicYear,
		SchoolName:     st.SchoolName,
		ParentPhone:    st.ParentPhone,
		ContactChannel: st.ContactChannel,
		EnrollDate:     NewDate(st.EnrollDate),
		ReferralSource: st.ReferralSource,
		Note:           st.Note,
		IsActive:       st.IsActive,
		Version:        st.Version,
		CreatedAt:      st.CreatedAt,
	}
}
