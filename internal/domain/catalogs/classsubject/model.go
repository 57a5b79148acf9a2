// Package classsubject maps subjects onto classes and tracks where each class
// is in its current sheet.
package classsubject

import (
	"context"
	"time"

	"tutorcenter/internal/core/apperror"
	"tutorcenter/internal/core/entity"
	"tutorcenter/internal/core/id"
	"tutorcenter/internal/domain/progress"
)

// ClassSubject is one subject taught in one class.
type ClassSubject struct {
	entity.Catalog

	ClassID         id.ID     `db:"class_id" json:"classId"`
	SubjectID       id.ID     `db:"subject_id" json:"subjectId"`
	CurrentSheetID  *id.ID    `db:"current_sheet_id" json:"currentSheetId,omitempty"`
	CurrentPage     int       `db:"current_page" json:"currentPage"`
	CurrentQuestion int       `db:"current_question" json:"currentQuestion"`
	LastTeacher     string    `db:"last_teacher" json:"lastTeacher"`
	UpdatedBy       string    `db:"updated_by" json:"updatedBy"`
	UpdatedAt       time.Time `db:"updated_at" json:"updatedAt"`
}

// NewClassSubject creates an active mapping with no current sheet.
func NewClassSubject(classID, subjectID id.ID) *ClassSubject {
	return &ClassSubject{
		Catalog:   entity.NewCatalog(),
		ClassID:   classID,
		SubjectID: subjectID,
		UpdatedAt: time.Now().UTC(),
	}
}

// Validate implements entity.Validatable interface.
func (c *ClassSubject) Validate(ctx context.Context) error {
	if id.IsNil(c.ClassID) {
		return apperror.NewValidation("class is required").WithDetail("field", "classId")
	}
	if id.IsNil(c.SubjectID) {
		return apperror.NewValidation("subject is required").WithDetail("field", "subjectId")
	}
	if err := entity.RequireNonNegative("currentPage", c.CurrentPage); err != nil {
		return err
	}
	return entity.RequireNonNegative("currentQuestion", c.CurrentQuestion)
}

// Progress is the percentage through sh. A nil sheet reads 0.
func (c *ClassSubject) Progress(sh progress.Sheet) int {
	return progress.ForSheet(sh, c.CurrentPage, c.CurrentQuestion)
}
