// Package sheet provides the Sheet catalog: numbered study booklets.
package sheet

import (
	"context"

	"tutorcenter/internal/core/apperror"
	"tutorcenter/internal/core/entity"
	"tutorcenter/internal/core/id"
	"tutorcenter/internal/domain/progress"
)

// Sheet is a study booklet for one subject.
type Sheet struct {
	entity.Catalog

	Code           string `db:"code" json:"code"`
	Title          string `db:"title" json:"title"`
	SubjectID      id.ID  `db:"subject_id" json:"subjectId"`
	TotalPages     int    `db:"total_pages" json:"totalPages"`
	TotalQuestions int    `db:"total_questions" json:"totalQuestions"`
}

// NewSheet creates an active sheet.
func NewSheet(code, title string, subjectID id.ID, pages, questions int) *Sheet {
	return &Sheet{
		Catalog:        entity.NewCatalog(),
		Code:           code,
		Title:          title,
		SubjectID:      subjectID,
		TotalPages:     pages,
		TotalQuestions: questions,
	}
}

// Validate implements entity.Validatable interface.
func (s *Sheet) Validate(ctx context.Context) error {
	if err := entity.RequireText("code", s.Code); err != nil {
		return err
	}
	if err := entity.RequireText("title", s.Title); err != nil {
		return err
	}
	if id.IsNil(s.SubjectID) {
		return apperror.NewValidation("subject is required").WithDetail("field", "subjectId")
	}
	if err := entity.RequireNonNegative("totalPages", s.TotalPages); err != nil {
		return err
	}
	return entity.RequireNonNegative("totalQuestions", s.TotalQuestions)
}

// PageCount implements progress.Sheet.
func (s *Sheet) PageCount() int { return s.TotalPages }

// QuestionCount implements progress.Sheet.
func (s *Sheet) QuestionCount() int { return s.TotalQuestions }

var _ progress.Sheet = (*Sheet)(nil)
