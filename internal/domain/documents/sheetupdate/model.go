// Package sheetupdate keeps a daily log of how far each class got in each
// subject's sheet.
package sheetupdate

import (
	"strings"
	"time"

	"tutorcenter/internal/core/apperror"
	"tutorcenter/internal/core/entity"
	"tutorcenter/internal/core/id"
	"tutorcenter/internal/domain/progress"
)

// Entry is one (class, subject, date) progress note.
type Entry struct {
	entity.Record

	ClassID          id.ID     `db:"class_id" json:"classId"`
	SubjectID        id.ID     `db:"subject_id" json:"subjectId"`
	Date             time.Time `db:"date" json:"date"`
	SheetID          *id.ID    `db:"sheet_id" json:"sheetId,omitempty"`
	PageTaughtTo     int       `db:"page_taught_to" json:"pageTaughtTo"`
	QuestionTaughtTo int       `db:"question_taught_to" json:"questionTaughtTo"`
	LastTeacher      string    `db:"last_teacher" json:"lastTeacher"`
}

// EntryView is an entry joined with its sheet's code and totals.
type EntryView struct {
	Entry

	SheetCode      *string `db:"sheet_code" json:"sheetCode,omitempty"`
	TotalPages     *int    `db:"total_pages" json:"totalPages,omitempty"`
	TotalQuestions *int    `db:"total_questions" json:"totalQuestions,omitempty"`
}

// Percent is the entry's progress through its sheet, 0 without one.
func (v *EntryView) Percent() int {
	if v.SheetID == nil || v.TotalPages == nil || v.TotalQuestions == nil {
		return 0
	}
	return progress.ForSheet(progress.Totals{Pages: *v.TotalPages, Questions: *v.TotalQuestions},
		v.PageTaughtTo, v.QuestionTaughtTo)
}

// Item is one submitted row. Nil fields are saved as zero or empty.
type Item struct {
	ClassID          id.ID   `json:"classId"`
	SubjectID        id.ID   `json:"subjectId"`
	SheetID          *id.ID  `json:"sheetId"`
	PageTaughtTo     *int    `json:"pageTaughtTo"`
	QuestionTaughtTo *int    `json:"questionTaughtTo"`
	LastTeacher      *string `json:"lastTeacher"`
}

// Validate rejects negative counters.
func (it Item) Validate() error {
	if it.PageTaughtTo != nil && *it.PageTaughtTo < 0 {
		return apperror.NewValidation("page must not be negative").WithDetail("field", "pageTaughtTo")
	}
	if it.QuestionTaughtTo != nil && *it.QuestionTaughtTo < 0 {
		return apperror.NewValidation("question must not be negative").WithDetail("field", "questionTaughtTo")
	}
	return nil
}

// Apply copies the item's values onto e, defaulting missing ones.
func (it Item) Apply(e *Entry) {
	e.SheetID = it.SheetID
	e.PageTaughtTo = deref(it.PageTaughtTo)
	e.QuestionTaughtTo = deref(it.QuestionTaughtTo)
	e.LastTeacher = ""
	if it.LastTeacher != nil {
		e.LastTeacher = strings.TrimSpace(*it.LastTeacher)
	}
}

func deref(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
