// Package attendance records daily class check-ins and the session balance
// they consume.
package attendance

import (
	"time"

	"tutorcenter/internal/core/entity"
	"tutorcenter/internal/core/id"
	"tutorcenter/internal/domain/sessions"
)

// Record is one enrollment's outcome on one date.
type Record struct {
	entity.Record

	StudentID    id.ID           `db:"student_id" json:"studentId"`
	EnrollmentID id.ID           `db:"enrollment_id" json:"enrollmentId"`
	Date         time.Time       `db:"date" json:"date"`
	Status       sessions.Status `db:"status" json:"status"`
	CheckedAt    time.Time       `db:"checked_at" json:"checkedAt"`
}

// Deducted reports whether the record consumed a session.
func (r *Record) Deducted() bool {
	return r.Status.Deducts()
}

// Item is one submitted status.
type Item struct {
	EnrollmentID id.ID           `json:"enrollmentId"`
	Status       sessions.Status `json:"status"`
}

// RosterEntry is an active enrollment expected in a class submit.
type RosterEntry struct {
	EnrollmentID  id.ID `db:"enrollment_id"`
	StudentID     id.ID `db:"student_id"`
	SessionsTotal int   `db:"sessions_total"`
}

// SubmitResult is returned after a class submit.
type SubmitResult struct {
	ClassID       id.ID            `json:"classId"`
	Date          string           `json:"date"`
	ClassSummary  sessions.Summary `json:"classSummary"`
	GlobalSummary sessions.Summary `json:"globalSummary"`
	RemainingMap  map[id.ID]int    `json:"remainingMap"`
}
