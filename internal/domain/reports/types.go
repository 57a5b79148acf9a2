// Package reports builds the read-only dashboards: daily roster, sheet
// progress, weekly activity and attendance details.
package reports

import (
	"time"

	"tutorcenter/internal/core/id"
	"tutorcenter/internal/domain/sessions"
)

// ClassInfo is an active class with its seat count.
type ClassInfo struct {
	ID         id.ID  `db:"id" json:"id"`
	Name       string `db:"name" json:"name"`
	TotalSeats int    `db:"total_seats" json:"totalSeats"`
}

// RosterRow is an active enrollment with the facts the dashboard shows.
type RosterRow struct {
	EnrollmentID   id.ID            `db:"enrollment_id" json:"enrollmentId"`
	SaleRunNo      *string          `db:"sale_run_no" json:"saleRunNo,omitempty"`
	StudentID      id.ID            `db:"student_id" json:"studentId"`
	StudentCode    string           `db:"student_code" json:"studentCode"`
	Nickname       string           `db:"nickname" json:"nickname"`
	FullName       string           `db:"full_name" json:"fullName"`
	GradeLevel     string           `db:"grade_level" json:"gradeLevel"`
	ClassID        id.ID            `db:"class_id" json:"classId"`
	ClassName      string           `db:"class_name" json:"className"`
	SessionsTotal  int              `db:"sessions_total" json:"sessionsTotal"`
	Used           int              `db:"used" json:"used"`
	CourseSeq      int              `db:"course_seq" json:"courseSeq"`
	CourseTotal    int              `db:"course_total" json:"courseTotal"`
	Status         *sessions.Status `db:"status" json:"status,omitempty"`
	Notified       bool             `db:"notified_near_complete" json:"notified"`
	NotifiedMethod string           `db:"notified_method" json:"notifiedMethod,omitempty"`
}

// DashboardRow is a roster row with derived values.
type DashboardRow struct {
	RosterRow
	Remaining    int  `json:"remaining"`
	NearComplete bool `json:"nearComplete"`
}

// Seats is the occupancy of a class.
type Seats struct {
	Total    int `json:"total"`
	Occupied int `json:"occupied"`
	Free     int `json:"free"`
}

// SheetProgress is one subject's position in a class.
type SheetProgress struct {
	ClassID          id.ID   `db:"class_id" json:"classId"`
	SubjectID        id.ID   `db:"subject_id" json:"subjectId"`
	SubjectName      string  `db:"subject_name" json:"subjectName"`
	SheetID          *id.ID  `db:"sheet_id" json:"sheetId,omitempty"`
	SheetCode        *string `db:"sheet_code" json:"sheetCode,omitempty"`
	SheetTitle       *string `db:"sheet_title" json:"sheetTitle,omitempty"`
	TotalPages       *int    `db:"total_pages" json:"totalPages,omitempty"`
	TotalQuestions   *int    `db:"total_questions" json:"totalQuestions,omitempty"`
	PageTaughtTo     int     `db:"page_taught_to" json:"page"`
	QuestionTaughtTo int     `db:"question_taught_to" json:"question"`
	LastTeacher      string  `db:"last_teacher" json:"lastTeacher"`
	Percent          int     `db:"-" json:"percent"`
}

// ClassBlock is the dashboard section of one class.
type ClassBlock struct {
	ClassInfo
	Seats   Seats            `json:"seats"`
	Summary sessions.Summary `json:"summary"`
	Rows    []DashboardRow   `json:"rows"`
	Sheets  []SheetProgress  `json:"sheets"`
}

// Dashboard is the daily overview.
type Dashboard struct {
	Date          string           `json:"date"`
	Classes       []ClassBlock     `json:"classes"`
	GlobalSummary sessions.Summary `json:"globalSummary"`
	NearComplete  []DashboardRow   `json:"nearComplete"`
	SheetDate     *string          `json:"sheetDate,omitempty"`
}

// WeekBucket counts distinct active students attending in one week.
type WeekBucket struct {
	Start time.Time `json:"start"`
	Label string    `json:"label"`
	Count int       `json:"count"`
}

// WeeklyActive is the activity chart of the last weeks.
type WeeklyActive struct {
	Weeks    []WeekBucket `json:"weeks"`
	Labels   []string     `json:"labels"`
	Counts   []int        `json:"counts"`
	MaxCount int          `json:"maxCount"`
}

// StudentDay is one attendance of an active student.
type StudentDay struct {
	StudentID id.ID     `db:"student_id"`
	Date      time.Time `db:"date"`
}

// AttendanceCell is one record in the details grid.
type AttendanceCell struct {
	EnrollmentID id.ID           `db:"enrollment_id" json:"-"`
	Date         time.Time       `db:"date" json:"date"`
	Status       sessions.Status `db:"status" json:"status"`
}

// DetailRow is an enrollment with its records in date order.
type DetailRow struct {
	RosterRow
	Records []AttendanceCell `json:"records"`
}

// DetailClass is one class of the details grid.
type DetailClass struct {
	ClassInfo
	Columns int         `json:"columns"`
	Rows    []DetailRow `json:"rows"`
}
