// Package portal lets parents look up their child's sessions with the
// student code and the parent phone number on file.
package portal

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"tutorcenter/internal/core/apperror"
	"tutorcenter/internal/core/id"
	"tutorcenter/internal/core/types"
	"tutorcenter/internal/domain/catalogs/student"
	"tutorcenter/internal/domain/sessions"
)

// Students finds students by code.
type Students interface {
	GetByCode(ctx context.Context, code string) (*student.Student, error)
}

// EnrollmentSummary is one of the student's courses.
type EnrollmentSummary struct {
	ID              id.ID       `db:"id" json:"id"`
	SaleRunNo       *string     `db:"sale_run_no" json:"saleRunNo,omitempty"`
	ClassName       string      `db:"class_name" json:"className"`
	EnrollmentType  string      `db:"enrollment_type" json:"enrollmentType"`
	SessionsTotal   int         `db:"sessions_total" json:"sessionsTotal"`
	Used            int         `db:"used" json:"used"`
	HoursPerSession types.Hours `db:"hours_per_session" json:"hoursPerSession"`
	IsActive        bool        `db:"is_active" json:"isActive"`
	CreatedAt       time.Time   `db:"created_at" json:"createdAt"`
}

// HistoryRow is one attendance record shown to the parent.
type HistoryRow struct {
	Date      time.Time       `db:"date" json:"date"`
	Status    sessions.Status `db:"status" json:"status"`
	CheckedAt time.Time       `db:"checked_at" json:"checkedAt"`
}

// Repository reads portal data.
type Repository interface {
	// Enrollments lists a student's enrollments, active first then newest.
	Enrollments(ctx context.Context, studentID id.ID) ([]EnrollmentSummary, error)
	// Attendance lists an enrollment's records newest first.
	Attendance(ctx context.Context, studentID, enrollmentID id.ID) ([]HistoryRow, error)
}

// Profile is the public part of a student.
type Profile struct {
	Code        string `json:"code"`
	DisplayName string `json:"displayName"`
	Nickname    string `json:"nickname"`
	GradeLevel  string `json:"gradeLevel"`
}

// Home is what the parent sees after logging in.
type Home struct {
	Student           Profile             `json:"student"`
	Enrollments       []EnrollmentSummary `json:"enrollments"`
	Selected          *EnrollmentSummary  `json:"selected,omitempty"`
	Attendance        []HistoryRow        `json:"attendance"`
	RemainingSessions int                 `json:"remainingSessions"`
	HoursPerSession   types.Hours         `json:"hoursPerSession"`
	RemainingHours    types.Hours         `json:"remainingHours"`
}

// Service implements the parent lookup.
type Service struct {
	students Students
	repo     Repository
}

// NewService creates a new portal service.
func NewService(students Students, repo Repository) *Service {
	return &Service{students: students, repo: repo}
}

// Login returns the active student matching code whose parent phone has the
// same digits as phone.
func (s *Service) Login(ctx context.Context, code, phone string) (*student.Student, error) {
	code = strings.TrimSpace(code)
	if code == "" || strings.TrimSpace(phone) == "" {
		return nil, apperror.NewInvalidCredentials()
	}

	st, err := s.students.GetByCode(ctx, code)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewInvalidCredentials()
		}
		return nil, err
	}
	if !st.IsActive || !student.PhoneMatches(st.ParentPhone, phone) {
		return nil, apperror.NewInvalidCredentials()
	}
	return st, nil
}

// Home logs in and returns the student's courses. enrollmentID selects the
// course to detail; nil or an id that is not the student's selects the first.
func (s *Service) Home(ctx context.Context, code, phone string, enrollmentID *id.ID) (*Home, error) {
	st, err := s.Login(ctx, code, phone)
	if err != nil {
		return nil, err
	}

	enrollments, err := s.repo.Enrollments(ctx, st.ID)
	if err != nil {
		return nil, err
	}

	home := &Home{
		Student: Profile{
			Code:        st.Code,
			DisplayName: st.DisplayName(),
			Nickname:    st.Nickname,
			GradeLevel:  st.GradeLevel,
		},
		Enrollments:     enrollments,
		Attendance:      []HistoryRow{},
		HoursPerSession: types.Zero(),
		RemainingHours:  types.Zero(),
	}

	home.Selected = pick(enrollments, enrollmentID)
	if home.Selected == nil {
		return home, nil
	}

	history, err := s.repo.Attendance(ctx, st.ID, home.Selected.ID)
	if err != nil {
		return nil, err
	}
	if history != nil {
		home.Attendance = history
	}
	home.RemainingSessions = sessions.Remaining(home.Selected.SessionsTotal, home.Selected.Used)
	home.HoursPerSession = home.Selected.HoursPerSession
	home.RemainingHours = RemainingHours(home.RemainingSessions, home.Selected.HoursPerSession)
	return home, nil
}

// RemainingHours is remaining sessions × hours per session.
func RemainingHours(remaining int, hoursPerSession types.Hours) types.Hours {
	return hoursPerSession.Mul(decimal.NewFromInt(int64(remaining)))
}

func pick(enrollments []EnrollmentSummary, want *id.ID) *EnrollmentSummary {
	if len(enrollments) == 0 {
		return nil
	}
	if want != nil {
		for i := range enrollments {
			if enrollments[i].ID == *want {
				return &enrollments[i]
			}
		}
	}
	return &enrollments[0]
}
