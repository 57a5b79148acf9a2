package alerts

import (
	"context"
	"time"

	"tutorcenter/internal/core/id"
	"tutorcenter/internal/domain/documents/enrollment"
	"tutorcenter/internal/domain/sessions"
)

// Candidate is an active enrollment of an active student in an active
// class, with its attendance count.
type Candidate struct {
	EnrollmentID   id.ID                   `db:"enrollment_id" json:"enrollmentId"`
	SaleRunNo      *string                 `db:"sale_run_no" json:"saleRunNo,omitempty"`
	StudentID      id.ID                   `db:"student_id" json:"studentId"`
	StudentCode    string                  `db:"student_code" json:"studentCode"`
	FullName       string                  `db:"full_name" json:"fullName"`
	Nickname       string                  `db:"nickname" json:"nickname"`
	ParentPhone    string                  `db:"parent_phone" json:"parentPhone"`
	ContactChannel string                  `db:"contact_channel" json:"contactChannel"`
	ClassID        id.ID                   `db:"class_id" json:"classId"`
	ClassName      string                  `db:"class_name" json:"className"`
	SessionsTotal  int                     `db:"sessions_total" json:"sessionsTotal"`
	Used           int                     `db:"used" json:"used"`
	Notified       bool                    `db:"notified_near_complete" json:"notified"`
	NotifiedMethod enrollment.NotifyMethod `db:"notified_method" json:"notifiedMethod,omitempty"`
	NotifiedAt     *time.Time              `db:"notified_at" json:"notifiedAt,omitempty"`
}

// Remaining is the session balance.
func (c *Candidate) Remaining() int {
	return sessions.Remaining(c.SessionsTotal, c.Used)
}

// Facts returns the rule variables of c.
func (c *Candidate) Facts() Facts {
	return Facts{
		Remaining:     c.Remaining(),
		SessionsTotal: c.SessionsTotal,
		Used:          c.Used,
		Notified:      c.Notified,
	}
}

// Alert is a matched candidate.
type Alert struct {
	Candidate
	RemainingSessions int `json:"remaining"`
}

// Repository reads alert candidates.
type Repository interface {
	// Candidates returns active enrollments ordered by remaining sessions,
	// then class name and student code.
	Candidates(ctx context.Context) ([]Candidate, error)
}

// Marker records parent notification on an enrollment.
type Marker interface {
	MarkNotified(ctx context.Context, enrollmentID id.ID, method enrollment.NotifyMethod) (*enrollment.Enrollment, error)
}

// Service evaluates the near-complete rule.
type Service struct {
	repo   Repository
	marker Marker
	rule   *Rule
}

// NewService creates an alerts service. A nil rule means DefaultRule.
func NewService(repo Repository, marker Marker, rule *Rule) *Service {
	if rule == nil {
		rule = MustCompileRule(DefaultRule)
	}
	return &Service{repo: repo, marker: marker, rule: rule}
}

// Rule returns the active rule.
func (s *Service) Rule() *Rule {
	return s.rule
}

// NearComplete returns candidates matching the rule.
func (s *Service) NearComplete(ctx context.Context) ([]Alert, error) {
	candidates, err := s.repo.Candidates(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Alert, 0)
	for _, c := range candidates {
		ok, err := s.rule.Match(c.Facts())
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, Alert{Candidate: c, RemainingSessions: c.Remaining()})
		}
	}
	return out, nil
}

// Mark sets or clears the notified flag of an enrollment.
func (s *Service) Mark(ctx context.Context, enrollmentID id.ID, method enrollment.NotifyMethod) (*enrollment.Enrollment, error) {
	return s.marker.MarkNotified(ctx, enrollmentID, method)
}
