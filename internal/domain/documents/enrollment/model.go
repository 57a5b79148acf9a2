// Package enrollment models a student's purchase of a session package in a
// class, its payment plan and its lifecycle up to closing.
package enrollment

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"tutorcenter/internal/core/apperror"
	"tutorcenter/internal/core/entity"
	"tutorcenter/internal/core/id"
	"tutorcenter/internal/core/types"
)

// Type is the package bought.
type Type string

const (
	TypeNormal10     Type = "normal_10"
	TypeNormal20     Type = "normal_20"
	TypeFirstTrial11 Type = "first_trial_11"
	TypeFirstBonus12 Type = "first_bonus_12"
	TypeSpecial      Type = "special"
)

var typeSessions = map[Type]int{
	TypeNormal10:     10,
	TypeNormal20:     20,
	TypeFirstTrial11: 11,
	TypeFirstBonus12: 12,
	TypeSpecial:      10,
}

// Types lists all enrollment types in display order.
func Types() []Type {
	return []Type{TypeNormal10, TypeNormal20, TypeFirstTrial11, TypeFirstBonus12, TypeSpecial}
}

// Sessions returns the session count the type sells. For special it is only
// the starting value; staff may edit it.
func (t Type) Sessions() int {
	if n, ok := typeSessions[t]; ok {
		return n
	}
	return 10
}

// Valid reports whether t is a known type.
func (t Type) Valid() bool {
	_, ok := typeSessions[t]
	return ok
}

// PaymentType is how the course is paid.
type PaymentType string

const (
	PaymentFull        PaymentType = "full"
	PaymentInstallment PaymentType = "installment"
)

// CloseReason records why a course ended.
type CloseReason string

const (
	CloseRenew    CloseReason = "renew"
	CloseNotRenew CloseReason = "not_renew"
)

// NotifyMethod is the channel used to tell the parent the course is ending.
type NotifyMethod string

const (
	NotifyLine     NotifyMethod = "line"
	NotifyFacebook NotifyMethod = "facebook"
	NotifyPaper    NotifyMethod = "paper"
)

// Valid reports whether m is a known channel.
func (m NotifyMethod) Valid() bool {
	switch m {
	case NotifyLine, NotifyFacebook, NotifyPaper:
		return true
	}
	return false
}

// Enrollment is one purchased package of sessions.
type Enrollment struct {
	entity.Record

	StudentID     id.ID   `db:"student_id" json:"studentId"`
	ClassID       id.ID   `db:"class_id" json:"classId"`
	Type          Type    `db:"enrollment_type" json:"enrollmentType"`
	SessionsTotal int     `db:"sessions_total" json:"sessionsTotal"`
	SaleRunNo     *string `db:"sale_run_no" json:"saleRunNo,omitempty"`
	Remark        string  `db:"remark" json:"remark"`

	IsActive     bool        `db:"is_active" json:"isActive"`
	ClosedReason CloseReason `db:"closed_reason" json:"closedReason,omitempty"`
	ClosedAt     *time.Time  `db:"closed_at" json:"closedAt,omitempty"`

	PaymentType       PaymentType `db:"payment_type" json:"paymentType"`
	InstallmentsCount int         `db:"installments_count" json:"installmentsCount"`
	CoursePrice       types.Money `db:"course_price" json:"coursePrice"`
	DiscountAmount    types.Money `db:"discount_amount" json:"discountAmount"`
	NetPrice          types.Money `db:"net_price" json:"netPrice"`

	NotifiedNearComplete bool         `db:"notified_near_complete" json:"notifiedNearComplete"`
	NotifiedMethod       NotifyMethod `db:"notified_method" json:"notifiedMethod,omitempty"`
	NotifiedAt           *time.Time   `db:"notified_at" json:"notifiedAt,omitempty"`
}

// NewEnrollment creates an active, fully-paid normal_10 enrollment.
func NewEnrollment(studentID, classID id.ID) *Enrollment {
	return &Enrollment{
		Record:            entity.NewRecord(),
		StudentID:         studentID,
		ClassID:           classID,
		Type:              TypeNormal10,
		SessionsTotal:     TypeNormal10.Sessions(),
		IsActive:          true,
		PaymentType:       PaymentFull,
		InstallmentsCount: 1,
		CoursePrice:       types.Zero(),
		DiscountAmount:    types.Zero(),
		NetPrice:          types.Zero(),
	}
}

// SaleRun returns the sale run number or "".
func (e *Enrollment) SaleRun() string {
	if e.SaleRunNo == nil {
		return ""
	}
	return *e.SaleRunNo
}

// Validate implements entity.Validatable interface.
func (e *Enrollment) Validate(ctx context.Context) error {
	if id.IsNil(e.StudentID) {
		return apperror.NewValidation("student is required").WithDetail("field", "studentId")
	}
	if id.IsNil(e.ClassID) {
		return apperror.NewValidation("class is required").WithDetail("field", "classId")
	}
	if !e.Type.Valid() {
		return apperror.NewValidation("invalid enrollment type").
			WithDetail("field", "enrollmentType").
			WithDetail("value", string(e.Type))
	}
	if err := entity.RequireNonNegative("sessionsTotal", e.SessionsTotal); err != nil {
		return err
	}
	switch e.PaymentType {
	case PaymentFull, PaymentInstallment:
	default:
		return apperror.NewValidation("invalid payment type").
			WithDetail("field", "paymentType").
			WithDetail("value", string(e.PaymentType))
	}
	if e.CoursePrice.IsNegative() || e.DiscountAmount.IsNegative() {
		return apperror.NewValidation("price and discount must not be negative")
	}
	return nil
}

// Prepare derives the stored fields of e from its inputs and the class it
// belongs to. It returns a new value and leaves e untouched.
//
//   - sessions_total follows the type, except for special
//   - course_price is snapshotted from the class while it is still 0
//   - full payment is one installment; otherwise at least one
//   - net_price = max(0, course_price - discount)
func Prepare(e Enrollment, classPrice types.Money) Enrollment {
	if e.Type != TypeSpecial {
		e.SessionsTotal = e.Type.Sessions()
	}
	if e.CoursePrice.IsZero() {
		e.CoursePrice = classPrice
	}
	if e.PaymentType == PaymentFull || e.InstallmentsCount < 1 {
		e.InstallmentsCount = 1
	}
	e.NetPrice = types.ClampZero(e.CoursePrice.Sub(e.DiscountAmount))
	return e
}

// TotalHours is sessions × hours per session.
func TotalHours(sessionsTotal int, hoursPerSession types.Hours) types.Hours {
	return hoursPerSession.Mul(decimal.NewFromInt(int64(sessionsTotal)))
}

// RevenuePerHour is net price over total hours, rounded to 2 places; 0 when
// the course has no hours.
func RevenuePerHour(netPrice types.Money, totalHours types.Hours) types.Money {
	return types.SafeDiv(netPrice, totalHours, 2)
}
