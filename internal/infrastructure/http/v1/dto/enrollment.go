package dto

import (
	"strings"

	"tutorcenter/internal/core/id"
	"tutorcenter/internal/core/types"
	"tutorcenter/internal/domain/documents/enrollment"
)

// CreateEnrollmentRequest sells a package of sessions. Sale run number,
// net price and, unless the type is special, the session count are derived.
type CreateEnrollmentRequest struct {
	StudentID         id.ID                  `json:"studentId" binding:"required"`
	ClassID           id.ID                  `json:"classId" binding:"required"`
	Type              enrollment.Type        `json:"enrollmentType"`
	SessionsTotal     *int                   `json:"sessionsTotal"`
	Remark            string                 `json:"remark"`
	PaymentType       enrollment.PaymentType `json:"paymentType"`
	InstallmentsCount int                    `json:"installmentsCount"`
	CoursePrice       *types.Money           `json:"coursePrice"`
	DiscountAmount    *types.Money           `json:"discountAmount"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateEnrollmentRequest) ToEntity() *enrollment.Enrollment {
	e := enrollment.NewEnrollment(r.StudentID, r.ClassID)
	if r.Type != "" {
		e.Type = r.Type
		e.SessionsTotal = r.Type.Sessions()
	}
	if r.SessionsTotal != nil {
		e.SessionsTotal = *r.SessionsTotal
	}
	e.Remark = strings.TrimSpace(r.Remark)
	if r.PaymentType != "" {
		e.PaymentType = r.PaymentType
	}
	e.InstallmentsCount = r.InstallmentsCount
	if r.CoursePrice != nil {
		e.CoursePrice = *r.CoursePrice
	}
	if r.DiscountAmount != nil {
		e.DiscountAmount = *r.DiscountAmount
	}
	return e
}

// UpdateEnrollmentRequest rewrites the editable fields of an enrollment.
type UpdateEnrollmentRequest struct {
	StudentID         id.ID                  `json:"studentId" binding:"required"`
	ClassID           id.ID                  `json:"classId" binding:"required"`
	Type              enrollment.Type        `json:"enrollmentType" binding:"required"`
	SessionsTotal     int                    `json:"sessionsTotal"`
	Remark            string                 `json:"remark"`
	PaymentType       enrollment.PaymentType `json:"paymentType" binding:"required"`
	InstallmentsCount int                    `json:"installmentsCount"`
	CoursePrice       types.Money            `json:"coursePrice"`
	DiscountAmount    types.Money            `json:"discountAmount"`
	Version           int                    `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateEnrollmentRequest) ApplyTo(e *enrollment.Enrollment) {
	e.StudentID = r.StudentID
	e.ClassID = r.ClassID
	e.Type = r.Type
	e.SessionsTotal = r.SessionsTotal
	e.Remark = strings.TrimSpace(r.Remark)
	e.PaymentType = r.PaymentType
	e.InstallmentsCount = r.InstallmentsCount
	e.CoursePrice = r.CoursePrice
	e.DiscountAmount = r.DiscountAmount
	e.Version = r.Version
}

// CloseEnrollmentRequest ends a course.
type CloseEnrollmentRequest struct {
	Reason enrollment.CloseReason `json:"reason" binding:"required"`
}

// PaymentRequest adds a payment to an installment.
type PaymentRequest struct {
	Amount types.Money `json:"amount"`
}
