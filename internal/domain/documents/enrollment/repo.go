package enrollment

import (
	"context"

	"tutorcenter/internal/core/id"
	"tutorcenter/internal/core/types"
	"tutorcenter/internal/domain"
)

// Repository defines persistence for enrollments and their installments.
type Repository interface {
	Create(ctx context.Context, e *Enrollment) error
	GetByID(ctx context.Context, id id.ID) (*Enrollment, error)
	GetForUpdate(ctx context.Context, id id.ID) (*Enrollment, error)
	// Update writes e with optimistic locking on Version.
	Update(ctx context.Context, e *Enrollment) error
	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Enrollment], error)

	// UsedSessions counts deducting attendance per enrollment. Enrollments
	// without attendance are absent from the map.
	UsedSessions(ctx context.Context, ids []id.ID) (map[id.ID]int, error)

	// CreateInstallments bulk-inserts a payment plan.
	CreateInstallments(ctx context.Context, items []*Installment) error
	ListInstallments(ctx context.Context, enrollmentID id.ID) ([]*Installment, error)
	GetInstallmentForUpdate(ctx context.Context, id id.ID) (*Installment, error)
	UpdateInstallment(ctx context.Context, i *Installment) error
}

// ClassInfo is the part of a class an enrollment derives from.
type ClassInfo struct {
	CoursePrice     types.Money
	HoursPerSession types.Hours
}

// Lookup resolves the student code and class pricing an enrollment needs.
type Lookup interface {
	StudentCode(ctx context.Context, studentID id.ID) (string, error)
	Class(ctx context.Context, classID id.ID) (ClassInfo, error)
}
