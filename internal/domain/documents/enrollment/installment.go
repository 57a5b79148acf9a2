package enrollment

import (
	"context"
	"time"

	"tutorcenter/internal/core/apperror"
	"tutorcenter/internal/core/entity"
	"tutorcenter/internal/core/id"
	"tutorcenter/internal/core/types"
)

// Installment is one scheduled payment of an enrollment.
type Installment struct {
	entity.BaseEntity

	EnrollmentID  id.ID       `db:"enrollment_id" json:"enrollmentId"`
	InstallmentNo int         `db:"installment_no" json:"installmentNo"`
	AmountDue     types.Money `db:"amount_due" json:"amountDue"`
	AmountPaid    types.Money `db:"amount_paid" json:"amountPaid"`
	IsPaid        bool        `db:"is_paid" json:"isPaid"`
	PaidAt        *time.Time  `db:"paid_at" json:"paidAt,omitempty"`
	Note          string      `db:"note" json:"note"`
}

// Validate implements entity.Validatable interface.
func (i *Installment) Validate(ctx context.Context) error {
	if i.InstallmentNo < 1 {
		return apperror.NewValidation("installment number starts at 1").
			WithDetail("field", "installmentNo")
	}
	if i.AmountDue.IsNegative() || i.AmountPaid.IsNegative() {
		return apperror.NewValidation("amounts must not be negative")
	}
	return nil
}

// Outstanding is due minus paid, never below zero.
func (i *Installment) Outstanding() types.Money {
	return types.ClampZero(i.AmountDue.Sub(i.AmountPaid))
}

// SettleInstallment derives the paid flag: paid once amount_paid covers a
// positive amount_due. paid_at is set on the first transition to paid and
// cleared when the installment is not paid. Returns a new value.
func SettleInstallment(i Installment, now time.Time) Installment {
	i.IsPaid = i.AmountDue.IsPositive() && i.AmountPaid.GreaterThanOrEqual(i.AmountDue)
	switch {
	case i.IsPaid && i.PaidAt == nil:
		t := now
		i.PaidAt = &t
	case !i.IsPaid:
		i.PaidAt = nil
	}
	return i
}

// PlanInstallments splits the net price of e evenly over its installment
// count. The rounding remainder lands on the last installment.
func PlanInstallments(e *Enrollment) []*Installment {
	n := e.InstallmentsCount
	if n < 1 {
		n = 1
	}
	parts := types.SplitEvenly(e.NetPrice, n, 2)
	out := make([]*Installment, 0, n)
	for i, amount := range parts {
		out = append(out, &Installment{
			BaseEntity:    entity.NewBaseEntity(),
			EnrollmentID:  e.ID,
			InstallmentNo: i + 1,
			AmountDue:     amount,
			AmountPaid:    types.Zero(),
		})
	}
	return out
}
