package enrollment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"tutorcenter/internal/core/id"
	"tutorcenter/internal/core/types"
)

func TestPrepare(t *testing.T) {
	classPrice := types.MustMoney("12000")

	tests := []struct {
		name         string
		in           func(e *Enrollment)
		sessions     int
		coursePrice  string
		installments int
		netPrice     string
	}{
		{
			name:         "normal type snapshots class price",
			in:           func(e *Enrollment) { e.Type = TypeNormal20; e.SessionsTotal = 3 },
			sessions:     20,
			coursePrice:  "12000",
			installments: 1,
			netPrice:     "12000",
		},
		{
			name:         "special keeps edited sessions",
			in:           func(e *Enrollment) { e.Type = TypeSpecial; e.SessionsTotal = 7 },
			sessions:     7,
			coursePrice:  "12000",
			installments: 1,
			netPrice:     "12000",
		},
		{
			name: "explicit price wins over class",
			in: func(e *Enrollment) {
				e.CoursePrice = types.MustMoney("9000")
				e.DiscountAmount = types.MustMoney("500")
			},
			sessions:     10,
			coursePrice:  "9000",
			installments: 1,
			netPrice:     "8500",
		},
		{
			name:         "discount above price clamps to zero",
			in:           func(e *Enrollment) { e.DiscountAmount = types.MustMoney("15000") },
			sessions:     10,
			coursePrice:  "12000",
			installments: 1,
			netPrice:     "0",
		},
		{
			name:         "full payment forces one installment",
			in:           func(e *Enrollment) { e.InstallmentsCount = 4 },
			sessions:     10,
			coursePrice:  "12000",
			installments: 1,
			netPrice:     "12000",
		},
		{
			name: "installment keeps count",
			in: func(e *Enrollment) {
				e.PaymentType = PaymentInstallment
				e.InstallmentsCount = 3
			},
			sessions:     10,
			coursePrice:  "12000",
			installments: 3,
			netPrice:     "12000",
		},
		{
			name: "installment count at least one",
			in: func(e *Enrollment) {
				e.PaymentType = PaymentInstallment
				e.InstallmentsCount = 0
			},
			sessions:     10,
			coursePrice:  "12000",
			installments: 1,
			netPrice:     "12000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEnrollment(id.New(), id.New())
			tt.in(e)
			before := *e

			got := Prepare(*e, classPrice)

			assert.Equal(t, tt.sessions, got.SessionsTotal)
			assert.Equal(t, tt.coursePrice, got.CoursePrice.String())
			assert.Equal(t, tt.installments, got.InstallmentsCount)
			assert.Equal(t, tt.netPrice, got.NetPrice.String())
			assert.Equal(t, before, *e, "input must not change")
		})
	}
}

func TestSettleInstallment(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	earlier := now.Add(-24 * time.Hour)

	paid := SettleInstallment(Installment{AmountDue: types.MustMoney("4000"), AmountPaid: types.MustMoney("4000")}, now)
	assert.True(t, paid.IsPaid)
	assert.Equal(t, now, *paid.PaidAt)

	again := SettleInstallment(Installment{AmountDue: types.MustMoney("4000"), AmountPaid: types.MustMoney("4500"), PaidAt: &earlier}, now)
	assert.True(t, again.IsPaid)
	assert.Equal(t, earlier, *again.PaidAt, "first paid time is kept")

	partial := SettleInstallment(Installment{AmountDue: types.MustMoney("4000"), AmountPaid: types.MustMoney("100"), IsPaid: true, PaidAt: &earlier}, now)
	assert.False(t, partial.IsPaid)
	assert.Nil(t, partial.PaidAt)

	zeroDue := SettleInstallment(Installment{AmountDue: types.Zero(), AmountPaid: types.Zero()}, now)
	assert.False(t, zeroDue.IsPaid)
	assert.Nil(t, zeroDue.PaidAt)
}

func TestPlanInstallments_RemainderOnLast(t *testing.T) {
	e := NewEnrollment(id.New(), id.New())
	e.InstallmentsCount = 3
	e.NetPrice = types.MustMoney("10000")

	plan := PlanInstallments(e)
	assert.Len(t, plan, 3)
	assert.Equal(t, "3333.33", plan[0].AmountDue.StringFixed(2))
	assert.Equal(t, "3333.33", plan[1].AmountDue.StringFixed(2))
	assert.Equal(t, "3333.34", plan[2].AmountDue.StringFixed(2))
	for i, p := range plan {
		assert.Equal(t, i+1, p.InstallmentNo)
		assert.Equal(t, e.ID, p.EnrollmentID)
	}
}

func TestDerivedHoursAndRevenue(t *testing.T) {
	hours := TotalHours(10, types.MustMoney("3"))
	assert.Equal(t, "30", hours.String())
	assert.Equal(t, "400.00", RevenuePerHour(types.MustMoney("12000"), hours).StringFixed(2))
	assert.Equal(t, "333.33", RevenuePerHour(types.MustMoney("10000"), hours).StringFixed(2))
	assert.True(t, RevenuePerHour(types.MustMoney("12000"), types.Zero()).IsZero())
}

func TestType_Sessions(t *testing.T) {
	assert.Equal(t, 10, TypeNormal10.Sessions())
	assert.Equal(t, 20, TypeNormal20.Sessions())
	assert.Equal(t, 11, TypeFirstTrial11.Sessions())
	assert.Equal(t, 12, TypeFirstBonus12.Sessions())
	assert.Equal(t, 10, TypeSpecial.Sessions())
	assert.False(t, Type("weekly").Valid())
}
