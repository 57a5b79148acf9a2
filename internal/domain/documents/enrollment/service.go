package enrollment

import (
	"context"
	"fmt"

	"tutorcenter/internal/core/apperror"
	"tutorcenter/internal/core/codealloc"
	"tutorcenter/internal/core/id"
	"tutorcenter/internal/core/tx"
	"tutorcenter/internal/core/types"
	"tutorcenter/internal/domain"
	"tutorcenter/internal/domain/audit"
	"tutorcenter/internal/domain/sessions"
	"tutorcenter/pkg/logger"
)

const entityName = "enrollment"

// Detail is an enrollment with its derived figures.
type Detail struct {
	*Enrollment

	HoursPerSession types.Hours `json:"hoursPerSession"`
	Used            int         `json:"usedSessions"`
	Remaining       int         `json:"remainingSessions"`
	TotalHours      types.Hours `json:"totalHours"`
	RevenuePerHour  types.Money `json:"revenuePerHour"`
}

// Service provides enrollment business logic.
type Service struct {
	repo    Repository
	lookup  Lookup
	txm     tx.Manager
	codes   codealloc.Generator
	auditor audit.Recorder
	clock   domain.Clock
}

// Config wires the service.
type Config struct {
	Repo      Repository
	Lookup    Lookup
	TxManager tx.Manager
	Codes     codealloc.Generator
	Audit     audit.Recorder
	Clock     domain.Clock
}

// NewService creates a new enrollment service.
func NewService(cfg Config) *Service {
	if cfg.Audit == nil {
		cfg.Audit = audit.Nop{}
	}
	return &Service{
		repo:    cfg.Repo,
		lookup:  cfg.Lookup,
		txm:     cfg.TxManager,
		codes:   cfg.Codes,
		auditor: cfg.Audit,
		clock:   cfg.Clock,
	}
}

// Create derives the stored fields, allocates the sale run number and
// inserts e in one transaction. Installment enrollments get a payment plan.
func (s *Service) Create(ctx context.Context, e *Enrollment) error {
	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		class, err := s.lookup.Class(ctx, e.ClassID)
		if err != nil {
			return lookupErr(err, "tutoring_class", e.ClassID)
		}

		prepared := Prepare(*e, class.CoursePrice)
		if err := prepared.Validate(ctx); err != nil {
			return err
		}
		now := s.clock.Now().UTC()
		prepared.CreatedAt = now
		audit.Stamp(ctx, &prepared.Record, now)

		if err := s.assignSaleRun(ctx, &prepared); err != nil {
			return err
		}
		if err := s.repo.Create(ctx, &prepared); err != nil {
			return fmt.Errorf("create enrollment: %w", err)
		}

		if prepared.PaymentType == PaymentInstallment {
			if err := s.repo.CreateInstallments(ctx, PlanInstallments(&prepared)); err != nil {
				return fmt.Errorf("plan installments: %w", err)
			}
		}

		if err := s.auditor.Record(ctx, entityName, prepared.ID, audit.ActionCreate, changesOf(&prepared)); err != nil {
			return err
		}
		*e = prepared
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "enrollment created",
		"enrollment_id", e.ID,
		"sale_run_no", e.SaleRun(),
		"type", e.Type,
	)
	return nil
}

// Update rewrites an enrollment's editable fields. The sale run number is
// kept once issued, and allocated now if it is still missing.
func (s *Service) Update(ctx context.Context, e *Enrollment) error {
	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		current, err := s.repo.GetForUpdate(ctx, e.ID)
		if err != nil {
			return lookupErr(err, entityName, e.ID)
		}
		class, err := s.lookup.Class(ctx, e.ClassID)
		if err != nil {
			return lookupErr(err, "tutoring_class", e.ClassID)
		}

		prepared := Prepare(*e, class.CoursePrice)
		if err := prepared.Validate(ctx); err != nil {
			return err
		}
		prepared.CreatedAt = current.CreatedAt
		prepared.SaleRunNo = current.SaleRunNo
		// Closing and notifying go through Close and MarkNotified.
		prepared.IsActive = current.IsActive
		prepared.ClosedReason = current.ClosedReason
		prepared.ClosedAt = current.ClosedAt
		prepared.NotifiedNearComplete = current.NotifiedNearComplete
		prepared.NotifiedMethod = current.NotifiedMethod
		prepared.NotifiedAt = current.NotifiedAt
		audit.Stamp(ctx, &prepared.Record, s.clock.Now().UTC())

		if err := s.assignSaleRun(ctx, &prepared); err != nil {
			return err
		}
		if err := s.repo.Update(ctx, &prepared); err != nil {
			return fmt.Errorf("update enrollment: %w", err)
		}
		if err := s.auditor.Record(ctx, entityName, prepared.ID, audit.ActionUpdate, audit.Diff(changesOf(current), changesOf(&prepared))); err != nil {
			return err
		}
		*e = prepared
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "enrollment updated", "enrollment_id", e.ID)
	return nil
}

// assignSaleRun allocates {student code}-NN when e has none. A student
// without a code defers allocation to a later save.
func (s *Service) assignSaleRun(ctx context.Context, e *Enrollment) error {
	if e.SaleRun() != "" {
		return nil
	}
	code, err := s.lookup.StudentCode(ctx, e.StudentID)
	if err != nil {
		return lookupErr(err, "student", e.StudentID)
	}
	partition := codealloc.SaleRunPartition(code)
	if partition == "" {
		logger.Debug(ctx, "student has no code, sale run number deferred", "student_id", e.StudentID)
		return nil
	}

	no, err := s.codes.Allocate(ctx, codealloc.SaleRun, partition)
	if err != nil {
		return fmt.Errorf("allocate sale run number: %w", err)
	}
	e.SaleRunNo = &no
	return nil
}

// Close ends an active enrollment.
func (s *Service) Close(ctx context.Context, enrollmentID id.ID, reason CloseReason) (*Enrollment, error) {
	switch reason {
	case CloseRenew, CloseNotRenew:
	default:
		return nil, apperror.NewValidation("invalid close reason").
			WithDetail("field", "reason").
			WithDetail("value", string(reason))
	}

	var out *Enrollment
	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		e, err := s.repo.GetForUpdate(ctx, enrollmentID)
		if err != nil {
			return lookupErr(err, entityName, enrollmentID)
		}
		if !e.IsActive {
			return apperror.NewBusinessRule(apperror.CodeEnrollmentClosed, "enrollment is already closed").
				WithDetail("enrollment_id", enrollmentID)
		}

		now := s.clock.Now().UTC()
		e.IsActive = false
		e.ClosedReason = reason
		e.ClosedAt = &now
		audit.Stamp(ctx, &e.Record, now)

		if err := s.repo.Update(ctx, e); err != nil {
			return fmt.Errorf("close enrollment: %w", err)
		}
		out = e
		return s.auditor.Record(ctx, entityName, e.ID, audit.ActionClose, map[string]any{"reason": reason})
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "enrollment closed", "enrollment_id", enrollmentID, "reason", reason)
	return out, nil
}

// MarkNotified records that the parent was told the course is ending. An
// empty method clears the flag.
func (s *Service) MarkNotified(ctx context.Context, enrollmentID id.ID, method NotifyMethod) (*Enrollment, error) {
	if method != "" && !method.Valid() {
		return nil, apperror.NewValidation("invalid notify method").
			WithDetail("field", "method").
			WithDetail("value", string(method))
	}

	var out *Enrollment
	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		e, err := s.repo.GetForUpdate(ctx, enrollmentID)
		if err != nil {
			return lookupErr(err, entityName, enrollmentID)
		}

		now := s.clock.Now().UTC()
		if method == "" {
			e.NotifiedNearComplete = false
			e.NotifiedMethod = ""
			e.NotifiedAt = nil
		} else {
			e.NotifiedNearComplete = true
			e.NotifiedMethod = method
			e.NotifiedAt = &now
		}
		audit.Stamp(ctx, &e.Record, now)

		if err := s.repo.Update(ctx, e); err != nil {
			return fmt.Errorf("mark notified: %w", err)
		}
		out = e
		return s.auditor.Record(ctx, entityName, e.ID, audit.ActionNotify, map[string]any{"method": method})
	})
	return out, err
}

// GetByID retrieves an enrollment.
func (s *Service) GetByID(ctx context.Context, enrollmentID id.ID) (*Enrollment, error) {
	e, err := s.repo.GetByID(ctx, enrollmentID)
	if err != nil {
		return nil, lookupErr(err, entityName, enrollmentID)
	}
	return e, nil
}

// Detail returns an enrollment with used and remaining sessions, total
// hours and revenue per hour.
func (s *Service) Detail(ctx context.Context, enrollmentID id.ID) (*Detail, error) {
	e, err := s.GetByID(ctx, enrollmentID)
	if err != nil {
		return nil, err
	}
	class, err := s.lookup.Class(ctx, e.ClassID)
	if err != nil {
		return nil, lookupErr(err, "tutoring_class", e.ClassID)
	}
	used, err := s.repo.UsedSessions(ctx, []id.ID{e.ID})
	if err != nil {
		return nil, err
	}
	return NewDetail(e, class.HoursPerSession, used[e.ID]), nil
}

// NewDetail computes the derived figures of e.
func NewDetail(e *Enrollment, hoursPerSession types.Hours, used int) *Detail {
	total := TotalHours(e.SessionsTotal, hoursPerSession)
	return &Detail{
		Enrollment:      e,
		HoursPerSession: hoursPerSession,
		Used:            used,
		Remaining:       sessions.Remaining(e.SessionsTotal, used),
		TotalHours:      total,
		RevenuePerHour:  RevenuePerHour(e.NetPrice, total),
	}
}

// List retrieves enrollments with filtering.
func (s *Service) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Enrollment], error) {
	return s.repo.List(ctx, filter)
}

// PlanInstallments creates an even payment plan for an enrollment that has
// none yet.
func (s *Service) PlanInstallments(ctx context.Context, enrollmentID id.ID) ([]*Installment, error) {
	var plan []*Installment
	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		e, err := s.repo.GetForUpdate(ctx, enrollmentID)
		if err != nil {
			return lookupErr(err, entityName, enrollmentID)
		}
		existing, err := s.repo.ListInstallments(ctx, enrollmentID)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return apperror.NewConflict("enrollment already has installments").
				WithDetail("enrollment_id", enrollmentID).
				WithDetail("count", len(existing))
		}

		plan = PlanInstallments(e)
		if err := s.repo.CreateInstallments(ctx, plan); err != nil {
			return fmt.Errorf("plan installments: %w", err)
		}
		return nil
	})
	return plan, err
}

// ListInstallments returns the payment plan ordered by installment number.
func (s *Service) ListInstallments(ctx context.Context, enrollmentID id.ID) ([]*Installment, error) {
	return s.repo.ListInstallments(ctx, enrollmentID)
}

// RecordPayment adds amount to an installment and settles it.
func (s *Service) RecordPayment(ctx context.Context, installmentID id.ID, amount types.Money) (*Installment, error) {
	if !amount.IsPositive() {
		return nil, apperror.NewValidation("payment amount must be positive").
			WithDetail("field", "amount")
	}

	var out *Installment
	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		inst, err := s.repo.GetInstallmentForUpdate(ctx, installmentID)
		if err != nil {
			return lookupErr(err, "installment", installmentID)
		}

		inst.AmountPaid = inst.AmountPaid.Add(amount)
		settled := SettleInstallment(*inst, s.clock.Now().UTC())
		if err := s.repo.UpdateInstallment(ctx, &settled); err != nil {
			return fmt.Errorf("record payment: %w", err)
		}
		out = &settled
		return s.auditor.Record(ctx, entityName, settled.EnrollmentID, audit.ActionPay, map[string]any{
			"installment_no": settled.InstallmentNo,
			"amount":         amount.String(),
			"is_paid":        settled.IsPaid,
		})
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "installment payment recorded",
		"installment_id", installmentID,
		"amount", amount.String(),
		"is_paid", out.IsPaid,
	)
	return out, nil
}

func lookupErr(err error, entity string, key id.ID) error {
	if apperror.IsNotFound(err) {
		return apperror.NewNotFound(entity, key.String())
	}
	return err
}

func changesOf(e *Enrollment) map[string]any {
	return map[string]any{
		"student_id":         e.StudentID,
		"class_id":           e.ClassID,
		"enrollment_type":    e.Type,
		"sessions_total":     e.SessionsTotal,
		"sale_run_no":        e.SaleRun(),
		"payment_type":       e.PaymentType,
		"installments_count": e.InstallmentsCount,
		"course_price":       e.CoursePrice.String(),
		"discount_amount":    e.DiscountAmount.String(),
		"net_price":          e.NetPrice.String(),
	}
}
