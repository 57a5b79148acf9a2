package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"tutorcenter/internal/core/apperror"
	"tutorcenter/internal/core/id"
	"tutorcenter/internal/domain/documents/enrollment"
	"tutorcenter/internal/infrastructure/storage/postgres"
)

const (
	enrollmentsTable  = "enrollments"
	installmentsTable = "enrollment_installments"
)

var installmentCols = postgres.ExtractDBColumns[enrollment.Installment]()

// EnrollmentRepo implements enrollment.Repository.
type EnrollmentRepo struct {
	*postgres.Rows[*enrollment.Enrollment]
	copier *postgres.BatchInserter
}

var _ enrollment.Repository = (*EnrollmentRepo)(nil)

// NewEnrollmentRepo creates a new enrollment repository.
func NewEnrollmentRepo(txm *postgres.TxManager) *EnrollmentRepo {
	return &EnrollmentRepo{
		Rows: NewDocumentRows(
			txm,
			postgres.Table{
				Name:       enrollmentsTable,
				Entity:     "enrollment",
				Columns:    postgres.ExtractDBColumns[enrollment.Enrollment](),
				SearchCols: []string{"sale_run_no", "remark"},
			},
			func() *enrollment.Enrollment { return &enrollment.Enrollment{} },
		),
		copier: postgres.NewBatchInserter(txm),
	}
}

// UsedSessions counts deducting attendance per enrollment.
func (r *EnrollmentRepo) UsedSessions(ctx context.Context, ids []id.ID) (map[id.ID]int, error) {
	return usedSessions(ctx, r.Querier(ctx), ids)
}

// CreateInstallments writes a payment plan through COPY.
func (r *EnrollmentRepo) CreateInstallments(ctx context.Context, items []*enrollment.Installment) error {
	_, err := r.copier.CopyFromSlice(ctx, installmentsTable, installmentCols, installmentRows(items))
	return err
}

func installmentRows(items []*enrollment.Installment) [][]any {
	rows := make([][]any, 0, len(items))
	for _, it := range items {
		data := postgres.StructToMap(it)
		row := make([]any, len(installmentCols))
		for i, col := range installmentCols {
			row[i] = data[col]
		}
		rows = append(rows, row)
	}
	return rows
}

// ListInstallments returns the plan ordered by installment number.
func (r *EnrollmentRepo) ListInstallments(ctx context.Context, enrollmentID id.ID) ([]*enrollment.Installment, error) {
	sql, args, err := postgres.Psql.
		Select(installmentCols...).
		From(installmentsTable).
		Where(squirrel.Eq{"enrollment_id": enrollmentID}).
		OrderBy("installment_no").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []*enrollment.Installment
	if err := pgxscan.Select(ctx, r.Querier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list installments: %w", err)
	}
	return items, nil
}

// GetInstallmentForUpdate locks one installment row.
func (r *EnrollmentRepo) GetInstallmentForUpdate(ctx context.Context, installmentID id.ID) (*enrollment.Installment, error) {
	sql, args, err := postgres.Psql.
		Select(installmentCols...).
		From(installmentsTable).
		Where(squirrel.Eq{"id": installmentID}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var it enrollment.Installment
	if err := pgxscan.Get(ctx, r.Querier(ctx), &it, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("installment", installmentID.String())
		}
		return nil, fmt.Errorf("get installment: %w", err)
	}
	return &it, nil
}

// UpdateInstallment writes a payment with optimistic locking.
func (r *EnrollmentRepo) UpdateInstallment(ctx context.Context, it *enrollment.Installment) error {
	sql, args, version, err := postgres.UpdateSQL(installmentsTable, installmentCols, it, "created_at")
	if err != nil {
		return err
	}

	result, err := r.Querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "installment")
	}
	if result.RowsAffected() == 0 {
		return apperror.NewConcurrentModification("installment", it.ID)
	}
	it.SetVersion(version + 1)
	return nil
}

// Lookup reads the student and class facts enrollments are derived from.
type Lookup struct {
	txManager *postgres.TxManager
}

var _ enrollment.Lookup = (*Lookup)(nil)

// NewLookup creates a new enrollment lookup.
func NewLookup(txm *postgres.TxManager) *Lookup {
	return &Lookup{txManager: txm}
}

// StudentCode returns the student's code, empty while none is assigned.
func (l *Lookup) StudentCode(ctx context.Context, studentID id.ID) (string, error) {
	var code string
	err := l.txManager.GetQuerier(ctx).
		QueryRow(ctx, "SELECT code FROM students WHERE id = $1", studentID).
		Scan(&code)
	if err != nil {
		return "", postgres.MapError(err, "student")
	}
	return code, nil
}

// Class returns the pricing facts of a class.
func (l *Lookup) Class(ctx context.Context, classID id.ID) (enrollment.ClassInfo, error) {
	var info enrollment.ClassInfo
	err := l.txManager.GetQuerier(ctx).
		QueryRow(ctx, "SELECT course_price, hours_per_session FROM tutoring_classes WHERE id = $1", classID).
		Scan(&info.CoursePrice, &info.HoursPerSession)
	if err != nil {
		return info, postgres.MapError(err, "tutoring_class")
	}
	return info, nil
}
