package report_repo

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"

	"tutorcenter/internal/core/id"
	"tutorcenter/internal/domain/portal"
	"tutorcenter/internal/domain/sessions"
	"tutorcenter/internal/infrastructure/storage/postgres"
)

const portalEnrollmentsSQL = `
WITH ` + usedCTE + `
SELECT
	e.id,
	e.sale_run_no,
	c.name AS class_name,
	e.enrollment_type,
	e.sessions_total,
	COALESCE(u.used, 0) AS used,
	c.hours_per_session,
	e.is_active,
	e.created_at
FROM enrollments e
JOIN tutoring_classes c ON c.id = e.class_id
LEFT JOIN used u ON u.enrollment_id = e.id
WHERE e.student_id = $2
ORDER BY e.is_active DESC, e.created_at DESC, e.id DESC`

const portalAttendanceSQL = `
SELECT date, status, checked_at
FROM attendance
WHERE student_id = $1 AND enrollment_id = $2
ORDER BY date DESC, checked_at DESC`

// PortalRepo implements portal.Repository.
type PortalRepo struct {
	txManager *postgres.TxManager
}

var _ portal.Repository = (*PortalRepo)(nil)

// NewPortalRepo creates a new portal repository.
func NewPortalRepo(txm *postgres.TxManager) *PortalRepo {
	return &PortalRepo{txManager: txm}
}

// Enrollments lists a student's enrollments, active first then newest.
func (r *PortalRepo) Enrollments(ctx context.Context, studentID id.ID) ([]portal.EnrollmentSummary, error) {
	var out []portal.EnrollmentSummary
	err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &out, portalEnrollmentsSQL,
		sessions.DeductingStatuses(), studentID)
	if err != nil {
		return nil, fmt.Errorf("portal enrollments: %w", err)
	}
	return out, nil
}

// Attendance lists an enrollment's records newest first. Records of another
// student never match.
func (r *PortalRepo) Attendance(ctx context.Context, studentID, enrollmentID id.ID) ([]portal.HistoryRow, error) {
	var out []portal.HistoryRow
	err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &out, portalAttendanceSQL, studentID, enrollmentID)
	if err != nil {
		return nil, fmt.Errorf("portal attendance: %w", err)
	}
	return out, nil
}
