package report_repo

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"

	"tutorcenter/internal/domain/alerts"
	"tutorcenter/internal/domain/sessions"
	"tutorcenter/internal/infrastructure/storage/postgres"
)

const candidatesSQL = `
WITH ` + usedCTE + `
SELECT
	e.id AS enrollment_id,
	e.sale_run_no,
	s.id AS student_id,
	s.code AS student_code,
	s.full_name,
	s.nickname,
	s.parent_phone,
	s.contact_channel,
	c.id AS class_id,
	c.name AS class_name,
	e.sessions_total,
	COALESCE(u.used, 0) AS used,
	e.notified_near_complete,
	e.notified_method,
	e.notified_at
FROM enrollments e
JOIN students s ON s.id = e.student_id
JOIN tutoring_classes c ON c.id = e.class_id
LEFT JOIN used u ON u.enrollment_id = e.id
WHERE e.is_active AND s.is_active AND c.is_active
ORDER BY e.sessions_total - COALESCE(u.used, 0), c.name, s.code`

// AlertRepo implements alerts.Repository.
type AlertRepo struct {
	txManager *postgres.TxManager
}

var _ alerts.Repository = (*AlertRepo)(nil)

// NewAlertRepo creates a new alert candidate repository.
func NewAlertRepo(txm *postgres.TxManager) *AlertRepo {
	return &AlertRepo{txManager: txm}
}

// Candidates returns every active enrollment with its used count.
func (r *AlertRepo) Candidates(ctx context.Context) ([]alerts.Candidate, error) {
	var out []alerts.Candidate
	err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &out, candidatesSQL, sessions.DeductingStatuses())
	if err != nil {
		return nil, fmt.Errorf("alert candidates: %w", err)
	}
	return out, nil
}
