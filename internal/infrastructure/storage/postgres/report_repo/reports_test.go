package report_repo

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tutorcenter/internal/core/id"
)

func TestRosterSQL_ZeroDateSkipsStatus(t *testing.T) {
	sql, args := rosterSQL(time.Time{})

	assert.Contains(t, sql, "NULL::varchar AS status")
	assert.NotContains(t, sql, "$2")
	require.Len(t, args, 1)
	assert.Equal(t, []string{"present", "no_show"}, args[0])
}

func TestRosterSQL_WithDate(t *testing.T) {
	day := time.Date(2025, 5, 6, 0, 0, 0, 0, time.UTC)
	sql, args := rosterSQL(day)

	assert.Contains(t, sql, "a.status AS status")
	assert.Contains(t, sql, "a.date = $2")
	assert.Contains(t, sql, "ORDER BY c.name, s.nickname, s.full_name, s.grade_level")
	assert.Contains(t, sql, "ROW_NUMBER() OVER (PARTITION BY student_id ORDER BY created_at, id) AS course_seq")
	assert.Equal(t, day, args[1])
}

func TestCandidatesSQL_OrdersByRemaining(t *testing.T) {
	assert.True(t, strings.HasPrefix(strings.TrimSpace(candidatesSQL), "WITH used AS ("))
	assert.Contains(t, candidatesSQL, "ORDER BY e.sessions_total - COALESCE(u.used, 0), c.name, s.code")
	assert.Contains(t, candidatesSQL, "WHERE e.is_active AND s.is_active AND c.is_active")
}

func TestPortalEnrollmentsSQL_ActiveFirst(t *testing.T) {
	assert.Contains(t, portalEnrollmentsSQL, "WHERE e.student_id = $2")
	assert.Contains(t, portalEnrollmentsSQL, "ORDER BY e.is_active DESC, e.created_at DESC")
}

func TestCellsQuery(t *testing.T) {
	r := NewReportRepo(nil)
	a := id.New()

	sql, args, err := r.cellsQuery([]id.ID{a}).ToSql()
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT enrollment_id, date, status FROM attendance WHERE enrollment_id IN ($1) ORDER BY date, checked_at",
		sql)
	assert.Equal(t, []any{a}, args)
}
