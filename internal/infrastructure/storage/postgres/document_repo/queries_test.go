package document_repo

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tutorcenter/internal/core/id"
	"tutorcenter/internal/domain/documents/attendance"
	"tutorcenter/internal/domain/documents/enrollment"
	"tutorcenter/internal/domain/documents/sheetupdate"
	"tutorcenter/internal/domain/sessions"
)

var day = time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC)

func TestUsedSessionsQuery_CountsDeductingStatuses(t *testing.T) {
	a, b := id.New(), id.New()
	sql, args, err := usedSessionsQuery([]id.ID{a, b}).ToSql()
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT enrollment_id, COUNT(*) AS used FROM attendance WHERE enrollment_id IN ($1,$2) AND status IN ($3,$4) GROUP BY enrollment_id",
		sql)
	assert.Equal(t, []any{a, b, "present", "no_show"}, args)
}

func TestAttendanceRosterQuery(t *testing.T) {
	r := NewAttendanceRepo(nil)
	classID := id.New()

	sql, args, err := r.rosterQuery(classID).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "WHERE e.class_id = $1 AND e.is_active AND s.is_active AND c.is_active")
	assert.Equal(t, []any{classID.String()}, args)
}

func TestAttendanceUpsertQuery(t *testing.T) {
	r := NewAttendanceRepo(nil)
	recs := []*attendance.Record{
		{StudentID: id.New(), EnrollmentID: id.New(), Date: day, Status: sessions.Present},
		{StudentID: id.New(), EnrollmentID: id.New(), Date: day, Status: sessions.Excused},
	}

	sql, args, err := r.upsertQuery(recs).ToSql()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(sql, "INSERT INTO attendance ("))
	assert.Contains(t, sql, "ON CONFLICT (student_id, enrollment_id, date) DO UPDATE SET")
	assert.Contains(t, sql, "status = EXCLUDED.status")
	assert.Len(t, args, 2*len(attendanceCols))
	assert.Contains(t, args, sessions.Excused)
}

func TestAttendanceSummaryQuery_ClassFilter(t *testing.T) {
	r := NewAttendanceRepo(nil)

	sql, args, err := r.summaryQuery(day, nil).ToSql()
	require.NoError(t, err)
	assert.NotContains(t, sql, "e.class_id = ")
	assert.Len(t, args, 1)

	classID := id.New()
	sql, args, err = r.summaryQuery(day, &classID).ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "e.class_id = $2")
	assert.Contains(t, sql, "GROUP BY a.status")
	assert.Equal(t, []any{day, classID.String()}, args)
}

func TestInstallmentRows_FollowColumnOrder(t *testing.T) {
	enrollmentID := id.New()
	items := []*enrollment.Installment{
		{EnrollmentID: enrollmentID, InstallmentNo: 1, AmountDue: decimal.RequireFromString("1666.67")},
		{EnrollmentID: enrollmentID, InstallmentNo: 2, AmountDue: decimal.RequireFromString("1666.66")},
	}

	rows := installmentRows(items)
	require.Len(t, rows, 2)

	noIdx := -1
	for i, col := range installmentCols {
		if col == "installment_no" {
			noIdx = i
		}
	}
	require.NotEqual(t, -1, noIdx)
	assert.Equal(t, 1, rows[0][noIdx])
	assert.Equal(t, 2, rows[1][noIdx])
	assert.Len(t, rows[0], len(installmentCols))
}

func TestSheetUpdateUpsertQuery(t *testing.T) {
	r := NewSheetUpdateRepo(nil)
	sheetID := id.New()

	sql, args, err := r.upsertQuery(&sheetupdate.Entry{
		ClassID: id.New(), SubjectID: id.New(), Date: day, SheetID: &sheetID, PageTaughtTo: 12,
	})
	require.NoError(t, err)

	assert.Contains(t, sql, "ON CONFLICT (class_id, subject_id, date) DO UPDATE SET")
	assert.Contains(t, sql, "page_taught_to = EXCLUDED.page_taught_to")
	assert.Len(t, args, len(sheetUpdateCols))
	assert.Contains(t, args, 12)
}

func TestSheetUpdateForDateQuery(t *testing.T) {
	r := NewSheetUpdateRepo(nil)

	sql, args, err := r.forDateQuery(day).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "su.class_id")
	assert.Contains(t, sql, "LEFT JOIN sheets sh ON sh.id = su.sheet_id WHERE su.date = $1")
	assert.Equal(t, []any{day}, args)
}
