package alerts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tutorcenter/internal/core/id"
	"tutorcenter/internal/domain/documents/enrollment"
)

func TestDefaultRule(t *testing.T) {
	r, err := CompileRule("")
	require.NoError(t, err)
	assert.Equal(t, DefaultRule, r.String())

	tests := []struct {
		remaining int
		want      bool
	}{
		{3, false},
		{2, false},
		{1, true},
		{0, true},
		{-1, true},
	}
	for _, tt := range tests {
		got, err := r.Match(Facts{Remaining: tt.remaining})
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "remaining=%d", tt.remaining)
	}
}

func TestCustomRule(t *testing.T) {
	r, err := CompileRule("remaining <= 2 && !notified")
	require.NoError(t, err)

	ok, err := r.Match(Facts{Remaining: 2})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = r.Match(Facts{Remaining: 2, Notified: true})
	require.NoError(t, err)
	assert.False(t, ok)

	ratio, err := CompileRule("used * 10 >= sessions_total * 8")
	require.NoError(t, err)
	ok, err = ratio.Match(Facts{Used: 8, SessionsTotal: 10})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCompileRule_Rejects(t *testing.T) {
	_, err := CompileRule("remaining <")
	assert.Error(t, err)

	_, err = CompileRule("remaining + 1")
	assert.Error(t, err, "non-bool rule")

	_, err = CompileRule("balance < 2")
	assert.Error(t, err, "unknown variable")
}

type stubRepo struct{ rows []Candidate }

func (s stubRepo) Candidates(context.Context) ([]Candidate, error) { return s.rows, nil }

type stubMarker struct{ got enrollment.NotifyMethod }

func (s *stubMarker) MarkNotified(_ context.Context, eid id.ID, m enrollment.NotifyMethod) (*enrollment.Enrollment, error) {
	s.got = m
	e := enrollment.NewEnrollment(id.New(), id.New())
	e.ID = eid
	return e, nil
}

func TestService_NearComplete(t *testing.T) {
	repo := stubRepo{rows: []Candidate{
		{EnrollmentID: id.New(), SessionsTotal: 10, Used: 9},
		{EnrollmentID: id.New(), SessionsTotal: 10, Used: 3},
		{EnrollmentID: id.New(), SessionsTotal: 10, Used: 12},
	}}
	svc := NewService(repo, &stubMarker{}, nil)

	alerts, err := svc.NearComplete(context.Background())
	require.NoError(t, err)
	require.Len(t, alerts, 2)
	assert.Equal(t, 1, alerts[0].RemainingSessions)
	assert.Equal(t, -2, alerts[1].RemainingSessions)
}

func TestService_Mark(t *testing.T) {
	marker := &stubMarker{}
	svc := NewService(stubRepo{}, marker, nil)

	_, err := svc.Mark(context.Background(), id.New(), enrollment.NotifyLine)
	require.NoError(t, err)
	assert.Equal(t, enrollment.NotifyLine, marker.got)
}
