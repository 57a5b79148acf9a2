package sheetupdate

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tutorcenter/internal/core/id"
	"tutorcenter/internal/core/tx"
	"tutorcenter/internal/domain"
	"tutorcenter/internal/domain/catalogs/classsubject"
)

type mockRepo struct {
	mu      sync.Mutex
	entries map[pair]map[time.Time]*Entry
}

func newMockRepo() *mockRepo {
	return &mockRepo{entries: make(map[pair]map[time.Time]*Entry)}
}

func (m *mockRepo) LatestDate(context.Context) (*time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var latest *time.Time
	for _, byDate := range m.entries {
		for d := range byDate {
			if latest == nil || d.After(*latest) {
				d := d
				latest = &d
			}
		}
	}
	return latest, nil
}

func (m *mockRepo) ForDate(_ context.Context, date time.Time) ([]*EntryView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*EntryView
	for _, byDate := range m.entries {
		if e, ok := byDate[date]; ok {
			v := &EntryView{Entry: *e}
			if e.SheetID != nil {
				pages, questions := 48, 0
				v.TotalPages, v.TotalQuestions = &pages, &questions
			}
			out = append(out, v)
		}
	}
	return out, nil
}

func (m *mockRepo) Upsert(_ context.Context, entries []*Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range entries {
		k := pair{e.ClassID, e.SubjectID}
		if m.entries[k] == nil {
			m.entries[k] = make(map[time.Time]*Entry)
		}
		cp := *e
		m.entries[k][e.Date] = &cp
	}
	return nil
}

type mockPairs struct {
	rows []classsubject.Row
}

func (m *mockPairs) ListActive(context.Context) ([]classsubject.Row, error) {
	return m.rows, nil
}

func newPair(className, subjectName string) classsubject.Row {
	cs := classsubject.NewClassSubject(id.New(), id.New())
	return classsubject.Row{ClassSubject: *cs, ClassName: className, SubjectName: subjectName}
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func newService(repo *mockRepo, pairs *mockPairs) *Service {
	clock := domain.Clock{Location: time.UTC, Now: func() time.Time {
		return time.Date(2025, 6, 5, 8, 0, 0, 0, time.UTC)
	}}
	return NewService(repo, pairs, &tx.MockManager{}, clock)
}

func TestDefaultDate(t *testing.T) {
	repo := newMockRepo()
	svc := newService(repo, &mockPairs{})
	ctx := context.Background()

	d, err := svc.DefaultDate(ctx)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC), d)

	p := newPair("M.1", "Math")
	svc.pairs = &mockPairs{rows: []classsubject.Row{p}}
	_, err = svc.Save(ctx, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), []Item{{ClassID: p.ClassID, SubjectID: p.SubjectID}})
	require.NoError(t, err)

	d, err = svc.DefaultDate(ctx)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), d)
}

func TestSave_DefaultsAndRows(t *testing.T) {
	math := newPair("M.1", "Math")
	eng := newPair("M.1", "English")
	pairs := &mockPairs{rows: []classsubject.Row{eng, math}}
	repo := newMockRepo()
	svc := newService(repo, pairs)
	ctx := context.Background()
	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	sheetID := id.New()

	n, err := svc.Save(ctx, date, []Item{
		{ClassID: math.ClassID, SubjectID: math.SubjectID, SheetID: &sheetID, PageTaughtTo: intPtr(12), LastTeacher: strPtr("  Kru Ann ")},
		{ClassID: eng.ClassID, SubjectID: eng.SubjectID},
		{ClassID: id.New(), SubjectID: id.New(), PageTaughtTo: intPtr(3)},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n, "inactive pairs are skipped")

	rows, err := svc.Rows(ctx, date)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "English", rows[0].SubjectName)
	require.NotNil(t, rows[0].Entry)
	assert.Equal(t, 0, rows[0].Entry.PageTaughtTo)
	assert.Equal(t, "", rows[0].Entry.LastTeacher)
	assert.Equal(t, 0, rows[0].Percent)

	assert.Equal(t, "Math", rows[1].SubjectName)
	assert.Equal(t, 12, rows[1].Entry.PageTaughtTo)
	assert.Equal(t, "Kru Ann", rows[1].Entry.LastTeacher)
	assert.Equal(t, 25, rows[1].Percent)

	other, err := svc.Rows(ctx, date.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Nil(t, other[0].Entry)
}

func TestSave_RejectsNegative(t *testing.T) {
	p := newPair("M.1", "Math")
	svc := newService(newMockRepo(), &mockPairs{rows: []classsubject.Row{p}})

	_, err := svc.Save(context.Background(), time.Now(), []Item{
		{ClassID: p.ClassID, SubjectID: p.SubjectID, PageTaughtTo: intPtr(-1)},
	})
	assert.Error(t, err)
}
