package sheetstock

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tutorcenter/internal/core/apperror"
	"tutorcenter/internal/core/id"
	"tutorcenter/internal/core/tx"
	"tutorcenter/internal/domain"
	"tutorcenter/internal/domain/audit"
)

type mockRepo struct {
	mu     sync.Mutex
	sheets []id.ID
	items  map[id.ID]Item
}

func (m *mockRepo) MissingSheetIDs(context.Context) ([]id.ID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []id.ID
	for _, s := range m.sheets {
		if _, ok := m.items[s]; !ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *mockRepo) CreateMany(_ context.Context, items []*Item) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, it := range items {
		m.items[it.SheetID] = *it
	}
	return int64(len(items)), nil
}

func (m *mockRepo) GetForUpdateBySheet(_ context.Context, sheetID id.ID) (*Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.items[sheetID]
	if !ok {
		return nil, apperror.NewNotFound("sheet_inventory", sheetID)
	}
	return &it, nil
}

func (m *mockRepo) Update(_ context.Context, it *Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[it.SheetID] = *it
	return nil
}

func (m *mockRepo) ListActive(context.Context) ([]*View, error)   { return nil, nil }
func (m *mockRepo) ListFinished(context.Context) ([]*View, error) { return nil, nil }

type countingAudit struct {
	mu    sync.Mutex
	count int
}

func (c *countingAudit) Record(context.Context, string, id.ID, audit.Action, map[string]any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.count++
	return nil
}

func TestService_EnsureAllThenApply(t *testing.T) {
	sheetA, sheetB := id.New(), id.New()
	repo := &mockRepo{sheets: []id.ID{sheetA, sheetB}, items: make(map[id.ID]Item)}
	auditor := &countingAudit{}
	clock := domain.Clock{Location: time.UTC, Now: func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) }}
	svc := NewService(repo, &tx.MockManager{}, auditor, clock)
	ctx := context.Background()

	n, err := svc.EnsureAll(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	n, err = svc.EnsureAll(ctx)
	require.NoError(t, err)
	assert.Zero(t, n, "second run creates nothing")

	it, err := svc.Apply(ctx, sheetA, ActionInc, 30)
	require.NoError(t, err)
	assert.Equal(t, 30, it.Quantity)

	it, err = svc.Apply(ctx, sheetA, ActionDec, 0)
	require.NoError(t, err)
	assert.Equal(t, 29, it.Quantity)
	assert.Equal(t, 2, auditor.count)

	_, err = svc.Apply(ctx, sheetA, "burn", 1)
	assert.Error(t, err)
	assert.Equal(t, 29, repo.items[sheetA].Quantity)

	_, err = svc.Apply(ctx, id.New(), ActionInc, 1)
	assert.True(t, apperror.IsNotFound(err))
}
