package tx

import (
	"context"
	"sync"
)

// MockManager runs fn directly and counts calls. Use in service tests.
type MockManager struct {
	mu    sync.Mutex
	Calls int
	// Err, when set, is returned instead of calling fn.
	Err error
}

// RunInTransaction implements Manager.
func (m *MockManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	m.Calls++
	err := m.Err
	m.mu.Unlock()
	if err != nil {
		return err
	}
	return fn(ctx)
}

// ReadOnly implements ReadOnlyManager.
func (m *MockManager) ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.RunInTransaction(ctx, fn)
}

var _ ReadOnlyManager = (*MockManager)(nil)
