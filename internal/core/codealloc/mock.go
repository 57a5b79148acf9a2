package codealloc

import (
	"context"
	"fmt"
	"sync"

	impl "tutorcenter/pkg/codealloc"
)

// MockGenerator is an in-memory Generator for service tests. Without
// AllocateFunc it counts per partition: 25001, 25002, ...
type MockGenerator struct {
	AllocateFunc func(ctx context.Context, seq Sequence, partition string) (string, error)

	mu    sync.Mutex
	next  map[string]int64
	Calls []string
}

// Allocate implements Generator.
func (m *MockGenerator) Allocate(ctx context.Context, seq Sequence, partition string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, fmt.Sprintf("%s:%s", seq.Name, partition))
	if m.AllocateFunc != nil {
		return m.AllocateFunc(ctx, seq, partition)
	}

	if m.next == nil {
		m.next = make(map[string]int64)
	}
	key := seq.Name + ":" + partition
	m.next[key]++
	return impl.Format(partition, m.next[key], seq.Width), nil
}

var _ Generator = (*MockGenerator)(nil)
