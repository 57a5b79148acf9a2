package codealloc

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	impl "tutorcenter/pkg/codealloc"
)

func TestYearPartition(t *testing.T) {
	assert.Equal(t, "25", YearPartition(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "05", YearPartition(time.Date(2105, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestSaleRunPartition(t *testing.T) {
	assert.Equal(t, "25001-", SaleRunPartition("25001"))
	assert.Equal(t, "", SaleRunPartition(""))
}

func TestMockGenerator_CountsPerPartition(t *testing.T) {
	m := &MockGenerator{}
	ctx := context.Background()

	a, _ := m.Allocate(ctx, impl.StudentCode, "25")
	b, _ := m.Allocate(ctx, impl.StudentCode, "25")
	c, _ := m.Allocate(ctx, impl.SaleRun, "25001-")

	assert.Equal(t, "25001", a)
	assert.Equal(t, "25002", b)
	assert.Equal(t, "25001-01", c)
	assert.Len(t, m.Calls, 3)
}
