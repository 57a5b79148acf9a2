package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercent(t *testing.T) {
	tests := []struct {
		current, total, want int
	}{
		{10, 48, 20},
		{0, 0, 0},
		{60, 50, 120},
		{48, 48, 100},
		{1, 3, 33},
		{5, -1, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Percent(tt.current, tt.total), "Percent(%d, %d)", tt.current, tt.total)
	}
}

func TestForSheet(t *testing.T) {
	assert.Equal(t, 20, ForSheet(Totals{Pages: 48, Questions: 120}, 10, 90), "pages win when present")
	assert.Equal(t, 75, ForSheet(Totals{Questions: 120}, 10, 90), "questions when no pages")
	assert.Equal(t, 0, ForSheet(Totals{}, 10, 90))
	assert.Equal(t, 0, ForSheet(nil, 10, 90))
}
