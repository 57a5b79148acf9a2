package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClock_TodayUsesLocalDate(t *testing.T) {
	ict := time.FixedZone("ICT", 7*3600)
	c := Clock{
		Location: ict,
		Now:      func() time.Time { return time.Date(2024, 12, 31, 20, 0, 0, 0, time.UTC) },
	}

	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), c.Today())
	assert.Equal(t, 2025, c.Local().Year())
}

func TestDateOf(t *testing.T) {
	in := time.Date(2025, 3, 4, 15, 4, 5, 0, time.FixedZone("X", -5*3600))
	assert.Equal(t, time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC), DateOf(in))
}
