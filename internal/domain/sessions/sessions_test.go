package sessions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemaining(t *testing.T) {
	assert.Equal(t, 7, Remaining(10, 3))
	assert.Equal(t, 0, Remaining(10, 10))
	assert.Equal(t, -1, Remaining(10, 11))
}

func TestDeducts(t *testing.T) {
	assert.True(t, Present.Deducts())
	assert.True(t, NoShow.Deducts())
	assert.False(t, Excused.Deducts())
	assert.False(t, Status("late").Valid())
}

func TestSummaryAdd(t *testing.T) {
	var s Summary
	for _, st := range []Status{Present, Present, Excused, NoShow, "bogus"} {
		s.Add(st)
	}

	assert.Equal(t, Summary{Present: 2, Excused: 1, NoShow: 1, Total: 4}, s)
}

func TestSummaryAddN(t *testing.T) {
	var s Summary
	s.Add(Present)
	s.AddN(NoShow, 3)
	s.AddN(Status("late"), 5)

	assert.Equal(t, Summary{Present: 1, NoShow: 3, Total: 4}, s)
}
