package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClock_StepsPerRead(t *testing.T) {
	clock := NewClock(time.Time{}, time.Second)

	assert.Equal(t, FixedStart, clock.Now())
	assert.Equal(t, FixedStart.Add(time.Second), clock.Now())
	assert.Equal(t, FixedStart.Add(2*time.Second), clock.Peek())
}

func TestClock_Set(t *testing.T) {
	clock := NewClock(FixedStart, time.Minute)
	later := FixedStart.Add(time.Hour)

	clock.Set(later)

	assert.Equal(t, later, clock.Now())
	assert.Equal(t, later.Add(time.Minute), clock.Peek())
}
