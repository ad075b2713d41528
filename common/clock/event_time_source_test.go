package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventTimeSource_AdvanceFiresDueTimers(t *testing.T) {
	source := NewEventTimeSource()
	var fired []string

	source.AfterFunc(5*time.Second, func() { fired = append(fired, "a") })
	source.AfterFunc(10*time.Second, func() { fired = append(fired, "b") })

	source.Advance(4 * time.Second)
	assert.Empty(t, fired)

	source.Advance(2 * time.Second)
	require.Equal(t, []string{"a"}, fired)

	source.Advance(10 * time.Second)
	require.Equal(t, []string{"a", "b"}, fired)
}

func TestEventTimeSource_FiresInFireAtOrder(t *testing.T) {
	source := NewEventTimeSource()
	var order []int

	source.AfterFunc(3*time.Second, func() { order = append(order, 3) })
	source.AfterFunc(1*time.Second, func() { order = append(order, 1) })
	source.AfterFunc(2*time.Second, func() { order = append(order, 2) })

	source.Advance(5 * time.Second)
	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestEventTimeSource_StopPreventsFiring(t *testing.T) {
	source := NewEventTimeSource()
	fired := false

	timer := source.AfterFunc(time.Second, func() { fired = true })
	assert.True(t, timer.Stop())

	source.Advance(2 * time.Second)
	assert.False(t, fired)
	assert.False(t, timer.Stop())
}

func TestEventTimeSource_ResetReschedules(t *testing.T) {
	source := NewEventTimeSource()
	fired := false

	timer := source.AfterFunc(time.Second, func() { fired = true })
	timer.Reset(5 * time.Second)

	source.Advance(2 * time.Second)
	assert.False(t, fired)

	source.Advance(3 * time.Second)
	assert.True(t, fired)
}

func TestEventTimeSource_Update(t *testing.T) {
	source := NewEventTimeSource()
	fired := false
	source.AfterFunc(time.Minute, func() { fired = true })

	source.Update(source.Now().Add(2 * time.Minute))
	assert.True(t, fired)
}
