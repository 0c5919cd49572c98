package sim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// hold acquires r at time at and releases it after d minutes, recording the
// grant time under name.
func hold(t *testing.T, e *Engine, r *Resource, at, d float64, name string, granted map[string]float64) {
	t.Helper()
	require.NoError(t, e.Schedule(at, func() {
		require.NoError(t, r.Acquire(func() {
			granted[name] = e.Now()
			require.LessOrEqual(t, r.InUse(), r.Capacity())
			require.NoError(t, e.Delay(d, func() {
				require.NoError(t, r.Release())
			}))
		}))
	}))
}

func TestResource_ImmediateGrantWhenFree(t *testing.T) {
	e := NewEngine()
	r := NewResource(e, "station", 1)
	granted := map[string]float64{}

	hold(t, e, r, 3, 5, "a", granted)
	require.NoError(t, e.RunUntil(100))

	assert.Equal(t, 3.0, granted["a"])
	assert.Equal(t, 0, r.InUse())
	assert.Equal(t, 1, r.Grants())
	assert.Equal(t, 0, r.PeakQueueLen())
}

func TestResource_GrantIsDeferredToZeroDelayEvent(t *testing.T) {
	// GIVEN a free resource
	e := NewEngine()
	r := NewResource(e, "station", 1)
	var order []string

	require.NoError(t, e.Schedule(0, func() {
		// WHEN acquiring
		require.NoError(t, r.Acquire(func() { order = append(order, "granted") }))
		order = append(order, "after-acquire")
	}))
	require.NoError(t, e.Schedule(0, func() { order = append(order, "already-due") }))
	require.NoError(t, e.RunUntil(0))

	// THEN the slot is taken at once but the continuation runs behind
	// everything already due at this instant
	assert.Equal(t, []string{"after-acquire", "already-due", "granted"}, order)
	assert.Equal(t, 1, r.InUse())
}

func TestResource_FIFOFairness(t *testing.T) {
	// GIVEN a single-slot resource held from t=0 to t=5
	e := NewEngine()
	r := NewResource(e, "station", 1)
	granted := map[string]float64{}
	hold(t, e, r, 0, 5, "holder", granted)

	// AND three waiters joining in order a, b, c
	hold(t, e, r, 1, 5, "a", granted)
	hold(t, e, r, 2, 5, "b", granted)
	hold(t, e, r, 2, 5, "c", granted)

	require.NoError(t, e.RunUntil(100))

	// THEN each is granted exactly when its predecessor releases
	assert.Equal(t, 5.0, granted["a"])
	assert.Equal(t, 10.0, granted["b"])
	assert.Equal(t, 15.0, granted["c"])
	assert.Equal(t, 3, r.PeakQueueLen())
	assert.Equal(t, 0, r.QueueLen())
}

func TestResource_NeverExceedsCapacity(t *testing.T) {
	e := NewEngine()
	r := NewResource(e, "stations", 3)
	granted := map[string]float64{}
	peak := 0
	for i := 0; i < 20; i++ {
		name := string(rune('a' + i))
		require.NoError(t, e.Schedule(float64(i%4), func() {
			require.NoError(t, r.Acquire(func() {
				granted[name] = e.Now()
				if r.InUse() > peak {
					peak = r.InUse()
				}
				require.NoError(t, e.Delay(5, func() { require.NoError(t, r.Release()) }))
			}))
		}))
	}

	require.NoError(t, e.RunUntil(1000))

	assert.Len(t, granted, 20)
	assert.Equal(t, 3, peak)
	assert.Equal(t, 0, r.InUse())
}

func TestResource_UnboundedNeverQueues(t *testing.T) {
	e := NewEngine()
	r := NewResource(e, "site", Unbounded)
	granted := map[string]float64{}
	for i := 0; i < 500; i++ {
		hold(t, e, r, 0, 60, string(rune('A'+i)), granted)
	}

	require.NoError(t, e.RunUntil(10))

	assert.Len(t, granted, 500)
	for name, at := range granted {
		assert.Equal(t, 0.0, at, "waiter %s was delayed", name)
	}
	assert.Equal(t, 500, r.InUse())
	assert.Equal(t, 0, r.PeakQueueLen())
}

func TestResource_ReleaseIdleFails(t *testing.T) {
	e := NewEngine()
	r := NewResource(e, "station", 1)
	err := r.Release()
	assert.True(t, errors.Is(err, ErrReleaseIdle))
}

func TestResource_GrantBeyondCapacityFails(t *testing.T) {
	e := NewEngine()
	r := NewResource(e, "station", 1)
	require.NoError(t, r.grant(func() {}))

	err := r.grant(func() {})

	assert.True(t, errors.Is(err, ErrResourceOveracquire))
	assert.Equal(t, 1, r.InUse())
}

func TestResource_BusyTime(t *testing.T) {
	// GIVEN two slots, one held 0→10 and one held 5→8
	e := NewEngine()
	r := NewResource(e, "stations", 2)
	granted := map[string]float64{}
	hold(t, e, r, 0, 10, "a", granted)
	hold(t, e, r, 5, 3, "b", granted)

	// AND a third hold still running at the horizon
	hold(t, e, r, 18, 100, "c", granted)

	require.NoError(t, e.RunUntil(20))

	// THEN busy time is 10 + 3 + 2 slot-minutes
	assert.InDelta(t, 15.0, r.BusyTime(), 1e-9)
}

func TestNewResource_RejectsBadCapacity(t *testing.T) {
	e := NewEngine()
	assert.Panics(t, func() { NewResource(e, "bad", 0) })
	assert.Panics(t, func() { NewResource(nil, "bad", 1) })
}
