package sim

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

// Unbounded is the capacity of a resource that never makes a caller wait.
const Unbounded = math.MaxInt

// Resource is a reusable resource with a bounded number of identical slots
// and a FIFO wait queue. All mutation happens inside engine continuations,
// so no locking is needed.
//
// Invariant: inUse <= capacity, and no slot stays idle while a waiter exists.
type Resource struct {
	Name string

	engine   *Engine
	capacity int
	inUse    int
	waitQ    *WaitQueue

	grants       int
	peakQueueLen int
	busyTime     float64 // integral of inUse over virtual time
	lastChange   float64
}

// NewResource creates a resource with the given capacity. Use Unbounded for a
// resource that always grants immediately.
func NewResource(engine *Engine, name string, capacity int) *Resource {
	if engine == nil {
		panic("NewResource: engine must not be nil")
	}
	if capacity < 1 {
		panic(fmt.Sprintf("NewResource: capacity must be >= 1, got %d", capacity))
	}
	return &Resource{
		Name:       name,
		engine:     engine,
		capacity:   capacity,
		waitQ:      &WaitQueue{},
		lastChange: engine.Now(),
	}
}

// Acquire requests one slot. If a slot is free and nobody is waiting, the slot
// is taken now and onGrant is resumed by a zero-delay event, keeping it
// ordered behind anything already due at this instant. Otherwise the caller
// joins the back of the wait queue and is resumed when Release hands it a slot.
func (r *Resource) Acquire(onGrant func()) error {
	if r.inUse < r.capacity && r.waitQ.Len() == 0 {
		return r.grant(onGrant)
	}
	r.waitQ.Enqueue(onGrant)
	if n := r.waitQ.Len(); n > r.peakQueueLen {
		r.peakQueueLen = n
	}
	logrus.Tracef("[t=%10.3f] %s: queued (in use %d, waiting %d)", r.engine.Now(), r.Name, r.inUse, r.waitQ.Len())
	return nil
}

// Release frees one slot. If the wait queue is non-empty its head is granted
// the freed slot in the same instant.
func (r *Resource) Release() error {
	if r.inUse == 0 {
		return fmt.Errorf("%w: %s", ErrReleaseIdle, r.Name)
	}
	r.account()
	r.inUse--
	if next := r.waitQ.Dequeue(); next != nil {
		return r.grant(next)
	}
	return nil
}

func (r *Resource) grant(onGrant func()) error {
	if r.inUse >= r.capacity {
		return fmt.Errorf("%w: %s has %d of %d slots in use", ErrResourceOveracquire, r.Name, r.inUse, r.capacity)
	}
	r.account()
	r.inUse++
	r.grants++
	return r.engine.Schedule(r.engine.Now(), onGrant)
}

// account folds the time since the last in-use change into busyTime.
func (r *Resource) account() {
	now := r.engine.Now()
	r.busyTime += float64(r.inUse) * (now - r.lastChange)
	r.lastChange = now
}

// Capacity returns the number of slots, or Unbounded.
func (r *Resource) Capacity() int {
	return r.capacity
}

// InUse returns the number of slots currently granted.
func (r *Resource) InUse() int {
	return r.inUse
}

// QueueLen returns the number of waiters.
func (r *Resource) QueueLen() int {
	return r.waitQ.Len()
}

// Grants returns the number of slots granted since creation.
func (r *Resource) Grants() int {
	return r.grants
}

// PeakQueueLen returns the longest the wait queue has been.
func (r *Resource) PeakQueueLen() int {
	return r.peakQueueLen
}

// BusyTime returns slot-minutes of occupancy up to the engine's current clock.
func (r *Resource) BusyTime() float64 {
	return r.busyTime + float64(r.inUse)*(r.engine.Now()-r.lastChange)
}
