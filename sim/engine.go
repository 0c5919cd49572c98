// sim/engine.go
package sim

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

// Engine is the cooperative discrete-event scheduler. It holds the virtual
// clock (minutes) and the queue of pending continuations, and advances time
// in jumps from one event to the next without ever sleeping.
//
// Thread-safety: NOT thread-safe. Every continuation runs on the goroutine
// that called RunUntil, one at a time.
type Engine struct {
	Clock float64

	queue    *EventHeap
	nextSeq  uint64 // per-engine counter for deterministic tie-breaking
	executed uint64
	err      error // first fatal error raised by a continuation
}

// NewEngine creates an engine with the clock at zero and an empty queue.
func NewEngine() *Engine {
	return &Engine{
		Clock: 0,
		queue: NewEventHeap(),
	}
}

// Now returns the current virtual time.
func (e *Engine) Now() float64 {
	return e.Clock
}

// Schedule registers fn to run at virtual time at. Scheduling in the past
// fails with ErrInvalidDuration.
func (e *Engine) Schedule(at float64, fn func()) error {
	if math.IsNaN(at) || at < e.Clock {
		return fmt.Errorf("%w: event at %v is before clock %v", ErrInvalidDuration, at, e.Clock)
	}
	if fn == nil {
		panic("Schedule: fn must not be nil")
	}
	e.nextSeq++
	e.queue.Schedule(&Event{time: at, seq: e.nextSeq, fn: fn})
	return nil
}

// Delay suspends the calling process for d minutes: fn is resumed at Now()+d.
// A negative or NaN duration fails with ErrInvalidDuration.
func (e *Engine) Delay(d float64, fn func()) error {
	if math.IsNaN(d) || d < 0 {
		return fmt.Errorf("%w: delay of %v minutes", ErrInvalidDuration, d)
	}
	return e.Schedule(e.Clock+d, fn)
}

// Fail records a fatal error raised from inside a continuation. The engine
// stops pumping events and RunUntil returns the first recorded error.
func (e *Engine) Fail(err error) {
	if err == nil || e.err != nil {
		return
	}
	logrus.Errorf("[t=%10.3f] engine halted: %v", e.Clock, err)
	e.err = err
}

// Err returns the fatal error recorded by Fail, if any.
func (e *Engine) Err() error {
	return e.err
}

// Pending returns the number of events still queued.
func (e *Engine) Pending() int {
	return e.queue.Len()
}

// Executed returns how many continuations have run so far.
func (e *Engine) Executed() uint64 {
	return e.executed
}

// RunUntil pops events in (time, seq) order and runs them until the queue is
// empty or the next event is due after horizon. The clock then rests at
// horizon; continuations still queued are abandoned, not cancelled.
func (e *Engine) RunUntil(horizon float64) error {
	if math.IsNaN(horizon) || horizon < e.Clock {
		return fmt.Errorf("%w: horizon %v is before clock %v", ErrInvalidDuration, horizon, e.Clock)
	}
	for e.err == nil && e.queue.Len() > 0 {
		if e.queue.Peek().time > horizon {
			break
		}
		ev := e.queue.PopNext()

		// Clock must never move backwards
		if ev.time < e.Clock {
			panic(fmt.Sprintf("Clock went backwards: %v < %v", ev.time, e.Clock))
		}
		e.Clock = ev.time
		logrus.Tracef("[t=%10.3f] executing event #%d", e.Clock, ev.seq)

		ev.fn()
		e.executed++
	}
	if e.err != nil {
		return e.err
	}
	e.Clock = horizon
	logrus.Debugf("[t=%10.3f] run ended: %d events executed, %d pending", e.Clock, e.executed, e.queue.Len())
	return nil
}
