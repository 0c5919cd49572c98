package sim

// Event is a scheduled wake-up. Events are ordered by due time; events due at
// the same instant run in the order they were scheduled (seq).
type Event struct {
	time float64 // virtual time (minutes) at which fn runs
	seq  uint64  // insertion order, breaks ties between same-instant events
	fn   func()  // continuation
}

// Timestamp returns the virtual time the event is due.
func (e *Event) Timestamp() float64 {
	return e.time
}

// Seq returns the insertion sequence number assigned by the engine.
func (e *Event) Seq() uint64 {
	return e.seq
}
