package sim

import "errors"

var (
	// ErrInvalidDuration is returned when a delay is negative or not a number,
	// or an event is scheduled before the current clock. It always indicates
	// a bug in the caller, never bad user input.
	ErrInvalidDuration = errors.New("invalid duration")

	// ErrResourceOveracquire is returned when granting a slot would push a
	// resource's in-use count past its capacity.
	ErrResourceOveracquire = errors.New("resource over-acquired")

	// ErrReleaseIdle is returned when a resource with no slot in use is released.
	ErrReleaseIdle = errors.New("release of idle resource")
)
