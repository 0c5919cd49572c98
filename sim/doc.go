// Package sim provides the core discrete-event simulation kernel.
//
// # Reading Guide
//
// Start with these files to understand the kernel:
//   - engine.go: the virtual clock, Schedule/Delay, and the RunUntil event loop
//   - event_heap.go: deterministic (time, insertion order) event ordering
//   - resource.go: capacity-bounded resources with a FIFO wait queue
//
// # Model
//
// Processes are written as chains of continuations. A process yields only by
// asking the Engine for a Delay or by calling Resource.Acquire; the engine
// resumes it by running the next continuation. Everything runs on a single
// goroutine, so shared state needs no locks. Virtual time is in minutes and
// never waits on the wall clock.
//
// Sub-packages:
//   - sim/mining/: the truck fleet and simulation driver
//   - sim/trace/: phase trace recording
//   - sim/report/: statistics aggregation and printing
package sim
