// Package mining simulates a continuous lunar Helium-3 mining operation on
// top of the sim kernel.
//
// N trucks repeat a four-phase cycle (mine, travel, queue and unload, travel)
// and contend for M identical single-capacity unload stations. Mining sites
// are unlimited, so the mining-site resource never makes a truck wait.
//
// # Reading Guide
//
//   - phase.go: the Phase enum and TruckRecord counters
//   - truck.go: the truck state machine, one continuation per transition
//   - station.go: binding of granted unload slots to concrete stations
//   - simulator.go: the driver that wires trucks to resources and runs the clock
//
// The simulation ends when the clock reaches the configured horizon. Trucks
// are left wherever they are at that instant; partially completed phases are
// not counted, matching a fixed-length shift.
package mining
