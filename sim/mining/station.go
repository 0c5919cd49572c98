package mining

import (
	"fmt"

	"github.com/inference-sim/mining-sim/sim"
)

// StationRecord holds per-station statistics. Times are in minutes.
type StationRecord struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Unloads  int     `json:"unloads"`
	BusyTime float64 `json:"busy_time"`
}

// Utilization returns the fraction of the horizon the station was occupied.
func (r StationRecord) Utilization(horizon float64) float64 {
	if horizon <= 0 {
		return 0
	}
	return r.BusyTime / horizon
}

// stationPool maps slots granted by the unload resource onto concrete
// stations. A granted truck takes the lowest-numbered idle station, which
// keeps assignment deterministic.
type stationPool struct {
	records  []StationRecord
	occupied []bool
	since    []float64 // when the current occupant arrived
}

func newStationPool(n int) *stationPool {
	p := &stationPool{
		records:  make([]StationRecord, n),
		occupied: make([]bool, n),
		since:    make([]float64, n),
	}
	for i := range p.records {
		p.records[i] = StationRecord{ID: i, Name: fmt.Sprintf("Unload Station %d", i)}
	}
	return p
}

// bind occupies the lowest idle station at time now.
func (p *stationPool) bind(now float64) (int, error) {
	for i, busy := range p.occupied {
		if !busy {
			p.occupied[i] = true
			p.since[i] = now
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: all %d unload stations occupied", sim.ErrResourceOveracquire, len(p.occupied))
}

// unbind frees station i after a completed unload.
func (p *stationPool) unbind(i int, now float64) {
	if !p.occupied[i] {
		panic(fmt.Sprintf("unbind: station %d is not occupied", i))
	}
	p.occupied[i] = false
	p.records[i].Unloads++
	p.records[i].BusyTime += now - p.since[i]
}

// snapshot returns the station records with in-progress occupancy folded in
// up to now.
func (p *stationPool) snapshot(now float64) []StationRecord {
	out := make([]StationRecord, len(p.records))
	copy(out, p.records)
	for i, busy := range p.occupied {
		if busy {
			out[i].BusyTime += now - p.since[i]
		}
	}
	return out
}
