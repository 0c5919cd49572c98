package mining

import (
	"github.com/sirupsen/logrus"

	"github.com/inference-sim/mining-sim/sim/trace"
)

// truck is the state machine driving one TruckRecord. Each method is a
// continuation resumed by the engine; a truck only yields at a delay or at
// an unload-station acquire that cannot be granted yet.
//
//	AtMiningSite → Traveling → WaitingInQueue → AtUnloadStation → Traveling → AtMiningSite …
type truck struct {
	rec *TruckRecord
	sim *Simulator

	phaseStart float64 // when the current phase was entered
	queuedAt   float64 // when the truck joined the unload queue
	station    int     // bound station while AtUnloadStation, else -1
	started    bool
}

func newTruck(s *Simulator, rec *TruckRecord) *truck {
	return &truck{rec: rec, sim: s, station: -1}
}

// check hands a kernel error to the engine, which stops the run.
func (t *truck) check(err error) bool {
	if err != nil {
		t.sim.engine.Fail(err)
		return false
	}
	return true
}

// enter closes the current phase in the trace and opens the next one.
func (t *truck) enter(next Phase) {
	now := t.sim.engine.Now()
	if t.started {
		t.closePhase(now, false)
	}
	t.started = true
	logrus.Debugf("[t=%10.3f] %s: %s → %s", now, t.rec.Name, t.rec.CurrentPhase, next)
	t.rec.CurrentPhase = next
	t.phaseStart = now
}

func (t *truck) closePhase(now float64, truncated bool) {
	if t.sim.trace == nil {
		return
	}
	station := -1
	if t.rec.CurrentPhase == AtUnloadStation {
		station = t.station
	}
	t.sim.trace.RecordPhase(trace.PhaseRecord{
		Truck:     t.rec.Name,
		Phase:     t.rec.CurrentPhase.String(),
		Station:   station,
		Start:     t.phaseStart,
		End:       now,
		Truncated: truncated,
	})
}

// arriveAtSite starts a cycle: the mining site always has room.
func (t *truck) arriveAtSite() {
	t.enter(AtMiningSite)
	t.check(t.sim.site.Acquire(t.mine))
}

func (t *truck) mine() {
	d := t.sim.sampleMiningMinutes()
	t.check(t.sim.engine.Delay(d, func() { t.finishMining(d) }))
}

func (t *truck) finishMining(d float64) {
	t.rec.TimeSpentMining += d
	t.rec.TimesMined++
	if !t.check(t.sim.site.Release()) {
		return
	}
	t.enter(Traveling)
	t.check(t.sim.engine.Delay(TravelMinutes, t.arriveAtStation))
}

func (t *truck) arriveAtStation() {
	t.rec.TimeSpentTraveling += TravelMinutes
	t.enter(WaitingInQueue)
	t.queuedAt = t.sim.engine.Now()
	t.rec.TimesQueued++
	t.check(t.sim.unload.Acquire(t.beginUnload))
}

func (t *truck) beginUnload() {
	now := t.sim.engine.Now()
	t.rec.TimeInQueue += now - t.queuedAt
	station, err := t.sim.stations.bind(now)
	if !t.check(err) {
		return
	}
	t.station = station
	t.enter(AtUnloadStation)
	t.check(t.sim.engine.Delay(UnloadMinutes, t.finishUnload))
}

func (t *truck) finishUnload() {
	t.rec.TimesUnloaded++
	t.sim.stations.unbind(t.station, t.sim.engine.Now())
	t.enter(Traveling)
	t.station = -1
	if !t.check(t.sim.unload.Release()) {
		return
	}
	t.check(t.sim.engine.Delay(TravelMinutes, t.returnToSite))
}

func (t *truck) returnToSite() {
	t.rec.TimeSpentTraveling += TravelMinutes
	t.arriveAtSite()
}
