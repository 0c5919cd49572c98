package mining

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/inference-sim/mining-sim/sim"
	"github.com/inference-sim/mining-sim/sim/trace"
)

// runTraced runs a simulation with phase tracing enabled.
func runTraced(t *testing.T, trucks, stations int, horizon float64, seed int64) *Result {
	t.Helper()
	cfg := NewConfig(trucks, stations, seed)
	cfg.Horizon = horizon
	cfg.Trace = trace.TraceConfig{Level: trace.TraceLevelPhases}
	s, err := NewSimulator(cfg)
	require.NoError(t, err)
	res, err := s.Run()
	require.NoError(t, err)
	require.NotNil(t, res.Trace)
	return res
}

// expectedSingleTruck replays the cycle of a lone truck with its own station
// against the same mining-duration stream the simulator uses.
func expectedSingleTruck(horizon float64, seed int64) TruckRecord {
	rng := rand.New(rand.NewSource(seed))
	rec := TruckRecord{ID: 0, Name: "Mining Truck 0", CurrentPhase: AtMiningSite}
	now := 0.0
	for {
		d := sim.Uniform(rng, MiningMinMinutes, MiningMaxMinutes)
		if now+d > horizon {
			return rec
		}
		now += d
		rec.TimeSpentMining += d
		rec.TimesMined++
		rec.CurrentPhase = Traveling

		if now+TravelMinutes > horizon {
			return rec
		}
		now += TravelMinutes
		rec.TimeSpentTraveling += TravelMinutes
		rec.TimesQueued++
		rec.CurrentPhase = AtUnloadStation

		if now+UnloadMinutes > horizon {
			return rec
		}
		now += UnloadMinutes
		rec.TimesUnloaded++
		rec.CurrentPhase = Traveling

		if now+TravelMinutes > horizon {
			return rec
		}
		now += TravelMinutes
		rec.TimeSpentTraveling += TravelMinutes
		rec.CurrentPhase = AtMiningSite
	}
}
