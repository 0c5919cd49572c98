package mining

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/mining-sim/sim"
	"github.com/inference-sim/mining-sim/sim/trace"
)

// ErrAlreadyRun is returned when Run is called twice on the same Simulator.
var ErrAlreadyRun = errors.New("simulator already run")

// Result is everything a finished run hands to the reporting layer.
type Result struct {
	Config         Config
	Trucks         []TruckRecord
	Stations       []StationRecord
	Clock          float64 // virtual time at which the run stopped (the horizon)
	EventsExecuted uint64
	PeakQueueLen   int                    // longest the unload queue ever got
	Trace          *trace.SimulationTrace // nil unless tracing was enabled
}

// Simulator wires N truck processes against one unbounded mining-site
// resource and one unload resource with a slot per station.
type Simulator struct {
	Config Config

	engine   *sim.Engine
	site     *sim.Resource
	unload   *sim.Resource
	stations *stationPool
	records  []*TruckRecord
	trucks   []*truck
	rng      *rand.Rand
	trace    *trace.SimulationTrace
	ran      bool
}

// NewSimulator validates cfg and builds the resources and trucks. Every
// truck's first arrival at the mining site is registered as a time-0 event
// in truck order.
func NewSimulator(cfg Config) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	engine := sim.NewEngine()
	s := &Simulator{
		Config:   cfg,
		engine:   engine,
		site:     sim.NewResource(engine, "mining-site", sim.Unbounded),
		unload:   sim.NewResource(engine, "unload-stations", cfg.Stations),
		stations: newStationPool(cfg.Stations),
		records:  make([]*TruckRecord, cfg.Trucks),
		trucks:   make([]*truck, cfg.Trucks),
		rng:      sim.NewPartitionedRNG(sim.NewSimulationKey(cfg.Seed)).ForSubsystem(sim.SubsystemMining),
	}
	if cfg.Trace.Enabled() {
		s.trace = trace.NewSimulationTrace(cfg.Trace)
	}

	for i := 0; i < cfg.Trucks; i++ {
		s.records[i] = &TruckRecord{
			ID:           i,
			Name:         fmt.Sprintf("Mining Truck %d", i),
			CurrentPhase: AtMiningSite,
		}
		s.trucks[i] = newTruck(s, s.records[i])
		if err := engine.Schedule(0, s.trucks[i].arriveAtSite); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// sampleMiningMinutes draws a mining duration uniformly from [60, 300).
func (s *Simulator) sampleMiningMinutes() float64 {
	return sim.Uniform(s.rng, MiningMinMinutes, MiningMaxMinutes)
}

// Run advances the clock to the horizon and returns snapshots of every truck
// and station. A Simulator can only be run once.
func (s *Simulator) Run() (*Result, error) {
	if s.ran {
		return nil, ErrAlreadyRun
	}
	s.ran = true

	logrus.Infof("Starting mining simulation: trucks=%d, stations=%d, horizon=%.1f min, seed=%d",
		s.Config.Trucks, s.Config.Stations, s.Config.Horizon, s.Config.Seed)

	if err := s.engine.RunUntil(s.Config.Horizon); err != nil {
		return nil, fmt.Errorf("simulation halted at t=%.3f: %w", s.engine.Now(), err)
	}

	now := s.engine.Now()
	if s.trace != nil {
		for _, t := range s.trucks {
			if t.started {
				t.closePhase(now, true)
			}
		}
	}

	res := &Result{
		Config:         s.Config,
		Trucks:         make([]TruckRecord, len(s.records)),
		Stations:       s.stations.snapshot(now),
		Clock:          now,
		EventsExecuted: s.engine.Executed(),
		PeakQueueLen:   s.unload.PeakQueueLen(),
		Trace:          s.trace,
	}
	for i, rec := range s.records {
		res.Trucks[i] = *rec
	}

	logrus.Infof("Mining simulation complete: %d events executed, %d unload grants, station busy time %.1f min",
		res.EventsExecuted, s.unload.Grants(), s.unload.BusyTime())
	return res, nil
}

// Run simulates nTrucks trucks sharing nStations unload stations for horizon
// minutes and returns the final truck records in creation order.
func Run(nTrucks, nStations int, horizon float64, seed int64) ([]TruckRecord, error) {
	cfg := NewConfig(nTrucks, nStations, seed)
	cfg.Horizon = horizon
	s, err := NewSimulator(cfg)
	if err != nil {
		return nil, err
	}
	res, err := s.Run()
	if err != nil {
		return nil, err
	}
	return res.Trucks, nil
}
