package mining

import (
	"errors"
	"fmt"
	"math"

	"github.com/inference-sim/mining-sim/sim/trace"
)

// Durations of the operation, in minutes.
const (
	MiningMinMinutes = 60.0  // shortest mining session (1 hour)
	MiningMaxMinutes = 300.0 // mining sessions are drawn from [min, max)
	TravelMinutes    = 30.0  // one leg between a mining site and the stations
	UnloadMinutes    = 5.0   // time a truck holds an unload station

	DefaultHorizon = 72 * 60.0 // 72 hours of continuous operation
)

// Accepted ranges for truck and station counts.
const (
	MaxTrucks   = 999
	MaxStations = 999
)

// ErrInvalidConfiguration is returned when a run is requested with an
// out-of-range truck count, station count or horizon. The run never starts.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// Config groups the parameters of one simulated operation.
type Config struct {
	Trucks   int               `yaml:"trucks" json:"trucks"`
	Stations int               `yaml:"stations" json:"stations"`
	Horizon  float64           `yaml:"horizon" json:"horizon"` // minutes
	Seed     int64             `yaml:"seed" json:"seed"`
	Trace    trace.TraceConfig `yaml:"trace" json:"-"`
}

// NewConfig returns a Config with the given counts, the default 72-hour
// horizon and tracing disabled.
func NewConfig(trucks, stations int, seed int64) Config {
	return Config{
		Trucks:   trucks,
		Stations: stations,
		Horizon:  DefaultHorizon,
		Seed:     seed,
		Trace:    trace.TraceConfig{Level: trace.TraceLevelNone},
	}
}

// Validate checks the counts and horizon. All failures wrap
// ErrInvalidConfiguration.
func (c Config) Validate() error {
	if c.Trucks < 1 || c.Trucks > MaxTrucks {
		return fmt.Errorf("%w: trucks must be in [1, %d], got %d", ErrInvalidConfiguration, MaxTrucks, c.Trucks)
	}
	if c.Stations < 1 || c.Stations > MaxStations {
		return fmt.Errorf("%w: stations must be in [1, %d], got %d", ErrInvalidConfiguration, MaxStations, c.Stations)
	}
	if math.IsNaN(c.Horizon) || math.IsInf(c.Horizon, 0) || c.Horizon < 0 {
		return fmt.Errorf("%w: horizon must be a finite number of minutes >= 0, got %v", ErrInvalidConfiguration, c.Horizon)
	}
	if !trace.IsValidTraceLevel(string(c.Trace.Level)) {
		return fmt.Errorf("%w: unknown trace level %q", ErrInvalidConfiguration, c.Trace.Level)
	}
	return nil
}
