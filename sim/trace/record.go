// Package trace provides phase-trace recording for mining simulations.
// This package has no dependencies on sim/ or sim/mining/ — it stores pure data types.
package trace

// PhaseRecord captures one interval a truck spent in a single phase.
type PhaseRecord struct {
	Truck     string  `yaml:"truck"`
	Phase     string  `yaml:"phase"`
	Station   int     `yaml:"station"` // unload station index, -1 outside AtUnloadStation
	Start     float64 `yaml:"start"`
	End       float64 `yaml:"end"`
	Truncated bool    `yaml:"truncated,omitempty"` // still in progress when the horizon was reached
}

// Duration returns End - Start.
func (r PhaseRecord) Duration() float64 {
	return r.End - r.Start
}
