package trace

import (
	"io"

	"gopkg.in/yaml.v3"
)

// TraceLevel controls the verbosity of phase tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelPhases captures every completed truck phase interval.
	TraceLevelPhases TraceLevel = "phases"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:   true,
	TraceLevelPhases: true,
	"":               true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel `yaml:"level"`
}

// Enabled reports whether records should be collected at all.
func (c TraceConfig) Enabled() bool {
	return c.Level == TraceLevelPhases
}

// SimulationTrace collects phase records during a mining simulation.
type SimulationTrace struct {
	Config TraceConfig   `yaml:"config"`
	Phases []PhaseRecord `yaml:"phases"`
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config: config,
		Phases: make([]PhaseRecord, 0),
	}
}

// RecordPhase appends a phase record.
func (st *SimulationTrace) RecordPhase(record PhaseRecord) {
	st.Phases = append(st.Phases, record)
}

// Filter returns the records for the given phase, in recording order.
func (st *SimulationTrace) Filter(phase string) []PhaseRecord {
	var out []PhaseRecord
	for _, r := range st.Phases {
		if r.Phase == phase {
			out = append(out, r)
		}
	}
	return out
}

// WriteYAML encodes the trace to w.
func (st *SimulationTrace) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(st); err != nil {
		return err
	}
	return enc.Close()
}
