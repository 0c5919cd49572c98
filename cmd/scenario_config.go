package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/inference-sim/mining-sim/sim/mining"
	"github.com/inference-sim/mining-sim/sim/trace"
)

// ScenarioFile is the structure of a scenarios YAML file.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type ScenarioFile struct {
	Version   string              `yaml:"version"`
	Scenarios map[string]Scenario `yaml:"scenarios"`
}

// Scenario describes one preset operation. Zero-valued fields fall back to
// the CLI flag defaults.
type Scenario struct {
	Trucks   int     `yaml:"trucks"`
	Stations int     `yaml:"stations"`
	Horizon  float64 `yaml:"horizon"` // minutes
	Seed     *int64  `yaml:"seed"`    // nil = unseeded
	Trace    string  `yaml:"trace"`
}

// LoadScenario reads the named scenario from a YAML file.
// Uses strict field checking: typos must cause errors.
func LoadScenario(path, name string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("read scenario file: %w", err)
	}

	var file ScenarioFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return Scenario{}, fmt.Errorf("parse scenario file %s: %w", path, err)
	}

	sc, ok := file.Scenarios[name]
	if !ok {
		return Scenario{}, fmt.Errorf("scenario %q not found in %s", name, path)
	}
	logrus.Infof("Using scenario %q from %s", name, path)
	return sc, nil
}

// apply overlays the scenario onto cfg. Values the user set explicitly on
// the command line win; changed reports whether a flag was set.
func (sc Scenario) apply(cfg *mining.Config, changed func(flag string) bool) (seeded bool) {
	if sc.Trucks != 0 && !changed("trucks") {
		cfg.Trucks = sc.Trucks
	}
	if sc.Stations != 0 && !changed("stations") {
		cfg.Stations = sc.Stations
	}
	if sc.Horizon != 0 && !changed("horizon") {
		cfg.Horizon = sc.Horizon
	}
	if sc.Trace != "" && !changed("trace") {
		cfg.Trace.Level = trace.TraceLevel(sc.Trace)
	}
	if sc.Seed != nil && !changed("seed") {
		cfg.Seed = *sc.Seed
		return true
	}
	return false
}
