package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/mining-sim/sim"
	"github.com/inference-sim/mining-sim/sim/mining"
	"github.com/inference-sim/mining-sim/sim/report"
	"github.com/inference-sim/mining-sim/sim/trace"
)

var (
	// CLI flags for the operation
	numTrucks   int     // Number of mining trucks (n)
	numStations int     // Number of unload stations (m)
	horizon     float64 // Simulated duration (in minutes)
	seed        int64   // Seed for mining durations; unseeded unless set
	logLevel    string  // Log verbosity level

	// CLI flags for input and output
	configPath   string // Scenario YAML file
	scenarioName string // Scenario to load from configPath
	interactive  bool   // Prompt for n and m on stdin
	outputFormat string // "text" or "json"
	traceLevel   string // "none" or "phases"
	traceFile    string // Where to write the phase trace (YAML)
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "mining-sim",
	Short: "Discrete-event simulator for a lunar Helium-3 mining operation",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			return fmt.Errorf("invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
		return nil
	},
}

// runCmd executes one simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the mining operation simulation",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := buildConfig(cmd, os.Stdin, os.Stdout)
		if err != nil {
			logrus.Fatalf("%v", err)
		}

		startTime := time.Now()
		if err := runSimulation(cfg, os.Stdout); err != nil {
			logrus.Fatalf("%v", err)
		}
		logrus.Infof("Simulation complete in %v wall time.", time.Since(startTime))
	},
}

// buildConfig resolves the run configuration from flags, an optional
// scenario file and optional interactive input.
func buildConfig(cmd *cobra.Command, in io.Reader, out io.Writer) (mining.Config, error) {
	cfg := mining.Config{
		Trucks:   numTrucks,
		Stations: numStations,
		Horizon:  horizon,
		Seed:     seed,
		Trace:    trace.TraceConfig{Level: trace.TraceLevel(traceLevel)},
	}
	seeded := cmd.Flags().Changed("seed")

	if configPath != "" {
		sc, err := LoadScenario(configPath, scenarioName)
		if err != nil {
			return mining.Config{}, err
		}
		if sc.apply(&cfg, cmd.Flags().Changed) {
			seeded = true
		}
	}

	if interactive {
		n, m, err := promptFleet(in, out, mining.MaxTrucks, mining.MaxStations)
		if err != nil {
			return mining.Config{}, err
		}
		cfg.Trucks, cfg.Stations = n, m
	}

	if !seeded {
		cfg.Seed = int64(sim.NewUnseededKey())
		logrus.Infof("No seed given; using %d (pass --seed to reproduce this run)", cfg.Seed)
	}

	if err := cfg.Validate(); err != nil {
		return mining.Config{}, err
	}
	return cfg, nil
}

// runSimulation runs cfg and writes the report (and trace, if enabled).
func runSimulation(cfg mining.Config, out io.Writer) error {
	s, err := mining.NewSimulator(cfg)
	if err != nil {
		return err
	}
	res, err := s.Run()
	if err != nil {
		return err
	}

	summary := report.Summarize(res)
	switch outputFormat {
	case "json":
		if err := report.WriteJSON(out, summary); err != nil {
			return err
		}
	case "text", "":
		report.Print(out, summary)
	default:
		return fmt.Errorf("unknown output format %q (expected text or json)", outputFormat)
	}

	if res.Trace != nil {
		return writeTrace(res.Trace, out)
	}
	return nil
}

// writeTrace saves the phase trace to traceFile, or prints its summary when
// no file was given.
func writeTrace(st *trace.SimulationTrace, out io.Writer) error {
	if traceFile != "" {
		f, err := os.Create(traceFile)
		if err != nil {
			return fmt.Errorf("create trace file: %w", err)
		}
		defer f.Close()
		if err := st.WriteYAML(f); err != nil {
			return fmt.Errorf("write trace: %w", err)
		}
		logrus.Infof("Wrote %d phase records to %s", len(st.Phases), traceFile)
		return nil
	}

	ts := trace.Summarize(st)
	phases := make([]string, 0, len(ts.PerPhase))
	for name := range ts.PerPhase {
		phases = append(phases, name)
	}
	sort.Strings(phases)

	fmt.Fprintln(out, "\n=== Phase Trace Summary ===")
	fmt.Fprintf(out, "Records: %d across %d trucks\n", ts.TotalRecords, ts.UniqueTrucks)
	for _, name := range phases {
		ps := ts.PerPhase[name]
		fmt.Fprintf(out, "%-16s count=%d truncated=%d total=%.2f min\n", name, ps.Count, ps.Truncated, ps.TotalTime)
	}
	fmt.Fprintf(out, "Peak concurrent unloads: %d\n", trace.MaxConcurrent(st.Filter(mining.AtUnloadStation.String())))
	return nil
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// registerRunFlags binds the run flags to c.
func registerRunFlags(c *cobra.Command) {
	c.Flags().IntVarP(&numTrucks, "trucks", "n", 10, "Number of mining trucks (1-999)")
	c.Flags().IntVarP(&numStations, "stations", "m", 2, "Number of unload stations (1-999)")
	c.Flags().Float64Var(&horizon, "horizon", mining.DefaultHorizon, "Simulated duration (in minutes)")
	c.Flags().Int64Var(&seed, "seed", 0, "Seed for mining durations (random if unset)")

	c.Flags().StringVar(&configPath, "config", "", "Path to a scenarios YAML file")
	c.Flags().StringVar(&scenarioName, "scenario", "default", "Scenario to load from --config")
	c.Flags().BoolVarP(&interactive, "interactive", "i", false, "Prompt for the number of trucks and stations")
	c.Flags().StringVarP(&outputFormat, "output", "o", "text", "Report format (text, json)")
	c.Flags().StringVar(&traceLevel, "trace", string(trace.TraceLevelNone), "Phase trace level (none, phases)")
	c.Flags().StringVar(&traceFile, "trace-file", "", "Write the phase trace as YAML to this file")
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	registerRunFlags(runCmd)

	// Attach subcommands to `root`
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(sweepCmd)
}
