package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/mining-sim/sim/mining"
	"github.com/inference-sim/mining-sim/sim/report"
)

var (
	// CLI flags for sweep
	sweepTrucks      int     // Fixed number of trucks across the sweep
	sweepStationsMin int     // First station count
	sweepStationsMax int     // Last station count (inclusive)
	sweepHorizon     float64 // Simulated duration per run (in minutes)
	sweepSeed        int64   // Shared seed so operations differ only in station count
	sweepNoProgress  bool    // Hide the progress bar
)

// sweepCmd compares operations that differ only in their station count
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Compare operations across a range of unload station counts",
	Run: func(cmd *cobra.Command, args []string) {
		var progress io.Writer = os.Stderr
		if sweepNoProgress {
			progress = io.Discard
		}
		summaries, err := runSweep(sweepTrucks, sweepStationsMin, sweepStationsMax, sweepHorizon, sweepSeed, progress)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		if err := report.Compare(os.Stdout, summaries); err != nil {
			logrus.Fatalf("%v", err)
		}
	},
}

// runSweep runs one simulation per station count in [minStations, maxStations].
func runSweep(trucks, minStations, maxStations int, horizon float64, seed int64, progress io.Writer) ([]*report.Summary, error) {
	if minStations > maxStations {
		return nil, fmt.Errorf("%w: stations-min %d > stations-max %d", mining.ErrInvalidConfiguration, minStations, maxStations)
	}

	bar := progressbar.NewOptions(maxStations-minStations+1,
		progressbar.OptionSetWriter(progress),
		progressbar.OptionSetDescription("simulating"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	summaries := make([]*report.Summary, 0, maxStations-minStations+1)
	for m := minStations; m <= maxStations; m++ {
		cfg := mining.NewConfig(trucks, m, seed)
		cfg.Horizon = horizon
		s, err := mining.NewSimulator(cfg)
		if err != nil {
			return nil, err
		}
		res, err := s.Run()
		if err != nil {
			return nil, fmt.Errorf("stations=%d: %w", m, err)
		}
		summaries = append(summaries, report.Summarize(res))
		_ = bar.Add(1)
	}
	_ = bar.Finish()
	return summaries, nil
}

func init() {
	sweepCmd.Flags().IntVarP(&sweepTrucks, "trucks", "n", 10, "Number of mining trucks (1-999)")
	sweepCmd.Flags().IntVar(&sweepStationsMin, "stations-min", 1, "Smallest number of unload stations")
	sweepCmd.Flags().IntVar(&sweepStationsMax, "stations-max", 5, "Largest number of unload stations")
	sweepCmd.Flags().Float64Var(&sweepHorizon, "horizon", mining.DefaultHorizon, "Simulated duration per run (in minutes)")
	sweepCmd.Flags().Int64Var(&sweepSeed, "seed", 42, "Seed shared by every run in the sweep")
	sweepCmd.Flags().BoolVar(&sweepNoProgress, "no-progress", false, "Hide the progress bar")
}
