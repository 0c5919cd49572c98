// Package report aggregates finished mining runs into per-truck, per-station
// and operation-wide statistics and prints them.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"gonum.org/v1/gonum/stat"

	"github.com/inference-sim/mining-sim/sim/mining"
)

// TruckSummary is one truck's statistics, as reported.
type TruckSummary struct {
	Name               string  `json:"name"`
	TimeSpentMining    float64 `json:"time_spent_mining"`
	TimesMined         int     `json:"times_mined"`
	AvgTimeMining      float64 `json:"avg_time_mining"`
	TimeSpentTraveling float64 `json:"time_spent_traveling"`
	TimesUnloaded      int     `json:"times_unloaded"`
	TimeInQueue        float64 `json:"time_in_queue"`
	TimesQueued        int     `json:"times_queued"`
	AvgTimeQueued      float64 `json:"avg_time_queued"`
	CurrentPhase       string  `json:"current_phase"`
}

// StationSummary is one unload station's statistics.
type StationSummary struct {
	Name        string  `json:"name"`
	Unloads     int     `json:"unloads"`
	BusyTime    float64 `json:"busy_time"`
	Utilization float64 `json:"utilization"`
}

// OperationSummary aggregates across the whole fleet.
type OperationSummary struct {
	Trucks   int     `json:"trucks"`
	Stations int     `json:"stations"`
	Horizon  float64 `json:"horizon"`

	TotalMiningTime float64 `json:"total_mining_time"`
	TotalTimesMined int     `json:"total_times_mined"`
	AvgMiningTime   float64 `json:"avg_mining_time"` // per completed session

	TotalQueueTime   float64 `json:"total_queue_time"`
	TotalTimesQueued int     `json:"total_times_queued"`
	AvgQueueTime     float64 `json:"avg_queue_time"` // per queue visit

	TotalUnloads int `json:"total_unloads"`

	MeanMiningPerTruck   float64 `json:"mean_mining_per_truck"`
	StdDevMiningPerTruck float64 `json:"stddev_mining_per_truck"`
	MeanQueuePerTruck    float64 `json:"mean_queue_per_truck"`
	StdDevQueuePerTruck  float64 `json:"stddev_queue_per_truck"`

	MeanStationUtilization float64 `json:"mean_station_utilization"`
	PeakQueueLen           int     `json:"peak_queue_len"`
}

// Summary is the complete report for one run.
type Summary struct {
	Operation OperationSummary `json:"operation"`
	Trucks    []TruckSummary   `json:"trucks"`
	Stations  []StationSummary `json:"stations"`
}

// Summarize computes the report for a finished run. Safe for a nil result.
func Summarize(res *mining.Result) *Summary {
	s := &Summary{}
	if res == nil {
		return s
	}

	op := &s.Operation
	op.Trucks = len(res.Trucks)
	op.Stations = len(res.Stations)
	op.Horizon = res.Clock
	op.PeakQueueLen = res.PeakQueueLen

	miningTimes := make([]float64, 0, len(res.Trucks))
	queueTimes := make([]float64, 0, len(res.Trucks))
	for _, t := range res.Trucks {
		s.Trucks = append(s.Trucks, TruckSummary{
			Name:               t.Name,
			TimeSpentMining:    t.TimeSpentMining,
			TimesMined:         t.TimesMined,
			AvgTimeMining:      t.AvgTimeMining(),
			TimeSpentTraveling: t.TimeSpentTraveling,
			TimesUnloaded:      t.TimesUnloaded,
			TimeInQueue:        t.TimeInQueue,
			TimesQueued:        t.TimesQueued,
			AvgTimeQueued:      t.AvgTimeQueued(),
			CurrentPhase:       t.CurrentPhase.String(),
		})
		op.TotalMiningTime += t.TimeSpentMining
		op.TotalTimesMined += t.TimesMined
		op.TotalQueueTime += t.TimeInQueue
		op.TotalTimesQueued += t.TimesQueued
		op.TotalUnloads += t.TimesUnloaded
		miningTimes = append(miningTimes, t.TimeSpentMining)
		queueTimes = append(queueTimes, t.TimeInQueue)
	}
	op.AvgMiningTime = ratio(op.TotalMiningTime, op.TotalTimesMined)
	op.AvgQueueTime = ratio(op.TotalQueueTime, op.TotalTimesQueued)
	op.MeanMiningPerTruck, op.StdDevMiningPerTruck = meanStdDev(miningTimes)
	op.MeanQueuePerTruck, op.StdDevQueuePerTruck = meanStdDev(queueTimes)

	util := make([]float64, 0, len(res.Stations))
	for _, st := range res.Stations {
		u := st.Utilization(res.Clock)
		s.Stations = append(s.Stations, StationSummary{
			Name:        st.Name,
			Unloads:     st.Unloads,
			BusyTime:    st.BusyTime,
			Utilization: u,
		})
		util = append(util, u)
	}
	if len(util) > 0 {
		op.MeanStationUtilization = stat.Mean(util, nil)
	}

	return s
}

func ratio(total float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return total / float64(n)
}

// meanStdDev returns the mean and sample standard deviation of xs. The
// deviation is 0 for fewer than two values.
func meanStdDev(xs []float64) (float64, float64) {
	switch len(xs) {
	case 0:
		return 0, 0
	case 1:
		return xs[0], 0
	}
	return stat.MeanStdDev(xs, nil)
}

// Print writes the human-readable report to w.
func Print(w io.Writer, s *Summary) {
	for _, t := range s.Trucks {
		fmt.Fprintln(w, t.Name)
		fmt.Fprintf(w, "Total time spent mining = %.2f minutes\n", t.TimeSpentMining)
		fmt.Fprintf(w, "Completed mining sessions = %d\n", t.TimesMined)
		fmt.Fprintf(w, "Avg time spent mining = %.2f minutes\n", t.AvgTimeMining)
		fmt.Fprintf(w, "Total time spent traveling = %.2f minutes\n", t.TimeSpentTraveling)
		fmt.Fprintf(w, "Times unloaded = %d\n", t.TimesUnloaded)
		fmt.Fprintf(w, "Total time spent in Unloading Queue = %.2f minutes\n", t.TimeInQueue)
		fmt.Fprintf(w, "Avg time spent in Unloading Queue = %.2f minutes\n", t.AvgTimeQueued)
		fmt.Fprintf(w, "Current location = %s\n\n", t.CurrentPhase)
	}

	for _, st := range s.Stations {
		fmt.Fprintf(w, "%s: unloads = %d, busy = %.2f minutes, utilization = %.1f%%\n",
			st.Name, st.Unloads, st.BusyTime, 100*st.Utilization)
	}
	if len(s.Stations) > 0 {
		fmt.Fprintln(w)
	}

	op := s.Operation
	fmt.Fprintln(w, "=== Operation Stats ===")
	fmt.Fprintf(w, "Number of Mining Trucks = %d, Number of Unloading Stations = %d\n", op.Trucks, op.Stations)
	fmt.Fprintf(w, "Simulated horizon = %.0f minutes\n", op.Horizon)
	fmt.Fprintf(w, "Total time all trucks spent mining = %.2f minutes\n", op.TotalMiningTime)
	fmt.Fprintf(w, "Total of completed mining sessions = %d\n", op.TotalTimesMined)
	fmt.Fprintf(w, "Avg time per mining session = %.2f minutes\n", op.AvgMiningTime)
	fmt.Fprintf(w, "Mining time per truck = %.2f ± %.2f minutes\n", op.MeanMiningPerTruck, op.StdDevMiningPerTruck)
	fmt.Fprintf(w, "Total unloads = %d\n", op.TotalUnloads)
	fmt.Fprintf(w, "Total time all trucks spent in unload queue = %.2f minutes\n", op.TotalQueueTime)
	fmt.Fprintf(w, "Total number of times trucks were queued = %d\n", op.TotalTimesQueued)
	fmt.Fprintf(w, "Avg time per queue visit = %.2f minutes\n", op.AvgQueueTime)
	fmt.Fprintf(w, "Queue time per truck = %.2f ± %.2f minutes\n", op.MeanQueuePerTruck, op.StdDevQueuePerTruck)
	fmt.Fprintf(w, "Peak unload queue length = %d\n", op.PeakQueueLen)
	fmt.Fprintf(w, "Mean station utilization = %.1f%%\n", 100*op.MeanStationUtilization)
}

// WriteJSON writes the report to w as indented JSON.
func WriteJSON(w io.Writer, s *Summary) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
