package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/mining-sim/sim/mining"
)

func fixtureResult() *mining.Result {
	return &mining.Result{
		Clock: 1000,
		Trucks: []mining.TruckRecord{
			{Name: "Mining Truck 0", TimeSpentMining: 400, TimesMined: 2, TimeSpentTraveling: 120,
				TimesUnloaded: 2, TimeInQueue: 10, TimesQueued: 2, CurrentPhase: mining.Traveling},
			{Name: "Mining Truck 1", TimeSpentMining: 600, TimesMined: 3, TimeSpentTraveling: 150,
				TimesUnloaded: 2, TimeInQueue: 0, TimesQueued: 3, CurrentPhase: mining.WaitingInQueue},
		},
		Stations: []mining.StationRecord{
			{Name: "Unload Station 0", Unloads: 3, BusyTime: 15},
			{Name: "Unload Station 1", Unloads: 1, BusyTime: 5},
		},
		PeakQueueLen: 1,
	}
}

func TestSummarize_Operation(t *testing.T) {
	s := Summarize(fixtureResult())
	op := s.Operation

	assert.Equal(t, 2, op.Trucks)
	assert.Equal(t, 2, op.Stations)
	assert.Equal(t, 1000.0, op.Horizon)
	assert.Equal(t, 1000.0, op.TotalMiningTime)
	assert.Equal(t, 5, op.TotalTimesMined)
	assert.Equal(t, 200.0, op.AvgMiningTime)
	assert.Equal(t, 10.0, op.TotalQueueTime)
	assert.Equal(t, 5, op.TotalTimesQueued)
	assert.Equal(t, 2.0, op.AvgQueueTime)
	assert.Equal(t, 4, op.TotalUnloads)
	assert.Equal(t, 500.0, op.MeanMiningPerTruck)
	assert.InDelta(t, 141.4213562, op.StdDevMiningPerTruck, 1e-6)
	assert.Equal(t, 5.0, op.MeanQueuePerTruck)
	assert.InDelta(t, 0.01, op.MeanStationUtilization, 1e-12)
	assert.Equal(t, 1, op.PeakQueueLen)
}

func TestSummarize_PerTruckAndStation(t *testing.T) {
	s := Summarize(fixtureResult())

	require.Len(t, s.Trucks, 2)
	assert.Equal(t, 200.0, s.Trucks[0].AvgTimeMining)
	assert.Equal(t, 5.0, s.Trucks[0].AvgTimeQueued)
	assert.Equal(t, "WaitingInQueue", s.Trucks[1].CurrentPhase)

	require.Len(t, s.Stations, 2)
	assert.InDelta(t, 0.015, s.Stations[0].Utilization, 1e-12)
}

func TestSummarize_NilAndEmpty(t *testing.T) {
	assert.NotPanics(t, func() { Summarize(nil) })

	s := Summarize(&mining.Result{})
	assert.Equal(t, 0.0, s.Operation.AvgMiningTime, "no division by zero")
	assert.Equal(t, 0.0, s.Operation.AvgQueueTime, "no division by zero")
	assert.Equal(t, 0.0, s.Operation.StdDevMiningPerTruck)
}

func TestSummarize_SingleTruckHasZeroDeviation(t *testing.T) {
	res := fixtureResult()
	res.Trucks = res.Trucks[:1]
	s := Summarize(res)
	assert.Equal(t, 400.0, s.Operation.MeanMiningPerTruck)
	assert.Equal(t, 0.0, s.Operation.StdDevMiningPerTruck)
}

func TestPrint_ContainsTruckAndOperationStats(t *testing.T) {
	var buf bytes.Buffer
	Print(&buf, Summarize(fixtureResult()))
	out := buf.String()

	assert.Contains(t, out, "Mining Truck 0")
	assert.Contains(t, out, "Total time spent mining = 400.00 minutes")
	assert.Contains(t, out, "Completed mining sessions = 3")
	assert.Contains(t, out, "Unload Station 1: unloads = 1")
	assert.Contains(t, out, "=== Operation Stats ===")
	assert.Contains(t, out, "Number of Mining Trucks = 2, Number of Unloading Stations = 2")
	assert.Contains(t, out, "Avg time per queue visit = 2.00 minutes")
}

func TestWriteJSON_IsValid(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, Summarize(fixtureResult())))

	var back Summary
	require.NoError(t, json.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, 5, back.Operation.TotalTimesMined)
	assert.Len(t, back.Trucks, 2)
}

func TestCompare_OneRowPerSummary(t *testing.T) {
	a := Summarize(fixtureResult())
	b := Summarize(fixtureResult())
	b.Operation.Stations = 3

	var buf bytes.Buffer
	require.NoError(t, Compare(&buf, []*Summary{a, b}))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	assert.Len(t, lines, 3, "header plus two rows")
	assert.Contains(t, string(lines[0]), "stations")
}
