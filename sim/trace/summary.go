package trace

import "sort"

// PhaseStats aggregates the records of one phase.
type PhaseStats struct {
	Count     int
	Truncated int
	TotalTime float64
}

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalRecords int
	UniqueTrucks int
	PerPhase     map[string]*PhaseStats // phase name → stats
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		PerPhase: make(map[string]*PhaseStats),
	}
	if st == nil {
		return summary
	}

	trucks := make(map[string]struct{})
	for _, r := range st.Phases {
		ps, ok := summary.PerPhase[r.Phase]
		if !ok {
			ps = &PhaseStats{}
			summary.PerPhase[r.Phase] = ps
		}
		ps.Count++
		ps.TotalTime += r.Duration()
		if r.Truncated {
			ps.Truncated++
		}
		trucks[r.Truck] = struct{}{}
	}
	summary.TotalRecords = len(st.Phases)
	summary.UniqueTrucks = len(trucks)

	return summary
}

// MaxConcurrent returns the largest number of records that are open at the
// same instant. Intervals are half-open, so one record ending exactly when
// another starts does not count as overlap.
func MaxConcurrent(records []PhaseRecord) int {
	type edge struct {
		at    float64
		delta int
	}
	edges := make([]edge, 0, 2*len(records))
	for _, r := range records {
		if r.End <= r.Start {
			continue
		}
		edges = append(edges, edge{r.Start, +1}, edge{r.End, -1})
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].at != edges[j].at {
			return edges[i].at < edges[j].at
		}
		return edges[i].delta < edges[j].delta // close before open
	})

	open, peak := 0, 0
	for _, e := range edges {
		open += e.delta
		if open > peak {
			peak = open
		}
	}
	return peak
}
