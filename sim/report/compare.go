package report

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// Compare prints one row per operation so runs with different truck and
// station counts can be read side by side.
func Compare(w io.Writer, summaries []*Summary) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "trucks\tstations\tsessions\tunloads\tavg queue (min)\tpeak queue\tstation util\t")
	for _, s := range summaries {
		op := s.Operation
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%.2f\t%d\t%.1f%%\t\n",
			op.Trucks, op.Stations, op.TotalTimesMined, op.TotalUnloads,
			op.AvgQueueTime, op.PeakQueueLen, 100*op.MeanStationUtilization)
	}
	return tw.Flush()
}
