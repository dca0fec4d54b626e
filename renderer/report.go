package renderer

import (
	"io"
	"strings"

	"github.com/etnz/networth"
)

// ReportMarkdown renders the latest snapshot of the series, its insight and
// the whole history metrics. Sections without data are skipped.
func ReportMarkdown(series networth.Series, currency string) string {
	var b strings.Builder
	last, ok := series.Last()
	if !ok {
		return HistoryMarkdown(series, currency)
	}

	io.WriteString(&b, SnapshotMarkdown(last, currency))
	ConditionalBlock(&b, func(w io.Writer) bool {
		if len(series) < 2 {
			return false
		}
		in, _ := networth.LatestInsight(series)
		io.WriteString(w, "\n"+InsightMarkdown(in))
		return true
	})
	ConditionalBlock(&b, func(w io.Writer) bool {
		m := networth.ComputeMetrics(series)
		if m.Periods == 0 {
			return false
		}
		io.WriteString(w, "\n"+MetricsMarkdown(m, currency))
		return true
	})
	return b.String()
}
