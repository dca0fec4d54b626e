package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/networth"
	md "github.com/nao1215/markdown"
)

// MetricsMarkdown renders the whole history metrics.
func MetricsMarkdown(m networth.Metrics, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	if m.Periods == 0 {
		doc.H1("Metrics")
		doc.PlainText("At least two snapshots are needed to compute metrics.")
		return doc.String()
	}

	mark := func(p networth.PeriodMark) string {
		return fmt.Sprintf("%s (%s)", p.Date, networth.Percent(p.ReturnPct).SignedString())
	}

	doc.H1(fmt.Sprintf("Metrics from %s to %s", m.From, m.To))
	doc.Table(md.TableSet{
		Alignment: rightAligned(2),
		Header:    []string{"Metric", "Value"},
		Rows: [][]string{
			{"Total Return", networth.SignedMoney(m.TotalReturn, currency)},
			{"Total Return %", networth.Percent(m.TotalReturnPct).SignedString()},
			{"Growth Rate per Period", networth.Percent(m.MonthlyGrowthRate).SignedString()},
			{"Volatility", pct(m.Volatility)},
			{"Sharpe-like Ratio", fmt.Sprintf("%.2f", m.SharpeLike)},
			{"Max Drawdown", pct(m.MaxDrawdown)},
			{"Best Period", mark(m.Best)},
			{"Worst Period", mark(m.Worst)},
		},
	})
	doc.PlainText(md.Italic("The Sharpe-like ratio assumes a zero risk-free rate and uses the population standard deviation: it is not a Sharpe ratio."))
	return doc.String()
}
