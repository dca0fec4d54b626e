package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/networth"
	md "github.com/nao1215/markdown"
)

// InsightMarkdown renders the change of a snapshot against the previous one.
// Performers are only shown when the insight is notable.
func InsightMarkdown(in networth.Insight) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Insight on %s", in.Date))
	doc.Table(md.TableSet{
		Alignment: rightAligned(2),
		Header:    []string{md.Bold("Period Change"), md.Bold(networth.Percent(in.PeriodChangePct).SignedString())},
	})

	if in.Notable() {
		doc.H2("Performers")
		doc.Table(md.TableSet{
			Alignment: rightAligned(3),
			Header:    []string{"", "Investment", "Actual Return"},
			Rows: [][]string{
				{"Top", escape(in.Top.Name), networth.Percent(in.Top.ReturnPct).SignedString()},
				{"Under", escape(in.Under.Name), networth.Percent(in.Under.ReturnPct).SignedString()},
			},
		})
	}

	if len(in.Allocation) > 0 {
		doc.H2("Allocation")
		table := md.TableSet{
			Alignment: rightAligned(2),
			Header:    []string{"Investment", "Share"},
		}
		for _, asset := range sortedKeys(in.Allocation) {
			table.Rows = append(table.Rows, []string{escape(asset), pct(in.Allocation[asset])})
		}
		doc.Table(table)
	}
	return doc.String()
}

// RatesMarkdown renders the comparison of expected and actual growth.
func RatesMarkdown(checks []networth.RateCheck) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Expected vs Actual Growth")
	if len(checks) == 0 {
		doc.PlainText("No investment held.")
		return doc.String()
	}
	table := md.TableSet{
		Alignment: rightAligned(5),
		Header:    []string{"Investment", "Annual Rate", "Expected", "Actual", "Gap"},
	}
	for _, c := range checks {
		gap := "n/a"
		if g, ok := c.Gap(); ok {
			gap = g.SignedString()
		}
		table.Rows = append(table.Rows, []string{
			escape(c.Asset),
			c.Rate.String(),
			c.Expected.SignedString(),
			c.Actual.String(),
			gap,
		})
	}
	doc.Table(table)
	return doc.String()
}
