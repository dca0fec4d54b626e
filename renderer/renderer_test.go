package renderer

import (
	"strings"
	"testing"

	"github.com/etnz/networth"
	"github.com/shopspring/decimal"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

func entry(on, asset string, amount, rate float64) networth.Entry {
	return networth.NewEntry(on, asset, amount, networth.Percent(rate))
}

func series(values ...float64) networth.Series {
	dates := []string{"2024-01-01", "2024-02-01", "2024-03-01", "2024-04-01"}
	var entries []networth.Entry
	for i, v := range values {
		entries = append(entries, entry(dates[i], "A", v, 5))
	}
	return networth.BuildAllSnapshots(entries)
}

// outline parses markdown and returns the number of headings and tables.
func outline(t *testing.T, src string) (headings, tables int) {
	t.Helper()
	parser := goldmark.New(goldmark.WithExtensions(extension.Table)).Parser()
	root := parser.Parse(text.NewReader([]byte(src)))
	err := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case ast.KindHeading:
			headings++
		case extast.KindTable:
			tables++
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		t.Fatalf("ast.Walk() error = %v", err)
	}
	return headings, tables
}

func TestSnapshotMarkdown(t *testing.T) {
	s := networth.BuildSnapshot([]networth.Entry{
		entry("2024-01-01", "A", 100, 5),
		entry("2024-01-01", "B", -20, 0),
	}, "2024-01-01")

	got := SnapshotMarkdown(s, "USD")

	want := `# Net Worth on 2024-01-01
| **Net Worth** | **$80.00** |
|:--------|--------:|
| Total Assets | $100.00 |
| Total Liabilities | $20.00 |

## Balances
| Investment | Balance | Rate | Allocation |
|:--------|--------:|--------:|--------:|
| A | $100.00 | 5.00% | 100.00% |
| B | -$20.00 | 0.00% |  |
`
	if got != want {
		t.Errorf("SnapshotMarkdown() = \n%s\nwant\n%s", got, want)
	}
}

func TestMetricsMarkdown(t *testing.T) {
	got := MetricsMarkdown(networth.ComputeMetrics(series(1000, 1100, 1320)), "USD")

	want := `# Metrics from 2024-01-01 to 2024-03-01
| Metric | Value |
|:--------|--------:|
| Total Return | +$320.00 |
| Total Return % | +32.00% |
| Growth Rate per Period | +14.89% |
| Volatility | 5.00% |
| Sharpe-like Ratio | 3.00 |
| Max Drawdown | 0.00% |
| Best Period | 2024-03-01 (+20.00%) |
| Worst Period | 2024-02-01 (+10.00%) |

*The Sharpe-like ratio assumes a zero risk-free rate and uses the population standard deviation: it is not a Sharpe ratio.*`
	if got != want {
		t.Errorf("MetricsMarkdown() = \n%s\nwant\n%s", got, want)
	}

	if got := MetricsMarkdown(networth.Metrics{TotalReturn: decimal.Zero}, "USD"); !strings.Contains(got, "At least two snapshots") {
		t.Errorf("MetricsMarkdown(empty) = %q, want a notice", got)
	}
}

func TestInsightMarkdown(t *testing.T) {
	s := networth.BuildAllSnapshots([]networth.Entry{
		entry("2024-01-01", "A", 100, 5),
		entry("2024-01-01", "B", 100, 5),
		entry("2024-02-01", "A", 120, 5),
		entry("2024-02-01", "B", 80, 5),
	})
	in, _ := networth.LatestInsight(s)

	got := InsightMarkdown(in)
	if h, tables := outline(t, got); h != 3 || tables != 3 {
		t.Errorf("InsightMarkdown() has %d headings and %d tables, want 3 and 3:\n%s", h, tables, got)
	}
	for _, want := range []string{"| Top | A | +20.00% |", "| Under | B | -20.00% |", "| A | 60.00% |"} {
		if !strings.Contains(got, want) {
			t.Errorf("InsightMarkdown() does not contain %q:\n%s", want, got)
		}
	}

	// nothing moved: the performers are not worth showing.
	flat, _ := networth.LatestInsight(series(100, 100))
	if got := InsightMarkdown(flat); strings.Contains(got, "Performers") {
		t.Errorf("InsightMarkdown(flat) shows performers:\n%s", got)
	}
}

func TestSeriesMarkdown(t *testing.T) {
	s := networth.BuildAllSnapshots([]networth.Entry{
		entry("2024-01-01", "A", 100, 5),
		entry("2024-02-01", "A", 110, 5),
		entry("2024-02-01", "B", 50, 5),
	})

	tests := []struct {
		sel  networth.Selector
		want string
	}{
		{networth.NewSelector(networth.Returns, networth.Cumulative, networth.Percentage), "| 2024-02 | 60.00% | 10.00% | 0.00% |"},
		{networth.NewSelector(networth.PortfolioValue, networth.Cumulative, networth.Percentage), "| 2024-02 | $160.00 | $110.00 | $50.00 |"},
		{networth.NewSelector(networth.Allocation, networth.Cumulative, networth.Percentage), "| 2024-01 | 100.00% | 100.00% |  |"},
	}
	for _, tt := range tests {
		t.Run(tt.sel.String(), func(t *testing.T) {
			got := SeriesMarkdown(networth.Transform(s, tt.sel), tt.sel, "USD")
			if !strings.Contains(got, tt.want) {
				t.Errorf("SeriesMarkdown() does not contain %q:\n%s", tt.want, got)
			}
			if _, tables := outline(t, got); tables != 1 {
				t.Errorf("SeriesMarkdown() has %d tables, want 1", tables)
			}
		})
	}
}

func TestProjectionMarkdown(t *testing.T) {
	s, _ := series(1000).Last()
	got := ProjectionMarkdown(networth.Project(s, 2), "USD")

	if !strings.HasPrefix(got, "# Projection from 2024-01-01 over 2 months") {
		t.Errorf("ProjectionMarkdown() title mismatch:\n%s", got)
	}
	if _, tables := outline(t, got); tables != 1 {
		t.Errorf("ProjectionMarkdown() has %d tables, want 1", tables)
	}
	if !strings.Contains(got, "| 2024-03-01 |") {
		t.Errorf("ProjectionMarkdown() misses the last month:\n%s", got)
	}
}

func TestRatesMarkdown(t *testing.T) {
	s := series(1000, 1100)
	got := RatesMarkdown(networth.CheckRates(s[1], &s[0]))
	if !strings.Contains(got, "| A | 5.00% |") || !strings.Contains(got, "+10.00%") {
		t.Errorf("RatesMarkdown() mismatch:\n%s", got)
	}
}

func TestReportMarkdown(t *testing.T) {
	tests := []struct {
		name         string
		series       networth.Series
		wantHeadings int
	}{
		{"empty", nil, 1},
		{"single", series(1000), 2},
		{"history", series(1000, 1100, 1050), 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ReportMarkdown(tt.series, "USD")
			if h, _ := outline(t, got); h != tt.wantHeadings {
				t.Errorf("ReportMarkdown() has %d headings, want %d:\n%s", h, tt.wantHeadings, got)
			}
		})
	}
}
