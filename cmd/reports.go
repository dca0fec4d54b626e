package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/networth"
	"github.com/etnz/networth/chart"
	"github.com/etnz/networth/renderer"
	"github.com/google/subcommands"
)

type snapshotCmd struct {
	jsonFlags
	date string
	all  bool
}

func (*snapshotCmd) Name() string     { return "snapshot" }
func (*snapshotCmd) Synopsis() string { return "display balances and net worth on a date" }
func (*snapshotCmd) Usage() string {
	return `nw snapshot [-d <date> | -all] [-json] [-q <jsonpath>]

  Displays the balances recorded on a date and the resulting total assets,
  total liabilities and net worth. Without -d, the latest snapshot is
  displayed. With -all, the history of every snapshot is displayed.

Usage Examples:
$ nw snapshot -d 2024-01-31
$ nw snapshot -q '$.netWorth'
`
}

func (c *snapshotCmd) SetFlags(f *flag.FlagSet) {
	c.jsonFlags.SetFlags(f)
	f.StringVar(&c.date, "d", "", "Date of the snapshot (defaults to the latest)")
	f.BoolVar(&c.all, "all", false, "Display every snapshot")
}

func (c *snapshotCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	series, err := LoadSeries(ctx)
	if err != nil {
		return fail("Error loading ledger: %v", err)
	}
	if c.all {
		if c.enabled() {
			return c.output(series)
		}
		printMarkdown(renderer.HistoryMarkdown(series, *currency))
		return subcommands.ExitSuccess
	}

	var snap networth.Snapshot
	if c.date == "" {
		var ok bool
		if snap, ok = series.Last(); !ok {
			return fail("the ledger is empty")
		}
	} else {
		on, err := networth.CanonicalDate(c.date)
		if err != nil {
			return fail("%v", err)
		}
		// No entry on that date: the snapshot is empty.
		if snap, _ = series.At(on); snap.Date == "" {
			snap = networth.BuildSnapshot(nil, on)
		}
	}
	if c.enabled() {
		return c.output(snap)
	}
	printMarkdown(renderer.SnapshotMarkdown(snap, *currency))
	return subcommands.ExitSuccess
}

func (j *jsonFlags) output(v any) subcommands.ExitStatus {
	if err := j.print(v); err != nil {
		return fail("Error: %v", err)
	}
	return subcommands.ExitSuccess
}

type insightCmd struct {
	jsonFlags
	date  string
	rates bool
}

func (*insightCmd) Name() string { return "insight" }
func (*insightCmd) Synopsis() string {
	return "display top and under performers against the previous snapshot"
}
func (*insightCmd) Usage() string {
	return `nw insight [-d <date>] [-rates] [-json] [-q <jsonpath>]

  Compares a snapshot with the previous one: top performer, underperformer,
  net worth change and allocation. With -rates, actual returns are compared
  with the rates stated in the ledger.
`
}

func (c *insightCmd) SetFlags(f *flag.FlagSet) {
	c.jsonFlags.SetFlags(f)
	f.StringVar(&c.date, "d", "", "Date of the snapshot (defaults to the latest)")
	f.BoolVar(&c.rates, "rates", false, "Compare actual returns with stated rates")
}

func (c *insightCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	series, err := LoadSeries(ctx)
	if err != nil {
		return fail("Error loading ledger: %v", err)
	}
	i := len(series) - 1
	if c.date != "" {
		on, err := networth.CanonicalDate(c.date)
		if err != nil {
			return fail("%v", err)
		}
		_, i = series.At(on)
	}
	if i < 0 {
		return fail("no snapshot to compare")
	}
	prev := series.Previous(i)

	if c.rates {
		checks := networth.CheckRates(series[i], prev)
		if c.enabled() {
			return c.output(checks)
		}
		printMarkdown(renderer.RatesMarkdown(checks))
		return subcommands.ExitSuccess
	}
	in := networth.ComputeInsight(series[i], prev)
	if c.enabled() {
		return c.output(in)
	}
	printMarkdown(renderer.InsightMarkdown(in))
	return subcommands.ExitSuccess
}

type metricsCmd struct {
	jsonFlags
}

func (*metricsCmd) Name() string     { return "metrics" }
func (*metricsCmd) Synopsis() string { return "display performance metrics of the whole history" }
func (*metricsCmd) Usage() string {
	return `nw metrics [-json] [-q <jsonpath>]

  Displays total return, growth rate per period, volatility, Sharpe-like
  ratio, max drawdown, and best and worst periods of the net worth history.
`
}

func (c *metricsCmd) SetFlags(f *flag.FlagSet) { c.jsonFlags.SetFlags(f) }

func (c *metricsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	series, err := LoadSeries(ctx)
	if err != nil {
		return fail("Error loading ledger: %v", err)
	}
	m := networth.ComputeMetrics(series)
	if c.enabled() {
		return c.output(m)
	}
	printMarkdown(renderer.MetricsMarkdown(m, *currency))
	return subcommands.ExitSuccess
}

// selectorFlags are the flags selecting a chart series.
type selectorFlags struct {
	kind, view, mode, granularity string
}

func (s *selectorFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&s.kind, "kind", "returns", "Series kind: returns, value or allocation")
	f.StringVar(&s.view, "view", "cumulative", "Time view: cumulative or period")
	f.StringVar(&s.mode, "mode", "percentage", "Display mode of returns: percentage or absolute")
	f.StringVar(&s.granularity, "granularity", "monthly", "Point labels: daily, weekly, monthly, quarterly or yearly")
}

func (s *selectorFlags) selector() (networth.Selector, error) {
	return networth.ParseSelector(s.kind, s.view, s.mode, s.granularity)
}

type seriesCmd struct {
	jsonFlags
	selectorFlags
}

func (*seriesCmd) Name() string     { return "series" }
func (*seriesCmd) Synopsis() string { return "display a chart series of the history" }
func (*seriesCmd) Usage() string {
	return `nw series [-kind <kind>] [-view <view>] [-mode <mode>] [-granularity <period>] [-json]

  Transforms the snapshots into a chart series. See 'nw topic series'.
`
}

func (c *seriesCmd) SetFlags(f *flag.FlagSet) {
	c.jsonFlags.SetFlags(f)
	c.selectorFlags.SetFlags(f)
}

func (c *seriesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	sel, err := c.selector()
	if err != nil {
		f.Usage()
		return fail("Error: %v", err)
	}
	series, err := LoadSeries(ctx)
	if err != nil {
		return fail("Error loading ledger: %v", err)
	}
	points := networth.Transform(series, sel)
	if c.enabled() {
		return c.output(points)
	}
	printMarkdown(renderer.SeriesMarkdown(points, sel, *currency))
	return subcommands.ExitSuccess
}

type chartCmd struct {
	selectorFlags
	output string
	title  string
	width  int
	height int
	dark   bool
}

func (*chartCmd) Name() string     { return "chart" }
func (*chartCmd) Synopsis() string { return "draw a chart series as an image" }
func (*chartCmd) Usage() string {
	return `nw chart [-kind <kind>] [-view <view>] [-mode <mode>] [-granularity <period>] -o <file.png|file.svg>

  Draws a chart series as a PNG or SVG image, depending on the output file
  extension. Allocation is drawn as a pie of the latest snapshot.
`
}

func (c *chartCmd) SetFlags(f *flag.FlagSet) {
	c.selectorFlags.SetFlags(f)
	f.StringVar(&c.output, "o", "chart.png", "Output file, .png or .svg")
	f.StringVar(&c.title, "title", "", "Chart title (defaults to the series name)")
	f.IntVar(&c.width, "width", 0, "Image width in pixels")
	f.IntVar(&c.height, "height", 0, "Image height in pixels")
	f.BoolVar(&c.dark, "dark", false, "Use the dark theme")
}

func (c *chartCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	sel, err := c.selector()
	if err != nil {
		f.Usage()
		return fail("Error: %v", err)
	}
	series, err := LoadSeries(ctx)
	if err != nil {
		return fail("Error loading ledger: %v", err)
	}
	opts := chart.Options{
		Title:  c.title,
		Width:  c.width,
		Height: c.height,
		Dark:   c.dark,
		SVG:    strings.EqualFold(filepath.Ext(c.output), ".svg"),
	}
	img, err := chart.Render(networth.Transform(series, sel), sel, opts)
	if err != nil {
		return fail("Error: %v", err)
	}
	if err := os.WriteFile(c.output, img, 0o644); err != nil {
		return fail("Error writing %q: %v", c.output, err)
	}
	fmt.Fprintf(os.Stderr, "Chart written to %s\n", c.output)
	return subcommands.ExitSuccess
}

type projectCmd struct {
	jsonFlags
	months int
}

func (*projectCmd) Name() string     { return "project" }
func (*projectCmd) Synopsis() string { return "project the latest snapshot with the stated rates" }
func (*projectCmd) Usage() string {
	return `nw project [-m <months>] [-json] [-q <jsonpath>]

  Grows every investment of the latest snapshot by its stated annual rate,
  compounded monthly.
`
}

func (c *projectCmd) SetFlags(f *flag.FlagSet) {
	c.jsonFlags.SetFlags(f)
	f.IntVar(&c.months, "m", 12, "Number of months to project")
}

func (c *projectCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	series, err := LoadSeries(ctx)
	if err != nil {
		return fail("Error loading ledger: %v", err)
	}
	last, ok := series.Last()
	if !ok {
		return fail("the ledger is empty")
	}
	points := networth.Project(last, c.months)
	if c.enabled() {
		return c.output(points)
	}
	printMarkdown(renderer.ProjectionMarkdown(points, *currency))
	return subcommands.ExitSuccess
}
