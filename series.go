package networth

import (
	"fmt"
	"slices"
	"strings"

	"github.com/etnz/networth/date"
	"github.com/shopspring/decimal"
)

// SeriesKind selects what a chart series measures.
type SeriesKind int

const (
	Returns        SeriesKind = iota // growth against a baseline
	PortfolioValue                   // net worth and balances
	Allocation                       // share of total assets
)

func (k SeriesKind) String() string {
	switch k {
	case Returns:
		return "returns"
	case PortfolioValue:
		return "portfolioValue"
	case Allocation:
		return "allocation"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseSeriesKind parses a series kind name. The empty string is Returns.
func ParseSeriesKind(s string) (SeriesKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "returns", "return":
		return Returns, nil
	case "portfoliovalue", "value":
		return PortfolioValue, nil
	case "allocation", "alloc":
		return Allocation, nil
	default:
		return Returns, fmt.Errorf("unknown series kind %q", s)
	}
}

// TimeView selects the baseline of a series.
type TimeView int

const (
	Cumulative TimeView = iota // against the first snapshot
	Periodic                   // against the preceding snapshot
)

func (v TimeView) String() string {
	switch v {
	case Cumulative:
		return "cumulative"
	case Periodic:
		return "period"
	default:
		return fmt.Sprintf("view(%d)", int(v))
	}
}

// ParseTimeView parses a time view name. The empty string is Cumulative.
func ParseTimeView(s string) (TimeView, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "cumulative":
		return Cumulative, nil
	case "period", "periodic":
		return Periodic, nil
	default:
		return Cumulative, fmt.Errorf("unknown time view %q", s)
	}
}

// DisplayMode selects the unit of a returns series.
type DisplayMode int

const (
	Percentage DisplayMode = iota
	Absolute
)

func (m DisplayMode) String() string {
	switch m {
	case Percentage:
		return "percentage"
	case Absolute:
		return "absolute"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseDisplayMode parses a display mode name. The empty string is
// Percentage.
func ParseDisplayMode(s string) (DisplayMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "percentage", "percent", "pct":
		return Percentage, nil
	case "absolute", "abs":
		return Absolute, nil
	default:
		return Percentage, fmt.Errorf("unknown display mode %q", s)
	}
}

// Selector is the full set of parameters of a chart series.
//
// Granularity is the period used to label points. Its zero value, Daily,
// keeps full dates; NewSelector uses Monthly labels.
type Selector struct {
	Kind        SeriesKind
	View        TimeView
	Mode        DisplayMode
	Granularity date.Period
}

// NewSelector returns a Selector labelling points by month.
func NewSelector(kind SeriesKind, view TimeView, mode DisplayMode) Selector {
	return Selector{Kind: kind, View: view, Mode: mode, Granularity: date.Monthly}
}

// ParseSelector parses the textual form of each Selector field. Empty
// values take their defaults.
func ParseSelector(kind, view, mode, granularity string) (Selector, error) {
	k, err := ParseSeriesKind(kind)
	if err != nil {
		return Selector{}, err
	}
	v, err := ParseTimeView(view)
	if err != nil {
		return Selector{}, err
	}
	m, err := ParseDisplayMode(mode)
	if err != nil {
		return Selector{}, err
	}
	g, err := date.ParsePeriod(granularity)
	if err != nil {
		return Selector{}, err
	}
	return Selector{Kind: k, View: v, Mode: m, Granularity: g}, nil
}

func (sel Selector) String() string {
	if sel.Kind == Allocation {
		return sel.Kind.String()
	}
	if sel.Kind == PortfolioValue {
		return sel.Kind.String() + "/" + sel.View.String()
	}
	return sel.Kind.String() + "/" + sel.View.String() + "/" + sel.Mode.String()
}

// Percent reports whether the values of the series are percentages.
func (sel Selector) Percent() bool {
	switch sel.Kind {
	case Allocation:
		return true
	case Returns:
		return sel.Mode == Percentage
	default:
		return false
	}
}

// ChartPoint is one point of a chart series. The meaning of Total and
// PerAsset depends on the Selector that produced it.
type ChartPoint struct {
	Date     string             `json:"date"`
	Total    float64            `json:"total"`
	PerAsset map[string]float64 `json:"perAsset"`
}

// Transform turns snapshots into a chart series. Snapshots are sorted by
// date first.
//
//   - Returns: change against a baseline, the first snapshot (Cumulative) or
//     the preceding one (Periodic, the first point being its own baseline).
//     Percentage mode divides by |baseline|; a zero baseline net worth gives
//     0, and an asset with a non-positive baseline balance gives 0, or its
//     current balance in Absolute mode.
//   - PortfolioValue: net worth and balances (Cumulative), or their change
//     from the preceding snapshot (Periodic), an asset absent from it
//     counting as 0. Mode is ignored.
//   - Allocation: share of total assets of each asset, liabilities excluded.
//     Total is always 100, every share being 0 when there are no assets.
//     View and mode are ignored.
//
// Dates are labelled by sel.Granularity. Transform never fails: empty input
// yields an empty series.
func Transform(snapshots []Snapshot, sel Selector) []ChartPoint {
	s := NewSeries(snapshots)
	points := make([]ChartPoint, 0, len(s))
	for i, cur := range s {
		baseline := s[0]
		if sel.View == Periodic {
			baseline = s[max(i-1, 0)]
		}

		var p ChartPoint
		switch sel.Kind {
		case Returns:
			p = returnPoint(cur, baseline, sel.Mode)
		case Allocation:
			p = allocationPoint(cur)
		default:
			if sel.View == Periodic {
				p = deltaPoint(cur, baseline)
			} else {
				p = valuePoint(cur)
			}
		}
		p.Date = date.Label(cur.Date, sel.Granularity)
		points = append(points, p)
	}
	return points
}

func returnPoint(cur, baseline Snapshot, mode DisplayMode) ChartPoint {
	delta := cur.NetWorth.Sub(baseline.NetWorth)
	p := ChartPoint{PerAsset: make(map[string]float64)}
	if mode == Absolute {
		p.Total = Float(delta)
	} else {
		p.Total = PercentOf(delta, baseline.NetWorth)
	}

	for _, asset := range cur.Assets() {
		now, before := cur.Balance(asset), baseline.Balance(asset)
		switch {
		case !before.IsPositive() && mode == Absolute:
			p.PerAsset[asset] = Float(now)
		case !before.IsPositive():
			p.PerAsset[asset] = 0
		case mode == Absolute:
			p.PerAsset[asset] = Float(now.Sub(before))
		default:
			p.PerAsset[asset] = PercentOf(now.Sub(before), before)
		}
	}
	return p
}

func valuePoint(cur Snapshot) ChartPoint {
	p := ChartPoint{Total: Float(cur.NetWorth), PerAsset: make(map[string]float64)}
	for _, asset := range cur.Assets() {
		p.PerAsset[asset] = Float(cur.Balance(asset))
	}
	return p
}

// change returns current - previous for an asset, previous being 0 when
// absent.
func change(current, previous Snapshot, asset string) decimal.Decimal {
	return current.Balance(asset).Sub(previous.Balance(asset))
}

func deltaPoint(cur, previous Snapshot) ChartPoint {
	p := ChartPoint{Total: Float(cur.NetWorth.Sub(previous.NetWorth)), PerAsset: make(map[string]float64)}
	for _, asset := range cur.Assets() {
		p.PerAsset[asset] = Float(change(cur, previous, asset))
	}
	return p
}

// allocationPoint has a Total of 100 even when there are no assets and every
// share is 0.
func allocationPoint(cur Snapshot) ChartPoint {
	return ChartPoint{Total: 100, PerAsset: cur.Allocation()}
}

// ChartAssets returns the sorted names of all assets appearing in points.
func ChartAssets(points []ChartPoint) []string {
	var names []string
	for _, p := range points {
		for a := range p.PerAsset {
			names = append(names, a)
		}
	}
	slices.Sort(names)
	return slices.Compact(names)
}
