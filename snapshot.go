package networth

import (
	"encoding/json"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// Snapshot is the aggregated state of all ledger entries sharing one date.
//
// Entries lists every entry of that date, zero amounts included. Zero
// amounts count neither as assets nor as liabilities.
type Snapshot struct {
	Date             string
	Entries          []Entry
	TotalAssets      decimal.Decimal
	TotalLiabilities decimal.Decimal // positive: the sum of |amount| of negative entries
	NetWorth         decimal.Decimal
}

// BuildSnapshot aggregates the entries dated exactly on `on`.
//
// The input is never modified. An empty selection yields a snapshot with
// zero totals and no entries.
func BuildSnapshot(entries []Entry, on string) Snapshot {
	s := Snapshot{
		Date:             on,
		Entries:          []Entry{},
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
	}
	for _, e := range entries {
		if e.Date != on {
			continue
		}
		s.Entries = append(s.Entries, e)
		switch {
		case e.Amount.IsPositive():
			s.TotalAssets = s.TotalAssets.Add(e.Amount)
		case e.Amount.IsNegative():
			s.TotalLiabilities = s.TotalLiabilities.Add(e.Amount.Neg())
		}
	}
	s.NetWorth = s.TotalAssets.Sub(s.TotalLiabilities)
	return s
}

// BuildAllSnapshots builds one snapshot per distinct date in entries, in
// ascending date order.
//
// Dates are ISO "YYYY-MM-DD" strings, so the lexicographic order is the
// chronological one.
func BuildAllSnapshots(entries []Entry) Series {
	dates := Dates(entries)
	series := make(Series, 0, len(dates))
	for _, d := range dates {
		series = append(series, BuildSnapshot(entries, d))
	}
	return series
}

// Dates returns the sorted set of distinct dates in entries.
func Dates(entries []Entry) []string {
	dates := make([]string, 0, len(entries))
	for _, e := range entries {
		dates = append(dates, e.Date)
	}
	slices.Sort(dates)
	return slices.Compact(dates)
}

// Balance returns the balance of asset in the snapshot: the sum of the
// amounts of all entries with this name. It is zero when the asset is
// absent.
func (s Snapshot) Balance(asset string) decimal.Decimal {
	b, _ := s.lookup(asset)
	return b
}

// lookup is like Balance but also reports whether the asset is present.
func (s Snapshot) lookup(asset string) (decimal.Decimal, bool) {
	sum, found := decimal.Zero, false
	for _, e := range s.Entries {
		if e.Asset == asset {
			sum = sum.Add(e.Amount)
			found = true
		}
	}
	return sum, found
}

// Assets returns the distinct asset names in the snapshot, in order of first
// appearance.
func (s Snapshot) Assets() []string {
	names := make([]string, 0, len(s.Entries))
	seen := make(map[string]struct{}, len(s.Entries))
	for _, e := range s.Entries {
		if _, ok := seen[e.Asset]; ok {
			continue
		}
		seen[e.Asset] = struct{}{}
		names = append(names, e.Asset)
	}
	return names
}

// Holdings returns the assets with a strictly positive balance, in order of
// first appearance.
func (s Snapshot) Holdings() []string {
	var names []string
	for _, a := range s.Assets() {
		if s.Balance(a).IsPositive() {
			names = append(names, a)
		}
	}
	return names
}

// Allocation returns, for every asset with positive entries, the share of
// TotalAssets those entries represent, in percent. Liabilities are excluded.
// All shares are 0 when TotalAssets is 0.
func (s Snapshot) Allocation() map[string]float64 {
	positive := make(map[string]decimal.Decimal)
	for _, e := range s.Entries {
		if e.Amount.IsPositive() {
			positive[e.Asset] = positive[e.Asset].Add(e.Amount)
		}
	}
	alloc := make(map[string]float64, len(positive))
	for a, amount := range positive {
		alloc[a] = PercentOf(amount, s.TotalAssets)
	}
	return alloc
}

// Rate returns the expected annual rate of asset: the rate of its last entry
// in the snapshot, or zero when absent.
func (s Snapshot) Rate(asset string) Percent {
	var r Percent
	for _, e := range s.Entries {
		if e.Asset == asset {
			r = e.Rate
		}
	}
	return r
}

// Series is a sequence of snapshots in ascending date order.
type Series []Snapshot

// NewSeries returns the snapshots as a Series, sorted by date. The input is
// not modified.
func NewSeries(snapshots []Snapshot) Series {
	s := slices.Clone(snapshots)
	slices.SortStableFunc(s, func(a, b Snapshot) int { return strings.Compare(a.Date, b.Date) })
	return Series(s)
}

// Dates returns the dates of the series.
func (s Series) Dates() []string {
	dates := make([]string, len(s))
	for i, snap := range s {
		dates[i] = snap.Date
	}
	return dates
}

// Last returns the latest snapshot, or false when the series is empty.
func (s Series) Last() (Snapshot, bool) {
	if len(s) == 0 {
		return Snapshot{}, false
	}
	return s[len(s)-1], true
}

// At returns the snapshot dated `on`, and its index, or -1 when absent.
func (s Series) At(on string) (Snapshot, int) {
	i, found := slices.BinarySearchFunc(s, on, func(snap Snapshot, d string) int { return strings.Compare(snap.Date, d) })
	if !found {
		return Snapshot{}, -1
	}
	return s[i], i
}

// Previous returns the snapshot immediately preceding index i, or nil.
func (s Series) Previous(i int) *Snapshot {
	if i <= 0 || i > len(s) {
		return nil
	}
	p := s[i-1]
	return &p
}

// Assets returns the distinct asset names across the series, in order of
// first appearance.
func (s Series) Assets() []string {
	var names []string
	seen := make(map[string]struct{})
	for _, snap := range s {
		for _, a := range snap.Assets() {
			if _, ok := seen[a]; ok {
				continue
			}
			seen[a] = struct{}{}
			names = append(names, a)
		}
	}
	return names
}

// MarshalJSON writes the snapshot totals first, then its entries.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Date             string          `json:"date"`
		TotalAssets      decimal.Decimal `json:"totalAssets"`
		TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
		NetWorth         decimal.Decimal `json:"netWorth"`
		Entries          []Entry         `json:"entries"`
	}{s.Date, s.TotalAssets, s.TotalLiabilities, s.NetWorth, s.Entries})
}
