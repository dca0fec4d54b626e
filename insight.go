package networth

import "encoding/json"

// Return is a growth percentage that may be undefined.
//
// An undefined return means there is nothing to compare against, which is
// different from a 0% return.
type Return struct {
	Pct     float64
	Defined bool
}

// Defined returns a defined Return.
func Defined(pct float64) Return { return Return{Pct: pct, Defined: true} }

// MarshalJSON writes the percentage, or null when undefined.
func (r Return) MarshalJSON() ([]byte, error) {
	if !r.Defined {
		return []byte("null"), nil
	}
	return json.Marshal(r.Pct)
}

func (r Return) String() string {
	if !r.Defined {
		return "n/a"
	}
	return Percent(r.Pct).SignedString()
}

// ActualReturn computes the growth of asset between previous and current,
// in percent: (current - previous) / |previous| * 100.
//
// It is undefined when there is no previous snapshot, or when the asset
// is absent from it or had a zero balance.
func ActualReturn(current Snapshot, previous *Snapshot, asset string) Return {
	if previous == nil {
		return Return{}
	}
	before, found := previous.lookup(asset)
	if !found || before.IsZero() {
		return Return{}
	}
	r, _ := Ratio(current.Balance(asset).Sub(before), before)
	return Defined(Float(r.Mul(hundred)))
}

// Performer names an asset and its actual return in percent.
type Performer struct {
	Name      string  `json:"name"`
	ReturnPct float64 `json:"actualReturnPct"`
}

// Insight summarizes the change between two consecutive snapshots.
type Insight struct {
	Date            string             `json:"date"`
	Top             Performer          `json:"topPerformer"`
	Under           Performer          `json:"underperformer"`
	PeriodChangePct float64            `json:"periodChangePct"`
	Allocation      map[string]float64 `json:"allocation"`
}

// ComputeInsight compares current with the snapshot immediately preceding
// it, if any.
//
// Only assets held in current (positive balance) with a defined actual
// return compete for top and under performer. When none does, both
// performers are left empty.
func ComputeInsight(current Snapshot, previous *Snapshot) Insight {
	in := Insight{
		Date:       current.Date,
		Allocation: current.Allocation(),
	}

	found := false
	for _, asset := range current.Holdings() {
		r := ActualReturn(current, previous, asset)
		if !r.Defined {
			continue
		}
		if !found {
			in.Top = Performer{Name: asset, ReturnPct: r.Pct}
			in.Under = in.Top
			found = true
			continue
		}
		if r.Pct > in.Top.ReturnPct {
			in.Top = Performer{Name: asset, ReturnPct: r.Pct}
		}
		if r.Pct < in.Under.ReturnPct {
			in.Under = Performer{Name: asset, ReturnPct: r.Pct}
		}
	}

	if previous != nil {
		in.PeriodChangePct = PercentOf(current.NetWorth.Sub(previous.NetWorth), previous.NetWorth)
	}
	return in
}

// Notable reports whether the insight is worth surfacing: there is a
// performer, and either the top one grew or the under one shrank.
func (in Insight) Notable() bool {
	if in.Top.Name == "" {
		return false
	}
	return in.Top.ReturnPct > 0 || in.Under.ReturnPct < 0
}

// LatestInsight computes the insight of the last snapshot of the series
// against its predecessor. It reports false on an empty series.
func LatestInsight(s Series) (Insight, bool) {
	if len(s) == 0 {
		return Insight{}, false
	}
	i := len(s) - 1
	return ComputeInsight(s[i], s.Previous(i)), true
}

// InsightOn is like LatestInsight for the snapshot dated `on`.
func InsightOn(s Series, on string) (Insight, bool) {
	cur, i := s.At(on)
	if i < 0 {
		return Insight{}, false
	}
	return ComputeInsight(cur, s.Previous(i)), true
}
