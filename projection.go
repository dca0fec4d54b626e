package networth

import (
	"fmt"

	"github.com/etnz/networth/date"
	"github.com/shopspring/decimal"
)

// Projection is the expected state of a portfolio some months ahead.
type Projection struct {
	Date     string                     `json:"date"`
	NetWorth decimal.Decimal            `json:"netWorth"`
	PerAsset map[string]decimal.Decimal `json:"perAsset"`
}

// MonthlyRate converts an annual rate into the monthly rate compounding to
// it: (1+annual)^(1/12) - 1.
func MonthlyRate(annual Percent) Percent {
	r := Compound(decimal.NewFromFloat(annual.Fraction()), 12, 1)
	return Percent(Float(r.Mul(hundred)))
}

// Project compounds every balance of s by its own expected annual rate, one
// point per month. Point 0 is s itself; months <= 0 yields only that point.
//
// Liabilities grow by their rate too, which is how a loan accrues interest.
// When the snapshot date is malformed, points are labelled "<date>+k".
func Project(s Snapshot, months int) []Projection {
	months = max(months, 0)
	start, err := date.Parse(s.Date)

	assets := s.Assets()
	growth := make(map[string]decimal.Decimal, len(assets))
	for _, a := range assets {
		growth[a] = one.Add(Compound(decimal.NewFromFloat(s.Rate(a).Fraction()), 12, 1))
	}

	points := make([]Projection, 0, months+1)
	for k := 0; k <= months; k++ {
		p := Projection{NetWorth: decimal.Zero, PerAsset: make(map[string]decimal.Decimal, len(assets))}
		switch {
		case k == 0:
			p.Date = s.Date
		case err != nil:
			p.Date = fmt.Sprintf("%s+%d", s.Date, k)
		default:
			p.Date = start.AddMonth(k).String()
		}
		for _, a := range assets {
			f, ok := Power(growth[a], decimal.NewFromInt(int64(k)))
			if !ok {
				f = decimal.Zero
			}
			v := s.Balance(a).Mul(f).Round(Precision)
			p.PerAsset[a] = v
			p.NetWorth = p.NetWorth.Add(v)
		}
		points = append(points, p)
	}
	return points
}

// RateCheck compares the expected growth of an asset with what happened
// between two snapshots.
type RateCheck struct {
	Asset    string  `json:"investment"`
	Rate     Percent `json:"rate"`     // stated annual rate
	Expected Percent `json:"expected"` // stated rate over the elapsed period
	Actual   Return  `json:"actual"`
}

// Gap returns Actual - Expected, or false when Actual is undefined.
func (c RateCheck) Gap() (Percent, bool) {
	if !c.Actual.Defined {
		return 0, false
	}
	return Percent(c.Actual.Pct) - c.Expected, true
}

// CheckRates compares, for every asset held in current, its stated annual
// rate scaled to the time elapsed since previous with its actual return.
//
// The elapsed time is the number of days between the two dates. It is one
// month when previous is nil or a date is malformed.
func CheckRates(current Snapshot, previous *Snapshot) []RateCheck {
	var checks []RateCheck
	for _, asset := range current.Holdings() {
		rate := current.Rate(asset)
		checks = append(checks, RateCheck{
			Asset:    asset,
			Rate:     rate,
			Expected: expectedGrowth(rate, current, previous),
			Actual:   ActualReturn(current, previous, asset),
		})
	}
	return checks
}

func expectedGrowth(rate Percent, current Snapshot, previous *Snapshot) Percent {
	if previous == nil {
		return MonthlyRate(rate)
	}
	to, err1 := date.Parse(current.Date)
	from, err2 := date.Parse(previous.Date)
	if err1 != nil || err2 != nil || !from.Before(to) {
		return MonthlyRate(rate)
	}
	r := Compound(decimal.NewFromFloat(rate.Fraction()), 365, int64(to.Sub(from)))
	return Percent(Float(r.Mul(hundred)))
}
