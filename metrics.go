package networth

import (
	"github.com/shopspring/decimal"
)

// PeriodMark locates an extreme period return. An empty Date means there is
// no such period.
type PeriodMark struct {
	Date      string  `json:"date"`
	ReturnPct float64 `json:"returnPct"`
}

// Metrics aggregates the whole history of a portfolio.
//
// All percentages are in percent. SharpeLike is the mean period return over
// its population standard deviation with a zero risk-free rate: it is not a
// Sharpe ratio.
type Metrics struct {
	From              string          `json:"from"`
	To                string          `json:"to"`
	Periods           int             `json:"periods"`
	TotalReturn       decimal.Decimal `json:"totalReturn"`
	TotalReturnPct    float64         `json:"totalReturnPct"`
	MonthlyGrowthRate float64         `json:"monthlyGrowthRate"`
	Volatility        float64         `json:"volatility"`
	SharpeLike        float64         `json:"sharpeLike"`
	MaxDrawdown       float64         `json:"maxDrawdown"`
	Best              PeriodMark      `json:"bestPeriod"`
	Worst             PeriodMark      `json:"worstPeriod"`
}

// PeriodReturns returns the net worth return of each snapshot against its
// predecessor, in percent. The first snapshot has no return, so the result
// has len(s)-1 elements. A zero predecessor net worth yields 0.
func PeriodReturns(s Series) []decimal.Decimal {
	if len(s) < 2 {
		return nil
	}
	returns := make([]decimal.Decimal, 0, len(s)-1)
	for i := 1; i < len(s); i++ {
		r, _ := Ratio(s[i].NetWorth.Sub(s[i-1].NetWorth), s[i-1].NetWorth)
		returns = append(returns, r.Mul(hundred))
	}
	return returns
}

// ComputeMetrics computes the metrics of a snapshot sequence. The sequence is
// sorted by date first.
//
// Fewer than two snapshots yield zero Metrics.
func ComputeMetrics(snapshots []Snapshot) Metrics {
	s := NewSeries(snapshots)
	if len(s) < 2 {
		return Metrics{TotalReturn: decimal.Zero}
	}
	first, last := s[0], s[len(s)-1]

	m := Metrics{
		From:        first.Date,
		To:          last.Date,
		Periods:     len(s) - 1,
		TotalReturn: last.NetWorth.Sub(first.NetWorth),
	}
	m.TotalReturnPct = PercentOf(m.TotalReturn, first.NetWorth)
	m.MonthlyGrowthRate = growthRate(first.NetWorth, last.NetWorth, m.Periods)

	returns := PeriodReturns(s)
	for i, r := range returns {
		pct := Float(r)
		on := s[i+1].Date
		if i == 0 {
			m.Best = PeriodMark{Date: on, ReturnPct: pct}
			m.Worst = m.Best
			continue
		}
		if pct > m.Best.ReturnPct {
			m.Best = PeriodMark{Date: on, ReturnPct: pct}
		}
		if pct < m.Worst.ReturnPct {
			m.Worst = PeriodMark{Date: on, ReturnPct: pct}
		}
	}

	mean, sigma := meanStdDev(returns)
	m.Volatility = Float(sigma)
	if !sigma.IsZero() {
		ratio, _ := Quo(mean, sigma)
		m.SharpeLike = Float(ratio)
	}
	m.MaxDrawdown = maxDrawdown(s)
	return m
}

// growthRate solves last = first * (1+r)^periods for r, in percent.
//
// It is 0 when first is not positive or last is negative, as the root would
// not be a real number.
func growthRate(first, last decimal.Decimal, periods int) float64 {
	if periods <= 0 || !first.IsPositive() {
		return 0
	}
	ratio, _ := Quo(last, first)
	if ratio.IsNegative() {
		return 0
	}
	exp, _ := Quo(one, decimal.NewFromInt(int64(periods)))
	p, ok := Power(ratio, exp)
	if !ok {
		return 0
	}
	return Float(p.Sub(one).Mul(hundred))
}

// meanStdDev returns the mean and the population standard deviation of
// values.
func meanStdDev(values []decimal.Decimal) (mean, sigma decimal.Decimal) {
	if len(values) == 0 {
		return decimal.Zero, decimal.Zero
	}
	n := decimal.NewFromInt(int64(len(values)))
	mean, _ = Quo(decimal.Sum(decimal.Zero, values...), n)

	variance := decimal.Zero
	for _, v := range values {
		d := v.Sub(mean)
		variance = variance.Add(d.Mul(d))
	}
	variance, _ = Quo(variance, n)
	if variance.IsZero() {
		return mean, decimal.Zero
	}
	sigma, ok := Power(variance, decimal.NewFromFloat(0.5))
	if !ok {
		return mean, decimal.Zero
	}
	return mean, sigma
}

// maxDrawdown returns the largest fall from a running net worth peak, in
// percent of that peak. Falls from a non-positive peak are ignored.
func maxDrawdown(s Series) float64 {
	peak := s[0].NetWorth
	worst := decimal.Zero
	for _, snap := range s {
		if snap.NetWorth.GreaterThan(peak) {
			peak = snap.NetWorth
		}
		if !peak.IsPositive() {
			continue
		}
		dd, _ := Quo(peak.Sub(snap.NetWorth), peak)
		if dd.GreaterThan(worst) {
			worst = dd
		}
	}
	return Float(worst.Mul(hundred))
}
