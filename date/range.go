package date

import (
	"fmt"
	"time"
)

// Range is the closed interval of days of one calendar bucket.
type Range struct{ From, To Date }

// NewRange returns the bucket of the given period that contains d.
func NewRange(d Date, period Period) Range {
	return Range{From: d.StartOf(period), To: d.EndOf(period)}
}

// period reports which standard bucket r spans, if any.
func (r Range) period() (Period, bool) {
	switch {
	case r.From == r.To:
		return Daily, true
	case r.From.Weekday() == time.Monday && r.From.EndOf(Weekly) == r.To:
		return Weekly, true
	case r.From.Day() == 1 && r.From.EndOf(Monthly) == r.To:
		return Monthly, true
	case r.From.StartOf(Quarterly) == r.From && r.From.EndOf(Quarterly) == r.To:
		return Quarterly, true
	case r.From.StartOf(Yearly) == r.From && r.From.EndOf(Yearly) == r.To:
		return Yearly, true
	}
	return Daily, false
}

// Identifier is the label of the bucket: "2025-09-08", "2025-W37",
// "2025-09", "2025-Q3" or "2025". Other ranges print as "from_to".
func (r Range) Identifier() string {
	p, ok := r.period()
	if !ok {
		return fmt.Sprintf("%s_%s", r.From, r.To)
	}
	switch p {
	case Weekly:
		y, w := r.From.ISOWeek()
		return fmt.Sprintf("%d-W%02d", y, w)
	case Monthly:
		return r.From.Format("2006-01")
	case Quarterly:
		return fmt.Sprintf("%d-Q%d", r.From.Year(), (r.From.Month()-1)/3+1)
	case Yearly:
		return r.From.Format("2006")
	}
	return r.From.String()
}
