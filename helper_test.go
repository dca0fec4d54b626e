package networth

import (
	"fmt"
	"math"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

// decimalEqual compares decimals by value, ignoring their exponent.
var decimalEqual = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

// floatEqual compares floats with a small tolerance.
var floatEqual = cmp.Comparer(func(a, b float64) bool { return approx(a, b) })

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

// E is a helper for tests to create an entry from consts.
func E(on, asset string, amount float64, rate float64) Entry {
	return NewEntry(on, asset, amount, Percent(rate))
}

// netWorths builds a sequence of snapshots holding a single asset "A" worth
// the given amounts, one per month starting in January 2024.
func netWorths(values ...float64) []Snapshot {
	var entries []Entry
	for i, v := range values {
		entries = append(entries, E(fmt.Sprintf("2024-%02d-01", i+1), "A", v, 0))
	}
	return BuildAllSnapshots(entries)
}
