package networth

import "fmt"

// Percent is a percentage value: 12.5 means 12.5%.
type Percent float64

// Equal compares two percentages with a precision of 1e-4.
func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

// Fraction returns the percentage as a decimal fraction: 5% is 0.05.
func (p Percent) Fraction() float64 { return float64(p) / 100 }

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", float64(p))
}

// SignedString always prints the sign, and "-" for a zero value.
func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.2f%%", float64(p))
	if res == "+0.00%" || res == "-0.00%" {
		return "-"
	}
	return res
}

// FormatPercent renders a float percentage, e.g. "12.34%".
func FormatPercent(v float64) string { return Percent(v).String() }
