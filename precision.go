package networth

import (
	"github.com/shopspring/decimal"
)

// Precision is the number of fractional digits kept by divisions and
// fractional powers.
const Precision = 28

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// D is a convenient factory for decimal.Decimal.
func D[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	default:
		panic("unsupported type")
	}
}

// Float converts a decimal to a float64. It is the only place where decimal
// values leave the decimal domain.
func Float(d decimal.Decimal) float64 { return d.InexactFloat64() }

// Add returns a+b as a float64.
func Add(a, b decimal.Decimal) float64 { return Float(a.Add(b)) }

// Sub returns a-b as a float64.
func Sub(a, b decimal.Decimal) float64 { return Float(a.Sub(b)) }

// Mul returns a*b as a float64.
func Mul(a, b decimal.Decimal) float64 { return Float(a.Mul(b)) }

// Div returns a/b as a float64. It reports false, and 0, when b is zero.
func Div(a, b decimal.Decimal) (float64, bool) {
	q, ok := Quo(a, b)
	return Float(q), ok
}

// Pow returns base^exp as a float64. It reports false, and 0, when the
// result is not a real number (negative base with a fractional exponent) or
// is infinite (zero base with a negative exponent).
func Pow(base, exp decimal.Decimal) (float64, bool) {
	p, ok := Power(base, exp)
	return Float(p), ok
}

// Quo returns a/b rounded to Precision digits. It reports false, and zero,
// when b is zero.
func Quo(a, b decimal.Decimal) (decimal.Decimal, bool) {
	if b.IsZero() {
		return decimal.Zero, false
	}
	return a.DivRound(b, Precision), true
}

// Ratio returns a/|b|, so that the sign of the result is the sign of a. It
// reports false, and zero, when b is zero.
func Ratio(a, b decimal.Decimal) (decimal.Decimal, bool) {
	return Quo(a, b.Abs())
}

// PercentOf returns a/|b| in percent, or 0 when b is zero.
func PercentOf(a, b decimal.Decimal) float64 {
	r, ok := Ratio(a, b)
	if !ok {
		return 0
	}
	return Float(r.Mul(hundred))
}

// Power returns base^exp rounded to Precision digits.
func Power(base, exp decimal.Decimal) (decimal.Decimal, bool) {
	switch {
	case exp.IsZero(), base.Equal(one):
		return one, true
	case base.IsZero():
		if exp.IsNegative() {
			return decimal.Zero, false
		}
		return decimal.Zero, true
	case exp.IsInteger() && exp.IsPositive() && exp.LessThanOrEqual(maxIntExponent):
		p, err := base.PowInt32(int32(exp.IntPart()))
		if err != nil {
			return decimal.Zero, false
		}
		return p.Round(Precision), true
	}
	p, err := base.PowWithPrecision(exp, Precision)
	if err != nil {
		return decimal.Zero, false
	}
	return p, true
}

var maxIntExponent = decimal.NewFromInt(1 << 16)

// Compound rescales a growth rate expressed over n periods into the
// equivalent rate over `periods` periods: (1+rate)^(periods/n) - 1.
// Compound(annual, 12, 1) is the monthly rate of an annual one.
// Rates are fractions (0.05 for 5%). A rate at or below -1 wipes the
// balance out and is returned as -1.
func Compound(rate decimal.Decimal, n, periods int64) decimal.Decimal {
	if periods == 0 || n == 0 || rate.IsZero() {
		return decimal.Zero
	}
	base := one.Add(rate)
	if !base.IsPositive() {
		return one.Neg()
	}
	exp := decimal.NewFromInt(periods).DivRound(decimal.NewFromInt(n), Precision)
	p, ok := Power(base, exp)
	if !ok {
		return decimal.Zero
	}
	return p.Sub(one)
}
