package networth

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestPrecision_Arithmetic(t *testing.T) {
	// the classic float pitfall.
	if got := Add(D(0.1), D(0.2)); got != 0.3 {
		t.Errorf("Add(0.1, 0.2) = %v, want 0.3", got)
	}
	if got := Sub(D(0.3), D(0.1)); got != 0.2 {
		t.Errorf("Sub(0.3, 0.1) = %v, want 0.2", got)
	}
	if got := Mul(D(1.1), D(1.1)); got != 1.21 {
		t.Errorf("Mul(1.1, 1.1) = %v, want 1.21", got)
	}
}

func TestDiv(t *testing.T) {
	tests := []struct {
		a, b   float64
		want   float64
		wantOK bool
	}{
		{1, 4, 0.25, true},
		{1, 3, 1.0 / 3, true},
		{-1, 4, -0.25, true},
		{1, 0, 0, false},
		{0, 0, 0, false},
	}
	for _, tt := range tests {
		got, ok := Div(D(tt.a), D(tt.b))
		if ok != tt.wantOK || !approx(got, tt.want) {
			t.Errorf("Div(%v, %v) = %v, %v, want %v, %v", tt.a, tt.b, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestPow(t *testing.T) {
	tests := []struct {
		name      string
		base, exp float64
		want      float64
		wantOK    bool
	}{
		{"integer", 1.1, 2, 1.21, true},
		{"square root", 1.21, 0.5, 1.1, true},
		{"negative exponent", 2, -1, 0.5, true},
		{"zero exponent", 0, 0, 1, true},
		{"zero base", 0, 0.5, 0, true},
		{"zero base negative exponent", 0, -1, 0, false},
		{"negative base fractional exponent", -8, 1.0 / 3, 0, false},
		{"negative base integer exponent", -2, 3, -8, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Pow(D(tt.base), D(tt.exp))
			if ok != tt.wantOK || !approx(got, tt.want) {
				t.Errorf("Pow(%v, %v) = %v, %v, want %v, %v", tt.base, tt.exp, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestRatio(t *testing.T) {
	if r, ok := Ratio(D(-50), D(-200)); !ok || !r.Equal(D(-0.25)) {
		t.Errorf("Ratio(-50, -200) = %v, %v, want -0.25, true", r, ok)
	}
	if _, ok := Ratio(D(1), decimal.Zero); ok {
		t.Errorf("Ratio(1, 0) ok = true, want false")
	}
	if got := PercentOf(D(50), D(-200)); got != 25 {
		t.Errorf("PercentOf(50, -200) = %v, want 25", got)
	}
	if got := PercentOf(D(50), decimal.Zero); got != 0 {
		t.Errorf("PercentOf(50, 0) = %v, want 0", got)
	}
}

func TestCompound(t *testing.T) {
	tests := []struct {
		name       string
		rate       float64
		n, periods int64
		want       float64
	}{
		{"monthly of annual", 0.12, 12, 1, 0.009488792934583046},
		{"annual of monthly", 0.01, 1, 12, 0.12682503013196977},
		{"same period", 0.05, 1, 1, 0.05},
		{"zero rate", 0, 12, 1, 0},
		{"wiped out", -1.5, 12, 1, -1},
		{"no period", 0.05, 0, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Float(Compound(D(tt.rate), tt.n, tt.periods)); !approx(got, tt.want) {
				t.Errorf("Compound(%v, %d, %d) = %v, want %v", tt.rate, tt.n, tt.periods, got, tt.want)
			}
		})
	}
}
