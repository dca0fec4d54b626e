package date

import "testing"

func TestNewRange(t *testing.T) {
	d := New(2025, 8, 20) // a Wednesday
	tests := []struct {
		period   Period
		from, to Date
		id       string
	}{
		{Daily, d, d, "2025-08-20"},
		{Weekly, New(2025, 8, 18), New(2025, 8, 24), "2025-W34"},
		{Monthly, New(2025, 8, 1), New(2025, 8, 31), "2025-08"},
		{Quarterly, New(2025, 7, 1), New(2025, 9, 30), "2025-Q3"},
		{Yearly, New(2025, 1, 1), New(2025, 12, 31), "2025"},
	}
	for _, tt := range tests {
		t.Run(tt.period.String(), func(t *testing.T) {
			r := NewRange(d, tt.period)
			if r.From != tt.from || r.To != tt.to {
				t.Errorf("NewRange(%v) = %v..%v, want %v..%v", tt.period, r.From, r.To, tt.from, tt.to)
			}
			if got := r.Identifier(); got != tt.id {
				t.Errorf("Identifier() = %q, want %q", got, tt.id)
			}
		})
	}
}

func TestRangeIdentifierSpecial(t *testing.T) {
	r := Range{From: New(2025, 1, 3), To: New(2025, 1, 9)}
	if got, want := r.Identifier(), "2025-01-03_2025-01-09"; got != want {
		t.Errorf("Identifier() = %q, want %q", got, want)
	}
}

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		in      string
		want    Period
		wantErr bool
	}{
		{"daily", Daily, false},
		{"week", Weekly, false},
		{"", Monthly, false},
		{" Quarter ", Quarterly, false},
		{"YEARLY", Yearly, false},
		{"fortnightly", Monthly, true},
	}
	for _, tt := range tests {
		got, err := ParsePeriod(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePeriod(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePeriod(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
