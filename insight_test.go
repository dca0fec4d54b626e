package networth

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestActualReturn(t *testing.T) {
	prev := BuildSnapshot([]Entry{
		E("2024-01-01", "A", 100, 5),
		E("2024-01-01", "Z", 0, 5),
		E("2024-01-01", "Loan", -200, 3),
	}, "2024-01-01")
	cur := BuildSnapshot([]Entry{
		E("2024-02-01", "A", 110, 5),
		E("2024-02-01", "Z", 10, 5),
		E("2024-02-01", "New", 50, 5),
		E("2024-02-01", "Loan", -150, 3),
	}, "2024-02-01")

	tests := []struct {
		asset    string
		previous *Snapshot
		want     Return
	}{
		{"A", &prev, Defined(10)},
		{"Z", &prev, Return{}},   // zero prior balance
		{"New", &prev, Return{}}, // absent from prior
		{"Loan", &prev, Defined(25)},
		{"A", nil, Return{}},
	}
	for _, tt := range tests {
		t.Run(tt.asset, func(t *testing.T) {
			got := ActualReturn(cur, tt.previous, tt.asset)
			if got.Defined != tt.want.Defined || !approx(got.Pct, tt.want.Pct) {
				t.Errorf("ActualReturn(%q) = %v, want %v", tt.asset, got, tt.want)
			}
		})
	}
}

func TestComputeInsight(t *testing.T) {
	prev := BuildSnapshot([]Entry{
		E("2024-01-01", "A", 100, 5),
		E("2024-01-01", "B", 200, 5),
		E("2024-01-01", "C", 100, 5),
	}, "2024-01-01")
	cur := BuildSnapshot([]Entry{
		E("2024-02-01", "A", 120, 5), // +20%
		E("2024-02-01", "B", 180, 5), // -10%
		E("2024-02-01", "C", 100, 5), // 0%
		E("2024-02-01", "D", 100, 5), // undefined
	}, "2024-02-01")

	got := ComputeInsight(cur, &prev)

	want := Insight{
		Date:            "2024-02-01",
		Top:             Performer{Name: "A", ReturnPct: 20},
		Under:           Performer{Name: "B", ReturnPct: -10},
		PeriodChangePct: 25,
		Allocation:      map[string]float64{"A": 24, "B": 36, "C": 20, "D": 20},
	}
	if diff := cmp.Diff(want, got, floatEqual); diff != "" {
		t.Errorf("ComputeInsight() mismatch (-want +got):\n%s", diff)
	}
	if !got.Notable() {
		t.Errorf("Notable() = false, want true")
	}
}

func TestComputeInsight_Ties(t *testing.T) {
	prev := BuildSnapshot([]Entry{E("2024-01-01", "A", 100, 0), E("2024-01-01", "B", 100, 0)}, "2024-01-01")
	cur := BuildSnapshot([]Entry{E("2024-02-01", "A", 110, 0), E("2024-02-01", "B", 110, 0)}, "2024-02-01")

	got := ComputeInsight(cur, &prev)
	if got.Top.Name != "A" || got.Under.Name != "A" {
		t.Errorf("ComputeInsight() top/under = %q/%q, want the first occurrence A/A", got.Top.Name, got.Under.Name)
	}
}

func TestComputeInsight_NoPrevious(t *testing.T) {
	cur := BuildSnapshot([]Entry{E("2024-02-01", "A", 0, 0), E("2024-02-01", "L", -10, 0)}, "2024-02-01")

	got := ComputeInsight(cur, nil)

	if got.Top != (Performer{}) || got.Under != (Performer{}) {
		t.Errorf("ComputeInsight() performers = %v/%v, want empty placeholders", got.Top, got.Under)
	}
	if got.PeriodChangePct != 0 {
		t.Errorf("PeriodChangePct = %v, want 0", got.PeriodChangePct)
	}
	if len(got.Allocation) != 0 {
		t.Errorf("Allocation = %v, want empty", got.Allocation)
	}
	if got.Notable() {
		t.Errorf("Notable() = true, want false")
	}
}

func TestComputeInsight_ZeroPreviousNetWorth(t *testing.T) {
	prev := BuildSnapshot([]Entry{E("2024-01-01", "A", 100, 0), E("2024-01-01", "L", -100, 0)}, "2024-01-01")
	cur := BuildSnapshot([]Entry{E("2024-02-01", "A", 150, 0), E("2024-02-01", "L", -100, 0)}, "2024-02-01")

	if got := ComputeInsight(cur, &prev).PeriodChangePct; got != 0 {
		t.Errorf("PeriodChangePct = %v, want 0", got)
	}
}

func TestInsight_Notable(t *testing.T) {
	tests := []struct {
		name string
		in   Insight
		want bool
	}{
		{"no candidate", Insight{}, false},
		{"flat", Insight{Top: Performer{"A", 0}, Under: Performer{"A", 0}}, false},
		{"all down", Insight{Top: Performer{"A", -1}, Under: Performer{"B", -5}}, true},
		{"all up", Insight{Top: Performer{"A", 5}, Under: Performer{"B", 1}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Notable(); got != tt.want {
				t.Errorf("Notable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLatestInsight(t *testing.T) {
	s := NewSeries(netWorths(1000, 1100, 1320))

	got, ok := LatestInsight(s)
	if !ok {
		t.Fatalf("LatestInsight() ok = false")
	}
	if got.Date != "2024-03-01" || !approx(got.PeriodChangePct, 20) {
		t.Errorf("LatestInsight() = %v %v, want 2024-03-01 20", got.Date, got.PeriodChangePct)
	}
	if _, ok := LatestInsight(nil); ok {
		t.Errorf("LatestInsight(nil) ok = true, want false")
	}
	if got, ok := InsightOn(s, "2024-02-01"); !ok || !approx(got.PeriodChangePct, 10) {
		t.Errorf("InsightOn(2024-02-01) = %v, %v, want 10", got.PeriodChangePct, ok)
	}
}

func TestReturn_MarshalJSON(t *testing.T) {
	if got, _ := (Return{}).MarshalJSON(); string(got) != "null" {
		t.Errorf("Return{}.MarshalJSON() = %s, want null", got)
	}
	if got, _ := Defined(12.5).MarshalJSON(); string(got) != "12.5" {
		t.Errorf("Defined(12.5).MarshalJSON() = %s, want 12.5", got)
	}
}
