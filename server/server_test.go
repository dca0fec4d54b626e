package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/etnz/networth"
	"github.com/etnz/networth/store"
)

func newTestServer(t *testing.T, entries ...networth.Entry) *Server {
	t.Helper()
	st := store.NewFileStore(filepath.Join(t.TempDir(), "ledger.jsonl"))
	if err := st.Save(context.Background(), entries); err != nil {
		t.Fatalf("Save() unexpected error: %v", err)
	}
	cfg := DefaultConfig()
	cfg.Currency = "USD"
	return New(cfg, st)
}

func ledger() []networth.Entry {
	return []networth.Entry{
		networth.NewEntry("2024-01-01", "Stocks", 10000, 7),
		networth.NewEntry("2024-01-01", "Cash", 2000, 0),
		networth.NewEntry("2024-01-01", "Loan", -1000, 4),
		networth.NewEntry("2024-02-01", "Stocks", 11000, 7),
		networth.NewEntry("2024-02-01", "Cash", 1900, 0),
		networth.NewEntry("2024-02-01", "Loan", -900, 4),
	}
}

func do(t *testing.T, s *Server, method, target string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	rr := httptest.NewRecorder()
	s.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), v); err != nil {
		t.Fatalf("could not decode response %q: %v", rr.Body.String(), err)
	}
}

func TestHealth(t *testing.T) {
	rr := do(t, newTestServer(t), "GET", "/health", nil)
	if rr.Code != http.StatusOK {
		t.Errorf("GET /health = %d, want %d", rr.Code, http.StatusOK)
	}
}

func TestEntries(t *testing.T) {
	s := newTestServer(t, ledger()...)

	rr := do(t, s, "POST", "/api/entries", []byte(`{"date":"2024-03-01","investment":"Stocks","amount":12000,"rate":7}`))
	if rr.Code != http.StatusCreated {
		t.Fatalf("POST /api/entries = %d, want %d: %s", rr.Code, http.StatusCreated, rr.Body)
	}

	rr = do(t, s, "GET", "/api/entries", nil)
	var entries []networth.Entry
	decode(t, rr, &entries)
	if got, want := len(entries), 7; got != want {
		t.Errorf("GET /api/entries returned %d entries, want %d", got, want)
	}

	rr = do(t, s, "DELETE", "/api/entries/2024-03-01/Stocks", nil)
	if rr.Code != http.StatusOK {
		t.Errorf("DELETE = %d, want %d", rr.Code, http.StatusOK)
	}
	rr = do(t, s, "DELETE", "/api/entries/2024-03-01/Stocks", nil)
	if rr.Code != http.StatusNotFound {
		t.Errorf("DELETE again = %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestEntries_UnpaddedDate(t *testing.T) {
	s := newTestServer(t, ledger()...)

	rr := do(t, s, "POST", "/api/entries", []byte(`{"date":"2024-2-1","investment":"Stocks","amount":11500,"rate":7}`))
	if rr.Code != http.StatusCreated {
		t.Fatalf("POST /api/entries = %d, want %d: %s", rr.Code, http.StatusCreated, rr.Body)
	}
	var e networth.Entry
	decode(t, rr, &e)
	if e.Date != "2024-02-01" {
		t.Errorf("POST /api/entries date = %q, want %q", e.Date, "2024-02-01")
	}

	rr = do(t, s, "GET", "/api/entries", nil)
	var entries []networth.Entry
	decode(t, rr, &entries)
	if got, want := len(entries), 6; got != want {
		t.Errorf("GET /api/entries returned %d entries, want %d", got, want)
	}

	rr = do(t, s, "GET", "/api/snapshots/2024-2-1", nil)
	if rr.Code != http.StatusOK {
		t.Errorf("GET /api/snapshots/2024-2-1 = %d, want %d", rr.Code, http.StatusOK)
	}
	rr = do(t, s, "DELETE", "/api/entries/2024-2-1/Stocks", nil)
	if rr.Code != http.StatusOK {
		t.Errorf("DELETE = %d, want %d", rr.Code, http.StatusOK)
	}
}

func TestEntries_Invalid(t *testing.T) {
	s := newTestServer(t)
	for _, body := range []string{
		`not json`,
		`{"date":"2024-02-30","investment":"Stocks","amount":1}`,
		`{"date":"2024-02-01","investment":"","amount":1}`,
	} {
		rr := do(t, s, "POST", "/api/entries", []byte(body))
		if rr.Code != http.StatusBadRequest {
			t.Errorf("POST %s = %d, want %d", body, rr.Code, http.StatusBadRequest)
		}
		var e ErrorResponse
		decode(t, rr, &e)
		if e.Code != ErrCodeInvalidInput {
			t.Errorf("POST %s error code = %q, want %q", body, e.Code, ErrCodeInvalidInput)
		}
	}
}

func TestSnapshots(t *testing.T) {
	s := newTestServer(t, ledger()...)

	rr := do(t, s, "GET", "/api/snapshots", nil)
	var all []map[string]any
	decode(t, rr, &all)
	if len(all) != 2 {
		t.Fatalf("GET /api/snapshots returned %d snapshots, want 2", len(all))
	}

	rr = do(t, s, "GET", "/api/snapshots/2024-02-01", nil)
	var snap map[string]any
	decode(t, rr, &snap)
	if got, want := snap["netWorth"], 12000.0; got != want {
		t.Errorf("netWorth = %v, want %v", got, want)
	}

	rr = do(t, s, "GET", "/api/snapshots/2024-05-01", nil)
	if rr.Code != http.StatusNotFound {
		t.Errorf("GET missing snapshot = %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestInsight(t *testing.T) {
	s := newTestServer(t, ledger()...)

	rr := do(t, s, "GET", "/api/insight", nil)
	var in networth.Insight
	decode(t, rr, &in)
	if in.Top.Name != "Stocks" || in.Under.Name != "Cash" {
		t.Errorf("insight performers = %q/%q, want Stocks/Cash", in.Top.Name, in.Under.Name)
	}

	rr = do(t, s, "GET", "/api/insight?date=2024-01-01", nil)
	decode(t, rr, &in)
	if in.Date != "2024-01-01" || in.PeriodChangePct != 0 {
		t.Errorf("insight on first date = %+v, want no change", in)
	}

	rr = do(t, newTestServer(t), "GET", "/api/insight", nil)
	if rr.Code != http.StatusNotFound {
		t.Errorf("GET /api/insight on empty ledger = %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestMetrics(t *testing.T) {
	rr := do(t, newTestServer(t, ledger()...), "GET", "/api/metrics", nil)
	var m map[string]any
	decode(t, rr, &m)
	if got, want := m["periods"], 1.0; got != want {
		t.Errorf("periods = %v, want %v", got, want)
	}
}

func TestSeries(t *testing.T) {
	s := newTestServer(t, ledger()...)

	rr := do(t, s, "GET", "/api/series?kind=value&granularity=monthly", nil)
	var points []networth.ChartPoint
	decode(t, rr, &points)
	if len(points) != 2 {
		t.Fatalf("got %d points, want 2", len(points))
	}
	if points[1].Date != "2024-02" || points[1].Total != 12000 {
		t.Errorf("points[1] = %+v, want 2024-02 at 12000", points[1])
	}

	for _, q := range []string{"kind=nope", "view=nope", "mode=nope", "granularity=nope"} {
		rr := do(t, s, "GET", "/api/series?"+q, nil)
		if rr.Code != http.StatusBadRequest {
			t.Errorf("GET /api/series?%s = %d, want %d", q, rr.Code, http.StatusBadRequest)
		}
	}
}

func TestChart(t *testing.T) {
	s := newTestServer(t, ledger()...)

	rr := do(t, s, "GET", "/api/chart", nil)
	if rr.Code != http.StatusOK || rr.Header().Get("Content-Type") != "image/png" {
		t.Errorf("GET /api/chart = %d %q, want a PNG image", rr.Code, rr.Header().Get("Content-Type"))
	}

	rr = do(t, newTestServer(t), "GET", "/api/chart", nil)
	if rr.Code != http.StatusNotFound {
		t.Errorf("GET /api/chart on empty ledger = %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestProjection(t *testing.T) {
	s := newTestServer(t, ledger()...)

	rr := do(t, s, "GET", "/api/projection?months=3", nil)
	var points []map[string]any
	decode(t, rr, &points)
	if len(points) != 4 {
		t.Errorf("got %d projection points, want 4", len(points))
	}
	if rr := do(t, s, "GET", "/api/projection?months=-1", nil); rr.Code != http.StatusBadRequest {
		t.Errorf("negative months = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestRates(t *testing.T) {
	rr := do(t, newTestServer(t, ledger()...), "GET", "/api/rates", nil)
	var checks []map[string]any
	decode(t, rr, &checks)
	if len(checks) != 2 {
		t.Errorf("got %d rate checks, want 2", len(checks))
	}
}

func TestReport(t *testing.T) {
	rr := do(t, newTestServer(t, ledger()...), "GET", "/api/report", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("GET /api/report = %d, want %d", rr.Code, http.StatusOK)
	}
	if !strings.HasPrefix(rr.Body.String(), "# ") {
		t.Errorf("report does not start with a heading: %q", rr.Body.String())
	}
}
