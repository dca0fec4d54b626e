package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/etnz/networth"
	"github.com/etnz/networth/chart"
	"github.com/etnz/networth/renderer"
	"github.com/gorilla/mux"
)

// maxProjection caps the projection horizon, in months.
const maxProjection = 1200

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// series loads the ledger and builds one snapshot per date.
func (s *Server) series(r *http.Request) (networth.Series, error) {
	entries, err := s.store.Load(r.Context())
	if err != nil {
		return nil, err
	}
	return networth.BuildAllSnapshots(entries), nil
}

func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := s.store.Load(r.Context())
	if err != nil {
		respondInternal(w, err)
		return
	}
	respondJSON(w, http.StatusOK, entries)
}

func (s *Server) handleUpsertEntry(w http.ResponseWriter, r *http.Request) {
	var e networth.Entry
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, fmt.Sprintf("invalid entry: %v", err))
		return
	}
	e.Date, _ = networth.CanonicalDate(e.Date)
	err := s.store.Upsert(r.Context(), e)
	if errors.Is(err, networth.ErrInvalidEntry) {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, err.Error())
		return
	}
	if err != nil {
		respondInternal(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, e)
}

func (s *Server) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	on, _ := networth.CanonicalDate(vars["date"])
	n, err := s.store.Delete(r.Context(), on, vars["investment"])
	if err != nil {
		respondInternal(w, err)
		return
	}
	if n == 0 {
		respondError(w, http.StatusNotFound, ErrCodeNotFound, fmt.Sprintf("no entry for %s on %s", vars["investment"], on))
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"removed": n})
}

func (s *Server) handleListSnapshots(w http.ResponseWriter, r *http.Request) {
	series, err := s.series(r)
	if err != nil {
		respondInternal(w, err)
		return
	}
	respondJSON(w, http.StatusOK, series)
}

func (s *Server) handleGetSnapshot(w http.ResponseWriter, r *http.Request) {
	on, _ := networth.CanonicalDate(mux.Vars(r)["date"])
	series, err := s.series(r)
	if err != nil {
		respondInternal(w, err)
		return
	}
	snap, i := series.At(on)
	if i < 0 {
		respondError(w, http.StatusNotFound, ErrCodeNotFound, fmt.Sprintf("no snapshot on %s", on))
		return
	}
	respondJSON(w, http.StatusOK, snap)
}

// handleInsight returns the insight of the latest snapshot, or of the one
// given by the "date" query parameter.
func (s *Server) handleInsight(w http.ResponseWriter, r *http.Request) {
	series, err := s.series(r)
	if err != nil {
		respondInternal(w, err)
		return
	}
	var (
		in networth.Insight
		ok bool
	)
	if on := r.URL.Query().Get("date"); on != "" {
		on, _ = networth.CanonicalDate(on)
		in, ok = networth.InsightOn(series, on)
	} else {
		in, ok = networth.LatestInsight(series)
	}
	if !ok {
		respondError(w, http.StatusNotFound, ErrCodeNotFound, "no snapshot to compute an insight for")
		return
	}
	respondJSON(w, http.StatusOK, in)
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	series, err := s.series(r)
	if err != nil {
		respondInternal(w, err)
		return
	}
	respondJSON(w, http.StatusOK, networth.ComputeMetrics(series))
}

// selector reads the series selector from the query parameters kind, view,
// mode and granularity.
func selector(r *http.Request) (networth.Selector, error) {
	q := r.URL.Query()
	return networth.ParseSelector(q.Get("kind"), q.Get("view"), q.Get("mode"), q.Get("granularity"))
}

func (s *Server) handleSeries(w http.ResponseWriter, r *http.Request) {
	sel, err := selector(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, err.Error())
		return
	}
	series, err := s.series(r)
	if err != nil {
		respondInternal(w, err)
		return
	}
	respondJSON(w, http.StatusOK, networth.Transform(series, sel))
}

// handleChart renders a series as an image, PNG unless format=svg.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	sel, err := selector(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, err.Error())
		return
	}
	series, err := s.series(r)
	if err != nil {
		respondInternal(w, err)
		return
	}
	opts := chart.Options{SVG: r.URL.Query().Get("format") == "svg"}
	img, err := chart.Render(networth.Transform(series, sel), sel, opts)
	if errors.Is(err, chart.ErrNoData) {
		respondError(w, http.StatusNotFound, ErrCodeNotFound, err.Error())
		return
	}
	if err != nil {
		respondInternal(w, err)
		return
	}
	if opts.SVG {
		w.Header().Set("Content-Type", "image/svg+xml")
	} else {
		w.Header().Set("Content-Type", "image/png")
	}
	w.Write(img)
}

// handleProjection projects the latest snapshot over "months" months, 12 by default.
func (s *Server) handleProjection(w http.ResponseWriter, r *http.Request) {
	months := 12
	if v := r.URL.Query().Get("months"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > maxProjection {
			respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, fmt.Sprintf("invalid months %q", v))
			return
		}
		months = n
	}
	series, err := s.series(r)
	if err != nil {
		respondInternal(w, err)
		return
	}
	last, ok := series.Last()
	if !ok {
		respondError(w, http.StatusNotFound, ErrCodeNotFound, "empty ledger")
		return
	}
	respondJSON(w, http.StatusOK, networth.Project(last, months))
}

func (s *Server) handleRates(w http.ResponseWriter, r *http.Request) {
	series, err := s.series(r)
	if err != nil {
		respondInternal(w, err)
		return
	}
	if len(series) == 0 {
		respondError(w, http.StatusNotFound, ErrCodeNotFound, "empty ledger")
		return
	}
	i := len(series) - 1
	checks := networth.CheckRates(series[i], series.Previous(i))
	if checks == nil {
		checks = []networth.RateCheck{}
	}
	respondJSON(w, http.StatusOK, checks)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	series, err := s.series(r)
	if err != nil {
		respondInternal(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	fmt.Fprint(w, renderer.ReportMarkdown(series, s.config.Currency))
}
