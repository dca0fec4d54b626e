package networth

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// this file contains functions to handle the CSV import/export format,
// the one spreadsheets understand.

var csvHeader = []string{"date", "investment", "amount", "rate"}

// ImportCSV reads entries from CSV with a header line naming the columns
// date, investment, amount and rate, in any order. The rate column is
// optional. Entries are validated.
func ImportCSV(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read CSV header: %w", err)
	}
	col := make(map[string]int)
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, name := range csvHeader[:3] {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("missing CSV column %q", name)
		}
	}
	field := func(rec []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var entries []Entry
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("cannot read CSV record: %w", err)
		}
		line, _ := cr.FieldPos(0)
		amount, err := decimal.NewFromString(field(rec, "amount"))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w: invalid amount: %w", line, ErrInvalidEntry, err)
		}
		var rate float64
		if v := field(rec, "rate"); v != "" {
			rate, err = strconv.ParseFloat(strings.TrimSuffix(v, "%"), 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w: invalid rate: %w", line, ErrInvalidEntry, err)
			}
		}
		e := Entry{
			Date:   field(rec, "date"),
			Asset:  field(rec, "investment"),
			Amount: amount,
			Rate:   Percent(rate),
		}.canonical()
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// ExportCSV writes entries as CSV, with a header, sorted by date then asset.
func ExportCSV(w io.Writer, entries []Entry) error {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	SortEntries(sorted)

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("cannot write CSV header: %w", err)
	}
	for _, e := range sorted {
		rec := []string{e.Date, e.Asset, e.Amount.String(), strconv.FormatFloat(float64(e.Rate), 'f', -1, 64)}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("cannot write entry %s: %w", e.Key(), err)
		}
	}
	cw.Flush()
	return cw.Error()
}
