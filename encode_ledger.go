package networth

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// DecodeEntries decodes ledger entries from a stream of JSONL data, one
// entry per line. Empty lines are skipped. Every entry is validated: the
// ledger file is written by hand as often as by the tool. Dates such as
// "2024-9-1" are read as "2024-09-01".
func DecodeEntries(r io.Reader) ([]Entry, error) {
	var entries []Entry
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		lineBytes := scanner.Bytes()
		if len(strings.TrimSpace(string(lineBytes))) == 0 {
			continue // Skip empty lines
		}
		var e Entry
		if err := json.Unmarshal(lineBytes, &e); err != nil {
			return nil, fmt.Errorf("line %d: could not decode entry %q: %w", line, string(lineBytes), err)
		}
		e = e.canonical()
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}
	return entries, nil
}

// EncodeEntry writes a single entry as one JSON line.
func EncodeEntry(w io.Writer, e Entry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("could not marshal entry %s: %w", e.Key(), err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("could not write entry %s: %w", e.Key(), err)
	}
	return nil
}

// EncodeEntries writes entries as JSONL, sorted by date then asset so that
// the file diffs and merges well. The input slice is not modified.
func EncodeEntries(w io.Writer, entries []Entry) error {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	SortEntries(sorted)
	for _, e := range sorted {
		if err := EncodeEntry(w, e); err != nil {
			return err
		}
	}
	return nil
}
