// Package store persists ledger entries.
//
// Two formats are supported: a JSONL file, one entry per line, meant to be
// edited by hand and kept under version control, and a SQLite database.
package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/etnz/networth"
)

// ErrUnknownFormat is returned by Open when the path extension is not supported.
var ErrUnknownFormat = errors.New("unknown ledger format")

// Store loads and saves the ledger.
type Store interface {
	// Load returns all entries sorted by date then asset.
	Load(ctx context.Context) ([]networth.Entry, error)
	// Save replaces the whole ledger.
	Save(ctx context.Context, entries []networth.Entry) error
	// Upsert records e, replacing any entry with the same date and asset.
	Upsert(ctx context.Context, e networth.Entry) error
	// Delete removes entries with the given date and asset and returns how many were removed.
	Delete(ctx context.Context, on, asset string) (int, error)
	Close() error
}

// Open opens the ledger at path, picking the format from its extension:
// ".jsonl" for a file store, ".db", ".sqlite" or ".sqlite3" for a SQLite store.
func Open(path string) (Store, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jsonl", ".json":
		return NewFileStore(path), nil
	case ".db", ".sqlite", ".sqlite3":
		return OpenSQLite(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, path)
	}
}

func validate(entries ...networth.Entry) error {
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return err
		}
	}
	return nil
}
