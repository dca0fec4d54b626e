package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/etnz/networth"
)

// FileStore keeps the ledger in a JSONL file.
//
// A missing file is an empty ledger. Writes go to a temporary file renamed
// over the ledger, so a failed write never leaves a truncated file.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore { return &FileStore{path: path} }

// Path returns the ledger file path.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Load(ctx context.Context) ([]networth.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *FileStore) load(ctx context.Context) ([]networth.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []networth.Entry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open ledger file %q: %w", s.path, err)
	}
	defer f.Close()

	entries, err := networth.DecodeEntries(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode ledger file %q: %w", s.path, err)
	}
	if entries == nil {
		entries = []networth.Entry{}
	}
	networth.SortEntries(entries)
	return entries, nil
}

func (s *FileStore) Save(ctx context.Context, entries []networth.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, entries)
}

func (s *FileStore) save(ctx context.Context, entries []networth.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validate(entries...); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := networth.EncodeEntries(&buf, entries); err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("could not create ledger directory: %w", err)
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("could not write ledger file %q: %w", s.path, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("could not replace ledger file %q: %w", s.path, err)
	}
	return nil
}

func (s *FileStore) Upsert(ctx context.Context, e networth.Entry) error {
	if err := validate(e); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	entries, err := s.load(ctx)
	if err != nil {
		return err
	}
	return s.save(ctx, networth.Upsert(entries, e))
}

func (s *FileStore) Delete(ctx context.Context, on, asset string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries, err := s.load(ctx)
	if err != nil {
		return 0, err
	}
	entries, n := networth.Remove(entries, on, asset)
	if n == 0 {
		return 0, nil
	}
	return n, s.save(ctx, entries)
}

func (s *FileStore) Close() error { return nil }
