package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/etnz/networth"
)

// stores returns one fresh store per supported format.
func stores(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()
	out := make(map[string]Store)
	for name, file := range map[string]string{"file": "ledger.jsonl", "sqlite": "ledger.db"} {
		s, err := Open(filepath.Join(dir, file))
		if err != nil {
			t.Fatalf("Open(%q) unexpected error: %v", file, err)
		}
		t.Cleanup(func() { s.Close() })
		out[name] = s
	}
	return out
}

func equalEntries(t *testing.T, got, want []networth.Entry) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d entries, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("entry #%d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestStore_SaveLoad(t *testing.T) {
	ctx := context.Background()
	ledger := []networth.Entry{
		networth.NewEntry("2024-02-01", "Stocks", 11000, 7),
		networth.NewEntry("2024-01-01", "Stocks", 10000, 7),
		networth.NewEntry("2024-01-01", "Loan", -2500.5, 3.5),
		networth.NewEntry("2024-01-01", "Cash", 1000, 0),
		networth.NewEntry("2024-01-01", "Cash", 250, 0),
	}
	want := []networth.Entry{ledger[3], ledger[4], ledger[2], ledger[1], ledger[0]}
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			got, err := s.Load(ctx)
			if err != nil {
				t.Fatalf("Load() unexpected error: %v", err)
			}
			if len(got) != 0 {
				t.Errorf("Load() on a new store = %v, want empty", got)
			}
			if err := s.Save(ctx, ledger); err != nil {
				t.Fatalf("Save() unexpected error: %v", err)
			}
			got, err = s.Load(ctx)
			if err != nil {
				t.Fatalf("Load() unexpected error: %v", err)
			}
			equalEntries(t, got, want)
		})
	}
}

func TestStore_UpsertDelete(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			steps := []networth.Entry{
				networth.NewEntry("2024-01-01", "Stocks", 10000, 7),
				networth.NewEntry("2024-01-01", "Cash", 500, 0),
				networth.NewEntry("2024-01-01", "Stocks", 12000, 6),
			}
			for _, e := range steps {
				if err := s.Upsert(ctx, e); err != nil {
					t.Fatalf("Upsert(%v) unexpected error: %v", e, err)
				}
			}
			got, err := s.Load(ctx)
			if err != nil {
				t.Fatalf("Load() unexpected error: %v", err)
			}
			equalEntries(t, got, []networth.Entry{steps[1], steps[2]})

			n, err := s.Delete(ctx, "2024-01-01", "Cash")
			if err != nil {
				t.Fatalf("Delete() unexpected error: %v", err)
			}
			if n != 1 {
				t.Errorf("Delete() = %d, want 1", n)
			}
			n, err = s.Delete(ctx, "2024-01-01", "Cash")
			if err != nil || n != 0 {
				t.Errorf("Delete() again = %d, %v, want 0, nil", n, err)
			}
			got, err = s.Load(ctx)
			if err != nil {
				t.Fatalf("Load() unexpected error: %v", err)
			}
			equalEntries(t, got, []networth.Entry{steps[2]})
		})
	}
}

func TestStore_RejectsInvalidEntries(t *testing.T) {
	ctx := context.Background()
	bad := []networth.Entry{
		networth.NewEntry("2024-13-01", "Stocks", 1, 0),
		networth.NewEntry("2024-1-1", "Stocks", 1, 0),
		networth.NewEntry("2024-01-01", " ", 1, 0),
	}
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			for _, e := range bad {
				if err := s.Upsert(ctx, e); !errors.Is(err, networth.ErrInvalidEntry) {
					t.Errorf("Upsert(%v) error = %v, want %v", e, err, networth.ErrInvalidEntry)
				}
			}
			if err := s.Save(ctx, bad); !errors.Is(err, networth.ErrInvalidEntry) {
				t.Errorf("Save() error = %v, want %v", err, networth.ErrInvalidEntry)
			}
		})
	}
}

func TestFileStore_Format(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "ledger.jsonl")
	s := NewFileStore(path)
	ctx := context.Background()
	if err := s.Upsert(ctx, networth.NewEntry("2024-01-01", "Stocks", 10000.5, 7)); err != nil {
		t.Fatalf("Upsert() unexpected error: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() unexpected error: %v", err)
	}
	want := `{"date":"2024-01-01","investment":"Stocks","amount":10000.5,"rate":7}` + "\n"
	if string(got) != want {
		t.Errorf("ledger file = %q, want %q", got, want)
	}
}

func TestOpen_UnknownFormat(t *testing.T) {
	if _, err := Open("ledger.csv"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Open(ledger.csv) error = %v, want %v", err, ErrUnknownFormat)
	}
}
