package networth

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/etnz/networth/date"
	"github.com/shopspring/decimal"
)

// ErrInvalidEntry is returned by Entry.Validate and the ledger decoders.
var ErrInvalidEntry = errors.New("invalid ledger entry")

// Entry is one dated balance record for a named asset or liability.
//
// Date is kept as the raw "YYYY-MM-DD" string the ledger carries: the
// engine orders dates lexicographically and never rejects a malformed one.
// A negative Amount is a liability (a loan, a credit card balance). Rate is
// the expected annual growth of the asset, in percent.
type Entry struct {
	Date   string
	Asset  string
	Amount decimal.Decimal
	Rate   Percent
}

// NewEntry creates an Entry.
func NewEntry[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](on, asset string, amount T, rate Percent) Entry {
	return Entry{Date: on, Asset: asset, Amount: D(amount), Rate: rate}
}

// IsAsset reports whether the entry holds a strictly positive amount.
func (e Entry) IsAsset() bool { return e.Amount.IsPositive() }

// IsLiability reports whether the entry holds a strictly negative amount.
func (e Entry) IsLiability() bool { return e.Amount.IsNegative() }

// Equal reports whether e and f hold the same values.
func (e Entry) Equal(f Entry) bool {
	return e.Date == f.Date && e.Asset == f.Asset && e.Amount.Equal(f.Amount) && e.Rate.Equal(f.Rate)
}

// Key identifies the entry within a ledger: at most one balance per asset
// and per date is expected, although the engine does not enforce it.
func (e Entry) Key() string { return e.Date + "/" + e.Asset }

// Validate checks the entry before it reaches the ledger. The engine itself
// accepts anything; validation belongs to the layer that writes the ledger.
//
// The date must be in the canonical "YYYY-MM-DD" form: the engine orders
// dates as strings, so "2024-9-1" would sort after "2024-10-01".
func (e Entry) Validate() error {
	d, err := date.Parse(e.Date)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEntry, err)
	}
	if d.String() != e.Date {
		return fmt.Errorf("%w: date %q is not written %q", ErrInvalidEntry, e.Date, d.String())
	}
	if strings.TrimSpace(e.Asset) == "" {
		return fmt.Errorf("%w: empty investment name on %s", ErrInvalidEntry, e.Date)
	}
	return nil
}

// CanonicalDate rewrites a date typed by a user, such as "2024-9-1", in the
// "YYYY-MM-DD" form the ledger stores.
func CanonicalDate(raw string) (string, error) {
	d, err := date.Parse(strings.TrimSpace(raw))
	if err != nil {
		return raw, fmt.Errorf("%w: %w", ErrInvalidEntry, err)
	}
	return d.String(), nil
}

// canonical returns e with its date rewritten by CanonicalDate, or e
// unchanged when the date does not parse.
func (e Entry) canonical() Entry {
	if on, err := CanonicalDate(e.Date); err == nil {
		e.Date = on
	}
	return e
}

// ledgerEntry is the ledger form of an Entry; its field order is the
// order written to the ledger file.
type ledgerEntry struct {
	Date       string          `json:"date"`
	Investment string          `json:"investment"`
	Amount     decimal.Decimal `json:"amount"`
	Rate       float64         `json:"rate"`
}

// MarshalJSON writes the entry in the ledger format
// {"date":"2024-01-01","investment":"ETF","amount":100,"rate":5}.
func (e Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal(ledgerEntry{Date: e.Date, Investment: e.Asset, Amount: e.Amount, Rate: float64(e.Rate)})
}

// UnmarshalJSON reads the ledger format written by MarshalJSON.
func (e *Entry) UnmarshalJSON(b []byte) error {
	var v ledgerEntry
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*e = Entry{Date: v.Date, Asset: v.Investment, Amount: v.Amount, Rate: Percent(v.Rate)}
	return nil
}

// SortEntries sorts entries by date, then by asset name. Entries with the
// same date and asset keep their relative order.
func SortEntries(entries []Entry) {
	slices.SortStableFunc(entries, func(a, b Entry) int {
		if c := strings.Compare(a.Date, b.Date); c != 0 {
			return c
		}
		return strings.Compare(a.Asset, b.Asset)
	})
}

// Upsert returns a copy of entries where e replaces every entry with the
// same date and asset, or is appended when there is none. Last write wins.
func Upsert(entries []Entry, e Entry) []Entry {
	out := make([]Entry, 0, len(entries)+1)
	replaced := false
	for _, x := range entries {
		if x.Key() == e.Key() {
			if !replaced {
				out = append(out, e)
				replaced = true
			}
			continue
		}
		out = append(out, x)
	}
	if !replaced {
		out = append(out, e)
	}
	return out
}

// Remove returns a copy of entries without those matching date and asset,
// and the number of entries removed.
func Remove(entries []Entry, on, asset string) ([]Entry, int) {
	out := make([]Entry, 0, len(entries))
	for _, x := range entries {
		if x.Date == on && x.Asset == asset {
			continue
		}
		out = append(out, x)
	}
	return out, len(entries) - len(out)
}
