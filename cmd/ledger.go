package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/networth"
	"github.com/etnz/networth/date"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type addCmd struct {
	date string
	rate float64
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record the balance of an investment" }
func (*addCmd) Usage() string {
	return `nw add [-d <date>] [-rate <percent>] <investment> <amount>

  Records the balance of an investment on a date, replacing any balance
  already recorded for that investment on that date. A negative amount is a
  liability.

Usage Examples:
$ nw add -d 2024-01-31 -rate 7 "ETF World" 12500.40
$ nw add -rate 3.5 Mortgage -150000
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Date of the balance (defaults to today)")
	f.Float64Var(&c.rate, "rate", 0, "Expected annual growth of the investment, in percent")
}

func (c *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "add expects an investment name and an amount")
		f.Usage()
		return subcommands.ExitUsageError
	}
	on, err := ledgerDate(c.date)
	if err != nil {
		return fail("%v", err)
	}
	amount, err := decimal.NewFromString(f.Arg(1))
	if err != nil {
		return fail("invalid amount %q: %v", f.Arg(1), err)
	}
	e := networth.Entry{Date: on, Asset: f.Arg(0), Amount: amount, Rate: networth.Percent(c.rate)}

	st, err := OpenStore()
	if err != nil {
		return fail("Error opening ledger: %v", err)
	}
	defer st.Close()
	if err := st.Upsert(ctx, e); err != nil {
		return fail("Error recording %s: %v", e.Key(), err)
	}
	fmt.Fprintf(os.Stderr, "Recorded %s: %s\n", e.Key(), networth.FormatMoney(amount, *currency))
	return subcommands.ExitSuccess
}

type removeCmd struct {
	date string
}

func (*removeCmd) Name() string     { return "remove" }
func (*removeCmd) Synopsis() string { return "remove the balance of an investment" }
func (*removeCmd) Usage() string {
	return `nw remove [-d <date>] <investment>

  Removes the balances of an investment recorded on a date.
`
}

func (c *removeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Date of the balance (defaults to today)")
}

func (c *removeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "remove expects an investment name")
		f.Usage()
		return subcommands.ExitUsageError
	}
	on, err := ledgerDate(c.date)
	if err != nil {
		return fail("%v", err)
	}
	st, err := OpenStore()
	if err != nil {
		return fail("Error opening ledger: %v", err)
	}
	defer st.Close()
	n, err := st.Delete(ctx, on, f.Arg(0))
	if err != nil {
		return fail("Error removing %s on %s: %v", f.Arg(0), on, err)
	}
	if n == 0 {
		return fail("no balance of %q on %s", f.Arg(0), on)
	}
	fmt.Fprintf(os.Stderr, "Removed %d entries\n", n)
	return subcommands.ExitSuccess
}

type importCmd struct {
	replace bool
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import balances from a CSV file" }
func (*importCmd) Usage() string {
	return `nw import [-replace] <file.csv>

  Imports balances from a CSV file with a header naming the columns date,
  investment, amount and optionally rate. Imported balances replace those
  recorded for the same investment and date. With -replace the whole ledger
  is replaced.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.replace, "replace", false, "Replace the whole ledger instead of merging")
}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "import expects a CSV file")
		f.Usage()
		return subcommands.ExitUsageError
	}
	r, err := os.Open(f.Arg(0))
	if err != nil {
		return fail("Error opening %q: %v", f.Arg(0), err)
	}
	defer r.Close()
	imported, err := networth.ImportCSV(r)
	if err != nil {
		return fail("Error importing %q: %v", f.Arg(0), err)
	}

	st, err := OpenStore()
	if err != nil {
		return fail("Error opening ledger: %v", err)
	}
	defer st.Close()
	entries := []networth.Entry{}
	if !c.replace {
		if entries, err = st.Load(ctx); err != nil {
			return fail("Error loading ledger: %v", err)
		}
	}
	for _, e := range imported {
		entries = networth.Upsert(entries, e)
	}
	if err := st.Save(ctx, entries); err != nil {
		return fail("Error saving ledger: %v", err)
	}
	fmt.Fprintf(os.Stderr, "Imported %d entries\n", len(imported))
	return subcommands.ExitSuccess
}

type exportCmd struct {
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the ledger as CSV" }
func (*exportCmd) Usage() string {
	return `nw export [-o <file.csv>]

  Writes the ledger as CSV, sorted by date then investment.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output file (defaults to stdout)")
}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	st, err := OpenStore()
	if err != nil {
		return fail("Error opening ledger: %v", err)
	}
	defer st.Close()
	entries, err := st.Load(ctx)
	if err != nil {
		return fail("Error loading ledger: %v", err)
	}

	w := stdout
	if c.output != "" {
		out, err := os.Create(c.output)
		if err != nil {
			return fail("Error creating %q: %v", c.output, err)
		}
		defer out.Close()
		w = out
	}
	if err := networth.ExportCSV(w, entries); err != nil {
		return fail("Error exporting ledger: %v", err)
	}
	return subcommands.ExitSuccess
}

type fmtCmd struct{}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and formats the ledger into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `nw fmt

  Validates every entry of the ledger, sorts them by date then investment,
  and writes them back in a canonical form.
`
}

func (*fmtCmd) SetFlags(f *flag.FlagSet) {}

func (*fmtCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	st, err := OpenStore()
	if err != nil {
		return fail("Error opening ledger: %v", err)
	}
	defer st.Close()
	entries, err := st.Load(ctx)
	if err != nil {
		return fail("Error loading ledger: %v", err)
	}
	if err := st.Save(ctx, entries); err != nil {
		return fail("Error formatting ledger: %v", err)
	}
	fmt.Fprintf(os.Stderr, "Ledger %q has been formatted.\n", *ledgerFile)
	return subcommands.ExitSuccess
}

// ledgerDate returns the date given with -d in its canonical form, or today.
func ledgerDate(raw string) (string, error) {
	if raw == "" {
		return date.Today().String(), nil
	}
	return networth.CanonicalDate(raw)
}
