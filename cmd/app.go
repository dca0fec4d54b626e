// Package cmd implements the nw command line: it records balances in the
// ledger and reports on them.
package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/PaesslerAG/jsonpath"
	"github.com/charmbracelet/glamour"
	"github.com/etnz/networth"
	"github.com/etnz/networth/store"
	"github.com/google/subcommands"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	ledgerFile = new(string)
	currency   = new(string)
	Verbose    = new(bool)
	serverAddr = new(string)
)

// stdout is where commands print their result.
var stdout io.Writer = os.Stdout

// RegisterFlags defines the global flags on fs, defaulting to cfg.
func RegisterFlags(fs *flag.FlagSet, cfg Config) {
	fs.StringVar(ledgerFile, "ledger", cfg.LedgerFile, "Path to the ledger: a .jsonl file or a .db SQLite database")
	fs.StringVar(currency, "currency", cfg.Currency, "Currency used to display amounts")
	fs.BoolVar(Verbose, "v", cfg.Verbose, "Log details to stderr")
	*serverAddr = cfg.Addr
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(c.HelpCommand(), "")
	c.Register(c.FlagsCommand(), "")
	c.Register(&topicCmd{}, "")

	c.Register(&addCmd{}, "ledger")
	c.Register(&removeCmd{}, "ledger")
	c.Register(&importCmd{}, "ledger")
	c.Register(&exportCmd{}, "ledger")
	c.Register(&fmtCmd{}, "ledger")

	c.Register(&snapshotCmd{}, "reports")
	c.Register(&insightCmd{}, "reports")
	c.Register(&metricsCmd{}, "reports")
	c.Register(&seriesCmd{}, "reports")
	c.Register(&chartCmd{}, "reports")
	c.Register(&projectCmd{}, "reports")

	c.Register(&serveCmd{}, "services")
	c.Register(&adviseCmd{}, "services")
}

// Commands returns a fresh instance of every command, for completion.
func Commands() []subcommands.Command {
	return []subcommands.Command{
		&topicCmd{},
		&addCmd{}, &removeCmd{}, &importCmd{}, &exportCmd{}, &fmtCmd{},
		&snapshotCmd{}, &insightCmd{}, &metricsCmd{}, &seriesCmd{}, &chartCmd{}, &projectCmd{},
		&serveCmd{}, &adviseCmd{},
	}
}

// OpenStore opens the ledger named by the global flag.
func OpenStore() (store.Store, error) {
	if *Verbose {
		log.Printf("opening ledger %q", *ledgerFile)
	}
	return store.Open(*ledgerFile)
}

// LoadSeries loads the ledger and builds one snapshot per date.
func LoadSeries(ctx context.Context) (networth.Series, error) {
	st, err := OpenStore()
	if err != nil {
		return nil, err
	}
	defer st.Close()
	entries, err := st.Load(ctx)
	if err != nil {
		return nil, err
	}
	if *Verbose {
		log.Printf("loaded %d entries", len(entries))
	}
	return networth.BuildAllSnapshots(entries), nil
}

// printMarkdown renders markdown for the terminal, or prints it raw when
// stdout is not one.
func printMarkdown(md string) {
	if !isTerminal() {
		fmt.Fprint(stdout, md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			fmt.Fprint(stdout, out)
			return
		}
	}
	if *Verbose {
		log.Printf("cannot render markdown: %v", err)
	}
	fmt.Fprint(stdout, md)
}

func isTerminal() bool {
	f, ok := stdout.(*os.File)
	if !ok {
		return false
	}
	fi, err := f.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}

// jsonFlags are the flags shared by commands able to print JSON.
type jsonFlags struct {
	json  bool
	query string
}

func (j *jsonFlags) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&j.json, "json", false, "Print JSON instead of markdown")
	f.StringVar(&j.query, "q", "", "JSONPath query applied to the JSON output (implies -json), e.g. '$.netWorth'")
}

func (j *jsonFlags) enabled() bool { return j.json || j.query != "" }

// print writes v as indented JSON, filtered by the query if any.
func (j *jsonFlags) print(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	// Numbers are kept as written: amounts are exact decimals.
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return err
	}
	if j.query != "" {
		if out, err = jsonpath.Get(j.query, out); err != nil {
			return fmt.Errorf("invalid query %q: %w", j.query, err)
		}
	}
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// fail reports err and returns the failure status.
func fail(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	return subcommands.ExitFailure
}
