package cmd

import (
	"context"
	"flag"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/etnz/networth/agent"
	"github.com/etnz/networth/docs"
	"github.com/etnz/networth/server"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

type serveCmd struct {
	addr string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the ledger and its reports over HTTP" }
func (*serveCmd) Usage() string {
	return `nw serve [-addr <host:port>]

  Serves a JSON API over the ledger: entries, snapshots, insight, metrics,
  series, chart images, projection, rates and a markdown report.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", "", "Address to listen on (defaults to "+EnvAddr+" or localhost:8080)")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	st, err := OpenStore()
	if err != nil {
		return fail("Error opening ledger: %v", err)
	}
	defer st.Close()

	cfg := server.DefaultConfig()
	cfg.Currency = *currency
	if *serverAddr != "" {
		cfg.Addr = *serverAddr
	}
	if c.addr != "" {
		cfg.Addr = c.addr
	}
	srv := server.New(cfg, st)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	errc := make(chan error, 1)
	go func() { errc <- srv.Start() }()

	select {
	case err := <-errc:
		if err != nil {
			return fail("Server failed: %v", err)
		}
	case <-ctx.Done():
		if err := srv.Shutdown(context.Background()); err != nil {
			return fail("Server shutdown failed: %v", err)
		}
	}
	return subcommands.ExitSuccess
}

// adviseCmd is the subcommand for the AI assistant.
type adviseCmd struct{}

func (*adviseCmd) Name() string { return "advise" }
func (*adviseCmd) Synopsis() string {
	return "start an interactive session with the AI assistant"
}
func (*adviseCmd) Usage() string {
	return `nw advise [<question>...]

  Starts an interactive session with an AI assistant reading the ledger.
  The Gemini API key is read from GEMINI_API_KEY, possibly set in a .env file.
`
}

func (*adviseCmd) SetFlags(_ *flag.FlagSet) {}

func (c *adviseCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var prompts []string
	if f.NArg() > 0 {
		prompts = append(prompts, strings.Join(f.Args(), " "))
	}

	st, err := OpenStore()
	if err != nil {
		return fail("Error opening ledger: %v", err)
	}
	defer st.Close()

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return fail("Error initializing Gemini's client: %v", err)
	}

	a := agent.New(stdout, os.Stdin, agent.NewTrader(), agent.NewAnalyst(st, *currency))
	a.Print = func(_ io.Writer, md string) { printMarkdown(md) }
	if err := a.Run(ctx, client, prompts...); err != nil {
		return fail("Agent failed: %v", err)
	}
	return subcommands.ExitSuccess
}

func topicNames() []string {
	topics, _ := docs.GetAllTopics()
	return topics
}

type topicCmd struct{}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "show documentation" }
func (*topicCmd) Usage() string {
	return `nw topic [<topic>...]

  Shows the documentation of the given topics, '*' for all of them. Without
  a topic, lists the available ones.
`
}

func (*topicCmd) SetFlags(f *flag.FlagSet) {}

func (*topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		printMarkdown(docs.Readme())
		return subcommands.ExitSuccess
	}
	doc, err := docs.GetTopics(f.Args()...)
	if err != nil {
		return fail("Error reading doc: %v", err)
	}
	printMarkdown(doc)
	return subcommands.ExitSuccess
}
