package agent

import (
	"context"
	"fmt"

	"github.com/etnz/networth"
	"github.com/etnz/networth/docs"
	"github.com/etnz/networth/renderer"
	"github.com/etnz/networth/store"
	"google.golang.org/genai"
)

// Tools returns the functions reading the ledger in st. They all answer in
// markdown.
func Tools(st store.Store, currency string) []Function {
	t := tools{store: st, currency: currency}
	return []Function{
		&Func{Decl: declare("Snapshot", "The balances and totals of the ledger on a date.", dateParam), Func: t.snapshot},
		&Func{Decl: declare("History", "The net worth and totals of every snapshot of the ledger."), Func: t.history},
		&Func{Decl: declare("Insight", "Top and under performers, period change and allocation of a snapshot against the previous one, and how actual returns compare with stated rates.", dateParam), Func: t.insight},
		&Func{Decl: declare("Metrics", "Performance metrics over the whole history: total return, growth rate, volatility, drawdown."), Func: t.metrics},
		&Func{Decl: declare("Series", "A chart series of the history.", seriesParams...), Func: t.series},
		&Func{Decl: declare("Projection", "The latest snapshot projected forward with the stated rates.", monthsParam), Func: t.projection},
		&Func{Decl: declare("Topic", "The user documentation of a topic.", topicParam), Func: t.topic},
	}
}

type param struct {
	name        string
	description string
	typ         genai.Type
}

var (
	dateParam    = param{"date", "The snapshot date YYYY-MM-DD. The latest snapshot when omitted.", genai.TypeString}
	monthsParam  = param{"months", "The number of months to project, 12 by default.", genai.TypeInteger}
	topicParam   = param{"topic", "The topic name: ledger, dates, snapshots, insight, metrics, series or projection.", genai.TypeString}
	seriesParams = []param{
		{"kind", "returns (default), value or allocation.", genai.TypeString},
		{"view", "cumulative (default) or period.", genai.TypeString},
		{"mode", "percentage (default) or absolute.", genai.TypeString},
		{"granularity", "daily, weekly, monthly (default), quarterly or yearly.", genai.TypeString},
	}
)

func declare(name, description string, params ...param) *genai.FunctionDeclaration {
	d := &genai.FunctionDeclaration{
		Name:        name,
		Description: description,
		Response: &genai.Schema{
			Type:        genai.TypeString,
			Description: "A markdown document.",
		},
	}
	if len(params) > 0 {
		d.Parameters = &genai.Schema{Type: genai.TypeObject, Properties: map[string]*genai.Schema{}}
		for _, p := range params {
			d.Parameters.Properties[p.name] = &genai.Schema{Type: p.typ, Description: p.description}
		}
	}
	return d
}

type tools struct {
	store    store.Store
	currency string
}

func (t tools) load(ctx context.Context) (networth.Series, error) {
	entries, err := t.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not load ledger: %w", err)
	}
	return networth.BuildAllSnapshots(entries), nil
}

// at returns the index of the snapshot selected by the "date" argument.
func at(s networth.Series, args map[string]any) (int, error) {
	on, err := stringArg(args, "date")
	if err != nil {
		return 0, err
	}
	if on == "" {
		if len(s) == 0 {
			return 0, fmt.Errorf("the ledger is empty")
		}
		return len(s) - 1, nil
	}
	if _, i := s.At(on); i >= 0 {
		return i, nil
	}
	return 0, fmt.Errorf("no snapshot on %q, snapshot dates are %v", on, s.Dates())
}

func stringArg(args map[string]any, name string) (string, error) {
	v, ok := args[name]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("argument %q is not a string as expected but %T", name, v)
	}
	return s, nil
}

func (t tools) snapshot(ctx context.Context, args map[string]any) (string, error) {
	s, err := t.load(ctx)
	if err != nil {
		return "", err
	}
	i, err := at(s, args)
	if err != nil {
		return "", err
	}
	return renderer.SnapshotMarkdown(s[i], t.currency), nil
}

func (t tools) history(ctx context.Context, args map[string]any) (string, error) {
	s, err := t.load(ctx)
	if err != nil {
		return "", err
	}
	return renderer.HistoryMarkdown(s, t.currency), nil
}

func (t tools) insight(ctx context.Context, args map[string]any) (string, error) {
	s, err := t.load(ctx)
	if err != nil {
		return "", err
	}
	i, err := at(s, args)
	if err != nil {
		return "", err
	}
	prev := s.Previous(i)
	return renderer.InsightMarkdown(networth.ComputeInsight(s[i], prev)) + "\n" +
		renderer.RatesMarkdown(networth.CheckRates(s[i], prev)), nil
}

func (t tools) metrics(ctx context.Context, args map[string]any) (string, error) {
	s, err := t.load(ctx)
	if err != nil {
		return "", err
	}
	return renderer.MetricsMarkdown(networth.ComputeMetrics(s), t.currency), nil
}

func (t tools) series(ctx context.Context, args map[string]any) (string, error) {
	var fields [4]string
	for i, p := range seriesParams {
		v, err := stringArg(args, p.name)
		if err != nil {
			return "", err
		}
		fields[i] = v
	}
	sel, err := networth.ParseSelector(fields[0], fields[1], fields[2], fields[3])
	if err != nil {
		return "", err
	}
	s, err := t.load(ctx)
	if err != nil {
		return "", err
	}
	return renderer.SeriesMarkdown(networth.Transform(s, sel), sel, t.currency), nil
}

func (t tools) projection(ctx context.Context, args map[string]any) (string, error) {
	months := 12
	switch v := args["months"].(type) {
	case nil:
	case float64:
		months = int(v)
	case int:
		months = v
	default:
		return "", fmt.Errorf("argument \"months\" is not a number as expected but %T", v)
	}
	s, err := t.load(ctx)
	if err != nil {
		return "", err
	}
	last, ok := s.Last()
	if !ok {
		return "", fmt.Errorf("the ledger is empty")
	}
	return renderer.ProjectionMarkdown(networth.Project(last, months), t.currency), nil
}

func (t tools) topic(ctx context.Context, args map[string]any) (string, error) {
	name, err := stringArg(args, "topic")
	if err != nil {
		return "", err
	}
	if name == "" {
		return docs.Readme(), nil
	}
	return docs.GetTopic(name)
}
