package renderer

import (
	"bytes"
	"fmt"
	"slices"

	"github.com/etnz/networth"
	md "github.com/nao1215/markdown"
)

// SeriesMarkdown renders chart points as a table, one column per asset.
func SeriesMarkdown(points []networth.ChartPoint, sel networth.Selector, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Series: %s", sel))
	if len(points) == 0 {
		doc.PlainText("The ledger is empty.")
		return doc.String()
	}

	format := func(v float64) string { return networth.FormatFloatMoney(v, currency) }
	if sel.Percent() {
		format = pct
	}

	assets := networth.ChartAssets(points)
	table := md.TableSet{
		Alignment: rightAligned(len(assets) + 2),
		Header:    append([]string{"Date", "Total"}, escapeAll(assets)...),
	}
	for _, p := range points {
		row := []string{p.Date, format(p.Total)}
		for _, a := range assets {
			v, ok := p.PerAsset[a]
			if !ok {
				row = append(row, "")
				continue
			}
			row = append(row, format(v))
		}
		table.Rows = append(table.Rows, row)
	}
	doc.Table(table)
	return doc.String()
}

// ProjectionMarkdown renders projected balances, one column per asset.
func ProjectionMarkdown(points []networth.Projection, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	if len(points) == 0 {
		doc.H1("Projection")
		doc.PlainText("The ledger is empty.")
		return doc.String()
	}
	doc.H1(fmt.Sprintf("Projection from %s over %d months", points[0].Date, len(points)-1))

	var assets []string
	for a := range points[0].PerAsset {
		assets = append(assets, a)
	}
	slices.Sort(assets)

	table := md.TableSet{
		Alignment: rightAligned(len(assets) + 2),
		Header:    append([]string{"Date", "Net Worth"}, escapeAll(assets)...),
	}
	for _, p := range points {
		row := []string{p.Date, networth.FormatMoney(p.NetWorth, currency)}
		for _, a := range assets {
			row = append(row, networth.FormatMoney(p.PerAsset[a], currency))
		}
		table.Rows = append(table.Rows, row)
	}
	doc.Table(table)
	return doc.String()
}

func escapeAll(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = escape(n)
	}
	return out
}
