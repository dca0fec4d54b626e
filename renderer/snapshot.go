package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/networth"
	md "github.com/nao1215/markdown"
)

// SnapshotMarkdown renders the totals and balances of a snapshot.
func SnapshotMarkdown(s networth.Snapshot, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Net Worth on %s", s.Date))
	doc.Table(md.TableSet{
		Alignment: rightAligned(2),
		Header: []string{
			md.Bold("Net Worth"),
			md.Bold(networth.FormatMoney(s.NetWorth, currency)),
		},
		Rows: [][]string{
			{"Total Assets", networth.FormatMoney(s.TotalAssets, currency)},
			{"Total Liabilities", networth.FormatMoney(s.TotalLiabilities, currency)},
		},
	})

	if len(s.Entries) > 0 {
		doc.H2("Balances")
		alloc := s.Allocation()
		table := md.TableSet{
			Alignment: rightAligned(4),
			Header:    []string{"Investment", "Balance", "Rate", "Allocation"},
		}
		for _, asset := range s.Assets() {
			share := ""
			if v, ok := alloc[asset]; ok {
				share = pct(v)
			}
			table.Rows = append(table.Rows, []string{
				escape(asset),
				networth.FormatMoney(s.Balance(asset), currency),
				s.Rate(asset).String(),
				share,
			})
		}
		doc.Table(table)
	}
	return doc.String()
}

// HistoryMarkdown renders one line per snapshot of the series.
func HistoryMarkdown(series networth.Series, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Net Worth History")
	if len(series) == 0 {
		doc.PlainText("The ledger is empty.")
		return doc.String()
	}
	table := md.TableSet{
		Alignment: rightAligned(5),
		Header:    []string{"Date", "Assets", "Liabilities", "Net Worth", "Change"},
	}
	for i, s := range series {
		change := ""
		if i > 0 {
			change = networth.SignedMoney(s.NetWorth.Sub(series[i-1].NetWorth), currency)
		}
		table.Rows = append(table.Rows, []string{
			s.Date,
			networth.FormatMoney(s.TotalAssets, currency),
			networth.FormatMoney(s.TotalLiabilities, currency),
			networth.FormatMoney(s.NetWorth, currency),
			change,
		})
	}
	doc.Table(table)
	return doc.String()
}
