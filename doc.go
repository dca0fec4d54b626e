// Package networth is the analytics engine of a personal investment ledger.
//
// A user records, typically once a month, the balance of every named asset
// (and liability, as a negative amount) together with the expected annual
// growth rate of that asset. From that flat list of dated entries the
// package derives:
//   - Snapshots: the aggregated state of all entries sharing one date, with
//     total assets, total liabilities and net worth.
//   - Insights: a comparison of a snapshot with its predecessor, naming the
//     top and bottom performers and the allocation of holdings.
//   - Metrics: whole-history statistics such as total return, compound
//     monthly growth, volatility and maximum drawdown.
//   - Series: chart-ready points selected by a (kind, view, mode) triple.
//   - Projections: the expected future balances implied by the stated rates.
//
// Every calculation is a pure function of its inputs. Nothing is cached and
// nothing is mutated, so results may be memoized by the caller. Numeric edge
// cases (zero baselines, missing prior balances, short histories) never fail:
// they degrade to a defined value, usually 0.
//
// Money arithmetic uses fixed-precision decimals and only converts to
// float64 at the presentation boundary.
//
// The package also carries the ledger codecs (JSONL and CSV) used by the
// `nw` command-line tool.
package networth
