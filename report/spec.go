// Package report renders the merged read-stats table and its aggregations
// into a fixed sequence of chart artifacts plus TSV exports of the summary
// tables. The sequence is described declaratively by DefaultCharts; the
// renderer walks that list instead of hard-coding per-sample plot loops.
package report

import (
	"mapeval/aggregate"
	"mapeval/readstats"
)

// Kind selects which dataset view and chart type a ChartSpec renders.
type Kind int

const (
	// KindAlignRate renders the alignment-rate summary as stacked bars,
	// one chart per sample, one bar per mapper.
	KindAlignRate Kind = iota
	// KindReadLengthHist renders read counts per 4kb length window as
	// grouped bars, one chart per sample, one series per mapper.
	KindReadLengthHist
	// KindAliPercBox renders the aligned-fraction distribution of aligned
	// reads as one box per mapper, one chart per sample.
	KindAliPercBox
	// KindBinnedRateBox renders one error-rate field's length-binned
	// five-number summaries as box plots, one chart per sample, one series
	// per mapper.
	KindBinnedRateBox
)

// ChartSpec describes one artifact of the report.
type ChartSpec struct {
	Title string
	Kind  Kind
	// Field is the error-rate column to plot; KindBinnedRateBox only.
	Field readstats.RateField
}

// DefaultCharts is the fixed artifact sequence of the comparison report.
var DefaultCharts = []ChartSpec{
	{Title: "Alignment rate", Kind: KindAlignRate},
	{Title: "Read length distribution", Kind: KindReadLengthHist},
	{Title: "Aligned fraction of read", Kind: KindAliPercBox},
	{Title: "Mismatch rate vs. read length", Kind: KindBinnedRateBox, Field: readstats.FieldMmRate},
	{Title: "Short insertion rate vs. read length", Kind: KindBinnedRateBox, Field: readstats.FieldInsRateS},
	{Title: "Long insertion rate vs. read length", Kind: KindBinnedRateBox, Field: readstats.FieldInsRateL},
	{Title: "Deletion rate vs. read length", Kind: KindBinnedRateBox, Field: readstats.FieldDelRate},
}

// Report bundles the immutable inputs of one report run: the merged table
// and the two aggregations derived from it.
type Report struct {
	Opts   readstats.Opts
	Table  readstats.Table
	Rates  []aggregate.AlignRate
	Binned []aggregate.BinnedRate
}

// New aggregates the merged table and returns a renderable report.
func New(opts readstats.Opts, t readstats.Table) *Report {
	return &Report{
		Opts:   opts,
		Table:  t,
		Rates:  aggregate.AlignRates(t, opts),
		Binned: aggregate.BinnedRates(t, opts),
	}
}
