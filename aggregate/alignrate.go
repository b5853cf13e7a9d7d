// Package aggregate computes the grouped summaries of a merged read-stats
// table: per-(sample, mapper) alignment-rate fractions, and length-binned
// five-number summaries of the per-read error rates. Both aggregations are
// pure functions of their inputs; the merged table is never mutated.
package aggregate

import "mapeval/readstats"

// AlignRate is one (sample, mapper, status) cell of the alignment-rate
// summary. Fraction is the cell's share of its (sample, mapper) total, so
// the aligned and unaligned fractions of a pair sum to 1 whenever the pair
// has at least one read.
type AlignRate struct {
	Sample   string
	Mapper   string
	Status   string
	Count    int
	Fraction float64
}

// AlignRates groups the merged table by (sample, mapper, status). Both
// statuses are emitted even when one is empty, so stacked-bar output stays
// stable; a pair with no rows at all yields two zero cells. Output order is
// samples × mappers × {unaligned, aligned} in the opts enumeration order.
func AlignRates(t readstats.Table, opts readstats.Opts) []AlignRate {
	type key struct {
		sample, mapper string
		aligned        bool
	}
	counts := make(map[key]int)
	for i := range t {
		r := &t[i]
		counts[key{r.Sample, r.Mapper, r.Aligned()}]++
	}

	out := make([]AlignRate, 0, 2*len(opts.Samples)*len(opts.Mappers))
	for _, sample := range opts.Samples {
		for _, mapper := range opts.Mappers {
			nUnaligned := counts[key{sample, mapper, false}]
			nAligned := counts[key{sample, mapper, true}]
			total := nUnaligned + nAligned
			frac := func(n int) float64 {
				if total == 0 {
					return 0
				}
				return float64(n) / float64(total)
			}
			out = append(out,
				AlignRate{sample, mapper, readstats.StatusUnaligned, nUnaligned, frac(nUnaligned)},
				AlignRate{sample, mapper, readstats.StatusAligned, nAligned, frac(nAligned)})
		}
	}
	return out
}
