package aggregate

import (
	"sort"

	"mapeval/readstats"
)

// binWidthBases is the read-length window used to group aligned reads for
// box-plot summaries.
const binWidthBases = 4000

// LengthBin maps a read length to its 4kb window, labeled by the window's
// lower bound in kb: reads of 0..3999 bases fall in bin 0, 4000..7999 in
// bin 4, and so on.
func LengthBin(readLength int) int {
	return readLength / binWidthBases * 4
}

// FiveNum is an outlier-suppressed box-plot summary. Q1, Median and Q3 are
// linearly interpolated quantiles of all N values; Min and Max are the
// whisker extents, i.e. the most extreme values within 1.5×IQR of the box.
// Values beyond the fences are suppressed from the extents but still count
// toward N and the quantiles.
type FiveNum struct {
	Min    float64
	Q1     float64
	Median float64
	Q3     float64
	Max    float64
	N      int
}

// Summarize computes the five-number summary of values. values must be
// non-empty; it is not modified.
func Summarize(values []float64) FiveNum {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	s := FiveNum{
		Q1:     quantile(sorted, 0.25),
		Median: quantile(sorted, 0.5),
		Q3:     quantile(sorted, 0.75),
		N:      len(sorted),
	}
	iqr := s.Q3 - s.Q1
	loFence := s.Q1 - 1.5*iqr
	hiFence := s.Q3 + 1.5*iqr
	// The fences always bracket [Q1, Q3], so both scans terminate on a
	// real value.
	i := 0
	for sorted[i] < loFence {
		i++
	}
	s.Min = sorted[i]
	j := len(sorted) - 1
	for sorted[j] > hiFence {
		j--
	}
	s.Max = sorted[j]
	return s
}

// quantile returns the p-quantile of a sorted non-empty slice, linearly
// interpolating between order statistics (R's default, type 7).
func quantile(sorted []float64, p float64) float64 {
	h := p * float64(len(sorted)-1)
	lo := int(h)
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := h - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// BinnedRate is the five-number summary of one error-rate field over the
// aligned reads of one (sample, mapper, length-bin) group. Groups with no
// non-absent value for a field produce no BinnedRate at all; an absent
// cell is omitted, never reported as zero.
type BinnedRate struct {
	Sample    string
	Mapper    string
	LengthBin int
	Field     readstats.RateField
	Summary   FiveNum
}

// BinnedRates restricts the merged table to aligned reads, bins them by
// LengthBin, and summarizes each error-rate field of each (sample, mapper,
// bin) group independently, skipping absent values. Output order: samples ×
// mappers × ascending bin × field declaration order.
func BinnedRates(t readstats.Table, opts readstats.Opts) []BinnedRate {
	type key struct {
		sample, mapper string
		bin            int
		field          readstats.RateField
	}
	groups := make(map[key][]float64)
	binSet := make(map[int]bool)
	for i := range t {
		r := &t[i]
		if !r.Aligned() {
			continue
		}
		bin := LengthBin(r.ReadLength)
		binSet[bin] = true
		for f := readstats.RateField(0); f < readstats.NumRateFields; f++ {
			if v := r.Rate(f); v.Valid {
				k := key{r.Sample, r.Mapper, bin, f}
				groups[k] = append(groups[k], v.Value)
			}
		}
	}
	bins := make([]int, 0, len(binSet))
	for bin := range binSet {
		bins = append(bins, bin)
	}
	sort.Ints(bins)

	var out []BinnedRate
	for _, sample := range opts.Samples {
		for _, mapper := range opts.Mappers {
			for _, bin := range bins {
				for f := readstats.RateField(0); f < readstats.NumRateFields; f++ {
					values := groups[key{sample, mapper, bin, f}]
					if len(values) == 0 {
						continue
					}
					out = append(out, BinnedRate{
						Sample:    sample,
						Mapper:    mapper,
						LengthBin: bin,
						Field:     f,
						Summary:   Summarize(values),
					})
				}
			}
		}
	}
	return out
}
