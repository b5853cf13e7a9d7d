package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"mapeval/aggregate"
	"mapeval/readstats"
)

// WriteHTML renders every chart of DefaultCharts, faceted by sample, onto
// one HTML page.
func (rep *Report) WriteHTML(w io.Writer) error {
	page := components.NewPage()
	for _, spec := range DefaultCharts {
		page.AddCharts(rep.render(spec)...)
	}
	return page.Render(w)
}

func (rep *Report) render(spec ChartSpec) []components.Charter {
	out := make([]components.Charter, 0, len(rep.Opts.Samples))
	for _, sample := range rep.Opts.Samples {
		switch spec.Kind {
		case KindAlignRate:
			out = append(out, rep.alignRateChart(spec, sample))
		case KindReadLengthHist:
			out = append(out, rep.readLengthChart(spec, sample))
		case KindAliPercBox:
			out = append(out, rep.aliPercChart(spec, sample))
		case KindBinnedRateBox:
			out = append(out, rep.binnedRateChart(spec, sample))
		}
	}
	return out
}

func newChartOptions(spec ChartSpec, sample string) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{Theme: types.ThemeWesteros}),
		charts.WithTitleOpts(opts.Title{Title: spec.Title, Subtitle: "sample " + sample}),
	}
}

func (rep *Report) alignRateChart(spec ChartSpec, sample string) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(newChartOptions(spec, sample)...)

	// rep.Rates is ordered samples × mappers × statuses, so collecting in
	// order keeps each series aligned with the mapper axis.
	aligned := make([]opts.BarData, 0, len(rep.Opts.Mappers))
	unaligned := make([]opts.BarData, 0, len(rep.Opts.Mappers))
	for _, c := range rep.Rates {
		if c.Sample != sample {
			continue
		}
		d := opts.BarData{Value: c.Fraction}
		if c.Status == readstats.StatusAligned {
			aligned = append(aligned, d)
		} else {
			unaligned = append(unaligned, d)
		}
	}
	bar.SetXAxis(rep.Opts.Mappers).
		AddSeries(readstats.StatusAligned, aligned, charts.WithBarChartOpts(opts.BarChart{Stack: "total"})).
		AddSeries(readstats.StatusUnaligned, unaligned, charts.WithBarChartOpts(opts.BarChart{Stack: "total"}))
	return bar
}

func (rep *Report) readLengthChart(spec ChartSpec, sample string) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(newChartOptions(spec, sample)...)

	type key struct {
		mapper string
		bin    int
	}
	counts := make(map[key]int)
	binSet := make(map[int]bool)
	for i := range rep.Table {
		r := &rep.Table[i]
		if r.Sample != sample {
			continue
		}
		bin := aggregate.LengthBin(r.ReadLength)
		counts[key{r.Mapper, bin}]++
		binSet[bin] = true
	}
	bins := sortedBins(binSet)
	bar.SetXAxis(binLabels(bins))
	for _, mapper := range rep.Opts.Mappers {
		data := make([]opts.BarData, len(bins))
		for i, bin := range bins {
			data[i] = opts.BarData{Value: counts[key{mapper, bin}]}
		}
		bar.AddSeries(mapper, data)
	}
	return bar
}

func (rep *Report) aliPercChart(spec ChartSpec, sample string) *charts.BoxPlot {
	bp := charts.NewBoxPlot()
	bp.SetGlobalOptions(newChartOptions(spec, sample)...)

	aligned := rep.Table.Aligned()
	data := make([]opts.BoxPlotData, len(rep.Opts.Mappers))
	for i, mapper := range rep.Opts.Mappers {
		var values []float64
		for j := range aligned {
			r := &aligned[j]
			if r.Sample == sample && r.Mapper == mapper && r.AliPerc.Valid {
				values = append(values, r.AliPerc.Value)
			}
		}
		if len(values) > 0 {
			data[i] = opts.BoxPlotData{Value: boxValue(aggregate.Summarize(values))}
		}
	}
	bp.SetXAxis(rep.Opts.Mappers).AddSeries("aliPerc", data)
	return bp
}

func (rep *Report) binnedRateChart(spec ChartSpec, sample string) *charts.BoxPlot {
	bp := charts.NewBoxPlot()
	bp.SetGlobalOptions(newChartOptions(spec, sample)...)

	type key struct {
		mapper string
		bin    int
	}
	cells := make(map[key]aggregate.FiveNum)
	binSet := make(map[int]bool)
	for _, b := range rep.Binned {
		if b.Field != spec.Field {
			continue
		}
		// Shared bin axis across samples, so the per-sample facets line up.
		binSet[b.LengthBin] = true
		if b.Sample == sample {
			cells[key{b.Mapper, b.LengthBin}] = b.Summary
		}
	}
	bins := sortedBins(binSet)
	bp.SetXAxis(binLabels(bins))
	for _, mapper := range rep.Opts.Mappers {
		data := make([]opts.BoxPlotData, len(bins))
		for i, bin := range bins {
			if s, ok := cells[key{mapper, bin}]; ok {
				data[i] = opts.BoxPlotData{Value: boxValue(s)}
			}
		}
		bp.AddSeries(mapper, data)
	}
	return bp
}

func boxValue(s aggregate.FiveNum) []float64 {
	return []float64{s.Min, s.Q1, s.Median, s.Q3, s.Max}
}

func sortedBins(binSet map[int]bool) []int {
	bins := make([]int, 0, len(binSet))
	for bin := range binSet {
		bins = append(bins, bin)
	}
	sort.Ints(bins)
	return bins
}

func binLabels(bins []int) []string {
	labels := make([]string, len(bins))
	for i, bin := range bins {
		labels[i] = fmt.Sprintf("%d-%dkb", bin, bin+4)
	}
	return labels
}
