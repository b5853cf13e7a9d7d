package report

import (
	"io"
	"strconv"

	"github.com/grailbio/base/tsv"
)

func writeFloat(w *tsv.Writer, v float64) {
	w.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
}

// WriteAlignRateTSV writes the alignment-rate summary table as TSV.
func (rep *Report) WriteAlignRateTSV(w io.Writer) error {
	tw := tsv.NewWriter(w)
	tw.WriteString("sample\tmapper\tstatus\tcount\tfraction")
	if err := tw.EndLine(); err != nil {
		return err
	}
	for _, c := range rep.Rates {
		tw.WriteString(c.Sample)
		tw.WriteString(c.Mapper)
		tw.WriteString(c.Status)
		tw.WriteUint32(uint32(c.Count))
		writeFloat(tw, c.Fraction)
		if err := tw.EndLine(); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// WriteBinnedTSV writes the length-binned error-rate summary table as TSV.
// Absent cells were never produced by the aggregation, so every row has a
// complete five-number summary.
func (rep *Report) WriteBinnedTSV(w io.Writer) error {
	tw := tsv.NewWriter(w)
	tw.WriteString("sample\tmapper\tlengthBin\tfield\tn\tmin\tq1\tmedian\tq3\tmax")
	if err := tw.EndLine(); err != nil {
		return err
	}
	for _, b := range rep.Binned {
		tw.WriteString(b.Sample)
		tw.WriteString(b.Mapper)
		tw.WriteUint32(uint32(b.LengthBin))
		tw.WriteString(b.Field.String())
		tw.WriteUint32(uint32(b.Summary.N))
		writeFloat(tw, b.Summary.Min)
		writeFloat(tw, b.Summary.Q1)
		writeFloat(tw, b.Summary.Median)
		writeFloat(tw, b.Summary.Q3)
		writeFloat(tw, b.Summary.Max)
		if err := tw.EndLine(); err != nil {
			return err
		}
	}
	return tw.Flush()
}
