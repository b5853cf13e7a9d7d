// Package readstats loads and merges the per-read alignment statistics
// emitted by long-read mappers. One stats file describes every read of one
// (mapper, sample) pair; Load parses a single file, Merge concatenates the
// full mapper × sample grid into one table for downstream aggregation.
package readstats

// Rate is an error-rate observation that may be missing. A rate is absent
// for unaligned reads, and for mappers that do not annotate the category
// (e.g. minialign emits no mismatch counts). Absent is distinct from zero;
// aggregation must skip absent values, never treat them as 0.
type Rate struct {
	Value float64
	Valid bool
}

func validRate(v float64) Rate { return Rate{Value: v, Valid: true} }

// ReadRecord is one sequenced read's alignment outcome as reported by a
// single mapper. Records are immutable once loaded.
type ReadRecord struct {
	// ReadLength is the total base length of the read.
	ReadLength int
	// AliLength is the length of the aligned portion; 0 means unaligned.
	AliLength int
	// AliPerc is the aligned fraction of the read in percent (0..100).
	// Absent for unaligned reads.
	AliPerc Rate

	// Edit-distance event counts divided by aligned base count. InsRateS
	// counts insertions shorter than 10bp, InsRateL insertions of 10bp or
	// more. All four are absent for unaligned reads.
	MmRate   Rate
	InsRateS Rate
	InsRateL Rate
	DelRate  Rate

	// Per-read nucleotide composition fractions; sum to roughly 1.
	ARate float64
	CRate float64
	GRate float64
	TRate float64
	NRate float64

	// Mapper and Sample identify the originating stats file. Load leaves
	// them empty; Merge fills them in.
	Mapper string
	Sample string
}

// Aligned reports whether the read aligned at all.
func (r *ReadRecord) Aligned() bool { return r.AliLength > 0 }

// Alignment status labels used in grouped output.
const (
	StatusUnaligned = "unaligned"
	StatusAligned   = "aligned"
)

// Status returns the alignment status label for the read.
func (r *ReadRecord) Status() string {
	if r.Aligned() {
		return StatusAligned
	}
	return StatusUnaligned
}

// RateField names one of the per-read error-rate columns.
type RateField int

const (
	FieldMmRate RateField = iota
	FieldInsRateS
	FieldInsRateL
	FieldDelRate
	NumRateFields
)

func (f RateField) String() string {
	switch f {
	case FieldMmRate:
		return "mmRate"
	case FieldInsRateS:
		return "insRateS"
	case FieldInsRateL:
		return "insRateL"
	case FieldDelRate:
		return "delRate"
	}
	return "invalid"
}

// Rate returns the value of the given error-rate field.
func (r *ReadRecord) Rate(f RateField) Rate {
	switch f {
	case FieldMmRate:
		return r.MmRate
	case FieldInsRateS:
		return r.InsRateS
	case FieldInsRateL:
		return r.InsRateL
	case FieldDelRate:
		return r.DelRate
	}
	return Rate{}
}

// Table is an ordered collection of ReadRecords.
type Table []ReadRecord

// Aligned returns the subtable of aligned reads, preserving order.
func (t Table) Aligned() Table {
	out := make(Table, 0, len(t))
	for _, r := range t {
		if r.Aligned() {
			out = append(out, r)
		}
	}
	return out
}
