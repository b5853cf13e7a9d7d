package readstats

import (
	"path/filepath"
	"strings"
)

// Opts configures loading and merging of the mapper × sample stats grid.
// The Mappers and Samples orderings are significant: they fix the
// concatenation order of the merged table and the row order of every
// grouped summary downstream.
type Opts struct {
	// Mappers and Samples are the fixed, ordered identifier sets. Every
	// (mapper, sample) pair must have a stats file.
	Mappers []string
	Samples []string
	// Dir is the directory holding the stats files.
	Dir string
	// NamingPattern is the per-pair file name; {mapper} and {sample} are
	// replaced by the pair's identifiers.
	NamingPattern string
	// MaxRowsPerFile caps how many rows are read from each file. This is a
	// sampling cap for performance: rows past the cap are ignored, not
	// filtered by any criterion.
	MaxRowsPerFile int
	// Parallelism is the maximum number of concurrent file loads;
	// 0 = number of CPUs.
	Parallelism int
}

// DefaultOpts sets the default values for Opts.
var DefaultOpts = Opts{
	Mappers:        []string{"ngmlr", "bwamem", "minialign", "graphmap"},
	NamingPattern:  "{mapper}.{sample}-N1-DNA1-WGS1.read_stats.txt",
	MaxRowsPerFile: 100000,
}

// Path returns the stats-file path for one (mapper, sample) pair.
func (o *Opts) Path(mapper, sample string) string {
	name := strings.NewReplacer("{mapper}", mapper, "{sample}", sample).Replace(o.NamingPattern)
	if o.Dir == "" {
		return name
	}
	return filepath.Join(o.Dir, name)
}
