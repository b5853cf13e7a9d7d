package readstats

import (
	"context"
	"runtime"

	"github.com/grailbio/base/log"
	"github.com/grailbio/base/traverse"
	"github.com/pkg/errors"
)

// Merge loads the stats file of every (mapper, sample) pair and
// concatenates the results into one table, tagging each row with its pair.
// Files load concurrently, but the concatenation order is always the fixed
// enumeration order (mapper outer, sample inner), never completion order.
// A single failing load aborts the whole merge; there is no partial result.
func Merge(ctx context.Context, opts Opts) (Table, error) {
	type pair struct {
		mapper, sample string
	}
	pairs := make([]pair, 0, len(opts.Mappers)*len(opts.Samples))
	for _, m := range opts.Mappers {
		for _, s := range opts.Samples {
			pairs = append(pairs, pair{m, s})
		}
	}
	if len(pairs) == 0 {
		return nil, errors.New("merge: no mapper/sample pairs configured")
	}

	parallelism := opts.Parallelism
	if parallelism <= 0 {
		parallelism = runtime.NumCPU()
	}
	if parallelism > len(pairs) {
		parallelism = len(pairs)
	}
	tables := make([]Table, len(pairs))
	err := traverse.Each(parallelism, func(jobIdx int) error {
		startIdx := (jobIdx * len(pairs)) / parallelism
		endIdx := ((jobIdx + 1) * len(pairs)) / parallelism
		for i := startIdx; i < endIdx; i++ {
			p := pairs[i]
			path := opts.Path(p.mapper, p.sample)
			t, err := Load(ctx, path, opts.MaxRowsPerFile)
			if err != nil {
				if le, ok := err.(*LoadError); ok {
					le.Mapper, le.Sample = p.mapper, p.sample
				}
				return err
			}
			for j := range t {
				t[j].Mapper = p.mapper
				t[j].Sample = p.sample
			}
			tables[i] = t
			log.Printf("%s: %d reads", path, len(t))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	n := 0
	for _, t := range tables {
		n += len(t)
	}
	merged := make(Table, 0, n)
	for _, t := range tables {
		merged = append(merged, t...)
	}
	return merged, nil
}
