package readstats_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/grailbio/testutil"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"

	"mapeval/readstats"
)

func mergeOpts(dir string, mappers, samples []string) readstats.Opts {
	opts := readstats.DefaultOpts
	opts.Mappers = mappers
	opts.Samples = samples
	opts.Dir = dir
	return opts
}

func writePair(t *testing.T, opts readstats.Opts, mapper, sample string, readLengths, aliLengths []int) {
	lines := []string{header}
	for i := range readLengths {
		aliPerc := "NA"
		if aliLengths[i] > 0 {
			aliPerc = "50"
		}
		lines = append(lines, fmt.Sprintf(
			"%d\t%d\t%s\tNA\tNA\tNA\tNA\t0.25\t0.25\t0.25\t0.25\t0",
			readLengths[i], aliLengths[i], aliPerc))
	}
	writeFile(t, opts.Path(mapper, sample), lines)
}

func TestMergeOrderAndTags(t *testing.T) {
	tmp, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	mappers := []string{"ngmlr", "minialign"}
	samples := []string{"13_1450", "13_1451"}
	opts := mergeOpts(tmp, mappers, samples)
	opts.Parallelism = 4

	// One read per file, length encoding the (mapper, sample) position so
	// the concatenation order is observable.
	for mi, mapper := range mappers {
		for si, sample := range samples {
			writePair(t, opts, mapper, sample, []int{1000*mi + 100*si + 100}, []int{50})
		}
	}
	merged, err := readstats.Merge(context.Background(), opts)
	assert.NoError(t, err)
	assert.EQ(t, 4, len(merged))
	// Mapper outer, sample inner, regardless of load completion order.
	wantLengths := []int{100, 200, 1100, 1200}
	for i, r := range merged {
		expect.EQ(t, wantLengths[i], r.ReadLength)
		expect.EQ(t, mappers[i/2], r.Mapper)
		expect.EQ(t, samples[i%2], r.Sample)
	}
}

func TestMergeAlignedClassification(t *testing.T) {
	tmp, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	opts := mergeOpts(tmp, []string{"ngmlr"}, []string{"13_1450"})
	writePair(t, opts, "ngmlr", "13_1450",
		[]int{200, 500, 7500}, []int{0, 150, 300})

	merged, err := readstats.Merge(context.Background(), opts)
	assert.NoError(t, err)
	assert.EQ(t, 3, len(merged))
	wantStatus := []string{readstats.StatusUnaligned, readstats.StatusAligned, readstats.StatusAligned}
	for i := range merged {
		expect.EQ(t, wantStatus[i], merged[i].Status())
		expect.EQ(t, merged[i].AliLength > 0, merged[i].Aligned())
	}
	assert.EQ(t, 2, len(merged.Aligned()))
}

// A single missing file aborts the whole merge: no partial table.
func TestMergeMissingFile(t *testing.T) {
	tmp, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	opts := mergeOpts(tmp, []string{"ngmlr", "minialign"}, []string{"13_1450"})
	writePair(t, opts, "ngmlr", "13_1450", []int{500}, []int{100})

	merged, err := readstats.Merge(context.Background(), opts)
	assert.Nil(t, merged)
	var le *readstats.LoadError
	assert.True(t, errors.As(err, &le))
	expect.EQ(t, "minialign", le.Mapper)
	expect.EQ(t, "13_1450", le.Sample)
}

func TestMergeNoPairs(t *testing.T) {
	opts := mergeOpts("", nil, nil)
	_, err := readstats.Merge(context.Background(), opts)
	assert.NotNil(t, err)
}

func TestOptsPath(t *testing.T) {
	opts := readstats.DefaultOpts
	opts.Dir = "/data"
	expect.EQ(t, filepath.Join("/data", "ngmlr.13_1450-N1-DNA1-WGS1.read_stats.txt"),
		opts.Path("ngmlr", "13_1450"))
}
