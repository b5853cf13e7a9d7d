package report_test

import (
	"bytes"
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grailbio/testutil"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mapeval/readstats"
	"mapeval/report"
)

func testOpts() readstats.Opts {
	o := readstats.DefaultOpts
	o.Mappers = []string{"ngmlr", "minialign"}
	o.Samples = []string{"13_1450"}
	return o
}

func testTable() readstats.Table {
	rate := func(v float64) readstats.Rate { return readstats.Rate{Value: v, Valid: true} }
	return readstats.Table{
		{ReadLength: 200, Sample: "13_1450", Mapper: "ngmlr"},
		{ReadLength: 500, AliLength: 150, AliPerc: rate(30), MmRate: rate(0.25),
			Sample: "13_1450", Mapper: "ngmlr"},
		{ReadLength: 7500, AliLength: 300, AliPerc: rate(4), MmRate: rate(0.5),
			Sample: "13_1450", Mapper: "ngmlr"},
		{ReadLength: 600, AliLength: 600, AliPerc: rate(100), DelRate: rate(0.125),
			Sample: "13_1450", Mapper: "minialign"},
	}
}

func TestWriteAlignRateTSV(t *testing.T) {
	rep := report.New(testOpts(), testTable())
	var buf bytes.Buffer
	require.NoError(t, rep.WriteAlignRateTSV(&buf))
	want := strings.Join([]string{
		"sample\tmapper\tstatus\tcount\tfraction",
		"13_1450\tngmlr\tunaligned\t1\t0.3333333333333333",
		"13_1450\tngmlr\taligned\t2\t0.6666666666666666",
		"13_1450\tminialign\tunaligned\t0\t0",
		"13_1450\tminialign\taligned\t1\t1",
	}, "\n") + "\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteBinnedTSV(t *testing.T) {
	rep := report.New(testOpts(), testTable())
	var buf bytes.Buffer
	require.NoError(t, rep.WriteBinnedTSV(&buf))
	want := strings.Join([]string{
		"sample\tmapper\tlengthBin\tfield\tn\tmin\tq1\tmedian\tq3\tmax",
		"13_1450\tngmlr\t0\tmmRate\t1\t0.25\t0.25\t0.25\t0.25\t0.25",
		"13_1450\tngmlr\t4\tmmRate\t1\t0.5\t0.5\t0.5\t0.5\t0.5",
		"13_1450\tminialign\t0\tdelRate\t1\t0.125\t0.125\t0.125\t0.125\t0.125",
	}, "\n") + "\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteHTML(t *testing.T) {
	rep := report.New(testOpts(), testTable())
	var buf bytes.Buffer
	require.NoError(t, rep.WriteHTML(&buf))
	html := buf.String()
	for _, spec := range report.DefaultCharts {
		assert.Contains(t, html, spec.Title)
	}
	assert.Contains(t, html, "13_1450")
	assert.Contains(t, html, "ngmlr")
	assert.Contains(t, html, "minialign")
}

func TestWriteArtifacts(t *testing.T) {
	tmp, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	rep := report.New(testOpts(), testTable())
	prefix := filepath.Join(tmp, "mapeval")
	require.NoError(t, rep.Write(context.Background(), prefix, true))

	_, err := os.Stat(prefix + ".html")
	require.NoError(t, err)

	raw, err := ioutil.ReadFile(prefix + ".align_rate.tsv.gz")
	require.NoError(t, err)
	zr, err := gzip.NewReader(bytes.NewReader(raw))
	require.NoError(t, err)
	body, err := ioutil.ReadAll(zr)
	require.NoError(t, err)
	require.NoError(t, zr.Close())
	assert.True(t, strings.HasPrefix(string(body), "sample\tmapper\tstatus"))

	_, err = os.Stat(prefix + ".binned.tsv.gz")
	require.NoError(t, err)
}
