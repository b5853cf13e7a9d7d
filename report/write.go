package report

import (
	"context"
	"io"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/klauspost/compress/gzip"
)

// Write creates every artifact of the report under the given path prefix:
// <prefix>.html, <prefix>.align_rate.tsv and <prefix>.binned.tsv. When
// gzipTSV is set, the TSV artifacts are gzipped and get a .gz suffix.
func (rep *Report) Write(ctx context.Context, prefix string, gzipTSV bool) error {
	if err := rep.writeFile(ctx, prefix+".html", false, rep.WriteHTML); err != nil {
		return err
	}
	if err := rep.writeFile(ctx, tsvPath(prefix+".align_rate.tsv", gzipTSV), gzipTSV, rep.WriteAlignRateTSV); err != nil {
		return err
	}
	return rep.writeFile(ctx, tsvPath(prefix+".binned.tsv", gzipTSV), gzipTSV, rep.WriteBinnedTSV)
}

func tsvPath(path string, gz bool) string {
	if gz {
		return path + ".gz"
	}
	return path
}

func (rep *Report) writeFile(ctx context.Context, path string, gz bool, write func(io.Writer) error) (err error) {
	log.Printf("writing %s", path)
	dst, err := file.Create(ctx, path)
	if err != nil {
		return err
	}
	defer file.CloseAndReport(ctx, dst, &err)
	w := dst.Writer(ctx)
	if !gz {
		return write(w)
	}
	zw := gzip.NewWriter(w)
	if err := write(zw); err != nil {
		zw.Close() // nolint: errcheck
		return err
	}
	return zw.Close()
}
