package main

/*
mapeval compares long-read alignment tools across sequenced samples. It
loads the per-read statistics file of every mapper × sample pair, merges
them into one table, and writes an HTML chart report plus TSV summary
tables (alignment rates, length-binned error-rate distributions).
*/

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"

	"mapeval/readstats"
	"mapeval/report"
)

var (
	mappers     = flag.String("mappers", strings.Join(readstats.DefaultOpts.Mappers, ","), "Comma-separated, ordered mapper identifiers")
	samples     = flag.String("samples", "", "Comma-separated, ordered sample identifiers; required")
	dir         = flag.String("dir", ".", "Directory holding the per-pair stats files")
	pattern     = flag.String("pattern", readstats.DefaultOpts.NamingPattern, "Stats-file name pattern; {mapper} and {sample} are substituted per pair")
	maxRows     = flag.Int("max-rows", readstats.DefaultOpts.MaxRowsPerFile, "Maximum number of rows read per file (sampling cap); 0 = unlimited")
	parallelism = flag.Int("parallelism", 0, "Maximum number of concurrent file loads; 0 = runtime.NumCPU()")
	outPrefix   = flag.String("out", "mapeval", "Output path prefix")
	gzipTSV     = flag.Bool("gzip-tsv", false, "Gzip the TSV summary outputs")
)

func mapevalUsage() {
	fmt.Printf("Usage: %s -samples s1,s2,... [OPTIONS]\n", os.Args[0])
	fmt.Printf("Options:\n")
	flag.PrintDefaults()
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	fields := strings.Split(s, ",")
	out := fields[:0]
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func main() {
	flag.Usage = mapevalUsage
	shutdown := grail.Init()
	defer shutdown()

	opts := readstats.Opts{
		Mappers:        splitList(*mappers),
		Samples:        splitList(*samples),
		Dir:            *dir,
		NamingPattern:  *pattern,
		MaxRowsPerFile: *maxRows,
		Parallelism:    *parallelism,
	}
	if len(opts.Mappers) == 0 {
		log.Fatalf("no mappers given; please check -mappers")
	}
	if len(opts.Samples) == 0 {
		log.Fatalf("no samples given; -samples is required")
	}

	ctx := vcontext.Background()
	merged, err := readstats.Merge(ctx, opts)
	if err != nil {
		log.Fatalf("merge: %v", err)
	}
	log.Printf("merged table: %d reads, %d mappers, %d samples",
		len(merged), len(opts.Mappers), len(opts.Samples))
	if err := report.New(opts, merged).Write(ctx, *outPrefix, *gzipTSV); err != nil {
		log.Fatalf("report: %v", err)
	}
}
