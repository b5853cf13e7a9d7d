package readstats

import (
	"bufio"
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/grailbio/base/compress"
	"github.com/grailbio/base/file"
	"github.com/pkg/errors"
)

// Input column names. Columns are matched by header name, not position;
// extra columns are ignored. readLength and aliLength are required, the
// rest may be missing entirely (a missing rate column means the mapper
// never reports that category, so every row's value is absent).
const (
	colReadLength = "readLength"
	colAliLength  = "aliLength"
	colAliPerc    = "aliPerc"
	colMmRate     = "mmRate"
	colInsRateS   = "insRateS"
	colInsRateL   = "insRateL"
	colDelRate    = "delRate"
	colARate      = "aRate"
	colCRate      = "cRate"
	colGRate      = "gRate"
	colTRate      = "tRate"
	colNRate      = "nRate"
)

// Load reads one per-read stats file and parses at most maxRows data rows,
// in file order. maxRows <= 0 means no cap. The file may be gzipped.
// Load is a pure read: loading the same file twice yields identical tables.
func Load(ctx context.Context, path string, maxRows int) (table Table, err error) {
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer func() {
		if e := in.Close(ctx); e != nil && err == nil {
			table, err = nil, &LoadError{Path: path, Err: e}
		}
	}()
	var r io.Reader = in.Reader(ctx)
	if u := compress.NewReaderPath(r, in.Name()); u != nil {
		defer u.Close() // nolint: errcheck
		r = u
	}
	return parse(r, path, maxRows)
}

// columns maps ReadRecord fields to their 0-based column index in one
// file's header; -1 means the column is not present.
type columns struct {
	readLength, aliLength, aliPerc      int
	mmRate, insRateS, insRateL, delRate int
	aRate, cRate, gRate, tRate, nRate   int
	n                                   int // total header width
}

func parseHeader(line, path string) (columns, error) {
	cols := columns{
		readLength: -1, aliLength: -1, aliPerc: -1,
		mmRate: -1, insRateS: -1, insRateL: -1, delRate: -1,
		aRate: -1, cRate: -1, gRate: -1, tRate: -1, nRate: -1,
	}
	names := strings.Split(line, "\t")
	cols.n = len(names)
	for i, name := range names {
		switch name {
		case colReadLength:
			cols.readLength = i
		case colAliLength:
			cols.aliLength = i
		case colAliPerc:
			cols.aliPerc = i
		case colMmRate:
			cols.mmRate = i
		case colInsRateS:
			cols.insRateS = i
		case colInsRateL:
			cols.insRateL = i
		case colDelRate:
			cols.delRate = i
		case colARate:
			cols.aRate = i
		case colCRate:
			cols.cRate = i
		case colGRate:
			cols.gRate = i
		case colTRate:
			cols.tRate = i
		case colNRate:
			cols.nRate = i
		}
	}
	if cols.readLength < 0 || cols.aliLength < 0 {
		return cols, &LoadError{Path: path,
			Err: errors.Errorf("header %q lacks required columns %s, %s", line, colReadLength, colAliLength)}
	}
	return cols, nil
}

// absent reports whether a cell encodes a missing value.
func absent(s string) bool {
	switch s {
	case "", ".", "NA", "na", "NaN", "nan", "-nan":
		return true
	}
	return false
}

func parse(r io.Reader, path string, maxRows int) (Table, error) {
	scanner := bufio.NewScanner(bufio.NewReaderSize(r, 64<<10))
	scanner.Buffer(make([]byte, 64<<10), 1<<20)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, &LoadError{Path: path, Err: err}
		}
		return nil, &LoadError{Path: path, Err: errors.New("empty file")}
	}
	cols, err := parseHeader(scanner.Text(), path)
	if err != nil {
		return nil, err
	}

	var table Table
	nLine := 1
	for scanner.Scan() {
		if maxRows > 0 && len(table) >= maxRows {
			break
		}
		nLine++
		fields := strings.Split(scanner.Text(), "\t")
		if len(fields) != cols.n {
			return nil, &ParseError{Path: path, Line: nLine,
				Err: errors.Errorf("got %d columns, header has %d", len(fields), cols.n)}
		}
		rec, err := parseRow(fields, cols)
		if err != nil {
			return nil, &ParseError{Path: path, Line: nLine, Err: err}
		}
		table = append(table, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	if len(table) == 0 {
		return nil, &LoadError{Path: path, Err: errors.New("no data rows")}
	}
	return table, nil
}

func parseRow(fields []string, cols columns) (ReadRecord, error) {
	var rec ReadRecord
	var err error
	if rec.ReadLength, err = parseCount(fields[cols.readLength], colReadLength); err != nil {
		return rec, err
	}
	if rec.AliLength, err = parseCount(fields[cols.aliLength], colAliLength); err != nil {
		return rec, err
	}
	if rec.AliPerc, err = parseRate(fields, cols.aliPerc, colAliPerc); err != nil {
		return rec, err
	}
	if rec.MmRate, err = parseRate(fields, cols.mmRate, colMmRate); err != nil {
		return rec, err
	}
	if rec.InsRateS, err = parseRate(fields, cols.insRateS, colInsRateS); err != nil {
		return rec, err
	}
	if rec.InsRateL, err = parseRate(fields, cols.insRateL, colInsRateL); err != nil {
		return rec, err
	}
	if rec.DelRate, err = parseRate(fields, cols.delRate, colDelRate); err != nil {
		return rec, err
	}
	if rec.ARate, err = parseFraction(fields, cols.aRate, colARate); err != nil {
		return rec, err
	}
	if rec.CRate, err = parseFraction(fields, cols.cRate, colCRate); err != nil {
		return rec, err
	}
	if rec.GRate, err = parseFraction(fields, cols.gRate, colGRate); err != nil {
		return rec, err
	}
	if rec.TRate, err = parseFraction(fields, cols.tRate, colTRate); err != nil {
		return rec, err
	}
	if rec.NRate, err = parseFraction(fields, cols.nRate, colNRate); err != nil {
		return rec, err
	}
	if !rec.Aligned() {
		// Per-alignment quantities are undefined for unaligned reads, no
		// matter what the file says.
		rec.AliPerc = Rate{}
		rec.MmRate = Rate{}
		rec.InsRateS = Rate{}
		rec.InsRateL = Rate{}
		rec.DelRate = Rate{}
	}
	return rec, nil
}

func parseCount(s, col string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Errorf("column %s: bad integer %q", col, s)
	}
	if v < 0 {
		return 0, errors.Errorf("column %s: negative count %d", col, v)
	}
	return v, nil
}

func parseRate(fields []string, idx int, col string) (Rate, error) {
	if idx < 0 || absent(fields[idx]) {
		return Rate{}, nil
	}
	v, err := strconv.ParseFloat(fields[idx], 64)
	if err != nil {
		return Rate{}, errors.Errorf("column %s: bad float %q", col, fields[idx])
	}
	return validRate(v), nil
}

func parseFraction(fields []string, idx int, col string) (float64, error) {
	if idx < 0 || absent(fields[idx]) {
		return 0, nil
	}
	v, err := strconv.ParseFloat(fields[idx], 64)
	if err != nil {
		return 0, errors.Errorf("column %s: bad float %q", col, fields[idx])
	}
	return v, nil
}
