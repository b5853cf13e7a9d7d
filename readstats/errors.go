package readstats

import "fmt"

// LoadError reports a fatal failure to load one per-read stats file: the
// file is missing, unreadable, empty, or its header lacks a required
// column. Mapper and Sample are empty when the file was loaded directly
// rather than through Merge.
type LoadError struct {
	Path   string
	Mapper string
	Sample string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Mapper != "" || e.Sample != "" {
		return fmt.Sprintf("load %s (mapper %s, sample %s): %v", e.Path, e.Mapper, e.Sample, e.Err)
	}
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// ParseError reports a malformed row: wrong column count, or a value that
// does not parse as its column's type. Line is 1-based and counts the
// header row.
type ParseError struct {
	Path string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
