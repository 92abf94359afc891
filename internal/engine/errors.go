package engine

import "fmt"

// InputError is fatal: the source list is missing/empty or the output
// directory cannot be prepared.
type InputError struct {
	Err error
}

func (e *InputError) Error() string { return fmt.Sprintf("input error: %v", e.Err) }
func (e *InputError) Unwrap() error { return e.Err }

// FetchError is recoverable: one source could not be retrieved. The source
// is skipped and the run continues.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string { return fmt.Sprintf("fetch %s: %v", e.URL, e.Err) }
func (e *FetchError) Unwrap() error { return e.Err }

// ParseError is recoverable: a payload or one of its records is malformed.
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string { return fmt.Sprintf("parse %s: %v", e.URL, e.Err) }
func (e *ParseError) Unwrap() error { return e.Err }

// WriteError is fatal: an output file could not be written.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string { return fmt.Sprintf("write %s: %v", e.Path, e.Err) }
func (e *WriteError) Unwrap() error { return e.Err }

// Summary aggregates the outcome of a run, including the warnings collected
// from recoverable per-source and per-record failures.
type Summary struct {
	Sources    int      // URLs in the input list
	Fetched    int      // sources retrieved successfully
	Records    int      // records parsed across all sources
	Unique     int      // records surviving deduplication
	Duplicates int      // records collapsed into an earlier entry
	Groups     int      // output files written
	Warnings   []string // recoverable failures, in occurrence order
}

func (s *Summary) warnf(format string, args ...any) {
	s.Warnings = append(s.Warnings, fmt.Sprintf(format, args...))
}
