// Package engine implements the deduplication pipeline: fetch every source
// URL, parse the payloads into records, normalize them against the defaults
// template, collapse duplicates globally, and emit one deterministic file
// per output group.
package engine

import (
	"context"
	"log/slog"
	"os"

	"github.com/lepinkainen/config-forge/internal/grouping"
	"github.com/lepinkainen/config-forge/internal/parsers"
	"github.com/lepinkainen/config-forge/internal/proxy"
	"github.com/lepinkainen/config-forge/pkg/api"
	"github.com/lepinkainen/config-forge/pkg/database"
	httputil "github.com/lepinkainen/config-forge/pkg/http"
	"github.com/lepinkainen/config-forge/pkg/sources"
)

// Options configures an Engine. All categorization behavior is injected
// here; the engine keeps no package-level state.
type Options struct {
	InputPath    string
	DefaultsPath string // optional; absence is tolerated with a warning
	OutputDir    string

	Concurrency int                    // max concurrent fetches (default 8)
	Client      *httputil.Client       // HTTP client (default: httputil.DefaultConfig)
	Limiter     api.RateLimiter        // request pacing (default: none)
	Cache       *database.ContentCache // optional fetched-content cache
	Grouper     grouping.Grouper       // output-group derivation (default: filename)
	Parsers     *parsers.Registry      // payload parsers (default: built-ins)
}

// Engine runs the deduplication pipeline. It holds no state across runs:
// output is a pure function of (source contents, defaults template).
type Engine struct {
	opts Options
}

// New creates an engine, filling unset options with defaults.
func New(opts Options) *Engine {
	if opts.Concurrency <= 0 {
		opts.Concurrency = 8
	}
	if opts.Client == nil {
		opts.Client = httputil.NewClient(nil)
	}
	if opts.Limiter == nil {
		opts.Limiter = api.NewNoOpRateLimiter()
	}
	if opts.Grouper == nil {
		opts.Grouper = grouping.NewFilenameGrouper("")
	}
	if opts.Parsers == nil {
		opts.Parsers = parsers.DefaultRegistry
	}
	return &Engine{opts: opts}
}

// groupedRecord pairs a normalized record with its precomputed
// deduplication key so emit ordering doesn't rehash.
type groupedRecord struct {
	Record      proxy.Record
	Fingerprint string
}

// Run executes the pipeline. Recoverable per-source and per-record failures
// are collected into the summary; the returned error is non-nil only for
// fatal input/output failures.
func (e *Engine) Run(ctx context.Context) (*Summary, error) {
	summary := &Summary{}

	entries, err := sources.LoadURLList(e.opts.InputPath)
	if err != nil {
		return summary, &InputError{Err: err}
	}
	summary.Sources = len(entries)

	defaults, err := e.loadDefaults(summary)
	if err != nil {
		return summary, err
	}

	results := e.fetchAll(ctx, entries)

	groups := e.collect(results, defaults, summary)

	if err := e.emit(groups, summary); err != nil {
		return summary, err
	}

	slog.Info("Run complete",
		"sources", summary.Sources,
		"fetched", summary.Fetched,
		"records", summary.Records,
		"unique", summary.Unique,
		"duplicates", summary.Duplicates,
		"groups", summary.Groups,
		"warnings", len(summary.Warnings))

	return summary, nil
}

// Collect fetches, parses, normalizes and deduplicates without writing any
// output. Used by the preview workflow.
func (e *Engine) Collect(ctx context.Context) (map[string][]proxy.Record, *Summary, error) {
	summary := &Summary{}

	entries, err := sources.LoadURLList(e.opts.InputPath)
	if err != nil {
		return nil, summary, &InputError{Err: err}
	}
	summary.Sources = len(entries)

	defaults, err := e.loadDefaults(summary)
	if err != nil {
		return nil, summary, err
	}

	grouped := e.collect(e.fetchAll(ctx, entries), defaults, summary)

	out := make(map[string][]proxy.Record, len(grouped))
	for label, records := range grouped {
		sortGroup(records)
		for _, gr := range records {
			out[label] = append(out[label], gr.Record)
		}
	}
	return out, summary, nil
}

func (e *Engine) loadDefaults(summary *Summary) (proxy.Defaults, error) {
	if e.opts.DefaultsPath == "" {
		summary.warnf("no defaults file configured, proceeding with empty defaults")
		slog.Warn("No defaults file configured")
		return proxy.Defaults{}, nil
	}

	defaults, err := proxy.LoadDefaults(e.opts.DefaultsPath)
	if err != nil {
		if os.IsNotExist(err) {
			summary.warnf("defaults file %s not found, proceeding with empty defaults", e.opts.DefaultsPath)
			slog.Warn("Defaults file not found", "path", e.opts.DefaultsPath)
			return proxy.Defaults{}, nil
		}
		return nil, &InputError{Err: err}
	}
	return defaults, nil
}

// collect walks fetch results in input order, so duplicate tie-breaks are
// deterministic regardless of fetch completion order: the first occurrence
// by input-list position, then by within-source position, wins.
func (e *Engine) collect(results []fetchResult, defaults proxy.Defaults, summary *Summary) map[string][]groupedRecord {
	seen := make(map[string]bool)
	groups := make(map[string][]groupedRecord)

	for _, result := range results {
		url := result.entry.URL

		if result.err != nil {
			ferr := &FetchError{URL: url, Err: result.err}
			summary.warnf("%v", ferr)
			slog.Warn("Skipping unreachable source", "url", url, "error", result.err)
			continue
		}
		summary.Fetched++

		records, parseWarnings, err := e.opts.Parsers.Parse(result.body)
		if err != nil {
			perr := &ParseError{URL: url, Err: err}
			summary.warnf("%v", perr)
			slog.Warn("Skipping unparseable source", "url", url, "error", err)
			continue
		}
		for _, w := range parseWarnings {
			perr := &ParseError{URL: url, Err: w}
			summary.warnf("%v", perr)
			slog.Warn("Skipping malformed record", "url", url, "error", w)
		}

		label := e.opts.Grouper.Group(url)

		for _, record := range records {
			summary.Records++

			normalized := proxy.Normalize(record, defaults)
			fingerprint := proxy.Fingerprint(normalized)

			if seen[fingerprint] {
				summary.Duplicates++
				slog.Debug("Duplicate record collapsed", "url", url, "fingerprint", fingerprint)
				continue
			}
			seen[fingerprint] = true
			summary.Unique++

			groups[label] = append(groups[label], groupedRecord{
				Record:      normalized,
				Fingerprint: fingerprint,
			})
		}
	}

	return groups
}
