package engine

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	httputil "github.com/lepinkainen/config-forge/pkg/http"
	"github.com/lepinkainen/config-forge/pkg/sources"
)

// fetchResult holds the outcome of retrieving one source, slotted by input
// index so downstream processing runs in input-list order.
type fetchResult struct {
	entry sources.Entry
	body  []byte
	err   error
}

// fetchAll retrieves every source with a bounded worker pool. Results land
// in input order; completion order never influences downstream tie-breaks.
func (e *Engine) fetchAll(ctx context.Context, entries []sources.Entry) []fetchResult {
	results := make([]fetchResult, len(entries))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.opts.Concurrency)

	for _, entry := range entries {
		g.Go(func() error {
			results[entry.Index] = e.fetchOne(ctx, entry)
			return nil
		})
	}

	// Workers report per-source failure through the result slot, never as
	// a group error.
	_ = g.Wait()

	return results
}

func (e *Engine) fetchOne(ctx context.Context, entry sources.Entry) fetchResult {
	result := fetchResult{entry: entry}

	if e.opts.Cache != nil {
		content, found, err := e.opts.Cache.Get(entry.URL)
		if err != nil {
			slog.Warn("Cache lookup failed", "url", entry.URL, "error", err)
		} else if found {
			slog.Debug("Cache hit", "url", entry.URL)
			result.body = []byte(content)
			return result
		}
	}

	e.opts.Limiter.Wait()

	slog.Debug("Fetching source", "url", entry.URL)
	resp, err := e.opts.Client.GetWithContext(ctx, entry.URL)
	if err != nil {
		result.err = err
		return result
	}

	if err := httputil.EnsureStatusOK(resp); err != nil {
		resp.Body.Close()
		result.err = err
		return result
	}

	body, err := httputil.ReadResponseBody(resp)
	if err != nil {
		result.err = err
		return result
	}
	result.body = body

	if e.opts.Cache != nil {
		if err := e.opts.Cache.Set(entry.URL, string(body)); err != nil {
			slog.Warn("Cache store failed", "url", entry.URL, "error", err)
		}
	}

	return result
}
