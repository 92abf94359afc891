// Package main provides the CLI entry point for config-forge.
package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"sort"

	"github.com/alecthomas/kong"
	kongyaml "github.com/alecthomas/kong-yaml"

	"github.com/lepinkainen/config-forge/internal/config"
	"github.com/lepinkainen/config-forge/internal/engine"
	"github.com/lepinkainen/config-forge/internal/grouping"
	"github.com/lepinkainen/config-forge/internal/proxy"
	"github.com/lepinkainen/config-forge/pkg/api"
	"github.com/lepinkainen/config-forge/pkg/database"
	httputil "github.com/lepinkainen/config-forge/pkg/http"
	"github.com/lepinkainen/config-forge/pkg/preview"
)

// CLI structure
var CLI struct {
	Config string `help:"Configuration file path" default:"config.yaml"`
	Debug  bool   `help:"Enable debug logging" default:"false"`

	Generate struct {
		Input    string `help:"File with one source URL per line" short:"i" required:""`
		Defaults string `help:"YAML defaults template" short:"d"`
		Output   string `help:"Output directory" short:"o" default:"output"`
	} `cmd:"generate" help:"Fetch, deduplicate and write one file per output group."`

	Preview struct {
		Input    string `help:"File with one source URL per line" short:"i" required:""`
		Defaults string `help:"YAML defaults template" short:"d"`
	} `cmd:"preview" help:"Browse deduplicated records interactively without writing files."`
}

func main() {
	// Parse CLI with Kong YAML configuration file loading
	ctx := kong.Parse(&CLI,
		kong.Configuration(kongyaml.Loader, "config.yaml", "~/.config-forge/config.yaml"),
	)

	// Configure logging level based on debug flag
	if CLI.Debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	} else {
		slog.SetLogLoggerLevel(slog.LevelInfo)
	}

	cfg, err := config.LoadConfig(CLI.Config)
	if err != nil {
		slog.Error("Failed to load configuration", "path", CLI.Config, "error", err)
		os.Exit(1)
	}

	switch ctx.Command() {
	case "generate":
		runGenerate(cfg, CLI.Generate.Input, CLI.Generate.Defaults, CLI.Generate.Output)

	case "preview":
		runPreview(cfg, CLI.Preview.Input, CLI.Preview.Defaults)

	default:
		panic(ctx.Command())
	}
}

// newEngine assembles an engine from the app configuration and invocation paths
func newEngine(cfg *config.Config, input, defaults, output string) (*engine.Engine, func()) {
	clientConfig := httputil.DefaultConfig()
	clientConfig.Timeout = cfg.FetchTimeout()
	clientConfig.MaxRetries = cfg.Fetch.MaxRetries
	clientConfig.UserAgent = cfg.Fetch.UserAgent
	clientConfig.AuthToken = cfg.Fetch.AuthToken

	var limiter api.RateLimiter = api.NewNoOpRateLimiter()
	if cfg.Fetch.MinDelayMs > 0 {
		limiter = api.NewSimpleRateLimiter(cfg.MinDelay())
	}

	grouper := grouping.NewFilenameGrouper(cfg.Groups.Fallback)
	grouper.Overrides = cfg.Groups.Overrides

	cleanup := func() {}
	var cache *database.ContentCache
	if cfg.Cache.Enabled {
		db, err := database.NewDatabase(database.Config{Path: cfg.Cache.Path})
		if err != nil {
			slog.Warn("Failed to open fetch cache, continuing without it", "path", cfg.Cache.Path, "error", err)
		} else {
			cache, err = database.NewContentCache(db, cfg.CacheTTL())
			if err != nil {
				slog.Warn("Failed to initialize fetch cache, continuing without it", "error", err)
				db.Close()
			} else {
				cleanup = func() {
					if err := cache.CleanupExpired(); err != nil {
						slog.Warn("Failed to cleanup expired cache entries", "error", err)
					}
					if err := db.Close(); err != nil {
						slog.Error("Failed to close fetch cache", "error", err)
					}
				}
			}
		}
	}

	eng := engine.New(engine.Options{
		InputPath:    input,
		DefaultsPath: defaults,
		OutputDir:    output,
		Concurrency:  cfg.Fetch.Concurrency,
		Client:       httputil.NewClient(clientConfig),
		Limiter:      limiter,
		Cache:        cache,
		Grouper:      grouper,
	})

	return eng, cleanup
}

func runGenerate(cfg *config.Config, input, defaults, output string) {
	eng, cleanup := newEngine(cfg, input, defaults, output)
	defer cleanup()

	summary, err := eng.Run(context.Background())
	if err != nil {
		slog.Error("Run failed", "error", err)
		cleanup()
		os.Exit(1)
	}

	reportWarnings(summary)
}

func runPreview(cfg *config.Config, input, defaults string) {
	eng, cleanup := newEngine(cfg, input, defaults, "")
	defer cleanup()

	groups, summary, err := eng.Collect(context.Background())
	if err != nil {
		slog.Error("Failed to collect records", "error", err)
		cleanup()
		os.Exit(1)
	}

	reportWarnings(summary)

	if err := preview.Run(previewItems(groups), "config-forge"); err != nil {
		slog.Error("Preview failed", "error", err)
		cleanup()
		os.Exit(1)
	}
}

// previewItems flattens grouped records into display items, groups in
// alphabetical order.
func previewItems(groups map[string][]proxy.Record) []preview.Item {
	labels := make([]string, 0, len(groups))
	for label := range groups {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	var items []preview.Item
	for _, label := range labels {
		for _, record := range groups[label] {
			pretty, err := json.MarshalIndent(record, "", "  ")
			if err != nil {
				continue
			}

			items = append(items, preview.Item{
				Group:       label,
				Server:      recordServer(record),
				Port:        recordPort(record),
				Protocol:    string(proxy.DetectProtocol(record)),
				Fingerprint: proxy.Fingerprint(record),
				JSON:        string(pretty),
			})
		}
	}
	return items
}

func recordServer(r proxy.Record) string {
	for _, key := range []string{"server", "host"} {
		if v, ok := r[key].(string); ok {
			return v
		}
	}
	return ""
}

func recordPort(r proxy.Record) int64 {
	for _, key := range []string{"server_port", "port"} {
		switch v := r[key].(type) {
		case int64:
			return v
		case float64:
			return int64(v)
		}
	}
	return 0
}

func reportWarnings(summary *engine.Summary) {
	if len(summary.Warnings) == 0 {
		return
	}

	slog.Warn("Run completed with warnings", "count", len(summary.Warnings))
	for _, warning := range summary.Warnings {
		slog.Warn(warning)
	}
}
