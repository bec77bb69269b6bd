package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	scraper "github.com/webpoint-solutions-llc/web-resource-scraper"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Fetcher   scraper.Fetcher
	Transport scraper.Transport
	Sitemaps  scraper.SitemapService
	Manifests scraper.ManifestService

	// NewExtractor builds the extractor once the naming policy is known;
	// the policy comes from run flags, so the extractor cannot be wired
	// up front.
	NewExtractor func(namer *scraper.Namer) scraper.Extractor
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Run      RunCmd      `cmd:"" help:"Download documents linked from the given pages"`
	Manifest ManifestCmd `cmd:"" help:"List downloads recorded in a manifest database"`
}

// RunCmd is the "run" subcommand.
type RunCmd struct {
	URL []string `arg:"" optional:"" help:"Page URLs to scan"`

	Dir           string          `default:"downloaded_resources" help:"Root download directory"`
	Preview       bool            `short:"p" help:"List planned downloads without writing anything"`
	Sitemap       string          `help:"Seed the page list from a site's sitemap"`
	Filter        []string        `short:"F" name:"filter" help:"Only handle resource URLs matching regex (repeatable)"`
	Exclude       []string        `help:"Skip resource URLs matching regex (repeatable)"`
	Lowercase     bool            `help:"Lowercase generated file and folder names"`
	Flat          bool            `help:"Save everything directly under the root directory"`
	Concurrency   int             `short:"c" default:"1" help:"Concurrent page limit"`
	ResourceDelay time.Duration   `default:"500ms" help:"Delay between downloads"`
	PageDelay     time.Duration   `default:"1s" help:"Delay between page fetches"`
	RetryDelay    []time.Duration `default:"1s,2s,4s" help:"Backoff between retries (repeatable)"`
	Timeout       time.Duration   `default:"30s" help:"Per-request timeout"`
	Manifest      string          `help:"Record downloads in a SQLite manifest database"`
	Verbose       bool            `help:"Log requests to stderr"`
}

// ManifestCmd is the "manifest" subcommand.
type ManifestCmd struct {
	DB string `arg:"" help:"Manifest database path"`
}
