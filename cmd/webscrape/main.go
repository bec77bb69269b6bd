package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	scraper "github.com/webpoint-solutions-llc/web-resource-scraper"
	"github.com/webpoint-solutions-llc/web-resource-scraper/goquery"
	scrapehttp "github.com/webpoint-solutions-llc/web-resource-scraper/http"
	scrapeslog "github.com/webpoint-solutions-llc/web-resource-scraper/slog"
	"github.com/webpoint-solutions-llc/web-resource-scraper/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database backing the manifest, when one is requested.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("webscrape"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'webscrape --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	deps.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	if cli.Run.Verbose {
		deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	if cmd == "run" {
		var fetcher scraper.Fetcher = scrapehttp.NewFetcher(scrapehttp.WithTimeout(cli.Run.Timeout))
		var transport scraper.Transport = scrapehttp.NewTransport()
		var sitemaps scraper.SitemapService = scrapehttp.NewSitemapService(nil)
		if cli.Run.Verbose {
			fetcher = scrapeslog.NewLoggingFetcher(fetcher, deps.Logger)
			transport = scrapeslog.NewLoggingTransport(transport, deps.Logger)
			sitemaps = scrapeslog.NewLoggingSitemapService(sitemaps, deps.Logger)
		}

		deps.Fetcher = fetcher
		deps.Transport = transport
		deps.Sitemaps = sitemaps
		deps.NewExtractor = func(namer *scraper.Namer) scraper.Extractor {
			return goquery.NewExtractor(namer)
		}

		if cli.Run.Manifest != "" {
			m.DB = sqlite.NewDB(cli.Run.Manifest)
			if err := m.DB.Open(); err != nil {
				return fmt.Errorf("failed to open manifest database at %q: %w", cli.Run.Manifest, err)
			}
			defer m.Close()
			deps.Manifests = sqlite.NewManifestService(m.DB)
		}
	}

	if cmd == "manifest" {
		m.DB = sqlite.NewDB(cli.Manifest.DB)
		if err := m.DB.Open(); err != nil {
			return fmt.Errorf("failed to open manifest database at %q: %w", cli.Manifest.DB, err)
		}
		defer m.Close()
		deps.Manifests = sqlite.NewManifestService(m.DB)
	}

	return kongCtx.Run(deps)
}
