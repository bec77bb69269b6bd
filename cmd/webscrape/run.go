package main

import (
	"fmt"
	"regexp"
	"sort"

	scraper "github.com/webpoint-solutions-llc/web-resource-scraper"
	"github.com/webpoint-solutions-llc/web-resource-scraper/fs"
	"github.com/webpoint-solutions-llc/web-resource-scraper/scrape"
	scrapeslog "github.com/webpoint-solutions-llc/web-resource-scraper/slog"
)

// urlDisplayLen caps URLs in progress output.
const urlDisplayLen = 80

// Run executes the run command.
func (c *RunCmd) Run(deps *Dependencies) error {
	filter, err := c.compileFilter()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", scraper.ErrorMessage(err))
		return err
	}

	pages := c.URL
	if c.Sitemap != "" {
		urls, err := deps.Sitemaps.DiscoverURLs(deps.Ctx, c.Sitemap, nil)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", scraper.ErrorMessage(err))
			return err
		}
		pages = append(pages, urls...)
	}
	if len(pages) == 0 {
		err := scraper.Errorf(scraper.EINVALID, "no pages specified")
		fmt.Fprintln(deps.Stderr, "error: no pages specified. Pass page URLs or --sitemap.")
		return err
	}

	if !c.Preview {
		if err := fs.EnsureDir(c.Dir); err != nil {
			fmt.Fprintf(deps.Stderr, "error: cannot create %q: %v\n", c.Dir, err)
			return err
		}
	}

	namer := &scraper.Namer{Lowercase: c.Lowercase}

	var downloads scraper.Downloader = &scrape.Downloader{
		Transport:   deps.Transport,
		Dedup:       scrape.NewDedup(),
		Manifest:    deps.Manifests,
		RetryDelays: c.RetryDelay,
	}
	if c.Verbose {
		downloads = scrapeslog.NewLoggingDownloader(downloads, deps.Logger)
	}

	s := &scrape.Scraper{
		Fetcher:     deps.Fetcher,
		Extractor:   deps.NewExtractor(namer),
		Folders:     scraper.NewFolderResolver(c.Dir, namer, c.Flat),
		Downloads:   downloads,
		Pacer:       scrape.NewPacer(c.ResourceDelay, c.PageDelay),
		Filter:      filter,
		Concurrency: c.Concurrency,
		RetryDelays: c.RetryDelay,
	}

	result, err := s.Run(deps.Ctx, pages, c.Preview, c.progress(deps))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", scraper.ErrorMessage(err))
		return err
	}

	c.printSummary(deps, result)
	return nil
}

// compileFilter builds the resource URL filter from the repeatable
// --filter and --exclude flags.
func (c *RunCmd) compileFilter() (*scraper.URLFilter, error) {
	if len(c.Filter) == 0 && len(c.Exclude) == 0 {
		return nil, nil
	}

	filter := &scraper.URLFilter{}
	for _, pattern := range c.Filter {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, scraper.Errorf(scraper.EINVALID, "invalid filter pattern %q: %v", pattern, err)
		}
		filter.Include = append(filter.Include, re)
	}
	for _, pattern := range c.Exclude {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, scraper.Errorf(scraper.EINVALID, "invalid exclude pattern %q: %v", pattern, err)
		}
		filter.Exclude = append(filter.Exclude, re)
	}
	return filter, nil
}

// progress returns the event callback that renders run output.
func (c *RunCmd) progress(deps *Dependencies) scrape.ProgressFunc {
	return func(e scrape.ProgressEvent) {
		switch e.Type {
		case scrape.ProgressPageStarted:
			fmt.Fprintf(deps.Stdout, "Page %d/%d: %s\n", e.PageIndex+1, e.PageCount, e.Page)
		case scrape.ProgressPageFailed:
			fmt.Fprintf(deps.Stderr, "  skip page %s: %s\n", scrape.TruncateURL(e.Page, urlDisplayLen), scraper.ErrorMessage(e.Error))
		case scrape.ProgressResourceFound:
			if c.Preview {
				fmt.Fprintf(deps.Stdout, "  plan %s -> %s\n", scrape.TruncateURL(e.Resource.ResourceURL, urlDisplayLen), e.Path)
			}
		case scrape.ProgressDownloaded:
			fmt.Fprintf(deps.Stdout, "  saved %s\n", e.Path)
		case scrape.ProgressSkipped:
			fmt.Fprintf(deps.Stdout, "  skip %s: already downloaded\n", scrape.TruncateURL(e.Resource.ResourceURL, urlDisplayLen))
		case scrape.ProgressDownloadFailed:
			fmt.Fprintf(deps.Stderr, "  error %s: %s\n", scrape.TruncateURL(e.Resource.ResourceURL, urlDisplayLen), scraper.ErrorMessage(e.Error))
		}
	}
}

// printSummary renders the end-of-run totals and the folder report.
func (c *RunCmd) printSummary(deps *Dependencies, result *scrape.Result) {
	if c.Preview {
		fmt.Fprintf(deps.Stdout, "Planned %d downloads from %d pages\n", len(result.Found), result.Pages)
	} else {
		fmt.Fprintf(deps.Stdout, "Downloaded %d of %d resources (%s) from %d pages\n",
			len(result.Downloaded), len(result.Found), scrape.FormatBytes(result.Bytes), result.Pages)
		if result.Skipped > 0 || result.Failed > 0 {
			fmt.Fprintf(deps.Stdout, "Skipped %d duplicates, %d failed\n", result.Skipped, result.Failed)
		}
	}
	if result.PagesFailed > 0 {
		fmt.Fprintf(deps.Stdout, "%d pages could not be processed\n", result.PagesFailed)
	}

	if len(result.Folders) > 0 {
		fmt.Fprintln(deps.Stdout, "Folders:")
		pages := make([]string, 0, len(result.Folders))
		for page := range result.Folders {
			pages = append(pages, page)
		}
		sort.Strings(pages)
		for _, page := range pages {
			fmt.Fprintf(deps.Stdout, "  %s -> %s\n", scrape.TruncateURL(page, urlDisplayLen), result.Folders[page])
		}
	}
}
