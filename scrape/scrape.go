// Package scrape orchestrates a run: fetch each listed page, extract
// candidate resources, resolve destination folders, and download (or
// preview) every resource, pacing requests along the way.
package scrape

import (
	"context"
	"path/filepath"
	"time"

	scraper "github.com/webpoint-solutions-llc/web-resource-scraper"
	"golang.org/x/sync/errgroup"
)

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressPageStarted ProgressType = iota
	ProgressPageFailed
	ProgressResourceFound
	ProgressDownloaded
	ProgressSkipped
	ProgressDownloadFailed
	ProgressFinished
)

// ProgressEvent reports progress during a run. With Concurrency > 1 the
// callback may be invoked from multiple goroutines.
type ProgressEvent struct {
	Type      ProgressType
	Page      string
	PageIndex int
	PageCount int
	Resource  *scraper.Resource
	Folder    string
	// Path is the final on-disk path for ProgressDownloaded, and the
	// planned (pre-collision) path for ProgressResourceFound.
	Path  string
	Error error
}

// ProgressFunc is a callback for reporting run progress.
type ProgressFunc func(event ProgressEvent)

// Scraper sequences a whole run over a fixed page list. Discovered links
// are never followed; the list supplied to Run is the entire crawl.
type Scraper struct {
	Fetcher   scraper.Fetcher
	Extractor scraper.Extractor
	Folders   *scraper.FolderResolver
	Downloads scraper.Downloader

	// Pacer spaces downloads and page fetches. Nil disables pacing.
	Pacer *Pacer

	// Filter, when non-nil, restricts which resource URLs are handled.
	Filter *scraper.URLFilter

	// Concurrency bounds parallel page processing. Values <= 1 keep the
	// default sequential behavior.
	Concurrency int

	// RetryDelays configures page fetch retries. Nil means
	// DefaultRetryDelays; an empty slice disables retry.
	RetryDelays []time.Duration
}

// Result holds the outcome of a run, preserving per-page then
// per-resource order.
type Result struct {
	// Found lists every accepted candidate, in preview and normal runs
	// alike.
	Found []*scraper.Resource

	// Downloaded lists successfully transferred resources with their
	// DownloadedPath set. Always empty in preview mode.
	Downloaded []*scraper.Resource

	// Pages is the number of pages processed, PagesFailed the number
	// skipped after a failed fetch or parse.
	Pages       int
	PagesFailed int

	// Skipped counts dedup short-circuits, Failed counts resources that
	// could not be transferred.
	Skipped int
	Failed  int

	// Bytes is the total number of bytes written.
	Bytes int64

	// Folders maps each page URL to its resolved destination folder.
	Folders map[string]string
}

// pageOutcome collects one page's results before ordered aggregation.
type pageOutcome struct {
	found      []*scraper.Resource
	downloaded []*scraper.Resource
	failed     int
	skipped    int
	bytes      int64
	pageErr    error
}

// Run processes every page in order. Per-page and per-resource failures
// are isolated and reported through progress events; only context
// cancellation aborts the run. In preview mode nothing is downloaded and
// no disk or dedup state changes, yet Found carries the identical
// resource list a normal run would use.
func (s *Scraper) Run(ctx context.Context, pages []string, preview bool, progress ProgressFunc) (*Result, error) {
	outcomes := make([]*pageOutcome, len(pages))

	if s.Concurrency > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(s.Concurrency)
		for i, pageURL := range pages {
			g.Go(func() error {
				outcomes[i] = s.processPage(gctx, pageURL, i, len(pages), preview, progress)
				if err := gctx.Err(); err != nil {
					return err
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i, pageURL := range pages {
			if i > 0 && s.Pacer != nil {
				if err := s.Pacer.WaitPage(ctx); err != nil {
					return nil, err
				}
			}
			outcomes[i] = s.processPage(ctx, pageURL, i, len(pages), preview, progress)
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
	}

	result := &Result{Folders: s.Folders.Folders()}
	for _, o := range outcomes {
		if o == nil {
			continue
		}
		result.Pages++
		if o.pageErr != nil {
			result.PagesFailed++
			continue
		}
		result.Found = append(result.Found, o.found...)
		result.Downloaded = append(result.Downloaded, o.downloaded...)
		result.Failed += o.failed
		result.Skipped += o.skipped
		result.Bytes += o.bytes
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, PageCount: len(pages)})
	}

	return result, nil
}

// processPage handles a single page: fetch, extract, resolve the folder,
// and download or plan each accepted resource.
func (s *Scraper) processPage(ctx context.Context, pageURL string, index, total int, preview bool, progress ProgressFunc) *pageOutcome {
	o := &pageOutcome{}

	if progress != nil {
		progress(ProgressEvent{
			Type:      ProgressPageStarted,
			Page:      pageURL,
			PageIndex: index,
			PageCount: total,
		})
	}

	delays := s.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	html, err := retry(ctx, delays, func(ctx context.Context) (string, error) {
		return s.Fetcher.Fetch(ctx, pageURL)
	})
	if err != nil {
		o.pageErr = err
		if progress != nil {
			progress(ProgressEvent{Type: ProgressPageFailed, Page: pageURL, PageIndex: index, PageCount: total, Error: err})
		}
		return o
	}

	extraction, err := s.Extractor.Extract(html, pageURL)
	if err != nil {
		o.pageErr = err
		if progress != nil {
			progress(ProgressEvent{Type: ProgressPageFailed, Page: pageURL, PageIndex: index, PageCount: total, Error: err})
		}
		return o
	}

	folder := s.Folders.Resolve(pageURL, extraction.Title)

	for _, res := range extraction.Resources {
		if !s.Filter.Match(res.ResourceURL) {
			continue
		}
		o.found = append(o.found, res)

		if progress != nil {
			progress(ProgressEvent{
				Type:     ProgressResourceFound,
				Page:     pageURL,
				Resource: res,
				Folder:   folder,
				Path:     filepath.Join(folder, res.GeneratedFilename),
			})
		}

		if preview {
			continue
		}

		if s.Pacer != nil {
			if err := s.Pacer.WaitResource(ctx); err != nil {
				return o
			}
		}

		dl, err := s.Downloads.Download(ctx, res, folder)
		switch {
		case err != nil:
			o.failed++
			if progress != nil {
				progress(ProgressEvent{Type: ProgressDownloadFailed, Page: pageURL, Resource: res, Folder: folder, Error: err})
			}
		case dl.Skipped:
			o.skipped++
			if progress != nil {
				progress(ProgressEvent{Type: ProgressSkipped, Page: pageURL, Resource: res, Folder: folder})
			}
		default:
			o.downloaded = append(o.downloaded, res)
			o.bytes += dl.Bytes
			if progress != nil {
				progress(ProgressEvent{Type: ProgressDownloaded, Page: pageURL, Resource: res, Folder: folder, Path: dl.Path})
			}
		}
	}

	return o
}
