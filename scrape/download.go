package scrape

import (
	"context"
	"encoding/hex"
	"io"
	"path/filepath"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	scraper "github.com/webpoint-solutions-llc/web-resource-scraper"
	"github.com/webpoint-solutions-llc/web-resource-scraper/fs"
)

// Ensure Downloader implements scraper.Downloader at compile time.
var _ scraper.Downloader = (*Downloader)(nil)

// Downloader transfers resources to disk with run-scoped deduplication
// and collision-free paths. Safe for concurrent use; collision probing is
// serialized so two workers cannot claim the same suffixed path.
type Downloader struct {
	// Transport opens resource byte streams.
	Transport scraper.Transport

	// Dedup is the run-scoped set of already-fetched URLs.
	Dedup *Dedup

	// Manifest, when non-nil, records every successful download.
	Manifest scraper.ManifestService

	// RetryDelays configures transport retries. Nil means
	// DefaultRetryDelays; an empty slice disables retry.
	RetryDelays []time.Duration

	// claimMu serializes path probing and file creation.
	claimMu sync.Mutex
}

// Download streams the resource into dir.
//
// A URL already fetched in this run short-circuits with Skipped set and
// no transfer. Otherwise the body streams to the first free variant of
// dir/GeneratedFilename in fixed-size chunks while hashing. On success
// the dedup set is updated and the resource's DownloadedPath is set; on
// failure the partial file is removed and the dedup set is untouched.
func (d *Downloader) Download(ctx context.Context, res *scraper.Resource, dir string) (*scraper.DownloadResult, error) {
	if err := res.Validate(); err != nil {
		return nil, err
	}

	if d.Dedup.Seen(res.ResourceURL) {
		return &scraper.DownloadResult{Skipped: true}, nil
	}

	delays := d.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	result, err := retry(ctx, delays, func(ctx context.Context) (*scraper.DownloadResult, error) {
		return d.transfer(ctx, res, dir)
	})
	if err != nil {
		return nil, err
	}

	d.Dedup.Add(res.ResourceURL)
	res.DownloadedPath = result.Path

	if d.Manifest != nil {
		entry := &scraper.ManifestEntry{
			SourceURL:   res.SourceURL,
			ResourceURL: res.ResourceURL,
			LinkText:    res.LinkText,
			FilePath:    result.Path,
			ContentHash: result.ContentHash,
			Bytes:       result.Bytes,
		}
		if err := d.Manifest.RecordDownload(ctx, entry); err != nil {
			return result, err
		}
	}

	return result, nil
}

// transfer performs one download attempt.
func (d *Downloader) transfer(ctx context.Context, res *scraper.Resource, dir string) (*scraper.DownloadResult, error) {
	body, err := d.Transport.Open(ctx, res.ResourceURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	if err := fs.EnsureDir(dir); err != nil {
		return nil, err
	}

	d.claimMu.Lock()
	f, path, err := fs.ClaimPath(filepath.Join(dir, res.GeneratedFilename))
	d.claimMu.Unlock()
	if err != nil {
		return nil, err
	}

	h := xxhash.New()
	n, err := fs.CopyStream(f, io.TeeReader(body, h))
	if err != nil {
		return nil, scraper.Errorf(scraper.EUNAVAILABLE, "download %s: %v", res.ResourceURL, err)
	}

	return &scraper.DownloadResult{
		Path:        path,
		Bytes:       n,
		ContentHash: hex.EncodeToString(h.Sum(nil)),
	}, nil
}
