package mock

import (
	"context"

	scraper "github.com/webpoint-solutions-llc/web-resource-scraper"
)

var _ scraper.Downloader = (*Downloader)(nil)

// Downloader is a mock implementation of scraper.Downloader.
type Downloader struct {
	DownloadFn func(ctx context.Context, res *scraper.Resource, dir string) (*scraper.DownloadResult, error)
}

func (d *Downloader) Download(ctx context.Context, res *scraper.Resource, dir string) (*scraper.DownloadResult, error) {
	return d.DownloadFn(ctx, res, dir)
}
