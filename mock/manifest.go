package mock

import (
	"context"

	scraper "github.com/webpoint-solutions-llc/web-resource-scraper"
)

var _ scraper.ManifestService = (*ManifestService)(nil)

// ManifestService is a mock implementation of scraper.ManifestService.
type ManifestService struct {
	RecordDownloadFn func(ctx context.Context, entry *scraper.ManifestEntry) error
	FindEntriesFn    func(ctx context.Context, filter scraper.ManifestFilter) ([]*scraper.ManifestEntry, error)
}

func (s *ManifestService) RecordDownload(ctx context.Context, entry *scraper.ManifestEntry) error {
	return s.RecordDownloadFn(ctx, entry)
}

func (s *ManifestService) FindEntries(ctx context.Context, filter scraper.ManifestFilter) ([]*scraper.ManifestEntry, error) {
	return s.FindEntriesFn(ctx, filter)
}
