package mock

import (
	"context"

	scraper "github.com/webpoint-solutions-llc/web-resource-scraper"
)

var _ scraper.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of scraper.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *scraper.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *scraper.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}
