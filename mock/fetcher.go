// Package mock provides mock implementations of the scraper domain
// interfaces for testing.
package mock

import (
	"context"

	scraper "github.com/webpoint-solutions-llc/web-resource-scraper"
)

var _ scraper.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of scraper.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}
