package mock

import (
	"context"
	"io"

	scraper "github.com/webpoint-solutions-llc/web-resource-scraper"
)

var _ scraper.Transport = (*Transport)(nil)

// Transport is a mock implementation of scraper.Transport.
type Transport struct {
	OpenFn func(ctx context.Context, url string) (io.ReadCloser, error)
}

func (t *Transport) Open(ctx context.Context, url string) (io.ReadCloser, error) {
	return t.OpenFn(ctx, url)
}
