package http

import (
	"context"
	"io"
	"net/http"
	"time"

	scraper "github.com/webpoint-solutions-llc/web-resource-scraper"
)

// Ensure Transport implements scraper.Transport at compile time.
var _ scraper.Transport = (*Transport)(nil)

// Transport opens resource bodies as streams so downloads never buffer
// whole files in memory. Unlike the page Fetcher it sets no overall
// client timeout: large media transfers can legitimately outlive any
// fixed deadline, so cancellation is left to the request context.
type Transport struct {
	client    *http.Client
	userAgent string
}

// TransportOption configures a Transport.
type TransportOption func(*Transport)

// WithTransportUserAgent overrides the User-Agent header.
func WithTransportUserAgent(ua string) TransportOption {
	return func(t *Transport) {
		t.userAgent = ua
	}
}

// WithTransportClient supplies a custom HTTP client.
func WithTransportClient(client *http.Client) TransportOption {
	return func(t *Transport) {
		t.client = client
	}
}

// NewTransport creates a streaming download Transport.
func NewTransport(opts ...TransportOption) *Transport {
	t := &Transport{
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(t)
	}

	if t.client == nil {
		t.client = &http.Client{
			Transport: &http.Transport{
				ResponseHeaderTimeout: 30 * time.Second,
			},
		}
	}

	return t
}

// Open issues a GET for the resource and returns its body stream.
// The caller must close the returned reader. Non-2xx responses return an
// EUNAVAILABLE error.
func (t *Transport) Open(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, scraper.Errorf(scraper.EINVALID, "invalid URL %q: %v", url, err)
	}
	req.Header.Set("User-Agent", t.userAgent)

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, scraper.Errorf(scraper.EUNAVAILABLE, "download %s: %v", url, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, scraper.Errorf(scraper.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, url)
	}

	return resp.Body, nil
}
