package slog

import (
	"context"
	"io"
	"log/slog"
	"time"

	scraper "github.com/webpoint-solutions-llc/web-resource-scraper"
)

// Ensure LoggingTransport implements scraper.Transport.
var _ scraper.Transport = (*LoggingTransport)(nil)

// LoggingTransport wraps a Transport with debug logging. Only the open
// is timed; the body streams to the caller untouched.
type LoggingTransport struct {
	next   scraper.Transport
	logger *slog.Logger
}

// NewLoggingTransport creates a new LoggingTransport.
func NewLoggingTransport(next scraper.Transport, logger *slog.Logger) *LoggingTransport {
	return &LoggingTransport{next: next, logger: logger}
}

// Open delegates to the wrapped transport and logs the operation.
func (t *LoggingTransport) Open(ctx context.Context, url string) (body io.ReadCloser, err error) {
	defer func(begin time.Time) {
		t.logger.Debug("resource open",
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return t.next.Open(ctx, url)
}
