package slog

import (
	"context"
	"log/slog"
	"time"

	scraper "github.com/webpoint-solutions-llc/web-resource-scraper"
)

// Ensure LoggingDownloader implements scraper.Downloader.
var _ scraper.Downloader = (*LoggingDownloader)(nil)

// LoggingDownloader wraps a Downloader with per-resource logging.
type LoggingDownloader struct {
	next   scraper.Downloader
	logger *slog.Logger
}

// NewLoggingDownloader creates a new LoggingDownloader.
func NewLoggingDownloader(next scraper.Downloader, logger *slog.Logger) *LoggingDownloader {
	return &LoggingDownloader{next: next, logger: logger}
}

// Download delegates to the wrapped downloader and logs the outcome.
func (d *LoggingDownloader) Download(ctx context.Context, res *scraper.Resource, dir string) (result *scraper.DownloadResult, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"url", res.ResourceURL,
			"duration", time.Since(begin),
			"err", err,
		}
		if result != nil {
			attrs = append(attrs,
				"path", result.Path,
				"bytes", result.Bytes,
				"skipped", result.Skipped,
			)
		}
		d.logger.Info("download", attrs...)
	}(time.Now())
	return d.next.Download(ctx, res, dir)
}
