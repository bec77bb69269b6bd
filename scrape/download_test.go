package scrape_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	scraper "github.com/webpoint-solutions-llc/web-resource-scraper"
	"github.com/webpoint-solutions-llc/web-resource-scraper/mock"
	"github.com/webpoint-solutions-llc/web-resource-scraper/scrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownloader_Download(t *testing.T) {
	t.Parallel()

	t.Run("writes the resource to disk", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		d := &scrape.Downloader{
			Transport: stringTransport("%PDF-1.4 report body"),
			Dedup:     scrape.NewDedup(),
		}

		res := &scraper.Resource{
			ResourceURL:       "https://example.com/files/report.pdf",
			GeneratedFilename: "Annual_Report_2024.pdf",
		}
		got, err := d.Download(context.Background(), res, dir)
		require.NoError(t, err)

		assert.Equal(t, filepath.Join(dir, "Annual_Report_2024.pdf"), got.Path)
		assert.Equal(t, int64(len("%PDF-1.4 report body")), got.Bytes)
		assert.NotEmpty(t, got.ContentHash)
		assert.False(t, got.Skipped)
		assert.Equal(t, got.Path, res.DownloadedPath)

		data, err := os.ReadFile(got.Path)
		require.NoError(t, err)
		assert.Equal(t, "%PDF-1.4 report body", string(data))
	})

	t.Run("creates the destination folder", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "example.com", "reports")
		d := &scrape.Downloader{
			Transport: stringTransport("data"),
			Dedup:     scrape.NewDedup(),
		}

		res := &scraper.Resource{
			ResourceURL:       "https://example.com/a.pdf",
			GeneratedFilename: "a.pdf",
		}
		got, err := d.Download(context.Background(), res, dir)
		require.NoError(t, err)
		assert.FileExists(t, got.Path)
	})

	t.Run("repeated URL skips without a second transfer", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		opens := 0
		d := &scrape.Downloader{
			Transport: &mock.Transport{
				OpenFn: func(ctx context.Context, url string) (io.ReadCloser, error) {
					opens++
					return io.NopCloser(strings.NewReader("data")), nil
				},
			},
			Dedup: scrape.NewDedup(),
		}

		first := &scraper.Resource{ResourceURL: "https://example.com/a.pdf", GeneratedFilename: "a.pdf"}
		_, err := d.Download(context.Background(), first, dir)
		require.NoError(t, err)
		require.Equal(t, 1, d.Dedup.Len())

		second := &scraper.Resource{ResourceURL: "https://example.com/a.pdf", GeneratedFilename: "other.pdf"}
		got, err := d.Download(context.Background(), second, dir)
		require.NoError(t, err)

		assert.True(t, got.Skipped)
		assert.Equal(t, 1, opens)
		assert.Equal(t, 1, d.Dedup.Len())
	})

	t.Run("filename collision gets a numeric suffix", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		d := &scrape.Downloader{
			Transport: stringTransport("data"),
			Dedup:     scrape.NewDedup(),
		}

		first := &scraper.Resource{ResourceURL: "https://example.com/a/handout.pdf", GeneratedFilename: "Handout.pdf"}
		got1, err := d.Download(context.Background(), first, dir)
		require.NoError(t, err)

		second := &scraper.Resource{ResourceURL: "https://example.com/b/handout.pdf", GeneratedFilename: "Handout.pdf"}
		got2, err := d.Download(context.Background(), second, dir)
		require.NoError(t, err)

		assert.Equal(t, filepath.Join(dir, "Handout.pdf"), got1.Path)
		assert.Equal(t, filepath.Join(dir, "Handout_1.pdf"), got2.Path)
		assert.FileExists(t, got1.Path)
		assert.FileExists(t, got2.Path)
	})

	t.Run("transfer failure leaves no partial file or dedup entry", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		d := &scrape.Downloader{
			Transport: &mock.Transport{
				OpenFn: func(ctx context.Context, url string) (io.ReadCloser, error) {
					return io.NopCloser(&failingReader{}), nil
				},
			},
			Dedup:       scrape.NewDedup(),
			RetryDelays: []time.Duration{},
		}

		res := &scraper.Resource{ResourceURL: "https://example.com/a.pdf", GeneratedFilename: "a.pdf"}
		_, err := d.Download(context.Background(), res, dir)
		require.Error(t, err)
		assert.Equal(t, scraper.EUNAVAILABLE, scraper.ErrorCode(err))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
		assert.Equal(t, 0, d.Dedup.Len())
	})

	t.Run("retries a failed transfer", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		opens := 0
		d := &scrape.Downloader{
			Transport: &mock.Transport{
				OpenFn: func(ctx context.Context, url string) (io.ReadCloser, error) {
					opens++
					if opens == 1 {
						return nil, scraper.Errorf(scraper.EUNAVAILABLE, "connection reset")
					}
					return io.NopCloser(strings.NewReader("data")), nil
				},
			},
			Dedup:       scrape.NewDedup(),
			RetryDelays: []time.Duration{time.Millisecond},
		}

		res := &scraper.Resource{ResourceURL: "https://example.com/a.pdf", GeneratedFilename: "a.pdf"}
		got, err := d.Download(context.Background(), res, dir)
		require.NoError(t, err)

		assert.Equal(t, 2, opens)
		assert.FileExists(t, got.Path)
	})

	t.Run("records a manifest entry", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		var recorded *scraper.ManifestEntry
		d := &scrape.Downloader{
			Transport: stringTransport("data"),
			Dedup:     scrape.NewDedup(),
			Manifest: &mock.ManifestService{
				RecordDownloadFn: func(ctx context.Context, entry *scraper.ManifestEntry) error {
					recorded = entry
					return nil
				},
			},
		}

		res := &scraper.Resource{
			SourceURL:         "https://example.com/docs",
			ResourceURL:       "https://example.com/a.pdf",
			LinkText:          "Annual Report",
			GeneratedFilename: "a.pdf",
		}
		got, err := d.Download(context.Background(), res, dir)
		require.NoError(t, err)

		require.NotNil(t, recorded)
		assert.Equal(t, "https://example.com/docs", recorded.SourceURL)
		assert.Equal(t, "https://example.com/a.pdf", recorded.ResourceURL)
		assert.Equal(t, "Annual Report", recorded.LinkText)
		assert.Equal(t, got.Path, recorded.FilePath)
		assert.Equal(t, got.ContentHash, recorded.ContentHash)
		assert.Equal(t, got.Bytes, recorded.Bytes)
	})

	t.Run("skipped download records nothing", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		records := 0
		d := &scrape.Downloader{
			Transport: stringTransport("data"),
			Dedup:     scrape.NewDedup(),
			Manifest: &mock.ManifestService{
				RecordDownloadFn: func(ctx context.Context, entry *scraper.ManifestEntry) error {
					records++
					return nil
				},
			},
		}

		res := &scraper.Resource{ResourceURL: "https://example.com/a.pdf", GeneratedFilename: "a.pdf"}
		_, err := d.Download(context.Background(), res, dir)
		require.NoError(t, err)

		again := &scraper.Resource{ResourceURL: "https://example.com/a.pdf", GeneratedFilename: "a.pdf"}
		got, err := d.Download(context.Background(), again, dir)
		require.NoError(t, err)

		assert.True(t, got.Skipped)
		assert.Equal(t, 1, records)
	})

	t.Run("invalid resource", func(t *testing.T) {
		t.Parallel()

		d := &scrape.Downloader{
			Transport: stringTransport("data"),
			Dedup:     scrape.NewDedup(),
		}

		_, err := d.Download(context.Background(), &scraper.Resource{GeneratedFilename: "a.pdf"}, t.TempDir())
		require.Error(t, err)
		assert.Equal(t, scraper.EINVALID, scraper.ErrorCode(err))
	})
}

// stringTransport returns a transport whose every open yields body.
func stringTransport(body string) *mock.Transport {
	return &mock.Transport{
		OpenFn: func(ctx context.Context, url string) (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(body)), nil
		},
	}
}

// failingReader fails partway through a read.
type failingReader struct{}

func (r *failingReader) Read(p []byte) (int, error) {
	return 0, errors.New("connection reset by peer")
}
