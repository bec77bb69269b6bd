package scraper

import (
	"context"
	"io"
	"strings"
)

// Resource represents a downloadable document discovered on a page.
// Instances are created once per page scan and are immutable afterwards,
// except for DownloadedPath which is set after a successful transfer.
type Resource struct {
	// Absolute URL of the page the resource was discovered on.
	SourceURL string `json:"sourceUrl"`

	// Absolute URL of the file itself, resolved against SourceURL.
	ResourceURL string `json:"resourceUrl"`

	// Visible anchor text, or the embed's title/alt hint. May be empty.
	LinkText string `json:"linkText"`

	// The element's title attribute, used as a secondary naming hint.
	Title string `json:"title"`

	// Last path segment of ResourceURL. May be empty or extensionless.
	OriginalFilename string `json:"originalFilename"`

	// Filesystem-safe filename synthesized from the hints above.
	// Always non-empty, always ends in a recognized extension.
	GeneratedFilename string `json:"generatedFilename"`

	// Final on-disk path, set after a successful download.
	DownloadedPath string `json:"downloadedPath,omitempty"`
}

// Validate returns an error if the resource contains invalid fields.
func (r *Resource) Validate() error {
	if r.ResourceURL == "" {
		return Errorf(EINVALID, "resource URL required")
	}
	if r.GeneratedFilename == "" {
		return Errorf(EINVALID, "generated filename required")
	}
	if strings.ContainsAny(r.GeneratedFilename, `/\`) {
		return Errorf(EINVALID, "generated filename contains path separators")
	}
	return nil
}

// Extraction is the result of scanning one page's markup.
type Extraction struct {
	// Page title from the title tag, first heading, or meta tags.
	// May be empty.
	Title string

	// Discovered resources in document order. Not deduplicated;
	// dedup happens at download time, keyed by resource URL.
	Resources []*Resource
}

// Extractor discovers candidate resources in page markup.
type Extractor interface {
	// Extract parses the page HTML and returns the page title together
	// with every linked or embedded resource, with relative URLs
	// resolved against pageURL.
	Extract(html string, pageURL string) (*Extraction, error)
}

// Fetcher retrieves page markup from URLs.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (html string, err error)
}

// Transport opens raw byte streams for resource downloads.
// Implementations hide HTTP details (headers, status handling).
type Transport interface {
	// Open returns the resource body as a stream. The caller must close
	// the returned reader.
	Open(ctx context.Context, url string) (io.ReadCloser, error)
}

// DownloadResult describes the outcome of a single download.
type DownloadResult struct {
	// Final on-disk path, possibly bearing a collision suffix.
	// Empty when Skipped is true.
	Path string

	// Number of bytes written.
	Bytes int64

	// Hex-encoded xxHash of the downloaded bytes.
	ContentHash string

	// Skipped reports that the resource URL was already fetched in this
	// run and no transfer was issued.
	Skipped bool
}

// Downloader transfers a resource into a destination directory.
type Downloader interface {
	// Download streams the resource bytes to a collision-free path
	// under dir. Already-fetched URLs short-circuit with Skipped set
	// and no transfer. On success the resource's DownloadedPath is set
	// to the final path.
	Download(ctx context.Context, res *Resource, dir string) (*DownloadResult, error)
}
