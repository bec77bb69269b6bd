package scraper

import (
	"context"
	"time"
)

// ManifestEntry records one successful download for run auditing.
// The manifest is reporting output only: nothing reads it back to decide
// what to download, so run state stays in memory.
type ManifestEntry struct {
	ID           string    `json:"id"`
	SourceURL    string    `json:"sourceUrl"`
	ResourceURL  string    `json:"resourceUrl"`
	LinkText     string    `json:"linkText"`
	FilePath     string    `json:"filePath"`
	ContentHash  string    `json:"contentHash"`
	Bytes        int64     `json:"bytes"`
	DownloadedAt time.Time `json:"downloadedAt"`
}

// Validate returns an error if the entry contains invalid fields.
func (e *ManifestEntry) Validate() error {
	if e.ResourceURL == "" {
		return Errorf(EINVALID, "manifest entry resource URL required")
	}
	if e.FilePath == "" {
		return Errorf(EINVALID, "manifest entry file path required")
	}
	return nil
}

// ManifestService persists download records.
type ManifestService interface {
	// RecordDownload stores a new entry, assigning its ID and timestamp.
	RecordDownload(ctx context.Context, entry *ManifestEntry) error

	// FindEntries retrieves entries matching the filter, oldest first.
	FindEntries(ctx context.Context, filter ManifestFilter) ([]*ManifestEntry, error)
}

// ManifestFilter represents a filter for FindEntries.
type ManifestFilter struct {
	SourceURL   *string `json:"sourceUrl"`
	ResourceURL *string `json:"resourceUrl"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
