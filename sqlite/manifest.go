package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	scraper "github.com/webpoint-solutions-llc/web-resource-scraper"
)

// Compile-time interface verification.
var _ scraper.ManifestService = (*ManifestService)(nil)

// ManifestService implements scraper.ManifestService using SQLite.
type ManifestService struct {
	db *DB
}

// NewManifestService creates a new ManifestService.
func NewManifestService(db *DB) *ManifestService {
	return &ManifestService{db: db}
}

// RecordDownload persists one completed download. The entry's ID and
// DownloadedAt are assigned here.
func (s *ManifestService) RecordDownload(ctx context.Context, entry *scraper.ManifestEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	entry.ID = uuid.New().String()
	entry.DownloadedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO downloads (id, source_url, resource_url, link_text, file_path, content_hash, bytes, downloaded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, entry.ID, entry.SourceURL, entry.ResourceURL, entry.LinkText, entry.FilePath,
		entry.ContentHash, entry.Bytes, entry.DownloadedAt.Format(time.RFC3339))

	return err
}

// FindEntries retrieves manifest entries matching the filter, oldest
// first.
func (s *ManifestService) FindEntries(ctx context.Context, filter scraper.ManifestFilter) ([]*scraper.ManifestEntry, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, source_url, resource_url, link_text, file_path, content_hash, bytes, downloaded_at FROM downloads WHERE 1=1")

	if filter.SourceURL != nil {
		query.WriteString(" AND source_url = ?")
		args = append(args, *filter.SourceURL)
	}
	if filter.ResourceURL != nil {
		query.WriteString(" AND resource_url = ?")
		args = append(args, *filter.ResourceURL)
	}

	query.WriteString(" ORDER BY downloaded_at ASC, id ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*scraper.ManifestEntry
	for rows.Next() {
		var entry scraper.ManifestEntry
		var downloadedAt string

		if err := rows.Scan(&entry.ID, &entry.SourceURL, &entry.ResourceURL, &entry.LinkText,
			&entry.FilePath, &entry.ContentHash, &entry.Bytes, &downloadedAt); err != nil {
			return nil, err
		}

		entry.DownloadedAt, err = parseRFC3339(downloadedAt, "downloaded_at")
		if err != nil {
			return nil, err
		}

		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}
