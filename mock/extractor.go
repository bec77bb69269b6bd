package mock

import (
	scraper "github.com/webpoint-solutions-llc/web-resource-scraper"
)

var _ scraper.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of scraper.Extractor.
type Extractor struct {
	ExtractFn func(html string, pageURL string) (*scraper.Extraction, error)
}

func (e *Extractor) Extract(html string, pageURL string) (*scraper.Extraction, error) {
	return e.ExtractFn(html, pageURL)
}
