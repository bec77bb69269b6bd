package scrape

import (
	"sync"

	"github.com/webpoint-solutions-llc/web-resource-scraper/bloom"
)

// Dedup sizing for a single run.
const (
	// dedupExpectedURLs is the expected number of resource URLs for
	// Bloom filter sizing.
	dedupExpectedURLs = 10000
	// dedupFalsePositiveRate is the acceptable false positive rate for
	// the fast-path filter.
	dedupFalsePositiveRate = 0.01
)

// Dedup is the run-scoped set of resource URLs already fetched. A Bloom
// filter answers the common "never seen" case without touching the exact
// set; positives are confirmed against a map so a false positive can
// never skip a download. Safe for concurrent use.
type Dedup struct {
	mu   sync.Mutex
	fast *bloom.Filter
	urls map[string]struct{}
}

// NewDedup creates an empty dedup set sized for one run.
func NewDedup() *Dedup {
	return &Dedup{
		fast: bloom.NewFilter(dedupExpectedURLs, dedupFalsePositiveRate),
		urls: make(map[string]struct{}),
	}
}

// Seen reports whether the URL was already fetched in this run.
func (d *Dedup) Seen(url string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.fast.Test(url) {
		return false
	}
	_, ok := d.urls[url]
	return ok
}

// Add marks the URL as fetched. Called only after a successful write.
func (d *Dedup) Add(url string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.fast.Add(url)
	d.urls[url] = struct{}{}
}

// Len returns the number of distinct URLs fetched so far.
func (d *Dedup) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.urls)
}
