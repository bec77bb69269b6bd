package scraper

import (
	"net/url"
	"path/filepath"
	"strings"
	"sync"
)

// DefaultFolderName is used when neither the URL path, the page title,
// nor the domain yield a usable folder name.
const DefaultFolderName = "website"

// FolderResolver maps page URLs to destination folders under a single
// root download directory. Resolution is memoized per page URL so every
// resource from one page lands in the same folder. Safe for concurrent
// use.
type FolderResolver struct {
	root  string
	flat  bool
	namer *Namer

	mu    sync.Mutex
	cache map[string]string
}

// NewFolderResolver creates a resolver rooted at the given download
// directory. When flat is true every page maps to the root directory
// itself; otherwise pages get a nested folder tree mirroring the URL
// path, with the page title substituted for the final segment when it
// is more descriptive.
func NewFolderResolver(root string, namer *Namer, flat bool) *FolderResolver {
	return &FolderResolver{
		root:  root,
		flat:  flat,
		namer: namer,
		cache: make(map[string]string),
	}
}

// Root returns the root download directory.
func (r *FolderResolver) Root() string {
	return r.root
}

// Resolve returns the destination folder for a page. The first call for
// a page URL decides the folder; later calls return the cached path and
// ignore the title argument.
func (r *FolderResolver) Resolve(pageURL, pageTitle string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if dir, ok := r.cache[pageURL]; ok {
		return dir
	}

	dir := r.resolve(pageURL, pageTitle)
	r.cache[pageURL] = dir
	return dir
}

// Folders returns a copy of the page URL to folder mapping resolved so
// far, for run summaries.
func (r *FolderResolver) Folders() map[string]string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string]string, len(r.cache))
	for k, v := range r.cache {
		out[k] = v
	}
	return out
}

func (r *FolderResolver) resolve(pageURL, pageTitle string) string {
	if r.flat {
		return r.root
	}

	u, err := url.Parse(pageURL)
	if err != nil {
		return filepath.Join(r.root, DefaultFolderName)
	}

	var parts []string
	for _, seg := range strings.Split(u.Path, "/") {
		if seg == "" {
			continue
		}
		if clean := r.namer.Sanitize(seg); clean != "" {
			parts = append(parts, clean)
		}
	}

	// A descriptive page title replaces the last path segment.
	if pageTitle != "" {
		if title := r.namer.Sanitize(pageTitle); title != "" {
			if len(parts) == 0 {
				parts = append(parts, title)
			} else if title != parts[len(parts)-1] {
				parts[len(parts)-1] = title
			}
		}
	}

	if len(parts) == 0 {
		domain := strings.TrimPrefix(u.Hostname(), "www.")
		name := r.namer.Sanitize(domain)
		if name == "" {
			name = DefaultFolderName
		}
		parts = []string{name}
	}

	return filepath.Join(append([]string{r.root}, parts...)...)
}
