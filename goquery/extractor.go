// Package goquery implements resource extraction from parsed page markup
// using the goquery HTML library.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	scraper "github.com/webpoint-solutions-llc/web-resource-scraper"
)

// EmbedLinkText labels embedded resources that carry no title or alt text.
const EmbedLinkText = "Embedded resource"

// embedFallbackName is the naming hint passed to filename synthesis for
// embeds, used when the embed's own text is unusable.
const embedFallbackName = "Embedded_Resource"

// Ensure Extractor implements scraper.Extractor at compile time.
var _ scraper.Extractor = (*Extractor)(nil)

// Extractor discovers downloadable resources in page markup.
//
// Anchors are accepted when their resolved URL ends with a recognized
// extension or contains a bare type keyword; the keyword heuristic
// intentionally over-selects to catch extension-less download endpoints.
// Embedded elements (embed, object, iframe) are restricted to exact
// extension matches to avoid false positives on generic iframes.
type Extractor struct {
	namer *scraper.Namer
}

// NewExtractor creates an Extractor using the given naming policy.
func NewExtractor(namer *scraper.Namer) *Extractor {
	return &Extractor{namer: namer}
}

// Extract parses the page HTML and returns the page title and all
// discovered resources in document order. No deduplication happens here;
// duplicates are resolved at download time, keyed by resource URL.
func (e *Extractor) Extract(html string, pageURL string) (*scraper.Extraction, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, scraper.Errorf(scraper.EINVALID, "invalid page URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, scraper.Errorf(scraper.EINVALID, "failed to parse HTML: %v", err)
	}

	ext := &scraper.Extraction{
		Title: pageTitle(doc),
	}

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if href == "" || isNonHTTPLink(href) {
			return
		}

		resolved := resolveURL(base, href)
		if resolved == "" {
			return
		}
		if !scraper.KnownExtension(resolved) && !scraper.KeywordMatch(resolved) {
			return
		}

		linkText := strings.TrimSpace(sel.Text())
		titleAttr := strings.TrimSpace(sel.AttrOr("title", ""))

		ext.Resources = append(ext.Resources, &scraper.Resource{
			SourceURL:         pageURL,
			ResourceURL:       resolved,
			LinkText:          linkText,
			Title:             titleAttr,
			OriginalFilename:  scraper.URLBasename(resolved),
			GeneratedFilename: e.namer.SynthesizeFilename(linkText, resolved, titleAttr),
		})
	})

	doc.Find("embed, object, iframe").Each(func(_ int, sel *goquery.Selection) {
		src := sel.AttrOr("src", "")
		if src == "" {
			src = sel.AttrOr("data", "")
		}
		if src == "" || isNonHTTPLink(src) {
			return
		}

		resolved := resolveURL(base, src)
		if resolved == "" || !scraper.KnownExtension(resolved) {
			return
		}

		hint := strings.TrimSpace(sel.AttrOr("title", ""))
		if hint == "" {
			hint = strings.TrimSpace(sel.AttrOr("alt", ""))
		}
		linkText := hint
		if linkText == "" {
			linkText = EmbedLinkText
		}

		ext.Resources = append(ext.Resources, &scraper.Resource{
			SourceURL:         pageURL,
			ResourceURL:       resolved,
			LinkText:          linkText,
			Title:             hint,
			OriginalFilename:  scraper.URLBasename(resolved),
			GeneratedFilename: e.namer.SynthesizeFilename(hint, resolved, embedFallbackName),
		})
	})

	return ext, nil
}

// pageTitle extracts a meaningful page title: the title tag, then the
// first h1, then meta title tags.
func pageTitle(doc *goquery.Document) string {
	if t := strings.TrimSpace(doc.Find("title").First().Text()); t != "" {
		return t
	}
	if t := strings.TrimSpace(doc.Find("h1").First().Text()); t != "" {
		return t
	}
	if t := strings.TrimSpace(doc.Find(`meta[name="title"]`).AttrOr("content", "")); t != "" {
		return t
	}
	return strings.TrimSpace(doc.Find(`meta[property="og:title"]`).AttrOr("content", ""))
}

// resolveURL resolves a relative href against the page URL, stripping
// fragments. Returns "" if the href cannot be parsed.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""
	return resolved.String()
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
