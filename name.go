package scraper

import (
	"net/url"
	"path"
	"regexp"
	"strings"
)

// DefaultMaxNameLength is the sanitized-name length cap in runes.
const DefaultMaxNameLength = 100

// DefaultFilename is the fallback stem used when no usable text exists
// anywhere. Combined with the classified extension it guarantees filename
// synthesis is total.
const DefaultFilename = "document"

var (
	markupTagRe   = regexp.MustCompile(`<[^>]+>`)
	unsafeCharRe  = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	collapseRunRe = regexp.MustCompile(`[\s_]+`)
)

// Namer holds the naming policy for a run. The zero value preserves case
// and caps names at DefaultMaxNameLength.
type Namer struct {
	// Lowercase lowers sanitized text before further cleanup.
	Lowercase bool

	// MaxLength caps sanitized names, in runes. Zero means
	// DefaultMaxNameLength.
	MaxLength int
}

// Sanitize turns arbitrary untrusted text into a safe path segment.
// It strips markup tags, replaces characters outside the safe filesystem
// set with underscores, collapses whitespace/underscore runs, trims
// surrounding underscores and dots, and truncates to the length cap.
//
// Returns "" when no usable text remains; callers must treat that as
// "no name", not as a valid name. Sanitize is idempotent.
func (n *Namer) Sanitize(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	text = markupTagRe.ReplaceAllString(text, "")
	text = strings.TrimSpace(text)
	if n.Lowercase {
		text = strings.ToLower(text)
	}
	text = unsafeCharRe.ReplaceAllString(text, "_")
	text = collapseRunRe.ReplaceAllString(text, "_")
	text = strings.Trim(text, "_.")

	max := n.MaxLength
	if max <= 0 {
		max = DefaultMaxNameLength
	}
	if runes := []rune(text); len(runes) > max {
		text = strings.TrimRight(string(runes[:max]), "_.")
	}

	return text
}

// SynthesizeFilename builds the final filename for a resource.
//
// Resolution order: sanitized link text when meaningful (more than two
// runes), then the sanitized fallback hint, then the original URL basename
// when it carries an extension, then DefaultFilename. The extension comes
// from Classify except in the original-basename case, which is preserved
// verbatim. Never returns an empty string.
func (n *Namer) SynthesizeFilename(linkText, resourceURL, fallback string) string {
	ext := Classify(resourceURL)

	if s := n.Sanitize(linkText); len([]rune(s)) > 2 {
		return s + ext
	}

	if fallback != "" {
		if s := n.Sanitize(fallback); s != "" {
			return s + ext
		}
		return DefaultFilename + ext
	}

	if base := URLBasename(resourceURL); strings.Contains(base, ".") {
		return base
	}
	return DefaultFilename + ext
}

// classifyRule maps a URL suffix or bare keyword to a file extension.
type classifyRule struct {
	match   string
	keyword bool // substring match on the whole URL instead of path suffix
	ext     string
}

// classifyRules is checked in order; first match wins. Suffix rules come
// first, then keywords by priority. New types are added as table entries.
var classifyRules = []classifyRule{
	{match: ".pdf", ext: ".pdf"},
	{match: ".ppt", ext: ".ppt"},
	{match: ".pptx", ext: ".pptx"},
	{match: ".doc", ext: ".doc"},
	{match: ".docx", ext: ".docx"},
	{match: ".xls", ext: ".xls"},
	{match: ".mp4", ext: ".mp4"},
	{match: "pdf", keyword: true, ext: ".pdf"},
	{match: "ppt", keyword: true, ext: ".pptx"},
	{match: "docx", keyword: true, ext: ".docx"},
	{match: "xls", keyword: true, ext: ".xls"},
	{match: "mp4", keyword: true, ext: ".mp4"},
	{match: "doc", keyword: true, ext: ".doc"},
}

// DefaultExtension is assumed when no classification rule matches.
const DefaultExtension = ".pdf"

// Classify maps a URL to a recognized resource extension.
//
// This is a heuristic, not a content-type check: exact path suffixes are
// tried first, then bare keywords anywhere in the URL. Unmatched URLs
// default to DefaultExtension. False positives are accepted rather than
// spending a network round trip on verification.
func Classify(rawURL string) string {
	lowered := strings.ToLower(rawURL)

	urlPath := lowered
	if u, err := url.Parse(rawURL); err == nil {
		urlPath = strings.ToLower(u.Path)
	}

	for _, rule := range classifyRules {
		if rule.keyword {
			if strings.Contains(lowered, rule.match) {
				return rule.ext
			}
		} else if strings.HasSuffix(urlPath, rule.match) {
			return rule.ext
		}
	}
	return DefaultExtension
}

// KnownExtension reports whether the URL's path ends with a recognized
// resource extension.
func KnownExtension(rawURL string) bool {
	urlPath := strings.ToLower(rawURL)
	if u, err := url.Parse(rawURL); err == nil {
		urlPath = strings.ToLower(u.Path)
	}
	for _, rule := range classifyRules {
		if !rule.keyword && strings.HasSuffix(urlPath, rule.match) {
			return true
		}
	}
	return false
}

// KeywordMatch reports whether the URL contains one of the bare type
// keywords anywhere. Used to catch extension-less download endpoints;
// intentionally over-selects.
func KeywordMatch(rawURL string) bool {
	lowered := strings.ToLower(rawURL)
	for _, rule := range classifyRules {
		if rule.keyword && strings.Contains(lowered, rule.match) {
			return true
		}
	}
	return false
}

// URLBasename returns the last path segment of a URL, or "" when the URL
// has no meaningful final segment.
func URLBasename(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	base := path.Base(u.Path)
	if base == "." || base == "/" {
		return ""
	}
	return base
}
