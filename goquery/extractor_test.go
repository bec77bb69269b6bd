package goquery_test

import (
	"testing"

	scraper "github.com/webpoint-solutions-llc/web-resource-scraper"
	"github.com/webpoint-solutions-llc/web-resource-scraper/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newExtractor() *goquery.Extractor {
	return goquery.NewExtractor(&scraper.Namer{})
}

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("anchor with link text", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title>Special Sabbaths</title></head><body>
			<a href="/files/report.pdf">Annual Report 2024</a>
		</body></html>`

		ext, err := newExtractor().Extract(html, "https://www.example.org/special-sabbaths")
		require.NoError(t, err)

		assert.Equal(t, "Special Sabbaths", ext.Title)
		require.Len(t, ext.Resources, 1)

		res := ext.Resources[0]
		assert.Equal(t, "https://www.example.org/special-sabbaths", res.SourceURL)
		assert.Equal(t, "https://www.example.org/files/report.pdf", res.ResourceURL)
		assert.Equal(t, "Annual Report 2024", res.LinkText)
		assert.Equal(t, "report.pdf", res.OriginalFilename)
		assert.Equal(t, "Annual_Report_2024.pdf", res.GeneratedFilename)
	})

	t.Run("keyword match accepts extensionless anchor", func(t *testing.T) {
		t.Parallel()

		html := `<a href="/slides/talk-ppt">Conference Talk</a>`

		ext, err := newExtractor().Extract(html, "https://example.org/events")
		require.NoError(t, err)
		require.Len(t, ext.Resources, 1)
		assert.Equal(t, "Conference_Talk.pptx", ext.Resources[0].GeneratedFilename)
	})

	t.Run("title attribute used as fallback hint", func(t *testing.T) {
		t.Parallel()

		html := `<a href="/files/x.pdf" title="Quarterly Figures"></a>`

		ext, err := newExtractor().Extract(html, "https://example.org/reports")
		require.NoError(t, err)
		require.Len(t, ext.Resources, 1)
		assert.Equal(t, "Quarterly Figures", ext.Resources[0].Title)
		assert.Equal(t, "Quarterly_Figures.pdf", ext.Resources[0].GeneratedFilename)
	})

	t.Run("empty text falls back to original filename", func(t *testing.T) {
		t.Parallel()

		html := `<a href="/files/handout.pdf"></a>`

		ext, err := newExtractor().Extract(html, "https://example.org/class")
		require.NoError(t, err)
		require.Len(t, ext.Resources, 1)
		assert.Equal(t, "handout.pdf", ext.Resources[0].GeneratedFilename)
	})

	t.Run("ignores non-resource anchors", func(t *testing.T) {
		t.Parallel()

		html := `
			<a href="/about.html">About</a>
			<a href="mailto:hi@example.org">Mail</a>
			<a href="javascript:void(0)">Click</a>
			<a href="/contact">Contact</a>`

		ext, err := newExtractor().Extract(html, "https://example.org/")
		require.NoError(t, err)
		assert.Empty(t, ext.Resources)
	})

	t.Run("embeds accepted by exact extension only", func(t *testing.T) {
		t.Parallel()

		html := `
			<iframe src="/docs/schedule.pdf" title="Schedule"></iframe>
			<embed src="/media/intro.mp4">
			<object data="/docs/notes.docx"></object>
			<iframe src="/widgets/map"></iframe>`

		ext, err := newExtractor().Extract(html, "https://example.org/program")
		require.NoError(t, err)
		require.Len(t, ext.Resources, 3)

		assert.Equal(t, "Schedule.pdf", ext.Resources[0].GeneratedFilename)
		assert.Equal(t, "Schedule", ext.Resources[0].LinkText)

		// No title/alt: labeled as embedded and named from the hint fallback.
		assert.Equal(t, goquery.EmbedLinkText, ext.Resources[1].LinkText)
		assert.Equal(t, "Embedded_Resource.mp4", ext.Resources[1].GeneratedFilename)
		assert.Equal(t, "Embedded_Resource.docx", ext.Resources[2].GeneratedFilename)
	})

	t.Run("preserves document order without dedup", func(t *testing.T) {
		t.Parallel()

		html := `
			<a href="/files/a.pdf">First</a>
			<a href="/files/b.pdf">Second</a>
			<a href="/files/a.pdf">First again</a>`

		ext, err := newExtractor().Extract(html, "https://example.org/")
		require.NoError(t, err)
		require.Len(t, ext.Resources, 3)
		assert.Equal(t, "https://example.org/files/a.pdf", ext.Resources[0].ResourceURL)
		assert.Equal(t, "https://example.org/files/b.pdf", ext.Resources[1].ResourceURL)
		assert.Equal(t, "https://example.org/files/a.pdf", ext.Resources[2].ResourceURL)
	})

	t.Run("resolves absolute and relative hrefs", func(t *testing.T) {
		t.Parallel()

		html := `
			<a href="https://cdn.example.net/ext.pdf">External</a>
			<a href="docs/rel.pdf">Relative</a>`

		ext, err := newExtractor().Extract(html, "https://example.org/library/")
		require.NoError(t, err)
		require.Len(t, ext.Resources, 2)
		assert.Equal(t, "https://cdn.example.net/ext.pdf", ext.Resources[0].ResourceURL)
		assert.Equal(t, "https://example.org/library/docs/rel.pdf", ext.Resources[1].ResourceURL)
	})

	t.Run("invalid page URL", func(t *testing.T) {
		t.Parallel()

		_, err := newExtractor().Extract("<html></html>", "://bad")
		require.Error(t, err)
		assert.Equal(t, scraper.EINVALID, scraper.ErrorCode(err))
	})
}

func TestExtractor_PageTitleFallbacks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "title tag",
			html: `<head><title>From Title</title></head><h1>From H1</h1>`,
			want: "From Title",
		},
		{
			name: "h1 when no title",
			html: `<body><h1>From H1</h1></body>`,
			want: "From H1",
		},
		{
			name: "meta name title",
			html: `<head><meta name="title" content="From Meta"></head>`,
			want: "From Meta",
		},
		{
			name: "og title",
			html: `<head><meta property="og:title" content="From OG"></head>`,
			want: "From OG",
		},
		{
			name: "nothing",
			html: `<body><p>text</p></body>`,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ext, err := newExtractor().Extract(tt.html, "https://example.org/")
			require.NoError(t, err)
			assert.Equal(t, tt.want, ext.Title)
		})
	}
}
