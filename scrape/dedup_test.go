package scrape_test

import (
	"testing"

	"github.com/webpoint-solutions-llc/web-resource-scraper/scrape"
	"github.com/stretchr/testify/assert"
)

func TestDedup(t *testing.T) {
	t.Parallel()

	t.Run("unseen URL", func(t *testing.T) {
		t.Parallel()

		d := scrape.NewDedup()
		assert.False(t, d.Seen("https://example.com/a.pdf"))
		assert.Equal(t, 0, d.Len())
	})

	t.Run("added URL is seen", func(t *testing.T) {
		t.Parallel()

		d := scrape.NewDedup()
		d.Add("https://example.com/a.pdf")

		assert.True(t, d.Seen("https://example.com/a.pdf"))
		assert.False(t, d.Seen("https://example.com/b.pdf"))
		assert.Equal(t, 1, d.Len())
	})

	t.Run("re-adding does not grow the set", func(t *testing.T) {
		t.Parallel()

		d := scrape.NewDedup()
		d.Add("https://example.com/a.pdf")
		d.Add("https://example.com/a.pdf")

		assert.Equal(t, 1, d.Len())
	})
}
