package main

import (
	"fmt"
	"time"

	scraper "github.com/webpoint-solutions-llc/web-resource-scraper"
	"github.com/webpoint-solutions-llc/web-resource-scraper/scrape"
)

// Run executes the manifest command.
func (c *ManifestCmd) Run(deps *Dependencies) error {
	entries, err := deps.Manifests.FindEntries(deps.Ctx, scraper.ManifestFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", scraper.ErrorMessage(err))
		return err
	}

	if len(entries) == 0 {
		fmt.Fprintln(deps.Stdout, "No downloads recorded.")
		return nil
	}

	for _, e := range entries {
		fmt.Fprintf(deps.Stdout, "%s  %8s  %s  %s\n",
			e.DownloadedAt.Format(time.RFC3339), scrape.FormatBytes(e.Bytes), e.FilePath, e.ResourceURL)
	}
	fmt.Fprintf(deps.Stdout, "%d downloads recorded\n", len(entries))

	return nil
}
