package scrape

import (
	"fmt"
	"io"
	"strings"

	"bullion-scraper/models"
	"bullion-scraper/pkg/metals"
)

// PrintSummary writes the human-readable run report to w. Logs go to
// stderr as JSON; this is the part meant for a person's eyes.
func PrintSummary(w io.Writer, result *models.ScrapeResult) {
	line := strings.Repeat("=", 70)

	fmt.Fprintln(w, line)
	fmt.Fprintln(w, "GOLD AND SILVER PRICE SCRAPER - SUMMARY")
	fmt.Fprintln(w, line)
	fmt.Fprintf(w, "Timestamp: %s\n", result.Timestamp)
	fmt.Fprintf(w, "URL:       %s\n", result.SourceURL)

	if result.Page != nil && result.Page.Title != "" {
		fmt.Fprintf(w, "Page:      %s\n", result.Page.Title)
	}
	if result.Page != nil && result.Page.Language != "" {
		fmt.Fprintf(w, "Language:  %s (%.2f)\n", result.Page.Language, result.Page.LanguageConfidence)
	}

	rowCount := 0
	for _, t := range result.Tables {
		rowCount += len(t.Rows)
	}
	fmt.Fprintf(w, "\nTables found: %d (%d rows)\n", len(result.Tables), rowCount)

	if result.Metals != nil {
		printMetal(w, "GOLD", result.Metals.Gold)
		printMetal(w, "SILVER", result.Metals.Silver)
	}

	fmt.Fprintf(w, "\nValid prices found: %d\n", len(result.ValidPrices))
	if len(result.ValidPrices) > 0 {
		top := result.ValidPrices
		if len(top) > 10 {
			top = top[:10]
		}
		fmt.Fprintln(w, "Top prices:")
		for i, p := range top {
			fmt.Fprintf(w, "  %2d. %.2f\n", i+1, p)
		}
	}

	fmt.Fprintln(w, line)
}

func printMetal(w io.Writer, name string, rows []models.MetalRow) {
	if len(rows) == 0 {
		return
	}

	fmt.Fprintf(w, "\n%s (%d rows):\n", name, len(rows))
	avgs := metals.Averages(rows)
	for _, cat := range []string{metals.Carat22, metals.Carat21, metals.Carat18, metals.Traditional, metals.Uncategorized} {
		if avg, ok := avgs[cat]; ok {
			fmt.Fprintf(w, "  %-12s avg %d\n", strings.ReplaceAll(cat, "_", " "), avg)
		}
	}
}
