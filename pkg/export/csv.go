package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"bullion-scraper/models"
)

// WriteCSV renders the result as one labeled block per table followed
// by a trailing block of valid prices:
//
//	Timestamp,<ts>
//	URL,<url>
//
//	Table 1
//	<header row>
//	<data rows>
//
//	Valid Prices
//	<one price per row>
func WriteCSV(path string, result *models.ScrapeResult) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	w := csv.NewWriter(f)

	records := [][]string{
		{"Timestamp", result.Timestamp},
		{"URL", result.SourceURL},
		{},
	}

	for _, t := range result.Tables {
		records = append(records, []string{fmt.Sprintf("Table %d", t.Index)})
		if len(t.Headers) > 0 {
			records = append(records, t.Headers)
		}
		for _, row := range t.Rows {
			records = append(records, t.RowCells(row))
		}
		records = append(records, []string{})
	}

	records = append(records, []string{"Valid Prices"})
	for _, p := range result.ValidPrices {
		records = append(records, []string{strconv.FormatFloat(p, 'f', -1, 64)})
	}

	if err := w.WriteAll(records); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
