// Package export serializes a ScrapeResult to the flat-file output
// formats. The JSON and CSV writers are independent; a failure in one
// must not stop the caller from attempting the other.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"bullion-scraper/models"
)

// WriteJSON writes the result as indented UTF-8 JSON, overwriting any
// previous run's file.
func WriteJSON(path string, result *models.ScrapeResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	if err := ensureDir(path); err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output dir for %s: %w", path, err)
	}
	return nil
}
