// Package models defines the data structures shared across the scrape pipeline.
package models

import (
	"sort"
	"strconv"
)

// Table is one HTML table from the source page, flattened into row maps.
// Index is 1-based and follows document order. Headers may be empty when
// the table has no header row; rows then use positional decimal-string
// keys ("0", "1", ...).
type Table struct {
	Index   int                 `json:"index"`
	Headers []string            `json:"headers,omitempty"`
	Rows    []map[string]string `json:"rows"`
}

// RowCells returns a row's cells in column order. With headers present
// there is one cell per header, empty string when the row has no value
// for that column. Without headers the positional keys decide the order.
func (t Table) RowCells(row map[string]string) []string {
	if len(t.Headers) > 0 {
		cells := make([]string, len(t.Headers))
		for i, h := range t.Headers {
			key := h
			if key == "" {
				// blank header cell, the row keyed it by position
				key = strconv.Itoa(i)
			}
			cells[i] = row[key]
		}
		return cells
	}

	positions := make([]int, 0, len(row))
	for k := range row {
		if p, err := strconv.Atoi(k); err == nil {
			positions = append(positions, p)
		}
	}
	sort.Ints(positions)

	cells := make([]string, 0, len(positions))
	for _, p := range positions {
		cells = append(cells, row[strconv.Itoa(p)])
	}
	return cells
}

// PageMeta carries best-effort metadata about the fetched page.
type PageMeta struct {
	Title              string  `json:"title,omitempty"`
	Excerpt            string  `json:"excerpt,omitempty"`
	SiteName           string  `json:"site_name,omitempty"`
	Author             string  `json:"author,omitempty"`
	PublishedTime      string  `json:"published_time,omitempty"`
	Language           string  `json:"language,omitempty"` // ISO-639-1
	LanguageConfidence float64 `json:"language_confidence,omitempty"`
	Country            string  `json:"country,omitempty"` // TLD-based guess
}

// MetalRow is a table row that mentions gold or silver, with the prices
// found in its cells.
type MetalRow struct {
	Table    int       `json:"table"`
	Category string    `json:"category"` // 22_carat, 21_carat, 18_carat, traditional, all
	Cells    []string  `json:"cells"`
	Prices   []float64 `json:"prices,omitempty"`
}

// MetalReport groups the gold and silver rows found on the page.
type MetalReport struct {
	Gold   []MetalRow `json:"gold,omitempty"`
	Silver []MetalRow `json:"silver,omitempty"`
}

// ScrapeResult is the complete output of one pipeline run. It is built
// once, written to the export files, and discarded.
type ScrapeResult struct {
	SourceURL   string       `json:"source_url"`
	Timestamp   string       `json:"timestamp"` // RFC 3339
	Page        *PageMeta    `json:"page,omitempty"`
	Tables      []Table      `json:"tables"`
	ValidPrices []float64    `json:"valid_prices"`
	Metals      *MetalReport `json:"metals,omitempty"`
}
