// Package metals tags table rows that mention gold or silver and groups
// their prices by carat category, the way the source site organizes them.
package metals

import (
	"regexp"
	"strings"

	"bullion-scraper/models"
	"bullion-scraper/pkg/prices"
)

// Carat categories used by the source site.
const (
	Carat22       = "22_carat"
	Carat21       = "21_carat"
	Carat18       = "18_carat"
	Traditional   = "traditional"
	Uncategorized = "all"
)

var (
	goldKeywords   = []string{"gold", "সোনা"}
	silverKeywords = []string{"silver", "রূপা", "রুপা"}

	// A cell holding only a carat number is a label, not a price.
	caratOnly = regexp.MustCompile(`^(18|21|22)(\s+karat)?$`)
)

// Descriptive cells like "Gold 22 Carat" carry carat numbers that a
// bare numeric extraction would read as prices. Per-metal floors keep
// those labels out of MetalRow.Prices.
const (
	minGoldPrice   = 1000
	minSilverPrice = 100
)

// Classify scans every table row for gold and silver mentions. Returns
// nil when the page has neither.
func Classify(tables []models.Table) *models.MetalReport {
	report := &models.MetalReport{}

	for _, t := range tables {
		for _, row := range t.Rows {
			cells := t.RowCells(row)
			text := strings.ToLower(strings.Join(cells, " "))
			if text == "" {
				continue
			}
			if containsAny(text, goldKeywords) {
				report.Gold = append(report.Gold, metalRow(t.Index, cells, text, minGoldPrice))
			}
			if containsAny(text, silverKeywords) {
				report.Silver = append(report.Silver, metalRow(t.Index, cells, text, minSilverPrice))
			}
		}
	}

	if len(report.Gold) == 0 && len(report.Silver) == 0 {
		return nil
	}
	return report
}

func metalRow(tableIndex int, cells []string, rowText string, minPrice float64) models.MetalRow {
	mr := models.MetalRow{
		Table:    tableIndex,
		Category: categorize(rowText),
		Cells:    cells,
	}

	for _, cell := range cells {
		if caratOnly.MatchString(strings.ToLower(strings.TrimSpace(cell))) {
			continue
		}
		if v, ok := prices.Extract(cell); ok && v > minPrice {
			mr.Prices = append(mr.Prices, v)
		}
	}

	return mr
}

func categorize(rowText string) string {
	switch {
	case strings.Contains(rowText, "22"):
		return Carat22
	case strings.Contains(rowText, "21"):
		return Carat21
	case strings.Contains(rowText, "18"):
		return Carat18
	case strings.Contains(rowText, "traditional") || strings.Contains(rowText, "ট্র্যাডিশনাল"):
		return Traditional
	default:
		return Uncategorized
	}
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// Averages returns the integer mean price per carat category across rows.
func Averages(rows []models.MetalRow) map[string]int {
	sums := map[string]float64{}
	counts := map[string]int{}

	for _, r := range rows {
		for _, p := range r.Prices {
			sums[r.Category] += p
			counts[r.Category]++
		}
	}

	avgs := make(map[string]int, len(sums))
	for cat, sum := range sums {
		avgs[cat] = int(sum / float64(counts[cat]))
	}
	return avgs
}
