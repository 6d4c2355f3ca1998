// Package prices implements the numeric token heuristic that decides
// which numbers on the page count as prices.
package prices

import (
	"regexp"
	"strconv"
	"strings"
)

// DefaultThreshold is the minimum value a number must exceed to be
// considered a valid price. Tuned to typical per-gram bullion prices in
// BDT; kept configurable rather than hard-coded.
const DefaultThreshold = 50

// tokenPattern matches digit sequences with optional thousands
// separators and at most one decimal point.
var tokenPattern = regexp.MustCompile(`\d[\d,]*(?:\.\d+)?`)

// currencyMarks strips the symbols the source site puts next to prices.
var currencyMarks = strings.NewReplacer("৳", "", "BDT", "", "TK", "", "Tk", "")

// Filter retains numeric tokens above a threshold.
type Filter struct {
	Threshold float64
}

func NewFilter(threshold float64) *Filter {
	return &Filter{Threshold: threshold}
}

// Scan tokenizes each text in order and returns every parseable number
// strictly greater than the threshold, in order of first appearance.
// Duplicates at different positions are retained; unparseable tokens
// are skipped silently.
func (f *Filter) Scan(texts ...string) []float64 {
	out := []float64{}
	for _, text := range texts {
		for _, tok := range tokenPattern.FindAllString(text, -1) {
			v, err := strconv.ParseFloat(strings.ReplaceAll(tok, ",", ""), 64)
			if err != nil {
				continue
			}
			if v > f.Threshold {
				out = append(out, v)
			}
		}
	}
	return out
}

// Extract returns the first number found in a single cell's text,
// ignoring currency symbols. The threshold does not apply here; callers
// decide what to do with the value.
func Extract(text string) (float64, bool) {
	cleaned := strings.TrimSpace(currencyMarks.Replace(text))
	tok := tokenPattern.FindString(cleaned)
	if tok == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(tok, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
