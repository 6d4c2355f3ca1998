// Package extractor converts the HTML tables on a page into ordered row
// mappings, and exposes the page's visible text for the price filter.
package extractor

import (
	"bufio"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"bullion-scraper/models"
)

// Tables extracts every table element in document order. A page with no
// tables yields an empty slice, not an error.
func Tables(doc *goquery.Document) []models.Table {
	tables := []models.Table{}
	doc.Find("table").Each(func(i int, sel *goquery.Selection) {
		tables = append(tables, extractTable(i+1, sel))
	})
	return tables
}

func extractTable(index int, s *goquery.Selection) models.Table {
	t := models.Table{Index: index, Rows: []map[string]string{}}

	// Explicit header row
	s.Find("thead tr th").Each(func(_ int, th *goquery.Selection) {
		t.Headers = append(t.Headers, normalizeText(th.Text()))
	})

	rows := s.Find("tr").Not("thead tr")

	// Fallback: a first row made entirely of th cells is a header row
	if len(t.Headers) == 0 {
		first := rows.First()
		if first.Length() > 0 && first.Find("th").Length() > 0 && first.Find("td").Length() == 0 {
			first.Find("th").Each(func(_ int, th *goquery.Selection) {
				t.Headers = append(t.Headers, normalizeText(th.Text()))
			})
			rows = rows.Slice(1, rows.Length())
		}
	}

	rows.Each(func(_ int, tr *goquery.Selection) {
		row := map[string]string{}
		tr.Find("th,td").Each(func(j int, cell *goquery.Selection) {
			key := columnKey(t.Headers, j)
			if key == "" {
				return // extra cell beyond the known columns
			}
			row[key] = normalizeText(cell.Text())
		})
		if len(row) > 0 {
			t.Rows = append(t.Rows, row)
		}
	})

	return t
}

// columnKey maps a cell position to its row key: the header at that
// position, or the position itself when the table has no headers or
// the header cell is blank. Returns "" for cells past the last header;
// those are ignored.
func columnKey(headers []string, i int) string {
	if len(headers) == 0 {
		return strconv.Itoa(i)
	}
	if i >= len(headers) {
		return ""
	}
	if headers[i] == "" {
		return strconv.Itoa(i)
	}
	return headers[i]
}

// DocumentText returns the visible text of the page, one text node per
// line, with script, style and noscript content skipped.
func DocumentText(doc *goquery.Document) string {
	var sb strings.Builder

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript":
				return
			}
		}
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				sb.WriteString(text)
				sb.WriteByte('\n')
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	for _, n := range doc.Nodes {
		walk(n)
	}

	return strings.TrimRight(sb.String(), "\n")
}

// normalizeText cleans up a string by trimming space and collapsing
// internal newlines into single spaces.
func normalizeText(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	scanner := bufio.NewScanner(strings.NewReader(input))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			b.WriteString(line)
			b.WriteString(" ")
		}
	}
	return strings.TrimSpace(b.String())
}
