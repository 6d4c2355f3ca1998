// Package detector derives best-effort metadata about the fetched page:
// readability fields, document language, and a TLD country guess.
// Nothing here can fail the run; missing signals leave fields zero.
package detector

import (
	"net/url"
	"strings"
	"sync"

	"github.com/go-shiori/go-readability"
	"github.com/pemistahl/lingua-go"

	"bullion-scraper/models"
)

// Languages the detector distinguishes. The source site mixes Bengali
// and English; the rest cover plausible regional alternatives.
var candidateLanguages = []lingua.Language{
	lingua.English,
	lingua.Bengali,
	lingua.Hindi,
	lingua.Arabic,
}

var (
	langDetectorOnce sync.Once
	langDetector     lingua.LanguageDetector
)

// getLangDetector builds the lingua detector lazily; loading the
// language models is the expensive part.
func getLangDetector() lingua.LanguageDetector {
	langDetectorOnce.Do(func() {
		langDetector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(candidateLanguages...).
			Build()
	})
	return langDetector
}

// Analyze builds PageMeta from the raw page and its visible text.
func Analyze(rawURL string, html []byte, docText string) *models.PageMeta {
	meta := &models.PageMeta{}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		parsedURL = nil
	}

	if parsedURL != nil {
		meta.Country = detectCountry(parsedURL)

		readabilityParser := readability.NewParser()
		if article, err := readabilityParser.Parse(strings.NewReader(string(html)), parsedURL); err == nil {
			meta.Title = article.Title
			meta.Excerpt = article.Excerpt
			meta.SiteName = article.SiteName
			meta.Author = article.Byline
			if article.PublishedTime != nil {
				meta.PublishedTime = article.PublishedTime.Format("2006-01-02")
			}
		}
	}

	if lang, conf := DetectLanguage(docText); lang != "" {
		meta.Language = lang
		meta.LanguageConfidence = conf
	}

	return meta
}

// DetectLanguage returns the ISO-639-1 code and confidence for text,
// or "" when the text is empty or no candidate language matches.
func DetectLanguage(text string) (string, float64) {
	if strings.TrimSpace(text) == "" {
		return "", 0
	}

	detector := getLangDetector()
	lang, ok := detector.DetectLanguageOf(text)
	if !ok {
		return "", 0
	}

	conf := detector.ComputeLanguageConfidence(text, lang)
	return strings.ToLower(lang.IsoCode639_1().String()), conf
}

// detectCountry extracts a country guess from the TLD.
func detectCountry(u *url.URL) string {
	host := strings.ToLower(u.Hostname())
	parts := strings.Split(host, ".")

	if len(parts) < 2 {
		return ""
	}

	tld := parts[len(parts)-1]

	countries := map[string]string{
		"bd": "bd", "uk": "uk", "de": "de", "fr": "fr", "jp": "jp",
		"cn": "cn", "au": "au", "ca": "ca", "in": "in", "br": "br",
		"ru": "ru", "it": "it", "es": "es", "nl": "nl", "pk": "pk",
	}

	if country, ok := countries[tld]; ok {
		return country
	}

	// US implied for the legacy US-only TLDs
	if tld == "gov" || tld == "edu" || tld == "mil" {
		return "us"
	}

	return ""
}
