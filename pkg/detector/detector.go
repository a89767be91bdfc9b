// Package detector classifies article URLs and enriches metadata from
// signals the meta tags miss.
package detector

import (
	"net/url"
	"strings"

	readability "github.com/go-shiori/go-readability"
	"github.com/pemistahl/lingua-go"
)

// Mode selects the pipeline's operating mode for a document.
type Mode string

const (
	// ModeSingle summarizes the document as one unit.
	ModeSingle Mode = "single"
	// ModeSectioned segments the document and summarizes each section
	// independently alongside an aggregate summary.
	ModeSectioned Mode = "sectioned"
)

// referenceHosts are host suffixes of reference-style sites whose pages
// are long-form and heavily sectioned.
var referenceHosts = []string{
	"wikipedia.org",
	"wiktionary.org",
	"wikibooks.org",
}

// Enrichment holds readability-derived metadata used to fill fields the
// page's meta tags did not provide.
type Enrichment struct {
	Author        string
	Excerpt       string
	SiteName      string
	PublishedTime string
}

// Detect picks the operating mode from the URL shape. Reference-site
// hosts and /wiki/ paths get sectioned treatment.
func Detect(rawURL string) Mode {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ModeSingle
	}

	host := strings.ToLower(u.Host)
	for _, suffix := range referenceHosts {
		if host == suffix || strings.HasSuffix(host, "."+suffix) {
			return ModeSectioned
		}
	}
	if strings.HasPrefix(strings.ToLower(u.Path), "/wiki/") {
		return ModeSectioned
	}
	return ModeSingle
}

// Enrich runs a readability pass over the raw HTML and returns metadata
// fallbacks. Failures yield an empty enrichment, never an error: the
// pipeline works fine without it.
func Enrich(rawURL, html string) Enrichment {
	var em Enrichment

	u, err := url.Parse(rawURL)
	if err != nil {
		return em
	}

	parser := readability.NewParser()
	article, err := parser.Parse(strings.NewReader(html), u)
	if err != nil {
		return em
	}

	em.Author = article.Byline
	em.Excerpt = article.Excerpt
	em.SiteName = article.SiteName
	if article.PublishedTime != nil {
		em.PublishedTime = article.PublishedTime.Format("2006-01-02")
	}
	return em
}

var languageDetector = lingua.NewLanguageDetectorBuilder().
	FromLanguages(
		lingua.English, lingua.German, lingua.French, lingua.Spanish,
		lingua.Portuguese, lingua.Italian, lingua.Dutch, lingua.Russian,
		lingua.Japanese, lingua.Chinese,
	).
	Build()

// Language detects the article language, returning the lowercase
// ISO-639-1 code and a confidence in [0,1]. Unknown text yields ("", 0).
func Language(text string) (string, float64) {
	if strings.TrimSpace(text) == "" {
		return "", 0
	}

	lang, ok := languageDetector.DetectLanguageOf(text)
	if !ok {
		return "", 0
	}
	confidence := languageDetector.ComputeLanguageConfidence(text, lang)
	return strings.ToLower(lang.IsoCode639_1().String()), confidence
}
