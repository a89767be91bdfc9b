// Package parser extracts structured article content from raw HTML.
package parser

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/articast/articast/models"
)

var headingTags = map[string]int{
	"h1": 1, "h2": 2, "h3": 3, "h4": 4, "h5": 5, "h6": 6,
}

// titleSuffix strips trailing "- Site" / "| Site" style suffixes from a
// <title> tag value.
var titleSuffix = regexp.MustCompile(`\s*[-\x{2013}|]\s*.*$`)

type Parser struct{}

// Extract parses raw HTML into an ExtractedContent document. It never
// fails: unparseable markup or missing elements yield empty defaults.
func (p *Parser) Extract(html string) *models.ExtractedContent {
	content := &models.ExtractedContent{
		Metadata: models.Metadata{Tags: []string{}},
		Structure: models.Structure{
			Headings: []models.Heading{},
			Images:   []models.Image{},
			Links:    []models.Link{},
			Tables:   []models.Table{},
		},
		Subsections: []models.Subsection{},
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return content
	}

	// Non-content elements must go before any text collection.
	doc.Find("script,style,nav,footer,header").Remove()

	content.Metadata = extractMetadata(doc)
	content.Structure = extractStructure(doc)
	content.Text = extractText(doc)
	content.Subsections = extractSubsections(doc)

	return content
}

// ResolveTitle applies the title priority chain: extracted metadata
// title first, then the <title> tag with its site suffix stripped.
// Returns "" when neither is present; callers apply their own fallback.
func ResolveTitle(content *models.ExtractedContent, html string) string {
	if content != nil && content.Metadata.Title != "" {
		return content.Metadata.Title
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		return ""
	}
	return strings.TrimSpace(titleSuffix.ReplaceAllString(title, ""))
}

func metaContent(doc *goquery.Document, selectors ...string) string {
	for _, sel := range selectors {
		if v, ok := doc.Find(sel).First().Attr("content"); ok && v != "" {
			return v
		}
	}
	return ""
}

// extractMetadata coalesces metadata from meta tags, first present
// source winning per field.
func extractMetadata(doc *goquery.Document) models.Metadata {
	meta := models.Metadata{
		Title:         metaContent(doc, `meta[property="og:title"]`, `meta[property="twitter:title"]`),
		Author:        metaContent(doc, `meta[name="author"]`, `meta[property="article:author"]`),
		PublishedDate: metaContent(doc, `meta[property="article:published_time"]`, `meta[name="date"]`),
		Source:        metaContent(doc, `meta[property="og:site_name"]`),
		Tags:          []string{},
	}

	if keywords := metaContent(doc, `meta[name="keywords"]`); keywords != "" {
		for _, tag := range strings.Split(keywords, ",") {
			meta.Tags = append(meta.Tags, strings.TrimSpace(tag))
		}
	}
	return meta
}

func extractStructure(doc *goquery.Document) models.Structure {
	structure := models.Structure{
		Headings: []models.Heading{},
		Images:   []models.Image{},
		Links:    []models.Link{},
		Tables:   []models.Table{},
	}

	doc.Find("h1,h2,h3,h4,h5,h6").Each(func(i int, s *goquery.Selection) {
		structure.Headings = append(structure.Headings, models.Heading{
			Text:  strings.TrimSpace(s.Text()),
			Level: headingTags[goquery.NodeName(s)],
		})
	})

	doc.Find("img").Each(func(i int, s *goquery.Selection) {
		structure.Images = append(structure.Images, models.Image{
			URL:     s.AttrOr("src", ""),
			Alt:     s.AttrOr("alt", ""),
			Caption: adjacentCaption(s),
		})
	})

	doc.Find("a").Each(func(i int, s *goquery.Selection) {
		structure.Links = append(structure.Links, models.Link{
			URL:  s.AttrOr("href", ""),
			Text: strings.TrimSpace(s.Text()),
		})
	})

	doc.Find("table").Each(func(i int, s *goquery.Selection) {
		if table := extractTable(s); table != nil {
			structure.Tables = append(structure.Tables, *table)
		}
	})

	return structure
}

// adjacentCaption returns the text of a figcaption immediately following
// the image, either as its next sibling or as a sibling within an
// enclosing <figure>.
func adjacentCaption(img *goquery.Selection) string {
	if next := img.Next(); goquery.NodeName(next) == "figcaption" {
		return strings.TrimSpace(next.Text())
	}
	if parent := img.Parent(); goquery.NodeName(parent) == "figure" {
		return strings.TrimSpace(parent.Find("figcaption").First().Text())
	}
	return ""
}

// extractTable flattens a table into cell text joined by spaces per row,
// rows joined by commas. Tables with no populated rows are dropped.
func extractTable(s *goquery.Selection) *models.Table {
	var rows []string
	s.Find("tr").Each(func(i int, tr *goquery.Selection) {
		var cells []string
		tr.Find("td,th").Each(func(j int, cell *goquery.Selection) {
			cells = append(cells, strings.TrimSpace(cell.Text()))
		})
		if len(cells) > 0 {
			rows = append(rows, strings.Join(cells, " "))
		}
	})
	if len(rows) == 0 {
		return nil
	}
	return &models.Table{Content: strings.Join(rows, ", ")}
}

// extractText joins all paragraph text with blank lines. When the page
// has no paragraph text at all, it degrades to the whole text of the
// first of <main>, <article>, <body>.
func extractText(doc *goquery.Document) string {
	var paragraphs []string
	doc.Find("p").Each(func(i int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			paragraphs = append(paragraphs, text)
		}
	})
	if len(paragraphs) > 0 {
		return strings.Join(paragraphs, "\n\n")
	}

	for _, sel := range []string{"main", "article", "body"} {
		container := doc.Find(sel).First()
		if container.Length() > 0 {
			return strings.TrimSpace(container.Text())
		}
	}
	return ""
}

// extractSubsections walks each heading's following siblings up to the
// next heading of any level, collecting non-empty paragraphs. A heading
// with no paragraph content before the next heading emits nothing.
func extractSubsections(doc *goquery.Document) []models.Subsection {
	subsections := []models.Subsection{}

	doc.Find("h1,h2,h3,h4,h5,h6").Each(func(i int, heading *goquery.Selection) {
		headingText := strings.TrimSpace(heading.Text())
		if headingText == "" {
			return
		}

		var paragraphs []string
		for sibling := heading.Next(); sibling.Length() > 0; sibling = sibling.Next() {
			name := goquery.NodeName(sibling)
			if _, isHeading := headingTags[name]; isHeading {
				break
			}
			if name == "p" {
				if text := strings.TrimSpace(sibling.Text()); text != "" {
					paragraphs = append(paragraphs, text)
				}
			}
		}

		if len(paragraphs) > 0 {
			subsections = append(subsections, models.Subsection{
				Heading: headingText,
				Content: strings.Join(paragraphs, "\n\n"),
			})
		}
	})

	return subsections
}
