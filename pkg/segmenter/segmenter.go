// Package segmenter splits long-form documents into independently
// summarizable sections.
package segmenter

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/articast/articast/models"
)

// IntroductionTitle names the pseudo-section holding content that
// precedes the first heading. It carries level 0.
const IntroductionTitle = "Introduction"

// boilerplateSections are headings whose sections carry no article
// content worth narrating. Matched case-insensitively on trimmed text.
var boilerplateSections = map[string]struct{}{
	"contents":       {},
	"references":     {},
	"external links": {},
	"see also":       {},
	"notes":          {},
	"bibliography":   {},
}

var headingTags = map[string]int{
	"h1": 1, "h2": 2, "h3": 3, "h4": 4, "h5": 5, "h6": 6,
}

// blockTags are the sibling elements whose text a section collects.
var blockTags = map[string]struct{}{
	"p": {}, "ul": {}, "ol": {}, "blockquote": {},
}

// containerSelectors name candidate primary-content containers in
// priority order. The Wikipedia parser output div comes first since
// reference pages are the main sectioned-mode target.
var containerSelectors = []string{"div.mw-parser-output", "article", "main"}

type Segmenter struct{}

// Segment splits raw HTML into ordered article sections. Documents with
// no structured container or no headings collapse to a single
// whole-document section. Short sections are still emitted; length
// filtering belongs to the pipeline.
func (s *Segmenter) Segment(html string) []models.ArticleSection {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	doc.Find("script,style,nav,footer,header").Remove()

	container := findContainer(doc)
	headings := container.Find("h1,h2,h3,h4,h5,h6")
	if container.Length() == 0 || headings.Length() == 0 {
		return wholeDocumentSection(doc)
	}

	sections := []models.ArticleSection{}

	if intro := collectIntroduction(container); intro != "" {
		sections = append(sections, models.ArticleSection{
			Title:   IntroductionTitle,
			Content: intro,
			Level:   0,
		})
	}

	headings.Each(func(i int, heading *goquery.Selection) {
		title := strings.TrimSpace(heading.Text())
		if title == "" {
			return
		}
		if IsBoilerplate(title) {
			return
		}

		var blocks []string
		for sibling := heading.Next(); sibling.Length() > 0; sibling = sibling.Next() {
			name := goquery.NodeName(sibling)
			if _, isHeading := headingTags[name]; isHeading {
				break
			}
			if _, isBlock := blockTags[name]; !isBlock {
				continue
			}
			if text := strings.TrimSpace(sibling.Text()); text != "" {
				blocks = append(blocks, text)
			}
		}

		sections = append(sections, models.ArticleSection{
			Title:   title,
			Content: strings.Join(blocks, "\n\n"),
			Level:   headingTags[goquery.NodeName(heading)],
		})
	})

	return sections
}

// IsBoilerplate reports whether a heading names a boilerplate section
// such as "References" or "External links".
func IsBoilerplate(title string) bool {
	_, ok := boilerplateSections[strings.ToLower(strings.TrimSpace(title))]
	return ok
}

func findContainer(doc *goquery.Document) *goquery.Selection {
	for _, sel := range containerSelectors {
		if container := doc.Find(sel).First(); container.Length() > 0 {
			return container
		}
	}
	return doc.Find("body").First()
}

// collectIntroduction gathers the block elements that precede the first
// heading inside the container.
func collectIntroduction(container *goquery.Selection) string {
	var blocks []string
	for child := container.Children().First(); child.Length() > 0; child = child.Next() {
		name := goquery.NodeName(child)
		if _, isHeading := headingTags[name]; isHeading {
			break
		}
		if _, isBlock := blockTags[name]; !isBlock {
			continue
		}
		if text := strings.TrimSpace(child.Text()); text != "" {
			blocks = append(blocks, text)
		}
	}
	return strings.Join(blocks, "\n\n")
}

// wholeDocumentSection is the fallback for unstructured pages: one
// section holding the document's body text.
func wholeDocumentSection(doc *goquery.Document) []models.ArticleSection {
	body := strings.TrimSpace(doc.Find("body").First().Text())
	if body == "" {
		return nil
	}

	title := strings.TrimSpace(doc.Find("h1").First().Text())
	if title == "" {
		title = IntroductionTitle
	}

	return []models.ArticleSection{{Title: title, Content: body, Level: 0}}
}
