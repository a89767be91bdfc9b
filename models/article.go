// Package models defines the data structures shared across the pipeline.
package models

import "strings"

// Subsection is a heading plus the paragraph content that follows it
// until the next heading of any level.
type Subsection struct {
	Heading string `json:"heading" yaml:"heading"`
	Content string `json:"content" yaml:"content"`
}

// Heading is a document heading with its numeric level (1-6).
type Heading struct {
	Text  string `json:"text" yaml:"text"`
	Level int    `json:"level" yaml:"level"`
}

// Image is an inline image with optional alt text and caption.
type Image struct {
	URL     string `json:"url" yaml:"url"`
	Alt     string `json:"alt,omitempty" yaml:"alt,omitempty"`
	Caption string `json:"caption,omitempty" yaml:"caption,omitempty"`
}

// Link is an anchor with its visible text.
type Link struct {
	URL     string `json:"url" yaml:"url"`
	Text    string `json:"text,omitempty" yaml:"text,omitempty"`
	Context string `json:"context,omitempty" yaml:"context,omitempty"`
}

// Table holds a table's cell text flattened into a single string:
// cells joined by spaces, rows joined by commas.
type Table struct {
	Content string `json:"content" yaml:"content"`
}

// Metadata holds article metadata coalesced from meta tags. Fields are
// empty (never null) when the source page does not provide them.
type Metadata struct {
	Title         string   `json:"title" yaml:"title"`
	Author        string   `json:"author" yaml:"author"`
	PublishedDate string   `json:"published_date" yaml:"published_date"`
	Source        string   `json:"source" yaml:"source"`
	Tags          []string `json:"tags" yaml:"tags"`
}

// Structure is the structural inventory of a document.
type Structure struct {
	Headings []Heading `json:"headings" yaml:"headings"`
	Images   []Image   `json:"images" yaml:"images"`
	Links    []Link    `json:"links" yaml:"links"`
	Tables   []Table   `json:"tables" yaml:"tables"`
}

// ExtractedContent is the canonical output of extraction: main text,
// heading-bounded subsections, metadata, and structural inventory.
type ExtractedContent struct {
	Text        string       `json:"text" yaml:"text"`
	Subsections []Subsection `json:"subsections" yaml:"subsections"`
	Metadata    Metadata     `json:"metadata" yaml:"metadata"`
	Structure   Structure    `json:"structure" yaml:"structure"`
}

// Article is the prompt-facing view of a document or section handed to
// the summarization stage.
type Article struct {
	Title       string       `json:"title" yaml:"title"`
	URL         string       `json:"url" yaml:"url"`
	Content     string       `json:"content" yaml:"content"`
	Subsections []Subsection `json:"subsections,omitempty" yaml:"subsections,omitempty"`
}

// ArticleSection is one independently summarizable section of a
// long-form document. Level 0 marks the introduction pseudo-section.
type ArticleSection struct {
	Title   string `json:"title" yaml:"title"`
	Content string `json:"content" yaml:"content"`
	Level   int    `json:"level" yaml:"level"`
}

// WordCount returns the whitespace-delimited word count of the main text.
func (e *ExtractedContent) WordCount() int {
	return len(strings.Fields(e.Text))
}
