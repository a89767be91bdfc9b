package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/articast/articast/models"
)

// SummarizerAgent turns article text into a layered structured summary.
var SummarizerAgent = Agent{
	Name: "summary_data",
	Instructions: "You are an expert article summarizer. Your task is to read the provided article " +
		"text and create a concise, informative summary. Focus on extracting the main " +
		"points, key arguments, and important details. Ignore advertisements, navigation " +
		"elements, and other non-content parts of the article. Your summary should be " +
		"well-structured and easy to understand.",
	Schema: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title":            map[string]any{"type": "string", "description": "The title of the article."},
			"short_summary":    map[string]any{"type": "string", "description": "A short 2-3 sentence summary of the article."},
			"detailed_summary": map[string]any{"type": "string", "description": "A more detailed summary of the article in markdown format."},
			"key_points": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Key points from the article.",
			},
		},
		"required":             []string{"title", "short_summary", "detailed_summary", "key_points"},
		"additionalProperties": false,
	},
}

// AudioFormatterAgent rewrites a summary as natural narration text and
// suggests an output filename.
var AudioFormatterAgent = Agent{
	Name: "audio_format",
	Instructions: "You are an audio formatting specialist. Your task is to take an article summary " +
		"and rewrite it as natural, flowing narration suitable for text-to-speech. Spell out " +
		"abbreviations and numbers where it helps listening comprehension, avoid markdown and " +
		"visual formatting, and keep a conversational tone. Also suggest a short descriptive " +
		"filename for the audio file, without an extension.",
	Schema: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title":          map[string]any{"type": "string", "description": "The title of the narrated summary."},
			"narration_text": map[string]any{"type": "string", "description": "The narration-ready text."},
			"filename":       map[string]any{"type": "string", "description": "A short filename for the audio output, no extension."},
		},
		"required":             []string{"title", "narration_text", "filename"},
		"additionalProperties": false,
	},
}

// SummarizerPrompt builds the summarization prompt: title, main text,
// and each subsection as a labeled block.
func SummarizerPrompt(article *models.Article) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Title: %s\n\nArticle text:\n\n%s", article.Title, article.Content)

	if len(article.Subsections) > 0 {
		b.WriteString("\n\nArticle subsections:\n")
		for _, section := range article.Subsections {
			fmt.Fprintf(&b, "\n## %s\n%s\n", section.Heading, section.Content)
		}
	}
	return b.String()
}

// FormatterPrompt builds the audio-formatting prompt from a summary.
func FormatterPrompt(summary *models.SummaryData) string {
	return fmt.Sprintf(
		"Title: %s\n\nShort Summary: %s\n\nDetailed Summary: %s\n\nKey Points: %s",
		summary.Title,
		summary.ShortSummary,
		summary.DetailedSummary,
		strings.Join(summary.KeyPoints, ", "),
	)
}

// Summarize runs the summarizer agent over one article or section.
func (c *Client) Summarize(ctx context.Context, article *models.Article) (*models.SummaryData, error) {
	data, err := c.run(ctx, SummarizerAgent, SummarizerPrompt(article))
	if err != nil {
		return nil, err
	}

	var summary models.SummaryData
	if err := decode(data, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// FormatForAudio runs the audio formatter agent over a summary. The
// returned filename is raw; the caller sanitizes it.
func (c *Client) FormatForAudio(ctx context.Context, summary *models.SummaryData) (*models.AudioFormat, error) {
	data, err := c.run(ctx, AudioFormatterAgent, FormatterPrompt(summary))
	if err != nil {
		return nil, err
	}

	var format models.AudioFormat
	if err := decode(data, &format); err != nil {
		return nil, err
	}
	return &format, nil
}
