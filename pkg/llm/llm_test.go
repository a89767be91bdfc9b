package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/articast/articast/models"
)

func TestSummarizerPrompt(t *testing.T) {
	article := &models.Article{
		Title:   "Go Pipelines",
		Content: "Main text.",
		Subsections: []models.Subsection{
			{Heading: "Background", Content: "Some background."},
			{Heading: "Design", Content: "Some design."},
		},
	}

	prompt := SummarizerPrompt(article)
	if !strings.HasPrefix(prompt, "Title: Go Pipelines\n\nArticle text:\n\nMain text.") {
		t.Errorf("prompt head = %q", prompt[:50])
	}
	if !strings.Contains(prompt, "\n## Background\nSome background.\n") {
		t.Errorf("prompt missing subsection block:\n%s", prompt)
	}
	if !strings.Contains(prompt, "\n## Design\nSome design.\n") {
		t.Errorf("prompt missing second subsection block:\n%s", prompt)
	}
}

func TestSummarizerPromptNoSubsections(t *testing.T) {
	prompt := SummarizerPrompt(&models.Article{Title: "T", Content: "C"})
	if strings.Contains(prompt, "subsections") {
		t.Errorf("empty subsection list should add no block:\n%s", prompt)
	}
}

func TestFormatterPrompt(t *testing.T) {
	summary := &models.SummaryData{
		Title:           "Go Pipelines",
		ShortSummary:    "Short.",
		DetailedSummary: "Detailed.",
		KeyPoints:       []string{"one", "two", "three"},
	}

	want := "Title: Go Pipelines\n\nShort Summary: Short.\n\nDetailed Summary: Detailed.\n\nKey Points: one, two, three"
	if got := FormatterPrompt(summary); got != want {
		t.Errorf("prompt = %q, want %q", got, want)
	}
}

// completionServer fakes the chat completions endpoint, replying with
// the given message content.
func completionServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		reply := map[string]any{
			"id":     "chatcmpl-test",
			"object": "chat.completion",
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": content},
			}},
		}
		if err := json.NewEncoder(w).Encode(reply); err != nil {
			t.Errorf("encode reply: %v", err)
		}
	}))
}

func testClient(server *httptest.Server) *Client {
	return New(WithAPIKey("test-key"), WithEndpoint(server.URL), WithModel("gpt-4o"))
}

func TestSummarize(t *testing.T) {
	reply := `{"title":"Go Pipelines","short_summary":"Short.","detailed_summary":"Detailed.","key_points":["a","b"]}`
	server := completionServer(t, reply)
	defer server.Close()

	summary, err := testClient(server).Summarize(context.Background(), &models.Article{Title: "Go Pipelines", Content: "text"})
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if summary.Title != "Go Pipelines" || summary.ShortSummary != "Short." {
		t.Errorf("summary = %+v", summary)
	}
	if len(summary.KeyPoints) != 2 {
		t.Errorf("KeyPoints = %v", summary.KeyPoints)
	}
}

func TestFormatForAudio(t *testing.T) {
	reply := `{"title":"Go Pipelines","narration_text":"Narration.","filename":"go pipelines"}`
	server := completionServer(t, reply)
	defer server.Close()

	format, err := testClient(server).FormatForAudio(context.Background(), &models.SummaryData{Title: "Go Pipelines"})
	if err != nil {
		t.Fatalf("FormatForAudio: %v", err)
	}
	// Raw filename passes through; sanitization is the pipeline's job.
	if format.Filename != "go pipelines" {
		t.Errorf("Filename = %q", format.Filename)
	}
	if format.NarrationText != "Narration." {
		t.Errorf("NarrationText = %q", format.NarrationText)
	}
}

func TestMalformedOutputFailsStage(t *testing.T) {
	server := completionServer(t, `not json at all`)
	defer server.Close()

	if _, err := testClient(server).Summarize(context.Background(), &models.Article{Title: "T"}); err == nil {
		t.Error("Summarize accepted malformed structured output")
	}
}

func TestTransportErrorFailsStage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"boom"}}`, http.StatusInternalServerError)
	}))
	defer server.Close()

	client := New(WithAPIKey("test-key"), WithEndpoint(server.URL))
	if _, err := client.Summarize(context.Background(), &models.Article{Title: "T"}); err == nil {
		t.Error("Summarize succeeded against failing endpoint")
	}
}

func TestAgentSchemasDeclareAllFields(t *testing.T) {
	for _, agent := range []Agent{SummarizerAgent, AudioFormatterAgent} {
		props, ok := agent.Schema["properties"].(map[string]any)
		if !ok {
			t.Fatalf("%s schema has no properties", agent.Name)
		}
		required, ok := agent.Schema["required"].([]string)
		if !ok {
			t.Fatalf("%s schema has no required list", agent.Name)
		}
		if len(required) != len(props) {
			t.Errorf("%s: %d required fields for %d properties", agent.Name, len(required), len(props))
		}
		for _, field := range required {
			if _, ok := props[field]; !ok {
				t.Errorf("%s: required field %q not declared", agent.Name, field)
			}
		}
		if fmt.Sprint(agent.Schema["additionalProperties"]) != "false" {
			t.Errorf("%s: additionalProperties must be false", agent.Name)
		}
	}
}
