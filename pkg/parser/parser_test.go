package parser

import (
	"strings"
	"testing"
)

func TestExtractSimpleDocument(t *testing.T) {
	p := &Parser{}
	content := p.Extract("<html><body><p>Hello world.</p></body></html>")

	if content.Text != "Hello world." {
		t.Errorf("Text = %q, want %q", content.Text, "Hello world.")
	}
	if len(content.Subsections) != 0 {
		t.Errorf("Subsections = %d, want 0", len(content.Subsections))
	}
	if content.Metadata.Title != "" || content.Metadata.Author != "" ||
		content.Metadata.PublishedDate != "" || content.Metadata.Source != "" {
		t.Errorf("metadata not empty: %+v", content.Metadata)
	}
	if len(content.Metadata.Tags) != 0 {
		t.Errorf("Tags = %v, want empty", content.Metadata.Tags)
	}
}

func TestExtractSubsections(t *testing.T) {
	p := &Parser{}
	content := p.Extract("<html><body><h1>Intro</h1><p>A.</p><h2>Topic</h2><p>B.</p></body></html>")

	want := []struct{ heading, content string }{
		{"Intro", "A."},
		{"Topic", "B."},
	}
	if len(content.Subsections) != len(want) {
		t.Fatalf("Subsections = %d, want %d", len(content.Subsections), len(want))
	}
	for i, w := range want {
		got := content.Subsections[i]
		if got.Heading != w.heading || got.Content != w.content {
			t.Errorf("subsection %d = {%q, %q}, want {%q, %q}",
				i, got.Heading, got.Content, w.heading, w.content)
		}
	}
}

func TestExtractHeadingWithoutContent(t *testing.T) {
	// A heading immediately followed by another heading emits no subsection.
	p := &Parser{}
	content := p.Extract("<html><body><h1>Empty</h1><h2>Full</h2><p>Body text.</p></body></html>")

	if len(content.Subsections) != 1 {
		t.Fatalf("Subsections = %d, want 1", len(content.Subsections))
	}
	if content.Subsections[0].Heading != "Full" {
		t.Errorf("Heading = %q, want %q", content.Subsections[0].Heading, "Full")
	}
}

func TestExtractBodyFallback(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "no paragraphs falls back to body",
			html: "<html><body><div>Just a div.</div></body></html>",
			want: "Just a div.",
		},
		{
			name: "main preferred over body",
			html: "<html><body><span>outer</span><main>Main text.</main></body></html>",
			want: "Main text.",
		},
		{
			name: "article preferred over body",
			html: "<html><body><span>outer</span><article>Article text.</article></body></html>",
			want: "Article text.",
		},
	}

	p := &Parser{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Extract(tt.html).Text; got != tt.want {
				t.Errorf("Text = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractStripsNonContent(t *testing.T) {
	p := &Parser{}
	html := `<html><body>
		<script>var x = 1;</script>
		<nav>Home | About</nav>
		<p>Real content.</p>
		<footer>Copyright</footer>
	</body></html>`

	content := p.Extract(html)
	if content.Text != "Real content." {
		t.Errorf("Text = %q, want %q", content.Text, "Real content.")
	}
}

func TestExtractMetadata(t *testing.T) {
	p := &Parser{}
	html := `<html><head>
		<meta property="og:title" content="The Big Story">
		<meta name="author" content="Jane Doe">
		<meta property="article:published_time" content="2024-06-01T12:00:00Z">
		<meta property="og:site_name" content="Example News">
		<meta name="keywords" content="go, pipelines , audio">
	</head><body><p>Text.</p></body></html>`

	meta := p.Extract(html).Metadata
	if meta.Title != "The Big Story" {
		t.Errorf("Title = %q", meta.Title)
	}
	if meta.Author != "Jane Doe" {
		t.Errorf("Author = %q", meta.Author)
	}
	if meta.PublishedDate != "2024-06-01T12:00:00Z" {
		t.Errorf("PublishedDate = %q", meta.PublishedDate)
	}
	if meta.Source != "Example News" {
		t.Errorf("Source = %q", meta.Source)
	}
	wantTags := []string{"go", "pipelines", "audio"}
	if len(meta.Tags) != len(wantTags) {
		t.Fatalf("Tags = %v, want %v", meta.Tags, wantTags)
	}
	for i, tag := range wantTags {
		if meta.Tags[i] != tag {
			t.Errorf("Tags[%d] = %q, want %q", i, meta.Tags[i], tag)
		}
	}
}

func TestExtractMetadataPriority(t *testing.T) {
	p := &Parser{}
	html := `<html><head>
		<meta property="og:title" content="OG Title">
		<title>Tag Title - Example Site</title>
	</head><body><p>Text.</p></body></html>`

	content := p.Extract(html)
	if content.Metadata.Title != "OG Title" {
		t.Errorf("Title = %q, want og:title value", content.Metadata.Title)
	}
	if got := ResolveTitle(content, html); got != "OG Title" {
		t.Errorf("ResolveTitle = %q, want %q", got, "OG Title")
	}
}

func TestResolveTitle(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "title tag with dash suffix stripped",
			html: "<html><head><title>My Article - Some Site</title></head><body></body></html>",
			want: "My Article",
		},
		{
			name: "title tag with pipe suffix stripped",
			html: "<html><head><title>My Article | Some Site</title></head><body></body></html>",
			want: "My Article",
		},
		{
			name: "plain title kept",
			html: "<html><head><title>Plain Title</title></head><body></body></html>",
			want: "Plain Title",
		},
		{
			name: "no title at all",
			html: "<html><body><p>x</p></body></html>",
			want: "",
		},
	}

	p := &Parser{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := p.Extract(tt.html)
			if got := ResolveTitle(content, tt.html); got != tt.want {
				t.Errorf("ResolveTitle = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractStructure(t *testing.T) {
	p := &Parser{}
	html := `<html><body>
		<h2>Section</h2>
		<p>Some text with a <a href="https://example.com">link</a>.</p>
		<figure><img src="/pic.png" alt="a picture"><figcaption>The caption</figcaption></figure>
		<table><tr><th>Name</th><th>Age</th></tr><tr><td>Ada</td><td>36</td></tr></table>
		<table></table>
	</body></html>`

	structure := p.Extract(html).Structure

	if len(structure.Headings) != 1 || structure.Headings[0].Text != "Section" || structure.Headings[0].Level != 2 {
		t.Errorf("Headings = %+v", structure.Headings)
	}
	if len(structure.Images) != 1 {
		t.Fatalf("Images = %d, want 1", len(structure.Images))
	}
	img := structure.Images[0]
	if img.URL != "/pic.png" || img.Alt != "a picture" || img.Caption != "The caption" {
		t.Errorf("Image = %+v", img)
	}
	if len(structure.Links) != 1 || structure.Links[0].URL != "https://example.com" || structure.Links[0].Text != "link" {
		t.Errorf("Links = %+v", structure.Links)
	}
	// The empty table is excluded.
	if len(structure.Tables) != 1 {
		t.Fatalf("Tables = %d, want 1", len(structure.Tables))
	}
	if got, want := structure.Tables[0].Content, "Name Age, Ada 36"; got != want {
		t.Errorf("Table content = %q, want %q", got, want)
	}
}

func TestExtractParagraphJoining(t *testing.T) {
	p := &Parser{}
	html := "<html><body><p>First.</p><p>  </p><p>Second.</p></body></html>"

	got := p.Extract(html).Text
	if got != "First.\n\nSecond." {
		t.Errorf("Text = %q", got)
	}
	if strings.Count(got, "\n\n") != 1 {
		t.Errorf("expected exactly one blank-line separator, got %q", got)
	}
}

func TestExtractInvalidMarkup(t *testing.T) {
	p := &Parser{}
	content := p.Extract("<<<<not really html")
	if content == nil {
		t.Fatal("Extract returned nil")
	}
	if content.Metadata.Tags == nil || content.Subsections == nil {
		t.Error("defaults should be empty, not nil")
	}
}
