// Package pipeline orchestrates the article-to-audio summarization run.
package pipeline

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/articast/articast/models"
	"github.com/articast/articast/pkg/artifacts"
	"github.com/articast/articast/pkg/detector"
	"github.com/articast/articast/pkg/parser"
)

const (
	// minContentLength is the minimal usable text length; shorter
	// extractions fail the run in single-document mode and shorter
	// sections are skipped in sectioned mode.
	minContentLength = 100

	// UntitledArticle is the title fallback when neither metadata nor
	// the <title> tag provides one.
	UntitledArticle = "Untitled Article"
)

// Fetcher retrieves raw markup for a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Extractor parses markup into structured article content.
type Extractor interface {
	Extract(html string) *models.ExtractedContent
}

// Segmenter splits long-form markup into article sections.
type Segmenter interface {
	Segment(html string) []models.ArticleSection
}

// Summarizer produces a structured summary for one article or section.
type Summarizer interface {
	Summarize(ctx context.Context, article *models.Article) (*models.SummaryData, error)
}

// Formatter turns a summary into narration text plus a filename.
type Formatter interface {
	FormatForAudio(ctx context.Context, summary *models.SummaryData) (*models.AudioFormat, error)
}

// Synthesizer converts narration text into audio bytes.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, voice string) ([]byte, error)
}

// RunStore records run history. Optional; a nil store disables history.
type RunStore interface {
	RecordRun(traceID, url, mode string) (int64, error)
	FinishRun(runID int64, status, language, errText string) error
	AddArtifact(runID int64, kind, filePath string) (int64, error)
}

// Config wires an Orchestrator.
type Config struct {
	Fetcher     Fetcher
	Extractor   Extractor
	Segmenter   Segmenter
	Summarizer  Summarizer
	Formatter   Formatter
	Synthesizer Synthesizer
	Artifacts   *artifacts.Manager
	Store       RunStore
	Logger      *slog.Logger
	Voice       string
	WorkerCount int
	SaveText    bool
}

// Orchestrator sequences fetch, extraction, optional segmentation,
// summarization, audio formatting, and synthesis.
type Orchestrator struct {
	cfg Config
}

// RunResult is the terminal state of a successful run. ArtifactPaths
// holds audio paths; in sectioned mode the aggregate summary is first.
type RunResult struct {
	TraceID       string
	Mode          detector.Mode
	Title         string
	Language      string
	ArtifactPaths []string
}

func New(cfg Config) *Orchestrator {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	return &Orchestrator{cfg: cfg}
}

// newTraceID generates the per-run correlation token.
func newTraceID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("trace_%d", time.Now().UnixNano())
	}
	return "trace_" + hex.EncodeToString(buf)
}

// Run executes the whole pipeline for one URL. On total failure it
// returns a StageError naming the stage that absorbed the run.
func (o *Orchestrator) Run(ctx context.Context, url string) (*RunResult, error) {
	traceID := newTraceID()
	mode := detector.Detect(url)
	logger := o.cfg.Logger.With("trace_id", traceID, "url", url, "mode", string(mode))

	logger.Info("starting article summarization")

	var runID int64
	if o.cfg.Store != nil {
		id, err := o.cfg.Store.RecordRun(traceID, url, string(mode))
		if err != nil {
			logger.Warn("failed to record run", "error", err)
		} else {
			runID = id
		}
	}

	result, err := o.run(ctx, logger, traceID, runID, url, mode)

	if o.cfg.Store != nil && runID != 0 {
		status, errText, language := "success", "", ""
		if err != nil {
			status = "failed"
			errText = err.Error()
		} else {
			language = result.Language
		}
		if ferr := o.cfg.Store.FinishRun(runID, status, language, errText); ferr != nil {
			logger.Warn("failed to finish run record", "error", ferr)
		}
	}

	if err != nil {
		logger.Error("article summarization failed", "stage", string(FailedStage(err)), "error", err)
		return nil, err
	}
	logger.Info("article summarization complete", "artifacts", len(result.ArtifactPaths))
	return result, nil
}

func (o *Orchestrator) run(ctx context.Context, logger *slog.Logger, traceID string, runID int64, url string, mode detector.Mode) (*RunResult, error) {
	logger.Info("fetching article")
	html, err := o.cfg.Fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, stageErr(StageFetch, err)
	}
	if strings.TrimSpace(html) == "" {
		return nil, stageErr(StageFetch, fmt.Errorf("fetch returned no content"))
	}

	logger.Info("extracting content")
	content := o.cfg.Extractor.Extract(html)
	enrichMetadata(content, url, html)

	title := parser.ResolveTitle(content, html)
	if title == "" {
		title = UntitledArticle
	}

	language, _ := detector.Language(content.Text)
	if language != "" {
		logger.Debug("detected language", "language", language)
	}

	result := &RunResult{TraceID: traceID, Mode: mode, Title: title, Language: language}

	if mode == detector.ModeSectioned {
		paths, err := o.runSectioned(ctx, logger, runID, url, title, html)
		if err != nil {
			return nil, err
		}
		result.ArtifactPaths = paths
		return result, nil
	}

	paths, err := o.runSingle(ctx, logger, runID, url, title, content)
	if err != nil {
		return nil, err
	}
	result.ArtifactPaths = paths
	return result, nil
}

// enrichMetadata fills metadata fields the meta tags left empty from a
// readability pass.
func enrichMetadata(content *models.ExtractedContent, url, html string) {
	em := detector.Enrich(url, html)
	if content.Metadata.Author == "" {
		content.Metadata.Author = em.Author
	}
	if content.Metadata.Source == "" {
		content.Metadata.Source = em.SiteName
	}
	if content.Metadata.PublishedDate == "" {
		content.Metadata.PublishedDate = em.PublishedTime
	}
}

// runSingle is the single-document path: one summarize, format, and
// synthesize chain; any stage failure aborts the run with no output.
func (o *Orchestrator) runSingle(ctx context.Context, logger *slog.Logger, runID int64, url, title string, content *models.ExtractedContent) ([]string, error) {
	if len(content.Text) < minContentLength && len(content.Subsections) == 0 {
		return nil, stageErr(StageExtract, ErrExtractionEmpty)
	}

	article := &models.Article{
		Title:       title,
		URL:         url,
		Content:     content.Text,
		Subsections: content.Subsections,
	}

	logger.Info("summarizing article")
	summary, err := o.cfg.Summarizer.Summarize(ctx, article)
	if err != nil {
		return nil, stageErr(StageSummarize, err)
	}

	logger.Info("formatting for audio")
	format, err := o.formatForAudio(ctx, summary, title)
	if err != nil {
		return nil, stageErr(StageFormat, err)
	}

	logger.Info("synthesizing speech")
	audio, err := o.cfg.Synthesizer.Synthesize(ctx, format.NarrationText, o.cfg.Voice)
	if err != nil {
		return nil, stageErr(StageSynthesize, err)
	}

	runDir, err := o.cfg.Artifacts.RunDir(title, time.Now())
	if err != nil {
		return nil, stageErr(StagePersist, err)
	}

	audioPath, err := o.cfg.Artifacts.WriteAudio(runDir, format.Filename, audio)
	if err != nil {
		return nil, stageErr(StagePersist, err)
	}
	o.recordArtifact(logger, runID, "audio", audioPath)

	if o.cfg.SaveText {
		if path, err := o.cfg.Artifacts.WriteText(runDir, "raw", content.Text); err != nil {
			logger.Warn("failed to save raw text", "error", err)
		} else {
			o.recordArtifact(logger, runID, "raw_text", path)
		}
		if path, err := o.cfg.Artifacts.WriteText(runDir, "final", format.NarrationText); err != nil {
			logger.Warn("failed to save narration text", "error", err)
		} else {
			o.recordArtifact(logger, runID, "narration_text", path)
		}
	}

	logger.Info("audio saved", "path", audioPath)
	return []string{audioPath}, nil
}

// runSectioned is the multi-section path. The aggregate summary chain
// runs first and decides total failure; section chains fan out on a
// worker pool and fail independently.
func (o *Orchestrator) runSectioned(ctx context.Context, logger *slog.Logger, runID int64, url, title, html string) ([]string, error) {
	logger.Info("segmenting document")
	sections := o.cfg.Segmenter.Segment(html)
	if len(sections) == 0 {
		return nil, stageErr(StageSegment, ErrExtractionEmpty)
	}
	logger.Info("document segmented", "sections", len(sections))

	runDir, err := o.cfg.Artifacts.RunDir(title, time.Now())
	if err != nil {
		return nil, stageErr(StagePersist, err)
	}

	// Aggregate chain first: its failure is the run's failure.
	aggregateText := concatSections(sections)
	aggregate := &models.Article{Title: title, URL: url, Content: aggregateText}

	logger.Info("summarizing complete document")
	summary, err := o.cfg.Summarizer.Summarize(ctx, aggregate)
	if err != nil {
		return nil, stageErr(StageSummarize, err)
	}

	logger.Info("formatting complete summary for audio")
	format, err := o.formatForAudio(ctx, summary, title)
	if err != nil {
		return nil, stageErr(StageFormat, err)
	}

	logger.Info("synthesizing complete summary")
	audio, err := o.cfg.Synthesizer.Synthesize(ctx, format.NarrationText, o.cfg.Voice)
	if err != nil {
		return nil, stageErr(StageSynthesize, err)
	}

	aggregatePath, err := o.cfg.Artifacts.WriteAudio(runDir, "final", audio)
	if err != nil {
		return nil, stageErr(StagePersist, err)
	}
	o.recordArtifact(logger, runID, "audio", aggregatePath)

	if path, err := o.cfg.Artifacts.WriteText(runDir, "raw", aggregateText); err != nil {
		logger.Warn("failed to save raw text", "error", err)
	} else {
		o.recordArtifact(logger, runID, "raw_text", path)
	}
	if path, err := o.cfg.Artifacts.WriteText(runDir, "final", format.NarrationText); err != nil {
		logger.Warn("failed to save narration text", "error", err)
	} else {
		o.recordArtifact(logger, runID, "narration_text", path)
	}

	sectionPaths := o.processSections(ctx, logger, runID, url, runDir, sections)

	return append([]string{aggregatePath}, sectionPaths...), nil
}

// processSections runs per-section chains on a worker pool. Sections
// below the minimum length are skipped; one section's failure never
// aborts its siblings. Returned paths preserve section order.
func (o *Orchestrator) processSections(ctx context.Context, logger *slog.Logger, runID int64, url, runDir string, sections []models.ArticleSection) []string {
	type job struct {
		index   int
		section models.ArticleSection
	}

	jobs := make(chan job, len(sections))
	paths := make([]string, len(sections))

	var wg sync.WaitGroup
	for w := 0; w < o.cfg.WorkerCount; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				path, err := o.processSection(ctx, logger, runID, url, runDir, j.section)
				if err != nil {
					logger.Warn("section chain failed",
						"section", j.section.Title,
						"stage", string(FailedStage(err)),
						"error", err)
					continue
				}
				paths[j.index] = path
			}
		}()
	}

	for i, section := range sections {
		if len(section.Content) < minContentLength {
			logger.Debug("skipping short section", "section", section.Title, "length", len(section.Content))
			continue
		}
		jobs <- job{index: i, section: section}
	}
	close(jobs)
	wg.Wait()

	var produced []string
	for _, path := range paths {
		if path != "" {
			produced = append(produced, path)
		}
	}
	return produced
}

// processSection runs one section's summarize, format, synthesize chain
// sequentially.
func (o *Orchestrator) processSection(ctx context.Context, logger *slog.Logger, runID int64, url, runDir string, section models.ArticleSection) (string, error) {
	logger.Info("summarizing section", "section", section.Title)

	article := &models.Article{Title: section.Title, URL: url, Content: section.Content}
	summary, err := o.cfg.Summarizer.Summarize(ctx, article)
	if err != nil {
		return "", stageErr(StageSummarize, err)
	}

	format, err := o.formatForAudio(ctx, summary, section.Title)
	if err != nil {
		return "", stageErr(StageFormat, err)
	}

	audio, err := o.cfg.Synthesizer.Synthesize(ctx, format.NarrationText, o.cfg.Voice)
	if err != nil {
		return "", stageErr(StageSynthesize, err)
	}

	// Section titles collide; a short random suffix keeps names unique.
	path, err := o.cfg.Artifacts.WriteAudio(runDir, artifacts.UniqueName(format.Filename), audio)
	if err != nil {
		return "", stageErr(StagePersist, err)
	}
	o.recordArtifact(logger, runID, "audio", path)
	return path, nil
}

// formatForAudio runs the formatting stage and sanitizes the suggested
// filename, falling back to the article title when the model returns
// nothing usable.
func (o *Orchestrator) formatForAudio(ctx context.Context, summary *models.SummaryData, title string) (*models.AudioFormat, error) {
	format, err := o.cfg.Formatter.FormatForAudio(ctx, summary)
	if err != nil {
		return nil, err
	}

	format.Filename = artifacts.SanitizeFilename(format.Filename)
	if strings.Trim(format.Filename, "_") == "" {
		format.Filename = artifacts.SanitizeFilename(title)
	}
	return format, nil
}

// concatSections builds the document-level pseudo-article text from all
// section headings and content.
func concatSections(sections []models.ArticleSection) string {
	var b strings.Builder
	for _, section := range sections {
		fmt.Fprintf(&b, "## %s\n%s\n\n", section.Title, section.Content)
	}
	return strings.TrimSpace(b.String())
}

func (o *Orchestrator) recordArtifact(logger *slog.Logger, runID int64, kind, path string) {
	if o.cfg.Store == nil || runID == 0 {
		return
	}
	if _, err := o.cfg.Store.AddArtifact(runID, kind, path); err != nil {
		logger.Warn("failed to record artifact", "kind", kind, "error", err)
	}
}
