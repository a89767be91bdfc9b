// Package summarize implements the summarize CLI command.
package summarize

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/articast/articast/models"
	"github.com/articast/articast/pkg/artifacts"
	"github.com/articast/articast/pkg/db"
	"github.com/articast/articast/pkg/fetcher"
	"github.com/articast/articast/pkg/llm"
	"github.com/articast/articast/pkg/parser"
	"github.com/articast/articast/pkg/pipeline"
	"github.com/articast/articast/pkg/segmenter"
	"github.com/articast/articast/pkg/speech"
)

// Action runs the full summarization pipeline for one URL.
func Action(c *cli.Context) error {
	url := c.Args().First()
	if url == "" {
		return cli.Exit("Usage: articast summarize <url>", 1)
	}

	logLevel := slog.LevelInfo
	if c.Bool("verbose") {
		logLevel = slog.LevelDebug
	}
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	config, err := loadConfig(c)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(2)
	}

	manager, err := artifacts.NewManager(config.OutputDir)
	if err != nil {
		logger.Error("failed to initialize artifact manager", "error", err)
		os.Exit(2)
	}

	// Run history is best effort; a broken database never blocks a run.
	var store pipeline.RunStore
	database, err := db.Open(config.DBPath)
	if err != nil {
		logger.Warn("run history disabled", "error", err)
	} else {
		defer database.Close()
		store = database
	}

	client := llm.New(llm.WithModel(config.Model))
	synthesizer := speech.New(speech.WithModel(config.SpeechModel))

	orchestrator := pipeline.New(pipeline.Config{
		Fetcher:     fetcher.NewFetcher(),
		Extractor:   &parser.Parser{},
		Segmenter:   &segmenter.Segmenter{},
		Summarizer:  client,
		Formatter:   client,
		Synthesizer: synthesizer,
		Artifacts:   manager,
		Store:       store,
		Logger:      logger,
		Voice:       config.Voice,
		WorkerCount: config.WorkerCount,
		SaveText:    c.Bool("save-text"),
	})

	result, err := orchestrator.Run(c.Context, url)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to summarize article.")
		os.Exit(1)
	}

	fmt.Printf("Summary audio generated: %s\n", result.ArtifactPaths[0])
	for _, path := range result.ArtifactPaths[1:] {
		fmt.Printf("Section audio generated: %s\n", path)
	}
	return nil
}

// loadConfig reads the config file and applies CLI flag overrides.
func loadConfig(c *cli.Context) (*models.Config, error) {
	config, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return nil, err
	}

	if c.IsSet("output-dir") {
		config.OutputDir = c.String("output-dir")
	}
	if c.IsSet("voice") {
		config.Voice = c.String("voice")
	}
	if c.IsSet("model") {
		config.Model = c.String("model")
	}
	if c.IsSet("workers") {
		config.WorkerCount = c.Int("workers")
	}
	if c.IsSet("db-path") {
		config.DBPath = c.String("db-path")
	}
	return config, nil
}
