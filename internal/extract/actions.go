// Package extract implements the extract debug command.
package extract

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/articast/articast/pkg/fetcher"
	"github.com/articast/articast/pkg/parser"
)

// Action fetches a URL and prints its extracted structured content,
// without running any summarization.
func Action(c *cli.Context) error {
	url := c.Args().First()
	if url == "" {
		return cli.Exit("Usage: articast extract <url>", 1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	html, err := fetcher.NewFetcher().Fetch(c.Context, url)
	if err != nil {
		logger.Error("fetch failed", "url", url, "error", err)
		os.Exit(1)
	}

	p := &parser.Parser{}
	content := p.Extract(html)

	switch format := c.String("format"); format {
	case "yaml":
		data, err := yaml.Marshal(content)
		if err != nil {
			return fmt.Errorf("failed to marshal content: %w", err)
		}
		fmt.Print(string(data))
	case "json", "":
		data, err := json.MarshalIndent(content, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal content: %w", err)
		}
		fmt.Println(string(data))
	default:
		return cli.Exit(fmt.Sprintf("unknown format: %s (expected json or yaml)", format), 1)
	}
	return nil
}
