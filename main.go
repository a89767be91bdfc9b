package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/articast/articast/internal/extract"
	"github.com/articast/articast/internal/history"
	"github.com/articast/articast/internal/summarize"
)

func main() {
	app := &cli.App{
		Name:  "articast",
		Usage: "Convert web articles into narrated audio summaries",
		Commands: []*cli.Command{
			{
				Name:      "summarize",
				Usage:     "Summarize an article from a URL and generate an audio file",
				ArgsUsage: "<url>",
				Action:    summarize.Action,
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "Enable verbose output"},
					&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "Only log errors"},
					&cli.StringFlag{Name: "config", Usage: "Path to a YAML config file"},
					&cli.StringFlag{Name: "output-dir", Usage: "Directory for generated artifacts"},
					&cli.StringFlag{Name: "voice", Usage: "Text-to-speech voice"},
					&cli.StringFlag{Name: "model", Usage: "Model used for summarization and formatting"},
					&cli.IntFlag{Name: "workers", Usage: "Concurrent section chains in sectioned mode"},
					&cli.StringFlag{Name: "db-path", Usage: "Run-history database path"},
					&cli.BoolFlag{Name: "save-text", Usage: "Also save raw and narration text files"},
				},
			},
			{
				Name:      "extract",
				Usage:     "Fetch a URL and print its extracted structured content",
				ArgsUsage: "<url>",
				Action:    extract.Action,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "format", Value: "json", Usage: "Output format: json or yaml"},
				},
			},
			{
				Name:   "history",
				Usage:  "List recent summarization runs",
				Action: history.Action,
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "limit", Value: 20, Usage: "Maximum runs to list"},
					&cli.StringFlag{Name: "db-path", Usage: "Run-history database path"},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
