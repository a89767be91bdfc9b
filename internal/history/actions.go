// Package history implements the run-history CLI command.
package history

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/articast/articast/pkg/db"
)

// Action lists recent pipeline runs from the history database.
func Action(c *cli.Context) error {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	database, err := db.Open(c.String("db-path"))
	if err != nil {
		logger.Error("failed to open run history", "error", err)
		os.Exit(2)
	}
	defer database.Close()

	runs, err := database.RecentRuns(c.Int("limit"))
	if err != nil {
		logger.Error("failed to list runs", "error", err)
		os.Exit(2)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	for _, run := range runs {
		fmt.Printf("%s  %-8s  %-9s  %s\n",
			run.CreatedAt.Format("2006-01-02 15:04:05"), run.Status, run.Mode, run.URL)
		if run.Error != "" {
			fmt.Printf("    error: %s\n", run.Error)
		}
		for _, artifact := range run.Artifacts {
			fmt.Printf("    %s: %s\n", artifact.Kind, artifact.FilePath)
		}
	}
	return nil
}
