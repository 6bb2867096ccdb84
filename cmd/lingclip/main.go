// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/poiesic/lingclip"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "lingclip",
		Usage: "On-device study data store for clip-based language learning",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "data",
				Aliases: []string{"d"},
				Usage:   "Path to the data directory",
				Value:   defaultDataDir(),
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "status",
				Usage:  "Show which storage tier is active and whether migration is required",
				Action: statusCommand,
			},
			{
				Name:   "clips",
				Usage:  "List saved clips",
				Action: clipsCommand,
			},
			{
				Name:   "streak",
				Usage:  "Show the current study streak",
				Action: streakCommand,
			},
			{
				Name:   "wipe",
				Usage:  "Delete all study data and reset the migration flag",
				Action: wipeCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "yes",
						Usage: "Confirm deletion without prompting",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func openDatabase(c *cli.Context) (*lingclip.Database, error) {
	return lingclip.NewDatabase(c.String("data"))
}

func statusCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	status := db.StorageStatus(c.Context)
	fmt.Printf("Backend:            %s\n", status.Backend)
	fmt.Printf("Schema version:     %d\n", status.SchemaVersion)
	fmt.Printf("Migration required: %t\n", status.MigrationRequired)
	if status.MigrationRequired {
		fmt.Println()
		fmt.Println("Stored data predates the current format. Saved items stay hidden")
		fmt.Println("until you run `lingclip wipe` to start fresh.")
	}
	return nil
}

func clipsCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	clips, err := db.ClipRepository().GetClips(c.Context)
	if err != nil {
		return err
	}
	if len(clips) == 0 {
		fmt.Println("No clips saved.")
		return nil
	}
	for _, clip := range clips {
		title := clip.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Printf("%s  %s  %7.1fs-%7.1fs  %s\n",
			clip.Id, clip.VideoId, clip.Start, clip.End, title)
	}
	return nil
}

func streakCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	streak, err := db.SessionRepository().CurrentStreak(c.Context, time.Now())
	if err != nil {
		return err
	}
	fmt.Printf("Current streak: %d day(s)\n", streak)
	return nil
}

func wipeCommand(c *cli.Context) error {
	if !c.Bool("yes") {
		return fmt.Errorf("refusing to delete all data without --yes")
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	db.ClearAllData(c.Context)
	fmt.Println("All study data deleted.")
	return nil
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".lingclip"
	}
	return filepath.Join(home, ".lingclip")
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
