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
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/poiesic/tabrag"
	"github.com/poiesic/tabrag/config"
	"github.com/poiesic/tabrag/ingestion"
	"github.com/poiesic/tabrag/sqldb"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "tabrag",
		Usage: "Load CSV and XLSX files into a SQLite database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:  "root",
				Usage: "Project root (default: nearest parent with configs/app_config.yml, go.mod or .git)",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "Path to the YAML configuration file",
			},
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "Path to a .env file with service credentials",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "prepare-db",
				Usage:  "Load every CSV/XLSX file in a directory into the SQL database",
				Action: prepareDBCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "dir",
						Aliases: []string{"d"},
						Usage:   "Directory of source files (default: stored_csv_xlsx_directory)",
					},
					&cli.StringFlag{
						Name:  "db",
						Usage: "Destination database file (default: stored_csv_xlsx_sqldb_directory)",
					},
					&cli.BoolFlag{
						Name:  "unsorted",
						Usage: "Process files in directory order instead of by name",
					},
					&cli.StringFlag{
						Name:  "mode",
						Usage: "What to do when a table already exists (replace, append, fail)",
						Value: string(sqldb.IfExistsReplace),
					},
				},
			},
			{
				Name:   "tables",
				Usage:  "List the tables in the SQL database with row counts",
				Action: tablesCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "db",
						Usage: "Database file (default: stored_csv_xlsx_sqldb_directory)",
					},
				},
			},
			{
				Name:   "clean",
				Usage:  "Remove a configured SQL database",
				Action: cleanCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "target",
						Usage: "Which database to remove (uploaded, stored)",
						Value: "uploaded",
					},
				},
			},
			{
				Name:   "info",
				Usage:  "Show the loaded configuration and vector store status",
				Action: infoCommand,
			},
		},
	}
}

// dbPath is a DatabaseLocator for an explicit path.
type dbPath string

func (p dbPath) TabularDatabasePath() string {
	return string(p)
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	var opts []config.Option
	if root := c.String("root"); root != "" {
		opts = append(opts, config.WithRoot(root))
	}
	if file := c.String("config"); file != "" {
		opts = append(opts, config.WithConfigFile(file))
	}
	if file := c.String("env-file"); file != "" {
		opts = append(opts, config.WithEnvFile(file))
	}

	cfg, err := config.Load(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// resolveDatabase returns the --db flag when set, otherwise the configured
// tabular database. Config is only loaded when needed.
func resolveDatabase(c *cli.Context) (ingestion.DatabaseLocator, *config.Config, error) {
	if db := c.String("db"); db != "" {
		return dbPath(db), nil, nil
	}
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, nil, err
	}
	return cfg, cfg, nil
}

func prepareDBCommand(c *cli.Context) error {
	ctx := commandContext(c)

	mode, err := sqldb.ParseMode(c.String("mode"))
	if err != nil {
		return err
	}

	locator, cfg, err := resolveDatabase(c)
	if err != nil {
		return err
	}

	dir := c.String("dir")
	if dir == "" {
		if cfg == nil {
			if cfg, err = loadConfig(c); err != nil {
				return err
			}
		}
		dir = cfg.Directories.StoredTabular
	}

	opts := []ingestion.Option{
		ingestion.WithOutput(c.App.Writer),
		ingestion.WithWriteMode(mode),
	}
	if c.Bool("unsorted") {
		opts = append(opts, ingestion.WithUnsortedListing())
	}

	pipeline, err := ingestion.NewPipeline(dir, locator, opts...)
	if err != nil {
		return err
	}
	defer pipeline.Close()

	slog.Info("preparing database", "dir", dir, "db", locator.TabularDatabasePath(), "mode", mode)
	_, err = pipeline.Run(ctx)
	return err
}

func tablesCommand(c *cli.Context) error {
	ctx := commandContext(c)

	locator, _, err := resolveDatabase(c)
	if err != nil {
		return err
	}
	path := locator.TabularDatabasePath()
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("open database %s: %w", path, err)
	}

	db, err := sqldb.Open(path)
	if err != nil {
		return err
	}
	defer db.Close()

	return printTables(ctx, c.App.Writer, db)
}

func printTables(ctx context.Context, w io.Writer, db *sqldb.DB) error {
	names, err := db.TableNames(ctx)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Fprintln(w, "No tables.")
		return nil
	}
	for _, name := range names {
		count, err := db.CountRows(ctx, name)
		if err != nil {
			return err
		}
		cols, err := db.Columns(ctx, name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%d rows\t%d columns\n", name, count, len(cols))
	}
	return nil
}

func cleanCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	var path string
	switch target := strings.ToLower(c.String("target")); target {
	case "uploaded":
		path = cfg.Directories.UploadedFilesSQLDB
	case "stored":
		path = cfg.Directories.StoredTabularSQLDB
	default:
		return fmt.Errorf("invalid target %q: must be one of uploaded, stored", target)
	}
	if path == "" {
		return fmt.Errorf("%w: no path configured for target %q", config.ErrMissingDirectory, c.String("target"))
	}
	return config.RemoveDirectory(path, c.App.Writer)
}

func infoCommand(c *cli.Context) error {
	ctx := commandContext(c)

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	var opts []tabrag.WorkspaceOption
	if cfg.Credentials.APIKey == "" || cfg.Credentials.Endpoint == "" {
		slog.Warn("AI credentials not set, skipping client construction")
		opts = append(opts, tabrag.WithoutAI())
	}
	ws, err := tabrag.NewWorkspace(cfg, opts...)
	if err != nil {
		return err
	}
	defer ws.Close()

	count, err := ws.Collection().Count(ctx)
	if err != nil {
		return err
	}

	w := c.App.Writer
	fmt.Fprintf(w, "Project root: %s\n", cfg.Root)
	fmt.Fprintf(w, "Stored files: %s\n", cfg.Directories.StoredTabular)
	fmt.Fprintf(w, "Stored files database: %s\n", cfg.Directories.StoredTabularSQLDB)
	fmt.Fprintf(w, "Uploaded files database: %s\n", cfg.Directories.UploadedFilesSQLDB)
	fmt.Fprintf(w, "Vector store: %s\n", cfg.Directories.Persist)
	fmt.Fprintf(w, "Collection: %s (%d documents)\n", ws.Collection().Name(), count)
	fmt.Fprintf(w, "Chat deployment: %s\n", cfg.Credentials.Deployment)
	fmt.Fprintf(w, "Embedding model: %s\n", cfg.Credentials.EmbeddingModel)
	fmt.Fprintf(w, "AI clients: %t\n", ws.Provider() != nil)
	return nil
}

func commandContext(c *cli.Context) context.Context {
	if c.Context != nil {
		return c.Context
	}
	return context.Background()
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

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

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
