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

package ingestion

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/poiesic/tabrag/sqldb"
	"github.com/poiesic/tabrag/tabular"
)

const banner = "=============================="

// DatabaseLocator supplies the destination database file path.
type DatabaseLocator interface {
	TabularDatabasePath() string
}

// Pipeline imports every supported file in a directory into a SQLite database.
// A Pipeline is not safe for concurrent use.
type Pipeline struct {
	sourceDir       string
	db              *sqldb.DB
	mode            sqldb.Mode
	sorted          bool
	allowDuplicates bool
	out             io.Writer
	logger          *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// WithOutput sets where progress lines are printed.
// Default is os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(p *Pipeline) error {
		if w == nil {
			w = io.Discard
		}
		p.out = w
		return nil
	}
}

// WithUnsortedListing processes files in the order the file system returns
// them instead of sorted by name.
func WithUnsortedListing() Option {
	return func(p *Pipeline) error {
		p.sorted = false
		return nil
	}
}

// WithWriteMode sets what happens when a destination table already exists.
// Default is sqldb.IfExistsReplace.
func WithWriteMode(mode sqldb.Mode) Option {
	return func(p *Pipeline) error {
		m, err := sqldb.ParseMode(string(mode))
		if err != nil {
			return err
		}
		p.mode = m
		return nil
	}
}

// WithAllowDuplicateNames disables the check for source files that map to the
// same table name. The later file then overwrites the earlier one.
func WithAllowDuplicateNames() Option {
	return func(p *Pipeline) error {
		p.allowDuplicates = true
		return nil
	}
}

// NewPipeline creates a pipeline that reads sourceDir and writes to the
// database at locator.TabularDatabasePath(). The database's parent directory
// is created if needed.
func NewPipeline(sourceDir string, locator DatabaseLocator, opts ...Option) (*Pipeline, error) {
	if sourceDir == "" {
		return nil, ErrSourceDirRequired
	}
	if locator == nil {
		return nil, ErrLocatorRequired
	}
	dbPath := locator.TabularDatabasePath()
	if dbPath == "" {
		return nil, ErrDatabasePathRequired
	}

	p := &Pipeline{
		sourceDir: sourceDir,
		mode:      sqldb.IfExistsReplace,
		sorted:    true,
		out:       os.Stdout,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	p.logger = p.logger.With("component", "ingestion")

	db, err := sqldb.Open(dbPath, sqldb.WithLogger(p.logger))
	if err != nil {
		return nil, err
	}
	p.db = db

	return p, nil
}

// Close releases the database handle.
// The pipeline should not be used after calling Close.
func (p *Pipeline) Close() error {
	return p.db.Close()
}

// Database returns the destination database.
func (p *Pipeline) Database() *sqldb.DB {
	return p.db
}

// Run imports every file in the source directory and returns the table
// catalog of the destination database afterwards. The first failing file
// aborts the run with a *FileError.
func (p *Pipeline) Run(ctx context.Context) ([]string, error) {
	if err := p.prepare(ctx); err != nil {
		return nil, err
	}
	return p.validate(ctx)
}

func (p *Pipeline) prepare(ctx context.Context) error {
	entries, err := p.list()
	if err != nil {
		return fmt.Errorf("list source directory: %w", err)
	}
	fmt.Fprintf(p.out, "Number of files: %d\n", len(entries))
	p.logger.Info("starting ingestion", "dir", p.sourceDir, "files", len(entries), "db", p.db.Path())

	if !p.allowDuplicates {
		if err := checkDuplicates(entries); err != nil {
			return err
		}
	}

	progress := newProgressTracker(p.out, len(entries))
	progress.start()
	for _, entry := range entries {
		if err := p.ingest(ctx, entry); err != nil {
			progress.stop()
			fmt.Fprintf(p.out, "Error saving %s to SQL: %v\n", tabular.TableName(entry.Name()), err.Err)
			p.logger.Error("ingestion aborted", "file", entry.Name(), "kind", err.Kind, "err", err.Err)
			return err
		}
		progress.increment()
	}
	progress.stop()

	fmt.Fprintln(p.out, banner)
	fmt.Fprintln(p.out, "All files are saved into the sql database.")
	return nil
}

func (p *Pipeline) ingest(ctx context.Context, entry fs.DirEntry) *FileError {
	name := entry.Name()
	if _, err := tabular.Classify(name); err != nil {
		return &FileError{File: name, Kind: KindUnsupportedExtension, Err: err}
	}

	rs, err := tabular.DecodeFile(filepath.Join(p.sourceDir, name))
	if err != nil {
		return &FileError{File: name, Kind: KindDecode, Err: err}
	}

	if err := p.db.WriteTable(ctx, rs, p.mode); err != nil {
		return &FileError{File: name, Kind: KindPersist, Err: err}
	}

	p.logger.Debug("ingested file", "file", name, "table", rs.Name, "rows", rs.Rows(), "columns", len(rs.Columns))
	return nil
}

func (p *Pipeline) validate(ctx context.Context) ([]string, error) {
	tables, err := p.db.TableNames(ctx)
	if err != nil {
		return nil, err
	}
	fmt.Fprintln(p.out, banner)
	fmt.Fprintf(p.out, "Available table names in created SQL DB: %q\n", tables)
	fmt.Fprintln(p.out, banner)
	p.logger.Info("ingestion complete", "tables", len(tables))
	return tables, nil
}

// list returns the non-directory entries of the source directory.
func (p *Pipeline) list() ([]fs.DirEntry, error) {
	var entries []fs.DirEntry
	if p.sorted {
		var err error
		entries, err = os.ReadDir(p.sourceDir)
		if err != nil {
			return nil, err
		}
	} else {
		dir, err := os.Open(p.sourceDir)
		if err != nil {
			return nil, err
		}
		defer dir.Close()
		entries, err = dir.ReadDir(-1)
		if err != nil {
			return nil, err
		}
	}

	files := entries[:0]
	for _, e := range entries {
		if e.IsDir() {
			p.logger.Debug("skipping directory", "name", e.Name())
			continue
		}
		files = append(files, e)
	}
	return files, nil
}

// checkDuplicates fails when two supported files derive the same table name,
// ignoring case.
func checkDuplicates(entries []fs.DirEntry) error {
	seen := make(map[string]string, len(entries))
	for _, e := range entries {
		if _, err := tabular.Classify(e.Name()); err != nil {
			continue
		}
		// SQLite table names are case-insensitive.
		table := tabular.TableName(e.Name())
		key := strings.ToLower(table)
		if prev, ok := seen[key]; ok {
			return fmt.Errorf("%w: %q from %s and %s", ErrDuplicateTableName, table, prev, e.Name())
		}
		seen[key] = e.Name()
	}
	return nil
}
