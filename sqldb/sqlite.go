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

package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/poiesic/tabrag/tabular"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database file.
type DB struct {
	conn   *sql.DB
	path   string
	logger *slog.Logger

	maxAttempts int
	retryDelay  time.Duration
}

// Option configures a DB.
type Option func(*DB)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(db *DB) {
		if logger == nil {
			logger = slog.Default()
		}
		db.logger = logger
	}
}

// WithRetry sets how often a write is attempted while the database is
// busy or locked by another connection, and the base delay between attempts.
// Default is 3 attempts starting at 100ms.
func WithRetry(maxAttempts int, baseDelay time.Duration) Option {
	return func(db *DB) {
		db.maxAttempts = maxAttempts
		db.retryDelay = baseDelay
	}
}

// Open opens (or creates) the SQLite file at path.
// The parent directory is created if it does not exist.
func Open(path string, opts ...Option) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	conn, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// SQLite allows a single writer.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	db := &DB{
		conn:        conn,
		path:        path,
		logger:      slog.Default(),
		maxAttempts: defaultMaxAttempts,
		retryDelay:  defaultRetryDelay,
	}
	for _, opt := range opts {
		opt(db)
	}
	if db.maxAttempts <= 0 {
		conn.Close()
		return nil, ErrInvalidMaxAttempts
	}
	db.logger = db.logger.With("component", "sqldb")
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}

// Conn returns the underlying database connection.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// WriteTable stores rs as a table named rs.Name. Column types follow the
// inferred tabular types. No row-number column is written.
// The write is one transaction, retried while the database is busy.
func (db *DB) WriteTable(ctx context.Context, rs *tabular.RecordSet, mode Mode) error {
	if rs == nil || rs.Name == "" {
		return ErrEmptyTableName
	}
	if len(rs.Columns) == 0 {
		return ErrNoColumns
	}
	return retryWithBackoff(ctx, db.logger, func() error {
		return db.writeTable(ctx, rs, mode)
	}, IsBusy, db.maxAttempts, db.retryDelay)
}

func (db *DB) writeTable(ctx context.Context, rs *tabular.RecordSet, mode Mode) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stored, exists, err := storedTableName(ctx, tx, rs.Name)
	if err != nil {
		return err
	}

	create := !exists
	switch mode {
	case IfExistsReplace:
		if exists {
			if _, err := tx.ExecContext(ctx, "DROP TABLE "+quoteIdent(stored)); err != nil {
				return fmt.Errorf("drop table %q: %w", stored, err)
			}
			create = true
		}
	case IfExistsAppend:
	case IfExistsFail:
		if exists {
			return fmt.Errorf("%w: %q", ErrTableExists, rs.Name)
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}

	if create {
		if _, err := tx.ExecContext(ctx, createTableSQL(rs)); err != nil {
			return fmt.Errorf("create table %q: %w", rs.Name, err)
		}
	}

	if err := insertRows(ctx, tx, rs); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	db.logger.Debug("wrote table", "table", rs.Name, "rows", rs.Rows(), "columns", len(rs.Columns), "mode", mode)
	return nil
}

func insertRows(ctx context.Context, tx *sql.Tx, rs *tabular.RecordSet) error {
	if rs.Rows() == 0 {
		return nil
	}

	cols := make([]string, len(rs.Columns))
	marks := make([]string, len(rs.Columns))
	for i, c := range rs.Columns {
		cols[i] = quoteIdent(c.Name)
		marks[i] = "?"
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(rs.Name), strings.Join(cols, ", "), strings.Join(marks, ", "))

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare insert into %q: %w", rs.Name, err)
	}
	defer stmt.Close()

	for i := 0; i < rs.Rows(); i++ {
		if _, err := stmt.ExecContext(ctx, rs.Row(i)...); err != nil {
			return fmt.Errorf("insert row %d into %q: %w", i, rs.Name, err)
		}
	}
	return nil
}

func createTableSQL(rs *tabular.RecordSet) string {
	defs := make([]string, len(rs.Columns))
	for i, c := range rs.Columns {
		defs[i] = quoteIdent(c.Name) + " " + sqlType(c.Type)
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdent(rs.Name), strings.Join(defs, ", "))
}

func sqlType(t tabular.Type) string {
	switch t {
	case tabular.TypeInteger:
		return "INTEGER"
	case tabular.TypeReal:
		return "REAL"
	case tabular.TypeBoolean:
		return "BOOLEAN"
	default:
		return "TEXT"
	}
}

// quoteIdent quotes a SQLite identifier, doubling embedded quotes.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// storedTableName looks up name the way SQLite resolves identifiers, ignoring
// ASCII case, and returns the name as stored.
func storedTableName(ctx context.Context, tx *sql.Tx, name string) (string, bool, error) {
	var stored string
	err := tx.QueryRowContext(ctx,
		`SELECT name FROM sqlite_master WHERE type='table' AND name = ? COLLATE NOCASE LIMIT 1`, name,
	).Scan(&stored)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("check table %q: %w", name, err)
	}
	return stored, true, nil
}
