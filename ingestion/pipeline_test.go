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
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/tabrag/sqldb"
	"github.com/poiesic/tabrag/tabular"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// pathLocator implements DatabaseLocator for testing
type pathLocator string

func (l pathLocator) TabularDatabasePath() string {
	return string(l)
}

func writeFile(t *testing.T, dir, name, contents string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(contents), 0644))
}

func writeWorkbook(t *testing.T, dir, name string, rows ...[]any) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	require.NoError(t, f.SaveAs(filepath.Join(dir, name)))
}

func newTestPipeline(t *testing.T, srcDir string, opts ...Option) (*Pipeline, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	dbPath := filepath.Join(t.TempDir(), "db", "tabular.db")
	p, err := NewPipeline(srcDir, pathLocator(dbPath), append([]Option{WithOutput(out)}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { p.Close() })
	return p, out
}

func TestNewPipeline_Validation(t *testing.T) {
	dbPath := pathLocator(filepath.Join(t.TempDir(), "x.db"))

	_, err := NewPipeline("", dbPath)
	assert.ErrorIs(t, err, ErrSourceDirRequired)

	_, err = NewPipeline(t.TempDir(), nil)
	assert.ErrorIs(t, err, ErrLocatorRequired)

	_, err = NewPipeline(t.TempDir(), pathLocator(""))
	assert.ErrorIs(t, err, ErrDatabasePathRequired)

	_, err = NewPipeline(t.TempDir(), dbPath, WithWriteMode("merge"))
	assert.ErrorIs(t, err, sqldb.ErrInvalidMode)
}

func TestNewPipeline_CreatesDatabaseDirectory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "not", "yet", "there", "tabular.db")
	_, err := os.Stat(filepath.Dir(dbPath))
	require.True(t, os.IsNotExist(err))

	p, err := NewPipeline(t.TempDir(), pathLocator(dbPath), WithOutput(nil))
	require.NoError(t, err)
	defer p.Close()

	assert.DirExists(t, filepath.Dir(dbPath))
}

func TestNewPipeline_DatabaseDirectoryCreationFails(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	writeFile(t, filepath.Dir(blocker), "file", "not a directory")

	_, err := NewPipeline(t.TempDir(), pathLocator(filepath.Join(blocker, "sub", "tabular.db")))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnsupportedFileType)
}

func TestRun_CSVAndXLSX(t *testing.T) {
	ctx := context.Background()
	src := t.TempDir()
	writeFile(t, src, "orders.csv", "id,amount\n1,10.5\n2,20\n")
	writeWorkbook(t, src, "customers.xlsx",
		[]any{"id", "name"},
		[]any{1, "Ada"},
	)

	p, out := newTestPipeline(t, src)
	tables, err := p.Run(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"orders", "customers"}, tables)

	db := p.Database()

	cols, err := db.Columns(ctx, "orders")
	require.NoError(t, err)
	assert.Equal(t, []sqldb.ColumnInfo{{Name: "id", Type: "INTEGER"}, {Name: "amount", Type: "REAL"}}, cols)
	n, err := db.CountRows(ctx, "orders")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	cols, err = db.Columns(ctx, "customers")
	require.NoError(t, err)
	assert.Equal(t, []sqldb.ColumnInfo{{Name: "id", Type: "INTEGER"}, {Name: "name", Type: "TEXT"}}, cols)
	n, err = db.CountRows(ctx, "customers")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	var name string
	require.NoError(t, db.Conn().QueryRow(`SELECT name FROM customers WHERE id = 1`).Scan(&name))
	assert.Equal(t, "Ada", name)

	assert.Contains(t, out.String(), "Number of files: 2")
	assert.Contains(t, out.String(), `Available table names in created SQL DB: ["customers" "orders"]`)
}

func TestRun_EmptyDirectory(t *testing.T) {
	p, out := newTestPipeline(t, t.TempDir())

	tables, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tables)
	assert.Contains(t, out.String(), "Number of files: 0")
}

func TestRun_MissingDirectory(t *testing.T) {
	p, _ := newTestPipeline(t, filepath.Join(t.TempDir(), "absent"))

	_, err := p.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.NotErrorIs(t, err, ErrUnsupportedFileType)
}

func TestRun_Idempotent(t *testing.T) {
	ctx := context.Background()
	src := t.TempDir()
	writeFile(t, src, "orders.csv", "id,amount\n1,10.5\n2,20\n")

	p, _ := newTestPipeline(t, src)
	first, err := p.Run(ctx)
	require.NoError(t, err)
	second, err := p.Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	n, err := p.Database().CountRows(ctx, "orders")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestRun_UnsupportedExtension(t *testing.T) {
	ctx := context.Background()
	src := t.TempDir()
	writeFile(t, src, "notes.txt", "hello")

	p, out := newTestPipeline(t, src)
	_, err := p.Run(ctx)
	require.Error(t, err)

	assert.ErrorIs(t, err, ErrUnsupportedFileType)
	assert.ErrorIs(t, err, tabular.ErrUnsupportedExtension)

	var fileErr *FileError
	require.True(t, errors.As(err, &fileErr))
	assert.Equal(t, "notes.txt", fileErr.File)
	assert.Equal(t, KindUnsupportedExtension, fileErr.Kind)

	tables, err := p.Database().TableNames(ctx)
	require.NoError(t, err)
	assert.NotContains(t, tables, "notes")
	assert.Contains(t, out.String(), "Error saving notes to SQL")
}

func TestRun_MalformedCSV(t *testing.T) {
	src := t.TempDir()
	writeFile(t, src, "bad.csv", "a,b\n1,2,3\n")

	p, _ := newTestPipeline(t, src)
	_, err := p.Run(context.Background())
	require.Error(t, err)

	assert.ErrorIs(t, err, ErrUnsupportedFileType)
	assert.ErrorIs(t, err, tabular.ErrMalformedRow)

	var fileErr *FileError
	require.True(t, errors.As(err, &fileErr))
	assert.Equal(t, KindDecode, fileErr.Kind)
}

func TestRun_ShortRowsArePadded(t *testing.T) {
	ctx := context.Background()
	src := t.TempDir()
	writeFile(t, src, "ragged.csv", "a,b,c\n1,2,3\n4\n")

	p, _ := newTestPipeline(t, src)
	_, err := p.Run(ctx)
	require.NoError(t, err)

	var nulls int
	require.NoError(t, p.Database().Conn().QueryRow(`SELECT COUNT(*) FROM ragged WHERE c IS NULL`).Scan(&nulls))
	assert.Equal(t, 1, nulls)
}

func TestRun_FirstFailureAborts(t *testing.T) {
	ctx := context.Background()
	src := t.TempDir()
	writeFile(t, src, "a.csv", "x\n1\n")
	writeFile(t, src, "b.txt", "nope")
	writeFile(t, src, "c.csv", "y\n2\n")

	p, _ := newTestPipeline(t, src)
	_, err := p.Run(ctx)
	require.ErrorIs(t, err, ErrUnsupportedFileType)

	tables, err := p.Database().TableNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, tables)
}

func TestRun_PersistFailure(t *testing.T) {
	ctx := context.Background()
	src := t.TempDir()
	writeFile(t, src, "orders.csv", "id\n1\n")

	p, _ := newTestPipeline(t, src, WithWriteMode(sqldb.IfExistsFail))
	_, err := p.Run(ctx)
	require.NoError(t, err)

	_, err = p.Run(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedFileType)
	assert.ErrorIs(t, err, sqldb.ErrTableExists)

	var fileErr *FileError
	require.True(t, errors.As(err, &fileErr))
	assert.Equal(t, KindPersist, fileErr.Kind)
}

func TestRun_DuplicateTableNames(t *testing.T) {
	ctx := context.Background()
	src := t.TempDir()
	writeFile(t, src, "orders.csv", "id\n1\n")
	writeWorkbook(t, src, "orders.xlsx", []any{"id"}, []any{2})

	t.Run("detected before writing", func(t *testing.T) {
		p, _ := newTestPipeline(t, src)
		_, err := p.Run(ctx)
		require.ErrorIs(t, err, ErrDuplicateTableName)

		tables, err := p.Database().TableNames(ctx)
		require.NoError(t, err)
		assert.Empty(t, tables)
	})

	t.Run("allowed replaces earlier table", func(t *testing.T) {
		p, _ := newTestPipeline(t, src, WithAllowDuplicateNames())
		tables, err := p.Run(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"orders"}, tables)

		var id int
		require.NoError(t, p.Database().Conn().QueryRow(`SELECT id FROM orders`).Scan(&id))
		assert.Equal(t, 2, id)
	})
}

func TestRun_DuplicateTableNamesIgnoreCase(t *testing.T) {
	ctx := context.Background()
	src := t.TempDir()
	writeFile(t, src, "Sales.csv", "id\n1\n")
	writeFile(t, src, "sales.csv", "id\n2\n")

	p, _ := newTestPipeline(t, src)
	_, err := p.Run(ctx)
	require.ErrorIs(t, err, ErrDuplicateTableName)

	var fileErr *FileError
	assert.False(t, errors.As(err, &fileErr))

	tables, err := p.Database().TableNames(ctx)
	require.NoError(t, err)
	assert.Empty(t, tables)
}

func TestRun_ReplacesTableDifferingInCase(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "tabular.db")

	first := t.TempDir()
	writeFile(t, first, "Orders.csv", "id\n1\n2\n")
	p, err := NewPipeline(first, pathLocator(dbPath), WithOutput(&bytes.Buffer{}))
	require.NoError(t, err)
	_, err = p.Run(ctx)
	require.NoError(t, err)
	require.NoError(t, p.Close())

	second := t.TempDir()
	writeFile(t, second, "orders.csv", "id\n3\n")
	p, err = NewPipeline(second, pathLocator(dbPath), WithOutput(&bytes.Buffer{}))
	require.NoError(t, err)
	defer p.Close()

	tables, err := p.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"orders"}, tables)

	n, err := p.Database().CountRows(ctx, "orders")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRun_SkipsSubdirectories(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(src, "archive"), 0755))
	writeFile(t, src, "orders.csv", "id\n1\n")

	p, out := newTestPipeline(t, src)
	tables, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"orders"}, tables)
	assert.Contains(t, out.String(), "Number of files: 1")
}

func TestRun_UnsortedListing(t *testing.T) {
	src := t.TempDir()
	writeFile(t, src, "b.csv", "x\n1\n")
	writeFile(t, src, "a.csv", "x\n1\n")

	p, _ := newTestPipeline(t, src, WithUnsortedListing())
	tables, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, tables)
}

func TestFileError(t *testing.T) {
	cause := errors.New("boom")
	err := &FileError{File: "x.csv", Kind: KindPersist, Err: cause}

	assert.ErrorIs(t, err, ErrUnsupportedFileType)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "the selected file type is not supported: x.csv: persist failure: boom", err.Error())
}
