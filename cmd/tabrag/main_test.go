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
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

const testConfigYAML = `directories:
  stored_csv_xlsx_directory: data/csv_xlsx
  sqldb_directory: data/sqldb.db
  uploaded_files_sqldb_directory: data/uploaded_files_sqldb.db
  stored_csv_xlsx_sqldb_directory: data/csv_xlsx_sqldb.db
  persist_directory: data/chroma
llm_config:
  agent_llm_system_role: "You answer questions about tables."
  rag_llm_system_role: "You answer questions from documents."
  temperature: 0.0
rag_config:
  collection_name: titanic-small
  top_k: 1
`

// testProject lays out a project root with a config file and two source files.
func testProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "configs"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "configs", "app_config.yml"), []byte(testConfigYAML), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".env"), []byte("DEPLOYMENT_NAME=gpt-4o\n"), 0644))

	data := filepath.Join(root, "data", "csv_xlsx")
	require.NoError(t, os.MkdirAll(data, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(data, "titanic.csv"), []byte("PassengerId,Name\n1,Braund\n2,Cumings\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(data, "diabetes.csv"), []byte("Glucose,Outcome\n148,1\n"), 0644))
	return root
}

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out
	err := app.Run(append([]string{"tabrag"}, args...))
	return out.String(), err
}

func TestPrepareDBCommand(t *testing.T) {
	t.Run("uses configured directories", func(t *testing.T) {
		root := testProject(t)

		out, err := runApp(t, "--root", root, "prepare-db")
		require.NoError(t, err)
		assert.Contains(t, out, "Number of files: 2")
		assert.Contains(t, out, `Available table names in created SQL DB: ["diabetes" "titanic"]`)
		assert.FileExists(t, filepath.Join(root, "data", "csv_xlsx_sqldb.db"))
	})

	t.Run("explicit dir and db need no config", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "a.csv"), []byte("x\n1\n"), 0644))
		db := filepath.Join(t.TempDir(), "nested", "out.db")

		out, err := runApp(t, "prepare-db", "--dir", dir, "--db", db)
		require.NoError(t, err)
		assert.Contains(t, out, `["a"]`)
		assert.FileExists(t, db)
	})

	t.Run("rejects unknown mode", func(t *testing.T) {
		_, err := runApp(t, "prepare-db", "--dir", t.TempDir(), "--db", "x.db", "--mode", "merge")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "merge")
	})

	t.Run("unsupported file aborts", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0644))

		out, err := runApp(t, "prepare-db", "--dir", dir, "--db", filepath.Join(t.TempDir(), "out.db"))
		require.Error(t, err)
		assert.Contains(t, out, "Error saving notes to SQL")
	})
}

func TestTablesCommand(t *testing.T) {
	root := testProject(t)
	_, err := runApp(t, "--root", root, "prepare-db")
	require.NoError(t, err)

	t.Run("lists tables from config", func(t *testing.T) {
		out, err := runApp(t, "--root", root, "tables")
		require.NoError(t, err)
		assert.Contains(t, out, "diabetes\t1 rows\t2 columns")
		assert.Contains(t, out, "titanic\t2 rows\t2 columns")
	})

	t.Run("missing database", func(t *testing.T) {
		_, err := runApp(t, "tables", "--db", filepath.Join(t.TempDir(), "none.db"))
		assert.Error(t, err)
	})
}

func TestCleanCommand(t *testing.T) {
	root := testProject(t)
	_, err := runApp(t, "--root", root, "prepare-db")
	require.NoError(t, err)
	db := filepath.Join(root, "data", "csv_xlsx_sqldb.db")
	require.FileExists(t, db)

	t.Run("missing target is reported", func(t *testing.T) {
		out, err := runApp(t, "--root", root, "clean")
		require.NoError(t, err)
		assert.Contains(t, out, "does not exist")
	})

	t.Run("removes stored database", func(t *testing.T) {
		out, err := runApp(t, "--root", root, "clean", "--target", "stored")
		require.NoError(t, err)
		assert.Contains(t, out, "has been successfully removed")
		assert.NoFileExists(t, db)
	})

	t.Run("invalid target", func(t *testing.T) {
		_, err := runApp(t, "--root", root, "clean", "--target", "everything")
		assert.Error(t, err)
	})
}

func TestInfoCommand(t *testing.T) {
	root := testProject(t)
	t.Setenv("AZURE_OPENAI_API_KEY", "")
	t.Setenv("ENDPOINT_URL", "")
	t.Setenv("DEPLOYMENT_NAME", "")
	require.NoError(t, os.Unsetenv("DEPLOYMENT_NAME"))

	out, err := runApp(t, "--root", root, "info")
	require.NoError(t, err)
	assert.Contains(t, out, "Collection: titanic-small (0 documents)")
	assert.Contains(t, out, "Chat deployment: gpt-4o")
	assert.Contains(t, out, "AI clients: false")
	assert.DirExists(t, filepath.Join(root, "data", "chroma"))
}

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		level     string
		wantLevel slog.Level
		wantErr   bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"verbose", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			app := &cli.App{
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "log-level", Value: "info"},
				},
				Before: setupLogger,
				Action: func(c *cli.Context) error { return nil },
			}

			err := app.Run([]string{"test", "--log-level", tt.level})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, slog.Default().Enabled(t.Context(), tt.wantLevel))
		})
	}
}
