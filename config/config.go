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

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/poiesic/tabrag/ai"
	"gopkg.in/yaml.v3"
)

// Environment variables holding service credentials.
const (
	EnvAPIKey         = "AZURE_OPENAI_API_KEY"
	EnvEndpoint       = "ENDPOINT_URL"
	EnvAPIVersion     = "OPENAI_API_VERSION"
	EnvDeployment     = "DEPLOYMENT_NAME"
	EnvEmbeddingModel = "EMBEDDING_MODEL_NAME"
)

// Directories holds file system locations. After Load they are absolute.
type Directories struct {
	// StoredTabular is the directory of .csv/.xlsx files imported at setup.
	StoredTabular string `yaml:"stored_csv_xlsx_directory"`
	// SQLDB is a prebuilt SQL database queried directly.
	SQLDB string `yaml:"sqldb_directory"`
	// UploadedFilesSQLDB is the database receiving files uploaded at runtime.
	UploadedFilesSQLDB string `yaml:"uploaded_files_sqldb_directory"`
	// StoredTabularSQLDB is the database receiving StoredTabular's files.
	StoredTabularSQLDB string `yaml:"stored_csv_xlsx_sqldb_directory"`
	// Persist is the vector store directory.
	Persist string `yaml:"persist_directory"`
}

// LLM holds chat model settings.
type LLM struct {
	AgentSystemRole string  `yaml:"agent_llm_system_role"`
	RAGSystemRole   string  `yaml:"rag_llm_system_role"`
	Temperature     float64 `yaml:"temperature"`
}

// RAG holds retrieval settings.
type RAG struct {
	CollectionName string `yaml:"collection_name"`
	TopK           int    `yaml:"top_k"`
}

// Credentials holds service credentials read from the environment.
type Credentials struct {
	APIKey         string
	Endpoint       string
	APIVersion     string
	Deployment     string
	EmbeddingModel string
}

// Config is the application configuration.
type Config struct {
	Root        string      `yaml:"-"`
	Directories Directories `yaml:"directories"`
	LLM         LLM         `yaml:"llm_config"`
	RAG         RAG         `yaml:"rag_config"`
	Credentials Credentials `yaml:"-"`

	// EnvFileLoaded reports whether a .env file was read.
	EnvFileLoaded bool `yaml:"-"`
}

// Option configures Load.
type Option func(*loadOptions)

type loadOptions struct {
	root       string
	configFile string
	envFile    string
	lookupEnv  func(string) (string, bool)
}

// WithRoot sets the project root instead of searching from the working directory.
func WithRoot(root string) Option {
	return func(o *loadOptions) {
		o.root = root
	}
}

// WithConfigFile sets the YAML file path. Relative paths are resolved against
// the project root.
func WithConfigFile(path string) Option {
	return func(o *loadOptions) {
		o.configFile = path
	}
}

// WithEnvFile sets the .env file. Unlike the default .env, an explicit file
// must exist.
func WithEnvFile(path string) Option {
	return func(o *loadOptions) {
		o.envFile = path
	}
}

// WithLookupEnv replaces os.LookupEnv.
func WithLookupEnv(fn func(string) (string, bool)) Option {
	return func(o *loadOptions) {
		if fn != nil {
			o.lookupEnv = fn
		}
	}
}

// Load reads the configuration file and environment, resolves directories
// against the project root and validates the result.
func Load(opts ...Option) (*Config, error) {
	o := &loadOptions{
		configFile: DefaultConfigFile,
		lookupEnv:  os.LookupEnv,
	}
	for _, opt := range opts {
		opt(o)
	}

	root := o.root
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		root, err = FindProjectRoot(cwd)
		if err != nil {
			return nil, err
		}
	}

	envFile, explicitEnv := o.envFile, o.envFile != ""
	if !explicitEnv {
		envFile = filepath.Join(root, ".env")
	}
	dotenv, err := godotenv.Read(resolve(root, envFile))
	if err != nil {
		if explicitEnv || !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read env file: %w", err)
		}
		dotenv = nil
	}
	lookup := func(key string) string {
		if v, ok := o.lookupEnv(key); ok {
			return v
		}
		return dotenv[key]
	}

	cfg, err := readFile(resolve(root, o.configFile))
	if err != nil {
		return nil, err
	}
	cfg.Root = root
	cfg.EnvFileLoaded = dotenv != nil

	d := &cfg.Directories
	d.StoredTabular = resolve(root, d.StoredTabular)
	d.SQLDB = resolve(root, d.SQLDB)
	d.UploadedFilesSQLDB = resolve(root, d.UploadedFilesSQLDB)
	d.StoredTabularSQLDB = resolve(root, d.StoredTabularSQLDB)
	d.Persist = resolve(root, d.Persist)

	cfg.Credentials = Credentials{
		APIKey:         lookup(EnvAPIKey),
		Endpoint:       lookup(EnvEndpoint),
		APIVersion:     lookup(EnvAPIVersion),
		Deployment:     lookup(EnvDeployment),
		EmbeddingModel: lookup(EnvEmbeddingModel),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func readFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, err
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that the settings needed by the pipeline and clients are present.
// Credentials are checked when the AI provider is built.
func (c *Config) Validate() error {
	required := []struct {
		key, value string
	}{
		{"stored_csv_xlsx_directory", c.Directories.StoredTabular},
		{"stored_csv_xlsx_sqldb_directory", c.Directories.StoredTabularSQLDB},
		{"uploaded_files_sqldb_directory", c.Directories.UploadedFilesSQLDB},
		{"persist_directory", c.Directories.Persist},
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("%w: %s", ErrMissingDirectory, r.key)
		}
	}
	if c.RAG.CollectionName == "" {
		return ErrMissingCollection
	}
	if c.RAG.TopK < 1 {
		return ErrInvalidTopK
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return ErrInvalidTemperature
	}
	return nil
}

// TabularDatabasePath returns the database that stored tabular files are
// imported into.
func (c *Config) TabularDatabasePath() string {
	return c.Directories.StoredTabularSQLDB
}

// AIConfig returns the settings for the chat and embedding clients.
func (c *Config) AIConfig() *ai.Config {
	opts := []ai.ConfigOption{
		ai.WithEndpoint(c.Credentials.Endpoint),
		ai.WithAPIKey(c.Credentials.APIKey),
		ai.WithChatDeployment(c.Credentials.Deployment),
		ai.WithEmbeddingModel(c.Credentials.EmbeddingModel),
		ai.WithTemperature(c.LLM.Temperature),
	}
	if c.Credentials.APIVersion != "" {
		opts = append(opts, ai.WithAPIVersion(c.Credentials.APIVersion))
	}
	return ai.NewConfig(opts...)
}
