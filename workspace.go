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

package tabrag

import (
	"errors"
	"log/slog"

	"github.com/poiesic/tabrag/ai"
	"github.com/poiesic/tabrag/ai/openai"
	"github.com/poiesic/tabrag/config"
	"github.com/poiesic/tabrag/ingestion"
	"github.com/poiesic/tabrag/storage"
	"github.com/poiesic/tabrag/storage/badger"
)

// ErrNilConfig is returned by NewWorkspace when no configuration is given.
var ErrNilConfig = errors.New("config is required")

// Workspace holds every client built from one configuration: the
// persistent vector store, its collection and, unless disabled, the AI
// provider. Tabular databases are opened per pipeline.
type Workspace struct {
	cfg        *config.Config
	backend    *badger.Backend
	collection storage.Collection
	provider   ai.AIProvider
	logger     *slog.Logger
}

// WorkspaceOption configures a Workspace.
type WorkspaceOption func(*workspaceOptions)

type workspaceOptions struct {
	skipAI   bool
	provider ai.AIProvider
	inMemory bool
}

// WithoutAI skips building the AI provider. Provider returns nil.
func WithoutAI() WorkspaceOption {
	return func(o *workspaceOptions) {
		o.skipAI = true
	}
}

// WithProvider uses p instead of building one from the configuration.
// The workspace takes ownership and closes it.
func WithProvider(p ai.AIProvider) WorkspaceOption {
	return func(o *workspaceOptions) {
		o.provider = p
	}
}

// WithInMemoryStore keeps the vector store in memory instead of the
// persist directory.
func WithInMemoryStore() WorkspaceOption {
	return func(o *workspaceOptions) {
		o.inMemory = true
	}
}

// NewWorkspace opens the vector store at the configured persist directory,
// gets or creates the configured collection and builds the AI provider.
func NewWorkspace(cfg *config.Config, opts ...WorkspaceOption) (*Workspace, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	options := &workspaceOptions{}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(cfg.Directories.Persist, options.inMemory)
	if err != nil {
		return nil, err
	}

	collection, err := backend.GetOrCreateCollection(cfg.RAG.CollectionName)
	if err != nil {
		backend.Close()
		return nil, err
	}

	provider := options.provider
	if provider == nil && !options.skipAI {
		provider, err = openai.NewProvider(cfg.AIConfig())
		if err != nil {
			backend.Close()
			return nil, err
		}
	}

	return &Workspace{
		cfg:        cfg,
		backend:    backend,
		collection: collection,
		provider:   provider,
		logger:     slog.Default().With("component", "workspace"),
	}, nil
}

// Close releases the AI provider and then the vector store.
func (w *Workspace) Close() error {
	if w.provider != nil {
		if err := w.provider.Close(); err != nil {
			w.logger.Error("error closing AI provider", "err", err)
		}
	}

	if err := w.backend.Close(); err != nil {
		w.logger.Error("error closing vector store", "err", err)
		return err
	}
	return nil
}

// Config returns the configuration the workspace was built from.
func (w *Workspace) Config() *config.Config {
	return w.cfg
}

// Collection returns the configured vector-store collection.
func (w *Workspace) Collection() storage.Collection {
	return w.collection
}

// Provider returns the AI provider, or nil when built WithoutAI.
func (w *Workspace) Provider() ai.AIProvider {
	return w.provider
}

// NewIngestionPipeline builds a pipeline writing into the configured tabular
// database. An empty sourceDir means the configured stored-files directory.
// The caller closes the pipeline.
func (w *Workspace) NewIngestionPipeline(sourceDir string, opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	if sourceDir == "" {
		sourceDir = w.cfg.Directories.StoredTabular
	}
	return ingestion.NewPipeline(sourceDir, w.cfg, opts...)
}
