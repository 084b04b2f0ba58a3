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

package openai

import (
	"log/slog"

	"github.com/poiesic/tabrag/ai"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms"
)

// Provider implements ai.AIProvider with Azure OpenAI clients.
type Provider struct {
	config   *ai.Config
	chat     llms.Model
	embedder embeddings.Embedder
	logger   *slog.Logger
}

// NewProvider creates the chat client and, when an embedding model is
// configured, the embedder.
//
// Returns ai.AIProvider interface to enforce abstraction.
func NewProvider(config *ai.Config) (ai.AIProvider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	chat, err := NewChatModel(config)
	if err != nil {
		return nil, err
	}

	var embedder embeddings.Embedder
	if config.EmbeddingModel != "" {
		embedder, err = NewEmbedder(config)
		if err != nil {
			return nil, err
		}
	}

	logger := slog.Default().With("component", "openai-provider")
	logger.Debug("created provider",
		"endpoint", config.Endpoint,
		"deployment", config.ChatDeployment,
		"embedding_model", config.EmbeddingModel)

	return &Provider{
		config:   config,
		chat:     chat,
		embedder: embedder,
		logger:   logger,
	}, nil
}

func (p *Provider) ChatModel() llms.Model {
	return p.chat
}

func (p *Provider) Embedder() embeddings.Embedder {
	return p.embedder
}

func (p *Provider) CallOptions() []llms.CallOption {
	return []llms.CallOption{llms.WithTemperature(p.config.Temperature)}
}

func (p *Provider) Close() error {
	p.logger.Debug("closing OpenAI provider")
	return nil
}
