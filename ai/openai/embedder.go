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
	"github.com/poiesic/tabrag/ai"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"
)

// NewChatModel creates a chat completion client for config.ChatDeployment.
func NewChatModel(config *ai.Config) (*openai.LLM, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return openai.New(azureOptions(config,
		openai.WithModel(config.ChatDeployment),
	)...)
}

// NewEmbedder creates an embedder for config.EmbeddingModel.
func NewEmbedder(config *ai.Config) (embeddings.Embedder, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Azure routes by deployment, so the embedding deployment also names the model.
	client, err := openai.New(azureOptions(config,
		openai.WithModel(config.EmbeddingModel),
		openai.WithEmbeddingModel(config.EmbeddingModel),
	)...)
	if err != nil {
		return nil, err
	}

	return embeddings.NewEmbedder(client, embeddings.WithStripNewLines(true))
}

func azureOptions(config *ai.Config, extra ...openai.Option) []openai.Option {
	opts := []openai.Option{
		openai.WithAPIType(openai.APITypeAzure),
		openai.WithBaseURL(config.Endpoint),
		openai.WithToken(config.APIKey),
		openai.WithAPIVersion(config.APIVersion),
	}
	return append(opts, extra...)
}
