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
	"testing"

	"github.com/poiesic/tabrag/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(opts ...ai.ConfigOption) *ai.Config {
	base := []ai.ConfigOption{
		ai.WithEndpoint("https://example.openai.azure.com/"),
		ai.WithAPIKey("test-key"),
		ai.WithChatDeployment("gpt-4o-mini"),
	}
	return ai.NewConfig(append(base, opts...)...)
}

func TestNewProvider(t *testing.T) {
	t.Run("chat only", func(t *testing.T) {
		provider, err := NewProvider(testConfig())
		require.NoError(t, err)
		defer provider.Close()

		assert.NotNil(t, provider.ChatModel())
		assert.Nil(t, provider.Embedder())
		assert.Len(t, provider.CallOptions(), 1)
	})

	t.Run("with embeddings", func(t *testing.T) {
		provider, err := NewProvider(testConfig(ai.WithEmbeddingModel("text-embedding-3-small")))
		require.NoError(t, err)
		defer provider.Close()

		assert.NotNil(t, provider.ChatModel())
		assert.NotNil(t, provider.Embedder())
	})

	t.Run("invalid config", func(t *testing.T) {
		_, err := NewProvider(ai.NewConfig())
		assert.Error(t, err)
	})
}
