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

package mock

import (
	"github.com/poiesic/tabrag/ai"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms"
)

// MockProvider is a test double for ai.AIProvider.
// It aggregates mock chat model and embedder instances.
type MockProvider struct {
	chat     *MockChatModel
	embedder *MockEmbedder
	closed   bool
}

// NewMockProvider creates a new mock provider with default mock services.
//
// Returns ai.AIProvider interface for consistency with production constructors.
// Use GetMockChatModel()/GetMockEmbedder() to access concrete types for test assertions.
func NewMockProvider() ai.AIProvider {
	return &MockProvider{
		chat:     NewMockChatModel(),
		embedder: NewMockEmbedder(),
	}
}

// NewMockProviderWithServices creates a mock provider with custom mock services.
func NewMockProviderWithServices(chat *MockChatModel, embedder *MockEmbedder) ai.AIProvider {
	return &MockProvider{
		chat:     chat,
		embedder: embedder,
	}
}

// ChatModel returns the mock chat model.
func (p *MockProvider) ChatModel() llms.Model {
	return p.chat
}

// Embedder returns the mock embedder.
func (p *MockProvider) Embedder() embeddings.Embedder {
	return p.embedder
}

// CallOptions returns no options.
func (p *MockProvider) CallOptions() []llms.CallOption {
	return nil
}

// Close marks the provider closed.
func (p *MockProvider) Close() error {
	p.closed = true
	return nil
}

// Closed reports whether Close was called.
func (p *MockProvider) Closed() bool {
	return p.closed
}

// GetMockChatModel returns the underlying mock chat model for test assertions.
func (p *MockProvider) GetMockChatModel() *MockChatModel {
	return p.chat
}

// GetMockEmbedder returns the underlying mock embedder for test assertions.
func (p *MockProvider) GetMockEmbedder() *MockEmbedder {
	return p.embedder
}
