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

package ai

import (
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms"
)

// AIProvider aggregates the hosted model clients built from a Config.
type AIProvider interface {
	// ChatModel returns the chat completion client.
	// The returned model is safe for concurrent use.
	ChatModel() llms.Model

	// Embedder returns the embedding client, or nil when no embedding model
	// is configured.
	Embedder() embeddings.Embedder

	// CallOptions returns the default options for chat calls, such as the
	// configured temperature.
	CallOptions() []llms.CallOption

	// Close releases resources held by the provider and its clients.
	// After Close is called, the provider and its clients should not be used.
	Close() error
}
