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

// Package mock provides test doubles for the ai package.
//
// The mocks never touch the network. Behavior can be injected through the
// exported function fields:
//
//	mockChat := mock.NewMockChatModel()
//	mockChat.GenerateContentFunc = func(ctx context.Context, msgs []llms.MessageContent, opts ...llms.CallOption) (*llms.ContentResponse, error) {
//	    return nil, errors.New("unavailable")
//	}
//
//	// Check call counts
//	count := mockChat.CallCount()
//
// # Default Behavior
//
//   - MockChatModel: Echoes the last text part of the request
//   - MockEmbedder: Returns deterministic vectors based on text hash
//   - MockProvider: Aggregates a mock chat model and embedder
package mock
