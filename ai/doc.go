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

// Package ai provides abstractions for the hosted model services used by tabrag.
//
// The package only constructs clients; it does not build prompts or run
// completions. The AIProvider interface hands out a langchaingo chat model and
// embedder configured from a Config.
//
// # Implementation Packages
//
//   - ai/openai: Azure OpenAI clients built with langchaingo
//   - ai/mock: Test doubles for unit testing without external services
//
// # Usage Example
//
//	cfg := ai.NewConfig(
//	    ai.WithEndpoint("https://my-resource.openai.azure.com"),
//	    ai.WithAPIKey(key),
//	    ai.WithChatDeployment("gpt-4o-mini"),
//	)
//	provider, err := openai.NewProvider(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	model := provider.ChatModel()
package ai
