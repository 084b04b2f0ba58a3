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
	"context"

	"github.com/tmc/langchaingo/llms"
)

var _ llms.Model = (*MockChatModel)(nil)

// MockChatModel is a test double for llms.Model.
type MockChatModel struct {
	// GenerateContentFunc is called by GenerateContent if set.
	// If nil, the last text part of the request is echoed back.
	GenerateContentFunc func(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error)

	callCount int
}

// NewMockChatModel creates a mock chat model that echoes its input.
func NewMockChatModel() *MockChatModel {
	return &MockChatModel{}
}

// GenerateContent returns a single choice.
func (m *MockChatModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	m.callCount++

	if m.GenerateContentFunc != nil {
		return m.GenerateContentFunc(ctx, messages, options...)
	}

	var last string
	for _, msg := range messages {
		for _, part := range msg.Parts {
			if text, ok := part.(llms.TextContent); ok {
				last = text.Text
			}
		}
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: last}},
	}, nil
}

// Call is the single-prompt form of GenerateContent.
func (m *MockChatModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, m, prompt, options...)
}

// CallCount returns the number of times GenerateContent was called.
func (m *MockChatModel) CallCount() int {
	return m.callCount
}
