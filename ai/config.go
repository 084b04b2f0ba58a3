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
	"errors"
	"strings"
)

// DefaultAPIVersion is the Azure OpenAI REST API version used when none is configured.
const DefaultAPIVersion = "2024-02-01"

// Config holds configuration for the hosted chat and embedding services.
type Config struct {
	// Endpoint is the Azure OpenAI resource URL.
	// Example: "https://my-resource.openai.azure.com"
	Endpoint string

	// APIKey authenticates requests to Endpoint.
	APIKey string

	// APIVersion is the Azure OpenAI REST API version.
	// Default: DefaultAPIVersion
	APIVersion string

	// ChatDeployment is the deployment name of the chat completion model.
	// Example: "gpt-4o-mini"
	ChatDeployment string

	// EmbeddingModel is the deployment name of the embedding model.
	// Optional: when empty no embedder is created.
	// Example: "text-embedding-3-small"
	EmbeddingModel string

	// Temperature is the sampling temperature applied to chat calls (0-2).
	// Default: 0
	Temperature float64
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithEndpoint sets the service endpoint URL.
func WithEndpoint(endpoint string) ConfigOption {
	return func(c *Config) {
		c.Endpoint = endpoint
	}
}

// WithAPIKey sets the API key.
func WithAPIKey(key string) ConfigOption {
	return func(c *Config) {
		c.APIKey = key
	}
}

// WithAPIVersion sets the REST API version.
func WithAPIVersion(version string) ConfigOption {
	return func(c *Config) {
		c.APIVersion = version
	}
}

// WithChatDeployment sets the chat model deployment name.
func WithChatDeployment(deployment string) ConfigOption {
	return func(c *Config) {
		c.ChatDeployment = deployment
	}
}

// WithEmbeddingModel sets the embedding model deployment name.
func WithEmbeddingModel(model string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingModel = model
	}
}

// WithTemperature sets the chat sampling temperature.
func WithTemperature(t float64) ConfigOption {
	return func(c *Config) {
		c.Temperature = t
	}
}

// DefaultConfig returns a Config with the default API version and a zero
// temperature. Endpoint, key and deployment must still be set.
func DefaultConfig() *Config {
	return &Config{
		APIVersion:  DefaultAPIVersion,
		Temperature: 0,
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
//
// Example:
//
//	cfg := NewConfig(
//	    WithEndpoint("https://my-resource.openai.azure.com"),
//	    WithAPIKey(os.Getenv("AZURE_OPENAI_API_KEY")),
//	    WithChatDeployment("gpt-4o-mini"),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize trims whitespace and the trailing slash from the endpoint and
// fills in the default API version.
func (c *Config) Normalize() {
	c.Endpoint = strings.TrimSuffix(strings.TrimSpace(c.Endpoint), "/")
	c.APIKey = strings.TrimSpace(c.APIKey)
	c.ChatDeployment = strings.TrimSpace(c.ChatDeployment)
	c.EmbeddingModel = strings.TrimSpace(c.EmbeddingModel)
	if strings.TrimSpace(c.APIVersion) == "" {
		c.APIVersion = DefaultAPIVersion
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.Endpoint == "" {
		return errors.New("ai config: Endpoint is required")
	}
	if c.APIKey == "" {
		return errors.New("ai config: APIKey is required")
	}
	if c.ChatDeployment == "" {
		return errors.New("ai config: ChatDeployment is required")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return errors.New("ai config: Temperature must be between 0 and 2")
	}
	return nil
}
