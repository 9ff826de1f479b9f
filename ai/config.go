// Copyright 2025 Quarry Labs
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

// Default configuration values for AI services.
const (
	// DefaultEmbeddingHost is the default host for the embedding service.
	DefaultEmbeddingHost = "http://localhost:11434"

	// DefaultEmbeddingModel is the default model for text embeddings.
	DefaultEmbeddingModel = "nomic-embed-text"

	// DefaultRerankHost is the default host for the re-ranking service.
	DefaultRerankHost = "https://api.cohere.com"

	// DefaultRerankModel is the default model for re-ranking.
	DefaultRerankModel = "rerank-v3.5"
)

// Config holds configuration for AI services.
type Config struct {
	// EmbeddingHost is the base URL of the embedding service.
	EmbeddingHost string

	// EmbeddingModel is the model name used for text embeddings.
	EmbeddingModel string

	// RerankHost is the base URL of the re-ranking service.
	RerankHost string

	// RerankAPIKey authenticates requests to the re-ranking service.
	// May be empty when re-ranking is not used.
	RerankAPIKey string

	// RerankModel is the model name used for re-ranking.
	RerankModel string
}

// ConfigOption configures a Config.
type ConfigOption func(*Config) error

// WithEmbeddingHost sets the embedding service host.
func WithEmbeddingHost(host string) ConfigOption {
	return func(c *Config) error {
		if host == "" {
			return errors.New("embedding host cannot be empty")
		}
		c.EmbeddingHost = host
		return nil
	}
}

// WithEmbeddingModel sets the embedding model name.
func WithEmbeddingModel(model string) ConfigOption {
	return func(c *Config) error {
		if model == "" {
			return errors.New("embedding model cannot be empty")
		}
		c.EmbeddingModel = model
		return nil
	}
}

// WithRerankHost sets the re-ranking service host.
func WithRerankHost(host string) ConfigOption {
	return func(c *Config) error {
		if host == "" {
			return errors.New("rerank host cannot be empty")
		}
		c.RerankHost = host
		return nil
	}
}

// WithRerankAPIKey sets the re-ranking service API key.
func WithRerankAPIKey(key string) ConfigOption {
	return func(c *Config) error {
		c.RerankAPIKey = key
		return nil
	}
}

// WithRerankModel sets the re-ranking model name.
func WithRerankModel(model string) ConfigOption {
	return func(c *Config) error {
		if model == "" {
			return errors.New("rerank model cannot be empty")
		}
		c.RerankModel = model
		return nil
	}
}

// DefaultConfig returns a Config populated with default values.
func DefaultConfig() *Config {
	return &Config{
		EmbeddingHost:  DefaultEmbeddingHost,
		EmbeddingModel: DefaultEmbeddingModel,
		RerankHost:     DefaultRerankHost,
		RerankModel:    DefaultRerankModel,
	}
}

// NewConfig creates a Config with defaults, applies the given options, then
// normalizes and validates the result.
func NewConfig(opts ...ConfigOption) (*Config, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Normalize ensures the configuration is in canonical form. It trims
// trailing slashes from hosts and adds the /v1 suffix to the embedding host
// when it is missing, since the OpenAI-compatible API is served under /v1.
func (c *Config) Normalize() {
	c.EmbeddingHost = strings.TrimRight(c.EmbeddingHost, "/")
	c.RerankHost = strings.TrimRight(c.RerankHost, "/")
	if c.EmbeddingHost != "" && !strings.HasSuffix(c.EmbeddingHost, "/v1") {
		c.EmbeddingHost += "/v1"
	}
}

// Validate checks that the configuration is complete.
func (c *Config) Validate() error {
	if c.EmbeddingHost == "" {
		return errors.New("embedding host is required")
	}
	if c.EmbeddingModel == "" {
		return errors.New("embedding model is required")
	}
	if c.RerankHost == "" {
		return errors.New("rerank host is required")
	}
	if c.RerankModel == "" {
		return errors.New("rerank model is required")
	}
	return nil
}
