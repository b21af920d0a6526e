// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package config loads and saves the per-project configuration file at
// .codegraph/project.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/kraklabs/codegraph/pkg/storage"
)

const (
	// Dir is the project configuration directory, relative to the
	// working directory.
	Dir = ".codegraph"

	// FileName is the configuration file name inside Dir.
	FileName = "project.yaml"
)

// Config is the on-disk project configuration.
type Config struct {
	// ProjectID is the logical project identifier.
	ProjectID string `yaml:"project_id"`

	// Repository identifies the repository to ingest.
	Repository RepositoryConfig `yaml:"repository"`

	// Splitter selects the segmentation strategy: "treesitter",
	// "blocks", or "auto".
	Splitter string `yaml:"splitter"`

	// Embedding configures the embedding provider.
	Embedding EmbeddingConfig `yaml:"embedding"`

	// VectorIndex carries vector-index tuning knobs for the store.
	VectorIndex storage.VectorIndexConfig `yaml:"vector_index"`

	// Ignore holds gitignore-style patterns; matching paths are not
	// ingested.
	Ignore []string `yaml:"ignore,omitempty"`
}

// RepositoryConfig identifies a hosted repository and how to
// authenticate against its API.
type RepositoryConfig struct {
	Owner string `yaml:"owner"`
	Name  string `yaml:"name"`

	// TokenEnv names the environment variable holding the API token.
	TokenEnv string `yaml:"token_env"`
}

// EmbeddingConfig configures embedding computation.
type EmbeddingConfig struct {
	// Provider is "mock" or "ollama". Empty disables embedding.
	Provider string `yaml:"provider"`

	// Model is the provider's model name.
	Model string `yaml:"model,omitempty"`

	// BaseURL overrides the provider endpoint.
	BaseURL string `yaml:"base_url,omitempty"`

	// Dimensions is the expected vector size.
	Dimensions int `yaml:"dimensions"`
}

// Default returns the configuration written by 'codegraph init' before
// any user edits.
func Default(projectID string) Config {
	return Config{
		ProjectID: projectID,
		Repository: RepositoryConfig{
			TokenEnv: "GITHUB_TOKEN",
		},
		Splitter: "auto",
		Embedding: EmbeddingConfig{
			Provider:   "mock",
			Dimensions: 768,
		},
		VectorIndex: storage.VectorIndexConfig{
			M:              16,
			EfConstruction: 128,
			EfSearch:       768,
		},
	}
}

// DefaultPath returns Dir/FileName under the given root.
func DefaultPath(root string) string {
	return filepath.Join(root, Dir, FileName)
}

// Load reads and validates a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes the configuration, creating the parent directory if
// needed.
func (c Config) Save(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Validate checks the fields a broken file most often gets wrong.
func (c Config) Validate() error {
	if c.ProjectID == "" {
		return fmt.Errorf("project_id is required")
	}
	switch c.Splitter {
	case "", "auto", "treesitter", "blocks":
	default:
		return fmt.Errorf("unknown splitter %q", c.Splitter)
	}
	switch c.Embedding.Provider {
	case "", "mock", "ollama":
	default:
		return fmt.Errorf("unknown embedding provider %q", c.Embedding.Provider)
	}
	if c.Embedding.Provider != "" && c.Embedding.Dimensions <= 0 {
		return fmt.Errorf("embedding dimensions must be positive")
	}
	return nil
}

// Token resolves the repository API token from the configured
// environment variable. Empty when unset.
func (c Config) Token() string {
	if c.Repository.TokenEnv == "" {
		return ""
	}
	return os.Getenv(c.Repository.TokenEnv)
}
