// Copyright 2025 KrakLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// For commercial licensing, contact: licensing@kraklabs.com
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package bootstrap

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/kraklabs/codegraph/internal/config"
	"github.com/kraklabs/codegraph/pkg/ingestion"
	"github.com/kraklabs/codegraph/pkg/queries"
	"github.com/kraklabs/codegraph/pkg/storage"
)

// Project is an opened codegraph project: its configuration, the graph
// backend, and the query catalogue bound to it.
type Project struct {
	Config  *config.Config
	Backend *storage.EmbeddedBackend
	Catalog *queries.Catalog
}

// Close releases the project's backend.
func (p *Project) Close() error {
	return p.Backend.Close()
}

// InitProject writes a fresh project configuration under root.
// This function is idempotent: if a configuration already exists it is
// loaded and returned unchanged.
func InitProject(root string, cfg config.Config, logger *slog.Logger) (*config.Config, error) {
	if logger == nil {
		logger = slog.Default()
	}

	path := config.DefaultPath(root)
	logger.Info("bootstrap.project.init.start",
		"project_id", cfg.ProjectID,
		"path", path,
	)

	if _, err := os.Stat(path); err == nil {
		existing, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		logger.Info("bootstrap.project.init.exists", "project_id", existing.ProjectID)
		return existing, nil
	}

	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("save config: %w", err)
	}

	logger.Info("bootstrap.project.init.success",
		"project_id", cfg.ProjectID,
		"path", path,
	)
	return &cfg, nil
}

// OpenProject loads the configuration under root and builds the graph
// backend and query catalogue from it.
func OpenProject(root string, logger *slog.Logger) (*Project, error) {
	if logger == nil {
		logger = slog.Default()
	}

	path := config.DefaultPath(root)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("project not found: %s (run 'codegraph init' first)", path)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	logger.Debug("bootstrap.project.open",
		"project_id", cfg.ProjectID,
		"path", path,
	)

	backend := storage.NewEmbeddedBackend(storage.EmbeddedConfig{
		EmbeddingDimensions: cfg.Embedding.Dimensions,
		VectorIndex:         cfg.VectorIndex,
	})
	return &Project{
		Config:  cfg,
		Backend: backend,
		Catalog: queries.New(backend, logger),
	}, nil
}

// Embedder builds the configured embedding provider, or nil when
// embedding is disabled.
func (p *Project) Embedder(logger *slog.Logger) ingestion.EmbeddingProvider {
	e := p.Config.Embedding
	switch e.Provider {
	case "ollama":
		return ingestion.NewOllamaEmbeddingProvider(e.BaseURL, e.Model, logger)
	case "mock":
		return ingestion.NewMockEmbeddingProvider(e.Dimensions)
	default:
		return nil
	}
}

// Splitter builds the configured segmentation strategy.
func (p *Project) Splitter() ingestion.Splitter {
	mode := ingestion.SplitterMode(p.Config.Splitter)
	if mode == "" {
		mode = ingestion.DefaultSplitterMode
	}
	return ingestion.NewSplitter(mode)
}
