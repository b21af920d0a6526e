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

package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/kraklabs/codegraph/internal/bootstrap"
	"github.com/kraklabs/codegraph/internal/config"
	"github.com/kraklabs/codegraph/internal/errors"
	"github.com/kraklabs/codegraph/internal/ui"
)

// runInit executes the 'init' CLI command, creating a
// .codegraph/project.yaml configuration file.
//
// Flags:
//   - --project-id: Project identifier (default: directory name)
//   - --repo: Repository as owner/name
//   - --splitter: Segmentation strategy (treesitter, blocks, auto)
//   - --embedding-provider: Embedding provider (mock, ollama)
//   - --embedding-model: Embedding model name (ollama)
//   - --dimensions: Embedding vector size (default: 768)
//
// Examples:
//
//	codegraph init --repo acme/widgets
//	codegraph init --project-id demo --repo acme/widgets --embedding-provider ollama --embedding-model nomic-embed-text
func runInit(args []string, logger *slog.Logger) {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	projectID := fs.String("project-id", "", "Project identifier (default: directory name)")
	repo := fs.String("repo", "", "Repository as owner/name")
	splitter := fs.String("splitter", "auto", "Segmentation strategy: treesitter, blocks, auto")
	provider := fs.String("embedding-provider", "mock", "Embedding provider: mock, ollama")
	model := fs.String("embedding-model", "", "Embedding model name (ollama)")
	dimensions := fs.Int("dimensions", 768, "Embedding vector size")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	cwd, err := os.Getwd()
	if err != nil {
		errors.FatalError(errors.NewInternalError(
			"Cannot determine working directory", err.Error(), "", err), false)
	}

	id := *projectID
	if id == "" {
		id = filepath.Base(cwd)
	}

	cfg := config.Default(id)
	cfg.Splitter = *splitter
	cfg.Embedding.Provider = *provider
	cfg.Embedding.Model = *model
	cfg.Embedding.Dimensions = *dimensions

	if *repo != "" {
		owner, name, ok := strings.Cut(*repo, "/")
		if !ok || owner == "" || name == "" {
			errors.FatalError(errors.NewInputError(
				"Invalid repository",
				fmt.Sprintf("Expected owner/name, got %q", *repo),
				"Pass the repository as owner/name, e.g. acme/widgets"), false)
		}
		cfg.Repository.Owner = owner
		cfg.Repository.Name = name
	}

	created, err := bootstrap.InitProject(cwd, cfg, logger)
	if err != nil {
		errors.FatalError(errors.NewConfigError(
			"Cannot initialize project",
			err.Error(),
			"Check directory permissions and the flag values", err), false)
	}

	ui.Successf("Initialized project %s", created.ProjectID)
	fmt.Printf("%s %s\n", ui.Label("Config:"), ui.DimText(config.DefaultPath(cwd)))
	if created.Repository.Owner != "" {
		fmt.Printf("%s %s/%s\n", ui.Label("Repository:"), created.Repository.Owner, created.Repository.Name)
	} else {
		ui.Info("Set repository.owner and repository.name in the config before ingesting")
	}
}
