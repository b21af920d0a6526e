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
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/kraklabs/codegraph/internal/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestInitAndOpenProject(t *testing.T) {
	root := t.TempDir()
	logger := discardLogger()

	cfg := config.Default("demo")
	cfg.Repository.Owner = "acme"
	cfg.Repository.Name = "widgets"

	created, err := InitProject(root, cfg, logger)
	if err != nil {
		t.Fatalf("InitProject: %v", err)
	}
	if created.ProjectID != "demo" {
		t.Errorf("project_id = %q", created.ProjectID)
	}

	project, err := OpenProject(root, logger)
	if err != nil {
		t.Fatalf("OpenProject: %v", err)
	}
	defer project.Close()

	if project.Config.Repository.Owner != "acme" {
		t.Errorf("owner = %q", project.Config.Repository.Owner)
	}
	if project.Splitter() == nil {
		t.Error("nil splitter")
	}
	if project.Embedder(logger) == nil {
		t.Error("nil embedder for mock provider")
	}

	resp, err := project.Catalog.Dispatch(context.Background(), "getAllUsers", nil)
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if resp == nil {
		t.Error("nil response")
	}
}

func TestInitProjectIdempotent(t *testing.T) {
	root := t.TempDir()
	logger := discardLogger()

	first := config.Default("original")
	if _, err := InitProject(root, first, logger); err != nil {
		t.Fatalf("first init: %v", err)
	}

	// A second init does not overwrite the existing configuration.
	second := config.Default("replacement")
	got, err := InitProject(root, second, logger)
	if err != nil {
		t.Fatalf("second init: %v", err)
	}
	if got.ProjectID != "original" {
		t.Errorf("project_id = %q, want original", got.ProjectID)
	}
}

func TestOpenProjectMissing(t *testing.T) {
	if _, err := OpenProject(t.TempDir(), discardLogger()); err == nil {
		t.Fatal("expected error for missing project")
	}
}
