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
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/kraklabs/codegraph/internal/bootstrap"
	"github.com/kraklabs/codegraph/internal/errors"
	"github.com/kraklabs/codegraph/internal/output"
	"github.com/kraklabs/codegraph/internal/ui"
	"github.com/kraklabs/codegraph/pkg/graph"
	"github.com/kraklabs/codegraph/pkg/storage"
)

// StatusResult represents the graph statistics for JSON output.
type StatusResult struct {
	ProjectID    string    `json:"project_id"`
	Users        int       `json:"users"`
	Repositories int       `json:"repositories"`
	Folders      int       `json:"folders"`
	Files        int       `json:"files"`
	Entities     int       `json:"entities"`
	Embeddings   int       `json:"embeddings"`
	Timestamp    time.Time `json:"timestamp"`
}

// runStatus executes the 'status' CLI command, counting the nodes of
// each kind in the project's graph.
//
// Flags:
//   - --json: Output results as JSON (default: false)
//
// Examples:
//
//	codegraph status
//	codegraph status --json
func runStatus(args []string, logger *slog.Logger) {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	jsonOutput := fs.Bool("json", false, "Output as JSON")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	project, err := bootstrap.OpenProject(".", logger)
	if err != nil {
		errors.FatalError(errors.NewConfigError(
			"Cannot open project",
			err.Error(),
			"Run 'codegraph init' in the project directory first", err), *jsonOutput)
	}
	defer project.Close()

	result := StatusResult{
		ProjectID: project.Config.ProjectID,
		Timestamp: time.Now().UTC(),
	}

	err = project.Backend.View(context.Background(), func(tx storage.ReadTx) error {
		counts := map[graph.Kind]*int{
			graph.KindUser:         &result.Users,
			graph.KindRepository:   &result.Repositories,
			graph.KindFolder:       &result.Folders,
			graph.KindFile:         &result.Files,
			graph.KindEntity:       &result.Entities,
			graph.KindEmbeddedCode: &result.Embeddings,
		}
		for kind, dst := range counts {
			nodes, err := tx.NodesByKind(kind)
			if err != nil {
				return err
			}
			*dst = len(nodes)
		}
		return nil
	})
	if err != nil {
		errors.FatalError(errors.NewStorageError(
			"Cannot read graph statistics",
			err.Error(),
			"The store may be closed; retry the command", err), *jsonOutput)
	}

	if *jsonOutput {
		if err := output.JSON(result); err != nil {
			errors.FatalError(err, true)
		}
		return
	}

	ui.Header("Codegraph Project Status")
	fmt.Printf("%s %s\n\n", ui.Label("Project:"), result.ProjectID)
	fmt.Println(ui.StatRow("Users", result.Users))
	fmt.Println(ui.StatRow("Repositories", result.Repositories))
	fmt.Println(ui.StatRow("Folders", result.Folders))
	fmt.Println(ui.StatRow("Files", result.Files))
	fmt.Println(ui.StatRow("Entities", result.Entities))
	fmt.Println(ui.StatRow("Embeddings", result.Embeddings))
}
