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
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/schollz/progressbar/v3"
	flag "github.com/spf13/pflag"

	"github.com/kraklabs/codegraph/internal/bootstrap"
	"github.com/kraklabs/codegraph/internal/errors"
	"github.com/kraklabs/codegraph/internal/output"
	"github.com/kraklabs/codegraph/internal/ui"
	"github.com/kraklabs/codegraph/pkg/ingestion"
)

// runIngest executes the 'ingest' CLI command: it fetches the
// configured repository from GitHub, decomposes every file into
// entities, and materializes the hierarchy in the graph store.
//
// Flags:
//   - --description: Repository description stored on the node
//   - --retries: Fetch attempts per file on transport errors (default: 3)
//   - --timeout: Overall ingestion timeout (default: 30m)
//   - --no-embed: Skip embedding computation
//   - --json: Output the run summary as JSON
//
// Examples:
//
//	codegraph ingest
//	codegraph ingest acme/widgets
//	codegraph ingest --no-embed --retries 5
func runIngest(args []string, logger *slog.Logger) {
	fs := flag.NewFlagSet("ingest", flag.ExitOnError)
	description := fs.String("description", "", "Repository description stored on the node")
	retries := fs.Int("retries", 3, "Fetch attempts per file on transport errors")
	timeout := fs.Duration("timeout", 30*time.Minute, "Overall ingestion timeout")
	noEmbed := fs.Bool("no-embed", false, "Skip embedding computation")
	jsonOutput := fs.Bool("json", false, "Output the run summary as JSON")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: codegraph ingest [owner/name] [options]

Fetches the repository tree and contents from GitHub, splits every file
into entities, and writes the User -> Repository -> Folder -> File ->
Entity hierarchy through the query catalogue. With an embedding
provider configured, each top-level entity also gets an EmbeddedCode
node.

The repository defaults to the one in .codegraph/project.yaml; an
owner/name argument overrides it for this run.

Options:
`)
		fs.PrintDefaults()
	}

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

	owner := project.Config.Repository.Owner
	name := project.Config.Repository.Name
	if fs.NArg() > 0 {
		var ok bool
		owner, name, ok = cutRepo(fs.Arg(0))
		if !ok {
			errors.FatalError(errors.NewInputError(
				"Invalid repository",
				fmt.Sprintf("Expected owner/name, got %q", fs.Arg(0)),
				"Pass the repository as owner/name, e.g. acme/widgets"), *jsonOutput)
		}
	}
	if owner == "" || name == "" {
		errors.FatalError(errors.NewInputError(
			"No repository configured",
			"Neither project.yaml nor the command line names a repository",
			"Set repository.owner and repository.name, or pass owner/name"), *jsonOutput)
	}

	var embedder ingestion.EmbeddingProvider
	if !*noEmbed {
		embedder = project.Embedder(logger)
	}

	progressCfg := NewProgressConfig(*jsonOutput, false)
	var bar *progressbar.ProgressBar
	progress := ingestion.Progress{
		OnList: func(total int) {
			bar = NewProgressBar(progressCfg, int64(total), "ingesting")
		},
		OnFile: func(path string) {
			if bar != nil {
				_ = bar.Add(1)
			}
		},
	}

	pipeline := ingestion.NewPipeline(
		ingestion.NewClient(project.Config.Token()),
		project.Catalog,
		project.Splitter(),
		ingestion.Options{
			IgnorePatterns: project.Config.Ignore,
			FetchAttempts:  *retries,
			Embedder:       embedder,
			Progress:       progress,
			Logger:         logger,
		},
	)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !*jsonOutput {
		ui.Infof("Ingesting %s/%s", owner, name)
	}

	result, err := pipeline.Run(ctx, owner, name, *description)
	if bar != nil {
		_ = bar.Finish()
	}
	if err != nil {
		errors.FatalError(errors.NewNetworkError(
			"Ingestion failed",
			err.Error(),
			"Check the repository name, GITHUB_TOKEN, and network access", err), *jsonOutput)
	}

	if *jsonOutput {
		if err := output.JSON(result); err != nil {
			errors.FatalError(err, true)
		}
		return
	}

	ui.Successf("Ingested %s/%s", owner, name)
	fmt.Println(ui.StatRowText("Files", fmt.Sprintf("%s of %s listed (%s skipped)",
		ui.CountText(result.FilesLoaded), ui.CountText(result.FilesListed), ui.CountText(result.FilesSkipped))))
	fmt.Println(ui.StatRow("Folders", result.Folders))
	fmt.Println(ui.StatRowText("Entities", fmt.Sprintf("%s (+%s nested)",
		ui.CountText(result.Entities), ui.CountText(result.SubEntities))))
	fmt.Println(ui.StatRow("Embeddings", result.Embedded))
	fmt.Println(ui.StatRowText("Repository", ui.DimText(result.RepositoryID)))
}

// cutRepo splits "owner/name", rejecting empty halves.
func cutRepo(s string) (owner, name string, ok bool) {
	owner, name, ok = strings.Cut(s, "/")
	if !ok || owner == "" || name == "" {
		return "", "", false
	}
	return owner, name, true
}
