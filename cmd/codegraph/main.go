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

// Package main implements the codegraph CLI for ingesting GitHub
// repositories into a hierarchical knowledge graph and running the
// query catalogue against it.
//
// Usage:
//
//	codegraph init                       Create .codegraph/project.yaml configuration
//	codegraph ingest [owner/name]        Fetch and ingest a repository
//	codegraph op <name> [params]         Run a catalogue operation
//	codegraph status [--json]            Show graph statistics after an ingest
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/kraklabs/codegraph/internal/ui"
)

// Version information (set via ldflags during build)
var (
	version = "dev"     // Version string
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// main parses global flags and dispatches to command handlers.
//
// Global flags:
//   - --version: Display version information and exit
//   - --verbose: Enable debug logging
//   - --no-color: Disable colored output
//
// Commands:
//   - init: Create .codegraph/project.yaml configuration
//   - ingest: Fetch a repository and materialize it in the graph
//   - op: Run a single catalogue operation
//   - status: Show graph statistics
func main() {
	var (
		showVersion = flag.Bool("version", false, "Show version and exit")
		verbose     = flag.Bool("verbose", false, "Enable debug logging")
		noColor     = flag.Bool("no-color", false, "Disable colored output")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `codegraph - repository knowledge graph

codegraph fetches a GitHub repository, decomposes every file into code
entities, and materializes the result as a hierarchical graph:
User -> Repository -> Folder -> File -> Entity -> EmbeddedCode.
A fixed catalogue of named operations reads and extends the graph.

Usage:
  codegraph <command> [options]

Commands:
  init     Create .codegraph/project.yaml configuration
  ingest   Fetch a repository and materialize it in the graph
  op       Run a catalogue operation (createUser, getRepository, ...)
  status   Show graph statistics

Global Options:
  --verbose     Enable debug logging
  --no-color    Disable colored output
  --version     Show version and exit

Examples:
  codegraph init --project-id demo --repo acme/widgets
  codegraph ingest
  codegraph ingest acme/widgets --no-embed
  codegraph op getAllUsers
  codegraph op createUser '{"username": "ada", "display_name": "Ada"}'

Getting Started:
  1. Initialize configuration:  codegraph init --repo owner/name
  2. Ingest the repository:     codegraph ingest
  3. Inspect the graph:         codegraph status

Environment Variables:
  GITHUB_TOKEN              GitHub API token (name configurable in project.yaml)
  CODEGRAPH_MAX_FILE_BYTES  Per-file ingestion size limit (default 4 MiB)

For detailed command help: codegraph <command> --help

`)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("codegraph version %s\n", version)
		fmt.Printf("commit: %s\n", commit)
		fmt.Printf("built: %s\n", date)
		os.Exit(0)
	}

	ui.InitColors(*noColor)

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(1)
	}

	command := args[0]
	cmdArgs := args[1:]

	switch command {
	case "init":
		runInit(cmdArgs, logger)
	case "ingest":
		runIngest(cmdArgs, logger)
	case "op":
		runOp(cmdArgs, logger)
	case "status":
		runStatus(cmdArgs, logger)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		flag.Usage()
		os.Exit(1)
	}
}
