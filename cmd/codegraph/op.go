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
	"encoding/json"
	stderrors "errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/kraklabs/codegraph/internal/bootstrap"
	"github.com/kraklabs/codegraph/internal/contract"
	"github.com/kraklabs/codegraph/internal/errors"
	"github.com/kraklabs/codegraph/internal/output"
	"github.com/kraklabs/codegraph/pkg/graph"
)

// runOp executes the 'op' CLI command, running one catalogue operation
// against the project's graph.
//
// Flags:
//   - --timeout: Operation timeout (default: 30s)
//   - --list: List the catalogue operation names and exit
//
// Examples:
//
//	codegraph op --list
//	codegraph op getAllUsers
//	codegraph op createUser '{"username": "ada", "display_name": "Ada"}'
//	codegraph op getRepository '{"owner": "acme", "repo_name": "widgets"}'
func runOp(args []string, logger *slog.Logger) {
	fs := flag.NewFlagSet("op", flag.ExitOnError)
	timeout := fs.Duration("timeout", 30*time.Second, "Operation timeout")
	list := fs.Bool("list", false, "List the catalogue operation names and exit")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: codegraph op [options] <name> [json-params]

Runs one operation from the fixed query catalogue. Parameters are a
JSON object matching the operation's parameter record; operations
without parameters take none.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  codegraph op --list
  codegraph op getAllUsers
  codegraph op createUser '{"username": "ada", "display_name": "Ada"}'
  codegraph op getUserRepositories '{"username": "ada"}'

`)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	project, err := bootstrap.OpenProject(".", logger)
	if err != nil {
		errors.FatalError(errors.NewConfigError(
			"Cannot open project",
			err.Error(),
			"Run 'codegraph init' in the project directory first", err), true)
	}
	defer project.Close()

	if *list {
		names := project.Catalog.Operations()
		sort.Strings(names)
		for _, name := range names {
			fmt.Println(name)
		}
		return
	}

	if fs.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "Error: operation name required\n")
		fs.Usage()
		os.Exit(1)
	}

	name := fs.Arg(0)
	if check := contract.ValidateOperationName(name); !check.OK {
		errors.FatalError(errors.NewInputError(
			"Invalid operation name", check.Message,
			"Run 'codegraph op --list' for the catalogue"), true)
	}

	var params json.RawMessage
	if fs.NArg() > 1 {
		params = json.RawMessage(fs.Arg(1))
		if !json.Valid(params) {
			errors.FatalError(errors.NewInputError(
				"Invalid parameters",
				"The second argument is not valid JSON",
				`Pass a JSON object, e.g. '{"username": "ada"}'`), true)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	resp, err := project.Catalog.Dispatch(ctx, name, params)
	if err != nil {
		_ = output.JSONError(err)
		os.Exit(dispatchExitCode(err))
	}

	if err := output.JSON(resp); err != nil {
		errors.FatalError(err, true)
	}
}

// dispatchExitCode maps a catalogue failure onto the CLI's semantic
// exit codes.
func dispatchExitCode(err error) int {
	switch {
	case stderrors.Is(err, graph.ErrNotFound),
		stderrors.Is(err, graph.ErrParentNotFound):
		return errors.ExitNotFound
	case stderrors.Is(err, graph.ErrWriteConflict):
		return errors.ExitStorage
	case stderrors.Is(err, graph.ErrMultipleMatches),
		stderrors.Is(err, graph.ErrAmbiguousParent),
		stderrors.Is(err, graph.ErrRangeViolation),
		stderrors.Is(err, graph.ErrDimensionMismatch):
		return errors.ExitInput
	case stderrors.Is(err, context.DeadlineExceeded),
		stderrors.Is(err, context.Canceled):
		return errors.ExitInternal
	default:
		return errors.ExitInput
	}
}
