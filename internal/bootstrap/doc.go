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

// Package bootstrap initializes and opens codegraph projects.
//
// A project is a directory holding .codegraph/project.yaml. InitProject
// writes the configuration; OpenProject loads it and assembles the
// graph backend and query catalogue the CLI commands work against.
//
// Typical usage from a command:
//
//	project, err := bootstrap.OpenProject(".", logger)
//	if err != nil {
//	    return err
//	}
//	defer project.Close()
//
//	resp, err := project.Catalog.Dispatch(ctx, "getAllUsers", nil)
//
// The ingestion command additionally pulls the configured splitter and
// embedding provider from the project:
//
//	splitter := project.Splitter()
//	embedder := project.Embedder(logger)
package bootstrap
