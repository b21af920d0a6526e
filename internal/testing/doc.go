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

// Package testing provides test helpers for codegraph integration tests.
//
// # Quick Start
//
// Use SetupTestBackend to create an in-memory graph backend:
//
//	func TestMyFeature(t *testing.T) {
//	    backend := testing.SetupTestBackend(t)
//
//	    userID := testing.SeedUser(t, backend, "ada")
//	    repoID := testing.SeedRepository(t, backend, userID, "ada", "engine")
//
//	    if got := testing.CountNodes(t, backend, graph.KindRepository); got != 1 {
//	        t.Fatalf("repositories = %d", got)
//	    }
//	}
//
// # Seeding Test Data
//
// The package provides helpers for inserting common graph shapes:
//   - SeedUser: Add a User node
//   - SeedRepository: Add a Repository node linked to its owner
//   - SeedFile: Add a File node under a repository
//   - SeedEntity: Add an Entity node covering a file's text
//
// # Inspecting the Graph
//
// Helper functions for common assertions:
//   - CountNodes: Count committed nodes of a kind
//   - OutIDs: Collect neighbor IDs over one edge kind
package testing
