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

// Package contract provides validation constants and utilities for
// codegraph's ingestion and query surfaces.
//
// # File Size Limits
//
// Ingestion enforces a limit on decoded file text to prevent memory
// exhaustion when a repository carries large generated files:
//
//	// Default limit is 4 MiB
//	limit := contract.MaxFileBytes()
//
//	// Check fetched text before decomposing it
//	result := contract.ValidateFileText(text)
//	if !result.OK {
//	    log.Printf("skipping: %s", result.Message)
//	}
//
// # Configuration via Environment
//
// The limit can be adjusted via the CODEGRAPH_MAX_FILE_BYTES
// environment variable:
//
//	export CODEGRAPH_MAX_FILE_BYTES=1048576  # 1 MiB
//
// If the environment variable is not set or invalid, the default of
// 4 MiB (DefaultMaxFileBytes) is used.
package contract
