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
	"fmt"
	"testing"

	"github.com/kraklabs/codegraph/internal/errors"
	"github.com/kraklabs/codegraph/pkg/graph"
)

// TestDispatchExitCode verifies that catalogue failures map onto the
// semantic exit codes rather than a single catch-all.
func TestDispatchExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", graph.ErrNotFound, errors.ExitNotFound},
		{"parent not found", graph.ErrParentNotFound, errors.ExitNotFound},
		{"write conflict", graph.ErrWriteConflict, errors.ExitStorage},
		{"multiple matches", graph.ErrMultipleMatches, errors.ExitInput},
		{"ambiguous parent", graph.ErrAmbiguousParent, errors.ExitInput},
		{"range violation", graph.ErrRangeViolation, errors.ExitInput},
		{"dimension mismatch", graph.ErrDimensionMismatch, errors.ExitInput},
		{"unknown operation", fmt.Errorf("queries: unknown operation %q", "x"), errors.ExitInput},
		{"wrapped not found", fmt.Errorf("ingest: %w", graph.ErrNotFound), errors.ExitNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := dispatchExitCode(tt.err); got != tt.want {
				t.Errorf("dispatchExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
