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
	"bytes"
	"testing"
)

// TestNewProgressConfigJSONMode verifies progress is disabled for JSON
// output regardless of TTY state.
func TestNewProgressConfigJSONMode(t *testing.T) {
	cfg := NewProgressConfig(true, false)
	if cfg.Enabled {
		t.Error("progress enabled in JSON mode")
	}
}

// TestNewProgressBarDisabled verifies a disabled config yields a nil
// bar so call sites can skip updates.
func TestNewProgressBarDisabled(t *testing.T) {
	cfg := ProgressConfig{Enabled: false}
	if bar := NewProgressBar(cfg, 10, "test"); bar != nil {
		t.Error("expected nil bar for disabled config")
	}
}

// TestNewProgressBarEnabled verifies an enabled config produces a
// working bar that writes to the configured writer.
func TestNewProgressBarEnabled(t *testing.T) {
	var buf bytes.Buffer
	cfg := ProgressConfig{Enabled: true, Writer: &buf, NoColor: true}

	bar := NewProgressBar(cfg, 3, "test")
	if bar == nil {
		t.Fatal("expected a bar for enabled config")
	}
	for i := 0; i < 3; i++ {
		if err := bar.Add(1); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	if err := bar.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}
}
