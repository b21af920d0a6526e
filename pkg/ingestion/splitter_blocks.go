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

package ingestion

import "strings"

// BlockSplitter segments text into runs of non-blank lines. It is the
// language-agnostic fallback when no grammar is available.
type BlockSplitter struct{}

// NewBlockSplitter creates a blank-line block splitter.
func NewBlockSplitter() *BlockSplitter {
	return &BlockSplitter{}
}

// Split returns one "block" span per maximal run of non-blank lines.
// Spans never overlap and appear in text order.
func (s *BlockSplitter) Split(path, text string) ([]Span, error) {
	var spans []Span
	var start int64 = -1 // -1 while outside a block
	var offset int64

	for _, line := range strings.SplitAfter(text, "\n") {
		blank := strings.TrimSpace(line) == ""
		if !blank && start < 0 {
			start = offset
		}
		if blank && start >= 0 {
			spans = append(spans, Span{EntityType: "block", StartByte: start, EndByte: offset})
			start = -1
		}
		offset += int64(len(line))
	}
	if start >= 0 {
		spans = append(spans, Span{EntityType: "block", StartByte: start, EndByte: offset})
	}
	return spans, nil
}
