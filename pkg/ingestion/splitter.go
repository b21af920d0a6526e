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

import (
	"path/filepath"
	"strings"
)

// Span is a candidate entity produced by a segmentation strategy,
// possibly with nested children. Child offsets are relative to the
// start of the parent span's text, so each nesting level can be
// validated independently.
type Span struct {
	EntityType string
	StartByte  int64
	EndByte    int64
	Children   []Span
}

// Splitter produces candidate spans for a file's text. The spans are
// only candidates: the decomposition contract in pkg/graph validates
// ordering and non-overlap before anything reaches the store.
type Splitter interface {
	Split(path, text string) ([]Span, error)
}

// SplitterMode selects a segmentation strategy.
type SplitterMode string

const (
	// SplitterModeTreeSitter uses Tree-sitter AST parsing for
	// supported languages. Requires CGO.
	SplitterModeTreeSitter SplitterMode = "treesitter"

	// SplitterModeBlocks splits on blank-line boundaries. Works for
	// any text.
	SplitterModeBlocks SplitterMode = "blocks"

	// SplitterModeAuto uses Tree-sitter for supported extensions and
	// falls back to blocks for everything else.
	SplitterModeAuto SplitterMode = "auto"
)

// DefaultSplitterMode prefers Tree-sitter when the file supports it.
const DefaultSplitterMode = SplitterModeAuto

// NewSplitter builds a splitter for the given mode. Unknown modes get
// the auto strategy.
func NewSplitter(mode SplitterMode) Splitter {
	switch mode {
	case SplitterModeTreeSitter:
		return NewTreeSitterSplitter()
	case SplitterModeBlocks:
		return NewBlockSplitter()
	default:
		return &autoSplitter{
			tree:   NewTreeSitterSplitter(),
			blocks: NewBlockSplitter(),
		}
	}
}

type autoSplitter struct {
	tree   *TreeSitterSplitter
	blocks *BlockSplitter
}

func (s *autoSplitter) Split(path, text string) ([]Span, error) {
	if s.tree.Supports(path) {
		return s.tree.Split(path, text)
	}
	return s.blocks.Split(path, text)
}

// fileExtension returns the extension without the leading dot, the way
// the catalogue stores it.
func fileExtension(path string) string {
	return strings.TrimPrefix(filepath.Ext(path), ".")
}
