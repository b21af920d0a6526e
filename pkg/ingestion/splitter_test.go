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

import "testing"

func TestBlockSplitterSeparatesOnBlankLines(t *testing.T) {
	text := "alpha\nbeta\n\ngamma\n"
	spans, err := NewBlockSplitter().Split("notes.txt", text)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(spans) != 2 {
		t.Fatalf("got %d spans, want 2", len(spans))
	}
	if got := text[spans[0].StartByte:spans[0].EndByte]; got != "alpha\nbeta\n" {
		t.Errorf("span 0 = %q", got)
	}
	if got := text[spans[1].StartByte:spans[1].EndByte]; got != "gamma\n" {
		t.Errorf("span 1 = %q", got)
	}
	for i, s := range spans {
		if s.EntityType != "block" {
			t.Errorf("span %d type = %q", i, s.EntityType)
		}
	}
}

func TestBlockSplitterNoTrailingNewline(t *testing.T) {
	text := "only block"
	spans, err := NewBlockSplitter().Split("x", text)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	if spans[0].StartByte != 0 || spans[0].EndByte != int64(len(text)) {
		t.Errorf("span = [%d,%d)", spans[0].StartByte, spans[0].EndByte)
	}
}

func TestBlockSplitterEmptyText(t *testing.T) {
	spans, err := NewBlockSplitter().Split("x", "")
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(spans) != 0 {
		t.Errorf("got %d spans, want 0", len(spans))
	}
}

func TestFileExtension(t *testing.T) {
	cases := map[string]string{
		"main.go":       "go",
		"src/app.py":    "py",
		"Makefile":      "",
		"archive.tar.gz": "gz",
	}
	for path, want := range cases {
		if got := fileExtension(path); got != want {
			t.Errorf("fileExtension(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestTreeSitterSplitterSupports(t *testing.T) {
	s := NewTreeSitterSplitter()
	if !s.Supports("pkg/util/strings.go") {
		t.Error("expected go support")
	}
	if !s.Supports("scripts/run.py") {
		t.Error("expected python support")
	}
	if s.Supports("README.md") {
		t.Error("unexpected markdown support")
	}
}

func TestTreeSitterSplitterTopLevelDecls(t *testing.T) {
	src := "package demo\n\nimport \"fmt\"\n\nfunc Greet(name string) {\n\tfmt.Println(name)\n}\n\ntype Pair struct {\n\tA, B int\n}\n"
	spans, err := NewTreeSitterSplitter().Split("demo.go", src)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(spans) < 4 {
		t.Fatalf("got %d spans, want at least 4", len(spans))
	}

	var sawFunc bool
	for _, s := range spans {
		if s.EndByte <= s.StartByte || s.EndByte > int64(len(src)) {
			t.Errorf("span [%d,%d) out of range", s.StartByte, s.EndByte)
		}
		if s.EntityType == "function_declaration" {
			sawFunc = true
			if len(s.Children) == 0 {
				t.Error("function span has no body statements")
			}
			for _, c := range s.Children {
				if c.StartByte < 0 || c.EndByte > s.EndByte-s.StartByte {
					t.Errorf("child span [%d,%d) outside parent", c.StartByte, c.EndByte)
				}
			}
		}
	}
	if !sawFunc {
		t.Error("no function_declaration span")
	}
}
