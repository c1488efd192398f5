// Copyright (C) 2024 The pdfje Authors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package subset

import (
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/ariebovenberg/pdfje/font/sfnt"
)

func parseGoRegular(t *testing.T) *sfnt.Font {
	t.Helper()
	f, err := sfnt.ParseBytes(goregular.TTF)
	if err != nil {
		t.Fatalf("ParseBytes(goregular.TTF): %v", err)
	}
	return f
}

func TestBuildSubsetsOnlyUsedGlyphs(t *testing.T) {
	f := parseGoRegular(t)
	used := map[rune]bool{'H': true, 'i': true}

	result, err := Build(f, used)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(result.Tag) != 6 {
		t.Errorf("Tag = %q, want 6 letters", result.Tag)
	}
	for _, r := range []rune{'H', 'i'} {
		if _, ok := result.CIDs[r]; !ok {
			t.Errorf("CIDs missing entry for %q", r)
		}
	}
	// The subset must be much smaller than the full font: goregular.TTF
	// covers a large Unicode range, this subset only two letters (plus
	// whatever composite closure they pull in).
	if len(result.Data) >= len(goregular.TTF) {
		t.Errorf("subset Data (%d bytes) is not smaller than the full font (%d bytes)", len(result.Data), len(goregular.TTF))
	}
}

func TestBuildAssignsNotdefToCIDZero(t *testing.T) {
	f := parseGoRegular(t)
	result, err := Build(f, map[rune]bool{'A': true})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	// .notdef (glyph 0) is always included but is never itself a used
	// codepoint's CID; NumGlyphs must be at least 2 (.notdef + 'A').
	if result.NumGlyphs < 2 {
		t.Errorf("NumGlyphs = %d, want >= 2", result.NumGlyphs)
	}
	if result.CIDs['A'] == 0 {
		t.Error("CID for 'A' is 0 (.notdef), want a nonzero CID")
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	f := parseGoRegular(t)
	used := map[rune]bool{'p': true, 'd': true, 'f': true, 'j': true, 'e': true}
	r1, err := Build(f, used)
	if err != nil {
		t.Fatal(err)
	}
	r2, err := Build(f, used)
	if err != nil {
		t.Fatal(err)
	}
	if r1.Tag != r2.Tag {
		t.Errorf("Tag is not deterministic: %q != %q", r1.Tag, r2.Tag)
	}
	if string(r1.Data) != string(r2.Data) {
		t.Error("subset Data is not deterministic across identical inputs")
	}
}

func TestBuildEmptyUsedStillIncludesNotdef(t *testing.T) {
	f := parseGoRegular(t)
	result, err := Build(f, map[rune]bool{})
	if err != nil {
		t.Fatal(err)
	}
	if result.NumGlyphs < 1 {
		t.Errorf("NumGlyphs = %d, want >= 1 for .notdef alone", result.NumGlyphs)
	}
	if len(result.CIDs) != 0 {
		t.Errorf("CIDs = %v, want empty", result.CIDs)
	}
}

func TestTagIsStableUnderReordering(t *testing.T) {
	a := Tag([]sfnt.GlyphID{3, 1, 2})
	b := Tag([]sfnt.GlyphID{1, 2, 3})
	if a != b {
		t.Errorf("Tag depends on input order: %q != %q", a, b)
	}
}

func TestTagDiffersForDifferentGlyphSets(t *testing.T) {
	a := Tag([]sfnt.GlyphID{1, 2, 3})
	b := Tag([]sfnt.GlyphID{1, 2, 4})
	if a == b {
		t.Errorf("Tag collided for different glyph sets: both %q", a)
	}
}
