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

package shape

import (
	"math"
	"testing"

	"github.com/ariebovenberg/pdfje/atom"
	"github.com/ariebovenberg/pdfje/font"
	"github.com/ariebovenberg/pdfje/hyphenate"
	"github.com/ariebovenberg/pdfje/span"
	"github.com/ariebovenberg/pdfje/style"
)

func resolvedStyle(h font.Handle, hyph hyphenate.Hyphenator) style.Resolved {
	if hyph == nil {
		hyph = hyphenate.None
	}
	return style.Resolved{Font: h, Size: 10, Color: style.Black, LineSpacing: 1.25, Hyphens: hyph}
}

func TestParagraphEndsWithForcedBreak(t *testing.T) {
	runs := []span.Run{{Text: "hi", Style: resolvedStyle(font.Helvetica, nil)}}
	atoms, subs := Paragraph(runs, false)
	if len(subs) != 0 {
		t.Errorf("unexpected substitutions: %v", subs)
	}
	last, ok := atoms[len(atoms)-1].(atom.Penalty)
	if !ok || last.Cost != atom.ForcedBreak {
		t.Errorf("last atom = %#v, want a forced-break Penalty", atoms[len(atoms)-1])
	}
}

func TestParagraphProducesGlueBetweenWords(t *testing.T) {
	runs := []span.Run{{Text: "one two", Style: resolvedStyle(font.Helvetica, nil)}}
	atoms, _ := Paragraph(runs, false)
	var glueCount, boxCount int
	for _, a := range atoms {
		switch a.(type) {
		case atom.Glue:
			glueCount++
		case atom.Box:
			boxCount++
		}
	}
	if boxCount != 2 {
		t.Errorf("boxCount = %d, want 2 (one per word)", boxCount)
	}
	if glueCount < 2 {
		t.Errorf("glueCount = %d, want at least 2 (interword + paragraph end)", glueCount)
	}
}

func TestParagraphHardNewlineForcesBreak(t *testing.T) {
	runs := []span.Run{{Text: "A\nB", Style: resolvedStyle(font.Helvetica, nil)}}
	atoms, _ := Paragraph(runs, false)
	found := false
	for _, a := range atoms[:len(atoms)-2] { // exclude the paragraph's own trailing forced break
		if p, ok := a.(atom.Penalty); ok && p.Cost == atom.ForcedBreak {
			found = true
		}
	}
	if !found {
		t.Error("expected a forced-break Penalty for the embedded newline")
	}
}

func TestParagraphReportsSubstitutionForUncoveredCodepoint(t *testing.T) {
	runs := []span.Run{{Text: "中", Style: resolvedStyle(font.Helvetica, nil)}}
	_, subs := Paragraph(runs, false)
	if len(subs) != 1 {
		t.Fatalf("subs = %v, want exactly one Substitution", subs)
	}
}

func TestParagraphHyphenatesAtProposedPositions(t *testing.T) {
	runs := []span.Run{{Text: "understanding", Style: resolvedStyle(font.Helvetica, hyphenate.Fallback)}}
	atoms, _ := Paragraph(runs, false)
	found := false
	for _, a := range atoms {
		if p, ok := a.(atom.Penalty); ok && p.Flagged {
			found = true
		}
	}
	if !found {
		t.Error("expected at least one flagged discretionary-hyphen Penalty")
	}
}

func TestParagraphNoHyphensWhenDisabled(t *testing.T) {
	runs := []span.Run{{Text: "understanding", Style: resolvedStyle(font.Helvetica, hyphenate.None)}}
	atoms, _ := Paragraph(runs, false)
	for _, a := range atoms {
		if p, ok := a.(atom.Penalty); ok && p.Flagged {
			t.Error("found a flagged hyphen Penalty despite hyphenate.None")
		}
	}
}

func TestParagraphJustifiedGlueIsElastic(t *testing.T) {
	runs := []span.Run{{Text: "one two", Style: resolvedStyle(font.Helvetica, nil)}}
	atoms, _ := Paragraph(runs, false)
	g := firstInterwordGlue(t, atoms)
	if g.Shrink <= 0 || math.IsInf(g.Stretch, 1) {
		t.Errorf("justified glue = %#v, want finite stretch and positive shrink", g)
	}
}

func TestParagraphRaggedGlueNeverShrinks(t *testing.T) {
	runs := []span.Run{{Text: "one two", Style: resolvedStyle(font.Helvetica, nil)}}
	atoms, _ := Paragraph(runs, true)
	g := firstInterwordGlue(t, atoms)
	if g.Shrink != 0 || !math.IsInf(g.Stretch, 1) {
		t.Errorf("ragged glue = %#v, want zero shrink and infinite stretch", g)
	}
}

func firstInterwordGlue(t *testing.T, atoms []atom.Atom) atom.Glue {
	t.Helper()
	for _, a := range atoms {
		if g, ok := a.(atom.Glue); ok && g.W > 0 {
			return g
		}
	}
	t.Fatal("no interword glue found")
	return atom.Glue{}
}

func TestRunWidthSumsGlyphAdvances(t *testing.T) {
	r := Run{Glyphs: []Glyph{{Advance: 3}, {Advance: 4}}}
	if w := r.Width(); w != 7 {
		t.Errorf("Width() = %v, want 7", w)
	}
}
