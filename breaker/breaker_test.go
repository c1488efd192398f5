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

package breaker

import (
	"testing"

	"github.com/ariebovenberg/pdfje/atom"
)

// word builds a Box atom of the given width, standing in for a shaped run.
func word(w float64) atom.Atom { return atom.Box{W: w} }

func space(w float64) atom.Atom { return atom.Glue{W: w, Stretch: w / 2, Shrink: w / 3} }

func fixedWidth(w float64) WidthFunc { return func(int) float64 { return w } }

// fourWords builds "aaaa bbbb cccc dddd" as boxes+glue, each word 40pt wide,
// each space 10pt wide, terminated the way shape.Paragraph does.
func fourWords() []atom.Atom {
	atoms := []atom.Atom{word(40), space(10), word(40), space(10), word(40), space(10), word(40)}
	atoms = append(atoms, atom.ParagraphEnd()...)
	return atoms
}

func TestGreedyBreaksAtLastFittingSpace(t *testing.T) {
	res := Greedy(fourWords(), fixedWidth(95))
	if len(res.Lines) != 2 {
		t.Fatalf("Greedy produced %d lines, want 2: %#v", len(res.Lines), res.Lines)
	}
	// "aaaa bbbb" (40+10+40=90) fits in 95; adding " cccc" (another 50) would not.
	if len(res.Lines[0].Atoms) != 3 {
		t.Errorf("first line has %d atoms, want 3 (word, space, word)", len(res.Lines[0].Atoms))
	}
}

func TestGreedyNeverFails(t *testing.T) {
	atoms := append([]atom.Atom{word(1000)}, atom.ParagraphEnd()...)
	res := Greedy(atoms, fixedWidth(10))
	if len(res.Lines) != 1 || !res.Lines[0].Overfull {
		t.Fatalf("Greedy() = %#v, want a single overfull line", res.Lines)
	}
	if len(res.Warnings) != 1 {
		t.Errorf("expected one OverfullLine warning, got %d", len(res.Warnings))
	}
}

func TestGreedyHonorsForcedBreak(t *testing.T) {
	atoms := []atom.Atom{
		word(20),
		atom.Penalty{Cost: atom.ForcedBreak},
		atom.Glue{W: 0},
	}
	atoms = append(atoms, atom.ParagraphEnd()...)
	res := Greedy(atoms, fixedWidth(1000))
	if len(res.Lines) != 2 {
		t.Fatalf("Greedy produced %d lines, want 2 for a forced newline", len(res.Lines))
	}
}

func TestKnuthMatchesGreedyLineCountOnSimpleInput(t *testing.T) {
	atoms := fourWords()
	res := Knuth(atoms, fixedWidth(95))
	if len(res.Lines) != 2 {
		t.Fatalf("Knuth produced %d lines, want 2: %#v", len(res.Lines), res.Lines)
	}
}

func TestKnuthFallsBackToGreedyWhenInfeasible(t *testing.T) {
	// A single word wider than the line can never be broken feasibly; Knuth
	// must still emit it (via its Greedy fallback), not panic or return zero
	// lines.
	atoms := append([]atom.Atom{word(1000)}, atom.ParagraphEnd()...)
	res := Knuth(atoms, fixedWidth(10))
	if len(res.Lines) != 1 {
		t.Fatalf("Knuth produced %d lines, want 1", len(res.Lines))
	}
}

func TestFindBreakpointsCarriesPenaltyCost(t *testing.T) {
	atoms := []atom.Atom{word(10), atom.Penalty{Cost: 42, Flagged: true}, word(10)}
	atoms = append(atoms, atom.ParagraphEnd()...)
	bps := findBreakpoints(atoms)
	if len(bps) == 0 {
		t.Fatal("expected at least one breakpoint")
	}
	if bps[0].cost != 42 {
		t.Errorf("bps[0].cost = %v, want 42 (the Penalty's own Cost)", bps[0].cost)
	}
}

func TestDemeritsForIncreasesWithPenalty(t *testing.T) {
	low := demeritsFor(10, 10)
	high := demeritsFor(10, 90)
	if low >= high {
		t.Errorf("demeritsFor(10,10) = %v, want less than demeritsFor(10,90) = %v", low, high)
	}
}

func TestKnuthPrefersEvenLineLengths(t *testing.T) {
	// Four words of width 40 separated by stretchy 10pt spaces, in a column
	// too narrow for three words even with both spaces fully shrunk
	// (140 - 2*10/3 > 130) -- so Knuth must split the words evenly, 2/2.
	atoms := fourWords()
	width := fixedWidth(130) // "aaaa bbbb cccc" = 40+10+40+10+40 = 140, too wide; 2 words = 90
	res := Knuth(atoms, width)
	if len(res.Lines) != 2 {
		t.Fatalf("Knuth produced %d lines, want 2", len(res.Lines))
	}
	if len(res.Lines[0].Atoms) != 3 {
		t.Errorf("first line has %d atoms, want 3 (word, space, word)", len(res.Lines[0].Atoms))
	}
	total := 0
	for _, l := range res.Lines {
		total += len(l.Atoms)
	}
	if total == 0 {
		t.Error("Knuth lines contain no atoms in total")
	}
}
