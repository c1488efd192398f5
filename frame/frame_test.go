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

package frame

import (
	"testing"

	"github.com/ariebovenberg/pdfje/breaker"
)

func lines(n int) []breaker.Line {
	out := make([]breaker.Line, n)
	return out
}

func constHeight(h float64) func(int, int) float64 {
	return func(int, int) float64 { return h }
}

func newFrames(height float64) func(int) *Frame {
	return func(int) *Frame { return &Frame{Width: 300, Height: height} }
}

func TestFillSingleFrameFitsEverything(t *testing.T) {
	paras := [][]breaker.Line{lines(3)}
	frames := Fill(paras, []bool{true}, constHeight(10), newFrames(1000))
	if len(frames) != 1 {
		t.Fatalf("Fill produced %d frames, want 1", len(frames))
	}
	if len(frames[0].Lines) != 3 {
		t.Errorf("frame has %d lines, want 3", len(frames[0].Lines))
	}
}

func TestFillOverflowsToNextFrame(t *testing.T) {
	paras := [][]breaker.Line{lines(5)}
	frames := Fill(paras, []bool{true}, constHeight(10), newFrames(25))
	if len(frames) < 2 {
		t.Fatalf("Fill produced %d frames, want at least 2 for overflowing content", len(frames))
	}
	total := 0
	for _, f := range frames {
		total += len(f.Lines)
	}
	if total != 5 {
		t.Errorf("total placed lines = %d, want 5", total)
	}
}

// TestFillAvoidsOrphan starts a 4-line paragraph partway down an
// already-occupied frame, where only 1 of its lines would fit before the
// frame runs out. Orphan control should push the whole paragraph to the
// next (empty, full-height) frame instead of stranding 1 line.
func TestFillAvoidsOrphan(t *testing.T) {
	paras := [][]breaker.Line{lines(3), lines(4)}
	frames := Fill(paras, []bool{false, true}, constHeight(10), newFrames(45))
	if len(frames) < 2 {
		t.Fatalf("expected the second paragraph to spill into a new frame")
	}
	if len(frames[0].Lines) != 3 {
		t.Errorf("first frame has %d lines, want 3 (only the filler paragraph, orphan avoided)", len(frames[0].Lines))
	}
	if len(frames[1].Lines) != 4 {
		t.Errorf("second frame has %d lines, want all 4 of the pushed paragraph", len(frames[1].Lines))
	}
}

func TestFillWithoutOrphanControlAllowsSingleLine(t *testing.T) {
	paras := [][]breaker.Line{lines(3), lines(4)}
	frames := Fill(paras, []bool{false, false}, constHeight(10), newFrames(45))
	if len(frames[0].Lines) != 4 {
		t.Errorf("first frame has %d lines, want 4 (3 filler + 1, orphan control disabled)", len(frames[0].Lines))
	}
}

// TestFillNeverInfiniteLoopsOnUniformlyShortFrames covers the case every
// frame this flow unit can offer only ever fits a single line: orphan
// control must not refuse forever when the frame it would push to is no
// roomier than the one it started from.
func TestFillNeverInfiniteLoopsOnUniformlyShortFrames(t *testing.T) {
	paras := [][]breaker.Line{lines(4)}
	frames := Fill(paras, []bool{true}, constHeight(10), newFrames(15))
	total := 0
	for _, f := range frames {
		total += len(f.Lines)
	}
	if total != 4 {
		t.Errorf("total placed lines = %d, want 4", total)
	}
}

func TestFillAvoidsWidow(t *testing.T) {
	// A paragraph of which the frame fits 4 of its 5 lines: without
	// adjustment only 1 line would spill to the next frame (a widow); with
	// AvoidOrphans the split should pull one more line back so at least 2
	// move together. Orphan/widow control on an initially-empty frame is a
	// no-op (see TestFillNeverInfiniteLoopsOnUniformlyShortFrames), so seed
	// the frame with a 1-line filler paragraph first.
	paras := [][]breaker.Line{lines(1), lines(5)}
	frames := Fill(paras, []bool{false, true}, constHeight(10), newFrames(50))
	if len(frames) < 2 {
		t.Fatalf("expected content to spill into a second frame")
	}
	if len(frames[1].Lines) == 1 {
		t.Errorf("second frame has exactly 1 line (a widow), want 0 or >=2")
	}
}

func TestFillMultipleParagraphsStayInOrder(t *testing.T) {
	paras := [][]breaker.Line{lines(2), lines(2)}
	frames := Fill(paras, []bool{false, false}, constHeight(10), newFrames(1000))
	if len(frames) != 1 || len(frames[0].Lines) != 4 {
		t.Fatalf("Fill() = %d frames, %d lines in first", len(frames), len(frames[0].Lines))
	}
}

func TestRemainingAccountsForPlacedLines(t *testing.T) {
	f := &Frame{Height: 100}
	if r := f.Remaining(); r != 100 {
		t.Errorf("Remaining() on empty frame = %v, want 100", r)
	}
	f.Lines = append(f.Lines, PlacedLine{Baseline: 30})
	if r := f.Remaining(); r != 70 {
		t.Errorf("Remaining() = %v, want 70", r)
	}
}
