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

// Package frame fills a sequence of rectangular frames (columns, or pages
// when a frame runs out) with already-broken paragraph lines, applying
// orphan and widow control: a paragraph never contributes just its first
// line to the bottom of one frame while the rest spills to the next, and
// never just its last line to the top of the next frame while the rest
// stayed behind.
package frame

import "github.com/ariebovenberg/pdfje/breaker"

// PlacedLine is one line positioned within a frame, at a given baseline
// distance from the frame's top.
type PlacedLine struct {
	Line     breaker.Line
	Baseline float64
	Height   float64 // this line's own leading (font size * line spacing)
}

// Frame is one filled rectangle: a column, or a page body between margins.
type Frame struct {
	Width, Height float64
	Lines         []PlacedLine
}

// Remaining reports how much vertical space is left after the lines placed
// so far.
func (f *Frame) Remaining() float64 {
	if len(f.Lines) == 0 {
		return f.Height
	}
	last := f.Lines[len(f.Lines)-1]
	return f.Height - last.Baseline
}

// minKeepTogether is the number of lines of a paragraph orphan/widow
// control tries to keep on the same side of a frame break, per the
// "never fewer than 2 lines together" rule.
const minKeepTogether = 2

// Fill places paragraphs (each a pre-broken sequence of lines with a fixed
// per-line height) into successive frames obtained from next, applying
// orphan/widow control within each paragraph. next is called with the
// zero-based index of the frame about to be filled and must return a fresh
// empty Frame of the desired dimensions.
//
// Each entry of paragraphs is one paragraph's already-broken lines;
// lineHeight(paraIdx, lineIdx) gives each line's baseline-to-baseline
// distance (e.g. font size * LineSpacing).
// avoidOrphans has one entry per paragraph; orphan/widow adjustment only
// applies where the corresponding entry is true.
func Fill(paragraphs [][]breaker.Line, avoidOrphans []bool, lineHeight func(paraIdx, lineIdx int) float64, next func(frameIdx int) *Frame) []*Frame {
	var frames []*Frame
	frameIdx := 0
	cur := next(frameIdx)
	frames = append(frames, cur)

	for pi, lines := range paragraphs {
		placed := 0
		for placed < len(lines) {
			remaining := len(lines) - placed
			roomLines := countFitting(cur, lines, lineHeight, pi, placed)

			if avoidOrphans[pi] && len(cur.Lines) > 0 {
				// Orphan/widow adjustment only makes sense when it can push
				// content into an already-started frame's remainder; applied
				// to a frame that is still empty, it would forever refuse
				// the one line that fits and never make progress, since the
				// next frame requested is no roomier.
				roomLines = applyOrphanWidow(roomLines, placed, remaining, len(lines))
			}

			if roomLines == 0 {
				frameIdx++
				cur = next(frameIdx)
				frames = append(frames, cur)
				continue
			}

			appendLines(cur, lines[placed:placed+roomLines], lineHeight, pi, placed)
			placed += roomLines

			if placed < len(lines) {
				frameIdx++
				cur = next(frameIdx)
				frames = append(frames, cur)
			}
		}
	}
	return frames
}

// countFitting returns how many of lines[from:] fit in the vertical space
// remaining in f, without yet applying orphan/widow adjustment.
func countFitting(f *Frame, lines []breaker.Line, lineHeight func(int, int) float64, paraIdx, from int) int {
	remaining := f.Remaining()
	n := 0
	for i := from; i < len(lines); i++ {
		h := lineHeight(paraIdx, i)
		if h > remaining {
			break
		}
		remaining -= h
		n++
	}
	return n
}

// applyOrphanWidow adjusts how many lines to place in the current frame so
// that a paragraph never leaves exactly one line behind (orphan) or sends
// exactly one line ahead (widow), when the paragraph has enough lines that
// an adjustment is possible without violating the other constraint.
func applyOrphanWidow(roomLines, placedSoFar, remaining, total int) int {
	if roomLines == 0 || roomLines == remaining {
		return roomLines // either nothing fits, or the whole rest fits: no split to worry about
	}

	linesAfterSplit := roomLines           // lines staying in this frame
	linesPushed := remaining - roomLines   // lines moving to the next frame

	// Orphan: don't leave a single line of a paragraph's start stranded at
	// the bottom of this frame when more of the same paragraph follows.
	if placedSoFar == 0 && linesAfterSplit == 1 && total >= minKeepTogether+1 {
		return 0 // push the whole paragraph opening to the next frame
	}

	// Widow: don't strand a single trailing line at the top of the next
	// frame when the paragraph has at least 3 lines and enough already
	// landed in this frame to pull one more back.
	if linesPushed == 1 && total >= 3 && linesAfterSplit > minKeepTogether {
		return roomLines - 1
	}

	return roomLines
}

func appendLines(f *Frame, lines []breaker.Line, lineHeight func(int, int) float64, paraIdx, from int) {
	baseline := 0.0
	if len(f.Lines) > 0 {
		baseline = f.Lines[len(f.Lines)-1].Baseline
	}
	for i, line := range lines {
		h := lineHeight(paraIdx, from+i)
		baseline += h
		f.Lines = append(f.Lines, PlacedLine{Line: line, Baseline: baseline, Height: h})
	}
}
