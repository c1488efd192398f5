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

// Package breaker splits a paragraph's atom stream into lines. Greedy takes,
// on every line, the last break that still fits, the way a typewriter would.
// Knuth builds the same optimal-fit algorithm as TeX's \tex line breaker: an
// active list of feasible partial breaks, kept alive across candidate break
// points and scored by demerits, so a locally worse break can still win
// globally by avoiding a ragged paragraph shape.
package breaker

import (
	"math"

	pdf "github.com/ariebovenberg/pdfje"
	"github.com/ariebovenberg/pdfje/atom"
)

// Line is one output line of a paragraph: the atoms it contains (a
// contiguous, half-open slice of the input), its adjustment ratio, and
// whether it ends on a flagged (hyphen) break.
type Line struct {
	Atoms   []atom.Atom
	Ratio   float64
	Flagged bool
	// Overfull is set when no feasible ratio existed even at maximum
	// tolerance; the line is emitted anyway, at its natural width.
	Overfull bool
}

// WidthFunc returns the available line width for a zero-based line number,
// so callers can implement first-line indents or per-line width changes.
type WidthFunc func(line int) float64

// Result is the outcome of breaking one paragraph.
type Result struct {
	Lines []Line
	// Warnings collects a non-fatal OverfullLine for each line that had no
	// feasible ratio.
	Warnings []error
}

// breakpoint is a position at which the paragraph may legally end a line:
// at atoms[index], a Glue or a Penalty. width is the cumulative width of
// the atoms before index, NOT including this breakpoint's own atom (a Glue
// at the break is not part of the line it ends; a Penalty's width, e.g. a
// hyphen, is kept in added since it only counts when the break is actually
// taken).
type breakpoint struct {
	index   int // index into atoms of the Glue or Penalty this breaks at
	end     int // atoms[:end] belongs to the line ending here; atoms[end:] starts the next
	added   float64
	flagged bool
	forced  bool
	cost    float64 // the breaking Penalty's own cost; 0 for a Glue breakpoint
	width   float64 // cumulative content width of atoms[0:index], excluding the break atom
}

// findBreakpoints walks atoms once and returns every legal break position
// with its cumulative preceding content width.
func findBreakpoints(atoms []atom.Atom) []breakpoint {
	var bps []breakpoint
	var cum float64
	for i, a := range atoms {
		switch v := a.(type) {
		case atom.Penalty:
			if !math.IsInf(v.Cost, 1) {
				bps = append(bps, breakpoint{
					index: i, end: i + 1, added: v.W, flagged: v.Flagged,
					forced: math.IsInf(v.Cost, -1), cost: v.Cost, width: cum,
				})
			}
		case atom.Glue:
			if i > 0 {
				// A Glue right before a forced break is no break position:
				// breaking there would only leave an empty line behind.
				nextForced := false
				if i+1 < len(atoms) {
					if p, ok := atoms[i+1].(atom.Penalty); ok && math.IsInf(p.Cost, -1) {
						nextForced = true
					}
				}
				if _, prevIsBox := atoms[i-1].(atom.Box); prevIsBox && !nextForced {
					bps = append(bps, breakpoint{index: i, end: i, width: cum})
				}
			}
		}
		cum += a.Width()
	}
	return bps
}

// Greedy breaks atoms into lines by taking the last feasible break before
// each line would overflow width, without look-ahead. It never fails: an
// unbreakable run wider than width still gets its own overfull line.
func Greedy(atoms []atom.Atom, width WidthFunc) Result {
	var res Result
	bps := findBreakpoints(atoms)
	if len(bps) == 0 {
		return res
	}

	lineStart := 0
	startWidth := 0.0
	line := 0
	var best *breakpoint

	emit := func(bp breakpoint, overfull bool) {
		res.Lines = append(res.Lines, Line{
			Atoms:    atoms[lineStart:bp.end],
			Flagged:  bp.flagged,
			Overfull: overfull,
		})
		if overfull {
			res.Warnings = append(res.Warnings, &pdf.OverfullLine{Reason: "no feasible break within tolerance"})
		}
		lineStart = bp.end
		startWidth = bp.width + bp.added
		// A break at a Glue discards that Glue: the next line starts after it.
		if g, ok := atoms[bp.index].(atom.Glue); ok {
			lineStart = bp.index + 1
			startWidth += g.W
		}
		line++
		best = nil
	}

	avail := width(line)
	for i := range bps {
		bp := bps[i]
		lineWidth := (bp.width - startWidth) + bp.added

		if bp.forced {
			if lineWidth <= avail || best == nil {
				emit(bp, lineWidth > avail)
			} else {
				emit(*best, false)
				// Re-evaluate this forced breakpoint against the new line.
				lineWidth = (bp.width - startWidth) + bp.added
				emit(bp, lineWidth > avail)
			}
			avail = width(line)
			continue
		}

		if lineWidth <= avail {
			bpCopy := bp
			best = &bpCopy
			continue
		}

		// This breakpoint overflows: fall back to the last one that fit.
		if best != nil {
			emit(*best, false)
		} else {
			// Nothing fit since the last break: this segment overflows on
			// its own regardless of where we cut it.
			emit(bp, true)
			avail = width(line)
			continue
		}
		avail = width(line)
		lineWidth = (bp.width - startWidth) + bp.added
		if lineWidth <= avail {
			bpCopy := bp
			best = &bpCopy
		} else {
			emit(bp, true)
			avail = width(line)
		}
	}
	if lineStart < len(atoms) {
		lineWidth := 0.0
		for _, a := range atoms[lineStart:] {
			lineWidth += a.Width()
		}
		overfull := lineWidth > avail
		res.Lines = append(res.Lines, Line{Atoms: atoms[lineStart:], Overfull: overfull})
		if overfull {
			res.Warnings = append(res.Warnings, &pdf.OverfullLine{Reason: "no feasible break within tolerance"})
		}
	}
	return res
}
