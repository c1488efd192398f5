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

// Package atom implements the Knuth-Plass paragraph model: a paragraph is a
// flat stream of boxes, glue, and penalties, in text-space points. Only the
// breaker package inspects the specific glyph/whitespace/hyphen content a
// Box carries; everything upstream (shaping) produces the stream, and
// everything downstream (breaking, drawing) treats it uniformly.
package atom

import "math"

// Atom is one element of a paragraph's linear content stream.
type Atom interface {
	isAtom()
	// Width is the atom's natural (unstretched, unshrunk) width in points.
	Width() float64
}

// Box is an unbreakable, fixed-width piece of content: a shaped glyph run,
// or (for a discretionary hyphen's pre-break piece) a hyphen glyph. Content
// identifies which glyph run or drawable this box renders; it is opaque to
// the breaker and frame filler.
type Box struct {
	W       float64
	Content interface{}
}

func (Box) isAtom()          {}
func (b Box) Width() float64 { return b.W }

// Glue is a stretchable/shrinkable space: interword space within a line, or
// the paragraph-terminating glue (Width 0, Stretch +Inf) that forces a
// final break. Glue is only ever a legal breakpoint when it immediately
// follows a Box, so breakability isn't a property of the Glue itself --
// the breaker derives it from context, the same rule Knuth-Plass uses.
type Glue struct {
	W       float64
	Stretch float64
	Shrink  float64
}

func (Glue) isAtom()          {}
func (g Glue) Width() float64 { return g.W }

// Penalty is a candidate break point with an associated cost, carried
// through unchanged to the breaker's demerits calculation for any finite
// value. A Cost of
// -Inf forces a break here (e.g. a hard newline); +Inf forbids one (the
// default for a non-hyphen inter-glyph position). Flagged marks a
// discretionary-hyphen penalty, which the breaker discourages from
// appearing on two consecutive lines.
type Penalty struct {
	W       float64
	Cost    float64
	Flagged bool
}

func (Penalty) isAtom()          {}
func (p Penalty) Width() float64 { return p.W }

// ForcedBreak is the cost of a penalty that must become a line break, such
// as a hard newline.
var ForcedBreak = math.Inf(-1)

// NoBreak is the cost of a penalty that can never become a line break.
var NoBreak = math.Inf(1)

// ParagraphEnd is the glue/penalty pair every paragraph's atom stream ends
// with, per the Knuth-Plass construction: a zero-width infinitely
// stretchable glue followed by a forced break, so the algorithm always
// considers breaking at the very end.
func ParagraphEnd() []Atom {
	return []Atom{
		Glue{W: 0, Stretch: NoBreak, Shrink: 0},
		Penalty{W: 0, Cost: ForcedBreak},
	}
}
