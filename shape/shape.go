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

// Package shape turns a paragraph's flattened text runs into the
// atom.Atom stream the line breaker consumes: glyphs group into Box atoms,
// whitespace becomes Glue, and discretionary hyphens become flagged
// Penalty atoms. Calling Advance on a run's font handle as part of
// measuring also registers the codepoint as used, which is what lets an
// Embedded handle's later Freeze subset exactly the glyphs a document
// needs -- shaping and font usage tracking are the same pass.
package shape

import (
	"math"
	"unicode"

	pdferrors "github.com/ariebovenberg/pdfje"
	"github.com/ariebovenberg/pdfje/atom"
	"github.com/ariebovenberg/pdfje/font"
	"github.com/ariebovenberg/pdfje/span"
	"github.com/ariebovenberg/pdfje/style"
)

// Glyph is one shaped character: its codepoint (encoded lazily, at draw
// time, since an embedded font's final CID is only known after the whole
// document's usage has been subsetted) and its advance width in points.
type Glyph struct {
	Rune    rune
	Advance float64
}

// Run is a Box's payload: a maximal run of glyphs sharing one resolved
// style, drawn with a single content-stream text-showing operator.
type Run struct {
	Style  style.Resolved
	Glyphs []Glyph
}

// Width sums the run's glyph advances.
func (r Run) Width() float64 {
	var w float64
	for _, g := range r.Glyphs {
		w += g.Advance
	}
	return w
}

// Paragraph shapes every span.Run in a paragraph's flattened content into
// an atom stream ending with atom.ParagraphEnd. Substitutions collects a
// non-fatal Substitution for every codepoint that had no glyph in its
// font, in encounter order.
//
// ragged selects the interword glue's elasticity: false (justified)
// produces the classic stretch=W/2, shrink=W/3 space, which the breaker
// compresses or expands to fill every line to the column width. true
// (left, right, or centered) produces glue that can never be compressed
// and stretches without limit, so a line only ever breaks at its natural
// width and is never forced to fill the measure.
func Paragraph(runs []span.Run, ragged bool) (atoms []atom.Atom, substitutions []error) {
	for _, run := range runs {
		as, subs := shapeRun(run, ragged)
		atoms = append(atoms, as...)
		substitutions = append(substitutions, subs...)
	}
	atoms = append(atoms, atom.ParagraphEnd()...)
	return atoms, substitutions
}

func shapeRun(run span.Run, ragged bool) ([]atom.Atom, []error) {
	var out []atom.Atom
	var subs []error
	f := run.Style.Font
	scale := run.Style.Size / 1000

	spaceWidth := f.Advance(' ') * scale
	spaceGlue := atom.Glue{W: spaceWidth, Stretch: spaceWidth / 2, Shrink: spaceWidth / 3}
	if ragged {
		spaceGlue = atom.Glue{W: spaceWidth, Stretch: math.Inf(1), Shrink: 0}
	}

	text := []rune(run.Text)
	i := 0
	for i < len(text) {
		r := text[i]
		switch {
		case r == '\n':
			out = append(out, atom.Penalty{Cost: atom.ForcedBreak})
			out = append(out, atom.Glue{W: 0, Stretch: 0, Shrink: 0})
			i++
		case unicode.IsSpace(r):
			out = append(out, spaceGlue)
			i++
		default:
			j := i
			for j < len(text) && !unicode.IsSpace(text[j]) {
				j++
			}
			word := text[i:j]
			boxes, wordSubs := shapeWord(word, run.Style, f, scale)
			out = append(out, boxes...)
			subs = append(subs, wordSubs...)
			i = j
		}
	}
	return out, subs
}

// shapeWord builds one Box per hyphenation-piece of word, separated by
// flagged discretionary-hyphen Penalty atoms at the positions
// run.Style.Hyphens.Positions proposes.
func shapeWord(word []rune, resolved style.Resolved, f font.Handle, scale float64) ([]atom.Atom, []error) {
	positions := resolved.Hyphens.Positions(string(word))

	hyphenAdvance := f.Advance('-') * scale

	var out []atom.Atom
	var subs []error
	start := 0
	for _, p := range positions {
		if p <= start || p >= len(word) {
			continue
		}
		box, wordSubs := buildBox(word[start:p], resolved, f, scale)
		out = append(out, box)
		subs = append(subs, wordSubs...)
		out = append(out, atom.Penalty{W: hyphenAdvance, Cost: 50, Flagged: true})
		start = p
	}
	box, wordSubs := buildBox(word[start:], resolved, f, scale)
	out = append(out, box)
	subs = append(subs, wordSubs...)
	return out, subs
}

func buildBox(piece []rune, resolved style.Resolved, f font.Handle, scale float64) (atom.Box, []error) {
	var subs []error
	glyphs := make([]Glyph, 0, len(piece))
	var width float64
	for k, r := range piece {
		adv := f.Advance(r) * scale
		if k > 0 {
			adv += f.Kern(piece[k-1], r) * scale
		}
		if _, ok := resolved.Font.Encode(r); !ok {
			subs = append(subs, &pdferrors.Substitution{Codepoint: r, Font: resolved.Font.Name()})
		}
		glyphs = append(glyphs, Glyph{Rune: r, Advance: adv})
		width += adv
	}
	return atom.Box{
		W:       width,
		Content: Run{Style: resolved, Glyphs: glyphs},
	}, subs
}
