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

package font

import (
	"encoding/binary"
	"io"

	"github.com/ariebovenberg/pdfje/font/sfnt"
	"github.com/ariebovenberg/pdfje/font/subset"
)

// Embedded is a Handle backed by a parsed TrueType font. It reports widths
// and kerning straight from the font's own tables; codepoint-to-CID codes
// only become available once the owning Registry has subsetted the font (see
// Freeze), since a subset's CIDs are dense and depend on every codepoint the
// whole document used.
type Embedded struct {
	font   *sfnt.Font
	name   string
	bold   bool
	italic bool

	used   map[rune]bool
	result *subset.Result
}

// NewEmbedded parses a TrueType font program for embedding. name overrides
// the font's own name-table family name when non-empty; bold/italic record
// the style this handle represents, for font selection and /Flags.
func NewEmbedded(r io.Reader, name string, bold, italic bool) (*Embedded, error) {
	f, err := sfnt.Parse(r)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = f.Name.Family
	}
	return &Embedded{
		font:   f,
		name:   name,
		bold:   bold,
		italic: italic,
		used:   make(map[rune]bool),
	}, nil
}

func (e *Embedded) Name() string   { return e.name }
func (e *Embedded) Bold() bool     { return e.bold }
func (e *Embedded) Italic() bool   { return e.italic }
func (e *Embedded) Embedded() bool { return true }

func (e *Embedded) Metrics() Metrics {
	scale := 1000.0 / float64(e.font.UnitsPerEm)
	return Metrics{
		Ascent:    float64(e.font.Hhea.Ascender) * scale,
		Descent:   float64(e.font.Hhea.Descender) * scale,
		CapHeight: float64(e.font.Hhea.Ascender) * scale, // no OS/2 table parsed; approximate
	}
}

// Advance also records r as used, so a later Freeze includes its glyph in
// the subset. Shaping must visit every codepoint it will later Encode.
func (e *Embedded) Advance(r rune) float64 {
	e.used[r] = true
	return e.font.Advance(r)
}

func (e *Embedded) Kern(a, b rune) float64 {
	return e.font.Kern(a, b)
}

// Encode returns r's two-byte big-endian CID in this handle's subset. It
// returns ok=false, and the .notdef code, both when r has no glyph in the
// font and when Freeze has not run yet.
func (e *Embedded) Encode(r rune) ([]byte, bool) {
	if e.result == nil {
		return []byte{0, 0}, false
	}
	cid, ok := e.result.CIDs[r]
	if !ok || cid == 0 {
		return []byte{0, 0}, false
	}
	buf := make([]byte, 2)
	binary.BigEndian.PutUint16(buf, cid)
	return buf, true
}

// Freeze builds the used-glyph subset from every codepoint Advance has seen
// so far. Called once per document, after shaping and before content stream
// emission, so that Encode's CIDs are stable for the rest of the write.
func (e *Embedded) Freeze() (*subset.Result, error) {
	result, err := subset.Build(e.font, e.used)
	if err != nil {
		return nil, err
	}
	e.result = result
	return result, nil
}

// Subset returns the result of the most recent Freeze, or nil if Freeze has
// not run.
func (e *Embedded) Subset() *subset.Result {
	return e.result
}
