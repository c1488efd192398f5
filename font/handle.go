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

// Package font provides the font handles the shaper and PDF writer share: a
// Standard14 built-in tag, an Embedded TrueType reference, the registry
// that assigns them PDF resource names, and the WinAnsiEncoding table used
// by the built-ins. Per-codepoint advance widths and kerning pairs are
// memoized on first use and cached for the handle's lifetime, so that a
// font parsed once can be shared read-only across documents that reuse it.
package font

// Metrics are a font's document-wide vertical metrics, in thousandths of an
// em (the same scale AFM and PDF glyph-space widths use).
type Metrics struct {
	Ascent    float64
	Descent   float64
	CapHeight float64
}

// Handle is anything the shaper and writer can treat as a font: a
// Standard14 tag or an Embedded TrueType reference. Widths and kerning are
// reported in thousandths of an em; multiplying by Style.Size/1000 gives
// text-space units.
type Handle interface {
	// Name is the PDF /BaseFont name, without any subset tag.
	Name() string
	Bold() bool
	Italic() bool
	Metrics() Metrics
	Advance(r rune) float64
	Kern(a, b rune) float64
	// Encode returns the bytes to place in a content stream's show-text
	// operand for r: one WinAnsiEncoding byte for a Standard14 font, or a
	// two-byte big-endian CID for an embedded Identity-H font. ok is false
	// when r had no glyph and was substituted (FontCoverage).
	Encode(r rune) (code []byte, ok bool)
	// Embedded reports whether this handle requires a FontFile2 subset to
	// be written, as opposed to relying on a PDF reader's built-in font.
	Embedded() bool
}
