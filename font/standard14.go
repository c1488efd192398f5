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

import "github.com/ariebovenberg/pdfje/font/pdfenc"

type family int

const (
	familyHelvetica family = iota
	familyTimes
	familyCourier
	familySymbol
	familyZapfDingbats
)

// Standard14 identifies one of the fourteen fonts every conforming PDF
// reader must have built in: the four weight/style variants each of
// Helvetica, Times, and Courier, plus Symbol and ZapfDingbats (which have
// no variants). Standard14 fonts use WinAnsiEncoding; codepoints outside
// that encoding render as U+003F.
type Standard14 struct {
	fam    family
	bolded bool
	italic bool
}

var (
	Helvetica            = Standard14{fam: familyHelvetica}
	HelveticaBold        = Standard14{fam: familyHelvetica, bolded: true}
	HelveticaOblique     = Standard14{fam: familyHelvetica, italic: true}
	HelveticaBoldOblique = Standard14{fam: familyHelvetica, bolded: true, italic: true}

	TimesRoman      = Standard14{fam: familyTimes}
	TimesBold       = Standard14{fam: familyTimes, bolded: true}
	TimesItalic     = Standard14{fam: familyTimes, italic: true}
	TimesBoldItalic = Standard14{fam: familyTimes, bolded: true, italic: true}

	Courier            = Standard14{fam: familyCourier}
	CourierBold        = Standard14{fam: familyCourier, bolded: true}
	CourierOblique     = Standard14{fam: familyCourier, italic: true}
	CourierBoldOblique = Standard14{fam: familyCourier, bolded: true, italic: true}

	Symbol       = Standard14{fam: familySymbol}
	ZapfDingbats = Standard14{fam: familyZapfDingbats}
)

func (s Standard14) family() family { return s.fam }
func (s Standard14) bold() bool     { return s.bolded }

// Bold reports whether this variant is drawn bold.
func (s Standard14) Bold() bool { return s.bolded }

// Italic reports whether this variant is drawn italic/oblique.
func (s Standard14) Italic() bool { return s.italic }

// Embedded always reports false: Standard14 fonts are never subsetted or
// embedded, they rely on the reader's built-in font program.
func (s Standard14) Embedded() bool { return false }

// Name returns the PDF /BaseFont name for this variant.
func (s Standard14) Name() string {
	switch s.fam {
	case familyHelvetica:
		return pick(s, "Helvetica", "Helvetica-Bold", "Helvetica-Oblique", "Helvetica-BoldOblique")
	case familyTimes:
		return pick(s, "Times-Roman", "Times-Bold", "Times-Italic", "Times-BoldItalic")
	case familyCourier:
		return pick(s, "Courier", "Courier-Bold", "Courier-Oblique", "Courier-BoldOblique")
	case familySymbol:
		return "Symbol"
	case familyZapfDingbats:
		return "ZapfDingbats"
	}
	return "Helvetica"
}

func pick(s Standard14, regular, bold, italic, boldItalic string) string {
	switch {
	case s.bolded && s.italic:
		return boldItalic
	case s.bolded:
		return bold
	case s.italic:
		return italic
	default:
		return regular
	}
}

// Metrics reports the font-wide vertical metrics, in thousandths of an em.
func (s Standard14) Metrics() Metrics {
	switch s.fam {
	case familyCourier:
		return Metrics{Ascent: 629, Descent: -157, CapHeight: 562}
	case familyTimes:
		return Metrics{Ascent: 683, Descent: -217, CapHeight: 662}
	case familySymbol, familyZapfDingbats:
		return Metrics{Ascent: 800, Descent: -200, CapHeight: 700}
	default: // Helvetica
		return Metrics{Ascent: 718, Descent: -207, CapHeight: 718}
	}
}

// Advance returns r's advance width in thousandths of an em. The width
// tables cover only the printable ASCII bytes 0x20-0x7E: codepoints not
// covered by WinAnsiEncoding, and WinAnsi bytes outside that range (e.g.
// accented Latin-1 letters), fall back to the width of '?' (FontCoverage is
// a soft error recorded by the caller, not raised here).
func (s Standard14) Advance(r rune) float64 {
	table, flat := standardWidthTable(s)
	if table == nil {
		return float64(flat)
	}
	b, ok := pdfenc.ToWinAnsi(r)
	if !ok || b < 0x20 || int(b) >= 0x20+len(table) {
		b, _ = pdfenc.ToWinAnsi('?')
	}
	idx := int(b) - 0x20
	if idx < 0 || idx >= len(table) {
		return float64(flat)
	}
	return float64(table[idx])
}

// Kern returns the pairwise kerning adjustment between a and b, in
// thousandths of an em. The Standard14 fonts carry no kerning table in this
// implementation, matching the metrics distributed with most PDF viewers.
func (s Standard14) Kern(a, b rune) float64 { return 0 }

// Encode returns the single WinAnsiEncoding byte used to show r in a
// content stream, substituting '?' when r has no WinAnsi representation
// (recorded by the caller as a Substitution, not raised).
func (s Standard14) Encode(r rune) ([]byte, bool) {
	b, ok := pdfenc.ToWinAnsi(r)
	if !ok {
		b, _ = pdfenc.ToWinAnsi('?')
		return []byte{b}, false
	}
	return []byte{b}, true
}
