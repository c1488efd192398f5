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

// Package pdfenc implements the single-byte text encoding the Standard14
// fonts use: WinAnsiEncoding, as tabulated in Annex D.2 of PDF 32000-1:2008.
// It differs from literal Windows code page 1252 in a handful of C1 slots,
// so it is tabulated directly rather than borrowed from a generic charmap.
package pdfenc

// winAnsi maps bytes 0x80-0x9F, the block where WinAnsiEncoding parts ways
// with Latin-1. Everything outside this range, 0x20-0x7F and 0xA0-0xFF, is
// identical to its Latin-1/Unicode codepoint.
var winAnsi = [32]rune{
	0x20AC, 0xFFFD, 0x201A, 0x0192, 0x201E, 0x2026, 0x2020, 0x2021,
	0x02C6, 0x2030, 0x0160, 0x2039, 0x0152, 0xFFFD, 0x017D, 0xFFFD,
	0xFFFD, 0x2018, 0x2019, 0x201C, 0x201D, 0x2022, 0x2013, 0x2014,
	0x02DC, 0x2122, 0x0161, 0x203A, 0x0153, 0xFFFD, 0x017E, 0x0178,
}

var winAnsiReverse map[rune]byte

func init() {
	winAnsiReverse = make(map[rune]byte, 224)
	for b := 0x20; b <= 0xFF; b++ {
		if b >= 0x80 && b <= 0x9F {
			continue
		}
		winAnsiReverse[rune(b)] = byte(b)
	}
	for i, r := range winAnsi {
		if r != 0xFFFD {
			winAnsiReverse[r] = byte(0x80 + i)
		}
	}
}

// ToWinAnsi maps a codepoint to its WinAnsiEncoding byte. Codepoints with no
// representation report ok=false; callers substitute U+003F ('?') per the
// shaper's FontCoverage policy.
func ToWinAnsi(r rune) (b byte, ok bool) {
	b, ok = winAnsiReverse[r]
	return b, ok
}

// FromWinAnsi decodes a WinAnsiEncoding byte back to its codepoint.
func FromWinAnsi(b byte) rune {
	if b < 0x80 || b > 0x9F {
		return rune(b)
	}
	r := winAnsi[b-0x80]
	if r == 0xFFFD {
		return rune(b)
	}
	return r
}
