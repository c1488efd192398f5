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

package pdfenc

import "testing"

func TestToWinAnsiASCII(t *testing.T) {
	b, ok := ToWinAnsi('A')
	if !ok || b != 'A' {
		t.Errorf("ToWinAnsi('A') = (%v, %v), want (65, true)", b, ok)
	}
}

func TestToWinAnsiCurlyQuote(t *testing.T) {
	b, ok := ToWinAnsi('‘') // left single quotation mark
	if !ok || b != 0x91 {
		t.Errorf("ToWinAnsi(U+2018) = (%#x, %v), want (0x91, true)", b, ok)
	}
}

func TestToWinAnsiUnmapped(t *testing.T) {
	if _, ok := ToWinAnsi('中'); ok {
		t.Error("ToWinAnsi(CJK) reported ok=true, want false")
	}
}

func TestFromWinAnsiRoundTrip(t *testing.T) {
	for b := 0x20; b <= 0xFF; b++ {
		if b >= 0x80 && b <= 0x9F {
			continue
		}
		r := FromWinAnsi(byte(b))
		got, ok := ToWinAnsi(r)
		if !ok || got != byte(b) {
			t.Errorf("round trip failed for byte %#x: got %#x, ok=%v", b, got, ok)
		}
	}
}

func TestFromWinAnsiC1Block(t *testing.T) {
	if r := FromWinAnsi(0x80); r != '€' {
		t.Errorf("FromWinAnsi(0x80) = %q, want euro sign", r)
	}
}
