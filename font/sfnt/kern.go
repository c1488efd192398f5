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

package sfnt

import "encoding/binary"

// parseKern reads the legacy 'kern' table's format-0 horizontal pair
// subtables. Apple's variant (version field 0x0001) and subtable formats
// other than 0 are skipped rather than rejected: kerning is cosmetic, so an
// unrecognized subtable just yields fewer pairs, not a parse failure.
func parseKern(data []byte) map[[2]GlyphID]int16 {
	pairs := make(map[[2]GlyphID]int16)
	if len(data) < 4 {
		return pairs
	}
	version := binary.BigEndian.Uint16(data[0:2])
	if version != 0 {
		return pairs
	}
	numTables := int(binary.BigEndian.Uint16(data[2:4]))
	off := 4
	for t := 0; t < numTables; t++ {
		if off+6 > len(data) {
			break
		}
		length := int(binary.BigEndian.Uint16(data[off+2 : off+4]))
		coverage := binary.BigEndian.Uint16(data[off+4 : off+6])
		format := coverage >> 8
		isHorizontal := coverage&0x0001 != 0
		body := data[off:]
		if length > len(body) {
			length = len(body)
		}
		if format == 0 && isHorizontal && length >= 14 {
			nPairs := int(binary.BigEndian.Uint16(body[6:8]))
			p := 14
			for i := 0; i < nPairs && p+6 <= length; i++ {
				left := GlyphID(binary.BigEndian.Uint16(body[p : p+2]))
				right := GlyphID(binary.BigEndian.Uint16(body[p+2 : p+4]))
				value := int16(binary.BigEndian.Uint16(body[p+4 : p+6]))
				pairs[[2]GlyphID{left, right}] = value
				p += 6
			}
		}
		if length == 0 {
			break
		}
		off += length
	}
	return pairs
}

// Kern returns the kerning adjustment between two adjacent codepoints, in
// thousandths of an em, memoized for the lifetime of the Font. Pairs absent
// from the font's kern table return zero.
func (f *Font) Kern(a, b rune) float64 {
	key := [2]rune{a, b}
	if v, ok := f.kernCache[key]; ok {
		return v
	}
	ga, gb := f.GlyphIndex(a), f.GlyphIndex(b)
	scale := 1000.0 / float64(f.UnitsPerEm)
	v := float64(f.kernPairs[[2]GlyphID{ga, gb}]) * scale
	f.kernCache[key] = v
	return v
}
