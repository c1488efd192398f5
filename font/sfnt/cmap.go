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

import (
	"encoding/binary"
	"sort"
)

// parseCmap picks the best available subtable -- preferring the Windows
// Unicode BMP (3,1) table, falling back to Unicode platform (0,*) -- and
// decodes it into a plain rune->GlyphID map. Only formats 4 and 12 are
// understood; anything else is skipped.
func parseCmap(data []byte) (map[rune]GlyphID, error) {
	if len(data) < 4 {
		return nil, &InvalidFontError{Table: "cmap", Reason: "table too short"}
	}
	numTables := int(binary.BigEndian.Uint16(data[2:4]))

	type record struct {
		platform, encoding uint16
		offset             uint32
	}
	var records []record
	for i := 0; i < numTables; i++ {
		off := 4 + 8*i
		if off+8 > len(data) {
			break
		}
		records = append(records, record{
			platform: binary.BigEndian.Uint16(data[off : off+2]),
			encoding: binary.BigEndian.Uint16(data[off+2 : off+4]),
			offset:   binary.BigEndian.Uint32(data[off+4 : off+8]),
		})
	}

	score := func(r record) int {
		switch {
		case r.platform == 3 && r.encoding == 1:
			return 3
		case r.platform == 0:
			return 2
		case r.platform == 3 && r.encoding == 0:
			return 1
		default:
			return 0
		}
	}
	sort.Slice(records, func(i, j int) bool { return score(records[i]) > score(records[j]) })

	for _, r := range records {
		if int(r.offset) >= len(data) {
			continue
		}
		sub := data[r.offset:]
		if len(sub) < 2 {
			continue
		}
		format := binary.BigEndian.Uint16(sub[0:2])
		switch format {
		case 4:
			if m, err := parseCmapFormat4(sub); err == nil {
				return m, nil
			}
		case 12:
			if m, err := parseCmapFormat12(sub); err == nil {
				return m, nil
			}
		}
	}
	return nil, &InvalidFontError{Table: "cmap", Reason: "no supported subtable found"}
}

func parseCmapFormat4(data []byte) (map[rune]GlyphID, error) {
	if len(data) < 14 {
		return nil, &InvalidFontError{Table: "cmap", Reason: "format 4 table too short"}
	}
	segCountX2 := int(binary.BigEndian.Uint16(data[6:8]))
	segCount := segCountX2 / 2

	endOff := 14
	startOff := endOff + segCountX2 + 2
	deltaOff := startOff + segCountX2
	rangeOff := deltaOff + segCountX2
	if rangeOff+segCountX2 > len(data) {
		return nil, &InvalidFontError{Table: "cmap", Reason: "format 4 arrays truncated"}
	}

	m := make(map[rune]GlyphID)
	for s := 0; s < segCount; s++ {
		end := binary.BigEndian.Uint16(data[endOff+2*s:])
		start := binary.BigEndian.Uint16(data[startOff+2*s:])
		delta := int16(binary.BigEndian.Uint16(data[deltaOff+2*s:]))
		rangeOffset := binary.BigEndian.Uint16(data[rangeOff+2*s:])
		if start == 0xFFFF && end == 0xFFFF {
			continue
		}
		for c := uint32(start); c <= uint32(end) && c != 0x10000; c++ {
			var gid uint16
			if rangeOffset == 0 {
				gid = uint16(int32(c) + int32(delta))
			} else {
				idx := rangeOff + 2*s + int(rangeOffset) + 2*int(c-uint32(start))
				if idx+2 > len(data) {
					continue
				}
				gid = binary.BigEndian.Uint16(data[idx:])
				if gid != 0 {
					gid = uint16(int32(gid) + int32(delta))
				}
			}
			if gid != 0 {
				m[rune(c)] = GlyphID(gid)
			}
		}
	}
	return m, nil
}

func parseCmapFormat12(data []byte) (map[rune]GlyphID, error) {
	if len(data) < 16 {
		return nil, &InvalidFontError{Table: "cmap", Reason: "format 12 table too short"}
	}
	numGroups := binary.BigEndian.Uint32(data[12:16])
	m := make(map[rune]GlyphID)
	for g := uint32(0); g < numGroups; g++ {
		off := 16 + 12*int(g)
		if off+12 > len(data) {
			break
		}
		startChar := binary.BigEndian.Uint32(data[off : off+4])
		endChar := binary.BigEndian.Uint32(data[off+4 : off+8])
		startGID := binary.BigEndian.Uint32(data[off+8 : off+12])
		for c := startChar; c <= endChar; c++ {
			m[rune(c)] = GlyphID(startGID + (c - startChar))
		}
	}
	return m, nil
}

// EncodeCmapFormat4 builds a minimal format-4 cmap subtable covering the
// given codepoint->GlyphID mapping, plus the required (3,1) encoding
// wrapper -- the shape font/subset needs when it rewrites a font's cmap to
// cover only the used codepoints.
func EncodeCmapFormat4(mapping map[rune]GlyphID) []byte {
	type seg struct{ start, end uint32 }
	var codes []uint32
	for r := range mapping {
		codes = append(codes, uint32(r))
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })

	var segs []seg
	for i, c := range codes {
		if i == 0 || c != segs[len(segs)-1].end+1 || mapping[rune(c)] != mapping[rune(c-1)]+1 {
			segs = append(segs, seg{c, c})
		} else {
			segs[len(segs)-1].end = c
		}
	}
	segs = append(segs, seg{0xFFFF, 0xFFFF}) // required terminator

	segCount := len(segs)
	segCountX2 := 2 * segCount
	searchRange := 2
	entrySelector := 0
	for searchRange*2 <= segCountX2 {
		searchRange *= 2
		entrySelector++
	}
	rangeShift := segCountX2 - searchRange

	length := 16 + 4*segCountX2 + 2*len(codes)
	buf := make([]byte, length)
	binary.BigEndian.PutUint16(buf[0:2], 4)
	binary.BigEndian.PutUint16(buf[2:4], uint16(length))
	binary.BigEndian.PutUint16(buf[6:8], uint16(segCountX2))
	binary.BigEndian.PutUint16(buf[8:10], uint16(searchRange))
	binary.BigEndian.PutUint16(buf[10:12], uint16(entrySelector))
	binary.BigEndian.PutUint16(buf[12:14], uint16(rangeShift))

	endOff := 14
	startOff := endOff + segCountX2 + 2
	deltaOff := startOff + segCountX2
	rangeOff := deltaOff + segCountX2
	glyphOff := rangeOff + segCountX2

	glyphIdx := 0
	for i, s := range segs {
		binary.BigEndian.PutUint16(buf[endOff+2*i:], uint16(s.end))
		binary.BigEndian.PutUint16(buf[startOff+2*i:], uint16(s.start))
		if s.start == 0xFFFF {
			binary.BigEndian.PutUint16(buf[deltaOff+2*i:], 1)
			continue
		}
		binary.BigEndian.PutUint16(buf[rangeOff+2*i:], uint16(glyphOff+2*glyphIdx-(rangeOff+2*i)))
		for c := s.start; c <= s.end; c++ {
			binary.BigEndian.PutUint16(buf[glyphOff+2*glyphIdx:], uint16(mapping[rune(c)]))
			glyphIdx++
		}
	}
	// cmap header with a single (3,1) encoding record pointing at the subtable.
	out := make([]byte, 12+len(buf))
	binary.BigEndian.PutUint16(out[2:4], 1)
	binary.BigEndian.PutUint16(out[4:6], 3)
	binary.BigEndian.PutUint16(out[6:8], 1)
	binary.BigEndian.PutUint32(out[8:12], 12)
	copy(out[12:], buf)
	return out
}
