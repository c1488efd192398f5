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

const flagMoreComponents = 0x0020
const flagArgsAreWords = 0x0001
const flagWeHaveAScale = 0x0008
const flagWeHaveXYScale = 0x0040
const flagWeHaveA2x2 = 0x0080

// Components returns the glyph ids a composite glyph references directly
// (not transitively). A simple glyph, or an empty one, has none.
func Components(glyphData []byte) []GlyphID {
	if len(glyphData) < 10 {
		return nil
	}
	numContours := int16(binary.BigEndian.Uint16(glyphData[0:2]))
	if numContours >= 0 {
		return nil // simple glyph
	}

	data := glyphData[10:]
	var out []GlyphID
	for len(data) >= 4 {
		flags := binary.BigEndian.Uint16(data[0:2])
		gid := binary.BigEndian.Uint16(data[2:4])
		out = append(out, GlyphID(gid))
		data = data[4:]

		argSize := 2
		if flags&flagArgsAreWords != 0 {
			argSize = 4
		}
		if len(data) < argSize {
			break
		}
		data = data[argSize:]

		switch {
		case flags&flagWeHaveA2x2 != 0:
			if len(data) < 8 {
				return out
			}
			data = data[8:]
		case flags&flagWeHaveXYScale != 0:
			if len(data) < 4 {
				return out
			}
			data = data[4:]
		case flags&flagWeHaveAScale != 0:
			if len(data) < 2 {
				return out
			}
			data = data[2:]
		}

		if flags&flagMoreComponents == 0 {
			break
		}
	}
	return out
}

// RewriteComponents rewrites the glyph-index field of every component in a
// composite glyph using remap, leaving all other bytes -- flags, transform
// args, instructions -- untouched. It returns a new byte slice.
func RewriteComponents(glyphData []byte, remap map[GlyphID]GlyphID) []byte {
	if len(glyphData) < 10 {
		return glyphData
	}
	numContours := int16(binary.BigEndian.Uint16(glyphData[0:2]))
	if numContours >= 0 {
		return glyphData
	}

	out := make([]byte, len(glyphData))
	copy(out, glyphData)
	data := out[10:]
	for len(data) >= 4 {
		flags := binary.BigEndian.Uint16(data[0:2])
		gid := GlyphID(binary.BigEndian.Uint16(data[2:4]))
		if newGid, ok := remap[gid]; ok {
			binary.BigEndian.PutUint16(data[2:4], uint16(newGid))
		}
		data = data[4:]

		argSize := 2
		if flags&flagArgsAreWords != 0 {
			argSize = 4
		}
		if len(data) < argSize {
			break
		}
		data = data[argSize:]

		switch {
		case flags&flagWeHaveA2x2 != 0:
			if len(data) < 8 {
				return out
			}
			data = data[8:]
		case flags&flagWeHaveXYScale != 0:
			if len(data) < 4 {
				return out
			}
			data = data[4:]
		case flags&flagWeHaveAScale != 0:
			if len(data) < 2 {
				return out
			}
			data = data[2:]
		}

		if flags&flagMoreComponents == 0 {
			break
		}
	}
	return out
}
