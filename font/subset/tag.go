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

package subset

import (
	"encoding/binary"
	"hash/fnv"
	"sort"

	"github.com/ariebovenberg/pdfje/font/sfnt"
)

// Tag derives the six-upper-letter subset prefix PDF readers use to tell
// two different subsets of the same font apart (e.g. "ABCDEF+Calibri"). It
// is a pure function of the sorted set of original glyph ids the subset
// contains, so identical inputs always produce the same tag (property P4).
func Tag(glyphs []sfnt.GlyphID) string {
	sorted := make([]sfnt.GlyphID, len(glyphs))
	copy(sorted, glyphs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	h := fnv.New64a()
	buf := make([]byte, 2)
	for _, g := range sorted {
		binary.BigEndian.PutUint16(buf, uint16(g))
		h.Write(buf)
	}
	sum := h.Sum64()

	tag := make([]byte, 6)
	for i := range tag {
		tag[i] = byte('A' + (sum % 26))
		sum /= 26
	}
	return string(tag)
}
