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

// Package subset builds the used-glyph subset of an embedded TrueType font:
// the closure over composite glyph references, a rewritten glyf/loca/hmtx,
// a minimal cmap covering only the used codepoints, and the CIDToGIDMap and
// six-letter subset tag a CIDFontType2 PDF font descriptor needs.
package subset

import (
	"sort"

	"github.com/ariebovenberg/pdfje/font/sfnt"
)

// Result is everything font emission needs to describe a CID-keyed
// embedded font.
type Result struct {
	// Data is the rewritten TrueType font program for /FontFile2.
	Data []byte

	// Tag is the six-upper-letter subset prefix for /BaseFont.
	Tag string

	// CIDs maps each used codepoint to its CID in this subset. CIDs are
	// assigned in ascending original-glyph-id order starting at 1 (CID 0 is
	// always .notdef), so CID order is monotone in original glyph id.
	CIDs map[rune]uint16

	// NumGlyphs is the glyph count of the rewritten font (== max CID + 1).
	NumGlyphs int
}

// Build computes the glyph closure of the codepoints in used (following
// composite glyph references), then rewrites glyf, loca, hmtx, and cmap to
// contain only those glyphs, renumbered densely starting from .notdef.
func Build(f *sfnt.Font, used map[rune]bool) (*Result, error) {
	// Step 1: map used codepoints to original glyph ids.
	origGIDs := map[sfnt.GlyphID]bool{0: true} // .notdef is always glyph 0
	for r := range used {
		origGIDs[f.GlyphIndex(r)] = true
	}

	// Step 2: closure over composite glyph components.
	todo := make([]sfnt.GlyphID, 0, len(origGIDs))
	for g := range origGIDs {
		todo = append(todo, g)
	}
	for len(todo) > 0 {
		gid := todo[len(todo)-1]
		todo = todo[:len(todo)-1]
		for _, comp := range sfnt.Components(f.GlyphData(gid)) {
			if !origGIDs[comp] {
				origGIDs[comp] = true
				todo = append(todo, comp)
			}
		}
	}

	// Step 3: assign dense new glyph ids in ascending original-id order, so
	// the CIDToGIDMap (CID == new gid here) is monotone in original gid.
	sortedOrig := make([]sfnt.GlyphID, 0, len(origGIDs))
	for g := range origGIDs {
		sortedOrig = append(sortedOrig, g)
	}
	sort.Slice(sortedOrig, func(i, j int) bool { return sortedOrig[i] < sortedOrig[j] })

	newGID := make(map[sfnt.GlyphID]sfnt.GlyphID, len(sortedOrig))
	for i, g := range sortedOrig {
		newGID[g] = sfnt.GlyphID(i)
	}

	// Step 4: rewrite glyf+loca, remapping composite component references.
	newGlyf := make([]byte, 0, len(f.Glyf)/4)
	newLoca := make([]uint32, len(sortedOrig)+1)
	for i, g := range sortedOrig {
		data := f.GlyphData(g)
		if len(data) > 0 {
			data = sfnt.RewriteComponents(data, newGID)
		}
		newLoca[i] = uint32(len(newGlyf))
		newGlyf = append(newGlyf, data...)
		if len(data)%2 != 0 {
			newGlyf = append(newGlyf, 0) // glyf entries are word-aligned
		}
	}
	newLoca[len(sortedOrig)] = uint32(len(newGlyf))

	// Step 5: rewrite hmtx, one LongHorMetric per new glyph (numberOfHMetrics
	// == len(sortedOrig), i.e. max used glyph id + 1 in the subset's own
	// numbering).
	newHmtx := make([]sfnt.LongHorMetric, len(sortedOrig))
	for i, g := range sortedOrig {
		newHmtx[i] = sfnt.LongHorMetric{AdvanceWidth: f.AdvanceWidth(g)}
	}

	// Step 6: rewrite cmap to map each used codepoint to its new glyph id,
	// and assign CIDs. Since the subset's own glyph order already equals
	// CID order, CID == new glyph id.
	cidMapping := make(map[rune]sfnt.GlyphID, len(used))
	cids := make(map[rune]uint16, len(used))
	for r := range used {
		orig := f.GlyphIndex(r)
		gid := newGID[orig]
		cidMapping[r] = gid
		cids[r] = uint16(gid)
	}
	newCmapTable := sfnt.EncodeCmapFormat4(cidMapping)

	data := assemble(f, newLoca, newGlyf, newHmtx, newCmapTable)

	glyphList := make([]sfnt.GlyphID, len(sortedOrig))
	copy(glyphList, sortedOrig)

	return &Result{
		Data:      data,
		Tag:       Tag(glyphList),
		CIDs:      cids,
		NumGlyphs: len(sortedOrig),
	}, nil
}
