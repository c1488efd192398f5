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

// Package sfnt parses just enough of a TrueType font file -- head, hhea,
// maxp, cmap, hmtx, loca, glyf, name -- to drive shaping and subsetting. It
// does not decode glyph outlines: glyf data is kept as opaque byte ranges,
// except for the handful of header fields needed to find composite glyph
// references, which is all font/subset needs to compute the glyph closure.
package sfnt

import (
	"encoding/binary"
	"fmt"
	"io"
)

// GlyphID is a glyph index into a font's glyf table.
type GlyphID uint16

// InvalidFontError reports that a required table is missing or malformed.
type InvalidFontError struct {
	Table  string
	Reason string
}

func (e *InvalidFontError) Error() string {
	return fmt.Sprintf("sfnt: invalid %s table: %s", e.Table, e.Reason)
}

// tableRecord is one entry of the sfnt table directory.
type tableRecord struct {
	tag      string
	checksum uint32
	offset   uint32
	length   uint32
}

// Font holds the parsed tables of a TrueType font needed for shaping and
// subsetting.
type Font struct {
	UnitsPerEm uint16

	Head Head
	Hhea Hhea
	Hmtx []LongHorMetric // length NumGlyphs, expanded from hmtx+numberOfHMetrics
	Loca []uint32        // length NumGlyphs+1, byte offsets into Glyf
	Glyf []byte          // raw glyf table
	Cmap map[rune]GlyphID
	Name Names

	NumGlyphs int

	widthCache map[rune]float64
	kernCache  map[[2]rune]float64
	kernPairs  map[[2]GlyphID]int16
}

// Head mirrors the fields of the 'head' table this package needs.
type Head struct {
	UnitsPerEm       uint16
	IndexToLocFormat int16 // 0: short (loca/2), 1: long
	XMin, YMin       int16
	XMax, YMax       int16
}

// Hhea mirrors the fields of the 'hhea' table this package needs.
type Hhea struct {
	Ascender          int16
	Descender         int16
	NumberOfHMetrics  uint16
}

// LongHorMetric is one entry of the (possibly implicitly repeated) hmtx
// table.
type LongHorMetric struct {
	AdvanceWidth uint16
	LSB          int16
}

// Names holds the small subset of the 'name' table used for diagnostics and
// as a fallback /BaseFont stem when embedding.
type Names struct {
	Family string
}

// Parse reads a TrueType font from r. It requires 'head', 'hhea', 'maxp',
// 'hmtx', 'loca', 'glyf', and 'cmap'; 'name' is read best-effort.
func Parse(r io.Reader) (*Font, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseBytes(data)
}

// ParseBytes parses a TrueType font already fully in memory.
func ParseBytes(data []byte) (*Font, error) {
	if len(data) < 12 {
		return nil, &InvalidFontError{Table: "sfnt", Reason: "file too short"}
	}
	numTables := int(binary.BigEndian.Uint16(data[4:6]))
	records := make(map[string]tableRecord, numTables)
	for i := 0; i < numTables; i++ {
		off := 12 + 16*i
		if off+16 > len(data) {
			return nil, &InvalidFontError{Table: "sfnt", Reason: "truncated table directory"}
		}
		rec := tableRecord{
			tag:      string(data[off : off+4]),
			checksum: binary.BigEndian.Uint32(data[off+4 : off+8]),
			offset:   binary.BigEndian.Uint32(data[off+8 : off+12]),
			length:   binary.BigEndian.Uint32(data[off+12 : off+16]),
		}
		records[rec.tag] = rec
	}

	table := func(tag string) ([]byte, error) {
		rec, ok := records[tag]
		if !ok {
			return nil, &InvalidFontError{Table: tag, Reason: "table missing"}
		}
		end := uint64(rec.offset) + uint64(rec.length)
		if end > uint64(len(data)) {
			return nil, &InvalidFontError{Table: tag, Reason: "table extends past end of file"}
		}
		return data[rec.offset:end], nil
	}

	headData, err := table("head")
	if err != nil {
		return nil, err
	}
	head, err := parseHead(headData)
	if err != nil {
		return nil, err
	}

	hheaData, err := table("hhea")
	if err != nil {
		return nil, err
	}
	hhea, err := parseHhea(hheaData)
	if err != nil {
		return nil, err
	}

	maxpData, err := table("maxp")
	if err != nil {
		return nil, err
	}
	numGlyphs, err := parseMaxp(maxpData)
	if err != nil {
		return nil, err
	}

	hmtxData, err := table("hmtx")
	if err != nil {
		return nil, err
	}
	hmtx, err := parseHmtx(hmtxData, numGlyphs, hhea.NumberOfHMetrics)
	if err != nil {
		return nil, err
	}

	locaData, err := table("loca")
	if err != nil {
		return nil, err
	}
	loca, err := parseLoca(locaData, numGlyphs, head.IndexToLocFormat)
	if err != nil {
		return nil, err
	}

	glyf, err := table("glyf")
	if err != nil {
		return nil, err
	}

	cmapData, err := table("cmap")
	if err != nil {
		return nil, err
	}
	cmap, err := parseCmap(cmapData)
	if err != nil {
		return nil, err
	}

	var names Names
	if nameData, err := table("name"); err == nil {
		names, _ = parseName(nameData)
	}

	kernPairs := map[[2]GlyphID]int16{}
	if kernData, err := table("kern"); err == nil {
		kernPairs = parseKern(kernData)
	}

	f := &Font{
		UnitsPerEm: head.UnitsPerEm,
		Head:       head,
		Hhea:       hhea,
		Hmtx:       hmtx,
		Loca:       loca,
		Glyf:       glyf,
		Cmap:       cmap,
		Name:       names,
		NumGlyphs:  numGlyphs,
		widthCache: make(map[rune]float64),
		kernCache:  make(map[[2]rune]float64),
		kernPairs:  kernPairs,
	}
	return f, nil
}

// GlyphData returns the raw glyf bytes for gid, or nil for an empty glyph
// (e.g. space).
func (f *Font) GlyphData(gid GlyphID) []byte {
	i := int(gid)
	if i < 0 || i+1 >= len(f.Loca) {
		return nil
	}
	start, end := f.Loca[i], f.Loca[i+1]
	if start >= end {
		return nil
	}
	return f.Glyf[start:end]
}

// AdvanceWidth returns a glyph's advance width in font design units.
func (f *Font) AdvanceWidth(gid GlyphID) uint16 {
	if len(f.Hmtx) == 0 {
		return 0
	}
	i := int(gid)
	if i >= len(f.Hmtx) {
		i = len(f.Hmtx) - 1
	}
	return f.Hmtx[i].AdvanceWidth
}

// GlyphIndex maps a codepoint to a glyph id via the font's cmap. Unmapped
// codepoints return gid 0 (.notdef).
func (f *Font) GlyphIndex(r rune) GlyphID {
	if gid, ok := f.Cmap[r]; ok {
		return gid
	}
	return 0
}

// Advance returns r's advance width in thousandths of an em, memoized for
// the lifetime of the Font.
func (f *Font) Advance(r rune) float64 {
	if w, ok := f.widthCache[r]; ok {
		return w
	}
	gid := f.GlyphIndex(r)
	scale := 1000.0 / float64(f.UnitsPerEm)
	w := float64(f.AdvanceWidth(gid)) * scale
	f.widthCache[r] = w
	return w
}
