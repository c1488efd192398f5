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
	"sort"

	"github.com/ariebovenberg/pdfje/font/sfnt"
)

// assemble writes a minimal, self-contained TrueType font program: the
// seven tables a CIDFontType2 FontFile2 needs (head, hhea, maxp, hmtx,
// cmap, loca, glyf), with a correct table directory and checksums.
func assemble(f *sfnt.Font, loca []uint32, glyf []byte, hmtx []sfnt.LongHorMetric, cmap []byte) []byte {
	locaData, longLoca := sfnt.EncodeLoca(loca)

	head := f.Head.Encode(longLoca)
	hhea := f.Hhea.Encode(uint16(len(hmtx)))
	maxp := sfnt.EncodeMaxp(len(hmtx))
	hmtxData := sfnt.EncodeHmtx(hmtx)

	tables := map[string][]byte{
		"head": head,
		"hhea": hhea,
		"maxp": maxp,
		"hmtx": hmtxData,
		"cmap": cmap,
		"loca": locaData,
		"glyf": glyf,
	}

	tags := make([]string, 0, len(tables))
	for tag := range tables {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	numTables := len(tags)
	searchRange, entrySelector, rangeShift := binarySearchParams(numTables, 16)

	headerSize := 12 + 16*numTables
	offset := headerSize
	type placed struct {
		tag    string
		offset int
		length int
	}
	var placedTables []placed
	for _, tag := range tags {
		data := tables[tag]
		placedTables = append(placedTables, placed{tag, offset, len(data)})
		offset += pad4(len(data))
	}
	total := offset

	out := make([]byte, total)
	binary.BigEndian.PutUint32(out[0:4], 0x00010000)
	binary.BigEndian.PutUint16(out[4:6], uint16(numTables))
	binary.BigEndian.PutUint16(out[6:8], uint16(searchRange))
	binary.BigEndian.PutUint16(out[8:10], uint16(entrySelector))
	binary.BigEndian.PutUint16(out[10:12], uint16(rangeShift))

	for i, p := range placedTables {
		data := tables[p.tag]
		copy(out[p.offset:], data)

		recOff := 12 + 16*i
		copy(out[recOff:recOff+4], p.tag)
		binary.BigEndian.PutUint32(out[recOff+4:recOff+8], tableChecksum(out[p.offset:p.offset+pad4(p.length)]))
		binary.BigEndian.PutUint32(out[recOff+8:recOff+12], uint32(p.offset))
		binary.BigEndian.PutUint32(out[recOff+12:recOff+16], uint32(p.length))
	}

	// Patch head's checkSumAdjustment now that every other table (and the
	// directory) has its final bytes.
	fileChecksum := tableChecksum(out)
	adjustment := 0xB1B0AFBA - fileChecksum
	for i, p := range placedTables {
		if p.tag == "head" {
			binary.BigEndian.PutUint32(out[p.offset+8:p.offset+12], adjustment)
			recOff := 12 + 16*i
			binary.BigEndian.PutUint32(out[recOff+4:recOff+8], tableChecksum(out[p.offset:p.offset+pad4(p.length)]))
		}
	}

	return out
}

func pad4(n int) int {
	return (n + 3) &^ 3
}

func tableChecksum(data []byte) uint32 {
	var sum uint32
	n := len(data) &^ 3
	for i := 0; i < n; i += 4 {
		sum += binary.BigEndian.Uint32(data[i : i+4])
	}
	if rem := len(data) - n; rem > 0 {
		var last [4]byte
		copy(last[:], data[n:])
		sum += binary.BigEndian.Uint32(last[:])
	}
	return sum
}

func binarySearchParams(numTables, entrySize int) (searchRange, entrySelector, rangeShift int) {
	searchRange = 1
	for searchRange*2 <= numTables {
		searchRange *= 2
		entrySelector++
	}
	searchRange *= entrySize
	rangeShift = numTables*entrySize - searchRange
	return
}
