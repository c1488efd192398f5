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

func parseHead(data []byte) (Head, error) {
	if len(data) < 54 {
		return Head{}, &InvalidFontError{Table: "head", Reason: "table too short"}
	}
	if binary.BigEndian.Uint32(data[12:16]) != 0x5F0F3CF5 {
		return Head{}, &InvalidFontError{Table: "head", Reason: "bad magic number"}
	}
	return Head{
		UnitsPerEm:       binary.BigEndian.Uint16(data[18:20]),
		XMin:             int16(binary.BigEndian.Uint16(data[36:38])),
		YMin:             int16(binary.BigEndian.Uint16(data[38:40])),
		XMax:             int16(binary.BigEndian.Uint16(data[40:42])),
		YMax:             int16(binary.BigEndian.Uint16(data[42:44])),
		IndexToLocFormat: int16(binary.BigEndian.Uint16(data[50:52])),
	}, nil
}

// Encode renders a canonical 54-byte head table. checkSumAdjustment is left
// as 0; the caller patches it once the whole font's checksum is known.
func (h Head) Encode(longLoca bool) []byte {
	buf := make([]byte, 54)
	binary.BigEndian.PutUint32(buf[0:4], 0x00010000) // version
	binary.BigEndian.PutUint32(buf[4:8], 0x00010000) // fontRevision
	binary.BigEndian.PutUint32(buf[12:16], 0x5F0F3CF5)
	binary.BigEndian.PutUint16(buf[16:18], 1<<1|1<<3|1<<11) // flags
	binary.BigEndian.PutUint16(buf[18:20], h.UnitsPerEm)
	// created/modified timestamps (20:28, 28:36) left at zero: emitting no
	// timestamp keeps output deterministic (property P4).
	binary.BigEndian.PutUint16(buf[36:38], uint16(h.XMin))
	binary.BigEndian.PutUint16(buf[38:40], uint16(h.YMin))
	binary.BigEndian.PutUint16(buf[40:42], uint16(h.XMax))
	binary.BigEndian.PutUint16(buf[42:44], uint16(h.YMax))
	binary.BigEndian.PutUint16(buf[46:48], 2) // lowestRecPPEM
	binary.BigEndian.PutUint16(buf[48:50], 2) // fontDirectionHint
	if longLoca {
		binary.BigEndian.PutUint16(buf[50:52], 1)
	}
	return buf
}

// Encode renders a canonical 36-byte hhea table.
func (h Hhea) Encode(numberOfHMetrics uint16) []byte {
	buf := make([]byte, 36)
	binary.BigEndian.PutUint32(buf[0:4], 0x00010000)
	binary.BigEndian.PutUint16(buf[4:6], uint16(h.Ascender))
	binary.BigEndian.PutUint16(buf[6:8], uint16(h.Descender))
	binary.BigEndian.PutUint16(buf[18:20], 1) // caretSlopeRise==1; metricDataFormat (32:34) stays 0
	binary.BigEndian.PutUint16(buf[34:36], numberOfHMetrics)
	return buf
}

// EncodeMaxp renders a canonical 6-byte version-0.5 maxp table, sufficient
// for a CIDFontType2 embedding that carries no hinting instructions.
func EncodeMaxp(numGlyphs int) []byte {
	buf := make([]byte, 6)
	binary.BigEndian.PutUint32(buf[0:4], 0x00005000)
	binary.BigEndian.PutUint16(buf[4:6], uint16(numGlyphs))
	return buf
}

// EncodeHmtx renders an hmtx table with one LongHorMetric per glyph.
func EncodeHmtx(metrics []LongHorMetric) []byte {
	buf := make([]byte, 4*len(metrics))
	for i, m := range metrics {
		binary.BigEndian.PutUint16(buf[4*i:4*i+2], m.AdvanceWidth)
		binary.BigEndian.PutUint16(buf[4*i+2:4*i+4], uint16(m.LSB))
	}
	return buf
}

func parseHhea(data []byte) (Hhea, error) {
	if len(data) < 36 {
		return Hhea{}, &InvalidFontError{Table: "hhea", Reason: "table too short"}
	}
	return Hhea{
		Ascender:         int16(binary.BigEndian.Uint16(data[4:6])),
		Descender:        int16(binary.BigEndian.Uint16(data[6:8])),
		NumberOfHMetrics: binary.BigEndian.Uint16(data[34:36]),
	}, nil
}

func parseMaxp(data []byte) (int, error) {
	if len(data) < 6 {
		return 0, &InvalidFontError{Table: "maxp", Reason: "table too short"}
	}
	return int(binary.BigEndian.Uint16(data[4:6])), nil
}

func parseHmtx(data []byte, numGlyphs int, numberOfHMetrics uint16) ([]LongHorMetric, error) {
	n := int(numberOfHMetrics)
	if n == 0 || n*4 > len(data) {
		return nil, &InvalidFontError{Table: "hmtx", Reason: "table too short"}
	}
	out := make([]LongHorMetric, numGlyphs)
	var lastAdvance uint16
	for i := 0; i < numGlyphs; i++ {
		if i < n {
			off := 4 * i
			lastAdvance = binary.BigEndian.Uint16(data[off : off+2])
			lsb := int16(binary.BigEndian.Uint16(data[off+2 : off+4]))
			out[i] = LongHorMetric{AdvanceWidth: lastAdvance, LSB: lsb}
		} else {
			// Glyphs beyond numberOfHMetrics repeat the last advance width;
			// only their left side bearing varies, in the (optional) lsb
			// array immediately following -- we don't need it here.
			out[i] = LongHorMetric{AdvanceWidth: lastAdvance}
		}
	}
	return out, nil
}

func parseLoca(data []byte, numGlyphs int, format int16) ([]uint32, error) {
	n := numGlyphs + 1
	offs := make([]uint32, n)
	if format == 0 {
		if len(data) < 2*n {
			return nil, &InvalidFontError{Table: "loca", Reason: "table too short"}
		}
		for i := 0; i < n; i++ {
			offs[i] = 2 * uint32(binary.BigEndian.Uint16(data[2*i:2*i+2]))
		}
	} else {
		if len(data) < 4*n {
			return nil, &InvalidFontError{Table: "loca", Reason: "table too short"}
		}
		for i := 0; i < n; i++ {
			offs[i] = binary.BigEndian.Uint32(data[4*i : 4*i+4])
		}
	}
	return offs, nil
}

// EncodeLoca renders offs back to a loca table, picking the short format
// when every offset fits, matching the teacher's own long/short choice.
func EncodeLoca(offs []uint32) (data []byte, longFormat bool) {
	longFormat = offs[len(offs)-1] > 0x1FFFE
	if longFormat {
		data = make([]byte, 4*len(offs))
		for i, off := range offs {
			binary.BigEndian.PutUint32(data[4*i:4*i+4], off)
		}
		return data, true
	}
	data = make([]byte, 2*len(offs))
	for i, off := range offs {
		binary.BigEndian.PutUint16(data[2*i:2*i+2], uint16(off/2))
	}
	return data, false
}

func parseName(data []byte) (Names, error) {
	if len(data) < 6 {
		return Names{}, &InvalidFontError{Table: "name", Reason: "table too short"}
	}
	count := int(binary.BigEndian.Uint16(data[2:4]))
	storageOffset := int(binary.BigEndian.Uint16(data[4:6]))
	var family string
	for i := 0; i < count; i++ {
		off := 6 + 12*i
		if off+12 > len(data) {
			break
		}
		nameID := binary.BigEndian.Uint16(data[off+6 : off+8])
		length := int(binary.BigEndian.Uint16(data[off+8 : off+10]))
		strOffset := int(binary.BigEndian.Uint16(data[off+10 : off+12]))
		if nameID != 1 { // font family
			continue
		}
		start := storageOffset + strOffset
		end := start + length
		if start < 0 || end > len(data) {
			continue
		}
		family = decodeNameBytes(data[start:end])
		break
	}
	return Names{Family: family}, nil
}

// decodeNameBytes handles the common case of UTF-16BE (Windows platform)
// name records by dropping every other (high) byte for the Basic Latin
// range, which is sufficient for a diagnostic family name.
func decodeNameBytes(b []byte) string {
	if len(b)%2 == 0 && len(b) > 0 {
		out := make([]byte, 0, len(b)/2)
		isUTF16 := true
		for i := 0; i+1 < len(b); i += 2 {
			if b[i] != 0 {
				isUTF16 = false
				break
			}
		}
		if isUTF16 {
			for i := 1; i < len(b); i += 2 {
				out = append(out, b[i])
			}
			return string(out)
		}
	}
	return string(b)
}
