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

package font

import (
	"bytes"
	"fmt"
	"sort"

	pdf "github.com/ariebovenberg/pdfje"
	"github.com/ariebovenberg/pdfje/font/pdfenc"
	"github.com/ariebovenberg/pdfje/font/subset"
)

// Registry assigns PDF resource names (F1, F2, ...) to the font handles a
// document uses, in first-seen order, and turns them into PDF font objects
// once shaping is done. A document owns exactly one Registry.
type Registry struct {
	order []Handle
	names map[Handle]pdf.Name
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{names: make(map[Handle]pdf.Name)}
}

// Assign returns h's resource name, assigning the next free one (F1, F2,
// ...) the first time h is seen.
func (reg *Registry) Assign(h Handle) pdf.Name {
	if name, ok := reg.names[h]; ok {
		return name
	}
	name := pdf.Name(fmt.Sprintf("F%d", len(reg.order)+1))
	reg.names[h] = name
	reg.order = append(reg.order, h)
	return name
}

// Freeze subsets every embedded handle the registry has seen, from the
// codepoints Advance recorded during shaping. Call once, after shaping and
// before Emit.
func (reg *Registry) Freeze() error {
	for _, h := range reg.order {
		if e, ok := h.(*Embedded); ok {
			if _, err := e.Freeze(); err != nil {
				return err
			}
		}
	}
	return nil
}

// Emit writes a PDF font object for every registered handle and returns the
// reference each one landed at, keyed by resource name.
func (reg *Registry) Emit(w *pdf.Writer) (map[pdf.Name]pdf.Reference, error) {
	out := make(map[pdf.Name]pdf.Reference, len(reg.order))
	for _, h := range reg.order {
		name := reg.names[h]
		var ref pdf.Reference
		var err error
		switch f := h.(type) {
		case Standard14:
			ref, err = emitStandard14(w, f)
		case *Embedded:
			ref, err = emitEmbedded(w, f)
		default:
			err = fmt.Errorf("font: unsupported handle type %T", h)
		}
		if err != nil {
			return nil, err
		}
		out[name] = ref
	}
	return out, nil
}

func emitStandard14(w *pdf.Writer, f Standard14) (pdf.Reference, error) {
	first, last := 32, 255
	widths := make(pdf.Array, 0, last-first+1)
	for c := first; c <= last; c++ {
		r := pdfenc.FromWinAnsi(byte(c))
		widths = append(widths, pdf.Integer(int64(f.Advance(r))))
	}
	dict := pdf.Dict{
		"Type":     pdf.Name("Font"),
		"Subtype":  pdf.Name("Type1"),
		"BaseFont": pdf.Name(f.Name()),
		"Encoding": pdf.Name("WinAnsiEncoding"),
		"FirstChar": pdf.Integer(first),
		"LastChar":  pdf.Integer(last),
		"Widths":    widths,
	}
	return w.WriteIndirect(pdf.Reference{}, dict)
}

func emitEmbedded(w *pdf.Writer, f *Embedded) (pdf.Reference, error) {
	result := f.Subset()
	if result == nil {
		return pdf.Reference{}, fmt.Errorf("font: embedded handle %q emitted before Freeze", f.Name())
	}

	baseFont := pdf.Name(result.Tag + "+" + f.Name())

	fontFileRef, err := w.WriteStream(pdf.Reference{}, pdf.Dict{
		"Length1": pdf.Integer(len(result.Data)),
	}, result.Data, true)
	if err != nil {
		return pdf.Reference{}, err
	}

	m := f.Metrics()
	flags := 4 // symbolic by default
	if f.Italic() {
		flags |= 64
	}
	descRef, err := w.WriteIndirect(pdf.Reference{}, pdf.Dict{
		"Type":        pdf.Name("FontDescriptor"),
		"FontName":    baseFont,
		"Flags":       pdf.Integer(flags),
		"FontBBox":    pdf.Array{pdf.Integer(-200), pdf.Integer(int64(m.Descent)), pdf.Integer(1200), pdf.Integer(int64(m.Ascent))},
		"ItalicAngle": pdf.Integer(0),
		"Ascent":      pdf.Integer(int64(m.Ascent)),
		"Descent":     pdf.Integer(int64(m.Descent)),
		"CapHeight":   pdf.Integer(int64(m.CapHeight)),
		"StemV":       pdf.Integer(80),
		"FontFile2":   fontFileRef,
	})
	if err != nil {
		return pdf.Reference{}, err
	}

	widths := cidWidths(f, result)

	cidFontRef, err := w.WriteIndirect(pdf.Reference{}, pdf.Dict{
		"Type":     pdf.Name("Font"),
		"Subtype":  pdf.Name("CIDFontType2"),
		"BaseFont": baseFont,
		"CIDSystemInfo": pdf.Dict{
			"Registry":   pdf.String("Adobe"),
			"Ordering":   pdf.String("Identity"),
			"Supplement": pdf.Integer(0),
		},
		"FontDescriptor": descRef,
		"CIDToGIDMap":    pdf.Name("Identity"),
		"DW":             pdf.Integer(1000),
		"W":              widths,
	})
	if err != nil {
		return pdf.Reference{}, err
	}

	toUnicodeRef, err := w.WriteStream(pdf.Reference{}, pdf.Dict{}, toUnicodeCMap(result), true)
	if err != nil {
		return pdf.Reference{}, err
	}

	return w.WriteIndirect(pdf.Reference{}, pdf.Dict{
		"Type":            pdf.Name("Font"),
		"Subtype":         pdf.Name("Type0"),
		"BaseFont":        baseFont,
		"Encoding":        pdf.Name("Identity-H"),
		"DescendantFonts": pdf.Array{cidFontRef},
		"ToUnicode":       toUnicodeRef,
	})
}

// cidWidths renders result's per-CID widths as a /W array of single-glyph
// entries [cid [w]]; not maximally compact, but simple and correct.
func cidWidths(f *Embedded, result *subset.Result) pdf.Array {
	type entry struct {
		cid   uint16
		width int64
	}
	entries := make([]entry, 0, len(result.CIDs))
	for r, cid := range result.CIDs {
		entries = append(entries, entry{cid, int64(f.font.Advance(r))})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].cid < entries[j].cid })

	arr := make(pdf.Array, 0, 2*len(entries))
	for _, e := range entries {
		arr = append(arr, pdf.Integer(e.cid), pdf.Array{pdf.Integer(e.width)})
	}
	return arr
}

func toUnicodeCMap(result *subset.Result) []byte {
	type entry struct {
		cid uint16
		r   rune
	}
	entries := make([]entry, 0, len(result.CIDs))
	for r, cid := range result.CIDs {
		entries = append(entries, entry{cid, r})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].cid < entries[j].cid })

	var buf bytes.Buffer
	buf.WriteString("/CIDInit /ProcSet findresource begin\n12 dict begin\nbegincmap\n")
	buf.WriteString("/CIDSystemInfo << /Registry (Adobe) /Ordering (UCS) /Supplement 0 >> def\n")
	buf.WriteString("/CMapName /Adobe-Identity-UCS def\n/CMapType 2 def\n")
	buf.WriteString("1 begincodespacerange\n<0000> <FFFF>\nendcodespacerange\n")
	fmt.Fprintf(&buf, "%d beginbfchar\n", len(entries))
	for _, e := range entries {
		fmt.Fprintf(&buf, "<%04x> <%04x>\n", e.cid, e.r)
	}
	buf.WriteString("endbfchar\nendcmap\nCMapName currentdict /CMap defineresource pop\nend\nend\n")
	return buf.Bytes()
}
