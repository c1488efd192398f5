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

package pdf

// NewCatalog builds the Document Catalog dictionary pointing at the root of
// the page tree. Section 7.7.2 of PDF 32000-1:2008 makes /Pages the only
// required entry.
func NewCatalog(pages Reference) Dict {
	return Dict{
		"Type":  Name("Catalog"),
		"Pages": pages,
	}
}

// PageTree builds a flat Pages node: a single intermediate node listing
// every leaf Page object directly, in insertion order. Property P2 (page
// order equals insertion order, and lower ids come first) follows from
// allocating the page references in the same order they are written.
func PageTree(self Reference, kids []Reference) Dict {
	kidObjs := make(Array, len(kids))
	for i, k := range kids {
		kidObjs[i] = k
	}
	return Dict{
		"Type":  Name("Pages"),
		"Kids":  kidObjs,
		"Count": Integer(len(kids)),
	}
}

// NewPage builds a leaf Page dictionary. mediaBox is [llx lly urx ury] in
// points; rotation must be one of 0, 90, 180, 270.
func NewPage(parent Reference, w, h float64, rotation int, resources Dict, contents Reference) Dict {
	d := Dict{
		"Type":      Name("Page"),
		"Parent":    parent,
		"MediaBox":  Array{Real(0), Real(0), Real(w), Real(h)},
		"Resources": resources,
		"Contents":  contents,
	}
	if rotation != 0 {
		d["Rotate"] = Integer(rotation)
	}
	return d
}
