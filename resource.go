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

// Resources collects the named entries of a page's /Resources dictionary.
// The font registry (see package font) is the only source of /Font entries;
// this type just assembles what it is given into the dictionary shape.
type Resources struct {
	Fonts    map[Name]Reference
	ExtGStates map[Name]Reference
}

// Dict renders the resource dictionary. An empty ExtGState map is omitted.
func (r Resources) Dict() Dict {
	fonts := Dict{}
	for name, ref := range r.Fonts {
		fonts[name] = ref
	}
	d := Dict{"Font": fonts}
	if len(r.ExtGStates) > 0 {
		gs := Dict{}
		for name, ref := range r.ExtGStates {
			gs[name] = ref
		}
		d["ExtGState"] = gs
	}
	return d
}
