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

// Package unit converts common physical units to PDF points and lists the
// standard page sizes, all expressed in points (1 in = 72 pt).
package unit

// Point is a length in PDF points.
type Point float64

// Inch converts inches to points.
func Inch(n float64) Point { return Point(72 * n) }

// Pica converts picas to points.
func Pica(n float64) Point { return Point(12 * n) }

// Cm converts centimeters to points.
func Cm(n float64) Point { return Point(28.3465 * n) }

// Mm converts millimeters to points.
func Mm(n float64) Point { return Point(2.8346 * n) }

// Size is a page width and height, in points.
type Size struct {
	W, H Point
}

// Landscape swaps width and height.
func (s Size) Landscape() Size { return Size{s.H, s.W} }

// Standard page sizes, in points.
var (
	A0      = Size{Inch(33.11), Inch(46.81)}
	A1      = Size{Inch(23.39), Inch(33.11)}
	A2      = Size{Inch(16.54), Inch(23.39)}
	A3      = Size{Inch(11.69), Inch(16.54)}
	A4      = Size{595, 842}
	A5      = Size{420, 595}
	A6      = Size{297, 420}
	Letter  = Size{612, 792}
	Legal   = Size{612, 1008}
	Tabloid = Size{792, 1224}
	Ledger  = Tabloid.Landscape()
)
