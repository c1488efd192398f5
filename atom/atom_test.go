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

package atom

import (
	"math"
	"testing"
)

func TestWidths(t *testing.T) {
	if w := (Box{W: 12.5}).Width(); w != 12.5 {
		t.Errorf("Box.Width() = %v, want 12.5", w)
	}
	if w := (Glue{W: 3}).Width(); w != 3 {
		t.Errorf("Glue.Width() = %v, want 3", w)
	}
	if w := (Penalty{W: 4}).Width(); w != 4 {
		t.Errorf("Penalty.Width() = %v, want 4", w)
	}
}

func TestParagraphEnd(t *testing.T) {
	atoms := ParagraphEnd()
	if len(atoms) != 2 {
		t.Fatalf("ParagraphEnd() has %d atoms, want 2", len(atoms))
	}
	g, ok := atoms[0].(Glue)
	if !ok || !math.IsInf(g.Stretch, 1) {
		t.Errorf("first atom = %#v, want infinitely stretchable Glue", atoms[0])
	}
	p, ok := atoms[1].(Penalty)
	if !ok || !math.IsInf(p.Cost, -1) {
		t.Errorf("second atom = %#v, want a forced-break Penalty", atoms[1])
	}
}
