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

package style

import (
	"testing"

	"github.com/ariebovenberg/pdfje/hyphenate"
)

func TestComposeChildWinsUnsetFallsBack(t *testing.T) {
	ten, twenty := 10.0, 20.0
	parent := Style{Size: &ten, Color: &Black}
	child := Style{Size: &twenty}

	got := Compose(child, parent)
	if *got.Size != 20 {
		t.Errorf("Size = %v, want 20 (child wins)", *got.Size)
	}
	if got.Color != &Black {
		t.Errorf("Color = %v, want inherited from parent", got.Color)
	}
}

func TestComposeDoesNotMutateArguments(t *testing.T) {
	ten := 10.0
	parent := Style{Size: &ten}
	child := Style{}
	Compose(child, parent)
	if child.Size != nil {
		t.Error("Compose mutated its child argument")
	}
}

func TestResolveDefaults(t *testing.T) {
	r := Resolve(Style{})
	if r.Size != 12 {
		t.Errorf("default Size = %v, want 12", r.Size)
	}
	if r.Color != Black {
		t.Errorf("default Color = %v, want Black", r.Color)
	}
	if r.LineSpacing != DefaultLineSpacing {
		t.Errorf("default LineSpacing = %v, want %v", r.LineSpacing, DefaultLineSpacing)
	}
	if r.Hyphens != hyphenate.Fallback {
		t.Error("default Hyphens should be hyphenate.Fallback")
	}
}

func TestResolveExplicitNoneHyphensIsNotOverridden(t *testing.T) {
	r := Resolve(Style{Hyphens: hyphenate.None})
	if r.Hyphens != hyphenate.None {
		t.Error("an explicit hyphenate.None must not be replaced by the fallback")
	}
}

func TestConvenienceConstructors(t *testing.T) {
	s := Size(18)
	if s.Size == nil || *s.Size != 18 {
		t.Errorf("Size(18) = %#v", s)
	}
	c := Color(RGB{0.5, 0.5, 0.5})
	if c.Color == nil || *c.Color != (RGB{0.5, 0.5, 0.5}) {
		t.Errorf("Color(...) = %#v", c)
	}
	ls := LineSpacing(2)
	if ls.LineSpacing == nil || *ls.LineSpacing != 2 {
		t.Errorf("LineSpacing(2) = %#v", ls)
	}
}
