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

import "testing"

func TestResourcesDictOmitsEmptyExtGState(t *testing.T) {
	r := Resources{Fonts: map[Name]Reference{"F1": {Number: 5}}}
	d := r.Dict()
	if _, ok := d["ExtGState"]; ok {
		t.Error("expected no /ExtGState entry when none were set")
	}
	fonts, ok := d["Font"].(Dict)
	if !ok || fonts["F1"] != (Reference{Number: 5}) {
		t.Errorf("unexpected /Font entry: %#v", d["Font"])
	}
}

func TestResourcesDictIncludesExtGState(t *testing.T) {
	r := Resources{
		Fonts:      map[Name]Reference{},
		ExtGStates: map[Name]Reference{"GS1": {Number: 9}},
	}
	d := r.Dict()
	gs, ok := d["ExtGState"].(Dict)
	if !ok || gs["GS1"] != (Reference{Number: 9}) {
		t.Errorf("unexpected /ExtGState entry: %#v", d["ExtGState"])
	}
}
