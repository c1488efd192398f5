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

import (
	"bytes"
	"testing"
)

func format(o Object) string {
	var buf bytes.Buffer
	if err := o.WriteTo(&buf); err != nil {
		panic(err)
	}
	return buf.String()
}

func TestFormatNumber(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{-0, "0"},
		{1, "1"},
		{1.5, "1.5"},
		{-1.5, "-1.5"},
		{1.23456, "1.2346"},
		{100, "100"},
		{0.1, "0.1"},
	}
	for _, c := range cases {
		if got := FormatNumber(c.in); got != c.want {
			t.Errorf("FormatNumber(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNameEscaping(t *testing.T) {
	cases := []struct {
		in   Name
		want string
	}{
		{"Foo", "/Foo"},
		{"A#B", "/A#23B"},
		{"", "/"},
		{"Helvetica-Bold", "/Helvetica-Bold"},
	}
	for _, c := range cases {
		if got := format(c.in); got != c.want {
			t.Errorf("format(Name(%q)) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestStringEscaping(t *testing.T) {
	got := format(String("a(b)c\\d"))
	want := `(a\(b\)c\\d)`
	if got != want {
		t.Errorf("format(String) = %q, want %q", got, want)
	}
}

func TestHexString(t *testing.T) {
	got := format(HexString{0x00, 0x41, 0xff})
	want := "<0041ff>"
	if got != want {
		t.Errorf("format(HexString) = %q, want %q", got, want)
	}
}

func TestReference(t *testing.T) {
	got := format(Reference{Number: 3, Generation: 0})
	if got != "3 0 R" {
		t.Errorf("format(Reference) = %q, want %q", got, "3 0 R")
	}
}

func TestArrayWithNil(t *testing.T) {
	got := format(Array{Integer(1), nil, Integer(2)})
	if got != "[1 null 2]" {
		t.Errorf("format(Array) = %q, want %q", got, "[1 null 2]")
	}
}

// Dict keys must sort deterministically regardless of insertion order, so
// that identical documents always produce byte-identical output.
func TestDictOrderIsDeterministic(t *testing.T) {
	d1 := Dict{"B": Integer(2), "A": Integer(1)}
	d2 := Dict{"A": Integer(1), "B": Integer(2)}
	if format(d1) != format(d2) {
		t.Errorf("dict serialization depends on insertion order")
	}
	want := "<</A 1\n/B 2\n>>"
	if got := format(d1); got != want {
		t.Errorf("format(Dict) = %q, want %q", got, want)
	}
}
