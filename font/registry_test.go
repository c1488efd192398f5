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
	"testing"

	pdf "github.com/ariebovenberg/pdfje"
)

func TestRegistryAssignsNamesInFirstSeenOrder(t *testing.T) {
	reg := NewRegistry()
	if n := reg.Assign(Helvetica); n != "F1" {
		t.Errorf("first Assign = %q, want F1", n)
	}
	if n := reg.Assign(TimesRoman); n != "F2" {
		t.Errorf("second Assign = %q, want F2", n)
	}
	if n := reg.Assign(Helvetica); n != "F1" {
		t.Errorf("re-assigning the same handle = %q, want the original F1", n)
	}
}

func TestRegistryFreezeSubsetsEmbeddedHandles(t *testing.T) {
	e := newGoRegular(t)
	e.Advance('h')
	e.Advance('i')

	reg := NewRegistry()
	reg.Assign(e)

	if err := reg.Freeze(); err != nil {
		t.Fatalf("Freeze: %v", err)
	}
	if e.Subset() == nil {
		t.Error("expected the embedded handle to be subsetted after Freeze")
	}
}

func TestRegistryEmitStandard14(t *testing.T) {
	reg := NewRegistry()
	name := reg.Assign(Helvetica)

	var buf bytes.Buffer
	w, err := pdf.NewWriter(&buf)
	if err != nil {
		t.Fatal(err)
	}
	refs, err := reg.Emit(w)
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if _, ok := refs[name]; !ok {
		t.Errorf("Emit did not return a reference for %q", name)
	}
}

func TestRegistryEmitEmbedded(t *testing.T) {
	e := newGoRegular(t)
	e.Advance('x')

	reg := NewRegistry()
	name := reg.Assign(e)
	if err := reg.Freeze(); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	w, err := pdf.NewWriter(&buf)
	if err != nil {
		t.Fatal(err)
	}
	refs, err := reg.Emit(w)
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if _, ok := refs[name]; !ok {
		t.Errorf("Emit did not return a reference for %q", name)
	}
}

func TestRegistryEmitEmbeddedWithoutFreezeFails(t *testing.T) {
	e := newGoRegular(t)
	reg := NewRegistry()
	reg.Assign(e)

	var buf bytes.Buffer
	w, err := pdf.NewWriter(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := reg.Emit(w); err == nil {
		t.Error("expected Emit to fail for an embedded handle that was never Frozen")
	}
}
