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

// Package style implements the immutable, overridable text style records a
// span tree carries: font, size, color, line spacing, and hyphenation
// capability. Every field is a pointer so that an unset field can be told
// apart from a field explicitly set to its zero value, matching a span's
// intent to inherit rather than override.
package style

import (
	"github.com/ariebovenberg/pdfje/font"
	"github.com/ariebovenberg/pdfje/hyphenate"
)

// RGB is a device color in the 0-1 range used for both fill and stroke.
type RGB struct {
	R, G, B float64
}

// Black is the default text and stroke color.
var Black = RGB{0, 0, 0}

// Style is a set of text formatting properties. Every field is optional
// (nil means "inherit from the enclosing scope"); Compose resolves a chain
// of Styles down to concrete values.
type Style struct {
	Font        font.Handle
	Size        *float64
	Color       *RGB
	LineSpacing *float64
	Hyphens     hyphenate.Hyphenator
}

// DefaultLineSpacing is the multiple of font size used when no Style in a
// span's ancestry sets LineSpacing.
const DefaultLineSpacing = 1.25

// Compose returns a new Style with every field of child that is set kept,
// and every unset field filled in from parent. Neither argument is mutated
// (child | parent right-biased override, read right-to-left as "child wins,
// falling back to parent").
func Compose(child, parent Style) Style {
	out := child
	if out.Font == nil {
		out.Font = parent.Font
	}
	if out.Size == nil {
		out.Size = parent.Size
	}
	if out.Color == nil {
		out.Color = parent.Color
	}
	if out.LineSpacing == nil {
		out.LineSpacing = parent.LineSpacing
	}
	if out.Hyphens == nil {
		out.Hyphens = parent.Hyphens
	}
	return out
}

// Resolved is a Style with every field guaranteed non-nil, produced once
// composition down a span tree's root-to-leaf path is complete.
type Resolved struct {
	Font        font.Handle
	Size        float64
	Color       RGB
	LineSpacing float64
	Hyphens     hyphenate.Hyphenator
}

// Resolve fills in the document-wide defaults for any field still unset
// after composing a span's full ancestor chain. A nil Font is an
// InputShapeError at the call site, not defaulted here: unlike size or
// color, there is no sensible universal default font.
func Resolve(s Style) Resolved {
	size := 12.0
	if s.Size != nil {
		size = *s.Size
	}
	color := Black
	if s.Color != nil {
		color = *s.Color
	}
	lineSpacing := DefaultLineSpacing
	if s.LineSpacing != nil {
		lineSpacing = *s.LineSpacing
	}
	hyphens := s.Hyphens
	if hyphens == nil {
		hyphens = hyphenate.Fallback
	}
	return Resolved{
		Font:        s.Font,
		Size:        size,
		Color:       color,
		LineSpacing: lineSpacing,
		Hyphens:     hyphens,
	}
}

// Size is a convenience constructor for a Style that only sets Size.
func Size(pt float64) Style {
	return Style{Size: &pt}
}

// Color is a convenience constructor for a Style that only sets Color.
func Color(c RGB) Style {
	return Style{Color: &c}
}

// Font is a convenience constructor for a Style that only sets Font.
func Font(h font.Handle) Style {
	return Style{Font: h}
}

// LineSpacing is a convenience constructor for a Style that only sets
// LineSpacing.
func LineSpacing(mult float64) Style {
	return Style{LineSpacing: &mult}
}

// Hyphens is a convenience constructor for a Style that only sets the
// hyphenation strategy. Pass hyphenate.None to disable hyphenation for a
// span and its descendants.
func Hyphens(h hyphenate.Hyphenator) Style {
	return Style{Hyphens: h}
}
