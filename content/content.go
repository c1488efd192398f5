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

// Package content assembles the document-level types -- pages, paragraphs,
// drawables -- and their orchestration into a PDF file: shape every
// paragraph, break it into lines, fill frames with orphan/widow control,
// then emit one content stream per generated page.
package content

import (
	"github.com/ariebovenberg/pdfje/span"
	"github.com/ariebovenberg/pdfje/style"
	"github.com/ariebovenberg/pdfje/unit"
)

// Align is a paragraph's horizontal alignment.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
	AlignCenter
	AlignJustify
)

// Block is one piece of a page's main flow: a Paragraph or a Rule.
type Block interface{ isBlock() }

// Paragraph is a run of styled inline content, laid out as one or more
// lines.
type Paragraph struct {
	Spans  []span.Span
	Style  style.Style
	Align  Align
	Indent float64
	// Optimal selects the Knuth-Plass line breaker; when false, Greedy is
	// used instead.
	Optimal bool
	// AvoidOrphans disables orphan/widow control for this paragraph when
	// false; true (the default zero value's opposite -- see NewParagraph)
	// keeps it on.
	AvoidOrphans bool
}

func (Paragraph) isBlock() {}

// NewParagraph returns a Paragraph with AvoidOrphans and Optimal both on,
// the defaults most callers want.
func NewParagraph(style style.Style, spans ...span.Span) Paragraph {
	return Paragraph{Spans: spans, Style: style, Optimal: true, AvoidOrphans: true}
}

// Rule is a horizontal divider: vertical margin above and below, then a
// stroked line the width of the column.
type Rule struct {
	Margin      float64
	Color       style.RGB
	StrokeWidth float64
}

func (Rule) isBlock() {}

// Drawable is a page-relative graphic primitive, positioned independently
// of the paragraph flow.
type Drawable interface{ isDrawable() }

// Line is a straight stroked segment from (X1,Y1) to (X2,Y2), in points
// from the page's bottom-left corner.
type Line struct {
	X1, Y1, X2, Y2 float64
	Color          style.RGB
	Width          float64
}

func (Line) isDrawable() {}

// Rect is an axis-aligned rectangle, optionally filled and/or stroked.
type Rect struct {
	X, Y, W, H  float64
	Fill        *style.RGB
	Stroke      *style.RGB
	StrokeWidth float64
}

func (Rect) isDrawable() {}

// Ellipse is an axis-aligned ellipse, optionally filled and/or stroked.
type Ellipse struct {
	CX, CY, RX, RY float64
	Fill           *style.RGB
	Stroke         *style.RGB
	StrokeWidth    float64
}

func (Ellipse) isDrawable() {}

// Polyline is a sequence of straight segments through Points, optionally
// closed back to the first point before filling or stroking.
type Polyline struct {
	Points      []Point
	Close       bool
	Fill        *style.RGB
	Stroke      *style.RGB
	StrokeWidth float64
}

func (Polyline) isDrawable() {}

// Point is a location in page space, in points from the bottom-left corner.
type Point struct{ X, Y float64 }

// TextBox draws Spans at a fixed page position, outside the normal
// paragraph flow -- a caption or a watermark, for instance. Align anchors
// the text horizontally at (X, Y): AlignLeft starts at X, AlignRight ends
// at X, and AlignCenter centers on X. AlignJustify has no target width to
// stretch to outside a column, so it renders the same as AlignLeft.
type TextBox struct {
	X, Y  float64
	Spans []span.Span
	Style style.Style
	Align Align
}

func (TextBox) isDrawable() {}

// Margins are page-edge insets in points.
type Margins struct {
	Top, Right, Bottom, Left float64
}

// Page is one fixed-size, fixed-margin page. If its Blocks overflow the
// available height, Document.Write continues them onto further pages built
// from the same Page value, the way a AutoPage with a constant Template
// would.
type Page struct {
	Size      unit.Size
	Rotation  int
	Margin    Margins
	Columns   int
	ColumnGap float64
	Blocks    []Block
	Drawables []Drawable
}

// AutoPage flows Blocks across as many pages as needed. Template is called
// once, with page index 0, and every page of the AutoPage takes that
// result's geometry (Size, Rotation, Margin, Columns, ColumnGap); it is not
// called again for later page indices, so all pages share one geometry.
// Template's own Blocks/Drawables fields are ignored.
type AutoPage struct {
	Blocks   []Block
	Template func(pageIndex int) Page
}

// PageOrAuto tags one entry of a Document's content: either a fixed Page or
// a flowing AutoPage.
type PageOrAuto interface{ isPageOrAuto() }

func (Page) isPageOrAuto()     {}
func (AutoPage) isPageOrAuto() {}

// Document is the root of a PDF: an ordered sequence of pages, plus the
// Style every Paragraph composes its own Style over.
type Document struct {
	Content []PageOrAuto
	Style   style.Style
	// Lang is a BCP-47 language tag written to the Catalog's /Lang entry,
	// e.g. "en" or "pt-BR". Left empty, no /Lang entry is written.
	Lang string
}
