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

// Package span implements the inline text tree a paragraph is built from: a
// Span is either a run of literal text, or a styled group of child Spans.
// Flatten walks that tree once and hands back plain (text, resolved style)
// runs, so the shaper never has to know about the tree shape.
package span

import "github.com/ariebovenberg/pdfje/style"

// Span is either a Leaf carrying literal text, or a Node applying a Style
// to a sequence of child Spans. There is no third variant: a paragraph's
// entire inline content is a []Span at the top level.
type Span interface {
	isSpan()
}

// Leaf is a run of literal text with no styling of its own; it inherits
// whatever Style is in effect from its ancestor Nodes.
type Leaf string

func (Leaf) isSpan() {}

// Node applies Style to Children, overriding any field Style sets and
// inheriting the rest from its own ancestors.
type Node struct {
	Style    style.Style
	Children []Span
}

func (Node) isSpan() {}

// Text is a convenience constructor equivalent to Leaf(s).
func Text(s string) Span { return Leaf(s) }

// Styled wraps children in a Node applying s.
func Styled(s style.Style, children ...Span) Span {
	return Node{Style: s, Children: children}
}

// Run is one contiguous piece of literal text together with the fully
// resolved style it should be shaped and drawn with.
type Run struct {
	Text  string
	Style style.Resolved
}

// Flatten walks spans depth-first, composing each Node's Style over its
// parent's (child wins, per style.Compose), and returns one Run per Leaf
// encountered along the way in document order. base is the Style in effect
// before any of spans' own Nodes are applied -- typically the document or
// paragraph's own Style.
func Flatten(spans []Span, base style.Style) []Run {
	var runs []Run
	flatten(spans, base, &runs)
	return runs
}

func flatten(spans []Span, inherited style.Style, out *[]Run) {
	for _, s := range spans {
		switch v := s.(type) {
		case Leaf:
			if len(v) == 0 {
				continue
			}
			*out = append(*out, Run{Text: string(v), Style: style.Resolve(inherited)})
		case Node:
			flatten(v.Children, style.Compose(v.Style, inherited), out)
		}
	}
}
