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

// Package pdf turns a declarative tree of pages and styled text into a
// PDF-1.7 byte stream.
//
// The heavy lifting -- shaping runs of text into glyphs, breaking paragraphs
// into justified lines, packing lines into column frames, and subsetting
// embedded TrueType fonts -- lives in the subpackages (style, span,
// hyphenate, atom, breaker, frame, font, font/sfnt, font/subset, content).
// This package owns the PDF object model and the low-level file writer that
// the rest of the pipeline feeds into.
//
// A minimal program looks like:
//
//	doc := content.Document{
//	    Style: style.Font(font.Helvetica),
//	    Content: []content.PageOrAuto{
//	        content.AutoPage{
//	            Blocks: []content.Block{
//	                content.Paragraph{Spans: []span.Span{span.Text("Olá Mundo!")}},
//	            },
//	            Template: func(int) content.Page { return content.Page{Size: unit.A4} },
//	        },
//	    },
//	}
//	err := doc.Write(w)
package pdf
