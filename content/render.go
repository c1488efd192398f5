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

package content

import (
	"bytes"
	"fmt"
	"io"

	pdf "github.com/ariebovenberg/pdfje"
	"github.com/ariebovenberg/pdfje/atom"
	"github.com/ariebovenberg/pdfje/breaker"
	"github.com/ariebovenberg/pdfje/font"
	"github.com/ariebovenberg/pdfje/frame"
	"github.com/ariebovenberg/pdfje/shape"
	"github.com/ariebovenberg/pdfje/span"
	"github.com/ariebovenberg/pdfje/style"
	"golang.org/x/text/language"
)

// fn renders a coordinate or dimension the same way the writer renders any
// other PDF real number (rule 6: at most 4 fractional digits).
func fn(x float64) string { return pdf.FormatNumber(x) }

// WriteResult reports non-fatal events recorded while a Document was
// composed: font substitutions and lines that could not be broken within
// their column even at maximum tolerance.
type WriteResult struct {
	Warnings []error
}

// Write renders doc as a PDF-1.7 file to w. Substitutions and overfull
// lines are recorded, not raised; call WriteReport to see them.
func (doc Document) Write(w io.Writer) error {
	_, err := doc.WriteReport(w)
	return err
}

// preparedDrawable pairs a raw Drawable with any glyphs shaped for it ahead
// of the font registry's Freeze, since only a TextBox carries text.
type preparedDrawable struct {
	raw   Drawable
	atoms []atom.Atom
}

// lineMeta identifies which Block a frame-filled line came from, since
// Frame itself only knows about breaker.Line content. It is reconstructed
// after the fact: Fill emits every paragraph's lines contiguously and in
// order, so zipping the per-block line counts back against the flattened
// frame output recovers the association.
type lineMeta struct {
	block Block
}

// builtPage is one generated PDF page: its geometry, the frames (columns)
// filled with content, and any page-relative drawables (only present on a
// unit's first generated page).
type builtPage struct {
	geom      Page
	colWidth  float64
	colGap    float64
	frames    []*frame.Frame
	lineMeta  [][]lineMeta
	drawables []preparedDrawable
}

// WriteReport renders doc as a PDF-1.7 file to w and returns the warnings
// collected along the way.
func (doc Document) WriteReport(w io.Writer) (WriteResult, error) {
	var result WriteResult

	pw, err := pdf.NewWriter(w)
	if err != nil {
		return result, err
	}
	reg := font.NewRegistry()

	var allPages []*builtPage

	for _, unit := range doc.Content {
		pages, err := layoutUnit(unit, doc.Style, reg, &result.Warnings)
		if err != nil {
			return result, err
		}
		allPages = append(allPages, pages...)
	}

	if err := reg.Freeze(); err != nil {
		return result, err
	}
	fontRefs, err := reg.Emit(pw)
	if err != nil {
		return result, err
	}
	resources := pdf.Resources{Fonts: fontRefs}.Dict()

	pagesRoot := pw.Alloc()
	kids := make([]pdf.Reference, 0, len(allPages))
	for _, pb := range allPages {
		ref, err := writePage(pw, pagesRoot, reg, pb, resources)
		if err != nil {
			return result, err
		}
		kids = append(kids, ref)
	}
	if _, err := pw.WriteIndirect(pagesRoot, pdf.PageTree(pagesRoot, kids)); err != nil {
		return result, err
	}

	catalog := pdf.NewCatalog(pagesRoot)
	if doc.Lang != "" {
		tag, err := language.Parse(doc.Lang)
		if err != nil {
			return result, &pdf.InputShapeError{Field: "Document.Lang", Reason: err.Error()}
		}
		catalog["Lang"] = pdf.String(tag.String())
	}
	catRef, err := pw.WriteIndirect(pdf.Reference{}, catalog)
	if err != nil {
		return result, err
	}
	pw.SetCatalog(catRef)

	return result, pw.Close()
}

// normalize turns a Page or AutoPage into a common (per-page geometry,
// flowed blocks) shape. A fixed Page's geometry is returned unchanged for
// every page index, so overflow from a Page that runs out of room
// continues onto further pages of identical size.
func normalize(u PageOrAuto) (func(int) Page, []Block) {
	switch v := u.(type) {
	case Page:
		return func(int) Page { return v }, v.Blocks
	case AutoPage:
		return v.Template, v.Blocks
	default:
		return func(int) Page { return Page{} }, nil
	}
}

// layoutUnit shapes and breaks one Page or AutoPage's blocks and fills them
// into as many generated pages as needed. Column width, height, and count
// are fixed from the unit's own page 0 geometry for every page it overflows
// onto: reflowing a paragraph's line breaks against a different width per
// generated page is not supported.
func layoutUnit(unit PageOrAuto, docStyle style.Style, reg *font.Registry, warnings *[]error) ([]*builtPage, error) {
	template, blocks := normalize(unit)
	geom := template(0)
	if geom.Size.W <= 0 || geom.Size.H <= 0 {
		return nil, &pdf.InputShapeError{Field: "Page.Size", Reason: "width and height must be positive"}
	}

	margin := geom.Margin
	pageW := float64(geom.Size.W) - margin.Left - margin.Right
	pageH := float64(geom.Size.H) - margin.Top - margin.Bottom
	cols := geom.Columns
	if cols < 1 {
		cols = 1
	}
	colGap := geom.ColumnGap
	colWidth := (pageW - colGap*float64(cols-1)) / float64(cols)

	blockLines, avoidOrphans, metas, err := buildBlockLines(blocks, docStyle, colWidth, reg, warnings)
	if err != nil {
		return nil, err
	}

	var unitDrawables []Drawable
	if p, ok := unit.(Page); ok {
		unitDrawables = p.Drawables
	}
	prepared, err := prepareDrawables(unitDrawables, docStyle, reg, warnings)
	if err != nil {
		return nil, err
	}

	var pages []*builtPage
	next := func(frameIdx int) *frame.Frame {
		pageIdx := frameIdx / cols
		for len(pages) <= pageIdx {
			bp := &builtPage{geom: geom, colWidth: colWidth, colGap: colGap}
			if len(pages) == 0 {
				bp.drawables = prepared
			}
			pages = append(pages, bp)
		}
		f := &frame.Frame{Width: colWidth, Height: pageH}
		pages[pageIdx].frames = append(pages[pageIdx].frames, f)
		return f
	}

	lineHeight := lineHeightFunc(blocks, blockLines)
	frame.Fill(blockLines, avoidOrphans, lineHeight, next)

	// Recover which Block each placed line came from: Fill appends a
	// paragraph's lines contiguously and in order, so walking the built
	// frames in creation order reproduces the same sequence as metas.
	mi := 0
	for _, pb := range pages {
		pb.lineMeta = make([][]lineMeta, len(pb.frames))
		for fi, fr := range pb.frames {
			pb.lineMeta[fi] = make([]lineMeta, len(fr.Lines))
			for li := range fr.Lines {
				pb.lineMeta[fi][li] = metas[mi]
				mi++
			}
		}
	}

	return pages, nil
}

// buildBlockLines shapes and breaks every Paragraph block into lines, and
// turns every Rule block into a single synthetic line, so both can flow
// through frame.Fill uniformly.
func buildBlockLines(blocks []Block, docStyle style.Style, colWidth float64, reg *font.Registry, warnings *[]error) (lines [][]breaker.Line, avoidOrphans []bool, metas []lineMeta, err error) {
	lines = make([][]breaker.Line, len(blocks))
	avoidOrphans = make([]bool, len(blocks))

	for i, blk := range blocks {
		switch b := blk.(type) {
		case Paragraph:
			base := style.Compose(b.Style, docStyle)
			runs := span.Flatten(b.Spans, base)
			for _, r := range runs {
				if r.Style.Font == nil {
					return nil, nil, nil, &pdf.InputShapeError{Field: "Paragraph.Spans", Reason: fmt.Sprintf("no font resolved for run %q", r.Text)}
				}
				if r.Style.Size < 0 {
					return nil, nil, nil, &pdf.InputShapeError{Field: "Paragraph.Spans", Reason: fmt.Sprintf("negative font size %g for run %q", r.Style.Size, r.Text)}
				}
				reg.Assign(r.Style.Font)
			}
			atoms, subs := shape.Paragraph(runs, b.Align != AlignJustify)
			*warnings = append(*warnings, subs...)
			if b.Indent > 0 {
				atoms = append([]atom.Atom{atom.Box{W: b.Indent}}, atoms...)
			}

			wf := func(int) float64 { return colWidth }
			var res breaker.Result
			if b.Optimal {
				res = breaker.Knuth(atoms, wf)
			} else {
				res = breaker.Greedy(atoms, wf)
			}
			*warnings = append(*warnings, res.Warnings...)

			lines[i] = res.Lines
			avoidOrphans[i] = b.AvoidOrphans
			for range res.Lines {
				metas = append(metas, lineMeta{block: b})
			}

		case Rule:
			lines[i] = []breaker.Line{{Atoms: []atom.Atom{atom.Box{W: colWidth, Content: b}}}}
			metas = append(metas, lineMeta{block: b})
		}
	}
	return lines, avoidOrphans, metas, nil
}

// lineHeightFunc returns each already-broken line's baseline-to-baseline
// leading: a Rule's fixed margin-plus-stroke slot, or the largest font
// size times line spacing among the glyph runs a text line carries.
func lineHeightFunc(blocks []Block, blockLines [][]breaker.Line) func(int, int) float64 {
	return func(pi, li int) float64 {
		if rule, ok := blocks[pi].(Rule); ok {
			sw := rule.StrokeWidth
			if sw <= 0 {
				sw = 1
			}
			return rule.Margin*2 + sw
		}
		best := 0.0
		for _, a := range blockLines[pi][li].Atoms {
			if b, ok := a.(atom.Box); ok {
				if run, ok := b.Content.(shape.Run); ok {
					if h := run.Style.Size * run.Style.LineSpacing; h > best {
						best = h
					}
				}
			}
		}
		if best == 0 {
			best = 12 * style.DefaultLineSpacing
		}
		return best
	}
}

// prepareDrawables shapes any TextBox's spans up front, so its glyphs are
// registered with reg before Freeze the same way a Paragraph's are.
func prepareDrawables(drawables []Drawable, docStyle style.Style, reg *font.Registry, warnings *[]error) ([]preparedDrawable, error) {
	out := make([]preparedDrawable, 0, len(drawables))
	for _, d := range drawables {
		tb, ok := d.(TextBox)
		if !ok {
			out = append(out, preparedDrawable{raw: d})
			continue
		}
		base := style.Compose(tb.Style, docStyle)
		runs := span.Flatten(tb.Spans, base)
		for _, r := range runs {
			if r.Style.Font == nil {
				return nil, &pdf.InputShapeError{Field: "TextBox.Spans", Reason: fmt.Sprintf("no font resolved for run %q", r.Text)}
			}
			if r.Style.Size < 0 {
				return nil, &pdf.InputShapeError{Field: "TextBox.Spans", Reason: fmt.Sprintf("negative font size %g for run %q", r.Style.Size, r.Text)}
			}
			reg.Assign(r.Style.Font)
		}
		// A TextBox is placed at an explicit point, not broken into a
		// justified column, so its interword glue never needs to fill a
		// measured width.
		atoms, subs := shape.Paragraph(runs, true)
		*warnings = append(*warnings, subs...)
		out = append(out, preparedDrawable{raw: d, atoms: atoms})
	}
	return out, nil
}

func writePage(pw *pdf.Writer, pagesRoot pdf.Reference, reg *font.Registry, pb *builtPage, resources pdf.Dict) (pdf.Reference, error) {
	body := renderPage(reg, pb)
	streamRef, err := pw.WriteStream(pdf.Reference{}, pdf.Dict{}, body, true)
	if err != nil {
		return pdf.Reference{}, err
	}
	pageDict := pdf.NewPage(pagesRoot, float64(pb.geom.Size.W), float64(pb.geom.Size.H), pb.geom.Rotation, resources, streamRef)
	return pw.WriteIndirect(pdf.Reference{}, pageDict)
}

func renderPage(reg *font.Registry, pb *builtPage) []byte {
	var buf bytes.Buffer
	margin := pb.geom.Margin
	contentTop := float64(pb.geom.Size.H) - margin.Top

	for ci, f := range pb.frames {
		colX := margin.Left + float64(ci)*(pb.colWidth+pb.colGap)
		for li, pl := range f.Lines {
			renderPlacedLine(&buf, reg, pl, pb.lineMeta[ci][li], colX, contentTop, pb.colWidth)
		}
	}
	for _, d := range pb.drawables {
		renderDrawable(&buf, reg, d)
	}
	return buf.Bytes()
}

// renderedWidths computes each atom's rendered width for one line: a
// justified line's Glue atoms stretch or shrink by the line's adjustment
// ratio, everything else keeps its natural width.
func renderedWidths(atoms []atom.Atom, ratio float64, justify bool) ([]float64, float64) {
	ws := make([]float64, len(atoms))
	var total float64
	for i, a := range atoms {
		w := a.Width()
		if justify {
			if g, ok := a.(atom.Glue); ok {
				if ratio >= 0 {
					w += ratio * g.Stretch
				} else {
					w += ratio * g.Shrink
				}
			}
		}
		ws[i] = w
		total += w
	}
	return ws, total
}

func lineOffset(align Align, colWidth, total float64) float64 {
	switch align {
	case AlignRight:
		return colWidth - total
	case AlignCenter:
		return (colWidth - total) / 2
	default:
		return 0
	}
}

func renderPlacedLine(buf *bytes.Buffer, reg *font.Registry, pl frame.PlacedLine, meta lineMeta, colX, contentTop, colWidth float64) {
	if rule, ok := meta.block.(Rule); ok {
		renderRule(buf, rule, pl, colX, contentTop, colWidth)
		return
	}
	para, _ := meta.block.(Paragraph)
	justify := para.Align == AlignJustify
	widths, total := renderedWidths(pl.Line.Atoms, pl.Line.Ratio, justify)
	x := colX + lineOffset(para.Align, colWidth, total)
	y := contentTop - pl.Baseline

	buf.WriteString("BT\n")
	var lastStyle *style.Resolved
	for i, a := range pl.Line.Atoms {
		switch v := a.(type) {
		case atom.Box:
			if run, ok := v.Content.(shape.Run); ok {
				lastStyle = &run.Style
				drawRun(buf, reg, run, x, y)
			}
		case atom.Penalty:
			if v.Flagged && i == len(pl.Line.Atoms)-1 && lastStyle != nil {
				drawHyphen(buf, reg, *lastStyle, x, y)
			}
		}
		x += widths[i]
	}
	buf.WriteString("ET\n")
}

func drawRun(buf *bytes.Buffer, reg *font.Registry, run shape.Run, x, y float64) {
	if len(run.Glyphs) == 0 {
		return
	}
	name := reg.Assign(run.Style.Font)
	codes := make([]byte, 0, len(run.Glyphs)*2)
	for _, g := range run.Glyphs {
		code, _ := run.Style.Font.Encode(g.Rune)
		codes = append(codes, code...)
	}
	writeTextOps(buf, name, run.Style.Size, run.Style.Color, x, y, codes)
}

func drawHyphen(buf *bytes.Buffer, reg *font.Registry, st style.Resolved, x, y float64) {
	code, ok := st.Font.Encode('-')
	if !ok {
		return
	}
	name := reg.Assign(st.Font)
	writeTextOps(buf, name, st.Size, st.Color, x, y, code)
}

func writeTextOps(buf *bytes.Buffer, fontName pdf.Name, size float64, color style.RGB, x, y float64, codes []byte) {
	fmt.Fprintf(buf, "%s %s %s rg\n", fn(color.R), fn(color.G), fn(color.B))
	fmt.Fprintf(buf, "/%s %s Tf\n", fontName, fn(size))
	fmt.Fprintf(buf, "1 0 0 1 %s %s Tm\n", fn(x), fn(y))
	pdf.HexString(codes).WriteTo(buf)
	buf.WriteString(" Tj\n")
}

// renderRule draws a Rule's stroked line centered in its allocated slot: the
// slot spans [Baseline-Height, Baseline] measured down from the frame top,
// with Margin above and below the stroke.
func renderRule(buf *bytes.Buffer, rule Rule, pl frame.PlacedLine, colX, contentTop, colWidth float64) {
	sw := rule.StrokeWidth
	if sw <= 0 {
		sw = 1
	}
	slotTop := contentTop - (pl.Baseline - pl.Height)
	y := slotTop - rule.Margin - sw/2
	fmt.Fprintf(buf, "%s %s %s RG\n%s w\n%s %s m %s %s l S\n",
		fn(rule.Color.R), fn(rule.Color.G), fn(rule.Color.B), fn(sw),
		fn(colX), fn(y), fn(colX+colWidth), fn(y))
}

func strokeWidth(w float64) float64 {
	if w <= 0 {
		return 1
	}
	return w
}

func renderDrawable(buf *bytes.Buffer, reg *font.Registry, d preparedDrawable) {
	switch v := d.raw.(type) {
	case Line:
		fmt.Fprintf(buf, "%s %s %s RG\n%s w\n%s %s m %s %s l S\n",
			fn(v.Color.R), fn(v.Color.G), fn(v.Color.B), fn(strokeWidth(v.Width)),
			fn(v.X1), fn(v.Y1), fn(v.X2), fn(v.Y2))
	case Rect:
		if v.Fill != nil {
			fmt.Fprintf(buf, "%s %s %s rg\n", fn(v.Fill.R), fn(v.Fill.G), fn(v.Fill.B))
		}
		if v.Stroke != nil {
			fmt.Fprintf(buf, "%s %s %s RG\n%s w\n", fn(v.Stroke.R), fn(v.Stroke.G), fn(v.Stroke.B), fn(strokeWidth(v.StrokeWidth)))
		}
		op := fillStrokeOp(v.Fill, v.Stroke)
		if op != "n" {
			fmt.Fprintf(buf, "%s %s %s %s re %s\n", fn(v.X), fn(v.Y), fn(v.W), fn(v.H), op)
		}
	case Ellipse:
		drawEllipse(buf, v)
	case Polyline:
		drawPolyline(buf, v)
	case TextBox:
		drawTextBoxAtoms(buf, reg, d.atoms, v.X, v.Y, v.Align)
	}
}

// drawPolyline strokes and/or fills a path through v.Points: moveto the
// first point, lineto every other, optionally closing back to the start.
func drawPolyline(buf *bytes.Buffer, v Polyline) {
	if len(v.Points) == 0 {
		return
	}
	if v.Fill != nil {
		fmt.Fprintf(buf, "%s %s %s rg\n", fn(v.Fill.R), fn(v.Fill.G), fn(v.Fill.B))
	}
	if v.Stroke != nil {
		fmt.Fprintf(buf, "%s %s %s RG\n%s w\n", fn(v.Stroke.R), fn(v.Stroke.G), fn(v.Stroke.B), fn(strokeWidth(v.StrokeWidth)))
	}
	fmt.Fprintf(buf, "%s %s m\n", fn(v.Points[0].X), fn(v.Points[0].Y))
	for _, p := range v.Points[1:] {
		fmt.Fprintf(buf, "%s %s l\n", fn(p.X), fn(p.Y))
	}
	if v.Close {
		buf.WriteString("h\n")
	}
	op := fillStrokeOp(v.Fill, v.Stroke)
	if op != "n" {
		fmt.Fprintf(buf, "%s\n", op)
	}
}

func fillStrokeOp(fill, stroke *style.RGB) string {
	switch {
	case fill != nil && stroke != nil:
		return "B"
	case fill != nil:
		return "f"
	case stroke != nil:
		return "S"
	default:
		return "n"
	}
}

// drawEllipse approximates an ellipse with four cubic Bezier arcs, using
// the standard magic-constant control-point offset (k = 4/3*(sqrt(2)-1)).
func drawEllipse(buf *bytes.Buffer, e Ellipse) {
	const k = 0.5522847498
	cx, cy, rx, ry := e.CX, e.CY, e.RX, e.RY
	if e.Fill != nil {
		fmt.Fprintf(buf, "%s %s %s rg\n", fn(e.Fill.R), fn(e.Fill.G), fn(e.Fill.B))
	}
	if e.Stroke != nil {
		fmt.Fprintf(buf, "%s %s %s RG\n%s w\n", fn(e.Stroke.R), fn(e.Stroke.G), fn(e.Stroke.B), fn(strokeWidth(e.StrokeWidth)))
	}
	fmt.Fprintf(buf, "%s %s m\n", fn(cx+rx), fn(cy))
	fmt.Fprintf(buf, "%s %s %s %s %s %s c\n", fn(cx+rx), fn(cy+ry*k), fn(cx+rx*k), fn(cy+ry), fn(cx), fn(cy+ry))
	fmt.Fprintf(buf, "%s %s %s %s %s %s c\n", fn(cx-rx*k), fn(cy+ry), fn(cx-rx), fn(cy+ry*k), fn(cx-rx), fn(cy))
	fmt.Fprintf(buf, "%s %s %s %s %s %s c\n", fn(cx-rx), fn(cy-ry*k), fn(cx-rx*k), fn(cy-ry), fn(cx), fn(cy-ry))
	fmt.Fprintf(buf, "%s %s %s %s %s %s c\n", fn(cx+rx*k), fn(cy-ry), fn(cx+rx), fn(cy-ry*k), fn(cx+rx), fn(cy))
	op := fillStrokeOp(e.Fill, e.Stroke)
	if op != "n" {
		fmt.Fprintf(buf, "%s\n", op)
	}
}

func drawTextBoxAtoms(buf *bytes.Buffer, reg *font.Registry, atoms []atom.Atom, x, y float64, align Align) {
	var total float64
	for _, a := range atoms {
		total += a.Width()
	}
	buf.WriteString("BT\n")
	cx := x + lineOffset(align, 0, total)
	for _, a := range atoms {
		if b, ok := a.(atom.Box); ok {
			if run, ok := b.Content.(shape.Run); ok {
				drawRun(buf, reg, run, cx, y)
			}
		}
		cx += a.Width()
	}
	buf.WriteString("ET\n")
}
