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

package breaker

import (
	"math"

	"github.com/ariebovenberg/pdfje/atom"
)

const (
	// flaggedPenalty is the demerit added when two consecutive lines both
	// end on a flagged (discretionary-hyphen) break, discouraging a ladder
	// of hyphens down the margin.
	flaggedPenalty      = 100.0
	fitnessClassPenalty = 100.0
	defaultTolerance    = 10.0
	expandedTolerance   = 20.0
)

// stretchShrink returns the cumulative interword stretch and shrink of
// atoms[from:to], the atoms strictly between two breakpoints.
func stretchShrink(atoms []atom.Atom, from, to int) (stretch, shrink float64) {
	for _, a := range atoms[from:to] {
		if g, ok := a.(atom.Glue); ok {
			stretch += g.Stretch
			shrink += g.Shrink
		}
	}
	return
}

// node is one entry of the active list: a feasible partial break ending at
// a given breakpoint, on a given line, with a given fitness class.
type node struct {
	bpIndex   int // index into the breakpoints slice, or -1 for the paragraph start
	predIndex int // bpIndex of the breakpoint the line before this one started from
	line      int
	fitness   int
	fitDist   int     // |fitness - predecessor's fitness| at the moment this node was built
	badness   float64 // raw badness of the line ending here
	demerits  float64
	flagged   bool
	prev      *node
}

// better reports whether cand should be preferred over old when both are
// candidates for the same (line, breakpoint, fitness) slot: lower
// cumulative demerits wins outright. An exact tie (rare, but possible with
// integer-valued widths) is broken deterministically by fitness distance,
// then raw badness, then the earlier predecessor breakpoint, so the result
// never depends on map iteration order.
func better(cand, old *node) bool {
	if cand.demerits != old.demerits {
		return cand.demerits < old.demerits
	}
	if cand.fitDist != old.fitDist {
		return cand.fitDist < old.fitDist
	}
	if cand.badness != old.badness {
		return cand.badness < old.badness
	}
	return cand.predIndex < old.predIndex
}

// fitnessClass buckets an adjustment ratio the way TeX does: tight, decent,
// loose, very loose.
func fitnessClass(r float64) int {
	switch {
	case r < -0.5:
		return 0
	case r <= 0.5:
		return 1
	case r <= 1:
		return 2
	default:
		return 3
	}
}

// demeritsFor implements the Knuth-Plass demerits formula: badness and
// penalty combine so that a forced break never contributes its own
// (otherwise infinite) penalty term, and a negative (encouraged) penalty
// reduces demerits instead of increasing them.
func demeritsFor(badness, penalty float64) float64 {
	base := 1 + badness
	switch {
	case math.IsInf(penalty, -1):
		return base * base
	case penalty >= 0:
		d := base + penalty
		return d * d
	default:
		return base*base - penalty*penalty
	}
}

func badnessOf(r float64) float64 {
	b := 100 * math.Pow(math.Abs(r), 3)
	if b > 10000 {
		b = 10000
	}
	return b
}

// ratio computes the adjustment ratio for a line spanning [start, bp) of
// atoms, with bp's own added width (e.g. a hyphen) included, against an
// available width. ok is false when the line is infeasible outright (would
// need negative-length shrink), as distinct from merely exceeding
// tolerance.
func ratio(atoms []atom.Atom, startWidth float64, bp breakpoint, startIdx, endIdx int, avail float64) (r float64, ok bool) {
	length := bp.width - startWidth + bp.added
	stretch, shrink := stretchShrink(atoms, startIdx, endIdx)
	switch {
	case length == avail:
		return 0, true
	case length < avail:
		if stretch <= 0 {
			return math.Inf(1), true
		}
		return (avail - length) / stretch, true
	default:
		if shrink <= 0 {
			return -2, false
		}
		r := (avail - length) / shrink
		return r, r >= -1
	}
}

// Knuth breaks atoms into lines using the same active-list optimal-fit
// algorithm as TeX's line breaker: every feasible partial break is kept
// alive, scored by cumulative demerits, until the paragraph's forced final
// break collapses the list to a single optimum. If no feasible set of
// breaks exists at the default tolerance, tolerance is doubled once before
// falling back to Greedy.
func Knuth(atoms []atom.Atom, width WidthFunc) Result {
	if lines, ok := knuthAttempt(atoms, width, defaultTolerance); ok {
		return lines
	}
	if lines, ok := knuthAttempt(atoms, width, expandedTolerance); ok {
		return lines
	}
	return Greedy(atoms, width)
}

func knuthAttempt(atoms []atom.Atom, width WidthFunc, tolerance float64) (Result, bool) {
	bps := findBreakpoints(atoms)
	if len(bps) == 0 {
		return Result{}, true
	}

	root := &node{bpIndex: -1, predIndex: -1, line: 0, fitness: 1}
	active := map[[3]int]*node{{0, -1, 1}: root}

	lineStart := func(n *node) (idx int, width float64) {
		if n.bpIndex < 0 {
			return 0, 0
		}
		bp := bps[n.bpIndex]
		return bp.end, bp.width + bp.added
	}

	for i := range bps {
		bp := bps[i]
		if len(active) == 0 {
			return Result{}, false
		}

		next := make(map[[3]int]*node)
		for _, n := range active {
			startIdx, startWidth := lineStart(n)
			avail := width(n.line)
			r, feasible := ratio(atoms, startWidth, bp, startIdx, bp.index, avail)
			if !feasible {
				continue // over-shrunk: this active node can never reach this far
			}
			if math.Abs(r) > tolerance && !bp.forced {
				// Still too loose/tight at this candidate; keep the node
				// alive (it stays in `active` for the next iteration) but
				// don't record a break here.
				next[[3]int{n.line, n.bpIndex, n.fitness}] = mergeBest(next[[3]int{n.line, n.bpIndex, n.fitness}], n)
				continue
			}

			fit := fitnessClass(r)
			badness := badnessOf(r)
			fitDist := absInt(fit - n.fitness)
			d := demeritsFor(badness, bp.cost)
			if bp.flagged && n.flagged {
				d += flaggedPenalty
			}
			if fitDist > 1 {
				d += fitnessClassPenalty
			}
			d += n.demerits

			key := [3]int{n.line + 1, i, fit}
			cand := &node{
				bpIndex:   i,
				predIndex: n.bpIndex,
				line:      n.line + 1,
				fitness:   fit,
				fitDist:   fitDist,
				badness:   badness,
				demerits:  d,
				flagged:   bp.flagged,
				prev:      n,
			}
			if old, ok := next[key]; !ok || better(cand, old) {
				next[key] = cand
			}
		}
		// Nodes that survived only because they were too loose/tight (not
		// yet broken) must also carry over unchanged for future positions.
		// A forced break ends every line that reaches it, so no node carries
		// over past one.
		for k, n := range active {
			if _, broke := next[k]; !broke && !bp.forced {
				startIdx, startWidth := lineStart(n)
				avail := width(n.line)
				if _, feasible := ratio(atoms, startWidth, bp, startIdx, bp.index, avail); feasible {
					next[k] = n
				}
			}
		}
		active = next
	}

	if len(active) == 0 {
		return Result{}, false
	}

	var bestEnd *node
	for _, n := range active {
		if n.bpIndex != len(bps)-1 {
			continue // only a break at the paragraph's own forced end counts
		}
		if bestEnd == nil || better(n, bestEnd) {
			bestEnd = n
		}
	}
	if bestEnd == nil {
		return Result{}, false
	}

	return Result{Lines: unroll(atoms, bps, width, bestEnd)}, true
}

func mergeBest(existing, n *node) *node {
	if existing == nil || better(n, existing) {
		return n
	}
	return existing
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// unroll walks the chosen node's prev chain back to the paragraph start and
// renders each hop as a Line, recomputing its ratio for the ratio field.
func unroll(atoms []atom.Atom, bps []breakpoint, width WidthFunc, end *node) []Line {
	var chain []*node
	for n := end; n.bpIndex >= 0; n = n.prev {
		chain = append(chain, n)
	}
	// chain is last-to-first; reverse.
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}

	lines := make([]Line, 0, len(chain))
	lineStartIdx, lineStartWidth := 0, 0.0
	for lineNum, n := range chain {
		bp := bps[n.bpIndex]
		r, _ := ratio(atoms, lineStartWidth, bp, lineStartIdx, bp.index, width(lineNum))
		lines = append(lines, Line{
			Atoms:   atoms[lineStartIdx:bp.end],
			Ratio:   r,
			Flagged: bp.flagged,
		})
		lineStartIdx, lineStartWidth = bp.end, bp.width+bp.added
	}
	return lines
}
