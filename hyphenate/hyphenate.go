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

// Package hyphenate exposes the single capability the shaper needs to place
// discretionary hyphens: given a word, where may it legally split. There is
// no inheritance hierarchy, just the Hyphenator interface and two
// implementations of it.
package hyphenate

import (
	"sort"
	"strings"
)

// Hyphenator returns the sorted rune-offset split points within word at
// which a discretionary hyphen may be inserted. A returned position p means
// the word may break between word[:p] and word[p:].
type Hyphenator interface {
	Positions(word string) []int
}

// None is a Hyphenator that never proposes a break. Style.Hyphens is set to
// None to disable hyphenation explicitly, as distinct from leaving the
// field unset (which resolves to Fallback via style composition).
var None Hyphenator = noneHyphenator{}

type noneHyphenator struct{}

func (noneHyphenator) Positions(string) []int { return nil }

// Fallback is the English-only heuristic used when no external provider
// (e.g. a Liang-pattern dictionary) is injected via Style.Hyphens. It splits
// at literal hyphens and before a short list of common suffixes, keeping at
// least 2 leading and 3 trailing characters. That trailing minimum means the
// two-letter suffixes in the list (-ed, -ly) never produce a split.
var Fallback Hyphenator = fallbackHyphenator{}

type fallbackHyphenator struct{}

var commonSuffixes = []string{"tion", "ing", "ed", "ly"}

func (fallbackHyphenator) Positions(word string) []int {
	runes := []rune(word)
	n := len(runes)
	if n < 2+3 {
		return nil
	}

	seen := make(map[int]bool)
	var positions []int
	add := func(p int) {
		if p < 2 || p > n-3 {
			return
		}
		if !seen[p] {
			seen[p] = true
			positions = append(positions, p)
		}
	}

	for i, r := range runes {
		if r == '-' && i > 0 && i < n {
			add(i + 1)
		}
	}

	lower := strings.ToLower(word)
	for _, suf := range commonSuffixes {
		if strings.HasSuffix(lower, suf) {
			add(n - len(suf))
		}
	}

	sort.Ints(positions)
	return positions
}
