// This file is part of basic8 - https://github.com/retrobasic/basic8
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package vm

import (
	"sort"
	"strconv"
	"strings"

	"github.com/retrobasic/basic8/lexer"
)

// Program is the line-number -> statement-text store. Keys are kept in a
// sorted slice alongside the map, so jump targets are checked with a map
// lookup, next-line lookups are O(log n), and ordered traversal never
// re-sorts.
type Program struct {
	lines map[int]string
	order []int
	parts map[int][]string // cached SplitStatements(lines[n]), invalidated on edit
}

// NewProgram returns an empty program store.
func NewProgram() *Program {
	return &Program{
		lines: make(map[int]string),
		order: nil,
		parts: make(map[int][]string),
	}
}

// Set stores text at line n, inserting in sorted position if n is new.
// Setting an existing line to empty text deletes it (spec.md §3, §6).
func (p *Program) Set(n int, text string) {
	if strings.TrimSpace(text) == "" {
		p.delete(n)
		return
	}
	if _, ok := p.lines[n]; !ok {
		idx := sort.SearchInts(p.order, n)
		p.order = append(p.order, 0)
		copy(p.order[idx+1:], p.order[idx:])
		p.order[idx] = n
	}
	p.lines[n] = text
	delete(p.parts, n)
}

func (p *Program) delete(n int) {
	if _, ok := p.lines[n]; !ok {
		return
	}
	delete(p.lines, n)
	delete(p.parts, n)
	idx := sort.SearchInts(p.order, n)
	if idx < len(p.order) && p.order[idx] == n {
		p.order = append(p.order[:idx], p.order[idx+1:]...)
	}
}

// Get returns the raw text of line n.
func (p *Program) Get(n int) (string, bool) {
	s, ok := p.lines[n]
	return s, ok
}

// Has reports whether line n exists in the program.
func (p *Program) Has(n int) bool {
	_, ok := p.lines[n]
	return ok
}

// Lines returns all line numbers in ascending order (invariant 1).
func (p *Program) Lines() []int {
	return p.order
}

// NextLine returns the smallest line number strictly greater than n, and
// whether one exists.
func (p *Program) NextLine(n int) (int, bool) {
	idx := sort.SearchInts(p.order, n+1)
	if idx >= len(p.order) {
		return 0, false
	}
	return p.order[idx], true
}

// FirstLine returns the smallest line number in the program.
func (p *Program) FirstLine() (int, bool) {
	if len(p.order) == 0 {
		return 0, false
	}
	return p.order[0], true
}

// Parts returns the colon-split statement texts for line n, computing and
// caching them on first access.
func (p *Program) Parts(n int) []string {
	if parts, ok := p.parts[n]; ok {
		return parts
	}
	text := p.lines[n]
	parts := lexer.SplitStatements(text)
	p.parts[n] = parts
	return parts
}

// Clear removes every line (NEW, spec.md §3).
func (p *Program) Clear() {
	p.lines = make(map[int]string)
	p.order = nil
	p.parts = make(map[int][]string)
}

// List renders lines in the range [lo, hi] (inclusive) in the format LIST
// accepts: no bound means unbounded on that side.
func (p *Program) List(lo, hi int, hasLo, hasHi bool) []string {
	var out []string
	for _, n := range p.order {
		if hasLo && n < lo {
			continue
		}
		if hasHi && n > hi {
			continue
		}
		out = append(out, strings.TrimRight(strconv.Itoa(n)+" "+p.lines[n], " "))
	}
	return out
}
