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

// Package render defines the abstract renderer-boundary state and command
// interface. The interpreter core mutates a Mode value and calls Commands
// methods; it never draws a pixel itself. Pixel rendering, the text raster
// and audio synthesis live entirely behind the Commands interface -- this
// package only carries the state the core must track and a thin mediator
// between the interpreter and a concrete display.
package render

// GraphicsMode is one of the dialect's four display modes.
type GraphicsMode int

const (
	ModeText GraphicsMode = iota
	ModeGR
	ModeHGR
	ModeHGR2
)

// State is the abstract renderer-boundary state spec.md §6 names: graphics
// mode, hi-res page, mixed flag, current colors, inverse/flash flags and
// cursor position. The interpreter core owns one State and mutates it from
// statement handlers (HOME, TEXT, GR, HGR, COLOR=, HCOLOR=, HTAB, VTAB,
// INVERSE, NORMAL, FLASH, SCALE=, ROT=, ...).
type State struct {
	Mode        GraphicsMode
	Page2       bool
	Mixed       bool
	LoResColor  int // 0..15
	HiResColor  int // 0..7
	Inverse     bool
	Flash       bool
	CursorX     int
	CursorY     int
	Scale       int
	Rotation    int
	LastPlotX   int
	LastPlotY   int
	LastPlotCol int // "last plot color", per the HPLOT TO load-bearing rule (§4.D)
}

// NewState returns the default renderer-boundary state: TEXT mode, page 1,
// not mixed, white-on-black equivalent color 0, cursor at the origin.
func NewState() *State {
	return &State{Mode: ModeText, Scale: 1}
}

// Commands is the set of drawing/output primitives the core emits (§6). A
// concrete renderer backend implements this; basic8's core ships only
// TextCommands, a no-drawing stub that keeps the boundary satisfied without
// producing any pixels, matching the explicit out-of-scope note in spec.md §1.
type Commands interface {
	Plot(x, y, color int)
	Line(x1, y1, x2, y2, color int)
	ClearText()
	ScrollTextUp()
	PutChar(ch byte)
}

// TextCommands is a minimal Commands implementation that only tracks that
// it was called; it performs no drawing. Suitable as the default backend
// when no real renderer is attached (e.g. running headless or under test).
type TextCommands struct {
	Plots  int
	Lines  int
	Output []byte
}

func (t *TextCommands) Plot(x, y, color int)             { t.Plots++ }
func (t *TextCommands) Line(x1, y1, x2, y2, color int)   { t.Lines++ }
func (t *TextCommands) ClearText()                       { t.Output = t.Output[:0] }
func (t *TextCommands) ScrollTextUp()                    {}
func (t *TextCommands) PutChar(ch byte)                  { t.Output = append(t.Output, ch) }
