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
	"github.com/retrobasic/basic8/memory"
	"github.com/retrobasic/basic8/token"
)

// applySoftSwitchToRender copies soft-switch state into the abstract
// render.State after a POKE touches a cursor, text-attribute or
// graphics-mode soft switch (spec.md §8 scenario 4: POKE 49235,0 and
// POKE -16301,0 are equivalent). For the 49232-49239 switches only the
// mixed and page-2 flags are copied; render.State.Mode is not changed by
// the text/graphics or lo-res/hi-res switches, which are tracked only in
// Mem.Gfx.
func (i *Interpreter) applySoftSwitchToRender(addr int) {
	a := addr % memory.Size
	if a < 0 {
		a += memory.Size
	}
	switch {
	case a == memory.AddrCursorX:
		i.Render.CursorX = int(i.Mem.CursorX)
	case a == memory.AddrCursorY:
		i.Render.CursorY = int(i.Mem.CursorY)
	case a == memory.AddrTextAttr:
		i.applyTextAttrToRender()
	case a >= memory.AddrGfxSwLo && a <= memory.AddrGfxSwHi:
		i.Render.Mixed = i.Mem.Gfx.Mixed
		i.Render.Page2 = i.Mem.Gfx.Page2
	}
}

// applyTextAttrToRender decodes the text attribute byte at address 50 (63 ->
// inverse, 127 -> flash, 255 -> normal) into the render state, the reverse
// direction of INVERSE/NORMAL/FLASH poking that same address.
func (i *Interpreter) applyTextAttrToRender() {
	switch i.Mem.TextAttr {
	case 63:
		i.Render.Inverse = true
		i.Render.Flash = false
	case 127:
		i.Render.Flash = true
		i.Render.Inverse = false
	case 255:
		i.Render.Inverse = false
		i.Render.Flash = false
	}
}

// execPlot implements PLOT x,y (lo-res).
func (i *Interpreter) execPlot(p *parser) error {
	x, err := p.parseOr()
	if err != nil {
		return err
	}
	if !(p.peek().Kind == token.OP && p.peek().Text == ",") {
		return newErr(ErrSyntax, "")
	}
	p.next()
	y, err := p.parseOr()
	if err != nil {
		return err
	}
	i.Cmds.Plot(int(x.Num), int(y.Num), i.Render.LoResColor)
	return nil
}

// execHlin implements HLIN x1,x2 AT y.
func (i *Interpreter) execHlin(p *parser) error {
	x1, err := p.parseOr()
	if err != nil {
		return err
	}
	if !(p.peek().Kind == token.OP && p.peek().Text == ",") {
		return newErr(ErrSyntax, "")
	}
	p.next()
	x2, err := p.parseOr()
	if err != nil {
		return err
	}
	if p.peek().Kind == token.IDENT && p.peek().Text == "AT" {
		p.next()
	}
	y, err := p.parseOr()
	if err != nil {
		return err
	}
	i.Cmds.Line(int(x1.Num), int(y.Num), int(x2.Num), int(y.Num), i.Render.LoResColor)
	return nil
}

// execVlin implements VLIN y1,y2 AT x.
func (i *Interpreter) execVlin(p *parser) error {
	y1, err := p.parseOr()
	if err != nil {
		return err
	}
	if !(p.peek().Kind == token.OP && p.peek().Text == ",") {
		return newErr(ErrSyntax, "")
	}
	p.next()
	y2, err := p.parseOr()
	if err != nil {
		return err
	}
	if p.peek().Kind == token.IDENT && p.peek().Text == "AT" {
		p.next()
	}
	x, err := p.parseOr()
	if err != nil {
		return err
	}
	i.Cmds.Line(int(x.Num), int(y1.Num), int(x.Num), int(y2.Num), i.Render.LoResColor)
	return nil
}

// execHplot implements the three HPLOT forms of spec.md §4.D, including the
// load-bearing "last plot color" rule for the bare HPLOT TO form.
func (i *Interpreter) execHplot(p *parser) error {
	if p.peek().Kind == token.IDENT && p.peek().Text == "TO" {
		p.next()
		x2, err := p.parseOr()
		if err != nil {
			return err
		}
		if !(p.peek().Kind == token.OP && p.peek().Text == ",") {
			return newErr(ErrSyntax, "")
		}
		p.next()
		y2, err := p.parseOr()
		if err != nil {
			return err
		}
		col := i.Render.LastPlotCol
		i.Cmds.Line(i.Render.LastPlotX, i.Render.LastPlotY, int(x2.Num), int(y2.Num), col)
		i.Render.LastPlotX, i.Render.LastPlotY = int(x2.Num), int(y2.Num)
		return nil
	}

	x1, err := p.parseOr()
	if err != nil {
		return err
	}
	if !(p.peek().Kind == token.OP && p.peek().Text == ",") {
		return newErr(ErrSyntax, "")
	}
	p.next()
	y1, err := p.parseOr()
	if err != nil {
		return err
	}
	col := i.Render.HiResColor
	i.Cmds.Plot(int(x1.Num), int(y1.Num), col)
	i.Render.LastPlotX, i.Render.LastPlotY = int(x1.Num), int(y1.Num)
	i.Render.LastPlotCol = col

	if p.peek().Kind == token.IDENT && p.peek().Text == "TO" {
		p.next()
		x2, err := p.parseOr()
		if err != nil {
			return err
		}
		if !(p.peek().Kind == token.OP && p.peek().Text == ",") {
			return newErr(ErrSyntax, "")
		}
		p.next()
		y2, err := p.parseOr()
		if err != nil {
			return err
		}
		i.Cmds.Line(int(x1.Num), int(y1.Num), int(x2.Num), int(y2.Num), col)
		i.Render.LastPlotX, i.Render.LastPlotY = int(x2.Num), int(y2.Num)
	}
	return nil
}
