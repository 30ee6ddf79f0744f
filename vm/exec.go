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
	"fmt"
	"strings"

	"github.com/retrobasic/basic8/lexer"
	"github.com/retrobasic/basic8/memory"
	"github.com/retrobasic/basic8/render"
	"github.com/retrobasic/basic8/token"
	"github.com/retrobasic/basic8/value"
)

// execContext identifies the statement part currently executing, so
// GOSUB/FOR can record a correct resume point.
type execContext struct {
	Line, Part, NumParts int
}

// execStatement tokenizes and dispatches one statement part.
func (i *Interpreter) execStatement(ctx execContext, text string) error {
	toks, err := lexer.Tokenize(text)
	if err != nil {
		return err
	}
	return i.dispatch(ctx, toks)
}

func (i *Interpreter) dispatch(ctx execContext, toks []token.Token) error {
	if toks[0].Kind == token.EOF {
		return nil
	}
	p := &parser{i: i, toks: toks, pos: 0}
	word := p.peek().Text
	if p.peek().Kind == token.IDENT {
		p.next()
	} else {
		word = ""
	}

	switch word {
	case "":
		return newErr(ErrSyntax, "")
	case "REM":
		return nil
	case "LET":
		return i.execAssign(p)
	case "PRINT":
		return i.execPrint(p)
	case "GOTO":
		n, err := p.parseOr()
		if err != nil {
			return err
		}
		return i.jumpToLine(int(n.Num))
	case "GOSUB":
		n, err := p.parseOr()
		if err != nil {
			return err
		}
		retLine, retPart := nextPart(ctx)
		i.gosubStack = append(i.gosubStack, gosubFrame{ReturnLine: retLine, ReturnPart: retPart})
		return i.jumpToLine(int(n.Num))
	case "RETURN":
		if len(i.gosubStack) == 0 {
			return newErr(ErrReturnWithoutGosub, "")
		}
		top := i.gosubStack[len(i.gosubStack)-1]
		i.gosubStack = i.gosubStack[:len(i.gosubStack)-1]
		i.pc = pos{Line: top.ReturnLine, Part: top.ReturnPart}
		i.jumped = true
		return nil
	case "IF":
		return i.execIf(ctx, p)
	case "FOR":
		return i.execFor(ctx, p)
	case "NEXT":
		return i.execNext(p)
	case "INPUT":
		return i.execInput(p)
	case "GET":
		return i.execGet(p)
	case "READ":
		return i.execRead(p)
	case "DATA":
		return nil // passive; collected once at RUN (spec.md §4.D)
	case "RESTORE":
		if p.peek().Kind == token.NUMBER {
			n, err := p.parseOr()
			if err != nil {
				return err
			}
			i.restoreData(int(n.Num), true)
		} else {
			i.restoreData(0, false)
		}
		return nil
	case "DIM":
		return i.execDim(p)
	case "ON":
		return i.execOn(ctx, p)
	case "DEF":
		return i.execDefFn(p)
	case "ONERR":
		return i.execOnerr(p)
	case "RESUME":
		return i.execResume()
	case "POKE":
		return i.execPoke(p)
	case "CALL":
		_, err := p.parseOr()
		return err // recognized ROM-address side effects are not modeled; evaluate for side effects and ignore
	case "HIMEM:":
		n, err := p.parseOr()
		if err != nil {
			return err
		}
		i.Mem.PokeWord(memory.AddrHimemLo, int(n.Num))
		return nil
	case "LOMEM:":
		n, err := p.parseOr()
		if err != nil {
			return err
		}
		i.Mem.PokeWord(memory.AddrLomemLo, int(n.Num))
		return nil
	case "END", "STOP":
		i.ended = true
		i.lastLine, i.hasLast = ctx.Line, true
		return nil
	case "CONT":
		return i.prepareCont()
	case "TRACE":
		i.Trace = true
		return nil
	case "NOTRACE":
		i.Trace = false
		return nil
	case "WAIT":
		_, _ = p.parseOr()
		return nil
	case "PR", "IN":
		// PR#/IN# tokenize as IDENT plus a separate "#" OP, since '#' is not
		// an identifier rune (spec.md §4.D: host-boundary no-op).
		if p.peek().Kind == token.OP && p.peek().Text == "#" {
			p.next()
		}
		_, _ = p.parseOr()
		return nil
	case "LOAD", "SAVE":
		return nil // host-boundary statements (spec.md §4.D); no-ops in the core
	case "NEW":
		i.NewProgram()
		return nil
	case "CLEAR":
		i.ClearState()
		return nil
	case "RUN":
		i.resetState()
		if first, ok := i.Program.FirstLine(); ok {
			i.pc = pos{Line: first, Part: 0}
		} else {
			i.ended = true
		}
		i.jumped = true
		return nil
	case "LIST":
		return i.execList(p)
	case "HOME":
		i.Cmds.ClearText()
		i.Render.CursorX, i.Render.CursorY = 0, 0
		i.col = 0
		return nil
	case "TEXT":
		i.Render.Mode = render.ModeText
		return nil
	case "GR":
		i.Render.Mode = render.ModeGR
		return nil
	case "HGR":
		i.Render.Mode = render.ModeHGR
		i.Render.Page2 = false
		return nil
	case "HGR2":
		i.Render.Mode = render.ModeHGR2
		i.Render.Page2 = true
		return nil
	case "PLOT":
		return i.execPlot(p)
	case "HLIN":
		return i.execHlin(p)
	case "VLIN":
		return i.execVlin(p)
	case "HPLOT":
		return i.execHplot(p)
	case "HTAB":
		n, err := p.parseOr()
		if err != nil {
			return err
		}
		i.Render.CursorX = int(n.Num) - 1
		i.col = int(n.Num) - 1
		i.Mem.Poke(memory.AddrCursorX, byte(i.Render.CursorX))
		return nil
	case "VTAB":
		n, err := p.parseOr()
		if err != nil {
			return err
		}
		i.Render.CursorY = int(n.Num) - 1
		i.Mem.Poke(memory.AddrCursorY, byte(i.Render.CursorY))
		return nil
	case "INVERSE":
		i.Render.Inverse = true
		i.Mem.Poke(memory.AddrTextAttr, 63)
		return nil
	case "NORMAL":
		i.Render.Inverse = false
		i.Render.Flash = false
		i.Mem.Poke(memory.AddrTextAttr, 255)
		return nil
	case "FLASH":
		i.Render.Flash = true
		i.Mem.Poke(memory.AddrTextAttr, 127)
		return nil
	case "DRAW":
		_, err := p.parseOr()
		return err
	case "XDRAW":
		_, err := p.parseOr()
		return err
	default:
		if p.peek().Kind == token.REL && p.peek().Text == "=" {
			switch word {
			case "COLOR":
				p.next()
				n, err := p.parseOr()
				if err != nil {
					return err
				}
				i.Render.LoResColor = int(n.Num) & 0xF
				return nil
			case "HCOLOR":
				p.next()
				n, err := p.parseOr()
				if err != nil {
					return err
				}
				i.Render.HiResColor = int(n.Num) & 0x7
				return nil
			case "SCALE":
				p.next()
				n, err := p.parseOr()
				if err != nil {
					return err
				}
				i.Render.Scale = int(n.Num)
				return nil
			case "ROT":
				p.next()
				n, err := p.parseOr()
				if err != nil {
					return err
				}
				i.Render.Rotation = int(n.Num)
				return nil
			}
		}
		return i.execAssignNamed(p, word)
	}
}

// nextPart returns the statement part immediately after ctx, used by GOSUB
// to compute its return address (spec.md §3, §8).
func nextPart(ctx execContext) (line, part int) {
	if ctx.Part+1 < ctx.NumParts {
		return ctx.Line, ctx.Part + 1
	}
	return ctx.Line, ctx.NumParts
}

// jumpToLine verifies n exists in the program and sets the PC there.
func (i *Interpreter) jumpToLine(n int) error {
	if !i.Program.Has(n) {
		return newErr(ErrUndefinedStatement, "%d", n)
	}
	i.pc = pos{Line: n, Part: 0}
	i.jumped = true
	return nil
}

// ExecDirect executes one line typed at the "]" prompt (spec.md §6): a
// statement with no leading line number, evaluated once outside the
// program store. RUN, GOTO and GOSUB set the PC and request a jump; when
// they do, ExecDirect hands control to the fetch/execute loop so the
// program actually runs instead of returning after a single no-op dispatch.
func (i *Interpreter) ExecDirect(text string) error {
	ctx := execContext{Line: 0, Part: 0, NumParts: 1}
	i.jumped = false
	if err := i.execStatement(ctx, text); err != nil {
		if !i.handleError(err) {
			return nil
		}
	}
	if i.jumped {
		// Run restarts at the first line unless already running, so mark it
		// running here to keep the PC this statement just set.
		if !i.running {
			i.data = collectData(i.Program)
			i.running = true
		}
		if i.Program.Has(i.pc.Line) {
			i.ended = false
		}
		return i.Run()
	}
	return nil
}

// execAssign handles a statement beginning with the explicit LET keyword.
func (i *Interpreter) execAssign(p *parser) error {
	if p.peek().Kind != token.IDENT {
		return newErr(ErrSyntax, "")
	}
	name := p.next().Text
	return i.execAssignNamed(p, name)
}

// execAssignNamed assigns to a scalar or array target already identified by
// name, with p positioned just after the name token.
func (i *Interpreter) execAssignNamed(p *parser, name string) error {
	canon := value.Canon(name)
	var subs []int
	if p.peek().Kind == token.OP && p.peek().Text == "(" {
		p.next()
		for {
			if p.peek().Kind == token.OP && p.peek().Text == ")" {
				break
			}
			v, err := p.parseOr()
			if err != nil {
				return err
			}
			subs = append(subs, int(v.Num))
			if p.peek().Kind == token.OP && p.peek().Text == "," {
				p.next()
				continue
			}
			break
		}
		if p.peek().Kind == token.OP && p.peek().Text == ")" {
			p.next()
		}
	}
	if !(p.peek().Kind == token.REL && p.peek().Text == "=") {
		return newErr(ErrSyntax, "")
	}
	p.next()
	v, err := p.parseOr()
	if err != nil {
		return err
	}
	if subs != nil {
		return i.setArrayElem(canon, subs, v)
	}
	return i.SetVar(canon, v)
}

// execIf implements IF cond THEN x (spec.md §4.D). A false condition skips
// to the next program line, not merely the next statement part.
func (i *Interpreter) execIf(ctx execContext, p *parser) error {
	cond, err := p.parseOr()
	if err != nil {
		return err
	}
	if p.peek().Kind == token.IDENT && p.peek().Text == "THEN" {
		p.next()
	}
	if !cond.Truthy() {
		next, ok := i.Program.NextLine(ctx.Line)
		if !ok {
			i.ended = true
			return nil
		}
		i.pc = pos{Line: next, Part: 0}
		i.jumped = true
		return nil
	}
	if p.peek().Kind == token.NUMBER {
		n, err := p.parseOr()
		if err != nil {
			return err
		}
		return i.jumpToLine(int(n.Num))
	}
	return i.dispatch(ctx, p.toks[p.pos:])
}

// execDim declares one or more arrays with evaluated per-axis bounds.
func (i *Interpreter) execDim(p *parser) error {
	for {
		if p.peek().Kind != token.IDENT {
			return newErr(ErrSyntax, "")
		}
		name := value.Canon(p.next().Text)
		var bounds []int
		if p.peek().Kind == token.OP && p.peek().Text == "(" {
			p.next()
			for {
				if p.peek().Kind == token.OP && p.peek().Text == ")" {
					break
				}
				v, err := p.parseOr()
				if err != nil {
					return err
				}
				bounds = append(bounds, int(v.Num))
				if p.peek().Kind == token.OP && p.peek().Text == "," {
					p.next()
					continue
				}
				break
			}
			if p.peek().Kind == token.OP && p.peek().Text == ")" {
				p.next()
			}
		}
		if err := i.dimArray(name, bounds); err != nil {
			return err
		}
		if p.peek().Kind == token.OP && p.peek().Text == "," {
			p.next()
			continue
		}
		break
	}
	return nil
}

// execOn implements ON expr GOTO/GOSUB n1,n2,... (spec.md §4.D): out of
// range falls through with no jump.
func (i *Interpreter) execOn(ctx execContext, p *parser) error {
	v, err := p.parseOr()
	if err != nil {
		return err
	}
	isGosub := false
	if p.peek().Kind == token.IDENT && p.peek().Text == "GOSUB" {
		isGosub = true
		p.next()
	} else if p.peek().Kind == token.IDENT && p.peek().Text == "GOTO" {
		p.next()
	} else {
		return newErr(ErrSyntax, "")
	}
	var targets []int
	for {
		n, err := p.parseOr()
		if err != nil {
			return err
		}
		targets = append(targets, int(n.Num))
		if p.peek().Kind == token.OP && p.peek().Text == "," {
			p.next()
			continue
		}
		break
	}
	sel := int(v.Num)
	if sel < 1 || sel > len(targets) {
		return nil
	}
	target := targets[sel-1]
	if isGosub {
		retLine, retPart := nextPart(ctx)
		i.gosubStack = append(i.gosubStack, gosubFrame{ReturnLine: retLine, ReturnPart: retPart})
	}
	return i.jumpToLine(target)
}

// execDefFn stores a DEF FN X(p) = expr definition (spec.md §3, §4.D).
func (i *Interpreter) execDefFn(p *parser) error {
	if !(p.peek().Kind == token.IDENT && p.peek().Text == "FN") {
		return newErr(ErrSyntax, "")
	}
	p.next()
	if p.peek().Kind != token.IDENT {
		return newErr(ErrSyntax, "")
	}
	fname := value.Canon("FN" + p.next().Text)
	if !(p.peek().Kind == token.OP && p.peek().Text == "(") {
		return newErr(ErrSyntax, "")
	}
	p.next()
	if p.peek().Kind != token.IDENT {
		return newErr(ErrSyntax, "")
	}
	param := value.Canon(p.next().Text)
	if p.peek().Kind == token.OP && p.peek().Text == ")" {
		p.next()
	}
	if !(p.peek().Kind == token.REL && p.peek().Text == "=") {
		return newErr(ErrSyntax, "")
	}
	p.next()
	var sb strings.Builder
	for _, t := range p.toks[p.pos:] {
		if t.Kind == token.EOF {
			break
		}
		sb.WriteString(t.Text)
		sb.WriteByte(' ')
	}
	i.userFuncs[fname] = userFunc{Param: param, Expr: sb.String()}
	return nil
}

// execOnerr installs (or, with GOTO 0, disarms) the ONERR handler.
func (i *Interpreter) execOnerr(p *parser) error {
	if p.peek().Kind == token.IDENT && p.peek().Text == "GOTO" {
		p.next()
	}
	n, err := p.parseOr()
	if err != nil {
		return err
	}
	if int(n.Num) == 0 {
		i.onerrArmed = false
		return nil
	}
	i.onerrArmed = true
	i.onerrLine = int(n.Num)
	return nil
}

// execResume implements RESUME: clear the latched error and continue from
// the line where it occurred.
func (i *Interpreter) execResume() error {
	if !i.hasLastErr {
		return newErr(ErrCantResume, "")
	}
	i.hasLastErr = false
	i.Mem.ClearError()
	i.pc = pos{Line: i.lastErrLine, Part: 0}
	i.jumped = true
	return nil
}

// execPoke writes one byte, applying any soft-switch side effect.
func (i *Interpreter) execPoke(p *parser) error {
	addr, err := p.parseOr()
	if err != nil {
		return err
	}
	if !(p.peek().Kind == token.OP && p.peek().Text == ",") {
		return newErr(ErrSyntax, "")
	}
	p.next()
	v, err := p.parseOr()
	if err != nil {
		return err
	}
	i.Mem.Poke(int(addr.Num), byte(int(v.Num)))
	i.applySoftSwitchToRender(int(addr.Num))
	return nil
}

// execList implements LIST [lo[-hi]].
func (i *Interpreter) execList(p *parser) error {
	var lo, hi int
	hasLo, hasHi := false, false
	if p.peek().Kind == token.NUMBER {
		n, err := p.parseOr()
		if err != nil {
			return err
		}
		lo, hasLo = int(n.Num), true
		hi = lo
		hasHi = true
	}
	if p.peek().Kind == token.OP && p.peek().Text == "-" {
		p.next()
		hasHi = false
		if p.peek().Kind == token.NUMBER {
			n, err := p.parseOr()
			if err != nil {
				return err
			}
			hi, hasHi = int(n.Num), true
		}
	}
	for _, line := range i.Program.List(lo, hi, hasLo, hasHi) {
		fmt.Fprintln(i.Out, line)
	}
	return nil
}
