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

	"github.com/retrobasic/basic8/token"
	"github.com/retrobasic/basic8/value"
)

// execPrint implements PRINT's item list, separators, TAB(n) and SPC(n)
// (spec.md §4.D). i.col tracks the output column across the whole PRINT
// statement (and survives between statements, matching the dialect's
// shared cursor).
func (i *Interpreter) execPrint(p *parser) error {
	trailingSep := false
	for {
		t := p.peek()
		if t.Kind == token.EOF {
			break
		}
		if t.Kind == token.OP && t.Text == "," {
			p.next()
			i.printTabZone()
			trailingSep = true
			continue
		}
		if t.Kind == token.OP && t.Text == ";" {
			p.next()
			trailingSep = true
			continue
		}
		if t.Kind == token.IDENT && t.Text == "TAB" {
			p.next()
			n, err := i.parseParenArg(p)
			if err != nil {
				return err
			}
			i.printTabTo(int(n))
			trailingSep = false
			continue
		}
		if t.Kind == token.IDENT && t.Text == "SPC" {
			p.next()
			n, err := i.parseParenArg(p)
			if err != nil {
				return err
			}
			i.writeOut(spaces(int(n)))
			trailingSep = false
			continue
		}
		v, err := p.parseOr()
		if err != nil {
			return err
		}
		i.writeOut(formatPrintItem(v))
		trailingSep = false
	}
	if !trailingSep {
		fmt.Fprintln(i.Out)
		i.col = 0
	}
	return nil
}

func (i *Interpreter) parseParenArg(p *parser) (float64, error) {
	if !(p.peek().Kind == token.OP && p.peek().Text == "(") {
		return 0, newErr(ErrSyntax, "")
	}
	p.next()
	v, err := p.parseOr()
	if err != nil {
		return 0, err
	}
	if p.peek().Kind == token.OP && p.peek().Text == ")" {
		p.next()
	}
	return v.Num, nil
}

func formatPrintItem(v value.Value) string {
	if v.IsString {
		return v.Str
	}
	return value.FormatPrint(v.Num)
}

func spaces(n int) string {
	if n < 0 {
		n = 0
	}
	b := make([]byte, n)
	for k := range b {
		b[k] = ' '
	}
	return string(b)
}

// writeOut writes s to output and advances the shared column counter.
func (i *Interpreter) writeOut(s string) {
	fmt.Fprint(i.Out, s)
	for _, r := range s {
		if r == '\n' {
			i.col = 0
		} else {
			i.col++
		}
	}
}

// printTabZone advances to the next 10-column tab zone (comma separator).
func (i *Interpreter) printTabZone() {
	next := ((i.col / 10) + 1) * 10
	i.writeOut(spaces(next - i.col))
}

// printTabTo pads to absolute column n (1-based), only if past the current
// column (TAB(n)).
func (i *Interpreter) printTabTo(n int) {
	target := n - 1
	if target > i.col {
		i.writeOut(spaces(target - i.col))
	}
}
