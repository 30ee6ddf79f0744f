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
	"github.com/retrobasic/basic8/token"
	"github.com/retrobasic/basic8/value"
)

// execFor implements FOR v = a TO b [STEP s] (spec.md §3, §4.D): initialize
// v, and push a frame whose resume point is the statement right after FOR
// (the first statement of the loop body), where NEXT jumps back to.
func (i *Interpreter) execFor(ctx execContext, p *parser) error {
	if p.peek().Kind != token.IDENT {
		return newErr(ErrSyntax, "")
	}
	name := value.Canon(p.next().Text)
	if !(p.peek().Kind == token.REL && p.peek().Text == "=") {
		return newErr(ErrSyntax, "")
	}
	p.next()
	start, err := p.parseOr()
	if err != nil {
		return err
	}
	if p.peek().Kind != token.IDENT || p.peek().Text != "TO" {
		return newErr(ErrSyntax, "")
	}
	p.next()
	limit, err := p.parseOr()
	if err != nil {
		return err
	}
	step := 1.0
	if p.peek().Kind == token.IDENT && p.peek().Text == "STEP" {
		p.next()
		s, err := p.parseOr()
		if err != nil {
			return err
		}
		step = s.Num
	}
	if err := i.SetVar(name, value.Number(start.Num)); err != nil {
		return err
	}
	// Resume point is the statement immediately after FOR itself, i.e. the
	// loop body's first statement -- jumping back to FOR's own position
	// would re-run its initializer and the loop variable would never
	// advance. See DESIGN.md for this reading of spec.md §4.D/§9.
	retLine, retPart := nextPart(ctx)
	i.forStack = append(i.forStack, forFrame{
		Var:        name,
		Limit:      limit.Num,
		Step:       step,
		ResumeLine: retLine,
		ResumePart: retPart,
	})
	return nil
}

// execNext implements NEXT [v] (spec.md §4.D): advances the loop variable
// by step and either loops back to the FOR's resume point or falls through
// when the termination predicate holds.
func (i *Interpreter) execNext(p *parser) error {
	var want value.Name
	hasWant := false
	if p.peek().Kind == token.IDENT {
		want = value.Canon(p.next().Text)
		hasWant = true
	}
	if len(i.forStack) == 0 {
		return newErr(ErrNextWithoutFor, "")
	}
	top := i.forStack[len(i.forStack)-1]
	if hasWant && top.Var != want {
		return newErr(ErrNextWithoutFor, "%s", want)
	}
	v := i.GetVar(top.Var)
	v.Num += top.Step
	if err := i.SetVar(top.Var, v); err != nil {
		return err
	}
	done := (top.Step > 0 && v.Num > top.Limit) || (top.Step < 0 && v.Num < top.Limit)
	if done {
		i.forStack = i.forStack[:len(i.forStack)-1]
		return nil
	}
	i.pc = pos{Line: top.ResumeLine, Part: top.ResumePart}
	i.jumped = true
	return nil
}
