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
	"math"

	"github.com/retrobasic/basic8/lexer"
	"github.com/retrobasic/basic8/token"
	"github.com/retrobasic/basic8/value"
)

// tokenizeExpr tokenizes a bare expression's text, as stored for a DEF FN
// body.
func tokenizeExpr(s string) ([]token.Token, error) {
	return lexer.Tokenize(s)
}

// parser walks a token slice with a mutable cursor, shared by the evaluator
// and the statement executor so that expression parsing can stop exactly
// where a statement's own syntax (a separator, a keyword) takes over.
type parser struct {
	i    *Interpreter
	toks []token.Token
	pos  int
}

func (p *parser) peek() token.Token {
	return p.toks[p.pos]
}

func (p *parser) next() token.Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parser) atEnd() bool {
	return p.peek().Kind == token.EOF
}

// evalExpr evaluates one expression starting at toks[pos], per the nine
// precedence tiers of spec.md §4.C, and returns the value together with the
// token position just past the expression.
func evalExpr(i *Interpreter, toks []token.Token, pos int) (value.Value, int, error) {
	p := &parser{i: i, toks: toks, pos: pos}
	v, err := p.parseOr()
	return v, p.pos, err
}

func (p *parser) parseOr() (value.Value, error) {
	lhs, err := p.parseAnd()
	if err != nil {
		return value.Num0, err
	}
	for p.peek().Kind == token.OR {
		p.next()
		rhs, err := p.parseAnd()
		if err != nil {
			return value.Num0, err
		}
		lhs = value.Bool(lhs.Truthy() || rhs.Truthy())
	}
	return lhs, nil
}

func (p *parser) parseAnd() (value.Value, error) {
	lhs, err := p.parseCompare()
	if err != nil {
		return value.Num0, err
	}
	for p.peek().Kind == token.AND {
		p.next()
		rhs, err := p.parseCompare()
		if err != nil {
			return value.Num0, err
		}
		lhs = value.Bool(lhs.Truthy() && rhs.Truthy())
	}
	return lhs, nil
}

func (p *parser) parseCompare() (value.Value, error) {
	lhs, err := p.parseAddSub()
	if err != nil {
		return value.Num0, err
	}
	for p.peek().Kind == token.REL {
		op := p.next().Text
		rhs, err := p.parseAddSub()
		if err != nil {
			return value.Num0, err
		}
		lhs, err = compareValues(lhs, op, rhs)
		if err != nil {
			return value.Num0, err
		}
	}
	return lhs, nil
}

func compareValues(lhs value.Value, op string, rhs value.Value) (value.Value, error) {
	if lhs.IsString != rhs.IsString {
		return value.Num0, newErr(ErrTypeMismatch, "")
	}
	var cmp bool
	if lhs.IsString {
		switch op {
		case "=":
			cmp = lhs.Str == rhs.Str
		case "<>":
			cmp = lhs.Str != rhs.Str
		case "<":
			cmp = lhs.Str < rhs.Str
		case ">":
			cmp = lhs.Str > rhs.Str
		case "<=":
			cmp = lhs.Str <= rhs.Str
		case ">=":
			cmp = lhs.Str >= rhs.Str
		}
	} else {
		switch op {
		case "=":
			cmp = lhs.Num == rhs.Num
		case "<>":
			cmp = lhs.Num != rhs.Num
		case "<":
			cmp = lhs.Num < rhs.Num
		case ">":
			cmp = lhs.Num > rhs.Num
		case "<=":
			cmp = lhs.Num <= rhs.Num
		case ">=":
			cmp = lhs.Num >= rhs.Num
		}
	}
	return value.Bool(cmp), nil
}

func (p *parser) parseAddSub() (value.Value, error) {
	lhs, err := p.parseMulDiv()
	if err != nil {
		return value.Num0, err
	}
	for {
		t := p.peek()
		if t.Kind != token.OP || (t.Text != "+" && t.Text != "-") {
			break
		}
		op := p.next().Text
		rhs, err := p.parseMulDiv()
		if err != nil {
			return value.Num0, err
		}
		if op == "+" {
			if lhs.IsString || rhs.IsString {
				if lhs.IsString != rhs.IsString {
					return value.Num0, newErr(ErrTypeMismatch, "")
				}
				lhs = value.String(lhs.Str + rhs.Str)
				continue
			}
			lhs = value.Number(lhs.Num + rhs.Num)
			continue
		}
		if lhs.IsString || rhs.IsString {
			return value.Num0, newErr(ErrTypeMismatch, "")
		}
		lhs = value.Number(lhs.Num - rhs.Num)
	}
	return lhs, nil
}

func (p *parser) parseMulDiv() (value.Value, error) {
	lhs, err := p.parseExp()
	if err != nil {
		return value.Num0, err
	}
	for {
		t := p.peek()
		if t.Kind != token.OP || (t.Text != "*" && t.Text != "/") {
			break
		}
		op := p.next().Text
		rhs, err := p.parseExp()
		if err != nil {
			return value.Num0, err
		}
		if lhs.IsString || rhs.IsString {
			return value.Num0, newErr(ErrTypeMismatch, "")
		}
		if op == "*" {
			lhs = value.Number(lhs.Num * rhs.Num)
			continue
		}
		if rhs.Num == 0 {
			return value.Num0, newErr(ErrDivisionByZero, "")
		}
		lhs = value.Number(lhs.Num / rhs.Num)
	}
	return lhs, nil
}

func (p *parser) parseExp() (value.Value, error) {
	lhs, err := p.parseNot()
	if err != nil {
		return value.Num0, err
	}
	if p.peek().Kind == token.OP && p.peek().Text == "^" {
		p.next()
		rhs, err := p.parseExp() // right-associative
		if err != nil {
			return value.Num0, err
		}
		if lhs.IsString || rhs.IsString {
			return value.Num0, newErr(ErrTypeMismatch, "")
		}
		return value.Number(math.Pow(lhs.Num, rhs.Num)), nil
	}
	return lhs, nil
}

func (p *parser) parseNot() (value.Value, error) {
	if p.peek().Kind == token.NOT {
		p.next()
		v, err := p.parseNot()
		if err != nil {
			return value.Num0, err
		}
		return value.Bool(!v.Truthy()), nil
	}
	return p.parseUnary()
}

func (p *parser) parseUnary() (value.Value, error) {
	t := p.peek()
	if t.Kind == token.OP && t.Text == "-" {
		p.next()
		v, err := p.parseUnary()
		if err != nil {
			return value.Num0, err
		}
		if v.IsString {
			return value.Num0, newErr(ErrTypeMismatch, "")
		}
		return value.Number(-v.Num), nil
	}
	if t.Kind == token.OP && t.Text == "+" {
		p.next()
		return p.parseUnary()
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (value.Value, error) {
	t := p.peek()
	switch t.Kind {
	case token.NUMBER:
		p.next()
		n, _ := value.ParseNumericLiteral(t.Text)
		return value.Number(n), nil

	case token.STRING:
		p.next()
		return value.String(t.Text), nil

	case token.OP:
		if t.Text == "(" {
			p.next()
			v, err := p.parseOr()
			if err != nil {
				return value.Num0, err
			}
			if p.peek().Kind == token.OP && p.peek().Text == ")" {
				p.next()
			}
			return v, nil
		}
		return value.Num0, newErr(ErrSyntax, "")

	case token.IDENT:
		return p.parseIdentPrimary()
	}
	return value.Num0, newErr(ErrSyntax, "")
}

func (p *parser) parseIdentPrimary() (value.Value, error) {
	name := p.next().Text

	if name == "FN" {
		if p.peek().Kind != token.IDENT {
			return value.Num0, newErr(ErrSyntax, "")
		}
		fname := value.Canon("FN" + p.next().Text)
		var arg value.Value
		if p.peek().Kind == token.OP && p.peek().Text == "(" {
			p.next()
			v, err := p.parseOr()
			if err != nil {
				return value.Num0, err
			}
			arg = v
			if p.peek().Kind == token.OP && p.peek().Text == ")" {
				p.next()
			}
		}
		return p.i.callUserFunc(fname, arg)
	}

	if isBuiltinName(name) {
		var args []value.Value
		if p.peek().Kind == token.OP && p.peek().Text == "(" {
			p.next()
			for {
				if p.peek().Kind == token.OP && p.peek().Text == ")" {
					break
				}
				v, err := p.parseOr()
				if err != nil {
					return value.Num0, err
				}
				args = append(args, v)
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
		return callBuiltin(p.i, name, args)
	}

	canon := value.Canon(name)
	if p.peek().Kind == token.OP && p.peek().Text == "(" {
		p.next()
		var subs []int
		for {
			if p.peek().Kind == token.OP && p.peek().Text == ")" {
				break
			}
			v, err := p.parseOr()
			if err != nil {
				return value.Num0, err
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
		return p.i.getArrayElem(canon, subs)
	}
	return p.i.GetVar(canon), nil
}
