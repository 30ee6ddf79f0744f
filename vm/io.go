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
	"bufio"
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/retrobasic/basic8/token"
	"github.com/retrobasic/basic8/value"
)

// readLineTimeout reads one line from i.In, honoring i.InputTimeout. A
// blocking read races a context deadline inside an errgroup; bufio.Reader
// has no cancellable Read, so a timed-out read is abandoned rather than
// forcibly interrupted.
func (i *Interpreter) readLineTimeout() (string, error) {
	if i.inBuf == nil {
		i.inBuf = bufio.NewReader(i.In)
	}
	type result struct {
		line string
		err  error
	}
	ch := make(chan result, 1)
	g, ctx := errgroup.WithContext(context.Background())
	g.Go(func() error {
		line, err := i.inBuf.ReadString('\n')
		ch <- result{line: strings.TrimRight(line, "\r\n"), err: err}
		return nil
	})
	if i.InputTimeout <= 0 {
		r := <-ch
		_ = g.Wait()
		if r.err != nil && r.line == "" {
			return "", newErr(ErrInputTimeout, "")
		}
		return r.line, nil
	}
	deadline, cancel := context.WithTimeout(ctx, i.InputTimeout)
	defer cancel()
	select {
	case r := <-ch:
		if r.err != nil && r.line == "" {
			return "", newErr(ErrInputTimeout, "")
		}
		return r.line, nil
	case <-deadline.Done():
		return "", newErr(ErrInputTimeout, "")
	}
}

// execInput implements INPUT [prompt;] vars (spec.md §4.D).
func (i *Interpreter) execInput(p *parser) error {
	if p.peek().Kind == token.STRING {
		prompt := p.next().Text
		if p.peek().Kind == token.OP && p.peek().Text == ";" {
			p.next()
		}
		i.writeOut(prompt)
	}
	i.writeOut("? ")

	var names []value.Name
	for {
		if p.peek().Kind != token.IDENT {
			return newErr(ErrSyntax, "")
		}
		names = append(names, value.Canon(p.next().Text))
		if p.peek().Kind == token.OP && p.peek().Text == "," {
			p.next()
			continue
		}
		break
	}

	line, err := i.readLineTimeout()
	if err != nil {
		return err
	}
	parts := strings.Split(line, ",")
	if len(parts) < len(names) {
		return newErr(ErrSyntax, "Not Enough Input Values")
	}
	for k, name := range names {
		text := strings.TrimSpace(parts[k])
		if name.IsString() {
			if err := i.SetVar(name, value.String(text)); err != nil {
				return err
			}
			continue
		}
		n, _ := value.ParseNumericLiteral(text)
		if err := i.SetVar(name, value.Number(n)); err != nil {
			return err
		}
	}
	return nil
}

// execGet implements GET var: reads one line subject to the input timeout
// and keeps only its first byte (empty if the line is empty).
func (i *Interpreter) execGet(p *parser) error {
	if p.peek().Kind != token.IDENT {
		return newErr(ErrSyntax, "")
	}
	name := value.Canon(p.next().Text)
	line, err := i.readLineTimeout()
	if err != nil {
		return err
	}
	ch := ""
	if len(line) > 0 {
		ch = line[:1]
	}
	if name.IsString() {
		return i.SetVar(name, value.String(ch))
	}
	n, _ := value.ParseNumericLiteral(ch)
	return i.SetVar(name, value.Number(n))
}

// execRead implements READ vars: draws successive items from the DATA
// cursor.
func (i *Interpreter) execRead(p *parser) error {
	for {
		if p.peek().Kind != token.IDENT {
			return newErr(ErrSyntax, "")
		}
		name := value.Canon(p.next().Text)
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
		raw, err := i.nextData()
		if err != nil {
			return err
		}
		var v value.Value
		if name.IsString() {
			v = value.String(raw)
		} else {
			n, _ := value.ParseNumericLiteral(strings.TrimSpace(raw))
			v = value.Number(n)
		}
		if subs != nil {
			if err := i.setArrayElem(name, subs, v); err != nil {
				return err
			}
		} else if err := i.SetVar(name, v); err != nil {
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
