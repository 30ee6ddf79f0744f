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

// Package basic loads a BASIC program into a vm.Program and drives the
// interactive "]" prompt session on top of it.
package basic

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/retrobasic/basic8/vm"
)

// LoadSource parses plain program text (spec.md §6: one logical line per
// physical line, leading non-negative integer line number, `//` starts a
// host-convention comment line) into prog.
func LoadSource(prog *vm.Program, src string) error {
	for n, raw := range strings.Split(src, "\n") {
		line := strings.TrimRight(raw, "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "//") {
			continue
		}
		num, rest, err := splitLineNumber(trimmed)
		if err != nil {
			return errors.Wrapf(err, "physical line %d", n+1)
		}
		prog.Set(num, rest)
	}
	return nil
}

// splitLineNumber pulls the leading line number off a program line, per
// spec.md §6.
func splitLineNumber(s string) (int, string, error) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, "", errors.Errorf("missing line number in %q", s)
	}
	n, err := strconv.Atoi(s[:i])
	if err != nil {
		return 0, "", err
	}
	return n, strings.TrimLeft(s[i:], " \t"), nil
}

// LoadFile reads all of r and loads it into prog via LoadSource.
func LoadFile(prog *vm.Program, r io.Reader) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return errors.Wrap(err, "reading program source")
	}
	return LoadSource(prog, string(b))
}

// directLineNumber reports whether s begins with a line number, meaning it
// edits the program store rather than executing immediately.
func directLineNumber(s string) (int, string, bool) {
	trimmed := strings.TrimSpace(s)
	n, rest, err := splitLineNumber(trimmed)
	if err != nil {
		return 0, "", false
	}
	return n, rest, true
}

// REPL drives the "]" prompt (spec.md §6): lines beginning with a line
// number edit the program store; anything else executes immediately via
// vm.Interpreter.ExecDirect. Returns on io.EOF from in.
func REPL(i *vm.Interpreter, prog *vm.Program, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	for {
		io.WriteString(out, "]")
		if !scanner.Scan() {
			return nil
		}
		line := scanner.Text()
		if n, rest, ok := directLineNumber(line); ok {
			prog.Set(n, rest)
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := i.ExecDirect(line); err != nil {
			io.WriteString(out, err.Error()+"\n")
		}
	}
}
