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

package vm_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/retrobasic/basic8/basic"
	"github.com/retrobasic/basic8/vm"
)

// runProgram loads src (one "NNN text" line per physical line) and runs it
// to completion, returning everything written to stdout.
func runProgram(t *testing.T, src string, opts ...vm.Option) string {
	t.Helper()
	prog := vm.NewProgram()
	require.NoError(t, basic.LoadSource(prog, src))
	var out bytes.Buffer
	allOpts := append([]vm.Option{vm.WithIO(strings.NewReader(""), &out)}, opts...)
	i := vm.New(prog, allOpts...)
	require.NoError(t, i.Run())
	return out.String()
}

// spec.md §8 scenario 1: a hello loop counts 1..3.
func TestScenarioHelloLoop(t *testing.T) {
	out := runProgram(t, `
10 FOR I=1 TO 3
20 PRINT "HI ";I
30 NEXT I
`)
	require.Equal(t, "HI  1 \nHI  2 \nHI  3 \n", out)
}

// spec.md §8 scenario 2: GOSUB resumes at the statement immediately after
// the call site on the same line, not at the start of the next line.
func TestScenarioGosubMultiStatementReturn(t *testing.T) {
	out := runProgram(t, `
10 GOSUB 100:PRINT "B"
20 END
100 PRINT "A":RETURN
`)
	require.Equal(t, "A\nB\n", out)
}

// spec.md §8 scenario 3: DEF FN evaluates its stored expression against the
// call-time argument binding.
func TestScenarioDefFn(t *testing.T) {
	out := runProgram(t, `
10 DEF FN S(X)=X*X
20 PRINT FN S(7)
`)
	require.Equal(t, " 49 \n", out)
}

// spec.md §8 scenario 4: POKE 49235,0 and POKE -16301,0 are the same
// soft switch (negative address folds to the same byte), observed at the
// renderer boundary rather than via PEEK.
func TestScenarioSoftSwitchEquivalence(t *testing.T) {
	prog := vm.NewProgram()
	require.NoError(t, basic.LoadSource(prog, "10 POKE 49235,0"))
	i := vm.New(prog, vm.WithIO(strings.NewReader(""), &bytes.Buffer{}))
	require.NoError(t, i.Run())
	require.True(t, i.Render.Mixed)

	prog2 := vm.NewProgram()
	require.NoError(t, basic.LoadSource(prog2, "10 POKE -16301,0"))
	i2 := vm.New(prog2, vm.WithIO(strings.NewReader(""), &bytes.Buffer{}))
	require.NoError(t, i2.Run())
	require.True(t, i2.Render.Mixed)
}

// spec.md §8 scenario 5: an ONERR handler latches the failing line into
// memory 218/219 and transfers control to the handler, instead of
// terminating the run with the two-line diagnostic.
func TestScenarioOnerrTrap(t *testing.T) {
	out := runProgram(t, `
10 ONERR GOTO 100
20 X=1/0
30 END
100 PRINT "CAUGHT ";PEEK(218)+PEEK(219)*256
`)
	require.Equal(t, "CAUGHT  20 \n", out)
}

// spec.md §8 scenario 6: array references auto-dimension to bound 10 on
// first use, and an out-of-bounds subscript raises Bad Subscript without
// losing the output already produced earlier in the run.
func TestScenarioAutoDimAndBounds(t *testing.T) {
	out := runProgram(t, `
10 PRINT A(7)
20 PRINT A(7)
30 PRINT A(20)
`)
	require.True(t, strings.HasPrefix(out, " 0 \n 0 \n"))
	require.Contains(t, out, "SYNTAX ERROR IN 30")
	require.Contains(t, out, "Bad Subscript")
}

// Division by zero is a distinct, catchable error kind.
func TestDivisionByZeroUncaught(t *testing.T) {
	out := runProgram(t, `
10 PRINT 1/0
`)
	require.Contains(t, out, "SYNTAX ERROR IN 10")
	require.Contains(t, out, "Division By Zero")
}

// NEXT without a matching FOR is a distinct error.
func TestNextWithoutFor(t *testing.T) {
	out := runProgram(t, `
10 NEXT I
`)
	require.Contains(t, out, "Next Without For")
}
