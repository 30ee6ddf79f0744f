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

// Package vm implements the BASIC dialect's interpreter core: the value
// model, program store, control-flow state, expression evaluator, statement
// executor and run loop.
//
// Construction follows a functional-options style (vm.New(prog, opts...));
// all mutable state lives on one *Interpreter passed by reference through
// the executor, never in package-level statics, so multiple Interpreters
// never interfere with each other.
package vm

import (
	"bufio"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/retrobasic/basic8/debug"
	"github.com/retrobasic/basic8/memory"
	"github.com/retrobasic/basic8/render"
	"github.com/retrobasic/basic8/value"
)

// array is the dense rectangular store backing one DIM'd (or auto-dimmed)
// array name (spec.md §3). Bounds holds the per-axis upper bound (so each
// axis has Bounds[k]+1 elements).
type array struct {
	Bounds []int
	Data   []value.Value
}

func newArray(bounds []int, isString bool) *array {
	size := 1
	for _, b := range bounds {
		size *= b + 1
	}
	data := make([]value.Value, size)
	if isString {
		for k := range data {
			data[k] = value.Str0
		}
	}
	return &array{Bounds: bounds, Data: data}
}

func (a *array) index(subs []int) (int, bool) {
	if len(subs) != len(a.Bounds) {
		return 0, false
	}
	idx := 0
	for k, s := range subs {
		if s < 0 || s > a.Bounds[k] {
			return 0, false
		}
		idx = idx*(a.Bounds[k]+1) + s
	}
	return idx, true
}

type forFrame struct {
	Var                    value.Name
	Limit, Step            float64
	ResumeLine, ResumePart int
}

type gosubFrame struct {
	ReturnLine, ReturnPart int
}

type userFunc struct {
	Param value.Name
	Expr  string
}

type pos struct {
	Line, Part int
}

// Interpreter holds every piece of mutable state for one program run:
// the program store, scalar/array stores, 64 KiB memory, control stacks,
// DATA cursor, user functions, renderer-boundary state, and I/O.
type Interpreter struct {
	Program *Program
	Mem     *memory.Memory
	Render  *render.State
	Cmds    render.Commands

	vars      map[value.Name]value.Value
	arrays    map[value.Name]*array
	userFuncs map[value.Name]userFunc

	forStack   []forFrame
	gosubStack []gosubFrame

	data    []string
	dataPos int

	pc       pos
	jumped   bool
	running  bool
	ended    bool
	lastLine int // for CONT (spec.md §9: resumes at the *next line*, not part)
	hasLast  bool

	onerrLine   int
	onerrArmed  bool
	lastErrLine int
	lastErrKind ErrorKind
	hasLastErr  bool

	col int // output column, shared by PRINT's comma/TAB/SPC and POS

	rnd     *rand.Rand
	lastRnd float64

	In  io.Reader
	Out io.Writer

	inBuf *bufio.Reader // lazily wraps In on first read

	InputTimeout   time.Duration
	ExecTimeout    time.Duration
	StatementDelay time.Duration

	Breakpoints *debug.Breakpoints
	Trace       bool

	insCount int64
	cancel   func() bool // polled every ~100 statements; true means stop cleanly

	startTime time.Time
}

// Option configures an Interpreter at construction time.
type Option func(*Interpreter)

// WithIO sets the input/output streams (default os.Stdin/os.Stdout).
func WithIO(in io.Reader, out io.Writer) Option {
	return func(i *Interpreter) { i.In = in; i.Out = out }
}

// WithTimeouts sets the execution and input timeouts (spec.md §6). Both
// replace New's defaults (no exec timeout, 30s input timeout); zero means
// "no timeout" for either.
func WithTimeouts(exec, input time.Duration) Option {
	return func(i *Interpreter) { i.ExecTimeout = exec; i.InputTimeout = input }
}

// WithStatementDelay sets a fixed sleep after each executed statement part,
// approximating period-correct timing (spec.md §1, §4.G).
func WithStatementDelay(d time.Duration) Option {
	return func(i *Interpreter) { i.StatementDelay = d }
}

// WithCancel installs a cooperative cancellation poll hook, checked every
// ~100 statements (spec.md §4.G, §5).
func WithCancel(poll func() bool) Option {
	return func(i *Interpreter) { i.cancel = poll }
}

// WithCommands attaches a renderer-boundary Commands sink; defaults to a
// render.TextCommands stub that draws nothing.
func WithCommands(c render.Commands) Option {
	return func(i *Interpreter) { i.Cmds = c }
}

// New creates an Interpreter over prog, ready to Run.
func New(prog *Program, opts ...Option) *Interpreter {
	i := &Interpreter{
		Program:      prog,
		Mem:          memory.New(),
		Render:       render.NewState(),
		vars:         make(map[value.Name]value.Value),
		arrays:       make(map[value.Name]*array),
		userFuncs:    make(map[value.Name]userFunc),
		In:           os.Stdin,
		Out:          os.Stdout,
		InputTimeout: 30 * time.Second,
		Breakpoints:  debug.NewBreakpoints(),
		rnd:          rand.New(rand.NewSource(1)),
	}
	i.Cmds = &render.TextCommands{}
	for _, o := range opts {
		o(i)
	}
	return i
}

// resetState clears variables, arrays, stacks, the DATA cursor and ONERR
// state -- the behavior spec.md §3/§9 pins for RUN (matching CLEAR), as
// distinct from NEW which also clears the program store.
func (i *Interpreter) resetState() {
	i.vars = make(map[value.Name]value.Value)
	i.arrays = make(map[value.Name]*array)
	i.userFuncs = make(map[value.Name]userFunc)
	i.forStack = nil
	i.gosubStack = nil
	i.dataPos = 0
	i.onerrArmed = false
	i.onerrLine = 0
	i.hasLastErr = false
	i.hasLast = false
	i.ended = false
	i.col = 0
	i.data = collectData(i.Program)
}

// NewProgram clears everything including the program store (spec.md §3,
// the NEW statement).
func (i *Interpreter) NewProgram() {
	i.Program.Clear()
	i.resetState()
}

// ClearState implements the CLEAR statement: same scope as resetState.
func (i *Interpreter) ClearState() {
	i.resetState()
}

// GetVar reads a scalar by canonical name, yielding the dialect's default
// (0 or "") for unset names (spec.md §3).
func (i *Interpreter) GetVar(name value.Name) value.Value {
	if v, ok := i.vars[name]; ok {
		return v
	}
	if name.IsString() {
		return value.Str0
	}
	return value.Num0
}

// SetVar writes a scalar, raising Type Mismatch if v's type disagrees with
// name's suffix-implied type (spec.md §3).
func (i *Interpreter) SetVar(name value.Name, v value.Value) error {
	if name.IsString() != v.IsString {
		return newErr(ErrTypeMismatch, "%s", name)
	}
	i.vars[name] = v
	return nil
}
