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
	"time"

	"github.com/pkg/errors"
)

// pollEvery is how often (in executed statement parts) the run loop checks
// the cooperative cancellation hook (spec.md §4.G, §5).
const pollEvery = 100

// Run drives the fetch/execute loop from the current program counter (or
// the first program line, on a fresh Interpreter) until the program ends,
// a timeout fires, cancellation is observed, or an uncaught error
// terminates the run. A panic during statement dispatch is recovered and
// returned as a plain (non-*Error) error rather than crashing the host.
func (i *Interpreter) Run() (err error) {
	defer func() {
		if e := recover(); e != nil {
			err = errors.Errorf("%v", e)
		}
	}()

	if !i.running {
		first, ok := i.Program.FirstLine()
		if !ok {
			return nil
		}
		i.pc = pos{Line: first, Part: 0}
		i.data = collectData(i.Program)
	}
	i.running = true
	i.startTime = time.Now()

	for !i.ended {
		if i.ExecTimeout > 0 && time.Since(i.startTime) > i.ExecTimeout {
			fmt.Fprintln(i.Out, "SYNTAX ERROR IN", i.pc.Line)
			fmt.Fprintln(i.Out, "Detail: execution timeout exceeded")
			break
		}
		i.insCount++
		if i.insCount%pollEvery == 0 && i.cancel != nil && i.cancel() {
			break
		}

		if bp, hit := i.Breakpoints.Hit(i.pc.Line); hit && i.Trace {
			fmt.Fprintf(i.Out, "BREAK AT %d (hit %d)\n", i.pc.Line, bp.HitCount)
		}

		parts := i.Program.Parts(i.pc.Line)
		if i.pc.Part >= len(parts) {
			next, ok := i.Program.NextLine(i.pc.Line)
			if !ok {
				i.ended = true
				break
			}
			i.pc = pos{Line: next, Part: 0}
			continue
		}

		ctx := execContext{Line: i.pc.Line, Part: i.pc.Part, NumParts: len(parts)}
		text := parts[i.pc.Part]
		i.jumped = false
		if i.Trace {
			fmt.Fprintf(i.Out, "#%d: %s\n", ctx.Line, text)
		}
		execErr := i.execStatement(ctx, text)
		if execErr != nil {
			if handled := i.handleError(execErr); !handled {
				break
			}
			continue
		}

		if !i.jumped {
			if ctx.Part+1 < ctx.NumParts {
				i.pc = pos{Line: ctx.Line, Part: ctx.Part + 1}
			} else {
				i.lastLine, i.hasLast = ctx.Line, true
				next, ok := i.Program.NextLine(ctx.Line)
				if !ok {
					i.ended = true
					break
				}
				i.pc = pos{Line: next, Part: 0}
			}
		}

		if i.StatementDelay > 0 {
			time.Sleep(i.StatementDelay)
		}
	}
	i.running = false
	return nil
}

// prepareCont implements CONT (spec.md §4.D, §9): resume at the line after
// the last executed line. This spec resolves the source's ambiguity over
// intra-line resumption by always resuming at the next line, never at the
// interrupted line's next part.
func (i *Interpreter) prepareCont() error {
	if !i.hasLast {
		return newErr(ErrCantContinue, "")
	}
	next, ok := i.Program.NextLine(i.lastLine)
	if !ok {
		i.ended = true
		return nil
	}
	i.pc = pos{Line: next, Part: 0}
	i.jumped = true
	return nil
}

// handleError applies the ONERR protocol of spec.md §4.H/§7: if an handler
// is armed, latch the kind/line into memory and jump to it; otherwise print
// the two-line diagnostic and stop the run.
func (i *Interpreter) handleError(err error) bool {
	be, ok := err.(*Error)
	if !ok {
		fmt.Fprintln(i.Out, "SYNTAX ERROR IN", i.pc.Line)
		fmt.Fprintf(i.Out, "Detail: %v\n", err)
		i.ended = true
		return false
	}
	if i.onerrArmed {
		i.lastErrLine = i.pc.Line
		i.lastErrKind = be.Kind
		i.hasLastErr = true
		i.Mem.LatchError(be.Kind.Code(), i.pc.Line)
		i.pc = pos{Line: i.onerrLine, Part: 0}
		i.jumped = true
		return true
	}
	fmt.Fprintln(i.Out, "SYNTAX ERROR IN", i.pc.Line)
	fmt.Fprintf(i.Out, "Detail: %s\n", be.Error())
	i.ended = true
	return false
}
