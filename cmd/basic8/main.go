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

package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/retrobasic/basic8/basic"
	"github.com/retrobasic/basic8/config"
	"github.com/retrobasic/basic8/vm"
)

func atExit(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "%v\n", err)
	os.Exit(1)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		atExit(err)
	}

	inputTimeout := flag.Int("input-timeout", cfg.InputTimeout, "seconds to wait for INPUT/GET before Input Timeout (0 = none)")
	execTimeout := flag.Int("exec-timeout", cfg.ExecTimeout, "seconds before a run is aborted (0 = none)")
	noKeepOpen := flag.Bool("no-keep-open", !cfg.KeepOpen, "close the renderer window as soon as the run ends")
	autoClose := flag.Bool("auto-close", !cfg.KeepOpen, "alias of -no-keep-open")
	autosnapEvery := flag.Int("autosnap-every", cfg.AutosnapEvery, "renderer screenshot every N statements (0 = off)")
	autosnapOnEnd := flag.Bool("autosnap-on-end", cfg.AutosnapOnEnd, "renderer screenshot when the run ends")
	noArtifact := flag.Bool("no-artifact", !cfg.Artifact, "disable NTSC composite artifact colors in the renderer")
	compositeBlur := flag.Bool("composite-blur", cfg.CompositeBlur, "soften hi-res fringing in the renderer")
	delay := flag.Float64("delay", float64(cfg.Delay)/1000, "seconds to sleep between statements (0 = none)")
	scale := flag.Int("scale", cfg.Scale, "renderer window pixel scale")
	trace := flag.Bool("debug", false, "trace each executed statement")

	flag.Parse()

	cfg.InputTimeout = *inputTimeout
	cfg.ExecTimeout = *execTimeout
	cfg.KeepOpen = !(*noKeepOpen || *autoClose)
	cfg.AutosnapEvery = *autosnapEvery
	cfg.AutosnapOnEnd = *autosnapOnEnd
	cfg.Artifact = !*noArtifact
	cfg.CompositeBlur = *compositeBlur
	cfg.Scale = *scale

	prog := vm.NewProgram()
	programFile := flag.Arg(0)
	interactive := programFile == ""
	if !interactive {
		f, err := os.Open(programFile)
		if err != nil {
			atExit(err)
			return
		}
		err = basic.LoadFile(prog, f)
		f.Close()
		if err != nil {
			atExit(err)
			return
		}
	}

	opts := []vm.Option{
		vm.WithTimeouts(cfg.ExecTimeoutDuration(), cfg.InputTimeoutDuration()),
		vm.WithStatementDelay(time.Duration(*delay * float64(time.Second))),
	}
	i := vm.New(prog, opts...)
	i.Trace = *trace

	if interactive {
		fmt.Println("basic8")
		if err := basic.REPL(i, prog, bufio.NewReader(os.Stdin), os.Stdout); err != nil {
			atExit(err)
		}
		return
	}

	if err := i.Run(); err != nil {
		// Host-level failure, not a BASIC program error (those are already
		// printed to i.Out by Run's diagnostic path); spec.md §6 still exits
		// 0 for a clean termination that merely reported a program error.
		atExit(err)
	}
}
