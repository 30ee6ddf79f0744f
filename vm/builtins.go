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

	"github.com/retrobasic/basic8/value"
)

var builtinNames = map[string]bool{
	"INT": true, "ABS": true, "SGN": true, "SQR": true, "SIN": true,
	"COS": true, "TAN": true, "ATN": true, "LOG": true, "EXP": true,
	"RND": true, "PEEK": true, "POS": true, "FRE": true, "SCRN": true,
	"LEN": true, "VAL": true, "ASC": true, "CHR$": true, "STR$": true,
	"LEFT$": true, "RIGHT$": true, "MID$": true,
}

func isBuiltinName(name string) bool {
	return builtinNames[name]
}

// callBuiltin evaluates a built-in function call, per the contracts tabled
// in spec.md §4.C.
func callBuiltin(i *Interpreter, name string, args []value.Value) (value.Value, error) {
	num := func(k int) (float64, error) {
		if k >= len(args) {
			return 0, newErr(ErrSyntax, "")
		}
		if args[k].IsString {
			return 0, newErr(ErrTypeMismatch, "")
		}
		return args[k].Num, nil
	}
	str := func(k int) (string, error) {
		if k >= len(args) {
			return "", newErr(ErrSyntax, "")
		}
		if !args[k].IsString {
			return "", newErr(ErrTypeMismatch, "")
		}
		return args[k].Str, nil
	}

	switch name {
	case "INT":
		x, err := num(0)
		if err != nil {
			return value.Num0, err
		}
		return value.Number(math.Floor(x)), nil

	case "ABS":
		x, err := num(0)
		if err != nil {
			return value.Num0, err
		}
		return value.Number(math.Abs(x)), nil

	case "SGN":
		x, err := num(0)
		if err != nil {
			return value.Num0, err
		}
		switch {
		case x > 0:
			return value.Number(1), nil
		case x < 0:
			return value.Number(-1), nil
		default:
			return value.Number(0), nil
		}

	case "SQR":
		x, err := num(0)
		if err != nil {
			return value.Num0, err
		}
		if x < 0 {
			return value.Num0, newErr(ErrIllegalQuantity, "")
		}
		return value.Number(math.Sqrt(x)), nil

	case "SIN":
		x, err := num(0)
		if err != nil {
			return value.Num0, err
		}
		return value.Number(math.Sin(x)), nil

	case "COS":
		x, err := num(0)
		if err != nil {
			return value.Num0, err
		}
		return value.Number(math.Cos(x)), nil

	case "TAN":
		x, err := num(0)
		if err != nil {
			return value.Num0, err
		}
		return value.Number(math.Tan(x)), nil

	case "ATN":
		x, err := num(0)
		if err != nil {
			return value.Num0, err
		}
		return value.Number(math.Atan(x)), nil

	case "LOG":
		x, err := num(0)
		if err != nil {
			return value.Num0, err
		}
		if x <= 0 {
			return value.Num0, newErr(ErrIllegalQuantity, "")
		}
		return value.Number(math.Log(x)), nil

	case "EXP":
		x, err := num(0)
		if err != nil {
			return value.Num0, err
		}
		return value.Number(math.Exp(x)), nil

	case "RND":
		x, err := num(0)
		if err != nil {
			return value.Num0, err
		}
		return value.Number(i.rndDraw(x)), nil

	case "PEEK":
		a, err := num(0)
		if err != nil {
			return value.Num0, err
		}
		return value.Number(float64(i.Mem.Peek(int(a)))), nil

	case "POS":
		return value.Number(float64(i.col)), nil

	case "FRE":
		return value.Number(30000), nil

	case "SCRN":
		// No lo-res pixel framebuffer is modeled (spec.md §1 scopes pixel
		// buffers to the renderer collaborator); always 0.
		return value.Number(0), nil

	case "LEN":
		s, err := str(0)
		if err != nil {
			return value.Num0, err
		}
		return value.Number(float64(len(s))), nil

	case "VAL":
		s, err := str(0)
		if err != nil {
			return value.Num0, err
		}
		return value.Number(value.Val(s)), nil

	case "ASC":
		s, err := str(0)
		if err != nil {
			return value.Num0, err
		}
		if s == "" {
			return value.Number(0), nil
		}
		return value.Number(float64(s[0])), nil

	case "CHR$":
		n, err := num(0)
		if err != nil {
			return value.Num0, err
		}
		code := int(n) % 256
		if code < 0 {
			code += 256
		}
		return value.String(string(rune(code))), nil

	case "STR$":
		n, err := num(0)
		if err != nil {
			return value.Num0, err
		}
		return value.String(value.FormatNumber(n)), nil

	case "LEFT$":
		s, err := str(0)
		if err != nil {
			return value.Num0, err
		}
		n, err := num(1)
		if err != nil {
			return value.Num0, err
		}
		k := clampLen(int(n), len(s))
		return value.String(s[:k]), nil

	case "RIGHT$":
		s, err := str(0)
		if err != nil {
			return value.Num0, err
		}
		n, err := num(1)
		if err != nil {
			return value.Num0, err
		}
		k := clampLen(int(n), len(s))
		return value.String(s[len(s)-k:]), nil

	case "MID$":
		s, err := str(0)
		if err != nil {
			return value.Num0, err
		}
		start, err := num(1)
		if err != nil {
			return value.Num0, err
		}
		from := int(start) - 1
		if from < 0 {
			from = 0
		}
		if from > len(s) {
			from = len(s)
		}
		length := len(s) - from
		if len(args) >= 3 {
			n, err := num(2)
			if err != nil {
				return value.Num0, err
			}
			length = clampLen(int(n), len(s)-from)
		}
		return value.String(s[from : from+length]), nil
	}

	return value.Num0, newErr(ErrUndefinedFunction, "%s", name)
}

func clampLen(n, max int) int {
	if n < 0 {
		n = 0
	}
	if n > max {
		n = max
	}
	return n
}

// rndDraw implements RND(x) (spec.md §4.C, Open Question resolved in
// DESIGN.md): x<0 reseeds and returns the first draw of the new sequence;
// x=0 returns the last draw without advancing; x>0 returns a fresh uniform
// draw in [0,1).
func (i *Interpreter) rndDraw(x float64) float64 {
	switch {
	case x < 0:
		i.rnd.Seed(int64(x))
		i.lastRnd = i.rnd.Float64()
	case x == 0:
		// returns i.lastRnd unchanged
	default:
		i.lastRnd = i.rnd.Float64()
	}
	return i.lastRnd
}
