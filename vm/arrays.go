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

import "github.com/retrobasic/basic8/value"

const autoDimBound = 10

// getArrayElem reads name(subs...), auto-dimensioning the array with bound
// 10 on every axis on first reference (spec.md §3, §8).
func (i *Interpreter) getArrayElem(name value.Name, subs []int) (value.Value, error) {
	a, ok := i.arrays[name]
	if !ok {
		bounds := make([]int, len(subs))
		for k := range bounds {
			bounds[k] = autoDimBound
		}
		a = newArray(bounds, name.IsString())
		i.arrays[name] = a
	}
	idx, ok := a.index(subs)
	if !ok {
		return value.Num0, newErr(ErrBadSubscript, "")
	}
	return a.Data[idx], nil
}

// setArrayElem writes name(subs...) = v, auto-dimensioning as getArrayElem
// does, and enforcing the name's suffix-implied type.
func (i *Interpreter) setArrayElem(name value.Name, subs []int, v value.Value) error {
	if name.IsString() != v.IsString {
		return newErr(ErrTypeMismatch, "")
	}
	a, ok := i.arrays[name]
	if !ok {
		bounds := make([]int, len(subs))
		for k := range bounds {
			bounds[k] = autoDimBound
		}
		a = newArray(bounds, name.IsString())
		i.arrays[name] = a
	}
	idx, ok := a.index(subs)
	if !ok {
		return newErr(ErrBadSubscript, "")
	}
	a.Data[idx] = v
	return nil
}

// dimArray declares name with the given per-axis upper bounds. A second DIM
// on an already-created array is Redimensioned Array (spec.md §3).
func (i *Interpreter) dimArray(name value.Name, bounds []int) error {
	if _, ok := i.arrays[name]; ok {
		return newErr(ErrRedimensionedArray, "")
	}
	i.arrays[name] = newArray(bounds, name.IsString())
	return nil
}

// callUserFunc evaluates an FN call: save the formal's current binding,
// assign arg, evaluate the stored expression, restore the prior binding
// (spec.md §4.C, §9).
func (i *Interpreter) callUserFunc(name value.Name, arg value.Value) (value.Value, error) {
	fn, ok := i.userFuncs[name]
	if !ok {
		return value.Num0, newErr(ErrUndefinedFunction, "%s", name)
	}
	prior, hadPrior := i.vars[fn.Param]
	if err := i.SetVar(fn.Param, arg); err != nil {
		return value.Num0, err
	}
	toks, err := tokenizeExpr(fn.Expr)
	if err != nil {
		return value.Num0, err
	}
	v, _, err := evalExpr(i, toks, 0)
	if hadPrior {
		i.vars[fn.Param] = prior
	} else {
		delete(i.vars, fn.Param)
	}
	if err != nil {
		return value.Num0, err
	}
	return v, nil
}
