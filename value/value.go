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

// Package value implements the dialect's tagged Value union, canonical
// variable Name rules and the dialect's number-formatting conventions (§4.A).
package value

import (
	"strings"
)

// Value is a tagged union of Number and String, the only two dynamic types
// in the dialect.
type Value struct {
	Str      string
	Num      float64
	IsString bool
}

// Num0 is the zero numeric value, returned for unset numeric names.
var Num0 = Value{}

// Str0 is the zero string value, returned for unset string names.
var Str0 = Value{IsString: true}

// Number returns a numeric Value.
func Number(n float64) Value { return Value{Num: n} }

// String returns a string Value.
func String(s string) Value { return Value{Str: s, IsString: true} }

// Bool returns the dialect's boolean encoding: 1.0 for true, 0.0 for false.
func Bool(b bool) Value {
	if b {
		return Number(1)
	}
	return Number(0)
}

// Truthy reports whether v's numeric value is nonzero. Only meaningful for
// numeric values; callers must not call this on a string Value (IF/AND/OR/NOT
// operate on numeric operands only).
func (v Value) Truthy() bool { return v.Num != 0 }

// Name is a canonicalized variable/array/function name: upper-cased, with
// the dialect's implicit type carried in the trailing '$' (string) or its
// absence (numeric).
type Name string

// Canon upper-cases s to produce a canonical Name. Case-insensitivity is the
// dialect's rule (§3); this implementation preserves full-length uniqueness
// (the conservative extension spec.md §3 permits) rather than truncating to
// two significant characters.
func Canon(s string) Name {
	return Name(strings.ToUpper(s))
}

// IsString reports whether the name denotes a string variable (trailing '$').
func (n Name) IsString() bool {
	return len(n) > 0 && n[len(n)-1] == '$'
}
