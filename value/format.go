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

package value

import (
	"strconv"
	"strings"
)

// FormatNumber renders n the way STR$ and LIST-time literals do: integers
// print with no decimal point, non-integers print with up to six fractional
// digits, trailing zeros and a trailing dot stripped. Integral floats are
// truncated to int64 before formatting, which also normalizes -0 to "0".
func FormatNumber(n float64) string {
	if n == float64(int64(n)) {
		return strconv.FormatInt(int64(n), 10)
	}
	s := strconv.FormatFloat(n, 'f', 6, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	return s
}

// FormatPrint renders n the way PRINT does: a leading space for non-negative
// numbers (in place of a sign), and a trailing space always, replicating the
// dialect's column bookkeeping.
func FormatPrint(n float64) string {
	s := FormatNumber(n)
	if n >= 0 {
		s = " " + s
	}
	return s + " "
}

// ParseNumericLiteral parses a numeric literal token's text, which may carry
// a leading '$' hex prefix, into a float64. Used by the lexer/evaluator when
// converting a NUMBER token into a Value, and by VAL for a `$`-prefixed
// argument.
func ParseNumericLiteral(s string) (float64, bool) {
	if strings.HasPrefix(s, "$") {
		n, err := strconv.ParseInt(s[1:], 16, 64)
		if err != nil {
			return 0, false
		}
		return float64(n), true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Val implements the VAL builtin: parse a leading numeric prefix out of s,
// tolerating leading whitespace and an optional sign, and a leading '$' hex
// prefix; returns 0 if no digits follow. Resolved from
// original_source/applesoft.py, which is the only unambiguous source for
// this dialect's VAL behavior (spec.md §9 flags this as an Open Question).
func Val(s string) float64 {
	s = strings.TrimLeft(s, " \t")
	if strings.HasPrefix(s, "$") {
		i := 1
		for i < len(s) && isHexDigit(s[i]) {
			i++
		}
		if i == 1 {
			return 0
		}
		n, err := strconv.ParseInt(s[1:i], 16, 64)
		if err != nil {
			return 0
		}
		return float64(n)
	}
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	sawDigit := false
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
		sawDigit = true
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
			sawDigit = true
		}
	}
	if !sawDigit {
		return 0
	}
	// optional exponent
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && s[k] >= '0' && s[k] <= '9' {
			k++
		}
		if k > j {
			i = k
		}
	}
	f, err := strconv.ParseFloat(s[:i], 64)
	if err != nil {
		return 0
	}
	return f
}

func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}
