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

// Package lexer implements the dialect's statement-splitting and
// tokenization rules: colon-separated statement parts (string- and
// REM-aware), and a token stream per statement for the expression
// evaluator and statement executor. Tokenizing never fails: an
// unrecognized character becomes a single-rune OP token, and every token
// records its 1-based column within the statement.
package lexer

import "strings"

// SplitStatements splits one program line's statement text into its
// colon-separated parts, honoring quoted strings, REM-to-end-of-line, and
// the HIMEM:/LOMEM: keyword colon.
func SplitStatements(line string) []string {
	runes := []rune(line)
	n := len(runes)
	var stmts []string
	start := 0
	i := 0
	for i <= n {
		// Check for REM at the start of this statement (skipping leading
		// spaces); if found, the rest of the line belongs to this statement
		// verbatim and no further splitting happens.
		j := i
		for j < n && runes[j] == ' ' {
			j++
		}
		if isWordAt(runes, j, "REM") {
			stmts = append(stmts, string(runes[start:n]))
			return stmts
		}

		inQuote := false
		split := false
		for i < n {
			c := runes[i]
			switch {
			case inQuote:
				if c == '"' {
					inQuote = false
				}
				i++
			case c == '"':
				inQuote = true
				i++
			case c == ':':
				word := strings.ToUpper(strings.TrimSpace(string(runes[start:i])))
				if word == "HIMEM" || word == "LOMEM" {
					// Part of the HIMEM:/LOMEM: keyword, not a terminator.
					i++
					continue
				}
				stmts = append(stmts, string(runes[start:i]))
				i++
				start = i
				split = true
			default:
				i++
			}
			if split {
				break
			}
		}
		if split {
			continue
		}
		// Reached end of line without a trailing colon.
		stmts = append(stmts, string(runes[start:n]))
		break
	}
	if len(stmts) == 0 {
		stmts = append(stmts, "")
	}
	return stmts
}

// isWordAt reports whether runes[pos:] begins with word (case-insensitive)
// followed by a word boundary (non letter/digit, or end of input).
func isWordAt(runes []rune, pos int, word string) bool {
	wr := []rune(word)
	if pos+len(wr) > len(runes) {
		return false
	}
	for k, wc := range wr {
		rc := runes[pos+k]
		if rc != wc && rc != wc+('a'-'A') && rc != wc-('a'-'A') {
			return false
		}
	}
	end := pos + len(wr)
	if end < len(runes) {
		c := runes[end]
		if isIdentRune(c) {
			return false
		}
	}
	return true
}
