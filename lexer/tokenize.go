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

package lexer

import (
	"strings"

	"github.com/retrobasic/basic8/token"
)

func isIdentRune(c rune) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func isDigit(c rune) bool { return c >= '0' && c <= '9' }

func isHexDigit(c rune) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isAlpha(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// Tokenize scans a single statement's text into a token stream, terminated
// by a token.EOF token.
func Tokenize(stmt string) ([]token.Token, error) {
	runes := []rune(stmt)
	n := len(runes)
	var toks []token.Token
	i := 0

	for i < n {
		c := runes[i]
		switch {
		case c == ' ' || c == '\t':
			i++

		case c == '"':
			start := i
			i++
			for i < n && runes[i] != '"' {
				i++
			}
			text := string(runes[start+1 : i])
			if i < n {
				i++ // consume closing quote
			}
			// else: implicit close at end of line (spec.md §4.B)
			toks = append(toks, token.Token{Kind: token.STRING, Text: text, Pos: token.Pos(start + 1)})

		case c == '$' && i+1 < n && isHexDigit(runes[i+1]):
			start := i
			i++
			for i < n && isHexDigit(runes[i]) {
				i++
			}
			toks = append(toks, token.Token{Kind: token.NUMBER, Text: string(runes[start:i]), Pos: token.Pos(start + 1)})

		case isDigit(c) || (c == '.' && i+1 < n && isDigit(runes[i+1])):
			start := i
			for i < n && isDigit(runes[i]) {
				i++
			}
			if i < n && runes[i] == '.' {
				i++
				for i < n && isDigit(runes[i]) {
					i++
				}
			}
			if i < n && (runes[i] == 'E' || runes[i] == 'e') {
				j := i + 1
				if j < n && (runes[j] == '+' || runes[j] == '-') {
					j++
				}
				k := j
				for k < n && isDigit(runes[k]) {
					k++
				}
				if k > j {
					i = k
				}
			}
			toks = append(toks, token.Token{Kind: token.NUMBER, Text: string(runes[start:i]), Pos: token.Pos(start + 1)})

		case isAlpha(c):
			start := i
			for i < n && isIdentRune(runes[i]) {
				i++
			}
			if i < n && runes[i] == '$' {
				i++
			}
			word := string(runes[start:i])
			upper := strings.ToUpper(word)
			// HIMEM:/LOMEM: keep the trailing colon glued to the word; the
			// lexer's statement splitter left it in place.
			if (upper == "HIMEM" || upper == "LOMEM") && i < n && runes[i] == ':' {
				i++
				upper += ":"
			}
			switch upper {
			case "AND":
				toks = append(toks, token.Token{Kind: token.AND, Text: upper, Pos: token.Pos(start + 1)})
			case "OR":
				toks = append(toks, token.Token{Kind: token.OR, Text: upper, Pos: token.Pos(start + 1)})
			case "NOT":
				toks = append(toks, token.Token{Kind: token.NOT, Text: upper, Pos: token.Pos(start + 1)})
			default:
				toks = append(toks, token.Token{Kind: token.IDENT, Text: upper, Pos: token.Pos(start + 1)})
			}

		case c == '?':
			toks = append(toks, token.Token{Kind: token.IDENT, Text: "PRINT", Pos: token.Pos(i + 1)})
			i++

		case c == '<' || c == '>' || c == '=':
			start := i
			i++
			j := i
			for j < n && (runes[j] == ' ' || runes[j] == '\t') {
				j++
			}
			text := string(c)
			switch {
			case c == '<' && j < n && runes[j] == '=':
				text = "<="
				i = j + 1
			case c == '<' && j < n && runes[j] == '>':
				text = "<>"
				i = j + 1
			case c == '>' && j < n && runes[j] == '=':
				text = ">="
				i = j + 1
			}
			toks = append(toks, token.Token{Kind: token.REL, Text: text, Pos: token.Pos(start + 1)})

		case strings.ContainsRune("+-*/^(),;:", c):
			toks = append(toks, token.Token{Kind: token.OP, Text: string(c), Pos: token.Pos(i + 1)})
			i++

		default:
			// Unknown character: surface it as a single-rune OP token; the
			// evaluator/executor will raise a Syntax Error when they can't
			// make sense of it. The lexer itself never fails the whole
			// program over one stray character.
			toks = append(toks, token.Token{Kind: token.OP, Text: string(c), Pos: token.Pos(i + 1)})
			i++
		}
	}
	toks = append(toks, token.Token{Kind: token.EOF, Pos: token.Pos(n + 1)})
	return toks, nil
}
