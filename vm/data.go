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
	"strings"
)

// collectData performs the single unconditional linear pass over every
// program line, in line order, collecting DATA literals -- per
// original_source/applesoft.py, the DATA cursor is built once at RUN time
// rather than lazily when execution reaches a DATA statement, so a DATA
// statement after the point of a READ is still visible to it.
func collectData(p *Program) []string {
	var out []string
	for _, n := range p.Lines() {
		for _, part := range p.Parts(n) {
			trimmed := strings.TrimSpace(part)
			upper := strings.ToUpper(trimmed)
			if !strings.HasPrefix(upper, "DATA") {
				continue
			}
			rest := trimmed[len("DATA"):]
			out = append(out, splitDataItems(rest)...)
		}
	}
	return out
}

// splitDataItems splits one DATA statement's argument text on commas,
// respecting quoted strings, and trims unquoted items the way the dialect's
// reader does (leading/trailing space trimmed, quotes stripped from quoted
// items).
func splitDataItems(s string) []string {
	var items []string
	var buf strings.Builder
	inQuote := false
	flush := func() {
		item := buf.String()
		if !inQuote {
			item = strings.TrimSpace(item)
		}
		items = append(items, item)
		buf.Reset()
	}
	for _, r := range s {
		switch {
		case r == '"':
			inQuote = !inQuote
		case r == ',' && !inQuote:
			flush()
			continue
		default:
			buf.WriteRune(r)
		}
	}
	flush()
	if len(items) == 1 && items[0] == "" {
		return nil
	}
	return items
}

// nextData advances the DATA cursor, returning Out Of Data if exhausted.
func (i *Interpreter) nextData() (string, error) {
	if i.dataPos >= len(i.data) {
		return "", newErr(ErrOutOfData, "")
	}
	v := i.data[i.dataPos]
	i.dataPos++
	return v, nil
}

// restoreData resets the DATA cursor to the beginning, or -- with RESTORE
// <line> -- to the first DATA item produced at or after that line (spec.md
// §4.D's RESTORE).
func (i *Interpreter) restoreData(line int, hasLine bool) {
	if !hasLine {
		i.dataPos = 0
		return
	}
	pos := 0
	for _, n := range i.Program.Lines() {
		if n >= line {
			break
		}
		for _, part := range i.Program.Parts(n) {
			trimmed := strings.TrimSpace(part)
			if strings.HasPrefix(strings.ToUpper(trimmed), "DATA") {
				pos += len(splitDataItems(trimmed[len("DATA"):]))
			}
		}
	}
	i.dataPos = pos
}
