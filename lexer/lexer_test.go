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

package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/retrobasic/basic8/lexer"
)

func TestSplitStatementsColon(t *testing.T) {
	parts := lexer.SplitStatements(`A=1:B=2:C=3`)
	assert.Equal(t, []string{"A=1", "B=2", "C=3"}, parts)
}

func TestSplitStatementsQuoteAware(t *testing.T) {
	parts := lexer.SplitStatements(`PRINT "A:B":GOTO 10`)
	assert.Equal(t, []string{`PRINT "A:B"`, "GOTO 10"}, parts)
}

func TestSplitStatementsRemSwallowsRest(t *testing.T) {
	parts := lexer.SplitStatements(`PRINT 1:REM A:B:C`)
	assert.Equal(t, []string{"PRINT 1", "REM A:B:C"}, parts)
}

func TestSplitStatementsHimemColonNotASeparator(t *testing.T) {
	parts := lexer.SplitStatements(`HIMEM: 38400`)
	assert.Equal(t, []string{"HIMEM: 38400"}, parts)
}

func TestSplitStatementsEmptyLine(t *testing.T) {
	parts := lexer.SplitStatements("")
	assert.Equal(t, []string{""}, parts)
}
