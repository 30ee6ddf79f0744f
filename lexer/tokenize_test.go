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

	"github.com/stretchr/testify/require"

	"github.com/retrobasic/basic8/lexer"
	"github.com/retrobasic/basic8/token"
)

func TestTokenizeNumberAndHex(t *testing.T) {
	toks, err := lexer.Tokenize(`X=$FF`)
	require.NoError(t, err)
	require.Len(t, toks, 4) // IDENT REL NUMBER EOF
	require.Equal(t, token.NUMBER, toks[2].Kind)
	require.Equal(t, "$FF", toks[2].Text)
}

func TestTokenizeTwoCharRelOpWithSpace(t *testing.T) {
	toks, err := lexer.Tokenize(`A < = B`)
	require.NoError(t, err)
	require.Equal(t, token.REL, toks[1].Kind)
	require.Equal(t, "<=", toks[1].Text)
}

func TestTokenizeImplicitStringClose(t *testing.T) {
	toks, err := lexer.Tokenize(`PRINT "HELLO`)
	require.NoError(t, err)
	require.Equal(t, token.STRING, toks[1].Kind)
	require.Equal(t, "HELLO", toks[1].Text)
}

func TestTokenizeQuestionMarkIsPrint(t *testing.T) {
	toks, err := lexer.Tokenize(`?A`)
	require.NoError(t, err)
	require.Equal(t, token.IDENT, toks[0].Kind)
	require.Equal(t, "PRINT", toks[0].Text)
}

func TestTokenizeHashIsSeparateFromIdent(t *testing.T) {
	toks, err := lexer.Tokenize(`PR#1`)
	require.NoError(t, err)
	require.Equal(t, token.IDENT, toks[0].Kind)
	require.Equal(t, "PR", toks[0].Text)
	require.Equal(t, token.OP, toks[1].Kind)
	require.Equal(t, "#", toks[1].Text)
	require.Equal(t, token.NUMBER, toks[2].Kind)
}

func TestTokenizeStringSuffixIdent(t *testing.T) {
	toks, err := lexer.Tokenize(`A$`)
	require.NoError(t, err)
	require.Equal(t, token.IDENT, toks[0].Kind)
	require.Equal(t, "A$", toks[0].Text)
}
