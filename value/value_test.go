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

package value_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/retrobasic/basic8/value"
)

func TestCanonUppercases(t *testing.T) {
	assert.Equal(t, value.Name("HELLO"), value.Canon("hello"))
	assert.Equal(t, value.Name("A$"), value.Canon("a$"))
}

func TestNameIsString(t *testing.T) {
	assert.True(t, value.Canon("A$").IsString())
	assert.False(t, value.Canon("A").IsString())
}

func TestTruthy(t *testing.T) {
	assert.True(t, value.Number(1).Truthy())
	assert.False(t, value.Number(0).Truthy())
}

func TestFormatNumberIntegral(t *testing.T) {
	assert.Equal(t, "49", value.FormatNumber(49))
	assert.Equal(t, "0", value.FormatNumber(-0.0))
}

func TestFormatNumberTrimsTrailingZeros(t *testing.T) {
	assert.Equal(t, "3.5", value.FormatNumber(3.5))
	assert.Equal(t, "0.333333", value.FormatNumber(1.0/3.0))
}

func TestFormatPrintSpacing(t *testing.T) {
	assert.Equal(t, " 49 ", value.FormatPrint(49))
	assert.Equal(t, "-5 ", value.FormatPrint(-5))
}

func TestParseNumericLiteralHex(t *testing.T) {
	n, ok := value.ParseNumericLiteral("$FF")
	assert.True(t, ok)
	assert.Equal(t, float64(255), n)
}

func TestParseNumericLiteralDecimal(t *testing.T) {
	n, ok := value.ParseNumericLiteral("3.14")
	assert.True(t, ok)
	assert.Equal(t, 3.14, n)
}

func TestValTrimsLeadingWhitespaceAndStopsAtNonDigit(t *testing.T) {
	assert.Equal(t, float64(123), value.Val("  123ABC"))
}

func TestValNoDigitsReturnsZero(t *testing.T) {
	assert.Equal(t, float64(0), value.Val("ABC"))
}

func TestValHexPrefix(t *testing.T) {
	assert.Equal(t, float64(16), value.Val("$10"))
}
