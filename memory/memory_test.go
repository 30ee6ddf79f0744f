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

package memory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/retrobasic/basic8/memory"
)

func TestPeekPokeRoundTrip(t *testing.T) {
	m := memory.New()
	m.Poke(1000, 42)
	assert.Equal(t, byte(42), m.Peek(1000))
}

func TestNegativeAddressFoldsToSameByte(t *testing.T) {
	m := memory.New()
	m.Poke(49235, 1)
	assert.Equal(t, m.Peek(49235), m.Peek(-16301))
}

func TestSoftSwitchEquivalenceMixedFlag(t *testing.T) {
	m := memory.New()
	m.Poke(49235, 0)
	assert.True(t, m.Gfx.Mixed)

	m2 := memory.New()
	m2.Poke(-16301, 0)
	assert.True(t, m2.Gfx.Mixed)
}

func TestPokeWordPeekWordLittleEndian(t *testing.T) {
	m := memory.New()
	m.PokeWord(300, 0x1234)
	assert.Equal(t, byte(0x34), m.Peek(300))
	assert.Equal(t, byte(0x12), m.Peek(301))
	assert.Equal(t, 0x1234, m.PeekWord(300))
}

func TestLatchAndClearError(t *testing.T) {
	m := memory.New()
	m.LatchError(5, 260)
	assert.Equal(t, byte(1), m.Peek(memory.AddrErrFlag))
	assert.Equal(t, byte(260&0xFF), m.Peek(memory.AddrErrLineLo))
	assert.Equal(t, byte(260>>8), m.Peek(memory.AddrErrLineHi))
	assert.Equal(t, byte(5), m.Peek(memory.AddrErrCode))

	m.ClearError()
	assert.Equal(t, byte(0), m.Peek(memory.AddrErrFlag))
}

func TestKeyboardStrobeClearsWaitingFlag(t *testing.T) {
	m := memory.New()
	m.KeyWaiting = true
	m.KeyValue = 'A'
	assert.Equal(t, byte('A')|0x80, m.Peek(memory.AddrKbdData))
	m.Peek(memory.AddrKbdStrobe)
	assert.False(t, m.KeyWaiting)
}
