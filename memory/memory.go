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

// Package memory implements the dialect's 64 KiB linear byte address space
// and its soft-switch side effects (spec.md §3, §4.A, §6).
package memory

// Size is the size in bytes of the linear address space.
const Size = 65536

// Soft-switch addresses honored by this core (spec.md §6).
const (
	AddrCursorX    = 36
	AddrCursorY    = 37
	AddrTextAttr   = 50
	AddrLomemLo    = 103
	AddrLomemHi    = 104
	AddrHimemLo    = 115
	AddrHimemHi    = 116
	AddrErrFlag    = 216
	AddrErrLineLo  = 218
	AddrErrLineHi  = 219
	AddrErrCode    = 222
	AddrKbdData    = 49152
	AddrKbdStrobe  = 49168
	AddrSpeaker    = 49200
	AddrGfxSwLo    = 49232
	AddrGfxSwHi    = 49239
)

// GraphicsState is the subset of abstract renderer-boundary state that soft
// switches in the 49232-49239 range mutate (spec.md §6). The memory package
// only tracks the flags; it does not draw anything.
type GraphicsState struct {
	TextMode bool // true: TEXT, false: GR/HGR
	Mixed    bool
	Page2    bool
	HiRes    bool
}

// Memory is the 64 KiB linear byte store plus the dynamic state backing
// soft-switch reads (keyboard strobe, cursor, error latch).
type Memory struct {
	bytes [Size]byte

	// Dynamic soft-switch backing state.
	CursorX, CursorY byte
	TextAttr         byte
	Gfx              GraphicsState
	KeyWaiting       bool
	KeyValue         byte
	Speaker          int // click counter, incremented on each toggle

	// ONERR latch (§4.H, §7): mirrored into memory at 216/218/219/222 but
	// also kept structured here for the executor's convenience.
	ErrArmed    bool
	ErrLine     int
	ErrCodeByte byte
}

// New returns a zeroed 64 KiB memory with default soft-switch state (TEXT
// mode, page 1, not mixed, not armed).
func New() *Memory {
	m := &Memory{}
	m.Gfx.TextMode = true
	return m
}

// foldAddr reduces any int address (including the negative forms spec.md §6
// documents as addr+65536) to the unsigned range [0, 65535].
func foldAddr(addr int) int {
	a := addr % Size
	if a < 0 {
		a += Size
	}
	return a
}

// Peek returns the byte at addr (after negative-address folding), resolving
// soft-switch reads dynamically.
func (m *Memory) Peek(addr int) byte {
	a := foldAddr(addr)
	switch a {
	case AddrCursorX:
		return m.CursorX
	case AddrCursorY:
		return m.CursorY
	case AddrTextAttr:
		return m.TextAttr
	case AddrErrFlag:
		if m.ErrArmed {
			return 1
		}
		return 0
	case AddrErrLineLo:
		return byte(m.ErrLine & 0xFF)
	case AddrErrLineHi:
		return byte((m.ErrLine >> 8) & 0xFF)
	case AddrErrCode:
		return m.ErrCodeByte
	case AddrKbdData:
		if m.KeyWaiting {
			return m.KeyValue | 0x80
		}
		return m.KeyValue &^ 0x80
	case AddrKbdStrobe:
		v := m.KeyValue
		m.KeyWaiting = false
		return v
	default:
		return m.bytes[a]
	}
}

// Poke writes v to addr (after negative-address folding), applying
// soft-switch side effects atomically before returning (invariant 5, §3).
func (m *Memory) Poke(addr int, v byte) {
	a := foldAddr(addr)
	m.bytes[a] = v
	switch {
	case a == AddrCursorX:
		m.CursorX = v
	case a == AddrCursorY:
		m.CursorY = v
	case a == AddrTextAttr:
		m.TextAttr = v
	case a == AddrErrFlag:
		m.ErrArmed = v != 0
	case a == AddrErrLineLo:
		m.ErrLine = (m.ErrLine &^ 0xFF) | int(v)
	case a == AddrErrLineHi:
		m.ErrLine = (m.ErrLine & 0xFF) | (int(v) << 8)
	case a == AddrErrCode:
		m.ErrCodeByte = v
	case a == AddrSpeaker:
		m.Speaker++
	case a >= AddrGfxSwLo && a <= AddrGfxSwHi:
		m.applyGfxSwitch(a)
	}
}

// applyGfxSwitch updates abstract graphics-mode state for a write to one of
// the 49232-49239 soft switches. The concrete mapping mirrors the Apple II
// soft-switch layout this dialect's manual documents: even/odd pairs toggle
// text/graphics, full/mixed, page 1/2 and lo-res/hi-res.
func (m *Memory) applyGfxSwitch(a int) {
	switch a {
	case 49232: // TEXT off -> graphics mode
		m.Gfx.TextMode = false
	case 49233: // TEXT on
		m.Gfx.TextMode = true
	case 49234: // mixed off
		m.Gfx.Mixed = false
	case 49235: // mixed on
		m.Gfx.Mixed = true
	case 49236: // page 1
		m.Gfx.Page2 = false
	case 49237: // page 2
		m.Gfx.Page2 = true
	case 49238: // lo-res
		m.Gfx.HiRes = false
	case 49239: // hi-res
		m.Gfx.HiRes = true
	}
}

// PeekWord reads a little-endian 16-bit value from addr,addr+1.
func (m *Memory) PeekWord(addr int) int {
	return int(m.Peek(addr)) | int(m.Peek(addr+1))<<8
}

// PokeWord writes a little-endian 16-bit value to addr,addr+1.
func (m *Memory) PokeWord(addr int, v int) {
	m.Poke(addr, byte(v&0xFF))
	m.Poke(addr+1, byte((v>>8)&0xFF))
}

// LatchError records kind/line into the ONERR soft-switch state (§4.H),
// mirroring into the byte store so PEEK(216)/PEEK(218)/PEEK(219)/PEEK(222)
// observe it.
func (m *Memory) LatchError(code byte, line int) {
	m.ErrArmed = true
	m.ErrLine = line
	m.ErrCodeByte = code
	m.bytes[AddrErrFlag] = 1
	m.bytes[AddrErrLineLo] = byte(line & 0xFF)
	m.bytes[AddrErrLineHi] = byte((line >> 8) & 0xFF)
	m.bytes[AddrErrCode] = code
}

// ClearError clears the ONERR latch (implements RESUME's side effect on the
// latch, §4.D).
func (m *Memory) ClearError() {
	m.ErrArmed = false
	m.bytes[AddrErrFlag] = 0
}
