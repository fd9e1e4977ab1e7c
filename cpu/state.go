// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// Machine dimensions.
const (
	MemorySize    = 4096
	RegisterCount = 16
	StackSize     = 16
	KeyCount      = 16

	DisplayWidth  = 64
	DisplayHeight = 32

	// ProgramStart is the address at which program images are loaded and
	// execution begins.
	ProgramStart = 0x200

	// MaxProgramSize is the largest program image that fits in memory.
	MaxProgramSize = MemorySize - ProgramStart
)

// State holds the complete mutable state of a CHIP-8 machine. All containers
// are fixed-size for the lifetime of the machine.
type State struct {
	Memory     [MemorySize]byte                   // 4K address space
	V          [RegisterCount]byte                // general purpose registers V0..VF
	I          uint16                             // index register
	PC         uint16                             // program counter
	Stack      [StackSize]uint16                  // return addresses
	SP         uint8                              // next free stack slot
	Keypad     [KeyCount]bool                     // true while a key is held down
	Video      [DisplayWidth * DisplayHeight]bool // row-major framebuffer
	Opcode     uint16                             // most recently fetched instruction
	DelayTimer byte
	SoundTimer byte
}

// NewState creates a machine state with the font loaded and the program
// counter at the program start address.
func NewState() *State {
	s := &State{}
	s.Reset()
	return s
}

// Reset returns the machine to its power-on state.
func (s *State) Reset() {
	*s = State{}
	copy(s.Memory[FontStart:], Font[:])
	s.PC = ProgramStart
}

// LoadProgram copies a program image from the reader into memory starting
// at the current program counter. It returns the number of bytes copied.
//
// If the image does not fit, ErrProgramTooLarge is returned and the bytes
// already copied remain in memory.
func (s *State) LoadProgram(r io.Reader) (n int, err error) {
	br := bufio.NewReader(r)
	addr := int(s.PC)
	for {
		b, err := br.ReadByte()
		if errors.Is(err, io.EOF) {
			return n, nil
		}
		if err != nil {
			return n, fmt.Errorf("reading program: %w", err)
		}
		if addr >= MemorySize {
			return n, ErrProgramTooLarge
		}
		s.Memory[addr] = b
		addr++
		n++
	}
}

// LoadBytes copies a program image held in memory. It behaves like
// LoadProgram: an image that does not fit leaves the bytes that did fit in
// memory and returns ErrProgramTooLarge.
func (s *State) LoadBytes(b []byte) error {
	n := copy(s.Memory[s.PC:], b)
	if n < len(b) {
		return ErrProgramTooLarge
	}
	return nil
}

// ClearDisplay turns off every pixel in the framebuffer.
func (s *State) ClearDisplay() {
	s.Video = [DisplayWidth * DisplayHeight]bool{}
}

// Pixel reports whether the pixel at column x, row y is lit. Coordinates
// outside the display are reported as unlit.
func (s *State) Pixel(x, y int) bool {
	if x < 0 || x >= DisplayWidth || y < 0 || y >= DisplayHeight {
		return false
	}
	return s.Video[y*DisplayWidth+x]
}

// SetKey records the up/down state of keypad key k (0x0-0xF). Out of range
// keys are ignored.
func (s *State) SetKey(k byte, down bool) {
	if int(k) < KeyCount {
		s.Keypad[k] = down
	}
}

// SoundActive reports whether the host should be producing a tone.
func (s *State) SoundActive() bool {
	return s.SoundTimer > 0
}
