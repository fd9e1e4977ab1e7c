// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

// The Memory interface presents the read side of the 4K address space to
// tools that inspect a machine without executing it, such as disassemblers.
// State implements it.
type Memory interface {
	// LoadByte loads a single byte from the address and returns it.
	LoadByte(addr uint16) (byte, error)

	// LoadBytesAt loads len(b) bytes starting at the address into b.
	LoadBytesAt(addr uint16, b []byte) error
}

var _ Memory = (*State)(nil)

// LoadByte returns the byte stored at addr.
func (s *State) LoadByte(addr uint16) (byte, error) {
	if int(addr) >= MemorySize {
		return 0, ErrMemoryOutOfBounds
	}
	return s.Memory[addr], nil
}

// LoadBytesAt copies len(b) bytes starting at addr into b.
func (s *State) LoadBytesAt(addr uint16, b []byte) error {
	if int(addr)+len(b) > MemorySize {
		return ErrMemoryOutOfBounds
	}
	copy(b, s.Memory[addr:])
	return nil
}

// StoreByte stores v at addr.
func (s *State) StoreByte(addr uint16, v byte) error {
	if int(addr) >= MemorySize {
		return ErrMemoryOutOfBounds
	}
	s.Memory[addr] = v
	return nil
}
