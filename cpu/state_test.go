// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu_test

import (
	"bytes"
	"errors"
	"testing"
	"testing/iotest"

	"github.com/beevik/gochip8/cpu"
	"github.com/retroenv/retrogolib/assert"
)

func TestNewState(t *testing.T) {
	s := cpu.NewState()

	assert.Equal(t, uint16(cpu.ProgramStart), s.PC)
	assert.Equal(t, uint16(0), s.I)
	assert.Equal(t, uint8(0), s.SP)
	assert.Equal(t, byte(0), s.DelayTimer)
	assert.Equal(t, byte(0), s.SoundTimer)

	for i := 0; i < cpu.MemorySize; i++ {
		want := byte(0)
		if i >= cpu.FontStart && i < cpu.FontStart+len(cpu.Font) {
			want = cpu.Font[i-cpu.FontStart]
		}
		if s.Memory[i] != want {
			t.Fatalf("memory[$%03X] incorrect. exp: $%02X, got: $%02X", i, want, s.Memory[i])
		}
	}
	for _, lit := range s.Video {
		assert.False(t, lit)
	}
}

func TestFontRegion(t *testing.T) {
	s := cpu.NewState()

	// Glyph 0 and glyph F bracket the region.
	assert.Equal(t, []byte{0xF0, 0x90, 0x90, 0x90, 0xF0}, s.Memory[0x050:0x055])
	assert.Equal(t, []byte{0xF0, 0x80, 0xF0, 0x80, 0x80}, s.Memory[0x09B:0x0A0])
	assert.Equal(t, byte(0), s.Memory[0x04F])
	assert.Equal(t, byte(0), s.Memory[0x0A0])
}

func TestLoadProgram(t *testing.T) {
	s := cpu.NewState()
	program := []byte{0xA2, 0x2A, 0x60, 0x0C, 0x61, 0x08}

	n, err := s.LoadProgram(bytes.NewReader(program))
	assert.NoError(t, err)
	assert.Equal(t, len(program), n)
	assert.Equal(t, program, s.Memory[0x200:0x206])
	assert.Equal(t, uint16(0x200), s.PC)

	for i := 0; i < cpu.MemorySize; i++ {
		inFont := i >= cpu.FontStart && i < cpu.FontStart+len(cpu.Font)
		inProgram := i >= 0x200 && i < 0x206
		if !inFont && !inProgram && s.Memory[i] != 0 {
			t.Fatalf("memory[$%03X] incorrect. exp: $00, got: $%02X", i, s.Memory[i])
		}
	}
}

func TestLoadProgramPreservesMemory(t *testing.T) {
	s := cpu.NewState()
	s.Memory[0] = 0xAA
	s.Memory[4095] = 0xBB

	_, err := s.LoadProgram(bytes.NewReader([]byte{0x00, 0xE0}))
	assert.NoError(t, err)
	assert.Equal(t, byte(0xAA), s.Memory[0])
	assert.Equal(t, byte(0xBB), s.Memory[4095])
}

func TestLoadEmptyProgram(t *testing.T) {
	s := cpu.NewState()
	before := s.Memory

	n, err := s.LoadProgram(bytes.NewReader(nil))
	assert.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.True(t, before == s.Memory)
}

func TestLoadProgramMaxSize(t *testing.T) {
	s := cpu.NewState()
	program := bytes.Repeat([]byte{0x12}, cpu.MaxProgramSize)

	n, err := s.LoadProgram(bytes.NewReader(program))
	assert.NoError(t, err)
	assert.Equal(t, cpu.MaxProgramSize, n)
	assert.Equal(t, byte(0x12), s.Memory[cpu.MemorySize-1])
}

func TestLoadProgramTooLarge(t *testing.T) {
	s := cpu.NewState()
	program := bytes.Repeat([]byte{0x12}, cpu.MemorySize)

	n, err := s.LoadProgram(bytes.NewReader(program))
	assert.True(t, errors.Is(err, cpu.ErrProgramTooLarge))
	assert.Equal(t, "ROM too large", err.Error())
	assert.Equal(t, cpu.MaxProgramSize, n)

	// The prefix that fit stays in memory.
	assert.Equal(t, byte(0x12), s.Memory[0x200])
	assert.Equal(t, byte(0x12), s.Memory[cpu.MemorySize-1])
}

func TestLoadProgramReadError(t *testing.T) {
	s := cpu.NewState()
	errBoom := errors.New("boom")

	_, err := s.LoadProgram(iotest.ErrReader(errBoom))
	assert.True(t, errors.Is(err, errBoom))
}

func TestLoadBytes(t *testing.T) {
	s := cpu.NewState()
	assert.NoError(t, s.LoadBytes([]byte{0x00, 0xE0}))
	assert.Equal(t, byte(0xE0), s.Memory[0x201])

	err := s.LoadBytes(bytes.Repeat([]byte{0x34}, cpu.MaxProgramSize+1))
	assert.True(t, errors.Is(err, cpu.ErrProgramTooLarge))

	// The prefix that fit stays in memory, as with LoadProgram.
	assert.Equal(t, byte(0x34), s.Memory[0x200])
	assert.Equal(t, byte(0x34), s.Memory[cpu.MemorySize-1])
}

func TestClearDisplay(t *testing.T) {
	s := cpu.NewState()
	for i := range s.Video {
		s.Video[i] = true
	}
	s.ClearDisplay()
	for i, lit := range s.Video {
		if lit {
			t.Fatalf("pixel %d still lit after clear", i)
		}
	}
}

func TestPixel(t *testing.T) {
	s := cpu.NewState()
	s.Video[1*cpu.DisplayWidth+63] = true

	assert.True(t, s.Pixel(63, 1))
	assert.False(t, s.Pixel(0, 2))
	assert.False(t, s.Pixel(64, 1))
	assert.False(t, s.Pixel(-1, 0))
}

func TestMemoryAccessors(t *testing.T) {
	s := cpu.NewState()

	assert.NoError(t, s.StoreByte(0x300, 0x42))
	v, err := s.LoadByte(0x300)
	assert.NoError(t, err)
	assert.Equal(t, byte(0x42), v)

	_, err = s.LoadByte(cpu.MemorySize)
	assert.True(t, errors.Is(err, cpu.ErrMemoryOutOfBounds))
	assert.True(t, errors.Is(s.StoreByte(0xffff, 1), cpu.ErrMemoryOutOfBounds))

	b := make([]byte, 2)
	assert.NoError(t, s.LoadBytesAt(0x050, b))
	assert.Equal(t, []byte{0xF0, 0x90}, b)
	assert.True(t, errors.Is(s.LoadBytesAt(0xfff, b), cpu.ErrMemoryOutOfBounds))
}

func TestSetKey(t *testing.T) {
	s := cpu.NewState()
	s.SetKey(0xA, true)
	assert.True(t, s.Keypad[0xA])
	s.SetKey(0xA, false)
	assert.False(t, s.Keypad[0xA])

	s.SetKey(0x10, true)
	for _, down := range s.Keypad {
		assert.False(t, down)
	}
}
