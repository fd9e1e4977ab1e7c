// Copyright 2014 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package disasm_test

import (
	"testing"

	"github.com/beevik/gochip8/cpu"
	"github.com/beevik/gochip8/disasm"
	"github.com/retroenv/retrogolib/assert"
)

func TestDisassemble(t *testing.T) {
	tests := []struct {
		opcode uint16
		want   string
	}{
		{0x00E0, "CLS"},
		{0x00EE, "RET"},
		{0x1A59, "JP $A59"},
		{0x2206, "CALL $206"},
		{0x3A42, "SE VA, $42"},
		{0x4A42, "SNE VA, $42"},
		{0x5120, "SE V1, V2"},
		{0x600C, "LD V0, $0C"},
		{0x7503, "ADD V5, $03"},
		{0x8AB0, "LD VA, VB"},
		{0x8AB1, "OR VA, VB"},
		{0x8AB2, "AND VA, VB"},
		{0x8AB3, "XOR VA, VB"},
		{0x8AB4, "ADD VA, VB"},
		{0x8AB5, "SUB VA, VB"},
		{0x8AB6, "SHR VA, VB"},
		{0x8AB7, "SUBN VA, VB"},
		{0x8ABE, "SHL VA, VB"},
		{0x9120, "SNE V1, V2"},
		{0xA22A, "LD I, $22A"},
		{0xB300, "JP V0, $300"},
		{0xC30F, "RND V3, $0F"},
		{0xD015, "DRW V0, V1, 5"},
		{0xE39E, "SKP V3"},
		{0xE3A1, "SKNP V3"},
		{0xF507, "LD V5, DT"},
		{0xF50A, "LD V5, K"},
		{0xF515, "LD DT, V5"},
		{0xF518, "LD ST, V5"},
		{0xF51E, "ADD I, V5"},
		{0xF529, "LD F, V5"},
		{0xF533, "LD B, V5"},
		{0xF555, "LD [I], V5"},
		{0xF565, "LD V5, [I]"},
		{0x0123, ".word $0123"},
		{0x8128, ".word $8128"},
		{0xFFFF, ".word $FFFF"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, disasm.Disassemble(tt.opcode))
	}
}

func TestDisassembleAt(t *testing.T) {
	s := cpu.NewState()
	assert.NoError(t, s.LoadBytes([]byte{0xA2, 0x2A, 0x60, 0x0C}))

	line, next := disasm.DisassembleAt(s, 0x200)
	assert.Equal(t, "LD I, $22A", line)
	assert.Equal(t, uint16(0x202), next)

	line, next = disasm.DisassembleAt(s, next)
	assert.Equal(t, "LD V0, $0C", line)
	assert.Equal(t, uint16(0x204), next)

	s.Memory[cpu.MemorySize-1] = 0x12
	line, next = disasm.DisassembleAt(s, cpu.MemorySize-1)
	assert.Equal(t, ".byte $12", line)
	assert.Equal(t, uint16(cpu.MemorySize), next)
}

func TestGetRegisterString(t *testing.T) {
	s := cpu.NewState()
	s.V[0xA] = 0x3C
	s.I = 0x22A
	s.DelayTimer = 9

	want := "V0=00 V1=00 V2=00 V3=00 V4=00 V5=00 V6=00 V7=00 " +
		"V8=00 V9=00 VA=3C VB=00 VC=00 VD=00 VE=00 VF=00 " +
		"I=22A SP=0 DT=09 ST=00"
	assert.Equal(t, want, disasm.GetRegisterString(s))
}
