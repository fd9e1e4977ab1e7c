// Copyright 2014 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package disasm implements a CHIP-8 instruction set disassembler using the
// conventional mnemonics from Cowgod's technical reference.
package disasm

import (
	"fmt"

	"github.com/beevik/gochip8/cpu"
)

type operands byte

const (
	opsNone      operands = iota
	opsAddr               // $nnn
	opsRegByte            // Vx, $kk
	opsRegReg             // Vx, Vy
	opsReg                // Vx
	opsRegRegN            // Vx, Vy, n
	opsToI                // I, $nnn
	opsV0Addr             // V0, $nnn
	opsRegFromDT          // Vx, DT
	opsRegFromK           // Vx, K
	opsDtFromReg          // DT, Vx
	opsStFromReg          // ST, Vx
	opsIAddReg            // I, Vx
	opsFontReg            // F, Vx
	opsBcdReg             // B, Vx
	opsMemFromReg         // [I], Vx
	opsRegFromMem         // Vx, [I]
)

var operandsByOp = [...]operands{
	cpu.OpCLS:     opsNone,
	cpu.OpRET:     opsNone,
	cpu.OpJP:      opsAddr,
	cpu.OpCALL:    opsAddr,
	cpu.OpSEImm:   opsRegByte,
	cpu.OpSNEImm:  opsRegByte,
	cpu.OpSEReg:   opsRegReg,
	cpu.OpLDImm:   opsRegByte,
	cpu.OpADDImm:  opsRegByte,
	cpu.OpLDReg:   opsRegReg,
	cpu.OpOR:      opsRegReg,
	cpu.OpAND:     opsRegReg,
	cpu.OpXOR:     opsRegReg,
	cpu.OpADDReg:  opsRegReg,
	cpu.OpSUB:     opsRegReg,
	cpu.OpSHR:     opsRegReg,
	cpu.OpSUBN:    opsRegReg,
	cpu.OpSHL:     opsRegReg,
	cpu.OpSNEReg:  opsRegReg,
	cpu.OpLDI:     opsToI,
	cpu.OpJPV0:    opsV0Addr,
	cpu.OpRND:     opsRegByte,
	cpu.OpDRW:     opsRegRegN,
	cpu.OpSKP:     opsReg,
	cpu.OpSKNP:    opsReg,
	cpu.OpLDVxDT:  opsRegFromDT,
	cpu.OpLDVxK:   opsRegFromK,
	cpu.OpLDDTVx:  opsDtFromReg,
	cpu.OpLDSTVx:  opsStFromReg,
	cpu.OpADDI:    opsIAddReg,
	cpu.OpLDF:     opsFontReg,
	cpu.OpLDB:     opsBcdReg,
	cpu.OpLDMemVx: opsMemFromReg,
	cpu.OpLDVxMem: opsRegFromMem,
}

// Disassemble returns the assembly language form of a single instruction
// word. Words that do not decode to an instruction are shown as data.
func Disassemble(opcode uint16) string {
	inst := cpu.Decode(opcode)
	if inst.Op == cpu.OpUnknown {
		return fmt.Sprintf(".word $%04X", opcode)
	}

	var ops string
	switch operandsByOp[inst.Op] {
	case opsNone:
		return inst.Op.String()
	case opsAddr:
		ops = fmt.Sprintf("$%03X", inst.NNN)
	case opsRegByte:
		ops = fmt.Sprintf("V%X, $%02X", inst.X, inst.KK)
	case opsRegReg:
		ops = fmt.Sprintf("V%X, V%X", inst.X, inst.Y)
	case opsReg:
		ops = fmt.Sprintf("V%X", inst.X)
	case opsRegRegN:
		ops = fmt.Sprintf("V%X, V%X, %d", inst.X, inst.Y, inst.N)
	case opsToI:
		ops = fmt.Sprintf("I, $%03X", inst.NNN)
	case opsV0Addr:
		ops = fmt.Sprintf("V0, $%03X", inst.NNN)
	case opsRegFromDT:
		ops = fmt.Sprintf("V%X, DT", inst.X)
	case opsRegFromK:
		ops = fmt.Sprintf("V%X, K", inst.X)
	case opsDtFromReg:
		ops = fmt.Sprintf("DT, V%X", inst.X)
	case opsStFromReg:
		ops = fmt.Sprintf("ST, V%X", inst.X)
	case opsIAddReg:
		ops = fmt.Sprintf("I, V%X", inst.X)
	case opsFontReg:
		ops = fmt.Sprintf("F, V%X", inst.X)
	case opsBcdReg:
		ops = fmt.Sprintf("B, V%X", inst.X)
	case opsMemFromReg:
		ops = fmt.Sprintf("[I], V%X", inst.X)
	case opsRegFromMem:
		ops = fmt.Sprintf("V%X, [I]", inst.X)
	}
	return inst.Op.String() + " " + ops
}

// DisassembleAt disassembles the instruction stored in memory 'm' at
// address 'addr'. It returns the disassembled 'line' and the address
// of the following instruction. A word that straddles the end of memory
// is shown as a single data byte.
func DisassembleAt(m cpu.Memory, addr uint16) (line string, next uint16) {
	hi, err := m.LoadByte(addr)
	if err != nil {
		return "", addr
	}
	lo, err := m.LoadByte(addr + 1)
	if err != nil {
		return fmt.Sprintf(".byte $%02X", hi), addr + 1
	}
	return Disassemble(uint16(hi)<<8 | uint16(lo)), addr + 2
}

// GetRegisterString returns a string describing the contents of the
// registers and timers.
func GetRegisterString(s *cpu.State) string {
	b := make([]byte, 0, 96)
	for i, v := range s.V {
		b = fmt.Appendf(b, "V%X=%02X ", i, v)
	}
	return string(fmt.Appendf(b, "I=%03X SP=%X DT=%02X ST=%02X", s.I, s.SP, s.DelayTimer, s.SoundTimer))
}
