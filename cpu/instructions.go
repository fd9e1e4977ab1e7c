// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

// An Op identifies a decoded instruction variant.
type Op byte

// All instruction variants. OpUnknown is produced for any word that matches
// no implemented instruction.
const (
	OpUnknown Op = iota
	OpCLS        // 00E0
	OpRET        // 00EE
	OpJP         // 1nnn
	OpCALL       // 2nnn
	OpSEImm      // 3xkk
	OpSNEImm     // 4xkk
	OpSEReg      // 5xy0
	OpLDImm      // 6xkk
	OpADDImm     // 7xkk
	OpLDReg      // 8xy0
	OpOR         // 8xy1
	OpAND        // 8xy2
	OpXOR        // 8xy3
	OpADDReg     // 8xy4
	OpSUB        // 8xy5
	OpSHR        // 8xy6
	OpSUBN       // 8xy7
	OpSHL        // 8xyE
	OpSNEReg     // 9xy0
	OpLDI        // Annn
	OpJPV0       // Bnnn
	OpRND        // Cxkk
	OpDRW        // Dxyn
	OpSKP        // Ex9E
	OpSKNP       // ExA1
	OpLDVxDT     // Fx07
	OpLDVxK      // Fx0A
	OpLDDTVx     // Fx15
	OpLDSTVx     // Fx18
	OpADDI       // Fx1E
	OpLDF        // Fx29
	OpLDB        // Fx33
	OpLDMemVx    // Fx55
	OpLDVxMem    // Fx65
)

var opNames = [...]string{
	OpUnknown: "???",
	OpCLS:     "CLS",
	OpRET:     "RET",
	OpJP:      "JP",
	OpCALL:    "CALL",
	OpSEImm:   "SE",
	OpSNEImm:  "SNE",
	OpSEReg:   "SE",
	OpLDImm:   "LD",
	OpADDImm:  "ADD",
	OpLDReg:   "LD",
	OpOR:      "OR",
	OpAND:     "AND",
	OpXOR:     "XOR",
	OpADDReg:  "ADD",
	OpSUB:     "SUB",
	OpSHR:     "SHR",
	OpSUBN:    "SUBN",
	OpSHL:     "SHL",
	OpSNEReg:  "SNE",
	OpLDI:     "LD",
	OpJPV0:    "JP",
	OpRND:     "RND",
	OpDRW:     "DRW",
	OpSKP:     "SKP",
	OpSKNP:    "SKNP",
	OpLDVxDT:  "LD",
	OpLDVxK:   "LD",
	OpLDDTVx:  "LD",
	OpLDSTVx:  "LD",
	OpADDI:    "ADD",
	OpLDF:     "LD",
	OpLDB:     "LD",
	OpLDMemVx: "LD",
	OpLDVxMem: "LD",
}

// String returns the instruction mnemonic.
func (op Op) String() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	return opNames[OpUnknown]
}

// An Instruction is a decoded opcode: the variant plus every operand field
// the opcode encodes. Fields not used by the variant are still populated
// from the corresponding nibbles.
type Instruction struct {
	Op     Op
	Opcode uint16 // raw instruction word
	X      byte   // register index, bits 8-11
	Y      byte   // register index, bits 4-7
	N      byte   // low nibble
	KK     byte   // low byte
	NNN    uint16 // low 12 bits
}

// Decode splits an instruction word into its operands and identifies the
// instruction variant.
func Decode(opcode uint16) Instruction {
	inst := Instruction{
		Opcode: opcode,
		X:      byte(opcode>>8) & 0x0f,
		Y:      byte(opcode>>4) & 0x0f,
		N:      byte(opcode) & 0x0f,
		KK:     byte(opcode),
		NNN:    opcode & 0x0fff,
	}
	inst.Op = decodeOp(inst)
	return inst
}

func decodeOp(inst Instruction) Op {
	switch inst.Opcode >> 12 {
	case 0x0:
		switch inst.Opcode {
		case 0x00e0:
			return OpCLS
		case 0x00ee:
			return OpRET
		}
	case 0x1:
		return OpJP
	case 0x2:
		return OpCALL
	case 0x3:
		return OpSEImm
	case 0x4:
		return OpSNEImm
	case 0x5:
		if inst.N == 0 {
			return OpSEReg
		}
	case 0x6:
		return OpLDImm
	case 0x7:
		return OpADDImm
	case 0x8:
		switch inst.N {
		case 0x0:
			return OpLDReg
		case 0x1:
			return OpOR
		case 0x2:
			return OpAND
		case 0x3:
			return OpXOR
		case 0x4:
			return OpADDReg
		case 0x5:
			return OpSUB
		case 0x6:
			return OpSHR
		case 0x7:
			return OpSUBN
		case 0xe:
			return OpSHL
		}
	case 0x9:
		if inst.N == 0 {
			return OpSNEReg
		}
	case 0xa:
		return OpLDI
	case 0xb:
		return OpJPV0
	case 0xc:
		return OpRND
	case 0xd:
		return OpDRW
	case 0xe:
		switch inst.KK {
		case 0x9e:
			return OpSKP
		case 0xa1:
			return OpSKNP
		}
	case 0xf:
		switch inst.KK {
		case 0x07:
			return OpLDVxDT
		case 0x0a:
			return OpLDVxK
		case 0x15:
			return OpLDDTVx
		case 0x18:
			return OpLDSTVx
		case 0x1e:
			return OpADDI
		case 0x29:
			return OpLDF
		case 0x33:
			return OpLDB
		case 0x55:
			return OpLDMemVx
		case 0x65:
			return OpLDVxMem
		}
	}
	return OpUnknown
}

// IsSkip returns true if the instruction conditionally skips the
// instruction that follows it.
func (inst Instruction) IsSkip() bool {
	switch inst.Op {
	case OpSEImm, OpSNEImm, OpSEReg, OpSNEReg, OpSKP, OpSKNP:
		return true
	}
	return false
}
