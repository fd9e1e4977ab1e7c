// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cpu implements the CHIP-8 virtual machine: its state, its
// instruction set and the 60Hz timer clock.
package cpu

import (
	"fmt"
	"math/rand/v2"
)

// A RandSource supplies the bytes consumed by the RND instruction.
type RandSource interface {
	RandByte() byte
}

type pcgSource struct {
	r *rand.Rand
}

// NewRand returns a pseudo-random byte source with a fixed seed.
func NewRand(seed uint64) RandSource {
	return &pcgSource{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *pcgSource) RandByte() byte {
	return byte(s.r.UintN(256))
}

// CPU executes CHIP-8 instructions against a machine State. A CPU and its
// State must be owned by a single goroutine.
type CPU struct {
	*State
	LastPC       uint16 // address of the most recently executed instruction
	Instructions uint64 // total instructions executed
	rand         RandSource
	debugger     *Debugger
	storeByte    func(cpu *CPU, addr uint16, v byte)
	noAdvance    bool
}

// NewCPU creates a CPU bound to the machine state s. If s is nil, a fresh
// state is created.
func NewCPU(s *State) *CPU {
	if s == nil {
		s = NewState()
	}
	return &CPU{
		State:     s,
		rand:      NewRand(rand.Uint64()),
		storeByte: (*CPU).storeByteNormal,
	}
}

// AttachRand replaces the CPU's random byte source.
func (cpu *CPU) AttachRand(r RandSource) {
	cpu.rand = r
}

// AttachDebugger attaches a debugger to the CPU. The debugger receives
// notifications whenever the CPU executes an instruction or stores a byte
// to memory.
func (cpu *CPU) AttachDebugger(debugger *Debugger) {
	cpu.debugger = debugger
	cpu.storeByte = (*CPU).storeByteDebugger
}

// DetachDebugger detaches the current debugger from the CPU.
func (cpu *CPU) DetachDebugger() {
	cpu.debugger = nil
	cpu.storeByte = (*CPU).storeByteNormal
}

// Reset returns the machine to its power-on state. Attached debuggers and
// random sources are kept.
func (cpu *CPU) Reset() {
	cpu.State.Reset()
	cpu.LastPC = 0
	cpu.Instructions = 0
}

// SetPC updates the CPU program counter to 'addr'.
func (cpu *CPU) SetPC(addr uint16) {
	cpu.PC = addr
}

// Fetch returns the instruction word stored at addr.
func (cpu *CPU) Fetch(addr uint16) (uint16, error) {
	if int(addr)+1 >= MemorySize {
		return 0, fmt.Errorf("fetch at $%03X: %w", addr, ErrMemoryOutOfBounds)
	}
	return uint16(cpu.Memory[addr])<<8 | uint16(cpu.Memory[addr+1]), nil
}

// Step fetches, decodes and executes one instruction, then advances the
// program counter unless the instruction redirected it. If the instruction
// fails, the program counter is left pointing at it.
func (cpu *CPU) Step() error {
	opcode, err := cpu.Fetch(cpu.PC)
	if err != nil {
		return err
	}
	cpu.Opcode = opcode

	cpu.noAdvance = false
	pc := cpu.PC
	if err := cpu.Execute(Decode(opcode)); err != nil {
		return err
	}
	if !cpu.noAdvance {
		cpu.PC += 2
	}
	cpu.LastPC = pc
	cpu.Instructions++

	// An instruction that leaves the program counter in place (a key wait
	// or a jump to itself) does not arrive at its breakpoint again.
	if cpu.debugger != nil && cpu.PC != pc {
		cpu.debugger.onUpdatePC(cpu, cpu.PC)
	}
	return nil
}

// TickTimers decrements the delay and sound timers by one, stopping at
// zero. It is driven by the 60Hz clock, never by instruction execution.
func (cpu *CPU) TickTimers() {
	if cpu.DelayTimer > 0 {
		cpu.DelayTimer--
	}
	if cpu.SoundTimer > 0 {
		cpu.SoundTimer--
	}
}

// Execute applies a decoded instruction to the machine state. Skip
// instructions advance the program counter by 2 when taken; the default
// advance past the instruction itself is the caller's job (see Step).
func (cpu *CPU) Execute(inst Instruction) error {
	switch inst.Op {
	case OpCLS:
		cpu.ClearDisplay()
	case OpRET:
		return cpu.ret()
	case OpJP:
		cpu.jump(inst.NNN)
	case OpCALL:
		return cpu.call(inst)
	case OpSEImm:
		cpu.skipIf(cpu.V[inst.X] == inst.KK)
	case OpSNEImm:
		cpu.skipIf(cpu.V[inst.X] != inst.KK)
	case OpSEReg:
		cpu.skipIf(cpu.V[inst.X] == cpu.V[inst.Y])
	case OpSNEReg:
		cpu.skipIf(cpu.V[inst.X] != cpu.V[inst.Y])
	case OpLDImm:
		cpu.V[inst.X] = inst.KK
	case OpADDImm:
		cpu.V[inst.X] += inst.KK
	case OpLDReg:
		cpu.V[inst.X] = cpu.V[inst.Y]
	case OpOR:
		cpu.V[inst.X] |= cpu.V[inst.Y]
	case OpAND:
		cpu.V[inst.X] &= cpu.V[inst.Y]
	case OpXOR:
		cpu.V[inst.X] ^= cpu.V[inst.Y]
	case OpADDReg:
		cpu.add(inst)
	case OpSUB:
		cpu.sub(inst)
	case OpSHR:
		cpu.shr(inst)
	case OpSUBN:
		cpu.subn(inst)
	case OpSHL:
		cpu.shl(inst)
	case OpLDI:
		cpu.I = inst.NNN
	case OpJPV0:
		cpu.jump((inst.NNN + uint16(cpu.V[0])) & 0x0fff)
	case OpRND:
		cpu.V[inst.X] = cpu.rand.RandByte() & inst.KK
	case OpDRW:
		return cpu.drw(inst)
	case OpSKP:
		cpu.skipIf(cpu.Keypad[cpu.V[inst.X]&0x0f])
	case OpSKNP:
		cpu.skipIf(!cpu.Keypad[cpu.V[inst.X]&0x0f])
	case OpLDVxDT:
		cpu.V[inst.X] = cpu.DelayTimer
	case OpLDVxK:
		cpu.waitKey(inst)
	case OpLDDTVx:
		cpu.DelayTimer = cpu.V[inst.X]
	case OpLDSTVx:
		cpu.SoundTimer = cpu.V[inst.X]
	case OpADDI:
		cpu.I += uint16(cpu.V[inst.X])
	case OpLDF:
		cpu.I = FontStart + GlyphSize*uint16(cpu.V[inst.X]&0x0f)
	case OpLDB:
		return cpu.bcd(inst)
	case OpLDMemVx:
		return cpu.storeRegisters(inst)
	case OpLDVxMem:
		return cpu.loadRegisters(inst)
	default:
		return &OpcodeError{Addr: cpu.PC, Opcode: inst.Opcode}
	}
	return nil
}

// Store the byte value 'v' at the address 'addr'.
func (cpu *CPU) storeByteNormal(addr uint16, v byte) {
	cpu.Memory[addr] = v
}

// Store the byte value 'v' at the address 'addr', notifying the debugger.
func (cpu *CPU) storeByteDebugger(addr uint16, v byte) {
	cpu.debugger.onDataStore(cpu, addr, v)
	cpu.Memory[addr] = v
}

func (cpu *CPU) jump(addr uint16) {
	cpu.PC = addr
	cpu.noAdvance = true
}

func (cpu *CPU) skipIf(cond bool) {
	if cond {
		cpu.PC += 2
	}
}

// The pushed return address is the address of the CALL itself. RET restores
// it and the caller's default advance moves past the CALL.
func (cpu *CPU) call(inst Instruction) error {
	if int(cpu.SP) >= StackSize {
		return fmt.Errorf("CALL $%03X at $%03X: %w", inst.NNN, cpu.PC, ErrStackOverflow)
	}
	cpu.Stack[cpu.SP] = cpu.PC
	cpu.SP++
	cpu.jump(inst.NNN)
	return nil
}

func (cpu *CPU) ret() error {
	if cpu.SP == 0 {
		return fmt.Errorf("RET at $%03X: %w", cpu.PC, ErrStackUnderflow)
	}
	cpu.SP--
	cpu.PC = cpu.Stack[cpu.SP]
	return nil
}

// The flag-producing ALU instructions compute the result and the flag from
// the original operands, then store the result and write VF last. When x
// is F the flag wins.

func (cpu *CPU) add(inst Instruction) {
	sum := uint16(cpu.V[inst.X]) + uint16(cpu.V[inst.Y])
	cpu.V[inst.X] = byte(sum)
	cpu.V[0xf] = boolToByte(sum > 0xff)
}

func (cpu *CPU) sub(inst Instruction) {
	vx, vy := cpu.V[inst.X], cpu.V[inst.Y]
	cpu.V[inst.X] = vx - vy
	cpu.V[0xf] = boolToByte(vx >= vy)
}

func (cpu *CPU) subn(inst Instruction) {
	vx, vy := cpu.V[inst.X], cpu.V[inst.Y]
	cpu.V[inst.X] = vy - vx
	cpu.V[0xf] = boolToByte(vy >= vx)
}

func (cpu *CPU) shr(inst Instruction) {
	vx := cpu.V[inst.X]
	cpu.V[inst.X] = vx >> 1
	cpu.V[0xf] = vx & 0x01
}

func (cpu *CPU) shl(inst Instruction) {
	vx := cpu.V[inst.X]
	cpu.V[inst.X] = vx << 1
	cpu.V[0xf] = vx >> 7
}

// Draw an n-byte sprite from memory at I. The origin wraps around the
// display; the sprite itself is clipped at the right and bottom edges.
func (cpu *CPU) drw(inst Instruction) error {
	n := int(inst.N)
	if int(cpu.I)+n > MemorySize {
		return fmt.Errorf("DRW sprite at $%03X: %w", cpu.I, ErrMemoryOutOfBounds)
	}

	x0 := int(cpu.V[inst.X]) % DisplayWidth
	y0 := int(cpu.V[inst.Y]) % DisplayHeight

	var collision byte
	for row := 0; row < n && y0+row < DisplayHeight; row++ {
		bits := cpu.Memory[int(cpu.I)+row]
		for col := 0; col < 8 && x0+col < DisplayWidth; col++ {
			if bits&(0x80>>col) == 0 {
				continue
			}
			i := (y0+row)*DisplayWidth + x0 + col
			if cpu.Video[i] {
				collision = 1
			}
			cpu.Video[i] = !cpu.Video[i]
		}
	}
	cpu.V[0xf] = collision
	return nil
}

// Block until a key is down by leaving the program counter on this
// instruction. The lowest numbered key wins.
func (cpu *CPU) waitKey(inst Instruction) {
	for k, down := range cpu.Keypad {
		if down {
			cpu.V[inst.X] = byte(k)
			return
		}
	}
	cpu.noAdvance = true
}

func (cpu *CPU) bcd(inst Instruction) error {
	if int(cpu.I)+2 >= MemorySize {
		return fmt.Errorf("LD B at I=$%03X: %w", cpu.I, ErrMemoryOutOfBounds)
	}
	v := cpu.V[inst.X]
	cpu.storeByte(cpu, cpu.I, v/100)
	cpu.storeByte(cpu, cpu.I+1, (v/10)%10)
	cpu.storeByte(cpu, cpu.I+2, v%10)
	return nil
}

// Fx55 and Fx65 leave I unchanged.

func (cpu *CPU) storeRegisters(inst Instruction) error {
	if int(cpu.I)+int(inst.X) >= MemorySize {
		return fmt.Errorf("LD [I] at I=$%03X: %w", cpu.I, ErrMemoryOutOfBounds)
	}
	for r := uint16(0); r <= uint16(inst.X); r++ {
		cpu.storeByte(cpu, cpu.I+r, cpu.V[r])
	}
	return nil
}

func (cpu *CPU) loadRegisters(inst Instruction) error {
	if int(cpu.I)+int(inst.X) >= MemorySize {
		return fmt.Errorf("LD V%X, [I] at I=$%03X: %w", inst.X, cpu.I, ErrMemoryOutOfBounds)
	}
	copy(cpu.V[:inst.X+1], cpu.Memory[cpu.I:])
	return nil
}

func boolToByte(v bool) byte {
	if v {
		return 1
	}
	return 0
}
