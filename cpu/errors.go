// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

import (
	"errors"
	"fmt"
)

// Errors
var (
	ErrProgramTooLarge   = errors.New("ROM too large")
	ErrMemoryOutOfBounds = errors.New("memory access out of bounds")
	ErrStackOverflow     = errors.New("call stack overflow")
	ErrStackUnderflow    = errors.New("return with empty call stack")
	ErrUnknownOpcode     = errors.New("unknown opcode")
)

// An OpcodeError reports an instruction word that does not decode to any
// implemented instruction.
type OpcodeError struct {
	Addr   uint16 // address the opcode was fetched from
	Opcode uint16
}

func (e *OpcodeError) Error() string {
	return fmt.Sprintf("unknown opcode $%04X at $%03X", e.Opcode, e.Addr)
}

// Is reports whether target is ErrUnknownOpcode.
func (e *OpcodeError) Is(target error) bool {
	return target == ErrUnknownOpcode
}
