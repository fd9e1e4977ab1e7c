// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/gochip8/cpu"
)

// Terminals report key presses but not releases, so a key pressed while
// running is held down for this many frames.
const keyHoldFrames = 6

// The conventional mapping of the 4x4 hex keypad onto the left side of a
// QWERTY keyboard:
//
//	1 2 3 C      1 2 3 4
//	4 5 6 D      Q W E R
//	7 8 9 E      A S D F
//	A 0 B F      Z X C V
var keyboardLayout = map[byte]byte{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xc,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xd,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xe,
	'z': 0xa, 'x': 0x0, 'c': 0xb, 'v': 0xf,
}

type keypad struct {
	hold [cpu.KeyCount]int // frames left before a held key is released
}

// press holds key k down for keyHoldFrames frames.
func (k *keypad) press(s *cpu.State, key byte) {
	s.SetKey(key, true)
	k.hold[key] = keyHoldFrames
}

// set presses or releases key k until told otherwise.
func (k *keypad) set(s *cpu.State, key byte, down bool) {
	s.SetKey(key, down)
	k.hold[key] = 0
}

func (k *keypad) tick(s *cpu.State) {
	for i := range k.hold {
		if k.hold[i] > 0 {
			k.hold[i]--
			if k.hold[i] == 0 {
				s.SetKey(byte(i), false)
			}
		}
	}
}

// releaseHeld releases the keys pressed while running.
func (k *keypad) releaseHeld(s *cpu.State) {
	for i := range k.hold {
		if k.hold[i] > 0 {
			s.SetKey(byte(i), false)
			k.hold[i] = 0
		}
	}
}

func (k *keypad) reset() {
	k.hold = [cpu.KeyCount]int{}
}

func keyFromKeyboard(b byte) (byte, bool) {
	if b >= 'A' && b <= 'Z' {
		b += 'a' - 'A'
	}
	k, ok := keyboardLayout[b]
	return k, ok
}

// parseKey parses a keypad key name, a single hex digit with an optional $
// prefix.
func parseKey(s string) (byte, error) {
	v, err := strconv.ParseUint(strings.TrimPrefix(s, "$"), 16, 8)
	if err != nil || v >= cpu.KeyCount {
		return 0, fmt.Errorf("invalid key '%s'", s)
	}
	return byte(v), nil
}
