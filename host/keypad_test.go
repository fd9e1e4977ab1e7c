// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"testing"

	"github.com/beevik/gochip8/cpu"
	"github.com/retroenv/retrogolib/assert"
)

func TestKeyFromKeyboard(t *testing.T) {
	tests := []struct {
		b   byte
		key byte
	}{
		{'1', 0x1}, {'4', 0xc}, {'q', 0x4}, {'R', 0xd},
		{'a', 0x7}, {'f', 0xe}, {'z', 0xa}, {'x', 0x0},
		{'c', 0xb}, {'V', 0xf},
	}
	for _, tt := range tests {
		k, ok := keyFromKeyboard(tt.b)
		assert.True(t, ok, string(tt.b))
		assert.Equal(t, tt.key, k, string(tt.b))
	}

	_, ok := keyFromKeyboard('p')
	assert.False(t, ok)
}

func TestParseKey(t *testing.T) {
	k, err := parseKey("$a")
	assert.NoError(t, err)
	assert.Equal(t, byte(0xa), k)

	k, err = parseKey("F")
	assert.NoError(t, err)
	assert.Equal(t, byte(0xf), k)

	_, err = parseKey("10")
	assert.Error(t, err)
	_, err = parseKey("x")
	assert.Error(t, err)
}

func TestKeypadHold(t *testing.T) {
	s := cpu.NewState()
	var k keypad

	k.press(s, 5)
	for i := 0; i < keyHoldFrames-1; i++ {
		k.tick(s)
		assert.True(t, s.Keypad[5])
	}
	k.tick(s)
	assert.False(t, s.Keypad[5])
}

func TestKeypadRelease(t *testing.T) {
	s := cpu.NewState()
	var k keypad

	k.set(s, 2, true)
	k.press(s, 9)
	k.releaseHeld(s)
	assert.True(t, s.Keypad[2])
	assert.False(t, s.Keypad[9])

	// Keys set by command stay down across frames.
	k.tick(s)
	assert.True(t, s.Keypad[2])
}
