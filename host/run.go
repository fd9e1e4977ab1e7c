// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"context"
	"errors"
	"fmt"

	"github.com/beevik/gochip8/cpu"
	"github.com/beevik/term"
	"github.com/retroenv/retrogolib/log"
)

const (
	ansiClear = "\x1b[2J"
	ansiHome  = "\x1b[H"
	bell      = "\a"

	keyCtrlC  = 0x03
	keyEscape = 0x1b
)

// Run the CPU in real time until a breakpoint is hit, the CPU faults or the
// user breaks in.
func (h *Host) run() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h.setCancel(cancel)
	defer h.setCancel(nil)

	restore := h.enterRawMode()

	live := h.settings.LiveDisplay && h.terminal != nil
	if live {
		h.print(ansiClear)
		h.render(true)
	}

	h.logger.Debug("Running",
		log.String("pc", fmt.Sprintf("$%03X", h.cpu.PC)),
		log.Int("ips", h.clock.InstructionsPerSecond))

	h.interrupted.Store(false)
	h.sounding = false
	h.state = stateRunning
	err := h.clock.Run(ctx, h.onFrame)
	stopped := h.state
	h.state = stateProcessingCommands

	restore()
	h.keypad.releaseHeld(h.cpu.State)

	if live {
		h.println()
	}

	switch {
	case errors.Is(err, cpu.ErrStopped) && stopped != stateRunning:
		// Stopped by a breakpoint, which has already been reported.
	case err == nil, errors.Is(err, cpu.ErrStopped), errors.Is(err, context.Canceled), errors.Is(err, errBreak):
		h.printf("Break at $%03X.\n", h.cpu.PC)
		h.displayPC()
	default:
		h.fault(err)
		h.state = stateProcessingCommands
		h.displayPC()
	}

	h.logger.Debug("Stopped",
		log.String("pc", fmt.Sprintf("$%03X", h.cpu.PC)),
		log.Int("frames", int(h.clock.Frames)))
}

// Called by the clock after each batch of frames while running.
func (h *Host) onFrame(s *cpu.State) error {
	if h.terminal != nil {
		if err := h.pollKeys(s); err != nil {
			return err
		}
	}
	h.keypad.tick(s)

	if active := s.SoundActive(); active != h.sounding {
		if active && h.terminal != nil {
			h.print(bell)
		}
		h.sounding = active
	}

	if h.settings.LiveDisplay && h.terminal != nil {
		h.render(false)
	}
	h.flush()
	return nil
}

// Consume pending keyboard input without blocking.
func (h *Host) pollKeys(s *cpu.State) error {
	for {
		b, ok, err := h.input.poll()
		switch {
		case err != nil:
			return err
		case !ok:
			return nil
		case b == keyCtrlC || b == keyEscape:
			return errBreak
		}

		if k, ok := keyFromKeyboard(b); ok {
			h.keypad.press(s, k)
		}
	}
}

// Redraw the display if it changed since the last redraw.
func (h *Host) render(force bool) {
	if !force && h.cpu.Video == h.screen {
		return
	}
	h.screen = h.cpu.Video
	h.print(ansiHome)
	renderDisplay(h.output, h.cpu.State, h.settings.PixelOn, h.settings.PixelOff)
}

func (h *Host) setCancel(cancel context.CancelFunc) {
	h.mu.Lock()
	h.cancel = cancel
	h.mu.Unlock()
}

// Switch the terminal into raw input mode so keys arrive as they are
// pressed. The returned function restores the previous mode.
func (h *Host) enterRawMode() (restore func()) {
	if h.terminal == nil {
		return func() {}
	}

	fd := int(h.terminal.Fd())
	st, err := term.MakeRawInput(fd)
	if err != nil {
		h.logger.Debug("Raw input mode unavailable", log.Err(err))
		return func() {}
	}
	return func() {
		term.Restore(fd, st)
	}
}
