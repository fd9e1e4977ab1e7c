// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

import (
	"context"
	"errors"
	"time"
)

// TimerFrequency is the rate, in Hz, at which the delay and sound timers
// count down.
const TimerFrequency = 60

// DefaultInstructionsPerSecond is the instruction rate used when a Clock
// does not specify one.
const DefaultInstructionsPerSecond = 700

const (
	maxCatchUp  = 4 // frames run back to back before the clock gives up on lost time
	minPerFrame = 1
)

// ErrStopped is returned when a Clock's Stopped hook halts execution.
var ErrStopped = errors.New("clock stopped")

// A Clock paces a CPU in frames of 1/60th of a second. Each frame executes
// a fixed number of instructions and then ticks the timers once, so the
// instruction rate and the timer rate never drift relative to each other.
type Clock struct {
	CPU                   *CPU
	InstructionsPerSecond int

	// Now returns the current time. It defaults to time.Now.
	Now func() time.Time

	// Stopped, if set, is polled before every instruction. Returning true
	// halts the clock with ErrStopped.
	Stopped func() bool

	Frames uint64 // frames completed
}

// NewClock creates a clock for c running at ips instructions per second.
func NewClock(c *CPU, ips int) *Clock {
	return &Clock{CPU: c, InstructionsPerSecond: ips, Now: time.Now}
}

// InstructionsPerFrame returns the number of instructions executed between
// two timer ticks.
func (c *Clock) InstructionsPerFrame() int {
	ips := c.InstructionsPerSecond
	if ips <= 0 {
		ips = DefaultInstructionsPerSecond
	}
	return max(ips/TimerFrequency, minPerFrame)
}

// RunFrame executes one frame worth of instructions and then ticks the
// timers. If an instruction fails, or the clock is stopped mid-frame, the
// timers are not ticked.
func (c *Clock) RunFrame() error {
	n := c.InstructionsPerFrame()
	for i := 0; i < n; i++ {
		if c.Stopped != nil && c.Stopped() {
			return ErrStopped
		}
		if err := c.CPU.Step(); err != nil {
			return err
		}
	}
	c.CPU.TickTimers()
	c.Frames++
	return nil
}

// frameTime returns the time since Run started at which frame n falls due.
func frameTime(n int64) time.Duration {
	return time.Duration((n*int64(time.Second) + TimerFrequency - 1) / TimerFrequency)
}

// Run executes frames in real time until ctx is cancelled, an instruction
// fails, the clock is stopped, or frame returns an error. After every batch
// of frames, frame is called on the running goroutine with the machine
// state so the caller can render the display and update the keypad.
//
// The number of frames due is computed from the total time elapsed since
// Run started. If the caller falls more than a few frames behind, the lost
// time is dropped rather than replayed.
func (c *Clock) Run(ctx context.Context, frame func(s *State) error) error {
	now := c.Now
	if now == nil {
		now = time.Now
	}

	start := now()
	var done int64
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		elapsed := now().Sub(start)
		due := int64(elapsed)*TimerFrequency/int64(time.Second) - done
		if due > maxCatchUp {
			done += due - maxCatchUp
			due = maxCatchUp
		}

		if due == 0 {
			next := start.Add(frameTime(done + 1))
			if err := sleep(ctx, next.Sub(now())); err != nil {
				return err
			}
			continue
		}

		for ; due > 0; due-- {
			if err := c.RunFrame(); err != nil {
				return err
			}
			done++
		}

		if frame != nil {
			if err := frame(c.CPU.State); err != nil {
				return err
			}
		}
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
