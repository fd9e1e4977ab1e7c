// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu_test

import (
	"testing"

	"github.com/beevik/gochip8/cpu"
	"github.com/retroenv/retrogolib/assert"
)

type recordingHandler struct {
	breakpoints     []uint16
	dataBreakpoints []uint16
}

func (h *recordingHandler) OnBreakpoint(c *cpu.CPU, b *cpu.Breakpoint) {
	h.breakpoints = append(h.breakpoints, b.Address)
}

func (h *recordingHandler) OnDataBreakpoint(c *cpu.CPU, b *cpu.DataBreakpoint) {
	h.dataBreakpoints = append(h.dataBreakpoints, b.Address)
}

func TestBreakpoint(t *testing.T) {
	c := loadCPU(t, 0x6001, 0x6002, 0x1200)
	h := &recordingHandler{}
	d := cpu.NewDebugger(h)
	c.AttachDebugger(d)

	d.AddBreakpoint(0x202)
	b := d.AddBreakpoint(0x204)
	b.Disabled = true

	stepCPU(t, c, 4)
	assert.Equal(t, []uint16{0x202, 0x202}, h.breakpoints)

	c.DetachDebugger()
	stepCPU(t, c, 3)
	assert.Equal(t, 2, len(h.breakpoints))
}

func TestBreakpointOnKeyWait(t *testing.T) {
	// 200: LD V0, $01
	// 202: LD V3, K
	// 204: JP $204
	c := loadCPU(t, 0x6001, 0xF30A, 0x1204)
	h := &recordingHandler{}
	d := cpu.NewDebugger(h)
	c.AttachDebugger(d)

	d.AddBreakpoint(0x202)
	d.AddBreakpoint(0x204)

	// The breakpoint fires on arrival, not again while the wait repeats.
	stepCPU(t, c, 4)
	expectPC(t, c, 0x202)
	assert.Equal(t, []uint16{0x202}, h.breakpoints)

	c.SetKey(5, true)
	stepCPU(t, c, 1)
	expectPC(t, c, 0x204)
	expectV(t, c, 3, 5)
	assert.Equal(t, []uint16{0x202, 0x204}, h.breakpoints)

	// A jump to itself does not re-arrive at its own breakpoint.
	stepCPU(t, c, 3)
	assert.Equal(t, []uint16{0x202, 0x204}, h.breakpoints)
}

func TestBreakpointList(t *testing.T) {
	d := cpu.NewDebugger(nil)
	d.AddBreakpoint(0x300)
	d.AddBreakpoint(0x200)
	d.AddBreakpoint(0x250)

	var addrs []uint16
	for _, b := range d.GetBreakpoints() {
		addrs = append(addrs, b.Address)
	}
	assert.Equal(t, []uint16{0x200, 0x250, 0x300}, addrs)

	d.RemoveBreakpoint(0x250)
	assert.True(t, d.GetBreakpoint(0x250) == nil)
	assert.True(t, d.GetBreakpoint(0x300) != nil)
	assert.Equal(t, 2, len(d.GetBreakpoints()))
}

func TestDataBreakpoint(t *testing.T) {
	// 200: LD I, $300
	// 202: LD V0, $01
	// 204: LD V1, $02
	// 206: LD [I], V1
	c := loadCPU(t, 0xA300, 0x6001, 0x6102, 0xF155)
	h := &recordingHandler{}
	d := cpu.NewDebugger(h)
	c.AttachDebugger(d)

	d.AddDataBreakpoint(0x300)
	d.AddConditionalDataBreakpoint(0x301, 0x03)

	stepCPU(t, c, 4)
	assert.Equal(t, []uint16{0x300}, h.dataBreakpoints)
	expectMem(t, c, 0x300, 0x01)
	expectMem(t, c, 0x301, 0x02)
}

func TestConditionalDataBreakpoint(t *testing.T) {
	c := loadCPU(t, 0xA300, 0x60FE, 0xF033)
	h := &recordingHandler{}
	d := cpu.NewDebugger(h)
	c.AttachDebugger(d)

	d.AddConditionalDataBreakpoint(0x301, 0x05)
	d.AddConditionalDataBreakpoint(0x302, 0x00)

	stepCPU(t, c, 3)
	assert.Equal(t, []uint16{0x301}, h.dataBreakpoints)

	var addrs []uint16
	for _, b := range d.GetDataBreakpoints() {
		assert.True(t, b.Conditional)
		addrs = append(addrs, b.Address)
	}
	assert.Equal(t, []uint16{0x301, 0x302}, addrs)

	d.RemoveDataBreakpoint(0x301)
	assert.True(t, d.GetDataBreakpoint(0x301) == nil)
}
