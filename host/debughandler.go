// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"fmt"

	"github.com/beevik/gochip8/cpu"
	"github.com/retroenv/retrogolib/log"
)

// The debugHandler receives breakpoint notifications from the CPU debugger,
// logs them and hands them to the host.
type debugHandler struct {
	host *Host
}

func newDebugHandler(h *Host) *debugHandler {
	return &debugHandler{host: h}
}

func (d *debugHandler) OnBreakpoint(c *cpu.CPU, b *cpu.Breakpoint) {
	if !b.StepOver {
		d.host.logger.Debug("Breakpoint hit",
			log.String("address", fmt.Sprintf("$%03X", b.Address)),
			log.Int("instructions", int(c.Instructions)))
	}
	d.host.onBreakpoint(c, b)
}

func (d *debugHandler) OnDataBreakpoint(c *cpu.CPU, b *cpu.DataBreakpoint) {
	d.host.logger.Debug("Data breakpoint hit",
		log.String("address", fmt.Sprintf("$%03X", b.Address)),
		log.String("pc", fmt.Sprintf("$%03X", c.PC)))
	d.host.onDataBreakpoint(c, b)
}
