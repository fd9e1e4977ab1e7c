// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package host allows you to create a "host" that emulates a complete
// CHIP-8 system: 4K of memory, a 64x32 display, a 16-key keypad, timers, a
// built-in disassembler and a built-in debugger.
//
// Within the host it is possible to load programs into memory, run them in
// real time, step through them an instruction at a time, set address and
// data breakpoints, dump and modify memory, and view and change registers.
package host

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/beevik/cmd"
	"github.com/beevik/gochip8/cpu"
	"github.com/beevik/gochip8/disasm"
	"github.com/retroenv/retrogolib/log"
)

type displayFlags uint8

const (
	displayRegisters displayFlags = 1 << iota
	displayCount

	displayAll = displayRegisters | displayCount
)

type state byte

const (
	stateProcessingCommands state = iota
	stateRunning
	stateBreakpoint
	stateStepOverBreakpoint
)

var (
	errQuit  = errors.New("exiting program")
	errBreak = errors.New("break")
)

// A selection is a command looked up in the command tree together with the
// arguments that followed it on the command line.
type selection struct {
	Command *cmd.Command
	Args    []string
}

// A Host represents a fully emulated CHIP-8 system with a built-in
// debugger.
type Host struct {
	input       *inputPump
	output      *bufio.Writer
	interactive bool
	terminal    *os.File // set when commands come from an interactive terminal
	logger      *log.Logger
	cpu         *cpu.CPU
	debugger    *cpu.Debugger
	clock       *cpu.Clock
	lastCmd     *selection
	state       state
	exprParser  *exprParser
	settings    *settings
	keypad      keypad
	screen      [cpu.DisplayWidth * cpu.DisplayHeight]bool // last frame drawn while running
	sounding    bool
	stepOutSP   int

	interrupted atomic.Bool
	mu          sync.Mutex
	cancel      context.CancelFunc
}

// New creates a new CHIP-8 host environment. If logger is nil, a logger
// with the default configuration is used.
func New(logger *log.Logger) *Host {
	if logger == nil {
		logger = log.NewWithConfig(log.DefaultConfig())
	}

	h := &Host{
		output:     bufio.NewWriter(os.Stdout),
		logger:     logger,
		state:      stateProcessingCommands,
		exprParser: newExprParser(),
		settings:   newSettings(),
	}

	// Create the emulated CPU and its clock.
	h.cpu = cpu.NewCPU(nil)
	h.clock = cpu.NewClock(h.cpu, h.settings.IPS)
	h.clock.Stopped = h.shouldStop

	// Create a CPU debugger and attach it to the CPU.
	h.debugger = cpu.NewDebugger(newDebugHandler(h))
	h.cpu.AttachDebugger(h.debugger)

	return h
}

// SetIPS changes the number of instructions executed per second while
// running.
func (h *Host) SetIPS(ips int) {
	h.settings.IPS = ips
	h.onSettingsUpdate()
}

// RunCommands accepts host commands from a reader and outputs the results
// to a writer. If the commands are interactive, a prompt is displayed while
// the host waits for the next command to be entered.
func (h *Host) RunCommands(r io.Reader, w io.Writer, interactive bool) {
	h.input = startInput(r)
	defer h.input.stop()
	h.output = bufio.NewWriter(w)
	h.interactive = interactive

	h.terminal = nil
	if f, ok := r.(*os.File); ok && interactive && isTerminal(f) {
		h.terminal = f
	}

	if interactive {
		h.println()
	}

	h.displayPC()

	for {
		h.prompt()

		line, err := h.getLine()
		if err != nil {
			break
		}

		var c selection
		if strings.TrimSpace(line) != "" {
			n, args, err := cmds.Lookup(line)
			switch {
			case errors.Is(err, cmd.ErrNotFound):
				h.println("Command not found.")
				continue
			case errors.Is(err, cmd.ErrAmbiguous):
				h.println("Command is ambiguous.")
				continue
			case err != nil:
				h.printf("ERROR: %v.\n", err)
				continue
			}
			if t, ok := n.(*cmd.Tree); ok {
				t.DisplayHelp(h.output)
				continue
			}
			c = selection{Command: n.(*cmd.Command), Args: args}
		} else if h.lastCmd != nil {
			c = *h.lastCmd
		}

		if c.Command == nil {
			continue
		}
		h.lastCmd = &c

		handler := c.Command.Data.(func(*Host, selection) error)
		err = handler(h, c)
		if err != nil {
			break
		}
	}

	h.flush()
}

// Break interrupts a running CPU. It may be called from any goroutine.
func (h *Host) Break() {
	h.interrupted.Store(true)

	h.mu.Lock()
	if h.cancel != nil {
		h.cancel()
	}
	h.mu.Unlock()
}

// Load resets the machine and loads the program file into memory at the
// program start address.
func (h *Host) Load(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	h.cpu.Reset()
	h.keypad.reset()
	n, err := h.cpu.LoadProgram(file)
	if err != nil {
		return fmt.Errorf("loading '%s': %w", filepath.Base(filename), err)
	}

	h.settings.NextDisasmAddr = cpu.ProgramStart
	h.settings.NextMemDumpAddr = cpu.ProgramStart
	h.logger.Info("Program loaded",
		log.String("file", filename),
		log.Int("size", n))
	h.printf("Loaded '%s' (%d bytes) at $%03X.\n", filepath.Base(filename), n, cpu.ProgramStart)
	return nil
}

func (h *Host) print(args ...any) {
	fmt.Fprint(h.output, args...)
}

func (h *Host) printf(format string, args ...any) {
	fmt.Fprintf(h.output, format, args...)
	h.flush()
}

func (h *Host) println(args ...any) {
	fmt.Fprintln(h.output, args...)
	h.flush()
}

func (h *Host) flush() {
	h.output.Flush()
}

func (h *Host) getLine() (string, error) {
	return h.input.readLine()
}

func (h *Host) prompt() {
	if h.interactive {
		h.printf("* ")
	}
}

func (h *Host) displayPC() {
	if h.interactive {
		d, _ := h.disassemble(h.cpu.PC, displayAll)
		h.println(d)
	}
}

func (h *Host) cmdBreakpointList(c selection) error {
	h.println("Addr Enabled")
	h.println("---- -------")
	for _, b := range h.debugger.GetBreakpoints() {
		h.printf("$%03X %v\n", b.Address, !b.Disabled)
	}
	return nil
}

func (h *Host) cmdBreakpointAdd(c selection) error {
	addr, ok := h.addrArg(c)
	if !ok {
		return nil
	}

	h.debugger.AddBreakpoint(addr)
	h.printf("Breakpoint added at $%03X.\n", addr)
	return nil
}

func (h *Host) cmdBreakpointRemove(c selection) error {
	addr, ok := h.addrArg(c)
	if !ok {
		return nil
	}

	if h.debugger.GetBreakpoint(addr) == nil {
		h.printf("No breakpoint was set on $%03X.\n", addr)
		return nil
	}

	h.debugger.RemoveBreakpoint(addr)
	h.printf("Breakpoint at $%03X removed.\n", addr)
	return nil
}

func (h *Host) cmdBreakpointEnable(c selection) error {
	return h.enableBreakpoint(c, true)
}

func (h *Host) cmdBreakpointDisable(c selection) error {
	return h.enableBreakpoint(c, false)
}

func (h *Host) enableBreakpoint(c selection, enable bool) error {
	addr, ok := h.addrArg(c)
	if !ok {
		return nil
	}

	b := h.debugger.GetBreakpoint(addr)
	if b == nil {
		h.printf("No breakpoint was set on $%03X.\n", addr)
		return nil
	}

	b.Disabled = !enable
	h.printf("Breakpoint at $%03X %s.\n", addr, enabledString(enable))
	return nil
}

func (h *Host) cmdDataBreakpointList(c selection) error {
	h.println("Addr Enabled  Value")
	h.println("---- -------  -----")
	for _, b := range h.debugger.GetDataBreakpoints() {
		if b.Conditional {
			h.printf("$%03X %-5v    $%02X\n", b.Address, !b.Disabled, b.Value)
		} else {
			h.printf("$%03X %-5v    <none>\n", b.Address, !b.Disabled)
		}
	}
	return nil
}

func (h *Host) cmdDataBreakpointAdd(c selection) error {
	addr, ok := h.addrArg(c)
	if !ok {
		return nil
	}

	if len(c.Args) > 1 {
		value, err := h.parseExpr(c.Args[1])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		h.debugger.AddConditionalDataBreakpoint(addr, byte(value))
		h.printf("Conditional data breakpoint added at $%03X for value $%02X.\n", addr, byte(value))
	} else {
		h.debugger.AddDataBreakpoint(addr)
		h.printf("Data breakpoint added at $%03X.\n", addr)
	}
	return nil
}

func (h *Host) cmdDataBreakpointRemove(c selection) error {
	addr, ok := h.addrArg(c)
	if !ok {
		return nil
	}

	if h.debugger.GetDataBreakpoint(addr) == nil {
		h.printf("No data breakpoint was set on $%03X.\n", addr)
		return nil
	}

	h.debugger.RemoveDataBreakpoint(addr)
	h.printf("Data breakpoint at $%03X removed.\n", addr)
	return nil
}

func (h *Host) cmdDataBreakpointEnable(c selection) error {
	return h.enableDataBreakpoint(c, true)
}

func (h *Host) cmdDataBreakpointDisable(c selection) error {
	return h.enableDataBreakpoint(c, false)
}

func (h *Host) enableDataBreakpoint(c selection, enable bool) error {
	addr, ok := h.addrArg(c)
	if !ok {
		return nil
	}

	b := h.debugger.GetDataBreakpoint(addr)
	if b == nil {
		h.printf("No data breakpoint was set on $%03X.\n", addr)
		return nil
	}

	b.Disabled = !enable
	h.printf("Data breakpoint at $%03X %s.\n", addr, enabledString(enable))
	return nil
}

func (h *Host) cmdDisassemble(c selection) error {
	if len(c.Args) == 0 {
		c.Args = []string{"$"}
	}

	var addr uint16
	switch c.Args[0] {
	case "$":
		addr = h.settings.NextDisasmAddr
		if addr == 0 {
			addr = h.cpu.PC
		}
	case ".":
		addr = h.cpu.PC
	default:
		a, err := h.parseExpr(c.Args[0])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		addr = a
	}

	lines := h.settings.DisasmLines
	if len(c.Args) > 1 {
		l, err := h.parseExpr(c.Args[1])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		lines = int(l)
	}

	for i := 0; i < lines && int(addr) < cpu.MemorySize; i++ {
		d, next := h.disassemble(addr, 0)
		h.println(d)
		addr = next
	}

	h.settings.NextDisasmAddr = addr
	h.lastCmd.Args = []string{"$", strconv.Itoa(lines)}
	return nil
}

func (h *Host) cmdDisplay(c selection) error {
	renderDisplay(h.output, h.cpu.State, h.settings.PixelOn, h.settings.PixelOff)
	h.flush()
	return nil
}

func (h *Host) cmdEvaluate(c selection) error {
	if len(c.Args) < 1 {
		h.displayUsage(c.Command)
		return nil
	}

	v, err := h.exprParser.Parse(strings.Join(c.Args, " "), h)
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	h.printf("$%04X (%d)\n", uint16(v), v)
	return nil
}

func (h *Host) cmdHelp(c selection) error {
	if err := cmds.GetHelp(h.output, c.Args); err != nil {
		h.printf("%v.\n", err)
	}
	return nil
}

func (h *Host) cmdKeyPress(c selection) error {
	return h.setKey(c, true)
}

func (h *Host) cmdKeyRelease(c selection) error {
	return h.setKey(c, false)
}

func (h *Host) setKey(c selection, down bool) error {
	if len(c.Args) < 1 {
		h.displayUsage(c.Command)
		return nil
	}

	k, err := parseKey(c.Args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	h.keypad.set(h.cpu.State, k, down)
	if down {
		h.printf("Key %X pressed.\n", k)
	} else {
		h.printf("Key %X released.\n", k)
	}
	return nil
}

func (h *Host) cmdLoad(c selection) error {
	if len(c.Args) < 1 {
		h.displayUsage(c.Command)
		return nil
	}

	if err := h.Load(c.Args[0]); err != nil {
		h.logger.Error("Loading program failed", log.Err(err))
		h.printf("Failed to load: %v\n", err)
	}
	return nil
}

func (h *Host) cmdMemoryDump(c selection) error {
	if len(c.Args) == 0 {
		c.Args = []string{"$"}
	}

	var addr uint16
	switch c.Args[0] {
	case "$":
		addr = h.settings.NextMemDumpAddr
		if addr == 0 {
			addr = h.cpu.PC
		}
	case ".":
		addr = h.cpu.PC
	default:
		a, err := h.parseExpr(c.Args[0])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		addr = a
	}

	bytes := uint16(h.settings.MemDumpBytes)
	if len(c.Args) >= 2 {
		var err error
		bytes, err = h.parseExpr(c.Args[1])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
	}

	if int(addr) >= cpu.MemorySize {
		h.printf("Address $%04X is outside memory.\n", addr)
		return nil
	}
	bytes = uint16(min(int(bytes), cpu.MemorySize-int(addr)))

	h.dumpMemory(addr, bytes)

	h.settings.NextMemDumpAddr = (addr + bytes) % cpu.MemorySize
	h.lastCmd.Args = []string{"$", strconv.Itoa(int(bytes))}
	return nil
}

func (h *Host) cmdMemorySet(c selection) error {
	if len(c.Args) < 2 {
		h.displayUsage(c.Command)
		return nil
	}

	addr, err := h.parseExpr(c.Args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	for i, arg := range c.Args[1:] {
		v, err := h.parseExpr(arg)
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		if err := h.cpu.StoreByte(addr+uint16(i), byte(v)); err != nil {
			h.printf("Failed to set $%04X: %v\n", addr+uint16(i), err)
			return nil
		}
	}

	h.printf("Memory set at $%03X.\n", addr)
	return nil
}

func (h *Host) cmdQuit(c selection) error {
	return errQuit
}

func (h *Host) cmdRegister(c selection) error {
	if len(c.Args) == 0 {
		d, _ := h.disassemble(h.cpu.PC, displayAll)
		h.println(d)
		return nil
	}

	if len(c.Args) != 2 {
		h.displayUsage(c.Command)
		return nil
	}

	key := strings.ToLower(c.Args[0])
	v, err := h.parseExpr(c.Args[1])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	s := h.cpu.State
	switch {
	case key == "pc" || key == ".":
		s.PC = v & 0x0fff
		h.settings.NextDisasmAddr = s.PC
		h.printf("Register PC set to $%03X.\n", s.PC)
	case key == "i":
		s.I = v
		h.printf("Register I set to $%03X.\n", s.I)
	case key == "sp":
		if int(v) > cpu.StackSize {
			h.printf("SP must be between 0 and %d.\n", cpu.StackSize)
			return nil
		}
		s.SP = uint8(v)
		h.printf("Register SP set to %d.\n", s.SP)
	case key == "dt":
		s.DelayTimer = byte(v)
		h.printf("Register DT set to $%02X.\n", s.DelayTimer)
	case key == "st":
		s.SoundTimer = byte(v)
		h.printf("Register ST set to $%02X.\n", s.SoundTimer)
	default:
		r, ok := registerIndex(key)
		if !ok {
			h.printf("Unknown register '%s'.\n", c.Args[0])
			return nil
		}
		s.V[r] = byte(v)
		h.printf("Register V%X set to $%02X.\n", r, s.V[r])
	}
	return nil
}

func (h *Host) cmdReset(c selection) error {
	h.cpu.Reset()
	h.keypad.reset()
	h.settings.NextDisasmAddr = 0
	h.settings.NextMemDumpAddr = 0
	h.println("Machine reset.")
	h.displayPC()
	return nil
}

func (h *Host) cmdRun(c selection) error {
	if len(c.Args) > 0 {
		pc, err := h.parseExpr(c.Args[0])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		h.cpu.SetPC(pc)
	}

	if h.terminal != nil {
		h.printf("Running from $%03X. Press ctrl-C or Esc to break.\n", h.cpu.PC)
	}

	h.run()

	h.settings.NextDisasmAddr = h.cpu.PC
	return nil
}

func (h *Host) cmdSet(c selection) error {
	switch len(c.Args) {
	case 0:
		h.println("Variables:")
		h.settings.Display(h.output)
		h.flush()

	case 1:
		line, err := h.settings.Describe(c.Args[0])
		if err != nil {
			h.printf("%v\n", err)
		} else {
			h.println(line)
		}

	default:
		key, value := strings.ToLower(c.Args[0]), strings.Join(c.Args[1:], " ")

		var err error
		switch h.settings.Kind(key) {
		case reflect.Invalid:
			_, err = h.settings.Describe(key)
		case reflect.String:
			if s, errQ := strconv.Unquote(value); errQ == nil {
				value = s
			}
			err = h.settings.Set(key, value)
		case reflect.Bool:
			var v bool
			v, err = stringToBool(value)
			if err == nil {
				err = h.settings.Set(key, v)
			}
		default:
			var v int64
			v, err = h.exprParser.Parse(value, h)
			if err == nil {
				err = h.settings.Set(key, v)
			}
		}

		if err == nil {
			h.println("Setting updated.")
		} else {
			h.printf("%v\n", err)
		}

		h.onSettingsUpdate()
	}

	return nil
}

func (h *Host) cmdStepIn(c selection) error {
	h.stepCount(c, h.step)
	return nil
}

func (h *Host) cmdStepOver(c selection) error {
	h.stepCount(c, h.stepOver)
	return nil
}

func (h *Host) stepCount(c selection, step func()) {
	// Parse the number of steps.
	count := 1
	if len(c.Args) > 0 {
		n, err := h.parseExpr(c.Args[0])
		if err == nil {
			count = int(n)
		}
	}

	// Step the CPU count times.
	h.interrupted.Store(false)
	h.state = stateRunning
	for i := count - 1; i >= 0 && h.state == stateRunning; i-- {
		step()
		switch {
		case i == h.settings.MaxStepLines:
			h.println("...")
		case i < h.settings.MaxStepLines:
			h.displayPC()
		}
	}
	h.state = stateProcessingCommands

	h.settings.NextDisasmAddr = h.cpu.PC
}

func (h *Host) cmdStepOut(c selection) error {
	if h.cpu.SP == 0 {
		h.println("Not in a subroutine.")
		return nil
	}

	h.interrupted.Store(false)
	h.stepOutSP = int(h.cpu.SP)
	h.state = stateRunning
	h.runFrames()
	h.state = stateProcessingCommands
	h.stepOutSP = 0

	h.displayPC()
	h.settings.NextDisasmAddr = h.cpu.PC
	return nil
}

func (h *Host) cmdTimersTick(c selection) error {
	count := 1
	if len(c.Args) > 0 {
		n, err := h.parseExpr(c.Args[0])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		count = int(n)
	}

	for i := 0; i < count; i++ {
		h.cpu.TickTimers()
	}
	h.printf("DT=$%02X ST=$%02X\n", h.cpu.DelayTimer, h.cpu.SoundTimer)
	return nil
}

// Execute a single instruction, stopping on failure.
func (h *Host) step() {
	if err := h.cpu.Step(); err != nil {
		h.fault(err)
	}
}

func (h *Host) stepOver() {
	c := h.cpu

	// Calls need to be handled specially.
	opcode, err := c.Fetch(c.PC)
	if err != nil || cpu.Decode(opcode).Op != cpu.OpCALL {
		h.step()
		return
	}

	// Place a step-over breakpoint on the instruction following the call.
	// Either modify an already existing breakpoint on that instruction, or
	// create a temporary one.
	next := c.PC + 2
	tmpBreakpointCreated := false
	b := h.debugger.GetBreakpoint(next)
	if b == nil {
		b = h.debugger.AddBreakpoint(next)
		tmpBreakpointCreated = true
	}
	b.StepOver = true

	// Run until interrupted.
	h.runFrames()
	b.StepOver = false

	// If we were interrupted by the temporary step-over breakpoint,
	// then continue as normal.
	if h.state == stateStepOverBreakpoint {
		h.state = stateRunning
	}

	// Remove the temporarily created breakpoint.
	if tmpBreakpointCreated {
		h.debugger.RemoveBreakpoint(next)
	}
}

// Run whole frames without real-time pacing until something stops the
// clock.
func (h *Host) runFrames() {
	for {
		err := h.clock.RunFrame()
		switch {
		case err == nil:
			continue
		case !errors.Is(err, cpu.ErrStopped):
			h.fault(err)
		}
		return
	}
}

func (h *Host) fault(err error) {
	h.state = stateBreakpoint
	h.logger.Error("CPU fault",
		log.Err(err),
		log.String("pc", fmt.Sprintf("$%03X", h.cpu.PC)))
	h.printf("CPU fault: %v\n", err)
}

func (h *Host) shouldStop() bool {
	switch {
	case h.state != stateRunning:
		return true
	case h.interrupted.Load():
		return true
	case h.stepOutSP > 0 && int(h.cpu.SP) < h.stepOutSP:
		return true
	}
	return false
}

func (h *Host) onSettingsUpdate() {
	h.exprParser.hexMode = h.settings.HexMode
	h.clock.InstructionsPerSecond = h.settings.IPS
}

func (h *Host) addrArg(c selection) (uint16, bool) {
	if len(c.Args) < 1 {
		h.displayUsage(c.Command)
		return 0, false
	}

	addr, err := h.parseExpr(c.Args[0])
	if err != nil {
		h.printf("%v\n", err)
		return 0, false
	}
	return addr, true
}

func (h *Host) parseExpr(expr string) (uint16, error) {
	v, err := h.exprParser.Parse(expr, h)
	if err != nil {
		return 0, err
	}

	if v < 0 {
		v = 0x10000 + v
	}
	return uint16(v), nil
}

func (h *Host) disassemble(addr uint16, flags displayFlags) (str string, next uint16) {
	line, next := disasm.DisassembleAt(h.cpu, addr)

	b := make([]byte, next-addr)
	h.cpu.LoadBytesAt(addr, b)

	str = fmt.Sprintf("%03X-   %-5s   %-16s", addr, codeString(b), line)

	if (flags & displayRegisters) != 0 {
		str += " " + disasm.GetRegisterString(h.cpu.State)
	}

	if (flags & displayCount) != 0 {
		str += fmt.Sprintf(" N=%d", h.cpu.Instructions)
	}

	return str, next
}

func (h *Host) dumpMemory(addr0, bytes uint16) {
	if bytes == 0 {
		return
	}

	addr1 := addr0 + bytes - 1
	mem := &h.cpu.Memory

	buf := []byte("   -" + strings.Repeat(" ", 35))

	// Don't align display for short dumps.
	if addr1-addr0 < 8 {
		addrToBuf(addr0, buf[0:3])
		for a, c1, c2 := addr0, 5, 31; a <= addr1; a, c1, c2 = a+1, c1+3, c2+1 {
			byteToBuf(mem[a], buf[c1:c1+2])
			buf[c2] = toPrintableChar(mem[a])
		}
		h.println(string(buf))
		return
	}

	// Align addr0 and addr1 to 8-byte boundaries.
	start := uint32(addr0) &^ 7
	stop := min((uint32(addr1)+8)&^7, cpu.MemorySize)

	a := uint16(start)
	for r := start; r < stop; r += 8 {
		addrToBuf(a, buf[0:3])
		for c1, c2 := 5, 31; c1 < 29; c1, c2, a = c1+3, c2+1, a+1 {
			if a >= addr0 && a <= addr1 {
				byteToBuf(mem[a], buf[c1:c1+2])
				buf[c2] = toPrintableChar(mem[a])
			} else {
				buf[c1] = ' '
				buf[c1+1] = ' '
				buf[c2] = ' '
			}
		}
		h.println(string(buf))
	}
}

func (h *Host) displayUsage(c *cmd.Command) {
	if c.Usage != "" {
		c.DisplayUsage(h.output)
	} else {
		h.println("<no help text>")
	}
}

func (h *Host) resolveIdentifier(s string) (int64, error) {
	s = strings.ToLower(s)

	switch s {
	case ".", "pc":
		return int64(h.cpu.PC), nil
	case "i":
		return int64(h.cpu.I), nil
	case "sp":
		return int64(h.cpu.SP), nil
	case "dt":
		return int64(h.cpu.DelayTimer), nil
	case "st":
		return int64(h.cpu.SoundTimer), nil
	}

	if r, ok := registerIndex(s); ok {
		return int64(h.cpu.V[r]), nil
	}

	return 0, fmt.Errorf("identifier '%s' not found", s)
}

func (h *Host) onBreakpoint(c *cpu.CPU, b *cpu.Breakpoint) {
	if b.StepOver {
		h.state = stateStepOverBreakpoint
		return
	}

	h.state = stateBreakpoint
	h.printf("Breakpoint hit at $%03X.\n", b.Address)
	h.displayPC()
}

func (h *Host) onDataBreakpoint(c *cpu.CPU, b *cpu.DataBreakpoint) {
	h.printf("Data breakpoint hit on address $%03X.\n", b.Address)

	h.state = stateBreakpoint

	if h.interactive {
		d, _ := h.disassemble(c.PC, 0)
		h.println(d)
	}
}

// registerIndex returns the index of the general purpose register named
// "v0" through "vf".
func registerIndex(name string) (int, bool) {
	if len(name) != 2 || (name[0] != 'v' && name[0] != 'V') {
		return 0, false
	}
	r, err := strconv.ParseUint(name[1:], 16, 8)
	if err != nil {
		return 0, false
	}
	return int(r), true
}

func enabledString(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}
