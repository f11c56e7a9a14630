// Package script runs Lua scripts against a machine. Scripts can
// access the address spaces, drive inputs and advance emulated time.
package script

import (
	"context"
	"fmt"

	"github.com/retroenv/retrodrivers/internal/attotime"
	"github.com/retroenv/retrodrivers/internal/bus"
	"github.com/retroenv/retrodrivers/internal/cpu"
	"github.com/retroenv/retrodrivers/internal/machine"
	"github.com/retroenv/retrogolib/log"
	lua "github.com/yuin/gopher-lua"
)

// Engine executes scripts for one machine.
type Engine struct {
	ctx    context.Context
	logger *log.Logger
	m      *machine.Machine
	state  *lua.LState
}

// New returns an engine with the machine functions registered.
func New(ctx context.Context, logger *log.Logger, m *machine.Machine) *Engine {
	state := lua.NewState()
	state.SetContext(ctx)

	e := &Engine{
		ctx:    ctx,
		logger: logger,
		m:      m,
		state:  state,
	}

	functions := map[string]lua.LGFunction{
		"read":    e.read,
		"write":   e.write,
		"read16":  e.read16,
		"write16": e.write16,
		"run":     e.run,
		"line":    e.line,
		"ack":     e.ack,
		"input":   e.input,
		"dip":     e.dip,
		"time":    e.time,
		"log":     e.log,
	}
	for name, fn := range functions {
		state.SetGlobal(name, state.NewFunction(fn))
	}
	return e
}

// Close releases the Lua state.
func (e *Engine) Close() {
	e.state.Close()
}

// RunString executes a script given as source code.
func (e *Engine) RunString(source string) error {
	if err := e.state.DoString(source); err != nil {
		return e.scriptError("running script", err)
	}
	return nil
}

// RunFile executes a script file.
func (e *Engine) RunFile(path string) error {
	if err := e.state.DoFile(path); err != nil {
		return e.scriptError(fmt.Sprintf("running script '%s'", path), err)
	}
	return nil
}

// scriptError wraps a script failure. Lua errors carry only text, so a
// cancelled run context is returned in place of the Lua error.
func (e *Engine) scriptError(action string, err error) error {
	if ctxErr := e.ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%s: %w", action, ctxErr)
	}
	return fmt.Errorf("%s: %w", action, err)
}

func (e *Engine) space(l *lua.LState) *bus.Space {
	p := e.cpu(l)
	spaceType, err := bus.SpaceTypeFromString(l.CheckString(2))
	if err != nil {
		l.ArgError(2, err.Error())
	}
	space, err := p.Space(spaceType)
	if err != nil {
		l.RaiseError("%s", err.Error())
	}
	return space
}

func (e *Engine) cpu(l *lua.LState) *cpu.Processor {
	p, err := e.m.CPU(l.CheckString(1))
	if err != nil {
		l.ArgError(1, err.Error())
	}
	return p
}

// read(cpu, space, address)
func (e *Engine) read(l *lua.LState) int {
	space := e.space(l)
	l.Push(lua.LNumber(space.Read8(uint32(l.CheckInt64(3)))))
	return 1
}

// write(cpu, space, address, value)
func (e *Engine) write(l *lua.LState) int {
	space := e.space(l)
	space.Write8(uint32(l.CheckInt64(3)), uint8(l.CheckInt(4)))
	return 0
}

// read16(cpu, space, address)
func (e *Engine) read16(l *lua.LState) int {
	space := e.space(l)
	l.Push(lua.LNumber(space.Read16(uint32(l.CheckInt64(3)))))
	return 1
}

// write16(cpu, space, address, value)
func (e *Engine) write16(l *lua.LState) int {
	space := e.space(l)
	space.Write16(uint32(l.CheckInt64(3)), uint16(l.CheckInt(4)))
	return 0
}

// run(seconds)
func (e *Engine) run(l *lua.LState) int {
	seconds := float64(l.CheckNumber(1))
	if seconds < 0 {
		l.ArgError(1, "negative duration")
	}
	if err := e.m.Run(e.ctx, attotime.FromSeconds(seconds)); err != nil {
		l.RaiseError("%s", err.Error())
	}
	return 0
}

// line(cpu, name) returns "clear", "assert" or "hold".
func (e *Engine) line(l *lua.LState) int {
	p := e.cpu(l)
	line, err := cpu.LineFromString(l.CheckString(2))
	if err != nil {
		l.ArgError(2, err.Error())
	}
	l.Push(lua.LString(p.State(line).String()))
	return 1
}

// ack(cpu, name) acknowledges an interrupt.
func (e *Engine) ack(l *lua.LState) int {
	p := e.cpu(l)
	line, err := cpu.LineFromString(l.CheckString(2))
	if err != nil {
		l.ArgError(2, err.Error())
	}
	p.Acknowledge(line)
	return 0
}

// input(port, field, pressed)
func (e *Engine) input(l *lua.LState) int {
	port, err := e.m.Ports().Port(l.CheckString(1))
	if err != nil {
		l.ArgError(1, err.Error())
	}
	if err := port.Press(l.CheckString(2), l.CheckBool(3)); err != nil {
		l.RaiseError("%s", err.Error())
	}
	return 0
}

// dip(port, field, setting)
func (e *Engine) dip(l *lua.LState) int {
	port, err := e.m.Ports().Port(l.CheckString(1))
	if err != nil {
		l.ArgError(1, err.Error())
	}
	if err := port.SetDip(l.CheckString(2), l.CheckString(3)); err != nil {
		l.RaiseError("%s", err.Error())
	}
	return 0
}

// time() returns the emulated time in seconds.
func (e *Engine) time(l *lua.LState) int {
	l.Push(lua.LNumber(e.m.Time().AsSeconds()))
	return 1
}

// log(message)
func (e *Engine) log(l *lua.LState) int {
	e.logger.Info(l.CheckString(1), log.String("game", e.m.Game().Name))
	return 0
}
