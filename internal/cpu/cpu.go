// Package cpu provides the processor stand-in of the host framework: an
// owner of address spaces and interrupt input lines. Instruction execution
// is not emulated; other components drive the address spaces directly.
package cpu

import (
	"fmt"
	"strings"

	"github.com/retroenv/retrodrivers/internal/bus"
	"github.com/retroenv/retrogolib/log"
)

// Line identifies an interrupt input of a processor.
type Line int

const (
	IRQ0 Line = iota
	IRQ1
	IRQ2
	IRQ3
	IRQ4
	IRQ5
	IRQ6
	IRQ7
	NMI
	// T1 is the MCS-51 timer 1 count input.
	T1

	numLines
)

func (l Line) String() string {
	switch l {
	case NMI:
		return "nmi"
	case T1:
		return "t1"
	}
	if l >= IRQ0 && l <= IRQ7 {
		return fmt.Sprintf("irq%d", int(l))
	}
	return "undefined"
}

// Lines returns all input lines in numeric order.
func Lines() []Line {
	lines := make([]Line, 0, numLines)
	for l := IRQ0; l < numLines; l++ {
		lines = append(lines, l)
	}
	return lines
}

// LineFromString parses a line name like "irq0" or "nmi".
func LineFromString(name string) (Line, error) {
	name = strings.ToLower(name)
	for l := IRQ0; l < numLines; l++ {
		if l.String() == name {
			return l, nil
		}
	}
	return 0, fmt.Errorf("unknown input line '%s'", name)
}

// LineState is the level driven onto an input line.
type LineState int

const (
	ClearLine LineState = iota
	AssertLine
	// HoldLine asserts the line until the interrupt is acknowledged.
	HoldLine
)

func (s LineState) String() string {
	switch s {
	case ClearLine:
		return "clear"
	case AssertLine:
		return "assert"
	case HoldLine:
		return "hold"
	default:
		return "undefined"
	}
}

// Interruptible is implemented by anything that accepts interrupt line
// changes. Drivers depend on this rather than on Processor.
type Interruptible interface {
	SetInputLine(line Line, state LineState)
}

var _ Interruptible = &Processor{}

// Processor is a named processor with its address spaces and input lines.
type Processor struct {
	tag   string
	model string
	clock float64

	spaces map[bus.SpaceType]*bus.Space
	lines  [numLines]LineState
	edges  [numLines]uint64

	logger *log.Logger
}

// New returns a processor with all input lines cleared.
func New(logger *log.Logger, tag, model string, clock float64) *Processor {
	return &Processor{
		tag:    tag,
		model:  model,
		clock:  clock,
		spaces: make(map[bus.SpaceType]*bus.Space),
		logger: logger,
	}
}

// Tag returns the device tag of the processor.
func (p *Processor) Tag() string {
	return p.tag
}

// Model returns the processor type name.
func (p *Processor) Model() string {
	return p.model
}

// Clock returns the clock frequency in Hz.
func (p *Processor) Clock() float64 {
	return p.clock
}

// SetSpace attaches a built address space.
func (p *Processor) SetSpace(spaceType bus.SpaceType, space *bus.Space) {
	p.spaces[spaceType] = space
}

// Space returns the address space of the given type.
func (p *Processor) Space(spaceType bus.SpaceType) (*bus.Space, error) {
	space, ok := p.spaces[spaceType]
	if !ok {
		return nil, fmt.Errorf("%w: %s has no %s space", bus.ErrUnknownSpace, p.tag, spaceType)
	}
	return space, nil
}

// SetInputLine drives an input line.
func (p *Processor) SetInputLine(line Line, state LineState) {
	if line < 0 || line >= numLines {
		return
	}
	if p.lines[line] == ClearLine && state != ClearLine {
		p.edges[line]++
		p.logger.Debug("Input line asserted",
			log.String("cpu", p.tag),
			log.Stringer("line", line),
			log.Stringer("state", state))
	}
	p.lines[line] = state
}

// State returns the current state of an input line.
func (p *Processor) State(line Line) LineState {
	if line < 0 || line >= numLines {
		return ClearLine
	}
	return p.lines[line]
}

// Asserted returns whether an input line is currently active.
func (p *Processor) Asserted(line Line) bool {
	return p.State(line) != ClearLine
}

// AssertCount returns how often the line went from clear to active.
func (p *Processor) AssertCount(line Line) uint64 {
	if line < 0 || line >= numLines {
		return 0
	}
	return p.edges[line]
}

// Acknowledge completes an interrupt acknowledge cycle, releasing the line
// if it was held.
func (p *Processor) Acknowledge(line Line) {
	if p.State(line) == HoldLine {
		p.lines[line] = ClearLine
	}
}

// Reset clears all input lines.
func (p *Processor) Reset() {
	for i := range p.lines {
		p.lines[i] = ClearLine
	}
}
