// Package hd44780 emulates the instruction and data registers of the
// Hitachi HD44780 character LCD controller. Busy timing is not modelled.
package hd44780

import "strings"

const (
	ddramSize   = 0x80
	cgramSize   = 0x40
	line2Offset = 0x40
	lineLength  = 40
)

// instruction bits
const (
	instrClear        = 0x01
	instrHome         = 0x02
	instrEntryMode    = 0x04
	instrDisplayCtrl  = 0x08
	instrShift        = 0x10
	instrFunctionSet  = 0x20
	instrSetCGRAMAddr = 0x40
	instrSetDDRAMAddr = 0x80
)

// instruction arguments
const (
	entryIncrement   = 0x02
	displayOn        = 0x04
	shiftRight       = 0x04
	shiftDisplay     = 0x08
	functionTwoLines = 0x08
)

// Controller is one HD44780.
type Controller struct {
	lines int
	chars int

	ddram [ddramSize]uint8
	cgram [cgramSize]uint8

	ac        uint8
	cgramMode bool
	increment bool
	displayOn bool
	twoLines  bool
	shift     int
}

// New returns a controller driving a display of the given size.
func New(lines, chars int) *Controller {
	c := &Controller{lines: lines, chars: chars}
	c.Reset()
	return c
}

// Reset performs the power-on initialisation.
func (c *Controller) Reset() {
	for i := range c.ddram {
		c.ddram[i] = ' '
	}
	c.ac = 0
	c.cgramMode = false
	c.increment = true
	c.displayOn = false
	c.shift = 0
}

// SetLCDSize changes the attached display size.
func (c *Controller) SetLCDSize(lines, chars int) {
	c.lines = lines
	c.chars = chars
}

// DisplayOn returns whether the display is enabled.
func (c *Controller) DisplayOn() bool {
	return c.displayOn
}

// Address returns the address counter.
func (c *Controller) Address() uint8 {
	return c.ac
}

// ControlWrite executes an instruction.
func (c *Controller) ControlWrite(data uint8) {
	switch {
	case data&instrSetDDRAMAddr != 0:
		c.ac = data & 0x7f
		c.cgramMode = false

	case data&instrSetCGRAMAddr != 0:
		c.ac = data & 0x3f
		c.cgramMode = true

	case data&instrFunctionSet != 0:
		c.twoLines = data&functionTwoLines != 0

	case data&instrShift != 0:
		if data&shiftDisplay == 0 {
			c.moveCursor(data&shiftRight != 0)
			return
		}
		if data&shiftRight != 0 {
			c.shift--
		} else {
			c.shift++
		}

	case data&instrDisplayCtrl != 0:
		c.displayOn = data&displayOn != 0

	case data&instrEntryMode != 0:
		c.increment = data&entryIncrement != 0

	case data&instrHome != 0:
		c.ac = 0
		c.cgramMode = false
		c.shift = 0

	case data&instrClear != 0:
		for i := range c.ddram {
			c.ddram[i] = ' '
		}
		c.ac = 0
		c.cgramMode = false
		c.increment = true
		c.shift = 0
	}
}

// DataWrite stores a byte at the address counter and advances it.
func (c *Controller) DataWrite(data uint8) {
	if c.cgramMode {
		c.cgram[c.ac&(cgramSize-1)] = data
	} else {
		c.ddram[c.ac&(ddramSize-1)] = data
	}
	c.moveCursor(c.increment)
}

// DataRead returns the byte at the address counter and advances it.
func (c *Controller) DataRead() uint8 {
	var data uint8
	if c.cgramMode {
		data = c.cgram[c.ac&(cgramSize-1)]
	} else {
		data = c.ddram[c.ac&(ddramSize-1)]
	}
	c.moveCursor(c.increment)
	return data
}

// Text returns the visible characters of each display line.
func (c *Controller) Text() []string {
	text := make([]string, 0, c.lines)
	for line := range c.lines {
		var sb strings.Builder
		base := 0
		if line == 1 {
			base = line2Offset
		}
		for pos := range c.chars {
			col := ((pos+c.shift)%lineLength + lineLength) % lineLength
			addr := base + col
			ch := c.ddram[addr]
			if ch < 0x20 || ch > 0x7e {
				ch = '?'
			}
			sb.WriteByte(ch)
		}
		text = append(text, sb.String())
	}
	return text
}

func (c *Controller) moveCursor(forward bool) {
	if c.cgramMode {
		if forward {
			c.ac = (c.ac + 1) & (cgramSize - 1)
		} else {
			c.ac = (c.ac - 1) & (cgramSize - 1)
		}
		return
	}
	if forward {
		c.ac = (c.ac + 1) & 0x7f
	} else {
		c.ac = (c.ac - 1) & 0x7f
	}
}
