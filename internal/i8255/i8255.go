// Package i8255 emulates the Intel 8255 programmable peripheral interface
// in mode 0 (basic input/output). Strobed modes 1 and 2 are not used by
// any driver and are treated as mode 0.
package i8255

// Port register offsets.
const (
	PortA   = 0
	PortB   = 1
	PortC   = 2
	Control = 3
)

// control word bits of a mode set
const (
	modeSet      = 0x80
	portAInput   = 0x10
	portCUpInput = 0x08
	portBInput   = 0x02
	portCLoInput = 0x01

	resetControl = 0x9b // mode 0, all ports input
)

// InFunc supplies the value of an input port.
type InFunc func() uint8

// OutFunc receives the value of an output port.
type OutFunc func(data uint8)

// Callbacks connects the PPI ports to the board. Missing input callbacks
// read as 0xff, missing output callbacks discard the data.
type Callbacks struct {
	InA, InB, InC    InFunc
	OutA, OutB, OutC OutFunc
}

// PPI is one 8255 device.
type PPI struct {
	cb      Callbacks
	control uint8
	latch   [3]uint8
}

// New returns a PPI in its reset state.
func New(cb Callbacks) *PPI {
	p := &PPI{cb: cb}
	p.Reset()
	return p
}

// Reset sets all ports to mode 0 input.
func (p *PPI) Reset() {
	p.writeControl(resetControl)
}

// ControlWord returns the last mode set control word.
func (p *PPI) ControlWord() uint8 {
	return p.control
}

// Read is the bus read handler.
func (p *PPI) Read(offset uint32) uint8 {
	switch offset & 3 {
	case PortA:
		if p.control&portAInput != 0 {
			return in(p.cb.InA)
		}
		return p.latch[PortA]

	case PortB:
		if p.control&portBInput != 0 {
			return in(p.cb.InB)
		}
		return p.latch[PortB]

	case PortC:
		return p.readPortC()

	default:
		return 0xff
	}
}

// Write is the bus write handler.
func (p *PPI) Write(offset uint32, data uint8) {
	switch offset & 3 {
	case PortA:
		p.latch[PortA] = data
		if p.control&portAInput == 0 {
			out(p.cb.OutA, data)
		}

	case PortB:
		p.latch[PortB] = data
		if p.control&portBInput == 0 {
			out(p.cb.OutB, data)
		}

	case PortC:
		p.latch[PortC] = data
		p.outputPortC()

	default:
		if data&modeSet != 0 {
			p.writeControl(data)
			return
		}
		// port C bit set/reset
		bit := (data >> 1) & 7
		if data&1 != 0 {
			p.latch[PortC] |= 1 << bit
		} else {
			p.latch[PortC] &^= 1 << bit
		}
		p.outputPortC()
	}
}

// writeControl sets the port directions, clearing all output latches.
func (p *PPI) writeControl(data uint8) {
	p.control = data
	p.latch = [3]uint8{}

	if p.control&portAInput == 0 {
		out(p.cb.OutA, 0)
	}
	if p.control&portBInput == 0 {
		out(p.cb.OutB, 0)
	}
	p.outputPortC()
}

func (p *PPI) portCOutputMask() uint8 {
	var mask uint8
	if p.control&portCUpInput == 0 {
		mask |= 0xf0
	}
	if p.control&portCLoInput == 0 {
		mask |= 0x0f
	}
	return mask
}

func (p *PPI) readPortC() uint8 {
	outMask := p.portCOutputMask()
	value := p.latch[PortC] & outMask
	if outMask != 0xff {
		value |= in(p.cb.InC) &^ outMask
	}
	return value
}

func (p *PPI) outputPortC() {
	outMask := p.portCOutputMask()
	if outMask == 0 {
		return
	}
	// input bits of a mixed port C float high
	out(p.cb.OutC, p.latch[PortC]&outMask|^outMask)
}

func in(fn InFunc) uint8 {
	if fn == nil {
		return 0xff
	}
	return fn()
}

func out(fn OutFunc, data uint8) {
	if fn != nil {
		fn(data)
	}
}
