// Package mb63h149 models the Roland MB63H149 keyboard scanning gate array
// as a register file plus a key matrix. The real register layout is not
// documented; key groups are readable at offsets 0-7 and any key change
// raises the interrupt output until the status register at offset 8 is read.
package mb63h149

const (
	numGroups      = 8
	statusRegister = 8
	numRegisters   = 16
)

// InterruptFunc receives changes of the interrupt output.
type InterruptFunc func(state bool)

// Scanner is one key scanner device.
type Scanner struct {
	onInterrupt InterruptFunc

	regs    [numRegisters]uint8
	keys    [numGroups]uint8
	pending bool
}

// New returns a scanner with all keys released.
func New(onInterrupt InterruptFunc) *Scanner {
	return &Scanner{onInterrupt: onInterrupt}
}

// Reset releases all keys and clears the registers.
func (s *Scanner) Reset() {
	s.regs = [numRegisters]uint8{}
	s.keys = [numGroups]uint8{}
	s.setInterrupt(false)
}

// Interrupt returns the state of the interrupt output.
func (s *Scanner) Interrupt() bool {
	return s.pending
}

// SetKey presses or releases a key. Keys are numbered 0-63.
func (s *Scanner) SetKey(key int, pressed bool) {
	if key < 0 || key >= numGroups*8 {
		return
	}
	group, bit := key/8, uint8(1)<<(key%8)
	old := s.keys[group]
	if pressed {
		s.keys[group] |= bit
	} else {
		s.keys[group] &^= bit
	}
	if s.keys[group] != old {
		s.setInterrupt(true)
	}
}

// Read is the bus read handler.
func (s *Scanner) Read(offset uint32) uint8 {
	reg := offset % numRegisters
	switch {
	case reg < numGroups:
		return s.keys[reg]
	case reg == statusRegister:
		var status uint8
		if s.pending {
			status = 0x01
		}
		s.setInterrupt(false)
		return status
	default:
		return s.regs[reg]
	}
}

// Write is the bus write handler.
func (s *Scanner) Write(offset uint32, data uint8) {
	s.regs[offset%numRegisters] = data
}

func (s *Scanner) setInterrupt(state bool) {
	if s.pending == state {
		return
	}
	s.pending = state
	if s.onInterrupt != nil {
		s.onInterrupt(state)
	}
}
