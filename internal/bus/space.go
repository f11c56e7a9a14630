package bus

import (
	"github.com/retroenv/retrogolib/log"
)

// Space is a built address map that routes accesses of one processor
// address space. The entries are stored highest precedence first.
type Space struct {
	name       string
	globalMask uint32
	entries    []*Range
	logger     *log.Logger

	logUnmapped bool
}

// Name returns the name of the address space.
func (s *Space) Name() string {
	return s.name
}

// LogUnmapped enables debug logging of accesses that hit no handler.
func (s *Space) LogUnmapped(enabled bool) {
	s.logUnmapped = enabled
}

// Ranges returns the entries of the space in definition order.
func (s *Space) Ranges() []*Range {
	ranges := make([]*Range, len(s.entries))
	for i, r := range s.entries {
		ranges[len(s.entries)-1-i] = r
	}
	return ranges
}

// Lookup returns the range that handles the address and the offset of the
// address within it.
func (s *Space) Lookup(address uint32) (*Range, uint32, bool) {
	address &= s.globalMask
	for _, r := range s.entries {
		masked := address &^ r.MirrorMask
		if masked >= r.Start && masked <= r.End {
			return r, masked - r.Start, true
		}
	}
	return nil, 0, false
}

// Read8 reads a byte.
func (s *Space) Read8(address uint32) uint8 {
	r, offset, ok := s.Lookup(address)
	if !ok {
		s.unmapped("read", address)
		return OpenBus
	}

	switch r.Kind {
	case ROM, RAM:
		return r.mem[offset]
	case ReadHook, ReadWriteHook:
		return r.read(offset)
	default:
		// write-only range
		return OpenBus
	}
}

// Write8 writes a byte.
func (s *Space) Write8(address uint32, data uint8) {
	r, offset, ok := s.Lookup(address)
	if !ok {
		s.unmapped("write", address)
		return
	}

	switch r.Kind {
	case RAM:
		r.mem[offset] = data
	case WriteHook, ReadWriteHook:
		r.write(offset, data)
	default:
		// ROM and read-only ranges drop writes
	}
}

// Read16 reads a big-endian word as two byte accesses, the high byte from
// the even address.
func (s *Space) Read16(address uint32) uint16 {
	address &^= 1
	return uint16(s.Read8(address))<<8 | uint16(s.Read8(address+1))
}

// Write16 writes a big-endian word as two byte accesses.
func (s *Space) Write16(address uint32, data uint16) {
	address &^= 1
	s.Write8(address, uint8(data>>8))
	s.Write8(address+1, uint8(data))
}

func (s *Space) unmapped(access string, address uint32) {
	if !s.logUnmapped {
		return
	}
	s.logger.Debug("Unmapped access",
		log.String("space", s.name),
		log.String("access", access),
		log.Hex("address", address))
}
