// Package bus implements the address router of an emulated processor: a
// static, ordered list of address ranges with optional mirroring that
// routes reads and writes to ROM, RAM or peripheral hooks.
package bus

import (
	"errors"
	"fmt"
)

// OpenBus is the value returned by reads that hit no readable handler.
const OpenBus = uint8(0xff)

// ErrUnknownSpace is returned when a processor has no map for an address space.
var ErrUnknownSpace = errors.New("unknown address space")

// ReadFunc handles a read at the given offset relative to the range start.
type ReadFunc func(offset uint32) uint8

// WriteFunc handles a write at the given offset relative to the range start.
type WriteFunc func(offset uint32, data uint8)

// Reader adapts a hook that ignores the offset.
func Reader(fn func() uint8) ReadFunc {
	return func(uint32) uint8 { return fn() }
}

// Writer adapts a hook that ignores the offset.
func Writer(fn func(data uint8)) WriteFunc {
	return func(_ uint32, data uint8) { fn(data) }
}

// SpaceType identifies the address space of a processor.
type SpaceType int

const (
	Program SpaceType = iota
	IO
)

func (s SpaceType) String() string {
	switch s {
	case Program:
		return "program"
	case IO:
		return "io"
	default:
		return "undefined"
	}
}

// SpaceTypeFromString parses the name of an address space.
func SpaceTypeFromString(name string) (SpaceType, error) {
	switch name {
	case "program", "prg":
		return Program, nil
	case "io":
		return IO, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownSpace, name)
	}
}

// Kind is the handler type of an address range.
type Kind int

const (
	Unmapped Kind = iota
	ROM
	RAM
	ReadHook
	WriteHook
	ReadWriteHook
)

func (k Kind) String() string {
	switch k {
	case ROM:
		return "rom"
	case RAM:
		return "ram"
	case ReadHook:
		return "r"
	case WriteHook:
		return "w"
	case ReadWriteHook:
		return "rw"
	default:
		return "unmapped"
	}
}

// Resources provides the backing memory that ROM and shared RAM ranges
// are bound to when a map is built.
type Resources interface {
	// Region returns the ROM region with the given name, nil if it does not exist.
	Region(name string) []byte
	// Share returns the shared memory block with the given tag, creating it
	// with the given size on first use.
	Share(tag string, size int) ([]byte, error)
}
