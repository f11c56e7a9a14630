// Package nvram implements battery backed RAM: a fixed size memory block
// whose content survives between machine runs.
package nvram

import (
	"fmt"
	"io"
)

// Fill selects the content of a fresh NVRAM without saved data.
type Fill int

const (
	// DefaultAll0 fills fresh memory with 0x00.
	DefaultAll0 Fill = iota
	// DefaultAll1 fills fresh memory with 0xff.
	DefaultAll1
)

// NVRAM wraps a memory block that is persisted by the host.
type NVRAM struct {
	tag  string
	fill Fill
	mem  []byte
}

// New returns an NVRAM device for the given share tag.
func New(tag string, fill Fill) *NVRAM {
	return &NVRAM{tag: tag, fill: fill}
}

// Tag returns the share tag of the memory block.
func (n *NVRAM) Tag() string {
	return n.tag
}

// Attach binds the device to its memory block and applies the default fill.
func (n *NVRAM) Attach(mem []byte) {
	n.mem = mem
	n.Clear()
}

// Bytes returns the attached memory block.
func (n *NVRAM) Bytes() []byte {
	return n.mem
}

// Clear applies the default fill.
func (n *NVRAM) Clear() {
	value := byte(0)
	if n.fill == DefaultAll1 {
		value = 0xff
	}
	for i := range n.mem {
		n.mem[i] = value
	}
}

// Load reads saved content. The saved data must match the block size.
func (n *NVRAM) Load(r io.Reader) error {
	if n.mem == nil {
		return fmt.Errorf("nvram %s: not attached", n.tag)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading nvram %s: %w", n.tag, err)
	}
	if len(data) != len(n.mem) {
		return fmt.Errorf("nvram %s: saved size %d does not match %d", n.tag, len(data), len(n.mem))
	}
	copy(n.mem, data)
	return nil
}

// Save writes the content.
func (n *NVRAM) Save(w io.Writer) error {
	if _, err := w.Write(n.mem); err != nil {
		return fmt.Errorf("writing nvram %s: %w", n.tag, err)
	}
	return nil
}
