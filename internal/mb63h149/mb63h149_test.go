package mb63h149

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestKeyMatrix(t *testing.T) {
	var irq []bool
	s := New(func(state bool) { irq = append(irq, state) })

	s.SetKey(9, true)
	s.SetKey(9, true)
	assert.Equal(t, uint8(0x02), s.Read(1))
	assert.Equal(t, uint8(0x02), s.Read(0x11))
	assert.True(t, s.Interrupt())

	assert.Equal(t, uint8(0x01), s.Read(8))
	assert.False(t, s.Interrupt())
	assert.Equal(t, uint8(0x00), s.Read(8))
	assert.Equal(t, []bool{true, false}, irq)

	s.SetKey(64, true)
	assert.False(t, s.Interrupt())
}

func TestRegisters(t *testing.T) {
	s := New(nil)
	s.Write(0x0c, 0x5a)
	assert.Equal(t, uint8(0x5a), s.Read(0x0c))

	s.SetKey(0, true)
	s.Reset()
	assert.Equal(t, uint8(0), s.Read(0))
	assert.Equal(t, uint8(0), s.Read(0x0c))
	assert.False(t, s.Interrupt())
}
