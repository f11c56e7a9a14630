// Package ls259 emulates the 74LS259 8-bit addressable latch: eight single
// bit outputs, each of which can be bound to a setter at configuration time.
package ls259

// OutputFunc receives the new state of an output bit.
type OutputFunc func(state bool)

// Latch is an 8-bit addressable latch.
type Latch struct {
	q        uint8
	bindings [8]OutputFunc
}

// New returns a latch with all outputs low and no bindings.
func New() *Latch {
	return &Latch{}
}

// Bind attaches a setter to an output bit. Binding the same bit again
// replaces the previous setter.
func (l *Latch) Bind(bit int, fn OutputFunc) *Latch {
	l.bindings[bit&7] = fn
	return l
}

// Output returns the state of an output bit.
func (l *Latch) Output(bit int) bool {
	return l.q&(1<<(bit&7)) != 0
}

// Outputs returns all output bits as a byte.
func (l *Latch) Outputs() uint8 {
	return l.q
}

// WriteBit sets one output. The bound setter is called only when the
// output changes.
func (l *Latch) WriteBit(bit int, state bool) {
	bit &= 7
	mask := uint8(1) << bit
	old := l.q&mask != 0
	if state {
		l.q |= mask
	} else {
		l.q &^= mask
	}
	if old != state && l.bindings[bit] != nil {
		l.bindings[bit](state)
	}
}

// WriteD0 is the bus write handler: the low three offset bits select the
// output and data bit 0 is its new state.
func (l *Latch) WriteD0(offset uint32, data uint8) {
	l.WriteBit(int(offset&7), data&1 != 0)
}

// Write commits a whole bit pattern and calls every bound setter with its
// bit of the pattern.
func (l *Latch) Write(pattern uint8) {
	l.q = pattern
	for bit, fn := range l.bindings {
		if fn != nil {
			fn(pattern&(1<<bit) != 0)
		}
	}
}

// Reset clears all outputs, notifying the setters of outputs that were high.
func (l *Latch) Reset() {
	for bit := range l.bindings {
		l.WriteBit(bit, false)
	}
}
