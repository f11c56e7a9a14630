// Package dac emulates simple 8-bit R-2R digital to analog converters and
// records their outputs to WAV.
package dac

// DAC is an 8-bit latch whose output is scaled into a voltage range.
type DAC struct {
	tag   string
	value uint8
	lo    float64
	hi    float64
}

// New returns a DAC with the output range -1 to 1.
func New(tag string) *DAC {
	return &DAC{tag: tag, lo: -1, hi: 1}
}

// Tag returns the device tag.
func (d *DAC) Tag() string {
	return d.tag
}

// SetOutputRange sets the output for input values 0 and 255.
func (d *DAC) SetOutputRange(lo, hi float64) *DAC {
	d.lo = lo
	d.hi = hi
	return d
}

// DataWrite is the bus write handler.
func (d *DAC) DataWrite(_ uint32, data uint8) {
	d.value = data
}

// Value returns the latched input.
func (d *DAC) Value() uint8 {
	return d.value
}

// Output returns the current output level.
func (d *DAC) Output() float64 {
	return d.lo + (d.hi-d.lo)*float64(d.value)/255
}

// Reset clears the latch.
func (d *DAC) Reset() {
	d.value = 0
}
