// Package attotime provides the emulated time base used by the scheduler.
package attotime

import "fmt"

// AttosecondsPerSecond is the number of attoseconds in one second.
const AttosecondsPerSecond = int64(1_000_000_000_000_000_000)

// Zero is the start of emulated time.
var Zero = Time{}

// Time is a point or a span of emulated time with attosecond resolution.
// Attoseconds is always kept in [0, AttosecondsPerSecond).
type Time struct {
	Seconds     int64
	Attoseconds int64
}

// FromHz returns the period of the given frequency. The attosecond part is
// truncated, so repeated addition of a period drifts by less than one
// attosecond per period.
func FromHz(hz float64) Time {
	if hz <= 0 {
		return Time{}
	}
	if hz < 1 {
		seconds := int64(1 / hz)
		return Time{Seconds: seconds}
	}
	return Time{Attoseconds: int64(float64(AttosecondsPerSecond) / hz)}
}

// FromSeconds converts fractional seconds to a Time.
func FromSeconds(seconds float64) Time {
	whole := int64(seconds)
	frac := seconds - float64(whole)
	return Time{Seconds: whole, Attoseconds: int64(frac * float64(AttosecondsPerSecond))}.normalize()
}

// Add returns t+o.
func (t Time) Add(o Time) Time {
	return Time{
		Seconds:     t.Seconds + o.Seconds,
		Attoseconds: t.Attoseconds + o.Attoseconds,
	}.normalize()
}

// Sub returns t-o.
func (t Time) Sub(o Time) Time {
	return Time{
		Seconds:     t.Seconds - o.Seconds,
		Attoseconds: t.Attoseconds - o.Attoseconds,
	}.normalize()
}

// Mul returns t multiplied by n.
func (t Time) Mul(n int64) Time {
	// split to avoid overflowing the attosecond field
	hi := t.Attoseconds / 1_000_000_000
	lo := t.Attoseconds % 1_000_000_000
	hiProduct := hi * n
	loProduct := lo * n

	seconds := t.Seconds*n + hiProduct/1_000_000_000
	attos := (hiProduct%1_000_000_000)*1_000_000_000 + loProduct
	return Time{Seconds: seconds, Attoseconds: attos}.normalize()
}

// Before reports whether t is earlier than o.
func (t Time) Before(o Time) bool {
	if t.Seconds != o.Seconds {
		return t.Seconds < o.Seconds
	}
	return t.Attoseconds < o.Attoseconds
}

// AsSeconds returns the time as fractional seconds.
func (t Time) AsSeconds() float64 {
	return float64(t.Seconds) + float64(t.Attoseconds)/float64(AttosecondsPerSecond)
}

// String implements the fmt.Stringer interface.
func (t Time) String() string {
	return fmt.Sprintf("%d.%018d", t.Seconds, t.Attoseconds)
}

func (t Time) normalize() Time {
	for t.Attoseconds >= AttosecondsPerSecond {
		t.Attoseconds -= AttosecondsPerSecond
		t.Seconds++
	}
	for t.Attoseconds < 0 {
		t.Attoseconds += AttosecondsPerSecond
		t.Seconds--
	}
	return t
}
