package attotime

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestFromHz(t *testing.T) {
	tests := []struct {
		name string
		hz   float64
		want Time
	}{
		{name: "16 kHz", hz: 16000, want: Time{Attoseconds: 62_500_000_000_000}},
		{name: "1 Hz", hz: 1, want: Time{Attoseconds: AttosecondsPerSecond}},
		{name: "half Hz", hz: 0.5, want: Time{Seconds: 2}},
		{name: "zero", hz: 0, want: Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromHz(tt.hz))
		})
	}
}

func TestAddNormalizes(t *testing.T) {
	a := Time{Attoseconds: AttosecondsPerSecond - 1}
	b := Time{Attoseconds: 2}

	sum := a.Add(b)
	assert.Equal(t, int64(1), sum.Seconds)
	assert.Equal(t, int64(1), sum.Attoseconds)
}

func TestMul(t *testing.T) {
	period := FromHz(16000)

	assert.Equal(t, Time{Seconds: 1}, period.Mul(16000))
	assert.Equal(t, Time{Attoseconds: 62_500_000_000_000 * 254}, period.Mul(254))
}

func TestBefore(t *testing.T) {
	assert.True(t, Time{Seconds: 1}.Before(Time{Seconds: 2}))
	assert.True(t, Time{Attoseconds: 1}.Before(Time{Attoseconds: 2}))
	assert.False(t, Time{Seconds: 1}.Before(Time{Seconds: 1}))
	assert.False(t, Time{Seconds: 2}.Before(Time{Seconds: 1, Attoseconds: 5}))
}

func TestFromSeconds(t *testing.T) {
	got := FromSeconds(1.5)
	assert.Equal(t, int64(1), got.Seconds)
	assert.Equal(t, AttosecondsPerSecond/2, got.Attoseconds)
}

func TestSub(t *testing.T) {
	got := Time{Seconds: 1}.Sub(Time{Attoseconds: 1})
	assert.Equal(t, Time{Attoseconds: AttosecondsPerSecond - 1}, got)
}
