package screen

import (
	"context"
	"math"
	"testing"

	"github.com/retroenv/retrodrivers/internal/attotime"
	"github.com/retroenv/retrodrivers/internal/scheduler"
	"github.com/retroenv/retrogolib/assert"
)

func TestRawTiming(t *testing.T) {
	s := NewRaw("screen", 18_432_000.0/3, 384, 0, 256, 264, 8, 248)

	w, h := s.Size()
	assert.Equal(t, 256, w)
	assert.Equal(t, 240, h)
	assert.True(t, math.Abs(s.FrameRate()-60.606) < 0.01)
}

func TestVblankSequence(t *testing.T) {
	s := NewRaw("screen", 18_432_000.0/3, 384, 0, 256, 264, 8, 248)
	sched := scheduler.New()

	var states []bool
	s.OnVblank(func(state bool) { states = append(states, state) })
	s.Start(sched)

	// two frames plus the end of the second vblank
	runFor := s.FramePeriod().Mul(2).Add(attotime.FromHz(18_432_000.0 / 3 / 384).Mul(8))
	assert.NoError(t, sched.RunFor(context.Background(), runFor))

	assert.Equal(t, []bool{true, false, true, false}, states)
	assert.Equal(t, uint64(2), s.Frames())
	assert.False(t, s.InVblank())
}

func TestLCDTiming(t *testing.T) {
	s := NewLCD("screen", 60, attotime.FromSeconds(0.0025), 96, 8)
	sched := scheduler.New()

	var states []bool
	s.OnVblank(func(state bool) { states = append(states, state) })
	s.Start(sched)

	assert.NoError(t, sched.RunFor(context.Background(), attotime.FromSeconds(0.016)))
	assert.Equal(t, []bool{true}, states)
	assert.True(t, s.InVblank())

	s.SetSize(96, 16)
	_, h := s.Size()
	assert.Equal(t, 16, h)
}
