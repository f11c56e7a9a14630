// Package screen provides the frame timing of an emulated display. Only
// the vertical blanking signal is produced; nothing is rendered.
package screen

import (
	"github.com/retroenv/retrodrivers/internal/attotime"
	"github.com/retroenv/retrodrivers/internal/scheduler"
)

// VblankFunc is called with true when vertical blanking starts and with
// false when it ends.
type VblankFunc func(state bool)

// Screen generates the vblank signal of one display.
type Screen struct {
	tag    string
	width  int
	height int

	framePeriod  attotime.Time
	vblankStart  attotime.Time // offset of vblank start within a frame
	vblankLength attotime.Time

	vblank   VblankFunc
	inVblank bool
	frames   uint64
}

// NewRaw returns a raster screen defined by its pixel clock and the total,
// blank-end and blank-start positions of both axes.
func NewRaw(tag string, pixelClock float64, htotal, hbend, hbstart, vtotal, vbend, vbstart int) *Screen {
	line := attotime.FromHz(pixelClock / float64(htotal))
	return &Screen{
		tag:          tag,
		width:        hbstart - hbend,
		height:       vbstart - vbend,
		framePeriod:  line.Mul(int64(vtotal)),
		vblankStart:  line.Mul(int64(vbstart)),
		vblankLength: line.Mul(int64(vtotal - vbstart + vbend)),
	}
}

// NewLCD returns a screen with a fixed refresh rate and vblank duration.
func NewLCD(tag string, refreshHz float64, vblank attotime.Time, width, height int) *Screen {
	frame := attotime.FromHz(refreshHz)
	return &Screen{
		tag:          tag,
		width:        width,
		height:       height,
		framePeriod:  frame,
		vblankStart:  frame.Sub(vblank),
		vblankLength: vblank,
	}
}

// Tag returns the device tag.
func (s *Screen) Tag() string {
	return s.tag
}

// Size returns the visible area.
func (s *Screen) Size() (int, int) {
	return s.width, s.height
}

// SetSize changes the visible area.
func (s *Screen) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// FramePeriod returns the duration of one frame.
func (s *Screen) FramePeriod() attotime.Time {
	return s.framePeriod
}

// FrameRate returns the refresh rate in Hz.
func (s *Screen) FrameRate() float64 {
	return 1 / s.framePeriod.AsSeconds()
}

// OnVblank sets the vblank callback, replacing any previous one.
func (s *Screen) OnVblank(fn VblankFunc) {
	s.vblank = fn
}

// InVblank returns whether the screen is in vertical blanking.
func (s *Screen) InVblank() bool {
	return s.inVblank
}

// Frames returns the number of completed vblank periods.
func (s *Screen) Frames() uint64 {
	return s.frames
}

// Start registers the vblank start and end timers.
func (s *Screen) Start(sched *scheduler.Scheduler) {
	start := sched.NewTimer(s.tag+" vblank start", func(int) { s.setVblank(true) })
	start.AdjustPeriodic(s.vblankStart, s.framePeriod, 0)

	end := sched.NewTimer(s.tag+" vblank end", func(int) {
		s.setVblank(false)
		s.frames++
	})
	end.AdjustPeriodic(s.vblankStart.Add(s.vblankLength), s.framePeriod, 0)
}

func (s *Screen) setVblank(state bool) {
	s.inVblank = state
	if s.vblank != nil {
		s.vblank(state)
	}
}
