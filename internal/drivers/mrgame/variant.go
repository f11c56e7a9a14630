package mrgame

import "github.com/retroenv/retrodrivers/internal/cpu"

// Variant describes the differences between the video boards.
type Variant struct {
	Name string

	VideoBase uint32 // start of the video cpu RAM, the ROM ends below it
	PPIStart  uint32
	PPIMirror uint32

	// VideoLine is the video cpu input driven by the vblank signal and
	// cleared through latch bit 1.
	VideoLine cpu.Line
}

var (
	// MrGame is the video board of Dakar and Motor Show.
	MrGame = Variant{
		Name:      "mrgame",
		VideoBase: 0x4000,
		PPIStart:  0x8100,
		PPIMirror: 0x7efc,
		VideoLine: cpu.NMI,
	}

	// WorldCup90 is the later video board with 32K of video ROM.
	WorldCup90 = Variant{
		Name:      "wcup90",
		VideoBase: 0x8000,
		PPIStart:  0xc000,
		PPIMirror: 0x3ffc,
		VideoLine: cpu.IRQ0,
	}
)
