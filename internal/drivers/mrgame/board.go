// Package mrgame implements the driver of the Mr. Game 1B11188/0 pinball
// platform: a 68000 main cpu, a Z80 video cpu and two Z80 audio cpus that
// exchange data through a set of latches.
package mrgame

import (
	"github.com/retroenv/retrodrivers/internal/attotime"
	"github.com/retroenv/retrodrivers/internal/cpu"
	"github.com/retroenv/retrodrivers/internal/dac"
	"github.com/retroenv/retrodrivers/internal/i8255"
	"github.com/retroenv/retrodrivers/internal/ioport"
	"github.com/retroenv/retrodrivers/internal/ls259"
	"github.com/retroenv/retrodrivers/internal/machine"
	"github.com/retroenv/retrodrivers/internal/nvram"
	"github.com/retroenv/retrodrivers/internal/screen"
	"github.com/retroenv/retrogolib/log"
)

const (
	mainClock   = 6_000_000
	videoXTAL   = 18_432_000
	videoClock  = videoXTAL / 6
	audioClock  = 4_000_000
	pixelClock  = videoXTAL / 3
	mainIRQRate = 183

	// the audio irq is taken from an undocumented output of a 4040 counter
	irqTimerRate = 16000
	irqAssertAt  = 254
	irqClearAt   = 255

	speakerGain = 0.25
	sampleRate  = 44100
)

// latch outputs
const (
	latchVideoA11 = 0
	latchIntst    = 1
	latchVideoA12 = 3
	latchVideoA13 = 4
	latchFlip     = 6
)

// Board is one instance of the Mr. Game hardware.
type Board struct {
	State PeripheralState

	variant Variant
	logger  *log.Logger

	maincpu   *cpu.Processor
	videocpu  *cpu.Processor
	audiocpu1 *cpu.Processor
	audiocpu2 *cpu.Processor

	latch  *ls259.Latch
	ppi    *i8255.PPI
	screen *screen.Screen

	dsw0, dsw1, x0, x1 *ioport.Port

	dacvol *dac.DAC
	ldac   *dac.DAC
	rdac   *dac.DAC
}

// Configure returns the machine configuration for a video board variant.
func Configure(variant Variant) machine.ConfigFunc {
	return func(m *machine.Machine) error {
		_, err := NewBoard(m, variant)
		return err
	}
}

// NewBoard adds the devices, address maps and timers of the board to a
// machine.
func NewBoard(m *machine.Machine, variant Variant) (*Board, error) {
	b := &Board{
		variant: variant,
		logger:  m.Logger(),
	}
	b.State.Reset()

	b.maincpu = m.AddCPU("maincpu", "M68000", mainClock)
	b.videocpu = m.AddCPU("videocpu", "Z80", videoClock)
	b.audiocpu1 = m.AddCPU("audiocpu1", "Z80", audioClock)
	b.audiocpu2 = m.AddCPU("audiocpu2", "Z80", audioClock)
	m.PeriodicInterrupt(b.maincpu, cpu.IRQ1, mainIRQRate)

	b.dsw0, b.dsw1, b.x0, b.x1 = newPorts()
	m.AddPorts(b.dsw0, b.dsw1, b.x0, b.x1)

	b.latch = ls259.New().
		Bind(latchVideoA11, b.SetVideoA11).
		Bind(latchIntst, b.SetIntst).
		Bind(latchVideoA12, b.SetVideoA12).
		Bind(latchVideoA13, b.SetVideoA13).
		Bind(latchFlip, b.SetFlip)

	b.ppi = i8255.New(i8255.Callbacks{
		InA:  b.readPortA,
		OutB: b.writePortB,
		InC:  b.readPortC,
	})

	m.AddNVRAM(nvram.New("nvram", nvram.DefaultAll0))

	b.screen = screen.NewRaw("screen", pixelClock, 384, 0, 256, 264, 8, 248)
	b.screen.OnVblank(b.Vblank)
	m.AddScreen(b.screen)

	b.dacvol = dac.New("dacvol").SetOutputRange(0, 1)
	b.ldac = dac.New("ldac")
	b.rdac = dac.New("rdac")
	m.SetRecorder(dac.NewRecorder(sampleRate, b.LeftOutput, b.RightOutput))

	if err := b.addMaps(m); err != nil {
		return nil, err
	}

	m.OnStart(func() error {
		m.Scheduler().Periodic("irq_timer", attotime.FromHz(irqTimerRate), func(int) {
			b.IRQTick()
		})
		return nil
	})
	m.OnReset(b.Reset)
	m.SetState(&b.State)

	b.logger.Debug("Board configured", log.String("variant", variant.Name))
	return b, nil
}

// Reset returns the board to its power-on state.
func (b *Board) Reset() {
	b.State.Reset()
	b.latch.Reset()
	b.ppi.Reset()
	b.dacvol.Reset()
	b.ldac.Reset()
	b.rdac.Reset()
}

// Variant returns the video board variant.
func (b *Board) Variant() Variant {
	return b.variant
}

// Latch returns the select latch of the video board.
func (b *Board) Latch() *ls259.Latch {
	return b.latch
}

// LeftOutput returns the left speaker level.
func (b *Board) LeftOutput() float64 {
	return speakerGain * b.ldac.Output() * b.dacvol.Output()
}

// RightOutput returns the right speaker level.
func (b *Board) RightOutput() float64 {
	return speakerGain * b.rdac.Output() * b.dacvol.Output()
}

// ReadStatus returns the DSW0 switches with the audio acknowledge flags.
func (b *Board) ReadStatus() uint8 {
	status := b.dsw0.Read()
	if b.State.Ack1 {
		status |= 1 << 5
	}
	if b.State.Ack2 {
		status |= 1 << 4
	}
	return status
}

// ReadColumn returns the input column of the selected row. Row 7 is the
// video board status.
func (b *Board) ReadColumn() uint8 {
	switch b.State.RowData {
	case 0:
		return b.x0.Read()
	case 1:
		return b.x1.Read()
	case 7:
		return b.State.VideoStatus
	default:
		return 0xff
	}
}

// WriteRow selects the input row.
func (b *Board) WriteRow(data uint8) {
	b.State.RowData = data & 7
}

// WriteSound latches a sound command. A clear bit 7 asserts NMI on both
// audio cpus.
func (b *Board) WriteSound(data uint8) {
	b.State.SoundData = data
	state := cpu.AssertLine
	if data&0x80 != 0 {
		state = cpu.ClearLine
	}
	b.audiocpu1.SetInputLine(cpu.NMI, state)
	b.audiocpu2.SetInputLine(cpu.NMI, state)
}

// ReadSound returns the latched sound command.
func (b *Board) ReadSound() uint8 {
	return b.State.SoundData
}

// WriteTriple drives the lamp and solenoid drivers. Only the video
// acknowledge is modelled: it follows bit 7 when bits 3 and 4 are clear.
func (b *Board) WriteTriple(data uint8) {
	if data&0x18 == 0 {
		b.State.AckV = data&0x80 != 0
	}
}

// WriteVideo latches a command byte for the video cpu.
func (b *Board) WriteVideo(data uint8) {
	b.State.VideoData = data
}

// WriteAck1 sets the acknowledge flag of audio cpu 1.
func (b *Board) WriteAck1(data uint8) {
	b.State.Ack1 = data&1 != 0
}

// WriteAck2 sets the acknowledge flag of audio cpu 2.
func (b *Board) WriteAck2(data uint8) {
	b.State.Ack2 = data&1 != 0
}

// SetVideoA11 sets bit 0 of the graphics bank.
func (b *Board) SetVideoA11(state bool) {
	b.setGfxBankBit(0, state)
}

// SetVideoA12 sets bit 1 of the graphics bank.
func (b *Board) SetVideoA12(state bool) {
	b.setGfxBankBit(1, state)
}

// SetVideoA13 sets bit 2 of the graphics bank.
func (b *Board) SetVideoA13(state bool) {
	b.setGfxBankBit(2, state)
}

func (b *Board) setGfxBankBit(bit uint, state bool) {
	if state {
		b.State.GfxBank |= 1 << bit
	} else {
		b.State.GfxBank &^= 1 << bit
	}
}

// SetIntst enables the video interrupt. Disabling it clears the pending
// interrupt immediately.
func (b *Board) SetIntst(state bool) {
	b.State.Intst = state
	if !state {
		b.videocpu.SetInputLine(b.variant.VideoLine, cpu.ClearLine)
	}
}

// SetFlip sets the screen flip output.
func (b *Board) SetFlip(state bool) {
	b.State.Flip = state
}

// Vblank interrupts the video cpu at the start of vertical blanking when
// the interrupt is enabled.
func (b *Board) Vblank(state bool) {
	if state && b.State.Intst {
		b.videocpu.SetInputLine(b.variant.VideoLine, cpu.AssertLine)
	}
}

// IRQTick advances the audio interrupt counter by one step.
func (b *Board) IRQTick() {
	b.State.IRQCounter++
	switch b.State.IRQCounter {
	case irqAssertAt:
		b.audiocpu1.SetInputLine(cpu.IRQ0, cpu.AssertLine)
		b.audiocpu2.SetInputLine(cpu.IRQ0, cpu.AssertLine)
	case irqClearAt:
		b.audiocpu1.SetInputLine(cpu.IRQ0, cpu.ClearLine)
		b.audiocpu2.SetInputLine(cpu.IRQ0, cpu.ClearLine)
	}
}

func (b *Board) readPortA() uint8 {
	return b.State.VideoData
}

func (b *Board) writePortB(data uint8) {
	b.State.VideoStatus = data
	b.State.AckV = false
}

func (b *Board) readPortC() uint8 {
	value := b.dsw1.Read()
	if b.State.AckV {
		value |= 1 << 4
	}
	return value
}
