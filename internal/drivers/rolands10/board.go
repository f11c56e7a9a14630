// Package rolands10 implements the skeleton drivers of the Roland S-10
// sampler family. Only the memory layout and the LCD and serial
// controllers are modelled.
package rolands10

import (
	"github.com/retroenv/retrodrivers/internal/attotime"
	"github.com/retroenv/retrodrivers/internal/bus"
	"github.com/retroenv/retrodrivers/internal/cpu"
	"github.com/retroenv/retrodrivers/internal/hd44780"
	"github.com/retroenv/retrodrivers/internal/i8251"
	"github.com/retroenv/retrodrivers/internal/machine"
	"github.com/retroenv/retrodrivers/internal/mb63h149"
	"github.com/retroenv/retrodrivers/internal/nvram"
	"github.com/retroenv/retrodrivers/internal/screen"
	"github.com/retroenv/retrogolib/log"
)

const (
	cpuClock       = 12_000_000
	lcdRefreshRate = 60
	lcdVblankUsec  = 2500
	charWidth      = 6
	charHeight     = 8
)

// Model selects the board configuration.
type Model int

const (
	S10 Model = iota
	MKS100
	S220
)

func (m Model) String() string {
	switch m {
	case S10:
		return "s10"
	case MKS100:
		return "mks100"
	case S220:
		return "s220"
	default:
		return "unknown"
	}
}

// State holds the last values written to the unmodelled output latches.
type State struct {
	LEDData       uint8
	LEDLatch      uint8
	LEDLatch2     uint8 // S-220 only
	OutputControl uint8 // S-220 only
	VCAControl    uint8 // S-220 only
}

// Board is one instance of a sampler main board.
type Board struct {
	State State

	model  Model
	logger *log.Logger

	maincpu *cpu.Processor
	usart   *i8251.USART
	lcdc    *hd44780.Controller
	keyscan *mb63h149.Scanner // S-10 only
	screen  *screen.Screen
}

// Configure returns the machine configuration for a model.
func Configure(model Model) machine.ConfigFunc {
	return func(m *machine.Machine) error {
		_, err := NewBoard(m, model)
		return err
	}
}

// NewBoard adds the devices and address maps of the board to a machine.
func NewBoard(m *machine.Machine, model Model) (*Board, error) {
	b := &Board{
		model:  model,
		logger: m.Logger(),
	}

	b.maincpu = m.AddCPU("maincpu", "I8032", cpuClock)
	b.usart = i8251.New(b.transmit)
	m.AddNVRAM(nvram.New("nvram", nvram.DefaultAll0))

	lcdLines, lcdChars := 2, 8
	width, height := charWidth*16, charHeight
	if model == S220 {
		lcdChars = 16
		height = charHeight * 2
	}
	b.lcdc = hd44780.New(lcdLines, lcdChars)
	b.screen = screen.NewLCD("screen", lcdRefreshRate,
		attotime.FromSeconds(lcdVblankUsec/1e6), width, height)
	m.AddScreen(b.screen)

	if model == S10 {
		b.keyscan = mb63h149.New(func(state bool) {
			lineState := cpu.ClearLine
			if state {
				lineState = cpu.AssertLine
			}
			b.maincpu.SetInputLine(cpu.T1, lineState)
		})
	}

	if err := m.AddMap(b.maincpu, bus.Program, programMap()); err != nil {
		return nil, err
	}
	if err := m.AddMap(b.maincpu, bus.IO, b.extMap()); err != nil {
		return nil, err
	}

	m.OnReset(b.Reset)
	m.SetState(&b.State)
	return b, nil
}

// Reset returns the board to its power-on state.
func (b *Board) Reset() {
	b.State = State{}
	b.usart.Reset()
	b.lcdc.Reset()
	if b.keyscan != nil {
		b.keyscan.Reset()
	}
}

// Model returns the board model.
func (b *Board) Model() Model {
	return b.model
}

// LCDText returns the characters shown on the display.
func (b *Board) LCDText() []string {
	return b.lcdc.Text()
}

// Keyscan returns the key scanner, nil for models without a keyboard.
func (b *Board) Keyscan() *mb63h149.Scanner {
	return b.keyscan
}

// USART returns the serial controller of the quick disk interface.
func (b *Board) USART() *i8251.USART {
	return b.usart
}

func (b *Board) transmit(data uint8) {
	b.logger.Debug("Quick disk serial output",
		log.String("model", b.model.String()),
		log.Hex("data", data))
}

func (b *Board) readQDD(offset uint32) uint8 {
	if offset&2 == 0 {
		return b.usart.Read(offset)
	}
	return 0
}

func (b *Board) writeQDD(offset uint32, data uint8) {
	if offset&2 == 0 {
		b.usart.Write(offset, data)
	}
}

func (b *Board) writeLCD(offset uint32, data uint8) {
	if offset == 0 {
		b.lcdc.ControlWrite(data)
	} else {
		b.lcdc.DataWrite(data)
	}
}

func (b *Board) readSwitchScan(uint32) uint8 {
	return 0
}
