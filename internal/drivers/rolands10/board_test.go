package rolands10

import (
	"testing"

	"github.com/retroenv/retrodrivers/internal/bus"
	"github.com/retroenv/retrodrivers/internal/cpu"
	"github.com/retroenv/retrodrivers/internal/i8251"
	"github.com/retroenv/retrodrivers/internal/machine"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func newTestBoard(t *testing.T, model Model) (*machine.Machine, *Board, *bus.Space) {
	t.Helper()

	var board *Board
	game := &machine.GameInfo{
		Name:    model.String(),
		Regions: programRegion,
		Config: func(m *machine.Machine) error {
			var err error
			board, err = NewBoard(m, model)
			return err
		},
	}
	m, err := machine.New(log.NewTestLogger(t), game)
	assert.NoError(t, err)
	assert.NoError(t, m.Start())
	m.Reset()

	ext, err := board.maincpu.Space(bus.IO)
	assert.NoError(t, err)
	return m, board, ext
}

func writeText(ext *bus.Space, s string) {
	for i := range len(s) {
		ext.Write8(0x8001, s[i])
	}
}

func TestLCDControlAndData(t *testing.T) {
	_, b, ext := newTestBoard(t, S10)

	ext.Write8(0x8000, 0x38)
	ext.Write8(0x8f00, 0x0c) // mirrored control register
	ext.Write8(0x8000, 0x01)
	writeText(ext, "S-10")
	ext.Write8(0x8000, 0xc0)
	writeText(ext, "READY")

	assert.Equal(t, []string{"S-10    ", "READY   "}, b.LCDText())
}

func TestQuickDiskUSART(t *testing.T) {
	_, b, ext := newTestBoard(t, MKS100)

	ext.Write8(0x4001, 0x4e)
	ext.Write8(0x4ffd, 0x05) // mirror of the control register
	ext.Write8(0x4000, 0x55)
	ext.Write8(0x4002, 0x66) // offset bit 1 does not select the USART
	assert.Equal(t, uint8(0x05), b.USART().Command())
	assert.Equal(t, 1, b.USART().Sent())

	status := ext.Read8(0x4001)
	assert.Equal(t, uint8(i8251.StatusTxReady), status&i8251.StatusTxReady)
	assert.Equal(t, uint8(0), ext.Read8(0x4003))
}

func TestKeyscan(t *testing.T) {
	_, b, ext := newTestBoard(t, S10)

	b.Keyscan().SetKey(3, true)
	assert.True(t, b.maincpu.Asserted(cpu.T1))
	assert.Equal(t, uint8(0x08), ext.Read8(0x5800)) // mirror of group 0
	assert.Equal(t, uint8(0x01), ext.Read8(0x5008))
	assert.False(t, b.maincpu.Asserted(cpu.T1))

	_, mks, mksExt := newTestBoard(t, MKS100)
	assert.True(t, mks.Keyscan() == nil)
	assert.Equal(t, uint8(0xff), mksExt.Read8(0x5000))
}

func TestMKS100Map(t *testing.T) {
	m, b, ext := newTestBoard(t, MKS100)

	ext.Write8(0x6000, 0x42)
	assert.Equal(t, uint8(0x42), m.NVRAMs()[0].Bytes()[0])
	assert.Equal(t, uint8(0x42), ext.Read8(0x6000))

	assert.Equal(t, uint8(0), ext.Read8(0xaf12))
	ext.Write8(0xa000, 0x12)

	ext.Write8(0x9f00, 0x21)
	ext.Write8(0xcabc, 0x34)
	assert.Equal(t, uint8(0x21), b.State.LEDData)
	assert.Equal(t, uint8(0x34), b.State.LEDLatch)

	// the output control area of the S-220 is unmapped
	assert.Equal(t, uint8(0xff), ext.Read8(0x0000))
}

func TestS220Map(t *testing.T) {
	_, b, ext := newTestBoard(t, S220)

	ext.Write8(0x1234, 0x01)
	ext.Write8(0x5abc, 0x02)
	ext.Write8(0x9f80, 0x03)
	ext.Write8(0xcfff, 0x04)
	assert.Equal(t, State{OutputControl: 0x01, LEDLatch: 0x02, VCAControl: 0x03, LEDLatch2: 0x04}, b.State)

	ext.Write8(0x8000, 0x01)
	writeText(ext, "SAMPLER")
	text := b.LCDText()
	assert.Len(t, text, 2)
	assert.Equal(t, "SAMPLER         ", text[0])

	width, height := b.screen.Size()
	assert.Equal(t, 96, width)
	assert.Equal(t, 16, height)
}

func TestResetClearsState(t *testing.T) {
	m, b, ext := newTestBoard(t, S10)

	ext.Write8(0xc000, 0xff)
	ext.Write8(0x8001, 'A')
	m.Reset()

	assert.Equal(t, State{}, b.State)
	assert.Equal(t, "        ", b.LCDText()[0])
}

func TestSystems(t *testing.T) {
	r := machine.NewRegistry()
	assert.NoError(t, r.Register(Systems()...))

	for _, system := range r.Games() {
		t.Run(system.Name, func(t *testing.T) {
			m, err := machine.New(log.NewTestLogger(t), system)
			assert.NoError(t, err)
			assert.NoError(t, m.Start())
			assert.True(t, system.Flags&machine.IsSkeleton != 0)

			program, err := m.CPUs()[0].Space(bus.Program)
			assert.NoError(t, err)
			m.Region("program")[0xffff] = 0x5a
			assert.Equal(t, uint8(0x5a), program.Read8(0xffff))
		})
	}

	mks, err := r.Lookup("mks100")
	assert.NoError(t, err)
	assert.Equal(t, "s10", mks.Parent)
}
