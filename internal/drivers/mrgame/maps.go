package mrgame

import (
	"github.com/retroenv/retrodrivers/internal/bus"
	"github.com/retroenv/retrodrivers/internal/cpu"
	"github.com/retroenv/retrodrivers/internal/machine"
)

func (b *Board) addMaps(m *machine.Machine) error {
	maps := []struct {
		cpu       *cpu.Processor
		spaceType bus.SpaceType
		m         *bus.Map
	}{
		{b.maincpu, bus.Program, b.mainMap()},
		{b.videocpu, bus.Program, b.videoMap()},
		{b.audiocpu1, bus.Program, audioMap("audio1")},
		{b.audiocpu1, bus.IO, b.audio1IOMap()},
		{b.audiocpu2, bus.Program, audioMap("audio2")},
		{b.audiocpu2, bus.IO, b.audio2IOMap()},
	}

	for _, am := range maps {
		if err := m.AddMap(am.cpu, am.spaceType, am.m); err != nil {
			return err
		}
	}
	return nil
}

func (b *Board) mainMap() *bus.Map {
	m := bus.NewMap("main", 24)
	m.Range(0x000000, 0x00ffff).ROM("roms", 0)
	m.Range(0x020000, 0x02ffff).Share("nvram")
	m.Range(0x030001, 0x030001).Read("rsw_r", bus.Reader(b.ReadStatus))
	m.Range(0x030003, 0x030003).Write("sound_w", bus.Writer(b.WriteSound))
	m.Range(0x030004, 0x030004).Write("video_w", bus.Writer(b.WriteVideo))
	m.Range(0x030007, 0x030007).Write("triple_w", bus.Writer(b.WriteTriple))
	m.Range(0x030008, 0x030009).NopWrite() // lamp and solenoid data
	m.Range(0x03000b, 0x03000b).Write("row_w", bus.Writer(b.WriteRow))
	m.Range(0x03000d, 0x03000d).Read("col_r", bus.Reader(b.ReadColumn))
	m.Range(0x03000e, 0x03000f).NopWrite() // lamp and solenoid address
	return m
}

func (b *Board) videoMap() *bus.Map {
	base := b.variant.VideoBase

	m := bus.NewMap("video", 16)
	m.Range(0x0000, base-1).ROM("video", 0)
	m.Range(base, base+0x07ff).RAM()
	m.Range(base+0x0800, base+0x0bff).Mirror(0x0400).Share("videoram")
	m.Range(base+0x1000, base+0x10ff).Mirror(0x0700).Share("objectram")
	m.Range(base+0x2800, base+0x2807).Mirror(0x07f8).Write("selectlatch", b.latch.WriteD0)
	m.Range(base+0x3000, base+0x3000).Mirror(0x07ff).NopRead() // watchdog reset
	m.Range(b.variant.PPIStart, b.variant.PPIStart+3).Mirror(b.variant.PPIMirror).
		ReadWrite("ppi", b.ppi.Read, b.ppi.Write)
	return m
}

func audioMap(region string) *bus.Map {
	m := bus.NewMap(region, 16)
	m.Range(0x0000, 0x7fff).ROM(region, 0)
	m.Range(0xfc00, 0xffff).RAM()
	return m
}

func (b *Board) audio1IOMap() *bus.Map {
	m := bus.NewMap("audio1 io", 16).GlobalMask(3)
	m.Range(0, 0).Write("dacvol", b.dacvol.DataWrite)
	m.Range(1, 1).Read("sound_r", bus.Reader(b.ReadSound))
	m.Range(2, 2).Write("ack1_w", bus.Writer(b.WriteAck1))
	m.Range(3, 3).NopWrite() // M114 data
	return m
}

func (b *Board) audio2IOMap() *bus.Map {
	m := bus.NewMap("audio2 io", 16).GlobalMask(7)
	m.Range(0, 0).Write("ldac", b.ldac.DataWrite)
	m.Range(1, 1).Read("sound_r", bus.Reader(b.ReadSound))
	m.Range(2, 2).Write("ack2_w", bus.Writer(b.WriteAck2))
	m.Range(3, 3).NopRead().NopWrite() // TMS5220 speech
	m.Range(4, 4).Write("rdac", b.rdac.DataWrite)
	return m
}
