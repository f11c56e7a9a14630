package rolands10

import "github.com/retroenv/retrodrivers/internal/bus"

func programMap() *bus.Map {
	m := bus.NewMap("program", 16)
	m.Range(0x0000, 0xffff).ROM("program", 0)
	return m
}

func (b *Board) extMap() *bus.Map {
	if b.model == S220 {
		return b.s220ExtMap()
	}

	m := b.mks100ExtMap()
	if b.model == S10 {
		m.Range(0x5000, 0x57ff).Mirror(0x0800).ReadWrite("keyscan", b.keyscan.Read, b.keyscan.Write)
	}
	return m
}

func (b *Board) mks100ExtMap() *bus.Map {
	m := bus.NewMap("ext", 16)
	m.Range(0x4000, 0x4003).Mirror(0x0ffc).ReadWrite("qdd", b.readQDD, b.writeQDD)
	m.Range(0x6000, 0x7fff).Share("nvram")
	m.Range(0x8000, 0x80ff).Mirror(0x0f00).Write("lcd", b.writeLCD)
	m.Range(0x9000, 0x90ff).Mirror(0x0f00).Write("led_data", bus.Writer(func(data uint8) {
		b.State.LEDData = data
	}))
	m.Range(0xa000, 0xa0ff).Mirror(0x0f00).Read("sw_scan", b.readSwitchScan).NopWrite()
	m.Range(0xc000, 0xc000).Mirror(0x0fff).Write("led_latch", bus.Writer(func(data uint8) {
		b.State.LEDLatch = data
	}))
	return m
}

func (b *Board) s220ExtMap() *bus.Map {
	m := bus.NewMap("ext", 16)
	m.Range(0x0000, 0x000f).Mirror(0x3ff0).Write("output_control", bus.Writer(func(data uint8) {
		b.State.OutputControl = data
	}))
	m.Range(0x4000, 0x4003).Mirror(0x0ffc).ReadWrite("qdd", b.readQDD, b.writeQDD)
	m.Range(0x5000, 0x5000).Mirror(0x0fff).Write("led_latch1", bus.Writer(func(data uint8) {
		b.State.LEDLatch = data
	}))
	m.Range(0x6000, 0x7fff).Share("nvram")
	m.Range(0x8000, 0x80ff).Mirror(0x0f00).Write("lcd", b.writeLCD)
	m.Range(0x9000, 0x90ff).Mirror(0x0f00).Write("vca_cv", bus.Writer(func(data uint8) {
		b.State.VCAControl = data
	}))
	m.Range(0xa000, 0xa0ff).Mirror(0x0f00).Read("sw_scan", b.readSwitchScan).NopWrite()
	m.Range(0xc000, 0xc000).Mirror(0x0fff).Write("led_latch2", bus.Writer(func(data uint8) {
		b.State.LEDLatch2 = data
	}))
	return m
}
