package mrgame

import "github.com/retroenv/retrodrivers/internal/ioport"

func newPorts() (dsw0, dsw1, x0, x1 *ioport.Port) {
	dsw0 = ioport.NewPort("DSW0").
		Dip(0x01, 0x00, "Ram Protect",
			ioport.Setting{Value: 0x01, Name: "Off"},
			ioport.Setting{Value: 0x00, Name: "On"}).
		Dip(0x0e, 0x0e, "Country",
			ioport.Setting{Value: 0x00, Name: "Italy 1"},
			ioport.Setting{Value: 0x02, Name: "Italy"},
			ioport.Setting{Value: 0x04, Name: "Great Britain"},
			ioport.Setting{Value: 0x06, Name: "France"},
			ioport.Setting{Value: 0x08, Name: "Germany"},
			ioport.Setting{Value: 0x0a, Name: "Belgium"},
			ioport.Setting{Value: 0x0c, Name: "Yugoslavia"},
			ioport.Setting{Value: 0x0e, Name: "U.S.A."}).
		Bit(0x40, false, "R. Flipper").
		Bit(0x80, false, "L. Flipper")

	// only documented for Motor Show
	dsw1 = ioport.NewPort("DSW1").
		Dip(0x01, 0x00, "Test Game",
			ioport.Setting{Value: 0x01, Name: "Connected"},
			ioport.Setting{Value: 0x00, Name: "Disconnected"}).
		Dip(0x02, 0x02, "Dragster", easyHard(0x02)...).
		Dip(0x04, 0x04, "F.1.", easyHard(0x04)...).
		Dip(0x08, 0x08, "Motocross", easyHard(0x08)...)

	x0 = ioport.NewPort("X0").
		Bit(0x01, true, "Advance Test").
		Bit(0x02, true, "Return Test").
		Bit(0x04, true, "Tilt").
		Bit(0x08, true, "Service").
		Bit(0x10, true, "Coin 1").
		Bit(0x20, true, "Coin 2").
		Bit(0x40, true, "Coin 3").
		Bit(0x80, true, "Unused")

	x1 = ioport.NewPort("X1").
		Bit(0x02, true, "Start").
		Bit(0x04, true, "Tilt").
		Bit(0x10, true, "Factory Burn Test").
		Bit(0xe9, true, "Unused")

	return dsw0, dsw1, x0, x1
}

func easyHard(mask uint8) []ioport.Setting {
	return []ioport.Setting{
		{Value: mask, Name: "Easy"},
		{Value: 0x00, Name: "Hard"},
	}
}
