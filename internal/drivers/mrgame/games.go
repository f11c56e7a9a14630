package mrgame

import "github.com/retroenv/retrodrivers/internal/machine"

const manufacturer = "Mr Game"

const commonFlags = machine.Mechanical | machine.NotWorking | machine.ImperfectSound

var m114Samples = []machine.Region{{Name: "m114", Size: 0x4000}}

// regions returns the region table of a board. The sample ROMs of the first
// audio board differ between the M114 and the World Cup 90 sound hardware.
func regions(chargenSize int, samples []machine.Region) []machine.Region {
	r := []machine.Region{
		{Name: "roms", Size: 0x10000},
		{Name: "video", Size: 0x8000},
		{Name: "chargen", Size: chargenSize},
		{Name: "proms", Size: 0x20},
		{Name: "audio1", Size: 0x10000},
	}
	r = append(r, samples...)
	return append(r, machine.Region{Name: "audio2", Size: 0x10000})
}

// Games returns the metadata of all supported Mr. Game machines.
func Games() []*machine.GameInfo {
	return []*machine.GameInfo{
		{
			Name:         "dakar",
			Description:  "Dakar",
			Manufacturer: manufacturer,
			Year:         1988,
			Flags:        commonFlags,
			Regions:      regions(0x10000, m114Samples),
			Config:       Configure(MrGame),
		},
		{
			Name:         "motrshow",
			Description:  "Motor Show (set 1)",
			Manufacturer: manufacturer,
			Year:         1989,
			Flags:        commonFlags,
			Regions:      regions(0x10000, m114Samples),
			Config:       Configure(MrGame),
		},
		{
			Name:         "motrshowa",
			Parent:       "motrshow",
			Description:  "Motor Show (set 2)",
			Manufacturer: manufacturer,
			Year:         1989,
			Flags:        commonFlags,
			Regions:      regions(0x10000, m114Samples),
			Config:       Configure(MrGame),
		},
		{
			Name:         "macattck",
			Description:  "Mac Attack",
			Manufacturer: manufacturer,
			Year:         1990,
			Flags:        machine.IsSkeleton | machine.Mechanical,
			Regions:      regions(0x28000, m114Samples),
			Config:       Configure(WorldCup90),
		},
		{
			Name:         "wcup90",
			Description:  "World Cup 90",
			Manufacturer: manufacturer,
			Year:         1990,
			Flags:        commonFlags | machine.ImperfectGraphics,
			Regions: regions(0x30000, []machine.Region{
				{Name: "user1", Size: 0x4000},
				{Name: "user2", Size: 0x30000},
			}),
			Config: Configure(WorldCup90),
		},
	}
}
