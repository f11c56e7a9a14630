package rolands10

import "github.com/retroenv/retrodrivers/internal/machine"

const manufacturer = "Roland"

var programRegion = []machine.Region{{Name: "program", Size: 0x10000}}

// Systems returns the metadata of all supported sampler models.
func Systems() []*machine.GameInfo {
	return []*machine.GameInfo{
		{
			Name:         "s10",
			Description:  "S-10 Digital Sampling Keyboard",
			Manufacturer: manufacturer,
			Year:         1986,
			Flags:        machine.IsSkeleton,
			Regions:      programRegion,
			Config:       Configure(S10),
		},
		{
			Name:         "mks100",
			Parent:       "s10",
			Description:  "MKS-100 Digital Sampler",
			Manufacturer: manufacturer,
			Year:         1987,
			Flags:        machine.IsSkeleton,
			Regions:      programRegion,
			Config:       Configure(MKS100),
		},
		{
			Name:         "s220",
			Description:  "S-220 Digital Sampler",
			Manufacturer: manufacturer,
			Year:         1987,
			Flags:        machine.IsSkeleton,
			Regions:      programRegion,
			Config:       Configure(S220),
		},
	}
}
