package machine

import "strings"

// Flags describe the emulation status of a game.
type Flags uint32

const (
	// Mechanical marks games whose playfield is mechanical and not emulated.
	Mechanical Flags = 1 << iota
	NotWorking
	ImperfectSound
	ImperfectGraphics
	// IsSkeleton marks drivers that only describe the memory layout.
	IsSkeleton
)

var flagNames = []struct {
	flag Flags
	name string
}{
	{Mechanical, "mechanical"},
	{NotWorking, "not_working"},
	{ImperfectSound, "imperfect_sound"},
	{ImperfectGraphics, "imperfect_graphics"},
	{IsSkeleton, "skeleton"},
}

func (f Flags) String() string {
	var names []string
	for _, fn := range flagNames {
		if f&fn.flag != 0 {
			names = append(names, fn.name)
		}
	}
	if len(names) == 0 {
		return "working"
	}
	return strings.Join(names, "|")
}

// Region describes a ROM region that is allocated for a game.
type Region struct {
	Name string
	Size int
}

// ConfigFunc builds the devices, address maps and callbacks of a machine.
type ConfigFunc func(m *Machine) error

// GameInfo is the metadata and configuration entry point of one game.
type GameInfo struct {
	Name         string
	Parent       string // parent set for clones, empty otherwise
	Description  string
	Manufacturer string
	Year         int
	Flags        Flags
	Regions      []Region
	Config       ConfigFunc
}

// IsClone returns whether the game is a clone of another set.
func (g *GameInfo) IsClone() bool {
	return g.Parent != ""
}
