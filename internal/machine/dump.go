package machine

import (
	"io"

	"github.com/davecgh/go-spew/spew"
	"github.com/retroenv/retrodrivers/internal/cpu"
)

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// Snapshot is a summary of the machine state at one point in time.
type Snapshot struct {
	Game   string
	Time   string
	Events uint64
	Lines  map[string][]string // asserted input lines per cpu
	Ports  map[string]uint8
	Frames map[string]uint64
	State  any
}

// Snapshot captures the current machine state.
func (m *Machine) Snapshot() Snapshot {
	snap := Snapshot{
		Game:   m.game.Name,
		Time:   m.sched.Now().String(),
		Events: m.sched.Fired(),
		Lines:  make(map[string][]string),
		Ports:  make(map[string]uint8),
		Frames: make(map[string]uint64),
		State:  m.state,
	}

	for _, p := range m.cpus {
		var lines []string
		for _, line := range cpu.Lines() {
			if p.Asserted(line) {
				lines = append(lines, line.String()+"="+p.State(line).String())
			}
		}
		snap.Lines[p.Tag()] = lines
	}

	for _, tag := range m.ports.Tags() {
		port, err := m.ports.Port(tag)
		if err != nil {
			continue
		}
		snap.Ports[tag] = port.Read()
	}

	for _, s := range m.screens {
		snap.Frames[s.Tag()] = s.Frames()
	}
	return snap
}

// Dump writes a readable representation of the machine state.
func (m *Machine) Dump(w io.Writer) {
	dumpConfig.Fdump(w, m.Snapshot())
}
