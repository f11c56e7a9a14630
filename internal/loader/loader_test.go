package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/retrodrivers/internal/bus"
	"github.com/retroenv/retrodrivers/internal/machine"
	"github.com/retroenv/retrodrivers/internal/nvram"
	"github.com/retroenv/retrodrivers/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func newTestMachine(t *testing.T) *machine.Machine {
	t.Helper()

	game := &machine.GameInfo{
		Name: "test",
		Config: func(m *machine.Machine) error {
			p := m.AddCPU("maincpu", "Z80", 4_000_000)
			program := bus.NewMap("main", 16)
			program.Range(0x0000, 0x000f).Share("nvram")
			m.AddNVRAM(nvram.New("nvram", nvram.DefaultAll1))
			return m.AddMap(p, bus.Program, program)
		},
	}
	m, err := machine.New(log.NewTestLogger(t), game)
	assert.NoError(t, err)
	assert.NoError(t, m.Start())
	return m
}

func TestNVRAMRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nvram")
	l := New()

	m := newTestMachine(t)
	assert.NoError(t, l.LoadNVRAM(dir, m))
	assert.Equal(t, uint8(0xff), m.NVRAMs()[0].Bytes()[0])

	m.NVRAMs()[0].Bytes()[3] = 0x42
	assert.NoError(t, l.SaveNVRAM(dir, m))

	data, err := os.ReadFile(filepath.Join(dir, "test.nv"))
	assert.NoError(t, err)
	assert.Len(t, data, 16)

	restored := newTestMachine(t)
	assert.NoError(t, l.LoadNVRAM(dir, restored))
	assert.Equal(t, uint8(0x42), restored.NVRAMs()[0].Bytes()[3])
}

func TestLoadNVRAMSizeMismatch(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "test.nv"), []byte{1, 2, 3}, 0o600))

	err := New().LoadNVRAM(dir, newTestMachine(t))
	assert.ErrorContains(t, err, "loading NVRAM file")
}

func TestNVRAMFilename(t *testing.T) {
	assert.Equal(t, filepath.Join("nv", "dakar.nv"), NVRAMFilename("nv", "dakar", "nvram", true))
	assert.Equal(t, filepath.Join("nv", "dakar.cmos.nv"), NVRAMFilename("nv", "dakar", "cmos", false))
}

func TestLoadSettings(t *testing.T) {
	l := New()

	settings, err := l.LoadSettings(options.Program{})
	assert.NoError(t, err)
	assert.Equal(t, 0.0, settings.Duration)

	path := filepath.Join(t.TempDir(), "dakar.toml")
	assert.NoError(t, os.WriteFile(path, []byte("duration = 3\n"), 0o600))
	settings, err = l.LoadSettings(options.Program{Parameters: options.Parameters{Config: path}})
	assert.NoError(t, err)
	assert.Equal(t, 3.0, settings.Duration)

	_, err = l.LoadSettings(options.Program{Parameters: options.Parameters{Config: path + ".missing"}})
	assert.Error(t, err)
}
