// Package loader handles loading and saving of machine files.
package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/retroenv/retrodrivers/internal/config"
	"github.com/retroenv/retrodrivers/internal/machine"
	"github.com/retroenv/retrodrivers/internal/options"
)

// Loader handles settings and NVRAM files on disk.
type Loader struct{}

// New creates a new loader.
func New() *Loader {
	return &Loader{}
}

// LoadSettings reads the settings file given in the options. Without a
// settings file empty settings are returned.
func (l *Loader) LoadSettings(opts options.Program) (*config.Settings, error) {
	if opts.Config == "" {
		return &config.Settings{}, nil
	}
	settings, err := config.LoadSettings(opts.Config)
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	return settings, nil
}

// NVRAMFilename returns the file that holds the NVRAM content of a game.
// A game with more than one NVRAM device uses one file per device tag.
func NVRAMFilename(dir, game, tag string, single bool) string {
	if single {
		return filepath.Join(dir, game+".nv")
	}
	return filepath.Join(dir, game+"."+tag+".nv")
}

// LoadNVRAM restores the NVRAM contents of a started machine. Missing files
// keep the default fill.
func (l *Loader) LoadNVRAM(dir string, m *machine.Machine) error {
	nvrams := m.NVRAMs()
	for _, n := range nvrams {
		name := NVRAMFilename(dir, m.Game().Name, n.Tag(), len(nvrams) == 1)
		file, err := os.Open(name)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("opening NVRAM file %s: %w", name, err)
		}

		err = n.Load(file)
		_ = file.Close()
		if err != nil {
			return fmt.Errorf("loading NVRAM file %s: %w", name, err)
		}
	}
	return nil
}

// SaveNVRAM writes the NVRAM contents of a machine.
func (l *Loader) SaveNVRAM(dir string, m *machine.Machine) error {
	nvrams := m.NVRAMs()
	if len(nvrams) == 0 {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating NVRAM directory %s: %w", dir, err)
	}

	for _, n := range nvrams {
		name := NVRAMFilename(dir, m.Game().Name, n.Tag(), len(nvrams) == 1)
		file, err := os.Create(name)
		if err != nil {
			return fmt.Errorf("creating NVRAM file %s: %w", name, err)
		}

		err = n.Save(file)
		if closeErr := file.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			return fmt.Errorf("saving NVRAM file %s: %w", name, err)
		}
	}
	return nil
}
