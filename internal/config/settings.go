package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/retroenv/retrodrivers/internal/ioport"
)

// Settings are the machine settings read from a TOML file.
//
//	duration = 2.5
//	log_unmapped = true
//
//	[dips.DSW0]
//	"Ram Protect" = "Off"
//
//	[inputs.X0]
//	"Coin 1" = true
type Settings struct {
	// Duration is the emulated run time in seconds, 0 keeps the command
	// line value.
	Duration    float64 `toml:"duration"`
	LogUnmapped bool    `toml:"log_unmapped"`

	Dips   map[string]map[string]string `toml:"dips"`   // port -> field -> setting name
	Inputs map[string]map[string]bool   `toml:"inputs"` // port -> field -> pressed
}

// LoadSettings reads a settings file. Unknown keys are reported as error.
func LoadSettings(path string) (*Settings, error) {
	var s Settings
	md, err := toml.DecodeFile(path, &s)
	if err != nil {
		return nil, fmt.Errorf("decoding settings file '%s': %w", path, err)
	}
	if err := checkUndecoded(md); err != nil {
		return nil, fmt.Errorf("settings file '%s': %w", path, err)
	}
	return &s, nil
}

// ParseSettings decodes settings from a string.
func ParseSettings(data string) (*Settings, error) {
	var s Settings
	md, err := toml.Decode(data, &s)
	if err != nil {
		return nil, fmt.Errorf("decoding settings: %w", err)
	}
	if err := checkUndecoded(md); err != nil {
		return nil, err
	}
	return &s, nil
}

func checkUndecoded(md toml.MetaData) error {
	undecoded := md.Undecoded()
	if len(undecoded) == 0 {
		return nil
	}
	keys := make([]string, 0, len(undecoded))
	for _, key := range undecoded {
		keys = append(keys, key.String())
	}
	return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
}

// Apply sets the DIP switches and inputs of the given ports.
func (s *Settings) Apply(ports *ioport.Set) error {
	for _, tag := range sortedKeys(s.Dips) {
		port, err := ports.Port(tag)
		if err != nil {
			return err
		}
		fields := s.Dips[tag]
		for _, field := range sortedKeys(fields) {
			if err := port.SetDip(field, fields[field]); err != nil {
				return err
			}
		}
	}

	for _, tag := range sortedKeys(s.Inputs) {
		port, err := ports.Port(tag)
		if err != nil {
			return err
		}
		fields := s.Inputs[tag]
		for _, field := range sortedKeys(fields) {
			if err := port.Press(field, fields[field]); err != nil {
				return err
			}
		}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
