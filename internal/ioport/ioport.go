// Package ioport models input ports: bytes composed of DIP switch fields
// and digital inputs that the emulated hardware reads.
package ioport

import (
	"fmt"
	"sort"
	"strings"
)

// Setting is one named position of a DIP switch field.
type Setting struct {
	Value uint8
	Name  string
}

type fieldType int

const (
	dipField fieldType = iota
	buttonField
)

// Field is a group of bits within a port.
type Field struct {
	Name      string
	Mask      uint8
	Default   uint8
	ActiveLow bool
	Settings  []Setting

	typ     fieldType
	value   uint8
	pressed bool
}

// IsDip returns whether the field is a DIP switch.
func (f *Field) IsDip() bool {
	return f.typ == dipField
}

// Value returns the current DIP switch value of the field.
func (f *Field) Value() uint8 {
	return f.value
}

// Pressed returns whether a digital input is active.
func (f *Field) Pressed() bool {
	return f.pressed
}

// SettingName returns the name of the current DIP setting.
func (f *Field) SettingName() string {
	for _, s := range f.Settings {
		if s.Value == f.value {
			return s.Name
		}
	}
	return fmt.Sprintf("0x%02x", f.value)
}

func (f *Field) bits() uint8 {
	if f.typ == dipField {
		return f.value & f.Mask
	}
	if f.pressed != f.ActiveLow {
		return f.Mask
	}
	return 0
}

// Port is a named 8-bit input.
type Port struct {
	tag    string
	fields []*Field
}

// NewPort returns a port with no fields; undefined bits read as 0.
func NewPort(tag string) *Port {
	return &Port{tag: tag}
}

// Tag returns the port tag.
func (p *Port) Tag() string {
	return p.tag
}

// Fields returns the fields in definition order.
func (p *Port) Fields() []*Field {
	return p.fields
}

// Dip adds a DIP switch field with its default value and named settings.
func (p *Port) Dip(mask, def uint8, name string, settings ...Setting) *Port {
	p.fields = append(p.fields, &Field{
		Name:     name,
		Mask:     mask,
		Default:  def,
		Settings: settings,
		typ:      dipField,
		value:    def & mask,
	})
	return p
}

// Bit adds a digital input. An active low input reads its mask bits as 1
// while released.
func (p *Port) Bit(mask uint8, activeLow bool, name string) *Port {
	p.fields = append(p.fields, &Field{
		Name:      name,
		Mask:      mask,
		ActiveLow: activeLow,
		typ:       buttonField,
	})
	return p
}

// Read returns the current port value.
func (p *Port) Read() uint8 {
	var value uint8
	for _, f := range p.fields {
		value |= f.bits()
	}
	return value
}

// Field looks up a field by name, case-insensitive.
func (p *Port) Field(name string) (*Field, error) {
	for _, f := range p.fields {
		if strings.EqualFold(f.Name, name) {
			return f, nil
		}
	}
	return nil, fmt.Errorf("port %s: unknown field '%s'", p.tag, name)
}

// SetDip selects a DIP setting by name.
func (p *Port) SetDip(field, setting string) error {
	f, err := p.Field(field)
	if err != nil {
		return err
	}
	if f.typ != dipField {
		return fmt.Errorf("port %s: field '%s' is not a dip switch", p.tag, f.Name)
	}
	for _, s := range f.Settings {
		if strings.EqualFold(s.Name, setting) {
			f.value = s.Value & f.Mask
			return nil
		}
	}
	return fmt.Errorf("port %s: field '%s' has no setting '%s'", p.tag, f.Name, setting)
}

// Press changes the state of a digital input.
func (p *Port) Press(field string, pressed bool) error {
	f, err := p.Field(field)
	if err != nil {
		return err
	}
	if f.typ != buttonField {
		return fmt.Errorf("port %s: field '%s' is not an input", p.tag, f.Name)
	}
	f.pressed = pressed
	return nil
}

// Set is a collection of ports of one machine.
type Set struct {
	ports map[string]*Port
}

// NewSet returns an empty port collection.
func NewSet() *Set {
	return &Set{ports: make(map[string]*Port)}
}

// Add registers ports.
func (s *Set) Add(ports ...*Port) {
	for _, p := range ports {
		s.ports[p.tag] = p
	}
}

// Port returns the port with the given tag.
func (s *Set) Port(tag string) (*Port, error) {
	p, ok := s.ports[tag]
	if !ok {
		return nil, fmt.Errorf("unknown input port '%s'", tag)
	}
	return p, nil
}

// Tags returns the sorted port tags.
func (s *Set) Tags() []string {
	tags := make([]string, 0, len(s.ports))
	for tag := range s.ports {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
