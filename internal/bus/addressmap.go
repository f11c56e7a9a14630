package bus

import (
	"fmt"

	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

// Range describes one entry of an address map. It is configured through
// the chained setters while the map is defined and never changes once the
// map has been built.
type Range struct {
	Start      uint32
	End        uint32
	MirrorMask uint32

	Kind         Kind
	Name         string // hook name for logs and dumps
	Region       string
	RegionOffset uint32
	ShareTag     string

	nopRead  bool
	nopWrite bool
	read     ReadFunc
	write    WriteFunc
	mem      []byte
}

// Mirror sets the address bits that are ignored when matching the range.
func (r *Range) Mirror(mask uint32) *Range {
	r.MirrorMask = mask
	return r
}

// ROM maps the range to a ROM region starting at offset. Writes are dropped.
func (r *Range) ROM(region string, offset uint32) *Range {
	r.Kind = ROM
	r.Region = region
	r.RegionOffset = offset
	return r
}

// RAM maps the range to read/write memory.
func (r *Range) RAM() *Range {
	r.Kind = RAM
	return r
}

// Share binds RAM to a named block that other maps and the driver can
// access. It implies RAM.
func (r *Range) Share(tag string) *Range {
	r.Kind = RAM
	r.ShareTag = tag
	return r
}

// Read installs a read hook.
func (r *Range) Read(name string, fn ReadFunc) *Range {
	r.Name = name
	r.read = fn
	r.updateHookKind()
	return r
}

// Write installs a write hook.
func (r *Range) Write(name string, fn WriteFunc) *Range {
	r.Name = name
	r.write = fn
	r.updateHookKind()
	return r
}

// ReadWrite installs a read and a write hook.
func (r *Range) ReadWrite(name string, rd ReadFunc, wr WriteFunc) *Range {
	r.Name = name
	r.read = rd
	r.write = wr
	r.updateHookKind()
	return r
}

// NopRead silently ignores reads, returning the open bus value.
func (r *Range) NopRead() *Range {
	r.nopRead = true
	if r.read == nil {
		r.read = func(uint32) uint8 { return OpenBus }
	}
	r.updateHookKind()
	return r
}

// NopWrite silently drops writes.
func (r *Range) NopWrite() *Range {
	r.nopWrite = true
	if r.write == nil {
		r.write = func(uint32, uint8) {}
	}
	r.updateHookKind()
	return r
}

func (r *Range) updateHookKind() {
	switch {
	case r.read != nil && r.write != nil:
		r.Kind = ReadWriteHook
	case r.read != nil:
		r.Kind = ReadHook
	case r.write != nil:
		r.Kind = WriteHook
	}
}

// Size returns the number of addresses covered by the base range.
func (r *Range) Size() int {
	return int(r.End-r.Start) + 1
}

// String implements the fmt.Stringer interface.
func (r *Range) String() string {
	s := fmt.Sprintf("%06x-%06x", r.Start, r.End)
	if r.MirrorMask != 0 {
		s += fmt.Sprintf(" mirror %06x", r.MirrorMask)
	}
	s += " " + r.Kind.String()
	switch {
	case r.Region != "":
		s += fmt.Sprintf(" region %s+%x", r.Region, r.RegionOffset)
	case r.ShareTag != "":
		s += " share " + r.ShareTag
	case r.Name != "":
		s += " " + r.Name
	}
	if r.nopRead {
		s += " nopr"
	}
	if r.nopWrite {
		s += " nopw"
	}
	return s
}

// Map is the definition of an address space. Ranges added later take
// precedence over earlier ones where they overlap, so a variant can extend
// or override a base map.
type Map struct {
	name       string
	addrBits   int
	globalMask uint32
	ranges     []*Range
}

// NewMap returns an empty map for a space with the given address width.
func NewMap(name string, addrBits int) *Map {
	return &Map{
		name:       name,
		addrBits:   addrBits,
		globalMask: uint32(1)<<addrBits - 1,
	}
}

// Name returns the name of the map.
func (m *Map) Name() string {
	return m.name
}

// GlobalMask sets the mask applied to every address before decoding.
func (m *Map) GlobalMask(mask uint32) *Map {
	m.globalMask = mask
	return m
}

// Range adds an entry covering start to end inclusive.
func (m *Map) Range(start, end uint32) *Range {
	r := &Range{Start: start, End: end}
	m.ranges = append(m.ranges, r)
	return r
}

// Build validates the map, binds ROM and RAM ranges to memory and returns
// the resulting address space.
func (m *Map) Build(res Resources, logger *log.Logger) (*Space, error) {
	addrMask := uint32(1)<<m.addrBits - 1
	shares := set.New[string]()

	entries := make([]*Range, 0, len(m.ranges))
	for i := len(m.ranges) - 1; i >= 0; i-- {
		r := m.ranges[i]
		if err := m.validate(r, addrMask); err != nil {
			return nil, err
		}
		if r.ShareTag != "" {
			if shares.Contains(r.ShareTag) {
				return nil, fmt.Errorf("map %s: share '%s' bound twice", m.name, r.ShareTag)
			}
			shares.Add(r.ShareTag)
		}
		if err := bindMemory(r, res); err != nil {
			return nil, fmt.Errorf("map %s: range %s: %w", m.name, r, err)
		}
		entries = append(entries, r)
	}

	return &Space{
		name:       m.name,
		globalMask: m.globalMask,
		entries:    entries,
		logger:     logger,
	}, nil
}

func (m *Map) validate(r *Range, addrMask uint32) error {
	switch {
	case r.Start > r.End:
		return fmt.Errorf("map %s: range %06x-%06x: start after end", m.name, r.Start, r.End)
	case r.End&^addrMask != 0:
		return fmt.Errorf("map %s: range %06x-%06x: exceeds %d address bits", m.name, r.Start, r.End, m.addrBits)
	case (r.Start|r.End)&r.MirrorMask != 0:
		return fmt.Errorf("map %s: range %06x-%06x: mirror %06x overlaps range bits", m.name, r.Start, r.End, r.MirrorMask)
	case r.Kind == Unmapped:
		return fmt.Errorf("map %s: range %06x-%06x: no handler", m.name, r.Start, r.End)
	}
	return nil
}

func bindMemory(r *Range, res Resources) error {
	switch {
	case r.Kind == ROM:
		region := res.Region(r.Region)
		if region == nil {
			return fmt.Errorf("missing region '%s'", r.Region)
		}
		end := int(r.RegionOffset) + r.Size()
		if end > len(region) {
			return fmt.Errorf("region '%s' too small: need %x bytes, have %x", r.Region, end, len(region))
		}
		r.mem = region[r.RegionOffset:end]

	case r.Kind == RAM && r.ShareTag != "":
		mem, err := res.Share(r.ShareTag, r.Size())
		if err != nil {
			return err
		}
		r.mem = mem

	case r.Kind == RAM:
		r.mem = make([]byte, r.Size())
	}
	return nil
}
