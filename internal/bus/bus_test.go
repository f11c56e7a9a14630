package bus

import (
	"fmt"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

type testResources struct {
	regions map[string][]byte
	shares  map[string][]byte
}

func newTestResources() *testResources {
	return &testResources{
		regions: map[string][]byte{},
		shares:  map[string][]byte{},
	}
}

func (r *testResources) Region(name string) []byte {
	return r.regions[name]
}

func (r *testResources) Share(tag string, size int) ([]byte, error) {
	mem, ok := r.shares[tag]
	if !ok {
		mem = make([]byte, size)
		r.shares[tag] = mem
		return mem, nil
	}
	if len(mem) != size {
		return nil, fmt.Errorf("share '%s' size mismatch", tag)
	}
	return mem, nil
}

func TestMirroredRangeMatchesAliases(t *testing.T) {
	res := newTestResources()
	var offsets []uint32
	var values []uint8

	m := NewMap("video", 16)
	m.Range(0x6800, 0x6807).Mirror(0x07f8).Write("latch", func(offset uint32, data uint8) {
		offsets = append(offsets, offset)
		values = append(values, data)
	})

	space, err := m.Build(res, log.NewTestLogger(t))
	assert.NoError(t, err)

	space.Write8(0x6800, 1)
	space.Write8(0x6fff, 2) // last alias of offset 7
	space.Write8(0x6809, 3) // alias of offset 1
	space.Write8(0x7000, 4) // outside

	assert.Equal(t, []uint32{0, 7, 1}, offsets)
	assert.Equal(t, []uint8{1, 2, 3}, values)
}

func TestAccessDirection(t *testing.T) {
	res := newTestResources()
	res.regions["rom"] = []byte{0x11, 0x22, 0x33, 0x44}
	written := -1

	m := NewMap("main", 16)
	m.Range(0x0000, 0x0003).ROM("rom", 0)
	m.Range(0x1000, 0x1000).Read("status", Reader(func() uint8 { return 0x5a }))
	m.Range(0x2000, 0x2000).Write("latch", Writer(func(data uint8) { written = int(data) }))
	m.Range(0x3000, 0x3000).NopWrite()

	space, err := m.Build(res, log.NewTestLogger(t))
	assert.NoError(t, err)

	tests := []struct {
		name    string
		address uint32
		want    uint8
	}{
		{name: "rom", address: 0x0002, want: 0x33},
		{name: "read hook", address: 0x1000, want: 0x5a},
		{name: "write only", address: 0x2000, want: OpenBus},
		{name: "nop write", address: 0x3000, want: OpenBus},
		{name: "unmapped", address: 0x4000, want: OpenBus},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, space.Read8(tt.address))
		})
	}

	space.Write8(0x0002, 0x99)
	assert.Equal(t, uint8(0x33), space.Read8(0x0002))
	assert.Equal(t, uint8(0x33), res.regions["rom"][2])

	space.Write8(0x1000, 0x01)
	assert.Equal(t, -1, written)
	space.Write8(0x2000, 0x42)
	assert.Equal(t, 0x42, written)
}

func TestRAMAndShares(t *testing.T) {
	res := newTestResources()

	m := NewMap("video", 16)
	m.Range(0x4000, 0x47ff).RAM()
	m.Range(0x4800, 0x4bff).Mirror(0x0400).Share("videoram")

	space, err := m.Build(res, log.NewTestLogger(t))
	assert.NoError(t, err)

	space.Write8(0x4001, 0xab)
	assert.Equal(t, uint8(0xab), space.Read8(0x4001))

	space.Write8(0x4c10, 0xcd) // mirror of 0x4810
	assert.Equal(t, uint8(0xcd), space.Read8(0x4810))
	assert.Equal(t, uint8(0xcd), res.shares["videoram"][0x10])
	assert.Equal(t, 0x400, len(res.shares["videoram"]))
}

func TestLaterRangesTakePrecedence(t *testing.T) {
	res := newTestResources()

	m := NewMap("io", 16)
	m.Range(0x0000, 0x00ff).Read("base", Reader(func() uint8 { return 1 }))
	m.Range(0x0010, 0x0010).Read("override", Reader(func() uint8 { return 2 }))

	space, err := m.Build(res, log.NewTestLogger(t))
	assert.NoError(t, err)

	assert.Equal(t, uint8(1), space.Read8(0x000f))
	assert.Equal(t, uint8(2), space.Read8(0x0010))

	r, offset, ok := space.Lookup(0x0010)
	assert.True(t, ok)
	assert.Equal(t, "override", r.Name)
	assert.Equal(t, uint32(0), offset)

	ranges := space.Ranges()
	assert.Equal(t, "base", ranges[0].Name)
	assert.Equal(t, "override", ranges[1].Name)
}

func TestGlobalMask(t *testing.T) {
	res := newTestResources()
	var got []uint8

	m := NewMap("audio1 io", 16).GlobalMask(3)
	m.Range(0x0002, 0x0002).Write("ack", Writer(func(data uint8) { got = append(got, data) }))

	space, err := m.Build(res, log.NewTestLogger(t))
	assert.NoError(t, err)

	space.Write8(0x0002, 1)
	space.Write8(0x00fe, 2)
	space.Write8(0x0003, 3)
	assert.Equal(t, []uint8{1, 2}, got)
}

func TestWordAccessIsBigEndian(t *testing.T) {
	res := newTestResources()
	res.regions["roms"] = []byte{0x12, 0x34, 0x56, 0x78}
	var low []uint8

	m := NewMap("main", 24)
	m.Range(0x000000, 0x000003).ROM("roms", 0)
	m.Range(0x030003, 0x030003).Write("sound", Writer(func(data uint8) { low = append(low, data) }))

	space, err := m.Build(res, log.NewTestLogger(t))
	assert.NoError(t, err)

	assert.Equal(t, uint16(0x1234), space.Read16(0x000000))
	assert.Equal(t, uint16(0x5678), space.Read16(0x000003))

	space.Write16(0x030002, 0xaa7f)
	assert.Equal(t, []uint8{0x7f}, low)
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name  string
		setup func(m *Map)
		want  string
	}{
		{
			name:  "start after end",
			setup: func(m *Map) { m.Range(0x10, 0x0f).RAM() },
			want:  "start after end",
		},
		{
			name:  "too wide",
			setup: func(m *Map) { m.Range(0x0000, 0x1ffff).RAM() },
			want:  "exceeds 16 address bits",
		},
		{
			name:  "mirror overlaps",
			setup: func(m *Map) { m.Range(0x0000, 0x00ff).Mirror(0x0080).RAM() },
			want:  "overlaps range bits",
		},
		{
			name:  "no handler",
			setup: func(m *Map) { m.Range(0x0000, 0x00ff) },
			want:  "no handler",
		},
		{
			name:  "missing region",
			setup: func(m *Map) { m.Range(0x0000, 0x00ff).ROM("nothere", 0) },
			want:  "missing region 'nothere'",
		},
		{
			name: "duplicate share",
			setup: func(m *Map) {
				m.Range(0x0000, 0x00ff).Share("nvram")
				m.Range(0x0100, 0x01ff).Share("nvram")
			},
			want: "bound twice",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMap("test", 16)
			tt.setup(m)
			_, err := m.Build(newTestResources(), log.NewTestLogger(t))
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestRangeString(t *testing.T) {
	m := NewMap("video", 16)
	r := m.Range(0x7000, 0x7000).Mirror(0x07ff).NopRead()
	assert.Equal(t, "007000-007000 mirror 0007ff r nopr", r.String())

	r = m.Range(0x0000, 0x3fff).ROM("video", 0)
	assert.Equal(t, "000000-003fff rom region video+0", r.String())
}

func TestSpaceTypeFromString(t *testing.T) {
	space, err := SpaceTypeFromString("io")
	assert.NoError(t, err)
	assert.Equal(t, IO, space)

	_, err = SpaceTypeFromString("data")
	assert.ErrorContains(t, err, "unknown address space")
}
