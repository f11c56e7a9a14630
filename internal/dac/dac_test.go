package dac

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
	"github.com/retroenv/retrogolib/assert"
)

func TestOutputRange(t *testing.T) {
	d := New("ldac")
	assert.Equal(t, -1.0, d.Output())

	d.DataWrite(0, 0xff)
	assert.Equal(t, 1.0, d.Output())

	vol := New("dacvol").SetOutputRange(0, 1)
	vol.DataWrite(0, 0xff)
	assert.Equal(t, 1.0, vol.Output())

	d.Reset()
	assert.Equal(t, uint8(0), d.Value())
}

func TestRecorderClampsAndCounts(t *testing.T) {
	level := 2.0
	r := NewRecorder(8000, func() float64 { return level }, func() float64 { return -level })

	r.Sample()
	level = 0
	r.Sample()

	assert.Equal(t, 2, r.Frames())
	assert.Equal(t, []int{maxSampleSize, -maxSampleSize, 0, 0}, r.data)
}

func TestWriteWAV(t *testing.T) {
	d := New("ldac")
	r := NewRecorder(16000, d.Output, d.Output)
	for i := range 64 {
		d.DataWrite(0, uint8(i*4))
		r.Sample()
	}

	path := filepath.Join(t.TempDir(), "out.wav")
	f, err := os.Create(path)
	assert.NoError(t, err)
	assert.NoError(t, r.WriteWAV(f))
	assert.NoError(t, f.Close())

	data, err := os.ReadFile(path)
	assert.NoError(t, err)

	dec := wav.NewDecoder(bytes.NewReader(data))
	assert.True(t, dec.IsValidFile())
	assert.Equal(t, uint16(2), dec.NumChans)
	assert.Equal(t, uint32(16000), dec.SampleRate)
	assert.Equal(t, uint16(16), dec.BitDepth)
}

func TestWriteWAVWithoutChannels(t *testing.T) {
	r := NewRecorder(8000)
	assert.Equal(t, 0, r.Frames())

	f, err := os.Create(filepath.Join(t.TempDir(), "empty.wav"))
	assert.NoError(t, err)
	defer func() { _ = f.Close() }()
	assert.ErrorContains(t, r.WriteWAV(f), "no channels")
}
