package dac

import (
	"fmt"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	bitDepth      = 16
	pcmFormat     = 1
	maxSampleSize = 1<<(bitDepth-1) - 1
)

// Source returns the level of one channel in the range -1 to 1.
type Source func() float64

// Recorder samples its sources on every call to Sample and encodes the
// collected frames as 16-bit PCM.
type Recorder struct {
	sampleRate int
	sources    []Source
	data       []int
}

// NewRecorder returns a recorder with one channel per source.
func NewRecorder(sampleRate int, sources ...Source) *Recorder {
	return &Recorder{
		sampleRate: sampleRate,
		sources:    sources,
	}
}

// SampleRate returns the rate the recorder expects to be sampled at.
func (r *Recorder) SampleRate() int {
	return r.sampleRate
}

// Sample appends one frame.
func (r *Recorder) Sample() {
	for _, src := range r.sources {
		level := src()
		switch {
		case level > 1:
			level = 1
		case level < -1:
			level = -1
		}
		r.data = append(r.data, int(level*maxSampleSize))
	}
}

// Frames returns the number of recorded frames.
func (r *Recorder) Frames() int {
	if len(r.sources) == 0 {
		return 0
	}
	return len(r.data) / len(r.sources)
}

// WriteWAV encodes the recorded frames.
func (r *Recorder) WriteWAV(w io.WriteSeeker) error {
	if len(r.sources) == 0 {
		return fmt.Errorf("recorder has no channels")
	}

	enc := wav.NewEncoder(w, r.sampleRate, bitDepth, len(r.sources), pcmFormat)
	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: len(r.sources),
			SampleRate:  r.sampleRate,
		},
		Data:           r.data,
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("encoding wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finishing wav: %w", err)
	}
	return nil
}
