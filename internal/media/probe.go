package media

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
)

// AudioFormat is the container/codec detected from an audio payload.
type AudioFormat string

const (
	FormatOgg AudioFormat = "ogg"
	FormatMP3 AudioFormat = "mp3"
	FormatWAV AudioFormat = "wav"
)

// Probe is what the element learns about a payload before playback.
type Probe struct {
	Format     AudioFormat
	SampleRate int
	Channels   int
	Duration   time.Duration
}

// ProbeAudio sniffs the payload format and reads its stream parameters.
func ProbeAudio(data []byte) (Probe, error) {
	switch {
	case bytes.HasPrefix(data, []byte("OggS")):
		return probeOgg(data)
	case len(data) >= 12 && bytes.Equal(data[0:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WAVE")):
		return probeWAV(data)
	case bytes.HasPrefix(data, []byte("ID3")),
		len(data) >= 2 && data[0] == 0xFF && data[1]&0xE0 == 0xE0:
		return probeMP3(data)
	}
	return Probe{}, ErrUnsupportedFormat
}

func probeOgg(data []byte) (Probe, error) {
	r, err := oggvorbis.NewReader(bytes.NewReader(data))
	if err != nil {
		return Probe{}, fmt.Errorf("ogg: %w", err)
	}
	p := Probe{Format: FormatOgg, SampleRate: r.SampleRate(), Channels: r.Channels()}
	if n := r.Length(); n > 0 && p.SampleRate > 0 {
		p.Duration = time.Duration(n) * time.Second / time.Duration(p.SampleRate)
	}
	return p, nil
}

func probeMP3(data []byte) (Probe, error) {
	d, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return Probe{}, fmt.Errorf("mp3: %w", err)
	}
	// go-mp3 always decodes to 16-bit stereo: 4 bytes per sample frame.
	p := Probe{Format: FormatMP3, SampleRate: d.SampleRate(), Channels: 2}
	if n := d.Length(); n > 0 && p.SampleRate > 0 {
		p.Duration = time.Duration(n/4) * time.Second / time.Duration(p.SampleRate)
	}
	return p, nil
}

func probeWAV(data []byte) (Probe, error) {
	d := wav.NewDecoder(bytes.NewReader(data))
	if !d.IsValidFile() {
		return Probe{}, fmt.Errorf("wav: invalid file: %w", ErrUnsupportedFormat)
	}
	p := Probe{Format: FormatWAV, SampleRate: int(d.SampleRate), Channels: int(d.NumChans)}
	if dur, err := d.Duration(); err == nil {
		p.Duration = dur
	}
	return p, nil
}
