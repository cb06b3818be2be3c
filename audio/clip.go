package audio

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	resampler "github.com/tphakala/go-audio-resampler"
)

// decodeChunk is the read size used when draining the decoder
const decodeChunk = 4096

// Clip is a fully buffered stereo stream, seekable for looping
type Clip struct {
	samples [][2]float64
	pos     int
	rate    beep.SampleRate
}

// DecodeClip decodes a WAV, FLAC, Ogg Vorbis or MP3 payload into memory
// The container is sniffed from the payload; the clip is resampled once when its rate differs from rate
func DecodeClip(data []byte, rate beep.SampleRate, quality resampler.QualityPreset) (*Clip, error) {
	if len(data) == 0 {
		return nil, ErrEmptyClip
	}

	streamer, format, err := decode(data)
	if err != nil {
		return nil, err
	}
	defer streamer.Close()

	samples, err := drain(streamer, streamer.Len())
	if err != nil {
		return nil, fmt.Errorf("read samples: %w", err)
	}
	if len(samples) == 0 {
		return nil, ErrEmptyClip
	}

	if format.SampleRate != rate {
		samples, err = resample(samples, format.SampleRate, rate, quality)
		if err != nil {
			return nil, fmt.Errorf("resample %d Hz to %d Hz: %w", format.SampleRate, rate, err)
		}
		if len(samples) == 0 {
			return nil, ErrEmptyClip
		}
	}

	return &Clip{samples: samples, rate: rate}, nil
}

// drain reads a streamer to exhaustion
func drain(s beep.Streamer, hint int) ([][2]float64, error) {
	out := make([][2]float64, 0, max(hint, 0))
	buf := make([][2]float64, decodeChunk)
	for {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			break
		}
	}
	return out, s.Err()
}

// resample converts both channels between rates in one pass
func resample(samples [][2]float64, from, to beep.SampleRate, quality resampler.QualityPreset) ([][2]float64, error) {
	left := make([]float64, len(samples))
	right := make([]float64, len(samples))
	for i, s := range samples {
		left[i], right[i] = s[0], s[1]
	}

	left, right, err := resampler.ResampleStereo(left, right, float64(from), float64(to), quality)
	if err != nil {
		return nil, err
	}

	n := min(len(left), len(right))
	out := make([][2]float64, n)
	for i := range n {
		out[i] = [2]float64{left[i], right[i]}
	}
	return out, nil
}

// Stream implements beep.Streamer
func (c *Clip) Stream(samples [][2]float64) (n int, ok bool) {
	if c.pos >= len(c.samples) {
		return 0, false
	}
	n = copy(samples, c.samples[c.pos:])
	c.pos += n
	return n, true
}

func (c *Clip) Err() error { return nil }

// Len returns the clip length in samples
func (c *Clip) Len() int { return len(c.samples) }

// Position returns the read offset in samples
func (c *Clip) Position() int { return c.pos }

// Seek moves the read offset; p must lie in [0, Len()]
func (c *Clip) Seek(p int) error {
	if p < 0 || p > len(c.samples) {
		return fmt.Errorf("seek %d outside clip of %d samples", p, len(c.samples))
	}
	c.pos = p
	return nil
}

// SampleRate returns the rate the clip is stored at
func (c *Clip) SampleRate() beep.SampleRate { return c.rate }

// Duration returns the playback length of one pass
func (c *Clip) Duration() time.Duration { return c.rate.D(len(c.samples)) }
