package audio

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	resampler "github.com/tphakala/go-audio-resampler"

	"github.com/FlowLightGames/CLI-Rain/parameter"
)

// Config holds output device and playback settings
type Config struct {
	SampleRate     int           // Output device rate in Hz
	BufferDuration time.Duration // Device buffer length
	Volume         float64       // Linear gain, 0.0-1.0
	Quality        resampler.QualityPreset
}

// DefaultConfig returns the compile-time audio settings
func DefaultConfig() Config {
	return Config{
		SampleRate:     parameter.AudioSampleRate,
		BufferDuration: parameter.AudioBufferDuration,
		Volume:         parameter.AudioVolume,
		Quality:        resampler.QualityPreset(parameter.AudioResampleQuality),
	}
}

// Validate reports the first out-of-range field
func (c Config) Validate() error {
	switch {
	case c.SampleRate <= 0:
		return fmt.Errorf("%w: sample rate %d", ErrInvalidConfig, c.SampleRate)
	case c.BufferDuration <= 0:
		return fmt.Errorf("%w: buffer duration %v", ErrInvalidConfig, c.BufferDuration)
	case c.Volume < 0 || c.Volume > 1:
		return fmt.Errorf("%w: volume %.2f", ErrInvalidConfig, c.Volume)
	case c.Quality < resampler.QualityQuick || c.Quality > resampler.QualityVeryHigh:
		return fmt.Errorf("%w: resample quality %d", ErrInvalidConfig, c.Quality)
	}
	return nil
}

// Rate returns the output rate as a beep sample rate
func (c Config) Rate() beep.SampleRate {
	return beep.SampleRate(c.SampleRate)
}

// BufferSize returns the device buffer length in samples
func (c Config) BufferSize() int {
	return max(c.Rate().N(c.BufferDuration), 1)
}
