package parameter

import "time"

// Audio Output
const (
	// AudioSampleRate is the speaker rate; the embedded clip is resampled to it once at startup
	AudioSampleRate = 44100

	// AudioBufferDuration is the speaker buffer size, trades latency for underrun safety
	AudioBufferDuration = 100 * time.Millisecond

	// AudioVolume is the linear playback gain (0.0-1.0)
	AudioVolume = 0.8

	// AudioResampleQuality selects the resampler preset (0=quick .. 4=very high)
	AudioResampleQuality = 2
)
