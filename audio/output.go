package audio

import (
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Output is an audio device accepting a single mixed stream
type Output interface {
	Init(rate beep.SampleRate, bufferSize int) error
	Play(s beep.Streamer)
	Close()
}

// SpeakerOutput plays through the default device via beep/speaker
type SpeakerOutput struct{}

// Init opens the default device
func (SpeakerOutput) Init(rate beep.SampleRate, bufferSize int) error {
	return speaker.Init(rate, bufferSize)
}

// Play starts streaming s
func (SpeakerOutput) Play(s beep.Streamer) {
	speaker.Play(s)
}

// Close drops queued streamers and releases the device
func (SpeakerOutput) Close() {
	speaker.Clear()
	speaker.Close()
}
