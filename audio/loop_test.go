package audio

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"math"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/gopxl/beep"
	resampler "github.com/tphakala/go-audio-resampler"

	"github.com/FlowLightGames/CLI-Rain/asset"
)

// makeWAV encodes a mono 16-bit PCM sine wave
func makeWAV(rate, frames int, freq float64) []byte {
	var data bytes.Buffer
	for i := 0; i < frames; i++ {
		v := 0.5 * math.Sin(2*math.Pi*freq*float64(i)/float64(rate))
		binary.Write(&data, binary.LittleEndian, int16(v*math.MaxInt16))
	}

	var buf bytes.Buffer
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+data.Len()))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // mono
	binary.Write(&buf, binary.LittleEndian, uint32(rate))
	binary.Write(&buf, binary.LittleEndian, uint32(rate*2))
	binary.Write(&buf, binary.LittleEndian, uint16(2))
	binary.Write(&buf, binary.LittleEndian, uint16(16))
	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(data.Len()))
	buf.Write(data.Bytes())
	return buf.Bytes()
}

// fakeOutput records device calls
type fakeOutput struct {
	mu       sync.Mutex
	initErr  error
	rate     beep.SampleRate
	bufSize  int
	streamer beep.Streamer
	inits    int
	closes   int
}

func (o *fakeOutput) Init(rate beep.SampleRate, bufferSize int) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.inits++
	o.rate, o.bufSize = rate, bufferSize
	return o.initErr
}

func (o *fakeOutput) Play(s beep.Streamer) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.streamer = s
}

func (o *fakeOutput) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.closes++
}

func testAudioConfig() Config {
	return Config{
		SampleRate:     8000,
		BufferDuration: 100 * time.Millisecond,
		Volume:         0.5,
		Quality:        resampler.QualityLow,
	}
}

// TestDecodeClipSameRate verifies a clip at the output rate is buffered untouched
func TestDecodeClipSameRate(t *testing.T) {
	clip, err := DecodeClip(makeWAV(8000, 800, 440), 8000, resampler.QualityLow)
	if err != nil {
		t.Fatalf("DecodeClip failed: %v", err)
	}
	if clip.Len() != 800 {
		t.Errorf("Expected 800 samples, got %d", clip.Len())
	}
	if clip.SampleRate() != 8000 {
		t.Errorf("Expected rate 8000, got %d", clip.SampleRate())
	}
	if clip.Duration() != 100*time.Millisecond {
		t.Errorf("Expected 100ms clip, got %v", clip.Duration())
	}

	buf := make([][2]float64, 800)
	n, ok := clip.Stream(buf)
	if !ok || n != 800 {
		t.Fatalf("Expected 800 samples streamed, got %d (ok=%v)", n, ok)
	}
	for i := 0; i < n; i++ {
		if buf[i][0] != buf[i][1] {
			t.Fatalf("Sample %d: expected mono copied to both channels", i)
		}
		if math.Abs(buf[i][0]) > 0.51 {
			t.Fatalf("Sample %d out of expected amplitude: %f", i, buf[i][0])
		}
	}
}

// TestDecodeClipResample verifies rate conversion scales the clip length
func TestDecodeClipResample(t *testing.T) {
	clip, err := DecodeClip(makeWAV(8000, 4000, 220), 16000, resampler.QualityLow)
	if err != nil {
		t.Fatalf("DecodeClip failed: %v", err)
	}
	if clip.SampleRate() != 16000 {
		t.Errorf("Expected stored rate 16000, got %d", clip.SampleRate())
	}
	// Filter latency trims a little off the edges
	if clip.Len() < 7000 || clip.Len() > 9000 {
		t.Errorf("Expected ~8000 samples after 2x resample, got %d", clip.Len())
	}
}

// TestDecodeClipErrors verifies corrupt and empty payloads are rejected
func TestDecodeClipErrors(t *testing.T) {
	if _, err := DecodeClip(nil, 8000, resampler.QualityLow); !errors.Is(err, ErrEmptyClip) {
		t.Errorf("Expected ErrEmptyClip for nil payload, got %v", err)
	}
	if _, err := DecodeClip(makeWAV(8000, 0, 440), 8000, resampler.QualityLow); err == nil {
		t.Error("Expected error for header-only wav")
	}
	if _, err := DecodeClip([]byte("this is not a wav file at all"), 8000, resampler.QualityLow); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Expected ErrUnknownFormat for unrecognized payload, got %v", err)
	}
	if _, err := DecodeClip([]byte("fLaC\x00\x00"), 8000, resampler.QualityLow); err == nil || errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Expected flac decode error for truncated stream, got %v", err)
	}
}

// TestDetectFormat verifies containers are sniffed from their leading bytes
func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{"wav", makeWAV(8000, 10, 440), FormatWAV},
		{"flac", []byte("fLaC\x00\x00\x00\x22"), FormatFLAC},
		{"ogg", []byte("OggS\x00\x02"), FormatVorbis},
		{"mp3 id3", []byte("ID3\x04\x00"), FormatMP3},
		{"mp3 frame sync", []byte{0xFF, 0xFB, 0x90, 0x64}, FormatMP3},
		{"riff without wave", []byte("RIFF\x00\x00\x00\x00AVI "), FormatUnknown},
		{"short", []byte{0xFF}, FormatUnknown},
		{"empty", nil, FormatUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFormat(tt.data); got != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}

// TestDecodeClipFLAC verifies a compressed stereo clip keeps its channels apart
func TestDecodeClipFLAC(t *testing.T) {
	data, err := os.ReadFile("testdata/tone.flac")
	if err != nil {
		t.Fatalf("Failed to read fixture: %v", err)
	}
	if DetectFormat(data) != FormatFLAC {
		t.Fatal("Expected fixture sniffed as flac")
	}

	clip, err := DecodeClip(data, 8000, resampler.QualityLow)
	if err != nil {
		t.Fatalf("DecodeClip failed: %v", err)
	}
	if clip.Len() != 4000 {
		t.Fatalf("Expected 4000 samples, got %d", clip.Len())
	}

	var peakL, peakR float64
	for _, s := range clip.samples {
		peakL = max(peakL, math.Abs(s[0]))
		peakR = max(peakR, math.Abs(s[1]))
	}
	// Left carries a 440 Hz tone at 12000/32768, right is silent
	if peakL < 0.33 || peakL > 0.4 {
		t.Errorf("Expected left peak ~0.366, got %f", peakL)
	}
	if peakR != 0 {
		t.Errorf("Expected silent right channel, got peak %f", peakR)
	}

	clip, err = DecodeClip(data, 16000, resampler.QualityLow)
	if err != nil {
		t.Fatalf("DecodeClip with resample failed: %v", err)
	}
	if clip.Len() < 7000 || clip.Len() > 9000 {
		t.Errorf("Expected ~8000 samples after 2x resample, got %d", clip.Len())
	}
}

// TestClipSeekAndLoop verifies seeking bounds and repeat playback through beep.Loop
func TestClipSeekAndLoop(t *testing.T) {
	clip, err := DecodeClip(makeWAV(8000, 100, 440), 8000, resampler.QualityLow)
	if err != nil {
		t.Fatalf("DecodeClip failed: %v", err)
	}

	if err := clip.Seek(101); err == nil {
		t.Error("Expected seek past end to fail")
	}
	if err := clip.Seek(-1); err == nil {
		t.Error("Expected negative seek to fail")
	}
	if err := clip.Seek(60); err != nil || clip.Position() != 60 {
		t.Fatalf("Expected seek to 60, got pos %d (%v)", clip.Position(), err)
	}
	clip.Seek(0)

	looped := beep.Loop(3, clip)
	buf := make([][2]float64, 64)
	total := 0
	for {
		n, ok := looped.Stream(buf)
		total += n
		if !ok {
			break
		}
	}
	if total != 300 {
		t.Errorf("Expected 300 samples over 3 passes, got %d", total)
	}
}

// TestLoopLifecycle verifies setup, playback and cancellation release the device
func TestLoopLifecycle(t *testing.T) {
	out := &fakeOutput{}
	cfg := testAudioConfig()
	loop := NewLoop(makeWAV(8000, 400, 440), out, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := loop.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if !loop.Playing() {
		t.Error("Expected loop to be playing after Start")
	}

	out.mu.Lock()
	if out.rate != 8000 || out.bufSize != 800 {
		t.Errorf("Expected device init 8000 Hz / 800 samples, got %d / %d", out.rate, out.bufSize)
	}
	s := out.streamer
	out.mu.Unlock()
	if s == nil {
		t.Fatal("Expected a streamer queued on the device")
	}

	// Infinite loop: far more samples than one pass
	buf := make([][2]float64, 1000)
	for i := 0; i < 5; i++ {
		if n, ok := s.Stream(buf); !ok || n != len(buf) {
			t.Fatalf("Expected continuous playback, got n=%d ok=%v", n, ok)
		}
	}

	cancel()
	loop.Wait()

	if loop.Playing() {
		t.Error("Expected loop stopped after cancellation")
	}
	out.mu.Lock()
	defer out.mu.Unlock()
	if out.closes != 1 {
		t.Errorf("Expected device closed once, got %d", out.closes)
	}
}

// TestLoopCorruptClip verifies bad payloads fail setup and still release the device
func TestLoopCorruptClip(t *testing.T) {
	out := &fakeOutput{}
	loop := NewLoop([]byte("garbage"), out, testAudioConfig())

	err := loop.Start(context.Background())
	if err == nil {
		t.Fatal("Expected setup error for corrupt clip")
	}
	loop.Wait()

	if loop.Playing() {
		t.Error("Expected loop not playing after failed setup")
	}
	if out.closes != 1 {
		t.Errorf("Expected device released after failed setup, got %d closes", out.closes)
	}
	if out.streamer != nil {
		t.Error("Expected nothing queued on the device")
	}
}

// TestLoopDeviceError verifies device failure is reported and nothing is closed
func TestLoopDeviceError(t *testing.T) {
	devErr := errors.New("no audio device")
	out := &fakeOutput{initErr: devErr}
	loop := NewLoop(makeWAV(8000, 400, 440), out, testAudioConfig())

	if err := loop.Start(context.Background()); !errors.Is(err, devErr) {
		t.Fatalf("Expected wrapped device error, got %v", err)
	}
	loop.Wait()
	if out.closes != 0 {
		t.Errorf("Expected no Close after failed Init, got %d", out.closes)
	}
}

// TestLoopStartTwice verifies a loop runs at most once
func TestLoopStartTwice(t *testing.T) {
	out := &fakeOutput{}
	loop := NewLoop(makeWAV(8000, 400, 440), out, testAudioConfig())

	ctx, cancel := context.WithCancel(context.Background())
	if err := loop.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := loop.Start(ctx); !errors.Is(err, ErrAlreadyStarted) {
		t.Errorf("Expected ErrAlreadyStarted, got %v", err)
	}
	cancel()
	loop.Wait()
	if out.inits != 1 {
		t.Errorf("Expected one device init, got %d", out.inits)
	}
}

// TestLoopWaitWithoutStart verifies Wait never blocks on an idle loop
func TestLoopWaitWithoutStart(t *testing.T) {
	loop := NewLoop(nil, &fakeOutput{}, testAudioConfig())
	done := make(chan struct{})
	go func() {
		loop.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Expected Wait to return immediately")
	}
}

// TestConfigValidate verifies audio configuration bounds
func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("Expected default config valid, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero rate", func(c *Config) { c.SampleRate = 0 }},
		{"zero buffer", func(c *Config) { c.BufferDuration = 0 }},
		{"loud", func(c *Config) { c.Volume = 1.5 }},
		{"negative volume", func(c *Config) { c.Volume = -0.1 }},
		{"bad quality", func(c *Config) { c.Quality = resampler.QualityCustom }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testAudioConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
			if err := NewLoop(nil, &fakeOutput{}, cfg).Start(context.Background()); err == nil {
				t.Error("Expected Start to reject invalid config")
			}
		})
	}
}

// TestVolumeSilent verifies zero volume mutes instead of producing -Inf gain
func TestVolumeSilent(t *testing.T) {
	cfg := testAudioConfig()
	cfg.Volume = 0
	loop := NewLoop(nil, &fakeOutput{}, cfg)

	clip, err := DecodeClip(makeWAV(8000, 100, 440), 8000, resampler.QualityLow)
	if err != nil {
		t.Fatalf("DecodeClip failed: %v", err)
	}
	buf := make([][2]float64, 100)
	loop.volume(clip).Stream(buf)
	for i, s := range buf {
		if s[0] != 0 || s[1] != 0 {
			t.Fatalf("Sample %d: expected silence, got %v", i, s)
		}
	}
}

// TestDecodeEmbeddedClip verifies the bundled rain clip decodes at the device rate
func TestDecodeEmbeddedClip(t *testing.T) {
	if f := DetectFormat(asset.LightRain); f != FormatFLAC {
		t.Fatalf("Expected embedded clip stored as flac, got %s", f)
	}
	clip, err := DecodeClip(asset.LightRain, 44100, resampler.QualityLow)
	if err != nil {
		t.Fatalf("Embedded clip failed to decode: %v", err)
	}
	if d := clip.Duration(); d < 5*time.Second || d > 7*time.Second {
		t.Errorf("Expected ~5.75s clip, got %v", d)
	}
}
