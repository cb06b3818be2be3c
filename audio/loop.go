package audio

import (
	"context"
	"fmt"
	"log"
	"math"
	"sync/atomic"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/FlowLightGames/CLI-Rain/core"
)

// Loop plays an embedded clip on repeat until its context ends
type Loop struct {
	cfg  Config
	data []byte
	out  Output

	started atomic.Bool
	playing atomic.Bool
	done    chan struct{}
}

// NewLoop creates a loop over a WAV payload
func NewLoop(data []byte, out Output, cfg Config) *Loop {
	return &Loop{
		cfg:  cfg,
		data: data,
		out:  out,
		done: make(chan struct{}),
	}
}

// Start acquires the device, decodes the clip and begins playback on a background goroutine
// It blocks until setup finishes and returns the setup error, if any
// Playback continues until ctx is cancelled; use Wait to join
func (l *Loop) Start(ctx context.Context) error {
	if !l.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}
	if err := l.cfg.Validate(); err != nil {
		close(l.done)
		return err
	}

	setup := make(chan error, 1)
	core.Go(func() {
		defer close(l.done)
		l.run(ctx, setup)
	})
	return <-setup
}

func (l *Loop) run(ctx context.Context, setup chan<- error) {
	rate := l.cfg.Rate()
	if err := l.out.Init(rate, l.cfg.BufferSize()); err != nil {
		setup <- fmt.Errorf("init audio device: %w", err)
		return
	}
	defer l.out.Close()

	clip, err := DecodeClip(l.data, rate, l.cfg.Quality)
	if err != nil {
		setup <- fmt.Errorf("load clip: %w", err)
		return
	}

	l.out.Play(l.volume(beep.Loop(-1, clip)))
	l.playing.Store(true)
	log.Printf("audio: looping %v clip at %d Hz", clip.Duration(), rate)
	setup <- nil

	<-ctx.Done()
	l.playing.Store(false)
	log.Printf("audio: stopped")
}

// volume applies the configured linear gain
func (l *Loop) volume(s beep.Streamer) beep.Streamer {
	return &effects.Volume{
		Streamer: s,
		Base:     2,
		Volume:   math.Log2(l.cfg.Volume),
		Silent:   l.cfg.Volume == 0,
	}
}

// Wait blocks until the playback goroutine has released the device
// Returns immediately if Start was never called
func (l *Loop) Wait() {
	if !l.started.Load() {
		return
	}
	<-l.done
}

// Playing reports whether the clip is currently queued on the device
func (l *Loop) Playing() bool {
	return l.playing.Load()
}
