package engine

import (
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/FlowLightGames/CLI-Rain/rain"
	"github.com/FlowLightGames/CLI-Rain/render"
	"github.com/FlowLightGames/CLI-Rain/status"
	"github.com/FlowLightGames/CLI-Rain/vmath"
)

// RenderLoop advances the particle field and redraws it once per frame
// It runs on the caller's goroutine and owns the simulation exclusively
type RenderLoop struct {
	cfg      Config
	sink     render.Sink
	ctrl     *Controller
	renderer *render.Renderer
	rng      *vmath.FastRand
	sim      *rain.Simulation

	// Cached metric cells
	frames    *atomic.Int64
	rebuilds  *atomic.Int64
	particles *atomic.Int64
	alive     *atomic.Int64
	frameMs   *status.AtomicFloat
	grid      *status.AtomicString
}

// NewRenderLoop validates cfg and wires the loop to a sink and controller
// reg may be nil when metrics are not collected
func NewRenderLoop(sink render.Sink, ctrl *Controller, cfg Config, reg *status.Registry) (*RenderLoop, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if reg == nil {
		reg = status.NewRegistry()
	}

	return &RenderLoop{
		cfg:       cfg,
		sink:      sink,
		ctrl:      ctrl,
		renderer:  render.NewRenderer(sink, cfg.Rain.Glyphs),
		rng:       vmath.NewFastRand(cfg.seed()),
		frames:    reg.Ints.Get(status.KeyFrames),
		rebuilds:  reg.Ints.Get(status.KeyRebuilds),
		particles: reg.Ints.Get(status.KeyParticles),
		alive:     reg.Ints.Get(status.KeyAlive),
		frameMs:   reg.Floats.Get(status.KeyFrameMs),
		grid:      reg.Strings.Get(status.KeyGrid),
	}, nil
}

// Run draws frames until the controller stops or a frame fails
// Stop is observed at the top of each iteration and while waiting for the next tick
func (l *RenderLoop) Run() error {
	ticker := time.NewTicker(l.cfg.FrameInterval)
	defer ticker.Stop()

	for l.ctrl.Running() {
		if err := l.Frame(); err != nil {
			return err
		}

		select {
		case <-ticker.C:
		case <-l.ctrl.Done():
		}
	}
	return nil
}

// Frame performs one iteration: size query, resize rebuild, tick, redraw
func (l *RenderLoop) Frame() error {
	width, height, err := l.sink.Size()
	if err != nil {
		return fmt.Errorf("query terminal size: %w", err)
	}

	switch {
	case l.sim == nil:
		sim, err := rain.NewSimulation(width, height, l.cfg.Rain, l.rng)
		if err != nil {
			return err
		}
		l.sim = sim
		l.resized(width, height)
	case l.sim.Sync(width, height):
		l.rebuilds.Add(1)
		l.resized(width, height)
	}

	start := time.Now()
	l.sim.Step()
	field := l.sim.Field()
	if err := l.renderer.Draw(field); err != nil {
		return fmt.Errorf("draw frame: %w", err)
	}

	l.frames.Add(1)
	l.alive.Store(int64(field.AliveCount()))
	l.frameMs.Set(float64(time.Since(start).Microseconds()) / 1000)
	return nil
}

func (l *RenderLoop) resized(width, height int) {
	n := l.sim.Field().Len()
	l.particles.Store(int64(n))
	l.grid.Store(fmt.Sprintf("%dx%d", width, height))
	log.Printf("engine: field %dx%d with %d particles", width, height, n)
}

// Field returns the current field, nil before the first frame
func (l *RenderLoop) Field() *rain.Field {
	if l.sim == nil {
		return nil
	}
	return l.sim.Field()
}
