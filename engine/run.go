package engine

import (
	"context"
	"fmt"
	"log"

	"github.com/FlowLightGames/CLI-Rain/render"
	"github.com/FlowLightGames/CLI-Rain/status"
)

// Player is the background audio started before the first frame; satisfied by *audio.Loop
type Player interface {
	Start(ctx context.Context) error
	Wait()
	Playing() bool
}

// Run starts the player, then runs the render loop on the calling goroutine until ctrl stops
// Audio setup failure is returned before any frame is drawn
// On return the controller is stopped and the player has been joined
func Run(ctrl *Controller, sink render.Sink, player Player, cfg Config, reg *status.Registry) error {
	if reg == nil {
		reg = status.NewRegistry()
	}

	loop, err := NewRenderLoop(sink, ctrl, cfg, reg)
	if err != nil {
		return err
	}

	if err := player.Start(ctrl.Context()); err != nil {
		ctrl.Stop()
		player.Wait()
		return fmt.Errorf("start audio: %w", err)
	}
	playing := reg.Bools.Get(status.KeyAudio)
	playing.Store(player.Playing())

	defer func() {
		ctrl.Stop()
		player.Wait()
		playing.Store(player.Playing())
		log.Printf("engine: shutdown %s", reg.Summary())
	}()

	return loop.Run()
}
