// Command cli-rain draws falling rain in the terminal while a rain clip loops in the background
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/FlowLightGames/CLI-Rain/asset"
	"github.com/FlowLightGames/CLI-Rain/audio"
	"github.com/FlowLightGames/CLI-Rain/core"
	"github.com/FlowLightGames/CLI-Rain/engine"
	"github.com/FlowLightGames/CLI-Rain/parameter"
	"github.com/FlowLightGames/CLI-Rain/render"
	"github.com/FlowLightGames/CLI-Rain/status"
)

// display is the platform draw target: a render sink that restores the console on Fini
type display interface {
	render.Sink
	Fini()
}

func main() {
	os.Exit(run())
}

// run returns the process exit code; deferred cleanup completes before main exits
func run() int {
	// Panics before the display exists fall back to the raw reset
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	if logFile := setupLogging(parameter.Debug); logFile != nil {
		defer logFile.Close()
	}

	cfg := engine.DefaultConfig()

	d, err := openDisplay()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		return 1
	}

	log.Printf("cli-rain: started on %s", displayName)
	// Guard restores the display before returning, so the error lands on the primary screen
	if err := core.Guard(d, func() error { return runRain(d, cfg) }); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

// runRain runs audio and rendering until a stop signal or a fatal error
func runRain(d display, cfg engine.Config) error {
	ctrl := engine.NewController(context.Background())
	restore := ctrl.NotifySignals()
	defer restore()
	watchInterrupt(d, ctrl.Stop)

	player := audio.NewLoop(asset.LightRain, audio.SpeakerOutput{}, cfg.Audio)
	return engine.Run(ctrl, d, player, cfg, status.NewRegistry())
}
