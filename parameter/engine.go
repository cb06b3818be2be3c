package parameter

import "time"

// Render Loop Timing
const (
	// FrameInterval is the fixed tick between simulation+render steps (~20 FPS)
	FrameInterval = 50 * time.Millisecond
)

// Logging
const (
	// Debug routes the standard logger to LogDir/LogFileName instead of discarding it
	// Stdout is owned by the renderer, so logs never go there
	Debug = false

	LogDir      = "logs"
	LogFileName = "cli-rain.log"

	// MaxLogSize triggers rotation to a timestamped file at startup
	MaxLogSize = 10 * 1024 * 1024
)
