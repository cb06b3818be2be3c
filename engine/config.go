package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/FlowLightGames/CLI-Rain/audio"
	"github.com/FlowLightGames/CLI-Rain/parameter"
	"github.com/FlowLightGames/CLI-Rain/rain"
)

// ErrInvalidConfig wraps every configuration validation failure
var ErrInvalidConfig = errors.New("invalid config")

// Config bundles the runtime settings of all components
type Config struct {
	Rain          rain.Config
	Audio         audio.Config
	FrameInterval time.Duration
	Seed          uint64 // 0 seeds from the clock
}

// DefaultConfig returns the compile-time settings
func DefaultConfig() Config {
	return Config{
		Rain:          rain.DefaultConfig(),
		Audio:         audio.DefaultConfig(),
		FrameInterval: parameter.FrameInterval,
	}
}

// Validate checks every section
func (c Config) Validate() error {
	if c.FrameInterval <= 0 {
		return fmt.Errorf("%w: frame interval %v", ErrInvalidConfig, c.FrameInterval)
	}
	if err := c.Rain.Validate(); err != nil {
		return fmt.Errorf("%w: rain: %w", ErrInvalidConfig, err)
	}
	if err := c.Audio.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// seed resolves the random seed
func (c Config) seed() uint64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return uint64(time.Now().UnixNano())
}
