package audio

import (
	"errors"
)

// Sentinel errors
var (
	ErrEmptyClip      = errors.New("audio clip contains no samples")
	ErrAlreadyStarted = errors.New("audio loop already started")
	ErrInvalidConfig  = errors.New("invalid audio config")
	ErrUnknownFormat  = errors.New("unrecognized audio container")
)
