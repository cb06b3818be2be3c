// Package asset bundles the binary resources compiled into the executable
package asset

import _ "embed"

// LightRain is the looping background clip, 16-bit mono FLAC
//
//go:embed sounds/light-rain.flac
var LightRain []byte
