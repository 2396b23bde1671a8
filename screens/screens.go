// Package screens holds the game's screens and the Manager that switches
// between them. Each screen builds its nodes into a fresh stage.Scene that
// shares the generated textures and animations of the boot screen.
package screens

import (
	"errors"
	"log"
)

// Screen keys. Level screens use the keys of the game flow configuration.
const (
	BootKey           = "BootScreen"
	MenuKey           = "MenuScreen"
	CountingForestKey = "CountingForestScreen"
	MirrorCityKey     = "MirrorCityScreen"
)

// ErrUnknownScreen is returned when starting a key with no registered screen.
var ErrUnknownScreen = errors.New("unknown screen")

// Screen is one top-level state of the game.
type Screen interface {
	// Enter builds the screen into m.Scene().
	Enter(m *Manager)
	// Update runs once per frame after the scene's tweens and timers.
	Update(dt float64)
	// Leave runs before the screen's scene is shut down.
	Leave()
}

// Factory creates a screen each time its key is started.
type Factory func() Screen

func warnf(format string, args ...any) {
	log.Printf("screens: "+format, args...)
}
