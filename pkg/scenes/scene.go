package scenes

import (
	"github.com/decker502/glyphswarm/pkg/game"
)

// Scene is a type alias for game.Scene.
// All scene implementations should implement the game.Scene interface.
type Scene = game.Scene

var (
	_ Scene         = (*IntroScene)(nil)
	_ Scene         = (*SpeechScene)(nil)
	_ game.Teardown = (*IntroScene)(nil)
	_ game.Teardown = (*SpeechScene)(nil)
	_ game.Saveable = (*IntroScene)(nil)
)
