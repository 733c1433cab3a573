package layout

import (
	"github.com/matzehuels/mindlayout/pkg/core/geometry"
	"github.com/matzehuels/mindlayout/pkg/theme"
)

// Default canvas size; the root is centered in it unless Origin is set.
const (
	DefaultCanvasWidth  = 800
	DefaultCanvasHeight = 600
)

// Config is the immutable input of one layout pass besides the content.
type Config struct {
	Strategy Kind
	Theme    theme.Theme
	// Origin is where the center of the root box is placed.
	Origin geometry.Point
}

// DefaultConfig returns a mind map layout with the default theme centered
// on the default canvas.
func DefaultConfig() Config {
	return Config{
		Strategy: MindMap,
		Theme:    theme.Default(),
		Origin:   geometry.Point{X: DefaultCanvasWidth / 2, Y: DefaultCanvasHeight / 2},
	}
}
