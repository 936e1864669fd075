// Package palette holds the colors shared by the game renderer and the debug
// overlay.
package palette

import (
	"image/color"

	"github.com/plus3/blockfall/board"
)

var (
	Background = color.RGBA{0, 0, 0, 255}
	Gridline   = color.RGBA{40, 40, 40, 255}
	Border     = color.RGBA{100, 100, 100, 255}
	Text       = color.RGBA{255, 255, 255, 255}
	Dim        = color.RGBA{150, 150, 150, 255}
)

var kinds = [board.KindCount + 1]color.RGBA{
	board.Empty: Background,
	board.I:     {0, 255, 255, 255},
	board.O:     {255, 255, 0, 255},
	board.T:     {255, 0, 255, 255},
	board.S:     {0, 255, 0, 255},
	board.Z:     {255, 0, 0, 255},
	board.J:     {0, 0, 255, 255},
	board.L:     {255, 165, 0, 255},
}

// Kind is the fill color of a cell of kind k. Unknown kinds draw as empty.
func Kind(k board.Kind) color.RGBA {
	if int(k) < len(kinds) {
		return kinds[k]
	}
	return Background
}

// Ghost is the translucent color of a landing preview for kind k.
func Ghost(k board.Kind) color.RGBA {
	c := Kind(k)
	// Premultiplied alpha, as image/color expects.
	return color.RGBA{c.R / 4, c.G / 4, c.B / 4, 64}
}

// Float returns c as normalized RGBA components.
func Float(c color.RGBA) (r, g, b, a float32) {
	return float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255, float32(c.A) / 255
}
