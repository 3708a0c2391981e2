package component

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Sprite is a procedural rectangle sized in world units. Accent paints a
// strip on the leading edge so a mirrored sprite is visible.
type Sprite struct {
	Width  float64
	Height float64
	Color  color.NRGBA
	Accent color.NRGBA
	Layer  int

	Image *ebiten.Image
}

var SpriteComponent = NewComponent[Sprite]()
