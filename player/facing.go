package player

import (
	"math"

	"github.com/jakecoffman/cp"
)

// NextFacing returns the facing after observing input. Zero input keeps the
// current facing.
func NextFacing(input float64, facingRight bool) (next bool, changed bool) {
	switch {
	case input < 0 && facingRight:
		return false, true
	case input > 0 && !facingRight:
		return true, true
	default:
		return facingRight, false
	}
}

// MirrorScale keeps the magnitude of scale.X and sets its sign from facing.
func MirrorScale(scale cp.Vector, facingRight bool) cp.Vector {
	x := math.Abs(scale.X)
	if !facingRight {
		x = -x
	}
	return cp.Vector{X: x, Y: scale.Y}
}
