package player

import (
	"image/color"

	"github.com/jakecoffman/cp"
)

// LayerMask selects collision categories for the ground probe.
type LayerMask uint

// Body is the rigid body the controller drives.
type Body interface {
	Velocity() cp.Vector
	SetVelocity(v cp.Vector)
	// LockRotation stops the body from ever rotating.
	LockRotation()
}

// GroundProbe answers whether a circle at point overlaps any collider in mask.
type GroundProbe interface {
	Overlap(point cp.Vector, radius float64, mask LayerMask) bool
}

// Anchor is a point that follows the body, e.g. the feet.
type Anchor interface {
	Position() cp.Vector
}

// ScaleTransform is the visual transform mirrored when facing changes.
type ScaleTransform interface {
	Scale() cp.Vector
	SetScale(scale cp.Vector)
}

// Gizmos draws debug overlays in world space.
type Gizmos interface {
	WireCircle(center cp.Vector, radius float64, clr color.Color)
}

// Deps are the handles a controller needs. All of them are required.
type Deps struct {
	Body        Body
	Probe       GroundProbe
	GroundCheck Anchor
	GroundLayer LayerMask
	Sprite      ScaleTransform
}
