package player

import (
	"image/color"

	"github.com/jakecoffman/cp"
)

type fakeBody struct {
	vel    cp.Vector
	locked bool
	sets   int
}

func (b *fakeBody) Velocity() cp.Vector { return b.vel }

func (b *fakeBody) SetVelocity(v cp.Vector) {
	b.vel = v
	b.sets++
}

func (b *fakeBody) LockRotation() { b.locked = true }

type fakeProbe struct {
	ground bool
	point  cp.Vector
	radius float64
	mask   LayerMask
	calls  int
}

func (p *fakeProbe) Overlap(point cp.Vector, radius float64, mask LayerMask) bool {
	p.point, p.radius, p.mask = point, radius, mask
	p.calls++
	return p.ground
}

type fakeAnchor struct{ pos cp.Vector }

func (a fakeAnchor) Position() cp.Vector { return a.pos }

type fakeSprite struct{ scale cp.Vector }

func (s *fakeSprite) Scale() cp.Vector { return s.scale }

func (s *fakeSprite) SetScale(v cp.Vector) { s.scale = v }

type circle struct {
	center cp.Vector
	radius float64
	clr    color.Color
}

type fakeGizmos struct{ circles []circle }

func (g *fakeGizmos) WireCircle(center cp.Vector, radius float64, clr color.Color) {
	g.circles = append(g.circles, circle{center, radius, clr})
}

type rig struct {
	body   *fakeBody
	probe  *fakeProbe
	sprite *fakeSprite
	deps   Deps
}

func newRig() *rig {
	r := &rig{
		body:   &fakeBody{},
		probe:  &fakeProbe{},
		sprite: &fakeSprite{scale: cp.Vector{X: 2, Y: 3}},
	}
	r.deps = Deps{
		Body:        r.body,
		Probe:       r.probe,
		GroundCheck: fakeAnchor{pos: cp.Vector{X: 1, Y: -0.5}},
		GroundLayer: 1 << 1,
		Sprite:      r.sprite,
	}
	return r
}
