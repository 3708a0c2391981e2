package system

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/brawler/ecs"
	"github.com/milk9111/brawler/ecs/component"
	"github.com/milk9111/brawler/player"
)

const (
	defaultBoxSize    = 1.0
	defaultIterations = 10
)

// PhysicsSystem owns the Chipmunk space. Entities with a PhysicsBody get a
// box body on their first sync; the body is removed again once the entity
// dies or loses the component.
type PhysicsSystem struct {
	space    *cp.Space
	dt       float64
	entities map[ecs.Entity]*bodyInfo
}

type bodyInfo struct {
	body   *cp.Body
	shapes []*cp.Shape
	static bool
}

var _ player.GroundProbe = (*PhysicsSystem)(nil)

// NewPhysicsSystem builds a space with gravity along Y (negative pulls
// down) stepped by dt seconds per update.
func NewPhysicsSystem(gravity float64, iterations uint, dt float64) *PhysicsSystem {
	if iterations == 0 {
		iterations = defaultIterations
	}
	space := cp.NewSpace()
	space.Iterations = iterations
	space.SetGravity(cp.Vector{X: 0, Y: gravity})
	return &PhysicsSystem{
		space:    space,
		dt:       dt,
		entities: make(map[ecs.Entity]*bodyInfo),
	}
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	ps.Sync(w)
	ps.space.Step(ps.dt)
	ps.syncTransforms(w)
}

// Sync drops bodies of dead entities and creates bodies for new ones
// without stepping the space.
func (ps *PhysicsSystem) Sync(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	ps.cleanupEntities(w)
	ps.syncEntities(w)
}

// Overlap reports whether any non-sensor shape in mask lies within radius
// of point.
func (ps *PhysicsSystem) Overlap(point cp.Vector, radius float64, mask player.LayerMask) bool {
	if ps == nil || ps.space == nil {
		return false
	}
	filter := cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, uint(mask))
	info := ps.space.PointQueryNearest(point, radius, filter)
	return info != nil && info.Shape != nil
}

// BodyCount is the number of entities currently backed by the space.
func (ps *PhysicsSystem) BodyCount() int {
	return len(ps.entities)
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	entities := w.Query(component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind())
	for _, e := range entities {
		bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if !ok {
			continue
		}
		if info := ps.entities[e]; info != nil {
			if bodyComp.Body == nil {
				bodyComp.Body = info.body
				bodyComp.Shape = info.shapes[0]
			}
			continue
		}
		transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}

		layer := component.CollisionLayer{}
		if l, ok := ecs.Get(w, e, component.CollisionLayerComponent.Kind()); ok {
			layer = *l
		}

		info := ps.createBodyInfo(*transform, *bodyComp, layer)
		ps.entities[e] = info
		bodyComp.Body = info.body
		bodyComp.Shape = info.shapes[0]
	}
}

func (ps *PhysicsSystem) createBodyInfo(transform component.Transform, bodyComp component.PhysicsBody, layer component.CollisionLayer) *bodyInfo {
	width, height := bodyComp.Width, bodyComp.Height
	if width <= 0 {
		width = defaultBoxSize
	}
	if height <= 0 {
		height = defaultBoxSize
	}

	if layer.Category == 0 {
		layer.Category = component.LayerPlayer
		if bodyComp.Static {
			layer.Category = component.LayerGround
		}
	}
	mask := uint(cp.ALL_CATEGORIES)
	if layer.Mask != 0 {
		mask = uint(layer.Mask)
	}
	filter := cp.NewShapeFilter(cp.NO_GROUP, uint(layer.Category), mask)

	info := &bodyInfo{static: bodyComp.Static}

	if bodyComp.Static {
		bb := cp.BB{
			L: transform.X - width/2,
			B: transform.Y - height/2,
			R: transform.X + width/2,
			T: transform.Y + height/2,
		}
		shape := cp.NewBox2(ps.space.StaticBody, bb, 0)
		shape.SetFriction(bodyComp.Friction)
		shape.SetElasticity(bodyComp.Elasticity)
		shape.SetFilter(filter)
		ps.space.AddShape(shape)

		info.body = ps.space.StaticBody
		info.shapes = []*cp.Shape{shape}
		return info
	}

	mass := bodyComp.Mass
	if mass <= 0 {
		mass = 1
	}
	body := cp.NewBody(mass, cp.MomentForBox(mass, width, height))
	body.SetPosition(cp.Vector{X: transform.X, Y: transform.Y})
	body.SetAngle(transform.Rotation)
	body.SetAngularVelocity(0)

	shape := cp.NewBox(body, width, height, 0)
	shape.SetFriction(bodyComp.Friction)
	shape.SetElasticity(bodyComp.Elasticity)
	shape.SetFilter(filter)

	ps.space.AddBody(body)
	ps.space.AddShape(shape)

	info.body = body
	info.shapes = []*cp.Shape{shape}
	return info
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	entities := w.Query(component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind())
	for _, e := range entities {
		bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if !ok || bodyComp.Body == nil || bodyComp.Static {
			continue
		}
		transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		pos := bodyComp.Body.Position()
		transform.X = pos.X
		transform.Y = pos.Y
		transform.Rotation = bodyComp.Body.Angle()
	}
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if w.IsAlive(e) && ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			continue
		}
		for _, shape := range info.shapes {
			ps.space.RemoveShape(shape)
		}
		if info.body != nil && !info.static {
			ps.space.RemoveBody(info.body)
		}
		delete(ps.entities, e)
	}
}

type bodyHandle struct {
	body *cp.Body
}

func (b bodyHandle) Velocity() cp.Vector {
	return b.body.Velocity()
}

func (b bodyHandle) SetVelocity(v cp.Vector) {
	b.body.SetVelocityVector(v)
}

func (b bodyHandle) LockRotation() {
	b.body.SetMoment(math.Inf(1))
	b.body.SetAngle(0)
	b.body.SetAngularVelocity(0)
}

// footAnchor follows the body at a local offset.
type footAnchor struct {
	body   *cp.Body
	offset cp.Vector
}

func (a footAnchor) Position() cp.Vector {
	return a.body.LocalToWorld(a.offset)
}

// transformScale exposes an entity's transform scale. The component is
// looked up on every call so replaced components are picked up.
type transformScale struct {
	w *ecs.World
	e ecs.Entity
}

func (t transformScale) Scale() cp.Vector {
	tr, ok := ecs.Get(t.w, t.e, component.TransformComponent.Kind())
	if !ok {
		return cp.Vector{X: 1, Y: 1}
	}
	return cp.Vector{X: tr.ScaleX, Y: tr.ScaleY}
}

func (t transformScale) SetScale(scale cp.Vector) {
	if tr, ok := ecs.Get(t.w, t.e, component.TransformComponent.Kind()); ok {
		tr.ScaleX = scale.X
		tr.ScaleY = scale.Y
	}
}
