package system

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"

	"github.com/milk9111/brawler/common"
	"github.com/milk9111/brawler/ecs"
	"github.com/milk9111/brawler/ecs/component"
	"github.com/milk9111/brawler/player"
)

const (
	debugCircleSegments = 24
	debugDotSize        = 0.125
	debugStroke         = 1
)

func DrawPhysicsDebug(space *cp.Space, screen *ebiten.Image) {
	if space == nil || screen == nil {
		return
	}
	cp.DrawSpace(space, &physicsDebugDrawer{screen: screen, screenH: screen.Bounds().Dy()})
}

// DrawGizmos lets every built controller draw its debug overlay.
func DrawGizmos(w *ecs.World, screen *ebiten.Image) {
	if w == nil || screen == nil {
		return
	}
	g := &screenGizmos{screen: screen, screenH: screen.Bounds().Dy()}
	ecs.ForEach(w, component.PlayerComponent.Kind(), func(_ ecs.Entity, pc *component.Player) {
		if pc.Controller != nil {
			pc.Controller.DrawGizmos(g)
		}
	})
}

func DrawPlayerStateDebug(w *ecs.World, screen *ebiten.Image) {
	if w == nil || screen == nil {
		return
	}
	e, ok := w.First(component.PlayerTagComponent.Kind(), component.PlayerComponent.Kind())
	if !ok {
		return
	}
	pc, _ := ecs.Get(w, e, component.PlayerComponent.Kind())
	if pc.Controller == nil {
		ebitenutil.DebugPrintAt(screen, "Player: spawning", 10, 10)
		return
	}
	st := pc.Controller.State()
	text := fmt.Sprintf("Input: %+.2f\nGrounded: %v\nFacingRight: %v\nVelocity: (%.2f, %.2f)",
		st.HorizontalInput, st.Grounded, st.FacingRight, st.Velocity.X, st.Velocity.Y)
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		text += fmt.Sprintf("\nPosition: (%.2f, %.2f)", t.X, t.Y)
	}
	ebitenutil.DebugPrintAt(screen, text, 10, 10)
}

type screenGizmos struct {
	screen  *ebiten.Image
	screenH int
}

var _ player.Gizmos = (*screenGizmos)(nil)

func (g *screenGizmos) WireCircle(center cp.Vector, radius float64, clr color.Color) {
	x, y := common.WorldToScreen(center.X, center.Y, g.screenH)
	vector.StrokeCircle(g.screen, float32(x), float32(y), float32(radius*common.PixelsPerUnit), debugStroke, clr, true)
}

type physicsDebugDrawer struct {
	screen  *ebiten.Image
	screenH int
}

func (d *physicsDebugDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	if radius <= 0 {
		return
	}
	d.drawCircle(pos, radius, outline)
	end := cp.Vector{X: pos.X + math.Cos(angle)*radius, Y: pos.Y + math.Sin(angle)*radius}
	d.drawLine(pos, end, outline)
}

func (d *physicsDebugDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, fill)
}

func (d *physicsDebugDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, outline)
	if radius > 0 {
		d.drawCircle(a, radius, outline)
		d.drawCircle(b, radius, outline)
	}
}

func (d *physicsDebugDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count <= 0 {
		return
	}
	d.drawPolygon(verts[:count], outline)
}

func (d *physicsDebugDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	half := debugDotSize / 2
	d.drawLine(cp.Vector{X: pos.X - half, Y: pos.Y}, cp.Vector{X: pos.X + half, Y: pos.Y}, fill)
	d.drawLine(cp.Vector{X: pos.X, Y: pos.Y - half}, cp.Vector{X: pos.X, Y: pos.Y + half}, fill)
}

func (d *physicsDebugDrawer) Flags() uint {
	return cp.DRAW_SHAPES | cp.DRAW_COLLISION_POINTS
}

func (d *physicsDebugDrawer) OutlineColor() cp.FColor {
	return cp.FColor{R: 0.2, G: 1, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	return cp.FColor{R: 0.1, G: 0.6, B: 0.1, A: 0.5}
}

func (d *physicsDebugDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.5, B: 0.1, A: 0.9}
}

func (d *physicsDebugDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.2, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) Data() interface{} {
	return nil
}

func (d *physicsDebugDrawer) drawLine(a, b cp.Vector, c cp.FColor) {
	x1, y1 := common.WorldToScreen(a.X, a.Y, d.screenH)
	x2, y2 := common.WorldToScreen(b.X, b.Y, d.screenH)
	vector.StrokeLine(d.screen, float32(x1), float32(y1), float32(x2), float32(y2), debugStroke, toNRGBA(c), false)
}

func (d *physicsDebugDrawer) drawPolygon(verts []cp.Vector, c cp.FColor) {
	for i := range verts {
		d.drawLine(verts[i], verts[(i+1)%len(verts)], c)
	}
}

func (d *physicsDebugDrawer) drawCircle(center cp.Vector, radius float64, c cp.FColor) {
	points := make([]cp.Vector, 0, debugCircleSegments)
	for i := 0; i < debugCircleSegments; i++ {
		t := (2 * math.Pi) * (float64(i) / float64(debugCircleSegments))
		points = append(points, cp.Vector{X: center.X + math.Cos(t)*radius, Y: center.Y + math.Sin(t)*radius})
	}
	d.drawPolygon(points, c)
}

func toNRGBA(c cp.FColor) color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R) * 255),
		G: uint8(clamp01(c.G) * 255),
		B: uint8(clamp01(c.B) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
