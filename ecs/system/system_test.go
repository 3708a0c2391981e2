package system

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/brawler/ecs"
	"github.com/milk9111/brawler/ecs/component"
	"github.com/milk9111/brawler/input"
	"github.com/milk9111/brawler/player"
)

const (
	testGravity = -30.0
	testDt      = 0.02
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func add[T any](t *testing.T, w *ecs.World, e ecs.Entity, h component.ComponentHandle[T], v *T) {
	t.Helper()
	require.NoError(t, ecs.Add(w, e, h.Kind(), v))
}

// spawnGround places a static slab whose top face is at y=0.
func spawnGround(t *testing.T, w *ecs.World) ecs.Entity {
	t.Helper()
	e := w.CreateEntity()
	add(t, w, e, component.GroundTagComponent, &component.GroundTag{})
	add(t, w, e, component.TransformComponent, &component.Transform{X: 0, Y: -0.5, ScaleX: 1, ScaleY: 1})
	add(t, w, e, component.PhysicsBodyComponent, &component.PhysicsBody{Width: 40, Height: 1, Friction: 0.8, Static: true})
	add(t, w, e, component.CollisionLayerComponent, &component.CollisionLayer{Category: component.LayerGround})
	return e
}

func spawnPlayer(t *testing.T, w *ecs.World, x, y float64) ecs.Entity {
	t.Helper()
	e := w.CreateEntity()
	add(t, w, e, component.PlayerTagComponent, &component.PlayerTag{})
	add(t, w, e, component.PlayerComponent, &component.Player{Movement: player.DefaultMovementConfig()})
	add(t, w, e, component.InputComponent, &component.Input{})
	add(t, w, e, component.TransformComponent, &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1})
	add(t, w, e, component.PhysicsBodyComponent, &component.PhysicsBody{Width: 1, Height: 1.5, Mass: 1})
	add(t, w, e, component.CollisionLayerComponent, &component.CollisionLayer{Category: component.LayerPlayer, Mask: component.LayerGround})
	add(t, w, e, component.GroundCheckComponent, &component.GroundCheck{OffsetY: -0.75, Mask: component.LayerGround})
	return e
}

type rig struct {
	w       *ecs.World
	physics *PhysicsSystem
	ctrl    *PlayerControllerSystem
	feed    *CombatFeed
	player  ecs.Entity
}

func newRig(t *testing.T, playerY float64) *rig {
	t.Helper()
	w := ecs.NewWorld()
	spawnGround(t, w)
	r := &rig{w: w, physics: NewPhysicsSystem(testGravity, 10, testDt), feed: NewCombatFeed(5)}
	r.ctrl = NewPlayerControllerSystem(r.physics, quietLogger(), r.feed)
	r.player = spawnPlayer(t, w, 0, playerY)
	r.physics.Sync(w)
	return r
}

func (r *rig) tick(n int) {
	for i := 0; i < n; i++ {
		r.ctrl.Update(r.w)
		r.physics.Update(r.w)
		r.feed.Update(r.w)
	}
}

func (r *rig) controller(t *testing.T) *player.Controller {
	t.Helper()
	pc, ok := ecs.Get(r.w, r.player, component.PlayerComponent.Kind())
	require.True(t, ok)
	require.NotNil(t, pc.Controller)
	return pc.Controller
}

func (r *rig) body(t *testing.T) *cp.Body {
	t.Helper()
	b, ok := ecs.Get(r.w, r.player, component.PhysicsBodyComponent.Kind())
	require.True(t, ok)
	require.NotNil(t, b.Body)
	return b.Body
}

func TestOverlapProbe(t *testing.T) {
	r := newRig(t, 5)

	assert.True(t, r.physics.Overlap(cp.Vector{X: 0, Y: 0.1}, 0.2, player.LayerMask(component.LayerGround)))
	assert.True(t, r.physics.Overlap(cp.Vector{X: 3, Y: -0.2}, 0.2, player.LayerMask(component.LayerGround)), "inside the slab")
	assert.False(t, r.physics.Overlap(cp.Vector{X: 0, Y: 1}, 0.2, player.LayerMask(component.LayerGround)))
	assert.False(t, r.physics.Overlap(cp.Vector{X: 0, Y: 0.1}, 0.2, player.LayerMask(component.LayerPlayer)), "mask filters the slab")
	assert.True(t, r.physics.Overlap(cp.Vector{X: 0, Y: 5}, 0.2, player.LayerMask(component.LayerPlayer)))
}

func TestPlayerSettlesGrounded(t *testing.T) {
	r := newRig(t, 1)
	r.tick(60)

	st := r.controller(t).State()
	assert.True(t, st.Grounded)
	assert.InDelta(t, 0.75, r.body(t).Position().Y, 0.15)
	assert.Equal(t, 0.0, r.body(t).Angle())

	tr, _ := ecs.Get(r.w, r.player, component.TransformComponent.Kind())
	assert.Equal(t, r.body(t).Position().Y, tr.Y, "transform follows the body")
}

func TestPlayerInAirIsNotGrounded(t *testing.T) {
	r := newRig(t, 10)
	r.tick(2)

	c := r.controller(t)
	assert.False(t, c.State().Grounded)

	vy := r.body(t).Velocity().Y
	c.OnJump(true)
	assert.Equal(t, vy, r.body(t).Velocity().Y, "airborne jump is ignored")
}

func TestJumpAndRunOnGround(t *testing.T) {
	r := newRig(t, 1)
	r.tick(60)
	c := r.controller(t)
	restY := r.body(t).Position().Y

	c.OnMove(cp.Vector{X: 1})
	r.tick(5)
	assert.InDelta(t, 8.0, r.body(t).Velocity().X, 1e-6)
	assert.True(t, c.State().FacingRight)

	c.OnJump(true)
	assert.Equal(t, 15.0, r.body(t).Velocity().Y)

	r.tick(10)
	assert.Greater(t, r.body(t).Position().Y, restY+1)
	assert.False(t, c.State().Grounded)

	c.OnMove(cp.Vector{X: -0.5})
	r.tick(1)
	assert.False(t, c.State().FacingRight)
	tr, _ := ecs.Get(r.w, r.player, component.TransformComponent.Kind())
	assert.Equal(t, -1.0, tr.ScaleX)
	assert.InDelta(t, -4.0, r.body(t).Velocity().X, 1e-6)
}

func TestCombatFeedReceivesControllerTriggers(t *testing.T) {
	r := newRig(t, 1)
	r.tick(1)
	c := r.controller(t)

	c.OnKick(true)
	c.OnKick(false)
	c.OnUppercut(true)
	assert.Equal(t, []string{"PERFORM KICK!", "PERFORM HEAVY UPPERCUT!"}, r.feed.Lines())

	r.tick(5)
	assert.Empty(t, r.feed.Lines())
}

func TestCombatFeedLimits(t *testing.T) {
	f := NewCombatFeed(3)
	for i := 0; i < feedMaxLines+2; i++ {
		f.HandleCombat(player.ActionDodgeRoll, player.BodyState{})
	}
	assert.Len(t, f.Lines(), feedMaxLines)

	f.Update(nil)
	f.Update(nil)
	assert.Len(t, f.Lines(), feedMaxLines)
	f.Update(nil)
	assert.Empty(t, f.Lines())
}

func TestControllerBuildFailureIsReportedOnce(t *testing.T) {
	var buf bytes.Buffer
	w := ecs.NewWorld()
	ps := NewPhysicsSystem(testGravity, 10, testDt)
	sys := NewPlayerControllerSystem(ps, slog.New(slog.NewTextHandler(&buf, nil)))

	e := spawnPlayer(t, w, 0, 3)
	pc, _ := ecs.Get(w, e, component.PlayerComponent.Kind())
	pc.Movement.MoveSpeed = -1
	ps.Sync(w)

	sys.Update(w)
	sys.Update(w)
	assert.Nil(t, pc.Controller)
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("player controller build failed")))
}

func TestPhysicsRemovesDeadBodies(t *testing.T) {
	r := newRig(t, 3)
	assert.Equal(t, 2, r.physics.BodyCount())

	require.True(t, ecs.DestroyEntity(r.w, r.player))
	r.tick(1)
	assert.Equal(t, 1, r.physics.BodyCount())
}

func TestInputSystemDrivesController(t *testing.T) {
	r := newRig(t, 1)
	r.tick(60)

	steps := []input.TimelineStep{
		{Tick: 0, Keys: []string{"D"}},
		{Tick: 3, Keys: []string{"D", "J"}},
		{Tick: 4, Keys: []string{"A"}},
	}
	dev, err := input.NewScriptedDevice(steps)
	require.NoError(t, err)
	m, err := input.Compile(input.DefaultBindings())
	require.NoError(t, err)
	in := NewInputSystem(dev, m, input.DefaultDeadZone)

	sched := ecs.NewScheduler(in, r.ctrl, r.physics)
	var vx []float64
	for i := 0; i < 6; i++ {
		sched.Update(r.w)
		vx = append(vx, r.body(t).Velocity().X)
	}

	assert.InDeltaSlice(t, []float64{8, 8, 8, 8, -8, -8}, vx, 1e-6)
	assert.Equal(t, []string{"PERFORM KICK!"}, r.feed.Lines())

	inComp, _ := ecs.Get(r.w, r.player, component.InputComponent.Kind())
	assert.Equal(t, -1.0, inComp.Frame.Move.X)
	assert.Equal(t, -1.0, in.Last().Move.X)
}

func TestControllerReceivesEventsOnItsFirstTick(t *testing.T) {
	w := ecs.NewWorld()
	spawnGround(t, w)
	ps := NewPhysicsSystem(testGravity, 10, testDt)
	feed := NewCombatFeed(5)
	ctrl := NewPlayerControllerSystem(ps, quietLogger(), feed)
	e := spawnPlayer(t, w, 0, 0.75)
	ps.Sync(w)

	dev, err := input.NewScriptedDevice([]input.TimelineStep{{Tick: 0, Keys: []string{"J"}}})
	require.NoError(t, err)
	m, err := input.Compile(input.DefaultBindings())
	require.NoError(t, err)
	sched := ecs.NewScheduler(ctrl.Builder(), NewInputSystem(dev, m, input.DefaultDeadZone), ctrl, ps)

	sched.Update(w)
	assert.Equal(t, []string{"PERFORM KICK!"}, feed.Lines(), "press on the build tick")

	sched.Update(w)
	assert.Len(t, feed.Lines(), 1, "held key does not repeat")

	// Respawn while the key stays down.
	require.True(t, ecs.DestroyEntity(w, e))
	e = spawnPlayer(t, w, 2, 0.75)
	ps.Sync(w)
	sched.Update(w)
	assert.Equal(t, []string{"PERFORM KICK!", "PERFORM KICK!"}, feed.Lines())

	pc, ok := ecs.Get(w, e, component.PlayerComponent.Kind())
	require.True(t, ok)
	assert.NotNil(t, pc.Controller)

	sched.Update(w)
	assert.Len(t, feed.Lines(), 2)
}
