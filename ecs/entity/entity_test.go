package entity

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/brawler/ecs"
	"github.com/milk9111/brawler/ecs/component"
	"github.com/milk9111/brawler/levels"
	"github.com/milk9111/brawler/player"
)

func TestNewPlayerAt(t *testing.T) {
	w := ecs.NewWorld()
	e, err := NewPlayerAt(w, 4.5, 3.5)
	require.NoError(t, err)

	tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, component.Transform{X: 4.5, Y: 3.5, ScaleX: 1, ScaleY: 1}, *tr)

	pc, ok := ecs.Get(w, e, component.PlayerComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, player.DefaultMovementConfig(), pc.Movement)
	assert.Nil(t, pc.Controller)

	body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, 1.5, body.Height)
	assert.False(t, body.Static)

	gc, ok := ecs.Get(w, e, component.GroundCheckComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, component.GroundCheck{OffsetY: -0.75, Mask: component.LayerGround}, *gc)

	cs, ok := ecs.Get(w, e, component.CombatScriptComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, "combat.tengo", cs.Path)

	assert.True(t, ecs.Has(w, e, component.PlayerTagComponent.Kind()))
	assert.True(t, ecs.Has(w, e, component.InputComponent.Kind()))
	assert.Equal(t, []ecs.Entity{e}, w.Query(component.PlayerTagComponent.Kind()))
}

func TestBuildEntityErrors(t *testing.T) {
	w := ecs.NewWorld()

	_, err := BuildEntity(w, "missing.yaml")
	assert.Error(t, err)

	_, err = BuildEntity(nil, PlayerPrefab)
	assert.Error(t, err)

	assert.Empty(t, ecs.Entities(w), "failed builds leave nothing behind")
}

func TestLoadLevelToWorld(t *testing.T) {
	lvl := &levels.Level{
		Width:  4,
		Height: 3,
		Layers: [][]int{
			{
				0, 0, 0, 0,
				0, 0, 0, 1,
				1, 1, 1, 1,
			},
			{
				1, 1, 1, 1,
				1, 1, 1, 1,
				1, 1, 1, 1,
			},
		},
		LayerMeta: []levels.LayerMeta{{Physics: true, Color: "#102030"}},
	}

	w := ecs.NewWorld()
	ents, err := LoadLevelToWorld(w, lvl)
	require.NoError(t, err)
	require.Len(t, ents, 2, "only the physics layer becomes ground")

	// Rect {3,1,1,2}: the pillar grows down into the floor row.
	tr, _ := ecs.Get(w, ents[0], component.TransformComponent.Kind())
	assert.Equal(t, 3.5, tr.X)
	assert.Equal(t, 1.0, tr.Y)

	body, _ := ecs.Get(w, ents[0], component.PhysicsBodyComponent.Kind())
	assert.Equal(t, 2.0, body.Height)

	// Rect {0,2,3,1}: the rest of the floor row.
	tr, _ = ecs.Get(w, ents[1], component.TransformComponent.Kind())
	assert.Equal(t, 1.5, tr.X)
	assert.Equal(t, 0.5, tr.Y)

	body, _ = ecs.Get(w, ents[1], component.PhysicsBodyComponent.Kind())
	assert.True(t, body.Static)
	assert.Equal(t, 3.0, body.Width)
	assert.Equal(t, 1.0, body.Height)

	sprite, _ := ecs.Get(w, ents[1], component.SpriteComponent.Kind())
	assert.Equal(t, color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}, sprite.Color)
	assert.Equal(t, 3.0, sprite.Width)

	layer, _ := ecs.Get(w, ents[1], component.CollisionLayerComponent.Kind())
	assert.Equal(t, component.LayerGround, layer.Category)
}

func TestLoadLevelBadColor(t *testing.T) {
	lvl := &levels.Level{
		Width: 1, Height: 1,
		Layers:    [][]int{{1}},
		LayerMeta: []levels.LayerMeta{{Physics: true, Color: "nope"}},
	}
	w := ecs.NewWorld()
	_, err := LoadLevelToWorld(w, lvl)
	assert.Error(t, err)
	assert.Empty(t, ecs.Entities(w))
}

func TestSpawnPoint(t *testing.T) {
	lvl, err := levels.Load(levels.DefaultLevel)
	require.NoError(t, err)

	x, y := SpawnPoint(lvl)
	assert.Equal(t, float64(lvl.Spawn.X)+0.5, x)
	assert.Equal(t, float64(lvl.Height-lvl.Spawn.Y)-0.5, y)
}
