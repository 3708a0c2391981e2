package entity_test

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/brawler/ecs"
	"github.com/milk9111/brawler/ecs/component"
	"github.com/milk9111/brawler/ecs/entity"
	"github.com/milk9111/brawler/ecs/system"
	"github.com/milk9111/brawler/levels"
	"github.com/milk9111/brawler/player"
	"github.com/milk9111/brawler/prefabs"
)

type sceneRig struct {
	scene       *entity.Scene
	physics     *system.PhysicsSystem
	controllers *system.PlayerControllerSystem
}

// newSceneRig runs in an empty working directory, so prefabs resolve to the
// embedded copies until a test writes an override under prefabs/.
func newSceneRig(t *testing.T) *sceneRig {
	t.Helper()
	t.Chdir(t.TempDir())
	require.NoError(t, os.MkdirAll(prefabs.Dir, 0o755))

	lvl, err := levels.Load(levels.DefaultLevel)
	require.NoError(t, err)

	w := ecs.NewWorld()
	ps := system.NewPhysicsSystem(-30, 10, 0.02)
	r := &sceneRig{
		scene:       entity.NewScene(w, ps, lvl),
		physics:     ps,
		controllers: system.NewPlayerControllerSystem(ps, slog.New(slog.NewTextHandler(io.Discard, nil))),
	}
	require.NoError(t, r.scene.LoadLevel())
	require.NoError(t, r.scene.SpawnPlayer())
	return r
}

func (r *sceneRig) controller(t *testing.T) *player.Controller {
	t.Helper()
	r.controllers.Update(r.scene.World)
	pc, ok := ecs.Get(r.scene.World, r.scene.Player, component.PlayerComponent.Kind())
	require.True(t, ok)
	require.NotNil(t, pc.Controller)
	return pc.Controller
}

// writePrefab writes an on-disk override and stamps it with mod so reloads
// see a newer file regardless of filesystem time resolution.
func writePrefab(t *testing.T, name, data string, mod time.Time) {
	t.Helper()
	path := filepath.Join(prefabs.Dir, name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	require.NoError(t, os.Chtimes(path, mod, mod))
}

func embeddedPlayer(t *testing.T) string {
	t.Helper()
	data, err := prefabs.PrefabsFS.ReadFile(entity.PlayerPrefab)
	require.NoError(t, err)
	return string(data)
}

func TestSceneReloadRespawnsPlayerWithNewConfig(t *testing.T) {
	r := newSceneRig(t)
	bodies := len(r.scene.Ground) + 1
	assert.Equal(t, bodies, r.physics.BodyCount())
	assert.Equal(t, player.DefaultMovementConfig(), r.controller(t).Config())
	old := r.scene.Player

	edited := strings.NewReplacer(
		"move_speed: 8", "move_speed: 11",
		"jump_force: 15", "jump_force: 20",
		"ground_check_radius: 0.2", "ground_check_radius: 0.3",
	).Replace(embeddedPlayer(t))
	writePrefab(t, entity.PlayerPrefab, edited, time.Now().Add(time.Minute))

	changed, err := r.scene.Reload(entity.PlayerPrefab)
	require.NoError(t, err)
	assert.True(t, changed)

	assert.NotEqual(t, old, r.scene.Player)
	assert.False(t, r.scene.World.IsAlive(old))
	assert.Equal(t, bodies, r.physics.BodyCount(), "old body removed, new body added")
	assert.Equal(t, player.MovementConfig{MoveSpeed: 11, JumpForce: 20, GroundCheckRadius: 0.3}, r.controller(t).Config())

	x, y := entity.SpawnPoint(r.scene.Level)
	tr, ok := ecs.Get(r.scene.World, r.scene.Player, component.TransformComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, x, tr.X)
	assert.Equal(t, y, tr.Y)
}

func TestSceneReloadSkipsUnchangedFile(t *testing.T) {
	r := newSceneRig(t)
	writePrefab(t, entity.PlayerPrefab, embeddedPlayer(t), time.Now().Add(time.Minute))

	changed, err := r.scene.Reload("prefabs/" + entity.PlayerPrefab)
	require.NoError(t, err)
	require.True(t, changed)
	spawned := r.scene.Player

	changed, err = r.scene.Reload(entity.PlayerPrefab)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, spawned, r.scene.Player)
}

func TestSceneReloadScriptRespawnsPlayer(t *testing.T) {
	r := newSceneRig(t)
	old := r.scene.Player

	changed, err := r.scene.Reload("combat.tengo")
	require.NoError(t, err)
	assert.True(t, changed, "embedded-only files always reload")
	assert.NotEqual(t, old, r.scene.Player)
	assert.False(t, r.scene.World.IsAlive(old))
}

func TestSceneReloadGroundRebuildsLevel(t *testing.T) {
	r := newSceneRig(t)
	oldGround := append([]ecs.Entity(nil), r.scene.Ground...)
	spawned := r.scene.Player
	bodies := r.physics.BodyCount()

	changed, err := r.scene.Reload(entity.GroundPrefab)
	require.NoError(t, err)
	assert.True(t, changed)

	require.Len(t, r.scene.Ground, len(oldGround))
	for _, e := range oldGround {
		assert.False(t, r.scene.World.IsAlive(e))
	}
	assert.Equal(t, spawned, r.scene.Player, "player is kept")
	assert.Equal(t, bodies, r.physics.BodyCount())
}

func TestSceneReloadBrokenPrefabKeepsPlayer(t *testing.T) {
	r := newSceneRig(t)
	old := r.scene.Player
	writePrefab(t, entity.PlayerPrefab, "components:\n  player:\n    move_speed: -1\n", time.Now().Add(time.Minute))

	_, err := r.scene.Reload(entity.PlayerPrefab)
	require.Error(t, err)
	assert.Equal(t, old, r.scene.Player)
	assert.True(t, r.scene.World.IsAlive(old))
}
