package entity

import (
	"fmt"
	"time"

	"github.com/milk9111/brawler/ecs"
	"github.com/milk9111/brawler/levels"
	"github.com/milk9111/brawler/prefabs"
)

// BodySyncer creates and drops physics bodies to match the world.
type BodySyncer interface {
	Sync(w *ecs.World)
}

// Scene owns the level geometry and the player of a world, and rebuilds
// them when their prefabs change.
type Scene struct {
	World   *ecs.World
	Physics BodySyncer
	Level   *levels.Level

	Ground []ecs.Entity
	Player ecs.Entity

	modTimes map[string]time.Time
}

func NewScene(w *ecs.World, physics BodySyncer, lvl *levels.Level) *Scene {
	return &Scene{
		World:    w,
		Physics:  physics,
		Level:    lvl,
		modTimes: make(map[string]time.Time),
	}
}

// LoadLevel replaces the ground entities with a fresh build of the level.
func (s *Scene) LoadLevel() error {
	destroyAll(s.World, s.Ground)
	s.Ground = nil
	ground, err := LoadLevelToWorld(s.World, s.Level)
	if err != nil {
		return fmt.Errorf("scene: load level: %w", err)
	}
	s.Ground = ground
	s.sync()
	return nil
}

// SpawnPlayer replaces the player with a fresh one built from the prefab at
// the level's spawn point. The old player stays if the prefab is broken.
func (s *Scene) SpawnPlayer() error {
	x, y := SpawnPoint(s.Level)
	e, err := NewPlayerAt(s.World, x, y)
	if err != nil {
		return fmt.Errorf("scene: spawn player: %w", err)
	}
	if s.Player.Valid() {
		ecs.DestroyEntity(s.World, s.Player)
	}
	s.Player = e
	s.sync()
	return nil
}

// Reload rebuilds whatever depends on the named prefab or script file.
// ground.yaml rebuilds the level, every other file respawns the player.
// It reports false when the file on disk is unchanged since the last
// reload of that name.
func (s *Scene) Reload(name string) (bool, error) {
	name = prefabs.Name(name)
	if mod, ok := prefabs.ModTime(name); ok {
		if last, seen := s.modTimes[name]; seen && !mod.After(last) {
			return false, nil
		}
		s.modTimes[name] = mod
	}

	if name == GroundPrefab {
		return true, s.LoadLevel()
	}
	// Player prefab and scripts both live on the player.
	return true, s.SpawnPlayer()
}

func (s *Scene) sync() {
	if s.Physics != nil {
		s.Physics.Sync(s.World)
	}
}
