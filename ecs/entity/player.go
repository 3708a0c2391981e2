package entity

import (
	"fmt"

	"github.com/milk9111/brawler/ecs"
)

const PlayerPrefab = "player.yaml"

// NewPlayerAt spawns the player with its body centre at x, y in world units.
func NewPlayerAt(w *ecs.World, x, y float64) (ecs.Entity, error) {
	entity, err := BuildEntity(w, PlayerPrefab)
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, entity, x, y, 0); err != nil {
		ecs.DestroyEntity(w, entity)
		return 0, fmt.Errorf("player: override transform: %w", err)
	}
	return entity, nil
}
