package entity

import (
	"fmt"

	"github.com/milk9111/brawler/ecs"
	"github.com/milk9111/brawler/ecs/component"
	"github.com/milk9111/brawler/levels"
	"github.com/milk9111/brawler/prefabs"
)

const GroundPrefab = "ground.yaml"

// LoadLevelToWorld creates one static ground entity per merged rectangle of
// every physics layer. Tile rows count down from the top, world Y counts
// up from the bottom of the map; one tile is one world unit.
func LoadLevelToWorld(w *ecs.World, lvl *levels.Level) ([]ecs.Entity, error) {
	if w == nil || lvl == nil {
		return nil, fmt.Errorf("load level: nil world or level")
	}

	var out []ecs.Entity
	for _, lr := range lvl.PhysicsRects() {
		layer := lr.Layer
		meta := lvl.Meta(layer)
		for _, r := range lr.Rects {
			e, err := BuildEntity(w, GroundPrefab)
			if err != nil {
				destroyAll(w, out)
				return nil, err
			}
			out = append(out, e)

			cx, cy := RectCenter(lvl, r)
			if err := SetEntityTransform(w, e, cx, cy, 0); err != nil {
				destroyAll(w, out)
				return nil, err
			}
			if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok {
				body.Width = float64(r.W)
				body.Height = float64(r.H)
			}
			if sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
				sprite.Width = float64(r.W)
				sprite.Height = float64(r.H)
				if meta.Color != "" {
					c, err := prefabs.ParseColor(meta.Color)
					if err != nil {
						destroyAll(w, out)
						return nil, fmt.Errorf("load level: layer %d color: %w", layer, err)
					}
					sprite.Color = c
				}
			}
		}
	}
	return out, nil
}

// RectCenter is the world-space centre of a tile rectangle.
func RectCenter(lvl *levels.Level, r levels.Rect) (float64, float64) {
	x := float64(r.X) + float64(r.W)/2
	y := float64(lvl.Height-r.Y-r.H) + float64(r.H)/2
	return x, y
}

// SpawnPoint is the world position of the level's spawn tile centre.
func SpawnPoint(lvl *levels.Level) (float64, float64) {
	return RectCenter(lvl, levels.Rect{X: lvl.Spawn.X, Y: lvl.Spawn.Y, W: 1, H: 1})
}

func destroyAll(w *ecs.World, entities []ecs.Entity) {
	for _, e := range entities {
		ecs.DestroyEntity(w, e)
	}
}
