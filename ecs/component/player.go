package component

import "github.com/milk9111/brawler/player"

// Player holds the tunables read from the prefab and the controller built
// once the entity has a physics body.
type Player struct {
	Movement   player.MovementConfig
	Controller *player.Controller
}

var PlayerComponent = NewComponent[Player]()
