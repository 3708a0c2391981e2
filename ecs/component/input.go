package component

import "github.com/milk9111/brawler/input"

// Input is the last frame sampled for an entity.
type Input struct {
	Frame input.Frame
}

var InputComponent = NewComponent[Input]()
