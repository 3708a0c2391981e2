package system

import (
	"github.com/milk9111/brawler/ecs"
	"github.com/milk9111/brawler/ecs/component"
	"github.com/milk9111/brawler/input"
	"github.com/milk9111/brawler/player"
)

// InputSystem samples the device once per tick, stores the frame on every
// Input entity and dispatches it to player controllers. A controller seen
// for the first time gets every held button as a press, so a spawn or
// respawn under a held key still fires.
type InputSystem struct {
	device input.Device
	poller *input.Poller
	last   input.Frame
	known  map[ecs.Entity]*player.Controller
}

func NewInputSystem(device input.Device, bindings *input.Map, deadZone float64) *InputSystem {
	return &InputSystem{
		device: device,
		poller: input.NewPoller(bindings, deadZone),
		known:  make(map[ecs.Entity]*player.Controller),
	}
}

// Last is the most recent frame.
func (i *InputSystem) Last() input.Frame {
	return i.last
}

func (i *InputSystem) Update(w *ecs.World) {
	if i == nil || w == nil {
		return
	}

	i.last = i.poller.Poll(i.device)

	seen := make(map[ecs.Entity]*player.Controller, len(i.known))
	ecs.ForEach(w, component.InputComponent.Kind(), func(e ecs.Entity, in *component.Input) {
		in.Frame = i.last
		pc, ok := ecs.Get(w, e, component.PlayerComponent.Kind())
		if !ok || pc.Controller == nil {
			return
		}
		if i.known[e] == pc.Controller {
			input.Dispatch(i.last, pc.Controller)
		} else {
			input.DispatchHeld(i.last, pc.Controller)
		}
		seen[e] = pc.Controller
	})
	i.known = seen
}
