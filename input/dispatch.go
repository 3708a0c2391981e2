package input

import "github.com/jakecoffman/cp"

// Receiver is the typed event surface of a controllable actor.
type Receiver interface {
	OnMove(axis cp.Vector)
	OnJump(pressed bool)
	OnKick(pressed bool)
	OnUppercut(pressed bool)
	OnDodgeRoll(pressed bool)
}

// Dispatch delivers a frame to r: the move axis every tick, buttons on their
// press and release edges.
func Dispatch(f Frame, r Receiver) {
	if r == nil {
		return
	}
	r.OnMove(f.Move)
	for _, a := range Buttons() {
		var pressed bool
		switch {
		case f.JustPressed(a):
			pressed = true
		case f.JustReleased(a):
			pressed = false
		default:
			continue
		}
		switch a {
		case ActionJump:
			r.OnJump(pressed)
		case ActionKick:
			r.OnKick(pressed)
		case ActionUppercut:
			r.OnUppercut(pressed)
		case ActionDodgeRoll:
			r.OnDodgeRoll(pressed)
		}
	}
}

// DispatchHeld is the first delivery to a new receiver: the move axis and a
// press for every button down in f, whether or not it went down this tick.
func DispatchHeld(f Frame, r Receiver) {
	if r == nil {
		return
	}
	r.OnMove(f.Move)
	for _, a := range Buttons() {
		if !f.Pressed(a) {
			continue
		}
		switch a {
		case ActionJump:
			r.OnJump(true)
		case ActionKick:
			r.OnKick(true)
		case ActionUppercut:
			r.OnUppercut(true)
		case ActionDodgeRoll:
			r.OnDodgeRoll(true)
		}
	}
}
