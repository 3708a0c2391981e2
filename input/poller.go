package input

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
)

const DefaultDeadZone = 0.2

// Frame is the logical input state sampled for one tick.
type Frame struct {
	Move         cp.Vector
	pressed      [actionCount]bool
	justPressed  [actionCount]bool
	justReleased [actionCount]bool
}

func (f Frame) Pressed(a Action) bool      { return validButton(a) && f.pressed[a] }
func (f Frame) JustPressed(a Action) bool  { return validButton(a) && f.justPressed[a] }
func (f Frame) JustReleased(a Action) bool { return validButton(a) && f.justReleased[a] }

func validButton(a Action) bool {
	return a > ActionMove && a < actionCount
}

// Poller turns raw device state into Frames, tracking button edges between
// calls.
type Poller struct {
	bindings *Map
	deadZone float64
	prev     [actionCount]bool
}

func NewPoller(bindings *Map, deadZone float64) *Poller {
	if bindings == nil {
		bindings = &Map{}
	}
	if deadZone < 0 {
		deadZone = 0
	}
	return &Poller{bindings: bindings, deadZone: deadZone}
}

func (p *Poller) Poll(dev Device) Frame {
	var f Frame
	if dev == nil {
		return f
	}
	dev.Refresh()

	move := p.bindings.move
	x := 0.0
	if anyKey(dev, move.negative) {
		x--
	}
	if anyKey(dev, move.positive) {
		x++
	}
	if move.hasAxis {
		// The stick wins over the keyboard once it leaves the dead zone.
		if ax := dev.GamepadAxis(move.axis); math.Abs(ax) > p.deadZone {
			x = ax
		}
	}
	f.Move = cp.Vector{X: x}

	for _, a := range Buttons() {
		b := p.bindings.buttons[a]
		down := anyKey(dev, b.keys)
		for _, btn := range b.buttons {
			if dev.GamepadButtonPressed(btn) {
				down = true
				break
			}
		}
		f.pressed[a] = down
		f.justPressed[a] = down && !p.prev[a]
		f.justReleased[a] = !down && p.prev[a]
		p.prev[a] = down
	}
	return f
}

func anyKey(dev Device, keys []ebiten.Key) bool {
	for _, k := range keys {
		if dev.KeyPressed(k) {
			return true
		}
	}
	return false
}
