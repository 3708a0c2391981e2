package input

import (
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Device is the raw hardware state the poller reads from.
type Device interface {
	// Refresh is called once per tick before any query.
	Refresh()
	KeyPressed(k ebiten.Key) bool
	GamepadButtonPressed(b ebiten.StandardGamepadButton) bool
	GamepadAxis(a ebiten.StandardGamepadAxis) float64
}

// EbitenDevice reads the keyboard and the first connected standard gamepad.
type EbitenDevice struct {
	logger  *slog.Logger
	gamepad ebiten.GamepadID
	hasPad  bool
	ids     []ebiten.GamepadID
}

func NewEbitenDevice(logger *slog.Logger) *EbitenDevice {
	if logger == nil {
		logger = slog.Default()
	}
	return &EbitenDevice{logger: logger.With("system", "input")}
}

func (d *EbitenDevice) Refresh() {
	d.ids = inpututil.AppendJustConnectedGamepadIDs(d.ids[:0])
	for _, id := range d.ids {
		d.logger.Info("gamepad connected", "id", id, "name", ebiten.GamepadName(id), "standard", ebiten.IsStandardGamepadLayoutAvailable(id))
		if !d.hasPad && ebiten.IsStandardGamepadLayoutAvailable(id) {
			d.gamepad = id
			d.hasPad = true
		}
	}
	if d.hasPad && inpututil.IsGamepadJustDisconnected(d.gamepad) {
		d.logger.Info("gamepad disconnected", "id", d.gamepad)
		d.hasPad = false
	}
	if !d.hasPad {
		d.ids = ebiten.AppendGamepadIDs(d.ids[:0])
		for _, id := range d.ids {
			if ebiten.IsStandardGamepadLayoutAvailable(id) {
				d.gamepad = id
				d.hasPad = true
				break
			}
		}
	}
}

func (d *EbitenDevice) KeyPressed(k ebiten.Key) bool {
	return ebiten.IsKeyPressed(k)
}

func (d *EbitenDevice) GamepadButtonPressed(b ebiten.StandardGamepadButton) bool {
	return d.hasPad && ebiten.IsStandardGamepadButtonPressed(d.gamepad, b)
}

func (d *EbitenDevice) GamepadAxis(a ebiten.StandardGamepadAxis) float64 {
	if !d.hasPad {
		return 0
	}
	return ebiten.StandardGamepadAxisValue(d.gamepad, a)
}
