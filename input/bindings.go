package input

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

var (
	ErrUnknownAction  = errors.New("input: unknown action")
	ErrUnknownKey     = errors.New("input: unknown key")
	ErrUnknownButton  = errors.New("input: unknown gamepad button")
	ErrUnknownAxis    = errors.New("input: unknown gamepad axis")
	ErrInvalidBinding = errors.New("input: invalid binding")
)

// BindingSpec is the YAML shape of one action binding.
type BindingSpec struct {
	Action         string   `yaml:"action"`
	Keys           []string `yaml:"keys"`
	NegativeKeys   []string `yaml:"negative_keys"`
	PositiveKeys   []string `yaml:"positive_keys"`
	GamepadButtons []string `yaml:"gamepad_buttons"`
	GamepadAxis    string   `yaml:"gamepad_axis"`
}

type buttonBinding struct {
	keys    []ebiten.Key
	buttons []ebiten.StandardGamepadButton
}

type axisBinding struct {
	negative []ebiten.Key
	positive []ebiten.Key
	axis     ebiten.StandardGamepadAxis
	hasAxis  bool
}

// Map is a compiled, validated set of bindings.
type Map struct {
	move    axisBinding
	buttons [actionCount]buttonBinding
}

var gamepadButtons = map[string]ebiten.StandardGamepadButton{
	"right_bottom":       ebiten.StandardGamepadButtonRightBottom,
	"right_right":        ebiten.StandardGamepadButtonRightRight,
	"right_left":         ebiten.StandardGamepadButtonRightLeft,
	"right_top":          ebiten.StandardGamepadButtonRightTop,
	"front_top_left":     ebiten.StandardGamepadButtonFrontTopLeft,
	"front_top_right":    ebiten.StandardGamepadButtonFrontTopRight,
	"front_bottom_left":  ebiten.StandardGamepadButtonFrontBottomLeft,
	"front_bottom_right": ebiten.StandardGamepadButtonFrontBottomRight,
	"center_left":        ebiten.StandardGamepadButtonCenterLeft,
	"center_right":       ebiten.StandardGamepadButtonCenterRight,
	"left_stick":         ebiten.StandardGamepadButtonLeftStick,
	"right_stick":        ebiten.StandardGamepadButtonRightStick,
	"left_left":          ebiten.StandardGamepadButtonLeftLeft,
	"left_right":         ebiten.StandardGamepadButtonLeftRight,
}

var gamepadAxes = map[string]ebiten.StandardGamepadAxis{
	"left_stick_x":  ebiten.StandardGamepadAxisLeftStickHorizontal,
	"right_stick_x": ebiten.StandardGamepadAxisRightStickHorizontal,
}

// Compile validates specs and builds a Map. Every action name must be known;
// Move must be an axis and the other actions must be buttons.
func Compile(specs []BindingSpec) (*Map, error) {
	m := &Map{}
	seen := make(map[Action]bool, len(specs))
	for _, spec := range specs {
		action, err := ParseAction(spec.Action)
		if err != nil {
			return nil, err
		}
		if seen[action] {
			return nil, fmt.Errorf("%w: %s bound twice", ErrInvalidBinding, action)
		}
		seen[action] = true

		if action == ActionMove {
			if err := m.compileAxis(spec); err != nil {
				return nil, fmt.Errorf("input: bind %s: %w", action, err)
			}
			continue
		}
		if err := m.compileButton(action, spec); err != nil {
			return nil, fmt.Errorf("input: bind %s: %w", action, err)
		}
	}
	return m, nil
}

func (m *Map) compileAxis(spec BindingSpec) error {
	if len(spec.Keys) > 0 || len(spec.GamepadButtons) > 0 {
		return fmt.Errorf("%w: axis actions take negative_keys, positive_keys and gamepad_axis", ErrInvalidBinding)
	}
	neg, err := parseKeys(spec.NegativeKeys)
	if err != nil {
		return err
	}
	pos, err := parseKeys(spec.PositiveKeys)
	if err != nil {
		return err
	}
	m.move = axisBinding{negative: neg, positive: pos}
	if name := strings.TrimSpace(spec.GamepadAxis); name != "" {
		axis, ok := gamepadAxes[strings.ToLower(name)]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownAxis, name)
		}
		m.move.axis = axis
		m.move.hasAxis = true
	}
	return nil
}

func (m *Map) compileButton(action Action, spec BindingSpec) error {
	if len(spec.NegativeKeys) > 0 || len(spec.PositiveKeys) > 0 || spec.GamepadAxis != "" {
		return fmt.Errorf("%w: button actions take keys and gamepad_buttons", ErrInvalidBinding)
	}
	keys, err := parseKeys(spec.Keys)
	if err != nil {
		return err
	}
	b := buttonBinding{keys: keys}
	for _, name := range spec.GamepadButtons {
		button, ok := gamepadButtons[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownButton, name)
		}
		b.buttons = append(b.buttons, button)
	}
	m.buttons[action] = b
	return nil
}

func parseKeys(names []string) ([]ebiten.Key, error) {
	keys := make([]ebiten.Key, 0, len(names))
	for _, name := range names {
		var k ebiten.Key
		if err := k.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownKey, name)
		}
		keys = append(keys, k)
	}
	return keys, nil
}

// DefaultBindings mirrors the usual keyboard and standard gamepad layout.
func DefaultBindings() []BindingSpec {
	return []BindingSpec{
		{Action: "Move", NegativeKeys: []string{"A", "ArrowLeft"}, PositiveKeys: []string{"D", "ArrowRight"}, GamepadAxis: "left_stick_x"},
		{Action: "Jump", Keys: []string{"Space", "W", "ArrowUp"}, GamepadButtons: []string{"right_bottom"}},
		{Action: "Kick", Keys: []string{"J"}, GamepadButtons: []string{"right_left"}},
		{Action: "Uppercut", Keys: []string{"K"}, GamepadButtons: []string{"right_top"}},
		{Action: "DodgeRoll", Keys: []string{"L", "ShiftLeft"}, GamepadButtons: []string{"right_right"}},
	}
}
