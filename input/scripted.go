package input

import (
	"fmt"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"gopkg.in/yaml.v3"
)

// TimelineStep holds the device state from Tick until the next step.
type TimelineStep struct {
	Tick int      `yaml:"tick"`
	Keys []string `yaml:"keys"`
	Axis float64  `yaml:"axis"`
}

// ScriptedDevice replays a timeline of held keys and a stick value. Every
// Refresh advances one tick.
type ScriptedDevice struct {
	steps []scriptedStep
	tick  int
	cur   int
}

type scriptedStep struct {
	tick int
	keys map[ebiten.Key]bool
	axis float64
}

func NewScriptedDevice(steps []TimelineStep) (*ScriptedDevice, error) {
	sorted := append([]TimelineStep(nil), steps...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Tick < sorted[j].Tick })

	d := &ScriptedDevice{tick: -1, cur: -1}
	for _, s := range sorted {
		if s.Tick < 0 {
			return nil, fmt.Errorf("input: timeline tick %d is negative", s.Tick)
		}
		keys, err := parseKeys(s.Keys)
		if err != nil {
			return nil, fmt.Errorf("input: timeline tick %d: %w", s.Tick, err)
		}
		held := make(map[ebiten.Key]bool, len(keys))
		for _, k := range keys {
			held[k] = true
		}
		d.steps = append(d.steps, scriptedStep{tick: s.Tick, keys: held, axis: s.Axis})
	}
	return d, nil
}

// ParseTimeline decodes a YAML list of timeline steps.
func ParseTimeline(data []byte) ([]TimelineStep, error) {
	var steps []TimelineStep
	if err := yaml.Unmarshal(data, &steps); err != nil {
		return nil, fmt.Errorf("input: unmarshal timeline: %w", err)
	}
	return steps, nil
}

func (d *ScriptedDevice) Refresh() {
	d.tick++
	for d.cur+1 < len(d.steps) && d.steps[d.cur+1].tick <= d.tick {
		d.cur++
	}
}

// Tick is the index of the last refreshed tick, -1 before the first Refresh.
func (d *ScriptedDevice) Tick() int {
	return d.tick
}

func (d *ScriptedDevice) KeyPressed(k ebiten.Key) bool {
	if d.cur < 0 {
		return false
	}
	return d.steps[d.cur].keys[k]
}

// GamepadButtonPressed is always false; timelines only script keys and one axis.
func (d *ScriptedDevice) GamepadButtonPressed(ebiten.StandardGamepadButton) bool {
	return false
}

func (d *ScriptedDevice) GamepadAxis(ebiten.StandardGamepadAxis) float64 {
	if d.cur < 0 {
		return 0
	}
	return d.steps[d.cur].axis
}
