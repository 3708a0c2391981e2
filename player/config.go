package player

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidConfig = errors.New("player: invalid movement config")

// MovementConfig holds the tunables of a controller. It is fixed for the
// lifetime of the actor it was built for.
type MovementConfig struct {
	MoveSpeed         float64 `yaml:"move_speed"`
	JumpForce         float64 `yaml:"jump_force"`
	GroundCheckRadius float64 `yaml:"ground_check_radius"`
}

func DefaultMovementConfig() MovementConfig {
	return MovementConfig{
		MoveSpeed:         8,
		JumpForce:         15,
		GroundCheckRadius: 0.2,
	}
}

func (c MovementConfig) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"move_speed", c.MoveSpeed},
		{"jump_force", c.JumpForce},
		{"ground_check_radius", c.GroundCheckRadius},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s is not finite", ErrInvalidConfig, f.name)
		}
		if f.value < 0 {
			return fmt.Errorf("%w: %s must not be negative, got %g", ErrInvalidConfig, f.name, f.value)
		}
	}
	return nil
}
