package player

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
)

func TestNextFacing(t *testing.T) {
	tests := []struct {
		input       float64
		facingRight bool
		want        bool
		changed     bool
	}{
		{-1, true, false, true},
		{-0.5, false, false, false},
		{0, true, true, false},
		{0, false, false, false},
		{0.5, false, true, true},
		{1, true, true, false},
	}
	for _, tc := range tests {
		got, changed := NextFacing(tc.input, tc.facingRight)
		assert.Equal(t, tc.want, got, "input=%v facingRight=%v", tc.input, tc.facingRight)
		assert.Equal(t, tc.changed, changed, "input=%v facingRight=%v", tc.input, tc.facingRight)
	}
}

func TestMirrorScalePreservesMagnitude(t *testing.T) {
	assert.Equal(t, cp.Vector{X: -1.5, Y: 2}, MirrorScale(cp.Vector{X: 1.5, Y: 2}, false))
	assert.Equal(t, cp.Vector{X: -1.5, Y: 2}, MirrorScale(cp.Vector{X: -1.5, Y: 2}, false))
	assert.Equal(t, cp.Vector{X: 1.5, Y: 2}, MirrorScale(cp.Vector{X: -1.5, Y: 2}, true))
}

func TestMovementConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultMovementConfig().Validate())
	assert.NoError(t, MovementConfig{}.Validate())
	assert.ErrorIs(t, MovementConfig{MoveSpeed: -1}.Validate(), ErrInvalidConfig)
	assert.ErrorIs(t, MovementConfig{GroundCheckRadius: -0.1}.Validate(), ErrInvalidConfig)
}
