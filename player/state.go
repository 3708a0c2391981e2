package player

import "github.com/jakecoffman/cp"

// BodyState is a snapshot of the per-tick controller state.
type BodyState struct {
	HorizontalInput float64
	Grounded        bool
	FacingRight     bool
	Velocity        cp.Vector
}
