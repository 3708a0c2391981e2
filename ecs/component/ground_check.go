package component

// GroundCheck places the foot probe relative to the body centre. Mask is the
// set of categories that count as ground.
type GroundCheck struct {
	OffsetX float64
	OffsetY float64
	Mask    uint32
}

var GroundCheckComponent = NewComponent[GroundCheck]()
