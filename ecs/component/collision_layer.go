package component

const (
	LayerPlayer uint32 = 1 << 0
	LayerGround uint32 = 1 << 1
)

// CollisionLayer declares a collision category and the categories it
// collides with. A zero Category is treated as LayerGround for static
// bodies and LayerPlayer otherwise; a zero Mask collides with everything.
type CollisionLayer struct {
	Category uint32
	Mask     uint32
}

var CollisionLayerComponent = NewComponent[CollisionLayer]()
