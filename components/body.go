package components

// Position is an entity's world-space centre.
type Position struct {
	X, Y float32
}

// Velocity is the observer's commanded velocity for the last step,
// before collision push-out.
type Velocity struct {
	X, Y float32
}

// Body holds physical properties of a moving entity.
type Body struct {
	Radius float32
}

// Collider is an axis-aligned box centred on the entity Position.
type Collider struct {
	HalfW, HalfH float32
}

// Occluder blocks light. It is stored as a top-left corner plus size so the
// lighting collaborator can consume it directly.
type Occluder struct {
	X, Y, Width, Height float32
}

// OccluderFor returns the occluder co-located with a collider at pos.
func OccluderFor(pos Position, c Collider) Occluder {
	return Occluder{
		X:      pos.X - c.HalfW,
		Y:      pos.Y - c.HalfH,
		Width:  c.HalfW * 2,
		Height: c.HalfH * 2,
	}
}
