package physics

import (
	"blockstack/internal/geom"

	"github.com/go-gl/mathgl/mgl32"
)

// Body is a rigid box tracked by the engine. The block domain only ever uses
// boxes, so there is no shape variant: half extents fully describe the
// collision geometry. Mass zero marks the one static ground body.
type Body struct {
	ID          uint64
	BlockType   string // empty for the static ground
	HalfExtents mgl32.Vec3
	Position    mgl32.Vec3
	Orientation mgl32.Quat
	Velocity    mgl32.Vec3

	Mass           float32
	Friction       float32
	Restitution    float32
	LinearDamping  float32
	AngularDamping float32
}

// NewBody returns a dynamic body at rest with identity orientation.
// Half extents must be strictly positive; mass must be positive for dynamic
// bodies and exactly zero for the static ground.
func NewBody(position, halfExtents mgl32.Vec3, mass float32) *Body {
	return &Body{
		HalfExtents: halfExtents,
		Position:    position,
		Orientation: mgl32.QuatIdent(),
		Mass:        mass,
	}
}

// Static reports whether the body is immovable.
func (b *Body) Static() bool { return b.Mass == 0 }

// Box returns the body's current world-space AABB.
func (b *Body) Box() geom.AABB {
	return geom.AABBAt(b.Position, b.HalfExtents)
}

// TopY returns the height of the body's top face.
func (b *Body) TopY() float32 { return b.Position.Y() + b.HalfExtents.Y() }

// BottomY returns the height of the body's bottom face.
func (b *Body) BottomY() float32 { return b.Position.Y() - b.HalfExtents.Y() }
