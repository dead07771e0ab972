// Package sim owns the physical truth of the tower world: the registry of
// dynamic block bodies, the static ground, and the fixed-step driver for the
// physics engine. It also answers the geometric queries the placement layer
// uses to decide whether a candidate position is legal.
package sim

import (
	"blockstack/internal/config"
	"blockstack/internal/geom"
	"blockstack/internal/physics"

	"github.com/go-gl/mathgl/mgl32"
)

// World tracks every simulated body. The dynamic slice is kept in placement
// order; order is only used for iteration, never for semantics. The ground
// body lives in the engine but never in the dynamic collection, so reset and
// removal cannot touch it.
type World struct {
	cfg    config.Config
	engine *physics.Engine
	ground *physics.Body
	bodies []*physics.Body
}

// NewWorld creates a world containing only the static ground body.
func NewWorld(cfg config.Config) *World {
	engine := physics.NewEngine(mgl32.Vec3{0, -cfg.Physics.Gravity, 0})

	gh := cfg.Ground.HalfExtents
	half := mgl32.Vec3{gh[0], gh[1], gh[2]}
	center := mgl32.Vec3{0, cfg.Ground.TopY - gh[1], 0}
	ground := physics.NewBody(center, half, 0)
	ground.Friction = cfg.Ground.Friction
	engine.AddBody(ground)

	return &World{
		cfg:    cfg,
		engine: engine,
		ground: ground,
	}
}

// AddBody registers a dynamic body with the engine and the registry. The body
// is subject to gravity and collisions from the next step onward. No
// placement validation happens here; legality is the caller's responsibility.
func (w *World) AddBody(b *physics.Body) {
	w.engine.AddBody(b)
	w.bodies = append(w.bodies, b)
}

// RemoveBody unregisters a body if present. Unknown bodies are a no-op.
func (w *World) RemoveBody(b *physics.Body) {
	for i, other := range w.bodies {
		if other == b {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			w.engine.RemoveBody(b)
			return
		}
	}
}

// Reset removes every dynamic body, leaving only the ground. Idempotent.
func (w *World) Reset() {
	for _, b := range w.bodies {
		w.engine.RemoveBody(b)
	}
	w.bodies = w.bodies[:0]
}

// Step advances the physics engine by elapsed wall-clock seconds, subdivided
// into fixed sub-steps. The cap on sub-steps bounds worst-case work when a
// frame stalls.
func (w *World) Step(elapsed float32) {
	w.engine.StepSimulation(elapsed, w.cfg.Physics.MaxSubSteps, w.cfg.Physics.FixedStep)
}

// Bodies returns the dynamic bodies in placement order. Callers must not
// mutate the slice.
func (w *World) Bodies() []*physics.Body { return w.bodies }

// Ground returns the static ground body.
func (w *World) Ground() *physics.Body { return w.ground }

// MaxHeight returns the greatest top-face height across all dynamic bodies,
// clamped to ground level when the world is empty.
func (w *World) MaxHeight() float32 {
	max := float32(0)
	for _, b := range w.bodies {
		if top := b.TopY(); top > max {
			max = top
		}
	}
	return max
}

// CheckCollision reports whether a candidate box overlaps any dynamic body.
// Comparison is strict per axis: exact edge touching is not an overlap.
func (w *World) CheckCollision(position, halfExtents mgl32.Vec3) bool {
	for _, b := range w.bodies {
		if overlapsWithTolerance(position, halfExtents, b, 0) {
			return true
		}
	}
	return false
}

// IsValidPlacement reports whether a candidate box keeps at least tolerance
// units of clearance from every dynamic body. With tolerance 0 it is the
// exact complement of CheckCollision; larger tolerances are more permissive
// about near-touching placements.
func (w *World) IsValidPlacement(position, halfExtents mgl32.Vec3, tolerance float32) bool {
	for _, b := range w.bodies {
		if overlapsWithTolerance(position, halfExtents, b, tolerance) {
			return false
		}
	}
	return true
}

// HasSupport reports whether a candidate box rests on the ground or on enough
// of another body's top face. The block rule requires the supporting top face
// within the vertical tolerance of the candidate's bottom face and footprint
// overlap of at least the coverage fraction of the candidate's half extent on
// both horizontal axes. This approximates "enough material underneath"
// without a torque balance.
func (w *World) HasSupport(position, halfExtents mgl32.Vec3) bool {
	bottom := position.Y() - halfExtents.Y()
	if bottom <= w.cfg.Ground.TopY+w.cfg.Support.GroundTolerance {
		return true
	}

	box := geom.AABBAt(position, halfExtents)
	for _, b := range w.bodies {
		gap := bottom - b.TopY()
		if gap < -w.cfg.Support.VerticalTolerance || gap > w.cfg.Support.VerticalTolerance {
			continue
		}
		other := b.Box()
		overlapX := geom.OverlapLen(box.Min.X(), box.Max.X(), other.Min.X(), other.Max.X())
		overlapZ := geom.OverlapLen(box.Min.Z(), box.Max.Z(), other.Min.Z(), other.Max.Z())
		if overlapX >= w.cfg.Support.Coverage*halfExtents.X() &&
			overlapZ >= w.cfg.Support.Coverage*halfExtents.Z() {
			return true
		}
	}
	return false
}

// TopYAt returns the greatest top-face height among dynamic bodies whose
// footprint strictly overlaps the query footprint, or ground level if none.
func (w *World) TopYAt(x, z float32, halfExtents mgl32.Vec3) float32 {
	top := w.cfg.Ground.TopY
	for _, b := range w.bodies {
		dx := absf(x - b.Position.X())
		dz := absf(z - b.Position.Z())
		if dx < halfExtents.X()+b.HalfExtents.X() && dz < halfExtents.Z()+b.HalfExtents.Z() {
			if t := b.TopY(); t > top {
				top = t
			}
		}
	}
	return top
}

// overlapsWithTolerance runs the per-axis AABB test with tolerance subtracted
// from each axis's combined half-extent sum.
func overlapsWithTolerance(position, halfExtents mgl32.Vec3, b *physics.Body, tolerance float32) bool {
	for axis := 0; axis < 3; axis++ {
		d := absf(position[axis] - b.Position[axis])
		if d >= halfExtents[axis]+b.HalfExtents[axis]-tolerance {
			return false
		}
	}
	return true
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
