// Package physics implements the rigid-body collaborator that advances box
// bodies under gravity and resolves box/box contacts. The simulation layer
// treats it as a black box: it owns integration and contact response, nothing
// else. Boxes never rotate here; orientation is carried for the renderer but
// stays identity.
package physics

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Engine holds the set of bodies and advances them in fixed increments.
type Engine struct {
	gravity mgl32.Vec3
	bodies  []*Body
	accum   float32
	nextID  uint64
}

// NewEngine returns an engine with the given gravity vector.
func NewEngine(gravity mgl32.Vec3) *Engine {
	return &Engine{gravity: gravity, nextID: 1}
}

// SetGravity replaces the gravity vector.
func (e *Engine) SetGravity(g mgl32.Vec3) { e.gravity = g }

// AddBody registers a body. A zero ID is assigned; bodies keep their ID for
// their lifetime so external systems can map them to visuals.
func (e *Engine) AddBody(b *Body) {
	if b.ID == 0 {
		b.ID = e.nextID
		e.nextID++
	}
	e.bodies = append(e.bodies, b)
}

// RemoveBody unregisters a body. Removing an unknown body is a no-op:
// double-removal after a reset is expected, not an error.
func (e *Engine) RemoveBody(b *Body) {
	for i, other := range e.bodies {
		if other == b {
			e.bodies = append(e.bodies[:i], e.bodies[i+1:]...)
			return
		}
	}
}

// Bodies returns the live body slice. Callers must not mutate it.
func (e *Engine) Bodies() []*Body { return e.bodies }

// StepSimulation advances the world by elapsed seconds using fixed sub-steps.
// At most maxSubSteps are taken per call; leftover time is carried to the
// next call, clamped to one fixed step so a stalled host cannot snowball
// into a burst of catch-up work.
func (e *Engine) StepSimulation(elapsed float32, maxSubSteps int, fixedStep float32) {
	if elapsed < 0 || fixedStep <= 0 || maxSubSteps < 1 {
		return
	}
	e.accum += elapsed
	steps := 0
	for e.accum >= fixedStep && steps < maxSubSteps {
		e.subStep(fixedStep)
		e.accum -= fixedStep
		steps++
	}
	if e.accum > fixedStep {
		e.accum = fixedStep
	}
}

// subStep runs one fixed increment: integrate, then resolve contacts.
func (e *Engine) subStep(dt float32) {
	for _, b := range e.bodies {
		if b.Static() {
			continue
		}
		b.Velocity = b.Velocity.Add(e.gravity.Mul(dt))
		if b.LinearDamping > 0 {
			b.Velocity = b.Velocity.Mul(1.0 / (1.0 + b.LinearDamping*dt))
		}
		b.Position = b.Position.Add(b.Velocity.Mul(dt))
	}
	e.resolveContacts()
}

// resolveContacts pushes overlapping pairs apart along the minimum
// penetration axis. Statics never move; dynamic pairs split the correction by
// mass. Velocity along the contact axis is reflected by the combined
// restitution (zeroed at the default of 0), and vertical contacts bleed off
// horizontal velocity according to the combined friction.
func (e *Engine) resolveContacts() {
	for i := 0; i < len(e.bodies); i++ {
		bi := e.bodies[i]
		for j := i + 1; j < len(e.bodies); j++ {
			bj := e.bodies[j]
			if bi.Static() && bj.Static() {
				continue
			}

			depth, axis := penetration(bi, bj)
			if axis < 0 {
				continue
			}

			// Direction of correction for bi along the axis.
			dir := float32(-1)
			if bi.Position[axis] > bj.Position[axis] {
				dir = 1
			}

			var moveI, moveJ float32
			switch {
			case bi.Static():
				moveJ = -dir * depth
			case bj.Static():
				moveI = dir * depth
			default:
				total := bi.Mass + bj.Mass
				moveI = dir * depth * (bj.Mass / total)
				moveJ = -dir * depth * (bi.Mass / total)
			}
			bi.Position[axis] += moveI
			bj.Position[axis] += moveJ

			restitution := bi.Restitution * bj.Restitution
			friction := clamp01(bi.Friction * bj.Friction)
			for _, b := range [2]*Body{bi, bj} {
				if b.Static() {
					continue
				}
				b.Velocity[axis] = -b.Velocity[axis] * restitution
				if axis == 1 && friction > 0 {
					b.Velocity[0] *= 1 - friction
					b.Velocity[2] *= 1 - friction
				}
			}
		}
	}
}

// penetration returns the overlap depth and axis index (0=X, 1=Y, 2=Z) of the
// minimum penetration between two bodies, or (0, -1) when they do not overlap.
func penetration(a, b *Body) (depth float32, axis int) {
	boxA, boxB := a.Box(), b.Box()

	overlapX := minf(boxA.Max.X(), boxB.Max.X()) - maxf(boxA.Min.X(), boxB.Min.X())
	overlapY := minf(boxA.Max.Y(), boxB.Max.Y()) - maxf(boxA.Min.Y(), boxB.Min.Y())
	overlapZ := minf(boxA.Max.Z(), boxB.Max.Z()) - maxf(boxA.Min.Z(), boxB.Min.Z())
	if overlapX <= 0 || overlapY <= 0 || overlapZ <= 0 {
		return 0, -1
	}

	depth, axis = overlapX, 0
	if overlapY < depth {
		depth, axis = overlapY, 1
	}
	if overlapZ < depth {
		depth, axis = overlapZ, 2
	}
	return depth, axis
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
