// Package placement turns a camera pick ray into a concrete, grid-aligned
// placement candidate, preferring the top of an existing block over the
// ground. Candidates are advisory: callers must still run the world's
// validity queries before confirming a placement.
package placement

import (
	"blockstack/internal/config"
	"blockstack/internal/geom"

	"github.com/go-gl/mathgl/mgl32"
)

// Surface is a piece of intersectable block geometry, supplied per query by
// the caller. The resolver never owns body or mesh state; the ray and the
// surface set are explicit arguments every time.
type Surface struct {
	Body uint64
	Box  geom.AABB
}

// Candidate is a proposed resting spot for a not-yet-confirmed block.
// Position carries the grid-snapped X/Z; SurfaceY is the exact, unsnapped
// height of the struck surface. Candidates are produced fresh on every query
// and never mutated.
type Candidate struct {
	Position mgl32.Vec3
	SurfaceY float32
	OnBlock  bool
	Target   uint64 // body the candidate rests on; zero when on the ground
}

// Resolver resolves pick rays against block surfaces and the ground plane.
type Resolver struct {
	gridSize    float32
	buildHalf   float32
	minUpNormal float32
	groundY     float32
}

// NewResolver builds a resolver from the placement tunables.
func NewResolver(cfg config.Config) *Resolver {
	return &Resolver{
		gridSize:    cfg.Placement.GridSize,
		buildHalf:   cfg.Placement.BuildableHalfExtent,
		minUpNormal: cfg.Placement.MinUpNormal,
		groundY:     cfg.Ground.TopY,
	}
}

// Resolve finds the topmost legal resting surface along the ray. Block hits
// count only when the struck face points substantially upward; among those
// the nearest along the ray wins and its exact intersection height becomes
// the resting height. Otherwise the ground plane is tried, with X/Z clamped
// to the buildable region before snapping. Returns false when the ray hits
// neither a qualifying face nor the ground; callers treat that as "hide the
// preview", not as an error.
func (r *Resolver) Resolve(ray geom.Ray, surfaces []Surface) (Candidate, bool) {
	bestT := float32(0)
	var bestPoint mgl32.Vec3
	var bestBody uint64
	found := false

	for _, s := range surfaces {
		t, normal, ok := ray.IntersectAABB(s.Box)
		if !ok || normal.Y() <= r.minUpNormal {
			continue
		}
		if !found || t < bestT {
			bestT = t
			bestPoint = ray.Origin.Add(ray.Dir.Mul(t))
			bestBody = s.Body
			found = true
		}
	}

	if found {
		return Candidate{
			Position: mgl32.Vec3{
				geom.SnapToGrid(bestPoint.X(), r.gridSize),
				bestPoint.Y(),
				geom.SnapToGrid(bestPoint.Z(), r.gridSize),
			},
			SurfaceY: bestPoint.Y(),
			OnBlock:  true,
			Target:   bestBody,
		}, true
	}

	point, ok := ray.IntersectPlaneY(r.groundY)
	if !ok {
		return Candidate{}, false
	}
	x := geom.SnapToGrid(geom.Clamp(point.X(), -r.buildHalf, r.buildHalf), r.gridSize)
	z := geom.SnapToGrid(geom.Clamp(point.Z(), -r.buildHalf, r.buildHalf), r.gridSize)
	return Candidate{
		Position: mgl32.Vec3{x, r.groundY, z},
		SurfaceY: r.groundY,
	}, true
}
