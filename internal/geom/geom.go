package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Ray is a half-line in world space. Dir is expected to be normalized by the
// caller; intersection parameters are distances along Dir.
type Ray struct {
	Origin mgl32.Vec3
	Dir    mgl32.Vec3
}

// AABB is an axis-aligned bounding box in world coordinates.
type AABB struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// AABBAt builds the box for a body centered at center with the given half extents.
func AABBAt(center, half mgl32.Vec3) AABB {
	return AABB{
		Min: center.Sub(half),
		Max: center.Add(half),
	}
}

// Center returns the midpoint of the box.
func (b AABB) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Overlaps reports whether two boxes overlap on all three axes.
// Comparison is strict: boxes that exactly share a face do not overlap.
func (b AABB) Overlaps(o AABB) bool {
	return b.Min.X() < o.Max.X() && b.Max.X() > o.Min.X() &&
		b.Min.Y() < o.Max.Y() && b.Max.Y() > o.Min.Y() &&
		b.Min.Z() < o.Max.Z() && b.Max.Z() > o.Min.Z()
}

// OverlapLen returns the length of the intersection of two intervals,
// clamped to zero when they are disjoint.
func OverlapLen(aMin, aMax, bMin, bMax float32) float32 {
	lo := aMin
	if bMin > lo {
		lo = bMin
	}
	hi := aMax
	if bMax < hi {
		hi = bMax
	}
	if hi <= lo {
		return 0
	}
	return hi - lo
}

// IntersectAABB runs the slab test against the box and returns the entry
// distance along the ray and the outward face normal at the entry point.
// A ray starting inside the box reports no hit: there is no surface to land on.
func (r Ray) IntersectAABB(b AABB) (t float32, normal mgl32.Vec3, ok bool) {
	tNear := float32(math.Inf(-1))
	tFar := float32(math.Inf(1))
	axis := -1
	var sign float32

	for i := 0; i < 3; i++ {
		o, d := r.Origin[i], r.Dir[i]
		if d == 0 {
			// Parallel to this slab: must already be inside it.
			if o < b.Min[i] || o > b.Max[i] {
				return 0, mgl32.Vec3{}, false
			}
			continue
		}
		t1 := (b.Min[i] - o) / d
		t2 := (b.Max[i] - o) / d
		s := float32(-1)
		if t1 > t2 {
			t1, t2 = t2, t1
			s = 1
		}
		if t1 > tNear {
			tNear = t1
			axis = i
			sign = s
		}
		if t2 < tFar {
			tFar = t2
		}
		if tNear > tFar || tFar < 0 {
			return 0, mgl32.Vec3{}, false
		}
	}

	if axis < 0 || tNear < 0 {
		return 0, mgl32.Vec3{}, false
	}
	normal[axis] = sign
	return tNear, normal, true
}

// IntersectPlaneY intersects the ray with the horizontal plane at the given
// height. Returns false when the ray is parallel to the plane or points away
// from it.
func (r Ray) IntersectPlaneY(y float32) (mgl32.Vec3, bool) {
	if r.Dir.Y() == 0 {
		return mgl32.Vec3{}, false
	}
	t := (y - r.Origin.Y()) / r.Dir.Y()
	if t <= 0 {
		return mgl32.Vec3{}, false
	}
	return r.Origin.Add(r.Dir.Mul(t)), true
}

// SnapToGrid rounds v to the nearest multiple of grid.
func SnapToGrid(v, grid float32) float32 {
	if grid <= 0 {
		return v
	}
	return float32(math.Round(float64(v/grid))) * grid
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
