package placement

import (
	"testing"

	"blockstack/internal/config"
	"blockstack/internal/geom"

	"github.com/go-gl/mathgl/mgl32"
)

func newTestResolver() *Resolver {
	return NewResolver(config.Default())
}

func TestResolveGround(t *testing.T) {
	r := newTestResolver()

	tests := []struct {
		name           string
		ray            geom.Ray
		expectX        float32
		expectZ        float32
	}{
		{
			name:    "straight down near origin",
			ray:     geom.Ray{Origin: mgl32.Vec3{3, 50, -7}, Dir: mgl32.Vec3{0, -1, 0}},
			expectX: 5, expectZ: -5,
		},
		{
			name:    "snaps to exact multiples",
			ray:     geom.Ray{Origin: mgl32.Vec3{12.4, 50, 12.6}, Dir: mgl32.Vec3{0, -1, 0}},
			expectX: 10, expectZ: 15,
		},
		{
			name:    "clamps before snapping outside the buildable region",
			ray:     geom.Ray{Origin: mgl32.Vec3{500, 50, -500}, Dir: mgl32.Vec3{0, -1, 0}},
			expectX: 80, expectZ: -80,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := r.Resolve(tt.ray, nil)
			if !ok {
				t.Fatal("expected a ground candidate")
			}
			if c.OnBlock {
				t.Error("no surfaces supplied, candidate must be on-ground")
			}
			if c.SurfaceY != 0 {
				t.Errorf("ground resting height must be exactly 0, got %v", c.SurfaceY)
			}
			if c.Position.X() != tt.expectX || c.Position.Z() != tt.expectZ {
				t.Errorf("expected snapped (%v, %v), got (%v, %v)",
					tt.expectX, tt.expectZ, c.Position.X(), c.Position.Z())
			}
		})
	}
}

func TestResolveOnBlock(t *testing.T) {
	r := newTestResolver()
	surfaces := []Surface{
		{Body: 7, Box: geom.AABBAt(mgl32.Vec3{1, 5, 2}, mgl32.Vec3{5, 5, 5})},
	}

	ray := geom.Ray{Origin: mgl32.Vec3{1, 50, 2}, Dir: mgl32.Vec3{0, -1, 0}}
	c, ok := r.Resolve(ray, surfaces)
	if !ok {
		t.Fatal("expected an on-block candidate")
	}
	if !c.OnBlock || c.Target != 7 {
		t.Errorf("expected on-block candidate targeting body 7, got %+v", c)
	}
	if c.SurfaceY != 10 {
		t.Errorf("resting height must equal the exact intersection y=10, got %v", c.SurfaceY)
	}
	// Horizontal snap: 1 -> 0, 2 -> 0. Vertical is never snapped.
	if c.Position.X() != 0 || c.Position.Z() != 0 {
		t.Errorf("expected snapped (0, 0), got (%v, %v)", c.Position.X(), c.Position.Z())
	}
	if c.Position.Y() != 10 {
		t.Errorf("candidate y must carry the unsnapped surface height, got %v", c.Position.Y())
	}
}

func TestResolveIgnoresSideFaces(t *testing.T) {
	r := newTestResolver()
	surfaces := []Surface{
		{Body: 3, Box: geom.AABBAt(mgl32.Vec3{0, 5, 0}, mgl32.Vec3{5, 5, 5})},
	}

	// A horizontal ray strikes the -X side face; that is not a resting
	// surface, so the resolver falls back... and the ray never reaches the
	// ground either.
	ray := geom.Ray{Origin: mgl32.Vec3{-50, 5, 0}, Dir: mgl32.Vec3{1, 0, 0}}
	if _, ok := r.Resolve(ray, surfaces); ok {
		t.Error("side-face hit with no ground intersection must yield no candidate")
	}
}

func TestResolveNearestUpwardFaceWins(t *testing.T) {
	r := newTestResolver()
	surfaces := []Surface{
		{Body: 1, Box: geom.AABBAt(mgl32.Vec3{0, 5, 0}, mgl32.Vec3{5, 5, 5})},   // top at 10
		{Body: 2, Box: geom.AABBAt(mgl32.Vec3{0, 15, 0}, mgl32.Vec3{5, 5, 5})},  // top at 20
		{Body: 3, Box: geom.AABBAt(mgl32.Vec3{40, 5, 0}, mgl32.Vec3{5, 5, 5})},  // off the ray
	}

	ray := geom.Ray{Origin: mgl32.Vec3{0, 60, 0}, Dir: mgl32.Vec3{0, -1, 0}}
	c, ok := r.Resolve(ray, surfaces)
	if !ok {
		t.Fatal("expected a candidate")
	}
	if c.Target != 2 || c.SurfaceY != 20 {
		t.Errorf("the nearest top face along the ray must win, got target=%d y=%v", c.Target, c.SurfaceY)
	}
}

func TestResolveNoCandidate(t *testing.T) {
	r := newTestResolver()

	skyward := geom.Ray{Origin: mgl32.Vec3{0, 10, 0}, Dir: mgl32.Vec3{0, 1, 0}}
	if _, ok := r.Resolve(skyward, nil); ok {
		t.Error("a ray pointing away from the ground must yield no candidate")
	}

	parallel := geom.Ray{Origin: mgl32.Vec3{0, 10, 0}, Dir: mgl32.Vec3{1, 0, 0}}
	if _, ok := r.Resolve(parallel, nil); ok {
		t.Error("a ray parallel to the ground must yield no candidate")
	}
}
