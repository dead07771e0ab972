package geom

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestIntersectAABB(t *testing.T) {
	box := AABBAt(mgl32.Vec3{0, 5, 0}, mgl32.Vec3{5, 5, 5})

	tests := []struct {
		name         string
		ray          Ray
		expectHit    bool
		expectNormal mgl32.Vec3
		expectT      float32
	}{
		{
			name:         "straight down onto top face",
			ray:          Ray{Origin: mgl32.Vec3{0, 20, 0}, Dir: mgl32.Vec3{0, -1, 0}},
			expectHit:    true,
			expectNormal: mgl32.Vec3{0, 1, 0},
			expectT:      10,
		},
		{
			name:         "sideways onto -X face",
			ray:          Ray{Origin: mgl32.Vec3{-20, 5, 0}, Dir: mgl32.Vec3{1, 0, 0}},
			expectHit:    true,
			expectNormal: mgl32.Vec3{-1, 0, 0},
			expectT:      15,
		},
		{
			name:      "misses above",
			ray:       Ray{Origin: mgl32.Vec3{-20, 15, 0}, Dir: mgl32.Vec3{1, 0, 0}},
			expectHit: false,
		},
		{
			name:      "points away",
			ray:       Ray{Origin: mgl32.Vec3{0, 20, 0}, Dir: mgl32.Vec3{0, 1, 0}},
			expectHit: false,
		},
		{
			name:      "origin inside",
			ray:       Ray{Origin: mgl32.Vec3{0, 5, 0}, Dir: mgl32.Vec3{0, -1, 0}},
			expectHit: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dist, normal, ok := tt.ray.IntersectAABB(box)
			if ok != tt.expectHit {
				t.Fatalf("expected hit=%v, got hit=%v", tt.expectHit, ok)
			}
			if !tt.expectHit {
				return
			}
			if normal != tt.expectNormal {
				t.Errorf("expected normal=%v, got %v", tt.expectNormal, normal)
			}
			if mgl32.Abs(dist-tt.expectT) > 1e-4 {
				t.Errorf("expected t=%v, got %v", tt.expectT, dist)
			}
		})
	}
}

func TestIntersectPlaneY(t *testing.T) {
	down := Ray{Origin: mgl32.Vec3{3, 10, -7}, Dir: mgl32.Vec3{0, -1, 0}}
	p, ok := down.IntersectPlaneY(0)
	if !ok {
		t.Fatal("expected ground hit")
	}
	if p.X() != 3 || p.Y() != 0 || p.Z() != -7 {
		t.Errorf("unexpected hit point %v", p)
	}

	parallel := Ray{Origin: mgl32.Vec3{0, 10, 0}, Dir: mgl32.Vec3{1, 0, 0}}
	if _, ok := parallel.IntersectPlaneY(0); ok {
		t.Error("parallel ray should not hit the plane")
	}

	away := Ray{Origin: mgl32.Vec3{0, 10, 0}, Dir: mgl32.Vec3{0, 1, 0}}
	if _, ok := away.IntersectPlaneY(0); ok {
		t.Error("ray pointing away should not hit the plane")
	}
}

func TestOverlapsStrict(t *testing.T) {
	a := AABBAt(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{5, 5, 5})
	touching := AABBAt(mgl32.Vec3{10, 0, 0}, mgl32.Vec3{5, 5, 5})
	overlapping := AABBAt(mgl32.Vec3{9, 0, 0}, mgl32.Vec3{5, 5, 5})

	if a.Overlaps(touching) {
		t.Error("edge-touching boxes must not count as overlapping")
	}
	if !a.Overlaps(overlapping) {
		t.Error("expected overlap")
	}
}

func TestSnapToGrid(t *testing.T) {
	tests := []struct {
		v, grid, want float32
	}{
		{0, 5, 0},
		{2.4, 5, 0},
		{2.6, 5, 5},
		{-2.6, 5, -5},
		{77, 5, 75},
		{80, 5, 80},
		{13, 0, 13},
	}
	for _, tt := range tests {
		if got := SnapToGrid(tt.v, tt.grid); got != tt.want {
			t.Errorf("SnapToGrid(%v, %v) = %v, want %v", tt.v, tt.grid, got, tt.want)
		}
	}
}

func TestOverlapLen(t *testing.T) {
	if got := OverlapLen(0, 10, 5, 20); got != 5 {
		t.Errorf("expected 5, got %v", got)
	}
	if got := OverlapLen(0, 10, 10, 20); got != 0 {
		t.Errorf("touching intervals should overlap by 0, got %v", got)
	}
	if got := OverlapLen(0, 10, 15, 20); got != 0 {
		t.Errorf("disjoint intervals should overlap by 0, got %v", got)
	}
}
