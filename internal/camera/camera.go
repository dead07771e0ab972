// Package camera turns screen coordinates into world-space pick rays.
package camera

import (
	"blockstack/internal/geom"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera holds the view and projection parameters used to unproject screen
// points into the world.
type Camera struct {
	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3

	FOV       float32 // vertical field of view, degrees
	NearPlane float32
	FarPlane  float32

	Width  int
	Height int
}

// New returns a camera with the default lens, looking at the world origin.
func New(width, height int) *Camera {
	return &Camera{
		Position:  mgl32.Vec3{60, 60, 60},
		Target:    mgl32.Vec3{0, 0, 0},
		Up:        mgl32.Vec3{0, 1, 0},
		FOV:       60.0,
		NearPlane: 0.1,
		FarPlane:  1000.0,
		Width:     width,
		Height:    height,
	}
}

// Resize updates the viewport dimensions.
func (c *Camera) Resize(width, height int) {
	c.Width = width
	c.Height = height
}

func (c *Camera) projection() mgl32.Mat4 {
	aspect := float32(c.Width) / float32(c.Height)
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), aspect, c.NearPlane, c.FarPlane)
}

func (c *Camera) view() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, c.Up)
}

// ScreenRay unprojects the screen point (x, y) into a world-space ray from
// the camera. Screen coordinates are window style: (0, 0) top-left, y grows
// downward.
func (c *Camera) ScreenRay(x, y float32) (geom.Ray, bool) {
	if c.Width <= 0 || c.Height <= 0 {
		return geom.Ray{}, false
	}
	view := c.view()
	proj := c.projection()

	// UnProject expects GL window coordinates, origin bottom-left.
	wy := float32(c.Height) - y

	near, err := mgl32.UnProject(mgl32.Vec3{x, wy, 0}, view, proj, 0, 0, c.Width, c.Height)
	if err != nil {
		return geom.Ray{}, false
	}
	far, err := mgl32.UnProject(mgl32.Vec3{x, wy, 1}, view, proj, 0, 0, c.Width, c.Height)
	if err != nil {
		return geom.Ray{}, false
	}

	dir := far.Sub(near)
	if dir.Len() == 0 {
		return geom.Ray{}, false
	}
	return geom.Ray{Origin: near, Dir: dir.Normalize()}, true
}

// ForwardRay is the pick ray through the center of the viewport.
func (c *Camera) ForwardRay() (geom.Ray, bool) {
	return c.ScreenRay(float32(c.Width)/2, float32(c.Height)/2)
}
