package warp

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Camera is a perspective camera looking at a fixed target. The projection
// is cached and only rebuilt by UpdateProjection, the same explicit update
// step a host performs after changing Aspect.
type Camera struct {
	// FOV is the vertical field of view in degrees.
	FOV float64
	// Aspect is the viewport width divided by its height.
	Aspect float64
	// Near and Far are the clip plane distances.
	Near, Far float64

	Position mgl64.Vec3
	Target   mgl64.Vec3
	Up       mgl64.Vec3

	projection mgl64.Mat4
	view       mgl64.Mat4
	viewProj   mgl64.Mat4
	viewDirty  bool
}

// Default camera settings for the image row.
const (
	DefaultFOV  = 70.0
	DefaultNear = 0.001
	DefaultFar  = 1000.0
)

// NewCamera creates a camera at (0, 0, 2) looking at the origin with the
// given aspect ratio. A non-positive aspect falls back to 1.
func NewCamera(aspect float64) *Camera {
	if !(aspect > 0) {
		aspect = 1
	}
	c := &Camera{
		FOV:       DefaultFOV,
		Aspect:    aspect,
		Near:      DefaultNear,
		Far:       DefaultFar,
		Position:  mgl64.Vec3{0, 0, 2},
		Up:        mgl64.Vec3{0, 1, 0},
		viewDirty: true,
	}
	c.UpdateProjection()
	return c
}

// UpdateProjection recomputes the projection matrix from FOV, Aspect, Near
// and Far. Call it after changing any of them.
func (c *Camera) UpdateProjection() {
	c.projection = mgl64.Perspective(mgl64.DegToRad(c.FOV), c.Aspect, c.Near, c.Far)
	c.viewDirty = true
}

// MarkDirty forces the view matrix to be rebuilt, e.g. after moving Position.
func (c *Camera) MarkDirty() {
	c.viewDirty = true
}

// Projection returns the cached projection matrix.
func (c *Camera) Projection() mgl64.Mat4 {
	return c.projection
}

// ViewProjection returns projection * view, rebuilding it if dirty.
func (c *Camera) ViewProjection() mgl64.Mat4 {
	if c.viewDirty {
		c.view = mgl64.LookAtV(c.Position, c.Target, c.Up)
		c.viewProj = c.projection.Mul4(c.view)
		c.viewDirty = false
	}
	return c.viewProj
}

// Project maps a world-space point to pixel coordinates in a w x h target.
// Y grows downward in the result. ok is false for points behind the camera.
func (c *Camera) Project(p mgl64.Vec3, w, h int) (sx, sy float64, ok bool) {
	clip := c.ViewProjection().Mul4x1(p.Vec4(1))
	if clip.W() <= 0 {
		return 0, 0, false
	}
	ndcX := clip.X() / clip.W()
	ndcY := clip.Y() / clip.W()
	sx = (ndcX + 1) / 2 * float64(w)
	sy = (1 - ndcY) / 2 * float64(h)
	return sx, sy, true
}
