package warp

import "github.com/go-gl/mathgl/mgl64"

// PlaneGeometry is a single-segment plane centered on its origin in the XY
// plane. One instance is shared read-only by every mesh of a scene; nothing
// mutates it after NewPlaneGeometry returns.
type PlaneGeometry struct {
	width, height float64
	corners       [4]mgl64.Vec3
	uvs           [4]Vec2
}

// planeIndices triangulates the corners (top-left, top-right, bottom-right,
// bottom-left).
var planeIndices = []uint16{0, 1, 2, 0, 2, 3}

// NewPlaneGeometry creates a w x h plane.
func NewPlaneGeometry(w, h float64) *PlaneGeometry {
	hw, hh := w/2, h/2
	return &PlaneGeometry{
		width:  w,
		height: h,
		corners: [4]mgl64.Vec3{
			{-hw, hh, 0},
			{hw, hh, 0},
			{hw, -hh, 0},
			{-hw, -hh, 0},
		},
		// UVs use v=1 at the top edge; the image's first row maps there.
		uvs: [4]Vec2{{0, 1}, {1, 1}, {1, 0}, {0, 0}},
	}
}

// Width returns the plane width in world units.
func (g *PlaneGeometry) Width() float64 { return g.width }

// Height returns the plane height in world units.
func (g *PlaneGeometry) Height() float64 { return g.height }

// Corner returns the local-space position of corner i (0..3).
func (g *PlaneGeometry) Corner(i int) mgl64.Vec3 { return g.corners[i] }

// UV returns the texture coordinate of corner i (0..3).
func (g *PlaneGeometry) UV(i int) Vec2 { return g.uvs[i] }
