package warp

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// orbitPolarLimit keeps the polar angle off the poles, where the look-at
// basis degenerates against the Y-up vector.
const orbitPolarLimit = 1e-6

// OrbitControl moves a Camera over a sphere centered on its Target. Dragging
// with the left mouse button rotates; the wheel moves the camera toward or
// away from the target.
type OrbitControl struct {
	// RotateSpeed scales drag rotation. At 1, dragging across the full
	// viewport height turns the camera one full revolution.
	RotateSpeed float64
	// ZoomSpeed scales the wheel. Each wheel step multiplies the distance by
	// 0.95^ZoomSpeed.
	ZoomSpeed float64
	// MinDistance and MaxDistance bound the distance to the target.
	MinDistance, MaxDistance float64
	Enabled                  bool

	camera       *Camera
	dragging     bool
	lastX, lastY int
}

// NewOrbitControl creates an enabled control for cam.
func NewOrbitControl(cam *Camera) *OrbitControl {
	return &OrbitControl{
		RotateSpeed: 1,
		ZoomSpeed:   1,
		MaxDistance: math.Inf(1),
		Enabled:     true,
		camera:      cam,
	}
}

// spherical is a Y-up spherical coordinate: theta is the azimuth from +Z
// toward +X, phi the polar angle from +Y.
type spherical struct {
	radius, theta, phi float64
}

func toSpherical(v mgl64.Vec3) spherical {
	r := v.Len()
	if r == 0 {
		return spherical{}
	}
	return spherical{
		radius: r,
		theta:  math.Atan2(v.X(), v.Z()),
		phi:    math.Acos(min(max(v.Y()/r, -1), 1)),
	}
}

func (s spherical) vec() mgl64.Vec3 {
	sinPhi := math.Sin(s.phi)
	return mgl64.Vec3{
		s.radius * sinPhi * math.Sin(s.theta),
		s.radius * math.Cos(s.phi),
		s.radius * sinPhi * math.Cos(s.theta),
	}
}

// move applies f to the camera's offset from its target.
func (o *OrbitControl) move(f func(*spherical)) {
	c := o.camera
	s := toSpherical(c.Position.Sub(c.Target))
	if s.radius == 0 {
		return
	}
	f(&s)
	s.phi = min(max(s.phi, orbitPolarLimit), math.Pi-orbitPolarLimit)
	s.radius = min(max(s.radius, o.MinDistance), o.MaxDistance)
	c.Position = c.Target.Add(s.vec())
	c.MarkDirty()
}

// Rotate turns the camera left by left radians around the target's vertical
// axis and up by up radians toward the top pole.
func (o *OrbitControl) Rotate(left, up float64) {
	o.move(func(s *spherical) {
		s.theta -= left
		s.phi -= up
	})
}

// Drag rotates for a pointer movement of (dx, dy) pixels in a viewport
// height pixels tall.
func (o *OrbitControl) Drag(dx, dy float64, height int) {
	if height <= 0 {
		return
	}
	k := 2 * math.Pi * o.RotateSpeed / float64(height)
	o.Rotate(dx*k, dy*k)
}

// Wheel dollies for a wheel movement of steps; positive steps move toward
// the target.
func (o *OrbitControl) Wheel(steps float64) {
	if steps == 0 {
		return
	}
	scale := math.Pow(0.95, o.ZoomSpeed*steps)
	o.move(func(s *spherical) {
		s.radius *= scale
	})
}

// Distance returns the camera's distance to its target.
func (o *OrbitControl) Distance() float64 {
	return o.camera.Position.Sub(o.camera.Target).Len()
}

// Update polls the mouse. height is the current viewport height.
func (o *OrbitControl) Update(height int) {
	if !o.Enabled {
		o.dragging = false
		return
	}
	x, y := ebiten.CursorPosition()
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		o.dragging = true
	case o.dragging && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		if dx, dy := x-o.lastX, y-o.lastY; dx != 0 || dy != 0 {
			o.Drag(float64(dx), float64(dy), height)
		}
	default:
		o.dragging = false
	}
	o.lastX, o.lastY = x, y

	if _, wy := ebiten.Wheel(); wy != 0 {
		o.Wheel(wy)
	}
}
