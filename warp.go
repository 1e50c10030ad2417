package warp

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// DefaultClearColor is the background drawn behind the image row (#161c1e).
var DefaultClearColor = Color{R: 0x16 / 255.0, G: 0x1c / 255.0, B: 0x1e / 255.0, A: 1}

// toRGBA converts to a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A)*255 + 0.5),
		G: uint8(clamp01(c.G*c.A)*255 + 0.5),
		B: uint8(clamp01(c.B*c.A)*255 + 0.5),
		A: uint8(clamp01(c.A)*255 + 0.5),
	}
}

// Vec2 is a 2D vector used for texture coordinates, sizes and shader
// uniforms.
type Vec2 struct {
	X, Y float64
}

// Plane dimensions in world units. The source photographs share a fixed
// 2766x3456 aspect; the planes are half that size in scene units.
const (
	PlaneWidth  = 2.766 / 2
	PlaneHeight = 3.456 / 2
)

// DefaultGap is the horizontal gap constant between neighbouring planes.
const DefaultGap = PlaneWidth

// Default time steps of the two pipeline variants.
const (
	BasicTimeStep      = 0.05
	TransitionTimeStep = 0.01
)

// blankTexture is sampled by meshes whose image failed to load. Fully
// transparent, so the plane renders as nothing over the clear color.
var blankTexture *ebiten.Image

// ensureBlankTexture returns the lazily-created placeholder texture
// (no sync.Once; warp is single-threaded).
func ensureBlankTexture() *ebiten.Image {
	if blankTexture == nil {
		blankTexture = ebiten.NewImage(1, 1)
	}
	return blankTexture
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// lerp matches GLSL/Kage mix().
func lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}
