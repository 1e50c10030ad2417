package warp

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Uniform names shared by the material and the passes.
const (
	uniformTime       = "time"
	uniformTexture    = "uTexture"
	uniformResolution = "resolution"
	uniformUVRate     = "uvRate1"
	uniformProgress   = "progress"
	uniformScale      = "scale"
	uniformCenter     = "center"
	uniformAngle      = "angle"
	uniformTSize      = "tSize"
)

// SceneConfig controls plane size and spacing.
type SceneConfig struct {
	// PlaneWidth and PlaneHeight are the plane size in world units.
	// Zero selects the package defaults.
	PlaneWidth, PlaneHeight float64
	// Gap is the spacing constant fed to GapOffset. Zero is a valid gap.
	Gap float64
	// ClearColor fills the target before the meshes are drawn.
	ClearColor Color
}

// DefaultSceneConfig returns the standard plane size, gap and background.
func DefaultSceneConfig() SceneConfig {
	return SceneConfig{
		PlaneWidth:  PlaneWidth,
		PlaneHeight: PlaneHeight,
		Gap:         DefaultGap,
		ClearColor:  DefaultClearColor,
	}
}

// Scene holds the image planes. It is built once from a fixed texture list
// and never rebuilt; mesh offsets are not recomputed after NewScene.
type Scene struct {
	ClearColor Color

	geometry *PlaneGeometry
	material *Uniforms
	meshes   []*Mesh
	shader   *ebiten.Shader
}

// newMaterialUniforms returns the canonical material uniform set.
func newMaterialUniforms() *Uniforms {
	u := NewUniforms()
	u.SetFloat(uniformTime, 0)
	u.SetVec4(uniformResolution, 0, 0, 0, 0)
	u.SetTexture(uniformTexture, nil)
	u.SetVec2(uniformUVRate, Vec2{1, 1})
	return u
}

// NewScene composes one mesh per texture, in order. A nil texture (failed
// load) yields a mesh that samples the blank placeholder. An empty list
// yields an empty scene. The only error is a material shader compile failure.
func NewScene(textures []*ebiten.Image, cfg SceneConfig) (*Scene, error) {
	shader, err := compileShader("material", materialShaderSrc)
	if err != nil {
		return nil, err
	}
	if cfg.PlaneWidth == 0 {
		cfg.PlaneWidth = PlaneWidth
	}
	if cfg.PlaneHeight == 0 {
		cfg.PlaneHeight = PlaneHeight
	}

	s := &Scene{
		ClearColor: cfg.ClearColor,
		geometry:   NewPlaneGeometry(cfg.PlaneWidth, cfg.PlaneHeight),
		material:   newMaterialUniforms(),
		meshes:     make([]*Mesh, 0, len(textures)),
		shader:     shader,
	}

	n := len(textures)
	for i, tex := range textures {
		u := s.material.Clone()
		u.SetTexture(uniformTexture, tex)
		s.meshes = append(s.meshes, &Mesh{
			Index:    i,
			geometry: s.geometry,
			uniforms: u,
			x:        MeshX(i, n, cfg.PlaneWidth, cfg.Gap),
		})
	}
	return s, nil
}

// LayoutOffset is the width term of a mesh's horizontal position:
//
//	(i*W/2) - (W/2)*(N-i) + W/2
//
// The asymmetry (the row is not centered on the origin) is part of the
// intended layout.
func LayoutOffset(i, n int, w float64) float64 {
	fi, fn := float64(i), float64(n)
	return (fi * w / 2) - (w/2)*(fn-fi) + w/2
}

// GapOffset is the gap term of a mesh's horizontal position; it has the same
// shape as LayoutOffset with G in place of W.
func GapOffset(i, n int, g float64) float64 {
	return LayoutOffset(i, n, g)
}

// MeshX returns the horizontal position of mesh i of n.
func MeshX(i, n int, w, g float64) float64 {
	return LayoutOffset(i, n, w) + GapOffset(i, n, g)
}

// Meshes returns the mesh registry in composition order. The returned slice
// MUST NOT be mutated.
func (s *Scene) Meshes() []*Mesh {
	return s.meshes
}

// Geometry returns the geometry shared by all meshes.
func (s *Scene) Geometry() *PlaneGeometry {
	return s.geometry
}

// Material returns the canonical uniform set the meshes were cloned from.
func (s *Scene) Material() *Uniforms {
	return s.material
}

// Draw clears dst and rasterizes every mesh as seen by cam.
func (s *Scene) Draw(dst *ebiten.Image, cam *Camera) {
	dst.Fill(s.ClearColor.toRGBA())
	b := dst.Bounds()
	for _, m := range s.meshes {
		m.uniforms.SetVec4(uniformResolution, float64(b.Dx()), float64(b.Dy()), 1, 1)
		m.draw(dst, cam, s.shader)
	}
}
