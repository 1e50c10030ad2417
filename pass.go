package warp

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// Pass is one stage of the compositor chain.
type Pass interface {
	// Name identifies the pass in debug output and for Compositor.Remove.
	Name() string
	// Render draws the pass into dst. src is the previous pass's output, or
	// nil for the first pass. Passes never look at each other; all coupling
	// goes through src.
	Render(src, dst *ebiten.Image)
}

// UniformHolder is implemented by passes that expose a uniform set to the
// Driver.
type UniformHolder interface {
	Uniforms() *Uniforms
}

// --- ScenePass ---

// ScenePass rasterizes the scene through the camera. It ignores src.
type ScenePass struct {
	scene  *Scene
	camera *Camera
}

// NewScenePass creates the base pass of the chain.
func NewScenePass(scene *Scene, camera *Camera) *ScenePass {
	return &ScenePass{scene: scene, camera: camera}
}

// Name returns "scene".
func (p *ScenePass) Name() string { return "scene" }

// Render draws the scene into dst.
func (p *ScenePass) Render(_, dst *ebiten.Image) {
	p.scene.Draw(dst, p.camera)
}

// --- ShaderPass ---

// ShaderPass runs a Kage program over the previous pass's output. src is
// bound to Images[0]; texture uniforms in the set are bound to Images[1..3]
// in declaration order.
type ShaderPass struct {
	name     string
	shader   *ebiten.Shader
	uniforms *Uniforms
	shaderOp ebiten.DrawRectShaderOptions
}

// NewShaderPass compiles src and creates a pass with a clone of uniforms.
// A nil uniforms argument starts with an empty set.
func NewShaderPass(name, src string, uniforms *Uniforms) (*ShaderPass, error) {
	shader, err := ebiten.NewShader([]byte(src))
	if err != nil {
		return nil, fmt.Errorf("compile %s pass: %w", name, err)
	}
	return newShaderPass(name, shader, uniforms), nil
}

func newShaderPass(name string, shader *ebiten.Shader, uniforms *Uniforms) *ShaderPass {
	if uniforms == nil {
		uniforms = NewUniforms()
	} else {
		uniforms = uniforms.Clone()
	}
	return &ShaderPass{name: name, shader: shader, uniforms: uniforms}
}

// Name returns the pass name.
func (p *ShaderPass) Name() string { return p.name }

// Uniforms returns the pass's own uniform set.
func (p *ShaderPass) Uniforms() *Uniforms { return p.uniforms }

// Render applies the shader to src. A shader pass has nothing to sample as
// the first pass of a chain, so a nil src draws nothing.
func (p *ShaderPass) Render(src, dst *ebiten.Image) {
	if src == nil {
		return
	}
	bounds := src.Bounds()
	p.shaderOp.Images[0] = src
	slot := 1
	for _, name := range p.uniforms.Names() {
		if slot >= len(p.shaderOp.Images) {
			break
		}
		if u, _ := p.uniforms.Get(name); u.Kind == UniformTexture {
			p.shaderOp.Images[slot] = u.Texture
			slot++
		}
	}
	p.shaderOp.Uniforms = p.uniforms.kageUniforms()
	dst.DrawRectShader(bounds.Dx(), bounds.Dy(), p.shader, &p.shaderOp)
}
