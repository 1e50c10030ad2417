package warp

import "math"

// DistortionParams are the inputs of the distortion warp for one frame.
type DistortionParams struct {
	Time     float64
	Progress float64
	Scale    float64
}

// wobbleStage is one additive, axis-swapped cosine perturbation:
// p += amp * cos(scale*freq*p.yx + speed*time + phase).
type wobbleStage struct {
	amp, freq, speed float64
	phase            Vec2
}

var wobbleStages = [4]wobbleStage{
	{amp: 0.1, freq: 2, speed: 1.0, phase: Vec2{1.2, 3.4}},
	{amp: 0.1, freq: 3.7, speed: 1.5, phase: Vec2{2.2, 3.4}},
	{amp: 0.1, freq: 5, speed: 2.6, phase: Vec2{4.2, 1.4}},
	{amp: 0.3, freq: 7, speed: 3.6, phase: Vec2{10.2, 3.4}},
}

// Wobble returns the accumulated wobble field at uv: the centered coordinate
// 2*uv-1 after the four perturbation stages. Each stage reads the value left
// by the previous one.
func Wobble(uv Vec2, time, scale float64) Vec2 {
	p := Vec2{2*uv.X - 1, 2*uv.Y - 1}
	for _, st := range wobbleStages {
		// Both components read the pre-stage p.
		sx, sy := p.Y, p.X
		p.X += st.amp * math.Cos(scale*st.freq*sx+st.speed*time+st.phase.X)
		p.Y += st.amp * math.Cos(scale*st.freq*sy+st.speed*time+st.phase.Y)
	}
	return p
}

// ResampleUV returns the coordinate the distortion pass samples for a pixel
// at uv. V = 0 is the bottom edge. At Progress 0 the result is uv itself.
func ResampleUV(uv Vec2, d DistortionParams) Vec2 {
	if d.Progress == 0 {
		return uv
	}
	p := Wobble(uv, d.Time, d.Scale)
	return Vec2{
		X: lerp(uv.X, math.Hypot(p.X, p.Y), d.Progress),
		Y: lerp(uv.Y, 0, d.Progress),
	}
}

// DistortionPass is the parametric UV-warp transition. It is a ShaderPass
// whose uniforms are time, progress, scale, center, angle and tSize.
type DistortionPass struct {
	*ShaderPass
}

// newDistortionUniforms returns the canonical distortion uniform set.
// center, angle and tSize are declared but not read by the program.
func newDistortionUniforms() *Uniforms {
	u := NewUniforms()
	u.SetFloat(uniformTime, 0)
	u.SetFloat(uniformProgress, 0)
	u.SetFloat(uniformScale, 1)
	u.SetVec2(uniformTSize, Vec2{256, 256})
	u.SetVec2(uniformCenter, Vec2{0.5, 0.5})
	u.SetFloat(uniformAngle, 1.57)
	return u
}

// NewDistortionPass compiles the distortion program. scale is the initial
// value of the scale uniform.
func NewDistortionPass(scale float64) (*DistortionPass, error) {
	shader, err := compileShader("distortion", distortionShaderSrc)
	if err != nil {
		return nil, err
	}
	p := &DistortionPass{ShaderPass: newShaderPass("distortion", shader, newDistortionUniforms())}
	p.uniforms.SetFloat(uniformScale, scale)
	return p, nil
}

// SetParams writes progress and scale.
func (p *DistortionPass) SetParams(progress, scale float64) {
	p.uniforms.SetFloat(uniformProgress, progress)
	p.uniforms.SetFloat(uniformScale, scale)
}

// Params returns the current uniform values.
func (p *DistortionPass) Params() DistortionParams {
	return DistortionParams{
		Time:     p.uniforms.Float(uniformTime),
		Progress: p.uniforms.Float(uniformProgress),
		Scale:    p.uniforms.Float(uniformScale),
	}
}

// SampleUV evaluates the pass's warp at uv with its current uniforms.
func (p *DistortionPass) SampleUV(uv Vec2) Vec2 {
	return ResampleUV(uv, p.Params())
}
