package warp

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// --- Kage shader sources ---
// All shaders use //kage:unit pixels. Texture coordinates are converted to
// the [0,1] UV space of the source image inside the shader; V is flipped so
// that v=0 is the bottom edge, the coordinate space of the distortion
// formula.

const materialShaderSrc = `//kage:unit pixels
package main

var Time float
var Resolution vec4
var UvRate1 vec2

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	origin := imageSrc0Origin()
	size := imageSrc0Size()
	uv := (src - origin) / size
	uv = (uv-vec2(0.5))*UvRate1 + vec2(0.5)
	return imageSrc0At(origin+uv*size) * color
}
`

// distortionShaderSrc is generated from wobbleStages so the Kage program and
// Wobble share a single stage table.
var distortionShaderSrc = buildDistortionShader(wobbleStages[:])

const distortionShaderHead = `//kage:unit pixels
package main

var Time float
var Progress float
var Scale float
var Center vec2
var Angle float
var TSize vec2

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	origin := imageSrc0Origin()
	size := imageSrc0Size()
	uv := (src - origin) / size
	uv.y = 1 - uv.y

	p := 2*uv - vec2(1)
`

const distortionShaderTail = `
	nuv := vec2(mix(uv.x, length(p), Progress), mix(uv.y, 0, Progress))
	nuv.y = 1 - nuv.y

	// Clamp to edge.
	pos := clamp(origin+nuv*size, origin+vec2(0.5), origin+size-vec2(0.5))
	return imageSrc0UnsafeAt(pos)
}
`

func buildDistortionShader(stages []wobbleStage) string {
	var b strings.Builder
	b.WriteString(distortionShaderHead)
	for _, st := range stages {
		b.WriteString(wobbleStageKage(st))
	}
	b.WriteString(distortionShaderTail)
	return b.String()
}

// wobbleStageKage renders one stage as a Kage statement.
func wobbleStageKage(st wobbleStage) string {
	return fmt.Sprintf("\tp += %s * cos(Scale*%s*p.yx+%s*Time+vec2(%s, %s))\n",
		kageFloat(st.amp), kageFloat(st.freq), kageFloat(st.speed),
		kageFloat(st.phase.X), kageFloat(st.phase.Y))
}

// kageFloat formats v as a Kage float literal; whole numbers keep a ".0".
func kageFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// gradeShaderSrc applies an affine color transform in straight alpha.
const gradeShaderSrc = `//kage:unit pixels
package main

var GradeR vec4
var GradeG vec4
var GradeB vec4
var GradeA vec4
var GradeOffset vec4

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	c := imageSrc0At(src)
	if c.a > 0 {
		c.rgb /= c.a
	}
	g := vec4(dot(GradeR, c), dot(GradeG, c), dot(GradeB, c), dot(GradeA, c)) + GradeOffset
	g = clamp(g, 0, 1)
	return vec4(g.rgb*g.a, g.a)
}
`

// --- Shader cache (no sync.Once, warp is single-threaded) ---

var shaderCache = map[string]*ebiten.Shader{}

// compileShader compiles src once per name. Unlike per-frame paths, a
// compile failure is returned so that pipeline construction can fail before
// the first frame is drawn.
func compileShader(name, src string) (*ebiten.Shader, error) {
	if s, ok := shaderCache[name]; ok {
		return s, nil
	}
	s, err := ebiten.NewShader([]byte(src))
	if err != nil {
		return nil, fmt.Errorf("compile %s shader: %w", name, err)
	}
	shaderCache[name] = s
	return s, nil
}
