package warp

// GradeMatrix is an affine color transform on straight-alpha RGBA. Row i
// holds the coefficients on r, g, b, a followed by the offset of output
// channel i.
type GradeMatrix [4][5]float64

// IdentityGrade leaves colors unchanged.
func IdentityGrade() GradeMatrix {
	return GradeMatrix{
		{1, 0, 0, 0, 0},
		{0, 1, 0, 0, 0},
		{0, 0, 1, 0, 0},
		{0, 0, 0, 1, 0},
	}
}

// Rec. 601 luma weights.
const (
	lumaR = 0.299
	lumaG = 0.587
	lumaB = 0.114
)

// SaturationGrade mixes each channel toward luma. s=1 is unchanged and 0 is
// grayscale.
func SaturationGrade(s float64) GradeMatrix {
	m := IdentityGrade()
	for i := 0; i < 3; i++ {
		m[i][0] = (1 - s) * lumaR
		m[i][1] = (1 - s) * lumaG
		m[i][2] = (1 - s) * lumaB
		m[i][i] += s
	}
	return m
}

// ContrastGrade scales color around mid-gray.
func ContrastGrade(c float64) GradeMatrix {
	m := IdentityGrade()
	for i := 0; i < 3; i++ {
		m[i][i] = c
		m[i][4] = (1 - c) / 2
	}
	return m
}

// BrightnessGrade adds b to every color channel.
func BrightnessGrade(b float64) GradeMatrix {
	m := IdentityGrade()
	for i := 0; i < 3; i++ {
		m[i][4] = b
	}
	return m
}

// Then returns the transform that applies m and then n.
func (m GradeMatrix) Then(n GradeMatrix) GradeMatrix {
	var out GradeMatrix
	for r := 0; r < 4; r++ {
		for c := 0; c < 5; c++ {
			var v float64
			for k := 0; k < 4; k++ {
				v += n[r][k] * m[k][c]
			}
			if c == 4 {
				v += n[r][4]
			}
			out[r][c] = v
		}
	}
	return out
}

// Apply transforms one straight-alpha color and clamps it to [0, 1], as the
// grade program does per pixel.
func (m GradeMatrix) Apply(rgba [4]float64) [4]float64 {
	var out [4]float64
	for r := 0; r < 4; r++ {
		v := m[r][4]
		for k := 0; k < 4; k++ {
			v += m[r][k] * rgba[k]
		}
		out[r] = min(max(v, 0), 1)
	}
	return out
}

// Matrix returns the transform for g: saturation first, then contrast, then
// brightness.
func (g ColorGrade) Matrix() GradeMatrix {
	return SaturationGrade(g.Saturation).
		Then(ContrastGrade(g.Contrast)).
		Then(BrightnessGrade(g.Brightness))
}

// Grade uniform names. Each row is a vec4 of channel coefficients.
const (
	uniformGradeR      = "gradeR"
	uniformGradeG      = "gradeG"
	uniformGradeB      = "gradeB"
	uniformGradeA      = "gradeA"
	uniformGradeOffset = "gradeOffset"
)

var gradeRows = [4]string{uniformGradeR, uniformGradeG, uniformGradeB, uniformGradeA}

// ColorGradePass applies a GradeMatrix to the previous pass's output. The
// matrix lives in its uniform set as four row vectors plus an offset vector.
type ColorGradePass struct {
	*ShaderPass
}

// NewColorGradePass compiles the grade program and loads g's matrix.
func NewColorGradePass(g ColorGrade) (*ColorGradePass, error) {
	shader, err := compileShader("grade", gradeShaderSrc)
	if err != nil {
		return nil, err
	}
	p := &ColorGradePass{ShaderPass: newShaderPass("grade", shader, nil)}
	p.SetMatrix(g.Matrix())
	return p, nil
}

// SetGrade replaces the transform with g's matrix.
func (p *ColorGradePass) SetGrade(g ColorGrade) {
	p.SetMatrix(g.Matrix())
}

// SetMatrix writes m into the uniform set.
func (p *ColorGradePass) SetMatrix(m GradeMatrix) {
	for r, name := range gradeRows {
		p.uniforms.SetVec4(name, m[r][0], m[r][1], m[r][2], m[r][3])
	}
	p.uniforms.SetVec4(uniformGradeOffset, m[0][4], m[1][4], m[2][4], m[3][4])
}

// Matrix reads the transform back from the uniform set.
func (p *ColorGradePass) Matrix() GradeMatrix {
	var m GradeMatrix
	for r, name := range gradeRows {
		u, _ := p.uniforms.Get(name)
		copy(m[r][:4], u.Value[:])
	}
	off, _ := p.uniforms.Get(uniformGradeOffset)
	for r := range m {
		m[r][4] = off.Value[r]
	}
	return m
}
