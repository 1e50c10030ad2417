package warp

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// UniformKind is the type of a single uniform value.
type UniformKind uint8

const (
	UniformFloat   UniformKind = iota // scalar
	UniformVec2                       // 2-vector
	UniformVec4                       // 4-vector
	UniformTexture                    // image handle bound to a shader source slot
)

// Uniform is one typed shader input.
type Uniform struct {
	Kind    UniformKind
	Value   [4]float64
	Texture *ebiten.Image
}

// Uniforms maps parameter names to typed values. Names use the GLSL-style
// shader spelling ("time", "tSize", "uTexture"); they are exported to Kage
// with the first letter upper-cased ("Time", "TSize").
//
// A canonical set is cloned once per mesh and per pass. Clones share nothing
// but texture handles, which are read-only.
type Uniforms struct {
	names  []string
	values map[string]*Uniform

	// kage is the persistent uniform map handed to Ebitengine. Scalars are
	// rewritten in place each draw; slices point into f32.
	kage map[string]any
	f32  map[string][]float32
}

// NewUniforms creates an empty uniform set.
func NewUniforms() *Uniforms {
	return &Uniforms{values: make(map[string]*Uniform)}
}

func (u *Uniforms) set(name string, v Uniform) {
	if cur, ok := u.values[name]; ok {
		*cur = v
		return
	}
	u.names = append(u.names, name)
	u.values[name] = &v
	u.kage = nil
}

// SetFloat sets a scalar uniform.
func (u *Uniforms) SetFloat(name string, v float64) {
	u.set(name, Uniform{Kind: UniformFloat, Value: [4]float64{v}})
}

// SetVec2 sets a 2-vector uniform.
func (u *Uniforms) SetVec2(name string, v Vec2) {
	u.set(name, Uniform{Kind: UniformVec2, Value: [4]float64{v.X, v.Y}})
}

// SetVec4 sets a 4-vector uniform.
func (u *Uniforms) SetVec4(name string, x, y, z, w float64) {
	u.set(name, Uniform{Kind: UniformVec4, Value: [4]float64{x, y, z, w}})
}

// SetTexture binds an image to a texture uniform. A nil image is allowed and
// samples as the blank placeholder.
func (u *Uniforms) SetTexture(name string, img *ebiten.Image) {
	u.set(name, Uniform{Kind: UniformTexture, Texture: img})
}

// Has reports whether the set exposes a uniform with the given name.
func (u *Uniforms) Has(name string) bool {
	_, ok := u.values[name]
	return ok
}

// Get returns the named uniform.
func (u *Uniforms) Get(name string) (Uniform, bool) {
	v, ok := u.values[name]
	if !ok {
		return Uniform{}, false
	}
	return *v, true
}

// Float returns the scalar value of name, or 0 if it is missing or not a
// scalar.
func (u *Uniforms) Float(name string) float64 {
	v, ok := u.values[name]
	if !ok || v.Kind != UniformFloat {
		return 0
	}
	return v.Value[0]
}

// Vec2 returns the 2-vector value of name.
func (u *Uniforms) Vec2(name string) Vec2 {
	v, ok := u.values[name]
	if !ok || v.Kind != UniformVec2 {
		return Vec2{}
	}
	return Vec2{v.Value[0], v.Value[1]}
}

// Texture returns the image bound to name.
func (u *Uniforms) Texture(name string) *ebiten.Image {
	v, ok := u.values[name]
	if !ok || v.Kind != UniformTexture {
		return nil
	}
	return v.Texture
}

// Names returns uniform names in declaration order. The returned slice MUST
// NOT be mutated.
func (u *Uniforms) Names() []string {
	return u.names
}

// Len returns the number of uniforms in the set.
func (u *Uniforms) Len() int {
	return len(u.names)
}

// Clone returns an independent copy of the set.
func (u *Uniforms) Clone() *Uniforms {
	c := &Uniforms{
		names:  make([]string, len(u.names)),
		values: make(map[string]*Uniform, len(u.values)),
	}
	copy(c.names, u.names)
	for name, v := range u.values {
		cp := *v
		c.values[name] = &cp
	}
	return c
}

// String lists the uniforms for debug output.
func (u *Uniforms) String() string {
	var b strings.Builder
	for i, name := range u.names {
		if i > 0 {
			b.WriteString(" ")
		}
		v := u.values[name]
		switch v.Kind {
		case UniformFloat:
			fmt.Fprintf(&b, "%s=%g", name, v.Value[0])
		case UniformVec2:
			fmt.Fprintf(&b, "%s=(%g,%g)", name, v.Value[0], v.Value[1])
		case UniformVec4:
			fmt.Fprintf(&b, "%s=(%g,%g,%g,%g)", name, v.Value[0], v.Value[1], v.Value[2], v.Value[3])
		case UniformTexture:
			fmt.Fprintf(&b, "%s=<texture>", name)
		}
	}
	return b.String()
}

// kageName converts a uniform name to the exported Kage variable name.
func kageName(name string) string {
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

// kageUniforms returns the Ebitengine uniform map for the non-texture
// uniforms. The map and its float32 slices are reused between calls.
func (u *Uniforms) kageUniforms() map[string]any {
	if u.kage == nil {
		u.kage = make(map[string]any, len(u.names))
		u.f32 = make(map[string][]float32, len(u.names))
	}
	for _, name := range u.names {
		v := u.values[name]
		key := kageName(name)
		switch v.Kind {
		case UniformFloat:
			// Scalar float32 boxing is unavoidable with Ebitengine's uniform API.
			u.kage[key] = float32(v.Value[0])
			delete(u.f32, key)
		case UniformVec2, UniformVec4:
			n := 2
			if v.Kind == UniformVec4 {
				n = 4
			}
			buf := u.f32[key]
			if len(buf) != n {
				buf = make([]float32, n)
				u.f32[key] = buf
				u.kage[key] = buf
			}
			for i := 0; i < n; i++ {
				buf[i] = float32(v.Value[i])
			}
		}
	}
	return u.kage
}
