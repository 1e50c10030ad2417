package warp

import (
	"fmt"
	"image"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// BufferPolicy decides what happens to the compositor's intermediate
// buffers when the surface is resized.
type BufferPolicy uint8

const (
	// BufferFixed keeps the buffers at the size they had when the compositor
	// was built. The camera and surface still follow the container, so after
	// a resize the chain renders at the old resolution and the result is
	// stretched onto the surface.
	BufferFixed BufferPolicy = iota
	// BufferFollowSurface reallocates the buffers to the new surface size.
	BufferFollowSurface
)

// String returns the config spelling of the policy.
func (p BufferPolicy) String() string {
	switch p {
	case BufferFixed:
		return "fixed"
	case BufferFollowSurface:
		return "follow"
	default:
		return fmt.Sprintf("BufferPolicy(%d)", uint8(p))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p BufferPolicy) MarshalText() ([]byte, error) {
	switch p {
	case BufferFixed, BufferFollowSurface:
		return []byte(p.String()), nil
	}
	return nil, fmt.Errorf("unknown buffer policy %d", uint8(p))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *BufferPolicy) UnmarshalText(text []byte) error {
	switch string(text) {
	case "", "fixed":
		*p = BufferFixed
	case "follow":
		*p = BufferFollowSurface
	default:
		return fmt.Errorf("unknown buffer policy %q", text)
	}
	return nil
}

// CompositorConfig configures a Compositor.
type CompositorConfig struct {
	BufferPolicy BufferPolicy
	// Debug logs per-pass timings to stderr every frame.
	Debug bool
	// ScreenshotDir is where captures are written. Defaults to
	// "screenshots".
	ScreenshotDir string
}

// Compositor runs an ordered chain of passes each frame. The first pass is
// always the scene pass; post-processing passes follow in declaration order.
// Pass k reads pass k-1's output; the final pass writes to the surface.
type Compositor struct {
	passes  []Pass
	surface *Surface
	policy  BufferPolicy
	debug   bool

	bufW, bufH int
	buffers    [2]*ebiten.Image
	pool       bufferPool

	frames uint64
	stats  debugStats

	shotDir   string
	frameInfo FrameInfo
	requests  []captureRequest
	captures  []capture
	read      func(*ebiten.Image) *image.NRGBA
}

// NewCompositor builds the chain [scene pass, post...]. An empty post list
// renders the scene straight to the surface. Intermediate buffers are sized
// to the surface as it is now.
func NewCompositor(scene *Scene, camera *Camera, surface *Surface, cfg CompositorConfig, post ...Pass) *Compositor {
	c := &Compositor{
		passes:  make([]Pass, 0, 1+len(post)),
		surface: surface,
		policy:  cfg.BufferPolicy,
		debug:   cfg.Debug,
		shotDir: cfg.ScreenshotDir,
		read:    readNRGBA,
	}
	if c.shotDir == "" {
		c.shotDir = "screenshots"
	}
	c.bufW, c.bufH = surface.Size()
	c.passes = append(c.passes, NewScenePass(scene, camera))
	c.passes = append(c.passes, post...)
	return c
}

// Passes returns the chain in execution order. The returned slice MUST NOT
// be mutated.
func (c *Compositor) Passes() []Pass {
	return c.passes
}

// Insert places p at index i of the chain, clamped to [0, len].
func (c *Compositor) Insert(i int, p Pass) {
	i = max(0, min(i, len(c.passes)))
	c.passes = append(c.passes, nil)
	copy(c.passes[i+1:], c.passes[i:])
	c.passes[i] = p
}

// Remove deletes the first pass with the given name. Reports whether a pass
// was removed.
func (c *Compositor) Remove(name string) bool {
	for i, p := range c.passes {
		if p.Name() == name {
			c.passes = append(c.passes[:i], c.passes[i+1:]...)
			return true
		}
	}
	return false
}

// Pass returns the first pass with the given name, or nil.
func (c *Compositor) Pass(name string) Pass {
	for _, p := range c.passes {
		if p.Name() == name {
			return p
		}
	}
	return nil
}

// Surface returns the display surface.
func (c *Compositor) Surface() *Surface {
	return c.surface
}

// BufferSize returns the size intermediate buffers are allocated at.
func (c *Compositor) BufferSize() (w, h int) {
	return c.bufW, c.bufH
}

// SetDebug enables or disables per-frame timing output.
func (c *Compositor) SetDebug(enabled bool) {
	c.debug = enabled
}

// SetSize resizes the surface. Under BufferFollowSurface the intermediate
// buffers follow; under BufferFixed they keep their construction size.
func (c *Compositor) SetSize(w, h int) {
	c.surface.SetSize(w, h)
	if c.policy != BufferFollowSurface {
		return
	}
	w, h = c.surface.Size()
	if w == c.bufW && h == c.bufH {
		return
	}
	for i, b := range c.buffers {
		if b != nil {
			c.pool.Release(b)
			c.buffers[i] = nil
		}
	}
	c.pool.Purge()
	c.bufW, c.bufH = w, h
}

// buffer returns intermediate buffer i, allocating it on first use.
func (c *Compositor) buffer(i int) *ebiten.Image {
	if c.buffers[i] == nil {
		c.buffers[i] = c.pool.Acquire(c.bufW, c.bufH)
	}
	return c.buffers[i]
}

// stretched reports whether the chain's output must be scaled onto the
// surface because the buffers no longer match it.
func (c *Compositor) stretched() bool {
	if len(c.passes) < 2 {
		return false
	}
	w, h := c.surface.Size()
	return w != c.bufW || h != c.bufH
}

// Render executes every pass in order. Uniform writes for the frame must be
// complete before it is called. Queued screenshots are taken as the passes
// they name finish.
func (c *Compositor) Render() {
	n := len(c.passes)
	if n == 0 {
		return
	}

	var t0 time.Time
	if c.debug {
		c.stats = debugStats{passTimes: c.stats.passTimes[:0]}
	}

	stretch := c.stretched()
	var src *ebiten.Image
	for k, p := range c.passes {
		var dst *ebiten.Image
		if k == n-1 && !stretch {
			dst = c.surface.Image()
		} else {
			dst = c.buffer(k % 2)
		}
		dst.Clear()

		if c.debug {
			t0 = time.Now()
		}
		p.Render(src, dst)
		if c.debug {
			c.stats.passTimes = append(c.stats.passTimes, passTime{name: p.Name(), d: time.Since(t0)})
		}
		c.grab(p.Name(), dst)
		src = dst
	}

	if stretch {
		surf := c.surface.Image()
		surf.Clear()
		drawStretched(surf, src)
	}
	c.grab(OutputPass, c.surface.Image())
	c.dropUnmatched()

	c.frames++
	if c.debug {
		c.stats.frame = c.frames
		c.stats.stretched = stretch
		debugLogFrame(c.stats)
	}
}

// Frames returns the number of completed Render calls.
func (c *Compositor) Frames() uint64 {
	return c.frames
}
