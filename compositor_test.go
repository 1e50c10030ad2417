package warp

import (
	"encoding/json"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// recordPass logs its calls and remembers the images it was given.
type recordPass struct {
	name     string
	log      *[]string
	src, dst *ebiten.Image
}

func (p *recordPass) Name() string { return p.name }

func (p *recordPass) Render(src, dst *ebiten.Image) {
	*p.log = append(*p.log, p.name)
	p.src, p.dst = src, dst
}

func newTestCompositor(t *testing.T, policy BufferPolicy, post ...Pass) *Compositor {
	t.Helper()
	scene, err := NewScene(nil, DefaultSceneConfig())
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}
	return NewCompositor(scene, NewCamera(1), NewSurface(32, 32), CompositorConfig{BufferPolicy: policy}, post...)
}

func TestCompositorScenePassFirst(t *testing.T) {
	var log []string
	a := &recordPass{name: "a", log: &log}
	c := newTestCompositor(t, BufferFixed, a)
	passes := c.Passes()
	if len(passes) != 2 || passes[0].Name() != "scene" || passes[1] != Pass(a) {
		t.Fatalf("passes = %v, want [scene a]", passes)
	}
}

func TestCompositorRenderOrderAndChaining(t *testing.T) {
	var log []string
	a := &recordPass{name: "a", log: &log}
	b := &recordPass{name: "b", log: &log}
	c := newTestCompositor(t, BufferFixed, a, b)
	c.Render()

	if len(log) != 2 || log[0] != "a" || log[1] != "b" {
		t.Fatalf("render order = %v, want [a b]", log)
	}
	if a.src == nil || a.src != c.buffers[0] {
		t.Error("first post pass should read the scene pass output")
	}
	if b.src != a.dst {
		t.Error("each pass should read its predecessor's output")
	}
	if b.dst != c.Surface().Image() {
		t.Error("final pass should write to the surface")
	}
	if c.Frames() != 1 {
		t.Errorf("Frames = %d, want 1", c.Frames())
	}
}

func TestCompositorSceneOnlyWritesSurface(t *testing.T) {
	c := newTestCompositor(t, BufferFixed)
	c.Render()
	if c.buffers[0] != nil || c.buffers[1] != nil {
		t.Error("a single-pass chain should not allocate buffers")
	}
}

func TestCompositorBuffersReused(t *testing.T) {
	var log []string
	a := &recordPass{name: "a", log: &log}
	c := newTestCompositor(t, BufferFixed, a)
	c.Render()
	first := a.src
	c.Render()
	if a.src != first {
		t.Error("intermediate buffer should be reused across frames")
	}
}

func TestCompositorInsertRemove(t *testing.T) {
	var log []string
	a := &recordPass{name: "a", log: &log}
	b := &recordPass{name: "b", log: &log}
	x := &recordPass{name: "x", log: &log}
	c := newTestCompositor(t, BufferFixed, a, b)

	c.Insert(1, x)
	names := func() []string {
		var out []string
		for _, p := range c.Passes() {
			out = append(out, p.Name())
		}
		return out
	}
	got := names()
	want := []string{"scene", "x", "a", "b"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("after Insert: %v, want %v", got, want)
		}
	}

	c.Insert(99, &recordPass{name: "tail", log: &log})
	if got := names(); got[len(got)-1] != "tail" {
		t.Errorf("Insert past the end should append: %v", got)
	}

	if !c.Remove("a") {
		t.Error("Remove(a) = false, want true")
	}
	if c.Remove("nope") {
		t.Error("Remove(nope) = true, want false")
	}
	if c.Pass("a") != nil {
		t.Error("a should be gone")
	}
	if c.Pass("b") != Pass(b) {
		t.Error("Pass(b) should find b")
	}
}

func TestCompositorFixedBuffersStretch(t *testing.T) {
	var log []string
	a := &recordPass{name: "a", log: &log}
	c := newTestCompositor(t, BufferFixed, a)
	c.SetSize(64, 48)

	if w, h := c.Surface().Size(); w != 64 || h != 48 {
		t.Errorf("surface = %dx%d, want 64x48", w, h)
	}
	if w, h := c.BufferSize(); w != 32 || h != 32 {
		t.Errorf("buffers = %dx%d, want 32x32", w, h)
	}
	if !c.stretched() {
		t.Fatal("fixed buffers smaller than the surface should stretch")
	}
	c.Render()
	if a.dst == c.Surface().Image() {
		t.Error("stretched chain should render into a buffer first")
	}
	if b := a.dst.Bounds(); b.Dx() != 32 || b.Dy() != 32 {
		t.Errorf("last pass target = %v, want 32x32", b)
	}
}

func TestCompositorFollowBuffersResize(t *testing.T) {
	var log []string
	a := &recordPass{name: "a", log: &log}
	c := newTestCompositor(t, BufferFollowSurface, a)
	c.Render()
	c.SetSize(64, 48)

	if w, h := c.BufferSize(); w != 64 || h != 48 {
		t.Errorf("buffers = %dx%d, want 64x48", w, h)
	}
	if c.stretched() {
		t.Error("follow policy should not stretch")
	}
	c.Render()
	if a.dst != c.Surface().Image() {
		t.Error("final pass should write to the surface")
	}
	if b := a.src.Bounds(); b.Dx() != 64 || b.Dy() != 48 {
		t.Errorf("scene buffer = %v, want 64x48", b)
	}
}

func TestBufferPolicyText(t *testing.T) {
	tests := []struct {
		in   string
		want BufferPolicy
	}{
		{"", BufferFixed},
		{"fixed", BufferFixed},
		{"follow", BufferFollowSurface},
	}
	for _, tt := range tests {
		var p BufferPolicy
		if err := p.UnmarshalText([]byte(tt.in)); err != nil {
			t.Errorf("UnmarshalText(%q): %v", tt.in, err)
			continue
		}
		if p != tt.want {
			t.Errorf("UnmarshalText(%q) = %v, want %v", tt.in, p, tt.want)
		}
	}

	var p BufferPolicy
	if err := p.UnmarshalText([]byte("stretch")); err == nil {
		t.Error("unknown policy should fail")
	}
	if _, err := BufferPolicy(9).MarshalText(); err == nil {
		t.Error("MarshalText of an unknown policy should fail")
	}

	data, err := json.Marshal(struct{ P BufferPolicy }{BufferFollowSurface})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `{"P":"follow"}` {
		t.Errorf("json = %s", data)
	}
}
