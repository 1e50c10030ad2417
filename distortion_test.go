package warp

import (
	"math"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// refWobble is the four-stage perturbation written out stage by stage.
func refWobble(u, v, time, scale float64) (float64, float64) {
	x, y := 2*u-1, 2*v-1
	x, y = x+0.1*math.Cos(scale*2*y+time+1.2), y+0.1*math.Cos(scale*2*x+time+3.4)
	x, y = x+0.1*math.Cos(scale*3.7*y+1.5*time+2.2), y+0.1*math.Cos(scale*3.7*x+1.5*time+3.4)
	x, y = x+0.1*math.Cos(scale*5*y+2.6*time+4.2), y+0.1*math.Cos(scale*5*x+2.6*time+1.4)
	x, y = x+0.3*math.Cos(scale*7*y+3.6*time+10.2), y+0.3*math.Cos(scale*7*x+3.6*time+3.4)
	return x, y
}

func refResample(u, v, time, progress, scale float64) (float64, float64) {
	x, y := refWobble(u, v, time, scale)
	l := math.Sqrt(x*x + y*y)
	return u*(1-progress) + l*progress, v * (1 - progress)
}

func TestWobbleMatchesReference(t *testing.T) {
	cases := []struct{ u, v, time, scale float64 }{
		{0.5, 0.5, 0, 1},
		{0.25, 0.75, 1, 1},
		{0, 1, 3.7, 0.5},
		{1, 0, 12.3, 2},
	}
	for _, c := range cases {
		got := Wobble(Vec2{c.u, c.v}, c.time, c.scale)
		wx, wy := refWobble(c.u, c.v, c.time, c.scale)
		if !approxEqual(got.X, wx, 1e-12) || !approxEqual(got.Y, wy, 1e-12) {
			t.Errorf("Wobble(%v,%v,t=%v,s=%v) = %v, want (%v,%v)", c.u, c.v, c.time, c.scale, got, wx, wy)
		}
	}
}

func TestWobbleScaleZeroIsSpatiallyUniform(t *testing.T) {
	// With scale 0 every stage adds the same offset everywhere.
	a := Wobble(Vec2{0.1, 0.2}, 2, 0)
	b := Wobble(Vec2{0.7, 0.9}, 2, 0)
	assertNear(t, "dx", (a.X-(2*0.1-1))-(b.X-(2*0.7-1)), 0)
	assertNear(t, "dy", (a.Y-(2*0.2-1))-(b.Y-(2*0.9-1)), 0)
}

func TestResampleUVProgressZeroIsIdentity(t *testing.T) {
	for _, uv := range []Vec2{{0, 0}, {0.3, 0.8}, {1, 1}} {
		for _, tm := range []float64{0, 1.5, 100} {
			got := ResampleUV(uv, DistortionParams{Time: tm, Progress: 0, Scale: 3})
			if got != uv {
				t.Errorf("ResampleUV(%v, t=%v, progress 0) = %v, want identity", uv, tm, got)
			}
		}
	}
}

func TestResampleUVProgressOne(t *testing.T) {
	uv := Vec2{0.4, 0.6}
	got := ResampleUV(uv, DistortionParams{Time: 2, Progress: 1, Scale: 1})
	x, y := refWobble(uv.X, uv.Y, 2, 1)
	assertNear(t, "u", got.X, math.Hypot(x, y))
	assertNear(t, "v", got.Y, 0)
}

func TestDistortionPassDefaults(t *testing.T) {
	p, err := NewDistortionPass(1)
	if err != nil {
		t.Fatalf("NewDistortionPass: %v", err)
	}
	if p.Name() != "distortion" {
		t.Errorf("Name = %q, want distortion", p.Name())
	}
	u := p.Uniforms()
	assertNear(t, "time", u.Float(uniformTime), 0)
	assertNear(t, "progress", u.Float(uniformProgress), 0)
	assertNear(t, "scale", u.Float(uniformScale), 1)
	assertNear(t, "angle", u.Float(uniformAngle), 1.57)
	if u.Vec2(uniformTSize) != (Vec2{256, 256}) {
		t.Errorf("tSize = %v, want {256 256}", u.Vec2(uniformTSize))
	}
	if u.Vec2(uniformCenter) != (Vec2{0.5, 0.5}) {
		t.Errorf("center = %v, want {0.5 0.5}", u.Vec2(uniformCenter))
	}
}

func TestDistortionPassInstancesIndependent(t *testing.T) {
	a, err := NewDistortionPass(1)
	if err != nil {
		t.Fatalf("NewDistortionPass: %v", err)
	}
	b, err := NewDistortionPass(2)
	if err != nil {
		t.Fatalf("NewDistortionPass: %v", err)
	}
	a.SetParams(0.7, 3)
	assertNear(t, "b progress", b.Params().Progress, 0)
	assertNear(t, "b scale", b.Params().Scale, 2)
}

func TestDistortionPassSampleUV(t *testing.T) {
	p, err := NewDistortionPass(1)
	if err != nil {
		t.Fatalf("NewDistortionPass: %v", err)
	}
	p.Uniforms().SetFloat(uniformTime, 0.75)
	p.SetParams(0.3, 1.2)
	got := p.SampleUV(Vec2{0.2, 0.9})
	wx, wy := refResample(0.2, 0.9, 0.75, 0.3, 1.2)
	if !approxEqual(got.X, wx, 1e-12) || !approxEqual(got.Y, wy, 1e-12) {
		t.Errorf("SampleUV = %v, want (%v,%v)", got, wx, wy)
	}
}

// TestDistortionEndToEnd runs four planes through the full chain for twenty
// ticks at step 0.05 with progress 0.5 and scale 1.
func TestDistortionEndToEnd(t *testing.T) {
	scene, err := NewScene(make([]*ebiten.Image, 4), DefaultSceneConfig())
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}
	cam := NewCamera(1)
	surface := NewSurface(32, 32)
	dist, err := NewDistortionPass(1)
	if err != nil {
		t.Fatalf("NewDistortionPass: %v", err)
	}
	comp := NewCompositor(scene, cam, surface, CompositorConfig{}, dist)
	settings := NewLocalSettings(0.5, 1)
	var frames FrameQueue
	d := NewDriver(scene, comp, settings, &frames, BasicTimeStep)

	d.Play()
	for d.Ticks() < 20 {
		if frames.Flush() == 0 {
			t.Fatal("driver stopped requesting frames")
		}
	}

	assertNear(t, "time", d.Time(), 1.0)
	if comp.Frames() != 20 {
		t.Errorf("compositor frames = %d, want 20", comp.Frames())
	}
	for i, m := range scene.Meshes() {
		if !approxEqual(m.Uniforms().Float(uniformTime), 1.0, epsilon) {
			t.Errorf("mesh %d time = %v, want 1", i, m.Uniforms().Float(uniformTime))
		}
		assertNear(t, "mesh Y", m.Y, -0.5)
		assertNear(t, "mesh rotation", m.RotationZ, math.Pi/4)
	}
	pp := dist.Params()
	assertNear(t, "pass time", pp.Time, 1.0)
	assertNear(t, "pass progress", pp.Progress, 0.5)
	assertNear(t, "pass scale", pp.Scale, 1)

	for _, uv := range []Vec2{{0.5, 0.5}, {0.1, 0.9}, {0.8, 0.3}} {
		got := dist.SampleUV(uv)
		wx, wy := refResample(uv.X, uv.Y, 1.0, 0.5, 1)
		if !approxEqual(got.X, wx, 1e-9) || !approxEqual(got.Y, wy, 1e-9) {
			t.Errorf("SampleUV(%v) = %v, want (%v,%v)", uv, got, wx, wy)
		}
	}
}
