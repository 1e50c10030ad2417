package warp

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestCameraDefaults(t *testing.T) {
	cam := NewCamera(16.0 / 9.0)
	if cam.FOV != 70 {
		t.Errorf("FOV = %v, want 70", cam.FOV)
	}
	if cam.Near != 0.001 || cam.Far != 1000 {
		t.Errorf("Near/Far = %v/%v, want 0.001/1000", cam.Near, cam.Far)
	}
	if cam.Position != (mgl64.Vec3{0, 0, 2}) {
		t.Errorf("Position = %v, want (0,0,2)", cam.Position)
	}
	assertNear(t, "Aspect", cam.Aspect, 16.0/9.0)
}

func TestCameraNonPositiveAspect(t *testing.T) {
	for _, a := range []float64{0, -2, math.NaN()} {
		cam := NewCamera(a)
		if cam.Aspect != 1 {
			t.Errorf("NewCamera(%v).Aspect = %v, want 1", a, cam.Aspect)
		}
	}
}

func TestCameraProjectOriginIsCenter(t *testing.T) {
	cam := NewCamera(2)
	sx, sy, ok := cam.Project(mgl64.Vec3{}, 200, 100)
	if !ok {
		t.Fatal("origin should be in front of the camera")
	}
	assertNear(t, "sx", sx, 100)
	assertNear(t, "sy", sy, 50)
}

func TestCameraProjectTopEdge(t *testing.T) {
	cam := NewCamera(1)
	// Half the visible height at distance 2 with a 70 degree FOV.
	top := 2 * math.Tan(mgl64.DegToRad(35))
	_, sy, ok := cam.Project(mgl64.Vec3{0, top, 0}, 100, 100)
	if !ok {
		t.Fatal("point should be visible")
	}
	if !approxEqual(sy, 0, 1e-6) {
		t.Errorf("sy = %v, want 0 (top edge)", sy)
	}
}

func TestCameraProjectSymmetric(t *testing.T) {
	cam := NewCamera(1.5)
	l, _, _ := cam.Project(mgl64.Vec3{-0.7, 0, 0}, 300, 200)
	r, _, _ := cam.Project(mgl64.Vec3{0.7, 0, 0}, 300, 200)
	if !approxEqual(l+r, 300, 1e-6) {
		t.Errorf("left+right = %v, want 300", l+r)
	}
}

func TestCameraProjectBehind(t *testing.T) {
	cam := NewCamera(1)
	if _, _, ok := cam.Project(mgl64.Vec3{0, 0, 3}, 100, 100); ok {
		t.Error("point behind the camera should not project")
	}
}

func TestCameraAspectChangeNeedsUpdate(t *testing.T) {
	cam := NewCamera(1)
	before := cam.Projection()
	cam.Aspect = 2
	if cam.Projection() != before {
		t.Error("projection should not change until UpdateProjection")
	}
	cam.UpdateProjection()
	if cam.Projection() == before {
		t.Error("projection should change after UpdateProjection")
	}
	want := mgl64.Perspective(mgl64.DegToRad(70), 2, 0.001, 1000)
	if !cam.Projection().ApproxEqual(want) {
		t.Errorf("Projection = %v, want %v", cam.Projection(), want)
	}
}

func TestCameraViewProjectionCachedUntilDirty(t *testing.T) {
	cam := NewCamera(1)
	vp := cam.ViewProjection()
	cam.Position = mgl64.Vec3{0, 0, 5}
	if cam.ViewProjection() != vp {
		t.Error("view should be cached until MarkDirty")
	}
	cam.MarkDirty()
	if cam.ViewProjection() == vp {
		t.Error("view should rebuild after MarkDirty")
	}
}
