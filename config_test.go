package warp

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfigIsBasic(t *testing.T) {
	c := DefaultConfig()
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if c.PostProcessing {
		t.Error("basic variant should not post-process")
	}
	assertNear(t, "TimeStep", c.TimeStep, 0.05)
	assertNear(t, "Scale", c.Params.Scale, 0)
	if c.Params.Source != SourceLocal {
		t.Errorf("Source = %q, want local", c.Params.Source)
	}
	if c.BufferPolicy != BufferFixed {
		t.Errorf("BufferPolicy = %v, want fixed", c.BufferPolicy)
	}
}

func TestTransitionConfig(t *testing.T) {
	c := TransitionConfig()
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !c.PostProcessing {
		t.Error("transition variant should post-process")
	}
	assertNear(t, "TimeStep", c.TimeStep, 0.01)
	assertNear(t, "Scale", c.Params.Scale, 1)
	if c.Params.Source != SourceTimeline || !c.Params.Loop {
		t.Errorf("Params = %+v, want looping timeline", c.Params)
	}
}

func TestParseConfigUsesVariantDefaults(t *testing.T) {
	c, err := ParseConfig([]byte(`{"variant": "transition", "width": 800, "bufferPolicy": "follow"}`))
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if c.Width != 800 || c.Height != 720 {
		t.Errorf("size = %dx%d, want 800x720", c.Width, c.Height)
	}
	assertNear(t, "TimeStep", c.TimeStep, 0.01)
	if !c.PostProcessing {
		t.Error("PostProcessing should come from the transition defaults")
	}
	if c.BufferPolicy != BufferFollowSurface {
		t.Errorf("BufferPolicy = %v, want follow", c.BufferPolicy)
	}
}

func TestParseConfigBasicWhenVariantAbsent(t *testing.T) {
	c, err := ParseConfig([]byte(`{"images": ["a.png", "b.png"], "params": {"source": "local", "progress": 0.3}}`))
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if c.Variant != VariantBasic || len(c.Images) != 2 {
		t.Errorf("config = %+v", c)
	}
	assertNear(t, "progress", c.Params.Progress, 0.3)
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name, json, want string
	}{
		{"bad json", `{`, "parse config"},
		{"unknown variant", `{"variant": "fancy"}`, "unknown variant"},
		{"zero width", `{"width": 0}`, "window size"},
		{"negative step", `{"timeStep": -1}`, "timeStep"},
		{"unknown source", `{"params": {"source": "midi"}}`, "unknown params source"},
		{"timeline without keys", `{"params": {"source": "timeline"}}`, "keyframe"},
		{"bad policy", `{"bufferPolicy": "stretch"}`, "buffer policy"},
	}
	for _, tt := range tests {
		_, err := ParseConfig([]byte(tt.json))
		if err == nil {
			t.Errorf("%s: expected error", tt.name)
			continue
		}
		if !strings.Contains(err.Error(), tt.want) {
			t.Errorf("%s: error %q does not mention %q", tt.name, err, tt.want)
		}
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "warp.json")
	if err := os.WriteFile(path, []byte(`{"title": "demo", "gap": 0}`), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if c.Title != "demo" || c.Gap != 0 {
		t.Errorf("config = %+v", c)
	}

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("missing file should fail")
	}
}

func TestConfigNewParamSource(t *testing.T) {
	src, local, tl, err := DefaultConfig().newParamSource()
	if err != nil {
		t.Fatalf("newParamSource: %v", err)
	}
	if local == nil || tl != nil || src != ParamSource(local) {
		t.Error("basic config should use local settings")
	}

	src, local, tl, err = TransitionConfig().newParamSource()
	if err != nil {
		t.Fatalf("newParamSource: %v", err)
	}
	if local != nil || tl == nil || src != ParamSource(tl) {
		t.Error("transition config should use a timeline")
	}
}
