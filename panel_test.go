package warp

import (
	"strings"
	"testing"
)

func TestPanelNudgeProgress(t *testing.T) {
	s := NewLocalSettings(0, 1)
	p := NewSettingsPanel(s)

	p.NudgeProgress(1)
	assertNear(t, "progress", s.Snapshot().Progress, 0.01)
	p.NudgeProgress(-5)
	assertNear(t, "clamped low", s.Snapshot().Progress, 0)
	p.NudgeProgress(500)
	assertNear(t, "clamped high", s.Snapshot().Progress, 1)
}

func TestPanelNudgeSnapsToGrid(t *testing.T) {
	s := NewLocalSettings(0.123, 0.08)
	p := NewSettingsPanel(s)
	p.NudgeProgress(1)
	assertNear(t, "progress", s.Snapshot().Progress, 0.13)
	p.NudgeScale(1)
	if !approxEqual(s.Snapshot().Scale, 0.2, 1e-12) {
		t.Errorf("scale = %v, want 0.2", s.Snapshot().Scale)
	}
	p.NudgeScale(-3)
	if !approxEqual(s.Snapshot().Scale, -0.1, 1e-12) {
		t.Errorf("scale = %v, want -0.1", s.Snapshot().Scale)
	}
}

func TestPanelReadOnlyWithoutSettings(t *testing.T) {
	p := NewSettingsPanel(nil)
	p.NudgeProgress(1) // must not panic
	p.NudgeScale(1)
	if txt := p.text(Params{Progress: 0.5}, 1, true); !strings.Contains(txt, "source: timeline") {
		t.Errorf("text = %q, want timeline source", txt)
	}
}

func TestPanelText(t *testing.T) {
	p := NewSettingsPanel(NewLocalSettings(0, 0))
	txt := p.text(Params{Progress: 0.25, Scale: 1.5}, 3.2, false)
	for _, want := range []string{"progress: 0.25", "scale: 1.50", "time: 3.20 (stopped)", "source: local"} {
		if !strings.Contains(txt, want) {
			t.Errorf("text missing %q:\n%s", want, txt)
		}
	}
}

func TestSnap(t *testing.T) {
	tests := []struct{ v, step, want float64 }{
		{0.134, 0.01, 0.13},
		{0.136, 0.01, 0.14},
		{1.26, 0.1, 1.3},
		{0.7, 0, 0.7},
	}
	for _, tt := range tests {
		if got := snap(tt.v, tt.step); !approxEqual(got, tt.want, 1e-12) {
			t.Errorf("snap(%v, %v) = %v, want %v", tt.v, tt.step, got, tt.want)
		}
	}
}
