package warp

import (
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// panelTarget is what the panel's keys act on. Sketch implements it.
type panelTarget interface {
	scriptTarget
	Playing() bool
}

// Key repeat timing for held arrow keys, in ticks.
const (
	repeatDelay    = 20
	repeatInterval = 3
)

// SettingsPanel is the debug panel: a text overlay of the current values
// and keyboard editing of the local settings.
//
//	Left/Right  progress -/+ ProgressStep
//	Down/Up     scale -/+ ScaleStep
//	Space       play / stop
//	P           screenshot of the output
//	O           screenshot of the scene pass, before post-processing
type SettingsPanel struct {
	ProgressStep float64
	ScaleStep    float64
	X, Y         int

	settings *LocalSettings
}

// NewSettingsPanel creates a panel. settings may be nil when the values come
// from a timeline; the panel is then read-only.
func NewSettingsPanel(settings *LocalSettings) *SettingsPanel {
	return &SettingsPanel{
		ProgressStep: 0.01,
		ScaleStep:    0.1,
		X:            8,
		Y:            8,
		settings:     settings,
	}
}

// NudgeProgress moves progress by n steps, snapped to the step grid and
// clamped to [0, 1].
func (p *SettingsPanel) NudgeProgress(n int) {
	if p.settings == nil || n == 0 {
		return
	}
	v := p.settings.Snapshot().Progress + float64(n)*p.ProgressStep
	p.settings.SetProgress(snap(v, p.ProgressStep))
}

// NudgeScale moves scale by n steps, snapped to the step grid.
func (p *SettingsPanel) NudgeScale(n int) {
	if p.settings == nil || n == 0 {
		return
	}
	v := p.settings.Snapshot().Scale + float64(n)*p.ScaleStep
	p.settings.SetScale(snap(v, p.ScaleStep))
}

func snap(v, step float64) float64 {
	if step <= 0 {
		return v
	}
	return math.Round(v/step) * step
}

// repeating reports whether key fires this tick: on press, then every
// repeatInterval ticks after repeatDelay.
func repeating(key ebiten.Key) bool {
	d := inpututil.KeyPressDuration(key)
	if d == 1 {
		return true
	}
	return d >= repeatDelay && (d-repeatDelay)%repeatInterval == 0
}

// Update polls the keyboard.
func (p *SettingsPanel) Update(t panelTarget) {
	if repeating(ebiten.KeyArrowRight) {
		p.NudgeProgress(1)
	}
	if repeating(ebiten.KeyArrowLeft) {
		p.NudgeProgress(-1)
	}
	if repeating(ebiten.KeyArrowUp) {
		p.NudgeScale(1)
	}
	if repeating(ebiten.KeyArrowDown) {
		p.NudgeScale(-1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if t.Playing() {
			t.Stop()
		} else {
			t.Play()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		t.Screenshot("panel", OutputPass)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyO) {
		t.Screenshot("panel", "scene")
	}
}

// text formats the overlay.
func (p *SettingsPanel) text(params Params, time float64, playing bool) string {
	state := "playing"
	if !playing {
		state = "stopped"
	}
	mode := "local"
	if p.settings == nil {
		mode = "timeline"
	}
	return fmt.Sprintf("progress: %.2f\nscale: %.2f\ntime: %.2f (%s)\nsource: %s\nFPS: %.1f  TPS: %.1f",
		params.Progress, params.Scale, time, state, mode, ebiten.ActualFPS(), ebiten.ActualTPS())
}

// Draw prints the overlay onto screen.
func (p *SettingsPanel) Draw(screen *ebiten.Image, params Params, time float64, playing bool) {
	ebitenutil.DebugPrintAt(screen, p.text(params, time, playing), p.X, p.Y)
}
