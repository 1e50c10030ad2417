package warp

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/hajimehoshi/ebiten/v2"
)

// Sketch wires the scene, compositor, driver and resize handler into an
// ebiten.Game. A process runs one Sketch for its whole lifetime; it is
// never torn down.
type Sketch struct {
	cfg Config

	scene      *Scene
	camera     *Camera
	surface    *Surface
	compositor *Compositor
	distortion *DistortionPass
	driver     *Driver
	resize     *ResizeHandler
	frames     FrameQueue

	source   ParamSource
	settings *LocalSettings
	timeline *TimelineSource

	panel  *SettingsPanel
	orbit  *OrbitControl
	script *ScriptRunner

	width, height int
}

// NewSketch builds the pipeline for cfg over already-loaded textures and
// renders the first frame. It fails if cfg is invalid or a shader does not
// compile; nothing is drawn in that case.
func NewSketch(cfg Config, textures []*ebiten.Image) (*Sketch, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Sketch{cfg: cfg, width: cfg.Width, height: cfg.Height}

	scene, err := NewScene(textures, SceneConfig{
		PlaneWidth:  PlaneWidth,
		PlaneHeight: PlaneHeight,
		Gap:         cfg.Gap,
		ClearColor:  cfg.ClearColor,
	})
	if err != nil {
		return nil, fmt.Errorf("new sketch: %w", err)
	}
	s.scene = scene

	var post []Pass
	if cfg.PostProcessing {
		d, err := NewDistortionPass(cfg.Params.Scale)
		if err != nil {
			return nil, fmt.Errorf("new sketch: %w", err)
		}
		s.distortion = d
		post = append(post, d)
	}
	if g := cfg.ColorGrade; g != nil {
		gp, err := NewColorGradePass(*g)
		if err != nil {
			return nil, fmt.Errorf("new sketch: %w", err)
		}
		post = append(post, gp)
	}

	s.source, s.settings, s.timeline, err = cfg.newParamSource()
	if err != nil {
		return nil, fmt.Errorf("new sketch: %w", err)
	}

	s.surface = NewSurface(cfg.Width, cfg.Height)
	s.camera = NewCamera(float64(cfg.Width) / float64(cfg.Height))
	s.compositor = NewCompositor(scene, s.camera, s.surface, CompositorConfig{
		BufferPolicy:  cfg.BufferPolicy,
		Debug:         cfg.Debug,
		ScreenshotDir: cfg.ScreenshotDir,
	}, post...)
	s.resize = NewResizeHandler(s.compositor, s.camera)
	s.resize.Debug = cfg.Debug
	s.resize.Handle(cfg.Width, cfg.Height)

	s.driver = NewDriver(scene, s.compositor, s.source, &s.frames, cfg.TimeStep)
	if cfg.ShowPanel {
		s.panel = NewSettingsPanel(s.settings)
	}
	if cfg.Orbit {
		s.orbit = NewOrbitControl(s.camera)
	}

	s.driver.Play()
	return s, nil
}

// SetScript attaches a script runner, stepped once per Update.
func (s *Sketch) SetScript(r *ScriptRunner) {
	s.script = r
}

// Update advances the timeline, the panel, the orbit control and the
// script. Rendering happens in Draw through the frame queue.
func (s *Sketch) Update() error {
	if s.timeline != nil {
		s.timeline.Update(1.0 / float64(ebiten.TPS()))
	}
	if s.panel != nil {
		s.panel.Update(s)
	}
	if s.orbit != nil {
		s.orbit.Update(s.height)
	}
	if s.script != nil {
		s.script.step(s)
	}
	return nil
}

// Draw runs the frame callbacks requested since the last display frame,
// then presents the surface. A screenshot requested while stopped re-runs
// the chain once with the frozen uniforms so it has a frame to capture.
func (s *Sketch) Draw(screen *ebiten.Image) {
	s.frames.Flush()
	if s.compositor.PendingScreenshots() > 0 && !s.driver.Playing() {
		s.compositor.Render()
	}
	s.surface.Present(screen)
	s.compositor.FlushScreenshots()
	if s.panel != nil {
		s.panel.Draw(screen, s.driver.LastParams(), s.driver.Time(), s.driver.Playing())
	}
}

// Layout forwards container size changes to the resize handler. A
// degenerate size is ignored and the last good size is kept.
func (s *Sketch) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != s.width || outsideHeight != s.height {
		if s.resize.Handle(outsideWidth, outsideHeight) {
			s.width, s.height = outsideWidth, outsideHeight
		}
	}
	return s.width, s.height
}

// SetProgress edits the local settings. No-op for a timeline source.
func (s *Sketch) SetProgress(v float64) {
	if s.settings != nil {
		s.settings.SetProgress(v)
	}
}

// SetScale edits the local settings. No-op for a timeline source.
func (s *Sketch) SetScale(v float64) {
	if s.settings != nil {
		s.settings.SetScale(v)
	}
}

// Play resumes the animation loop.
func (s *Sketch) Play() { s.driver.Play() }

// Stop pauses the animation loop.
func (s *Sketch) Stop() { s.driver.Stop() }

// Playing reports whether the animation loop is running.
func (s *Sketch) Playing() bool { return s.driver.Playing() }

// Screenshot queues a capture of pass's output, or of the final output for
// OutputPass.
func (s *Sketch) Screenshot(label, pass string) { s.compositor.Screenshot(label, pass) }

// Scene returns the composed scene.
func (s *Sketch) Scene() *Scene { return s.scene }

// Orbit returns the orbit control, or nil when disabled.
func (s *Sketch) Orbit() *OrbitControl { return s.orbit }

// Camera returns the camera.
func (s *Sketch) Camera() *Camera { return s.camera }

// Compositor returns the pass chain.
func (s *Sketch) Compositor() *Compositor { return s.compositor }

// Distortion returns the distortion pass, or nil without post-processing.
func (s *Sketch) Distortion() *DistortionPass { return s.distortion }

// Driver returns the animation driver.
func (s *Sketch) Driver() *Driver { return s.driver }

// Surface returns the display surface.
func (s *Sketch) Surface() *Surface { return s.surface }

// Source returns the parameter source.
func (s *Sketch) Source() ParamSource { return s.source }

// running is the process's single sketch.
var running *Sketch

// Run loads the configured textures from assets, builds the sketch and runs
// the Ebitengine loop until the window closes. Only one sketch may run per
// process.
func Run(cfg Config, assets fs.FS) error {
	if running != nil {
		return errors.New("warp: a sketch is already running")
	}
	textures := LoadTextures(assets, cfg.Images, cfg.MaxTextureSize)
	s, err := NewSketch(cfg, textures)
	if err != nil {
		return err
	}
	if cfg.Script != "" {
		data, err := fs.ReadFile(assets, cfg.Script)
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		r, err := LoadScript(data)
		if err != nil {
			return err
		}
		s.SetScript(r)
	}
	running = s

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(s)
}
