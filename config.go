package warp

import (
	"encoding/json"
	"fmt"
	"os"
)

// Parameter source kinds.
const (
	SourceLocal    = "local"
	SourceTimeline = "timeline"
)

// Pipeline variants selectable from a config file.
const (
	VariantBasic      = "basic"
	VariantTransition = "transition"
)

// ParamsConfig selects and seeds the external parameter source.
type ParamsConfig struct {
	// Source is SourceLocal (in-memory settings, editable from the panel)
	// or SourceTimeline (keyframed, pushes change notifications).
	Source   string  `json:"source"`
	Progress float64 `json:"progress"`
	Scale    float64 `json:"scale"`

	Keyframes []Keyframe `json:"keyframes,omitempty"`
	Loop      bool       `json:"loop"`
}

// ColorGrade is a final color adjustment. Brightness is an offset in
// [-1, 1]; Contrast and Saturation are gains where 1 is unchanged.
type ColorGrade struct {
	Brightness float64 `json:"brightness"`
	Contrast   float64 `json:"contrast"`
	Saturation float64 `json:"saturation"`
}

// Config describes one running sketch. The zero value is not usable; start
// from DefaultConfig or TransitionConfig.
type Config struct {
	Variant string `json:"variant"`
	Title   string `json:"title"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`

	// Images are texture paths, in row order, relative to the asset FS.
	Images         []string `json:"images"`
	MaxTextureSize int      `json:"maxTextureSize"`

	// TimeStep is added to the shader time accumulator every frame.
	TimeStep float64 `json:"timeStep"`
	// PostProcessing appends the distortion pass after the scene pass.
	PostProcessing bool         `json:"postProcessing"`
	BufferPolicy   BufferPolicy `json:"bufferPolicy"`
	// ColorGrade, when set, appends a grade pass at the end of the chain.
	ColorGrade *ColorGrade `json:"colorGrade,omitempty"`

	Gap        float64 `json:"gap"`
	ClearColor Color   `json:"clearColor"`

	Params ParamsConfig `json:"params"`

	Debug     bool `json:"debug"`
	ShowPanel bool `json:"showPanel"`
	// Orbit lets the mouse orbit and dolly the camera around the row.
	Orbit         bool   `json:"orbit"`
	ScreenshotDir string `json:"screenshotDir"`
	// Script is an optional path to a JSON step script run at startup.
	Script string `json:"script,omitempty"`
}

// DefaultConfig returns the basic variant: no post-processing, a 0.05 time
// step, and local settings with scale 0.
func DefaultConfig() Config {
	return Config{
		Variant:        VariantBasic,
		Title:          "warp",
		Width:          1280,
		Height:         720,
		MaxTextureSize: DefaultMaxTextureSize,
		TimeStep:       BasicTimeStep,
		BufferPolicy:   BufferFixed,
		Gap:            DefaultGap,
		ClearColor:     DefaultClearColor,
		Params:         ParamsConfig{Source: SourceLocal, Progress: 0, Scale: 0},
		ShowPanel:      true,
		Orbit:          true,
		ScreenshotDir:  "screenshots",
	}
}

// TransitionConfig returns the post-processing variant: the distortion pass,
// a 0.01 time step, and a looping timeline with scale 1.
func TransitionConfig() Config {
	c := DefaultConfig()
	c.Variant = VariantTransition
	c.TimeStep = TransitionTimeStep
	c.PostProcessing = true
	c.Params = ParamsConfig{
		Source: SourceTimeline,
		Scale:  1,
		Keyframes: []Keyframe{
			{At: 0, Progress: 0, Scale: 1, Ease: "inOutSine"},
			{At: 2, Progress: 1, Scale: 1, Ease: "inOutSine"},
			{At: 4, Progress: 0, Scale: 1},
		},
		Loop: true,
	}
	return c
}

// ParseConfig decodes JSON over the defaults of the variant it names
// (basic when absent) and validates the result.
func ParseConfig(data []byte) (Config, error) {
	var head struct {
		Variant string `json:"variant"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	var c Config
	switch head.Variant {
	case "", VariantBasic:
		c = DefaultConfig()
	case VariantTransition:
		c = TransitionConfig()
	default:
		return Config{}, fmt.Errorf("parse config: unknown variant %q", head.Variant)
	}
	if err := json.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// LoadConfig reads and parses a JSON config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return ParseConfig(data)
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("config: window size %dx%d must be positive", c.Width, c.Height)
	}
	if c.TimeStep < 0 {
		return fmt.Errorf("config: timeStep %g must not be negative", c.TimeStep)
	}
	switch c.Params.Source {
	case SourceLocal:
	case SourceTimeline:
		if len(c.Params.Keyframes) == 0 {
			return fmt.Errorf("config: timeline source needs at least one keyframe")
		}
	default:
		return fmt.Errorf("config: unknown params source %q", c.Params.Source)
	}
	return nil
}

// newParamSource builds the configured parameter source. The local settings
// are returned separately so the panel can edit them; they are nil for a
// timeline source.
func (c Config) newParamSource() (ParamSource, *LocalSettings, *TimelineSource, error) {
	switch c.Params.Source {
	case SourceTimeline:
		tl, err := NewTimelineSource(c.Params.Keyframes, c.Params.Loop)
		if err != nil {
			return nil, nil, nil, err
		}
		return tl, nil, tl, nil
	default:
		ls := NewLocalSettings(c.Params.Progress, c.Params.Scale)
		return ls, ls, nil, nil
	}
}
