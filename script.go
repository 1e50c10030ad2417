package warp

import (
	"encoding/json"
	"fmt"
)

// scriptStep is a single action in a script.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	Pass   string  `json:"pass,omitempty"`
	Value  float64 `json:"value,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// script is the top-level JSON structure of a script file.
type script struct {
	Steps []scriptStep `json:"steps"`
}

// scriptTarget is what a script drives. Sketch implements it.
type scriptTarget interface {
	SetProgress(v float64)
	SetScale(v float64)
	Play()
	Stop()
	Screenshot(label, pass string)
}

// ScriptRunner sequences parameter edits, play/stop and screenshots across
// host updates, for reproducible captures of the transition.
//
// Actions: "progress" and "scale" (value), "wait" (frames), "play", "stop",
// "screenshot" (label, and optionally the pass to capture; the final output
// by default).
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

var scriptActions = map[string]bool{
	"progress": true, "scale": true, "wait": true,
	"play": true, "stop": true, "screenshot": true,
}

// LoadScript parses a JSON script.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var sc script
	if err := json.Unmarshal(jsonData, &sc); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range sc.Steps {
		if !scriptActions[st.Action] {
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: sc.Steps}, nil
}

// Done reports whether every step has been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// step advances the runner by one host update.
func (r *ScriptRunner) step(t scriptTarget) {
	if r.done {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "progress":
		t.SetProgress(st.Value)
	case "scale":
		t.SetScale(st.Value)
	case "play":
		t.Play()
	case "stop":
		t.Stop()
	case "screenshot":
		t.Screenshot(st.Label, st.Pass)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 {
		r.done = true
	}
}
