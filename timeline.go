package warp

import (
	"fmt"
	"sort"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Keyframe pins the parameter values at a point on the timeline.
type Keyframe struct {
	// At is the keyframe time in seconds from the start of the timeline.
	At       float64 `json:"at"`
	Progress float64 `json:"progress"`
	Scale    float64 `json:"scale"`
	// Ease names the easing used from this keyframe to the next
	// ("linear", "inOutQuad", "inOutCubic", "inOutSine", "outCubic").
	// Empty means linear.
	Ease string `json:"ease,omitempty"`
}

var easings = map[string]ease.TweenFunc{
	"":           ease.Linear,
	"linear":     ease.Linear,
	"inQuad":     ease.InQuad,
	"outQuad":    ease.OutQuad,
	"inOutQuad":  ease.InOutQuad,
	"inCubic":    ease.InCubic,
	"outCubic":   ease.OutCubic,
	"inOutCubic": ease.InOutCubic,
	"inSine":     ease.InSine,
	"outSine":    ease.OutSine,
	"inOutSine":  ease.InOutSine,
}

// TimelineSource is a keyframed parameter source advanced by the host
// update loop. It pushes a notification whenever Update changes the values.
type TimelineSource struct {
	loop    bool
	keys    []Keyframe
	easings []ease.TweenFunc
	seg     int
	segTime float64
	tweens  [2]*gween.Tween
	params  Params
	done    bool

	listeners listeners
}

// NewTimelineSource validates and sorts the keyframes. With loop set the
// timeline restarts from the first keyframe after the last. Unknown easing
// names are an error.
func NewTimelineSource(keys []Keyframe, loop bool) (*TimelineSource, error) {
	sorted := make([]Keyframe, len(keys))
	copy(sorted, keys)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].At < sorted[j].At })

	fns := make([]ease.TweenFunc, len(sorted))
	for i, k := range sorted {
		fn, ok := easings[k.Ease]
		if !ok {
			return nil, fmt.Errorf("timeline keyframe %d: unknown ease %q", i, k.Ease)
		}
		fns[i] = fn
	}

	if loop && len(sorted) > 1 && sorted[len(sorted)-1].At <= sorted[0].At {
		return nil, fmt.Errorf("timeline: looping timeline has zero length")
	}

	t := &TimelineSource{loop: loop, keys: sorted, easings: fns}
	t.Rewind()
	return t, nil
}

// Rewind moves the timeline back to its first keyframe.
func (t *TimelineSource) Rewind() {
	t.seg = 0
	t.segTime = 0
	t.done = false
	if len(t.keys) > 0 {
		t.params = Params{Progress: t.keys[0].Progress, Scale: t.keys[0].Scale}
	}
	t.startSegment()
}

// startSegment builds the tweens from keyframe seg to seg+1.
func (t *TimelineSource) startSegment() {
	if t.seg+1 >= len(t.keys) {
		t.tweens = [2]*gween.Tween{}
		t.done = true
		return
	}
	from, to := t.keys[t.seg], t.keys[t.seg+1]
	d := float32(to.At - from.At)
	fn := t.easings[t.seg]
	t.tweens[0] = gween.New(float32(from.Progress), float32(to.Progress), d, fn)
	t.tweens[1] = gween.New(float32(from.Scale), float32(to.Scale), d, fn)
}

// segmentDuration returns the length of the current segment in seconds.
func (t *TimelineSource) segmentDuration() float64 {
	return t.keys[t.seg+1].At - t.keys[t.seg].At
}

// Update advances the timeline by dt seconds.
func (t *TimelineSource) Update(dt float64) {
	if t.done || dt <= 0 {
		return
	}
	prev := t.params
	for !t.done {
		dur := t.segmentDuration()
		if remaining := dur - t.segTime; remaining > 0 {
			if dt <= 0 {
				break
			}
			step := min(dt, remaining)
			p, _ := t.tweens[0].Update(float32(step))
			s, _ := t.tweens[1].Update(float32(step))
			t.params = Params{Progress: float64(p), Scale: float64(s)}
			t.segTime += step
			dt -= step
		}
		if t.segTime < dur {
			break
		}

		// Segment finished; zero-length segments are crossed here too.
		end := t.keys[t.seg+1]
		t.params = Params{Progress: end.Progress, Scale: end.Scale}
		t.seg++
		t.segTime = 0
		t.startSegment()
		if t.done && t.loop && len(t.keys) > 1 {
			t.seg = 0
			t.done = false
			t.startSegment()
		}
	}
	if t.params != prev {
		t.listeners.emit(t.params)
	}
}

// Looping reports whether the timeline restarts after its last keyframe.
func (t *TimelineSource) Looping() bool {
	return t.loop
}

// Done reports whether a non-looping timeline has reached its last keyframe.
func (t *TimelineSource) Done() bool {
	return t.done
}

// Snapshot returns the values as of the last Update.
func (t *TimelineSource) Snapshot() Params {
	return t.params
}

// OnValuesChange registers fn to run after every Update that changes the
// values.
func (t *TimelineSource) OnValuesChange(fn func(Params)) func() {
	return t.listeners.add(fn)
}
