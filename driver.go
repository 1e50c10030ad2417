package warp

// FrameScheduler is the host's per-frame callback mechanism.
type FrameScheduler interface {
	// RequestFrame arranges for fn to run once on the next display frame.
	RequestFrame(fn func())
}

// FrameQueue is a FrameScheduler flushed by the host once per display
// frame. Callbacks requested while flushing run on the following flush.
type FrameQueue struct {
	pending []func()
	running []func()
}

// RequestFrame queues fn for the next Flush.
func (q *FrameQueue) RequestFrame(fn func()) {
	q.pending = append(q.pending, fn)
}

// Len returns the number of queued callbacks.
func (q *FrameQueue) Len() int {
	return len(q.pending)
}

// Flush runs the callbacks queued before the call and returns how many ran.
func (q *FrameQueue) Flush() int {
	q.running, q.pending = q.pending, q.running[:0]
	for i, fn := range q.running {
		fn()
		q.running[i] = nil
	}
	return len(q.running)
}

// Renderer renders one frame.
type Renderer interface {
	Render()
}

// passLister is implemented by renderers that expose their passes
// (Compositor).
type passLister interface {
	Passes() []Pass
}

// frameRecorder is implemented by renderers that label their output with
// the frame's parameters (Compositor).
type frameRecorder interface {
	SetFrameInfo(FrameInfo)
}

// paramReceiver is implemented by passes driven by the external parameters
// (DistortionPass).
type paramReceiver interface {
	SetParams(progress, scale float64)
}

// Driver is the per-frame animation loop. Each tick advances the time
// accumulator, reads the parameter source once, writes every uniform and
// mesh transform, renders, and then requests the next tick while playing.
type Driver struct {
	// TimeStep is added to the time accumulator every tick.
	TimeStep float64

	scene     *Scene
	renderer  Renderer
	source    ParamSource
	scheduler FrameScheduler

	time      float64
	playing   bool
	scheduled bool
	ticks     uint64
	last      Params
}

// NewDriver creates a stopped driver. Call Play to start the loop.
func NewDriver(scene *Scene, renderer Renderer, source ParamSource, scheduler FrameScheduler, step float64) *Driver {
	return &Driver{
		TimeStep:  step,
		scene:     scene,
		renderer:  renderer,
		source:    source,
		scheduler: scheduler,
	}
}

// Play starts or resumes the loop. If the driver was stopped it renders one
// frame immediately, which also requests the next tick. The time
// accumulator is never reset.
func (d *Driver) Play() {
	if d.playing {
		return
	}
	d.playing = true
	d.step()
}

// Stop clears the playing flag. A tick already queued with the scheduler
// runs but does no work and requests no successor.
func (d *Driver) Stop() {
	d.playing = false
}

// Playing reports whether the loop is running.
func (d *Driver) Playing() bool {
	return d.playing
}

// Time returns the time accumulator.
func (d *Driver) Time() float64 {
	return d.time
}

// Ticks returns the number of frames the driver has rendered.
func (d *Driver) Ticks() uint64 {
	return d.ticks
}

// LastParams returns the parameter snapshot used by the most recent tick.
func (d *Driver) LastParams() Params {
	return d.last
}

// Tick is the scheduled frame callback.
func (d *Driver) Tick() {
	d.scheduled = false
	d.step()
}

// step does one frame of work if playing, then reschedules. The flag is
// checked both before the work and before requesting the successor.
func (d *Driver) step() {
	if !d.playing {
		return
	}

	d.time += d.TimeStep
	params := d.source.Snapshot()
	d.last = params
	d.apply(params)
	d.renderer.Render()
	d.ticks++

	if d.playing && !d.scheduled {
		d.scheduled = true
		d.scheduler.RequestFrame(d.Tick)
	}
}

// apply writes time to every uniform set exposing it, the parameters to
// the parameter-driven passes, and the progress transform to every mesh.
func (d *Driver) apply(params Params) {
	if fr, ok := d.renderer.(frameRecorder); ok {
		fr.SetFrameInfo(FrameInfo{Time: d.time, Progress: params.Progress, Scale: params.Scale})
	}
	if d.scene != nil {
		for _, m := range d.scene.meshes {
			if m.uniforms.Has(uniformTime) {
				m.uniforms.SetFloat(uniformTime, d.time)
			}
			m.ApplyProgress(params.Progress)
		}
	}

	lister, ok := d.renderer.(passLister)
	if !ok {
		return
	}
	for _, p := range lister.Passes() {
		if h, ok := p.(UniformHolder); ok && h.Uniforms().Has(uniformTime) {
			h.Uniforms().SetFloat(uniformTime, d.time)
		}
		if r, ok := p.(paramReceiver); ok {
			r.SetParams(params.Progress, params.Scale)
		}
	}
}
