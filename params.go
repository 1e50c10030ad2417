package warp

// Params is a snapshot of the externally controlled values.
type Params struct {
	Progress float64
	Scale    float64
}

// ParamSource supplies the current parameter values. The Driver reads it
// once at the start of every tick.
type ParamSource interface {
	Snapshot() Params
}

// Notifier is implemented by sources that push change notifications. The
// callback runs on the host's single thread, never concurrently with a tick.
type Notifier interface {
	OnValuesChange(fn func(Params)) (cancel func())
}

// listeners is a small subscriber list shared by the sources.
type listeners struct {
	fns  map[int]func(Params)
	next int
}

func (l *listeners) add(fn func(Params)) func() {
	if l.fns == nil {
		l.fns = make(map[int]func(Params))
	}
	id := l.next
	l.next++
	l.fns[id] = fn
	return func() { delete(l.fns, id) }
}

func (l *listeners) emit(p Params) {
	for _, fn := range l.fns {
		fn(p)
	}
}

// LocalSettings is an in-memory parameter source, the backing store of the
// debug panel. Progress is clamped to [0, 1].
type LocalSettings struct {
	params    Params
	listeners listeners
}

// NewLocalSettings creates settings with the given initial values.
func NewLocalSettings(progress, scale float64) *LocalSettings {
	return &LocalSettings{params: Params{Progress: clamp01(progress), Scale: scale}}
}

// Snapshot returns the current values.
func (s *LocalSettings) Snapshot() Params {
	return s.params
}

// SetProgress sets progress, clamped to [0, 1].
func (s *LocalSettings) SetProgress(v float64) {
	s.set(Params{Progress: clamp01(v), Scale: s.params.Scale})
}

// SetScale sets scale.
func (s *LocalSettings) SetScale(v float64) {
	s.set(Params{Progress: s.params.Progress, Scale: v})
}

func (s *LocalSettings) set(p Params) {
	if p == s.params {
		return
	}
	s.params = p
	s.listeners.emit(p)
}

// OnValuesChange registers fn to run after every change.
func (s *LocalSettings) OnValuesChange(fn func(Params)) func() {
	return s.listeners.add(fn)
}
