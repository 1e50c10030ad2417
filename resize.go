package warp

// ResizeHandler applies container size changes to the surface and camera.
// It runs synchronously, once per notification, with no debouncing, and
// never touches animation state.
type ResizeHandler struct {
	compositor *Compositor
	camera     *Camera

	// Debug logs every handled or skipped notification to stderr.
	Debug bool
}

// NewResizeHandler creates a handler for the given compositor and camera.
func NewResizeHandler(compositor *Compositor, camera *Camera) *ResizeHandler {
	return &ResizeHandler{compositor: compositor, camera: camera}
}

// Handle applies a w x h container size. A zero or negative dimension would
// make the aspect ratio degenerate, so the notification is skipped and
// Handle returns false.
func (r *ResizeHandler) Handle(w, h int) bool {
	if w <= 0 || h <= 0 {
		if r.Debug {
			debugf("resize: skipped degenerate size %dx%d", w, h)
		}
		return false
	}
	r.compositor.SetSize(w, h)
	r.camera.Aspect = float64(w) / float64(h)
	r.camera.UpdateProjection()
	if r.Debug {
		bw, bh := r.compositor.BufferSize()
		debugf("resize: surface %dx%d aspect %.4f buffers %dx%d", w, h, r.camera.Aspect, bw, bh)
	}
	return true
}
