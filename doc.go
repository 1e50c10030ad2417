// Package warp renders a horizontal row of image planes in a perspective 3D
// scene and runs the frame through a post-processing distortion that bends
// the image's texture coordinates with layered cosine waves. It runs on
// [Ebitengine].
//
// # Quick start
//
// The simplest way to get started is [Run], which loads the configured images
// from an [io/fs.FS], builds the pipeline and opens a window:
//
//	cfg := warp.TransitionConfig()
//	cfg.Images = []string{"1.jpg", "2.jpg", "3.jpg", "4.jpg"}
//	if err := warp.Run(cfg, os.DirFS("assets")); err != nil {
//		log.Fatal(err)
//	}
//
// For full control, build a [Sketch] with [NewSketch] and pass it to
// [ebiten.RunGame] yourself, or assemble the parts directly.
//
// # Scene
//
// [NewScene] creates one [Mesh] per texture. Every mesh shares a single
// [PlaneGeometry] but owns its own [Uniforms], so editing one plane's time or
// texture never affects another. Planes are laid out left to right with
// [MeshX]; the x position is fixed after construction. The scene is drawn
// through a [Camera] with a 70 degree vertical field of view placed at z = 2.
// An [OrbitControl] lets the mouse orbit and dolly it around the row.
//
// # Compositor
//
// A [Compositor] runs an ordered chain of [Pass] values: the scene pass
// first, then any post-processing passes. Each pass reads the previous
// pass's output and the last one writes to the [Surface]. Intermediate
// buffers are pooled. [BufferFixed] keeps them at their construction size
// and stretches the result onto a resized surface; [BufferFollowSurface]
// reallocates them on resize.
//
// # Distortion
//
// [DistortionPass] is a [ShaderPass] whose shader warps the sampling
// coordinate. At progress 0 it is a passthrough. [Wobble] and [ResampleUV]
// compute the same mapping on the CPU.
//
// # Animation
//
// A [Driver] advances a time accumulator by a fixed step each tick, reads a
// [ParamSource] once, writes every uniform and mesh transform, renders, and
// requests its next tick from a [FrameScheduler] while playing. Parameters
// come from [LocalSettings] (editable from the [SettingsPanel]) or from a
// keyframed [TimelineSource] tweened with [gween].
//
// # Resize
//
// [ResizeHandler] applies container size changes to the surface, the
// compositor and the camera's aspect ratio. Degenerate sizes are skipped.
//
// # Debug
//
// [CompositorConfig.Debug] logs per-pass timings to stderr.
// [Compositor.Screenshot] captures the output of any pass as a PNG named after
// the frame's progress, scale and time, and [ScriptRunner] replays a JSON step
// script for reproducible captures.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package warp
