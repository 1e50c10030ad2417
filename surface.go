package warp

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Surface is the display surface the compositor's final pass writes to. The
// core owns it; the host only copies it to the screen.
type Surface struct {
	img  *ebiten.Image
	w, h int
}

// NewSurface creates a w x h surface. Non-positive dimensions are clamped to 1.
func NewSurface(w, h int) *Surface {
	s := &Surface{}
	s.SetSize(w, h)
	return s
}

// SetSize resizes the surface. The image is reallocated only when the size
// actually changes; its contents are not preserved.
func (s *Surface) SetSize(w, h int) {
	w = max(w, 1)
	h = max(h, 1)
	if s.img != nil && s.w == w && s.h == h {
		return
	}
	if s.img != nil {
		s.img.Deallocate()
	}
	s.img = ebiten.NewImage(w, h)
	s.w, s.h = w, h
}

// Size returns the surface size in pixels.
func (s *Surface) Size() (w, h int) {
	return s.w, s.h
}

// Image returns the backing image.
func (s *Surface) Image() *ebiten.Image {
	return s.img
}

// Present copies the surface onto screen, stretched to screen's bounds.
func (s *Surface) Present(screen *ebiten.Image) {
	drawStretched(screen, s.img)
}

// drawStretched draws src over the whole of dst, scaling with linear
// filtering when the sizes differ.
func drawStretched(dst, src *ebiten.Image) {
	var op ebiten.DrawImageOptions
	db, sb := dst.Bounds(), src.Bounds()
	if db.Dx() != sb.Dx() || db.Dy() != sb.Dy() {
		op.GeoM.Scale(float64(db.Dx())/float64(sb.Dx()), float64(db.Dy())/float64(sb.Dy()))
		op.Filter = ebiten.FilterLinear
	}
	dst.DrawImage(src, &op)
}
