package warp

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// bufferPool manages reusable offscreen ebiten.Images keyed by exact
// dimensions. Pass buffers must match the size the chain renders at, so
// unlike a texture atlas pool there is no rounding.
type bufferPool struct {
	buckets map[uint64][]*ebiten.Image
}

// poolKey packs width and height into a single uint64.
func poolKey(w, h int) uint64 {
	return uint64(w)<<32 | uint64(h)
}

// Acquire returns a cleared offscreen image of exactly (w, h) pixels.
// Non-positive dimensions are clamped to 1.
func (p *bufferPool) Acquire(w, h int) *ebiten.Image {
	w = max(w, 1)
	h = max(h, 1)
	key := poolKey(w, h)

	if p.buckets != nil {
		if stack := p.buckets[key]; len(stack) > 0 {
			img := stack[len(stack)-1]
			p.buckets[key] = stack[:len(stack)-1]
			img.Clear()
			return img
		}
	}

	return ebiten.NewImageWithOptions(
		image.Rect(0, 0, w, h),
		&ebiten.NewImageOptions{Unmanaged: true},
	)
}

// Release returns an image to the pool for reuse. The image is cleared on
// next Acquire, not here.
func (p *bufferPool) Release(img *ebiten.Image) {
	if img == nil {
		return
	}
	b := img.Bounds()
	key := poolKey(b.Dx(), b.Dy())

	if p.buckets == nil {
		p.buckets = make(map[uint64][]*ebiten.Image)
	}
	p.buckets[key] = append(p.buckets[key], img)
}

// Len returns the number of pooled images.
func (p *bufferPool) Len() int {
	n := 0
	for _, stack := range p.buckets {
		n += len(stack)
	}
	return n
}

// Purge deallocates every pooled image.
func (p *bufferPool) Purge() {
	for key, stack := range p.buckets {
		for _, img := range stack {
			img.Deallocate()
		}
		delete(p.buckets, key)
	}
}
