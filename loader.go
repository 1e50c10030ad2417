package warp

import (
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io/fs"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP decoder
)

// DefaultMaxTextureSize caps the longest edge of a loaded texture.
const DefaultMaxTextureSize = 2048

// LoadTextures decodes the images at paths, in order. A file that fails to
// open or decode is reported on stderr and yields a nil entry, which the
// scene samples as a blank texture; loading never fails as a whole.
// Images larger than maxSize on either edge are downscaled; maxSize <= 0
// disables the cap.
func LoadTextures(fsys fs.FS, paths []string, maxSize int) []*ebiten.Image {
	out := make([]*ebiten.Image, len(paths))
	for i, p := range paths {
		img, err := decodeImage(fsys, p)
		if err != nil {
			warnf("texture %d: %v", i, err)
			continue
		}
		out[i] = ebiten.NewImageFromImage(fitImage(img, maxSize))
	}
	return out
}

// decodeImage opens and decodes one image file.
func decodeImage(fsys fs.FS, path string) (image.Image, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// fitImage downscales img so neither edge exceeds maxSize, keeping the
// aspect ratio. Images already within bounds are returned unchanged.
func fitImage(img image.Image, maxSize int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSize <= 0 || (w <= maxSize && h <= maxSize) {
		return img
	}
	var nw, nh int
	if w >= h {
		nw = maxSize
		nh = max(1, h*maxSize/w)
	} else {
		nh = maxSize
		nw = max(1, w*maxSize/h)
	}
	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
