package warp

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// FrameInfo identifies the frame a capture was taken from.
type FrameInfo struct {
	Time     float64
	Progress float64
	Scale    float64
}

// OutputPass names the chain's final output in capture requests.
const OutputPass = ""

// captureRequest asks for the output of one pass on the next Render.
type captureRequest struct {
	label string
	pass  string
}

// capture is a grabbed buffer waiting to be written.
type capture struct {
	captureRequest
	frame FrameInfo
	img   *image.NRGBA
}

// Screenshot queues a capture of pass's output on the next Render. An empty
// pass (OutputPass) captures what the surface shows, after any stretch. A
// pass name not in the chain at render time is dropped with a warning.
func (c *Compositor) Screenshot(label, pass string) {
	c.requests = append(c.requests, captureRequest{label: label, pass: pass})
}

// PendingScreenshots returns the number of requests not yet captured.
func (c *Compositor) PendingScreenshots() int {
	return len(c.requests)
}

// SetFrameInfo records the parameters of the frame about to be rendered;
// captures are named after them.
func (c *Compositor) SetFrameInfo(f FrameInfo) {
	c.frameInfo = f
}

// grab captures img for every request naming pass.
func (c *Compositor) grab(pass string, img *ebiten.Image) {
	if len(c.requests) == 0 {
		return
	}
	var shot *image.NRGBA
	kept := c.requests[:0]
	for _, r := range c.requests {
		if r.pass != pass {
			kept = append(kept, r)
			continue
		}
		if shot == nil {
			shot = c.read(img)
		}
		c.captures = append(c.captures, capture{captureRequest: r, frame: c.frameInfo, img: shot})
	}
	c.requests = kept
}

// dropUnmatched discards requests for passes the chain does not have.
func (c *Compositor) dropUnmatched() {
	for _, r := range c.requests {
		warnf("screenshot %q: no pass named %q", r.label, r.pass)
	}
	c.requests = c.requests[:0]
}

// FlushScreenshots writes every capture taken since the last flush as a PNG
// in the screenshot directory. Failures are logged and the capture dropped.
func (c *Compositor) FlushScreenshots() {
	if len(c.captures) == 0 {
		return
	}
	defer func() { c.captures = c.captures[:0] }()

	if err := os.MkdirAll(c.shotDir, 0o755); err != nil {
		warnf("screenshot: mkdir %s: %v", c.shotDir, err)
		return
	}
	stamp := time.Now().Format("20060102_150405")
	for _, cp := range c.captures {
		path := filepath.Join(c.shotDir, captureFileName(stamp, cp))
		if err := writePNG(path, cp.img); err != nil {
			warnf("screenshot: %v", err)
			continue
		}
		if c.debug {
			debugf("screenshot %s", path)
		}
	}
}

// captureFileName names a capture after its label, pass and frame, e.g.
// 20261015_120000_half_distortion_p0.50_s1.00_t3.25.png.
func captureFileName(stamp string, cp capture) string {
	pass := cp.pass
	if pass == OutputPass {
		pass = "output"
	}
	return fmt.Sprintf("%s_%s_%s_p%.2f_s%.2f_t%.2f.png",
		stamp, sanitizeLabel(cp.label), sanitizeLabel(pass),
		cp.frame.Progress, cp.frame.Scale, cp.frame.Time)
}

// readNRGBA copies img back from the GPU as straight-alpha pixels. Only
// valid once the game loop is running.
func readNRGBA(img *ebiten.Image) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	img.ReadPixels(out.Pix)
	unpremultiply(out.Pix)
	return out
}

// unpremultiply converts premultiplied RGBA bytes to straight alpha in place.
func unpremultiply(pix []byte) {
	for i := 0; i+3 < len(pix); i += 4 {
		a := int(pix[i+3])
		if a == 0 || a == 255 {
			continue
		}
		for j := 0; j < 3; j++ {
			pix[i+j] = uint8(min(int(pix[i+j])*255/a, 255))
		}
	}
}

// writePNG encodes img to a PNG file at path.
func writePNG(path string, img *image.NRGBA) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel keeps letters, digits, '-' and '.', replaces anything else
// with '_', and names an empty label "unlabeled".
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			return r
		}
		return '_'
	}, label)
}
