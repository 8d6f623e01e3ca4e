package retouch

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"

	xdraw "golang.org/x/image/draw"
)

// Pixmap is a rectangular RGBA pixel buffer, 4 bytes per pixel, row-major.
// It is the CPU-side representation of the image surface and of history
// snapshots.
type Pixmap struct {
	width  int
	height int
	data   []uint8
}

// NewPixmap creates a new pixmap with the given dimensions.
func NewPixmap(width, height int) *Pixmap {
	return &Pixmap{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}
}

// WrapPixmap creates a pixmap around an existing buffer without copying.
// The buffer must hold at least width*height*4 bytes; the pixmap takes
// ownership of it.
func WrapPixmap(width, height int, data []uint8) *Pixmap {
	return &Pixmap{
		width:  width,
		height: height,
		data:   data[:width*height*4],
	}
}

// FromImage creates a pixmap from an image, converting to non-premultiplied
// RGBA.
func FromImage(img image.Image) *Pixmap {
	bounds := img.Bounds()
	pm := NewPixmap(bounds.Dx(), bounds.Dy())
	dst := &image.NRGBA{
		Pix:    pm.data,
		Stride: pm.width * 4,
		Rect:   image.Rect(0, 0, pm.width, pm.height),
	}
	xdraw.Copy(dst, image.Point{}, img, bounds, xdraw.Src, nil)
	return pm
}

// FromImageFit creates a pixmap from an image, downscaling with a
// Catmull-Rom filter when either dimension exceeds maxDim. Sources within
// the limit are converted without resampling. Used to keep the surface
// within the backend's maximum texture dimension.
func FromImageFit(img image.Image, maxDim int) *Pixmap {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if maxDim <= 0 || (w <= maxDim && h <= maxDim) {
		return FromImage(img)
	}

	if w >= h {
		h = h * maxDim / w
		w = maxDim
	} else {
		w = w * maxDim / h
		h = maxDim
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	pm := NewPixmap(w, h)
	dst := &image.NRGBA{
		Pix:    pm.data,
		Stride: pm.width * 4,
		Rect:   image.Rect(0, 0, w, h),
	}
	xdraw.CatmullRom.Scale(dst, dst.Rect, img, bounds, xdraw.Src, nil)
	return pm
}

// Width returns the width of the pixmap.
func (p *Pixmap) Width() int {
	return p.width
}

// Height returns the height of the pixmap.
func (p *Pixmap) Height() int {
	return p.height
}

// Data returns the raw pixel data (RGBA format).
func (p *Pixmap) Data() []uint8 {
	return p.data
}

// SetPixel sets the color of a single pixel.
// Out-of-bounds coordinates are silently ignored.
func (p *Pixmap) SetPixel(x, y int, c RGBA) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	i := (y*p.width + x) * 4
	p.data[i+0] = uint8(clamp255(c.R * 255))
	p.data[i+1] = uint8(clamp255(c.G * 255))
	p.data[i+2] = uint8(clamp255(c.B * 255))
	p.data[i+3] = uint8(clamp255(c.A * 255))
}

// GetPixel returns the color of a single pixel.
func (p *Pixmap) GetPixel(x, y int) RGBA {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return Transparent
	}
	i := (y*p.width + x) * 4
	return RGBA{
		R: float64(p.data[i+0]) / 255,
		G: float64(p.data[i+1]) / 255,
		B: float64(p.data[i+2]) / 255,
		A: float64(p.data[i+3]) / 255,
	}
}

// Fill sets every pixel to the given color.
func (p *Pixmap) Fill(c RGBA) {
	r := uint8(clamp255(c.R * 255))
	g := uint8(clamp255(c.G * 255))
	b := uint8(clamp255(c.B * 255))
	a := uint8(clamp255(c.A * 255))

	for i := 0; i < len(p.data); i += 4 {
		p.data[i+0] = r
		p.data[i+1] = g
		p.data[i+2] = b
		p.data[i+3] = a
	}
}

// Clone returns a deep copy of the pixmap.
func (p *Pixmap) Clone() *Pixmap {
	out := NewPixmap(p.width, p.height)
	copy(out.data, p.data)
	return out
}

// CloneInto copies the pixel content into dst, which must have identical
// dimensions. Returns ErrSizeMismatch otherwise.
func (p *Pixmap) CloneInto(dst *Pixmap) error {
	if dst.width != p.width || dst.height != p.height {
		return ErrSizeMismatch
	}
	copy(dst.data, p.data)
	return nil
}

// Equal reports whether two pixmaps have identical dimensions and
// bit-identical pixel content.
func (p *Pixmap) Equal(q *Pixmap) bool {
	if q == nil || p.width != q.width || p.height != q.height {
		return false
	}
	return bytes.Equal(p.data, q.data)
}

// ToImage converts the pixmap to an image.NRGBA sharing no memory with the
// pixmap.
func (p *Pixmap) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, p.width, p.height))
	copy(img.Pix, p.data)
	return img
}

// SavePNG saves the pixmap to a PNG file.
func (p *Pixmap) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	return png.Encode(f, p.ToImage())
}

// At implements the image.Image interface.
func (p *Pixmap) At(x, y int) color.Color {
	return p.GetPixel(x, y).Color()
}

// Bounds implements the image.Image interface.
func (p *Pixmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// ColorModel implements the image.Image interface.
func (p *Pixmap) ColorModel() color.Model {
	return color.NRGBAModel
}
