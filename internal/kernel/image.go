package kernel

// Image is a view over an RGBA pixel buffer, 4 bytes per pixel, row-major.
// It shares memory with the caller; transforms mutate it in place.
type Image struct {
	Pix    []uint8
	Width  int
	Height int
}

// idx returns the byte offset of pixel (x, y).
func (im Image) idx(x, y int) int {
	return (y*im.Width + x) * 4
}

// clampX clamps x into the image's horizontal range.
func (im Image) clampX(x int) int {
	if x < 0 {
		return 0
	}
	if x >= im.Width {
		return im.Width - 1
	}
	return x
}

// clampY clamps y into the image's vertical range.
func (im Image) clampY(y int) int {
	if y < 0 {
		return 0
	}
	if y >= im.Height {
		return im.Height - 1
	}
	return y
}

// rgbAt returns the color at the clamped coordinate as [0,1] floats.
// Alpha is left untouched by all transforms and therefore not returned.
func (im Image) rgbAt(x, y int) (r, g, b float64) {
	i := im.idx(im.clampX(x), im.clampY(y))
	return float64(im.Pix[i]) / 255, float64(im.Pix[i+1]) / 255, float64(im.Pix[i+2]) / 255
}

// setRGB writes a color at (x, y), clamping each channel to [0,1].
// Alpha is preserved.
func (im Image) setRGB(x, y int, r, g, b float64) {
	i := im.idx(x, y)
	im.Pix[i] = clampByte(r)
	im.Pix[i+1] = clampByte(g)
	im.Pix[i+2] = clampByte(b)
}

// luminance returns the Rec. 601 luma of an RGB triple in [0,1].
func luminance(r, g, b float64) float64 {
	return 0.299*r + 0.587*g + 0.114*b
}

// lerp interpolates between a and b by t.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// clamp01 clamps v into [0,1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// clampByte converts a [0,1] float to a rounded uint8.
func clampByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
