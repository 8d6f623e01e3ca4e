package kernel

import "sync"

// regionBlur computes a separable Gaussian blur of the half-open region
// [x0,x1)×[y0,y1) and returns it as a float32 RGBA buffer of
// (x1-x0)*(y1-y0)*4 elements in [0,255] range. Pixels outside the image are
// edge-extended. The caller must return the buffer via putRegionBuf.
//
// The separable two-pass algorithm runs in O(w*h*r) instead of O(w*h*r²):
// a horizontal convolution into a scratch buffer, then a vertical pass.
func regionBlur(im Image, x0, y0, x1, y1 int, radius float64) []float32 {
	width := x1 - x0
	height := y1 - y0
	kernel := CachedGaussian1D(radius)
	half := len(kernel) / 2

	temp := getRegionBuf(width * height * 4)
	out := getRegionBuf(width * height * 4)

	// Pass 1: horizontal, reading the source image with edge extension.
	for y := 0; y < height; y++ {
		srcY := im.clampY(y0 + y)
		row := srcY * im.Width
		for x := 0; x < width; x++ {
			var r, g, b, a float32
			for k, w := range kernel {
				kx := im.clampX(x0 + x + k - half)
				i := (row + kx) * 4
				r += float32(im.Pix[i+0]) * w
				g += float32(im.Pix[i+1]) * w
				b += float32(im.Pix[i+2]) * w
				a += float32(im.Pix[i+3]) * w
			}
			t := (y*width + x) * 4
			temp[t+0] = r
			temp[t+1] = g
			temp[t+2] = b
			temp[t+3] = a
		}
	}

	// Pass 2: vertical over the scratch buffer, edge-extending the region.
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var r, g, b, a float32
			for k, w := range kernel {
				ky := y + k - half
				if ky < 0 {
					ky = 0
				} else if ky >= height {
					ky = height - 1
				}
				i := (ky*width + x) * 4
				r += temp[i+0] * w
				g += temp[i+1] * w
				b += temp[i+2] * w
				a += temp[i+3] * w
			}
			o := (y*width + x) * 4
			out[o+0] = r
			out[o+1] = g
			out[o+2] = b
			out[o+3] = a
		}
	}

	putRegionBuf(temp)
	return out
}

// directionalBlur computes a 1D Gaussian blur along the direction
// (dirX, dirY) for the region and returns a float32 RGBA buffer like
// regionBlur. Used by the wrinkle transform to smooth elongated features
// along the stroke without bleeding across it.
func directionalBlur(im Image, x0, y0, x1, y1 int, dirX, dirY, radius float64) []float32 {
	width := x1 - x0
	height := y1 - y0
	kernel := CachedGaussian1D(radius)
	half := len(kernel) / 2

	out := getRegionBuf(width * height * 4)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var r, g, b, a float32
			for k, w := range kernel {
				step := float64(k - half)
				sx := im.clampX(x0 + x + int(step*dirX))
				sy := im.clampY(y0 + y + int(step*dirY))
				i := im.idx(sx, sy)
				r += float32(im.Pix[i+0]) * w
				g += float32(im.Pix[i+1]) * w
				b += float32(im.Pix[i+2]) * w
				a += float32(im.Pix[i+3]) * w
			}
			o := (y*width + x) * 4
			out[o+0] = r
			out[o+1] = g
			out[o+2] = b
			out[o+3] = a
		}
	}

	return out
}

// floatBuffer wraps a slice for sync.Pool to avoid allocation warnings.
type floatBuffer struct {
	data []float32
}

var regionBufPool = sync.Pool{
	New: func() interface{} {
		// Sized for a full-size hard brush footprint (150px diameter).
		return &floatBuffer{data: make([]float32, 256*256*4)}
	},
}

// getRegionBuf retrieves a zeroed scratch buffer of at least size elements.
func getRegionBuf(size int) []float32 {
	wrapper := regionBufPool.Get().(*floatBuffer)
	if len(wrapper.data) < size {
		regionBufPool.Put(wrapper)
		return make([]float32, size)
	}
	buf := wrapper.data[:size]
	clear(buf)
	return buf
}

// putRegionBuf returns a scratch buffer to the pool.
func putRegionBuf(buf []float32) {
	// Whole-image buffers from the auto pass are not worth retaining.
	if cap(buf) <= 4*1024*1024 {
		regionBufPool.Put(&floatBuffer{data: buf[:cap(buf)]})
	}
}
