package kernel

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// maxToneScale caps the contrast stretch so near-flat exposures receive a
// mild correction instead of an unbounded one.
const maxToneScale = 4.0

// Auto applies the one-shot whole-image enhancement: a percentile-based tone
// stretch combined with mild smoothing. It is not brush-parameterized; the
// Auto tool triggers it once per tap and commits immediately.
//
// The stretch operates on luma around the band midpoint and shifts all three
// channels by the same amount, so channel offsets (and with them hue) survive
// even when one channel sits well above mean luma.
func Auto(im Image) {
	if im.Width == 0 || im.Height == 0 {
		return
	}

	lo, hi := toneRange(im)

	// Mild low-pass over the whole frame, blended lightly so texture
	// survives.
	blurred := regionBlur(im, 0, 0, im.Width, im.Height, 1.2)
	defer putRegionBuf(blurred)

	const blurMix = 0.25
	scale := 1.0
	if hi-lo > 1e-3 {
		scale = 1 / (hi - lo)
		if scale > maxToneScale {
			scale = maxToneScale
		}
	}
	mid := (lo + hi) / 2

	for y := 0; y < im.Height; y++ {
		for x := 0; x < im.Width; x++ {
			i := im.idx(x, y)
			b := i // region covers the whole image, offsets coincide

			var ch [3]float64
			for c := 0; c < 3; c++ {
				ch[c] = lerp(float64(im.Pix[i+c]), float64(blurred[b+c]), blurMix) / 255
			}
			yv := luminance(ch[0], ch[1], ch[2])
			delta := clamp01(mid+(yv-mid)*scale) - yv

			for c := 0; c < 3; c++ {
				im.Pix[i+c] = clampByte(ch[c] + delta)
			}
		}
	}
}

// toneRange returns the 1st and 99th luma percentiles of the image,
// subsampled for large frames. Stretching to these bounds normalizes flat,
// hazy exposures without letting single hot pixels dictate the range.
func toneRange(im Image) (lo, hi float64) {
	stride := 1
	if im.Width*im.Height > 512*512 {
		stride = 2
	}

	samples := make([]float64, 0, (im.Width/stride+1)*(im.Height/stride+1))
	for y := 0; y < im.Height; y += stride {
		for x := 0; x < im.Width; x += stride {
			i := im.idx(x, y)
			samples = append(samples, luminance(
				float64(im.Pix[i+0])/255,
				float64(im.Pix[i+1])/255,
				float64(im.Pix[i+2])/255))
		}
	}
	if len(samples) == 0 {
		return 0, 1
	}

	sort.Float64s(samples)
	lo = stat.Quantile(0.01, stat.Empirical, samples, nil)
	hi = stat.Quantile(0.99, stat.Empirical, samples, nil)
	return lo, hi
}
