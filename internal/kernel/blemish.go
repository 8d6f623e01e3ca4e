package kernel

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// ringSamples is the number of texture probes taken on the circle
// surrounding the footprint.
const ringSamples = 24

// Blemish replaces localized high-frequency outliers with a statistical
// estimate of the surrounding skin texture. It probes a ring just outside
// the footprint for the local texture mean and deviation; pixels whose luma
// deviates strongly from the ring mean are pulled hardest toward a blend of
// the ring estimate and the locally smoothed color.
func Blemish(im Image, s Stamp) {
	x0, y0, x1, y1 := s.Bounds(im.Width, im.Height)
	if x0 >= x1 || y0 >= y1 {
		return
	}

	meanR, meanG, meanB, meanLum, sigma := ringStats(im, s)

	blurRadius := s.Radius / 2
	if blurRadius < 1 {
		blurRadius = 1
	}
	blurred := regionBlur(im, x0, y0, x1, y1, blurRadius)
	defer putRegionBuf(blurred)

	width := x1 - x0
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			w := s.Weight(float64(x)+0.5, float64(y)+0.5)
			if w == 0 {
				continue
			}

			i := im.idx(x, y)
			srcR := float64(im.Pix[i+0]) / 255
			srcG := float64(im.Pix[i+1]) / 255
			srcB := float64(im.Pix[i+2]) / 255

			// Outlier factor: 0 for pixels matching the surrounding
			// texture, approaching 1 beyond two standard deviations.
			dev := math.Abs(luminance(srcR, srcG, srcB) - meanLum)
			outlier := 1.0
			if sigma > 1e-4 {
				outlier = clamp01((dev/sigma - 0.5) / 1.5)
			}

			b := ((y-y0)*width + (x - x0)) * 4
			tgtR := lerp(float64(blurred[b+0])/255, meanR, 0.6)
			tgtG := lerp(float64(blurred[b+1])/255, meanG, 0.6)
			tgtB := lerp(float64(blurred[b+2])/255, meanB, 0.6)

			a := s.Strength * w * (0.35 + 0.65*outlier)
			im.setRGB(x, y,
				lerp(srcR, tgtR, a),
				lerp(srcG, tgtG, a),
				lerp(srcB, tgtB, a))
		}
	}
}

// ringStats probes ringSamples points on a circle at 1.4x the footprint
// radius and returns the per-channel means, the mean luma, and the luma
// standard deviation of the surrounding texture.
func ringStats(im Image, s Stamp) (meanR, meanG, meanB, meanLum, sigma float64) {
	rs := make([]float64, 0, ringSamples)
	gs := make([]float64, 0, ringSamples)
	bs := make([]float64, 0, ringSamples)
	lums := make([]float64, 0, ringSamples)

	ringR := s.Radius * 1.4
	for k := 0; k < ringSamples; k++ {
		angle := 2 * math.Pi * float64(k) / ringSamples
		px := int(s.X + ringR*math.Cos(angle))
		py := int(s.Y + ringR*math.Sin(angle))
		r, g, b := im.rgbAt(px, py)
		rs = append(rs, r)
		gs = append(gs, g)
		bs = append(bs, b)
		lums = append(lums, luminance(r, g, b))
	}

	meanR = stat.Mean(rs, nil)
	meanG = stat.Mean(gs, nil)
	meanB = stat.Mean(bs, nil)
	meanLum = stat.Mean(lums, nil)
	sigma = stat.StdDev(lums, nil)
	if math.IsNaN(sigma) {
		sigma = 0
	}
	return meanR, meanG, meanB, meanLum, sigma
}
