package kernel

// Target skin tone in HSV: a warm hue around 25°, moderate saturation.
const (
	skinTargetHue = 25.0 / 360.0
	skinTargetSat = 0.45
)

// SkinTone shifts hue and saturation inside the footprint toward the target
// skin tone. Each pixel's contribution is weighted by its skin likelihood,
// so hair, eyes and background pixels far from typical skin color are
// affected much less than skin.
func SkinTone(im Image, s Stamp) {
	x0, y0, x1, y1 := s.Bounds(im.Width, im.Height)
	if x0 >= x1 || y0 >= y1 {
		return
	}

	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			w := s.Weight(float64(x)+0.5, float64(y)+0.5)
			if w == 0 {
				continue
			}

			i := im.idx(x, y)
			r := float64(im.Pix[i+0]) / 255
			g := float64(im.Pix[i+1]) / 255
			b := float64(im.Pix[i+2]) / 255

			h, sat, v := rgbToHSV(r, g, b)
			like := skinLikelihood(h, sat, v)
			if like == 0 {
				continue
			}

			a := s.Strength * w * like
			h += shortestHueDelta(h, skinTargetHue) * a
			sat = lerp(sat, skinTargetSat, a*0.6)
			v = clamp01(v + 0.05*a)

			nr, ng, nb := hsvToRGB(h, sat, v)
			im.setRGB(x, y, nr, ng, nb)
		}
	}
}

// skinLikelihood estimates how skin-like an HSV color is, in [0,1]. Skin
// clusters around warm hues with moderate saturation and brightness; the
// window edges fade linearly rather than cutting off.
func skinLikelihood(h, s, v float64) float64 {
	hd := hueDistance(h, skinTargetHue)
	hueTerm := clamp01(1 - hd/0.12)

	satTerm := window(s, 0.05, 0.15, 0.6, 0.8)
	valTerm := window(v, 0.15, 0.3, 0.95, 1.0)

	return hueTerm * satTerm * valTerm
}

// shortestHueDelta returns the signed shortest rotation from h toward
// target, as a fraction of a turn.
func shortestHueDelta(h, target float64) float64 {
	d := target - h
	if d > 0.5 {
		d -= 1
	} else if d < -0.5 {
		d += 1
	}
	return d
}

// window returns a trapezoid membership function: 0 below lo0 and above
// hi1, 1 between lo1 and hi0, with linear ramps between.
func window(v, lo0, lo1, hi0, hi1 float64) float64 {
	switch {
	case v <= lo0 || v >= hi1:
		return 0
	case v < lo1:
		return (v - lo0) / (lo1 - lo0)
	case v <= hi0:
		return 1
	default:
		return (hi1 - v) / (hi1 - hi0)
	}
}
