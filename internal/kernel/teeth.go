package kernel

// TeethWhitening desaturates and brightens pixels inside the footprint that
// match a tooth heuristic: bright and low-saturation. Gums and lips are
// saturated enough to be left nearly untouched, so an imprecise stroke over
// the mouth still whitens only the teeth.
func TeethWhitening(im Image, s Stamp) {
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
			like := toothLikelihood(sat, v)
			if like == 0 {
				continue
			}

			a := s.Strength * w * like
			sat *= 1 - 0.6*a
			v = clamp01(v + (1-v)*0.3*a)

			nr, ng, nb := hsvToRGB(h, sat, v)
			im.setRGB(x, y, nr, ng, nb)
		}
	}
}

// toothLikelihood estimates how tooth-like a color is from saturation and
// value, in [0,1].
func toothLikelihood(s, v float64) float64 {
	bright := clamp01((v - 0.45) / 0.3)
	lowSat := clamp01((0.5 - s) / 0.3)
	return bright * lowSat
}
