package kernel

// Smooth applies a low-pass filter inside the stamp footprint, blended by
// the footprint weight and brush strength. Pixels outside the footprint are
// untouched, which keeps edges beyond the brush crisp.
func Smooth(im Image, s Stamp) {
	x0, y0, x1, y1 := s.Bounds(im.Width, im.Height)
	if x0 >= x1 || y0 >= y1 {
		return
	}

	blurRadius := s.Radius / 3
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
			a := s.Strength * w

			i := im.idx(x, y)
			b := ((y-y0)*width + (x - x0)) * 4
			for c := 0; c < 3; c++ {
				src := float64(im.Pix[i+c])
				im.Pix[i+c] = clampByte(lerp(src, float64(blurred[b+c]), a) / 255)
			}
		}
	}
}
