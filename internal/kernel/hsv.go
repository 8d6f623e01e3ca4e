package kernel

import "math"

// rgbToHSV converts RGB in [0,1] to hue (fraction of a turn in [0,1)),
// saturation and value in [0,1].
func rgbToHSV(r, g, b float64) (h, s, v float64) {
	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	v = maxC
	d := maxC - minC

	if maxC > 0 {
		s = d / maxC
	}
	if d == 0 {
		return 0, s, v
	}

	switch maxC {
	case r:
		h = (g - b) / d
		if h < 0 {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	return h / 6, s, v
}

// hsvToRGB converts hue (fraction of a turn), saturation and value in [0,1]
// back to RGB.
func hsvToRGB(h, s, v float64) (r, g, b float64) {
	h = h - math.Floor(h) // wrap into [0,1)
	i := int(h * 6)
	f := h*6 - float64(i)
	p := v * (1 - s)
	q := v * (1 - f*s)
	t := v * (1 - (1-f)*s)

	switch i % 6 {
	case 0:
		return v, t, p
	case 1:
		return q, v, p
	case 2:
		return p, v, t
	case 3:
		return p, q, v
	case 4:
		return t, p, v
	default:
		return v, p, q
	}
}

// hueDistance returns the shortest circular distance between two hues, each
// a fraction of a turn. The result is in [0, 0.5].
func hueDistance(a, b float64) float64 {
	d := math.Abs(a - b)
	if d > 0.5 {
		d = 1 - d
	}
	return d
}
