package kernel

import "math"

// HardEdgeThreshold is the hardness at or above which the footprint becomes
// an axis-aligned square with a sharp cutoff instead of a feathered circle.
const HardEdgeThreshold = 0.9

// Stamp describes one brush application at a point on the surface, in image
// pixel coordinates. A stroke segment is rendered as a sequence of stamps
// interpolated along the segment.
type Stamp struct {
	// X, Y is the stamp center.
	X, Y float64

	// DirX, DirY is the unit stroke direction, used by direction-sensitive
	// transforms (wrinkle). Zero for singleton segments.
	DirX, DirY float64

	// Radius is half the brush diameter.
	Radius float64

	// Strength is the effect intensity in (0, 1].
	Strength float64

	// Hardness controls the falloff steepness in [0, 1].
	Hardness float64
}

// HardEdged reports whether the footprint is a sharp-edged square.
func (s Stamp) HardEdged() bool {
	return s.Hardness >= HardEdgeThreshold
}

// Weight returns the footprint weight at the point (px, py), before the
// strength multiplier.
//
// Hard brushes cover exactly the axis-aligned square of side 2*Radius
// centered on the stamp, with weight 1 throughout. Soft brushes have full
// weight at the center, strictly decreasing toward the boundary circle, and
// zero at distance >= Radius; higher hardness flattens the falloff curve.
func (s Stamp) Weight(px, py float64) float64 {
	dx := px - s.X
	dy := py - s.Y

	if s.HardEdged() {
		if math.Abs(dx) < s.Radius && math.Abs(dy) < s.Radius {
			return 1
		}
		return 0
	}

	d := math.Hypot(dx, dy)
	if d >= s.Radius {
		return 0
	}
	t := d / s.Radius
	gamma := 1 + 2*(1-s.Hardness)
	return math.Pow(1-t, gamma)
}

// Bounds returns the half-open pixel rectangle [x0,x1)×[y0,y1) that can be
// affected by the stamp, clipped to an image of the given size.
func (s Stamp) Bounds(width, height int) (x0, y0, x1, y1 int) {
	x0 = int(math.Floor(s.X - s.Radius))
	y0 = int(math.Floor(s.Y - s.Radius))
	x1 = int(math.Ceil(s.X+s.Radius)) + 1
	y1 = int(math.Ceil(s.Y+s.Radius)) + 1

	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 > width {
		x1 = width
	}
	if y1 > height {
		y1 = height
	}
	return x0, y0, x1, y1
}

// Spacing returns the distance between consecutive stamps along a segment.
// A quarter radius keeps overlapping footprints gap-free during fast
// pointer motion without stacking excessive passes.
func Spacing(radius float64) float64 {
	s := radius / 4
	if s < 1 {
		s = 1
	}
	return s
}
