package retouch

// Segment is one incremental piece of a stroke: one or two points in
// normalized image coordinates ([0,1]²), captured with the brush and tool
// active at that moment. Segments are ephemeral; the renderer consumes them
// immediately and does not retain them.
type Segment struct {
	// From is the segment start in normalized coordinates.
	From Point

	// To is the segment end. For a singleton segment (pointer down with no
	// movement yet) To equals From.
	To Point
}

// PointSegment creates a singleton segment at p.
func PointSegment(p Point) Segment {
	return Segment{From: p, To: p}
}

// LineSegment creates a two-point segment from a to b.
func LineSegment(a, b Point) Segment {
	return Segment{From: a, To: b}
}

// IsPoint reports whether the segment is a singleton.
func (s Segment) IsPoint() bool {
	return s.From == s.To
}

// Clamped returns the segment with both endpoints clamped into [0,1]².
func (s Segment) Clamped() Segment {
	s.From = clampUnit(s.From)
	s.To = clampUnit(s.To)
	return s
}

func clampUnit(p Point) Point {
	if p.X < 0 {
		p.X = 0
	} else if p.X > 1 {
		p.X = 1
	}
	if p.Y < 0 {
		p.Y = 0
	} else if p.Y > 1 {
		p.Y = 1
	}
	return p
}
