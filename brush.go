package retouch

// Brush parameter limits. Values outside these ranges are clamped by
// Clamped, never rejected; UI sliders map directly onto them.
const (
	// MinBrushSize is the smallest brush diameter in image pixels.
	MinBrushSize = 10

	// MaxBrushSize is the largest brush diameter in image pixels.
	MaxBrushSize = 150

	// MinBrushStrength is the weakest allowed effect intensity.
	MinBrushStrength = 0.1

	// MaxBrushStrength is full effect intensity.
	MaxBrushStrength = 1.0

	// HardEdgeThreshold is the hardness at or above which the brush
	// footprint switches from a feathered circle to a sharp-edged square.
	HardEdgeThreshold = 0.9
)

// Brush describes what a stroke paints with. It is an immutable value:
// created by UI controls, passed by value into stroke application, never
// mutated in place.
type Brush struct {
	// Size is the brush diameter in image pixels, clamped to
	// [MinBrushSize, MaxBrushSize].
	Size float64

	// Strength is the effect intensity, clamped to
	// [MinBrushStrength, MaxBrushStrength].
	Strength float64

	// Hardness controls edge falloff steepness in [0, 1]. At
	// HardEdgeThreshold and above the footprint is an axis-aligned square
	// with a sharp cutoff instead of a feathered circle.
	Hardness float64
}

// DefaultBrush returns the brush used when a session starts: medium size,
// moderate strength, fully feathered edge.
func DefaultBrush() Brush {
	return Brush{Size: 60, Strength: 0.5, Hardness: 0}
}

// Clamped returns a copy of the brush with all parameters forced into their
// valid ranges.
func (b Brush) Clamped() Brush {
	if b.Size < MinBrushSize {
		b.Size = MinBrushSize
	} else if b.Size > MaxBrushSize {
		b.Size = MaxBrushSize
	}
	if b.Strength < MinBrushStrength {
		b.Strength = MinBrushStrength
	} else if b.Strength > MaxBrushStrength {
		b.Strength = MaxBrushStrength
	}
	if b.Hardness < 0 {
		b.Hardness = 0
	} else if b.Hardness > 1 {
		b.Hardness = 1
	}
	return b
}

// Radius returns half the brush diameter.
func (b Brush) Radius() float64 {
	return b.Size / 2
}

// HardEdged reports whether the footprint is a sharp-edged square rather
// than a feathered circle.
func (b Brush) HardEdged() bool {
	return b.Hardness >= HardEdgeThreshold
}
