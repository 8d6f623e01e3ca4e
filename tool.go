package retouch

import "fmt"

// Tool selects the pixel transform applied by a stroke. The set is closed;
// dispatch is a total function over it, so adding a tool means extending the
// enum and the kernel table together.
type Tool uint8

const (
	// ToolNone disables stroke input entirely.
	ToolNone Tool = iota

	// ToolAuto applies a single whole-image enhancement pass. It is
	// triggered by a tap, not a drag, and commits immediately.
	ToolAuto

	// ToolBlemish replaces localized outliers with a statistical estimate
	// of the surrounding texture.
	ToolBlemish

	// ToolSmooth applies an edge-bounded low-pass filter inside the brush
	// footprint.
	ToolSmooth

	// ToolSkinTone shifts hue and saturation toward a target skin tone,
	// weighted by a skin-likelihood mask.
	ToolSkinTone

	// ToolWrinkle smooths fine elongated features along the stroke
	// direction.
	ToolWrinkle

	// ToolTeethWhitening desaturates and brightens pixels matching a
	// bright, low-saturation tooth heuristic.
	ToolTeethWhitening

	toolCount
)

// String returns a human-readable tool name.
func (t Tool) String() string {
	switch t {
	case ToolNone:
		return "None"
	case ToolAuto:
		return "Auto"
	case ToolBlemish:
		return "Blemish"
	case ToolSmooth:
		return "Smooth"
	case ToolSkinTone:
		return "SkinTone"
	case ToolWrinkle:
		return "Wrinkle"
	case ToolTeethWhitening:
		return "TeethWhitening"
	default:
		return fmt.Sprintf("Tool(%d)", uint8(t))
	}
}

// Valid reports whether t is one of the defined tools.
func (t Tool) Valid() bool {
	return t < toolCount
}

// BrushDriven reports whether the tool consumes drag strokes. ToolNone
// rejects all stroke input and ToolAuto is a one-shot whole-image pass.
func (t Tool) BrushDriven() bool {
	switch t {
	case ToolBlemish, ToolSmooth, ToolSkinTone, ToolWrinkle, ToolTeethWhitening:
		return true
	default:
		return false
	}
}
