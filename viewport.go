package retouch

import (
	"fmt"
	"sync"
)

// Zoom scale bounds applied by SetTransform.
const (
	// MinZoomScale is the smallest display scale (fit to view).
	MinZoomScale = 1.0

	// MaxZoomScale is the largest display scale.
	MaxZoomScale = 5.0
)

// Viewport converts pointer coordinates in screen space, under a live
// pan/zoom transform, to normalized image coordinates and back. Normalized
// coordinates are always defined relative to the unscaled image content.
//
// The gesture thread writes the transform and the view size; readers only
// perform coordinate math, so a read-write mutex is sufficient. The renderer
// never touches the viewport.
type Viewport struct {
	mu sync.RWMutex

	viewW, viewH float64
	scale        float64
	offsetX      float64
	offsetY      float64
}

// NewViewport creates a viewport for a display surface of the given size in
// screen pixels, with no pan and a scale of 1.
func NewViewport(width, height float64) *Viewport {
	return &Viewport{viewW: width, viewH: height, scale: 1}
}

// SetViewSize updates the display surface size, typically on layout changes.
func (v *Viewport) SetViewSize(width, height float64) {
	v.mu.Lock()
	v.viewW, v.viewH = width, height
	v.mu.Unlock()
}

// SetTransform updates the pan/zoom transform. Scale is clamped to
// [MinZoomScale, MaxZoomScale].
func (v *Viewport) SetTransform(scale, offsetX, offsetY float64) {
	if scale < MinZoomScale {
		scale = MinZoomScale
	} else if scale > MaxZoomScale {
		scale = MaxZoomScale
	}
	v.mu.Lock()
	v.scale = scale
	v.offsetX = offsetX
	v.offsetY = offsetY
	v.mu.Unlock()
}

// ResetTransform restores scale 1 with no pan.
func (v *Viewport) ResetTransform() {
	v.SetTransform(1, 0, 0)
}

// Scale returns the current zoom scale.
func (v *Viewport) Scale() float64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.scale
}

// ToNormalized maps a screen-space point to normalized image coordinates,
// clamped to [0,1]². Returns ErrInvalidViewport if the view has zero area.
func (v *Viewport) ToNormalized(screen Point) (Point, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	if v.viewW <= 0 || v.viewH <= 0 {
		return Point{}, fmt.Errorf("%w: %gx%g", ErrInvalidViewport, v.viewW, v.viewH)
	}

	// Undo pan/zoom first: normalized coordinates are relative to the
	// unscaled content.
	x := (screen.X - v.offsetX) / v.scale
	y := (screen.Y - v.offsetY) / v.scale

	return clampUnit(Pt(x/v.viewW, y/v.viewH)), nil
}

// ToScreen maps normalized image coordinates back to screen space under the
// current transform. Used for drawing brush cursors and overlays.
func (v *Viewport) ToScreen(norm Point) (Point, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	if v.viewW <= 0 || v.viewH <= 0 {
		return Point{}, fmt.Errorf("%w: %gx%g", ErrInvalidViewport, v.viewW, v.viewH)
	}

	return Pt(
		norm.X*v.viewW*v.scale+v.offsetX,
		norm.Y*v.viewH*v.scale+v.offsetY,
	), nil
}

// DeltaToNormalized converts a screen-space drag delta to a normalized
// delta, dividing by the current zoom scale so a drag covers the same
// content distance regardless of zoom.
func (v *Viewport) DeltaToNormalized(delta Point) (Point, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	if v.viewW <= 0 || v.viewH <= 0 {
		return Point{}, fmt.Errorf("%w: %gx%g", ErrInvalidViewport, v.viewW, v.viewH)
	}

	return Pt(
		delta.X/v.scale/v.viewW,
		delta.Y/v.scale/v.viewH,
	), nil
}
