package retouch

import "sync"

// Editor binds a Session, a Viewport and the current Brush and Tool, and
// turns raw pointer events into stroke segments and commits. It is the
// gesture-thread side of the retouch core: it never touches the surface
// directly, only submits work to the session.
//
// Event rules: ToolNone rejects all stroke input; ToolAuto accepts a tap
// (pointer down) and commits immediately; brush tools map pointer down to a
// singleton segment, each move to a two-point segment from the previous
// sample, and pointer up to a commit. A second pointer landing mid-stroke
// commits the stroke and hands the gesture over to navigation.
//
// Editor methods are safe for concurrent use, though events normally arrive
// from a single gesture thread.
type Editor struct {
	mu sync.Mutex

	session  *Session
	viewport *Viewport

	brush Brush
	tool  Tool

	stroking bool
	last     Point // normalized position of the previous sample
}

// NewEditor creates an editor over a session and viewport with the default
// brush and no active tool.
func NewEditor(session *Session, viewport *Viewport) *Editor {
	return &Editor{
		session:  session,
		viewport: viewport,
		brush:    DefaultBrush(),
		tool:     ToolNone,
	}
}

// SetTool selects the active tool. Invalid values fall back to ToolNone.
// Changing tools mid-stroke commits the stroke in progress first.
func (e *Editor) SetTool(t Tool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stroking {
		e.endStrokeLocked(true)
	}
	if !t.Valid() {
		t = ToolNone
	}
	e.tool = t
}

// Tool returns the active tool.
func (e *Editor) Tool() Tool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tool
}

// SetBrush replaces the brush, clamping all parameters to their valid
// ranges.
func (e *Editor) SetBrush(b Brush) {
	e.mu.Lock()
	e.brush = b.Clamped()
	e.mu.Unlock()
}

// Brush returns the current brush.
func (e *Editor) Brush() Brush {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.brush
}

// SetBrushSize sets the brush diameter in image pixels, clamped to
// [MinBrushSize, MaxBrushSize]. Mirrors a UI size slider.
func (e *Editor) SetBrushSize(size float64) {
	e.mu.Lock()
	e.brush.Size = size
	e.brush = e.brush.Clamped()
	e.mu.Unlock()
}

// SetBrushStrength sets the effect strength, clamped to
// [MinBrushStrength, MaxBrushStrength].
func (e *Editor) SetBrushStrength(strength float64) {
	e.mu.Lock()
	e.brush.Strength = strength
	e.brush = e.brush.Clamped()
	e.mu.Unlock()
}

// SetBrushHardness sets the falloff hardness, clamped to [0, 1].
func (e *Editor) SetBrushHardness(hardness float64) {
	e.mu.Lock()
	e.brush.Hardness = hardness
	e.brush = e.brush.Clamped()
	e.mu.Unlock()
}

// PointerDown begins a gesture at a screen-space position. For brush tools
// it applies a singleton stamp and opens a stroke; for ToolAuto it runs the
// whole-image pass and commits. Events that cannot be mapped through the
// viewport are dropped.
func (e *Editor) PointerDown(screen Point) {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch {
	case e.tool == ToolNone:
		return
	case e.tool == ToolAuto:
		if err := e.session.ApplyAuto(); err != nil {
			return
		}
		_ = e.session.Commit()
		return
	}

	norm, err := e.viewport.ToNormalized(screen)
	if err != nil {
		Logger().Warn("pointer down dropped", "err", err)
		return
	}

	if err := e.session.ApplyStroke(PointSegment(norm), e.brush, e.tool); err != nil {
		return
	}
	e.stroking = true
	e.last = norm
}

// PointerMove extends the stroke in progress to a new screen-space
// position. Ignored outside a stroke.
func (e *Editor) PointerMove(screen Point) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.stroking {
		return
	}

	norm, err := e.viewport.ToNormalized(screen)
	if err != nil {
		Logger().Warn("pointer move dropped", "err", err)
		return
	}
	if norm == e.last {
		return
	}

	if err := e.session.ApplyStroke(LineSegment(e.last, norm), e.brush, e.tool); err != nil {
		e.stroking = false
		return
	}
	e.last = norm
}

// PointerUp ends the stroke in progress and commits it as one undoable
// action.
func (e *Editor) PointerUp() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.endStrokeLocked(true)
}

// PointerCancel abandons the stroke in progress without committing.
// Already-applied segments remain on the surface until the next commit or
// undo.
func (e *Editor) PointerCancel() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.endStrokeLocked(false)
}

// MultiPointer signals that a second pointer landed mid-gesture, turning it
// into a navigation gesture. The stroke so far is committed and the editor
// stops consuming the gesture.
func (e *Editor) MultiPointer() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.endStrokeLocked(true)
}

func (e *Editor) endStrokeLocked(commit bool) {
	if !e.stroking {
		return
	}
	e.stroking = false
	if commit {
		_ = e.session.Commit()
	}
}

// Undo reverts the last committed action.
func (e *Editor) Undo() bool { return e.session.Undo() }

// Redo reapplies the last undone action.
func (e *Editor) Redo() bool { return e.session.Redo() }

// CanUndo reports whether an undoable action exists.
func (e *Editor) CanUndo() bool { return e.session.CanUndo() }

// CanRedo reports whether a redoable action exists.
func (e *Editor) CanRedo() bool { return e.session.CanRedo() }

// Clear restores the pristine source image as a new undoable action.
func (e *Editor) Clear() { _ = e.session.Clear() }

// Confirm resolves the final edited image for export.
func (e *Editor) Confirm() (*Pixmap, error) { return e.session.Confirm() }

// Cancel discards the edit session entirely.
func (e *Editor) Cancel() { e.session.Cancel() }
