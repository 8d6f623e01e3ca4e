package retouch

import (
	"fmt"
	"sync"
	"sync/atomic"

	imagebuf "github.com/gogpu/retouch/internal/image"
	"github.com/gogpu/retouch/internal/kernel"
)

// defaultQueueDepth bounds the render task queue. Pointer events arrive at
// display rate; a stroke segment costs well under a frame, so the queue
// rarely holds more than a handful of tasks.
const defaultQueueDepth = 128

// snapshotPoolDepth bounds pooled snapshot buffers per size class. History
// holds at most capacity snapshots plus readback scratch.
const snapshotPoolDepth = 24

// GPUMemoryStats describes texture memory usage of a surface backend.
type GPUMemoryStats struct {
	BudgetBytes   uint64
	UsedBytes     uint64
	TextureCount  int
	EvictionCount uint64
}

// memoryStatsReporter is implemented by backends that track texture memory.
type memoryStatsReporter interface {
	SurfaceMemoryStats() GPUMemoryStats
}

// Stats is a point-in-time snapshot of session state.
type Stats struct {
	// Initialized reports whether a source image has been loaded.
	Initialized bool

	// Width, Height are the surface dimensions in pixels.
	Width, Height int

	// HistoryLen is the number of retained snapshots.
	HistoryLen int

	// HistoryIndex is the undo cursor position.
	HistoryIndex int

	// Backend is the surface backend name, empty for CPU-only sessions.
	Backend string

	// GPUMemory holds backend texture memory usage when available.
	GPUMemory GPUMemoryStats
}

// Session owns the live image surface of one retouch edit: the CPU raster,
// its GPU texture mirror, and the snapshot history. All mutation runs on a
// single render goroutine that drains submitted tasks in order; the surface,
// texture and history are confined to that goroutine.
//
// Strokes are fire-and-forget; readback operations (Snapshot, Confirm) block
// the caller until every previously submitted task has executed. Work
// submitted before GPU context acquisition completes is queued, never
// dropped.
type Session struct {
	mu     sync.Mutex
	tasks  chan func()
	done   chan struct{}
	closed bool

	onUpdate atomic.Pointer[func()]

	// Fields below are owned by the render goroutine after Start.
	backend     SurfaceBackend
	ownsBackend bool
	gpuReady    bool

	source      *Pixmap
	surface     *Pixmap
	texture     SurfaceTexture
	history     *History
	pool        *imagebuf.Pool
	initialized bool
}

// NewSession creates a session and starts its render goroutine. When no
// backend is configured and none is registered, the session runs CPU-only.
func NewSession(opts ...SessionOption) *Session {
	o := defaultSessionOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.backend == nil {
		o.backend = Backend()
	}

	pool := imagebuf.NewPool(snapshotPoolDepth)
	s := &Session{
		tasks:       make(chan func(), o.queueDepth),
		done:        make(chan struct{}),
		backend:     o.backend,
		ownsBackend: o.ownsBackend,
		pool:        pool,
		history:     NewHistory(o.historyCap, pool),
	}
	go s.run()
	return s
}

// run is the render goroutine: GPU context acquisition first, then the task
// loop. Tasks queued during context acquisition wait in the channel.
func (s *Session) run() {
	defer close(s.done)

	if s.backend != nil {
		if err := s.backend.Init(); err != nil {
			Logger().Warn("surface backend init failed, session is CPU-only",
				"backend", s.backend.Name(), "err", err)
			if s.ownsBackend {
				s.backend.Close()
			}
			s.backend = nil
		} else {
			s.gpuReady = true
			Logger().Info("render goroutine ready", "backend", s.backend.Name())
		}
	}

	for fn := range s.tasks {
		fn()
	}
	s.teardown()
}

// teardown releases the surface texture, history snapshots and, for a
// session-owned backend, the GPU context. Runs on the render goroutine as
// the final task-loop action on every exit path.
func (s *Session) teardown() {
	if s.texture != nil {
		s.texture.Release()
		s.texture = nil
	}
	s.history.Release()
	if s.surface != nil {
		s.pool.Put(s.surface.Data())
		s.surface = nil
	}
	s.source = nil
	s.initialized = false

	if s.ownsBackend && s.backend != nil {
		s.backend.Close()
	}
	s.backend = nil
	s.gpuReady = false
}

// submit queues fn for the render goroutine.
func (s *Session) submit(fn func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	s.tasks <- fn
	return nil
}

// submitWait queues fn and blocks until the render goroutine has executed
// it, after all previously submitted tasks.
func (s *Session) submitWait(fn func()) error {
	ran := make(chan struct{})
	if err := s.submit(func() {
		fn()
		close(ran)
	}); err != nil {
		return err
	}
	<-ran
	return nil
}

// OnSurfaceUpdated registers a callback invoked on the render goroutine
// after every visible surface change. The callback must be cheap; typical
// use is scheduling a repaint.
func (s *Session) OnSurfaceUpdated(fn func()) {
	if fn == nil {
		s.onUpdate.Store(nil)
		return
	}
	s.onUpdate.Store(&fn)
}

func (s *Session) notify() {
	if fn := s.onUpdate.Load(); fn != nil {
		(*fn)()
	}
}

// Initialize loads the source image, replacing any previous surface
// wholesale. The session copies src; the caller keeps ownership. Sources
// exceeding the backend's maximum texture dimension are downscaled to fit.
// Blocks until the surface is resident.
func (s *Session) Initialize(src *Pixmap) error {
	if src == nil || src.Width() <= 0 || src.Height() <= 0 {
		return fmt.Errorf("%w: empty source image", ErrSizeMismatch)
	}

	var initErr error
	if err := s.submitWait(func() {
		initErr = s.initialize(src)
	}); err != nil {
		return err
	}
	return initErr
}

func (s *Session) initialize(src *Pixmap) error {
	if s.gpuReady {
		if maxDim := s.backend.MaxTextureDim(); maxDim > 0 &&
			(src.Width() > maxDim || src.Height() > maxDim) {
			Logger().Info("source exceeds texture limit, downscaling",
				"width", src.Width(), "height", src.Height(), "limit", maxDim)
			src = FromImageFit(src, maxDim)
		}
	}

	// Re-initialization replaces everything.
	if s.texture != nil {
		s.texture.Release()
		s.texture = nil
	}
	s.history.Release()
	if s.surface != nil {
		s.pool.Put(s.surface.Data())
	}

	w, h := src.Width(), src.Height()
	s.source = src.Clone()
	s.surface = WrapPixmap(w, h, s.pool.Get(w*h*4))
	copy(s.surface.Data(), src.Data())

	if s.gpuReady {
		tex, err := s.backend.NewSurfaceTexture(w, h)
		if err != nil {
			Logger().Warn("surface texture allocation failed, session is CPU-only",
				"err", err)
		} else {
			s.texture = tex
			if err := tex.Upload(s.surface.Data()); err != nil {
				Logger().Warn("initial surface upload failed", "err", err)
			}
		}
	}

	s.history.Push(s.capture())
	s.initialized = true
	s.notify()
	return nil
}

// capture takes a pool-backed snapshot of the surface. The caller owns the
// result; history snapshots return their buffers through History.Release.
func (s *Session) capture() *Pixmap {
	snap := WrapPixmap(s.surface.Width(), s.surface.Height(),
		s.pool.Get(len(s.surface.Data())))
	copy(snap.Data(), s.surface.Data())
	return snap
}

// ApplyStroke renders one stroke segment with the given brush and tool onto
// the surface. Coordinates are normalized [0,1] image space; along a
// two-point segment the brush footprint is stamped at sub-radius spacing so
// fast drags leave no gaps. Asynchronous; returns ErrSessionClosed only when
// the session is shut down.
func (s *Session) ApplyStroke(seg Segment, b Brush, t Tool) error {
	return s.submit(func() {
		s.applyStroke(seg, b, t)
	})
}

func (s *Session) applyStroke(seg Segment, b Brush, t Tool) {
	if !s.initialized {
		Logger().Warn("stroke before initialization dropped", "tool", t)
		return
	}
	if !t.BrushDriven() {
		Logger().Warn("stroke with non-brush tool dropped", "tool", t)
		return
	}

	b = b.Clamped()
	seg = seg.Clamped()
	w, h := s.surface.Width(), s.surface.Height()
	im := kernel.Image{Pix: s.surface.Data(), Width: w, Height: h}

	from := Pt(seg.From.X*float64(w), seg.From.Y*float64(h))
	to := Pt(seg.To.X*float64(w), seg.To.Y*float64(h))

	st := kernel.Stamp{
		Radius:   b.Radius(),
		Strength: b.Strength,
		Hardness: b.Hardness,
	}

	// Dirty rectangle over all stamps, half-open.
	dx0, dy0, dx1, dy1 := w, h, 0, 0
	stamp := func(p Point) {
		st.X, st.Y = p.X, p.Y
		x0, y0, x1, y1 := st.Bounds(w, h)
		if x0 >= x1 || y0 >= y1 {
			return
		}
		dispatchStamp(im, st, t)
		if x0 < dx0 {
			dx0 = x0
		}
		if y0 < dy0 {
			dy0 = y0
		}
		if x1 > dx1 {
			dx1 = x1
		}
		if y1 > dy1 {
			dy1 = y1
		}
	}

	dist := to.Sub(from).Length()
	if seg.IsPoint() || dist == 0 {
		stamp(from)
	} else {
		dir := to.Sub(from).Mul(1 / dist)
		st.DirX, st.DirY = dir.X, dir.Y
		spacing := kernel.Spacing(st.Radius)
		var d float64
		for ; d < dist; d += spacing {
			stamp(from.Add(dir.Mul(d)))
		}
		stamp(to)
	}

	if dx0 < dx1 && dy0 < dy1 {
		s.uploadRegion(dx0, dy0, dx1-dx0, dy1-dy0)
		s.notify()
	}
}

// dispatchStamp routes one stamp to its tool kernel.
func dispatchStamp(im kernel.Image, st kernel.Stamp, t Tool) {
	switch t {
	case ToolBlemish:
		kernel.Blemish(im, st)
	case ToolSmooth:
		kernel.Smooth(im, st)
	case ToolSkinTone:
		kernel.SkinTone(im, st)
	case ToolWrinkle:
		kernel.Wrinkle(im, st)
	case ToolTeethWhitening:
		kernel.TeethWhitening(im, st)
	}
}

// uploadRegion mirrors a dirty surface rectangle to the GPU texture. Only
// the stroke's footprint crosses the bus, never the full frame.
func (s *Session) uploadRegion(x, y, w, h int) {
	if s.texture == nil {
		return
	}
	stride := s.surface.Width() * 4
	if err := s.texture.UploadRegion(x, y, w, h, s.surface.Data(), stride); err != nil {
		Logger().Warn("dirty region upload failed",
			"x", x, "y", y, "w", w, "h", h, "err", err)
	}
}

// uploadFull mirrors the whole surface to the GPU texture. Used after
// wholesale replacement (initialization, undo, redo, clear), never per
// stroke.
func (s *Session) uploadFull() {
	if s.texture == nil {
		return
	}
	if err := s.texture.Upload(s.surface.Data()); err != nil {
		Logger().Warn("surface upload failed", "err", err)
	}
}

// ApplyAuto runs the one-shot whole-image enhancement pass. Asynchronous.
func (s *Session) ApplyAuto() error {
	return s.submit(func() {
		if !s.initialized {
			Logger().Warn("auto enhance before initialization dropped")
			return
		}
		im := kernel.Image{
			Pix:    s.surface.Data(),
			Width:  s.surface.Width(),
			Height: s.surface.Height(),
		}
		kernel.Auto(im)
		s.uploadFull()
		s.notify()
	})
}

// Commit snapshots the current surface into history, ending one undoable
// action. Called once per gesture, not per segment. Asynchronous.
func (s *Session) Commit() error {
	return s.submit(func() {
		if !s.initialized {
			return
		}
		s.history.Push(s.capture())
	})
}

// SetSurface replaces the surface pixels wholesale. The pixmap must match
// the surface dimensions; ErrSizeMismatch otherwise. Blocks until applied.
func (s *Session) SetSurface(pm *Pixmap) error {
	var opErr error
	if err := s.submitWait(func() {
		if !s.initialized {
			opErr = ErrNotInitialized
			return
		}
		if err := pm.CloneInto(s.surface); err != nil {
			opErr = err
			return
		}
		s.uploadFull()
		s.notify()
	}); err != nil {
		return err
	}
	return opErr
}

// Undo restores the previous snapshot. Returns false when at the baseline,
// which is a no-op, or when the session is closed or uninitialized.
func (s *Session) Undo() bool {
	var ok bool
	if err := s.submitWait(func() {
		if !s.initialized {
			return
		}
		var snap *Pixmap
		if snap, ok = s.history.Undo(); !ok {
			return
		}
		copy(s.surface.Data(), snap.Data())
		s.uploadFull()
		s.notify()
	}); err != nil {
		return false
	}
	return ok
}

// Redo restores the next snapshot. Returns false when no redo tail exists
// or the session is closed or uninitialized.
func (s *Session) Redo() bool {
	var ok bool
	if err := s.submitWait(func() {
		if !s.initialized {
			return
		}
		var snap *Pixmap
		if snap, ok = s.history.Redo(); !ok {
			return
		}
		copy(s.surface.Data(), snap.Data())
		s.uploadFull()
		s.notify()
	}); err != nil {
		return false
	}
	return ok
}

// CanUndo reports whether a snapshot before the cursor exists.
func (s *Session) CanUndo() bool {
	var can bool
	if err := s.submitWait(func() {
		can = s.history.CanUndo()
	}); err != nil {
		return false
	}
	return can
}

// CanRedo reports whether a snapshot after the cursor exists.
func (s *Session) CanRedo() bool {
	var can bool
	if err := s.submitWait(func() {
		can = s.history.CanRedo()
	}); err != nil {
		return false
	}
	return can
}

// Clear restores the pristine source image and records the restoration as
// a new undoable action. Asynchronous.
func (s *Session) Clear() error {
	return s.submit(func() {
		if !s.initialized {
			return
		}
		copy(s.surface.Data(), s.source.Data())
		s.uploadFull()
		s.history.Push(s.capture())
		s.notify()
	})
}

// Snapshot reads the current surface back synchronously, after all
// previously submitted strokes have been applied. The caller owns the
// returned pixmap. Returns ErrNotInitialized before Initialize.
func (s *Session) Snapshot() (*Pixmap, error) {
	var (
		snap  *Pixmap
		opErr error
	)
	if err := s.submitWait(func() {
		if !s.initialized {
			opErr = ErrNotInitialized
			return
		}
		snap = s.surface.Clone()
	}); err != nil {
		return nil, err
	}
	return snap, opErr
}

// Confirm resolves the final edited image for export, reading the GPU
// texture back when one is resident. On readback failure it returns
// ErrReadbackFailed and no image; the caller must treat that as a
// cancellation, not export stale data.
func (s *Session) Confirm() (*Pixmap, error) {
	var (
		out   *Pixmap
		opErr error
	)
	if err := s.submitWait(func() {
		if !s.initialized {
			opErr = ErrNotInitialized
			return
		}
		out = NewPixmap(s.surface.Width(), s.surface.Height())
		if s.texture != nil {
			if err := s.texture.Download(out.Data()); err != nil {
				opErr = fmt.Errorf("%w: %w", ErrReadbackFailed, err)
				out = nil
				return
			}
			return
		}
		copy(out.Data(), s.surface.Data())
	}); err != nil {
		return nil, err
	}
	return out, opErr
}

// Cancel discards all pending and applied edits and shuts the session down
// without exporting anything.
func (s *Session) Cancel() {
	s.Close()
}

// Close shuts the render goroutine down after draining already-submitted
// tasks, then releases the texture, history and buffers. Idempotent; blocks
// until teardown completes.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		<-s.done
		return
	}
	s.closed = true
	close(s.tasks)
	s.mu.Unlock()
	<-s.done
}

// Stats returns a point-in-time snapshot of session state. The zero value
// is returned after Close.
func (s *Session) Stats() Stats {
	var st Stats
	if err := s.submitWait(func() {
		st.Initialized = s.initialized
		if s.surface != nil {
			st.Width = s.surface.Width()
			st.Height = s.surface.Height()
		}
		st.HistoryLen = s.history.Len()
		st.HistoryIndex = s.history.Index()
		if s.backend != nil {
			st.Backend = s.backend.Name()
			if r, ok := s.backend.(memoryStatsReporter); ok {
				st.GPUMemory = r.SurfaceMemoryStats()
			}
		}
	}); err != nil {
		return Stats{}
	}
	return st
}
