package retouch

import (
	"errors"
	"sync"
)

// SurfaceTexture is the GPU-resident copy of the image surface. The render
// goroutine uploads the full raster once at initialization and then only the
// dirty region of each stroke; Download reads the resolved pixels back for
// snapshot capture and export.
type SurfaceTexture interface {
	// Width returns the texture width in pixels.
	Width() int

	// Height returns the texture height in pixels.
	Height() int

	// Upload replaces the full texture content. The buffer must hold
	// width*height*4 RGBA bytes.
	Upload(pix []uint8) error

	// UploadRegion replaces the rectangle (x,y)-(x+w,y+h) from pix, which is
	// addressed with the given stride in bytes and shares the texture's
	// coordinate space.
	UploadRegion(x, y, w, h int, pix []uint8, stride int) error

	// Download reads the current texture content back into dst, which must
	// hold width*height*4 bytes. It must reflect every upload issued before
	// it.
	Download(dst []uint8) error

	// Release frees the GPU resources. The texture must not be used
	// afterwards.
	Release()
}

// SurfaceBackend provides GPU surface textures. Implementations are
// registered by backend packages; users opt in via blank import:
//
//	import _ "github.com/gogpu/retouch/gpu" // enables the wgpu backend
//
// All SurfaceBackend methods are called from the session's render goroutine,
// which is the only holder of the GPU context.
type SurfaceBackend interface {
	// Name returns the backend identifier (e.g., "wgpu").
	Name() string

	// Init acquires the GPU context. It is called on the render goroutine
	// before any texture is created and must be idempotent.
	Init() error

	// Close releases the GPU context.
	Close()

	// MaxTextureDim returns the largest supported texture dimension, or 0
	// when unknown.
	MaxTextureDim() int

	// NewSurfaceTexture creates a texture for a surface of the given size.
	NewSurfaceTexture(width, height int) (SurfaceTexture, error)
}

var (
	backendMu sync.RWMutex
	backend   SurfaceBackend
)

// RegisterBackend registers a surface backend for GPU-resident surfaces.
//
// Only one backend can be registered; subsequent calls replace and close the
// previous one. Registration does not initialize the backend; context
// acquisition happens on each session's render goroutine, the only thread
// allowed to issue GPU commands.
func RegisterBackend(b SurfaceBackend) error {
	if b == nil {
		return errors.New("retouch: backend must not be nil")
	}
	backendMu.Lock()
	old := backend
	backend = b
	backendMu.Unlock()

	propagateLogger(b, Logger())

	if old != nil {
		old.Close()
	}
	return nil
}

// Backend returns the currently registered surface backend, or nil if none.
func Backend() SurfaceBackend {
	backendMu.RLock()
	b := backend
	backendMu.RUnlock()
	return b
}
