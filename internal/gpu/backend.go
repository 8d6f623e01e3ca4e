package gpu

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/core"

	"github.com/gogpu/retouch"
)

// Backend errors.
var (
	// ErrNoGPU is returned when no suitable GPU adapter is available.
	ErrNoGPU = errors.New("wgpu: no GPU adapter available")

	// ErrNotInitialized is returned when using the backend before Init.
	ErrNotInitialized = errors.New("wgpu: backend not initialized")
)

// fallbackMaxTextureDim is assumed when device limits are unavailable
// (shared-device mode). 8192 is the WebGPU guaranteed minimum for 2D
// textures on desktop-class adapters.
const fallbackMaxTextureDim = 8192

// Backend is the wgpu surface backend. It owns the GPU instance, adapter,
// device and queue (unless a shared device provider is configured), the
// compiled tool-pass shaders, and the texture memory manager.
//
// Init and Close run on a session's render goroutine; the backend must not
// be shared across concurrently running sessions' GPU work.
type Backend struct {
	mu sync.RWMutex

	instance *core.Instance
	adapter  core.AdapterID
	device   core.DeviceID
	queue    core.QueueID

	// provider supplies a shared device from the host application. When
	// set, the backend does not create its own instance/adapter/device.
	provider gpucontext.DeviceProvider

	shaders *ShaderSet
	memory  *MemoryManager

	maxTextureDim int
	initialized   bool
}

// NewBackend creates an uninitialized wgpu backend.
func NewBackend() *Backend {
	return &Backend{}
}

// Name returns the backend identifier.
func (b *Backend) Name() string { return "wgpu" }

// SetLogger sets the logger for the backend and its internal packages.
// Called by retouch.SetLogger to propagate logging configuration.
func (b *Backend) SetLogger(l *slog.Logger) {
	setLogger(l)
}

// SetDeviceProvider configures a shared GPU device from the host
// application (e.g., a gogpu window). Must be called before Init.
func (b *Backend) SetDeviceProvider(p gpucontext.DeviceProvider) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.initialized {
		return errors.New("wgpu: cannot set device provider after Init")
	}
	b.provider = p
	return nil
}

// Init acquires the GPU context and compiles the tool-pass shaders.
// Idempotent; called on the session's render goroutine before any texture
// is created.
func (b *Backend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.initialized {
		return nil
	}

	shaders, err := CompileShaders()
	if err != nil {
		return err
	}
	b.shaders = shaders

	if b.provider != nil {
		// Shared-device mode: the host owns instance, adapter and device.
		b.maxTextureDim = fallbackMaxTextureDim
		slogger().Info("wgpu backend initialized", "mode", "shared-device")
	} else if err := b.acquireDeviceLocked(); err != nil {
		return err
	}

	b.memory = NewMemoryManager(DefaultMemoryBudgetMB)
	b.initialized = true
	return nil
}

// acquireDeviceLocked creates instance, adapter, device and queue.
// Caller must hold mu.
func (b *Backend) acquireDeviceLocked() error {
	b.instance = core.NewInstance(&gputypes.InstanceDescriptor{
		Backends: gputypes.BackendsPrimary,
	})

	adapterID, err := b.instance.RequestAdapter(&gputypes.RequestAdapterOptions{
		PowerPreference: gputypes.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNoGPU, err)
	}
	b.adapter = adapterID

	if info, err := core.GetAdapterInfo(adapterID); err == nil {
		slogger().Info("wgpu adapter selected",
			"name", info.Name, "backend", info.Backend, "type", info.DeviceType)
	}

	deviceID, err := core.RequestDevice(adapterID, &gputypes.DeviceDescriptor{
		Label:          "retouch-device",
		RequiredLimits: gputypes.DefaultLimits(),
	})
	if err != nil {
		return fmt.Errorf("wgpu: device creation failed: %w", err)
	}
	b.device = deviceID

	queueID, err := core.GetDeviceQueue(deviceID)
	if err != nil {
		_ = core.DeviceDrop(deviceID)
		b.device = core.DeviceID{}
		return fmt.Errorf("wgpu: queue retrieval failed: %w", err)
	}
	b.queue = queueID

	b.maxTextureDim = fallbackMaxTextureDim
	if limits, err := core.GetDeviceLimits(deviceID); err == nil {
		b.maxTextureDim = int(limits.MaxTextureDimension2D)
	}

	return nil
}

// Close releases all backend resources in reverse order of creation.
func (b *Backend) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return
	}

	if b.memory != nil {
		b.memory.Close()
		b.memory = nil
	}

	if !b.device.IsZero() {
		if err := core.DeviceDrop(b.device); err != nil {
			slogger().Warn("error releasing device", "err", err)
		}
		b.device = core.DeviceID{}
	}
	if !b.adapter.IsZero() {
		if err := core.AdapterDrop(b.adapter); err != nil {
			slogger().Warn("error releasing adapter", "err", err)
		}
		b.adapter = core.AdapterID{}
	}

	b.instance = nil
	b.queue = core.QueueID{}
	b.shaders = nil
	b.initialized = false

	slogger().Info("wgpu backend closed")
}

// MaxTextureDim returns the largest supported texture dimension, or 0
// before initialization.
func (b *Backend) MaxTextureDim() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.maxTextureDim
}

// Shaders returns the compiled tool-pass shaders, or nil before Init.
func (b *Backend) Shaders() *ShaderSet {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.shaders
}

// NewSurfaceTexture creates a surface texture through the memory manager.
func (b *Backend) NewSurfaceTexture(width, height int) (retouch.SurfaceTexture, error) {
	b.mu.RLock()
	initialized := b.initialized
	memory := b.memory
	maxDim := b.maxTextureDim
	b.mu.RUnlock()

	if !initialized {
		return nil, ErrNotInitialized
	}
	if maxDim > 0 && (width > maxDim || height > maxDim) {
		return nil, fmt.Errorf("%w: %dx%d exceeds device limit %d",
			ErrInvalidDimensions, width, height, maxDim)
	}

	tex, err := memory.Alloc(width, height, "retouch-surface")
	if err != nil {
		return nil, err
	}
	memory.Touch(tex)
	return tex, nil
}

// MemoryStats returns current texture memory usage. The zero value is
// returned before initialization.
func (b *Backend) MemoryStats() MemoryStats {
	b.mu.RLock()
	memory := b.memory
	b.mu.RUnlock()

	if memory == nil {
		return MemoryStats{}
	}
	return memory.Stats()
}

// SurfaceMemoryStats reports texture memory usage through the root
// package's stats type. Picked up by Session.Stats.
func (b *Backend) SurfaceMemoryStats() retouch.GPUMemoryStats {
	s := b.MemoryStats()
	return retouch.GPUMemoryStats{
		BudgetBytes:   s.BudgetBytes,
		UsedBytes:     s.UsedBytes,
		TextureCount:  s.TextureCount,
		EvictionCount: s.EvictionCount,
	}
}
