// Package gpu registers the wgpu surface backend for GPU-resident retouch
// surfaces.
//
// Import this package to keep the image surface resident as a GPU texture
// with per-stroke dirty-region uploads. Context acquisition happens lazily
// on each session's render goroutine, so a missing GPU (no Vulkan/Metal/DX12
// available) degrades to CPU-only sessions instead of failing registration.
//
// Usage:
//
//	import _ "github.com/gogpu/retouch/gpu" // enable the wgpu backend
package gpu

import (
	"github.com/gogpu/gpucontext"

	"github.com/gogpu/retouch"
	gpuimpl "github.com/gogpu/retouch/internal/gpu"
)

// backend is the process-wide wgpu backend instance.
var backend = gpuimpl.NewBackend()

func init() {
	if err := retouch.RegisterBackend(backend); err != nil {
		retouch.Logger().Warn("wgpu surface backend not available", "err", err)
	}
}

// SetDeviceProvider configures the backend to use a shared GPU device from
// an external provider (e.g., a gogpu window) instead of creating its own
// instance. Call before the first session is created.
func SetDeviceProvider(provider gpucontext.DeviceProvider) error {
	return backend.SetDeviceProvider(provider)
}
