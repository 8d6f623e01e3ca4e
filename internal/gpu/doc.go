// Package gpu implements the wgpu-backed surface backend for the retouch
// core: GPU context acquisition, surface texture lifetime with a memory
// budget, and WGSL tool-pass shader compilation.
//
// The backend is registered through the public gpu subpackage; sessions
// reach it only via the retouch.SurfaceBackend interface, and every call
// happens on a session's render goroutine, the sole holder of the GPU
// context.
package gpu
