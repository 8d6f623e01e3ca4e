// Package kernel implements the per-tool pixel transforms of the retouch
// core: footprint-weighted local edits (blemish, smooth, skin tone, wrinkle,
// teeth whitening) and the one-shot whole-image auto pass.
//
// The package operates on raw RGBA buffers and deliberately does not import
// the root package; the session hands it the surface pixels and a Stamp
// describing one brush application. Every transform writes only where the
// stamp's footprint weight is non-zero, which is what confines an edit to
// the brush region.
package kernel
