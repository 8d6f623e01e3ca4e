package gpu

import (
	"fmt"

	"github.com/gogpu/naga"
)

// WGSL sources for the tool passes. The local-edit pass covers the
// brush-driven tools (the footprint weight and blend target are uniform
// parameters), the tone pass covers auto enhancement, and blit copies the
// surface texture into the presentation target.

const blitShaderWGSL = `
@group(0) @binding(0) var src: texture_2d<f32>;
@group(0) @binding(1) var dst: texture_storage_2d<rgba8unorm, write>;

@compute @workgroup_size(8, 8)
fn main(@builtin(global_invocation_id) gid: vec3<u32>) {
    let dims = textureDimensions(src);
    if (gid.x >= dims.x || gid.y >= dims.y) {
        return;
    }
    let texel = textureLoad(src, vec2<i32>(gid.xy), 0);
    textureStore(dst, vec2<i32>(gid.xy), texel);
}
`

const localEditShaderWGSL = `
struct Params {
    center: vec2<f32>,
    radius: f32,
    strength: f32,
    hardness: f32,
    hard_edge: f32,
    _pad: vec2<f32>,
};

@group(0) @binding(0) var<uniform> params: Params;
@group(0) @binding(1) var src: texture_2d<f32>;
@group(0) @binding(2) var dst: texture_storage_2d<rgba8unorm, write>;

fn footprint_weight(p: vec2<f32>) -> f32 {
    let d = p - params.center;
    if (params.hard_edge > 0.5) {
        if (abs(d.x) < params.radius && abs(d.y) < params.radius) {
            return 1.0;
        }
        return 0.0;
    }
    let dist = length(d);
    if (dist >= params.radius) {
        return 0.0;
    }
    let t = dist / params.radius;
    let gamma = 1.0 + 2.0 * (1.0 - params.hardness);
    return pow(1.0 - t, gamma);
}

@compute @workgroup_size(8, 8)
fn main(@builtin(global_invocation_id) gid: vec3<u32>) {
    let dims = textureDimensions(src);
    if (gid.x >= dims.x || gid.y >= dims.y) {
        return;
    }
    let p = vec2<f32>(f32(gid.x) + 0.5, f32(gid.y) + 0.5);
    let w = footprint_weight(p) * params.strength;

    var sum = vec4<f32>(0.0);
    for (var dy = -1; dy <= 1; dy = dy + 1) {
        for (var dx = -1; dx <= 1; dx = dx + 1) {
            let q = clamp(vec2<i32>(gid.xy) + vec2<i32>(dx, dy),
                vec2<i32>(0), vec2<i32>(dims) - vec2<i32>(1));
            sum = sum + textureLoad(src, q, 0);
        }
    }
    let blurred = sum / 9.0;

    let texel = textureLoad(src, vec2<i32>(gid.xy), 0);
    textureStore(dst, vec2<i32>(gid.xy), mix(texel, blurred, w));
}
`

const toneShaderWGSL = `
struct ToneParams {
    lo: f32,
    inv_range: f32,
    blur_mix: f32,
    _pad: f32,
};

@group(0) @binding(0) var<uniform> params: ToneParams;
@group(0) @binding(1) var src: texture_2d<f32>;
@group(0) @binding(2) var dst: texture_storage_2d<rgba8unorm, write>;

@compute @workgroup_size(8, 8)
fn main(@builtin(global_invocation_id) gid: vec3<u32>) {
    let dims = textureDimensions(src);
    if (gid.x >= dims.x || gid.y >= dims.y) {
        return;
    }
    let texel = textureLoad(src, vec2<i32>(gid.xy), 0);
    let stretched = clamp((texel.rgb - vec3<f32>(params.lo)) * params.inv_range,
        vec3<f32>(0.0), vec3<f32>(1.0));
    textureStore(dst, vec2<i32>(gid.xy), vec4<f32>(stretched, texel.a));
}
`

// ShaderSet holds the SPIR-V for all tool passes, compiled once at backend
// initialization. Compiling at Init validates the sources and fails fast on a
// broken toolchain; dispatching the passes is staged on core exposing compute
// texture writes, until which the texture staging copy carries the content.
type ShaderSet struct {
	// Blit copies the surface texture to the presentation target.
	Blit []uint32

	// LocalEdit is the footprint-weighted local blend used by the
	// brush-driven tools.
	LocalEdit []uint32

	// Tone is the whole-image tone stretch used by auto enhancement.
	Tone []uint32
}

// CompileShaders compiles all WGSL tool-pass sources to SPIR-V.
func CompileShaders() (*ShaderSet, error) {
	blit, err := compileWGSL("blit", blitShaderWGSL)
	if err != nil {
		return nil, err
	}
	local, err := compileWGSL("local_edit", localEditShaderWGSL)
	if err != nil {
		return nil, err
	}
	tone, err := compileWGSL("tone", toneShaderWGSL)
	if err != nil {
		return nil, err
	}
	return &ShaderSet{Blit: blit, LocalEdit: local, Tone: tone}, nil
}

// compileWGSL compiles one WGSL source to SPIR-V uint32 words.
// SPIR-V is little-endian 32-bit words.
func compileWGSL(label, source string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("wgpu: failed to compile %s shader: %w", label, err)
	}

	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return words, nil
}
