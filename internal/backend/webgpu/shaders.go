//go:build windows

package webgpu

import "fmt"

// workgroupSize is the thread count per workgroup for element-wise kernels.
const workgroupSize = 256

// binaryShader builds the WGSL for a same-shape element-wise kernel.
// expr computes result[idx] from a[idx] and b[idx].
func binaryShader(expr string) string {
	return fmt.Sprintf(`
struct Params {
    size: u32,
}

@group(0) @binding(0) var<storage, read> a: array<f32>;
@group(0) @binding(1) var<storage, read> b: array<f32>;
@group(0) @binding(2) var<storage, read_write> result: array<f32>;
@group(0) @binding(3) var<uniform> params: Params;

@compute @workgroup_size(%d)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    if (idx < params.size) {
        result[idx] = %s;
    }
}
`, workgroupSize, expr)
}

// unaryShader builds the WGSL for an element-wise kernel over one input.
// expr computes result[idx] from x[idx].
func unaryShader(expr string) string {
	return fmt.Sprintf(`
struct Params {
    size: u32,
}

@group(0) @binding(0) var<storage, read> x: array<f32>;
@group(0) @binding(1) var<storage, read_write> result: array<f32>;
@group(0) @binding(2) var<uniform> params: Params;

@compute @workgroup_size(%d)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    if (idx < params.size) {
        result[idx] = %s;
    }
}
`, workgroupSize, expr)
}

// binaryShaders maps op names to compiled-on-demand WGSL sources.
var binaryShaders = map[string]string{
	"add":     binaryShader("a[idx] + b[idx]"),
	"sub":     binaryShader("a[idx] - b[idx]"),
	"mul":     binaryShader("a[idx] * b[idx]"),
	"div":     binaryShader("a[idx] / b[idx]"),
	"maximum": binaryShader("max(a[idx], b[idx])"),
	"minimum": binaryShader("min(a[idx], b[idx])"),
}

var unaryShaders = map[string]string{
	"neg":  unaryShader("-x[idx]"),
	"abs":  unaryShader("abs(x[idx])"),
	"exp":  unaryShader("exp(x[idx])"),
	"log":  unaryShader("log(x[idx])"),
	"sqrt": unaryShader("sqrt(x[idx])"),
}

// matmulShader computes C[M,N] = A[M,K] @ B[K,N] with one thread per
// output element.
const matmulShader = `
struct Params {
    m: u32,
    k: u32,
    n: u32,
}

@group(0) @binding(0) var<storage, read> a: array<f32>;
@group(0) @binding(1) var<storage, read> b: array<f32>;
@group(0) @binding(2) var<storage, read_write> result: array<f32>;
@group(0) @binding(3) var<uniform> params: Params;

@compute @workgroup_size(16, 16)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let row = global_id.y;
    let col = global_id.x;
    if (row >= params.m || col >= params.n) {
        return;
    }
    var sum: f32 = 0.0;
    for (var i: u32 = 0u; i < params.k; i = i + 1u) {
        sum = sum + a[row * params.k + i] * b[i * params.n + col];
    }
    result[row * params.n + col] = sum;
}
`
