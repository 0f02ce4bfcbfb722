/*
Copyright © 2026 the Tsunami Lab authors.
This file is part of Tsunami Lab.

Tsunami Lab is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

Tsunami Lab is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with Tsunami Lab.  If not, see <http://www.gnu.org/licenses/>.
*/

//go:build accel

package accel

// The four kernels below mirror the host-side Patch2D.TimeStep sweep
// exactly (spec §4.4): apply_ghost writes the four boundary edges,
// copy replicates the current h/hu (or h/hv) into scratch storage the
// edge kernels read from, and the two edge kernels accumulate net
// updates from the f-wave solver. The x-edge kernel runs one invocation
// per row; the y-edge kernel is launched twice, once per row parity.
// Either way no two invocations of one dispatch write the same cell —
// the y-sweep uses the same even/odd coloring the CPU patch uses to
// avoid atomics (design note (i)).

const paramsWGSL = `
struct Params {
  nx: u32,
  ny: u32,
  stride: u32,
  gravity: f32,
  scaling: f32,
  boundary_left: u32,
  boundary_right: u32,
  boundary_top: u32,
  boundary_bottom: u32,
  parity: u32,
}
@group(0) @binding(0) var<uniform> params: Params;
`

const applyGhostWGSL = paramsWGSL + `
@group(0) @binding(1) var<storage, read_write> h: array<f32>;
@group(0) @binding(2) var<storage, read_write> hu: array<f32>;
@group(0) @binding(3) var<storage, read_write> hv: array<f32>;
@group(0) @binding(4) var<storage, read_write> b: array<f32>;

const CLOSED_WALL_BATHYMETRY: f32 = 25.0;

fn ghost(mode: u32, interior: u32) -> vec4<f32> {
  if (mode == 0u) {
    return vec4<f32>(h[interior], hu[interior], hv[interior], b[interior]);
  }
  return vec4<f32>(0.0, 0.0, 0.0, CLOSED_WALL_BATHYMETRY);
}

@compute @workgroup_size(64)
fn main(@builtin(global_invocation_id) gid: vec3<u32>) {
  let i = gid.x;
  if (i < params.ny) {
    let left = i + 1u;
    let g = ghost(params.boundary_left, (left) * params.stride + 1u);
    let idx = (left) * params.stride;
    h[idx] = g.x; hu[idx] = g.y; hv[idx] = g.z; b[idx] = g.w;

    let g2 = ghost(params.boundary_right, (left) * params.stride + params.nx);
    let idx2 = (left) * params.stride + params.nx + 1u;
    h[idx2] = g2.x; hu[idx2] = g2.y; hv[idx2] = g2.z; b[idx2] = g2.w;
  }
  if (i < params.nx + 2u) {
    let g = ghost(params.boundary_top, params.stride + i);
    h[i] = g.x; hu[i] = g.y; hv[i] = g.z; b[i] = g.w;

    let bottomRow = params.ny * params.stride;
    let g2 = ghost(params.boundary_bottom, bottomRow + i);
    let idx2 = (params.ny + 1u) * params.stride + i;
    h[idx2] = g2.x; hu[idx2] = g2.y; hv[idx2] = g2.z; b[idx2] = g2.w;
  }
}
`

const copyWGSL = paramsWGSL + `
@group(0) @binding(1) var<storage, read> src: array<f32>;
@group(0) @binding(2) var<storage, read_write> dst: array<f32>;

@compute @workgroup_size(64)
fn main(@builtin(global_invocation_id) gid: vec3<u32>) {
  if (gid.x < arrayLength(&src)) {
    dst[gid.x] = src[gid.x];
  }
}
`

// xEdgeUpdateWGSL computes net updates across vertical edges (the
// x-sweep). Each invocation owns one full row, so no coloring is
// needed on this axis — distinct rows never touch the same cell.
const xEdgeUpdateWGSL = paramsWGSL + `
@group(0) @binding(1) var<storage, read> hT: array<f32>;
@group(0) @binding(2) var<storage, read> huT: array<f32>;
@group(0) @binding(3) var<storage, read> b: array<f32>;
@group(0) @binding(4) var<storage, read_write> h: array<f32>;
@group(0) @binding(5) var<storage, read_write> hu: array<f32>;

fn net_updates(hl: f32, hr: f32, hul: f32, hur: f32, bl: f32, br: f32) -> array<vec2<f32>, 2> {
  // Mirrors FWaveSolver.NetUpdates on the host (solver.go).
  var out: array<vec2<f32>, 2>;
  let ul = hul / hl;
  let ur = hur / hr;
  let sqrt_hl = sqrt(hl);
  let sqrt_hr = sqrt(hr);
  let h_roe = 0.5 * (hl + hr);
  let u_roe = (ul * sqrt_hl + ur * sqrt_hr) / (sqrt_hl + sqrt_hr);
  let c_roe = sqrt(params.gravity * h_roe);
  let lambda1 = u_roe - c_roe;
  let lambda2 = u_roe + c_roe;

  let fl1 = hul * ul + 0.5 * params.gravity * hl * hl;
  let fr1 = hur * ur + 0.5 * params.gravity * hr * hr;
  let delta_f0 = hur - hul;
  let delta_f1 = fr1 - fl1 - (-0.5 * params.gravity * (br - bl) * (hl + hr));

  let denom = lambda2 - lambda1;
  var alpha1 = 0.0;
  var alpha2 = 0.0;
  if (denom != 0.0) {
    alpha1 = (lambda2 * delta_f0 - delta_f1) / denom;
    alpha2 = (delta_f1 - lambda1 * delta_f0) / denom;
  }

  var left = vec2<f32>(0.0, 0.0);
  var right = vec2<f32>(0.0, 0.0);
  if (lambda1 < 0.0) { left += vec2<f32>(alpha1, alpha1 * lambda1); }
  else if (lambda1 > 0.0) { right += vec2<f32>(alpha1, alpha1 * lambda1); }
  else { left += 0.5 * vec2<f32>(alpha1, alpha1 * lambda1); right += 0.5 * vec2<f32>(alpha1, alpha1 * lambda1); }
  if (lambda2 < 0.0) { left += vec2<f32>(alpha2, alpha2 * lambda2); }
  else if (lambda2 > 0.0) { right += vec2<f32>(alpha2, alpha2 * lambda2); }
  else { left += 0.5 * vec2<f32>(alpha2, alpha2 * lambda2); right += 0.5 * vec2<f32>(alpha2, alpha2 * lambda2); }

  out[0] = left; out[1] = right;
  return out;
}

@compute @workgroup_size(8, 8)
fn main(@builtin(global_invocation_id) gid: vec3<u32>) {
  let y = gid.y;
  if (gid.x != 0u || y > params.ny) { return; }

  let row = y * params.stride;
  for (var x = 0u; x <= params.nx; x = x + 1u) {
    let cl = row + x;
    let cr = row + x + 1u;

    let upd = net_updates(hT[cl], hT[cr], huT[cl], huT[cr], b[cl], b[cr]);
    h[cl] = h[cl] - params.scaling * upd[0].x;
    hu[cl] = hu[cl] - params.scaling * upd[0].y;
    h[cr] = h[cr] - params.scaling * upd[1].x;
    hu[cr] = hu[cr] - params.scaling * upd[1].y;
  }
}
`

// yEdgeUpdateWGSL computes net updates across horizontal edges (the
// y-sweep). Dispatched twice per time step, once per params.parity, so
// that the two invocations touching a shared row are never in flight
// together.
const yEdgeUpdateWGSL = paramsWGSL + `
@group(0) @binding(1) var<storage, read> hT: array<f32>;
@group(0) @binding(2) var<storage, read> hvT: array<f32>;
@group(0) @binding(3) var<storage, read> b: array<f32>;
@group(0) @binding(4) var<storage, read_write> h: array<f32>;
@group(0) @binding(5) var<storage, read_write> hv: array<f32>;

fn net_updates(hl: f32, hr: f32, hul: f32, hur: f32, bl: f32, br: f32) -> array<vec2<f32>, 2> {
  var out: array<vec2<f32>, 2>;
  let ul = hul / hl;
  let ur = hur / hr;
  let sqrt_hl = sqrt(hl);
  let sqrt_hr = sqrt(hr);
  let h_roe = 0.5 * (hl + hr);
  let u_roe = (ul * sqrt_hl + ur * sqrt_hr) / (sqrt_hl + sqrt_hr);
  let c_roe = sqrt(params.gravity * h_roe);
  let lambda1 = u_roe - c_roe;
  let lambda2 = u_roe + c_roe;

  let fl1 = hul * ul + 0.5 * params.gravity * hl * hl;
  let fr1 = hur * ur + 0.5 * params.gravity * hr * hr;
  let delta_f0 = hur - hul;
  let delta_f1 = fr1 - fl1 - (-0.5 * params.gravity * (br - bl) * (hl + hr));

  let denom = lambda2 - lambda1;
  var alpha1 = 0.0;
  var alpha2 = 0.0;
  if (denom != 0.0) {
    alpha1 = (lambda2 * delta_f0 - delta_f1) / denom;
    alpha2 = (delta_f1 - lambda1 * delta_f0) / denom;
  }

  var left = vec2<f32>(0.0, 0.0);
  var right = vec2<f32>(0.0, 0.0);
  if (lambda1 < 0.0) { left += vec2<f32>(alpha1, alpha1 * lambda1); }
  else if (lambda1 > 0.0) { right += vec2<f32>(alpha1, alpha1 * lambda1); }
  else { left += 0.5 * vec2<f32>(alpha1, alpha1 * lambda1); right += 0.5 * vec2<f32>(alpha1, alpha1 * lambda1); }
  if (lambda2 < 0.0) { left += vec2<f32>(alpha2, alpha2 * lambda2); }
  else if (lambda2 > 0.0) { right += vec2<f32>(alpha2, alpha2 * lambda2); }
  else { left += 0.5 * vec2<f32>(alpha2, alpha2 * lambda2); right += 0.5 * vec2<f32>(alpha2, alpha2 * lambda2); }

  out[0] = left; out[1] = right;
  return out;
}

@compute @workgroup_size(8, 8)
fn main(@builtin(global_invocation_id) gid: vec3<u32>) {
  let x = gid.x;
  let y = gid.y * 2u + params.parity;
  if (x >= params.nx || y > params.ny) { return; }

  let cd = y * params.stride + x + 1u;
  let cu = (y + 1u) * params.stride + x + 1u;

  let upd = net_updates(hT[cd], hT[cu], hvT[cd], hvT[cu], b[cd], b[cu]);
  h[cd] = h[cd] - params.scaling * upd[0].x;
  hv[cd] = hv[cd] - params.scaling * upd[0].y;
  h[cu] = h[cu] - params.scaling * upd[1].x;
  hv[cu] = hv[cu] - params.scaling * upd[1].y;
}
`
