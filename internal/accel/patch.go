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

// Package accel implements the accelerator-offloaded 2D patch of spec
// §4.4. Grounded on Gekko3D's voxelrt/rt/app and voxelrt/rt/gpu
// packages for the github.com/cogentcore/webgpu/wgpu device-selection
// and compute-dispatch idiom, and on
// patches/wavepropagation2d/WavePropagation2d_kernel.{h,cpp} in the
// original source for the four-kernel shape (apply_ghost, copy,
// x_edge_update, y_edge_update) and the explicit setData()/getData()
// host/device transfer hooks.
package accel

import (
	"encoding/binary"
	"fmt"
	"math"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
)

// ErrDeviceUnavailable mirrors the sentinel of the same name in the
// root package; accel cannot import it without an import cycle, so the
// error is redeclared here. It is a distinct value, so the caller checks
// errors.Is against this sentinel as well as its own.
var ErrDeviceUnavailable = fmt.Errorf("tsunami: no compute device available")

type params struct {
	nx, ny, stride               uint32
	gravity, scaling              float32
	boundaryLeft, boundaryRight   uint32
	boundaryTop, boundaryBottom   uint32
	parity                        uint32
}

// paramsBufSize is the uniform buffer's allocated size: the WGSL Params
// struct is 40 bytes (ten u32/f32 fields), rounded up to a 16-byte
// multiple for the uniform binding.
const paramsBufSize = 48

// Patch is the accelerator-resident counterpart of tsunami.Patch2D. It
// owns device buffers for h, hu, hv, b and two scratch buffers, plus
// the four compute pipelines of spec §4.4.
type Patch struct {
	nx, ny, stride int

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	hBuf, huBuf, hvBuf, bBuf   *wgpu.Buffer
	scratchABuf, scratchBBuf   *wgpu.Buffer
	paramsBuf                  *wgpu.Buffer

	applyGhostPipeline  *wgpu.ComputePipeline
	copyPipeline        *wgpu.ComputePipeline
	xEdgePipeline       *wgpu.ComputePipeline
	yEdgePipeline       *wgpu.ComputePipeline

	// applyGhostBG binds h/hu/hv/b for in-place ghost writes. copyHBG and
	// copyHuBG/copyHvBG each bind the copy kernel's generic src/dst pair
	// to a different source: copyHBG always stages h into scratchA ahead
	// of both sweeps, while copyHuBG/copyHvBG stage the sweep-specific
	// momentum component into scratchB (huT for the x-sweep, hvT for the
	// y-sweep). xEdgeBG/yEdgeBG bind the scratch pair plus b as inputs
	// and h/hu (or h/hv) as outputs, mirroring xEdgeUpdateWGSL/
	// yEdgeUpdateWGSL's binding layout exactly.
	applyGhostBG                                *wgpu.BindGroup
	copyHBG, copyHuBG, copyHvBG                 *wgpu.BindGroup
	xEdgeBG, yEdgeBG                            *wgpu.BindGroup

	boundaryLeft, boundaryRight, boundaryTop, boundaryBottom uint32
}

// NewPatch selects a GPU device, falling back to a CPU device on
// failure, and builds the four kernels against an (nx, ny) grid.
// Failure at device query, shader compile, or buffer creation is
// reported wrapped in ErrDeviceUnavailable, matching spec §4.4's
// "fatal at startup with a diagnostic".
func NewPatch(nx, ny int, boundaryLeft, boundaryRight, boundaryTop, boundaryBottom uint32) (*Patch, error) {
	instance := wgpu.CreateInstance(nil)

	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		adapter, err = instance.RequestAdapter(&wgpu.RequestAdapterOptions{
			ForceFallbackAdapter: true,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: requesting adapter: %v", ErrDeviceUnavailable, err)
		}
	}

	device, err := adapter.RequestDevice(nil)
	if err != nil {
		return nil, fmt.Errorf("%w: requesting device: %v", ErrDeviceUnavailable, err)
	}

	p := &Patch{
		nx: nx, ny: ny, stride: nx + 2,
		instance: instance, adapter: adapter, device: device, queue: device.GetQueue(),
		boundaryLeft: boundaryLeft, boundaryRight: boundaryRight,
		boundaryTop: boundaryTop, boundaryBottom: boundaryBottom,
	}

	if err := p.createBuffers(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
	}
	if err := p.createPipelines(); err != nil {
		return nil, fmt.Errorf("%w: compiling kernels: %v", ErrDeviceUnavailable, err)
	}
	if err := p.createBindGroups(); err != nil {
		return nil, fmt.Errorf("%w: binding kernel resources: %v", ErrDeviceUnavailable, err)
	}
	return p, nil
}

func (p *Patch) cellCount() int { return p.stride * (p.ny + 2) }

func (p *Patch) createBuffers() error {
	size := uint64(p.cellCount()) * 4 // f32
	mk := func(label string) (*wgpu.Buffer, error) {
		return p.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: label,
			Size:  size,
			Usage: wgpu.BufferUsageStorage | wgpu.BufferUsageCopyDst | wgpu.BufferUsageCopySrc,
		})
	}
	var err error
	if p.hBuf, err = mk("h"); err != nil {
		return err
	}
	if p.huBuf, err = mk("hu"); err != nil {
		return err
	}
	if p.hvBuf, err = mk("hv"); err != nil {
		return err
	}
	if p.bBuf, err = mk("b"); err != nil {
		return err
	}
	if p.scratchABuf, err = mk("scratchA"); err != nil {
		return err
	}
	if p.scratchBBuf, err = mk("scratchB"); err != nil {
		return err
	}
	p.paramsBuf, err = p.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "params",
		Size:  paramsBufSize,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	return err
}

func (p *Patch) createPipelines() error {
	build := func(label, source string) (*wgpu.ComputePipeline, error) {
		mod, err := p.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
			Label:          label,
			WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: source},
		})
		if err != nil {
			return nil, err
		}
		return p.device.CreateComputePipeline(&wgpu.ComputePipelineDescriptor{
			Label:   label,
			Compute: wgpu.ProgrammableStageDescriptor{Module: mod, EntryPoint: "main"},
		})
	}

	var err error
	if p.applyGhostPipeline, err = build("apply_ghost", applyGhostWGSL); err != nil {
		return err
	}
	if p.copyPipeline, err = build("copy", copyWGSL); err != nil {
		return err
	}
	if p.xEdgePipeline, err = build("x_edge_update", xEdgeUpdateWGSL); err != nil {
		return err
	}
	if p.yEdgePipeline, err = build("y_edge_update", yEdgeUpdateWGSL); err != nil {
		return err
	}
	return nil
}

// createBindGroups binds each pipeline's declared storage/uniform
// inputs to the patch's buffers, using the pipeline's own auto-derived
// layout (group 0) the way wgpu's compute examples do when a shader's
// binding set is fixed at author time. Every kernel dispatch in
// TimeStep must go through one of these groups; an unbound dispatch is
// a validation failure on a real device.
func (p *Patch) createBindGroups() error {
	cellSize := uint64(p.cellCount()) * 4

	entry := func(binding uint32, buf *wgpu.Buffer, size uint64) wgpu.BindGroupEntry {
		return wgpu.BindGroupEntry{Binding: binding, Buffer: buf, Offset: 0, Size: size}
	}
	bind := func(pipeline *wgpu.ComputePipeline, entries ...wgpu.BindGroupEntry) (*wgpu.BindGroup, error) {
		return p.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
			Layout:  pipeline.GetBindGroupLayout(0),
			Entries: entries,
		})
	}

	var err error
	if p.applyGhostBG, err = bind(p.applyGhostPipeline,
		entry(0, p.paramsBuf, paramsBufSize),
		entry(1, p.hBuf, cellSize), entry(2, p.huBuf, cellSize),
		entry(3, p.hvBuf, cellSize), entry(4, p.bBuf, cellSize),
	); err != nil {
		return err
	}
	if p.copyHBG, err = bind(p.copyPipeline,
		entry(0, p.paramsBuf, paramsBufSize), entry(1, p.hBuf, cellSize), entry(2, p.scratchABuf, cellSize),
	); err != nil {
		return err
	}
	if p.copyHuBG, err = bind(p.copyPipeline,
		entry(0, p.paramsBuf, paramsBufSize), entry(1, p.huBuf, cellSize), entry(2, p.scratchBBuf, cellSize),
	); err != nil {
		return err
	}
	if p.copyHvBG, err = bind(p.copyPipeline,
		entry(0, p.paramsBuf, paramsBufSize), entry(1, p.hvBuf, cellSize), entry(2, p.scratchBBuf, cellSize),
	); err != nil {
		return err
	}
	if p.xEdgeBG, err = bind(p.xEdgePipeline,
		entry(0, p.paramsBuf, paramsBufSize),
		entry(1, p.scratchABuf, cellSize), entry(2, p.scratchBBuf, cellSize), entry(3, p.bBuf, cellSize),
		entry(4, p.hBuf, cellSize), entry(5, p.huBuf, cellSize),
	); err != nil {
		return err
	}
	if p.yEdgeBG, err = bind(p.yEdgePipeline,
		entry(0, p.paramsBuf, paramsBufSize),
		entry(1, p.scratchABuf, cellSize), entry(2, p.scratchBBuf, cellSize), entry(3, p.bBuf, cellSize),
		entry(4, p.hBuf, cellSize), entry(5, p.hvBuf, cellSize),
	); err != nil {
		return err
	}
	return nil
}

// SetData uploads the initial (h, hu, hv, b) state (spec §4.4, "the
// time loop must call setData() once after initial fill").
func (p *Patch) SetData(h, hu, hv, b []float64) {
	p.queue.WriteBuffer(p.hBuf, 0, float32Bytes(h))
	p.queue.WriteBuffer(p.huBuf, 0, float32Bytes(hu))
	p.queue.WriteBuffer(p.hvBuf, 0, float32Bytes(hv))
	p.queue.WriteBuffer(p.bBuf, 0, float32Bytes(b))
}

// GetData downloads the current (h, hu, hv) state. Called before every
// snapshot/checkpoint per spec §4.4.
func (p *Patch) GetData() (h, hu, hv []float64, err error) {
	h, err = p.readBuffer(p.hBuf)
	if err != nil {
		return nil, nil, nil, err
	}
	hu, err = p.readBuffer(p.huBuf)
	if err != nil {
		return nil, nil, nil, err
	}
	hv, err = p.readBuffer(p.hvBuf)
	if err != nil {
		return nil, nil, nil, err
	}
	return h, hu, hv, nil
}

func (p *Patch) readBuffer(src *wgpu.Buffer) ([]float64, error) {
	size := uint64(p.cellCount()) * 4
	staging, err := p.device.CreateBuffer(&wgpu.BufferDescriptor{
		Size:  size,
		Usage: wgpu.BufferUsageCopyDst | wgpu.BufferUsageMapRead,
	})
	if err != nil {
		return nil, err
	}
	defer staging.Release()

	encoder, err := p.device.CreateCommandEncoder(nil)
	if err != nil {
		return nil, err
	}
	encoder.CopyBufferToBuffer(src, 0, staging, 0, size)
	cmd, err := encoder.Finish(nil)
	if err != nil {
		return nil, err
	}
	p.queue.Submit(cmd)

	done := make(chan wgpu.BufferMapAsyncStatus, 1)
	staging.MapAsync(wgpu.MapModeRead, 0, size, func(status wgpu.BufferMapAsyncStatus) {
		done <- status
	})
	p.device.Poll(true, nil)
	if status := <-done; status != wgpu.BufferMapAsyncStatusSuccess {
		return nil, fmt.Errorf("mapping readback buffer: status %d", status)
	}
	raw := staging.GetMappedRange(0, uint(size))
	out := floatsFromBytes(raw)
	staging.Unmap()
	return out, nil
}

// TimeStep dispatches apply_ghost, copy (h, then the sweep's momentum
// component, into scratch), x_edge_update (ny+1 rows), apply_ghost,
// copy again, and y_edge_update (twice, once per row parity) — the
// same dimensional-splitting shape as Patch2D.TimeStep. Staging h/hu
// (or h/hv) into scratch before each sweep is load-bearing the same way
// Patch2D's hT/huT/hvT copies are: without it, an edge update would see
// flux already written by a neighboring edge in the same sweep.
func (p *Patch) TimeStep(scaling float64) error {
	cellWG := ceilDiv(p.cellCount(), 64)

	if err := p.writeParams(params{
		nx: uint32(p.nx), ny: uint32(p.ny), stride: uint32(p.stride),
		gravity: float32(9.80665), scaling: float32(scaling),
		boundaryLeft: p.boundaryLeft, boundaryRight: p.boundaryRight,
		boundaryTop: p.boundaryTop, boundaryBottom: p.boundaryBottom,
	}); err != nil {
		return err
	}
	if err := p.dispatch(p.applyGhostPipeline, p.applyGhostBG, ceilDiv(p.ny+2, 64), 1, 1); err != nil {
		return err
	}
	if err := p.dispatch(p.copyPipeline, p.copyHBG, cellWG, 1, 1); err != nil {
		return err
	}
	if err := p.dispatch(p.copyPipeline, p.copyHuBG, cellWG, 1, 1); err != nil {
		return err
	}
	if err := p.dispatch(p.xEdgePipeline, p.xEdgeBG, ceilDiv(p.nx+1, 8), ceilDiv(p.ny+1, 8), 1); err != nil {
		return err
	}
	if err := p.dispatch(p.applyGhostPipeline, p.applyGhostBG, ceilDiv(p.ny+2, 64), 1, 1); err != nil {
		return err
	}
	if err := p.dispatch(p.copyPipeline, p.copyHBG, cellWG, 1, 1); err != nil {
		return err
	}
	if err := p.dispatch(p.copyPipeline, p.copyHvBG, cellWG, 1, 1); err != nil {
		return err
	}
	for _, parity := range [2]uint32{0, 1} {
		if err := p.writeParams(params{
			nx: uint32(p.nx), ny: uint32(p.ny), stride: uint32(p.stride),
			gravity: float32(9.80665), scaling: float32(scaling),
			boundaryLeft: p.boundaryLeft, boundaryRight: p.boundaryRight,
			boundaryTop: p.boundaryTop, boundaryBottom: p.boundaryBottom,
			parity: parity,
		}); err != nil {
			return err
		}
		if err := p.dispatch(p.yEdgePipeline, p.yEdgeBG, ceilDiv(p.nx, 8), ceilDiv((p.ny+1)/2+1, 8), 1); err != nil {
			return err
		}
	}
	return nil
}

func (p *Patch) dispatch(pipeline *wgpu.ComputePipeline, bg *wgpu.BindGroup, wgX, wgY, wgZ int) error {
	encoder, err := p.device.CreateCommandEncoder(nil)
	if err != nil {
		return err
	}
	pass := encoder.BeginComputePass(nil)
	pass.SetPipeline(pipeline)
	pass.SetBindGroup(0, bg, nil)
	pass.DispatchWorkgroups(uint32(wgX), uint32(wgY), uint32(wgZ))
	pass.End()
	cmd, err := encoder.Finish(nil)
	if err != nil {
		return err
	}
	p.queue.Submit(cmd)
	p.device.Poll(true, nil)
	return nil
}

func (p *Patch) writeParams(v params) error {
	buf := make([]byte, paramsBufSize)
	binary.LittleEndian.PutUint32(buf[0:], v.nx)
	binary.LittleEndian.PutUint32(buf[4:], v.ny)
	binary.LittleEndian.PutUint32(buf[8:], v.stride)
	binary.LittleEndian.PutUint32(buf[12:], math.Float32bits(v.gravity))
	binary.LittleEndian.PutUint32(buf[16:], math.Float32bits(v.scaling))
	binary.LittleEndian.PutUint32(buf[20:], v.boundaryLeft)
	binary.LittleEndian.PutUint32(buf[24:], v.boundaryRight)
	binary.LittleEndian.PutUint32(buf[28:], v.boundaryTop)
	binary.LittleEndian.PutUint32(buf[32:], v.boundaryBottom)
	binary.LittleEndian.PutUint32(buf[36:], v.parity)
	p.queue.WriteBuffer(p.paramsBuf, 0, buf)
	return nil
}

func ceilDiv(n, d int) int {
	if n <= 0 {
		return 1
	}
	return (n + d - 1) / d
}

func float32Bytes(v []float64) []byte {
	out := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(float32(f)))
	}
	return out
}

func floatsFromBytes(raw []byte) []float64 {
	n := len(raw) / 4
	out := make([]float64, n)
	floats := unsafe.Slice((*float32)(unsafe.Pointer(&raw[0])), n)
	for i, f := range floats {
		out[i] = float64(f)
	}
	return out
}

// Release frees every device resource owned by the patch.
func (p *Patch) Release() {
	for _, b := range []*wgpu.Buffer{p.hBuf, p.huBuf, p.hvBuf, p.bBuf, p.scratchABuf, p.scratchBBuf, p.paramsBuf} {
		if b != nil {
			b.Release()
		}
	}
	if p.device != nil {
		p.device.Release()
	}
}
