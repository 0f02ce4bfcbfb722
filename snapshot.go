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

package tsunami

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/ctessum/cdf"
)

// stripGhosts extracts the nx*ny interior of a padded row-major buffer,
// given the ghost widths on each axis and the buffer's row stride.
// Grounded on spec §4.6's "Ghost stripping" paragraph. Patch2D's
// accessors call it, so the sinks and the checkpoint store receive
// arrays that are already ghost-stripped.
func stripGhosts(data []float64, nx, ny, paddingX, paddingY, stride int) []float64 {
	out := make([]float64, nx*ny)
	for iy := 0; iy < ny; iy++ {
		src := (iy+paddingY)*stride + paddingX
		copy(out[iy*nx:(iy+1)*nx], data[src:src+nx])
	}
	return out
}

// Fields selects which per-cell quantities a TextSink emits. Height is
// always emitted; the rest are opt-in per spec §4.6 ("omitted fields are
// omitted from both header and rows"). BinarySink does not use Fields:
// it always writes height, momentum_x and momentum_y.
type Fields struct {
	MomentumX  bool
	MomentumY  bool
	Bathymetry bool
}

// TextSink writes CSV snapshot rows (spec §4.6, testable property #1).
// Grounded on the teacher's repeated use of encoding/csv for small
// tabular output; no pack library specializes in ad hoc row CSV beyond
// what the standard library already provides, so this corner is
// deliberately standard library.
type TextSink struct {
	Dir                string
	DXY, XOff, YOff    float64
	Fields             Fields
	NX, NY             int
}

// WriteSnapshot writes one CSV file named solution_<index>.csv
// containing a header row and one data row per interior cell, in
// row-major (iy, ix) order. h, hu, hv, b are already ghost-stripped,
// length NX*NY (NY=1 for a 1D patch).
func (s TextSink) WriteSnapshot(index int, h, hu, hv, b []float64) error {
	path := fmt.Sprintf("%s/solution_%d.csv", s.Dir, index)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("tsunami: writing text snapshot: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"x", "y", "height"}
	if s.Fields.MomentumX {
		header = append(header, "momentum_x")
	}
	if s.Fields.MomentumY {
		header = append(header, "momentum_y")
	}
	if s.Fields.Bathymetry {
		header = append(header, "bathymetry")
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("tsunami: writing text snapshot: %w", err)
	}

	for iy := 0; iy < s.NY; iy++ {
		posY := (float64(iy)+0.5)*s.DXY - s.YOff
		for ix := 0; ix < s.NX; ix++ {
			posX := (float64(ix)+0.5)*s.DXY - s.XOff
			i := iy*s.NX + ix
			row := []string{formatFloat(posX), formatFloat(posY), formatFloat(h[i])}
			if s.Fields.MomentumX {
				row = append(row, formatFloat(hu[i]))
			}
			if s.Fields.MomentumY {
				row = append(row, formatFloat(hv[i]))
			}
			if s.Fields.Bathymetry {
				row = append(row, formatFloat(b[i]))
			}
			if err := w.Write(row); err != nil {
				return fmt.Errorf("tsunami: writing text snapshot: %w", err)
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("tsunami: writing text snapshot: %w", err)
	}
	return nil
}

func formatFloat(v float64) string {
	return fmt.Sprintf("%g", v)
}

// BinarySink is the production 2D snapshot writer: one time-indexed
// netCDF file, opened once, with bathymetry written as a static
// variable and height/momentum_x/momentum_y appended as a time slice
// per snapshot, at resolution_stride coarsening. Grounded directly on
// vargrid.go's CTMData.Write (cdf.NewHeader / cdf.Create / writeNCF).
type BinarySink struct {
	file   *os.File
	cfile  *cdf.File
	nx, ny int
	stride int
	record int
}

// NewBinarySink creates path and writes a netCDF header describing a
// (time, y, x) grid of the post-stride dimensions, plus a static
// bathymetry variable written immediately from bathy (ghost-stripped,
// full resolution, length nx*ny).
func NewBinarySink(path string, nx, ny, resolutionStride int, bathy []float64) (*BinarySink, error) {
	outNX := (nx + resolutionStride - 1) / resolutionStride
	outNY := (ny + resolutionStride - 1) / resolutionStride

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("tsunami: creating binary snapshot file: %w", err)
	}

	h := cdf.NewHeader(
		[]string{"time", "y", "x"},
		[]int{0, outNY, outNX})
	h.AddAttribute("", "comment", "tsunami-lab shallow-water simulation output")
	h.AddVariable("time", []string{"time"}, []float64{0})
	h.AddVariable("bathymetry", []string{"y", "x"}, []float32{0})
	h.AddVariable("height", []string{"time", "y", "x"}, []float32{0})
	h.AddVariable("momentum_x", []string{"time", "y", "x"}, []float32{0})
	h.AddVariable("momentum_y", []string{"time", "y", "x"}, []float32{0})
	h.Define()

	cf, err := cdf.Create(f, h)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("tsunami: writing binary snapshot header: %w", err)
	}

	coarse := coarsen(bathy, nx, ny, resolutionStride)
	if err := writeStatic(cf, "bathymetry", coarse); err != nil {
		f.Close()
		return nil, err
	}

	return &BinarySink{file: f, cfile: cf, nx: nx, ny: ny, stride: resolutionStride}, nil
}

// WriteSnapshot appends one time slice. h, hu, hv are ghost-stripped,
// full-resolution (length nx*ny); they are coarsened to the sink's
// output resolution before being written.
func (s *BinarySink) WriteSnapshot(simTime float64, h, hu, hv []float64) error {
	rec := s.record
	timeWriter := s.cfile.Writer("time", []int{rec}, nil)
	if _, err := timeWriter.Write([]float64{simTime}); err != nil {
		return fmt.Errorf("tsunami: writing binary snapshot time: %w", err)
	}

	for _, v := range []struct {
		name string
		data []float64
	}{
		{"height", h},
		{"momentum_x", hu},
		{"momentum_y", hv},
	} {
		coarse := coarsen(v.data, s.nx, s.ny, s.stride)
		data32 := make([]float32, len(coarse))
		for i, e := range coarse {
			data32[i] = float32(e)
		}
		w := s.cfile.Writer(v.name, []int{rec, 0, 0}, nil)
		if _, err := w.Write(data32); err != nil {
			return fmt.Errorf("tsunami: writing binary snapshot %s: %w", v.name, err)
		}
	}

	s.record++
	return cdf.UpdateNumRecs(s.file)
}

// Close closes the underlying file. The record count is already
// up to date: WriteSnapshot updates it after every slice.
func (s *BinarySink) Close() error {
	return s.file.Close()
}

func writeStatic(f *cdf.File, name string, data []float64) error {
	data32 := make([]float32, len(data))
	for i, e := range data {
		data32[i] = float32(e)
	}
	end := f.Header.Lengths(name)
	start := make([]int, len(end))
	w := f.Writer(name, start, end)
	if _, err := w.Write(data32); err != nil {
		return fmt.Errorf("tsunami: writing binary snapshot %s: %w", name, err)
	}
	return nil
}

// coarsen takes every stride-th cell in each axis of a row-major nx*ny
// buffer (spec §4.6, resolution_stride).
func coarsen(data []float64, nx, ny, stride int) []float64 {
	if stride <= 1 {
		out := make([]float64, len(data))
		copy(out, data)
		return out
	}
	outNX := (nx + stride - 1) / stride
	outNY := (ny + stride - 1) / stride
	out := make([]float64, 0, outNX*outNY)
	for iy := 0; iy < ny; iy += stride {
		for ix := 0; ix < nx; ix += stride {
			out = append(out, data[iy*nx+ix])
		}
	}
	return out
}
