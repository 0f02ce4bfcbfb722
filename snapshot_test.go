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
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestStripGhosts(t *testing.T) {
	// A 3x3 padded buffer (stride 5, one ghost ring) with interior
	// 1..9 in row-major order.
	stride := 5
	data := make([]float64, stride*5)
	want := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9}
	k := 0
	for iy := 1; iy <= 3; iy++ {
		for ix := 1; ix <= 3; ix++ {
			data[iy*stride+ix] = want[k]
			k++
		}
	}
	got := stripGhosts(data, 3, 3, 1, 1, stride)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("stripGhosts()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestTextSinkWriteSnapshotExactRows(t *testing.T) {
	dir := t.TempDir()
	s := TextSink{
		Dir: dir, DXY: 0.5, XOff: 0, YOff: 0,
		Fields: Fields{MomentumX: true, Bathymetry: true},
		NX:     5, NY: 1,
	}
	h := []float64{1, 2, 3, 4, 5}
	hu := []float64{5, 4, 3, 2, 1}
	hv := []float64{0, 0, 0, 0, 0}
	b := []float64{2, 3, 4, 3, 2}

	if err := s.WriteSnapshot(0, h, hu, hv, b); err != nil {
		t.Fatal(err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "solution_0.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
	wantHeader := "x,y,height,momentum_x,bathymetry"
	if lines[0] != wantHeader {
		t.Fatalf("header = %q, want %q", lines[0], wantHeader)
	}
	wantRows := []string{
		"0.25,0.25,1,5,2",
		"0.75,0.25,2,4,3",
		"1.25,0.25,3,3,4",
		"1.75,0.25,4,2,3",
		"2.25,0.25,5,1,2",
	}
	for i, want := range wantRows {
		if lines[i+1] != want {
			t.Errorf("row %d = %q, want %q", i, lines[i+1], want)
		}
	}
}

func TestTextSinkOmitsDisabledFields(t *testing.T) {
	dir := t.TempDir()
	s := TextSink{Dir: dir, DXY: 1, NX: 1, NY: 1}
	if err := s.WriteSnapshot(0, []float64{1}, []float64{2}, []float64{3}, []float64{4}); err != nil {
		t.Fatal(err)
	}
	raw, err := os.ReadFile(filepath.Join(dir, "solution_0.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
	if lines[0] != "x,y,height" {
		t.Fatalf("header = %q, want %q", lines[0], "x,y,height")
	}
	if lines[1] != "0.5,0.5,1" {
		t.Fatalf("row = %q, want %q", lines[1], "0.5,0.5,1")
	}
}

func TestCoarsenIdentityAtStrideOne(t *testing.T) {
	data := []float64{1, 2, 3, 4}
	got := coarsen(data, 2, 2, 1)
	for i := range data {
		if got[i] != data[i] {
			t.Fatalf("coarsen(stride=1)[%d] = %v, want %v", i, got[i], data[i])
		}
	}
}

func TestCoarsenSubsamples(t *testing.T) {
	// 4x4 grid, stride 2: picks rows/cols 0 and 2.
	data := make([]float64, 16)
	for i := range data {
		data[i] = float64(i)
	}
	got := coarsen(data, 4, 4, 2)
	want := []float64{0, 2, 8, 10}
	if len(got) != len(want) {
		t.Fatalf("len(coarsen()) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("coarsen()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestNewBinarySinkWritesAndCloses(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.nc")
	bathy := []float64{-1, -1, -1, -1}

	sink, err := NewBinarySink(path, 2, 2, 1, bathy)
	if err != nil {
		t.Fatal(err)
	}
	h := []float64{1, 2, 3, 4}
	hu := []float64{0, 0, 0, 0}
	hv := []float64{0, 0, 0, 0}
	if err := sink.WriteSnapshot(0, h, hu, hv); err != nil {
		t.Fatal(err)
	}
	if err := sink.WriteSnapshot(1, h, hu, hv); err != nil {
		t.Fatal(err)
	}
	if err := sink.Close(); err != nil {
		t.Fatal(err)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Fatalf("expected a nonempty netCDF file at %s", path)
	}
}
