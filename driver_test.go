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
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
)

func silentLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestDriverRunDamBreakProducesSnapshots(t *testing.T) {
	dir := t.TempDir()
	nx := 20
	patch, err := NewPatch1D(nx, Open, Open, FWave)
	if err != nil {
		t.Fatal(err)
	}
	patch.Fill(DamBreak1D{HL: 10, HR: 2, Split: 5, B: -10}, 0.5, 0)

	sink := &TextSink{Dir: dir, DXY: 0.5, Fields: Fields{MomentumX: true}, NX: nx, NY: 1}
	d := &Driver{
		Patch: patch, NX: nx, NY: 1,
		DXY: 0.5, EndTime: 0.05, SnapshotEvery: 1,
		ResolutionStride: 1,
		TextSink:         sink,
		Logger:           silentLogger(),
	}

	stats, err := d.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if stats.Compute <= 0 {
		t.Fatalf("expected nonzero compute time, got %v", stats.Compute)
	}
	if _, err := os.Stat(filepath.Join(dir, "solution_0.csv")); err != nil {
		t.Fatalf("expected an initial snapshot to be written: %v", err)
	}
}

func TestDriverRunReflectingWallStaysAtRest(t *testing.T) {
	dir := t.TempDir()
	nx := 10
	patch, err := NewPatch1D(nx, Closed, Closed, FWave)
	if err != nil {
		t.Fatal(err)
	}
	patch.Fill(flatLake{height: 4}, 1, 0)

	sink := &TextSink{Dir: dir, DXY: 1, NX: nx, NY: 1}
	d := &Driver{
		Patch: patch, NX: nx, NY: 1,
		DXY: 1, EndTime: 1, SnapshotEvery: 5,
		ResolutionStride: 1,
		TextSink:         sink,
		Logger:           silentLogger(),
	}
	if _, err := d.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	for _, v := range patch.Height() {
		if v != 4 {
			t.Fatalf("lake at rest disturbed: height = %v, want 4", v)
		}
	}
}

type flatLake struct {
	zero2D
	height float64
}

func (f flatLake) Height(x, y float64) float64    { return f.height }
func (f flatLake) MomentumX(x, y float64) float64 { return 0 }
func (f flatLake) Bathymetry(x, y float64) float64 { return -10 }

func TestDriverCheckpointRoundTrip(t *testing.T) {
	dir := t.TempDir()
	ckPath := filepath.Join(dir, "checkpoint.bin")
	nx := 10

	patch, err := NewPatch1D(nx, Open, Open, FWave)
	if err != nil {
		t.Fatal(err)
	}
	patch.Fill(DamBreak1D{HL: 8, HR: 3, Split: 5, B: -10}, 1, 0)

	checkpoints := CheckpointStore{Path: ckPath}
	ck := Checkpoint{
		NX: nx, NY: 1, DXY: 1,
		EndTime: 100, CurrentTime: 12, StepIndex: 5, NextSnapshotIndex: 1,
		BoundaryLeft: Open, BoundaryRight: Open,
		Height: append([]float64(nil), patch.Height()...), MomentumX: append([]float64(nil), patch.MomentumX()...),
		Bathymetry: append([]float64(nil), patch.Bathymetry()...),
	}
	if err := checkpoints.Save(ck); err != nil {
		t.Fatal(err)
	}

	restored, err := checkpoints.Load()
	if err != nil {
		t.Fatal(err)
	}
	patch2, err := NewPatch1D(nx, Open, Open, FWave)
	if err != nil {
		t.Fatal(err)
	}
	patch2.FillIndexed(RestartSetup{NX: restored.NX, Ck: restored})

	before, after := patch.Height(), patch2.Height()
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("restored height[%d] = %v, want %v", i, after[i], before[i])
		}
	}
	if restored.StepIndex != 5 || restored.CurrentTime != 12 {
		t.Fatalf("restored run state mismatch: step=%d time=%v", restored.StepIndex, restored.CurrentTime)
	}
}
