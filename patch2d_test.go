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
	"math"
	"testing"
)

func TestNewPatch2DInvalidSolver(t *testing.T) {
	boundary := EdgeBoundary{Open, Open, Open, Open}
	if _, err := NewPatch2D(4, 4, boundary, SolverKind(99)); err != ErrInvalidSolver {
		t.Fatalf("got %v, want ErrInvalidSolver", err)
	}
}

func TestPatch2DLakeAtRest(t *testing.T) {
	boundary := EdgeBoundary{Closed, Closed, Closed, Closed}
	p, err := NewPatch2D(10, 10, boundary, FWave)
	if err != nil {
		t.Fatal(err)
	}
	p.Fill(lakeAtRest2D{height: 3}, 1, 0, 0)

	before := append([]float64(nil), p.Height()...)
	for step := 0; step < 20; step++ {
		if err := p.TimeStep(0.01); err != nil {
			t.Fatalf("step %d: %v", step, err)
		}
	}
	after := p.Height()
	for i := range before {
		if math.Abs(after[i]-before[i]) > 1e-9 {
			t.Fatalf("lake at rest disturbed at cell %d: before=%v after=%v", i, before[i], after[i])
		}
	}
}

type lakeAtRest2D struct{ height float64 }

func (l lakeAtRest2D) Height(x, y float64) float64    { return l.height - l.Bathymetry(x, y) }
func (l lakeAtRest2D) MomentumX(x, y float64) float64 { return 0 }
func (l lakeAtRest2D) MomentumY(x, y float64) float64 { return 0 }
func (l lakeAtRest2D) Bathymetry(x, y float64) float64 {
	if x > 3 && x < 7 {
		return -0.2 - 0.05*(x-5)*(x-5)
	}
	return -0.2
}

func TestPatch2DReflectingWallSymmetry(t *testing.T) {
	// A radially symmetric dam break centered on the domain, with fully
	// closed boundaries, stays mirror-symmetric in both axes: cells that
	// are reflections of each other across x = 10 or y = 10 see the same
	// height after any number of steps.
	boundary := EdgeBoundary{Closed, Closed, Closed, Closed}
	p, err := NewPatch2D(20, 20, boundary, FWave)
	if err != nil {
		t.Fatal(err)
	}
	p.Fill(DamBreak2D{CenterX: 10, CenterY: 10, Radius: 4, HInside: 10, HOutside: 5, B: -10}, 1, 0, 0)

	for step := 0; step < 10; step++ {
		if err := p.TimeStep(0.01); err != nil {
			t.Fatalf("step %d: %v", step, err)
		}
	}
	h := p.Height()
	// Cell ix has its center at ix+0.5, so cells 5 and 14 (centers 5.5
	// and 14.5) mirror each other across 10 in either axis. Reflecting
	// in both axes maps (5,5) onto (14,14). The x-then-y splitting does
	// not preserve the diagonal (x <-> y) symmetry, so that is not
	// checked.
	idx := func(ix, iy int) int { return iy*20 + ix }
	left, right := h[idx(5, 10)], h[idx(14, 10)]
	top, bottom := h[idx(10, 5)], h[idx(10, 14)]
	if math.Abs(left-right) > 1e-9 {
		t.Errorf("left/right asymmetry: %v vs %v", left, right)
	}
	if math.Abs(top-bottom) > 1e-9 {
		t.Errorf("top/bottom asymmetry: %v vs %v", top, bottom)
	}
	if corner, opposite := h[idx(5, 5)], h[idx(14, 14)]; math.Abs(corner-opposite) > 1e-9 {
		t.Errorf("point asymmetry: %v vs %v", corner, opposite)
	}
}

func TestPatch2DClosedBoundaryConservesMass(t *testing.T) {
	boundary := EdgeBoundary{Closed, Closed, Closed, Closed}
	p, err := NewPatch2D(16, 16, boundary, FWave)
	if err != nil {
		t.Fatal(err)
	}
	p.Fill(DamBreak2D{CenterX: 8, CenterY: 8, Radius: 3, HInside: 10, HOutside: 5, B: -10}, 1, 0, 0)

	before := p.TotalMass(1)
	dt := 0.5 * 1 / math.Sqrt(Gravity*p.HMax())
	for step := 0; step < 10; step++ {
		if err := p.TimeStep(dt); err != nil {
			t.Fatalf("step %d: %v", step, err)
		}
	}
	after := p.TotalMass(1)
	if math.Abs(after-before) > 1e-6*before {
		t.Fatalf("mass not conserved behind closed boundaries: before=%v after=%v", before, after)
	}
}

func TestPatch2DFillIndexedRestartMatchesCheckpoint(t *testing.T) {
	ck := Checkpoint{
		NX: 2, NY: 2,
		Height:     []float64{1, 2, 3, 4},
		MomentumX:  []float64{0.1, 0.2, 0.3, 0.4},
		MomentumY:  []float64{0, 0, 0, 0},
		Bathymetry: []float64{-5, -5, -5, -5},
	}
	boundary := EdgeBoundary{Open, Open, Open, Open}
	p, err := NewPatch2D(2, 2, boundary, FWave)
	if err != nil {
		t.Fatal(err)
	}
	p.FillIndexed(RestartSetup{NX: 2, Ck: ck})

	got := p.Height()
	for i, want := range ck.Height {
		if got[i] != want {
			t.Errorf("height[%d] = %v, want %v", i, got[i], want)
		}
	}
}
