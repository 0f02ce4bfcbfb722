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

func TestNewPatch1DInvalidSolver(t *testing.T) {
	if _, err := NewPatch1D(10, Open, Open, SolverKind(99)); err != ErrInvalidSolver {
		t.Fatalf("got %v, want ErrInvalidSolver", err)
	}
}

func TestPatch1DLakeAtRest(t *testing.T) {
	// A flat free surface over arbitrary bathymetry, zero momentum, stays
	// at rest indefinitely (spec §4.1 Design Note, the "C-property").
	p, err := NewPatch1D(20, Open, Open, FWave)
	if err != nil {
		t.Fatal(err)
	}
	p.Fill(lakeAtRest1D{height: 2}, 0.5, 0)

	before := append([]float64(nil), p.Height()...)
	for step := 0; step < 50; step++ {
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

// lakeAtRest1D pairs a constant free-surface height with a bathymetry
// that varies inside 8 < x < 12, giving a nontrivial but still-at-rest
// state.
type lakeAtRest1D struct {
	zero2D
	height float64
}

func (l lakeAtRest1D) Height(x, y float64) float64    { return l.height - l.Bathymetry(x, y) }
func (l lakeAtRest1D) MomentumX(x, y float64) float64 { return 0 }
func (l lakeAtRest1D) Bathymetry(x, y float64) float64 {
	if x > 8 && x < 12 {
		return -0.2 - 0.05*(x-10)*(x-10)
	}
	return -0.2
}

func TestPatch1DClosedBoundaryConservesMass(t *testing.T) {
	p, err := NewPatch1D(10, Closed, Closed, FWave)
	if err != nil {
		t.Fatal(err)
	}
	p.Fill(DamBreak1D{HL: 10, HR: 2, Split: 5, B: -10}, 1, 0)

	before := p.TotalMass(1)
	dt := 0.5 * 1 / math.Sqrt(Gravity*p.HMax())
	for step := 0; step < 20; step++ {
		if err := p.TimeStep(dt); err != nil {
			t.Fatalf("step %d: %v", step, err)
		}
	}
	after := p.TotalMass(1)
	if math.Abs(after-before) > 1e-6*before {
		t.Fatalf("mass not conserved behind closed boundaries: before=%v after=%v", before, after)
	}
}

func TestPatch1DFillIndexedRestartMatchesCheckpoint(t *testing.T) {
	ck := Checkpoint{
		Height:     []float64{1, 2, 3},
		MomentumX:  []float64{0.1, 0.2, 0.3},
		Bathymetry: []float64{-5, -5, -5},
	}
	p, err := NewPatch1D(3, Open, Open, FWave)
	if err != nil {
		t.Fatal(err)
	}
	p.FillIndexed(RestartSetup{NX: 3, Ck: ck})

	if got := p.Height(); got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Fatalf("restored height mismatch: %v", got)
	}
	if got := p.MomentumX(); got[0] != 0.1 || got[1] != 0.2 || got[2] != 0.3 {
		t.Fatalf("restored momentum mismatch: %v", got)
	}
}
