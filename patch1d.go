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

import "gonum.org/v1/gonum/floats"

// Patch1D owns a one-dimensional grid of nx interior cells padded with a
// single ghost cell on each side, and advances it with dimensionally-
// unsplit Godunov updates. Grounded on
// patches/wavepropagation1d/WavePropagation1d.{h,cpp} in the original
// source.
type Patch1D struct {
	nx int

	boundaryLeft, boundaryRight Boundary

	solver Solver

	// Double-buffered height and x-momentum; b has no time history.
	h, hu [2][]float64
	b     []float64

	step int
}

// NewPatch1D constructs a patch with nx interior cells. kind selects the
// Riemann solver; an unrecognized kind fails fast with ErrInvalidSolver
// before any buffer is allocated.
func NewPatch1D(nx int, left, right Boundary, kind SolverKind) (*Patch1D, error) {
	solver, err := NewSolver(kind)
	if err != nil {
		return nil, err
	}
	p := &Patch1D{
		nx:            nx,
		boundaryLeft:  left,
		boundaryRight: right,
		solver:        solver,
		b:             make([]float64, nx+2),
	}
	for i := range p.h {
		p.h[i] = make([]float64, nx+2)
		p.hu[i] = make([]float64, nx+2)
	}
	return p, nil
}

// Stride returns nx+2, the length of the raw backing arrays.
func (p *Patch1D) Stride() int { return p.nx + 2 }

// NX returns the number of interior cells.
func (p *Patch1D) NX() int { return p.nx }

// Fill populates cell (ix) from setup, sampling at the cell's center
// coordinate using dxy and xOffset (spec §3's coordinate convention).
func (p *Patch1D) Fill(setup Setup, dxy, xOffset float64) {
	h, hu := p.h[p.step], p.hu[p.step]
	for ix := 0; ix < p.nx; ix++ {
		x := (float64(ix)+0.5)*dxy - xOffset
		h[ix+1] = setup.Height(x, 0)
		hu[ix+1] = setup.MomentumX(x, 0)
		p.b[ix+1] = setup.Bathymetry(x, 0)
	}
}

// FillIndexed populates cell (ix) from an index-addressed setup (restart).
func (p *Patch1D) FillIndexed(setup IndexSetup) {
	h, hu := p.h[p.step], p.hu[p.step]
	for ix := 0; ix < p.nx; ix++ {
		h[ix+1] = setup.HeightAt(ix, 0)
		hu[ix+1] = setup.MomentumXAt(ix, 0)
		p.b[ix+1] = setup.BathymetryAt(ix, 0)
	}
}

// applyGhost writes the boundary-policy-derived ghost state at index 0
// and nx+1 of the active buffers.
func (p *Patch1D) applyGhost() error {
	h, hu := p.h[p.step], p.hu[p.step]

	gh, ghu, _, gb, err := ghostCell(p.boundaryLeft, h[1], hu[1], 0, p.b[1])
	if err != nil {
		return err
	}
	h[0], hu[0], p.b[0] = gh, ghu, gb

	gh, ghu, _, gb, err = ghostCell(p.boundaryRight, h[p.nx], hu[p.nx], 0, p.b[p.nx])
	if err != nil {
		return err
	}
	h[p.nx+1], hu[p.nx+1], p.b[p.nx+1] = gh, ghu, gb
	return nil
}

// TimeStep advances the patch by one step, scaling net updates by
// scaling (= dt/dxy). After TimeStep returns, Height/MomentumX reflect
// the newly advanced state.
func (p *Patch1D) TimeStep(scaling float64) error {
	if err := p.applyGhost(); err != nil {
		return err
	}

	hOld, huOld := p.h[p.step], p.hu[p.step]
	next := (p.step + 1) % 2
	hNew, huNew := p.h[next], p.hu[next]

	copy(hNew, hOld)
	copy(huNew, huOld)

	for e := 0; e <= p.nx; e++ {
		ceL, ceR := e, e+1
		left, right := p.solver.NetUpdates(hOld[ceL], hOld[ceR], huOld[ceL], huOld[ceR], p.b[ceL], p.b[ceR])

		hNew[ceL] -= scaling * left[0]
		huNew[ceL] -= scaling * left[1]
		hNew[ceR] -= scaling * right[0]
		huNew[ceR] -= scaling * right[1]
	}

	p.step = next
	return nil
}

// Height returns the interior height slice (length nx, ghosts excluded).
func (p *Patch1D) Height() []float64 { return p.h[p.step][1 : p.nx+1] }

// MomentumX returns the interior x-momentum slice.
func (p *Patch1D) MomentumX() []float64 { return p.hu[p.step][1 : p.nx+1] }

// Bathymetry returns the interior bathymetry slice.
func (p *Patch1D) Bathymetry() []float64 { return p.b[1 : p.nx+1] }

// HMax returns the maximum height over the interior cells.
func (p *Patch1D) HMax() float64 {
	return floats.Max(p.Height())
}

// TotalMass returns dxy * sum(height) over the interior cells, the mass
// conservation invariant of spec §4.1's Design Note (ii).
func (p *Patch1D) TotalMass(dxy float64) float64 {
	return dxy * floats.Sum(p.Height())
}
