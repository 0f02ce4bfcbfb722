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
	"runtime"
	"sync"

	"github.com/ctessum/sparse"
	"gonum.org/v1/gonum/floats"
)

// Patch2D owns the flattened 2D grid state for the CPU wave-propagation
// patch: nx*ny interior cells plus a single ghost ring, stored in
// row-major *sparse.DenseArray fields shaped (ny+2, nx+2) — the same
// storage discipline the teacher repository (spatialmodel-inmap) uses
// for its gridded meteorology fields. Grounded on
// patches/wavepropagation2d/WavePropagation2d.{h,cpp} for the dimensional
// splitting and on framework.go's Calculations() for the row-parallel
// fan-out idiom.
type Patch2D struct {
	nx, ny int

	boundary EdgeBoundary
	solver   Solver

	h, hu, hv, b    *sparse.DenseArray
	hT, huT, hvT    *sparse.DenseArray

	nprocs int
}

// NewPatch2D constructs a patch with nx*ny interior cells.
func NewPatch2D(nx, ny int, boundary EdgeBoundary, kind SolverKind) (*Patch2D, error) {
	solver, err := NewSolver(kind)
	if err != nil {
		return nil, err
	}
	shape := []int{ny + 2, nx + 2}
	p := &Patch2D{
		nx: nx, ny: ny,
		boundary: boundary,
		solver:   solver,
		h:        sparse.ZerosDense(shape...),
		hu:       sparse.ZerosDense(shape...),
		hv:       sparse.ZerosDense(shape...),
		b:        sparse.ZerosDense(shape...),
		hT:       sparse.ZerosDense(shape...),
		huT:      sparse.ZerosDense(shape...),
		hvT:      sparse.ZerosDense(shape...),
		nprocs:   runtime.GOMAXPROCS(0),
	}
	return p, nil
}

// stride is the length of one row of the backing arrays, nx+2.
func (p *Patch2D) stride() int { return p.nx + 2 }

func (p *Patch2D) coord(ix, iy int) int { return iy*p.stride() + ix }

// NX and NY return the interior grid dimensions.
func (p *Patch2D) NX() int { return p.nx }
func (p *Patch2D) NY() int { return p.ny }

// Fill populates every interior cell from setup, sampling at cell
// centers per spec §3's coordinate convention.
func (p *Patch2D) Fill(setup Setup, dxy, xOffset, yOffset float64) {
	for iy := 0; iy < p.ny; iy++ {
		y := (float64(iy)+0.5)*dxy - yOffset
		for ix := 0; ix < p.nx; ix++ {
			x := (float64(ix)+0.5)*dxy - xOffset
			c := p.coord(ix+1, iy+1)
			p.h.Elements[c] = setup.Height(x, y)
			p.hu.Elements[c] = setup.MomentumX(x, y)
			p.hv.Elements[c] = setup.MomentumY(x, y)
			p.b.Elements[c] = setup.Bathymetry(x, y)
		}
	}
}

// FillIndexed populates every interior cell from an index-addressed
// setup (restart from a checkpoint).
func (p *Patch2D) FillIndexed(setup IndexSetup) {
	for iy := 0; iy < p.ny; iy++ {
		for ix := 0; ix < p.nx; ix++ {
			c := p.coord(ix+1, iy+1)
			p.h.Elements[c] = setup.HeightAt(ix, iy)
			p.hu.Elements[c] = setup.MomentumXAt(ix, iy)
			p.hv.Elements[c] = setup.MomentumYAt(ix, iy)
			p.b.Elements[c] = setup.BathymetryAt(ix, iy)
		}
	}
}

// applyGhost writes ghost-ring state for all four edges.
func (p *Patch2D) applyGhost() error {
	// Left/right edges.
	for iy := 0; iy < p.ny; iy++ {
		l, r := p.coord(0, iy+1), p.coord(1, iy+1)
		gh, ghu, ghv, gb, err := ghostCell(p.boundary.Left, p.h.Elements[r], p.hu.Elements[r], p.hv.Elements[r], p.b.Elements[r])
		if err != nil {
			return err
		}
		p.h.Elements[l], p.hu.Elements[l], p.hv.Elements[l], p.b.Elements[l] = gh, ghu, ghv, gb

		l, r = p.coord(p.nx, iy+1), p.coord(p.nx+1, iy+1)
		gh, ghu, ghv, gb, err = ghostCell(p.boundary.Right, p.h.Elements[l], p.hu.Elements[l], p.hv.Elements[l], p.b.Elements[l])
		if err != nil {
			return err
		}
		p.h.Elements[r], p.hu.Elements[r], p.hv.Elements[r], p.b.Elements[r] = gh, ghu, ghv, gb
	}
	// Top/bottom edges (including the corners, already set by the loop above).
	for ix := 0; ix < p.nx+2; ix++ {
		l, r := p.coord(ix, 0), p.coord(ix, 1)
		gh, ghu, ghv, gb, err := ghostCell(p.boundary.Top, p.h.Elements[r], p.hu.Elements[r], p.hv.Elements[r], p.b.Elements[r])
		if err != nil {
			return err
		}
		p.h.Elements[l], p.hu.Elements[l], p.hv.Elements[l], p.b.Elements[l] = gh, ghu, ghv, gb

		l, r = p.coord(ix, p.ny), p.coord(ix, p.ny+1)
		gh, ghu, ghv, gb, err = ghostCell(p.boundary.Bottom, p.h.Elements[l], p.hu.Elements[l], p.hv.Elements[l], p.b.Elements[l])
		if err != nil {
			return err
		}
		p.h.Elements[r], p.hu.Elements[r], p.hv.Elements[r], p.b.Elements[r] = gh, ghu, ghv, gb
	}
	return nil
}

// parallelRows runs f(y) concurrently for y in [0, n), fanning out over
// p.nprocs workers and waiting for all of them to finish. Grounded on
// framework.go's Calculations(), which fans a CellManipulator out over
// runtime.GOMAXPROCS(0) goroutines behind a single sync.WaitGroup.
func (p *Patch2D) parallelRows(n int, f func(y int)) {
	var wg sync.WaitGroup
	nprocs := p.nprocs
	if nprocs > n {
		nprocs = n
	}
	if nprocs < 1 {
		nprocs = 1
	}
	wg.Add(nprocs)
	for w := 0; w < nprocs; w++ {
		go func(w int) {
			defer wg.Done()
			for y := w; y < n; y += nprocs {
				f(y)
			}
		}(w)
	}
	wg.Wait()
}

// TimeStep advances the patch by one step using first-order dimensional
// splitting: an x-sweep followed by a y-sweep. The copy-into-scratch
// discipline below is load-bearing (spec §4.3): without it, a flux
// written at one edge would be visible to its neighboring edge before
// the sweep completes.
func (p *Patch2D) TimeStep(scaling float64) error {
	if err := p.applyGhost(); err != nil {
		return err
	}
	copy(p.hT.Elements, p.h.Elements)
	copy(p.huT.Elements, p.hu.Elements)

	p.parallelRows(p.ny+1, func(y int) {
		for x := 0; x <= p.nx; x++ {
			cL := p.coord(x, y)
			cR := p.coord(x+1, y)
			left, right := p.solver.NetUpdates(
				p.hT.Elements[cL], p.hT.Elements[cR],
				p.huT.Elements[cL], p.huT.Elements[cR],
				p.b.Elements[cL], p.b.Elements[cR])

			p.h.Elements[cL] -= scaling * left[0]
			p.hu.Elements[cL] -= scaling * left[1]
			p.h.Elements[cR] -= scaling * right[0]
			p.hu.Elements[cR] -= scaling * right[1]
		}
	})

	if err := p.applyGhost(); err != nil {
		return err
	}
	copy(p.hT.Elements, p.h.Elements)
	copy(p.hvT.Elements, p.hv.Elements)

	// The y-sweep reads and writes two adjacent rows per edge, so it is
	// colored even/odd and run as two barriered passes rather than one
	// flat fan-out (spec §4.3, "the y-sweep must serialise on the row
	// pair").
	for _, parity := range [2]int{0, 1} {
		p.parallelRows((p.ny+1+1-parity)/2, func(i int) {
			y := i*2 + parity
			if y > p.ny {
				return
			}
			for x := 0; x < p.nx; x++ {
				cDown := p.coord(x+1, y)
				cUp := p.coord(x+1, y+1)
				left, right := p.solver.NetUpdates(
					p.hT.Elements[cDown], p.hT.Elements[cUp],
					p.hvT.Elements[cDown], p.hvT.Elements[cUp],
					p.b.Elements[cDown], p.b.Elements[cUp])

				p.h.Elements[cDown] -= scaling * left[0]
				p.hv.Elements[cDown] -= scaling * left[1]
				p.h.Elements[cUp] -= scaling * right[0]
				p.hv.Elements[cUp] -= scaling * right[1]
			}
		})
	}
	return nil
}

// Height returns the interior height array (ghosts stripped), row-major
// with stride nx.
func (p *Patch2D) Height() []float64 { return p.interior(p.h) }

// MomentumX returns the interior x-momentum array.
func (p *Patch2D) MomentumX() []float64 { return p.interior(p.hu) }

// MomentumY returns the interior y-momentum array.
func (p *Patch2D) MomentumY() []float64 { return p.interior(p.hv) }

// Bathymetry returns the interior bathymetry array.
func (p *Patch2D) Bathymetry() []float64 { return p.interior(p.b) }

func (p *Patch2D) interior(a *sparse.DenseArray) []float64 {
	return stripGhosts(a.Elements, p.nx, p.ny, 1, 1, p.stride())
}

// HMax returns the maximum height over the interior cells.
func (p *Patch2D) HMax() float64 {
	h := p.Height()
	if len(h) == 0 {
		return 0
	}
	return floats.Max(h)
}

// TotalMass returns dxy*dxy * sum(height) over the interior cells, the
// mass conservation invariant of spec §4.1's Design Note (ii).
func (p *Patch2D) TotalMass(dxy float64) float64 {
	return dxy * dxy * floats.Sum(p.Height())
}
