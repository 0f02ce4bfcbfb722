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

import "math"

// Gravity is the gravitational acceleration used throughout the solver,
// in m/s^2.
const Gravity = 9.80665

// ClosedWallBathymetry is the sentinel bathymetry value assigned to ghost
// cells behind a closed (reflective) boundary. Those ghost cells also
// get h = 0, so the wet/dry handling in the Riemann solver treats the
// ghost column as dry and reflects the wet side; that handling replaces
// the dry side's bathymetry with the wet side's, so the sentinel value
// itself does not enter the net updates. Hard-coded in the original
// implementation; kept as a named constant here per design note (iii).
const ClosedWallBathymetry = 25

// dryTolerance is the threshold below which a water column is treated as
// dry.
const dryTolerance = 1e-8

// Solver computes the net updates produced by an approximate Riemann
// solution at a single cell edge. Implementations have no side effects
// and are fully defined for any wet state.
//
// NetUpdates returns two net-update vectors (Δh, Δhu): left is subtracted
// from the left cell's state and right from the right cell's state, both
// scaled by dt/dxy by the caller.
type Solver interface {
	NetUpdates(hL, hR, huL, huR, bL, bR float64) (left, right [2]float64)
}

// SolverKind selects a Solver implementation at patch-construction time.
type SolverKind int

const (
	// FWave is the f-wave solver with bathymetry source term (§4.1).
	FWave SolverKind = iota
	// Roe is the bathymetry-free Roe linearization retained for 1D tests.
	Roe
)

// NewSolver returns the Solver for kind, or ErrInvalidSolver if kind is
// not recognized.
func NewSolver(kind SolverKind) (Solver, error) {
	switch kind {
	case FWave:
		return FWaveSolver{}, nil
	case Roe:
		return RoeSolver{}, nil
	default:
		return nil, ErrInvalidSolver
	}
}

// FWaveSolver is the approximate Riemann solver described in spec §4.1:
// an f-wave decomposition of the flux jump (minus the bathymetry source
// term) in the eigenbasis of the Roe matrix, with wet/dry reflection at
// the edge.
type FWaveSolver struct{}

// NetUpdates implements Solver.
func (FWaveSolver) NetUpdates(hL, hR, huL, huR, bL, bR float64) (left, right [2]float64) {
	dryL := hL <= dryTolerance
	dryR := hR <= dryTolerance

	if dryL && dryR {
		return [2]float64{}, [2]float64{}
	}
	if dryL {
		hL, bL = hR, bR
		huL = -huR
	} else if dryR {
		hR, bR = hL, bL
		huR = -huL
	}

	uL := huL / hL
	uR := huR / hR

	sqrtHL := math.Sqrt(hL)
	sqrtHR := math.Sqrt(hR)

	hRoe := 0.5 * (hL + hR)
	uRoe := (uL*sqrtHL + uR*sqrtHR) / (sqrtHL + sqrtHR)

	cRoe := math.Sqrt(Gravity * hRoe)
	lambda1 := uRoe - cRoe
	lambda2 := uRoe + cRoe

	fL0, fL1 := huL, huL*uL+0.5*Gravity*hL*hL
	fR0, fR1 := huR, huR*uR+0.5*Gravity*hR*hR

	deltaF0 := fR0 - fL0
	deltaF1 := fR1 - fL1 - (-0.5 * Gravity * (bR - bL) * (hL + hR))

	// Decompose (ΔF - Δxψ) into the eigenbasis { (1, λ1), (1, λ2) }.
	denom := lambda2 - lambda1
	var alpha1, alpha2 float64
	if denom != 0 {
		alpha1 = (lambda2*deltaF0 - deltaF1) / denom
		alpha2 = (deltaF1 - lambda1*deltaF0) / denom
	}

	z1 := [2]float64{alpha1, alpha1 * lambda1}
	z2 := [2]float64{alpha2, alpha2 * lambda2}

	dispatch(lambda1, z1, &left, &right)
	dispatch(lambda2, z2, &left, &right)

	if dryL {
		left = [2]float64{}
	} else if dryR {
		right = [2]float64{}
	}

	return left, right
}

// dispatch accumulates wave z into left or right depending on the sign
// of its speed, splitting equally if the speed is exactly zero.
func dispatch(speed float64, z [2]float64, left, right *[2]float64) {
	switch {
	case speed < 0:
		left[0] += z[0]
		left[1] += z[1]
	case speed > 0:
		right[0] += z[0]
		right[1] += z[1]
	default:
		left[0] += 0.5 * z[0]
		left[1] += 0.5 * z[1]
		right[0] += 0.5 * z[0]
		right[1] += 0.5 * z[1]
	}
}

// RoeSolver is a Roe linearization that omits the bathymetry source term
// (spec §4.1, "Alternative solver"). It is retained for 1D tests where a
// flat-bathymetry comparison against a textbook Roe scheme is useful.
type RoeSolver struct{}

// NetUpdates implements Solver.
func (RoeSolver) NetUpdates(hL, hR, huL, huR, bL, bR float64) (left, right [2]float64) {
	_ = bL
	_ = bR
	dryL := hL <= dryTolerance
	dryR := hR <= dryTolerance
	if dryL && dryR {
		return [2]float64{}, [2]float64{}
	}
	if dryL {
		hL = hR
		huL = -huR
	} else if dryR {
		hR = hL
		huR = -huL
	}

	uL := huL / hL
	uR := huR / hR
	sqrtHL := math.Sqrt(hL)
	sqrtHR := math.Sqrt(hR)
	hRoe := 0.5 * (hL + hR)
	uRoe := (uL*sqrtHL + uR*sqrtHR) / (sqrtHL + sqrtHR)
	cRoe := math.Sqrt(Gravity * hRoe)
	lambda1 := uRoe - cRoe
	lambda2 := uRoe + cRoe

	fL0, fL1 := huL, huL*uL+0.5*Gravity*hL*hL
	fR0, fR1 := huR, huR*uR+0.5*Gravity*hR*hR
	deltaF0 := fR0 - fL0
	deltaF1 := fR1 - fL1

	denom := lambda2 - lambda1
	var alpha1, alpha2 float64
	if denom != 0 {
		alpha1 = (lambda2*deltaF0 - deltaF1) / denom
		alpha2 = (deltaF1 - lambda1*deltaF0) / denom
	}

	z1 := [2]float64{alpha1, alpha1 * lambda1}
	z2 := [2]float64{alpha2, alpha2 * lambda2}
	dispatch(lambda1, z1, &left, &right)
	dispatch(lambda2, z2, &left, &right)

	if dryL {
		left = [2]float64{}
	} else if dryR {
		right = [2]float64{}
	}
	return left, right
}
