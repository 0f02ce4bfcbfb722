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

func TestNewSolverInvalidKind(t *testing.T) {
	if _, err := NewSolver(SolverKind(99)); err != ErrInvalidSolver {
		t.Fatalf("got %v, want ErrInvalidSolver", err)
	}
}

func TestFWaveConsistency(t *testing.T) {
	// A Riemann problem with no jump produces no net update (consistency).
	s := FWaveSolver{}
	left, right := s.NetUpdates(3, 3, 1.5, 1.5, -5, -5)
	for i := 0; i < 2; i++ {
		if math.Abs(left[i]) > 1e-9 || math.Abs(right[i]) > 1e-9 {
			t.Fatalf("expected zero net update for a flat state, got left=%v right=%v", left, right)
		}
	}
}

func TestFWaveSymmetricDamBreak(t *testing.T) {
	// A dam break over flat bathymetry with zero initial momentum
	// produces a nonzero net update across the height jump.
	s := FWaveSolver{}
	left, right := s.NetUpdates(10, 5, 0, 0, -10, -10)
	if left[0] == 0 && right[0] == 0 {
		t.Fatalf("expected a nonzero net update across a height jump")
	}
}

func TestFWaveFullyDry(t *testing.T) {
	s := FWaveSolver{}
	left, right := s.NetUpdates(0, 0, 0, 0, -5, -5)
	if left != ([2]float64{}) || right != ([2]float64{}) {
		t.Fatalf("expected zero updates for a fully dry edge, got left=%v right=%v", left, right)
	}
}

func TestFWaveWetDryReflection(t *testing.T) {
	// A wet cell against a dry neighbor reflects: the dry side receives
	// no update.
	s := FWaveSolver{}
	left, right := s.NetUpdates(5, 0, 2, 0, -10, -10)
	if right != ([2]float64{}) {
		t.Fatalf("expected zero update on the dry side, got %v", right)
	}
	if left == ([2]float64{}) {
		t.Fatalf("expected a nonzero update on the wet side")
	}
}

func TestRoeConsistency(t *testing.T) {
	s := RoeSolver{}
	left, right := s.NetUpdates(4, 4, 1, 1, 0, 0)
	for i := 0; i < 2; i++ {
		if math.Abs(left[i]) > 1e-9 || math.Abs(right[i]) > 1e-9 {
			t.Fatalf("expected zero net update for a flat state, got left=%v right=%v", left, right)
		}
	}
}

func TestDispatchZeroSpeedSplitsEqually(t *testing.T) {
	var left, right [2]float64
	dispatch(0, [2]float64{2, 4}, &left, &right)
	if left != ([2]float64{1, 2}) || right != ([2]float64{1, 2}) {
		t.Fatalf("expected an equal split for zero wave speed, got left=%v right=%v", left, right)
	}
}
