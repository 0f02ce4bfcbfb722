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

import "testing"

func TestDamBreak1DSplit(t *testing.T) {
	s := DamBreak1D{HL: 10, HR: 2, Split: 5, B: -10}
	if got := s.Height(4.9, 0); got != 10 {
		t.Errorf("left of split: got %v, want 10", got)
	}
	if got := s.Height(5.1, 0); got != 2 {
		t.Errorf("right of split: got %v, want 2", got)
	}
	if got := s.MomentumY(0, 0); got != 0 {
		t.Errorf("MomentumY: got %v, want 0", got)
	}
}

func TestShockShock1DMirrorsMomentum(t *testing.T) {
	s := ShockShock1D{H: 5, Hu: 2, Split: 5, B: -10}
	if got := s.MomentumX(0, 0); got != 2 {
		t.Errorf("left momentum: got %v, want 2", got)
	}
	if got := s.MomentumX(10, 0); got != -2 {
		t.Errorf("right momentum: got %v, want -2", got)
	}
}

func TestRareRare1DDiverges(t *testing.T) {
	s := RareRare1D{H: 5, Hu: 2, Split: 5, B: -10}
	if got := s.MomentumX(0, 0); got != -2 {
		t.Errorf("left momentum: got %v, want -2", got)
	}
	if got := s.MomentumX(10, 0); got != 2 {
		t.Errorf("right momentum: got %v, want 2", got)
	}
}

func TestTsunami1DBathyLookupClamps(t *testing.T) {
	s := Tsunami1D{Depths: []float64{-10, -20, -5}, DXY: 250}
	if got := s.bathyAt(-100); got != -10 {
		t.Errorf("below range: got %v, want -10 (clamped)", got)
	}
	if got := s.bathyAt(10000); got != -5 {
		t.Errorf("above range: got %v, want -5 (clamped)", got)
	}
	if got := s.Height(250, 0); got != 20 {
		t.Errorf("resting lake height: got %v, want 20", got)
	}
}

func TestDamBreak2DRadial(t *testing.T) {
	s := DamBreak2D{CenterX: 50, CenterY: 50, Radius: 20, HInside: 10, HOutside: 5, B: -10}
	if got := s.Height(50, 50); got != 10 {
		t.Errorf("center: got %v, want 10", got)
	}
	if got := s.Height(0, 0); got != 5 {
		t.Errorf("far corner: got %v, want 5", got)
	}
}

func TestGridFieldAtClampsAndSnaps(t *testing.T) {
	g := &GridField{NX: 2, NY: 2, DX: 10, DY: 10, X0: 0, Y0: 0, Values: []float64{1, 2, 3, 4}}
	if got := g.At(4, 4); got != 1 {
		t.Errorf("(4,4): got %v, want 1", got)
	}
	if got := g.At(15, 15); got != 4 {
		t.Errorf("(15,15): got %v, want 4", got)
	}
	if got := g.At(-100, -100); got != 1 {
		t.Errorf("out of range below: got %v, want 1 (clamped)", got)
	}
	if got := g.At(1000, 1000); got != 4 {
		t.Errorf("out of range above: got %v, want 4 (clamped)", got)
	}
}

func TestArtificial2DTapersToZeroOutsideRadius(t *testing.T) {
	s := Artificial2D{CenterX: 0, CenterY: 0, Radius: 100, Amplitude: 5, Depth: 100}
	if got := s.displacement(0, 0); got != 5 {
		t.Errorf("center displacement: got %v, want 5", got)
	}
	if got := s.displacement(200, 0); got != 0 {
		t.Errorf("outside radius: got %v, want 0", got)
	}
	if got := s.Bathymetry(0, 0); got != -100 {
		t.Errorf("bathymetry: got %v, want -100", got)
	}
}
