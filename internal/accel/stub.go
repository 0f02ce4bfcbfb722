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

//go:build !accel

// Package accel, built without the accel tag, reports that no compute
// device is available. The CLI's `-o 1` falls back to this stub on
// platforms or builds where WebGPU isn't wired in.
package accel

import "fmt"

// ErrDeviceUnavailable mirrors tsunami.ErrDeviceUnavailable (see
// patch.go's doc comment for why it's redeclared here).
var ErrDeviceUnavailable = fmt.Errorf("tsunami: no compute device available")

// Patch is never constructed outside the accel build; NewPatch always
// fails so callers get a consistent error regardless of tag.
type Patch struct{}

// NewPatch always returns ErrDeviceUnavailable in a non-accel build.
func NewPatch(nx, ny int, boundaryLeft, boundaryRight, boundaryTop, boundaryBottom uint32) (*Patch, error) {
	return nil, fmt.Errorf("%w: built without the accel tag", ErrDeviceUnavailable)
}

func (p *Patch) SetData(h, hu, hv, b []float64)                       {}
func (p *Patch) GetData() (h, hu, hv []float64, err error)            { return nil, nil, nil, ErrDeviceUnavailable }
func (p *Patch) TimeStep(scaling float64) error                       { return ErrDeviceUnavailable }
func (p *Patch) Release()                                             {}
