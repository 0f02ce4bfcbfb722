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

package tsunamicli

import (
	"fmt"
	"os"

	"github.com/ctessum/cdf"
	tsunami "github.com/scalable-tsunami/tsunami-lab"
)

// loadTsunami2DGrids reads the bathymetry and displacement grid files
// (spec §6, "binary grid files with coordinate axes"). Grounded on
// vargrid.go's LoadCTMData: open, read the "x"/"y" coordinate
// variables to recover the axis spacing and origin, then read the
// "z" data variable in full.
func loadTsunami2DGrids(bathyPath, dispPath string) (bathy, disp *tsunami.GridField, err error) {
	bathy, err = loadGridField(bathyPath, "z")
	if err != nil {
		return nil, nil, err
	}
	disp, err = loadGridField(dispPath, "z")
	if err != nil {
		return nil, nil, err
	}
	return bathy, disp, nil
}

func loadGridField(path, varName string) (*tsunami.GridField, error) {
	rw, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", tsunami.ErrIO, path, err)
	}
	defer rw.Close()

	f, err := cdf.Open(rw)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", tsunami.ErrIO, path, err)
	}

	lengths := f.Header.Lengths(varName)
	if len(lengths) != 2 {
		return nil, fmt.Errorf("%w: %s: expected a 2D grid variable %q", tsunami.ErrIO, path, varName)
	}
	ny, nx := lengths[0], lengths[1]

	x0, dx := axisSpacing(f, "x", nx)
	y0, dy := axisSpacing(f, "y", ny)

	raw := make([]float32, nx*ny)
	if _, err := f.Reader(varName, nil, nil).Read(raw); err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", tsunami.ErrIO, path, err)
	}
	values := make([]float64, len(raw))
	for i, v := range raw {
		values[i] = float64(v)
	}

	return &tsunami.GridField{NX: nx, NY: ny, DX: dx, DY: dy, X0: x0, Y0: y0, Values: values}, nil
}

// axisSpacing reads a 1D coordinate variable and derives its origin
// and (assumed-uniform) spacing, falling back to unit spacing from the
// origin if the axis variable is absent.
func axisSpacing(f *cdf.File, axisName string, n int) (origin, spacing float64) {
	lengths := f.Header.Lengths(axisName)
	if len(lengths) != 1 || lengths[0] < 2 {
		return 0, 1
	}
	raw := make([]float32, lengths[0])
	if _, err := f.Reader(axisName, nil, nil).Read(raw); err != nil {
		return 0, 1
	}
	return float64(raw[0]), float64(raw[1] - raw[0])
}
