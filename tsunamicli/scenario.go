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
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	tsunami "github.com/scalable-tsunami/tsunami-lab"
)

// scenarioDims carries the per-scenario geometry/timing defaults read
// out of the original source's main.cpp (width, end_time, offsets):
// dambreak1d/shockshock1d/rarerare1d default to a 10m-wide channel,
// subcritical1d/supercritical1d to 25m/200s, tsunami1d to
// 250*ncells/3600s, dambreak2d to 100m/15s, artificial2d to
// 10000m/300s centered at (5000,5000), and tsunami2d to 36000s with
// its extent derived from the loaded bathymetry.
type scenarioDims struct {
	dim              int // 1 or 2
	width, height    float64
	xOffset, yOffset float64
	endTime          float64
	simulatedFrame   int
}

// buildScenario parses the "<name> [args...]" scenario string and
// returns the populated Setup plus its geometry. The caller turns
// scenarioDims and the CLI's positional N_CELLS_X into a concrete
// (nx, ny, dxy) grid — for tsunami2d, N_CELLS_X is reinterpreted as a
// cell size in metres (spec §6), so the scenario's own width/height
// decide cell counts instead.
func buildScenario(fields []string) (tsunami.Setup, scenarioDims, error) {
	if len(fields) == 0 {
		return nil, scenarioDims{}, fmt.Errorf("%w: empty scenario", tsunami.ErrInvalidScenario)
	}
	name, args := fields[0], fields[1:]

	switch name {
	case "dambreak1d":
		hl, hr, err := twoFloats(args)
		if err != nil {
			return nil, scenarioDims{}, err
		}
		return tsunami.DamBreak1D{HL: hl, HR: hr, Split: 5, B: -10},
			scenarioDims{dim: 1, width: 10, endTime: 1.25, simulatedFrame: 25}, nil

	case "shockshock1d":
		h, hu, err := twoFloats(args)
		if err != nil {
			return nil, scenarioDims{}, err
		}
		return tsunami.ShockShock1D{H: h, Hu: hu, Split: 5, B: -10},
			scenarioDims{dim: 1, width: 10, endTime: 1.25, simulatedFrame: 25}, nil

	case "rarerare1d":
		h, hu, err := twoFloats(args)
		if err != nil {
			return nil, scenarioDims{}, err
		}
		return tsunami.RareRare1D{H: h, Hu: hu, Split: 5, B: -10},
			scenarioDims{dim: 1, width: 10, endTime: 1.25, simulatedFrame: 25}, nil

	case "subcritical1d":
		return tsunami.Subcritical1D{}, scenarioDims{dim: 1, width: 25, endTime: 200, simulatedFrame: 25}, nil

	case "supercritical1d":
		return tsunami.Supercritical1D{}, scenarioDims{dim: 1, width: 25, endTime: 200, simulatedFrame: 25}, nil

	case "tsunami1d":
		depths, err := readDepthCSV("data/real.csv")
		if err != nil {
			return nil, scenarioDims{}, err
		}
		dxy := 250.0
		return tsunami.Tsunami1D{Depths: depths, DXY: dxy},
			scenarioDims{dim: 1, width: dxy * float64(len(depths)), endTime: 3600, simulatedFrame: 25}, nil

	case "dambreak2d":
		return tsunami.DamBreak2D{CenterX: 50, CenterY: 50, Radius: 20, HInside: 10, HOutside: 5, B: -10},
			scenarioDims{dim: 2, width: 100, height: 100, endTime: 15, simulatedFrame: 25}, nil

	case "artificial2d":
		return tsunami.Artificial2D{CenterX: 5000, CenterY: 5000, Radius: 2500, Amplitude: 5, Depth: 100},
			scenarioDims{dim: 2, width: 10000, height: 10000, endTime: 300, simulatedFrame: 25}, nil

	case "tsunami2d":
		bathy, disp, err := loadTsunami2DGrids("data/real_tsunamis/tohoku_gebco20_usgs_250m_bath.nc", "data/real_tsunamis/tohoku_gebco20_usgs_250m_displ.nc")
		if err != nil {
			return nil, scenarioDims{}, err
		}
		width := bathy.DX * float64(bathy.NX)
		height := bathy.DY * float64(bathy.NY)
		return tsunami.Tsunami2D{Bathy: bathy, Displacement: disp},
			scenarioDims{dim: 2, width: width, height: height, xOffset: width / 2, yOffset: height / 2, endTime: 36000, simulatedFrame: 500}, nil

	default:
		return nil, scenarioDims{}, fmt.Errorf("%w: unknown scenario %q", tsunami.ErrInvalidScenario, name)
	}
}

func twoFloats(args []string) (a, b float64, err error) {
	if len(args) != 2 {
		return 0, 0, fmt.Errorf("%w: expected 2 numeric arguments, got %d", tsunami.ErrInvalidArguments, len(args))
	}
	a, err = strconv.ParseFloat(args[0], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", tsunami.ErrInvalidArguments, err)
	}
	b, err = strconv.ParseFloat(args[1], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", tsunami.ErrInvalidArguments, err)
	}
	return a, b, nil
}

// readDepthCSV reads the fourth column of every row of path as a
// bathymetry depth (spec §6, "1D tsunami bathymetry as CSV where the
// fourth column of each row is depth").
func readDepthCSV(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", tsunami.ErrIO, path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", tsunami.ErrIO, path, err)
	}

	depths := make([]float64, 0, len(rows))
	for _, row := range rows {
		if len(row) < 4 {
			continue
		}
		v, err := strconv.ParseFloat(row[3], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: parsing depth in %s: %v", tsunami.ErrIO, path, err)
		}
		depths = append(depths, v)
	}
	return depths, nil
}
