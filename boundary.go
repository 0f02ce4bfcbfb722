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

// Boundary is the policy applied to one edge of the domain.
type Boundary int

const (
	// Open (transmissive) boundaries mirror the adjacent interior cell.
	Open Boundary = iota
	// Closed (reflective) boundaries present a high-wall sentinel.
	Closed
)

// String implements fmt.Stringer.
func (b Boundary) String() string {
	switch b {
	case Open:
		return "open"
	case Closed:
		return "closed"
	default:
		return "undefined"
	}
}

// ParseBoundary parses the CLI spelling of a boundary mode.
func ParseBoundary(s string) (Boundary, error) {
	switch s {
	case "open":
		return Open, nil
	case "closed":
		return Closed, nil
	default:
		return 0, ErrInvalidBoundary
	}
}

// ghostCell returns the state assigned to a ghost cell given the
// boundary mode and the state of the adjacent interior cell.
func ghostCell(mode Boundary, h, hu, hv, b float64) (gh, ghu, ghv, gb float64, err error) {
	switch mode {
	case Open:
		return h, hu, hv, b, nil
	case Closed:
		return 0, 0, 0, ClosedWallBathymetry, nil
	default:
		return 0, 0, 0, 0, ErrInvalidBoundary
	}
}

// EdgeBoundary holds the four independent per-edge boundary modes of a
// 2D patch (spec §3 "Boundary policy").
type EdgeBoundary struct {
	Left, Right, Top, Bottom Boundary
}
