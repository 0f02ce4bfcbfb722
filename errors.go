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

import "errors"

// Sentinel errors for the kinds of failure the solver can report. All are
// startup-fatal except ErrInvalidBoundary, which is the only one
// structurally reachable from inside TimeStep.
var (
	ErrInvalidArguments  = errors.New("tsunami: invalid arguments")
	ErrInvalidScenario   = errors.New("tsunami: invalid scenario")
	ErrInvalidBoundary   = errors.New("tsunami: invalid boundary mode")
	ErrInvalidSolver     = errors.New("tsunami: invalid solver")
	ErrDeviceUnavailable = errors.New("tsunami: no compute device available")
	ErrIO                = errors.New("tsunami: io error")
	ErrCheckpointCorrupt = errors.New("tsunami: checkpoint record corrupt")
)
