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

// Package tsunami implements the core of a finite-volume shallow-water
// solver used to simulate tsunami propagation on a regular bathymetric
// grid: an f-wave Riemann solver, 1D and 2D wave-propagation patches, a
// time-loop driver, and the snapshot/station/checkpoint observers that
// watch it run.
package tsunami
