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

// Command tsunami runs the finite-volume shallow-water solver from the
// command line (spec §6). See tsunamicli for the flag surface.
package main

import (
	"os"

	"github.com/scalable-tsunami/tsunami-lab/tsunamicli"
)

func main() {
	os.Exit(tsunamicli.Execute(os.Args[1:]))
}
