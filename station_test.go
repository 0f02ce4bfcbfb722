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
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadStationSamplerAndSample(t *testing.T) {
	dir := t.TempDir()
	listPath := filepath.Join(dir, "stations.json")
	const doc = `{
		"output_frequency": 1.5,
		"stations": [
			{"name": "buoy_a", "x": 2.5, "y": 0},
			{"name": "buoy_b", "x": 7.5, "y": 0}
		]
	}`
	if err := os.WriteFile(listPath, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	sampler, err := LoadStationSampler(listPath, dir, 1.0, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if sampler.OutputFrequency != 1.5 {
		t.Fatalf("OutputFrequency = %v, want 1.5", sampler.OutputFrequency)
	}

	nx := 10
	h := make([]float64, nx)
	hu := make([]float64, nx)
	hv := make([]float64, nx)
	b := make([]float64, nx)
	for i := range h {
		h[i] = float64(i)
	}

	if err := sampler.Sample(0, nx, h, hu, hv, b); err != nil {
		t.Fatal(err)
	}
	if err := sampler.Close(); err != nil {
		t.Fatal(err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "buoy_a.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), "2") {
		t.Fatalf("expected station buoy_a to sample cell 2 (x=2.5), got %q", string(raw))
	}
}

func TestLoadStationSamplerMissingFile(t *testing.T) {
	if _, err := LoadStationSampler("/nonexistent/stations.json", t.TempDir(), 1, 0, 0); err == nil {
		t.Fatal("expected an error for a missing station list")
	}
}
