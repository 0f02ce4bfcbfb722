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
	"encoding/gob"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// checkpointDataVersion gates compatibility between a checkpoint record
// written by one build and read by another, the same role save.go's
// DataVersion constant plays for inmap's binary format.
const checkpointDataVersion = 1

// Checkpoint holds the complete restart state of spec §3's "Checkpoint
// record": grid/timing metadata plus the four ghost-stripped field
// arrays. Grounded on save.go's Save/Load DomainManipulator pair.
type Checkpoint struct {
	DataVersion int

	NX, NY                                 int
	DXY, XOffset, YOffset                  float64
	EndTime, CurrentTime                   float64
	StepIndex, NextSnapshotIndex           int
	HMax                                   float64
	SnapshotPeriod, ResolutionStride       int
	BoundaryLeft, BoundaryRight            Boundary
	BoundaryTop, BoundaryBottom            Boundary
	OutputFilename                         string

	Height, MomentumX, MomentumY, Bathymetry []float64
}

// CheckpointStore saves and loads a single checkpoint file; each Save
// overwrites the previous record (spec §4.8, "no rolling retention").
type CheckpointStore struct {
	Path string
}

// Save writes ck to the store's path, retrying transient I/O failures
// with exponential backoff. Grounded directly on sr/sr.go's
// backoff.RetryNotify usage; each failed attempt is logged through the
// standard library log package. Once the backoff gives up, the error is
// returned for the caller to log (spec §7's "I/O errors during
// checkpoint writing are logged and the run continues") without a
// hand-rolled retry loop.
func (c CheckpointStore) Save(ck Checkpoint) error {
	ck.DataVersion = checkpointDataVersion

	op := func() error {
		f, err := os.Create(c.Path)
		if err != nil {
			return err
		}
		defer f.Close()
		return gob.NewEncoder(f).Encode(ck)
	}

	err := backoff.RetryNotify(
		op,
		backoff.NewExponentialBackOff(),
		func(err error, d time.Duration) {
			log.Printf("tsunami: checkpoint write failed, retrying in %v: %v", d, err)
		},
	)
	if err != nil {
		return fmt.Errorf("tsunami: saving checkpoint: %w", err)
	}
	return nil
}

// Load reads a checkpoint previously written by Save.
func (c CheckpointStore) Load() (Checkpoint, error) {
	f, err := os.Open(c.Path)
	if err != nil {
		return Checkpoint{}, fmt.Errorf("tsunami: loading checkpoint: %w", err)
	}
	defer f.Close()

	var ck Checkpoint
	if err := gob.NewDecoder(f).Decode(&ck); err != nil {
		return Checkpoint{}, fmt.Errorf("%w: %v", ErrCheckpointCorrupt, err)
	}
	if ck.DataVersion != checkpointDataVersion {
		return Checkpoint{}, fmt.Errorf("%w: version %d, want %d", ErrCheckpointCorrupt, ck.DataVersion, checkpointDataVersion)
	}
	return ck, nil
}

// Exists reports whether a checkpoint file is present at c.Path.
func (c CheckpointStore) Exists() bool {
	_, err := os.Stat(c.Path)
	return err == nil
}

// Remove deletes the checkpoint file on clean termination (spec §4.8).
func (c CheckpointStore) Remove() error {
	if err := os.Remove(c.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("tsunami: removing checkpoint: %w", err)
	}
	return nil
}

// RestartSetup implements IndexSetup, sourcing every cell from a loaded
// Checkpoint by (ix, iy) (spec §4.8).
type RestartSetup struct {
	NX     int
	Ck     Checkpoint
}

func (r RestartSetup) HeightAt(ix, iy int) float64     { return r.Ck.Height[iy*r.NX+ix] }
func (r RestartSetup) MomentumXAt(ix, iy int) float64  { return r.Ck.MomentumX[iy*r.NX+ix] }
func (r RestartSetup) MomentumYAt(ix, iy int) float64  { return r.Ck.MomentumY[iy*r.NX+ix] }
func (r RestartSetup) BathymetryAt(ix, iy int) float64 { return r.Ck.Bathymetry[iy*r.NX+ix] }
