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
	"context"
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"
)

// Patch is the subset of Patch1D/Patch2D the driver needs; accel.Patch
// reaches the driver through an adapter in the CLI that provides it.
// MomentumY is intentionally absent: 1D patches don't have a y-momentum
// field, and the driver type-asserts for it where a 2D field is needed.
type Patch interface {
	TimeStep(scaling float64) error
	HMax() float64
	Height() []float64
	MomentumX() []float64
	Bathymetry() []float64
}

type patchWithY interface {
	MomentumY() []float64
}

// RunStats accumulates the nanosecond-resolution timing breakdown spec
// §4.5's last line requires.
type RunStats struct {
	Total, Setup, Compute, Write, Checkpoint time.Duration
}

// Driver runs the CFL-frozen-dt time loop of spec §4.5. Grounded on
// run.go's DomainManipulator composition style, generalized to this
// package's single Patch capability; logrus-based status reporting
// mirrors run.go's Log() DomainManipulator.
type Driver struct {
	Patch Patch
	NX    int
	NY    int // 1 for a 1D patch

	DXY, XOffset, YOffset float64
	EndTime                float64

	SnapshotEvery    int // steps (simulated_frame)
	ResolutionStride int

	TextSink   *TextSink
	BinarySink *BinarySink

	Station *StationSampler

	Checkpoints     CheckpointStore
	CheckpointEvery time.Duration
	CheckpointState func(simTime float64, stepIndex, nextSnapshotIndex int, hMax float64) Checkpoint

	ParallelWriter bool
	Logger         *logrus.Logger
	LogEvery       int
}

type snapshotEnvelope struct {
	index              int
	simTime            float64
	h, hu, hv, b       []float64
}

// writerSlot is the single-outstanding-writer primitive of spec §5: the
// driver blocks on done before launching a second write.
type writerSlot struct {
	envelope chan snapshotEnvelope
	done     chan struct{}
	errs     chan error
}

func newWriterSlot(write func(snapshotEnvelope) error) *writerSlot {
	s := &writerSlot{
		envelope: make(chan snapshotEnvelope),
		done:     make(chan struct{}, 1),
		errs:     make(chan error, 1),
	}
	go func() {
		for env := range s.envelope {
			err := write(env)
			select {
			case s.errs <- err:
			default:
			}
			s.done <- struct{}{}
		}
	}()
	return s
}

// Run executes the time loop until sim_time reaches EndTime or ctx is
// canceled. It returns the accumulated RunStats and the first error
// encountered.
func (d *Driver) Run(ctx context.Context) (stats RunStats, err error) {
	runStart := time.Now()
	defer func() { stats.Total = time.Since(runStart) }()

	setupStart := time.Now()
	speedMax := math.Sqrt(Gravity * d.Patch.HMax())
	dt := 0.5 * d.DXY / speedMax
	scaling := dt / d.DXY
	stats.Setup = time.Since(setupStart)

	logger := d.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	var pendingWrite *writerSlot
	if d.ParallelWriter {
		pendingWrite = newWriterSlot(d.writeSnapshot)
	}

	simTime := 0.0
	stepIndex := 0
	nextSnapshotIndex := 0
	nextStationTick := 0.0
	lastCheckpoint := time.Now()

	logStart := time.Now()
	for simTime < d.EndTime {
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		default:
		}

		if d.Checkpoints.Path != "" && d.CheckpointEvery > 0 && time.Since(lastCheckpoint) >= d.CheckpointEvery {
			ckStart := time.Now()
			if err := d.saveCheckpoint(simTime, stepIndex, nextSnapshotIndex); err != nil {
				logger.WithError(err).Warn("tsunami: checkpoint save failed, continuing")
			}
			stats.Checkpoint += time.Since(ckStart)
			lastCheckpoint = time.Now()
		}

		if d.SnapshotEvery > 0 && stepIndex%d.SnapshotEvery == 0 {
			writeStart := time.Now()
			env := d.snapshot(nextSnapshotIndex, simTime)
			if pendingWrite != nil {
				select {
				case <-pendingWrite.done:
					if err := drainErr(pendingWrite.errs); err != nil {
						logger.WithError(err).Warn("tsunami: snapshot write failed")
					}
				default:
				}
				pendingWrite.envelope <- env
			} else if err := d.writeSnapshot(env); err != nil {
				logger.WithError(err).Warn("tsunami: snapshot write failed")
			}
			nextSnapshotIndex++
			stats.Write += time.Since(writeStart)
		}

		if d.Station != nil && simTime >= nextStationTick {
			writeStart := time.Now()
			h := d.Patch.Height()
			hu := d.Patch.MomentumX()
			hv := zeroIfAbsent(d.Patch, d.NX*d.NY)
			b := d.Patch.Bathymetry()
			if err := d.Station.Sample(simTime, d.NX, h, hu, hv, b); err != nil {
				logger.WithError(err).Warn("tsunami: station sample failed")
			}
			nextStationTick += d.Station.OutputFrequency
			stats.Write += time.Since(writeStart)
		}

		computeStart := time.Now()
		if err := d.Patch.TimeStep(scaling); err != nil {
			return stats, fmt.Errorf("tsunami: time step %d: %w", stepIndex, err)
		}
		stats.Compute += time.Since(computeStart)

		stepIndex++
		simTime += dt

		if d.LogEvery > 0 && stepIndex%d.LogEvery == 0 {
			logger.WithFields(logrus.Fields{
				"step":      stepIndex,
				"sim_time":  simTime,
				"wall_time": time.Since(logStart),
			}).Info("tsunami: progress")
		}
	}

	if pendingWrite != nil {
		select {
		case <-pendingWrite.done:
			if err := drainErr(pendingWrite.errs); err != nil {
				logger.WithError(err).Warn("tsunami: final snapshot write failed")
			}
		default:
		}
		close(pendingWrite.envelope)
	}
	if d.Station != nil {
		if err := d.Station.Close(); err != nil {
			logger.WithError(err).Warn("tsunami: closing station output failed")
		}
	}
	if d.Checkpoints.Path != "" {
		if err := d.Checkpoints.Remove(); err != nil {
			logger.WithError(err).Warn("tsunami: removing checkpoint on clean termination failed")
		}
	}

	return stats, nil
}

func drainErr(errs chan error) error {
	select {
	case err := <-errs:
		return err
	default:
		return nil
	}
}

func zeroIfAbsent(p Patch, n int) []float64 {
	if py, ok := p.(patchWithY); ok {
		return py.MomentumY()
	}
	return make([]float64, n)
}

func (d *Driver) snapshot(index int, simTime float64) snapshotEnvelope {
	return snapshotEnvelope{
		index:   index,
		simTime: simTime,
		h:       d.Patch.Height(),
		hu:      d.Patch.MomentumX(),
		hv:      zeroIfAbsent(d.Patch, d.NX*d.NY),
		b:       d.Patch.Bathymetry(),
	}
}

func (d *Driver) writeSnapshot(env snapshotEnvelope) error {
	if d.TextSink != nil {
		if err := d.TextSink.WriteSnapshot(env.index, env.h, env.hu, env.hv, env.b); err != nil {
			return err
		}
	}
	if d.BinarySink != nil {
		if err := d.BinarySink.WriteSnapshot(env.simTime, env.h, env.hu, env.hv); err != nil {
			return err
		}
	}
	return nil
}

func (d *Driver) saveCheckpoint(simTime float64, stepIndex, nextSnapshotIndex int) error {
	if d.CheckpointState == nil {
		return nil
	}
	ck := d.CheckpointState(simTime, stepIndex, nextSnapshotIndex, d.Patch.HMax())
	return d.Checkpoints.Save(ck)
}
