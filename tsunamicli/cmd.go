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
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	tsunami "github.com/scalable-tsunami/tsunami-lab"
	"github.com/scalable-tsunami/tsunami-lab/internal/accel"
)

// Exit codes per spec §6: 0 success; non-zero on argument validation
// failure, invalid solver, missing scenario file, or device-init
// failure.
const (
	exitOK = iota
	exitBadArgs
	exitMissingFile
	exitDeviceUnavailable
)

const (
	csvDir         = "csv_dump"
	netCDFDir      = "netCDF_dump"
	stationDir     = "station_data"
	checkpointDir  = "checkpoints"
	checkpointFile = checkpointDir + "/checkpoint.bin"
)

// Execute parses args (excluding argv[0]) and runs the simulation,
// returning a process exit code. Grounded on inmaputil/cmd.go's
// Cfg/cobra wiring, adapted to this package's flat (no-subcommand)
// command surface.
func Execute(args []string) int {
	cfg := InitializeConfig()
	cfg.Root.SetArgs(args)
	cfg.Root.RunE = func(cmd *cobra.Command, cliArgs []string) error {
		return run(cfg, cliArgs)
	}

	if err := cfg.Root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "tsunami:", err)
		return exitCodeFor(err)
	}
	return exitOK
}

func exitCodeFor(err error) int {
	switch {
	case errors.Is(err, tsunami.ErrDeviceUnavailable), errors.Is(err, accel.ErrDeviceUnavailable):
		return exitDeviceUnavailable
	case errors.Is(err, tsunami.ErrIO), os.IsNotExist(err):
		return exitMissingFile
	default:
		return exitBadArgs
	}
}

func run(cfg *Cfg, positional []string) error {
	logger := logrus.StandardLogger()

	restoring := checkpointExists()
	if err := prepareOutputDirs(restoring); err != nil {
		return err
	}

	left, err := tsunami.ParseBoundary(cfg.GetString("left"))
	if err != nil {
		return err
	}
	right, err := tsunami.ParseBoundary(cfg.GetString("right"))
	if err != nil {
		return err
	}
	top, err := tsunami.ParseBoundary(cfg.GetString("top"))
	if err != nil {
		return err
	}
	bottom, err := tsunami.ParseBoundary(cfg.GetString("bottom"))
	if err != nil {
		return err
	}
	boundary := tsunami.EdgeBoundary{Left: left, Right: right, Top: top, Bottom: bottom}

	stride := cfg.GetInt("stride")
	if stride < 1 {
		return fmt.Errorf("%w: stride must be >= 1, got %d", tsunami.ErrInvalidArguments, stride)
	}

	sceneFields := strings.Fields(cfg.GetString("scenario"))
	setup, dims, err := buildScenario(sceneFields)
	if err != nil {
		return err
	}

	// The scenario name alone determines dimensionality; -d/--dimension
	// is accepted for symmetry with the original CLI but only echoed
	// into logging, never validated against the scenario.
	logger.WithField("dimension", cfg.GetString("dimension")).WithField("scenario", sceneFields[0]).Info("tsunami: starting")

	nArg, err := strconv.ParseFloat(positional[0], 64)
	if err != nil || nArg <= 0 {
		return fmt.Errorf("%w: N_CELLS_X must be a positive number", tsunami.ErrInvalidArguments)
	}

	checkpoints := tsunami.CheckpointStore{Path: checkpointFile}
	device := cfg.GetString("device")
	writer := cfg.GetString("writer") == "1"

	var station *tsunami.StationSampler

	if dims.dim == 1 {
		nx := int(nArg)
		dxy := dims.width / float64(nx)

		patch, err := tsunami.NewPatch1D(nx, left, right, tsunami.FWave)
		if err != nil {
			return err
		}

		if restoring {
			ck, err := checkpoints.Load()
			if err != nil {
				return err
			}
			patch.FillIndexed(tsunami.RestartSetup{NX: ck.NX, Ck: ck})
		} else {
			patch.Fill(setup, dxy, dims.xOffset)
		}

		if cfg.GetString("stations") != "" {
			station, err = tsunami.LoadStationSampler(cfg.GetString("stations"), stationDir, dxy, dims.xOffset, dims.yOffset)
			if err != nil {
				return err
			}
		}

		textSink := tsunami.TextSink{
			Dir: csvDir, DXY: dxy, XOff: dims.xOffset, YOff: dims.yOffset,
			Fields: tsunami.Fields{MomentumX: true, Bathymetry: true},
			NX:     nx, NY: 1,
		}

		driver := &tsunami.Driver{
			Patch: patch, NX: nx, NY: 1,
			DXY: dxy, XOffset: dims.xOffset, YOffset: dims.yOffset,
			EndTime:          dims.endTime,
			SnapshotEvery:    dims.simulatedFrame,
			ResolutionStride: stride,
			TextSink:         &textSink,
			Station:          station,
			Checkpoints:      checkpoints,
			CheckpointEvery:  3600 * time.Second,
			ParallelWriter:   writer,
			Logger:           logger,
			LogEvery:         100,
			CheckpointState: func(simTime float64, stepIndex, nextSnapshotIndex int, hMax float64) tsunami.Checkpoint {
				return tsunami.Checkpoint{
					NX: nx, NY: 1, DXY: dxy, XOffset: dims.xOffset, YOffset: dims.yOffset,
					EndTime: dims.endTime, CurrentTime: simTime,
					StepIndex: stepIndex, NextSnapshotIndex: nextSnapshotIndex, HMax: hMax,
					SnapshotPeriod: dims.simulatedFrame, ResolutionStride: stride,
					BoundaryLeft: left, BoundaryRight: right, BoundaryTop: top, BoundaryBottom: bottom,
					OutputFilename: csvDir,
					Height:         patch.Height(), MomentumX: patch.MomentumX(), Bathymetry: patch.Bathymetry(),
				}
			},
		}

		_, err = driver.Run(context.Background())
		return err
	}

	// 2D.
	var nx, ny int
	var dxy float64
	if sceneFields[0] == "tsunami2d" {
		dxy = nArg
		nx = int(dims.width / dxy)
		ny = int(dims.height / dxy)
	} else {
		nx = int(nArg)
		ny = nx
		dxy = dims.width / float64(nx)
	}

	var driverPatch tsunami.Patch
	var cpuPatch *tsunami.Patch2D
	var accelPatch *accel.Patch
	var bathy []float64

	if device == "1" {
		accelPatch, err = accel.NewPatch(nx, ny, uint32(left), uint32(right), uint32(top), uint32(bottom))
		if err != nil {
			return err
		}
	} else {
		cpuPatch, err = tsunami.NewPatch2D(nx, ny, boundary, tsunami.FWave)
		if err != nil {
			return err
		}
		driverPatch = cpuPatch
	}

	if restoring {
		ck, err := checkpoints.Load()
		if err != nil {
			return err
		}
		bathy = ck.Bathymetry
		if cpuPatch != nil {
			cpuPatch.FillIndexed(tsunami.RestartSetup{NX: ck.NX, Ck: ck})
		} else {
			accelPatch.SetData(ck.Height, ck.MomentumX, ck.MomentumY, ck.Bathymetry)
		}
	} else if cpuPatch != nil {
		cpuPatch.Fill(setup, dxy, dims.xOffset, dims.yOffset)
		bathy = cpuPatch.Bathymetry()
	} else {
		h, hu, hv, b := sampleOntoGrid(setup, nx, ny, dxy, dims.xOffset, dims.yOffset)
		accelPatch.SetData(h, hu, hv, b)
		bathy = b
	}

	// accelAdapter caches bathy since it's static and the device has no
	// dedicated readback for it (spec §4.4).
	if accelPatch != nil {
		driverPatch = accelAdapter{accelPatch, bathy}
	}

	if cfg.GetString("stations") != "" {
		station, err = tsunami.LoadStationSampler(cfg.GetString("stations"), stationDir, dxy, dims.xOffset, dims.yOffset)
		if err != nil {
			return err
		}
	}

	binSink, err := tsunami.NewBinarySink(fmt.Sprintf("%s/solution_%g_%d.nc", netCDFDir, dxy, time.Now().Unix()), nx, ny, stride, bathy)
	if err != nil {
		return err
	}
	defer binSink.Close()

	driver := &tsunami.Driver{
		Patch: driverPatch, NX: nx, NY: ny,
		DXY: dxy, XOffset: dims.xOffset, YOffset: dims.yOffset,
		EndTime:          dims.endTime,
		SnapshotEvery:    dims.simulatedFrame,
		ResolutionStride: stride,
		BinarySink:       binSink,
		Station:          station,
		Checkpoints:      checkpoints,
		CheckpointEvery:  3600 * time.Second,
		ParallelWriter:   writer,
		Logger:           logger,
		LogEvery:         100,
		CheckpointState: func(simTime float64, stepIndex, nextSnapshotIndex int, hMax float64) tsunami.Checkpoint {
			h, hu, hv := currentState(driverPatch)
			return tsunami.Checkpoint{
				NX: nx, NY: ny, DXY: dxy, XOffset: dims.xOffset, YOffset: dims.yOffset,
				EndTime: dims.endTime, CurrentTime: simTime,
				StepIndex: stepIndex, NextSnapshotIndex: nextSnapshotIndex, HMax: hMax,
				SnapshotPeriod: dims.simulatedFrame, ResolutionStride: stride,
				BoundaryLeft: left, BoundaryRight: right, BoundaryTop: top, BoundaryBottom: bottom,
				OutputFilename: netCDFDir,
				Height:         h, MomentumX: hu, MomentumY: hv, Bathymetry: bathy,
			}
		},
	}

	_, err = driver.Run(context.Background())
	return err
}

func checkpointExists() bool {
	_, err := os.Stat(checkpointFile)
	return err == nil
}

// prepareOutputDirs creates the four output directories, clearing them
// at startup unless a checkpoint restore is in progress (spec §6).
func prepareOutputDirs(restoring bool) error {
	dirs := []string{csvDir, netCDFDir, stationDir, checkpointDir}
	for _, d := range dirs {
		if !restoring {
			if err := os.RemoveAll(d); err != nil {
				return fmt.Errorf("%w: clearing %s: %v", tsunami.ErrIO, d, err)
			}
		}
		if err := os.MkdirAll(d, 0o755); err != nil {
			return fmt.Errorf("%w: creating %s: %v", tsunami.ErrIO, d, err)
		}
	}
	return nil
}

// sampleOntoGrid evaluates setup over the whole grid for the
// accelerator path, which has no host-side Fill of its own (its state
// lives in device buffers, spec §4.4).
func sampleOntoGrid(setup tsunami.Setup, nx, ny int, dxy, xOffset, yOffset float64) (h, hu, hv, b []float64) {
	n := nx * ny
	h, hu, hv, b = make([]float64, n), make([]float64, n), make([]float64, n), make([]float64, n)
	for iy := 0; iy < ny; iy++ {
		y := (float64(iy)+0.5)*dxy - yOffset
		for ix := 0; ix < nx; ix++ {
			x := (float64(ix)+0.5)*dxy - xOffset
			i := iy*nx + ix
			h[i] = setup.Height(x, y)
			hu[i] = setup.MomentumX(x, y)
			hv[i] = setup.MomentumY(x, y)
			b[i] = setup.Bathymetry(x, y)
		}
	}
	return h, hu, hv, b
}

// accelAdapter satisfies tsunami.Patch for the device-offloaded patch.
// bathy is cached at construction time since bathymetry is static and
// the device has no dedicated readback for it.
type accelAdapter struct {
	p     *accel.Patch
	bathy []float64
}

func (a accelAdapter) TimeStep(scaling float64) error { return a.p.TimeStep(scaling) }
func (a accelAdapter) HMax() float64 {
	h, _, _, err := a.p.GetData()
	if err != nil || len(h) == 0 {
		return 0
	}
	max := h[0]
	for _, v := range h[1:] {
		if v > max {
			max = v
		}
	}
	return max
}
func (a accelAdapter) Height() []float64 {
	h, _, _, _ := a.p.GetData()
	return h
}
func (a accelAdapter) MomentumX() []float64 {
	_, hu, _, _ := a.p.GetData()
	return hu
}
func (a accelAdapter) MomentumY() []float64 {
	_, _, hv, _ := a.p.GetData()
	return hv
}
func (a accelAdapter) Bathymetry() []float64 { return a.bathy }

// currentState reads back the time-varying fields only; bathymetry is
// static and the caller already holds it from setup.
func currentState(p tsunami.Patch) (h, hu, hv []float64) {
	h = p.Height()
	hu = p.MomentumX()
	if py, ok := p.(interface{ MomentumY() []float64 }); ok {
		hv = py.MomentumY()
	}
	return h, hu, hv
}
