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

// Package tsunamicli is the command-line front end (spec §6), grounded
// on inmaputil/cmd.go and inmaputil/config.go: a Cfg wrapping
// *viper.Viper layers a --config file, INMAP_-style environment
// variables (here TSUNAMI_-prefixed), and flags, with flags taking
// precedence the way viper.BindPFlag always does.
package tsunamicli

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/lnashier/viper"
	"github.com/spf13/cobra"
)

// Cfg holds the CLI's configuration surface.
type Cfg struct {
	*viper.Viper

	Root *cobra.Command
}

// flagSpec mirrors inmaputil/cmd.go's `options` table: one entry per
// flag, with its cobra shorthand, usage and default, bound into viper
// so that a --config file, environment variable, or flag may each
// supply it.
type flagSpec struct {
	name, shorthand, usage string
	defaultVal             string
}

var flagSpecs = []flagSpec{
	{"dimension", "d", "grid dimension, 1d or 2d", "1d"},
	{"scenario", "s", `scenario and its arguments, e.g. "dambreak1d 10 5"`, "dambreak1d 10 5"},
	{"left", "l", "left boundary policy, open or closed", "open"},
	{"right", "r", "right boundary policy, open or closed", "open"},
	{"top", "t", "top boundary policy, open or closed", "open"},
	{"bottom", "b", "bottom boundary policy, open or closed", "open"},
	{"stations", "i", "station list JSON path", ""},
	{"stride", "k", "output resolution stride, >= 1", "1"},
	{"device", "o", "compute device, 0 = CPU, 1 = accelerator", "0"},
	{"writer", "w", "snapshot writer, 0 = serial, 1 = concurrent", "0"},
}

// InitializeConfig builds the Cfg and its flag set. It does not parse
// args; call Execute to run.
func InitializeConfig() *Cfg {
	cfg := &Cfg{Viper: viper.New()}
	cfg.SetEnvPrefix("TSUNAMI")
	cfg.AutomaticEnv()

	cfg.Root = &cobra.Command{
		Use:               "tsunami N_CELLS_X",
		Short:             "Shallow-water tsunami simulator.",
		Long:              rootLongHelp,
		Args:              cobra.ExactArgs(1),
		DisableAutoGenTag: true,
		SilenceUsage:      true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return readConfigFile(cfg)
		},
	}
	cfg.Root.PersistentFlags().String("config", "", "path to a TOML configuration file")
	if err := cfg.BindPFlag("config", cfg.Root.PersistentFlags().Lookup("config")); err != nil {
		panic(err)
	}

	flags := cfg.Root.Flags()
	for _, s := range flagSpecs {
		flags.StringP(s.name, s.shorthand, s.defaultVal, s.usage)
		if err := cfg.BindPFlag(s.name, flags.Lookup(s.name)); err != nil {
			panic(err)
		}
	}
	return cfg
}

const rootLongHelp = `tsunami runs a finite-volume shallow-water simulation over a 1D or 2D
grid of N_CELLS_X cells (cell size in metres for tsunami2d).

Configuration may come from a --config TOML file, TSUNAMI_-prefixed
environment variables, or flags; flags take precedence.`

// readConfigFile loads --config, if set, as a TOML document — grounded
// on emissions/slca/bea's toml.DecodeReader usage — and merges it into
// cfg at viper's config layer, which sits below flags and environment
// variables in viper's precedence order. cfg.Set would instead land in
// viper's override layer, the highest-precedence one, silently beating
// any flag the user actually passed — the opposite of what
// rootLongHelp promises ("flags take precedence").
func readConfigFile(cfg *Cfg) error {
	path := cfg.GetString("config")
	if path == "" {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("tsunami: opening config file: %w", err)
	}
	defer f.Close()

	var doc map[string]interface{}
	if _, err := toml.DecodeReader(f, &doc); err != nil {
		return fmt.Errorf("tsunami: parsing config file: %w", err)
	}
	if err := cfg.MergeConfigMap(doc); err != nil {
		return fmt.Errorf("tsunami: merging config file: %w", err)
	}
	return nil
}
