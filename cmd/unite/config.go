/*
* Command line configuration
* Copyright (C) 2025  Artem Stefankiv
*
* This program is free software: you can redistribute it and/or modify
* it under the terms of the GNU General Public License as published by
* the Free Software Foundation, either version 3 of the License, or
* (at your option) any later version.
*
* This program is distributed in the hope that it will be useful,
* but WITHOUT ANY WARRANTY; without even the implied warranty of
* MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
* GNU General Public License for more details.
*
* You should have received a copy of the GNU General Public License
* along with this program.  If not, see <http://www.gnu.org/licenses/>.
 */

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Gilah-EnE/unite/binning"
	"github.com/Gilah-EnE/unite/dataset"
	"github.com/Gilah-EnE/unite/kde"
	"github.com/Gilah-EnE/unite/parse"
	"github.com/Gilah-EnE/unite/quad"
)

// EnvPrefix prefixes the environment variables read by unite, e.g.
// UNITE_BANDWIDTH or UNITE_ABS_TOL.
const EnvPrefix = "UNITE"

// Configuration keys. Flags use the same names with dashes.
const (
	keyBins      = "bins"
	keyBandwidth = "bandwidth"
	keyAbsTol    = "abs_tol"
	keyRelTol    = "rel_tol"
	keyLimit     = "limit"
	keyOutput    = "output"
)

var flagKeys = map[string]string{
	"bins":      keyBins,
	"bandwidth": keyBandwidth,
	"abs-tol":   keyAbsTol,
	"rel-tol":   keyRelTol,
	"limit":     keyLimit,
	"output":    keyOutput,
}

func addEstimatorFlags(flags *pflag.FlagSet) {
	defaults := quad.DefaultOptions()
	flags.String("bins", binning.FreedmanDiaconis.String(), `histogram bins: a rule (scott, fd, sturges), a count "10", per-column counts "10;20" or edges "0,0.5,1;..."`)
	flags.String("bandwidth", kde.Scott().String(), "KDE bandwidth: scott, silverman or a positive covariance factor")
	flags.Float64("abs-tol", defaults.AbsTol, "absolute tolerance of the KDE integrals")
	flags.Float64("rel-tol", defaults.RelTol, "relative tolerance of the KDE integrals")
	flags.Int("limit", defaults.Limit, "subinterval limit per one-dimensional integral")
	flags.StringP("output", "o", formatYAML, "output format: yaml, json or text")
}

// bindConfig makes vip resolve every key from, in decreasing priority, an
// explicitly set flag, a UNITE_* environment variable, the config file and
// the flag default.
func bindConfig(vip *viper.Viper, flags *pflag.FlagSet) error {
	vip.SetEnvPrefix(EnvPrefix)
	vip.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	vip.AutomaticEnv()
	for name, key := range flagKeys {
		if err := vip.BindPFlag(key, flags.Lookup(name)); err != nil {
			return fmt.Errorf("binding flag %s: %w", name, err)
		}
	}
	return nil
}

func readConfigFile(vip *viper.Viper, fileName string) error {
	if fileName == "" {
		return nil
	}
	vip.SetConfigFile(fileName)
	if err := vip.ReadInConfig(); err != nil {
		return fmt.Errorf("%w: reading config %s: %w", dataset.ErrConfiguration, fileName, err)
	}
	return nil
}

// settings is the resolved configuration of one run.
type settings struct {
	bins       binning.Bins
	bandwidth  kde.Bandwidth
	quadrature quad.Options
	output     string
}

func resolveSettings(vip *viper.Viper) (settings, error) {
	var s settings
	var err error
	if s.bins, err = parse.Bins(vip.GetString(keyBins)); err != nil {
		return s, err
	}
	if s.bandwidth, err = parse.Bandwidth(vip.GetString(keyBandwidth)); err != nil {
		return s, err
	}
	s.quadrature = quad.Options{
		AbsTol: vip.GetFloat64(keyAbsTol),
		RelTol: vip.GetFloat64(keyRelTol),
		Limit:  vip.GetInt(keyLimit),
	}
	if err := s.quadrature.Validate(); err != nil {
		return s, fmt.Errorf("%w: %w", dataset.ErrConfiguration, err)
	}
	s.output = strings.ToLower(vip.GetString(keyOutput))
	switch s.output {
	case formatYAML, formatJSON, formatText:
	default:
		return s, fmt.Errorf("%w: unknown output format %q", dataset.ErrConfiguration, s.output)
	}
	return s, nil
}

func (s settings) kdeOptions() []kde.Option {
	return []kde.Option{kde.WithBandwidth(s.bandwidth), kde.WithQuadrature(s.quadrature)}
}
