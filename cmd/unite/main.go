/*
* Command line front end
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

// Command unite estimates entropy and Kullback-Leibler divergence of samples
// stored as CSV files.
package main

import (
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Gilah-EnE/unite/analysis"
	"github.com/Gilah-EnE/unite/binning"
	"github.com/Gilah-EnE/unite/dataset"
	"github.com/Gilah-EnE/unite/kde"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("unite: ")
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		log.Fatal(err)
	}
}

// command carries the state shared by the subcommands of one invocation.
type command struct {
	vip        *viper.Viper
	out        io.Writer
	configFile string
	settings   settings
}

func newRootCmd(out io.Writer) *cobra.Command {
	c := &command{vip: viper.New(), out: out}
	root := &cobra.Command{
		Use:   "unite",
		Short: "Entropy and divergence of multivariate samples",
		Long: `unite estimates the joint entropy of a sample with a histogram or a
Gaussian kernel density estimate, and the Kullback-Leibler divergence of two
samples with kernel density estimates. Samples are CSV files with one
observation per line. All results are in nats.

Every flag may also be set in a YAML file given with --config or through
UNITE_* environment variables (UNITE_BANDWIDTH, UNITE_ABS_TOL, ...).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := readConfigFile(c.vip, c.configFile); err != nil {
				return err
			}
			if used := c.vip.ConfigFileUsed(); used != "" {
				log.Printf("using config %s", used)
			}
			s, err := resolveSettings(c.vip)
			if err != nil {
				return err
			}
			c.settings = s
			return nil
		},
	}
	flags := root.PersistentFlags()
	flags.StringVar(&c.configFile, "config", "", "YAML configuration file")
	addEstimatorFlags(flags)
	if err := bindConfig(c.vip, flags); err != nil {
		log.Fatal(err)
	}

	root.AddCommand(
		c.newBinsCmd(),
		c.newHistCmd(),
		c.newKDECmd(),
		c.newKLDCmd(),
		c.newAllCmd(),
	)
	return root
}

func (c *command) newAllCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "all P [Q]",
		Short: "Run every estimator on P, and the divergence from Q when given",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := analysis.Request{
				Bins:   c.settings.bins,
				KDE:    c.settings.kdeOptions(),
				Logger: log.Default(),
			}
			var err error
			if req.P, err = dataset.LoadCSV(args[0]); err != nil {
				return err
			}
			r := &allReport{P: args[0], Bins: c.settings.bins.String(), Bandwidth: c.settings.bandwidth.String()}
			if len(args) == 2 {
				if req.Q, err = dataset.LoadCSV(args[1]); err != nil {
					return err
				}
				r.Q = args[1]
			}
			summary, err := analysis.Run(req)
			if err != nil {
				return err
			}
			r.fill(summary)
			return writeReport(c.out, c.settings.output, r)
		},
	}
}

func (c *command) newBinsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bins FILE",
		Short: "Propose bin counts and edges with the Scott, Freedman-Diaconis and Sturges rules",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := dataset.LoadCSV(args[0])
			if err != nil {
				return err
			}
			edges, err := binning.IdealBinEdges(x)
			if err != nil {
				return err
			}
			return writeReport(c.out, c.settings.output, newBinsReport(args[0], binning.BinCounts(edges), edges))
		},
	}
}

func (c *command) newHistCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hist FILE",
		Short: "Estimate joint entropy from a histogram",
		Example: `  unite hist --bins sturges sample.csv
  unite hist --bins "10;20" sample.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := dataset.LoadCSV(args[0])
			if err != nil {
				return err
			}
			h, cf, err := binning.Entropy(x, c.settings.bins)
			if err != nil {
				return err
			}
			return writeReport(c.out, c.settings.output, &histReport{
				File:         args[0],
				Bins:         c.settings.bins.String(),
				Entropy:      h,
				Correction:   cf,
				Differential: h + cf,
			})
		},
	}
}

func (c *command) newKDECmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kde FILE",
		Short: "Estimate differential entropy from a Gaussian kernel density estimate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := dataset.LoadCSV(args[0])
			if err != nil {
				return err
			}
			h, err := kde.Entropy(x, c.settings.kdeOptions()...)
			if err != nil {
				return err
			}
			return writeReport(c.out, c.settings.output, &kdeReport{
				File:      args[0],
				Bandwidth: c.settings.bandwidth.String(),
				Entropy:   h,
			})
		},
	}
}

func (c *command) newKLDCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kld P Q",
		Short: "Estimate the Kullback-Leibler divergence D(P||Q) from kernel density estimates",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := dataset.LoadCSV(args[0])
			if err != nil {
				return err
			}
			q, err := dataset.LoadCSV(args[1])
			if err != nil {
				return err
			}
			kld, err := kde.Divergence(p, q, c.settings.kdeOptions()...)
			if err != nil {
				return err
			}
			return writeReport(c.out, c.settings.output, &kldReport{
				P:          args[0],
				Q:          args[1],
				Bandwidth:  c.settings.bandwidth.String(),
				Divergence: kld,
			})
		},
	}
}
