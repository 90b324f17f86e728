/*
* Command line result output
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
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Gilah-EnE/unite/analysis"
	"github.com/Gilah-EnE/unite/binning"
)

const (
	formatYAML = "yaml"
	formatJSON = "json"
	formatText = "text"
)

// report is the result of one subcommand.
type report interface {
	writeText(w io.Writer) error
}

// binsReport lists the ideal bins of every column under each rule.
type binsReport struct {
	File   string                 `yaml:"file" json:"file"`
	Counts map[string][]int       `yaml:"counts" json:"counts"`
	Edges  map[string][][]float64 `yaml:"edges" json:"edges"`
}

func newBinsReport(file string, counts map[binning.Rule][]int, edges map[binning.Rule][][]float64) *binsReport {
	r := &binsReport{
		File:   file,
		Counts: make(map[string][]int, len(counts)),
		Edges:  make(map[string][][]float64, len(edges)),
	}
	for rule, c := range counts {
		r.Counts[rule.String()] = c
	}
	for rule, e := range edges {
		r.Edges[rule.String()] = e
	}
	return r
}

func (r *binsReport) writeText(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "file: %s\n", r.File); err != nil {
		return err
	}
	for _, rule := range binning.Rules() {
		counts := make([]string, len(r.Counts[rule.String()]))
		for i, c := range r.Counts[rule.String()] {
			counts[i] = strconv.Itoa(c)
		}
		if _, err := fmt.Fprintf(w, "%-8s %s\n", rule, strings.Join(counts, " ")); err != nil {
			return err
		}
	}
	return nil
}

// histReport is a histogram entropy estimate.
type histReport struct {
	File         string  `yaml:"file" json:"file"`
	Bins         string  `yaml:"bins" json:"bins"`
	Entropy      float64 `yaml:"entropy" json:"entropy"`
	Correction   float64 `yaml:"correction" json:"correction"`
	Differential float64 `yaml:"differential" json:"differential"`
}

func (r *histReport) writeText(w io.Writer) error {
	_, err := fmt.Fprintf(w, "file: %s\nbins: %s\nentropy: %g nats\ncorrection: %g nats\ndifferential: %g nats\n",
		r.File, r.Bins, r.Entropy, r.Correction, r.Differential)
	return err
}

// kdeReport is a KDE entropy estimate.
type kdeReport struct {
	File      string  `yaml:"file" json:"file"`
	Bandwidth string  `yaml:"bandwidth" json:"bandwidth"`
	Entropy   float64 `yaml:"entropy" json:"entropy"`
}

func (r *kdeReport) writeText(w io.Writer) error {
	_, err := fmt.Fprintf(w, "file: %s\nbandwidth: %s\nentropy: %g nats\n", r.File, r.Bandwidth, r.Entropy)
	return err
}

// kldReport is a KDE divergence estimate D(P‖Q).
type kldReport struct {
	P          string  `yaml:"p" json:"p"`
	Q          string  `yaml:"q" json:"q"`
	Bandwidth  string  `yaml:"bandwidth" json:"bandwidth"`
	Divergence float64 `yaml:"divergence" json:"divergence"`
}

func (r *kldReport) writeText(w io.Writer) error {
	_, err := fmt.Fprintf(w, "p: %s\nq: %s\nbandwidth: %s\ndivergence: %g nats\n", r.P, r.Q, r.Bandwidth, r.Divergence)
	return err
}

// allReport gathers every estimate of one analysis.Run.
type allReport struct {
	P            string           `yaml:"p" json:"p"`
	Q            string           `yaml:"q,omitempty" json:"q,omitempty"`
	Bins         string           `yaml:"bins" json:"bins"`
	Bandwidth    string           `yaml:"bandwidth" json:"bandwidth"`
	Counts       map[string][]int `yaml:"counts" json:"counts"`
	Entropy      float64          `yaml:"entropy" json:"entropy"`
	Correction   float64          `yaml:"correction" json:"correction"`
	Differential float64          `yaml:"differential" json:"differential"`
	KDEEntropy   float64          `yaml:"kde_entropy" json:"kde_entropy"`
	Divergence   *float64         `yaml:"divergence,omitempty" json:"divergence,omitempty"`
}

func (r *allReport) fill(s *analysis.Summary) {
	r.Counts = make(map[string][]int, len(s.Counts))
	for rule, c := range s.Counts {
		r.Counts[rule.String()] = c
	}
	r.Entropy = s.Entropy
	r.Correction = s.Correction
	r.Differential = s.Differential()
	r.KDEEntropy = s.KDEEntropy
	if s.HasDivergence {
		kld := s.Divergence
		r.Divergence = &kld
	}
}

func (r *allReport) writeText(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "p: %s\nbins: %s\nentropy: %g nats\ncorrection: %g nats\ndifferential: %g nats\nbandwidth: %s\nkde entropy: %g nats\n",
		r.P, r.Bins, r.Entropy, r.Correction, r.Differential, r.Bandwidth, r.KDEEntropy); err != nil {
		return err
	}
	if r.Divergence != nil {
		_, err := fmt.Fprintf(w, "q: %s\ndivergence: %g nats\n", r.Q, *r.Divergence)
		return err
	}
	return nil
}

func writeReport(w io.Writer, format string, r report) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case formatText:
		return r.writeText(w)
	default:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	}
}
