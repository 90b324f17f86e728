/*
* Bin width rules module
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

// Package binning estimates joint entropy from histograms of continuous
// multivariate samples and proposes bin edges with the Scott,
// Freedman-Diaconis and Sturges rules.
package binning

import (
	"fmt"
	"math"
	"strings"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"

	"github.com/Gilah-EnE/unite/dataset"
)

// Rule is a bin width heuristic applied to one marginal of the data.
type Rule int

const (
	// Scott uses width 3.49·σ·n^(-1/3).
	Scott Rule = iota
	// FreedmanDiaconis uses width 2·IQR·n^(-1/3).
	FreedmanDiaconis
	// Sturges uses ceil(log2(n)+1) bins.
	Sturges
)

// Rules lists every rule in a stable order.
func Rules() []Rule {
	return []Rule{Scott, FreedmanDiaconis, Sturges}
}

func (r Rule) String() string {
	switch r {
	case Scott:
		return "scott"
	case FreedmanDiaconis:
		return "fd"
	case Sturges:
		return "sturges"
	}
	return fmt.Sprintf("Rule(%d)", int(r))
}

// MarshalText encodes the rule by its short name.
func (r Rule) MarshalText() ([]byte, error) {
	if !r.valid() {
		return nil, fmt.Errorf("%w: unknown rule %d", dataset.ErrConfiguration, int(r))
	}
	return []byte(r.String()), nil
}

// UnmarshalText is the inverse of MarshalText.
func (r *Rule) UnmarshalText(text []byte) error {
	parsed, err := ParseRule(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

func (r Rule) valid() bool {
	return r >= Scott && r <= Sturges
}

// ParseRule resolves a rule name, case-insensitively. Besides the short
// names, "freedman-diaconis" is accepted for FreedmanDiaconis.
func ParseRule(name string) (Rule, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "scott":
		return Scott, nil
	case "fd", "freedman-diaconis":
		return FreedmanDiaconis, nil
	case "sturges":
		return Sturges, nil
	}
	return 0, fmt.Errorf("%w: unknown bin rule %q", dataset.ErrConfiguration, name)
}

// RuleEdges bins one marginal sample with rule: count+1 equally spaced edges
// spanning [min, max]. A sample without spread has no meaningful bin width
// and yields dataset.ErrDegenerate.
func RuleEdges(values []float64, rule Rule) ([]float64, error) {
	n := len(values)
	if n == 0 {
		return nil, fmt.Errorf("%w: empty sample", dataset.ErrShape)
	}
	lo, err := stats.Min(values)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", dataset.ErrShape, err)
	}
	hi, err := stats.Max(values)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", dataset.ErrShape, err)
	}
	if lo == hi {
		return nil, fmt.Errorf("%w: all %d values equal %g", dataset.ErrDegenerate, n, lo)
	}

	var count int
	switch rule {
	case Scott:
		sigma, err := stats.StandardDeviationPopulation(values)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", dataset.ErrNumerical, err)
		}
		count, err = countForWidth(hi-lo, 3.49*sigma*math.Cbrt(1/float64(n)))
		if err != nil {
			return nil, err
		}
	case FreedmanDiaconis:
		iqr, err := stats.InterQuartileRange(values)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", dataset.ErrNumerical, err)
		}
		count, err = countForWidth(hi-lo, 2*iqr*math.Cbrt(1/float64(n)))
		if err != nil {
			return nil, err
		}
	case Sturges:
		count = int(math.Ceil(math.Log2(float64(n)) + 1))
	default:
		return nil, fmt.Errorf("%w: unknown bin rule %d", dataset.ErrConfiguration, int(rule))
	}

	return spanEdges(count, lo, hi), nil
}

// countForWidth falls back to a single bin when the rule's width collapses
// to zero. A width so small that the count would not fit a histogram grid
// is rejected before any edge is allocated.
func countForWidth(span, width float64) (int, error) {
	if width <= 0 || math.IsNaN(width) {
		return 1, nil
	}
	bins := math.Ceil(span / width)
	if !(bins <= maxCells) {
		return 0, fmt.Errorf("%w: bin width %g over a range of %g needs %g bins, more than %d",
			dataset.ErrConfiguration, width, span, bins, maxCells)
	}
	return max(1, int(bins)), nil
}

// spanEdges returns k+1 equally spaced edges. The last edge is pinned to hi
// so the maximum sample always lands in the closed last bin.
func spanEdges(k int, lo, hi float64) []float64 {
	edges := floats.Span(make([]float64, k+1), lo, hi)
	edges[k] = hi
	return edges
}
