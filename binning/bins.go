/*
* Bin specification module
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

package binning

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/Gilah-EnE/unite/dataset"
)

// ErrInvalidBins indicates edges that are not strictly increasing, too short,
// not finite, or that leave every sample outside the histogram.
var ErrInvalidBins = errors.New("binning: invalid bin edges")

// Bins describes how to bin each column of a sample matrix. It is built with
// Uniform, Counts, Edges or ByRule.
type Bins interface {
	// resolve turns the bins into per-column edges for x (d columns).
	resolve(x mat.Matrix, d int) ([][]float64, error)
	fmt.Stringer
}

type uniformBins int

type countBins []int

type edgeBins [][]float64

type ruleBins Rule

// Uniform bins every column into k equal-width bins over its range.
func Uniform(k int) Bins { return uniformBins(k) }

// Counts bins column j into counts[j] equal-width bins over its range.
func Counts(counts ...int) Bins { return countBins(slices.Clone(counts)) }

// Edges bins column j with the explicit edges[j].
func Edges(edges ...[]float64) Bins {
	cp := make(edgeBins, len(edges))
	for j, e := range edges {
		cp[j] = slices.Clone(e)
	}
	return cp
}

// ByRule bins each column with the edges rule proposes for it.
func ByRule(rule Rule) Bins { return ruleBins(rule) }

func (u uniformBins) resolve(x mat.Matrix, d int) ([][]float64, error) {
	counts := make([]int, d)
	for j := range counts {
		counts[j] = int(u)
	}
	return countBins(counts).resolve(x, d)
}

func (u uniformBins) String() string { return strconv.Itoa(int(u)) }

func (c countBins) resolve(x mat.Matrix, d int) ([][]float64, error) {
	if len(c) != d {
		return nil, fmt.Errorf("%w: %d bin counts for %d columns", dataset.ErrConfiguration, len(c), d)
	}
	cells := 1
	for j, k := range c {
		if k < 1 {
			return nil, fmt.Errorf("%w: column %d needs at least one bin, got %d", dataset.ErrConfiguration, j, k)
		}
		var err error
		if cells, err = growGrid(cells, k); err != nil {
			return nil, err
		}
	}

	box := dataset.Bounds(x)
	edges := make([][]float64, d)
	for j, k := range c {
		lo, hi := box[j][0], box[j][1]
		if lo == hi {
			return nil, fmt.Errorf("column %d: %w: all values equal %g", j, dataset.ErrDegenerate, lo)
		}
		edges[j] = spanEdges(k, lo, hi)
	}
	return edges, nil
}

func (c countBins) String() string {
	parts := make([]string, len(c))
	for j, k := range c {
		parts[j] = strconv.Itoa(k)
	}
	return strings.Join(parts, ";")
}

func (e edgeBins) resolve(_ mat.Matrix, d int) ([][]float64, error) {
	if len(e) != d {
		return nil, fmt.Errorf("%w: %d edge arrays for %d columns", dataset.ErrConfiguration, len(e), d)
	}
	for j, edges := range e {
		if err := checkEdges(edges); err != nil {
			return nil, fmt.Errorf("column %d: %w", j, err)
		}
	}
	return e, nil
}

func (e edgeBins) String() string {
	dims := make([]string, len(e))
	for j, edges := range e {
		vals := make([]string, len(edges))
		for i, v := range edges {
			vals[i] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		dims[j] = strings.Join(vals, ",")
	}
	return strings.Join(dims, ";")
}

func (r ruleBins) resolve(x mat.Matrix, d int) ([][]float64, error) {
	edges := make([][]float64, d)
	cells := 1
	for j := 0; j < d; j++ {
		e, err := RuleEdges(dataset.Column(x, j), Rule(r))
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", j, err)
		}
		if cells, err = growGrid(cells, len(e)-1); err != nil {
			return nil, err
		}
		edges[j] = e
	}
	return edges, nil
}

func (r ruleBins) String() string { return Rule(r).String() }

// growGrid returns cells·k, or an error once the grid outgrows maxCells.
func growGrid(cells, k int) (int, error) {
	if k > maxCells/cells {
		return 0, fmt.Errorf("%w: histogram grid exceeds %d cells", dataset.ErrConfiguration, maxCells)
	}
	return cells * k, nil
}

func checkEdges(edges []float64) error {
	if len(edges) < 2 {
		return fmt.Errorf("%w: need at least two edges, got %d", ErrInvalidBins, len(edges))
	}
	for i, v := range edges {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: edge %d is %g", ErrInvalidBins, i, v)
		}
		if i > 0 && v <= edges[i-1] {
			return fmt.Errorf("%w: edge %d (%g) does not exceed edge %d (%g)", ErrInvalidBins, i, v, i-1, edges[i-1])
		}
	}
	return nil
}
