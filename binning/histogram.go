/*
* Multidimensional histogram module
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
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/Gilah-EnE/unite/dataset"
)

// maxCells bounds the number of cells of the dense grid.
const maxCells = 1 << 26

// Histogram is a dense d-dimensional grid of sample counts. Cells are
// stored row-major: the last column of the data varies fastest.
type Histogram struct {
	Edges  [][]float64
	Shape  []int
	Counts []int
	// Total is the number of samples that fell inside the edges.
	Total int
}

// NewHistogram bins the rows of x. Bin i of a column covers
// [edges[i], edges[i+1]); the last bin also holds its right edge. Rows
// outside the edges of any column are not counted.
func NewHistogram(x mat.Matrix, bins Bins) (*Histogram, error) {
	n, d, err := dataset.Validate(x)
	if err != nil {
		return nil, err
	}
	if bins == nil {
		return nil, fmt.Errorf("%w: nil bin specification", dataset.ErrConfiguration)
	}
	edges, err := bins.resolve(x, d)
	if err != nil {
		return nil, err
	}

	shape := make([]int, d)
	cells := 1
	for j, e := range edges {
		shape[j] = len(e) - 1
		if cells, err = growGrid(cells, shape[j]); err != nil {
			return nil, err
		}
	}

	h := &Histogram{Edges: edges, Shape: shape, Counts: make([]int, cells)}
	row := make([]float64, d)
rows:
	for i := 0; i < n; i++ {
		mat.Row(row, i, x)
		flat := 0
		for j, v := range row {
			b := binOf(edges[j], v)
			if b < 0 {
				continue rows
			}
			flat = flat*shape[j] + b
		}
		h.Counts[flat]++
		h.Total++
	}
	return h, nil
}

// binOf locates v among strictly increasing edges, or returns -1.
func binOf(edges []float64, v float64) int {
	last := len(edges) - 1
	if v == edges[last] {
		return last - 1
	}
	return floats.Within(edges, v)
}

// Probabilities returns the empirical mass of every cell. They sum to one
// whenever Total > 0.
func (h *Histogram) Probabilities() []float64 {
	p := make([]float64, len(h.Counts))
	if h.Total == 0 {
		return p
	}
	total := float64(h.Total)
	for i, c := range h.Counts {
		p[i] = float64(c) / total
	}
	return p
}

// Volumes returns the hyper-volume of every cell, the outer product of the
// per-column bin widths.
func (h *Histogram) Volumes() []float64 {
	widths := make([][]float64, len(h.Edges))
	for j, e := range h.Edges {
		w := make([]float64, len(e)-1)
		for i := range w {
			w[i] = e[i+1] - e[i]
		}
		widths[j] = w
	}

	vol := []float64{1}
	for _, w := range widths {
		next := make([]float64, 0, len(vol)*len(w))
		for _, v := range vol {
			for _, wi := range w {
				next = append(next, v*wi)
			}
		}
		vol = next
	}
	return vol
}

// Entropy returns the discrete joint entropy h of the binned sample and the
// bin volume correction cf, both in nats. h + cf approximates the
// differential entropy (Cover & Thomas, eq. 8.30): cf = Σ p·ln(volume) is
// negative for bins narrower than one unit. Empty cells are skipped.
func (h *Histogram) Entropy() (float64, float64, error) {
	if h.Total == 0 {
		return 0, 0, fmt.Errorf("%w: no sample falls inside the bin edges", ErrInvalidBins)
	}
	p := h.Probabilities()
	return discreteEntropy(p), volumeCorrection(p, h.Volumes()), nil
}

// Differential returns h + cf.
func (h *Histogram) Differential() (float64, error) {
	hj, cf, err := h.Entropy()
	if err != nil {
		return 0, err
	}
	return hj + cf, nil
}

// Entropy bins x with bins and returns the joint entropy and the bin volume
// correction factor of the binned sample.
func Entropy(x mat.Matrix, bins Bins) (h, cf float64, err error) {
	hist, err := NewHistogram(x, bins)
	if err != nil {
		return 0, 0, err
	}
	return hist.Entropy()
}
