/*
* Sample matrix helpers
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

// Package dataset holds the sample matrix conventions shared by the
// estimators: rows are observations, columns are the components of the
// random variable. It also defines the error taxonomy and a CSV loader.
package dataset

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// FromRows copies rows into a new n×d matrix. Every row must have the same
// non-zero length and every value must be finite.
func FromRows(rows [][]float64) (*mat.Dense, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrShape)
	}
	d := len(rows[0])
	if d == 0 {
		return nil, fmt.Errorf("%w: no columns", ErrShape)
	}

	data := make([]float64, 0, len(rows)*d)
	for i, row := range rows {
		if len(row) != d {
			return nil, fmt.Errorf("%w: row %d has %d values, expected %d", ErrShape, i, len(row), d)
		}
		data = append(data, row...)
	}
	x := mat.NewDense(len(rows), d, data)
	if _, _, err := Validate(x); err != nil {
		return nil, err
	}
	return x, nil
}

// FromColumn wraps a 1D sample as an n×1 matrix.
func FromColumn(values []float64) (*mat.Dense, error) {
	rows := make([][]float64, len(values))
	for i, v := range values {
		rows[i] = []float64{v}
	}
	return FromRows(rows)
}

// Validate checks that x is a usable sample matrix and returns its
// dimensions.
func Validate(x mat.Matrix) (n, d int, err error) {
	if x == nil {
		return 0, 0, fmt.Errorf("%w: nil matrix", ErrShape)
	}
	n, d = x.Dims()
	if n < 1 || d < 1 {
		return 0, 0, fmt.Errorf("%w: shape %dx%d", ErrShape, n, d)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < d; j++ {
			if v := x.At(i, j); math.IsNaN(v) || math.IsInf(v, 0) {
				return 0, 0, fmt.Errorf("%w: non-finite value at (%d,%d)", ErrShape, i, j)
			}
		}
	}
	return n, d, nil
}

// SameWidth validates both matrices and checks that they share the number
// of columns.
func SameWidth(p, q mat.Matrix) (d int, err error) {
	_, dp, err := Validate(p)
	if err != nil {
		return 0, err
	}
	_, dq, err := Validate(q)
	if err != nil {
		return 0, err
	}
	if dp != dq {
		return 0, fmt.Errorf("%w: %d columns vs %d columns", ErrShape, dp, dq)
	}
	return dp, nil
}

// Column returns a copy of column j.
func Column(x mat.Matrix, j int) []float64 {
	n, _ := x.Dims()
	col := make([]float64, n)
	mat.Col(col, j, x)
	return col
}

// Bounds returns the per-column [min, max] box enclosing every sample.
func Bounds(x mat.Matrix) [][2]float64 {
	n, d := x.Dims()
	box := make([][2]float64, d)
	for j := 0; j < d; j++ {
		lo, hi := math.Inf(1), math.Inf(-1)
		for i := 0; i < n; i++ {
			v := x.At(i, j)
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
		box[j] = [2]float64{lo, hi}
	}
	return box
}
