/*
* Ideal bin estimation module
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

	"gonum.org/v1/gonum/mat"

	"github.com/Gilah-EnE/unite/dataset"
)

// IdealBinEdges proposes bin edges for every column of x under each rule.
// Every value of the result has one entry per column.
func IdealBinEdges(x mat.Matrix) (map[Rule][][]float64, error) {
	_, d, err := dataset.Validate(x)
	if err != nil {
		return nil, err
	}

	ideal := make(map[Rule][][]float64, len(Rules()))
	for _, rule := range Rules() {
		perDim := make([][]float64, d)
		for j := 0; j < d; j++ {
			edges, err := RuleEdges(dataset.Column(x, j), rule)
			if err != nil {
				return nil, fmt.Errorf("column %d, %s rule: %w", j, rule, err)
			}
			perDim[j] = edges
		}
		ideal[rule] = perDim
	}
	return ideal, nil
}

// IdealBinCounts is IdealBinEdges reduced to the number of bins per column.
func IdealBinCounts(x mat.Matrix) (map[Rule][]int, error) {
	edges, err := IdealBinEdges(x)
	if err != nil {
		return nil, err
	}
	return BinCounts(edges), nil
}

// BinCounts reduces per-rule edges, as returned by IdealBinEdges, to the
// number of bins per column.
func BinCounts(edges map[Rule][][]float64) map[Rule][]int {
	counts := make(map[Rule][]int, len(edges))
	for rule, perDim := range edges {
		c := make([]int, len(perDim))
		for j, e := range perDim {
			c[j] = len(e) - 1
		}
		counts[rule] = c
	}
	return counts
}
