/*
* KDE divergence estimation module
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

package kde

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/Gilah-EnE/unite/dataset"
	"github.com/Gilah-EnE/unite/quad"
)

// ErrZeroDensity reports that the reference density q vanished at a point
// where p is positive, which makes ln(p/q) infinite.
var ErrZeroDensity = fmt.Errorf("%w: reference density is zero inside the support of p", dataset.ErrNumerical)

// Divergence returns the Kullback-Leibler divergence D(P‖Q) in nats: the
// integral of p·ln(p/q) over the bounding box of dataP, p and q being
// independent Gaussian KDEs of the two samples. The samples may differ in
// size but not in the number of columns.
//
// KDE based divergence is fragile where q has almost no mass: when q
// underflows even in log space inside the box the call fails with
// ErrZeroDensity instead of returning +Inf.
func Divergence(dataP, dataQ mat.Matrix, opts ...Option) (float64, error) {
	if _, err := dataset.SameWidth(dataP, dataQ); err != nil {
		return 0, err
	}
	o, err := gatherOptions(opts)
	if err != nil {
		return 0, err
	}
	p, err := Fit(dataP, o.bandwidth)
	if err != nil {
		return 0, fmt.Errorf("p: %w", err)
	}
	q, err := Fit(dataQ, o.bandwidth)
	if err != nil {
		return 0, fmt.Errorf("q: %w", err)
	}

	var vanished []float64
	res, err := quad.Integrate(func(pt []float64) float64 {
		lp := p.LogDensity(pt)
		if math.IsInf(lp, -1) {
			return 0
		}
		lq := q.LogDensity(pt)
		if math.IsInf(lq, -1) {
			vanished = append([]float64(nil), pt...)
			return math.Inf(1)
		}
		return math.Exp(lp) * (lp - lq)
	}, dataset.Bounds(dataP), o.quadrature)
	if vanished != nil {
		return 0, fmt.Errorf("%w: q(%v) = 0", ErrZeroDensity, vanished)
	}
	if err != nil {
		return 0, fmt.Errorf("%w: divergence integral: %w", dataset.ErrNumerical, err)
	}
	return res.Value, nil
}
