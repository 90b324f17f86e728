/*
* KDE entropy estimation module
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

// Entropy returns the (joint) differential entropy of x in nats: the
// integral of -p·ln(p) over the bounding box of x, p being the Gaussian
// KDE of x.
func Entropy(x mat.Matrix, opts ...Option) (float64, error) {
	o, err := gatherOptions(opts)
	if err != nil {
		return 0, err
	}
	p, err := Fit(x, o.bandwidth)
	if err != nil {
		return 0, err
	}

	res, err := quad.Integrate(func(pt []float64) float64 {
		lp := p.LogDensity(pt)
		if math.IsInf(lp, -1) {
			return 0
		}
		return -math.Exp(lp) * lp
	}, dataset.Bounds(x), o.quadrature)
	if err != nil {
		return 0, fmt.Errorf("%w: entropy integral: %w", dataset.ErrNumerical, err)
	}
	return res.Value, nil
}
