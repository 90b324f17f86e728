/*
* Gaussian kernel density module
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

// Package kde estimates differential entropy and Kullback-Leibler divergence
// by integrating over a Gaussian kernel density surrogate of the sample.
//
// The surrogate places one Gaussian on every sample; all kernels share the
// data covariance scaled by the squared bandwidth factor. Integrals run over
// the bounding box of the (first) sample with adaptive quadrature, so the
// cost grows quickly with the number of columns.
package kde

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/Gilah-EnE/unite/dataset"
)

// maxCond is the largest kernel covariance condition number accepted
// before the fit is reported as singular.
const maxCond = 1e15

// Gaussian is a fitted kernel density estimate. Its evaluation methods reuse
// internal buffers, so one Gaussian must not be evaluated concurrently.
type Gaussian struct {
	points  [][]float64
	inv     [][]float64
	cov     *mat.SymDense
	factor  float64
	logNorm float64

	diff    []float64
	scratch []float64
}

// Fit builds the surrogate of x. Data without spread in some direction
// (a constant column, collinear columns, a single sample) cannot define a
// kernel covariance and yields dataset.ErrDegenerate.
func Fit(x mat.Matrix, bw Bandwidth) (*Gaussian, error) {
	n, d, err := dataset.Validate(x)
	if err != nil {
		return nil, err
	}
	if n < 2 {
		return nil, fmt.Errorf("%w: a kernel covariance needs at least two samples", dataset.ErrDegenerate)
	}
	for j, b := range dataset.Bounds(x) {
		if b[0] == b[1] {
			return nil, fmt.Errorf("%w: column %d is constant (%g)", dataset.ErrDegenerate, j, b[0])
		}
	}
	factor, err := bw.FactorFor(n, d)
	if err != nil {
		return nil, err
	}

	cov := &mat.SymDense{}
	stat.CovarianceMatrix(cov, x, nil)
	cov.ScaleSym(factor*factor, cov)

	var chol mat.Cholesky
	if ok := chol.Factorize(cov); !ok {
		return nil, fmt.Errorf("%w: kernel covariance is not positive definite", dataset.ErrDegenerate)
	}
	if cond := chol.Cond(); cond > maxCond || math.IsNaN(cond) {
		return nil, fmt.Errorf("%w: kernel covariance is singular (condition %g)", dataset.ErrDegenerate, cond)
	}
	var inv mat.SymDense
	if err := chol.InverseTo(&inv); err != nil {
		return nil, fmt.Errorf("%w: inverting kernel covariance: %v", dataset.ErrNumerical, err)
	}

	g := &Gaussian{
		points:  make([][]float64, n),
		inv:     make([][]float64, d),
		cov:     cov,
		factor:  factor,
		logNorm: -0.5*(float64(d)*math.Log(2*math.Pi)+chol.LogDet()) - math.Log(float64(n)),
		diff:    make([]float64, d),
		scratch: make([]float64, n),
	}
	for i := range g.points {
		g.points[i] = mat.Row(nil, i, x)
	}
	for a := range g.inv {
		g.inv[a] = make([]float64, d)
		for b := range g.inv[a] {
			g.inv[a][b] = inv.At(a, b)
		}
	}
	return g, nil
}

// Dim is the number of columns of the fitted sample.
func (g *Gaussian) Dim() int { return len(g.inv) }

// Len is the number of kernels.
func (g *Gaussian) Len() int { return len(g.points) }

// Factor is the covariance factor the bandwidth resolved to.
func (g *Gaussian) Factor() float64 { return g.factor }

// Covariance returns a copy of the kernel covariance.
func (g *Gaussian) Covariance() *mat.SymDense {
	cp := mat.NewSymDense(g.Dim(), nil)
	cp.CopySym(g.cov)
	return cp
}

// LogDensity returns ln p(pt). Far from every sample the result is a large
// negative number rather than ln(0) because the kernel sum is taken in log
// space.
func (g *Gaussian) LogDensity(pt []float64) float64 {
	if len(pt) != g.Dim() {
		panic(fmt.Sprintf("kde: point of dimension %d for a %d-dimensional density", len(pt), g.Dim()))
	}
	for i, center := range g.points {
		for a := range g.diff {
			g.diff[a] = pt[a] - center[a]
		}
		var q float64
		for a, row := range g.inv {
			var s float64
			for b, v := range row {
				s += v * g.diff[b]
			}
			q += g.diff[a] * s
		}
		g.scratch[i] = -0.5 * q
	}
	return floats.LogSumExp(g.scratch) + g.logNorm
}

// Density returns p(pt).
func (g *Gaussian) Density(pt []float64) float64 {
	return math.Exp(g.LogDensity(pt))
}
