/*
* Adaptive cubature module
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

// Package quad integrates functions over axis-aligned boxes by iterated
// one-dimensional adaptive Gauss-Kronrod quadrature. Each dimension is
// integrated with its own globally adaptive 15-point rule, the inner
// integrals acting as the integrand of the outer ones.
//
// The cost is the product of the per-dimension evaluation counts, so the
// method is only practical for a handful of dimensions.
package quad

import (
	"container/heap"
	"errors"
	"fmt"
	"math"
)

var (
	// ErrBounds indicates an empty, inverted or non-finite integration box.
	ErrBounds = errors.New("quad: invalid integration bounds")

	// ErrOptions indicates tolerances or limits that cannot be met.
	ErrOptions = errors.New("quad: invalid options")

	// ErrNonFinite indicates the integrand returned NaN or ±Inf.
	ErrNonFinite = errors.New("quad: integrand is not finite")

	// ErrNotConverged indicates the subdivision limit was reached before
	// the requested tolerance.
	ErrNotConverged = errors.New("quad: tolerance not reached within subdivision limit")
)

// Options controls the accuracy of every one-dimensional integral.
type Options struct {
	// AbsTol is the absolute error target.
	AbsTol float64
	// RelTol is the error target relative to the integral value.
	RelTol float64
	// Limit caps the number of subintervals per one-dimensional integral.
	Limit int
}

// DefaultOptions mirrors the QUADPACK defaults used by scipy.
func DefaultOptions() Options {
	return Options{AbsTol: 1.49e-8, RelTol: 1.49e-8, Limit: 50}
}

// Validate reports whether o can drive an integration.
func (o Options) Validate() error {
	switch {
	case math.IsNaN(o.AbsTol) || math.IsNaN(o.RelTol):
		return fmt.Errorf("%w: NaN tolerance", ErrOptions)
	case o.AbsTol < 0 || o.RelTol < 0:
		return fmt.Errorf("%w: negative tolerance", ErrOptions)
	case o.AbsTol == 0 && o.RelTol < 50*epmach:
		return fmt.Errorf("%w: tolerance below machine precision", ErrOptions)
	case o.Limit < 1:
		return fmt.Errorf("%w: limit %d", ErrOptions, o.Limit)
	}
	return nil
}

// Result is the outcome of an integration.
type Result struct {
	// Value is the integral estimate.
	Value float64
	// AbsErr is the error estimate. For several dimensions it adds, level
	// by level, the width of the range times the largest error estimate of
	// the inner integrals.
	AbsErr float64
	// Evals counts integrand evaluations.
	Evals int
}

// Integrate computes the integral of f over the box bounds, bounds[k] being
// the [low, high] range of x[k]. The slice handed to f is reused between
// calls and must not be retained.
func Integrate(f func(x []float64) float64, bounds [][2]float64, opts Options) (Result, error) {
	if err := opts.Validate(); err != nil {
		return Result{}, err
	}
	if len(bounds) == 0 {
		return Result{}, fmt.Errorf("%w: no dimensions", ErrBounds)
	}
	for k, b := range bounds {
		if math.IsNaN(b[0]) || math.IsNaN(b[1]) || math.IsInf(b[0], 0) || math.IsInf(b[1], 0) {
			return Result{}, fmt.Errorf("%w: dimension %d is not finite", ErrBounds, k)
		}
		if b[0] > b[1] {
			return Result{}, fmt.Errorf("%w: dimension %d has low %g > high %g", ErrBounds, k, b[0], b[1])
		}
	}

	last := len(bounds) - 1
	x := make([]float64, len(bounds))
	var evals int

	var level func(k int) (float64, float64, error)
	level = func(k int) (float64, float64, error) {
		var innerErr float64
		g := func(t float64) (float64, error) {
			x[k] = t
			if k < last {
				v, e, err := level(k + 1)
				innerErr = math.Max(innerErr, e)
				return v, err
			}
			evals++
			v := f(x)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return 0, fmt.Errorf("%w: f(%v) = %g", ErrNonFinite, x, v)
			}
			return v, nil
		}
		value, abserr, err := adapt(g, bounds[k][0], bounds[k][1], opts)
		return value, abserr + (bounds[k][1]-bounds[k][0])*innerErr, err
	}

	value, abserr, err := level(0)
	if err != nil {
		return Result{Evals: evals}, err
	}
	return Result{Value: value, AbsErr: abserr, Evals: evals}, nil
}

// Integrate1D is the scalar form of Integrate.
func Integrate1D(f func(float64) float64, a, b float64, opts Options) (Result, error) {
	return Integrate(func(x []float64) float64 { return f(x[0]) }, [][2]float64{{a, b}}, opts)
}

// adapt integrates f over [a,b], repeatedly bisecting the subinterval with
// the largest error estimate.
func adapt(f func(float64) (float64, error), a, b float64, opts Options) (float64, float64, error) {
	if a == b {
		return 0, 0, nil
	}

	first, err := kronrod15(f, a, b)
	if err != nil {
		return 0, 0, err
	}
	segs := &segmentHeap{first}
	value, abserr := first.value, first.abserr

	for abserr > math.Max(opts.AbsTol, opts.RelTol*math.Abs(value)) {
		if segs.Len() >= opts.Limit {
			return 0, 0, fmt.Errorf("%w: [%g, %g] after %d subintervals, error %g",
				ErrNotConverged, a, b, segs.Len(), abserr)
		}

		worst := heap.Pop(segs).(segment)
		mid := 0.5 * (worst.a + worst.b)
		left, err := kronrod15(f, worst.a, mid)
		if err != nil {
			return 0, 0, err
		}
		right, err := kronrod15(f, mid, worst.b)
		if err != nil {
			return 0, 0, err
		}
		heap.Push(segs, left)
		heap.Push(segs, right)

		value, abserr = segs.totals()
	}
	return value, abserr, nil
}

// segmentHeap is a max-heap of segments keyed by error estimate.
type segmentHeap []segment

func (h segmentHeap) Len() int           { return len(h) }
func (h segmentHeap) Less(i, j int) bool { return h[i].abserr > h[j].abserr }
func (h segmentHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *segmentHeap) Push(v any) { *h = append(*h, v.(segment)) }

func (h *segmentHeap) Pop() any {
	old := *h
	n := len(old)
	v := old[n-1]
	*h = old[:n-1]
	return v
}

// totals re-sums the heap so rounding from repeated updates cannot drift.
func (h segmentHeap) totals() (value, abserr float64) {
	for _, s := range h {
		value += s.value
		abserr += s.abserr
	}
	return value, abserr
}
