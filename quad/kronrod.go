/*
* Gauss-Kronrod rule
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

package quad

import "math"

// 15-point Kronrod abscissae on [0,1]; odd indices are the 7-point Gauss
// nodes, the last one is the centre.
var xgk = [8]float64{
	0.991455371120812639206854697526329,
	0.949107912342758524526189684047851,
	0.864864423359769072789712788640926,
	0.741531185599394439863864773280788,
	0.586087235467691130294144845693013,
	0.405845151377397166906606412076961,
	0.207784955007898467600689403773245,
	0.000000000000000000000000000000000,
}

var wgk = [8]float64{
	0.022935322010529224963732008058970,
	0.063092092629978553290700663189204,
	0.104790010322250183839876322541518,
	0.140653259715525918745189590510238,
	0.169004726639267902826583426598550,
	0.190350578064785409913256402421014,
	0.204432940075298892414161999234649,
	0.209482141084727828012999174891714,
}

var wg = [4]float64{
	0.129484966168869693270611432679082,
	0.279705391489276667901467771423780,
	0.381830050505118944950369775488975,
	0.417959183673469387755102040816327,
}

const (
	epmach = 2.220446049250313e-16
	uflow  = 2.2250738585072014e-308
)

// segment is one subinterval of an adaptive integration.
type segment struct {
	a, b   float64
	value  float64
	abserr float64
}

// kronrod15 applies the 7/15 point pair to f on [a,b] and returns the
// Kronrod estimate with the QUADPACK error estimate. It stops at the first
// error returned by f.
func kronrod15(f func(float64) (float64, error), a, b float64) (segment, error) {
	centr := 0.5 * (a + b)
	hlgth := 0.5 * (b - a)
	dhlgth := math.Abs(hlgth)

	var fv1, fv2 [7]float64

	fc, err := f(centr)
	if err != nil {
		return segment{}, err
	}
	resg := fc * wg[3]
	resk := fc * wgk[7]
	resabs := math.Abs(resk)

	for j := 0; j < 3; j++ {
		jtw := 2*j + 1
		absc := hlgth * xgk[jtw]
		f1, err := f(centr - absc)
		if err != nil {
			return segment{}, err
		}
		f2, err := f(centr + absc)
		if err != nil {
			return segment{}, err
		}
		fv1[jtw], fv2[jtw] = f1, f2
		resg += wg[j] * (f1 + f2)
		resk += wgk[jtw] * (f1 + f2)
		resabs += wgk[jtw] * (math.Abs(f1) + math.Abs(f2))
	}
	for j := 0; j < 4; j++ {
		jtwm1 := 2 * j
		absc := hlgth * xgk[jtwm1]
		f1, err := f(centr - absc)
		if err != nil {
			return segment{}, err
		}
		f2, err := f(centr + absc)
		if err != nil {
			return segment{}, err
		}
		fv1[jtwm1], fv2[jtwm1] = f1, f2
		resk += wgk[jtwm1] * (f1 + f2)
		resabs += wgk[jtwm1] * (math.Abs(f1) + math.Abs(f2))
	}

	reskh := resk * 0.5
	resasc := wgk[7] * math.Abs(fc-reskh)
	for j := 0; j < 7; j++ {
		resasc += wgk[j] * (math.Abs(fv1[j]-reskh) + math.Abs(fv2[j]-reskh))
	}

	result := resk * hlgth
	resabs *= dhlgth
	resasc *= dhlgth
	abserr := math.Abs((resk - resg) * hlgth)
	if resasc != 0 && abserr != 0 {
		abserr = resasc * math.Min(1, math.Pow(200*abserr/resasc, 1.5))
	}
	if resabs > uflow/(50*epmach) {
		abserr = math.Max(epmach*50*resabs, abserr)
	}

	return segment{a: a, b: b, value: result, abserr: abserr}, nil
}
