/*
* Entropy estimation module
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
	"math"
)

// discreteEntropy is -Σ p·ln(p) over the cells with positive mass.
func discreteEntropy(p []float64) float64 {
	var entropy float64
	for _, pi := range p {
		if pi > 0 {
			entropy += pi * math.Log(pi)
		}
	}
	return -entropy
}

// volumeCorrection is Σ p·ln(volume) over the cells with positive mass.
func volumeCorrection(p, volume []float64) float64 {
	var cf float64
	for i, pi := range p {
		if pi > 0 {
			cf += pi * math.Log(volume[i])
		}
	}
	return cf
}
