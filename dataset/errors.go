/*
* Estimation error taxonomy
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

package dataset

import (
	"errors"
	"fmt"
)

// Every estimator in this module fails with one of these sentinels (possibly
// wrapped with context). Match them with errors.Is.
var (
	// ErrShape reports a malformed sample matrix, or two matrices that
	// should share their number of columns but do not.
	ErrShape = errors.New("unite: malformed sample matrix")

	// ErrConfiguration reports a bin specification, bandwidth or rule
	// that does not fit the data it is applied to.
	ErrConfiguration = errors.New("unite: invalid configuration")

	// ErrNumerical reports a failed numerical step: singular KDE
	// covariance, non-finite integrand, quadrature non-convergence.
	ErrNumerical = errors.New("unite: numerical failure")

	// ErrDegenerate is the numerical failure raised for a column with no
	// spread (all samples equal).
	ErrDegenerate = fmt.Errorf("%w: degenerate data", ErrNumerical)
)
