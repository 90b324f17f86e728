/*
* Kernel bandwidth selection module
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
	"strconv"

	"github.com/Gilah-EnE/unite/dataset"
)

// BandwidthRule tags how a Bandwidth derives its covariance factor.
type BandwidthRule int

const (
	// ScottRule uses n^(-1/(d+4)).
	ScottRule BandwidthRule = iota
	// SilvermanRule uses (n(d+2)/4)^(-1/(d+4)).
	SilvermanRule
	// FixedFactor uses a caller supplied factor.
	FixedFactor
)

// Bandwidth selects the factor that scales the data covariance into the
// kernel covariance: Σ_kernel = factor²·Σ_data. The zero value is Scott's
// rule.
type Bandwidth struct {
	rule   BandwidthRule
	factor float64
}

// Scott returns Scott's rule of thumb.
func Scott() Bandwidth { return Bandwidth{rule: ScottRule} }

// Silverman returns Silverman's rule of thumb.
func Silverman() Bandwidth { return Bandwidth{rule: SilvermanRule} }

// Factor returns a fixed covariance factor. It must be positive and finite;
// that is checked when the bandwidth is used.
func Factor(f float64) Bandwidth { return Bandwidth{rule: FixedFactor, factor: f} }

// Rule reports which rule the bandwidth uses.
func (b Bandwidth) Rule() BandwidthRule { return b.rule }

// FactorFor returns the covariance factor for n samples of dimension d.
func (b Bandwidth) FactorFor(n, d int) (float64, error) {
	nf, df := float64(n), float64(d)
	switch b.rule {
	case ScottRule:
		return math.Pow(nf, -1/(df+4)), nil
	case SilvermanRule:
		return math.Pow(nf*(df+2)/4, -1/(df+4)), nil
	case FixedFactor:
		if !(b.factor > 0) || math.IsInf(b.factor, 0) {
			return 0, fmt.Errorf("%w: bandwidth factor %g must be positive and finite", dataset.ErrConfiguration, b.factor)
		}
		return b.factor, nil
	}
	return 0, fmt.Errorf("%w: unknown bandwidth rule %d", dataset.ErrConfiguration, int(b.rule))
}

func (b Bandwidth) String() string {
	switch b.rule {
	case ScottRule:
		return "scott"
	case SilvermanRule:
		return "silverman"
	case FixedFactor:
		return strconv.FormatFloat(b.factor, 'g', -1, 64)
	}
	return fmt.Sprintf("BandwidthRule(%d)", int(b.rule))
}
