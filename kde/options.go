/*
* Estimator options
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

	"github.com/Gilah-EnE/unite/dataset"
	"github.com/Gilah-EnE/unite/quad"
)

// Option configures Entropy and Divergence.
type Option func(*options)

type options struct {
	bandwidth  Bandwidth
	quadrature quad.Options
}

// WithBandwidth sets the kernel bandwidth (default Scott's rule). The same
// bandwidth is applied independently to every fitted sample.
func WithBandwidth(bw Bandwidth) Option {
	return func(o *options) { o.bandwidth = bw }
}

// WithQuadrature sets the integration tolerances (default
// quad.DefaultOptions).
func WithQuadrature(q quad.Options) Option {
	return func(o *options) { o.quadrature = q }
}

func gatherOptions(opts []Option) (options, error) {
	o := options{bandwidth: Scott(), quadrature: quad.DefaultOptions()}
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.quadrature.Validate(); err != nil {
		return o, fmt.Errorf("%w: %w", dataset.ErrConfiguration, err)
	}
	return o, nil
}
