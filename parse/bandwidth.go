/*
* Bin and bandwidth specification parser
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

package parse

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Gilah-EnE/unite/dataset"
	"github.com/Gilah-EnE/unite/kde"
)

// Bandwidth reads "scott", "silverman" or a positive factor. An empty
// string selects Scott's rule.
func Bandwidth(text string) (kde.Bandwidth, error) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "", "scott":
		return kde.Scott(), nil
	case "silverman":
		return kde.Silverman(), nil
	}
	if !factorPattern.IsMatch(text) {
		return kde.Bandwidth{}, fmt.Errorf("%w: cannot read bandwidth %q", dataset.ErrConfiguration, text)
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return kde.Bandwidth{}, fmt.Errorf("%w: bandwidth %q: %v", dataset.ErrConfiguration, text, err)
	}
	bw := kde.Factor(f)
	if _, err := bw.FactorFor(1, 1); err != nil {
		return kde.Bandwidth{}, err
	}
	return bw, nil
}
