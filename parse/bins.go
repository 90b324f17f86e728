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

// Package parse reads the textual bin and bandwidth settings accepted by the
// front ends. It is kept apart from the estimators, which stay pure Go,
// because its pattern matching links against the native rure library.
package parse

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/BurntSushi/rure-go"

	"github.com/Gilah-EnE/unite/binning"
	"github.com/Gilah-EnE/unite/dataset"
)

const number = `[-+]?(?:[0-9]+\.?[0-9]*|\.[0-9]+)(?:[eE][-+]?[0-9]+)?`

var (
	rulePattern   = mustCompile(`(?i)^\s*(scott|fd|freedman-diaconis|sturges)\s*$`)
	countsPattern = mustCompile(`^\s*[0-9]+(\s*;\s*[0-9]+)*\s*$`)
	edgesPattern  = mustCompile(`^\s*` + number + `(\s*,\s*` + number + `)+\s*$`)
	numberPattern = mustCompile(number)
	factorPattern = mustCompile(`^\s*[+]?(?:[0-9]+\.?[0-9]*|\.[0-9]+)(?:[eE][-+]?[0-9]+)?\s*$`)
)

func mustCompile(pattern string) *rure.Regex {
	regex, err := rure.Compile(pattern)
	if err != nil {
		panic(fmt.Sprintf("parse: failed to compile pattern %q: %v", pattern, err))
	}
	return regex
}

// Bins reads a textual bin specification:
//
//	"sturges", "scott", "fd"    a rule applied to every column
//	"10"                        10 bins in every column
//	"10;20"                     10 bins in column 0, 20 in column 1
//	"0,0.5,1;0,1,2"             explicit edges, columns separated by ';'
func Bins(text string) (binning.Bins, error) {
	if rulePattern.IsMatch(text) {
		rule, err := binning.ParseRule(text)
		if err != nil {
			return nil, err
		}
		return binning.ByRule(rule), nil
	}

	if countsPattern.IsMatch(text) {
		fields := strings.Split(text, ";")
		counts := make([]int, len(fields))
		for j, field := range fields {
			k, err := strconv.Atoi(strings.TrimSpace(field))
			if err != nil {
				return nil, fmt.Errorf("%w: bin count %q: %v", dataset.ErrConfiguration, field, err)
			}
			counts[j] = k
		}
		if len(counts) == 1 {
			return binning.Uniform(counts[0]), nil
		}
		return binning.Counts(counts...), nil
	}

	dims := strings.Split(text, ";")
	edges := make([][]float64, len(dims))
	for j, dim := range dims {
		if !edgesPattern.IsMatch(dim) {
			return nil, fmt.Errorf("%w: cannot read bins %q", dataset.ErrConfiguration, text)
		}
		values, err := numbers(dim)
		if err != nil {
			return nil, err
		}
		edges[j] = values
	}
	return binning.Edges(edges...), nil
}

// numbers extracts every number in text. FindAll reports matches as
// consecutive (start, end) offsets.
func numbers(text string) ([]float64, error) {
	matches := numberPattern.FindAll(text)
	values := make([]float64, 0, len(matches)/2)
	for i := 0; i+1 < len(matches); i += 2 {
		v, err := strconv.ParseFloat(text[matches[i]:matches[i+1]], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", dataset.ErrConfiguration, err)
		}
		values = append(values, v)
	}
	return values, nil
}
