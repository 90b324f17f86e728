/*
* Combined analysis runner
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

// Package analysis runs every estimator of the module over one sample (and
// optionally a reference sample) and gathers the results.
package analysis

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/Gilah-EnE/unite/binning"
	"github.com/Gilah-EnE/unite/kde"
)

// Estimator names, as used in Summary.Timings and in errors.
const (
	StageBins       = "bins"
	StageHistogram  = "hist"
	StageKDE        = "kde"
	StageDivergence = "kld"
)

// Request describes one analysis. Q may be nil, in which case no divergence
// is estimated.
type Request struct {
	P, Q mat.Matrix
	Bins binning.Bins
	KDE  []kde.Option

	// Logger receives one line per finished estimator. Nil disables it.
	Logger *log.Logger
}

// Summary collects the estimates of one Request. Divergence is only
// meaningful when HasDivergence is set.
type Summary struct {
	Counts map[binning.Rule][]int

	Entropy    float64
	Correction float64

	KDEEntropy float64

	Divergence    float64
	HasDivergence bool

	Timings map[string]time.Duration
}

// Differential is the histogram estimate of the differential entropy.
func (s *Summary) Differential() float64 { return s.Entropy + s.Correction }

type stageResult struct {
	name    string
	elapsed time.Duration
	err     error
	apply   func(*Summary)
}

// Run executes the estimators concurrently. Every estimator fits its own
// density surrogate, so they share nothing but the read-only inputs. All
// failures are reported together; the Summary is nil if any stage failed.
func Run(req Request) (*Summary, error) {
	if req.Bins == nil {
		req.Bins = binning.ByRule(binning.FreedmanDiaconis)
	}
	stages := map[string]func(*Request) (func(*Summary), error){
		StageBins:      binsStage,
		StageHistogram: histogramStage,
		StageKDE:       kdeStage,
	}
	if req.Q != nil {
		stages[StageDivergence] = divergenceStage
	}

	resultChannel := make(chan stageResult, len(stages))
	var wg sync.WaitGroup
	for name, stage := range stages {
		wg.Add(1)
		go runStage(name, stage, &req, resultChannel, &wg)
	}
	wg.Wait()
	close(resultChannel)

	summary := &Summary{Timings: make(map[string]time.Duration, len(stages))}
	var errs []error
	for result := range resultChannel {
		summary.Timings[result.name] = result.elapsed
		if result.err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", result.name, result.err))
			continue
		}
		result.apply(summary)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return summary, nil
}

func runStage(name string, stage func(*Request) (func(*Summary), error), req *Request, resultChannel chan<- stageResult, wg *sync.WaitGroup) {
	defer wg.Done()
	start := time.Now()
	apply, err := stage(req)
	result := stageResult{name: name, elapsed: time.Since(start), err: err, apply: apply}
	resultChannel <- result
	if req.Logger != nil {
		if err != nil {
			req.Logger.Printf("Estimator %s failed after %s: %v", name, result.elapsed, err)
		} else {
			req.Logger.Printf("Estimator %s has finished. Time: %s", name, result.elapsed)
		}
	}
}

func binsStage(req *Request) (func(*Summary), error) {
	counts, err := binning.IdealBinCounts(req.P)
	if err != nil {
		return nil, err
	}
	return func(s *Summary) { s.Counts = counts }, nil
}

func histogramStage(req *Request) (func(*Summary), error) {
	h, cf, err := binning.Entropy(req.P, req.Bins)
	if err != nil {
		return nil, err
	}
	return func(s *Summary) { s.Entropy, s.Correction = h, cf }, nil
}

func kdeStage(req *Request) (func(*Summary), error) {
	h, err := kde.Entropy(req.P, req.KDE...)
	if err != nil {
		return nil, err
	}
	return func(s *Summary) { s.KDEEntropy = h }, nil
}

func divergenceStage(req *Request) (func(*Summary), error) {
	kld, err := kde.Divergence(req.P, req.Q, req.KDE...)
	if err != nil {
		return nil, err
	}
	return func(s *Summary) { s.Divergence, s.HasDivergence = kld, true }, nil
}
