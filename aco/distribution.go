// Copyright 2025 imgaco Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package aco

import (
	"math"
	"math/rand/v2"
	"sort"

	"github.com/ajroetker/imgaco/grid"
	"github.com/ajroetker/imgaco/internal/parallel"
)

// Distribution is a probability mass function over the cells of a grid,
// with a cumulative table for O(log N) roulette-wheel sampling.
type Distribution struct {
	gamma float64
	pmf   *grid.Field
	cdf   []float64
}

// NewDistribution raises every cell of weights to gamma and normalises the
// result to sum to 1. Negative and NaN cells count as zero. A field with no
// positive mass (or an overflowing sum) yields the uniform distribution.
func NewDistribution(weights *grid.Field, gamma float64, pool *parallel.Pool) *Distribution {
	pmf := weights.Clone()
	data := pmf.Data()

	pool.Rows(len(data), func(start, end int) {
		grid.Pow(data[start:end], gamma)
	})

	// Inclusive prefix sum, sequential so the total does not depend on the
	// number of workers.
	cdf := make([]float64, len(data))
	var acc float64
	for i, v := range data {
		acc += v
		cdf[i] = acc
	}

	if acc > 0 && !math.IsInf(acc, 1) {
		pool.Rows(len(data), func(start, end int) {
			for i := start; i < end; i++ {
				data[i] /= acc
				cdf[i] /= acc
			}
		})
	} else {
		pmf.Fill(1 / float64(len(data)))
		for i := range cdf {
			cdf[i] = float64(i+1) / float64(len(cdf))
		}
	}
	return &Distribution{gamma: gamma, pmf: pmf, cdf: cdf}
}

// Gamma returns the exponent the distribution was built with.
func (d *Distribution) Gamma() float64 {
	return d.gamma
}

// PMF returns the per-cell probabilities. They sum to 1 up to rounding.
func (d *Distribution) PMF() *grid.Field {
	return d.pmf
}

// Sample draws a cell with probability proportional to its mass. Cells with
// zero mass are never returned unless every cell has zero mass.
func (d *Distribution) Sample(rng *rand.Rand) grid.Point {
	n := len(d.cdf)
	u := rng.Float64() * d.cdf[n-1]
	i := sort.Search(n, func(i int) bool { return d.cdf[i] > u })
	if i == n {
		i = n - 1
	}
	return d.pmf.Point(i)
}
