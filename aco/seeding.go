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
	"math/rand/v2"

	"github.com/samber/lo"

	"github.com/ajroetker/imgaco/grid"
)

// GenerateProbabilityDistributions builds one seeding distribution per
// gamma from the visibility field. With the default gammas these are the
// brightened (0.5), darkened (1.5) and unmodified (1.0) variants.
func GenerateProbabilityDistributions(env *Environment, gammas []float64) []*Distribution {
	return lo.Map(gammas, func(g float64, _ int) *Distribution {
		return NewDistribution(env.visibility, g, env.pool)
	})
}

// DistributeAntsByGamma draws n seed cells; seed i comes from
// distributions[i mod len(distributions)].
func DistributeAntsByGamma(distributions []*Distribution, n int, rng *rand.Rand) []grid.Point {
	if len(distributions) == 0 {
		return nil
	}
	seeds := make([]grid.Point, n)
	for i := range seeds {
		seeds[i] = distributions[i%len(distributions)].Sample(rng)
	}
	return seeds
}

// DistributeAntsByBlock partitions the grid into full size×size blocks and
// draws one seed per block, row by row, weighted by the block's visibility.
// A flat block (no positive visibility) seeds uniformly. Partial blocks at
// the right and bottom edges get no ant.
func DistributeAntsByBlock(env *Environment, size int, rng *rand.Rand) []grid.Point {
	blocks := env.Bounds().Blocks(size)
	seeds := make([]grid.Point, 0, len(blocks))
	weights := make([]float64, 0, size*size)
	for _, b := range blocks {
		weights = weights[:0]
		for i := range b.Area() {
			weights = append(weights, env.VisibilityAt(b.At(i)))
		}
		seeds = append(seeds, b.At(PickIndex(weights, rng)))
	}
	return seeds
}

// DistributeAntsUniformly draws n seed cells uniformly over the grid.
func DistributeAntsUniformly(env *Environment, n int, rng *rand.Rand) []grid.Point {
	seeds := make([]grid.Point, n)
	for i := range seeds {
		seeds[i] = grid.Pt(rng.IntN(env.width), rng.IntN(env.height))
	}
	return seeds
}
