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
)

// PickIndex performs roulette-wheel selection: it draws u uniformly from
// [0, sum(weights)) and returns the first index whose cumulative weight
// exceeds u. Weights need not be normalised.
//
// Negative and NaN weights count as zero. If every weight is zero the pick
// is uniform over all indices; if some weights are +Inf the pick is uniform
// over those. Returns -1 for an empty slice.
func PickIndex(weights []float64, rng *rand.Rand) int {
	n := len(weights)
	if n == 0 {
		return -1
	}

	var sum float64
	var infinite int
	for _, w := range weights {
		switch {
		case math.IsInf(w, 1):
			infinite++
		case w > 0:
			sum += w
		}
	}

	if infinite > 0 {
		k := rng.IntN(infinite)
		for i, w := range weights {
			if math.IsInf(w, 1) {
				if k == 0 {
					return i
				}
				k--
			}
		}
	}
	if !(sum > 0) || math.IsInf(sum, 1) {
		return rng.IntN(n)
	}

	u := rng.Float64() * sum
	var acc float64
	last := -1
	for i, w := range weights {
		if !(w > 0) {
			continue
		}
		acc += w
		last = i
		if acc > u {
			return i
		}
	}
	// Rounding left u at or above the final cumulative sum.
	return last
}

// newStream returns the random stream for one consumer of one step. Streams
// are derived from the run seed only, so results do not depend on which
// goroutine runs which ant.
func newStream(seed uint64, step, consumer int) *rand.Rand {
	const golden = 0x9e3779b97f4a7c15
	return rand.New(rand.NewPCG(seed+uint64(step+1)*golden, uint64(consumer)))
}
