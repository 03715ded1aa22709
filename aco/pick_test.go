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
	"testing"

	"github.com/stretchr/testify/assert"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(42, 7))
}

func counts(weights []float64, draws int) []int {
	rng := testRand()
	got := make([]int, len(weights))
	for range draws {
		got[PickIndex(weights, rng)]++
	}
	return got
}

func TestPickIndex_Empty(t *testing.T) {
	assert.Equal(t, -1, PickIndex(nil, testRand()))
	assert.Equal(t, -1, PickIndex([]float64{}, testRand()))
}

func TestPickIndex_SingleNonZero(t *testing.T) {
	got := counts([]float64{0, 0, 0, 1}, 1000)
	assert.Equal(t, []int{0, 0, 0, 1000}, got)
}

func TestPickIndex_Uniform(t *testing.T) {
	const draws = 40000
	for i, c := range counts([]float64{1, 1, 1, 1}, draws) {
		assert.InDelta(t, 0.25, float64(c)/draws, 0.02, "index %d", i)
	}
}

func TestPickIndex_Proportional(t *testing.T) {
	const draws = 40000
	got := counts([]float64{1, 3}, draws)
	assert.InDelta(t, 0.25, float64(got[0])/draws, 0.02)
	assert.InDelta(t, 0.75, float64(got[1])/draws, 0.02)
}

func TestPickIndex_AllZeroIsUniform(t *testing.T) {
	const draws = 40000
	for i, c := range counts([]float64{0, 0, 0}, draws) {
		assert.InDelta(t, 1.0/3, float64(c)/draws, 0.02, "index %d", i)
	}
}

func TestPickIndex_InvalidWeightsIgnored(t *testing.T) {
	got := counts([]float64{-1, math.NaN(), 2, math.Inf(-1)}, 1000)
	assert.Equal(t, []int{0, 0, 1000, 0}, got)
}

func TestPickIndex_Infinite(t *testing.T) {
	got := counts([]float64{1, math.Inf(1), 3, math.Inf(1)}, 4000)
	assert.Zero(t, got[0])
	assert.Zero(t, got[2])
	assert.InDelta(t, 2000, got[1], 200)
	assert.InDelta(t, 2000, got[3], 200)
}

func TestNewStream_Deterministic(t *testing.T) {
	a, b := newStream(9, 3, 5), newStream(9, 3, 5)
	for range 16 {
		assert.Equal(t, a.Uint64(), b.Uint64())
	}
	assert.NotEqual(t, newStream(9, 3, 5).Uint64(), newStream(9, 3, 6).Uint64())
	assert.NotEqual(t, newStream(9, 3, 5).Uint64(), newStream(9, 4, 5).Uint64())
}

func BenchmarkPickIndex(b *testing.B) {
	rng := testRand()
	weights := []float64{0.1, 0.7, 0.3, 0, 1.2, 0.4, 0.05, 0.9}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		PickIndex(weights, rng)
	}
}
