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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajroetker/imgaco/grid"
)

// rampParams keeps every pheromone factor positive and lets a zero
// luminance gain weigh exactly zero.
func rampParams() Params {
	return Params{InitialPheromone: 1, MinimumPheromone: 0, EvaporationRate: 0.5}
}

// rampRaster brightens from left to right.
func rampRaster(w int) testRaster {
	return testRaster{w: w, h: 1, lum: func(x, _ int) float64 { return float64(x) / float64(w-1) }}
}

func TestAnt_DiesWhenBoxedIn(t *testing.T) {
	env := newTestEnv(t, uniformRaster(2, 1, 0.5), testParams())
	ant := NewAnt(grid.Pt(0, 0), env, 10, testRand())

	ant.Move()
	require.True(t, ant.Alive())
	assert.Equal(t, grid.Pt(1, 0), ant.Position())

	// The only neighbour is remembered.
	ant.Move()
	assert.False(t, ant.Alive())
	assert.Equal(t, grid.Pt(1, 0), ant.Position())
	assert.Equal(t, 1, ant.Steps())
	assert.Equal(t, []grid.Point{{X: 0, Y: 0}, {X: 1, Y: 0}}, ant.Path())
}

func TestAnt_SingleCellGrid(t *testing.T) {
	env := newTestEnv(t, uniformRaster(1, 1, 0.5), testParams())
	ant := NewAnt(grid.Pt(0, 0), env, 10, testRand())
	ant.Move()
	assert.False(t, ant.Alive())
	assert.Equal(t, grid.Pt(0, 0), ant.Position())
	assert.Zero(t, ant.Steps())
	assert.Zero(t, ant.MeanVisibility())
}

func TestAnt_StepBudget(t *testing.T) {
	env := newTestEnv(t, uniformRaster(2, 1, 0.5), testParams())
	ant := NewAnt(grid.Pt(0, 0), env, 0, testRand())
	ant.SetStepLength(3)

	for ant.Alive() {
		ant.Move()
	}
	assert.Equal(t, 3, ant.Steps())
	assert.Equal(t, []grid.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 0}, {X: 1, Y: 0}}, ant.Path())
	assert.Equal(t, grid.Pt(1, 0), ant.Position())
}

func TestAnt_DeadAntDoesNotMove(t *testing.T) {
	env := newTestEnv(t, uniformRaster(4, 4, 0.5), testParams())
	ant := NewAnt(grid.Pt(2, 2), env, 4, testRand())
	ant.SetStepLength(0)

	ant.Move()
	require.False(t, ant.Alive())
	ant.Move()
	ant.Move()
	assert.Equal(t, grid.Pt(2, 2), ant.Position())
	assert.Len(t, ant.Path(), 1)
}

func TestAnt_FollowsLuminanceGain(t *testing.T) {
	env := newTestEnv(t, rampRaster(3), rampParams())
	for seed := range uint64(50) {
		ant := NewAnt(grid.Pt(1, 0), env, 4, newStream(seed, 0, 1))
		ant.Move()
		require.Equal(t, grid.Pt(2, 0), ant.Position(), "seed %d", seed)
		assert.InDelta(t, 0.5, ant.MeanVisibility(), 1e-12)
	}
}

func TestAnt_MemoryRing(t *testing.T) {
	env := newTestEnv(t, rampRaster(5), rampParams())
	ant := NewAnt(grid.Pt(0, 0), env, 1, testRand())

	ant.Move()
	assert.True(t, ant.Remembers(grid.Pt(0, 0)))
	ant.Move()
	assert.Equal(t, grid.Pt(2, 0), ant.Position())
	assert.True(t, ant.Remembers(grid.Pt(1, 0)))
	assert.False(t, ant.Remembers(grid.Pt(0, 0)), "oldest entry must be evicted")
	assert.False(t, ant.Remembers(ant.Position()))
}

func TestAnt_ZeroWeightsStillMove(t *testing.T) {
	// Flat luminance with a zero minimum makes every visibility zero;
	// the ant then picks uniformly instead of stalling.
	env := newTestEnv(t, uniformRaster(5, 5, 0.3), rampParams())
	ant := NewAnt(grid.Pt(2, 2), env, 4, testRand())
	ant.Move()
	assert.True(t, ant.Alive())
	assert.NotEqual(t, grid.Pt(2, 2), ant.Position())
	assert.True(t, env.Bounds().Contains(ant.Position()))
}

func TestAnt_StaysInBounds(t *testing.T) {
	env := newTestEnv(t, testRaster{w: 7, h: 5, lum: func(x, y int) float64 {
		return float64((x*y)%3) / 2
	}}, testParams())
	ant := NewAnt(grid.Pt(0, 4), env, 3, testRand())
	ant.SetStepLength(200)
	for ant.Alive() {
		ant.Move()
	}
	for _, p := range ant.Path() {
		require.True(t, env.Bounds().Contains(p), "%v out of bounds", p)
	}
	assert.LessOrEqual(t, ant.Steps(), 200)
	assert.Len(t, ant.Path(), ant.Steps()+1)
}

func BenchmarkAntMove(b *testing.B) {
	env, err := NewEnvironment(256, 256, testParams(), nil)
	if err != nil {
		b.Fatal(err)
	}
	r := testRaster{w: 256, h: 256, lum: func(x, y int) float64 { return float64((x^y)&0xff) / 255 }}
	if err := env.ComputeVisibility(r); err != nil {
		b.Fatal(err)
	}
	env.ClearPheromone()
	rng := testRand()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ant := NewAnt(grid.Pt(128, 128), env, 10, rng)
		for ant.Alive() {
			ant.Move()
		}
	}
}
