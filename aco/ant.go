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
	"slices"

	"github.com/ajroetker/imgaco/grid"
)

// Agent is what a Colony drives. *Ant is the standard implementation;
// a Spawner can substitute another transition rule.
type Agent interface {
	Position() grid.Point
	Alive() bool
	Move()
	DepositPheromone()
}

var _ Agent = (*Ant)(nil)

// Ant is a single stochastic walker. It lives for one colony step: it is
// seeded, moves until it dies, deposits once and is discarded.
type Ant struct {
	env *Environment
	rng *rand.Rand

	position grid.Point
	alive    bool
	steps    int
	path     []grid.Point

	// memory is a ring of the last len(memory) positions left behind.
	memory   []grid.Point
	memNext  int
	memCount int

	stepLength       int
	pheromoneWeight  float64
	visibilityWeight float64
	visibilitySum    float64
	depositor        Depositor

	// Scratch buffers reused across moves.
	candidates []grid.Point
	weights    []float64
}

// NewAnt creates a live ant at position that refuses its last memory
// positions. It starts with the DefaultConfig transition rule and a
// ConstantDeposit of 1; use the setters to change them before the walk.
func NewAnt(position grid.Point, env *Environment, memory int, rng *rand.Rand) *Ant {
	def := DefaultConfig()
	return &Ant{
		env:              env,
		rng:              rng,
		position:         position,
		alive:            true,
		path:             []grid.Point{position},
		memory:           make([]grid.Point, max(memory, 0)),
		stepLength:       def.StepLength,
		pheromoneWeight:  def.PheromoneWeight,
		visibilityWeight: def.VisibilityWeight,
		depositor:        ConstantDeposit{Amount: def.DepositAmount},
		candidates:       make([]grid.Point, 0, len(grid.Compass)),
		weights:          make([]float64, 0, len(grid.Compass)),
	}
}

// SetStepLength sets the number of moves after which the ant dies.
func (a *Ant) SetStepLength(n int) { a.stepLength = n }

// SetPheromoneWeight sets the pheromone exponent of the transition rule.
func (a *Ant) SetPheromoneWeight(w float64) { a.pheromoneWeight = w }

// SetVisibilityWeight sets the visibility exponent of the transition rule.
func (a *Ant) SetVisibilityWeight(w float64) { a.visibilityWeight = w }

// SetDepositor sets the deposit strategy.
func (a *Ant) SetDepositor(d Depositor) { a.depositor = d }

// Position returns the current cell.
func (a *Ant) Position() grid.Point { return a.position }

// Alive reports whether the ant can still move.
func (a *Ant) Alive() bool { return a.alive }

// Steps returns the number of moves made.
func (a *Ant) Steps() int { return a.steps }

// Path returns every visited cell, seed first. The slice is owned by the ant.
func (a *Ant) Path() []grid.Point { return a.path }

// MeanVisibility returns the average heuristic value of the moves made, or
// 0 for an ant that never moved.
func (a *Ant) MeanVisibility() float64 {
	if a.steps == 0 {
		return 0
	}
	return a.visibilitySum / float64(a.steps)
}

// Remembers reports whether p is among the positions the ant refuses.
func (a *Ant) Remembers(p grid.Point) bool {
	for i := range a.memCount {
		if a.memory[i] == p {
			return true
		}
	}
	return false
}

func (a *Ant) remember(p grid.Point) {
	if len(a.memory) == 0 {
		return
	}
	a.memory[a.memNext] = p
	a.memNext = (a.memNext + 1) % len(a.memory)
	a.memCount = min(a.memCount+1, len(a.memory))
}

// Move advances the ant by one cell. A dead ant does nothing. The ant dies
// in place when its step budget is spent or when every in-bounds neighbour
// is in memory. Otherwise each candidate c is weighted by
//
//	pheromone(c)^pheromoneWeight * visibility(position, c)^visibilityWeight
//
// and one is drawn with PickIndex. Non-positive factors weigh zero.
func (a *Ant) Move() {
	if !a.alive {
		return
	}
	if a.steps >= a.stepLength {
		a.alive = false
		return
	}

	a.candidates = a.env.Adjacent(a.position, a.candidates[:0])
	a.candidates = slices.DeleteFunc(a.candidates, a.Remembers)
	if len(a.candidates) == 0 {
		a.alive = false
		return
	}

	a.weights = a.weights[:0]
	for _, c := range a.candidates {
		a.weights = append(a.weights, a.weight(c))
	}
	next := a.candidates[PickIndex(a.weights, a.rng)]

	a.visibilitySum += a.env.Visibility(a.position, next)
	a.remember(a.position)
	a.position = next
	a.path = append(a.path, next)
	a.steps++
}

func (a *Ant) weight(c grid.Point) float64 {
	tau := a.env.Pheromone(c)
	eta := a.env.Visibility(a.position, c)
	if !(tau > 0) || !(eta > 0) {
		return 0
	}
	return math.Pow(tau, a.pheromoneWeight) * math.Pow(eta, a.visibilityWeight)
}

// DepositPheromone lays pheromone through the ant's Depositor. Dead ants
// deposit too; the colony calls this once per ant after the walk.
func (a *Ant) DepositPheromone() {
	if a.depositor == nil {
		return
	}
	a.depositor.Deposit(a.env, a)
}
