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
	"fmt"
	"math"
)

// Depositor decides where an ant lays pheromone at the end of a step and
// how much. Implementations must only call env.AddPheromone, which is safe
// for concurrent use.
type Depositor interface {
	Deposit(env *Environment, a *Ant)
}

// ConstantDeposit lays Amount on the ant's final cell.
type ConstantDeposit struct {
	Amount float64
}

// Deposit implements Depositor.
func (d ConstantDeposit) Deposit(env *Environment, a *Ant) {
	env.AddPheromone(d.Amount, a.Position())
}

// PathDeposit lays Amount on every cell of the ant's path, seed included.
type PathDeposit struct {
	Amount float64
}

// Deposit implements Depositor.
func (d PathDeposit) Deposit(env *Environment, a *Ant) {
	for _, p := range a.Path() {
		env.AddPheromone(d.Amount, p)
	}
}

// FeatureDeposit lays Amount times the mean visibility of the ant's moves on
// its final cell, so ants that followed strong edges mark harder. An ant
// that never moved lays nothing.
type FeatureDeposit struct {
	Amount float64
}

// Deposit implements Depositor.
func (d FeatureDeposit) Deposit(env *Environment, a *Ant) {
	strength := a.MeanVisibility()
	if !(strength > 0) {
		return
	}
	env.AddPheromone(d.Amount*strength, a.Position())
}

// NewDepositor returns the strategy registered under name.
func NewDepositor(name string, amount float64) (Depositor, error) {
	if amount < 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return nil, fmt.Errorf("%w: deposit_amount %v must be finite and non-negative", ErrInvalidConfig, amount)
	}
	switch name {
	case DepositFinal, "":
		return ConstantDeposit{Amount: amount}, nil
	case DepositPath:
		return PathDeposit{Amount: amount}, nil
	case DepositFeature:
		return FeatureDeposit{Amount: amount}, nil
	}
	return nil, fmt.Errorf("%w: unknown deposit %q", ErrInvalidConfig, name)
}
