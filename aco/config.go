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
	"errors"
	"fmt"

	"github.com/ajroetker/imgaco/grid"
)

// Seeding strategy names accepted by Config.Seeding.
const (
	SeedByGamma   = "gamma"
	SeedByBlock   = "block"
	SeedUniformly = "uniform"
)

// Deposit strategy names accepted by Config.Deposit.
const (
	DepositFinal   = "final"
	DepositPath    = "path"
	DepositFeature = "feature"
)

// Config holds every tunable of a colony run.
type Config struct {
	// Population
	Ants       int       `yaml:"ants"`        // ants per step; ignored by block seeding
	Steps      int       `yaml:"steps"`       // simulation steps for Run callers
	Seeding    string    `yaml:"seeding"`     // gamma, block or uniform
	BlockSize  int       `yaml:"block_size"`  // block seeding tile edge
	SeedGammas []float64 `yaml:"seed_gammas"` // exponents of the seeding distributions

	// Transition rule
	StepLength       int     `yaml:"step_length"` // moves before an ant dies
	Memory           int     `yaml:"memory"`      // recently visited cells an ant refuses
	PheromoneWeight  float64 `yaml:"pheromone_weight"`
	VisibilityWeight float64 `yaml:"visibility_weight"`

	// Pheromone field
	InitialPheromone float64 `yaml:"initial_pheromone"`
	MinimumPheromone float64 `yaml:"minimum_pheromone"`
	EvaporationRate  float64 `yaml:"evaporation_rate"`
	Deposit          string  `yaml:"deposit"` // final, path or feature
	DepositAmount    float64 `yaml:"deposit_amount"`
	Edge             string  `yaml:"edge"` // clamp, mirror or wrap

	// Execution
	Seed    uint64 `yaml:"seed"`
	Workers int    `yaml:"workers"` // 0 = IMGACO_WORKERS or GOMAXPROCS
}

// DefaultConfig returns the parameters used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Ants:       512,
		Steps:      8,
		Seeding:    SeedByGamma,
		BlockSize:  16,
		SeedGammas: []float64{0.5, 1.5, 1.0},

		StepLength:       64,
		Memory:           10,
		PheromoneWeight:  1.0,
		VisibilityWeight: 2.0,

		InitialPheromone: 0.5,
		MinimumPheromone: 0.01,
		EvaporationRate:  0.5,
		Deposit:          DepositFinal,
		DepositAmount:    1.0,
		Edge:             grid.EdgeClamp.String(),

		Seed: 1,
	}
}

// Params returns the environment part of the configuration. The edge
// policy must already be valid; Validate checks it.
func (c Config) Params() Params {
	edge, _ := grid.ParseEdgePolicy(c.Edge)
	return Params{
		InitialPheromone: c.InitialPheromone,
		MinimumPheromone: c.MinimumPheromone,
		EvaporationRate:  c.EvaporationRate,
		Edge:             edge,
	}
}

// Validate reports every invalid field, each wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	switch c.Seeding {
	case SeedByGamma:
		if len(c.SeedGammas) == 0 {
			bad("seed_gammas must not be empty")
		}
		for _, g := range c.SeedGammas {
			if !(g > 0) {
				bad("seed gamma %v must be positive", g)
			}
		}
		if c.Ants <= 0 {
			bad("ants must be positive, got %d", c.Ants)
		}
	case SeedUniformly:
		if c.Ants <= 0 {
			bad("ants must be positive, got %d", c.Ants)
		}
	case SeedByBlock:
		if c.BlockSize <= 0 {
			bad("block_size must be positive, got %d", c.BlockSize)
		}
	default:
		bad("unknown seeding %q", c.Seeding)
	}

	if c.Steps < 0 {
		bad("steps must not be negative, got %d", c.Steps)
	}
	if c.StepLength <= 0 {
		bad("step_length must be positive, got %d", c.StepLength)
	}
	if c.Memory < 0 {
		bad("memory must not be negative, got %d", c.Memory)
	}
	if c.PheromoneWeight < 0 || c.VisibilityWeight < 0 {
		bad("weights must not be negative, got %v and %v", c.PheromoneWeight, c.VisibilityWeight)
	}
	if err := c.Params().validate(); err != nil {
		errs = append(errs, err)
	}
	if _, err := grid.ParseEdgePolicy(c.Edge); err != nil {
		bad("%v", err)
	}
	if _, err := NewDepositor(c.Deposit, c.DepositAmount); err != nil {
		errs = append(errs, err)
	}
	if c.Workers < 0 {
		bad("workers must not be negative, got %d", c.Workers)
	}
	return errors.Join(errs...)
}
