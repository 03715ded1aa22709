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

package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/ajroetker/imgaco/aco"
)

// loadConfig returns DefaultConfig overlaid with the YAML file at path.
// Unknown keys are rejected.
func loadConfig(path string) (aco.Config, error) {
	cfg := aco.DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

// configFlags registers one flag per tunable, writing into dst.
func configFlags(fs *pflag.FlagSet, dst *aco.Config) {
	def := aco.DefaultConfig()
	fs.IntVar(&dst.Ants, "ants", def.Ants, "ants per step (gamma and uniform seeding)")
	fs.IntVar(&dst.Steps, "steps", def.Steps, "colony steps")
	fs.IntVar(&dst.StepLength, "step-length", def.StepLength, "moves before an ant dies")
	fs.IntVar(&dst.Memory, "memory", def.Memory, "recently visited cells an ant refuses")
	fs.Float64Var(&dst.PheromoneWeight, "alpha", def.PheromoneWeight, "pheromone exponent")
	fs.Float64Var(&dst.VisibilityWeight, "beta", def.VisibilityWeight, "visibility exponent")
	fs.StringVar(&dst.Seeding, "seeding", def.Seeding, "seed placement: gamma, block or uniform")
	fs.IntVar(&dst.BlockSize, "block-size", def.BlockSize, "tile edge for block seeding")
	fs.Float64SliceVar(&dst.SeedGammas, "seed-gammas", def.SeedGammas, "exponents of the gamma seeding distributions")
	fs.StringVar(&dst.Deposit, "deposit", def.Deposit, "deposit strategy: final, path or feature")
	fs.Float64Var(&dst.DepositAmount, "deposit-amount", def.DepositAmount, "pheromone laid per deposit")
	fs.Float64Var(&dst.InitialPheromone, "initial", def.InitialPheromone, "initial pheromone")
	fs.Float64Var(&dst.MinimumPheromone, "minimum", def.MinimumPheromone, "pheromone floor")
	fs.Float64Var(&dst.EvaporationRate, "rate", def.EvaporationRate, "evaporation rate in [0, 1]")
	fs.StringVar(&dst.Edge, "edge", def.Edge, "off-grid policy: clamp, mirror or wrap")
	fs.Uint64Var(&dst.Seed, "seed", def.Seed, "random seed")
	fs.IntVar(&dst.Workers, "workers", def.Workers, "worker goroutines, 0 for IMGACO_WORKERS or GOMAXPROCS")
}

// overrideConfig copies into cfg every tunable whose flag was set on the
// command line.
func overrideConfig(fs *pflag.FlagSet, cfg *aco.Config, flags aco.Config) {
	fs.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "ants":
			cfg.Ants = flags.Ants
		case "steps":
			cfg.Steps = flags.Steps
		case "step-length":
			cfg.StepLength = flags.StepLength
		case "memory":
			cfg.Memory = flags.Memory
		case "alpha":
			cfg.PheromoneWeight = flags.PheromoneWeight
		case "beta":
			cfg.VisibilityWeight = flags.VisibilityWeight
		case "seeding":
			cfg.Seeding = flags.Seeding
		case "block-size":
			cfg.BlockSize = flags.BlockSize
		case "seed-gammas":
			cfg.SeedGammas = flags.SeedGammas
		case "deposit":
			cfg.Deposit = flags.Deposit
		case "deposit-amount":
			cfg.DepositAmount = flags.DepositAmount
		case "initial":
			cfg.InitialPheromone = flags.InitialPheromone
		case "minimum":
			cfg.MinimumPheromone = flags.MinimumPheromone
		case "rate":
			cfg.EvaporationRate = flags.EvaporationRate
		case "edge":
			cfg.Edge = flags.Edge
		case "seed":
			cfg.Seed = flags.Seed
		case "workers":
			cfg.Workers = flags.Workers
		}
	})
}
