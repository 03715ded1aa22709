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
	"math/rand/v2"
	"slices"
	"time"

	"github.com/samber/lo"

	"github.com/ajroetker/imgaco/grid"
	"github.com/ajroetker/imgaco/internal/logging"
	"github.com/ajroetker/imgaco/internal/parallel"
)

// Spawner builds the agent for one seed cell. The default spawner returns an
// *Ant configured from cfg.
type Spawner func(seed grid.Point, env *Environment, cfg Config, d Depositor, rng *rand.Rand) Agent

// DefaultSpawner creates an *Ant with the run's step length, weights and
// memory.
func DefaultSpawner(seed grid.Point, env *Environment, cfg Config, d Depositor, rng *rand.Rand) Agent {
	ant := NewAnt(seed, env, cfg.Memory, rng)
	ant.SetStepLength(cfg.StepLength)
	ant.SetPheromoneWeight(cfg.PheromoneWeight)
	ant.SetVisibilityWeight(cfg.VisibilityWeight)
	ant.SetDepositor(d)
	return ant
}

// Option configures a Colony.
type Option func(*Colony)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l logging.Logger) Option {
	return func(c *Colony) { c.log = l }
}

// WithPool runs the colony on an existing pool. The colony does not close
// pools it did not create.
func WithPool(p *parallel.Pool) Option {
	return func(c *Colony) { c.pool = p }
}

// WithFrameSink attaches a debug observer of the walk.
func WithFrameSink(s FrameSink) Option {
	return func(c *Colony) { c.sink = s }
}

// WithSpawner replaces the agent constructor.
func WithSpawner(s Spawner) Option {
	return func(c *Colony) { c.spawner = s }
}

// WithDepositor replaces the deposit strategy named by Config.Deposit.
func WithDepositor(d Depositor) Option {
	return func(c *Colony) { c.depositor = d }
}

// Colony owns an Environment and runs the simulation over it.
type Colony struct {
	cfg       Config
	env       *Environment
	pool      *parallel.Pool
	ownsPool  bool
	log       logging.Logger
	sink      FrameSink
	spawner   Spawner
	depositor Depositor

	distributions []*Distribution
	agents        []Agent
	stats         []StepStats
	step          int
}

// NewColony validates cfg, builds the environment from r, clears the
// pheromone field and precomputes the seeding distributions.
func NewColony(r Raster, cfg Config, opts ...Option) (*Colony, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Colony{
		cfg:     cfg,
		log:     logging.NoOp{},
		spawner: DefaultSpawner,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.depositor == nil {
		d, err := NewDepositor(cfg.Deposit, cfg.DepositAmount)
		if err != nil {
			return nil, err
		}
		c.depositor = d
	}
	if c.pool == nil {
		c.pool = parallel.New(cfg.Workers)
		c.ownsPool = true
	}

	env, err := NewEnvironment(r.Width(), r.Height(), cfg.Params(), c.pool)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("building environment: %w", err)
	}
	if err := env.ComputeVisibility(r); err != nil {
		c.Close()
		return nil, fmt.Errorf("computing visibility: %w", err)
	}
	env.ClearPheromone()
	c.env = env

	if cfg.Seeding == SeedByBlock && c.populationSize() == 0 {
		c.Close()
		return nil, fmt.Errorf("%w: block_size %d leaves no full block in a %dx%d image",
			ErrInvalidConfig, cfg.BlockSize, env.Width(), env.Height())
	}

	if cfg.Seeding == SeedByGamma {
		c.distributions = GenerateProbabilityDistributions(env, cfg.SeedGammas)
	}

	c.log.Info("colony ready",
		"width", env.Width(),
		"height", env.Height(),
		"seeding", cfg.Seeding,
		"ants", c.populationSize(),
		"deposit", cfg.Deposit,
		"workers", c.pool.NumWorkers())
	return c, nil
}

// Close releases the worker pool if the colony created it.
func (c *Colony) Close() {
	if c.ownsPool {
		c.pool.Close()
	}
}

// Config returns the configuration the colony was built with.
func (c *Colony) Config() Config { return c.cfg }

// Environment returns the colony's environment.
func (c *Colony) Environment() *Environment { return c.env }

// Distributions returns the seeding distributions (gamma seeding only).
func (c *Colony) Distributions() []*Distribution { return c.distributions }

// Agents returns the population of the step in progress. It is empty
// between steps.
func (c *Colony) Agents() []Agent { return c.agents }

// Stats returns one entry per completed step.
func (c *Colony) Stats() []StepStats { return slices.Clone(c.stats) }

// StepsDone returns the number of completed steps.
func (c *Colony) StepsDone() int { return c.step }

// PheromoneImage renders the current pheromone field.
func (c *Colony) PheromoneImage() *grid.Field3 { return c.env.PheromoneImage() }

func (c *Colony) populationSize() int {
	if c.cfg.Seeding == SeedByBlock {
		return len(c.env.Bounds().Blocks(c.cfg.BlockSize))
	}
	return c.cfg.Ants
}

// Run executes nSteps colony steps. Zero steps leaves the pheromone field
// untouched.
func (c *Colony) Run(nSteps int) error {
	if nSteps < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeSteps, nSteps)
	}
	start := time.Now()
	for range nSteps {
		c.Step()
	}
	minP, maxP, meanP := c.env.PheromoneStats()
	c.log.Info("run complete",
		"steps", nSteps,
		"elapsed", time.Since(start),
		"pheromone_min", minP,
		"pheromone_max", maxP,
		"pheromone_mean", meanP)
	return nil
}

// Step runs one Seed, Walk, Evaporate, Deposit cycle and records its stats.
func (c *Colony) Step() StepStats {
	start := time.Now()

	c.agents = c.spawn(c.distributeAnts())
	moves := c.moveAnts()
	c.env.EvaporatePheromone()
	c.updatePheromone()

	minP, maxP, meanP := c.env.PheromoneStats()
	st := StepStats{
		Step:          c.step,
		Ants:          len(c.agents),
		Moves:         moves,
		MeanPath:      meanPath(c.agents),
		MinPheromone:  minP,
		MaxPheromone:  maxP,
		MeanPheromone: meanP,
		Elapsed:       time.Since(start),
	}
	c.stats = append(c.stats, st)
	c.log.Debug("step complete",
		"step", st.Step,
		"ants", st.Ants,
		"moves", st.Moves,
		"mean_path", st.MeanPath,
		"pheromone_max", st.MaxPheromone,
		"elapsed", st.Elapsed)

	c.agents = nil
	c.step++
	return st
}

func (c *Colony) distributeAnts() []grid.Point {
	rng := newStream(c.cfg.Seed, c.step, 0)
	switch c.cfg.Seeding {
	case SeedByBlock:
		return DistributeAntsByBlock(c.env, c.cfg.BlockSize, rng)
	case SeedUniformly:
		return DistributeAntsUniformly(c.env, c.cfg.Ants, rng)
	default:
		return DistributeAntsByGamma(c.distributions, c.cfg.Ants, rng)
	}
}

func (c *Colony) spawn(seeds []grid.Point) []Agent {
	return lo.Map(seeds, func(p grid.Point, i int) Agent {
		return c.spawner(p, c.env, c.cfg, c.depositor, newStream(c.cfg.Seed, c.step, i+1))
	})
}

// moveAnts moves every live ant, one round at a time, until none is alive,
// and returns the number of rounds. Rounds are unbounded; each ant's step
// budget bounds them in practice.
func (c *Colony) moveAnts() int {
	agents := c.agents
	for round := 0; ; round++ {
		c.emitFrame(round)
		if !lo.SomeBy(agents, Agent.Alive) {
			return round
		}
		c.pool.Each(len(agents), func(i int) {
			if agents[i].Alive() {
				agents[i].Move()
			}
		})
	}
}

func (c *Colony) updatePheromone() {
	agents := c.agents
	c.pool.Each(len(agents), func(i int) {
		agents[i].DepositPheromone()
	})
}

func (c *Colony) emitFrame(round int) {
	if c.sink == nil {
		return
	}
	err := c.sink.WriteFrame(Frame{Step: c.step, Move: round, Env: c.env, Agents: c.agents})
	if err != nil {
		c.log.Warn("frame sink failed, disabling it", "step", c.step, "move", round, "error", err)
		c.sink = nil
	}
}

// stepper is implemented by agents that count their moves.
type stepper interface {
	Steps() int
}

func meanPath(agents []Agent) float64 {
	walkers := lo.FilterMap(agents, func(a Agent, _ int) (stepper, bool) {
		w, ok := a.(stepper)
		return w, ok
	})
	if len(walkers) == 0 {
		return 0
	}
	total := lo.SumBy(walkers, func(w stepper) int { return w.Steps() })
	return float64(total) / float64(len(walkers))
}
