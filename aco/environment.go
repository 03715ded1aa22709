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

	"github.com/ajroetker/imgaco/grid"
	"github.com/ajroetker/imgaco/internal/parallel"
)

// Raster is the narrow view of a source image the environment needs.
// Luminance must be safe for concurrent reads and should return values in
// [0, 1].
type Raster interface {
	Width() int
	Height() int
	Luminance(x, y int) float64
}

// Params are the scalar parameters of the pheromone field.
type Params struct {
	InitialPheromone float64
	MinimumPheromone float64
	EvaporationRate  float64 // fraction removed per evaporation, in [0, 1]
	Edge             grid.EdgePolicy
}

func (p Params) validate() error {
	switch {
	case p.EvaporationRate < 0 || p.EvaporationRate > 1 || math.IsNaN(p.EvaporationRate):
		return fmt.Errorf("%w: evaporation_rate %v outside [0, 1]", ErrInvalidConfig, p.EvaporationRate)
	case p.MinimumPheromone < 0 || math.IsNaN(p.MinimumPheromone):
		return fmt.Errorf("%w: minimum_pheromone %v is negative", ErrInvalidConfig, p.MinimumPheromone)
	case !(p.InitialPheromone >= p.MinimumPheromone):
		return fmt.Errorf("%w: initial_pheromone %v below minimum %v", ErrInvalidConfig, p.InitialPheromone, p.MinimumPheromone)
	}
	return nil
}

// Environment owns the grid state of a colony: the source luminance, the
// static visibility field and the mutable pheromone field.
//
// Every pheromone cell is >= Params.MinimumPheromone after ClearPheromone
// and after every EvaporatePheromone; deposits only ever add.
type Environment struct {
	width, height int
	params        Params

	luminance  *grid.Field
	visibility *grid.Field
	pheromone  *grid.Field

	pool *parallel.Pool
}

// NewEnvironment allocates zeroed fields for a width×height grid. pool may
// be nil, in which case every loop runs sequentially.
func NewEnvironment(width, height int, p Params, pool *parallel.Pool) (*Environment, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptyImage, width, height)
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	env := &Environment{width: width, height: height, params: p, pool: pool}
	for _, f := range []**grid.Field{&env.luminance, &env.visibility, &env.pheromone} {
		field, err := grid.NewField(width, height)
		if err != nil {
			return nil, err
		}
		field.SetEdge(p.Edge)
		*f = field
	}
	return env, nil
}

// Width returns the grid width.
func (e *Environment) Width() int { return e.width }

// Height returns the grid height.
func (e *Environment) Height() int { return e.height }

// Bounds returns the grid rectangle.
func (e *Environment) Bounds() grid.Rect { return e.pheromone.Bounds() }

// Params returns the pheromone parameters.
func (e *Environment) Params() Params { return e.params }

// ComputeVisibility loads luminance from r and derives the visibility field:
// the largest absolute luminance difference between a cell and its eight
// neighbours. Both passes run in parallel over rows.
func (e *Environment) ComputeVisibility(r Raster) error {
	if r.Width() != e.width || r.Height() != e.height {
		return fmt.Errorf("%w: raster %dx%d, environment %dx%d",
			ErrSizeMismatch, r.Width(), r.Height(), e.width, e.height)
	}

	e.pool.Rows(e.height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			row := e.luminance.Row(y)
			for x := range row {
				row[x] = r.Luminance(x, y)
			}
		}
	})

	e.pool.Rows(e.height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			row := e.visibility.Row(y)
			for x := range row {
				c := e.luminance.At(x, y)
				var contrast float64
				for _, o := range grid.Compass {
					contrast = max(contrast, math.Abs(e.luminance.At(x+o.X, y+o.Y)-c))
				}
				row[x] = contrast
			}
		}
	})
	return nil
}

// ClearPheromone resets every cell to the initial pheromone value.
func (e *Environment) ClearPheromone() {
	v := e.params.InitialPheromone
	e.pool.Rows(e.height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			row := e.pheromone.Row(y)
			for x := range row {
				row[x] = v
			}
		}
	})
}

// Luminance returns the source luminance at p.
func (e *Environment) Luminance(p grid.Point) float64 {
	return e.luminance.AtPoint(p)
}

// VisibilityAt returns the static local contrast at p.
func (e *Environment) VisibilityAt(p grid.Point) float64 {
	return e.visibility.AtPoint(p)
}

// Visibility is the heuristic desirability of moving from origin to
// destination: the minimum pheromone plus the largest luminance increase
// from origin to any of destination's eight neighbours. It favours moves
// towards strong local luminance change. Off-grid neighbours follow the
// field's edge policy (clamp by default), so border cells compare against
// their own edge rather than an unrelated cell.
func (e *Environment) Visibility(origin, destination grid.Point) float64 {
	lo := e.luminance.AtPoint(origin)
	best := math.Inf(-1)
	for _, o := range grid.Compass {
		best = max(best, e.luminance.At(destination.X+o.X, destination.Y+o.Y)-lo)
	}
	return e.params.MinimumPheromone + best
}

// Pheromone returns the pheromone at p.
func (e *Environment) Pheromone(p grid.Point) float64 {
	return e.pheromone.AtPoint(p)
}

// AddPheromone accumulates amount at p. Safe for concurrent use.
func (e *Environment) AddPheromone(amount float64, p grid.Point) {
	e.pheromone.AtomicAdd(p.X, p.Y, amount)
}

// EvaporatePheromone multiplies every cell by (1 - rate) and floors the
// result at the minimum pheromone.
func (e *Environment) EvaporatePheromone() {
	keep := 1 - e.params.EvaporationRate
	floor := e.params.MinimumPheromone
	e.pool.Rows(e.height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			row := e.pheromone.Row(y)
			for x, v := range row {
				row[x] = max(v*keep, floor)
			}
		}
	})
}

// Adjacent appends to dst the in-bounds 8-connected neighbours of p, in
// grid.Compass order, and returns the extended slice.
func (e *Environment) Adjacent(p grid.Point, dst []grid.Point) []grid.Point {
	for _, o := range grid.Compass {
		n := p.Add(o)
		if e.pheromone.Contains(n.X, n.Y) {
			dst = append(dst, n)
		}
	}
	return dst
}

// PheromoneField returns the live pheromone field. Callers must not write
// to it while a colony step is running.
func (e *Environment) PheromoneField() *grid.Field {
	return e.pheromone
}

// VisibilityField returns the static visibility field.
func (e *Environment) VisibilityField() *grid.Field {
	return e.visibility
}

// PheromoneImage renders the pheromone field as grey triplets equal to the
// raw cell values. No normalisation is applied.
func (e *Environment) PheromoneImage() *grid.Field3 {
	out, _ := grid.NewField3(e.width, e.height)
	e.pool.Rows(e.height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			src := e.pheromone.Row(y)
			for plane := range 3 {
				copy(out.Plane(plane).Row(y), src)
			}
		}
	})
	return out
}

// NormalizedPheromone returns a copy of the pheromone field divided by its
// maximum, so the strongest trail maps to 1. The field itself is untouched.
func (e *Environment) NormalizedPheromone() *grid.Field {
	out := e.pheromone.Clone()
	_, hi := out.MinMax()
	if !(hi > 0) {
		return out
	}
	e.pool.Rows(e.height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			row := out.Row(y)
			for x := range row {
				row[x] /= hi
			}
		}
	})
	return out
}

// PheromoneStats returns the minimum, maximum and mean pheromone.
func (e *Environment) PheromoneStats() (lo, hi, mean float64) {
	lo, hi = e.pheromone.MinMax()
	data := e.pheromone.Data()
	sum := e.pool.Sum(len(data), func(start, end int) float64 {
		var s float64
		for _, v := range data[start:end] {
			s += v
		}
		return s
	})
	return lo, hi, sum / float64(len(data))
}
