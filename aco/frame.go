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

import "time"

// Frame is a snapshot handed to a FrameSink before every move round of the
// walk, and once more when every ant has died.
type Frame struct {
	Step   int // zero-based colony step
	Move   int // zero-based move round within the step
	Env    *Environment
	Agents []Agent
}

// FrameSink observes the walk, typically to dump debug images. Sinks run on
// the colony goroutine between move rounds and must not modify Env.
type FrameSink interface {
	WriteFrame(f Frame) error
}

// StepStats summarises one completed colony step.
type StepStats struct {
	Step          int
	Ants          int
	Moves         int     // move rounds until every ant died
	MeanPath      float64 // mean moves per ant
	MinPheromone  float64
	MaxPheromone  float64
	MeanPheromone float64
	Elapsed       time.Duration
}
