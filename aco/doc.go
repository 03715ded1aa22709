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

// Package aco extracts edges from a grayscale raster with Ant Colony
// Optimization.
//
// An Environment holds three W×H fields: the source luminance, a static
// visibility field (local contrast, computed once) and the pheromone field
// that ants deposit into and that evaporates every step. A Colony seeds a
// fresh population of Ants each step, walks them until every ant has died,
// evaporates the old trail and lets every ant deposit. After the last step
// the pheromone field is the edge map.
//
// # Usage Example
//
//	cfg := aco.DefaultConfig()
//	cfg.Steps = 10
//	colony, err := aco.NewColony(raster, cfg)
//	if err != nil {
//	    return err
//	}
//	defer colony.Close()
//	if err := colony.Run(cfg.Steps); err != nil {
//	    return err
//	}
//	edges := colony.Environment().PheromoneField()
//
// # Step Protocol
//
// Each step runs Seed, Walk, Evaporate and Deposit in that order. Ants move
// in parallel and only read the pheromone field while walking; deposits
// happen after every ant has stopped and use atomic accumulation. Every ant
// draws from its own random stream derived from Config.Seed, so a run is
// reproducible for a given seed. With the final and path deposits the result
// is also bit-identical across worker counts.
package aco
