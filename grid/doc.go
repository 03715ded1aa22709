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

// Package grid provides the 2D scalar fields the colony simulation runs on.
//
// The core types are Field for single-channel per-cell values (luminance,
// visibility, pheromone) and Field3 for three-plane colour buffers used when
// rendering. Cells are addressed by (x, y) with 0 <= x < Width and
// 0 <= y < Height and stored row-major.
//
// # Usage Example
//
//	f, err := grid.NewField(640, 480)
//	if err != nil {
//	    return err
//	}
//	f.Fill(0.5)
//	f.Add(10, 20, 1.0)
//
// # Edge Handling
//
// Off-grid coordinates never panic. Every Field resolves them through its
// EdgePolicy before reading or writing:
//
//	Clamp  - repeat edge cells (default)
//	Mirror - reflect at boundaries
//	Wrap   - tile/wrap around
package grid
