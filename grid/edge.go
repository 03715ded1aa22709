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

package grid

import (
	"fmt"
	"strings"
)

// EdgePolicy decides which cell an off-grid coordinate refers to.
type EdgePolicy int

const (
	// EdgeClamp repeats the nearest edge cell.
	EdgeClamp EdgePolicy = iota

	// EdgeMirror reflects the coordinate at the boundary.
	EdgeMirror

	// EdgeWrap tiles the grid.
	EdgeWrap
)

// String returns a human-readable name for the policy.
func (p EdgePolicy) String() string {
	switch p {
	case EdgeClamp:
		return "clamp"
	case EdgeMirror:
		return "mirror"
	case EdgeWrap:
		return "wrap"
	default:
		return "unknown"
	}
}

// ParseEdgePolicy returns the policy named s (case-insensitive).
func ParseEdgePolicy(s string) (EdgePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "clamp":
		return EdgeClamp, nil
	case "mirror":
		return EdgeMirror, nil
	case "wrap":
		return EdgeWrap, nil
	}
	return EdgeClamp, fmt.Errorf("grid: unknown edge policy %q", s)
}

// Resolve maps index into [0, size) according to the policy.
func (p EdgePolicy) Resolve(index, size int) int {
	switch p {
	case EdgeMirror:
		return Mirror(index, size)
	case EdgeWrap:
		return Wrap(index, size)
	default:
		return Clamp(index, size)
	}
}

// Mirror returns the mirrored index for out-of-bounds coordinates.
// Given bounds [0, size), mirrors index to stay within bounds.
func Mirror(index, size int) int {
	if size <= 0 {
		return 0
	}
	if index < 0 {
		index = -index - 1
	}
	if index >= size {
		period := 2 * size
		index = index % period
		if index >= size {
			index = period - index - 1
		}
	}
	return index
}

// Clamp returns index clamped to [0, size-1].
func Clamp(index, size int) int {
	if index < 0 || size <= 0 {
		return 0
	}
	if index >= size {
		return size - 1
	}
	return index
}

// Wrap returns index wrapped to [0, size) using modulo.
func Wrap(index, size int) int {
	if size <= 0 {
		return 0
	}
	index = index % size
	if index < 0 {
		index += size
	}
	return index
}
