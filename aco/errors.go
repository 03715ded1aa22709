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

import "errors"

var (
	// ErrEmptyImage is returned when the source raster has no pixels.
	ErrEmptyImage = errors.New("aco: image has zero width or height")

	// ErrSizeMismatch is returned when a raster does not match the
	// environment it is loaded into.
	ErrSizeMismatch = errors.New("aco: raster size does not match environment")

	// ErrInvalidConfig wraps every configuration validation failure.
	ErrInvalidConfig = errors.New("aco: invalid config")

	// ErrNegativeSteps is returned by Colony.Run for a negative step count.
	ErrNegativeSteps = errors.New("aco: negative step count")
)
