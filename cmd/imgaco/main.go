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

// Command imgaco extracts edges from an image with an ant colony.
//
// Usage:
//
//	imgaco run input.png -o edges.bmp
//	imgaco run input.bmp -o edges.png --config params.yaml --steps 20
//	imgaco run input.jpg -o edges.png --video walk.avi --frame-every 4
//	imgaco version
//
// The output image is the final pheromone field: bright pixels are cells
// the ants kept returning to, which concentrate along luminance edges.
// Set IMGACO_WORKERS to override the worker count.
package main

import (
	"os"
)

func main() {
	if err := execute(newRootCmd(os.Stdout, os.Stderr), os.Stderr); err != nil {
		os.Exit(1)
	}
}
