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

import "fmt"

// Point is an integer grid coordinate.
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// String formats the point as "(x,y)".
func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Compass holds the eight 8-connected offsets, starting west and going
// clockwise. The order is fixed so neighbour iteration is reproducible.
var Compass = [8]Point{
	{-1, 0},  // w
	{-1, -1}, // sw
	{0, -1},  // s
	{1, -1},  // se
	{1, 0},   // e
	{1, 1},   // ne
	{0, 1},   // n
	{-1, 1},  // nw
}

// Rect defines a rectangular region within a grid.
type Rect struct {
	X0, Y0 int // Top-left corner (inclusive)
	X1, Y1 int // Bottom-right corner (exclusive)
}

// Width returns the rectangle width.
func (r Rect) Width() int {
	return r.X1 - r.X0
}

// Height returns the rectangle height.
func (r Rect) Height() int {
	return r.Y1 - r.Y0
}

// Area returns the number of cells covered by the rectangle.
func (r Rect) Area() int {
	if r.IsEmpty() {
		return 0
	}
	return r.Width() * r.Height()
}

// IsEmpty returns true if the rectangle has zero or negative area.
func (r Rect) IsEmpty() bool {
	return r.X1 <= r.X0 || r.Y1 <= r.Y0
}

// Contains reports whether p lies inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X0 && p.X < r.X1 && p.Y >= r.Y0 && p.Y < r.Y1
}

// At returns the i-th cell of the rectangle in row-major order.
func (r Rect) At(i int) Point {
	w := r.Width()
	return Point{X: r.X0 + i%w, Y: r.Y0 + i/w}
}

// Blocks partitions r into full size×size tiles, row by row. Partial tiles
// along the right and bottom edges are not returned.
func (r Rect) Blocks(size int) []Rect {
	if size <= 0 || r.IsEmpty() {
		return nil
	}
	nx := r.Width() / size
	ny := r.Height() / size
	blocks := make([]Rect, 0, nx*ny)
	for by := range ny {
		for bx := range nx {
			x0 := r.X0 + bx*size
			y0 := r.Y0 + by*size
			blocks = append(blocks, Rect{X0: x0, Y0: y0, X1: x0 + size, Y1: y0 + size})
		}
	}
	return blocks
}
