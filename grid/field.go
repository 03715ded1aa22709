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
	"errors"
	"fmt"
	"math"
	"sync/atomic"
	"unsafe"
)

// ErrEmptyField is returned when a field would have no cells.
var ErrEmptyField = errors.New("grid: field must have positive width and height")

// Field is a single-channel W×H array of float64 stored row-major.
//
// All accessors taking (x, y) resolve off-grid coordinates through the
// field's EdgePolicy, so no coordinate ever panics.
type Field struct {
	data   []float64
	width  int
	height int
	edge   EdgePolicy
}

// NewField creates a zeroed field with the specified dimensions.
func NewField(width, height int) (*Field, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrEmptyField, width, height)
	}
	return &Field{
		data:   make([]float64, width*height),
		width:  width,
		height: height,
	}, nil
}

// MustField is like NewField but panics on invalid dimensions.
// Intended for tests and fixed-size scratch buffers.
func MustField(width, height int) *Field {
	f, err := NewField(width, height)
	if err != nil {
		panic(err)
	}
	return f
}

// Width returns the field width in cells.
func (f *Field) Width() int {
	return f.width
}

// Height returns the field height in cells.
func (f *Field) Height() int {
	return f.height
}

// Len returns the number of cells.
func (f *Field) Len() int {
	return len(f.data)
}

// Bounds returns the bounding rectangle of the field.
func (f *Field) Bounds() Rect {
	return Rect{X0: 0, Y0: 0, X1: f.width, Y1: f.height}
}

// Edge returns the policy used for off-grid coordinates.
func (f *Field) Edge() EdgePolicy {
	return f.edge
}

// SetEdge changes the policy used for off-grid coordinates.
func (f *Field) SetEdge(p EdgePolicy) {
	f.edge = p
}

// Contains reports whether (x, y) is on the grid.
func (f *Field) Contains(x, y int) bool {
	return x >= 0 && x < f.width && y >= 0 && y < f.height
}

// Index returns the row-major index of (x, y) after resolving it through
// the edge policy.
func (f *Field) Index(x, y int) int {
	if !f.Contains(x, y) {
		x = f.edge.Resolve(x, f.width)
		y = f.edge.Resolve(y, f.height)
	}
	return y*f.width + x
}

// Point returns the coordinate of the cell at row-major index i.
func (f *Field) Point(i int) Point {
	return Point{X: i % f.width, Y: i / f.width}
}

// At returns the value at position (x, y).
func (f *Field) At(x, y int) float64 {
	return f.data[f.Index(x, y)]
}

// AtPoint returns the value at p.
func (f *Field) AtPoint(p Point) float64 {
	return f.At(p.X, p.Y)
}

// Set sets the value at position (x, y).
func (f *Field) Set(x, y int, value float64) {
	f.data[f.Index(x, y)] = value
}

// Add accumulates amount into (x, y). It is not safe for concurrent use on
// the same cell; see AtomicAdd.
func (f *Field) Add(x, y int, amount float64) {
	f.data[f.Index(x, y)] += amount
}

// AtomicAdd accumulates amount into (x, y) with a compare-and-swap loop on
// the value's bits, so concurrent writers to the same cell never lose an
// update.
func (f *Field) AtomicAdd(x, y int, amount float64) {
	addr := (*uint64)(unsafe.Pointer(&f.data[f.Index(x, y)]))
	for {
		old := atomic.LoadUint64(addr)
		next := math.Float64bits(math.Float64frombits(old) + amount)
		if atomic.CompareAndSwapUint64(addr, old, next) {
			return
		}
	}
}

// Row returns a mutable slice for the specified row, or nil when y is off
// the grid.
func (f *Field) Row(y int) []float64 {
	if y < 0 || y >= f.height {
		return nil
	}
	start := y * f.width
	return f.data[start : start+f.width]
}

// Data returns the backing row-major slice. Writes are visible to the field.
func (f *Field) Data() []float64 {
	return f.data
}

// Fill sets all cells to the specified value.
func (f *Field) Fill(value float64) {
	for i := range f.data {
		f.data[i] = value
	}
}

// Clone creates a deep copy of the field, edge policy included.
func (f *Field) Clone() *Field {
	clone := &Field{
		data:   make([]float64, len(f.data)),
		width:  f.width,
		height: f.height,
		edge:   f.edge,
	}
	copy(clone.data, f.data)
	return clone
}

// Sum returns the sum of all cells.
func (f *Field) Sum() float64 {
	var sum float64
	for _, v := range f.data {
		sum += v
	}
	return sum
}

// MinMax returns the smallest and largest cell values.
func (f *Field) MinMax() (lo, hi float64) {
	lo, hi = f.data[0], f.data[0]
	for _, v := range f.data[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return lo, hi
}

// Pow raises every value of data to gamma in place. Values that are not
// positive, NaN included, become zero. Gamma below one brightens a [0, 1]
// field; above one darkens it.
func Pow(data []float64, gamma float64) {
	for i, v := range data {
		switch {
		case !(v > 0):
			data[i] = 0
		case gamma != 1:
			data[i] = math.Pow(v, gamma)
		}
	}
}
