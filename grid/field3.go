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

// Field3 bundles three same-sized fields, used as R, G and B planes when
// rendering fields for inspection.
type Field3 struct {
	planes [3]*Field
}

// NewField3 creates a new 3-plane buffer with the specified dimensions.
func NewField3(width, height int) (*Field3, error) {
	var f3 Field3
	for i := range f3.planes {
		p, err := NewField(width, height)
		if err != nil {
			return nil, err
		}
		f3.planes[i] = p
	}
	return &f3, nil
}

// Plane returns the specified plane (0, 1, or 2).
func (f3 *Field3) Plane(i int) *Field {
	if i < 0 || i > 2 {
		return nil
	}
	return f3.planes[i]
}

// Width returns the buffer width (all planes have the same size).
func (f3 *Field3) Width() int {
	return f3.planes[0].Width()
}

// Height returns the buffer height.
func (f3 *Field3) Height() int {
	return f3.planes[0].Height()
}

// At returns the three channel values at (x, y).
func (f3 *Field3) At(x, y int) (r, g, b float64) {
	return f3.planes[0].At(x, y), f3.planes[1].At(x, y), f3.planes[2].At(x, y)
}

// Set writes the three channel values at (x, y).
func (f3 *Field3) Set(x, y int, r, g, b float64) {
	f3.planes[0].Set(x, y, r)
	f3.planes[1].Set(x, y, g)
	f3.planes[2].Set(x, y, b)
}
