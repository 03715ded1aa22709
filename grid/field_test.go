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
	"math"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestNewField(t *testing.T) {
	f, err := NewField(100, 50)
	if err != nil {
		t.Fatalf("NewField: %v", err)
	}
	if f.Width() != 100 {
		t.Errorf("Width: got %d, want 100", f.Width())
	}
	if f.Height() != 50 {
		t.Errorf("Height: got %d, want 50", f.Height())
	}
	if f.Len() != 5000 {
		t.Errorf("Len: got %d, want 5000", f.Len())
	}
	if f.Edge() != EdgeClamp {
		t.Errorf("Edge: got %v, want clamp", f.Edge())
	}
}

func TestNewField_ZeroDimensions(t *testing.T) {
	for _, dims := range [][2]int{{0, 0}, {-1, 10}, {10, 0}} {
		if _, err := NewField(dims[0], dims[1]); !errors.Is(err, ErrEmptyField) {
			t.Errorf("NewField(%d, %d): got %v, want ErrEmptyField", dims[0], dims[1], err)
		}
	}
}

func TestField_AtSet(t *testing.T) {
	f := MustField(10, 10)

	f.Set(5, 7, 42.0)
	if got := f.At(5, 7); got != 42.0 {
		t.Errorf("At(5,7): got %v, want 42.0", got)
	}
	if got := f.AtPoint(Pt(5, 7)); got != 42.0 {
		t.Errorf("AtPoint(5,7): got %v, want 42.0", got)
	}
}

func TestField_OffGridClamp(t *testing.T) {
	f := MustField(3, 2)
	for i := range f.Data() {
		f.Data()[i] = float64(i)
	}

	tests := []struct {
		x, y int
		want float64
	}{
		{-1, 0, 0},
		{-5, -5, 0},
		{3, 0, 2},
		{10, 1, 5},
		{1, -1, 1},
		{1, 2, 4},
	}
	for _, tt := range tests {
		if got := f.At(tt.x, tt.y); got != tt.want {
			t.Errorf("At(%d,%d): got %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}

	// Writes resolve the same way reads do.
	f.Set(-1, -1, 99)
	if got := f.At(0, 0); got != 99 {
		t.Errorf("Set(-1,-1) should land on (0,0): got %v", got)
	}
}

func TestField_OffGridWrapAndMirror(t *testing.T) {
	f := MustField(4, 1)
	copy(f.Data(), []float64{10, 11, 12, 13})

	f.SetEdge(EdgeWrap)
	if got := f.At(-1, 0); got != 13 {
		t.Errorf("wrap At(-1,0): got %v, want 13", got)
	}
	f.SetEdge(EdgeMirror)
	if got := f.At(-1, 0); got != 10 {
		t.Errorf("mirror At(-1,0): got %v, want 10", got)
	}
	if got := f.At(4, 0); got != 13 {
		t.Errorf("mirror At(4,0): got %v, want 13", got)
	}
}

func TestField_Row(t *testing.T) {
	f := MustField(4, 3)
	row := f.Row(1)
	if len(row) != 4 {
		t.Fatalf("Row length: got %d, want 4", len(row))
	}
	row[2] = 7
	if got := f.At(2, 1); got != 7 {
		t.Errorf("Row should alias the field: got %v, want 7", got)
	}
	if f.Row(-1) != nil || f.Row(3) != nil {
		t.Error("Row off the grid should return nil")
	}
}

func TestField_FillSumMinMax(t *testing.T) {
	f := MustField(5, 4)
	f.Fill(0.25)
	if got := f.Sum(); got != 5 {
		t.Errorf("Sum: got %v, want 5", got)
	}
	f.Set(1, 1, -2)
	f.Set(3, 2, 9)
	lo, hi := f.MinMax()
	if lo != -2 || hi != 9 {
		t.Errorf("MinMax: got (%v, %v), want (-2, 9)", lo, hi)
	}
}

func TestField_Clone(t *testing.T) {
	f := MustField(3, 3)
	f.SetEdge(EdgeMirror)
	f.Set(1, 1, 3)
	c := f.Clone()
	c.Set(1, 1, 4)
	if f.At(1, 1) != 3 {
		t.Error("Clone should not share storage")
	}
	if c.Edge() != EdgeMirror {
		t.Errorf("Clone edge: got %v, want mirror", c.Edge())
	}
	if c.Width() != 3 || c.Height() != 3 {
		t.Errorf("Clone size: got %dx%d, want 3x3", c.Width(), c.Height())
	}
}

func TestField_AtomicAdd(t *testing.T) {
	f := MustField(2, 2)
	const writers = 8
	const perWriter = 1000

	var wg sync.WaitGroup
	wg.Add(writers)
	for range writers {
		go func() {
			defer wg.Done()
			for range perWriter {
				f.AtomicAdd(1, 1, 1)
			}
		}()
	}
	wg.Wait()

	if got := f.At(1, 1); got != writers*perWriter {
		t.Errorf("AtomicAdd: got %v, want %v", got, writers*perWriter)
	}
}

func TestField_Point(t *testing.T) {
	f := MustField(7, 3)
	for i := range f.Len() {
		p := f.Point(i)
		if f.Index(p.X, p.Y) != i {
			t.Errorf("Point(%d) = %v does not round-trip", i, p)
		}
	}
}

func TestRect_Blocks(t *testing.T) {
	r := Rect{X1: 10, Y1: 7}
	blocks := r.Blocks(3)
	want := []Rect{
		{0, 0, 3, 3}, {3, 0, 6, 3}, {6, 0, 9, 3},
		{0, 3, 3, 6}, {3, 3, 6, 6}, {6, 3, 9, 6},
	}
	if diff := cmp.Diff(want, blocks); diff != "" {
		t.Errorf("Blocks mismatch (-want +got):\n%s", diff)
	}
	if r.Blocks(0) != nil {
		t.Error("Blocks(0) should return nil")
	}
}

func TestRect_AtContains(t *testing.T) {
	r := Rect{X0: 2, Y0: 4, X1: 5, Y1: 6}
	if r.Area() != 6 {
		t.Errorf("Area: got %d, want 6", r.Area())
	}
	var got []Point
	for i := range r.Area() {
		p := r.At(i)
		if !r.Contains(p) {
			t.Errorf("At(%d) = %v outside %v", i, p, r)
		}
		got = append(got, p)
	}
	want := []Point{{2, 4}, {3, 4}, {4, 4}, {2, 5}, {3, 5}, {4, 5}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("At order mismatch (-want +got):\n%s", diff)
	}
}

func TestEdgePolicy_Parse(t *testing.T) {
	for _, p := range []EdgePolicy{EdgeClamp, EdgeMirror, EdgeWrap} {
		got, err := ParseEdgePolicy(p.String())
		if err != nil || got != p {
			t.Errorf("ParseEdgePolicy(%q): got (%v, %v)", p.String(), got, err)
		}
	}
	if _, err := ParseEdgePolicy("pad"); err == nil {
		t.Error("ParseEdgePolicy(pad) should fail")
	}
}

func TestClampMirrorWrap(t *testing.T) {
	tests := []struct {
		index, size          int
		clamp, mirror, wrap int
	}{
		{-1, 5, 0, 0, 4},
		{-2, 5, 0, 1, 3},
		{5, 5, 4, 4, 0},
		{6, 5, 4, 3, 1},
		{2, 5, 2, 2, 2},
	}
	for _, tt := range tests {
		if got := Clamp(tt.index, tt.size); got != tt.clamp {
			t.Errorf("Clamp(%d,%d): got %d, want %d", tt.index, tt.size, got, tt.clamp)
		}
		if got := Mirror(tt.index, tt.size); got != tt.mirror {
			t.Errorf("Mirror(%d,%d): got %d, want %d", tt.index, tt.size, got, tt.mirror)
		}
		if got := Wrap(tt.index, tt.size); got != tt.wrap {
			t.Errorf("Wrap(%d,%d): got %d, want %d", tt.index, tt.size, got, tt.wrap)
		}
	}
}

func TestField3(t *testing.T) {
	f3, err := NewField3(4, 2)
	if err != nil {
		t.Fatalf("NewField3: %v", err)
	}
	f3.Set(3, 1, 1, 0.5, 0.25)
	r, g, b := f3.At(3, 1)
	if r != 1 || g != 0.5 || b != 0.25 {
		t.Errorf("At: got (%v,%v,%v)", r, g, b)
	}
	if f3.Plane(3) != nil {
		t.Error("Plane(3) should return nil")
	}
}

func TestPow(t *testing.T) {
	tests := []struct {
		name  string
		gamma float64
		in    []float64
		want  []float64
	}{
		{"brighten", 0.5, []float64{0.25, 1, 0}, []float64{0.5, 1, 0}},
		{"darken", 2, []float64{0.5, 1, 0.1}, []float64{0.25, 1, 0.010000000000000002}},
		{"identity", 1, []float64{0.3, 0.7}, []float64{0.3, 0.7}},
		{"non-positive", 1.5, []float64{-0.5, math.NaN(), 0}, []float64{0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := append([]float64(nil), tt.in...)
			Pow(data, tt.gamma)
			if diff := cmp.Diff(tt.want, data, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
				t.Errorf("Pow mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
